package accounts

import (
	"time"

	"trb/cmd/identity"
)

type createAccountRequest struct {
	Email     string  `json:"email"`
	Password  string  `json:"password"`
	Role      string  `json:"role"`
	FirstName string  `json:"first_name"`
	LastName  string  `json:"last_name"`
	Phone     *string `json:"phone"`
	Address   *string `json:"address"`
}

type updateAccountRequest struct {
	Email     *string `json:"email"`
	Role      *string `json:"role"`
	Active    *bool   `json:"active"`
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	Phone     *string `json:"phone"`
	Address   *string `json:"address"`
}

type accountView struct {
	ID             string    `json:"id"`
	Email          string    `json:"email"`
	Role           string    `json:"role"`
	Active         bool      `json:"active"`
	ProfessionalID *string   `json:"professional_id,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

type accountPageResponse struct {
	Accounts []accountView `json:"accounts"`
	Total    int           `json:"total"`
	Offset   int           `json:"offset"`
	Limit    int           `json:"limit"`
}

func toAccountView(a identity.Account) accountView {
	return accountView{
		ID:             a.ID,
		Email:          a.Email,
		Role:           string(a.Role),
		Active:         a.Active,
		ProfessionalID: a.ProfessionalID,
		CreatedAt:      a.CreatedAt,
		UpdatedAt:      a.UpdatedAt,
	}
}
