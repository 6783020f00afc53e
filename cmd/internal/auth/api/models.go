package authapi

import "time"

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type logoutRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type accountResponse struct {
	ID             string  `json:"id"`
	Email          string  `json:"email"`
	Role           string  `json:"role"`
	ProfessionalID *string `json:"professional_id,omitempty"`
}

type tokensResponse struct {
	AccessToken      string    `json:"access_token"`
	AccessExpiresAt  time.Time `json:"access_expires_at"`
	RefreshToken     string    `json:"refresh_token"`
	RefreshExpiresAt time.Time `json:"refresh_expires_at"`
}

type loginResponse struct {
	Account accountResponse `json:"account"`
	Tokens  tokensResponse  `json:"tokens"`
}

type refreshResponse struct {
	Account accountResponse `json:"account"`
	Tokens  tokensResponse  `json:"tokens"`
}

type logoutResponse struct {
	Message string `json:"message"`
}
