package identity

import (
	"context"
	"time"
)

// CreateAccountInput describes an admin-created account plus its professional
// profile. Accounts are only ever created by administrators; there is no
// self-registration surface.
type CreateAccountInput struct {
	Email    string
	Password string
	Role     Role
	Active   bool

	FirstName string
	LastName  string
	Phone     *string
	Address   *string

	Now time.Time
}

// UpdateAccountInput carries partial updates; nil fields are left unchanged.
type UpdateAccountInput struct {
	Email  *string
	Role   *Role
	Active *bool

	FirstName *string
	LastName  *string
	Phone     *string
	Address   *string

	Now time.Time
}

// AccountPage is one page of accounts with the total for pagination headers.
type AccountPage struct {
	Accounts []Account
	Total    int
}

// ListAccountsInput controls pagination for account listings.
// Offset/Limit are pre-validated by the HTTP layer.
type ListAccountsInput struct {
	Offset        int
	Limit         int
	IncludeInactive bool
}

// Store is the account persistence boundary.
type Store interface {
	GetAccountByEmail(ctx context.Context, email string) (Account, error)
	GetAccountByID(ctx context.Context, id string) (Account, error)
	CreateAccount(ctx context.Context, in CreateAccountInput) (Account, error)
	UpdateAccount(ctx context.Context, id string, in UpdateAccountInput) (Account, error)
	ListAccounts(ctx context.Context, in ListAccountsInput) (AccountPage, error)

	// DeactivateAccount clears the active flag. Revoking the account's
	// refresh-token set is the session layer's job and must follow every call.
	DeactivateAccount(ctx context.Context, id string, now time.Time) error
}
