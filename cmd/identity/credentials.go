package identity

import (
	"context"
)

// AccountSource is the minimal read surface the credential verifier needs.
type AccountSource interface {
	GetAccountByEmail(ctx context.Context, email string) (Account, error)
}

// CredentialVerifier checks login credentials against stored accounts.
//
// All failure modes (unknown email, inactive account, wrong password) return
// ErrInvalidCredentials. A dummy bcrypt comparison runs when the account is
// missing so response timing does not reveal whether the email exists.
type CredentialVerifier struct {
	accounts AccountSource

	dummyHash string
}

// NewCredentialVerifier builds a verifier over the given account source.
func NewCredentialVerifier(accounts AccountSource) *CredentialVerifier {
	v := &CredentialVerifier{accounts: accounts}
	if h, err := HashPassword("timing-equalizer-not-a-credential", DefaultBcryptCost); err == nil {
		v.dummyHash = h
	}
	return v
}

// Verify authenticates an email/password pair and returns the account.
func (v *CredentialVerifier) Verify(ctx context.Context, email, password string) (Account, error) {
	acct, err := v.accounts.GetAccountByEmail(ctx, email)
	if err != nil {
		if v.dummyHash != "" {
			_, _ = VerifyPassword(password, v.dummyHash)
		}
		if IsNotFound(err) {
			return Account{}, OpError{Op: "identity.Verify", Kind: ErrInvalidCredentials}
		}
		return Account{}, err
	}

	ok, err := VerifyPassword(password, acct.PasswordHash)
	if err != nil {
		return Account{}, OpError{Op: "identity.Verify", Kind: ErrInvalidCredentials, Msg: "bad stored hash"}
	}
	if !ok || !acct.Active {
		return Account{}, OpError{Op: "identity.Verify", Kind: ErrInvalidCredentials}
	}
	return acct, nil
}
