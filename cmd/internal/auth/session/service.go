package session

import (
	"context"
	"errors"
	"strings"
	"time"

	"trb/cmd/identity"
	"trb/cmd/identity/ids"
	"trb/cmd/internal/auth/jwt"
)

// Revocation reasons recorded on trb.refresh_tokens rows.
const (
	reasonLogout      = "logout"
	reasonReuse       = "reuse_detected"
	reasonExpired     = "expired"
	reasonDeactivated = "account_deactivated"
)

// TokenManager is the signing surface the service needs; *jwt.Manager
// implements it.
type TokenManager interface {
	IssueAccess(a identity.Account, now time.Time) (string, time.Time, error)
	IssueRefresh(accountID string, now time.Time) (string, time.Time, error)
	VerifyAccess(raw string, now time.Time) (jwt.AccessClaims, error)
	VerifyRefresh(raw string, now time.Time) (string, error)
}

// CredentialVerifier checks a login against stored credentials;
// *identity.CredentialVerifier implements it.
type CredentialVerifier interface {
	Verify(ctx context.Context, email, password string) (identity.Account, error)
}

// AccountDirectory resolves accounts by ID; identity.Store implements it.
type AccountDirectory interface {
	GetAccountByID(ctx context.Context, id string) (identity.Account, error)
}

// Service implements the high-level token lifecycle for TRB.
//
// It issues token pairs on login, rotates refresh tokens with reuse
// detection, and handles logout and account-wide revocation.
type Service struct {
	tokens   TokenManager
	store    Store
	creds    CredentialVerifier
	accounts AccountDirectory
}

// Issued is the result of a login or a rotation: a short-lived access token
// plus the refresh token that replaces whatever the client held before.
type Issued struct {
	AccessToken  string
	AccessExp    time.Time
	RefreshToken string
	RefreshExp   time.Time
	Account      identity.Account
}

// NewService constructs a Service with the provided store, token manager,
// credential verifier and account directory.
func NewService(store Store, tokens TokenManager, creds CredentialVerifier, accounts AccountDirectory) *Service {
	return &Service{tokens: tokens, store: store, creds: creds, accounts: accounts}
}

// Login verifies credentials and issues a fresh token pair. The refresh
// token starts a new family: its record has no predecessor.
//
// Credential failures surface as identity.ErrInvalidCredentials regardless
// of cause (unknown email, wrong password, inactive account).
func (s *Service) Login(ctx context.Context, now time.Time, email, password string) (Issued, error) {
	acct, err := s.creds.Verify(ctx, email, password)
	if err != nil {
		return Issued{}, err
	}
	return s.issue(ctx, now, acct)
}

// issue mints a token pair for a verified account and records the refresh
// token.
func (s *Service) issue(ctx context.Context, now time.Time, acct identity.Account) (Issued, error) {
	refreshPlain, refreshExp, err := s.tokens.IssueRefresh(acct.ID, now)
	if err != nil {
		return Issued{}, err
	}

	id, err := ids.NewULID(now)
	if err != nil {
		return Issued{}, err
	}

	err = s.store.Insert(ctx, Record{
		ID:        id,
		AccountID: acct.ID,
		TokenHash: hashRefreshTokenHex(refreshPlain),
		IssuedAt:  now.UTC(),
		ExpiresAt: refreshExp,
	})
	if err != nil {
		return Issued{}, err
	}

	accessToken, accessExp, err := s.tokens.IssueAccess(acct, now)
	if err != nil {
		return Issued{}, err
	}

	return Issued{
		AccessToken:  accessToken,
		AccessExp:    accessExp,
		RefreshToken: refreshPlain,
		RefreshExp:   refreshExp,
		Account:      acct,
	}, nil
}

// VerifyAccess verifies an access token statelessly. Revoking refresh tokens
// never recalls an access token early; it simply ages out at exp.
func (s *Service) VerifyAccess(raw string, now time.Time) (jwt.AccessClaims, error) {
	claims, err := s.tokens.VerifyAccess(raw, now)
	if err != nil {
		return jwt.AccessClaims{}, ErrTokenInvalid
	}
	return claims, nil
}

// Rotate exchanges a live refresh token for a fresh token pair.
//
// Security model:
//   - The stored record is looked up first and its state decides the outcome;
//     signature verification comes after, so an expired or reused token still
//     triggers its store side effect.
//   - A record that was already replaced means the token is being reused:
//     the whole family is revoked before ErrTokenReused is returned.
//   - A revoked record without replacement returns ErrTokenRevoked.
//   - A record past its expiry is revoked before ErrTokenExpired is returned.
//   - The replacement is written conditionally; if a concurrent rotation won
//     the race, this attempt re-reads the record and takes the reuse path.
//     Exactly one caller ever obtains a successor for a given token.
func (s *Service) Rotate(ctx context.Context, now time.Time, refreshPlain string) (Issued, error) {
	refreshPlain = strings.TrimSpace(refreshPlain)
	// Basic sanity bounds to avoid pathological inputs.
	if refreshPlain == "" || len(refreshPlain) > 4096 {
		return Issued{}, ErrTokenInvalid
	}

	rec, err := s.store.GetByTokenHash(ctx, hashRefreshTokenHex(refreshPlain))
	if errors.Is(err, ErrTokenNotFound) {
		return Issued{}, ErrTokenInvalid
	}
	if err != nil {
		return Issued{}, err
	}

	if rec.ReplacedByID != nil {
		if err := s.revokeFamily(ctx, now, rec); err != nil {
			return Issued{}, err
		}
		return Issued{}, ErrTokenReused
	}
	if rec.RevokedAt != nil {
		return Issued{}, ErrTokenRevoked
	}
	if !rec.ExpiresAt.After(now) {
		if err := s.store.Revoke(ctx, now, rec.ID, reasonExpired); err != nil {
			return Issued{}, err
		}
		return Issued{}, ErrTokenExpired
	}

	// The record is live, so the embedded exp has not passed either and the
	// parser only rules on signature and issuer here.
	subject, err := s.tokens.VerifyRefresh(refreshPlain, now)
	if err != nil {
		return Issued{}, ErrTokenInvalid
	}

	// The signature binds the subject; a mismatch with the stored record
	// means the row and the token have diverged. Fail closed.
	if rec.AccountID != subject {
		return Issued{}, ErrTokenInvalid
	}

	acct, err := s.accounts.GetAccountByID(ctx, rec.AccountID)
	if err != nil {
		if identity.IsNotFound(err) {
			return Issued{}, ErrTokenInvalid
		}
		return Issued{}, err
	}
	if !acct.Active {
		if err := s.store.RevokeAllForAccount(ctx, now, acct.ID, reasonDeactivated); err != nil {
			return Issued{}, err
		}
		return Issued{}, ErrAccountInactive
	}

	newPlain, newExp, err := s.tokens.IssueRefresh(acct.ID, now)
	if err != nil {
		return Issued{}, err
	}
	nextID, err := ids.NewULID(now)
	if err != nil {
		return Issued{}, err
	}
	next := Record{
		ID:        nextID,
		AccountID: acct.ID,
		TokenHash: hashRefreshTokenHex(newPlain),
		IssuedAt:  now.UTC(),
		ExpiresAt: newExp,
	}

	err = s.store.Rotate(ctx, now, rec.ID, next)
	if errors.Is(err, ErrRotationConflict) {
		// A concurrent rotation replaced the record first; presenting the
		// same token twice is reuse no matter who raced whom.
		cur, gerr := s.store.GetByID(ctx, rec.ID)
		if gerr != nil {
			return Issued{}, gerr
		}
		if cur.ReplacedByID != nil {
			if rerr := s.revokeFamily(ctx, now, cur); rerr != nil {
				return Issued{}, rerr
			}
			return Issued{}, ErrTokenReused
		}
		return Issued{}, ErrTokenRevoked
	}
	if err != nil {
		return Issued{}, err
	}

	accessToken, accessExp, err := s.tokens.IssueAccess(acct, now)
	if err != nil {
		return Issued{}, err
	}

	return Issued{
		AccessToken:  accessToken,
		AccessExp:    accessExp,
		RefreshToken: newPlain,
		RefreshExp:   newExp,
		Account:      acct,
	}, nil
}

// Logout revokes the presented refresh token. It is idempotent and never
// tells the caller whether the token existed: unknown, malformed and
// already-revoked tokens all return nil.
func (s *Service) Logout(ctx context.Context, now time.Time, refreshPlain string) error {
	refreshPlain = strings.TrimSpace(refreshPlain)
	if refreshPlain == "" || len(refreshPlain) > 4096 {
		return nil
	}

	err := s.store.RevokeByTokenHash(ctx, now, hashRefreshTokenHex(refreshPlain), reasonLogout)
	if errors.Is(err, ErrTokenNotFound) {
		return nil
	}
	return err
}

// RevokeAccount revokes every refresh token for an account. Used when an
// account is deactivated; in-flight access tokens still age out at exp.
func (s *Service) RevokeAccount(ctx context.Context, now time.Time, accountID string) error {
	return s.store.RevokeAllForAccount(ctx, now, accountID, reasonDeactivated)
}

// revokeFamily revokes the entire rotation chain containing rec: ancestors
// by following predecessor links back to the root, descendants by following
// ReplacedByID forward. Idempotent; already-revoked members stay revoked.
func (s *Service) revokeFamily(ctx context.Context, now time.Time, rec Record) error {
	seen := map[string]bool{rec.ID: true}
	family := []string{rec.ID}

	cur := rec
	for {
		prev, err := s.store.PredecessorOf(ctx, cur.ID)
		if errors.Is(err, ErrTokenNotFound) {
			break
		}
		if err != nil {
			return err
		}
		if seen[prev.ID] {
			break
		}
		seen[prev.ID] = true
		family = append(family, prev.ID)
		cur = prev
	}

	cur = rec
	for cur.ReplacedByID != nil {
		next, err := s.store.GetByID(ctx, *cur.ReplacedByID)
		if errors.Is(err, ErrTokenNotFound) {
			break
		}
		if err != nil {
			return err
		}
		if seen[next.ID] {
			break
		}
		seen[next.ID] = true
		family = append(family, next.ID)
		cur = next
	}

	for _, id := range family {
		if err := s.store.Revoke(ctx, now, id, reasonReuse); err != nil {
			return err
		}
	}
	return nil
}
