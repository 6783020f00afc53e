package jwt

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"trb/cmd/identity"
)

// AccessClaims is the access-token payload. The embedded registered claims
// carry sub (account id), jti, iat, exp and iss.
type AccessClaims struct {
	Email          string  `json:"email"`
	Role           string  `json:"role"`
	ProfessionalID *string `json:"pid,omitempty"`

	jwt.RegisteredClaims
}

// Manager signs and verifies TRB tokens with a single HS256 key.
type Manager struct {
	cfg Config
}

// NewManager creates a token manager. Returns ErrConfig when the secret is
// missing or too short.
func NewManager(cfg Config) (*Manager, error) {
	if len(cfg.Secret) < 32 || cfg.Issuer == "" {
		return nil, ErrConfig
	}
	if cfg.AccessTTL <= 0 || cfg.RefreshTTL <= 0 || cfg.Leeway < 0 {
		return nil, ErrConfig
	}
	return &Manager{cfg: cfg}, nil
}

// AccessTTL reports the configured access-token lifetime.
func (m *Manager) AccessTTL() time.Duration { return m.cfg.AccessTTL }

// RefreshTTL reports the configured refresh-token lifetime.
func (m *Manager) RefreshTTL() time.Duration { return m.cfg.RefreshTTL }

// IssueAccess signs a new access token for the account. The token embeds the
// full identity envelope so request handling never touches the database.
func (m *Manager) IssueAccess(a identity.Account, now time.Time) (string, time.Time, error) {
	now = now.UTC()
	expiresAt := now.Add(m.cfg.AccessTTL)

	claims := AccessClaims{
		Email:          a.Email,
		Role:           string(a.Role),
		ProfessionalID: a.ProfessionalID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   a.ID,
			Issuer:    m.cfg.Issuer,
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.cfg.Secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

// IssueRefresh signs a new refresh token. It carries only the subject; role
// and profile data are resolved from the account record at rotation time, so
// a role change takes effect on the next refresh.
func (m *Manager) IssueRefresh(accountID string, now time.Time) (string, time.Time, error) {
	now = now.UTC()
	expiresAt := now.Add(m.cfg.RefreshTTL)

	claims := jwt.RegisteredClaims{
		Subject:   accountID,
		Issuer:    m.cfg.Issuer,
		ID:        uuid.NewString(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.cfg.Secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

// VerifyAccess checks signature, issuer and expiry of an access token and
// returns its claims. Verification is stateless; revocation of refresh
// families never invalidates an access token before its exp.
func (m *Manager) VerifyAccess(raw string, now time.Time) (AccessClaims, error) {
	var claims AccessClaims
	_, err := m.parser(now).ParseWithClaims(raw, &claims, m.keyFunc)
	if err != nil {
		return AccessClaims{}, ErrInvalidToken
	}
	if claims.Subject == "" {
		return AccessClaims{}, ErrInvalidToken
	}
	if _, ok := identity.ParseRole(claims.Role); !ok {
		return AccessClaims{}, ErrInvalidToken
	}
	return claims, nil
}

// VerifyRefresh checks signature, issuer and expiry of a refresh token and
// returns its subject. Store-side state (revoked, replaced) is the session
// service's concern.
func (m *Manager) VerifyRefresh(raw string, now time.Time) (string, error) {
	var claims jwt.RegisteredClaims
	_, err := m.parser(now).ParseWithClaims(raw, &claims, m.keyFunc)
	if err != nil {
		return "", ErrInvalidToken
	}
	if claims.Subject == "" {
		return "", ErrInvalidToken
	}
	return claims.Subject, nil
}

func (m *Manager) parser(now time.Time) *jwt.Parser {
	return jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(m.cfg.Issuer),
		jwt.WithExpirationRequired(),
		jwt.WithLeeway(m.cfg.Leeway),
		jwt.WithTimeFunc(func() time.Time { return now.UTC() }),
	)
}

func (m *Manager) keyFunc(*jwt.Token) (any, error) {
	return m.cfg.Secret, nil
}
