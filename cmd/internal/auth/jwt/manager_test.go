package jwt

import (
	"errors"
	"strings"
	"testing"
	"time"

	"trb/cmd/identity"
)

func testManager(t *testing.T) *Manager {
	t.Helper()
	cfg := DefaultConfig()
	cfg.Secret = []byte("0123456789abcdef0123456789abcdef")
	m, err := NewManager(cfg)
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}
	return m
}

func testAccount() identity.Account {
	pid := "01PROF"
	return identity.Account{
		ID:             "01ACCT",
		Email:          "ada@example.com",
		Role:           identity.RoleSupervisor,
		ProfessionalID: &pid,
		Active:         true,
	}
}

func TestAccessTokenRoundTrip(t *testing.T) {
	t.Parallel()

	m := testManager(t)
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	raw, expiresAt, err := m.IssueAccess(testAccount(), now)
	if err != nil {
		t.Fatalf("IssueAccess: %v", err)
	}
	if want := now.Add(m.AccessTTL()); !expiresAt.Equal(want) {
		t.Fatalf("expiresAt = %v; want %v", expiresAt, want)
	}

	claims, err := m.VerifyAccess(raw, now.Add(time.Minute))
	if err != nil {
		t.Fatalf("VerifyAccess: %v", err)
	}
	if claims.Subject != "01ACCT" || claims.Email != "ada@example.com" || claims.Role != "supervisor" {
		t.Fatalf("unexpected claims: %+v", claims)
	}
	if claims.ProfessionalID == nil || *claims.ProfessionalID != "01PROF" {
		t.Fatalf("missing professional id: %+v", claims)
	}
	if claims.ID == "" {
		t.Fatalf("expected a jti")
	}
}

func TestAccessTokenExpiry(t *testing.T) {
	t.Parallel()

	m := testManager(t)
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	raw, _, err := m.IssueAccess(testAccount(), now)
	if err != nil {
		t.Fatalf("IssueAccess: %v", err)
	}

	// Inside leeway: still valid.
	if _, err := m.VerifyAccess(raw, now.Add(m.AccessTTL()+10*time.Second)); err != nil {
		t.Fatalf("expected token valid within leeway: %v", err)
	}

	// Past leeway: rejected.
	if _, err := m.VerifyAccess(raw, now.Add(m.AccessTTL()+time.Minute)); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestAccessTokenTamperedSignature(t *testing.T) {
	t.Parallel()

	m := testManager(t)
	now := time.Now()

	raw, _, err := m.IssueAccess(testAccount(), now)
	if err != nil {
		t.Fatalf("IssueAccess: %v", err)
	}

	parts := strings.Split(raw, ".")
	if len(parts) != 3 {
		t.Fatalf("unexpected token shape")
	}
	forged := parts[0] + "." + parts[1] + "." + strings.Repeat("A", len(parts[2]))

	if _, err := m.VerifyAccess(forged, now); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestAccessTokenWrongKey(t *testing.T) {
	t.Parallel()

	m := testManager(t)
	now := time.Now()

	raw, _, err := m.IssueAccess(testAccount(), now)
	if err != nil {
		t.Fatalf("IssueAccess: %v", err)
	}

	cfg := DefaultConfig()
	cfg.Secret = []byte("ffffffffffffffffffffffffffffffff")
	other, err := NewManager(cfg)
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}

	if _, err := other.VerifyAccess(raw, now); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestRefreshTokenRoundTrip(t *testing.T) {
	t.Parallel()

	m := testManager(t)
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	raw, expiresAt, err := m.IssueRefresh("01ACCT", now)
	if err != nil {
		t.Fatalf("IssueRefresh: %v", err)
	}
	if want := now.Add(m.RefreshTTL()); !expiresAt.Equal(want) {
		t.Fatalf("expiresAt = %v; want %v", expiresAt, want)
	}

	sub, err := m.VerifyRefresh(raw, now.Add(time.Minute))
	if err != nil {
		t.Fatalf("VerifyRefresh: %v", err)
	}
	if sub != "01ACCT" {
		t.Fatalf("subject = %q; want 01ACCT", sub)
	}

	// A refresh token is not an access token: it lacks the role claim.
	if _, err := m.VerifyAccess(raw, now.Add(time.Minute)); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("refresh token accepted as access token: %v", err)
	}
}

func TestRefreshTokensAreUnique(t *testing.T) {
	t.Parallel()

	m := testManager(t)
	now := time.Now()

	a, _, err := m.IssueRefresh("01ACCT", now)
	if err != nil {
		t.Fatalf("IssueRefresh: %v", err)
	}
	b, _, err := m.IssueRefresh("01ACCT", now)
	if err != nil {
		t.Fatalf("IssueRefresh: %v", err)
	}
	if a == b {
		t.Fatalf("expected distinct tokens for the same subject and instant")
	}
}

func TestVerifyRejectsGarbage(t *testing.T) {
	t.Parallel()

	m := testManager(t)
	now := time.Now()

	for _, raw := range []string{"", "not-a-token", "a.b.c"} {
		if _, err := m.VerifyAccess(raw, now); !errors.Is(err, ErrInvalidToken) {
			t.Fatalf("VerifyAccess(%q): expected ErrInvalidToken, got %v", raw, err)
		}
		if _, err := m.VerifyRefresh(raw, now); !errors.Is(err, ErrInvalidToken) {
			t.Fatalf("VerifyRefresh(%q): expected ErrInvalidToken, got %v", raw, err)
		}
	}
}

func TestNewManagerValidation(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"short secret", func(c *Config) { c.Secret = []byte("short") }},
		{"empty issuer", func(c *Config) { c.Issuer = "" }},
		{"zero access ttl", func(c *Config) { c.AccessTTL = 0 }},
		{"zero refresh ttl", func(c *Config) { c.RefreshTTL = 0 }},
		{"negative leeway", func(c *Config) { c.Leeway = -time.Second }},
	}
	for _, tc := range cases {
		cfg := DefaultConfig()
		cfg.Secret = []byte("0123456789abcdef0123456789abcdef")
		tc.mutate(&cfg)
		if _, err := NewManager(cfg); !errors.Is(err, ErrConfig) {
			t.Fatalf("%s: expected ErrConfig, got %v", tc.name, err)
		}
	}
}
