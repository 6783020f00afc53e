package identity

import (
	"context"
	"errors"
	"testing"
)

type fakeAccountSource struct {
	byEmail map[string]Account
}

func (f *fakeAccountSource) GetAccountByEmail(_ context.Context, email string) (Account, error) {
	a, ok := f.byEmail[NormalizeEmail(email)]
	if !ok {
		return Account{}, OpError{Op: "fake.GetAccountByEmail", Kind: ErrNotFound}
	}
	return a, nil
}

func TestParseRole(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in   string
		want Role
		ok   bool
	}{
		{"user", RoleUser, true},
		{"  Supervisor ", RoleSupervisor, true},
		{"ADMIN", RoleAdmin, true},
		{"root", "", false},
		{"", "", false},
	}
	for _, tc := range cases {
		got, ok := ParseRole(tc.in)
		if ok != tc.ok || got != tc.want {
			t.Fatalf("ParseRole(%q) = (%q, %v); want (%q, %v)", tc.in, got, ok, tc.want, tc.ok)
		}
	}
}

func TestHashAndVerifyPassword(t *testing.T) {
	t.Parallel()

	hash, err := HashPassword("correct-horse-battery", DefaultBcryptCost)
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}

	ok, err := VerifyPassword("correct-horse-battery", hash)
	if err != nil || !ok {
		t.Fatalf("expected match, got ok=%v err=%v", ok, err)
	}

	ok, err = VerifyPassword("wrong-password-here", hash)
	if err != nil {
		t.Fatalf("mismatch must not be an error: %v", err)
	}
	if ok {
		t.Fatalf("expected mismatch")
	}
}

func TestHashPassword_RejectsShort(t *testing.T) {
	t.Parallel()

	if _, err := HashPassword("short", DefaultBcryptCost); err == nil {
		t.Fatalf("expected error for short password")
	}
}

func TestCredentialVerifier(t *testing.T) {
	t.Parallel()

	hash, err := HashPassword("hunter2hunter2", DefaultBcryptCost)
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}

	src := &fakeAccountSource{byEmail: map[string]Account{
		"ada@example.com": {ID: "01A", Email: "ada@example.com", PasswordHash: hash, Role: RoleUser, Active: true},
		"off@example.com": {ID: "01B", Email: "off@example.com", PasswordHash: hash, Role: RoleUser, Active: false},
	}}
	v := NewCredentialVerifier(src)
	ctx := context.Background()

	acct, err := v.Verify(ctx, "Ada@Example.com", "hunter2hunter2")
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if acct.ID != "01A" {
		t.Fatalf("unexpected account: %+v", acct)
	}

	cases := []struct {
		name     string
		email    string
		password string
	}{
		{"unknown email", "ghost@example.com", "hunter2hunter2"},
		{"wrong password", "ada@example.com", "not-the-password"},
		{"inactive account", "off@example.com", "hunter2hunter2"},
	}
	for _, tc := range cases {
		_, err := v.Verify(ctx, tc.email, tc.password)
		if !errors.Is(err, ErrInvalidCredentials) {
			t.Fatalf("%s: expected ErrInvalidCredentials, got %v", tc.name, err)
		}
	}
}
