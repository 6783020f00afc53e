package identity

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// Stored hashes are bcrypt; cost is tunable at hash time only, verification
// reads the cost from the hash itself.
const (
	// DefaultBcryptCost matches the deployed account data.
	DefaultBcryptCost = 10

	minPasswordLen = 8
	maxPasswordLen = 72 // bcrypt truncates beyond 72 bytes; reject instead
)

// HashPassword returns a bcrypt hash of the plaintext.
func HashPassword(plain string, cost int) (string, error) {
	if len(plain) < minPasswordLen {
		return "", errors.New("password too short")
	}
	if len(plain) > maxPasswordLen {
		return "", errors.New("password too long")
	}
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = DefaultBcryptCost
	}
	b, err := bcrypt.GenerateFromPassword([]byte(plain), cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// VerifyPassword checks plain against a stored bcrypt hash.
// A mismatch is (false, nil); only malformed hashes produce an error.
func VerifyPassword(plain, hash string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain))
	if err == nil {
		return true, nil
	}
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return false, nil
	}
	return false, err
}
