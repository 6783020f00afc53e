package jwt

import (
	"os"
	"strings"
	"time"
)

// Config defines signing configuration for both token kinds.
//
// AccessTTL and RefreshTTL are deliberately independent durations: the
// deployed defaults ship with a refresh lifetime shorter than the access
// lifetime, and whether that ordering is intended is an operations decision.
// Neither value is derived from the other here.
type Config struct {
	// Issuer is the value set in the "iss" claim.
	Issuer string

	// Secret is the HMAC-SHA256 signing key, shared by both token kinds.
	Secret []byte

	// AccessTTL is the access-token lifetime.
	AccessTTL time.Duration

	// RefreshTTL is the refresh-token lifetime; the matching store record
	// gets the same expiry.
	RefreshTTL time.Duration

	// Leeway is the clock-skew tolerance applied during verification.
	Leeway time.Duration
}

// DefaultConfig returns defaults matching the deployed configuration.
func DefaultConfig() Config {
	return Config{
		Issuer:     "trb",
		AccessTTL:  time.Hour,
		RefreshTTL: 30 * time.Minute,
		Leeway:     30 * time.Second,
	}
}

// LoadConfigFromEnv loads token configuration from environment variables.
//
// Required:
//   - TRB_JWT_SECRET (>= 32 bytes)
//
// Optional:
//   - TRB_AUTH_ISSUER
//   - TRB_AUTH_ACCESS_TTL
//   - TRB_AUTH_REFRESH_TTL
//   - TRB_AUTH_LEEWAY
//
// Returns ErrConfig if configuration is invalid.
func LoadConfigFromEnv() (Config, error) {
	cfg := DefaultConfig()

	if v := strings.TrimSpace(os.Getenv("TRB_AUTH_ISSUER")); v != "" {
		cfg.Issuer = v
	}

	if v := os.Getenv("TRB_AUTH_ACCESS_TTL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil || d <= 0 {
			return Config{}, ErrConfig
		}
		cfg.AccessTTL = d
	}

	if v := os.Getenv("TRB_AUTH_REFRESH_TTL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil || d <= 0 {
			return Config{}, ErrConfig
		}
		cfg.RefreshTTL = d
	}

	if v := os.Getenv("TRB_AUTH_LEEWAY"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil || d < 0 {
			return Config{}, ErrConfig
		}
		cfg.Leeway = d
	}

	secret := strings.TrimSpace(os.Getenv("TRB_JWT_SECRET"))
	if len(secret) < 32 {
		return Config{}, ErrConfig
	}
	cfg.Secret = []byte(secret)

	return cfg, nil
}
