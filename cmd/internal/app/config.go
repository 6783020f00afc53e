package app

import "time"

// Config contains all runtime configuration loaded from environment variables.
type Config struct {
	HTTPAddr  string
	LogLevel  string
	LogFormat string

	ReadHeaderTimeout time.Duration
	ReadTimeout       time.Duration
	WriteTimeout      time.Duration
	IdleTimeout       time.Duration
	MaxHeaderBytes    int

	DatabaseURL string
	DBMaxConns  int32
	DBMinConns  int32

	// If true, /readyz returns 503 unless the DB is reachable.
	ReadinessRequireDB bool

	// If true, TRB_TOKEN_HMAC_KEY must be set (>= 32 bytes) and refresh-token
	// hashing must be HMAC-based.
	RequireTokenHMAC bool

	CORSAllowedOrigins   []string
	CORSAllowCredentials bool
	CORSMaxAgeSeconds    int
}

// LoadConfig loads Config from environment variables with defaults.
func LoadConfig() Config {
	return Config{
		HTTPAddr:  EnvString("TRB_HTTP_ADDR", "0.0.0.0:8080"),
		LogLevel:  EnvString("TRB_LOG_LEVEL", "info"),
		LogFormat: EnvString("TRB_LOG_FORMAT", "json"),

		ReadHeaderTimeout: EnvDuration("TRB_HTTP_READ_HEADER_TIMEOUT", 5*time.Second),
		ReadTimeout:       EnvDuration("TRB_HTTP_READ_TIMEOUT", 15*time.Second),
		WriteTimeout:      EnvDuration("TRB_HTTP_WRITE_TIMEOUT", 15*time.Second),
		IdleTimeout:       EnvDuration("TRB_HTTP_IDLE_TIMEOUT", 60*time.Second),

		MaxHeaderBytes: EnvInt("TRB_HTTP_MAX_HEADER_BYTES", 1<<20),

		DatabaseURL: EnvString("TRB_DATABASE_URL", ""),
		DBMaxConns:  EnvInt32("TRB_DB_MAX_CONNS", 10),
		DBMinConns:  EnvInt32("TRB_DB_MIN_CONNS", 0),

		ReadinessRequireDB: EnvBool("TRB_READINESS_REQUIRE_DB", true),

		RequireTokenHMAC: EnvBool("TRB_REQUIRE_TOKEN_HMAC", false),

		CORSAllowedOrigins:   EnvStringSlice("TRB_CORS_ALLOWED_ORIGINS", nil),
		CORSAllowCredentials: EnvBool("TRB_CORS_ALLOW_CREDENTIALS", false),
		CORSMaxAgeSeconds:    EnvInt("TRB_CORS_MAX_AGE_SECONDS", 600),
	}
}
