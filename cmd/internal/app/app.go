// Package app wires the TRB server runtime: config, logging, persistence and
// HTTP routes.
package app

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"trb/cmd/identity"
	"trb/cmd/internal/accounts"
	authapi "trb/cmd/internal/auth/api"
	"trb/cmd/internal/auth/jwt"
	"trb/cmd/internal/auth/session"
	"trb/cmd/internal/tracking"
)

// App is the TRB server runtime.
type App struct {
	cfg Config
	log Logger

	pool *pgxpool.Pool

	auth  *authapi.Handler
	accts *accounts.Handler
	track *tracking.Handler
}

// New constructs a fully wired App instance from config and logger.
func New(cfg Config, log Logger) (*App, error) {
	if log == nil {
		log = NewLogger(cfg.LogLevel, cfg.LogFormat)
	}

	if err := ValidateSecurityConfig(cfg); err != nil {
		return nil, err
	}
	if cfg.DatabaseURL == "" {
		return nil, errors.New("TRB_DATABASE_URL is required")
	}

	pool, err := NewDBPool(context.Background(), cfg)
	if err != nil {
		return nil, err
	}

	idStore, err := identity.NewPostgresStore(pool)
	if err != nil {
		pool.Close()
		return nil, err
	}

	jwtCfg, err := jwt.LoadConfigFromEnv()
	if err != nil {
		pool.Close()
		return nil, err
	}
	tokens, err := jwt.NewManager(jwtCfg)
	if err != nil {
		pool.Close()
		return nil, err
	}

	sessions := session.NewService(
		session.NewPostgresStore(pool),
		tokens,
		identity.NewCredentialVerifier(idStore),
		idStore,
	)

	auth := authapi.NewHandler(log, authapi.LoadConfigFromEnv(), pool, sessions)

	return &App{
		cfg:   cfg,
		log:   log,
		pool:  pool,
		auth:  auth,
		accts: accounts.NewHandler(log, idStore, sessions),
		track: tracking.NewHandler(log, tracking.NewPostgresStore(pool)),
	}, nil
}

// Run starts the HTTP server and blocks until context cancellation or fatal
// server error.
func (a *App) Run(ctx context.Context) error {
	mux := http.NewServeMux()
	registerHTTP(mux, a.log, a.cfg, a.pool, a.auth, a.accts, a.track)

	var handler http.Handler = mux
	handler = WithSecurityHeaders(handler)
	handler = WithCORS(handler, a.cfg, a.log)
	handler = WithRequestLogging(handler, mux, a.log)

	srv := &http.Server{
		Addr:              a.cfg.HTTPAddr,
		Handler:           handler,
		ReadHeaderTimeout: nonZeroDuration(a.cfg.ReadHeaderTimeout, 5*time.Second),
		ReadTimeout:       nonZeroDuration(a.cfg.ReadTimeout, 15*time.Second),
		WriteTimeout:      nonZeroDuration(a.cfg.WriteTimeout, 15*time.Second),
		IdleTimeout:       nonZeroDuration(a.cfg.IdleTimeout, 60*time.Second),
		MaxHeaderBytes:    nonZeroInt(a.cfg.MaxHeaderBytes, 1<<20),
	}

	a.log.Info("server.start", "addr", a.cfg.HTTPAddr)

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		a.log.Info("server.stop", "reason", "context_done")
	case err := <-errCh:
		a.log.Error("server.fail", "err", err)
		return err
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		a.log.Error("server.shutdown.fail", "err", err)
		return err
	}

	a.pool.Close()
	a.log.Info("server.stopped")
	return nil
}

func nonZeroDuration(v, def time.Duration) time.Duration {
	if v <= 0 {
		return def
	}
	return v
}

func nonZeroInt(v, def int) int {
	if v <= 0 {
		return def
	}
	return v
}
