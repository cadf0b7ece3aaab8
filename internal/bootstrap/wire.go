package bootstrap

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"time"

	"github.com/mradvance/aihub/internal/application/account"
	"github.com/mradvance/aihub/internal/config"
	"github.com/mradvance/aihub/internal/infrastructure/db/postgres"
	"github.com/mradvance/aihub/internal/infrastructure/email"
	"github.com/mradvance/aihub/internal/infrastructure/redis"
	"github.com/mradvance/aihub/internal/infrastructure/security"
	"github.com/mradvance/aihub/internal/logger"
	http_handlers "github.com/mradvance/aihub/internal/transport/http/handlers"
	"github.com/mradvance/aihub/internal/transport/http/router"
)

/*
========================
 Public entry (prod)
========================
*/

func NewServer() (*http.Server, func(), error) {
	return newServer(defaultDeps())
}

// NewServerWithDeps allows injecting dependencies for testing
func NewServerWithDeps(deps Deps) (*http.Server, func(), error) {
	return newServer(deps)
}

/*
========================
 Dependency injection
========================
*/

type Deps struct {
	LoadConfig func() (*config.Config, error)

	NewDB func(addr string) (DBCloser, error)

	NewRedis func(addr string) RedisClient

	NewSender func(cfg *config.Config) account.CodeSender

	NewRouter func(router.Deps) http.Handler
}

type DBCloser interface {
	Close() error
}

type RedisClient interface {
	Ping(ctx context.Context) error
	Close() error
}

/*
========================
 Core bootstrap logic
========================
*/

func newServer(deps Deps) (*http.Server, func(), error) {
	// 0) config
	cfg, err := deps.LoadConfig()
	if err != nil {
		return nil, nil, err
	}

	// 1) db
	db, err := deps.NewDB(cfg.DBAddr)
	if err != nil {
		return nil, nil, err
	}

	cleanupFns := []func(){
		func() { _ = db.Close() },
	}

	sqlDB, ok := db.(*sql.DB)
	if !ok {
		runCleanup(cleanupFns)
		return nil, nil, errors.New("bootstrap: NewDB did not return *sql.DB")
	}

	if cfg.DBAutoMigrate {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := postgres.EnsureSchema(ctx, sqlDB); err != nil {
			runCleanup(cleanupFns)
			return nil, nil, err
		}
	}

	// 2) user repo
	userRepo := postgres.NewUserRepo(sqlDB)

	// 3) redis (best-effort; without it rate limiting is disabled)
	var redisCli RedisClient
	if deps.NewRedis != nil && cfg.RedisAddr != "" {
		c := deps.NewRedis(cfg.RedisAddr)
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()

		if err := c.Ping(ctx); err != nil {
			logger.Logger.Warn().Err(err).Msg("redis unavailable; rate limiting disabled")
			_ = c.Close()
		} else {
			logger.Logger.Info().Msg("redis connected")
			redisCli = c
			cleanupFns = append(cleanupFns, func() { _ = c.Close() })
		}
	}

	// 4) outbound email
	var sender account.CodeSender
	if deps.NewSender != nil {
		sender = deps.NewSender(cfg)
	}
	if sender == nil {
		if cfg.IsProd() {
			runCleanup(cleanupFns)
			return nil, nil, errors.New("bootstrap: SMTP_HOST is required in prod")
		}
		logger.Logger.Warn().Msg("smtp not configured; codes are logged instead of mailed")
		sender = email.NewFakeSender(logger.Logger)
	}

	// 5) security
	hasher := security.NewBcryptHasher(12)
	signer := security.NewJWTSigner(cfg.JWTSecret, "aihub")

	// 6) service
	svc := account.NewService(userRepo, hasher, signer, sender, account.Config{
		AllowedDomains: cfg.AllowedDomains,
		CodeTTL:        cfg.VerificationCodeTTL,
		SessionTTL:     cfg.SessionTTL,
	})

	// 7) handlers + middleware
	secureCookies := cfg.Env != "dev"

	var fwLimiter *redis.FixedWindowLimiter
	if c, ok := redisCli.(*redis.Client); ok {
		fwLimiter = redis.NewFixedWindowLimiter(c)
	}

	mux := deps.NewRouter(router.Deps{
		Account:   http_handlers.NewAccountHandler(svc, secureCookies),
		Dashboard: http_handlers.NewDashboardHandler(),
		Chat:      http_handlers.NewChatHandler(cfg.BackendURL, nil),
		Health:    http_handlers.NewHealthHandler(sqlDB),

		SessionVerifier: signer,
		RateLimiter:     fwLimiter,
	})

	// 8) server
	srv := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      mux,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}

	cleanup := func() {
		runCleanup(cleanupFns)
	}

	return srv, cleanup, nil
}

/*
========================
 Default deps (prod)
========================
*/

func defaultDeps() Deps {
	return Deps{
		LoadConfig: config.Load,
		NewDB: func(addr string) (DBCloser, error) {
			return config.NewDB(addr)
		},
		NewRedis: func(addr string) RedisClient {
			return redis.New(addr, "", 0)
		},
		NewSender: func(cfg *config.Config) account.CodeSender {
			if cfg.SMTPHost == "" {
				return nil
			}
			return email.NewSMTPSender(email.SMTPConfig{
				Host:     cfg.SMTPHost,
				Port:     cfg.SMTPPort,
				Username: cfg.SMTPUser,
				Password: cfg.SMTPPass,
				From:     cfg.EmailFrom,
				Timeout:  15 * time.Second,
				Insecure: !cfg.IsProd(),
			}, logger.Logger)
		},
		NewRouter: router.New,
	}
}

/*
========================
 helpers
========================
*/

func runCleanup(fns []func()) {
	for i := len(fns) - 1; i >= 0; i-- {
		fns[i]()
	}
}
