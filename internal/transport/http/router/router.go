package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/mradvance/aihub/internal/infrastructure/redis"
	"github.com/mradvance/aihub/internal/metrics"
	http_handlers "github.com/mradvance/aihub/internal/transport/http/handlers"
	"github.com/mradvance/aihub/internal/transport/http/middleware"
	"github.com/mradvance/aihub/internal/transport/http/response"
)

// Deps carries everything the router mounts. The session middleware gates
// /api except the auth endpoints; rate limits apply per route on the
// abuse-prone auth flows.
type Deps struct {
	Account   *http_handlers.AccountHandler
	Dashboard *http_handlers.DashboardHandler
	Chat      *http_handlers.ChatHandler
	Health    *http_handlers.HealthHandler

	SessionVerifier middleware.SessionVerifier
	RateLimiter     *redis.FixedWindowLimiter
}

func New(d Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(middleware.Metrics)

	r.Get("/healthz", d.Health.Healthz)
	r.Get("/readyz", d.Health.Readyz)
	r.Method(http.MethodGet, "/metrics", metrics.MetricsHandler())

	r.Route("/api", func(api chi.Router) {
		api.Route("/auth", func(auth chi.Router) {
			auth.With(rl(d.RateLimiter, "register", 10, time.Minute)).
				Post("/register", d.Account.Register)
			auth.With(rl(d.RateLimiter, "login", 20, time.Minute)).
				Post("/login", d.Account.Login)
			auth.With(rl(d.RateLimiter, "verify", 30, time.Minute)).
				Post("/verify-email", d.Account.VerifyEmail)
			auth.With(rl(d.RateLimiter, "resend", 5, time.Minute)).
				Put("/verify-email", d.Account.ResendViaVerifyEmail)
			auth.With(rl(d.RateLimiter, "resend", 5, time.Minute)).
				Post("/resend-verification", d.Account.ResendVerification)
			auth.Post("/logout", d.Account.Logout)

			auth.Group(func(gated chi.Router) {
				gated.Use(middleware.Session(d.SessionVerifier, response.WriteError))
				gated.Get("/me", d.Account.Me)
			})
		})

		api.Group(func(gated chi.Router) {
			gated.Use(middleware.Session(d.SessionVerifier, response.WriteError))
			gated.Get("/dashboard", d.Dashboard.Dashboard)
			gated.Get("/agents", d.Dashboard.Agents)
			gated.Post("/chat", d.Chat.Chat)
			gated.Post("/risk-score", d.Chat.RiskScore)
		})
	})

	return r
}

func rl(limiter *redis.FixedWindowLimiter, route string, limit int, window time.Duration) func(http.Handler) http.Handler {
	return middleware.RateLimitFixedWindow(limiter, middleware.FixedWindowConfig{
		RouteKey: route,
		Limit:    limit,
		Window:   window,
	}, response.WriteError)
}
