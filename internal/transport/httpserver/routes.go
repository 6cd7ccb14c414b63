package httpserver

import (
	"net/http"
	"strings"
	"time"

	"fitness-app-go/internal/config"
	"fitness-app-go/internal/metrics"
	"fitness-app-go/internal/transport/httpserver/handler"
	authmw "fitness-app-go/internal/transport/httpserver/middleware"
	"fitness-app-go/pkg/logger"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type RouterDeps struct {
	Handlers *handler.Handlers
	Auth     *authmw.BearerAuth
	Metrics  *metrics.Manager
	Gatherer prometheus.Gatherer
	// LoginLimiter is optional; login is not throttled without it.
	LoginLimiter authmw.RequestRateLimiter
}

func NewRouter(cfg config.Config, deps RouterDeps, log logger.Logger) http.Handler {
	handlers := deps.Handlers

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Logger)
	r.Use(authmw.PanicRecovery(deps.Metrics, log))
	r.Use(authmw.RequestMetrics(deps.Metrics))
	r.Use(chimw.Timeout(30 * time.Second))
	r.Use(authmw.NewCORS(cfg.CORSOrigins))

	if deps.Gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(deps.Gatherer, promhttp.HandlerOpts{}))
	}

	prefix := "/" + strings.Trim(cfg.Uploads.PublicPrefix, "/")
	files := http.StripPrefix(prefix, http.FileServer(http.Dir(cfg.Uploads.Dir)))
	r.Get(prefix+"/avatars/*", files.ServeHTTP)

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", handlers.Health)

		r.Group(func(r chi.Router) {
			if deps.LoginLimiter != nil && cfg.Auth.LoginRatePerMin > 0 {
				r.Use(authmw.RateLimit(deps.LoginLimiter, "login", cfg.Auth.LoginRatePerMin, log))
			}
			r.Post("/auth/register", handlers.Register)
			r.Post("/auth/login", handlers.Login)
		})

		r.Group(func(r chi.Router) {
			r.Use(deps.Auth.Middleware)

			r.Post("/auth/logout", handlers.Logout)

			r.Get("/profile", handlers.GetProfile)
			r.Put("/profile", handlers.UpdateProfile)
			r.Put("/profile/password", handlers.ChangePassword)

			r.Get("/users/{user_id}/workouts", handlers.ListWeek)
			r.Put("/users/{user_id}/workouts/{day}", handlers.UpsertDay)
			r.Post("/users/{user_id}/workouts/{workout_id}/complete", handlers.CompleteWorkout)
			r.Get("/users/{user_id}/completions", handlers.ListCompletions)
			r.Get("/users/{user_id}/progress", handlers.Progress)
		})
	})

	return r
}
