package main

import (
	"database/sql"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/setrep/workout-api/internal/auth"
	"github.com/setrep/workout-api/internal/config"
	"github.com/setrep/workout-api/internal/handlers"
	"github.com/setrep/workout-api/internal/middleware"
	"github.com/setrep/workout-api/internal/repo"
)

// newRouter wires repositories, handlers and the middleware chain.
// Everything stateful (DB handle, signing secret) is passed in explicitly;
// there are no package-level singletons.
func newRouter(db *sql.DB, cfg config.Config) http.Handler {
	userRepo := repo.NewUserRepo(db)
	workoutRepo := repo.NewWorkoutRepo(db)
	tokens := auth.NewTokenIssuer([]byte(cfg.JWTSecret), cfg.TokenTTL())

	authHandler := &handlers.AuthHandler{Users: userRepo, Tokens: tokens}
	workoutHandler := &handlers.WorkoutHandler{Repo: workoutRepo}

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(middleware.SecurityHeaders)
	r.Use(middleware.CORS(cfg.CORSAllowedOrigins))
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestLog)
	r.Use(middleware.Prometheus)
	r.Use(middleware.MaxBytes(middleware.DefaultMaxBodyBytes))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})
	r.Get("/ready", func(w http.ResponseWriter, r *http.Request) {
		if err := db.PingContext(r.Context()); err != nil {
			http.Error(w, "db unavailable", http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte("ready"))
	})
	r.Handle("/metrics", promhttp.Handler())

	// Login/register are rate limited per IP to slow credential stuffing.
	authLimiter := middleware.NewAuthRateLimiter(cfg.AuthRatePerMin, cfg.AuthRateBurst)
	r.Route("/api/auth", func(r chi.Router) {
		r.Use(authLimiter.Middleware)
		r.Post("/register", authHandler.Register)
		r.Post("/login", authHandler.Login)
	})

	// All workout routes require a valid bearer token.
	r.Route("/api/workouts", func(r chi.Router) {
		r.Use(middleware.RequireAuth(tokens))
		r.Get("/", workoutHandler.List)
		r.Post("/", workoutHandler.Create)
		r.Get("/{id}", workoutHandler.Get)
		r.Put("/{id}", workoutHandler.Update)
		r.Delete("/{id}", workoutHandler.Delete)
	})

	return r
}
