// Package api assembles the HTTP router.
package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/dietlog/dietlog-go/internal/handler"
	"github.com/dietlog/dietlog-go/internal/middleware"
	"github.com/dietlog/dietlog-go/internal/telemetry"
)

// Deps are the collaborators the router wires together. Metrics may be nil,
// in which case /metrics is not served.
type Deps struct {
	Auth     *handler.AuthHandler
	Meals    *handler.MealHandler
	Sessions middleware.Authenticator
	Limiter  *middleware.IPRateLimiter
	Metrics  *telemetry.Metrics
}

// NewRouter builds the HTTP routes.
func NewRouter(d Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.Recoverer)
	r.Use(middleware.Logger)
	if d.Metrics != nil {
		r.Use(d.Metrics.Instrument)
		r.Method(http.MethodGet, "/metrics", d.Metrics.Handler())
	}

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	r.Group(func(r chi.Router) {
		r.Use(middleware.RateLimit(d.Limiter))
		r.Post("/users", d.Auth.HandleRegister)
		r.Post("/login", d.Auth.HandleLogin)
	})
	r.Post("/logout", d.Auth.HandleLogout)

	r.Route("/meals", func(r chi.Router) {
		r.Use(middleware.SessionAuth(d.Sessions))

		r.Get("/", d.Meals.HandleListMeals)
		r.Post("/", d.Meals.HandleCreateMeal)
		// Static segments win over {name}, so a meal called "metrics" is
		// only reachable through the unfiltered list.
		r.Get("/metrics", d.Meals.HandleMetrics)
		r.Post("/edit/{currentName}", d.Meals.HandleEditMeal)
		r.Get("/{name}", d.Meals.HandleListMeals)
		r.Delete("/{name}", d.Meals.HandleDeleteMeal)
	})

	return r
}
