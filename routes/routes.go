package routes

import (
	"net/http"

	"github.com/gardenxas/llm-relay/app"
	"github.com/gardenxas/llm-relay/middleware"
	"github.com/gardenxas/llm-relay/utils"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// SetupRoutes configures the router and middleware.
//
// There is deliberately no per-request timeout middleware: callers queue on
// the relay's serialization lock and may legitimately wait several upstream
// round-trips before their own call starts. Outbound calls are bounded by the
// per-provider client timeouts instead.
func SetupRoutes(deps *app.Dependencies) http.Handler {
	r := chi.NewRouter()

	// Core middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestLogger(deps.Logger))
	r.Use(chimiddleware.Recoverer)

	// CORS middleware
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: deps.Config.CORS.AllowedOrigins,
		AllowedMethods: []string{"POST", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type", "Authorization"},
		MaxAge:         300,
	}))

	r.Get("/healthz", deps.HealthHandler.HandleHealth)
	r.Post("/api/proxy", deps.RelayHandler.HandleRelay)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		_ = utils.WriteNotFound(w, "Not found")
	})

	return r
}
