/*
server.go - HTTP router and middleware configuration

PURPOSE:
  Configures the HTTP router (chi), middleware stack, and route
  definitions. This is the wiring layer that connects URLs to handlers.

MIDDLEWARE STACK:
  1. Logger:     Request logging
  2. Recoverer:  Panic recovery (500 instead of crash)
  3. RequestID:  Unique ID per request for tracing
  4. CORS:       Cross-origin requests for the frontend

ROUTE GROUPS:
  /api/register, /api/login   Public auth endpoints
  /api/people/*               Roster members (bearer token required)
  /api/schedules/*            Schedule generation/edit (bearer token)
  /api/holidays/*             Holiday lookup (bearer token)

SEE ALSO:
  - handlers.go: Handler implementations
  - auth.go: Token middleware
  - cmd/server/main.go: Server startup
*/
package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// NewRouter creates a new router with all routes configured.
func NewRouter(h *Handler) *chi.Mux {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:5173", "http://localhost:8080"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))

	r.Route("/api", func(r chi.Router) {
		// Public auth routes
		r.Post("/register", h.Register)
		r.Post("/login", h.Login)

		// Everything else is scoped to the authenticated account
		r.Group(func(r chi.Router) {
			r.Use(Authenticator(h.JWTSecret))

			r.Route("/people", func(r chi.Router) {
				r.Get("/", h.ListPeople)
				r.Post("/", h.AddPerson)
				r.Delete("/{id}", h.RemovePerson)
			})

			r.Route("/schedules", func(r chi.Router) {
				r.Get("/", h.GetSchedule)
				r.Post("/generate", h.GenerateSchedule)
				r.Put("/{year}/{month}/days/{day}", h.EditDay)
			})

			r.Get("/holidays/{year}", h.ListHolidays)
		})
	})

	return r
}
