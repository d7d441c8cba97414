/*
server.go - HTTP router and middleware configuration

PURPOSE:
  Configures the chi router, middleware stack, and route definitions. This
  is the wiring layer connecting URLs to handlers.

MIDDLEWARE STACK:
  1. Logger:     Request logging
  2. Recoverer:  Panic recovery (500 instead of crash)
  3. RequestID:  Unique ID per request for tracing
  4. CORS:       Cross-origin requests for the frontend

ROUTE GROUPS:
  /api/auth/*       Register, login, logout, me
  /api/schedule/*   Selection, week, year, summary (session required)
  /api/payroll/*    Payroll summary and CSV download (session required)
  /api/employee     Employee reference data (session required)

SEE ALSO:
  - handlers.go: Handler implementations
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
		// Auth routes (public)
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", h.Register)
			r.Post("/login", h.Login)
			r.Post("/logout", h.Logout)
			r.With(h.RequireSession).Get("/me", h.Me)
		})

		// Schedule routes
		r.Route("/schedule", func(r chi.Router) {
			r.Use(h.RequireSession)
			r.Get("/selection", h.GetSelection)
			r.Put("/selection", h.UpdateSelection)
			r.Get("/week", h.GetWeek)
			r.Get("/year", h.GetYear)
			r.Get("/summary", h.GetWeeklySummary)
		})

		// Payroll routes
		r.Route("/payroll", func(r chi.Router) {
			r.Use(h.RequireSession)
			r.Get("/summary", h.GetPayrollSummary)
			r.Get("/report.csv", h.DownloadPayrollCSV)
		})

		// Employee reference data
		r.With(h.RequireSession).Get("/employee", h.GetEmployee)
	})

	return r
}
