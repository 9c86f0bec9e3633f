// Package http provides the inbound HTTP adapter including routing and server lifecycle.
package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/vilmarcabanero/nx-starter-sub001/internal/adapters/http/handlers"
)

// NewRouter creates an HTTP handler with all application routes registered.
// Middleware is applied globally in the order given.
func NewRouter(
	todoHandler *handlers.TodoHandler,
	healthHandler *handlers.HealthHandler,
	middlewares ...func(http.Handler) http.Handler,
) http.Handler {
	r := chi.NewRouter()

	for _, mw := range middlewares {
		r.Use(mw)
	}

	// Health endpoints (outside /api/v1 prefix).
	r.Get("/health/live", healthHandler.Liveness)
	r.Get("/health/ready", healthHandler.Readiness)

	// API v1 routes.
	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/todos", todoHandler.ListTodos)
		r.Post("/todos", todoHandler.CreateTodo)

		// Registered before /todos/{id} so "stats" is not parsed as an id.
		r.Get("/todos/stats", todoHandler.Stats)

		r.Get("/todos/{id}", todoHandler.GetTodo)
		r.Patch("/todos/{id}", todoHandler.UpdateTodo)
		r.Delete("/todos/{id}", todoHandler.DeleteTodo)

		// Completion transitions.
		r.Post("/todos/{id}/complete", todoHandler.CompleteTodo)
		r.Post("/todos/{id}/toggle", todoHandler.ToggleTodo)
	})

	return r
}
