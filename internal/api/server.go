package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	conversationapi "github.com/verdalab/garden-backend/internal/api/conversation"
	"github.com/verdalab/garden-backend/internal/api/docs"
	"github.com/verdalab/garden-backend/internal/api/middleware"
)

// SetupRouter creates and configures the HTTP router
func SetupRouter(conversationHandler *conversationapi.Handler, logger *zap.Logger) http.Handler {
	r := chi.NewRouter()

	// Middleware stack
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RequestID)
	r.Use(middleware.Logger(logger))
	r.Use(chimiddleware.Timeout(30 * time.Second))

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"healthy"}`))
	})

	// Swagger documentation endpoints
	docs.RegisterRoutes(r)

	// Register routes
	conversationapi.RegisterRoutes(r, conversationHandler)

	return r
}
