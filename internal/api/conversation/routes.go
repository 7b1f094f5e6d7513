package conversation

import (
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers conversation routes
func RegisterRoutes(r chi.Router, h *Handler) {
	r.Post("/conversation/turn", h.RunTurn)

	r.Route("/garden-session", func(r chi.Router) {
		r.Post("/", h.StartConversation)
		r.Get("/{id}", h.GetConversation)
		r.Post("/{id}/message", h.SubmitMessage)
		r.Get("/{id}/summary", h.GetSummary)
		r.Post("/{id}/reset", h.ResetConversation)
		r.Delete("/{id}", h.DeleteConversation)
	})
}
