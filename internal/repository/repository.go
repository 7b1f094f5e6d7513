package repository

import (
	"context"

	"github.com/verdalab/garden-backend/internal/entity"
)

// ConversationRepository defines the interface for conversation persistence.
type ConversationRepository interface {
	Create(ctx context.Context, conv entity.Conversation) (*entity.Conversation, error)
	Get(ctx context.Context, id string) (*entity.Conversation, error)
	AppendMessage(ctx context.Context, id string, msg entity.Message) error
	Complete(ctx context.Context, id string, summary entity.GardenSummary) (*entity.Conversation, error)
	Reset(ctx context.Context, id string) (*entity.Conversation, error)
	Delete(ctx context.Context, id string) error
}
