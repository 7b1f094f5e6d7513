package conversation

import (
	"context"

	"github.com/verdalab/garden-backend/internal/entity"
)

// ConversationUsecase is the business logic consumed by the HTTP handlers.
type ConversationUsecase interface {
	RunTurn(ctx context.Context, messages []entity.Message) (*entity.TurnResponse, error)
	StartConversation(ctx context.Context) (*entity.Conversation, error)
	SubmitMessage(ctx context.Context, id, content string) (*entity.TurnResponse, error)
	GetConversation(ctx context.Context, id string) (*entity.Conversation, error)
	GetSummary(ctx context.Context, id string) (*entity.GardenSummary, error)
	ResetConversation(ctx context.Context, id string) (*entity.Conversation, error)
	DeleteConversation(ctx context.Context, id string) error
}
