package conversation

import (
	"github.com/verdalab/garden-backend/internal/entity"
)

func toConversationDTO(conv *entity.Conversation) entity.ConversationDTO {
	return entity.ConversationDTO{
		ID:        conv.ID,
		Status:    conv.Status,
		Messages:  conv.Messages,
		Summary:   conv.Summary,
		CreatedAt: conv.CreatedAt,
		UpdatedAt: conv.UpdatedAt,
	}
}
