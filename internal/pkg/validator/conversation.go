package validator

import (
	"fmt"

	"github.com/verdalab/garden-backend/internal/config"
	"github.com/verdalab/garden-backend/internal/entity"
)

// Validator validates incoming conversation payloads
type Validator struct {
	cfg config.LimitsConfig
}

func NewConversationValidator(cfg config.LimitsConfig) *Validator {
	return &Validator{cfg: cfg}
}

// ValidateTurn bounds the transcript of a stateless turn. A missing or empty
// messages array is fine: it means a fresh conversation. Unknown roles are
// not rejected here; the analyzer only reads user and assistant messages.
func (v *Validator) ValidateTurn(req *entity.TurnRequest) error {
	if len(req.Messages) > v.cfg.MaxMessages {
		return fmt.Errorf("%w: messages count %d exceeds %d", entity.ErrInvalidParameter, len(req.Messages), v.cfg.MaxMessages)
	}
	for i, msg := range req.Messages {
		if len(msg.Content) > v.cfg.MaxContentLength {
			return fmt.Errorf("%w: message %d content exceeds %d characters", entity.ErrInvalidParameter, i, v.cfg.MaxContentLength)
		}
	}
	return nil
}

// ValidateSubmitMessage validates a user answer to a stored conversation.
func (v *Validator) ValidateSubmitMessage(req *entity.SubmitMessageRequest) error {
	if req.Content == "" {
		return fmt.Errorf("%w: content", entity.ErrMissingField)
	}
	if len(req.Content) > v.cfg.MaxContentLength {
		return fmt.Errorf("%w: content exceeds %d characters", entity.ErrInvalidParameter, v.cfg.MaxContentLength)
	}
	return nil
}
