package middleware

import (
	"runtime/debug"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

// RecoveryMiddleware recovers from panics in update handlers
type RecoveryMiddleware struct {
	logger *zap.Logger
	api    *tgbotapi.BotAPI
}

func NewRecoveryMiddleware(logger *zap.Logger, api *tgbotapi.BotAPI) *RecoveryMiddleware {
	return &RecoveryMiddleware{logger: logger, api: api}
}

// Handle recovers from panics and notifies the user
func (m *RecoveryMiddleware) Handle(update tgbotapi.Update, next func(tgbotapi.Update)) {
	defer func() {
		if r := recover(); r != nil {
			m.logger.Error("panic recovered in telegram handler",
				zap.Any("panic", r),
				zap.String("stack", string(debug.Stack())),
				zap.Int("update_id", update.UpdateID),
			)

			var chatID int64
			if update.Message != nil {
				chatID = update.Message.Chat.ID
			} else if update.CallbackQuery != nil {
				chatID = update.CallbackQuery.Message.Chat.ID
			}

			if chatID != 0 {
				msg := tgbotapi.NewMessage(chatID, "❌ Something went wrong. Please try again or use /start.")
				if _, err := m.api.Send(msg); err != nil {
					m.logger.Error("failed to send error message",
						zap.Error(err),
						zap.Int64("chat_id", chatID),
					)
				}
			}
		}
	}()

	next(update)
}
