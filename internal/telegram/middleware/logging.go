package middleware

import (
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

// LoggingMiddleware logs all incoming updates
type LoggingMiddleware struct {
	logger *zap.Logger
}

func NewLoggingMiddleware(logger *zap.Logger) *LoggingMiddleware {
	return &LoggingMiddleware{logger: logger}
}

// Handle logs the update before and after processing
func (m *LoggingMiddleware) Handle(update tgbotapi.Update, next func(tgbotapi.Update)) {
	start := time.Now()

	var userID, chatID int64
	var updateType string

	switch {
	case update.Message != nil:
		userID = update.Message.From.ID
		chatID = update.Message.Chat.ID
		if update.Message.IsCommand() {
			updateType = "command"
		} else {
			updateType = "text"
		}
	case update.CallbackQuery != nil:
		userID = update.CallbackQuery.From.ID
		chatID = update.CallbackQuery.Message.Chat.ID
		updateType = "callback"
	}

	m.logger.Info("telegram update received",
		zap.Int64("user_id", userID),
		zap.Int64("chat_id", chatID),
		zap.String("type", updateType),
		zap.Int("update_id", update.UpdateID),
	)

	next(update)

	m.logger.Info("telegram update processed",
		zap.Int64("user_id", userID),
		zap.Int64("chat_id", chatID),
		zap.Duration("duration", time.Since(start)),
	)
}
