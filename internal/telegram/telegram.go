package telegram

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/verdalab/garden-backend/internal/config"
	"github.com/verdalab/garden-backend/internal/telegram/bot"
	"github.com/verdalab/garden-backend/internal/telegram/state"
)

// Bot is the main telegram bot interface
type Bot interface {
	Start(ctx context.Context) error
	Stop() error
}

// NewBot initializes the telegram bot with all dependencies
func NewBot(
	cfg *config.TelegramConfig,
	uc bot.ConversationUsecase,
	sessionTTL time.Duration,
	logger *zap.Logger,
) (Bot, error) {
	sessions := state.NewManager(sessionTTL)

	b, err := bot.New(cfg, sessions, uc, logger)
	if err != nil {
		return nil, fmt.Errorf("create bot: %w", err)
	}

	logger.Info("telegram bot initialized successfully")
	return b, nil
}
