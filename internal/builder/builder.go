package builder

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/verdalab/garden-backend/internal/api"
	conversationapi "github.com/verdalab/garden-backend/internal/api/conversation"
	"github.com/verdalab/garden-backend/internal/config"
	"github.com/verdalab/garden-backend/internal/pkg/logger"
	"github.com/verdalab/garden-backend/internal/pkg/validator"
	"github.com/verdalab/garden-backend/internal/repository"
	"github.com/verdalab/garden-backend/internal/telegram"
	"github.com/verdalab/garden-backend/internal/usecase/conversation"
)

func Build() (*App, error) {
	ctx := context.Background()

	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	log, err := logger.New(cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("setup logger: %w", err)
	}

	log.Info("Building application",
		zap.String("environment", cfg.Environment),
		zap.String("server_addr", cfg.ServerAddr),
		zap.String("store_driver", cfg.StoreDriver),
	)

	repo, db, err := setupStore(ctx, cfg, log)
	if err != nil {
		return nil, fmt.Errorf("setup conversation store: %w", err)
	}

	conversationUC := conversation.NewUsecase(repo, cfg.Questions, log)
	log.Info("Use cases initialized")

	conversationValidator := validator.NewConversationValidator(cfg.Limits)
	conversationHandler := conversationapi.NewHandler(conversationUC, conversationValidator)
	log.Info("API handlers initialized")

	router := api.SetupRouter(conversationHandler, log)
	log.Info("HTTP router configured")

	server := &http.Server{
		Addr:         cfg.ServerAddr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	log.Info("Application built successfully",
		zap.String("environment", cfg.Environment),
	)

	return &App{
		server: server,
		db:     db,
		logger: log,
	}, nil
}

// BuildTelegramBot creates and initializes the Telegram bot
func BuildTelegramBot() (telegram.Bot, *zap.Logger, error) {
	ctx := context.Background()

	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	log, err := logger.New(cfg.LogLevel)
	if err != nil {
		return nil, nil, fmt.Errorf("setup logger: %w", err)
	}

	log.Info("Building Telegram bot",
		zap.String("environment", cfg.Environment),
		zap.String("store_driver", cfg.StoreDriver),
	)

	repo, db, err := setupStore(ctx, cfg, log)
	if err != nil {
		return nil, nil, fmt.Errorf("setup conversation store: %w", err)
	}

	conversationUC := conversation.NewUsecase(repo, cfg.Questions, log)

	bot, err := telegram.NewBot(&cfg.TelegramCfg, conversationUC, cfg.ConversationTTL, log)
	if err != nil {
		if db != nil {
			db.Close()
		}
		return nil, nil, fmt.Errorf("initialize telegram bot: %w", err)
	}

	log.Info("Telegram bot built successfully",
		zap.String("environment", cfg.Environment),
	)

	return bot, log, nil
}

// setupStore creates the conversation repository for the configured driver.
// The returned pool is nil for the in-memory store.
func setupStore(ctx context.Context, cfg *config.Config, log *zap.Logger) (repository.ConversationRepository, *pgxpool.Pool, error) {
	if cfg.StoreDriver == config.StoreDriverMemory {
		log.Info("Using in-memory conversation store",
			zap.Duration("ttl", cfg.ConversationTTL),
		)
		return repository.NewConversationMemory(cfg.ConversationTTL), nil, nil
	}

	db, err := setupDatabase(ctx, cfg, log)
	if err != nil {
		return nil, nil, fmt.Errorf("setup database: %w", err)
	}

	log.Info("Running database migrations")
	if err := repository.RunMigrations(cfg.DatabaseURL); err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("run migrations: %w", err)
	}
	log.Info("Database migrations completed successfully")

	return repository.NewConversationPostgres(db), db, nil
}
