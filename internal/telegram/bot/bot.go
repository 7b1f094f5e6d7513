package bot

import (
	"context"
	"fmt"
	"sync"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"

	"github.com/verdalab/garden-backend/internal/config"
	"github.com/verdalab/garden-backend/internal/entity"
	"github.com/verdalab/garden-backend/internal/pkg/formatter"
	"github.com/verdalab/garden-backend/internal/pkg/garden"
	"github.com/verdalab/garden-backend/internal/telegram/keyboard"
	"github.com/verdalab/garden-backend/internal/telegram/middleware"
	"github.com/verdalab/garden-backend/internal/telegram/render"
	"github.com/verdalab/garden-backend/internal/telegram/state"
)

// ConversationUsecase is the questionnaire logic consumed by the bot.
type ConversationUsecase interface {
	StartConversation(ctx context.Context) (*entity.Conversation, error)
	SubmitMessage(ctx context.Context, id, content string) (*entity.TurnResponse, error)
	GetSummary(ctx context.Context, id string) (*entity.GardenSummary, error)
	DeleteConversation(ctx context.Context, id string) error
}

// Bot runs the garden questionnaire over Telegram long polling.
type Bot struct {
	api         *tgbotapi.BotAPI
	cfg         *config.TelegramConfig
	sessions    *state.Manager
	uc          ConversationUsecase
	keyboard    *keyboard.Builder
	logger      *zap.Logger
	loggingMW   *middleware.LoggingMiddleware
	recoveryMW  *middleware.RecoveryMiddleware
	rateLimitMW *middleware.RateLimiterMiddleware
	updatesChan tgbotapi.UpdatesChannel
	stopChan    chan struct{}
	wg          sync.WaitGroup
}

// New creates a new Telegram bot
func New(
	cfg *config.TelegramConfig,
	sessions *state.Manager,
	uc ConversationUsecase,
	logger *zap.Logger,
) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(cfg.BotToken)
	if err != nil {
		return nil, fmt.Errorf("create bot API: %w", err)
	}
	api.Debug = false

	logger.Info("telegram bot authorized",
		zap.String("username", api.Self.UserName),
		zap.Int64("id", api.Self.ID),
	)

	bot := &Bot{
		api:      api,
		cfg:      cfg,
		sessions: sessions,
		uc:       uc,
		keyboard: keyboard.NewBuilder(),
		logger:   logger,
		stopChan: make(chan struct{}),
	}

	bot.loggingMW = middleware.NewLoggingMiddleware(logger)
	bot.recoveryMW = middleware.NewRecoveryMiddleware(logger, api)
	bot.rateLimitMW = middleware.NewRateLimiterMiddleware(
		cfg.RateLimitPerMinute,
		cfg.RateLimitBurst,
		logger,
		api,
	)

	return bot, nil
}

// Start begins polling for updates.
func (b *Bot) Start(ctx context.Context) error {
	b.logger.Info("starting telegram bot")

	u := tgbotapi.NewUpdate(0)
	u.Timeout = b.cfg.UpdateTimeout
	b.updatesChan = b.api.GetUpdatesChan(u)

	ctx = ctxzap.ToContext(ctx, b.logger)
	go b.processUpdates(ctx)

	b.logger.Info("telegram bot started successfully")
	return nil
}

// Stop stops the bot gracefully with timeout.
func (b *Bot) Stop() error {
	b.logger.Info("stopping telegram bot")

	close(b.stopChan)
	b.api.StopReceivingUpdates()

	done := make(chan struct{})
	go func() {
		b.wg.Wait()
		close(done)
	}()

	shutdownTimeout := time.Duration(b.cfg.ShutdownTimeout) * time.Second
	select {
	case <-done:
		b.logger.Info("all handlers completed gracefully")
	case <-time.After(shutdownTimeout):
		b.logger.Warn("shutdown timeout exceeded, some handlers may not have completed",
			zap.Duration("timeout", shutdownTimeout),
		)
		return fmt.Errorf("shutdown timeout exceeded")
	}

	b.logger.Info("telegram bot stopped successfully")
	return nil
}

func (b *Bot) processUpdates(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			ctxzap.Info(ctx, "context cancelled, stopping update processing")
			return
		case <-b.stopChan:
			ctxzap.Info(ctx, "stop signal received, stopping update processing")
			return
		case update := <-b.updatesChan:
			b.wg.Add(1)
			go func(u tgbotapi.Update) {
				defer b.wg.Done()
				b.handleUpdateWithMiddleware(u)
			}(update)
		}
	}
}

func (b *Bot) handleUpdateWithMiddleware(update tgbotapi.Update) {
	b.rateLimitMW.Handle(update, func(u tgbotapi.Update) {
		b.loggingMW.Handle(u, func(u2 tgbotapi.Update) {
			b.recoveryMW.Handle(u2, func(u3 tgbotapi.Update) {
				b.handleUpdate(u3)
			})
		})
	})
}

func (b *Bot) handleUpdate(update tgbotapi.Update) {
	ctx := ctxzap.ToContext(context.Background(), b.logger)

	if update.CallbackQuery != nil {
		b.handleCallbackQuery(ctx, update.CallbackQuery)
		return
	}
	if update.Message != nil {
		b.handleMessage(ctx, update.Message)
	}
}

func (b *Bot) handleMessage(ctx context.Context, message *tgbotapi.Message) {
	if message.IsCommand() {
		b.handleCommand(ctx, message)
		return
	}

	chatID := message.Chat.ID
	conversationID, ok := b.sessions.ConversationID(chatID)
	if !ok {
		b.sendMessage(chatID, render.MsgNoActiveSession, nil)
		return
	}

	turn, err := b.uc.SubmitMessage(ctx, conversationID, message.Text)
	if err != nil {
		ctxzap.Error(ctx, "submit message failed",
			zap.Error(err),
			zap.String("conversation_id", conversationID),
			zap.Int64("chat_id", chatID),
		)
		b.sendMessage(chatID, render.ErrGeneric, nil)
		return
	}

	if turn.Done {
		b.sendSummaryCard(ctx, chatID, turn.Summary)
		return
	}

	b.sendMessage(chatID, render.Question(turn.NextQuestion), b.keyboard.QuestionKeyboard(turn.NextQuestion.Key))
}

func (b *Bot) handleCommand(ctx context.Context, message *tgbotapi.Message) {
	command := message.Command()
	chatID := message.Chat.ID

	ctxzap.Info(ctx, "command received",
		zap.String("command", command),
		zap.Int64("chat_id", chatID),
	)

	switch command {
	case "start":
		b.sendMessage(chatID, render.MsgWelcome, b.keyboard.StartKeyboard())
	case "help":
		b.sendMarkdown(chatID, render.MsgHelp)
	case "summary":
		b.handleSummaryCommand(ctx, chatID)
	case "cancel":
		b.handleCancelCommand(ctx, chatID)
	default:
		b.sendMessage(chatID, "❌ Unknown command. Use /start", nil)
	}
}

func (b *Bot) handleSummaryCommand(ctx context.Context, chatID int64) {
	conversationID, ok := b.sessions.ConversationID(chatID)
	if !ok {
		b.sendMessage(chatID, render.MsgNoActiveSession, nil)
		return
	}

	summary, err := b.uc.GetSummary(ctx, conversationID)
	if err != nil {
		b.sendMessage(chatID, "Your questionnaire isn't finished yet. Keep answering, or say \"that's all\".", nil)
		return
	}

	b.sendSummaryCard(ctx, chatID, summary)
}

func (b *Bot) handleCancelCommand(ctx context.Context, chatID int64) {
	conversationID, ok := b.sessions.ConversationID(chatID)
	if !ok {
		b.sendMessage(chatID, render.MsgNoActiveSession, nil)
		return
	}

	if err := b.uc.DeleteConversation(ctx, conversationID); err != nil {
		ctxzap.Error(ctx, "delete conversation failed",
			zap.Error(err),
			zap.String("conversation_id", conversationID),
		)
	}
	b.sessions.Unbind(chatID)
	b.sendMessage(chatID, render.MsgCancelled, tgbotapi.NewRemoveKeyboard(false))
}

func (b *Bot) handleCallbackQuery(ctx context.Context, query *tgbotapi.CallbackQuery) {
	data, err := keyboard.ParseCallback(query.Data)
	if err != nil {
		ctxzap.Error(ctx, "invalid callback data",
			zap.Error(err),
			zap.String("data", query.Data),
		)
		b.answerCallback(query.ID, "❌ Invalid request")
		return
	}

	chatID := query.Message.Chat.ID

	switch {
	case data.Action == "action" && data.Value == "start":
		b.answerCallback(query.ID, "")
		b.startQuestionnaire(ctx, chatID)
	case data.Action == "export":
		b.answerCallback(query.ID, "⏳ Preparing your file...")
		b.exportSummary(ctx, chatID, entity.ResultFormat(data.Value))
	default:
		b.answerCallback(query.ID, "❌ Unknown action")
	}
}

func (b *Bot) startQuestionnaire(ctx context.Context, chatID int64) {
	conv, err := b.uc.StartConversation(ctx)
	if err != nil {
		ctxzap.Error(ctx, "start conversation failed",
			zap.Error(err),
			zap.Int64("chat_id", chatID),
		)
		b.sendMessage(chatID, render.ErrGeneric, nil)
		return
	}

	b.sessions.Bind(chatID, conv.ID)

	first := conv.Messages[0].Content
	key, _ := garden.ParseQuestionKey(first)
	b.sendMessage(chatID, garden.UntagQuestion(first), b.keyboard.QuestionKeyboard(key))
}

func (b *Bot) sendSummaryCard(ctx context.Context, chatID int64, summary *entity.GardenSummary) {
	msg := tgbotapi.NewMessage(chatID, render.Summary(summary))
	msg.ParseMode = tgbotapi.ModeMarkdown
	msg.ReplyMarkup = b.keyboard.ExportKeyboard()
	if _, err := b.api.Send(msg); err != nil {
		ctxzap.Error(ctx, "failed to send summary card",
			zap.Error(err),
			zap.Int64("chat_id", chatID),
		)
	}
}

func (b *Bot) exportSummary(ctx context.Context, chatID int64, format entity.ResultFormat) {
	conversationID, ok := b.sessions.ConversationID(chatID)
	if !ok {
		b.sendMessage(chatID, render.MsgNoActiveSession, nil)
		return
	}

	summary, err := b.uc.GetSummary(ctx, conversationID)
	if err != nil {
		b.sendMessage(chatID, "The concept isn't ready yet.", nil)
		return
	}

	fmtr, err := formatter.NewFactory().Create(format)
	if err != nil {
		b.sendMessage(chatID, "❌ Unsupported export format.", nil)
		return
	}

	data, err := fmtr.Format(summary)
	if err != nil {
		ctxzap.Error(ctx, "format summary failed",
			zap.Error(err),
			zap.String("format", string(format)),
		)
		b.sendMessage(chatID, render.ErrGeneric, nil)
		return
	}

	if err := b.sendDocument(chatID, "garden-concept"+fmtr.FileExtension(), data); err != nil {
		ctxzap.Error(ctx, "send document failed",
			zap.Error(err),
			zap.Int64("chat_id", chatID),
		)
		b.sendMessage(chatID, render.ErrGeneric, nil)
	}
}

func (b *Bot) sendMessage(chatID int64, text string, replyMarkup interface{}) {
	msg := tgbotapi.NewMessage(chatID, text)
	if replyMarkup != nil {
		msg.ReplyMarkup = replyMarkup
	}
	if _, err := b.api.Send(msg); err != nil {
		b.logger.Error("failed to send message",
			zap.Error(err),
			zap.Int64("chat_id", chatID),
		)
	}
}

func (b *Bot) sendMarkdown(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeMarkdown
	if _, err := b.api.Send(msg); err != nil {
		b.logger.Error("failed to send message",
			zap.Error(err),
			zap.Int64("chat_id", chatID),
		)
	}
}

func (b *Bot) sendDocument(chatID int64, filename string, data []byte) error {
	doc := tgbotapi.FileBytes{Name: filename, Bytes: data}
	msg := tgbotapi.NewDocument(chatID, doc)
	if _, err := b.api.Send(msg); err != nil {
		return fmt.Errorf("send document: %w", err)
	}
	return nil
}

func (b *Bot) answerCallback(callbackID, text string) {
	callback := tgbotapi.NewCallback(callbackID, text)
	if _, err := b.api.Request(callback); err != nil {
		b.logger.Error("failed to answer callback",
			zap.Error(err),
			zap.String("callback_id", callbackID),
		)
	}
}
