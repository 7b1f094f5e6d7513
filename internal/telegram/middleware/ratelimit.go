package middleware

import (
	"sync"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

// userLimit tracks rate limit state for a single user
type userLimit struct {
	tokens        float64
	lastRefill    time.Time
	warningsSent  int
	lastWarningAt time.Time
	mu            sync.Mutex
}

// RateLimiterMiddleware implements token bucket rate limiting per user
type RateLimiterMiddleware struct {
	limits          map[int64]*userLimit
	mu              sync.RWMutex
	maxTokens       float64
	refillRate      float64 // tokens per second
	warningInterval time.Duration
	logger          *zap.Logger
	api             *tgbotapi.BotAPI
}

func NewRateLimiterMiddleware(
	requestsPerMinute int,
	burstSize int,
	logger *zap.Logger,
	api *tgbotapi.BotAPI,
) *RateLimiterMiddleware {
	rl := &RateLimiterMiddleware{
		limits:          make(map[int64]*userLimit),
		maxTokens:       float64(burstSize),
		refillRate:      float64(requestsPerMinute) / 60.0,
		warningInterval: 30 * time.Second,
		logger:          logger,
		api:             api,
	}

	go rl.cleanupInactiveUsers()

	return rl
}

// Handle processes the update through rate limiting
func (rl *RateLimiterMiddleware) Handle(update tgbotapi.Update, next func(tgbotapi.Update)) {
	var userID, chatID int64

	if update.Message != nil {
		userID = update.Message.From.ID
		chatID = update.Message.Chat.ID
	} else if update.CallbackQuery != nil {
		userID = update.CallbackQuery.From.ID
		chatID = update.CallbackQuery.Message.Chat.ID
	} else {
		next(update)
		return
	}

	if !rl.allowRequest(userID, chatID) {
		rl.logger.Warn("rate limit exceeded",
			zap.Int64("user_id", userID),
			zap.Int64("chat_id", chatID),
		)
		return
	}

	next(update)
}

func (rl *RateLimiterMiddleware) allowRequest(userID, chatID int64) bool {
	rl.mu.Lock()
	limit, exists := rl.limits[userID]
	if !exists {
		limit = &userLimit{
			tokens:     rl.maxTokens,
			lastRefill: time.Now(),
		}
		rl.limits[userID] = limit
	}
	rl.mu.Unlock()

	limit.mu.Lock()
	defer limit.mu.Unlock()

	now := time.Now()

	elapsed := now.Sub(limit.lastRefill).Seconds()
	limit.tokens += elapsed * rl.refillRate
	if limit.tokens > rl.maxTokens {
		limit.tokens = rl.maxTokens
	}
	limit.lastRefill = now

	if limit.tokens >= 1.0 {
		limit.tokens -= 1.0
		limit.warningsSent = 0
		return true
	}

	if now.Sub(limit.lastWarningAt) > rl.warningInterval {
		limit.warningsSent++
		limit.lastWarningAt = now
		rl.sendRateLimitWarning(chatID, limit.warningsSent)
	}

	return false
}

func (rl *RateLimiterMiddleware) sendRateLimitWarning(chatID int64, warningCount int) {
	var text string
	switch {
	case warningCount == 1:
		text = "⚠️ Too many messages. Please wait a moment."
	case warningCount == 2:
		text = "⚠️ Rate limit exceeded. Please wait ~30 seconds before trying again."
	default:
		text = "🛑 You're sending messages too often. Please wait a minute."
	}

	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := rl.api.Send(msg); err != nil {
		rl.logger.Error("failed to send rate limit warning",
			zap.Error(err),
			zap.Int64("chat_id", chatID),
		)
	}
}

// cleanupInactiveUsers removes users that haven't sent requests in 1 hour
func (rl *RateLimiterMiddleware) cleanupInactiveUsers() {
	ticker := time.NewTicker(10 * time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		rl.mu.Lock()
		now := time.Now()
		for userID, limit := range rl.limits {
			limit.mu.Lock()
			if now.Sub(limit.lastRefill) > time.Hour {
				delete(rl.limits, userID)
			}
			limit.mu.Unlock()
		}
		rl.mu.Unlock()
	}
}
