package config

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/verdalab/garden-backend/internal/entity"
	pkgRetry "github.com/verdalab/garden-backend/internal/pkg/retry"
)

// Store drivers
const (
	StoreDriverMemory   = "memory"
	StoreDriverPostgres = "postgres"
)

// Config holds the application configuration
type Config struct {
	// Server configuration
	ServerAddr string `env:"SERVER_ADDR" envDefault:":8080"`

	// Conversation store configuration
	StoreDriver     string        `env:"STORE_DRIVER" envDefault:"memory"`
	ConversationTTL time.Duration `env:"CONVERSATION_TTL" envDefault:"24h"`

	// Database configuration (postgres driver only)
	DatabaseURL         string               `env:"DATABASE_URL"`
	DBMaxConns          int                  `env:"DB_MAX_CONNS" envDefault:"25"`
	DBMinConns          int                  `env:"DB_MIN_CONNS" envDefault:"5"`
	DBMaxConnLifetime   time.Duration        `env:"DB_MAX_CONN_LIFETIME" envDefault:"1h"`
	DBMaxConnIdleTime   time.Duration        `env:"DB_MAX_CONN_IDLE_TIME" envDefault:"30m"`
	DBHealthCheckPeriod time.Duration        `env:"DB_HEALTH_CHECK_PERIOD" envDefault:"1m"`
	DBConnectRetry      pkgRetry.RetryConfig `envPrefix:"DB_CONNECT_RETRY_"`

	// Logging configuration
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	// Request limits
	Limits LimitsConfig `envPrefix:"LIMIT_"`

	// Question texts configuration (loaded from JSON file when present)
	QuestionsFile string `env:"QUESTIONS_FILE" envDefault:"internal/config/questions.json"`
	Questions     map[entity.QuestionKey]string

	// Telegram bot configuration (garden-bot binary only)
	TelegramCfg TelegramConfig `envPrefix:"TELEGRAM_"`

	// Environment (set from flag, not from env var)
	Environment string
}

// TelegramConfig holds Telegram bot configuration
type TelegramConfig struct {
	BotToken           string `env:"BOT_TOKEN"`
	UpdateTimeout      int    `env:"UPDATE_TIMEOUT" envDefault:"30"`
	RateLimitPerMinute int    `env:"RATE_LIMIT_PER_MINUTE" envDefault:"20"`
	RateLimitBurst     int    `env:"RATE_LIMIT_BURST" envDefault:"5"`
	ShutdownTimeout    int    `env:"SHUTDOWN_TIMEOUT" envDefault:"10"` // seconds
}

// LimitsConfig bounds incoming transcript sizes
type LimitsConfig struct {
	MaxMessages      int `env:"MAX_MESSAGES" envDefault:"200"`
	MaxContentLength int `env:"MAX_CONTENT_LENGTH" envDefault:"4000"`
}

// questionTexts is the structure of questions.json: topic key to question text.
type questionTexts struct {
	Questions map[string]string `json:"questions"`
}

func LoadConfig() (*Config, error) {
	envFlag := flag.String("env", "local", "Environment to run (local, prod, or custom)")
	flag.Parse()

	envFile := getEnvFile(*envFlag)
	// Try to load env file, but don't fail if it's missing.
	// In containerized/prod environments variables are usually set externally.
	if err := godotenv.Load(envFile); err != nil {
		fmt.Printf("Warning: could not load %s file (this is ok if env vars are set externally): %v\n", envFile, err)
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}

	cfg.Environment = *envFlag

	if err := validateConfig(cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	if err := loadQuestionTexts(cfg); err != nil {
		return nil, fmt.Errorf("load question texts: %w", err)
	}

	return cfg, nil
}

func validateConfig(cfg *Config) error {
	switch cfg.StoreDriver {
	case StoreDriverMemory:
	case StoreDriverPostgres:
		if cfg.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL is required when STORE_DRIVER=postgres")
		}
	default:
		return fmt.Errorf("STORE_DRIVER must be %q or %q, got %q", StoreDriverMemory, StoreDriverPostgres, cfg.StoreDriver)
	}

	if cfg.DBMaxConns < 1 || cfg.DBMaxConns > 200 {
		return fmt.Errorf("DB_MAX_CONNS must be between 1 and 200, got %d", cfg.DBMaxConns)
	}
	if cfg.DBMinConns < 0 || cfg.DBMinConns > cfg.DBMaxConns {
		return fmt.Errorf("DB_MIN_CONNS must be between 0 and DB_MAX_CONNS(%d), got %d", cfg.DBMaxConns, cfg.DBMinConns)
	}
	if cfg.ConversationTTL < time.Minute {
		return fmt.Errorf("CONVERSATION_TTL must be at least 1m, got %s", cfg.ConversationTTL)
	}

	return nil
}

var defaultQuestionTexts = map[entity.QuestionKey]string{
	entity.QuestionFeels:       "How do you want your garden to feel when you step into it?",
	entity.QuestionStyle:       "Are there garden styles you're drawn to, like modern, cottage, zen or mediterranean?",
	entity.QuestionPlants:      "Are there plants you love, or any you'd rather avoid?",
	entity.QuestionUse:         "How will you use the garden? Entertaining, playing with the kids, quiet reading?",
	entity.QuestionMaintenance: "How much time do you want to spend on upkeep?",
	entity.QuestionSun:         "How much sun does the space get through the day?",
	entity.QuestionClimate:     "What's the climate like where you live?",
	entity.QuestionConstraints: "Any constraints I should know about, like budget, space or rules?",
}

// DefaultQuestionTexts returns a copy of the built-in question wording.
func DefaultQuestionTexts() map[entity.QuestionKey]string {
	texts := make(map[entity.QuestionKey]string, len(defaultQuestionTexts))
	for k, v := range defaultQuestionTexts {
		texts[k] = v
	}
	return texts
}

// loadQuestionTexts fills cfg.Questions from the JSON file, falling back to
// the defaults for missing keys or a missing file. Unknown keys in the file
// are rejected so a typo doesn't silently leave a topic on default wording.
func loadQuestionTexts(cfg *Config) error {
	cfg.Questions = DefaultQuestionTexts()

	if _, err := os.Stat(cfg.QuestionsFile); os.IsNotExist(err) {
		fmt.Printf("Warning: question texts file not found at %s, using default questions\n", cfg.QuestionsFile)
		return nil
	}

	data, err := os.ReadFile(cfg.QuestionsFile)
	if err != nil {
		return fmt.Errorf("read question texts file: %w", err)
	}

	var parsed questionTexts
	if err := json.Unmarshal(data, &parsed); err != nil {
		return fmt.Errorf("parse question texts JSON: %w", err)
	}

	for rawKey, text := range parsed.Questions {
		key := entity.QuestionKey(rawKey)
		if err := key.Validate(); err != nil {
			return fmt.Errorf("question texts file: %w", err)
		}
		if text == "" {
			return fmt.Errorf("question texts file: empty text for key %q", rawKey)
		}
		cfg.Questions[key] = text
	}

	fmt.Printf("Loaded %d question texts from %s\n", len(parsed.Questions), cfg.QuestionsFile)
	return nil
}

func getEnvFile(environment string) string {
	switch environment {
	case "prod", "production":
		return ".env.prod"
	case "local", "dev", "development":
		return ".env.local"
	default:
		return fmt.Sprintf(".env.%s", environment)
	}
}
