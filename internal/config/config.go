package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2/log"
	"github.com/joho/godotenv"
)

const (
	StorageFile  = "file"
	StorageMongo = "mongo"
)

var validate = validator.New()

type Config struct {
	Port                string        `validate:"required,numeric"`
	IPv6Only            bool
	StorageDriver       string        `validate:"oneof=file mongo"`
	FeedbackFile        string        `validate:"required_if=StorageDriver file"`
	MongoURI            string        `validate:"required_if=StorageDriver mongo"`
	DBName              string        `validate:"required_if=StorageDriver mongo"`
	WSPort              string        `validate:"omitempty,numeric"`
	LiveFeedURL         string        `validate:"omitempty,url"`
	TelegramBotToken    string        `validate:"required_with=TelegramChatID"`
	TelegramChatID      string        `validate:"required_with=TelegramBotToken"`
	HealthCheckInterval time.Duration `validate:"min=0"`
	LogLevel            string        `validate:"oneof=trace debug info warn error"`
	Title               string        `validate:"required"`
	Dev                 bool
}

// LoadDotEnv reads a .env file into the process environment if one exists.
func LoadDotEnv(path string) {
	if err := godotenv.Load(path); err != nil {
		log.Info("No .env file found")
	}
}

// Load builds the configuration from the environment, falling back to defaults.
func Load() (Config, error) {
	interval, err := time.ParseDuration(getEnv("HEALTHCHECK_INTERVAL", "5m"))
	if err != nil {
		return Config{}, fmt.Errorf("HEALTHCHECK_INTERVAL: %w", err)
	}

	ipv6Only, err := strconv.ParseBool(getEnv("IPV6_ONLY", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("IPV6_ONLY: %w", err)
	}

	cfg := Config{
		Port:                getEnv("PORT", "5000"),
		IPv6Only:            ipv6Only,
		StorageDriver:       strings.ToLower(getEnv("STORAGE_DRIVER", StorageFile)),
		FeedbackFile:        getEnv("FEEDBACK_FILE", "feedback.json"),
		MongoURI:            os.Getenv("MONGODB_URI"),
		DBName:              getEnv("DB_NAME", "feedback"),
		WSPort:              os.Getenv("WS_PORT"),
		LiveFeedURL:         os.Getenv("LIVE_FEED_URL"),
		TelegramBotToken:    os.Getenv("TELEGRAM_BOT_TOKEN"),
		TelegramChatID:      os.Getenv("TELEGRAM_CHAT_ID"),
		HealthCheckInterval: interval,
		LogLevel:            strings.ToLower(getEnv("LOG_LEVEL", "info")),
		Title:               getEnv("PAGE_TITLE", "Customer Feedback"),
		Dev:                 getEnv("APP_ENV", "") == "development",
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.WSPort != "" && c.LiveFeedURL == "" {
		c.LiveFeedURL = "http://localhost:" + c.WSPort
	}
	return validate.Struct(c)
}

// FiberLogLevel maps LogLevel onto fiber's log levels.
func (c *Config) FiberLogLevel() log.Level {
	switch c.LogLevel {
	case "trace":
		return log.LevelTrace
	case "debug":
		return log.LevelDebug
	case "warn":
		return log.LevelWarn
	case "error":
		return log.LevelError
	default:
		return log.LevelInfo
	}
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}
