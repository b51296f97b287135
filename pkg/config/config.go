package config

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	// Telegram Bot configuration
	BotToken string

	// OpenAI configuration. Recipe import and free-text ingredient parsing
	// are disabled when the key is empty.
	OpenAIAPIBase string
	OpenAIAPIKey  string
	OpenAIModel   string
	OpenAIRate    float64 // requests per second, 0 for unlimited

	// Application configuration
	DataDir       string
	FeaturedLimit int
	GCInterval    time.Duration
	LogLevel      string
	CatalogFile   string  // optional JSON recipes merged into the catalog at startup
	AdminChatIDs  []int64 // chats allowed to run admin commands
}

// OpenAIEnabled reports whether an OpenAI key is configured
func (c *Config) OpenAIEnabled() bool {
	return c.OpenAIAPIKey != ""
}

// LoadFromEnv loads configuration from environment variables
func LoadFromEnv() (*Config, error) {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("Warning: Error loading .env file: %v", err)
	}

	return FromLookup(os.Getenv)
}

// FromLookup builds a Config from a getenv-like function
func FromLookup(getenv func(string) string) (*Config, error) {
	cfg := &Config{}

	// Required configurations
	cfg.BotToken = getenv("BOT_TOKEN")
	if cfg.BotToken == "" {
		return nil, fmt.Errorf("BOT_TOKEN environment variable is required")
	}

	// Optional configurations with defaults
	cfg.OpenAIAPIKey = getenv("OPENAI_API_KEY")
	cfg.OpenAIAPIBase = withDefault(getenv, "OPENAI_API_BASE", "https://api.openai.com/v1")
	cfg.OpenAIModel = withDefault(getenv, "OPENAI_MODEL", "gpt-3.5-turbo")
	oaiRate, err := strconv.ParseFloat(withDefault(getenv, "OPENAI_RATE", "1"), 64)
	if err != nil || oaiRate < 0 {
		return nil, fmt.Errorf("OPENAI_RATE must be a non-negative number of requests per second")
	}
	cfg.OpenAIRate = oaiRate

	cfg.DataDir = filepath.Clean(withDefault(getenv, "DATA_DIR", filepath.Join(".", "data")))
	cfg.LogLevel = withDefault(getenv, "LOG_LEVEL", "info")

	limit, err := strconv.Atoi(withDefault(getenv, "FEATURED_LIMIT", "6"))
	if err != nil || limit <= 0 {
		return nil, fmt.Errorf("FEATURED_LIMIT must be a positive integer")
	}
	cfg.FeaturedLimit = limit

	gc, err := time.ParseDuration(withDefault(getenv, "GC_INTERVAL", "10m"))
	if err != nil || gc <= 0 {
		return nil, fmt.Errorf("GC_INTERVAL must be a positive duration such as 10m")
	}
	cfg.GCInterval = gc

	cfg.CatalogFile = getenv("CATALOG_FILE")

	for _, field := range strings.Split(getenv("ADMIN_CHAT_IDS"), ",") {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}
		id, err := strconv.ParseInt(field, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("ADMIN_CHAT_IDS must be a comma-separated list of chat IDs, got %q", field)
		}
		cfg.AdminChatIDs = append(cfg.AdminChatIDs, id)
	}

	return cfg, nil
}

// Redacted returns a copy safe to log
func (c Config) Redacted() Config {
	c.BotToken = redact(c.BotToken)
	c.OpenAIAPIKey = redact(c.OpenAIAPIKey)
	return c
}

func redact(secret string) string {
	if len(secret) > 8 {
		return secret[:8] + "...REDACTED..."
	}
	if secret != "" {
		return "REDACTED"
	}
	return ""
}

// withDefault returns the value of the environment variable or the default value
func withDefault(getenv func(string) string, key, defaultValue string) string {
	value := getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
