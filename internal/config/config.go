package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Addr             string
	DBPath           string
	LogLevel         string
	ScryfallBaseURL  string
	ScryfallTimeout  time.Duration
	RefillWorkers    int
	RefillQueueSize  int
	QueueBatchSize   int
	QueueLowWater    int
	SessionTTL       time.Duration
	TopCardsMaxLimit int
}

// Load reads configuration from a .env file (if present) and environment variables,
// applying sensible defaults when values are missing or invalid.
func Load() Config {
	// Ignore error so the app still starts when .env is absent in production.
	_ = godotenv.Load()

	return Config{
		Addr:             envOr("ADDR", ":8080"),
		DBPath:           envOr("DB_PATH", "cardswipe.db"),
		LogLevel:         envOr("LOG_LEVEL", "INFO"),
		ScryfallBaseURL:  envOr("SCRYFALL_BASE_URL", "https://api.scryfall.com"),
		ScryfallTimeout:  envDurationOr("SCRYFALL_TIMEOUT", 15*time.Second),
		RefillWorkers:    envIntOr("REFILL_WORKER_COUNT", 2),
		RefillQueueSize:  envIntOr("REFILL_QUEUE_SIZE", 32),
		QueueBatchSize:   envIntOr("QUEUE_BATCH_SIZE", 5),
		QueueLowWater:    envIntOr("QUEUE_LOW_WATER", 3),
		SessionTTL:       envDurationOr("SESSION_TTL", 30*time.Minute),
		TopCardsMaxLimit: envIntOr("TOP_CARDS_MAX_LIMIT", 50),
	}
}

// Validate checks that the configuration is internally consistent.
func (c Config) Validate() error {
	if c.Addr == "" {
		return fmt.Errorf("ADDR cannot be empty")
	}
	if c.DBPath == "" {
		return fmt.Errorf("DB_PATH cannot be empty")
	}
	if c.ScryfallBaseURL == "" {
		return fmt.Errorf("SCRYFALL_BASE_URL cannot be empty")
	}
	if c.ScryfallTimeout <= 0 {
		return fmt.Errorf("SCRYFALL_TIMEOUT must be positive, got %v", c.ScryfallTimeout)
	}
	if c.RefillWorkers < 1 {
		return fmt.Errorf("REFILL_WORKER_COUNT must be at least 1, got %d", c.RefillWorkers)
	}
	if c.RefillQueueSize < 1 {
		return fmt.Errorf("REFILL_QUEUE_SIZE must be at least 1, got %d", c.RefillQueueSize)
	}
	if c.QueueBatchSize < 1 {
		return fmt.Errorf("QUEUE_BATCH_SIZE must be at least 1, got %d", c.QueueBatchSize)
	}
	if c.QueueLowWater < 1 || c.QueueLowWater > c.QueueBatchSize {
		return fmt.Errorf("QUEUE_LOW_WATER must be between 1 and QUEUE_BATCH_SIZE, got %d", c.QueueLowWater)
	}
	if c.SessionTTL <= 0 {
		return fmt.Errorf("SESSION_TTL must be positive, got %v", c.SessionTTL)
	}
	if c.TopCardsMaxLimit < 1 {
		return fmt.Errorf("TOP_CARDS_MAX_LIMIT must be at least 1, got %d", c.TopCardsMaxLimit)
	}
	return nil
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envIntOr(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
		log.Printf("invalid value for %s=%q, using default %d", key, v, def)
	}
	return def
}

func envDurationOr(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
		log.Printf("invalid value for %s=%q, using default %v", key, v, def)
	}
	return def
}
