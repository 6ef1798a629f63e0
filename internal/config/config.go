package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/content-chat-api/internal/provider"
)

// Config holds all application configuration
type Config struct {
	// Server configuration
	Server ServerConfig

	// Database configuration
	Database DatabaseConfig

	// Embedding/generation provider configuration
	Provider provider.Config

	// Embedding queue configuration
	Queue QueueConfig

	// Retrieval configuration
	Retrieval RetrievalConfig

	// Chat/synthesis configuration
	Chat ChatConfig

	// Logging configuration
	Log LogConfig
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Port            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
}

// DatabaseConfig holds database connection settings
type DatabaseConfig struct {
	Host         string
	Port         string
	User         string
	Password     string
	Name         string
	SSLMode      string
	MaxOpenConns int
	MaxIdleConns int
	MaxLifetime  time.Duration
}

// QueueConfig holds embedding queue processor settings
type QueueConfig struct {
	BatchSize    int           // default batch size when the trigger omits one
	MaxRetries   int           // failed items at or past this count need manual retry
	ProcessDelay time.Duration // inter-call delay between provider requests
	EmbedTimeout time.Duration // per-call timeout, the sole defense against a hung upstream
}

// RetrievalConfig holds hybrid search settings
type RetrievalConfig struct {
	MaxResults          int
	SimilarityThreshold float64
}

// ChatConfig holds answer synthesis settings
type ChatConfig struct {
	MaxHistoryTurns   int // bounded conversation window forwarded per request
	MaxContextResults int // results included in the prompt and reference list
	MaxExcerptChars   int // excerpt truncation inside the prompt
	GenerateTimeout   time.Duration
}

// LogConfig holds logging settings
type LogConfig struct {
	Level  string
	Format string // "json" or "pretty"
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port:            getEnv("PORT", "8080"),
			ReadTimeout:     getDurationEnv("SERVER_READ_TIMEOUT", 30*time.Second),
			WriteTimeout:    getDurationEnv("SERVER_WRITE_TIMEOUT", 120*time.Second),
			ShutdownTimeout: getDurationEnv("SERVER_SHUTDOWN_TIMEOUT", 30*time.Second),
		},
		Database: DatabaseConfig{
			Host:         getEnv("DB_HOST", "localhost"),
			Port:         getEnv("DB_PORT", "5432"),
			User:         getEnv("DB_USER", "postgres"),
			Password:     getEnv("DB_PASSWORD", "postgres"),
			Name:         getEnv("DB_NAME", "content_chat"),
			SSLMode:      getEnv("DB_SSLMODE", "disable"),
			MaxOpenConns: getIntEnv("DB_MAX_OPEN_CONNS", 25),
			MaxIdleConns: getIntEnv("DB_MAX_IDLE_CONNS", 5),
			MaxLifetime:  getDurationEnv("DB_MAX_LIFETIME", 5*time.Minute),
		},
		Provider: provider.Config{
			Name:           getEnv("AI_PROVIDER", "openai"),
			APIKey:         getEnv("AI_API_KEY", ""),
			BaseURL:        getEnv("AI_BASE_URL", ""),
			EmbeddingModel: getEnv("AI_EMBEDDING_MODEL", "text-embedding-3-small"),
			ChatModel:      getEnv("AI_CHAT_MODEL", "gpt-4o-mini"),
			Dimensions:     getIntEnv("AI_EMBEDDING_DIMENSIONS", 768),
			MaxInputChars:  getIntEnv("AI_MAX_INPUT_CHARS", 8000),
		},
		Queue: QueueConfig{
			BatchSize:    getIntEnv("QUEUE_BATCH_SIZE", 10),
			MaxRetries:   getIntEnv("QUEUE_MAX_RETRIES", 3),
			ProcessDelay: getDurationEnv("QUEUE_PROCESS_DELAY", 500*time.Millisecond),
			EmbedTimeout: getDurationEnv("QUEUE_EMBED_TIMEOUT", 30*time.Second),
		},
		Retrieval: RetrievalConfig{
			MaxResults:          getIntEnv("RETRIEVAL_MAX_RESULTS", 5),
			SimilarityThreshold: getFloatEnv("RETRIEVAL_SIMILARITY_THRESHOLD", 0.7),
		},
		Chat: ChatConfig{
			MaxHistoryTurns:   getIntEnv("CHAT_MAX_HISTORY_TURNS", 10),
			MaxContextResults: getIntEnv("CHAT_MAX_CONTEXT_RESULTS", 3),
			MaxExcerptChars:   getIntEnv("CHAT_MAX_EXCERPT_CHARS", 500),
			GenerateTimeout:   getDurationEnv("CHAT_GENERATE_TIMEOUT", 60*time.Second),
		},
		Log: LogConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
	}

	// Validate required configuration
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Database.Host == "" {
		return fmt.Errorf("DB_HOST is required")
	}
	if c.Database.Name == "" {
		return fmt.Errorf("DB_NAME is required")
	}
	switch c.Provider.Name {
	case "openai":
		if c.Provider.APIKey == "" {
			return fmt.Errorf("AI_API_KEY is required for the openai provider")
		}
	case "ollama":
	default:
		return fmt.Errorf("AI_PROVIDER must be one of: openai, ollama")
	}
	if c.Provider.Dimensions <= 0 {
		return fmt.Errorf("AI_EMBEDDING_DIMENSIONS must be positive")
	}
	if c.Retrieval.SimilarityThreshold <= 0 || c.Retrieval.SimilarityThreshold > 1 {
		return fmt.Errorf("RETRIEVAL_SIMILARITY_THRESHOLD must be in (0, 1]")
	}
	if c.Queue.MaxRetries < 0 {
		return fmt.Errorf("QUEUE_MAX_RETRIES must not be negative")
	}
	return nil
}

// GetDSN returns the PostgreSQL connection string
func (c *DatabaseConfig) GetDSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode,
	)
}

// Helper functions for environment variable parsing

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getFloatEnv(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatVal, err := strconv.ParseFloat(value, 64); err == nil {
			return floatVal
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
