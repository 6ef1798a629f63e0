package provider

import (
	"context"
	"fmt"
)

// Message roles used when talking to a generative model
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is one prompt message sent to the generative model
type Message struct {
	Role    string
	Content string
}

// Provider wraps a single vendor's embedding and generation APIs.
// Implementations perform no retries; retry policy belongs to the
// queue processor.
type Provider interface {
	// Embed turns text into a fixed-length vector
	Embed(ctx context.Context, text string) ([]float32, error)

	// Generate produces a completion for the given messages
	Generate(ctx context.Context, messages []Message) (string, error)
}

// Error carries the upstream status and message of a provider failure
type Error struct {
	Provider   string
	StatusCode int
	Message    string
}

func (e *Error) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s provider error (status %d): %s", e.Provider, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("%s provider error: %s", e.Provider, e.Message)
}

// Config holds the settings a provider constructor needs. Keys and model
// names are read from the environment once at startup and passed in here,
// so tests can substitute a fake provider.
type Config struct {
	Name           string // "openai" or "ollama"
	APIKey         string
	BaseURL        string // ollama only
	EmbeddingModel string
	ChatModel      string
	Dimensions     int // expected embedding dimensionality
	MaxInputChars  int // provider input budget, applied before calling out
}

// New creates a provider implementation based on the configured vendor
func New(cfg Config) (Provider, error) {
	switch cfg.Name {
	case "openai":
		return NewOpenAI(cfg.APIKey, cfg.EmbeddingModel, cfg.ChatModel), nil
	case "ollama":
		return NewOllama(cfg.BaseURL, cfg.EmbeddingModel, cfg.ChatModel), nil
	default:
		return nil, fmt.Errorf("unsupported provider: %s (supported: openai, ollama)", cfg.Name)
	}
}
