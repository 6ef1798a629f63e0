package mocks

import (
	"context"

	"github.com/content-chat-api/internal/provider"
)

// MockProvider is a fake embedding/generation provider. Call counters
// let tests assert that quota-saving paths make zero provider calls.
type MockProvider struct {
	EmbedFunc     func(ctx context.Context, text string) ([]float32, error)
	GenerateFunc  func(ctx context.Context, messages []provider.Message) (string, error)
	Vector        []float32
	Response      string
	EmbedCalls    int
	GenerateCalls int
	EmbeddedTexts []string
	LastMessages  []provider.Message
}

// Verify interface compliance
var _ provider.Provider = (*MockProvider)(nil)

func NewMockProvider(dimensions int) *MockProvider {
	vector := make([]float32, dimensions)
	for i := range vector {
		vector[i] = 0.1
	}
	return &MockProvider{
		Vector:   vector,
		Response: "mock answer",
	}
}

func (m *MockProvider) Embed(ctx context.Context, text string) ([]float32, error) {
	m.EmbedCalls++
	m.EmbeddedTexts = append(m.EmbeddedTexts, text)
	if m.EmbedFunc != nil {
		return m.EmbedFunc(ctx, text)
	}
	return m.Vector, nil
}

func (m *MockProvider) Generate(ctx context.Context, messages []provider.Message) (string, error) {
	m.GenerateCalls++
	m.LastMessages = messages
	if m.GenerateFunc != nil {
		return m.GenerateFunc(ctx, messages)
	}
	return m.Response, nil
}
