package provider

import (
	"context"
	"errors"

	"github.com/sashabaranov/go-openai"
)

// OpenAI implements Provider against the OpenAI API
type OpenAI struct {
	client         *openai.Client
	embeddingModel string
	chatModel      string
}

// NewOpenAI creates an OpenAI-backed provider
func NewOpenAI(apiKey, embeddingModel, chatModel string) *OpenAI {
	return &OpenAI{
		client:         openai.NewClient(apiKey),
		embeddingModel: embeddingModel,
		chatModel:      chatModel,
	}
}

// Embed generates an embedding for a single text string
func (p *OpenAI) Embed(ctx context.Context, text string) ([]float32, error) {
	resp, err := p.client.CreateEmbeddings(ctx, openai.EmbeddingRequest{
		Input: []string{text},
		Model: openai.EmbeddingModel(p.embeddingModel),
	})
	if err != nil {
		return nil, wrapOpenAIError(err)
	}
	if len(resp.Data) == 0 {
		return nil, &Error{Provider: "openai", Message: "no embeddings returned"}
	}
	return resp.Data[0].Embedding, nil
}

// Generate produces a chat completion for the given messages
func (p *OpenAI) Generate(ctx context.Context, messages []Message) (string, error) {
	chatMessages := make([]openai.ChatCompletionMessage, 0, len(messages))
	for _, m := range messages {
		chatMessages = append(chatMessages, openai.ChatCompletionMessage{
			Role:    m.Role,
			Content: m.Content,
		})
	}

	resp, err := p.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       p.chatModel,
		Messages:    chatMessages,
		Temperature: 0.3,
		MaxTokens:   400,
	})
	if err != nil {
		return "", wrapOpenAIError(err)
	}
	if len(resp.Choices) == 0 {
		return "", &Error{Provider: "openai", Message: "no choices returned"}
	}
	return resp.Choices[0].Message.Content, nil
}

// wrapOpenAIError converts go-openai errors into the provider error type,
// preserving the upstream status code when available
func wrapOpenAIError(err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return &Error{Provider: "openai", StatusCode: apiErr.HTTPStatusCode, Message: apiErr.Message}
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return &Error{Provider: "openai", StatusCode: reqErr.HTTPStatusCode, Message: reqErr.Error()}
	}
	return &Error{Provider: "openai", Message: err.Error()}
}
