package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Ollama implements Provider against a local Ollama server
type Ollama struct {
	baseURL        string
	embeddingModel string
	chatModel      string
	client         *http.Client
}

// NewOllama creates an Ollama-backed provider
func NewOllama(baseURL, embeddingModel, chatModel string) *Ollama {
	if baseURL == "" {
		baseURL = "http://localhost:11434"
	}
	return &Ollama{
		baseURL:        baseURL,
		embeddingModel: embeddingModel,
		chatModel:      chatModel,
		client:         &http.Client{Timeout: 60 * time.Second},
	}
}

type ollamaEmbedRequest struct {
	Model string   `json:"model"`
	Input []string `json:"input"`
}

type ollamaEmbedResponse struct {
	Embeddings [][]float32 `json:"embeddings"`
}

type ollamaChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type ollamaChatRequest struct {
	Model    string              `json:"model"`
	Messages []ollamaChatMessage `json:"messages"`
	Stream   bool                `json:"stream"`
}

type ollamaChatResponse struct {
	Message ollamaChatMessage `json:"message"`
}

// Embed generates an embedding for a single text string
func (p *Ollama) Embed(ctx context.Context, text string) ([]float32, error) {
	var resp ollamaEmbedResponse
	err := p.post(ctx, "/api/embed", ollamaEmbedRequest{
		Model: p.embeddingModel,
		Input: []string{text},
	}, &resp)
	if err != nil {
		return nil, err
	}
	if len(resp.Embeddings) == 0 {
		return nil, &Error{Provider: "ollama", Message: "no embeddings returned"}
	}
	return resp.Embeddings[0], nil
}

// Generate produces a chat completion for the given messages
func (p *Ollama) Generate(ctx context.Context, messages []Message) (string, error) {
	chatMessages := make([]ollamaChatMessage, 0, len(messages))
	for _, m := range messages {
		chatMessages = append(chatMessages, ollamaChatMessage{Role: m.Role, Content: m.Content})
	}

	var resp ollamaChatResponse
	err := p.post(ctx, "/api/chat", ollamaChatRequest{
		Model:    p.chatModel,
		Messages: chatMessages,
		Stream:   false,
	}, &resp)
	if err != nil {
		return "", err
	}
	return resp.Message.Content, nil
}

// post sends a JSON request and decodes the JSON response
func (p *Ollama) post(ctx context.Context, path string, reqBody, respBody interface{}) error {
	body, err := json.Marshal(reqBody)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return &Error{Provider: "ollama", Message: err.Error()}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return &Error{Provider: "ollama", StatusCode: resp.StatusCode, Message: string(bodyBytes)}
	}

	if err := json.NewDecoder(resp.Body).Decode(respBody); err != nil {
		return &Error{Provider: "ollama", Message: "decode response: " + err.Error()}
	}
	return nil
}
