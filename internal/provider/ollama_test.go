package provider

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestOllamaEmbed(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/embed" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		var req ollamaEmbedRequest
		json.NewDecoder(r.Body).Decode(&req)
		if req.Model != "nomic-embed-text" {
			t.Errorf("unexpected model %q", req.Model)
		}
		if len(req.Input) != 1 || req.Input[0] != "some article text" {
			t.Errorf("unexpected input %v", req.Input)
		}
		json.NewEncoder(w).Encode(ollamaEmbedResponse{
			Embeddings: [][]float32{{0.1, 0.2, 0.3}},
		})
	}))
	defer server.Close()

	p := NewOllama(server.URL, "nomic-embed-text", "llama3")
	vector, err := p.Embed(context.Background(), "some article text")
	if err != nil {
		t.Fatalf("Embed() error = %v", err)
	}
	if len(vector) != 3 || vector[0] != 0.1 {
		t.Errorf("unexpected vector %v", vector)
	}
}

func TestOllamaEmbedEmptyResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(ollamaEmbedResponse{})
	}))
	defer server.Close()

	p := NewOllama(server.URL, "nomic-embed-text", "llama3")
	_, err := p.Embed(context.Background(), "text")
	var provErr *Error
	if !errors.As(err, &provErr) {
		t.Fatalf("expected a provider error, got %v", err)
	}
}

func TestOllamaGenerate(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/chat" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		var req ollamaChatRequest
		json.NewDecoder(r.Body).Decode(&req)
		if req.Stream {
			t.Error("expected streaming to be disabled")
		}
		if len(req.Messages) != 2 || req.Messages[0].Role != RoleSystem {
			t.Errorf("unexpected messages %v", req.Messages)
		}
		json.NewEncoder(w).Encode(ollamaChatResponse{
			Message: ollamaChatMessage{Role: "assistant", Content: "a grounded answer"},
		})
	}))
	defer server.Close()

	p := NewOllama(server.URL, "nomic-embed-text", "llama3")
	text, err := p.Generate(context.Background(), []Message{
		{Role: RoleSystem, Content: "ground rules"},
		{Role: RoleUser, Content: "question"},
	})
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if text != "a grounded answer" {
		t.Errorf("unexpected text %q", text)
	}
}

func TestOllamaErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model not found", http.StatusNotFound)
	}))
	defer server.Close()

	p := NewOllama(server.URL, "missing-model", "llama3")
	_, err := p.Embed(context.Background(), "text")

	var provErr *Error
	if !errors.As(err, &provErr) {
		t.Fatalf("expected a provider error, got %v", err)
	}
	if provErr.StatusCode != http.StatusNotFound {
		t.Errorf("expected status 404, got %d", provErr.StatusCode)
	}
	if provErr.Provider != "ollama" {
		t.Errorf("expected provider ollama, got %q", provErr.Provider)
	}
}

func TestOllamaContextCancellation(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer server.Close()

	p := NewOllama(server.URL, "nomic-embed-text", "llama3")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := p.Embed(ctx, "text"); err == nil {
		t.Error("expected an error for a cancelled context")
	}
}

func TestNewDefaultsToLocalhost(t *testing.T) {
	p := NewOllama("", "nomic-embed-text", "llama3")
	if p.baseURL != "http://localhost:11434" {
		t.Errorf("unexpected default base URL %q", p.baseURL)
	}
}
