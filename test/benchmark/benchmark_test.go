package benchmark

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/content-chat-api/internal/config"
	"github.com/content-chat-api/internal/mocks"
	"github.com/content-chat-api/internal/models"
	"github.com/content-chat-api/internal/provider"
	"github.com/content-chat-api/internal/repository"
	"github.com/content-chat-api/internal/service"
	"github.com/content-chat-api/internal/validation"
	"github.com/rs/zerolog"
)

var sampleHTML = strings.Repeat(`<h2>Section</h2><p>Some <b>rich</b> article body with a <a href="/x">link</a> and &amp; entities.</p>`, 50)

func benchConfig() *config.Config {
	return &config.Config{
		Provider: provider.Config{Name: "openai", Dimensions: 8, MaxInputChars: 8000},
		Queue: config.QueueConfig{
			BatchSize:    10,
			MaxRetries:   3,
			EmbedTimeout: time.Second,
		},
		Retrieval: config.RetrievalConfig{MaxResults: 5, SimilarityThreshold: 0.7},
		Chat: config.ChatConfig{
			MaxHistoryTurns:   10,
			MaxContextResults: 3,
			MaxExcerptChars:   500,
			GenerateTimeout:   time.Second,
		},
	}
}

func BenchmarkPrepareText(b *testing.B) {
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		provider.PrepareText(sampleHTML, 8000)
	}
}

func BenchmarkTruncateText(b *testing.B) {
	text := strings.Repeat("word ", 500)
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		provider.TruncateText(text, 500)
	}
}

func BenchmarkValidateChatRequest(b *testing.B) {
	req := &models.ChatRequest{
		Query:    "how do I configure the embedding queue?",
		Language: "en",
		ConversationHistory: []models.ConversationTurn{
			{Role: "user", Content: "earlier question"},
			{Role: "assistant", Content: "earlier answer"},
		},
	}
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		validation.ValidateChatRequest(req)
	}
}

func BenchmarkAnswerPromptAssembly(b *testing.B) {
	cfg := benchConfig()
	repos := &repository.Repositories{
		Article: mocks.NewMockArticleRepository(),
		Queue:   mocks.NewMockQueueRepository(),
	}
	services := service.NewServices(repos, mocks.NewMockProvider(8), cfg, zerolog.Nop())

	results := []models.SearchResult{
		{ArticleID: "a1", Title: "First", Slug: "first", Excerpt: strings.Repeat("excerpt ", 100), Category: "general"},
		{ArticleID: "a2", Title: "Second", Slug: "second", Excerpt: strings.Repeat("excerpt ", 100), Category: "general"},
		{ArticleID: "a3", Title: "Third", Slug: "third", Excerpt: strings.Repeat("excerpt ", 100), Category: "general"},
	}

	ctx := context.Background()
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := services.Answer.Answer(ctx, "what is first?", nil, results, "en"); err != nil {
			b.Fatal(err)
		}
	}
}
