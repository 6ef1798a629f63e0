package service

import (
	"context"

	"github.com/content-chat-api/internal/config"
	"github.com/content-chat-api/internal/models"
	"github.com/content-chat-api/internal/provider"
	"github.com/content-chat-api/internal/repository"
	"github.com/rs/zerolog"
)

// QueueService defines the interface for embedding queue management
type QueueService interface {
	Enqueue(ctx context.Context, articleID string, forceUpdate bool) (*models.QueueItem, error)
	ProcessBatch(ctx context.Context, batchSize int) (*models.BatchResult, error)
	Retry(ctx context.Context, articleID string) error
	TriggerEmbedding(ctx context.Context, articleID string) (string, error)
	Stats(ctx context.Context) (*models.QueueStats, error)
}

// RetrievalService defines the interface for hybrid search
type RetrievalService interface {
	Retrieve(ctx context.Context, query string, maxResults int) ([]models.SearchResult, error)
}

// AnswerService defines the interface for grounded answer synthesis
type AnswerService interface {
	Answer(ctx context.Context, query string, history []models.ConversationTurn, results []models.SearchResult, language string) (*models.Answer, error)
}

// Services holds all service interfaces
type Services struct {
	Queue     QueueService
	Retrieval RetrievalService
	Answer    AnswerService
}

// NewServices creates all services
func NewServices(repos *repository.Repositories, p provider.Provider, cfg *config.Config, log zerolog.Logger) *Services {
	return &Services{
		Queue:     newQueueService(repos, p, cfg, log),
		Retrieval: newRetrievalService(repos, p, cfg, log),
		Answer:    newAnswerService(p, cfg, log),
	}
}
