package mocks

import (
	"context"

	"github.com/content-chat-api/internal/models"
	"github.com/content-chat-api/internal/service"
)

// MockQueueService is a mock implementation of QueueService
type MockQueueService struct {
	EnqueueFunc      func(ctx context.Context, articleID string, forceUpdate bool) (*models.QueueItem, error)
	ProcessBatchFunc func(ctx context.Context, batchSize int) (*models.BatchResult, error)
	RetryFunc        func(ctx context.Context, articleID string) error
	TriggerFunc      func(ctx context.Context, articleID string) (string, error)
	StatsResult      *models.QueueStats
	ProcessedBatches []int
}

// Verify interface compliance
var _ service.QueueService = (*MockQueueService)(nil)

func NewMockQueueService() *MockQueueService {
	return &MockQueueService{
		StatsResult: &models.QueueStats{},
	}
}

func (m *MockQueueService) Enqueue(ctx context.Context, articleID string, forceUpdate bool) (*models.QueueItem, error) {
	if m.EnqueueFunc != nil {
		return m.EnqueueFunc(ctx, articleID, forceUpdate)
	}
	return &models.QueueItem{ArticleID: articleID, Status: models.QueueStatusPending, ForceUpdate: forceUpdate}, nil
}

func (m *MockQueueService) ProcessBatch(ctx context.Context, batchSize int) (*models.BatchResult, error) {
	m.ProcessedBatches = append(m.ProcessedBatches, batchSize)
	if m.ProcessBatchFunc != nil {
		return m.ProcessBatchFunc(ctx, batchSize)
	}
	return &models.BatchResult{Errors: []string{}}, nil
}

func (m *MockQueueService) Retry(ctx context.Context, articleID string) error {
	if m.RetryFunc != nil {
		return m.RetryFunc(ctx, articleID)
	}
	return nil
}

func (m *MockQueueService) TriggerEmbedding(ctx context.Context, articleID string) (string, error) {
	if m.TriggerFunc != nil {
		return m.TriggerFunc(ctx, articleID)
	}
	return "Mock Article", nil
}

func (m *MockQueueService) Stats(ctx context.Context) (*models.QueueStats, error) {
	return m.StatsResult, nil
}

// MockRetrievalService is a mock implementation of RetrievalService
type MockRetrievalService struct {
	RetrieveFunc func(ctx context.Context, query string, maxResults int) ([]models.SearchResult, error)
	Results      []models.SearchResult
	Queries      []string
}

// Verify interface compliance
var _ service.RetrievalService = (*MockRetrievalService)(nil)

func NewMockRetrievalService() *MockRetrievalService {
	return &MockRetrievalService{}
}

func (m *MockRetrievalService) Retrieve(ctx context.Context, query string, maxResults int) ([]models.SearchResult, error) {
	m.Queries = append(m.Queries, query)
	if m.RetrieveFunc != nil {
		return m.RetrieveFunc(ctx, query, maxResults)
	}
	return m.Results, nil
}

// MockAnswerService is a mock implementation of AnswerService
type MockAnswerService struct {
	AnswerFunc func(ctx context.Context, query string, history []models.ConversationTurn, results []models.SearchResult, language string) (*models.Answer, error)
}

// Verify interface compliance
var _ service.AnswerService = (*MockAnswerService)(nil)

func NewMockAnswerService() *MockAnswerService {
	return &MockAnswerService{}
}

func (m *MockAnswerService) Answer(ctx context.Context, query string, history []models.ConversationTurn, results []models.SearchResult, language string) (*models.Answer, error) {
	if m.AnswerFunc != nil {
		return m.AnswerFunc(ctx, query, history, results, language)
	}
	references := make([]models.Reference, 0, len(results))
	for _, r := range results {
		references = append(references, models.Reference{Title: r.Title, URL: r.URL(), Excerpt: r.Excerpt, Category: r.Category})
	}
	return &models.Answer{Text: "mock answer", References: references}, nil
}
