package mocks

import (
	"context"
	"sort"
	"time"

	"github.com/content-chat-api/internal/models"
	"github.com/content-chat-api/internal/repository"
	"github.com/google/uuid"
)

// MockArticleRepository is a mock implementation of ArticleRepository
type MockArticleRepository struct {
	Articles              map[string]*models.Article
	Embeddings            map[string][]float32
	SearchByEmbeddingFunc func(ctx context.Context, embedding []float32, limit int, threshold float64) ([]models.SearchResult, error)
	SearchByKeywordFunc   func(ctx context.Context, query string, limit int) ([]models.SearchResult, error)
	UpdateEmbeddingError  error
	UpdateEmbeddingCalls  int
}

// Verify interface compliance
var _ repository.ArticleRepository = (*MockArticleRepository)(nil)

func NewMockArticleRepository() *MockArticleRepository {
	return &MockArticleRepository{
		Articles:   make(map[string]*models.Article),
		Embeddings: make(map[string][]float32),
	}
}

func (m *MockArticleRepository) Create(ctx context.Context, article *models.Article) error {
	m.Articles[article.ID] = article
	return nil
}

func (m *MockArticleRepository) GetByID(ctx context.Context, id string) (*models.Article, error) {
	return m.Articles[id], nil
}

func (m *MockArticleRepository) UpdateEmbedding(ctx context.Context, id string, embedding []float32) error {
	m.UpdateEmbeddingCalls++
	if m.UpdateEmbeddingError != nil {
		return m.UpdateEmbeddingError
	}
	article, exists := m.Articles[id]
	if !exists {
		return &models.NotFoundError{Resource: "article", ID: id}
	}
	m.Embeddings[id] = embedding
	article.HasVector = true
	return nil
}

func (m *MockArticleRepository) SearchByEmbedding(ctx context.Context, embedding []float32, limit int, threshold float64) ([]models.SearchResult, error) {
	if m.SearchByEmbeddingFunc != nil {
		return m.SearchByEmbeddingFunc(ctx, embedding, limit, threshold)
	}
	return nil, nil
}

func (m *MockArticleRepository) SearchByKeyword(ctx context.Context, query string, limit int) ([]models.SearchResult, error) {
	if m.SearchByKeywordFunc != nil {
		return m.SearchByKeywordFunc(ctx, query, limit)
	}
	return nil, nil
}

func (m *MockArticleRepository) CountPublished(ctx context.Context) (int, error) {
	count := 0
	for _, a := range m.Articles {
		if a.IsPublished() {
			count++
		}
	}
	return count, nil
}

func (m *MockArticleRepository) CountEmbedded(ctx context.Context) (int, error) {
	count := 0
	for _, a := range m.Articles {
		if a.IsPublished() && a.HasVector {
			count++
		}
	}
	return count, nil
}

// MockQueueRepository is a mock implementation of QueueRepository with the
// same merge semantics as the Postgres upsert
type MockQueueRepository struct {
	Items        map[string]*models.QueueItem
	EnqueueError error
	clock        time.Time
}

// Verify interface compliance
var _ repository.QueueRepository = (*MockQueueRepository)(nil)

func NewMockQueueRepository() *MockQueueRepository {
	return &MockQueueRepository{
		Items: make(map[string]*models.QueueItem),
		clock: time.Now(),
	}
}

// nextTime produces strictly increasing timestamps so ordering by
// created_at is deterministic in tests
func (m *MockQueueRepository) nextTime() time.Time {
	m.clock = m.clock.Add(time.Millisecond)
	return m.clock
}

func (m *MockQueueRepository) Enqueue(ctx context.Context, articleID string, forceUpdate bool) (*models.QueueItem, error) {
	if m.EnqueueError != nil {
		return nil, m.EnqueueError
	}
	// Merge into an existing non-terminal item
	for _, item := range m.Items {
		if item.ArticleID == articleID &&
			(item.Status == models.QueueStatusPending || item.Status == models.QueueStatusProcessing) {
			item.ForceUpdate = item.ForceUpdate || forceUpdate
			return item, nil
		}
	}
	item := &models.QueueItem{
		ID:          uuid.New().String(),
		ArticleID:   articleID,
		Status:      models.QueueStatusPending,
		ForceUpdate: forceUpdate,
		CreatedAt:   m.nextTime(),
	}
	m.Items[item.ID] = item
	return item, nil
}

func (m *MockQueueRepository) GetDue(ctx context.Context, limit, maxRetries int) ([]*models.QueueItem, error) {
	var due []*models.QueueItem
	for _, item := range m.Items {
		if item.Status == models.QueueStatusPending ||
			(item.Status == models.QueueStatusFailed && item.RetryCount < maxRetries) {
			due = append(due, item)
		}
	}
	sort.Slice(due, func(i, j int) bool {
		return due[i].CreatedAt.Before(due[j].CreatedAt)
	})
	if len(due) > limit {
		due = due[:limit]
	}
	return due, nil
}

func (m *MockQueueRepository) MarkProcessing(ctx context.Context, id string) (bool, error) {
	item, exists := m.Items[id]
	if !exists {
		return false, nil
	}
	if item.Status != models.QueueStatusPending && item.Status != models.QueueStatusFailed {
		return false, nil
	}
	item.Status = models.QueueStatusProcessing
	return true, nil
}

func (m *MockQueueRepository) MarkCompleted(ctx context.Context, id string) error {
	item, exists := m.Items[id]
	if !exists {
		return &models.NotFoundError{Resource: "queue item", ID: id}
	}
	now := m.nextTime()
	item.Status = models.QueueStatusCompleted
	item.ErrorMessage = ""
	item.ProcessedAt = &now
	return nil
}

func (m *MockQueueRepository) MarkFailed(ctx context.Context, id string, errorMessage string) error {
	item, exists := m.Items[id]
	if !exists {
		return &models.NotFoundError{Resource: "queue item", ID: id}
	}
	now := m.nextTime()
	item.Status = models.QueueStatusFailed
	item.ErrorMessage = errorMessage
	item.RetryCount++
	item.ProcessedAt = &now
	return nil
}

func (m *MockQueueRepository) ResetForRetry(ctx context.Context, articleID string) (bool, error) {
	reset := false
	for _, item := range m.Items {
		if item.ArticleID == articleID && item.Status == models.QueueStatusFailed {
			item.Status = models.QueueStatusPending
			item.ErrorMessage = ""
			reset = true
		}
	}
	return reset, nil
}

func (m *MockQueueRepository) GetByArticleID(ctx context.Context, articleID string) (*models.QueueItem, error) {
	var latest *models.QueueItem
	for _, item := range m.Items {
		if item.ArticleID != articleID {
			continue
		}
		if latest == nil || item.CreatedAt.After(latest.CreatedAt) {
			latest = item
		}
	}
	return latest, nil
}

func (m *MockQueueRepository) CountByStatus(ctx context.Context) (map[models.QueueItemStatus]int, error) {
	counts := make(map[models.QueueItemStatus]int)
	for _, item := range m.Items {
		counts[item.Status]++
	}
	return counts, nil
}
