package repository

import (
	"context"

	"github.com/content-chat-api/internal/database"
	"github.com/content-chat-api/internal/models"
)

// ArticleRepository defines the interface for article data operations
type ArticleRepository interface {
	Create(ctx context.Context, article *models.Article) error
	GetByID(ctx context.Context, id string) (*models.Article, error)
	UpdateEmbedding(ctx context.Context, id string, embedding []float32) error
	SearchByEmbedding(ctx context.Context, embedding []float32, limit int, threshold float64) ([]models.SearchResult, error)
	SearchByKeyword(ctx context.Context, query string, limit int) ([]models.SearchResult, error)
	CountPublished(ctx context.Context) (int, error)
	CountEmbedded(ctx context.Context) (int, error)
}

// QueueRepository defines the interface for embedding queue operations
type QueueRepository interface {
	// Enqueue creates a pending item, or merges into the existing
	// non-terminal item for the same article
	Enqueue(ctx context.Context, articleID string, forceUpdate bool) (*models.QueueItem, error)

	// GetDue selects the oldest items eligible for processing: pending
	// items plus failed items still under the retry cap
	GetDue(ctx context.Context, limit, maxRetries int) ([]*models.QueueItem, error)

	// MarkProcessing atomically claims an item; returns false if another
	// processor got there first
	MarkProcessing(ctx context.Context, id string) (bool, error)

	MarkCompleted(ctx context.Context, id string) error
	MarkFailed(ctx context.Context, id string, errorMessage string) error

	// ResetForRetry returns a failed item to pending; works past the
	// retry cap (manual retry)
	ResetForRetry(ctx context.Context, articleID string) (bool, error)

	GetByArticleID(ctx context.Context, articleID string) (*models.QueueItem, error)
	CountByStatus(ctx context.Context) (map[models.QueueItemStatus]int, error)
}

// Repositories holds all repository interfaces
type Repositories struct {
	Article ArticleRepository
	Queue   QueueRepository
}

// New creates all repositories with the given database connection
func New(db *database.DB) *Repositories {
	return &Repositories{
		Article: NewArticleRepo(db),
		Queue:   NewQueueRepo(db),
	}
}
