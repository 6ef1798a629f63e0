package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/content-chat-api/internal/database"
	"github.com/content-chat-api/internal/models"
	"github.com/google/uuid"
)

// queueRepo is the concrete implementation of QueueRepository
type queueRepo struct {
	db *database.DB
}

// NewQueueRepo creates a new queue repository
func NewQueueRepo(db *database.DB) QueueRepository {
	return &queueRepo{db: db}
}

// Enqueue creates a pending item for the article. A partial unique index
// on article_id over non-terminal statuses makes a duplicate enqueue merge
// into the existing row, ORing in the force_update flag.
func (r *queueRepo) Enqueue(ctx context.Context, articleID string, forceUpdate bool) (*models.QueueItem, error) {
	query := `
		INSERT INTO queue_items (id, article_id, status, retry_count, force_update, created_at)
		VALUES ($1, $2, 'pending', 0, $3, $4)
		ON CONFLICT (article_id) WHERE status IN ('pending', 'processing')
		DO UPDATE SET force_update = queue_items.force_update OR EXCLUDED.force_update
		RETURNING id, article_id, status, retry_count, force_update, error_message, created_at, processed_at
	`
	item, err := scanQueueItem(r.db.QueryRowContext(ctx, query, uuid.New().String(), articleID, forceUpdate, time.Now()))
	if err != nil {
		return nil, &models.PersistenceError{Op: "enqueue", Err: err}
	}
	return item, nil
}

// GetDue selects up to limit oldest items eligible for processing:
// pending items plus failed items below the retry cap
func (r *queueRepo) GetDue(ctx context.Context, limit, maxRetries int) ([]*models.QueueItem, error) {
	query := `
		SELECT id, article_id, status, retry_count, force_update, error_message, created_at, processed_at
		FROM queue_items
		WHERE status = 'pending' OR (status = 'failed' AND retry_count < $1)
		ORDER BY created_at
		LIMIT $2
	`
	rows, err := r.db.QueryContext(ctx, query, maxRetries, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*models.QueueItem
	for rows.Next() {
		item, err := scanQueueItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	return items, rows.Err()
}

// MarkProcessing atomically claims an item for processing. The conditional
// transition prevents two processor invocations racing on the same item.
func (r *queueRepo) MarkProcessing(ctx context.Context, id string) (bool, error) {
	query := `
		UPDATE queue_items SET status = 'processing'
		WHERE id = $1 AND status IN ('pending', 'failed')
	`
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return false, err
	}
	rows, _ := result.RowsAffected()
	return rows > 0, nil
}

// MarkCompleted moves an item to its terminal state
func (r *queueRepo) MarkCompleted(ctx context.Context, id string) error {
	query := `
		UPDATE queue_items SET status = 'completed', error_message = NULL, processed_at = $1
		WHERE id = $2
	`
	if _, err := r.db.ExecContext(ctx, query, time.Now(), id); err != nil {
		return &models.PersistenceError{Op: "queue complete", Err: err}
	}
	return nil
}

// MarkFailed records the provider error verbatim and increments the
// retry counter
func (r *queueRepo) MarkFailed(ctx context.Context, id string, errorMessage string) error {
	query := `
		UPDATE queue_items SET status = 'failed', error_message = $1,
			retry_count = retry_count + 1, processed_at = $2
		WHERE id = $3
	`
	if _, err := r.db.ExecContext(ctx, query, errorMessage, time.Now(), id); err != nil {
		return &models.PersistenceError{Op: "queue fail", Err: err}
	}
	return nil
}

// ResetForRetry returns a failed item to pending
func (r *queueRepo) ResetForRetry(ctx context.Context, articleID string) (bool, error) {
	query := `
		UPDATE queue_items SET status = 'pending', error_message = NULL
		WHERE article_id = $1 AND status = 'failed'
	`
	result, err := r.db.ExecContext(ctx, query, articleID)
	if err != nil {
		return false, err
	}
	rows, _ := result.RowsAffected()
	return rows > 0, nil
}

// GetByArticleID retrieves the most recent queue item for an article
func (r *queueRepo) GetByArticleID(ctx context.Context, articleID string) (*models.QueueItem, error) {
	query := `
		SELECT id, article_id, status, retry_count, force_update, error_message, created_at, processed_at
		FROM queue_items
		WHERE article_id = $1
		ORDER BY created_at DESC
		LIMIT 1
	`
	item, err := scanQueueItem(r.db.QueryRowContext(ctx, query, articleID))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return item, nil
}

// CountByStatus aggregates queue items per status for the monitor
func (r *queueRepo) CountByStatus(ctx context.Context) (map[models.QueueItemStatus]int, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT status, COUNT(*) FROM queue_items GROUP BY status")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[models.QueueItemStatus]int)
	for rows.Next() {
		var status models.QueueItemStatus
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, err
		}
		counts[status] = count
	}

	return counts, rows.Err()
}

// scanner covers both *sql.Row and *sql.Rows
type scanner interface {
	Scan(dest ...interface{}) error
}

func scanQueueItem(s scanner) (*models.QueueItem, error) {
	var item models.QueueItem
	var errorMessage sql.NullString
	var processedAt sql.NullTime

	err := s.Scan(
		&item.ID, &item.ArticleID, &item.Status, &item.RetryCount,
		&item.ForceUpdate, &errorMessage, &item.CreatedAt, &processedAt,
	)
	if err != nil {
		return nil, err
	}

	item.ErrorMessage = errorMessage.String
	if processedAt.Valid {
		item.ProcessedAt = &processedAt.Time
	}

	return &item, nil
}
