package models

import (
	"time"
)

// QueueItemStatus represents the status of an embedding queue item
type QueueItemStatus string

const (
	QueueStatusPending    QueueItemStatus = "pending"
	QueueStatusProcessing QueueItemStatus = "processing"
	QueueStatusCompleted  QueueItemStatus = "completed"
	QueueStatusFailed     QueueItemStatus = "failed"
)

// Terminal reports whether the status admits no further transitions
// (failed items can still return to pending via retry)
func (s QueueItemStatus) Terminal() bool {
	return s == QueueStatusCompleted
}

// QueueItem is a durable record of one unit of embedding work.
// At most one non-terminal item exists per article; a duplicate enqueue
// merges into the existing item instead of creating a new row.
type QueueItem struct {
	ID           string          `json:"id" db:"id"`
	ArticleID    string          `json:"article_id" db:"article_id"`
	Status       QueueItemStatus `json:"status" db:"status"`
	RetryCount   int             `json:"retry_count" db:"retry_count"`
	ForceUpdate  bool            `json:"force_update" db:"force_update"`
	ErrorMessage string          `json:"error_message,omitempty" db:"error_message"`
	CreatedAt    time.Time       `json:"created_at" db:"created_at"`
	ProcessedAt  *time.Time      `json:"processed_at,omitempty" db:"processed_at"`
}

// BatchResult summarizes one ProcessBatch invocation
type BatchResult struct {
	Processed int      `json:"processed"`
	Failed    int      `json:"failed"`
	Errors    []string `json:"errors"`
}

// QueueStats is the read-only aggregation served to operators
type QueueStats struct {
	Pending           int     `json:"pending"`
	Processing        int     `json:"processing"`
	Completed         int     `json:"completed"`
	Failed            int     `json:"failed"`
	Total             int     `json:"total"`
	CompletionPct     float64 `json:"completion_pct"`
	PublishedArticles int     `json:"published_articles"`
	EmbeddedArticles  int     `json:"embedded_articles"`
}
