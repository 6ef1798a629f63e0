package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/content-chat-api/internal/config"
	"github.com/content-chat-api/internal/models"
	"github.com/content-chat-api/internal/provider"
	"github.com/content-chat-api/internal/repository"
	"github.com/rs/zerolog"
)

// queueService is the concrete implementation of QueueService. ProcessBatch
// is a discrete, externally triggered batch job: each invocation processes
// a bounded batch sequentially and returns. There is no resident worker.
type queueService struct {
	repos    *repository.Repositories
	provider provider.Provider
	cfg      *config.Config
	log      zerolog.Logger
}

// newQueueService creates a new QueueService
func newQueueService(repos *repository.Repositories, p provider.Provider, cfg *config.Config, log zerolog.Logger) *queueService {
	return &queueService{
		repos:    repos,
		provider: p,
		cfg:      cfg,
		log:      log.With().Str("service", "queue").Logger(),
	}
}

// Enqueue records an article as needing (re)embedding. Enqueuing twice
// while an item is pending or processing merges into the existing item.
func (s *queueService) Enqueue(ctx context.Context, articleID string, forceUpdate bool) (*models.QueueItem, error) {
	item, err := s.repos.Queue.Enqueue(ctx, articleID, forceUpdate)
	if err != nil {
		return nil, err
	}

	s.log.Info().
		Str("article_id", articleID).
		Str("item_id", item.ID).
		Bool("force_update", item.ForceUpdate).
		Msg("Article enqueued for embedding")

	return item, nil
}

// TriggerEmbedding enqueues a forced-update item for the article and
// returns its title
func (s *queueService) TriggerEmbedding(ctx context.Context, articleID string) (string, error) {
	article, err := s.repos.Article.GetByID(ctx, articleID)
	if err != nil {
		return "", err
	}
	if article == nil {
		return "", &models.NotFoundError{Resource: "article", ID: articleID}
	}

	if _, err := s.Enqueue(ctx, articleID, true); err != nil {
		return "", err
	}

	return article.Title, nil
}

// ProcessBatch pulls up to batchSize due items and processes them strictly
// sequentially, with an inter-call delay to respect upstream rate limits.
// One item's failure never aborts the batch.
func (s *queueService) ProcessBatch(ctx context.Context, batchSize int) (*models.BatchResult, error) {
	if batchSize <= 0 {
		batchSize = s.cfg.Queue.BatchSize
	}

	items, err := s.repos.Queue.GetDue(ctx, batchSize, s.cfg.Queue.MaxRetries)
	if err != nil {
		return nil, &models.PersistenceError{Op: "queue select", Err: err}
	}

	result := &models.BatchResult{Errors: []string{}}
	start := time.Now()

	for i, item := range items {
		if i > 0 && s.cfg.Queue.ProcessDelay > 0 {
			select {
			case <-ctx.Done():
				return result, ctx.Err()
			case <-time.After(s.cfg.Queue.ProcessDelay):
			}
		}

		// Atomic claim: a concurrent invocation racing on the same item
		// loses here and skips it
		claimed, err := s.repos.Queue.MarkProcessing(ctx, item.ID)
		if err != nil {
			s.log.Error().Err(err).Str("item_id", item.ID).Msg("Failed to claim queue item")
			continue
		}
		if !claimed {
			continue
		}

		if err := s.processItem(ctx, item); err != nil {
			result.Failed++
			result.Errors = append(result.Errors, fmt.Sprintf("%s: %v", item.ArticleID, err))
		} else {
			result.Processed++
		}
	}

	s.log.Info().
		Int("selected", len(items)).
		Int("processed", result.Processed).
		Int("failed", result.Failed).
		Dur("duration", time.Since(start)).
		Msg("Batch processing completed")

	return result, nil
}

// processItem embeds one article and records the outcome. Provider errors
// are retained verbatim on the item for diagnosis.
func (s *queueService) processItem(ctx context.Context, item *models.QueueItem) error {
	article, err := s.repos.Article.GetByID(ctx, item.ArticleID)
	if err != nil {
		return s.failItem(ctx, item, fmt.Errorf("load article: %w", err))
	}
	if article == nil {
		return s.failItem(ctx, item, fmt.Errorf("article %s not found", item.ArticleID))
	}

	// Only published articles are eligible for embedding
	if !article.IsPublished() {
		s.log.Debug().Str("article_id", article.ID).Msg("Skipping unpublished article")
		return s.repos.Queue.MarkCompleted(ctx, item.ID)
	}

	// Skip policy: an existing vector without force_update completes the
	// item without spending provider quota
	if article.HasVector && !item.ForceUpdate {
		s.log.Debug().Str("article_id", article.ID).Msg("Article already embedded, skipping")
		return s.repos.Queue.MarkCompleted(ctx, item.ID)
	}

	text := provider.PrepareText(
		strings.Join([]string{article.Title, article.Excerpt, article.Content}, "\n\n"),
		s.cfg.Provider.MaxInputChars,
	)

	embedCtx, cancel := context.WithTimeout(ctx, s.cfg.Queue.EmbedTimeout)
	defer cancel()

	vector, err := s.provider.Embed(embedCtx, text)
	if err != nil {
		return s.failItem(ctx, item, err)
	}
	if len(vector) != s.cfg.Provider.Dimensions {
		return s.failItem(ctx, item, fmt.Errorf("embedding dimension mismatch: got %d, want %d", len(vector), s.cfg.Provider.Dimensions))
	}

	if err := s.repos.Article.UpdateEmbedding(ctx, article.ID, vector); err != nil {
		return s.failItem(ctx, item, err)
	}

	if err := s.repos.Queue.MarkCompleted(ctx, item.ID); err != nil {
		return err
	}

	s.log.Info().
		Str("article_id", article.ID).
		Int("dimensions", len(vector)).
		Msg("Article embedded")

	return nil
}

// failItem marks the item failed with the error message and returns the
// error so the batch result can report it
func (s *queueService) failItem(ctx context.Context, item *models.QueueItem, cause error) error {
	s.log.Warn().
		Err(cause).
		Str("item_id", item.ID).
		Str("article_id", item.ArticleID).
		Int("retry_count", item.RetryCount).
		Msg("Queue item failed")

	if err := s.repos.Queue.MarkFailed(ctx, item.ID, cause.Error()); err != nil {
		s.log.Error().Err(err).Str("item_id", item.ID).Msg("Failed to record queue item failure")
	}
	return cause
}

// Retry resets a failed item to pending. Items at or past the retry cap
// are only re-scheduled through this manual path.
func (s *queueService) Retry(ctx context.Context, articleID string) error {
	reset, err := s.repos.Queue.ResetForRetry(ctx, articleID)
	if err != nil {
		return &models.PersistenceError{Op: "queue retry", Err: err}
	}
	if !reset {
		return &models.NotFoundError{Resource: "failed queue item for article", ID: articleID}
	}

	s.log.Info().Str("article_id", articleID).Msg("Queue item reset for retry")
	return nil
}

// Stats aggregates queue counts for the monitor. Read-only; holds no state.
func (s *queueService) Stats(ctx context.Context) (*models.QueueStats, error) {
	counts, err := s.repos.Queue.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}

	published, err := s.repos.Article.CountPublished(ctx)
	if err != nil {
		return nil, err
	}
	embedded, err := s.repos.Article.CountEmbedded(ctx)
	if err != nil {
		return nil, err
	}

	stats := &models.QueueStats{
		Pending:           counts[models.QueueStatusPending],
		Processing:        counts[models.QueueStatusProcessing],
		Completed:         counts[models.QueueStatusCompleted],
		Failed:            counts[models.QueueStatusFailed],
		PublishedArticles: published,
		EmbeddedArticles:  embedded,
	}
	stats.Total = stats.Pending + stats.Processing + stats.Completed + stats.Failed
	if stats.Total > 0 {
		stats.CompletionPct = float64(stats.Completed) / float64(stats.Total) * 100
	}

	return stats, nil
}
