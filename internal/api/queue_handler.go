package api

import (
	"errors"
	"net/http"

	"github.com/content-chat-api/internal/config"
	"github.com/content-chat-api/internal/models"
	"github.com/content-chat-api/internal/service"
	"github.com/content-chat-api/internal/validation"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// QueueHandler handles queue processing, retry and monitoring endpoints
type QueueHandler struct {
	services *service.Services
	cfg      *config.Config
	log      zerolog.Logger
}

// NewQueueHandler creates a new QueueHandler
func NewQueueHandler(services *service.Services, cfg *config.Config, log zerolog.Logger) *QueueHandler {
	return &QueueHandler{
		services: services,
		cfg:      cfg,
		log:      log.With().Str("handler", "queue").Logger(),
	}
}

// ProcessQueue handles POST /v1/queue/process. The external scheduler
// invokes this endpoint; each call processes one bounded batch.
func (h *QueueHandler) ProcessQueue(c *gin.Context) {
	ctx := c.Request.Context()

	var req models.ProcessRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}
	}

	if errs := validation.ValidateProcessRequest(&req); len(errs) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": errs[0].Field + ": " + errs[0].Message})
		return
	}

	result, err := h.services.Queue.ProcessBatch(ctx, req.BatchSize)
	if err != nil {
		h.log.Error().Err(err).Msg("Batch processing failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to process queue"})
		return
	}

	c.JSON(http.StatusOK, result)
}

// TriggerEmbedding handles POST /v1/articles/:article_id/embed. It
// enqueues a forced-update item and returns the affected article's title.
func (h *QueueHandler) TriggerEmbedding(c *gin.Context) {
	ctx := c.Request.Context()
	articleID := c.Param("article_id")

	if errs := validation.ValidateArticleID(articleID); len(errs) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": errs[0].Message})
		return
	}

	title, err := h.services.Queue.TriggerEmbedding(ctx, articleID)
	if err != nil {
		var notFound *models.NotFoundError
		if errors.As(err, &notFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": notFound.Error()})
			return
		}
		h.log.Error().Err(err).Str("article_id", articleID).Msg("Failed to trigger embedding")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to trigger embedding"})
		return
	}

	c.JSON(http.StatusAccepted, gin.H{
		"article_id": articleID,
		"title":      title,
		"status":     models.QueueStatusPending,
	})
}

// RetryItem handles POST /v1/queue/retry/:article_id, the monitor's
// retry affordance for failed items
func (h *QueueHandler) RetryItem(c *gin.Context) {
	ctx := c.Request.Context()
	articleID := c.Param("article_id")

	if errs := validation.ValidateArticleID(articleID); len(errs) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": errs[0].Message})
		return
	}

	if err := h.services.Queue.Retry(ctx, articleID); err != nil {
		var notFound *models.NotFoundError
		if errors.As(err, &notFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": notFound.Error()})
			return
		}
		h.log.Error().Err(err).Str("article_id", articleID).Msg("Failed to retry queue item")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to retry item"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"article_id": articleID,
		"status":     models.QueueStatusPending,
	})
}

// GetStats handles GET /v1/queue/stats
func (h *QueueHandler) GetStats(c *gin.Context) {
	ctx := c.Request.Context()

	stats, err := h.services.Queue.Stats(ctx)
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to aggregate queue stats")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get queue stats"})
		return
	}

	c.JSON(http.StatusOK, stats)
}
