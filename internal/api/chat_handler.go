package api

import (
	"net/http"

	"github.com/content-chat-api/internal/config"
	"github.com/content-chat-api/internal/models"
	"github.com/content-chat-api/internal/service"
	"github.com/content-chat-api/internal/validation"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// ChatHandler handles the retrieve-and-answer endpoint
type ChatHandler struct {
	services *service.Services
	cfg      *config.Config
	log      zerolog.Logger
}

// NewChatHandler creates a new ChatHandler
func NewChatHandler(services *service.Services, cfg *config.Config, log zerolog.Logger) *ChatHandler {
	return &ChatHandler{
		services: services,
		cfg:      cfg,
		log:      log.With().Str("handler", "chat").Logger(),
	}
}

// Chat handles POST /v1/chat. Whatever goes wrong downstream, the
// response body is a well-formed ChatResponse.
func (h *ChatHandler) Chat(c *gin.Context) {
	ctx := c.Request.Context()

	var req models.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ChatResponse{
			Success:    false,
			References: []models.Reference{},
			Error:      "invalid request body",
		})
		return
	}

	if errs := validation.ValidateChatRequest(&req); len(errs) > 0 {
		c.JSON(http.StatusBadRequest, models.ChatResponse{
			Success:    false,
			References: []models.Reference{},
			Error:      errs[0].Field + ": " + errs[0].Message,
		})
		return
	}

	results, err := h.services.Retrieval.Retrieve(ctx, req.Query, h.cfg.Retrieval.MaxResults)
	if err != nil {
		h.log.Error().Err(err).Str("query", req.Query).Msg("Retrieval failed on both paths")
		c.JSON(http.StatusInternalServerError, models.ChatResponse{
			Success:    false,
			Answer:     service.ApologyMessage(req.Language),
			References: []models.Reference{},
			Error:      "retrieval failed",
		})
		return
	}

	answer, err := h.services.Answer.Answer(ctx, req.Query, req.ConversationHistory, results, req.Language)
	if err != nil {
		h.log.Error().Err(err).Str("query", req.Query).Msg("Answer synthesis failed")
		c.JSON(http.StatusInternalServerError, models.ChatResponse{
			Success:    false,
			Answer:     service.ApologyMessage(req.Language),
			References: []models.Reference{},
			Error:      "synthesis failed",
		})
		return
	}

	c.JSON(http.StatusOK, models.ChatResponse{
		Success:      true,
		Answer:       answer.Text,
		References:   answer.References,
		ResultsCount: len(results),
	})
}
