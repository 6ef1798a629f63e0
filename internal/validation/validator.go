package validation

import (
	"strings"

	"github.com/content-chat-api/internal/models"
	"github.com/google/uuid"
)

const (
	maxQueryChars   = 1000
	maxHistoryTurns = 10
	maxBatchSize    = 100
)

// ValidationError represents a single validation error
type ValidationError struct {
	Field   string      `json:"field"`
	Message string      `json:"message"`
	Value   interface{} `json:"value,omitempty"`
}

// ValidateChatRequest validates the body of the chat endpoint
func ValidateChatRequest(req *models.ChatRequest) []ValidationError {
	var errors []ValidationError

	query := strings.TrimSpace(req.Query)
	if query == "" {
		errors = append(errors, ValidationError{Field: "query", Message: "query is required"})
	} else if len([]rune(query)) > maxQueryChars {
		errors = append(errors, ValidationError{
			Field:   "query",
			Message: "query exceeds maximum length",
			Value:   len([]rune(query)),
		})
	}

	if req.Language != "" {
		lang := strings.ToLower(strings.TrimSpace(req.Language))
		if len(lang) != 2 || !isAlpha(lang) {
			errors = append(errors, ValidationError{
				Field:   "language",
				Message: "language must be a two-letter code",
				Value:   req.Language,
			})
		}
	}

	if len(req.ConversationHistory) > maxHistoryTurns {
		errors = append(errors, ValidationError{
			Field:   "conversationHistory",
			Message: "conversation history exceeds the bounded window",
			Value:   len(req.ConversationHistory),
		})
	}
	for i, turn := range req.ConversationHistory {
		if turn.Role != "user" && turn.Role != "assistant" {
			errors = append(errors, ValidationError{
				Field:   "conversationHistory",
				Message: "role must be user or assistant",
				Value:   turn.Role,
			})
			break
		}
		if strings.TrimSpace(turn.Content) == "" {
			errors = append(errors, ValidationError{
				Field:   "conversationHistory",
				Message: "turn content must not be empty",
				Value:   i,
			})
			break
		}
	}

	return errors
}

// ValidateProcessRequest validates the body of the queue-processing trigger
func ValidateProcessRequest(req *models.ProcessRequest) []ValidationError {
	var errors []ValidationError

	if req.BatchSize < 0 {
		errors = append(errors, ValidationError{
			Field:   "batchSize",
			Message: "batchSize must not be negative",
			Value:   req.BatchSize,
		})
	}
	if req.BatchSize > maxBatchSize {
		errors = append(errors, ValidationError{
			Field:   "batchSize",
			Message: "batchSize exceeds maximum",
			Value:   req.BatchSize,
		})
	}

	return errors
}

// ValidateArticleID checks that a path parameter is a well-formed UUID
func ValidateArticleID(id string) []ValidationError {
	if _, err := uuid.Parse(id); err != nil {
		return []ValidationError{{
			Field:   "article_id",
			Message: "article_id must be a valid UUID",
			Value:   id,
		}}
	}
	return nil
}

func isAlpha(s string) bool {
	for _, r := range s {
		if r < 'a' || r > 'z' {
			return false
		}
	}
	return true
}
