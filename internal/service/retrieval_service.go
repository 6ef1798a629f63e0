package service

import (
	"context"
	"fmt"

	"github.com/content-chat-api/internal/config"
	"github.com/content-chat-api/internal/models"
	"github.com/content-chat-api/internal/provider"
	"github.com/content-chat-api/internal/repository"
	"github.com/rs/zerolog"
)

// retrievalService implements the hybrid search strategy: semantic search
// against the vector index, degrading to a keyword substring match when
// the semantic path fails or comes up empty. Semantic search depends on a
// rate-limited external service and a possibly sparse index; keyword
// search guarantees baseline availability.
type retrievalService struct {
	repos    *repository.Repositories
	provider provider.Provider
	cfg      *config.Config
	log      zerolog.Logger
}

// newRetrievalService creates a new RetrievalService
func newRetrievalService(repos *repository.Repositories, p provider.Provider, cfg *config.Config, log zerolog.Logger) *retrievalService {
	return &retrievalService{
		repos:    repos,
		provider: p,
		cfg:      cfg,
		log:      log.With().Str("service", "retrieval").Logger(),
	}
}

// Retrieve returns up to maxResults search results for the query. A
// semantic failure never propagates; the caller sees keyword results or
// an empty list.
func (s *retrievalService) Retrieve(ctx context.Context, query string, maxResults int) ([]models.SearchResult, error) {
	if maxResults <= 0 {
		maxResults = s.cfg.Retrieval.MaxResults
	}

	results, err := s.semanticSearch(ctx, query, maxResults)
	if err != nil {
		s.log.Warn().Err(err).Msg("Semantic search failed, falling back to keyword search")
		results = nil
	}
	if len(results) > 0 {
		return results, nil
	}

	results, err = s.repos.Article.SearchByKeyword(ctx, query, maxResults)
	if err != nil {
		return nil, &models.PersistenceError{Op: "keyword search", Err: err}
	}
	if results == nil {
		results = []models.SearchResult{}
	}

	s.log.Debug().
		Str("query", query).
		Int("results", len(results)).
		Msg("Keyword search completed")

	return results, nil
}

// semanticSearch embeds the query and matches it against the vector index
func (s *retrievalService) semanticSearch(ctx context.Context, query string, maxResults int) ([]models.SearchResult, error) {
	// A sparse index means new articles have no vectors yet; treat it
	// like a provider outage and fall back
	embedded, err := s.repos.Article.CountEmbedded(ctx)
	if err != nil {
		return nil, fmt.Errorf("check vector index: %w", err)
	}
	if embedded == 0 {
		return nil, fmt.Errorf("vector index is empty")
	}

	embedCtx, cancel := context.WithTimeout(ctx, s.cfg.Queue.EmbedTimeout)
	defer cancel()

	vector, err := s.provider.Embed(embedCtx, provider.PrepareText(query, s.cfg.Provider.MaxInputChars))
	if err != nil {
		return nil, err
	}
	if len(vector) != s.cfg.Provider.Dimensions {
		return nil, fmt.Errorf("query embedding dimension mismatch: got %d, want %d", len(vector), s.cfg.Provider.Dimensions)
	}

	results, err := s.repos.Article.SearchByEmbedding(ctx, vector, maxResults, s.cfg.Retrieval.SimilarityThreshold)
	if err != nil {
		return nil, fmt.Errorf("vector search: %w", err)
	}

	s.log.Debug().
		Str("query", query).
		Int("results", len(results)).
		Float64("threshold", s.cfg.Retrieval.SimilarityThreshold).
		Msg("Semantic search completed")

	return results, nil
}
