package repository

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/content-chat-api/internal/database"
	"github.com/content-chat-api/internal/models"
	"github.com/pgvector/pgvector-go"
)

// articleRepo is the concrete implementation of ArticleRepository
type articleRepo struct {
	db *database.DB
}

// NewArticleRepo creates a new article repository
func NewArticleRepo(db *database.DB) ArticleRepository {
	return &articleRepo{db: db}
}

// Create inserts a new article
func (r *articleRepo) Create(ctx context.Context, article *models.Article) error {
	query := `
		INSERT INTO articles (id, slug, title, excerpt, content, category, status, embedding, published_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`
	var embedding interface{}
	if article.Embedding != nil {
		embedding = *article.Embedding
	}
	_, err := r.db.ExecContext(ctx, query,
		article.ID, article.Slug, article.Title, article.Excerpt, article.Content,
		article.Category, article.Status, embedding, article.PublishedAt,
		article.CreatedAt, time.Now(),
	)
	if err != nil {
		return &models.PersistenceError{Op: "article create", Err: err}
	}
	return nil
}

// GetByID retrieves an article by ID
func (r *articleRepo) GetByID(ctx context.Context, id string) (*models.Article, error) {
	query := `
		SELECT id, slug, title, excerpt, content, category, status,
			embedding IS NOT NULL, published_at, created_at, updated_at
		FROM articles WHERE id = $1
	`

	var article models.Article
	var publishedAt sql.NullTime

	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&article.ID, &article.Slug, &article.Title, &article.Excerpt, &article.Content,
		&article.Category, &article.Status, &article.HasVector,
		&publishedAt, &article.CreatedAt, &article.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	if publishedAt.Valid {
		article.PublishedAt = &publishedAt.Time
	}

	return &article, nil
}

// UpdateEmbedding writes the computed vector to the article
func (r *articleRepo) UpdateEmbedding(ctx context.Context, id string, embedding []float32) error {
	query := `UPDATE articles SET embedding = $1, updated_at = $2 WHERE id = $3`
	result, err := r.db.ExecContext(ctx, query, pgvector.NewVector(embedding), time.Now(), id)
	if err != nil {
		return &models.PersistenceError{Op: "embedding update", Err: err}
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return &models.NotFoundError{Resource: "article", ID: id}
	}
	return nil
}

// SearchByEmbedding returns the nearest published-article vectors above
// the similarity threshold, ordered by descending cosine similarity
func (r *articleRepo) SearchByEmbedding(ctx context.Context, embedding []float32, limit int, threshold float64) ([]models.SearchResult, error) {
	query := `
		SELECT id, title, slug, excerpt, category, 1 - (embedding <=> $1) AS similarity
		FROM articles
		WHERE status = 'published'
			AND embedding IS NOT NULL
			AND 1 - (embedding <=> $1) >= $2
		ORDER BY embedding <=> $1
		LIMIT $3
	`
	rows, err := r.db.QueryContext(ctx, query, pgvector.NewVector(embedding), threshold, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanSearchResults(rows)
}

// SearchByKeyword is the fallback path: a case-insensitive substring
// match over title/excerpt/content, restricted to published articles,
// ordered by recency
func (r *articleRepo) SearchByKeyword(ctx context.Context, query string, limit int) ([]models.SearchResult, error) {
	pattern := "%" + escapeLike(query) + "%"
	stmt := `
		SELECT id, title, slug, excerpt, category, 0 AS similarity
		FROM articles
		WHERE status = 'published'
			AND (title ILIKE $1 OR excerpt ILIKE $1 OR content ILIKE $1)
		ORDER BY published_at DESC NULLS LAST, created_at DESC
		LIMIT $2
	`
	rows, err := r.db.QueryContext(ctx, stmt, pattern, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanSearchResults(rows)
}

// CountPublished returns the number of published articles
func (r *articleRepo) CountPublished(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM articles WHERE status = 'published'").Scan(&count)
	return count, err
}

// CountEmbedded returns the number of published articles with a vector,
// used to detect a sparse index before attempting semantic search
func (r *articleRepo) CountEmbedded(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM articles WHERE status = 'published' AND embedding IS NOT NULL").Scan(&count)
	return count, err
}

func scanSearchResults(rows *sql.Rows) ([]models.SearchResult, error) {
	var results []models.SearchResult
	for rows.Next() {
		var res models.SearchResult
		if err := rows.Scan(&res.ArticleID, &res.Title, &res.Slug, &res.Excerpt, &res.Category, &res.Score); err != nil {
			return nil, err
		}
		results = append(results, res)
	}
	return results, rows.Err()
}

// escapeLike neutralizes LIKE wildcards in user-supplied queries
func escapeLike(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `%`, `\%`)
	s = strings.ReplaceAll(s, `_`, `\_`)
	return s
}
