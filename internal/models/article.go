package models

import (
	"time"

	"github.com/pgvector/pgvector-go"
)

// Article statuses; only published articles are eligible for embedding and retrieval
const (
	ArticleStatusDraft     = "draft"
	ArticleStatusPublished = "published"
)

// Article represents an article in the content store
type Article struct {
	ID          string           `json:"id" db:"id"`
	Slug        string           `json:"slug" db:"slug"`
	Title       string           `json:"title" db:"title"`
	Excerpt     string           `json:"excerpt" db:"excerpt"`
	Content     string           `json:"content" db:"content"`
	Category    string           `json:"category" db:"category"`
	Status      string           `json:"status" db:"status"`
	Embedding   *pgvector.Vector `json:"-" db:"embedding"` // nullable until first successful processing
	HasVector   bool             `json:"has_vector" db:"-"`
	PublishedAt *time.Time       `json:"published_at,omitempty" db:"published_at"`
	CreatedAt   time.Time        `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at" db:"updated_at"`
}

// URL returns the public path of the article, used for chat references
func (a *Article) URL() string {
	return "/articles/" + a.Slug
}

// IsPublished reports whether the article is visible to retrieval
func (a *Article) IsPublished() bool {
	return a.Status == ArticleStatusPublished
}
