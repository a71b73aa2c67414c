package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// ArticleRepository is the storage port for articles and their embeddings.
type ArticleRepository interface {
	// RecentCandidates returns articles published since the given time,
	// newest first, capped at limit.
	RecentCandidates(ctx context.Context, since time.Time, limit int) ([]Article, error)
	// RecentWithEmbeddings returns recent articles that carry a stored
	// embedding, for in-memory similarity scoring.
	RecentWithEmbeddings(ctx context.Context, since time.Time, limit int) ([]Article, error)
	// SearchSimilar runs a server-side vector search over all embedded
	// articles, returning the top matches by similarity (1 - cosine distance).
	SearchSimilar(ctx context.Context, embedding []float32, limit int) ([]ScoredArticle, error)
	// UpsertArticles inserts or refreshes articles keyed by their URL-derived ID.
	UpsertArticles(ctx context.Context, articles []Article) (int, error)
	// MissingEmbedding returns articles without a stored embedding, oldest
	// first, for the backfill CLI.
	MissingEmbedding(ctx context.Context, limit int) ([]Article, error)
	// SetEmbedding stores the embedding vector for one article.
	SetEmbedding(ctx context.Context, articleID string, embedding []float32) error
}

// ActivityRepository is the storage port for interaction rows.
type ActivityRepository interface {
	// Insert records one activity row.
	Insert(ctx context.Context, activity Activity) error
	// RecentByUser returns a user's activities created since the given time.
	RecentByUser(ctx context.Context, userID uuid.UUID, since time.Time) ([]Activity, error)
	// InteractedArticleIDs returns every article ID the user has interacted
	// with, regardless of kind or age.
	InteractedArticleIDs(ctx context.Context, userID uuid.UUID) (map[string]struct{}, error)
	// DeleteBookmark removes a user's bookmark rows for one article.
	DeleteBookmark(ctx context.Context, userID uuid.UUID, articleID string) error
}
