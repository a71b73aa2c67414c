package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"time"

	"github.com/pgvector/pgvector-go"
)

// Article is a normalized news article. Articles are written by the ingest
// worker and the backfill CLI; the ranking paths treat them as read-only.
type Article struct {
	ID          string          `json:"id"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	URL         string          `json:"url"`
	Category    string          `json:"category"`
	Source      string          `json:"source"`
	PublishedAt time.Time       `json:"published_at"`
	Embedding   pgvector.Vector `json:"-"`
}

// ScoredArticle is an Article with a request-scoped ranking score.
type ScoredArticle struct {
	Article
	Score float64 `json:"score"`
}

// HasEmbedding reports whether a vector has been stored for this article.
func (a *Article) HasEmbedding() bool {
	return len(a.Embedding.Slice()) > 0
}

// ArticleIDFromURL derives a deterministic article identifier from the
// article URL, so re-ingesting the same article never creates a duplicate.
func ArticleIDFromURL(url string) string {
	sum := sha256.Sum256([]byte(url))
	return hex.EncodeToString(sum[:16])
}

// CategoryForTitle assigns the naive ingest-time category.
func CategoryForTitle(title string) string {
	if strings.Contains(strings.ToLower(title), "sport") {
		return "sports"
	}
	return "technology"
}

// RemovedContentSentinel marks entries the upstream news API has retracted.
const RemovedContentSentinel = "[Removed]"

// IsPublishable reports whether a fetched entry carries enough content to be
// stored. Entries with the removed-content sentinel in the title are dropped.
func (a *Article) IsPublishable() bool {
	if a.Title == "" || a.Description == "" || a.URL == "" {
		return false
	}
	return a.Title != RemovedContentSentinel
}
