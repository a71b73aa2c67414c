package repository

import (
	"context"
	"fmt"
	"time"

	"news-curator/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/pgvector/pgvector-go"
)

type articleRepository struct {
	db DB
}

// NewArticleRepository creates a new ArticleRepository backed by Postgres.
func NewArticleRepository(db DB) domain.ArticleRepository {
	return &articleRepository{db: db}
}

func (r *articleRepository) RecentCandidates(ctx context.Context, since time.Time, limit int) ([]domain.Article, error) {
	query := `
		SELECT id, title, description, url, category, source, published_at
		FROM articles
		WHERE published_at >= $1
		ORDER BY published_at DESC
		LIMIT $2
	`
	rows, err := r.db.Query(ctx, query, since, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query candidates: %w", err)
	}
	defer rows.Close()

	return scanArticles(rows, false)
}

func (r *articleRepository) RecentWithEmbeddings(ctx context.Context, since time.Time, limit int) ([]domain.Article, error) {
	query := `
		SELECT id, title, description, url, category, source, published_at, embedding
		FROM articles
		WHERE published_at >= $1 AND embedding IS NOT NULL
		ORDER BY published_at DESC
		LIMIT $2
	`
	rows, err := r.db.Query(ctx, query, since, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query embedded articles: %w", err)
	}
	defer rows.Close()

	return scanArticles(rows, true)
}

func (r *articleRepository) SearchSimilar(ctx context.Context, embedding []float32, limit int) ([]domain.ScoredArticle, error) {
	query := `
		SELECT id, title, description, url, category, source, published_at,
		       1 - (embedding <=> $1) AS similarity
		FROM articles
		WHERE embedding IS NOT NULL
		ORDER BY embedding <=> $1
		LIMIT $2
	`
	rows, err := r.db.Query(ctx, query, pgvector.NewVector(embedding), limit)
	if err != nil {
		return nil, fmt.Errorf("failed to run vector search: %w", err)
	}
	defer rows.Close()

	var results []domain.ScoredArticle
	for rows.Next() {
		var sa domain.ScoredArticle
		if err := rows.Scan(&sa.ID, &sa.Title, &sa.Description, &sa.URL,
			&sa.Category, &sa.Source, &sa.PublishedAt, &sa.Score); err != nil {
			return nil, fmt.Errorf("failed to scan search result: %w", err)
		}
		results = append(results, sa)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}
	return results, nil
}

func (r *articleRepository) UpsertArticles(ctx context.Context, articles []domain.Article) (int, error) {
	if len(articles) == 0 {
		return 0, nil
	}

	query := `
		INSERT INTO articles (id, title, description, url, category, source, published_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (id) DO UPDATE SET
			title = EXCLUDED.title,
			description = EXCLUDED.description,
			category = EXCLUDED.category,
			source = EXCLUDED.source,
			published_at = EXCLUDED.published_at
	`

	batch := &pgx.Batch{}
	for _, art := range articles {
		batch.Queue(query, art.ID, art.Title, art.Description, art.URL,
			art.Category, art.Source, art.PublishedAt)
	}

	results := r.db.SendBatch(ctx, batch)
	defer results.Close()

	upserted := 0
	for range articles {
		tag, err := results.Exec()
		if err != nil {
			return upserted, fmt.Errorf("failed to upsert article: %w", err)
		}
		upserted += int(tag.RowsAffected())
	}
	return upserted, nil
}

func (r *articleRepository) MissingEmbedding(ctx context.Context, limit int) ([]domain.Article, error) {
	query := `
		SELECT id, title, description, url, category, source, published_at
		FROM articles
		WHERE embedding IS NULL
		ORDER BY published_at ASC
		LIMIT $1
	`
	rows, err := r.db.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query unembedded articles: %w", err)
	}
	defer rows.Close()

	return scanArticles(rows, false)
}

func (r *articleRepository) SetEmbedding(ctx context.Context, articleID string, embedding []float32) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE articles SET embedding = $1 WHERE id = $2`,
		pgvector.NewVector(embedding), articleID)
	if err != nil {
		return fmt.Errorf("failed to set embedding: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrArticleNotFound
	}
	return nil
}

func scanArticles(rows pgx.Rows, withEmbedding bool) ([]domain.Article, error) {
	var articles []domain.Article
	for rows.Next() {
		var a domain.Article
		dest := []interface{}{&a.ID, &a.Title, &a.Description, &a.URL,
			&a.Category, &a.Source, &a.PublishedAt}
		if withEmbedding {
			dest = append(dest, &a.Embedding)
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("failed to scan article: %w", err)
		}
		articles = append(articles, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}
	return articles, nil
}
