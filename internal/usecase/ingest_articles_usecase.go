package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"news-curator/internal/domain"

	"golang.org/x/sync/errgroup"
)

// maxConcurrentFeeds bounds parallel RSS fetches within one sweep.
const maxConcurrentFeeds = 4

// NewsFetcher is the port for the external news API.
type NewsFetcher interface {
	FetchArticles(ctx context.Context, query string, pageSize int) ([]domain.Article, error)
}

// FeedFetcher is the port for RSS/Atom feed sources.
type FeedFetcher interface {
	FetchFeed(ctx context.Context, feedURL string) ([]domain.Article, error)
}

// IngestResult summarizes one ingest sweep.
type IngestResult struct {
	Fetched  int
	Upserted int
}

// IngestArticlesUsecase pulls articles from configured sources into storage.
type IngestArticlesUsecase interface {
	// FetchNews proxies a single news API query without storing anything.
	FetchNews(ctx context.Context, query string, pageSize int) ([]domain.Article, error)
	// Sweep fetches every configured source and upserts the union.
	Sweep(ctx context.Context) (IngestResult, error)
}

type ingestArticlesUsecase struct {
	articleRepo domain.ArticleRepository
	news        NewsFetcher
	feeds       FeedFetcher
	newsQuery   string
	feedURLs    []string
	logger      *slog.Logger
}

// NewIngestArticlesUsecase creates a new IngestArticlesUsecase. feeds may be
// nil when no RSS sources are configured.
func NewIngestArticlesUsecase(
	articleRepo domain.ArticleRepository,
	news NewsFetcher,
	feeds FeedFetcher,
	newsQuery string,
	feedURLs []string,
	logger *slog.Logger,
) IngestArticlesUsecase {
	return &ingestArticlesUsecase{
		articleRepo: articleRepo,
		news:        news,
		feeds:       feeds,
		newsQuery:   newsQuery,
		feedURLs:    feedURLs,
		logger:      logger,
	}
}

func (u *ingestArticlesUsecase) FetchNews(ctx context.Context, query string, pageSize int) ([]domain.Article, error) {
	if query == "" {
		query = u.newsQuery
	}
	if pageSize <= 0 || pageSize > 100 {
		pageSize = 100
	}
	articles, err := u.news.FetchArticles(ctx, query, pageSize)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch news: %w", err)
	}
	return articles, nil
}

func (u *ingestArticlesUsecase) Sweep(ctx context.Context) (IngestResult, error) {
	var (
		mu      sync.Mutex
		fetched []domain.Article
	)
	collect := func(articles []domain.Article) {
		mu.Lock()
		fetched = append(fetched, articles...)
		mu.Unlock()
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentFeeds)

	g.Go(func() error {
		articles, err := u.news.FetchArticles(gctx, u.newsQuery, 100)
		if err != nil {
			// One dead source should not starve the sweep of the others.
			u.logger.Warn("news api fetch failed during sweep", "error", err)
			return nil
		}
		collect(articles)
		return nil
	})

	if u.feeds != nil {
		for _, feedURL := range u.feedURLs {
			g.Go(func() error {
				articles, err := u.feeds.FetchFeed(gctx, feedURL)
				if err != nil {
					u.logger.Warn("feed fetch failed during sweep",
						"feed_url", feedURL, "error", err)
					return nil
				}
				collect(articles)
				return nil
			})
		}
	}

	if err := g.Wait(); err != nil {
		return IngestResult{}, err
	}

	deduped := dedupeByID(fetched)
	upserted, err := u.articleRepo.UpsertArticles(ctx, deduped)
	if err != nil {
		return IngestResult{Fetched: len(deduped)}, fmt.Errorf("failed to upsert articles: %w", err)
	}

	u.logger.Info("ingest sweep completed",
		"fetched", len(deduped),
		"upserted", upserted,
	)
	return IngestResult{Fetched: len(deduped), Upserted: upserted}, nil
}

// dedupeByID keeps the first occurrence of each article ID, preserving order.
func dedupeByID(articles []domain.Article) []domain.Article {
	seen := make(map[string]struct{}, len(articles))
	out := make([]domain.Article, 0, len(articles))
	for _, art := range articles {
		if _, ok := seen[art.ID]; ok {
			continue
		}
		seen[art.ID] = struct{}{}
		out = append(out, art)
	}
	return out
}
