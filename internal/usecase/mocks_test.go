package usecase_test

import (
	"context"
	"time"

	"news-curator/internal/domain"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockArticleRepository
type MockArticleRepository struct {
	mock.Mock
}

func (m *MockArticleRepository) RecentCandidates(ctx context.Context, since time.Time, limit int) ([]domain.Article, error) {
	args := m.Called(ctx, since, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Article), args.Error(1)
}

func (m *MockArticleRepository) RecentWithEmbeddings(ctx context.Context, since time.Time, limit int) ([]domain.Article, error) {
	args := m.Called(ctx, since, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Article), args.Error(1)
}

func (m *MockArticleRepository) SearchSimilar(ctx context.Context, embedding []float32, limit int) ([]domain.ScoredArticle, error) {
	args := m.Called(ctx, embedding, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ScoredArticle), args.Error(1)
}

func (m *MockArticleRepository) UpsertArticles(ctx context.Context, articles []domain.Article) (int, error) {
	args := m.Called(ctx, articles)
	return args.Int(0), args.Error(1)
}

func (m *MockArticleRepository) MissingEmbedding(ctx context.Context, limit int) ([]domain.Article, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Article), args.Error(1)
}

func (m *MockArticleRepository) SetEmbedding(ctx context.Context, articleID string, embedding []float32) error {
	args := m.Called(ctx, articleID, embedding)
	return args.Error(0)
}

// MockActivityRepository
type MockActivityRepository struct {
	mock.Mock
}

func (m *MockActivityRepository) Insert(ctx context.Context, activity domain.Activity) error {
	args := m.Called(ctx, activity)
	return args.Error(0)
}

func (m *MockActivityRepository) RecentByUser(ctx context.Context, userID uuid.UUID, since time.Time) ([]domain.Activity, error) {
	args := m.Called(ctx, userID, since)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Activity), args.Error(1)
}

func (m *MockActivityRepository) InteractedArticleIDs(ctx context.Context, userID uuid.UUID) (map[string]struct{}, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]struct{}), args.Error(1)
}

func (m *MockActivityRepository) DeleteBookmark(ctx context.Context, userID uuid.UUID, articleID string) error {
	args := m.Called(ctx, userID, articleID)
	return args.Error(0)
}

// MockVectorEncoder
type MockVectorEncoder struct {
	mock.Mock
}

func (m *MockVectorEncoder) Encode(ctx context.Context, texts []string) ([][]float32, error) {
	args := m.Called(ctx, texts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([][]float32), args.Error(1)
}

func (m *MockVectorEncoder) Version() string {
	return "mock-v1"
}

// MockResponseCache
type MockResponseCache struct {
	mock.Mock
}

func (m *MockResponseCache) Get(ctx context.Context, userID uuid.UUID, dest any) bool {
	args := m.Called(ctx, userID, dest)
	return args.Bool(0)
}

func (m *MockResponseCache) Set(ctx context.Context, userID uuid.UUID, value any) {
	m.Called(ctx, userID, value)
}

func (m *MockResponseCache) Invalidate(ctx context.Context, userID uuid.UUID) {
	m.Called(ctx, userID)
}

// MockNewsFetcher
type MockNewsFetcher struct {
	mock.Mock
}

func (m *MockNewsFetcher) FetchArticles(ctx context.Context, query string, pageSize int) ([]domain.Article, error) {
	args := m.Called(ctx, query, pageSize)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Article), args.Error(1)
}

// MockFeedFetcher
type MockFeedFetcher struct {
	mock.Mock
}

func (m *MockFeedFetcher) FetchFeed(ctx context.Context, feedURL string) ([]domain.Article, error) {
	args := m.Called(ctx, feedURL)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Article), args.Error(1)
}
