package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"news-curator/internal/domain"
)

const (
	// DefaultTopK is the search result count when the caller omits one.
	DefaultTopK = 10
	// MaxTopK caps the requested result count.
	MaxTopK = 100
	// fallbackPoolLimit caps the candidate fetch for in-memory scoring.
	fallbackPoolLimit = 500
)

// SearchInput defines the input parameters for Search.
type SearchInput struct {
	Query string
	TopK  int
}

// SearchOutput holds articles ranked by semantic similarity to the query.
type SearchOutput struct {
	Recommendations []domain.ScoredArticle `json:"recommendations"`
}

// SearchArticlesUsecase ranks articles by semantic similarity to a query.
type SearchArticlesUsecase interface {
	Execute(ctx context.Context, input SearchInput) (*SearchOutput, error)
}

type searchArticlesUsecase struct {
	articleRepo domain.ArticleRepository
	encoder     domain.VectorEncoder
	logger      *slog.Logger
	now         func() time.Time
}

// NewSearchArticlesUsecase creates a new SearchArticlesUsecase.
func NewSearchArticlesUsecase(
	articleRepo domain.ArticleRepository,
	encoder domain.VectorEncoder,
	logger *slog.Logger,
) SearchArticlesUsecase {
	return &searchArticlesUsecase{
		articleRepo: articleRepo,
		encoder:     encoder,
		logger:      logger,
		now:         time.Now,
	}
}

func (u *searchArticlesUsecase) Execute(ctx context.Context, input SearchInput) (*SearchOutput, error) {
	query := strings.TrimSpace(input.Query)
	if query == "" {
		// A blank query is a valid empty result, and must not cost an
		// embedding call.
		return &SearchOutput{Recommendations: []domain.ScoredArticle{}}, nil
	}

	topK := input.TopK
	if topK <= 0 {
		topK = DefaultTopK
	}
	if topK > MaxTopK {
		topK = MaxTopK
	}

	embeddings, err := u.encoder.Encode(ctx, []string{query})
	if err != nil {
		return nil, fmt.Errorf("failed to embed query: %w", err)
	}
	if len(embeddings) != 1 {
		return nil, fmt.Errorf("expected 1 embedding, got %d", len(embeddings))
	}
	queryVec := embeddings[0]

	// Preferred path: server-side vector search. Unavailable, failing, or
	// empty results all fall through to in-memory scoring.
	results, err := u.articleRepo.SearchSimilar(ctx, queryVec, topK)
	if err != nil {
		u.logger.Warn("server-side vector search failed, falling back", "error", err)
	} else if len(results) > 0 {
		return &SearchOutput{Recommendations: results}, nil
	}

	return u.fallbackSearch(ctx, queryVec, topK)
}

func (u *searchArticlesUsecase) fallbackSearch(ctx context.Context, queryVec []float32, topK int) (*SearchOutput, error) {
	since := u.now().Add(-domain.CandidateWindow)
	candidates, err := u.articleRepo.RecentWithEmbeddings(ctx, since, fallbackPoolLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to load fallback candidates: %w", err)
	}

	ranked, failed := domain.RankBySimilarity(queryVec, candidates, topK)
	if failed > 0 {
		u.logger.Warn("similarity scoring failed for some candidates",
			"failed", failed,
			"candidate_count", len(candidates),
		)
	}

	u.logger.Info("search served from fallback path",
		"candidate_count", len(candidates),
		"result_count", len(ranked),
	)

	return &SearchOutput{Recommendations: ranked}, nil
}
