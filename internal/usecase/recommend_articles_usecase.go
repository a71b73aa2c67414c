package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"news-curator/internal/domain"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// RecommendOutput is the ranked recommendation response for one user.
type RecommendOutput struct {
	Recommendations []domain.ScoredArticle `json:"recommendations"`
	UserPreferences domain.Preferences     `json:"user_preferences"`
}

// RecommendArticlesUsecase produces preference-ranked recommendations.
type RecommendArticlesUsecase interface {
	Execute(ctx context.Context, userID uuid.UUID) (*RecommendOutput, error)
}

// ResponseCache is the optional short-TTL cache for recommendation responses.
type ResponseCache interface {
	Get(ctx context.Context, userID uuid.UUID, dest any) bool
	Set(ctx context.Context, userID uuid.UUID, value any)
	Invalidate(ctx context.Context, userID uuid.UUID)
}

type recommendArticlesUsecase struct {
	articleRepo  domain.ArticleRepository
	activityRepo domain.ActivityRepository
	cache        ResponseCache
	topLabels    int
	logger       *slog.Logger
	now          func() time.Time
}

// NewRecommendArticlesUsecase creates a new RecommendArticlesUsecase. cache
// may be nil when caching is disabled.
func NewRecommendArticlesUsecase(
	articleRepo domain.ArticleRepository,
	activityRepo domain.ActivityRepository,
	cache ResponseCache,
	topLabels int,
	logger *slog.Logger,
) RecommendArticlesUsecase {
	if topLabels <= 0 {
		topLabels = domain.DefaultTopLabels
	}
	return &recommendArticlesUsecase{
		articleRepo:  articleRepo,
		activityRepo: activityRepo,
		cache:        cache,
		topLabels:    topLabels,
		logger:       logger,
		now:          time.Now,
	}
}

func (u *recommendArticlesUsecase) Execute(ctx context.Context, userID uuid.UUID) (*RecommendOutput, error) {
	if u.cache != nil {
		var cached RecommendOutput
		if u.cache.Get(ctx, userID, &cached) {
			u.logger.Debug("recommendations served from cache", "user_id", userID)
			return &cached, nil
		}
	}

	now := u.now()

	// The three lookups are independent; only the scoring step needs all of
	// them.
	var (
		activities []domain.Activity
		interacted map[string]struct{}
		candidates []domain.Article
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		activities, err = u.activityRepo.RecentByUser(gctx, userID, now.Add(-domain.ActivityWindow))
		if err != nil {
			return fmt.Errorf("failed to load activities: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		interacted, err = u.activityRepo.InteractedArticleIDs(gctx, userID)
		if err != nil {
			return fmt.Errorf("failed to load interacted articles: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		candidates, err = u.articleRepo.RecentCandidates(gctx, now.Add(-domain.CandidateWindow), domain.CandidatePoolLimit)
		if err != nil {
			return fmt.Errorf("failed to load candidates: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	prefs := domain.AggregatePreferences(activities, u.topLabels)
	scored := domain.ScoreCandidates(candidates, interacted, prefs, now)

	u.logger.Info("recommendations computed",
		"user_id", userID,
		"activity_count", len(activities),
		"candidate_count", len(candidates),
		"recommended", len(scored),
	)

	output := &RecommendOutput{
		Recommendations: scored,
		UserPreferences: prefs,
	}
	if output.UserPreferences.TopCategories == nil {
		output.UserPreferences.TopCategories = []string{}
	}
	if output.UserPreferences.TopSources == nil {
		output.UserPreferences.TopSources = []string{}
	}

	if u.cache != nil {
		u.cache.Set(ctx, userID, output)
	}
	return output, nil
}
