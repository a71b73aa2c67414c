package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"news-curator/internal/domain"

	"github.com/google/uuid"
)

// RecordActivityInput carries one interaction to record.
type RecordActivityInput struct {
	ArticleID    string
	Kind         domain.ActivityKind
	DwellSeconds int
	Category     string
	Source       string
}

// RecordActivityUsecase persists interaction rows and bookmark removals.
type RecordActivityUsecase interface {
	Record(ctx context.Context, userID uuid.UUID, input RecordActivityInput) (domain.Activity, error)
	RemoveBookmark(ctx context.Context, userID uuid.UUID, articleID string) error
}

type recordActivityUsecase struct {
	activityRepo domain.ActivityRepository
	cache        ResponseCache
	logger       *slog.Logger
}

// NewRecordActivityUsecase creates a new RecordActivityUsecase. cache may be
// nil when caching is disabled.
func NewRecordActivityUsecase(
	activityRepo domain.ActivityRepository,
	cache ResponseCache,
	logger *slog.Logger,
) RecordActivityUsecase {
	return &recordActivityUsecase{
		activityRepo: activityRepo,
		cache:        cache,
		logger:       logger,
	}
}

func (u *recordActivityUsecase) Record(ctx context.Context, userID uuid.UUID, input RecordActivityInput) (domain.Activity, error) {
	activity, err := domain.NewActivity(userID, input.ArticleID, input.Kind,
		input.DwellSeconds, input.Category, input.Source)
	if err != nil {
		return domain.Activity{}, err
	}

	if err := u.activityRepo.Insert(ctx, activity); err != nil {
		return domain.Activity{}, fmt.Errorf("failed to record activity: %w", err)
	}

	// Fresh interactions should show up in the next recommendation request.
	if u.cache != nil {
		u.cache.Invalidate(ctx, userID)
	}

	u.logger.Debug("activity recorded",
		"user_id", userID,
		"article_id", activity.ArticleID,
		"kind", activity.Kind,
	)
	return activity, nil
}

func (u *recordActivityUsecase) RemoveBookmark(ctx context.Context, userID uuid.UUID, articleID string) error {
	if articleID == "" {
		return fmt.Errorf("article id cannot be empty")
	}
	if err := u.activityRepo.DeleteBookmark(ctx, userID, articleID); err != nil {
		return fmt.Errorf("failed to remove bookmark: %w", err)
	}
	if u.cache != nil {
		u.cache.Invalidate(ctx, userID)
	}
	return nil
}
