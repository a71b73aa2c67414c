package repository

import (
	"context"
	"fmt"
	"time"

	"news-curator/internal/domain"

	"github.com/google/uuid"
)

type activityRepository struct {
	db DB
}

// NewActivityRepository creates a new ActivityRepository backed by Postgres.
func NewActivityRepository(db DB) domain.ActivityRepository {
	return &activityRepository{db: db}
}

func (r *activityRepository) Insert(ctx context.Context, activity domain.Activity) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO activities (id, user_id, article_id, kind, dwell_seconds, category, source, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, activity.ID, activity.UserID, activity.ArticleID, string(activity.Kind),
		activity.DwellSeconds, activity.Category, activity.Source, activity.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert activity: %w", err)
	}
	return nil
}

func (r *activityRepository) RecentByUser(ctx context.Context, userID uuid.UUID, since time.Time) ([]domain.Activity, error) {
	query := `
		SELECT id, user_id, article_id, kind, dwell_seconds, category, source, created_at
		FROM activities
		WHERE user_id = $1 AND created_at >= $2
		ORDER BY created_at ASC
	`
	rows, err := r.db.Query(ctx, query, userID, since)
	if err != nil {
		return nil, fmt.Errorf("failed to query activities: %w", err)
	}
	defer rows.Close()

	var activities []domain.Activity
	for rows.Next() {
		var a domain.Activity
		var kind string
		if err := rows.Scan(&a.ID, &a.UserID, &a.ArticleID, &kind,
			&a.DwellSeconds, &a.Category, &a.Source, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan activity: %w", err)
		}
		a.Kind = domain.ActivityKind(kind)
		activities = append(activities, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}
	return activities, nil
}

func (r *activityRepository) InteractedArticleIDs(ctx context.Context, userID uuid.UUID) (map[string]struct{}, error) {
	rows, err := r.db.Query(ctx,
		`SELECT DISTINCT article_id FROM activities WHERE user_id = $1`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query interacted articles: %w", err)
	}
	defer rows.Close()

	ids := make(map[string]struct{})
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan article id: %w", err)
		}
		ids[id] = struct{}{}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}
	return ids, nil
}

func (r *activityRepository) DeleteBookmark(ctx context.Context, userID uuid.UUID, articleID string) error {
	_, err := r.db.Exec(ctx, `
		DELETE FROM activities
		WHERE user_id = $1 AND article_id = $2 AND kind = $3
	`, userID, articleID, string(domain.ActivityBookmark))
	if err != nil {
		return fmt.Errorf("failed to delete bookmark: %w", err)
	}
	return nil
}
