package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ActivityKind tags a single user interaction.
type ActivityKind string

const (
	ActivityView     ActivityKind = "view"
	ActivityClick    ActivityKind = "click"
	ActivityDwell    ActivityKind = "dwell"
	ActivityBookmark ActivityKind = "bookmark"
)

// longDwellThreshold separates an engaged read from a bounce.
const longDwellThreshold = 30 * time.Second

// Activity is one immutable interaction row. Rows are validated at the
// boundary; code past NewActivity can trust the shape.
type Activity struct {
	ID           uuid.UUID    `json:"id"`
	UserID       uuid.UUID    `json:"user_id"`
	ArticleID    string       `json:"article_id"`
	Kind         ActivityKind `json:"kind"`
	DwellSeconds int          `json:"dwell_seconds"`
	Category     string       `json:"category"`
	Source       string       `json:"source"`
	CreatedAt    time.Time    `json:"created_at"`
}

// NewActivity builds a validated activity row.
func NewActivity(userID uuid.UUID, articleID string, kind ActivityKind, dwellSeconds int, category, source string) (Activity, error) {
	if userID == uuid.Nil {
		return Activity{}, fmt.Errorf("%w: user id cannot be empty", ErrInvalidActivity)
	}
	if articleID == "" {
		return Activity{}, fmt.Errorf("%w: article id cannot be empty", ErrInvalidActivity)
	}
	switch kind {
	case ActivityView, ActivityClick, ActivityDwell, ActivityBookmark:
	default:
		return Activity{}, fmt.Errorf("%w: unknown kind %q", ErrInvalidActivity, kind)
	}
	if dwellSeconds < 0 {
		return Activity{}, fmt.Errorf("%w: dwell seconds cannot be negative", ErrInvalidActivity)
	}
	if kind != ActivityDwell {
		dwellSeconds = 0
	}

	return Activity{
		ID:           uuid.New(),
		UserID:       userID,
		ArticleID:    articleID,
		Kind:         kind,
		DwellSeconds: dwellSeconds,
		Category:     category,
		Source:       source,
		CreatedAt:    time.Now().UTC(),
	}, nil
}

// Weight returns the preference weight this interaction contributes to its
// category and source labels. Long dwells count double.
func (a Activity) Weight() int {
	switch a.Kind {
	case ActivityClick:
		return 3
	case ActivityBookmark:
		return 5
	case ActivityDwell:
		if time.Duration(a.DwellSeconds)*time.Second > longDwellThreshold {
			return 2
		}
		return 1
	default:
		return 1
	}
}
