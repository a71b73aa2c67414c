package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// UserContext is the authenticated identity resolved for a request.
type UserContext struct {
	UserID    uuid.UUID `json:"user_id"`
	Email     string    `json:"email"`
	SessionID string    `json:"session_id"`
	ExpiresAt time.Time `json:"expires_at"`
}

// IsValid checks that the identity resolved and the session has not expired.
func (uc *UserContext) IsValid() bool {
	return uc.UserID != uuid.Nil && uc.ExpiresAt.After(time.Now())
}

type contextKey string

const userContextKey contextKey = "user_context"

// GetUserFromContext extracts the authenticated user from a request context.
func GetUserFromContext(ctx context.Context) (*UserContext, error) {
	user, ok := ctx.Value(userContextKey).(*UserContext)
	if !ok || user == nil {
		return nil, ErrUnauthenticated
	}
	if !user.IsValid() {
		return nil, ErrUnauthenticated
	}
	return user, nil
}

// SetUserContext attaches an authenticated user to a request context.
func SetUserContext(ctx context.Context, user *UserContext) context.Context {
	return context.WithValue(ctx, userContextKey, user)
}
