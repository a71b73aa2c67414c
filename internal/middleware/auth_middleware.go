package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"news-curator/internal/adapter/authhub"
	"news-curator/internal/domain"
	"news-curator/internal/infra/logger"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// SessionValidator resolves request credentials to a user identity.
type SessionValidator interface {
	ValidateSession(ctx context.Context, cookie, authorization string) (*domain.UserContext, error)
}

// AuthMiddleware validates sessions against the auth hub and attaches the
// resolved user to the request context.
type AuthMiddleware struct {
	validator SessionValidator
	logger    *slog.Logger
}

func NewAuthMiddleware(validator SessionValidator, logger *slog.Logger) *AuthMiddleware {
	return &AuthMiddleware{
		validator: validator,
		logger:    logger,
	}
}

// RequireAuth rejects requests whose credential does not resolve to a user.
// Auth hub outages answer 502 so clients can tell "retry later" from "log in
// again".
func (m *AuthMiddleware) RequireAuth() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			requestID := c.Request().Header.Get("X-Request-Id")
			if requestID == "" {
				requestID = uuid.NewString()
				c.Request().Header.Set("X-Request-Id", requestID)
			}

			user, err := m.validator.ValidateSession(
				c.Request().Context(),
				c.Request().Header.Get("Cookie"),
				c.Request().Header.Get("Authorization"),
			)
			if err != nil {
				if errors.Is(err, authhub.ErrInvalidSession) {
					return echo.NewHTTPError(http.StatusUnauthorized, "invalid session")
				}
				m.logger.Warn("session validation failed",
					"error", err,
					"x_request_id", requestID)
				return echo.NewHTTPError(http.StatusBadGateway, "auth unavailable")
			}

			ctx := domain.SetUserContext(c.Request().Context(), user)
			ctx = logger.WithUserID(ctx, user.UserID.String())
			c.SetRequest(c.Request().WithContext(ctx))
			c.Set("auth.valid", true)
			c.Set("x_request_id", requestID)
			return next(c)
		}
	}
}
