package logger

import (
	"context"
	"log/slog"
	"os"
)

type ContextKey string

const (
	// Business context keys, following OpenTelemetry semantic conventions
	// with a 'curator.' prefix.
	UserIDKey    ContextKey = "curator.user.id"
	ArticleIDKey ContextKey = "curator.article.id"
	StageKey     ContextKey = "curator.processing.stage"
)

// ContextLogger provides context-aware logging with request business context.
type ContextLogger struct {
	logger      *slog.Logger
	serviceName string
}

// NewContextLogger creates a new context-aware logger.
func NewContextLogger(serviceName string) *ContextLogger {
	opts := &slog.HandlerOptions{
		Level: parseLevel(os.Getenv("LOG_LEVEL")),
	}
	handler := slog.NewJSONHandler(os.Stdout, opts)

	return &ContextLogger{
		logger:      slog.New(handler),
		serviceName: serviceName,
	}
}

// WithContext returns a logger with context values extracted as fields.
func (cl *ContextLogger) WithContext(ctx context.Context) *slog.Logger {
	logger := cl.logger.With("service", cl.serviceName)

	var fields []any

	if userID := ctx.Value(UserIDKey); userID != nil {
		fields = append(fields, string(UserIDKey), userID)
	}
	if articleID := ctx.Value(ArticleIDKey); articleID != nil {
		fields = append(fields, string(ArticleIDKey), articleID)
	}
	if stage := ctx.Value(StageKey); stage != nil {
		fields = append(fields, string(StageKey), stage)
	}

	if len(fields) > 0 {
		logger = logger.With(fields...)
	}

	return logger
}

// WithUserID adds the acting user to context for observability.
func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, UserIDKey, userID)
}

// WithArticleID adds an article ID to context for observability.
func WithArticleID(ctx context.Context, articleID string) context.Context {
	return context.WithValue(ctx, ArticleIDKey, articleID)
}

// WithStage adds the processing stage to context for observability.
func WithStage(ctx context.Context, stage string) context.Context {
	return context.WithValue(ctx, StageKey, stage)
}
