package rest

import (
	"errors"
	"log/slog"
	"net/http"

	"news-curator/internal/domain"
	"news-curator/internal/middleware"
	"news-curator/internal/usecase"

	"github.com/labstack/echo/v4"
)

// Handler exposes the curator's HTTP API.
type Handler struct {
	recommendUsecase usecase.RecommendArticlesUsecase
	searchUsecase    usecase.SearchArticlesUsecase
	recordUsecase    usecase.RecordActivityUsecase
	ingestUsecase    usecase.IngestArticlesUsecase
	logger           *slog.Logger
}

func NewHandler(
	recommendUsecase usecase.RecommendArticlesUsecase,
	searchUsecase usecase.SearchArticlesUsecase,
	recordUsecase usecase.RecordActivityUsecase,
	ingestUsecase usecase.IngestArticlesUsecase,
	logger *slog.Logger,
) *Handler {
	return &Handler{
		recommendUsecase: recommendUsecase,
		searchUsecase:    searchUsecase,
		recordUsecase:    recordUsecase,
		ingestUsecase:    ingestUsecase,
		logger:           logger,
	}
}

// RegisterRoutes mounts the API under /v1. Recommendation and activity
// routes require a resolved session; search and news proxying do not.
func (h *Handler) RegisterRoutes(e *echo.Echo, auth *middleware.AuthMiddleware) {
	v1 := e.Group("/v1")
	v1.POST("/search", h.Search)
	v1.GET("/news/fetch", h.FetchNews)

	authed := v1.Group("", auth.RequireAuth())
	authed.GET("/recommendations", h.Recommendations)
	authed.POST("/activities", h.RecordActivity)
	authed.DELETE("/bookmarks/:article_id", h.RemoveBookmark)
}

type errorResponse struct {
	Error  string `json:"error"`
	Detail string `json:"detail,omitempty"`
}

// GET /v1/recommendations
func (h *Handler) Recommendations(c echo.Context) error {
	user, err := domain.GetUserFromContext(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusUnauthorized, errorResponse{Error: "invalid session"})
	}

	output, err := h.recommendUsecase.Execute(c.Request().Context(), user.UserID)
	if err != nil {
		h.logger.Error("recommendation request failed",
			"user_id", user.UserID, "error", err)
		return c.JSON(http.StatusInternalServerError, errorResponse{
			Error:  "failed to compute recommendations",
			Detail: err.Error(),
		})
	}
	return c.JSON(http.StatusOK, output)
}

type searchRequest struct {
	Query string `json:"query"`
	TopK  int    `json:"top_k"`
}

// POST /v1/search
func (h *Handler) Search(c echo.Context) error {
	var req searchRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request body"})
	}

	output, err := h.searchUsecase.Execute(c.Request().Context(), usecase.SearchInput{
		Query: req.Query,
		TopK:  req.TopK,
	})
	if err != nil {
		h.logger.Error("search request failed", "error", err)
		return c.JSON(http.StatusInternalServerError, errorResponse{
			Error:  "search failed",
			Detail: err.Error(),
		})
	}
	return c.JSON(http.StatusOK, output)
}

type newsResponse struct {
	Articles []domain.Article `json:"articles"`
	Total    int              `json:"total"`
}

// GET /v1/news/fetch
func (h *Handler) FetchNews(c echo.Context) error {
	query := c.QueryParam("q")
	pageSize := 0
	if raw := c.QueryParam("page_size"); raw != "" {
		if err := echo.QueryParamsBinder(c).Int("page_size", &pageSize).BindError(); err != nil {
			return c.JSON(http.StatusBadRequest, errorResponse{Error: "page_size must be an integer"})
		}
	}

	articles, err := h.ingestUsecase.FetchNews(c.Request().Context(), query, pageSize)
	if err != nil {
		h.logger.Error("news fetch failed", "query", query, "error", err)
		return c.JSON(http.StatusInternalServerError, errorResponse{
			Error:  "failed to fetch news",
			Detail: err.Error(),
		})
	}
	return c.JSON(http.StatusOK, newsResponse{Articles: articles, Total: len(articles)})
}

type activityRequest struct {
	ArticleID    string `json:"article_id"`
	Kind         string `json:"kind"`
	DwellSeconds int    `json:"dwell_seconds"`
	Category     string `json:"category"`
	Source       string `json:"source"`
}

// POST /v1/activities
func (h *Handler) RecordActivity(c echo.Context) error {
	user, err := domain.GetUserFromContext(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusUnauthorized, errorResponse{Error: "invalid session"})
	}

	var req activityRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request body"})
	}

	activity, err := h.recordUsecase.Record(c.Request().Context(), user.UserID,
		usecase.RecordActivityInput{
			ArticleID:    req.ArticleID,
			Kind:         domain.ActivityKind(req.Kind),
			DwellSeconds: req.DwellSeconds,
			Category:     req.Category,
			Source:       req.Source,
		})
	if err != nil {
		if errors.Is(err, domain.ErrInvalidActivity) {
			return c.JSON(http.StatusBadRequest, errorResponse{
				Error:  "invalid activity",
				Detail: err.Error(),
			})
		}
		h.logger.Error("activity recording failed",
			"user_id", user.UserID, "error", err)
		return c.JSON(http.StatusInternalServerError, errorResponse{
			Error:  "failed to record activity",
			Detail: err.Error(),
		})
	}
	return c.JSON(http.StatusCreated, activity)
}

// DELETE /v1/bookmarks/:article_id
func (h *Handler) RemoveBookmark(c echo.Context) error {
	user, err := domain.GetUserFromContext(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusUnauthorized, errorResponse{Error: "invalid session"})
	}

	articleID := c.Param("article_id")
	if err := h.recordUsecase.RemoveBookmark(c.Request().Context(), user.UserID, articleID); err != nil {
		if errors.Is(err, domain.ErrArticleNotFound) {
			return c.JSON(http.StatusNotFound, errorResponse{Error: "bookmark not found"})
		}
		h.logger.Error("bookmark removal failed",
			"user_id", user.UserID, "article_id", articleID, "error", err)
		return c.JSON(http.StatusInternalServerError, errorResponse{
			Error:  "failed to remove bookmark",
			Detail: err.Error(),
		})
	}
	return c.NoContent(http.StatusNoContent)
}
