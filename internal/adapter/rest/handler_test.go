package rest_test

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"news-curator/internal/adapter/rest"
	"news-curator/internal/domain"
	"news-curator/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockRecommendUsecase struct {
	mock.Mock
}

func (m *mockRecommendUsecase) Execute(ctx context.Context, userID uuid.UUID) (*usecase.RecommendOutput, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*usecase.RecommendOutput), args.Error(1)
}

type mockSearchUsecase struct {
	mock.Mock
}

func (m *mockSearchUsecase) Execute(ctx context.Context, input usecase.SearchInput) (*usecase.SearchOutput, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*usecase.SearchOutput), args.Error(1)
}

type mockRecordUsecase struct {
	mock.Mock
}

func (m *mockRecordUsecase) Record(ctx context.Context, userID uuid.UUID, input usecase.RecordActivityInput) (domain.Activity, error) {
	args := m.Called(ctx, userID, input)
	return args.Get(0).(domain.Activity), args.Error(1)
}

func (m *mockRecordUsecase) RemoveBookmark(ctx context.Context, userID uuid.UUID, articleID string) error {
	args := m.Called(ctx, userID, articleID)
	return args.Error(0)
}

type mockIngestUsecase struct {
	mock.Mock
}

func (m *mockIngestUsecase) FetchNews(ctx context.Context, query string, pageSize int) ([]domain.Article, error) {
	args := m.Called(ctx, query, pageSize)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Article), args.Error(1)
}

func (m *mockIngestUsecase) Sweep(ctx context.Context) (usecase.IngestResult, error) {
	args := m.Called(ctx)
	return args.Get(0).(usecase.IngestResult), args.Error(1)
}

type handlerMocks struct {
	recommend *mockRecommendUsecase
	search    *mockSearchUsecase
	record    *mockRecordUsecase
	ingest    *mockIngestUsecase
}

func newTestHandler() (*rest.Handler, handlerMocks) {
	m := handlerMocks{
		recommend: new(mockRecommendUsecase),
		search:    new(mockSearchUsecase),
		record:    new(mockRecordUsecase),
		ingest:    new(mockIngestUsecase),
	}
	h := rest.NewHandler(m.recommend, m.search, m.record, m.ingest,
		slog.New(slog.DiscardHandler))
	return h, m
}

func authedContext(e *echo.Echo, req *http.Request, rec *httptest.ResponseRecorder, userID uuid.UUID) echo.Context {
	ctx := domain.SetUserContext(req.Context(), &domain.UserContext{
		UserID:    userID,
		ExpiresAt: time.Now().Add(time.Hour),
	})
	return e.NewContext(req.WithContext(ctx), rec)
}

func TestHandler_Recommendations(t *testing.T) {
	e := echo.New()
	userID := uuid.New()

	t.Run("returns the computed recommendation payload", func(t *testing.T) {
		h, m := newTestHandler()
		output := &usecase.RecommendOutput{
			Recommendations: []domain.ScoredArticle{
				{Article: domain.Article{ID: "c1", Title: "match report"}, Score: 35.5},
			},
			UserPreferences: domain.Preferences{
				TopCategories: []string{"sports"},
				TopSources:    []string{"espn"},
			},
		}
		m.recommend.On("Execute", mock.Anything, userID).Return(output, nil)

		req := httptest.NewRequest(http.MethodGet, "/v1/recommendations", nil)
		rec := httptest.NewRecorder()
		c := authedContext(e, req, rec, userID)

		require.NoError(t, h.Recommendations(c))
		assert.Equal(t, http.StatusOK, rec.Code)

		var body map[string]json.RawMessage
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Contains(t, body, "recommendations")
		assert.Contains(t, body, "user_preferences")
	})

	t.Run("answers 401 without a resolved user", func(t *testing.T) {
		h, _ := newTestHandler()

		req := httptest.NewRequest(http.MethodGet, "/v1/recommendations", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		require.NoError(t, h.Recommendations(c))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("answers 500 with error detail on usecase failure", func(t *testing.T) {
		h, m := newTestHandler()
		m.recommend.On("Execute", mock.Anything, userID).
			Return(nil, errors.New("connection refused"))

		req := httptest.NewRequest(http.MethodGet, "/v1/recommendations", nil)
		rec := httptest.NewRecorder()
		c := authedContext(e, req, rec, userID)

		require.NoError(t, h.Recommendations(c))
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Contains(t, rec.Body.String(), "error")
	})
}

func TestHandler_Search(t *testing.T) {
	e := echo.New()

	t.Run("passes query and top_k through", func(t *testing.T) {
		h, m := newTestHandler()
		m.search.On("Execute", mock.Anything, usecase.SearchInput{Query: "quantum", TopK: 5}).
			Return(&usecase.SearchOutput{Recommendations: []domain.ScoredArticle{}}, nil)

		req := httptest.NewRequest(http.MethodPost, "/v1/search",
			strings.NewReader(`{"query":"quantum","top_k":5}`))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		require.NoError(t, h.Search(c))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"recommendations":[]}`, rec.Body.String())
		m.search.AssertExpectations(t)
	})

	t.Run("surfaces embedding failures as 500", func(t *testing.T) {
		h, m := newTestHandler()
		m.search.On("Execute", mock.Anything, mock.Anything).
			Return(nil, errors.New("failed to embed query: provider unavailable"))

		req := httptest.NewRequest(http.MethodPost, "/v1/search",
			strings.NewReader(`{"query":"quantum"}`))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		require.NoError(t, h.Search(c))
		assert.Equal(t, http.StatusInternalServerError, rec.Code)

		var body map[string]string
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, "search failed", body["error"])
		assert.Contains(t, body["detail"], "provider unavailable")
	})

	t.Run("rejects a malformed body", func(t *testing.T) {
		h, _ := newTestHandler()

		req := httptest.NewRequest(http.MethodPost, "/v1/search",
			strings.NewReader(`{"query":`))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		require.NoError(t, h.Search(c))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestHandler_FetchNews(t *testing.T) {
	e := echo.New()

	t.Run("returns articles with a total count", func(t *testing.T) {
		h, m := newTestHandler()
		articles := []domain.Article{
			{ID: "n1", Title: "chip launch", URL: "https://example.com/1"},
			{ID: "n2", Title: "sports final", URL: "https://example.com/2"},
		}
		m.ingest.On("FetchNews", mock.Anything, "chips", 25).Return(articles, nil)

		req := httptest.NewRequest(http.MethodGet, "/v1/news/fetch?q=chips&page_size=25", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		require.NoError(t, h.FetchNews(c))
		assert.Equal(t, http.StatusOK, rec.Code)

		var body struct {
			Articles []domain.Article `json:"articles"`
			Total    int              `json:"total"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, 2, body.Total)
		assert.Len(t, body.Articles, 2)
	})

	t.Run("rejects a non-numeric page size", func(t *testing.T) {
		h, _ := newTestHandler()

		req := httptest.NewRequest(http.MethodGet, "/v1/news/fetch?page_size=lots", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		require.NoError(t, h.FetchNews(c))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestHandler_RecordActivity(t *testing.T) {
	e := echo.New()
	userID := uuid.New()

	t.Run("records a valid activity", func(t *testing.T) {
		h, m := newTestHandler()
		activity := domain.Activity{
			ID:        uuid.New(),
			UserID:    userID,
			ArticleID: "abc123",
			Kind:      domain.ActivityClick,
		}
		m.record.On("Record", mock.Anything, userID, usecase.RecordActivityInput{
			ArticleID: "abc123",
			Kind:      domain.ActivityClick,
			Category:  "sports",
			Source:    "espn",
		}).Return(activity, nil)

		req := httptest.NewRequest(http.MethodPost, "/v1/activities",
			strings.NewReader(`{"article_id":"abc123","kind":"click","category":"sports","source":"espn"}`))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		rec := httptest.NewRecorder()
		c := authedContext(e, req, rec, userID)

		require.NoError(t, h.RecordActivity(c))
		assert.Equal(t, http.StatusCreated, rec.Code)
		m.record.AssertExpectations(t)
	})

	t.Run("answers 400 on a validation failure", func(t *testing.T) {
		h, m := newTestHandler()
		m.record.On("Record", mock.Anything, userID, mock.Anything).
			Return(domain.Activity{}, domain.ErrInvalidActivity)

		req := httptest.NewRequest(http.MethodPost, "/v1/activities",
			strings.NewReader(`{"article_id":"abc123","kind":"share"}`))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		rec := httptest.NewRecorder()
		c := authedContext(e, req, rec, userID)

		require.NoError(t, h.RecordActivity(c))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("answers 500 on a storage failure", func(t *testing.T) {
		h, m := newTestHandler()
		m.record.On("Record", mock.Anything, userID, mock.Anything).
			Return(domain.Activity{}, errors.New("deadlock detected"))

		req := httptest.NewRequest(http.MethodPost, "/v1/activities",
			strings.NewReader(`{"article_id":"abc123","kind":"view"}`))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		rec := httptest.NewRecorder()
		c := authedContext(e, req, rec, userID)

		require.NoError(t, h.RecordActivity(c))
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
	})

	t.Run("answers 401 without a resolved user", func(t *testing.T) {
		h, _ := newTestHandler()

		req := httptest.NewRequest(http.MethodPost, "/v1/activities",
			strings.NewReader(`{"article_id":"abc123","kind":"view"}`))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		require.NoError(t, h.RecordActivity(c))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestHandler_RemoveBookmark(t *testing.T) {
	e := echo.New()
	userID := uuid.New()

	newDeleteContext := func(rec *httptest.ResponseRecorder, articleID string) echo.Context {
		req := httptest.NewRequest(http.MethodDelete, "/v1/bookmarks/"+articleID, nil)
		c := authedContext(e, req, rec, userID)
		c.SetParamNames("article_id")
		c.SetParamValues(articleID)
		return c
	}

	t.Run("deletes the bookmark", func(t *testing.T) {
		h, m := newTestHandler()
		m.record.On("RemoveBookmark", mock.Anything, userID, "abc123").Return(nil)

		rec := httptest.NewRecorder()
		require.NoError(t, h.RemoveBookmark(newDeleteContext(rec, "abc123")))
		assert.Equal(t, http.StatusNoContent, rec.Code)
		m.record.AssertExpectations(t)
	})

	t.Run("answers 404 for an unknown bookmark", func(t *testing.T) {
		h, m := newTestHandler()
		m.record.On("RemoveBookmark", mock.Anything, userID, "missing").
			Return(domain.ErrArticleNotFound)

		rec := httptest.NewRecorder()
		require.NoError(t, h.RemoveBookmark(newDeleteContext(rec, "missing")))
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}
