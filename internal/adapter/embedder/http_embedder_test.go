package embedder

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPEmbedder_Encode(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/embed", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		var req embedRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "test-model", req.Model)
		assert.Equal(t, []string{"hello"}, req.Input)

		json.NewEncoder(w).Encode(embedResponse{
			Embeddings: [][]float32{{0.1, 0.2, 0.3}},
		})
	}))
	defer server.Close()

	e := NewHTTPEmbedder(server.URL, "test-model", "test-key", 5)
	embeddings, err := e.Encode(context.Background(), []string{"hello"})

	require.NoError(t, err)
	require.Len(t, embeddings, 1)
	assert.Equal(t, []float32{0.1, 0.2, 0.3}, embeddings[0])
}

func TestHTTPEmbedder_EncodeBadStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	e := NewHTTPEmbedder(server.URL, "test-model", "", 5)
	_, err := e.Encode(context.Background(), []string{"hello"})

	assert.ErrorContains(t, err, "status: 502")
}

func TestCachingEncoder_MemoizesSingleQueries(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		json.NewEncoder(w).Encode(embedResponse{
			Embeddings: [][]float32{{1, 0}},
		})
	}))
	defer server.Close()

	inner := NewHTTPEmbedder(server.URL, "test-model", "", 5)
	cached, err := NewCachingEncoder(inner, 8)
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		embeddings, err := cached.Encode(context.Background(), []string{"same query"})
		require.NoError(t, err)
		assert.Equal(t, []float32{1, 0}, embeddings[0])
	}

	assert.Equal(t, int32(1), calls.Load())
}

func TestCachingEncoder_BatchPassesThrough(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		json.NewEncoder(w).Encode(embedResponse{
			Embeddings: [][]float32{{1, 0}, {0, 1}},
		})
	}))
	defer server.Close()

	inner := NewHTTPEmbedder(server.URL, "test-model", "", 5)
	cached, err := NewCachingEncoder(inner, 8)
	require.NoError(t, err)

	for i := 0; i < 2; i++ {
		_, err := cached.Encode(context.Background(), []string{"a", "b"})
		require.NoError(t, err)
	}

	assert.Equal(t, int32(2), calls.Load())
}
