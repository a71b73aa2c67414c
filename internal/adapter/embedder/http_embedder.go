package embedder

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"news-curator/internal/domain"
	"news-curator/internal/infra/httpclient"
)

// HTTPEmbedder calls an external embedding provider over HTTP. A provider
// failure is fatal for the calling request; no local fallback embedding is
// ever computed.
type HTTPEmbedder struct {
	BaseURL string
	Model   string
	APIKey  string
	Client  *http.Client
}

func NewHTTPEmbedder(baseURL, model, apiKey string, timeoutSeconds int) *HTTPEmbedder {
	timeout := 30 * time.Second
	if timeoutSeconds > 0 {
		timeout = time.Duration(timeoutSeconds) * time.Second
	}
	return &HTTPEmbedder{
		BaseURL: baseURL,
		Model:   model,
		APIKey:  apiKey,
		Client:  httpclient.NewPooledClient(timeout),
	}
}

type embedRequest struct {
	Model string   `json:"model"`
	Input []string `json:"input"`
}

type embedResponse struct {
	Embeddings [][]float32 `json:"embeddings"`
}

func (e *HTTPEmbedder) Encode(ctx context.Context, texts []string) ([][]float32, error) {
	slog.Info("embed_started",
		slog.Int("text_count", len(texts)),
		slog.String("model", e.Model),
	)
	start := time.Now()

	reqBody := embedRequest{
		Model: e.Model,
		Input: texts,
	}
	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/api/embed", e.BaseURL)
	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if e.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+e.APIKey)
	}

	resp, err := e.Client.Do(req)
	if err != nil {
		slog.Error("embed_failed",
			slog.String("error", err.Error()),
			slog.Duration("elapsed", time.Since(start)),
		)
		return nil, fmt.Errorf("failed to call embedding provider: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		slog.Error("embed_bad_status",
			slog.Int("status", resp.StatusCode),
			slog.Duration("elapsed", time.Since(start)),
		)
		return nil, fmt.Errorf("embedding provider returned status: %d", resp.StatusCode)
	}

	var respBody embedResponse
	if err := json.NewDecoder(resp.Body).Decode(&respBody); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	slog.Info("embed_completed",
		slog.Int("embedding_count", len(respBody.Embeddings)),
		slog.Duration("elapsed", time.Since(start)),
	)

	return respBody.Embeddings, nil
}

func (e *HTTPEmbedder) Version() string {
	return e.Model
}

var _ domain.VectorEncoder = (*HTTPEmbedder)(nil)
