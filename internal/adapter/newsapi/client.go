package newsapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"news-curator/internal/domain"
	"news-curator/internal/infra/httpclient"
)

// Client fetches articles from the external news API and normalizes the
// response shape into domain articles.
type Client struct {
	BaseURL string
	APIKey  string
	Client  *http.Client
}

func NewClient(baseURL, apiKey string, timeoutSeconds int) *Client {
	timeout := 10 * time.Second
	if timeoutSeconds > 0 {
		timeout = time.Duration(timeoutSeconds) * time.Second
	}
	return &Client{
		BaseURL: baseURL,
		APIKey:  apiKey,
		Client:  httpclient.NewPooledClient(timeout),
	}
}

type newsSource struct {
	Name string `json:"name"`
}

type newsEntry struct {
	Source      newsSource `json:"source"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	URL         string     `json:"url"`
	PublishedAt time.Time  `json:"publishedAt"`
}

type everythingResponse struct {
	Status       string      `json:"status"`
	TotalResults int         `json:"totalResults"`
	Articles     []newsEntry `json:"articles"`
}

// FetchArticles queries the news API for the given search term and returns
// normalized, publishable articles. Entries missing a title, description or
// URL are dropped, as are retracted entries.
func (c *Client) FetchArticles(ctx context.Context, query string, pageSize int) ([]domain.Article, error) {
	u, err := url.Parse(fmt.Sprintf("%s/everything", c.BaseURL))
	if err != nil {
		return nil, fmt.Errorf("invalid base url: %w", err)
	}

	q := u.Query()
	q.Set("q", query)
	q.Set("pageSize", fmt.Sprintf("%d", pageSize))
	q.Set("sortBy", "publishedAt")
	q.Set("language", "en")
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("X-Api-Key", c.APIKey)

	resp, err := c.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("news api request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("news api returned status: %d", resp.StatusCode)
	}

	var body everythingResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("failed to decode news api response: %w", err)
	}

	articles := make([]domain.Article, 0, len(body.Articles))
	for _, entry := range body.Articles {
		art := domain.Article{
			ID:          domain.ArticleIDFromURL(entry.URL),
			Title:       entry.Title,
			Description: entry.Description,
			URL:         entry.URL,
			Category:    domain.CategoryForTitle(entry.Title),
			Source:      entry.Source.Name,
			PublishedAt: entry.PublishedAt,
		}
		if !art.IsPublishable() {
			continue
		}
		articles = append(articles, art)
	}

	return articles, nil
}
