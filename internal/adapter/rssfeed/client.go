package rssfeed

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"news-curator/internal/domain"
	"news-curator/internal/infra/httpclient"

	"github.com/microcosm-cc/bluemonday"
	"github.com/mmcdole/gofeed"
)

// Client fetches configured RSS feeds and normalizes their items into domain
// articles. Item descriptions arrive as HTML and are stripped before storage.
type Client struct {
	httpClient *http.Client
	sanitizer  *bluemonday.Policy
}

func NewClient(timeoutSeconds int) *Client {
	timeout := 15 * time.Second
	if timeoutSeconds > 0 {
		timeout = time.Duration(timeoutSeconds) * time.Second
	}
	return &Client{
		httpClient: httpclient.NewPooledClient(timeout),
		sanitizer:  bluemonday.StrictPolicy(),
	}
}

// FetchFeed parses one RSS/Atom feed URL into publishable articles. The feed
// title becomes the source label.
func (c *Client) FetchFeed(ctx context.Context, feedURL string) ([]domain.Article, error) {
	fp := gofeed.NewParser()
	fp.Client = c.httpClient

	feed, err := fp.ParseURLWithContext(feedURL, ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to parse feed %s: %w", feedURL, err)
	}

	articles := make([]domain.Article, 0, len(feed.Items))
	for _, item := range feed.Items {
		publishedAt := time.Now().UTC()
		if item.PublishedParsed != nil {
			publishedAt = *item.PublishedParsed
		}

		art := domain.Article{
			ID:          domain.ArticleIDFromURL(item.Link),
			Title:       strings.TrimSpace(item.Title),
			Description: c.stripHTML(item.Description),
			URL:         item.Link,
			Category:    domain.CategoryForTitle(item.Title),
			Source:      strings.TrimSpace(feed.Title),
			PublishedAt: publishedAt,
		}
		if !art.IsPublishable() {
			continue
		}
		articles = append(articles, art)
	}

	return articles, nil
}

func (c *Client) stripHTML(s string) string {
	return strings.TrimSpace(c.sanitizer.Sanitize(s))
}
