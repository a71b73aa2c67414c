package authhub

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"news-curator/internal/domain"
	"news-curator/internal/infra/httpclient"

	"github.com/google/uuid"
)

// ErrInvalidSession is returned when the auth hub rejects the credential.
// Network and upstream failures surface as ordinary wrapped errors so the
// middleware can answer 502 instead of 401.
var ErrInvalidSession = fmt.Errorf("invalid session")

// Client validates sessions against the auth hub's whoami endpoint.
type Client struct {
	BaseURL string
	Client  *http.Client
}

func NewClient(baseURL string, timeoutSeconds int) *Client {
	timeout := 2 * time.Second
	if timeoutSeconds > 0 {
		timeout = time.Duration(timeoutSeconds) * time.Second
	}
	return &Client{
		BaseURL: baseURL,
		Client:  httpclient.NewPooledClient(timeout),
	}
}

type sessionResponse struct {
	ID        string    `json:"id"`
	Active    bool      `json:"active"`
	ExpiresAt time.Time `json:"expires_at"`
	Identity  struct {
		ID     string `json:"id"`
		Traits struct {
			Email string `json:"email"`
		} `json:"traits"`
	} `json:"identity"`
}

// ValidateSession resolves the request's cookie or bearer token to a user.
func (c *Client) ValidateSession(ctx context.Context, cookie, authorization string) (*domain.UserContext, error) {
	if cookie == "" && authorization == "" {
		return nil, ErrInvalidSession
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+"/sessions/whoami", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	if cookie != "" {
		req.Header.Set("Cookie", cookie)
	}
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("auth hub unreachable: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		if resp.StatusCode >= 500 {
			return nil, fmt.Errorf("auth hub returned status %d", resp.StatusCode)
		}
		return nil, ErrInvalidSession
	}

	var session sessionResponse
	if err := json.NewDecoder(resp.Body).Decode(&session); err != nil {
		return nil, fmt.Errorf("failed to decode session: %w", err)
	}

	if !session.Active {
		return nil, ErrInvalidSession
	}

	userID, err := uuid.Parse(session.Identity.ID)
	if err != nil {
		return nil, fmt.Errorf("invalid identity id: %w", err)
	}

	email := strings.TrimSpace(session.Identity.Traits.Email)
	expiresAt := session.ExpiresAt
	if expiresAt.IsZero() || !expiresAt.After(time.Now()) {
		expiresAt = time.Now().Add(24 * time.Hour)
	}

	return &domain.UserContext{
		UserID:    userID,
		Email:     email,
		SessionID: session.ID,
		ExpiresAt: expiresAt,
	}, nil
}
