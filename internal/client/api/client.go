// Package api is the Remote Adapter: the only component that talks to the
// backend. It exposes pull and push as the sole sync primitives, plus the
// auth endpoints, and maps every failure onto the retry taxonomy in
// errors.go.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	pkgapi "github.com/loreforge/loreforge/pkg/api"
)

//go:generate go tool moq -out client_mock.go . ClientAPI

// ClientAPI is the Remote Adapter surface the rest of the engine depends on.
type ClientAPI interface {
	Register(ctx context.Context, req pkgapi.RegisterRequest) (*pkgapi.RegisterResponse, error)
	GetSalt(ctx context.Context, username string) (*pkgapi.SaltResponse, error)
	Login(ctx context.Context, req pkgapi.LoginRequest) (*pkgapi.TokenResponse, error)
	Refresh(ctx context.Context, req pkgapi.RefreshRequest) (*pkgapi.TokenResponse, error)

	// Pull returns one page of remote changes for the project since the
	// given watermark. An empty Records slice signals end-of-stream. Pull is
	// read-only and idempotent: re-issuing with the same since watermark is
	// always safe.
	Pull(ctx context.Context, accessToken, projectID string, since time.Time, cursor string) (*pkgapi.PullResponse, error)

	// Push sends an ordered batch of local mutations and returns per-item
	// outcomes. Idempotent by (project_id, client_id): retrying an
	// already-accepted batch is a no-op on the server.
	Push(ctx context.Context, accessToken, projectID string, items []pkgapi.PushItem) (*pkgapi.PushResponse, error)
}

// Client is the HTTP implementation of ClientAPI.
type Client struct {
	httpClient *http.Client
	baseURL    string
}

// NewClient creates a Remote Adapter for the given server base URL.
// The request timeout doubles as the network failure detector: an expired
// deadline surfaces as a retryable network error.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= 10 {
					return fmt.Errorf("stopped after 10 redirects")
				}
				// Keep the bearer token across same-host redirects.
				if len(via) > 0 && via[0].Header.Get("Authorization") != "" {
					req.Header.Set("Authorization", via[0].Header.Get("Authorization"))
				}
				return nil
			},
		},
	}
}

// Register creates a new account.
func (c *Client) Register(ctx context.Context, req pkgapi.RegisterRequest) (*pkgapi.RegisterResponse, error) {
	var resp pkgapi.RegisterResponse
	if err := c.doRequest(ctx, http.MethodPost, "/api/v1/auth/register", "", req, &resp); err != nil {
		return nil, fmt.Errorf("register request failed: %w", err)
	}
	return &resp, nil
}

// GetSalt fetches a user's public salt for key derivation.
func (c *Client) GetSalt(ctx context.Context, username string) (*pkgapi.SaltResponse, error) {
	var resp pkgapi.SaltResponse
	path := "/api/v1/auth/salt/" + url.PathEscape(username)
	if err := c.doRequest(ctx, http.MethodGet, path, "", nil, &resp); err != nil {
		return nil, fmt.Errorf("get salt request failed: %w", err)
	}
	return &resp, nil
}

// Login authenticates and returns a token pair.
func (c *Client) Login(ctx context.Context, req pkgapi.LoginRequest) (*pkgapi.TokenResponse, error) {
	var resp pkgapi.TokenResponse
	if err := c.doRequest(ctx, http.MethodPost, "/api/v1/auth/login", "", req, &resp); err != nil {
		return nil, fmt.Errorf("login request failed: %w", err)
	}
	return &resp, nil
}

// Refresh exchanges a refresh token for a new token pair.
func (c *Client) Refresh(ctx context.Context, req pkgapi.RefreshRequest) (*pkgapi.TokenResponse, error) {
	var resp pkgapi.TokenResponse
	if err := c.doRequest(ctx, http.MethodPost, "/api/v1/auth/refresh", "", req, &resp); err != nil {
		return nil, fmt.Errorf("refresh request failed: %w", err)
	}
	return &resp, nil
}

// Pull fetches one page of remote changes.
func (c *Client) Pull(ctx context.Context, accessToken, projectID string, since time.Time, cursor string) (*pkgapi.PullResponse, error) {
	query := url.Values{}
	query.Set("project_id", projectID)
	if !since.IsZero() {
		query.Set("since", since.UTC().Format(time.RFC3339Nano))
	}
	if cursor != "" {
		query.Set("cursor", cursor)
	}

	var resp pkgapi.PullResponse
	if err := c.doRequest(ctx, http.MethodGet, "/api/v1/sync/pull?"+query.Encode(), accessToken, nil, &resp); err != nil {
		return nil, fmt.Errorf("pull request failed: %w", err)
	}
	return &resp, nil
}

// Push sends an ordered batch of local mutations.
func (c *Client) Push(ctx context.Context, accessToken, projectID string, items []pkgapi.PushItem) (*pkgapi.PushResponse, error) {
	req := pkgapi.PushRequest{
		ProjectID: projectID,
		Items:     items,
	}

	var resp pkgapi.PushResponse
	if err := c.doRequest(ctx, http.MethodPost, "/api/v1/sync/push", accessToken, req, &resp); err != nil {
		return nil, fmt.Errorf("push request failed: %w", err)
	}
	return &resp, nil
}

// doRequest performs one HTTP exchange and classifies failures.
func (c *Client) doRequest(ctx context.Context, method, path, accessToken string, body, result any) error {
	reqURL := c.baseURL + path

	var bodyReader io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		bodyReader = bytes.NewReader(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL, bodyReader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if accessToken != "" {
		req.Header.Set("Authorization", "Bearer "+accessToken)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		// Transport failure or timeout: retryable.
		return &Error{Kind: KindNetwork, Message: err.Error()}
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return &Error{Kind: KindNetwork, Message: fmt.Sprintf("failed to read response body: %v", err)}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return classifyStatus(resp, respBody)
	}

	if result != nil {
		if err := json.Unmarshal(respBody, result); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return nil
}

// classifyStatus maps an HTTP error response onto the error taxonomy.
func classifyStatus(resp *http.Response, body []byte) error {
	message := string(body)
	var errResp pkgapi.ErrorResponse
	if err := json.Unmarshal(body, &errResp); err == nil && errResp.Error != "" {
		message = errResp.Error
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return &Error{Kind: KindAuthExpired, StatusCode: resp.StatusCode, Message: message}
	case resp.StatusCode == http.StatusTooManyRequests:
		return &Error{
			Kind:       KindRateLimited,
			StatusCode: resp.StatusCode,
			Message:    message,
			RetryAfter: parseRetryAfter(resp.Header.Get("Retry-After")),
		}
	case resp.StatusCode >= 500:
		return &Error{Kind: KindNetwork, StatusCode: resp.StatusCode, Message: message}
	default:
		return &Error{Kind: KindServerRejected, StatusCode: resp.StatusCode, Message: message}
	}
}

// parseRetryAfter handles the delay-seconds form of the header.
func parseRetryAfter(value string) time.Duration {
	if value == "" {
		return 0
	}
	seconds, err := strconv.Atoi(value)
	if err != nil || seconds < 0 {
		return 0
	}
	return time.Duration(seconds) * time.Second
}
