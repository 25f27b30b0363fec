package github

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/maypok86/otter"
	"golang.org/x/time/rate"
)

const defaultBaseURL = "https://api.github.com"

// Config configures the GitHub API client. The token and shared headers live
// here as an explicit value instead of process-wide state.
type Config struct {
	// Token is the bearer token for api.github.com. Empty means
	// unauthenticated (much lower rate limits).
	Token string

	// BaseURL overrides the API endpoint, used by tests.
	BaseURL string

	// RequestsPerSecond throttles all API calls. GitHub's search endpoint
	// allows 30 requests/minute authenticated, so the default stays well
	// under the core limit too.
	RequestsPerSecond float64
	Burst             int

	Timeout time.Duration
}

// DefaultConfig returns client defaults suitable for an authenticated crawl.
func DefaultConfig(token string) Config {
	return Config{
		Token:             token,
		BaseURL:           defaultBaseURL,
		RequestsPerSecond: 2,
		Burst:             5,
		Timeout:           30 * time.Second,
	}
}

// Client talks to the GitHub REST API with rate limiting and a commit-lookup
// cache. Safe for concurrent use.
type Client struct {
	baseURL     string
	token       string
	httpClient  *http.Client
	limiter     *rate.Limiter
	commitCache otter.Cache[string, string]
}

// NewClient creates a GitHub API client from cfg, filling zero values with
// defaults.
func NewClient(cfg Config) (*Client, error) {
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	if cfg.RequestsPerSecond <= 0 {
		cfg.RequestsPerSecond = 2
	}
	if cfg.Burst <= 0 {
		cfg.Burst = 5
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}

	// Commit lookups dominate the API budget (one per file), and repeated
	// crawls of the same repo hit the same paths.
	cache, err := otter.MustBuilder[string, string](8192).
		WithTTL(time.Hour).
		Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build commit cache: %w", err)
	}

	return &Client{
		baseURL:     cfg.BaseURL,
		token:       cfg.Token,
		httpClient:  &http.Client{Timeout: cfg.Timeout},
		limiter:     rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), cfg.Burst),
		commitCache: cache,
	}, nil
}

// get performs a rate-limited GET against the API and returns the response
// body for 2xx statuses. The caller owns closing the body.
func (c *Client) get(ctx context.Context, path string, params url.Values) (io.ReadCloser, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	apiURL := c.baseURL + path
	if len(params) > 0 {
		apiURL += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, apiURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/vnd.github+json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request %s failed: %w", path, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		resp.Body.Close()
		return nil, fmt.Errorf("GET %s: unexpected status %d: %s", path, resp.StatusCode, string(body))
	}

	return resp.Body, nil
}
