// Package steamgriddb provides a client for the SteamGridDB artwork API.
package steamgriddb

import (
	"net/http"
	"strings"
	"time"

	"github.com/lepinkainen/backlog/internal/ratelimit"
)

const defaultBaseURL = "https://www.steamgriddb.com/api/v2"

// DefaultPreferredStyles is the style allowlist tried first by BestGrid.
var DefaultPreferredStyles = []string{"alternate", "material", "white_logo", "blurred", "no_logo"}

// HTTPDoer is an interface for making HTTP requests.
type HTTPDoer interface {
	Do(*http.Request) (*http.Response, error)
}

// Client is a SteamGridDB API client.
type Client struct {
	apiKey          string
	baseURL         string
	httpClient      HTTPDoer
	rateLimiter     *ratelimit.Limiter
	preferredStyles []string
}

// NewClient creates a new SteamGridDB client. An empty apiKey makes every call fail with a
// configuration error.
func NewClient(apiKey string, opts ...Option) *Client {
	client := &Client{
		apiKey:          strings.TrimSpace(apiKey),
		baseURL:         defaultBaseURL,
		httpClient:      &http.Client{Timeout: 30 * time.Second},
		rateLimiter:     ratelimit.New("SteamGridDB", ratelimit.SteamGridDBRequestsPerSecond),
		preferredStyles: append([]string(nil), DefaultPreferredStyles...),
	}

	for _, opt := range opts {
		opt(client)
	}

	return client
}

// Option is a functional option for configuring the Client.
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(c HTTPDoer) Option {
	return func(client *Client) {
		if c != nil {
			client.httpClient = c
		}
	}
}

// WithBaseURL sets a custom API root.
func WithBaseURL(base string) Option {
	return func(client *Client) {
		if base != "" {
			client.baseURL = strings.TrimSuffix(base, "/")
		}
	}
}

// WithRateLimiter sets a custom rate limiter. A nil limiter disables throttling.
func WithRateLimiter(limiter *ratelimit.Limiter) Option {
	return func(client *Client) {
		client.rateLimiter = limiter
	}
}

// WithPreferredStyles replaces the style allowlist used by BestGrid.
func WithPreferredStyles(styles []string) Option {
	return func(client *Client) {
		if len(styles) > 0 {
			client.preferredStyles = append([]string(nil), styles...)
		}
	}
}
