// Package igdb provides a client for the IGDB game catalog API.
//
// IGDB authenticates through Twitch's OAuth2 client-credentials flow. The access token is cached
// per Client until shortly before it expires, so one Client should be reused for a session.
package igdb

import (
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/patrickmn/go-cache"

	"github.com/lepinkainen/backlog/internal/ratelimit"
)

const (
	defaultBaseURL      = "https://api.igdb.com/v4"
	defaultTokenURL     = "https://id.twitch.tv/oauth2/token"
	defaultImageBaseURL = "https://images.igdb.com/igdb/image/upload"
	defaultSearchLimit  = 10
	defaultMaxAttempts  = 3
	// DefaultTokenExpiryMargin is how long before the declared expiry a token stops being reused.
	DefaultTokenExpiryMargin = 5 * time.Minute
)

// gameFields is the field projection used for every games query.
const gameFields = "name,slug,summary,storyline,rating,aggregated_rating,first_release_date," +
	"cover.image_id,genres.name,platforms.name,websites.url,websites.category"

// HTTPDoer is an interface for making HTTP requests.
type HTTPDoer interface {
	Do(*http.Request) (*http.Response, error)
}

// Client is an IGDB API client.
type Client struct {
	clientID      string
	clientSecret  string
	baseURL       string
	tokenURL      string
	imageBaseURL  string
	httpClient    HTTPDoer
	rateLimiter   *ratelimit.Limiter
	retryAttempts int
	expiryMargin  time.Duration

	tokenMu sync.Mutex
	tokens  *cache.Cache
}

// NewClient creates a new IGDB client. Missing credentials are reported by the first call
// that needs them, not here.
func NewClient(clientID, clientSecret string, opts ...Option) *Client {
	client := &Client{
		clientID:      strings.TrimSpace(clientID),
		clientSecret:  strings.TrimSpace(clientSecret),
		baseURL:       defaultBaseURL,
		tokenURL:      defaultTokenURL,
		imageBaseURL:  defaultImageBaseURL,
		httpClient:    &http.Client{Timeout: 30 * time.Second},
		rateLimiter:   ratelimit.New("IGDB", ratelimit.IGDBRequestsPerSecond),
		retryAttempts: defaultMaxAttempts,
		expiryMargin:  DefaultTokenExpiryMargin,
		tokens:        cache.New(cache.NoExpiration, 0),
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

// WithBaseURL sets a custom base URL for the catalog API.
func WithBaseURL(base string) Option {
	return func(client *Client) {
		if base != "" {
			client.baseURL = strings.TrimSuffix(base, "/")
		}
	}
}

// WithTokenURL sets a custom OAuth2 token endpoint.
func WithTokenURL(tokenURL string) Option {
	return func(client *Client) {
		if tokenURL != "" {
			client.tokenURL = tokenURL
		}
	}
}

// WithImageBaseURL sets a custom base URL for cover images.
func WithImageBaseURL(base string) Option {
	return func(client *Client) {
		if base != "" {
			client.imageBaseURL = strings.TrimSuffix(base, "/")
		}
	}
}

// WithRetryAttempts sets the number of attempts for requests failing with network errors.
func WithRetryAttempts(attempts int) Option {
	return func(client *Client) {
		if attempts > 0 {
			client.retryAttempts = attempts
		}
	}
}

// WithRateLimiter sets a custom rate limiter. A nil limiter disables throttling.
func WithRateLimiter(limiter *ratelimit.Limiter) Option {
	return func(client *Client) {
		client.rateLimiter = limiter
	}
}

// WithTokenExpiryMargin sets how long before its declared expiry a token is refreshed.
func WithTokenExpiryMargin(margin time.Duration) Option {
	return func(client *Client) {
		if margin >= 0 {
			client.expiryMargin = margin
		}
	}
}
