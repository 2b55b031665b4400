// Package hltb looks up completion times on HowLongToBeat.
//
// The site has no public API. The client obtains a short-lived auth token from the site's
// init endpoint and discovers the current search endpoint from the site's own JavaScript
// bundle. Every failure degrades to "no estimate"; nothing in this package returns an error
// to its caller.
package hltb

import (
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/lepinkainen/backlog/internal/ratelimit"
)

const (
	defaultBaseURL = "https://howlongtobeat.com"
	initPath       = "/api/search/init"
	// DefaultSearchPath is used when endpoint discovery fails.
	DefaultSearchPath = "/api/search"
	defaultPageSize   = 20
	defaultUserAgent  = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/126.0 Safari/537.36"
)

// HTTPDoer is an interface for making HTTP requests.
type HTTPDoer interface {
	Do(*http.Request) (*http.Response, error)
}

// State is the lifecycle position of a Client.
type State int

const (
	// StateUninitialized means no token is cached.
	StateUninitialized State = iota
	// StateTokenObtained means a token is cached but no search endpoint is known yet.
	StateTokenObtained
	// StateReady means both token and search endpoint are cached.
	StateReady
)

func (s State) String() string {
	switch s {
	case StateTokenObtained:
		return "token-obtained"
	case StateReady:
		return "ready"
	default:
		return "uninitialized"
	}
}

// Client is a HowLongToBeat client. It is safe for concurrent use.
type Client struct {
	baseURL     string
	userAgent   string
	httpClient  HTTPDoer
	resolver    EndpointResolver
	rateLimiter *ratelimit.Limiter
	now         func() time.Time

	mu         sync.Mutex
	token      string
	searchPath string
}

// NewClient creates a new HowLongToBeat client.
func NewClient(opts ...Option) *Client {
	client := &Client{
		baseURL:     defaultBaseURL,
		userAgent:   defaultUserAgent,
		httpClient:  &http.Client{Timeout: 30 * time.Second},
		rateLimiter: ratelimit.New("HowLongToBeat", ratelimit.HLTBRequestsPerSecond),
		now:         time.Now,
	}

	for _, opt := range opts {
		opt(client)
	}

	if client.resolver == nil {
		client.resolver = NewScriptResolver(client.baseURL, client.httpClient, client.userAgent)
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

// WithBaseURL sets the site root.
func WithBaseURL(base string) Option {
	return func(client *Client) {
		if base != "" {
			client.baseURL = strings.TrimSuffix(base, "/")
		}
	}
}

// WithResolver replaces the endpoint discovery strategy.
func WithResolver(r EndpointResolver) Option {
	return func(client *Client) {
		if r != nil {
			client.resolver = r
		}
	}
}

// WithRateLimiter sets a custom rate limiter. A nil limiter disables throttling.
func WithRateLimiter(limiter *ratelimit.Limiter) Option {
	return func(client *Client) {
		client.rateLimiter = limiter
	}
}

// WithClock overrides the time source used for the init endpoint's cache buster.
func WithClock(now func() time.Time) Option {
	return func(client *Client) {
		if now != nil {
			client.now = now
		}
	}
}

// State reports how far the client has advanced its lazy initialization.
func (c *Client) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stateLocked()
}

func (c *Client) stateLocked() State {
	switch {
	case c.token == "":
		return StateUninitialized
	case c.searchPath == "":
		return StateTokenObtained
	default:
		return StateReady
	}
}

// Reset drops the cached token and search endpoint so the next search starts from scratch.
func (c *Client) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = ""
	c.searchPath = ""
}
