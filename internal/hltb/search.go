package hltb

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

type searchRequest struct {
	SearchType    string        `json:"searchType"`
	SearchTerms   []string      `json:"searchTerms"`
	SearchPage    int           `json:"searchPage"`
	Size          int           `json:"size"`
	SearchOptions searchOptions `json:"searchOptions"`
	UseCache      bool          `json:"useCache"`
}

type searchOptions struct {
	Games      gameOptions `json:"games"`
	Users      sortOption  `json:"users"`
	Lists      sortOption  `json:"lists"`
	Filter     string      `json:"filter"`
	Sort       int         `json:"sort"`
	Randomizer int         `json:"randomizer"`
}

type gameOptions struct {
	UserID        int             `json:"userId"`
	Platform      string          `json:"platform"`
	SortCategory  string          `json:"sortCategory"`
	RangeCategory string          `json:"rangeCategory"`
	RangeTime     rangeTime       `json:"rangeTime"`
	Gameplay      gameplayOptions `json:"gameplay"`
	RangeYear     rangeYear       `json:"rangeYear"`
	Modifier      string          `json:"modifier"`
}

type rangeTime struct {
	Min *int `json:"min"`
	Max *int `json:"max"`
}

type rangeYear struct {
	Min string `json:"min"`
	Max string `json:"max"`
}

type gameplayOptions struct {
	Perspective string `json:"perspective"`
	Flow        string `json:"flow"`
	Genre       string `json:"genre"`
	Difficulty  string `json:"difficulty"`
}

type sortOption struct {
	SortCategory string `json:"sortCategory"`
}

func newSearchRequest(name string) searchRequest {
	return searchRequest{
		SearchType:  "games",
		SearchTerms: strings.Fields(name),
		SearchPage:  1,
		Size:        defaultPageSize,
		SearchOptions: searchOptions{
			Games: gameOptions{
				SortCategory:  "popular",
				RangeCategory: "main",
			},
			Users: sortOption{SortCategory: "postcount"},
			Lists: sortOption{SortCategory: "follows"},
		},
		UseCache: true,
	}
}

// SearchGame looks up completion times for name. It returns nil when the game is not found or
// anything goes wrong; failures also reset the client so the next call starts over.
func (c *Client) SearchGame(ctx context.Context, name string) *Estimate {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil
	}

	token, path, ok := c.ensureReady(ctx)
	if !ok {
		return nil
	}

	candidates, err := c.search(ctx, token, path, name)
	if err != nil {
		slog.Warn("HowLongToBeat search failed", "title", name, "error", err)
		c.Reset()
		return nil
	}

	best := BestMatch(name, candidates)
	if best == nil {
		slog.Debug("No HowLongToBeat results", "title", name)
		return nil
	}

	estimate := best.estimate()
	slog.Debug("Matched HowLongToBeat entry", "title", name, "match", estimate.Name, "main", estimate.MainStory)
	return &estimate
}

// ensureReady advances the state machine as far as it can. ok is false when no token could be
// obtained; the client then stays uninitialized.
func (c *Client) ensureReady(ctx context.Context) (token, path string, ok bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.token == "" {
		fetched, err := c.fetchToken(ctx)
		if err != nil {
			slog.Warn("Failed to obtain HowLongToBeat token", "error", err)
			return "", "", false
		}
		c.token = fetched
	}

	if c.searchPath == "" {
		resolution := c.resolver.Resolve(ctx)
		slog.Debug("Using HowLongToBeat search endpoint", "path", resolution.Path, "fallback", resolution.Fallback)
		c.searchPath = resolution.Path
		if c.searchPath == "" {
			c.searchPath = DefaultSearchPath
		}
	}

	return c.token, c.searchPath, true
}

func (c *Client) fetchToken(ctx context.Context) (string, error) {
	params := url.Values{}
	params.Set("t", strconv.FormatInt(c.now().UnixMilli(), 10))

	req, err := c.newRequest(ctx, http.MethodGet, c.baseURL+initPath+"?"+params.Encode(), nil)
	if err != nil {
		return "", err
	}

	var payload struct {
		Token string `json:"token"`
	}
	if err := c.doJSON(req, &payload); err != nil {
		return "", err
	}
	if payload.Token == "" {
		return "", fmt.Errorf("init response did not contain a token")
	}
	return payload.Token, nil
}

func (c *Client) search(ctx context.Context, token, path, name string) ([]Candidate, error) {
	body, err := json.Marshal(newSearchRequest(name))
	if err != nil {
		return nil, err
	}

	req, err := c.newRequest(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-auth-token", token)

	var payload struct {
		Data []Candidate `json:"data"`
	}
	if err := c.doJSON(req, &payload); err != nil {
		return nil, err
	}
	return payload.Data, nil
}

func (c *Client) newRequest(ctx context.Context, method, target string, body io.Reader) (*http.Request, error) {
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Referer", c.baseURL+"/")
	req.Header.Set("Origin", c.baseURL)
	return req, nil
}

func (c *Client) doJSON(req *http.Request, target any) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("hltb: unexpected status %d: %s", resp.StatusCode, strings.TrimSpace(string(raw)))
	}

	if err := json.NewDecoder(resp.Body).Decode(target); err != nil {
		return fmt.Errorf("hltb: failed to decode response: %w", err)
	}
	return nil
}
