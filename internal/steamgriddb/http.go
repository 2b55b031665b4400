package steamgriddb

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"unicode/utf8"

	backlogerrors "github.com/lepinkainen/backlog/internal/errors"
)

const sourceName = "steamgriddb"

func getJSON[T any](ctx context.Context, c *Client, path string, params url.Values) (T, error) {
	var zero T
	if c.apiKey == "" {
		return zero, backlogerrors.NewConfigurationError("SteamGridDB", "steamgriddb.api_key", "STEAMGRIDDB_API_KEY")
	}

	if err := c.rateLimiter.Wait(ctx); err != nil {
		return zero, err
	}

	endpoint := c.baseURL + path
	if len(params) > 0 {
		endpoint += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return zero, err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return zero, err
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return zero, fmt.Errorf("steamgriddb: failed to read response: %w", err)
	}

	var body envelope[T]
	decodeErr := json.Unmarshal(raw, &body)

	if resp.StatusCode == http.StatusTooManyRequests {
		return zero, backlogerrors.NewRateLimitError("steamgriddb: rate limited")
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		if decodeErr == nil && len(body.Errors) > 0 {
			return zero, backlogerrors.NewUpstreamError(sourceName, resp.StatusCode, body.Errors...)
		}
		return zero, backlogerrors.NewUpstreamError(sourceName, resp.StatusCode, truncate(string(raw), 256))
	}

	if decodeErr != nil {
		return zero, fmt.Errorf("steamgriddb: failed to decode response: %w", decodeErr)
	}
	if !body.Success {
		return zero, backlogerrors.NewUpstreamError(sourceName, 0, body.Errors...)
	}

	return body.Data, nil
}

// truncate cuts s to at most n bytes without splitting a UTF-8 sequence.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}
