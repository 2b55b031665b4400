package igdb

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	backlogerrors "github.com/lepinkainen/backlog/internal/errors"
)

const tokenCacheKey = "access_token"

// tokenResponse is the Twitch client-credentials response.
type tokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int64  `json:"expires_in"`
	TokenType   string `json:"token_type"`
}

func (c *Client) checkCredentials() error {
	if c.clientID == "" {
		return backlogerrors.NewConfigurationError("IGDB", "igdb.client_id", "IGDB_CLIENT_ID")
	}
	if c.clientSecret == "" {
		return backlogerrors.NewConfigurationError("IGDB", "igdb.client_secret", "IGDB_CLIENT_SECRET")
	}
	return nil
}

// accessToken returns the cached token or requests a new one.
func (c *Client) accessToken(ctx context.Context) (string, error) {
	c.tokenMu.Lock()
	defer c.tokenMu.Unlock()

	if cached, ok := c.tokens.Get(tokenCacheKey); ok {
		return cached.(string), nil
	}

	token, err := c.fetchToken(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to obtain IGDB access token: %w", err)
	}

	ttl := time.Duration(token.ExpiresIn)*time.Second - c.expiryMargin
	if ttl > 0 {
		c.tokens.Set(tokenCacheKey, token.AccessToken, ttl)
	} else {
		slog.Warn("IGDB token lifetime shorter than expiry margin, not caching", "expires_in", token.ExpiresIn)
	}

	slog.Debug("Obtained IGDB access token", "expires_in", token.ExpiresIn)
	return token.AccessToken, nil
}

func (c *Client) invalidateToken() {
	c.tokenMu.Lock()
	defer c.tokenMu.Unlock()
	c.tokens.Delete(tokenCacheKey)
}

func (c *Client) fetchToken(ctx context.Context) (tokenResponse, error) {
	params := url.Values{}
	params.Set("client_id", c.clientID)
	params.Set("client_secret", c.clientSecret)
	params.Set("grant_type", "client_credentials")

	endpoint := c.tokenURL + "?" + params.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, nil)
	if err != nil {
		return tokenResponse{}, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return tokenResponse{}, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return tokenResponse{}, backlogerrors.NewUpstreamError("twitch oauth", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var token tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&token); err != nil {
		return tokenResponse{}, fmt.Errorf("failed to decode token response: %w", err)
	}
	if token.AccessToken == "" {
		return tokenResponse{}, fmt.Errorf("token response did not contain an access token")
	}

	return token, nil
}
