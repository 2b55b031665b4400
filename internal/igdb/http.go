package igdb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/cenkalti/backoff/v4"

	backlogerrors "github.com/lepinkainen/backlog/internal/errors"
)

// query posts an Apicalypse body to the given endpoint and decodes the JSON answer.
func (c *Client) query(ctx context.Context, endpoint, body string, target any) error {
	if err := c.checkCredentials(); err != nil {
		return err
	}

	return c.retry(ctx, func() error {
		err := c.doQuery(ctx, endpoint, body, target)
		if isUnauthorized(err) {
			// Token revoked server-side; drop it and try once more with a fresh one.
			c.invalidateToken()
			err = c.doQuery(ctx, endpoint, body, target)
		}
		return err
	})
}

func (c *Client) doQuery(ctx context.Context, endpoint, body string, target any) error {
	token, err := c.accessToken(ctx)
	if err != nil {
		return err
	}

	if err := c.rateLimiter.Wait(ctx); err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/"+endpoint, strings.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Client-ID", c.clientID)
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "text/plain")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode == http.StatusTooManyRequests {
		return backlogerrors.NewRateLimitErrorWithRetry("igdb: rate limited", parseRetryAfter(resp.Header.Get("Retry-After")))
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return backlogerrors.NewUpstreamError("igdb", resp.StatusCode, strings.TrimSpace(string(raw)))
	}

	if err := json.NewDecoder(resp.Body).Decode(target); err != nil {
		return fmt.Errorf("igdb: failed to decode response: %w", err)
	}
	return nil
}

// retry runs op until it succeeds, fails with a non-retryable error or the attempts run out.
func (c *Client) retry(ctx context.Context, op func() error) error {
	policy := backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewExponentialBackOff(), uint64(c.retryAttempts-1)),
		ctx,
	)

	return backoff.Retry(func() error {
		err := op()
		if err != nil && !isRetryable(err) {
			return backoff.Permanent(err)
		}
		return err
	}, policy)
}

// isRetryable reports network failures worth another attempt: timeouts, dropped or refused
// connections and bodies cut short.
func isRetryable(err error) bool {
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}

	switch {
	case errors.Is(err, syscall.ECONNRESET),
		errors.Is(err, syscall.ECONNREFUSED),
		errors.Is(err, syscall.ECONNABORTED),
		errors.Is(err, io.ErrUnexpectedEOF):
		return true
	}

	var opErr *net.OpError
	return errors.As(err, &opErr)
}

func isUnauthorized(err error) bool {
	var upErr *backlogerrors.UpstreamError
	return errors.As(err, &upErr) && upErr.StatusCode == http.StatusUnauthorized
}

func parseRetryAfter(value string) time.Duration {
	if value == "" {
		return 0
	}
	if seconds, err := strconv.Atoi(strings.TrimSpace(value)); err == nil && seconds > 0 {
		return time.Duration(seconds) * time.Second
	}
	return 0
}
