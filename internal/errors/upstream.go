package errors

import (
	"errors"
	"fmt"
	"strings"
)

// UpstreamError is a well-formed error answer from a remote service: a non-2xx status or an
// envelope with success=false.
type UpstreamError struct {
	Source     string
	StatusCode int
	Messages   []string
}

func (e *UpstreamError) Error() string {
	msg := fmt.Sprintf("%s: upstream error", e.Source)
	if e.StatusCode != 0 {
		msg = fmt.Sprintf("%s: unexpected status %d", e.Source, e.StatusCode)
	}
	if len(e.Messages) > 0 {
		msg += ": " + strings.Join(e.Messages, "; ")
	}
	return msg
}

// NewUpstreamError creates an UpstreamError.
func NewUpstreamError(source string, statusCode int, messages ...string) *UpstreamError {
	clean := make([]string, 0, len(messages))
	for _, m := range messages {
		if m = strings.TrimSpace(m); m != "" {
			clean = append(clean, m)
		}
	}
	return &UpstreamError{Source: source, StatusCode: statusCode, Messages: clean}
}

// IsUpstreamError reports whether err is an UpstreamError (even when wrapped).
func IsUpstreamError(err error) bool {
	var upErr *UpstreamError
	return errors.As(err, &upErr)
}
