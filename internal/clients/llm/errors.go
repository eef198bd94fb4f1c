package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

var (
	ErrRateLimited   = errors.New("rate limited")
	ErrTimeout       = errors.New("request timed out")
	ErrUnavailable   = errors.New("service unavailable")
	ErrEmptyResponse = errors.New("empty response")
)

// IsTransient reports whether a call that failed with err is worth repeating.
func IsTransient(err error) bool {
	return errors.Is(err, ErrRateLimited) ||
		errors.Is(err, ErrTimeout) ||
		errors.Is(err, ErrUnavailable) ||
		errors.Is(err, context.DeadlineExceeded)
}

// FromStatus maps an unsuccessful HTTP status onto the error taxonomy.
func FromStatus(status int, body string) error {
	switch {
	case status == http.StatusTooManyRequests:
		return fmt.Errorf("%w: status %d, body: %s", ErrRateLimited, status, body)
	case status == http.StatusRequestTimeout || status == http.StatusGatewayTimeout:
		return fmt.Errorf("%w: status %d, body: %s", ErrTimeout, status, body)
	case status >= 500:
		return fmt.Errorf("%w: status %d, body: %s", ErrUnavailable, status, body)
	default:
		return fmt.Errorf("request failed with status %v, body: %v", status, body)
	}
}

// FromMessage classifies SDK errors that only carry the status in their text.
func FromMessage(err error) error {
	if err == nil {
		return nil
	}
	msg := err.Error()
	switch {
	case strings.Contains(msg, "Error 429") || strings.Contains(msg, "ResourceExhausted"):
		return fmt.Errorf("%w: %w", ErrRateLimited, err)
	case strings.Contains(msg, "DeadlineExceeded") || strings.Contains(msg, "Error 504"):
		return fmt.Errorf("%w: %w", ErrTimeout, err)
	case strings.Contains(msg, "Error 500") || strings.Contains(msg, "Error 503") ||
		strings.Contains(msg, "Unavailable") || strings.Contains(msg, "Internal"):
		return fmt.Errorf("%w: %w", ErrUnavailable, err)
	default:
		return err
	}
}
