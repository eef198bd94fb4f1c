package browser

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/playwright-community/playwright-go"
)

var (
	ErrTimeout            = errors.New("navigation timed out")
	ErrRateLimited        = errors.New("navigation rate limited")
	ErrSessionUnavailable = errors.New("browser session unavailable")
	ErrBadStatus          = errors.New("unexpected response status")
)

// IsTransient reports whether repeating the navigation may succeed.
func IsTransient(err error) bool {
	return errors.Is(err, ErrTimeout) || errors.Is(err, ErrRateLimited)
}

func classifyError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, playwright.ErrTimeout):
		return fmt.Errorf("%w: %w", ErrTimeout, err)
	case errors.Is(err, playwright.ErrTargetClosed):
		return fmt.Errorf("%w: %w", ErrSessionUnavailable, err)
	default:
		return err
	}
}

func classifyStatus(status int) error {
	switch {
	case status == 0 || status < http.StatusBadRequest:
		return nil
	case status == http.StatusTooManyRequests || status == 999:
		return fmt.Errorf("%w: status %d", ErrRateLimited, status)
	case status >= http.StatusInternalServerError:
		return fmt.Errorf("%w: status %d", ErrTimeout, status)
	default:
		return fmt.Errorf("%w: status %d", ErrBadStatus, status)
	}
}
