package retry

import (
	"context"
	"time"

	"github.com/samber/lo"
	log "github.com/sirupsen/logrus"
)

type Policy struct {
	MaxAttempts int
	Backoff     time.Duration
	Name        string
}

// Do calls fn until it succeeds, the error is not retryable or attempts run out.
// The wait before attempt n (n >= 1) is Backoff * 2^(n-1).
func Do(ctx context.Context, policy Policy, fn func(ctx context.Context) error, retryable func(error) bool) error {

	attempts := max(policy.MaxAttempts, 1)
	var err error

	_, _ = lo.AttemptWhile(attempts, func(i int) (error, bool) {
		if i > 0 {
			delay := policy.Backoff * time.Duration(1<<(i-1))
			log.Warnf("%s failed: %v, retrying in %v (attempt %d/%d)", policy.Name, err, delay, i+1, attempts)
			if sleepErr := Sleep(ctx, delay); sleepErr != nil {
				err = sleepErr
				return err, false
			}
		}

		err = fn(ctx)
		if err == nil {
			return nil, false
		}
		if ctx.Err() != nil {
			return err, false
		}
		return err, retryable(err)
	})

	return err
}

// Sleep waits for d or until ctx is done.
func Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
