package scraper

import (
	"context"
	"math/rand/v2"
	"time"

	"github.com/maxaizer/jobscout/internal/retry"
	"golang.org/x/time/rate"
)

// Pacer spaces navigations at least MinDelay apart, plus up to Jitter of random slack.
type Pacer struct {
	limiter *rate.Limiter
	jitter  time.Duration
}

func NewPacer(minDelay, jitter time.Duration) *Pacer {
	limit := rate.Inf
	if minDelay > 0 {
		limit = rate.Every(minDelay)
	}
	return &Pacer{
		limiter: rate.NewLimiter(limit, 1),
		jitter:  jitter,
	}
}

func (p *Pacer) Wait(ctx context.Context) error {
	if err := p.limiter.Wait(ctx); err != nil {
		return err
	}
	if p.jitter <= 0 {
		return nil
	}
	return retry.Sleep(ctx, rand.N(p.jitter))
}
