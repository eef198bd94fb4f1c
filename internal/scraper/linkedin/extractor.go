package linkedin

import (
	"context"
	"errors"
	"iter"
	"time"

	"github.com/maxaizer/jobscout/internal/clients/browser"
	"github.com/maxaizer/jobscout/internal/domain/models"
	"github.com/maxaizer/jobscout/internal/logger"
	"github.com/maxaizer/jobscout/internal/metrics"
	"github.com/maxaizer/jobscout/internal/retry"
	"github.com/maxaizer/jobscout/internal/scraper"
	log "github.com/sirupsen/logrus"
)

const maxPages = 40

type Browser interface {
	Navigate(ctx context.Context, url string) (string, error)
}

type Options struct {
	BaseURL     string
	MinDelay    time.Duration
	Jitter      time.Duration
	MaxAttempts int
	Backoff     time.Duration
}

type Extractor struct {
	browser Browser
	pacer   *scraper.Pacer
	baseURL string
	retry   retry.Policy
	now     func() time.Time
}

func NewExtractor(b Browser, opts Options) *Extractor {
	baseURL := opts.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Extractor{
		browser: b,
		pacer:   scraper.NewPacer(opts.MinDelay, opts.Jitter),
		baseURL: baseURL,
		retry: retry.Policy{
			MaxAttempts: opts.MaxAttempts,
			Backoff:     opts.Backoff,
			Name:        "navigation",
		},
		now: time.Now,
	}
}

// Extract lazily yields at most query.Limit postings for one keyword. Postings
// that fail to load are logged and skipped. The sequence ends with an error
// only when the browser session is gone or ctx is done.
func (e *Extractor) Extract(ctx context.Context, query models.SearchQuery) iter.Seq2[models.Job, error] {
	return func(yield func(models.Job, error) bool) {
		if query.Limit <= 0 {
			return
		}

		produced, start := 0, 0
		seen := map[string]bool{}

		for page := 0; page < maxPages && produced < query.Limit; page++ {
			cards, err := e.searchPage(ctx, query, start)
			if err != nil {
				if fatal := fatalError(ctx, err); fatal != nil {
					yield(models.Job{}, fatal)
					return
				}
				log.WithField(logger.ErrorTypeField, logger.ErrorTypeBrowser).
					Errorf("failed to load search page for %q at offset %d: %v", query.Keyword, start, err)
				return
			}
			start += len(cards)

			fresh := 0
			for _, c := range cards {
				if seen[c.ID] {
					continue
				}
				seen[c.ID] = true
				fresh++

				job, err := e.posting(ctx, c)
				if err != nil {
					if fatal := fatalError(ctx, err); fatal != nil {
						yield(models.Job{}, fatal)
						return
					}
					log.WithField(logger.ErrorTypeField, logger.ErrorTypeBrowser).
						Errorf("skipping posting %s: %v", c.ID, err)
					continue
				}

				job.Keyword = query.Keyword
				produced++
				if !yield(job, nil) || produced >= query.Limit {
					return
				}
			}

			if fresh == 0 {
				break
			}
		}

		log.Debugf("extracted %d postings for %q", produced, query.Keyword)
	}
}

func fatalError(ctx context.Context, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}
	if errors.Is(err, browser.ErrSessionUnavailable) {
		return err
	}
	return nil
}

func (e *Extractor) searchPage(ctx context.Context, query models.SearchQuery, start int) ([]card, error) {
	page, err := e.navigate(ctx, searchURL(e.baseURL, query, start))
	if err != nil {
		return nil, err
	}
	return parseSearchPage(page)
}

func (e *Extractor) posting(ctx context.Context, c card) (models.Job, error) {
	page, err := e.navigate(ctx, postingURL(e.baseURL, c.ID))
	if err != nil {
		return models.Job{}, err
	}
	return parsePosting(page, c, e.now())
}

func (e *Extractor) navigate(ctx context.Context, url string) (string, error) {
	var page string
	err := retry.Do(ctx, e.retry, func(ctx context.Context) error {
		if err := e.pacer.Wait(ctx); err != nil {
			return err
		}
		start := time.Now()
		var err error
		page, err = e.browser.Navigate(ctx, url)
		metrics.StepDuration.WithLabelValues("navigation").Observe(time.Since(start).Seconds())
		return err
	}, browser.IsTransient)
	return page, err
}
