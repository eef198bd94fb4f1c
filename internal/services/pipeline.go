package services

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"iter"
	"slices"
	"sync"
	"time"

	"github.com/asaskevich/EventBus"
	"github.com/maxaizer/jobscout/internal/domain/events"
	"github.com/maxaizer/jobscout/internal/domain/models"
	"github.com/maxaizer/jobscout/internal/logger"
	"github.com/maxaizer/jobscout/internal/metrics"
	log "github.com/sirupsen/logrus"
)

const (
	canceledMessage = "run canceled"
	topMatchesCount = 5
)

var ErrRunLocked = errors.New("another run holds the lock")

type jobExtractor interface {
	Extract(ctx context.Context, query models.SearchQuery) iter.Seq2[models.Job, error]
}

type jobMatcher interface {
	Score(ctx context.Context, job models.Job, requiredSkills []string, profile models.Profile) (models.MatchResult, error)
}

type JobStore interface {
	ExistingIDs(ctx context.Context) ([]string, error)
	Append(ctx context.Context, job models.Job) error
}

type profileSource interface {
	Load(ctx context.Context) (models.Profile, error)
}

type runRecorder interface {
	Save(ctx context.Context, run models.Run) error
}

type runLocker interface {
	TryLock() (bool, error)
	Unlock() error
}

type PipelineConfig struct {
	Categories             []models.SearchCategory
	MaxKeywordsPerCategory int
}

type PipelineDeps struct {
	Extractor jobExtractor
	Matcher   jobMatcher
	Store     JobStore
	Profile   profileSource
	// Optional.
	Runs   runRecorder
	Locker runLocker
	Bus    EventBus.Bus
}

// Pipeline runs categories, then keywords, then postings one at a time:
// extract, drop already known ids, score, append.
type Pipeline struct {
	cfg  PipelineConfig
	deps PipelineDeps

	mu      sync.Mutex
	current models.Run
}

func NewPipeline(cfg PipelineConfig, deps PipelineDeps) (*Pipeline, error) {
	if deps.Extractor == nil || deps.Matcher == nil || deps.Store == nil || deps.Profile == nil {
		return nil, errors.New("pipeline requires extractor, matcher, store and profile source")
	}
	return &Pipeline{cfg: cfg, deps: deps}, nil
}

// Progress returns a snapshot of the run in progress, or of the last finished run.
func (p *Pipeline) Progress() models.Run {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.current
}

// Run executes one end-to-end run. The returned error is the cause of a failed
// run; the run record is returned in both cases.
func (p *Pipeline) Run(ctx context.Context) (models.Run, error) {

	run := models.NewRun()
	p.update(ctx, run)

	totalResults := 0
	for _, category := range p.cfg.Categories {
		totalResults += category.MaxResults
	}
	if err := run.Start(totalResults); err != nil {
		return run, err
	}
	p.update(ctx, run)
	log.Infof("run %s started for %d categories", run.ID, len(p.cfg.Categories))

	var matched []models.Job
	err := p.execute(ctx, &run, &matched)

	if err != nil {
		message := err.Error()
		if ctx.Err() != nil {
			message = canceledMessage
		}
		_ = run.Fail(message)
		log.Errorf("run %s failed: %s", run.ID, message)
	} else {
		_ = run.Complete()
		log.Infof("run %s completed: scraped %d, skipped %d, matched %d (fallback %d) in %v",
			run.ID, run.JobsScraped, run.JobsSkipped, run.JobsMatched, run.JobsFallback, run.Duration())
	}

	metrics.RunDuration.Observe(run.Duration().Seconds())
	metrics.RunsCounter.WithLabelValues(string(run.Status)).Inc()
	p.update(ctx, run)
	if p.deps.Bus != nil {
		p.deps.Bus.Publish(events.RunFinishedTopic, events.RunFinished{Run: run})
	}
	logTopMatches(matched)

	return run, err
}

func (p *Pipeline) execute(ctx context.Context, run *models.Run, matched *[]models.Job) error {

	if p.deps.Locker != nil {
		locked, err := p.deps.Locker.TryLock()
		if err != nil {
			return fmt.Errorf("failed to acquire run lock: %w", err)
		}
		if !locked {
			return ErrRunLocked
		}
		defer func() {
			if err := p.deps.Locker.Unlock(); err != nil {
				log.Errorf("failed to release run lock: %v", err)
			}
		}()
	}

	profile, err := p.deps.Profile.Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to load profile: %w", err)
	}

	existing, err := p.deps.Store.ExistingIDs(ctx)
	if err != nil {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeStore).Errorf("failed to read existing ids: %v", err)
		return fmt.Errorf("failed to read existing ids: %w", err)
	}
	dedup := NewDeduplicator(existing)
	log.Infof("loaded %d known posting ids", dedup.Len())

	for _, category := range p.cfg.Categories {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := p.runCategory(ctx, run, category, profile, dedup, matched); err != nil {
			return err
		}
	}
	return ctx.Err()
}

func (p *Pipeline) runCategory(ctx context.Context, run *models.Run, category models.SearchCategory,
	profile models.Profile, dedup *Deduplicator, matched *[]models.Job) error {

	fetched := 0
	for _, keyword := range category.KeywordsUpTo(p.cfg.MaxKeywordsPerCategory) {
		remaining := category.MaxResults - fetched
		if remaining <= 0 {
			break
		}

		log.Infof("searching %q in category %s, up to %d postings", keyword, category.Name, remaining)
		query := category.Query(keyword, remaining)

		for job, err := range p.deps.Extractor.Extract(ctx, query) {
			if err != nil {
				return fmt.Errorf("extraction for %q stopped: %w", keyword, err)
			}
			fetched++
			run.JobsScraped++
			metrics.JobsScrapedCounter.Inc()

			if dedup.HasSeen(job.ID) {
				run.JobsSkipped++
				metrics.JobsSkippedCounter.Inc()
				p.publishProgress(*run)
				continue
			}

			job.Category = category.Name
			if err := p.matchAndStore(ctx, run, &job, category.RequiredSkills, profile); err != nil {
				return err
			}
			dedup.RecordSeen(job.ID)
			*matched = append(*matched, job)
		}

		p.update(ctx, *run)
	}
	return nil
}

func (p *Pipeline) matchAndStore(ctx context.Context, run *models.Run, job *models.Job,
	requiredSkills []string, profile models.Profile) error {

	result, err := p.deps.Matcher.Score(ctx, *job, requiredSkills, profile)
	if err != nil {
		return err
	}
	job.ApplyMatch(result)
	job.Status = models.StatusNew

	start := time.Now()
	err = p.deps.Store.Append(ctx, *job)
	metrics.StepDuration.WithLabelValues("persistence").Observe(time.Since(start).Seconds())
	if err != nil {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeStore).Errorf("failed to append %s: %v", job.ID, err)
		return fmt.Errorf("failed to append posting %s: %w", job.ID, err)
	}

	run.JobsMatched++
	if result.Fallback {
		run.JobsFallback++
	}
	metrics.JobsMatchedCounter.Inc()
	log.Infof("stored %v with score %.0f by %s", *job, result.Score, result.Backend)

	if p.deps.Bus != nil {
		p.deps.Bus.Publish(events.JobMatchedTopic, events.JobMatched{RunID: run.ID, Job: *job})
	}
	p.publishProgress(*run)
	return nil
}

func (p *Pipeline) publishProgress(run models.Run) {
	p.mu.Lock()
	p.current = run
	p.mu.Unlock()

	if p.deps.Bus != nil {
		p.deps.Bus.Publish(events.RunProgressTopic, events.RunProgress{Run: run})
	}
}

// update stores the snapshot and records it in run history.
func (p *Pipeline) update(ctx context.Context, run models.Run) {
	p.publishProgress(run)
	if p.deps.Runs == nil {
		return
	}
	if err := p.deps.Runs.Save(context.WithoutCancel(ctx), run); err != nil {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeDb).Errorf("failed to record run %s: %v", run.ID, err)
	}
}

func logTopMatches(jobs []models.Job) {
	if len(jobs) == 0 {
		return
	}
	sorted := slices.Clone(jobs)
	slices.SortStableFunc(sorted, func(a, b models.Job) int {
		return cmp.Compare(jobScore(b), jobScore(a))
	})
	if len(sorted) > topMatchesCount {
		sorted = sorted[:topMatchesCount]
	}

	log.Infof("top %d matches:", len(sorted))
	for i, job := range sorted {
		log.Infof("%d. %.0f%% %v %s", i+1, jobScore(job), job, job.URL)
	}
}

func jobScore(job models.Job) float64 {
	if job.MatchScore == nil {
		return 0
	}
	return *job.MatchScore
}
