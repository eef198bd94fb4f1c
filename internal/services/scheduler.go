package services

import (
	"context"
	"sync/atomic"

	"github.com/maxaizer/jobscout/internal/domain/models"
	"github.com/robfig/cron/v3"
	log "github.com/sirupsen/logrus"
)

type runner interface {
	Run(ctx context.Context) (models.Run, error)
}

// Scheduler starts a run on every cron tick. A tick arriving while a run is
// still in progress is skipped.
type Scheduler struct {
	runner  runner
	cron    *cron.Cron
	running atomic.Bool
	ctx     context.Context
}

func NewScheduler(ctx context.Context, r runner, spec string) (*Scheduler, error) {
	s := &Scheduler{
		runner: r,
		cron:   cron.New(),
		ctx:    ctx,
	}

	if _, err := s.cron.AddFunc(spec, s.tick); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Scheduler) Start() {
	s.cron.Start()
	log.Infof("scheduler started, next run at %v", s.cron.Entries()[0].Next)
}

// Stop waits for a run in progress to return.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
}

func (s *Scheduler) tick() {
	if !s.running.CompareAndSwap(false, true) {
		log.Warn("previous run is still in progress, skipping scheduled run")
		return
	}
	defer s.running.Store(false)

	if s.ctx.Err() != nil {
		return
	}
	run, err := s.runner.Run(s.ctx)
	if err != nil {
		log.Errorf("scheduled run %s failed: %v", run.ID, err)
	}
}
