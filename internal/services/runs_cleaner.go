package services

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/robfig/cron/v3"
	log "github.com/sirupsen/logrus"
)

type RunsCleanupRepository interface {
	RemoveOlderThan(ctx context.Context, expirationTime time.Time) (int64, error)
}

// RunsCleaner deletes run history records older than the retention period once a day.
type RunsCleaner struct {
	runs                 RunsCleanupRepository
	cron                 *cron.Cron
	expirationTimeInDays int
}

func NewRunsCleaner(runs RunsCleanupRepository, expirationInDays int) (*RunsCleaner, error) {

	if expirationInDays <= 0 {
		return nil, errors.New("expiration in days must be greater than zero")
	}

	rc := &RunsCleaner{
		runs:                 runs,
		cron:                 cron.New(),
		expirationTimeInDays: expirationInDays,
	}

	_, err := rc.cron.AddFunc("0 0 * * *", rc.cleanOldRuns)
	if err != nil {
		return nil, errors.Wrap(err, "failed to schedule runs cleanup")
	}

	rc.cron.Start()
	log.Infof("runs cleaner started, expiration in days: %d", rc.expirationTimeInDays)
	return rc, nil
}

func (rc *RunsCleaner) Stop() {
	rc.cron.Stop()
}

func (rc *RunsCleaner) cleanOldRuns() {
	expirationTime := time.Now().AddDate(0, 0, -rc.expirationTimeInDays)
	rowsAffected, err := rc.runs.RemoveOlderThan(context.Background(), expirationTime)
	if err != nil {
		log.Errorf("failed to clean old runs: %v", err)
	} else {
		log.Infof("old runs were cleaned at %v, affected rows: %v", time.Now(), rowsAffected)
	}
}
