package models

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

type RunStatus string

const (
	RunPending   RunStatus = "pending"
	RunRunning   RunStatus = "running"
	RunCompleted RunStatus = "completed"
	RunFailed    RunStatus = "failed"
)

var ErrInvalidTransition = errors.New("invalid run status transition")

// Run is the record of one pipeline execution. Its status only moves
// pending -> running -> completed|failed.
type Run struct {
	ID           string `gorm:"primaryKey"`
	Status       RunStatus
	JobsScraped  int
	JobsSkipped  int
	JobsMatched  int
	JobsFallback int
	TotalResults int
	Error        string
	StartedAt    *time.Time
	FinishedAt   *time.Time
	CreatedAt    time.Time
}

func (Run) TableName() string {
	return "search_runs"
}

func NewRun() Run {
	return Run{
		ID:        uuid.NewString(),
		Status:    RunPending,
		CreatedAt: time.Now(),
	}
}

func (r *Run) Start(totalResults int) error {
	if r.Status != RunPending {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, r.Status, RunRunning)
	}
	now := time.Now()
	r.Status = RunRunning
	r.StartedAt = &now
	r.TotalResults = totalResults
	return nil
}

func (r *Run) Complete() error {
	if r.Status != RunRunning {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, r.Status, RunCompleted)
	}
	now := time.Now()
	r.Status = RunCompleted
	r.FinishedAt = &now
	return nil
}

func (r *Run) Fail(message string) error {
	if r.Status != RunRunning {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, r.Status, RunFailed)
	}
	now := time.Now()
	r.Status = RunFailed
	r.Error = message
	r.FinishedAt = &now
	return nil
}

func (r *Run) IsTerminal() bool {
	return r.Status == RunCompleted || r.Status == RunFailed
}

func (r *Run) Duration() time.Duration {
	if r.StartedAt == nil {
		return 0
	}
	if r.FinishedAt == nil {
		return time.Since(*r.StartedAt)
	}
	return r.FinishedAt.Sub(*r.StartedAt)
}
