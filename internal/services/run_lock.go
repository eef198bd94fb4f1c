package services

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
)

// RunLock is an inter-process lock ensuring a single writer per store.
type RunLock struct {
	lock *flock.Flock
}

func NewRunLock(path string) (*RunLock, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create lock directory: %w", err)
		}
	}
	return &RunLock{lock: flock.New(path)}, nil
}

func (l *RunLock) TryLock() (bool, error) {
	return l.lock.TryLock()
}

func (l *RunLock) Unlock() error {
	return l.lock.Unlock()
}

