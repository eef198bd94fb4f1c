package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockRunsCleanup struct {
	expiration time.Time
}

func (m *mockRunsCleanup) RemoveOlderThan(_ context.Context, expirationTime time.Time) (int64, error) {
	m.expiration = expirationTime
	return 3, nil
}

func Test_RunsCleaner_ShouldRemoveRunsOlderThanRetention(t *testing.T) {
	repo := &mockRunsCleanup{}
	cleaner, err := NewRunsCleaner(repo, 30)
	require.NoError(t, err)
	defer cleaner.Stop()

	cleaner.cleanOldRuns()

	expected := time.Now().AddDate(0, 0, -30)
	assert.WithinDuration(t, expected, repo.expiration, time.Minute)
}

func Test_NewRunsCleaner_WithZeroRetention_ShouldFail(t *testing.T) {
	_, err := NewRunsCleaner(&mockRunsCleanup{}, 0)
	assert.Error(t, err)
}
