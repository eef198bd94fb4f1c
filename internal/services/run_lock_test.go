package services

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_RunLock_SecondHolder_ShouldNotAcquire(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "jobscout.lock")
	first, err := NewRunLock(path)
	require.NoError(t, err)
	second, err := NewRunLock(path)
	require.NoError(t, err)

	locked, err := first.TryLock()
	require.NoError(t, err)
	assert.True(t, locked)

	locked, err = second.TryLock()
	require.NoError(t, err)
	assert.False(t, locked)

	require.NoError(t, first.Unlock())
	locked, err = second.TryLock()
	require.NoError(t, err)
	assert.True(t, locked)
	require.NoError(t, second.Unlock())

	_, err = os.Stat(path)
	assert.NoError(t, err)
}
