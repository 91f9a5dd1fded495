package stats

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStorage(t *testing.T) {
	tempDir := t.TempDir()

	storage, err := NewStorage(tempDir)
	require.NoError(t, err)

	t.Run("RecordAudit", func(t *testing.T) {
		storage.RecordAudit("https://example.com/bai-viet", 120, false)
		storage.RecordAudit("https://example.com/khac", 80, true)

		current := storage.GetCurrentStats()
		assert.Equal(t, 2, current.Audits)
		assert.Equal(t, 1, current.Errors)
		assert.Equal(t, 100.0, current.AverageDurationMs())
		assert.Equal(t, 50.0, current.ErrorRate())
		assert.Equal(t, 2, current.PopularHosts["example.com"])
	})

	t.Run("LocalHostsNotTracked", func(t *testing.T) {
		storage.RecordAudit("http://localhost:8082/api/check", 10, false)
		current := storage.GetCurrentStats()
		assert.NotContains(t, current.PopularHosts, "localhost:8082")
	})

	t.Run("Persistence", func(t *testing.T) {
		storage.requestWrite()
		time.Sleep(100 * time.Millisecond)

		reloaded, err := NewStorage(tempDir)
		require.NoError(t, err)
		defer reloaded.Shutdown()

		current := reloaded.GetCurrentStats()
		assert.Equal(t, 3, current.Audits)
	})

	t.Run("Snapshot", func(t *testing.T) {
		snapshot := storage.Snapshot(false)
		assert.Equal(t, 3, snapshot["audits"])
		assert.NotContains(t, snapshot, "popularHosts")

		devSnapshot := storage.Snapshot(true)
		assert.Contains(t, devSnapshot, "popularHosts")
	})

	require.NoError(t, storage.Shutdown())
}

func TestCleanupRetainsRecentMonths(t *testing.T) {
	storage, err := NewStorage(t.TempDir())
	require.NoError(t, err)
	defer storage.Shutdown()

	storage.mutex.Lock()
	storage.stats["2020-01"] = &MonthlyStats{Audits: 5}
	storage.mutex.Unlock()

	storage.RecordAudit("https://example.com/x", 10, false)
	storage.Cleanup()

	_, exists := storage.GetMonthlyStats("2020-01")
	assert.False(t, exists)
	assert.Equal(t, 1, storage.GetCurrentStats().Audits)
}
