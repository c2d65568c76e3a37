package tasks

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCleaner struct {
	retention time.Duration
	deleted   int64
	err       error
	calls     int
}

func (f *fakeCleaner) DeleteOldEvents(retention time.Duration) (int64, error) {
	f.calls++
	f.retention = retention
	return f.deleted, f.err
}

func TestCleanupAuditEventsProcessor(t *testing.T) {
	t.Run("deletes with configured retention", func(t *testing.T) {
		cleaner := &fakeCleaner{deleted: 12}
		processor := CleanupAuditEventsProcessor(cleaner)

		err := processor(context.Background(), CleanupAuditEventsTask{RetentionDays: 90})
		require.NoError(t, err)
		assert.Equal(t, 1, cleaner.calls)
		assert.Equal(t, 90*24*time.Hour, cleaner.retention)
	})

	t.Run("zero retention falls back to 30 days", func(t *testing.T) {
		cleaner := &fakeCleaner{}
		processor := CleanupAuditEventsProcessor(cleaner)

		err := processor(context.Background(), CleanupAuditEventsTask{})
		require.NoError(t, err)
		assert.Equal(t, 30*24*time.Hour, cleaner.retention)
	})

	t.Run("propagates cleaner failure", func(t *testing.T) {
		cleaner := &fakeCleaner{err: errors.New("locked")}
		processor := CleanupAuditEventsProcessor(cleaner)

		err := processor(context.Background(), CleanupAuditEventsTask{RetentionDays: 7})
		assert.ErrorContains(t, err, "locked")
	})

	t.Run("nil cleaner errors", func(t *testing.T) {
		processor := CleanupAuditEventsProcessor(nil)

		err := processor(context.Background(), CleanupAuditEventsTask{RetentionDays: 7})
		assert.Error(t, err)
	})
}

func TestCleanupAuditEventsTaskConfig(t *testing.T) {
	cfg := CleanupAuditEventsTask{}.Config()

	assert.Equal(t, "cleanup_audit_events", cfg.Name)
	assert.Equal(t, 3, cfg.MaxAttempts)
}
