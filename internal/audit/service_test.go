package audit

import (
	"errors"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openshelf/openshelf/internal/database"
	auditrepo "github.com/openshelf/openshelf/internal/database/audit"
	"github.com/openshelf/openshelf/internal/entities"
)

func setupTestService(t *testing.T) (*Service, *auditrepo.Repository, func()) {
	t.Helper()

	dbPath := "./test_audit_" + strings.ReplaceAll(t.Name(), "/", "_") + ".db"
	db, err := database.NewDatabase(dbPath)
	require.NoError(t, err)

	repo := auditrepo.NewRepository(db.DB)
	cleanup := func() {
		db.Close()
		os.Remove(dbPath)
	}
	return NewService(repo), repo, cleanup
}

func TestLogCuration(t *testing.T) {
	t.Run("records a successful action", func(t *testing.T) {
		service, _, cleanup := setupTestService(t)
		defer cleanup()

		require.NoError(t, service.Log(&entities.AuditEvent{
			ActorID:    1,
			EventType:  entities.AuditEventCuration,
			Action:     "book_create",
			EntityType: "book",
			EntityID:   "abc",
			Status:     entities.AuditStatusSuccess,
		}))

		events, total, err := service.GetEvents(1, 10, 0)
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
		require.Len(t, events, 1)
		assert.Equal(t, "book_create", events[0].Action)
		assert.Equal(t, entities.AuditStatusSuccess, events[0].Status)
	})

	t.Run("failed action carries the error message", func(t *testing.T) {
		service, repo, cleanup := setupTestService(t)
		defer cleanup()

		service.LogCuration(1, "book_delete", "abc", "delete book", errors.New("book not found"))

		waitForEvents(t, repo, 1)
		events, _, err := service.GetEvents(1, 10, 0)
		require.NoError(t, err)
		require.Len(t, events, 1)
		assert.Equal(t, entities.AuditStatusFailed, events[0].Status)
		assert.Equal(t, "book not found", events[0].ErrorMsg)
	})
}

func TestGetEventsActorFilter(t *testing.T) {
	service, _, cleanup := setupTestService(t)
	defer cleanup()

	for actor := uint(1); actor <= 2; actor++ {
		require.NoError(t, service.Log(&entities.AuditEvent{
			ActorID:   actor,
			EventType: entities.AuditEventRole,
			Action:    "role_set",
			Status:    entities.AuditStatusSuccess,
		}))
	}

	t.Run("filters by actor", func(t *testing.T) {
		events, total, err := service.GetEvents(2, 10, 0)
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
		require.Len(t, events, 1)
		assert.Equal(t, uint(2), events[0].ActorID)
	})

	t.Run("actor zero returns everything", func(t *testing.T) {
		_, total, err := service.GetEvents(0, 10, 0)
		require.NoError(t, err)
		assert.Equal(t, int64(2), total)
	})
}

func TestDeleteOldEvents(t *testing.T) {
	service, repo, cleanup := setupTestService(t)
	defer cleanup()

	require.NoError(t, repo.LogEvent(&entities.AuditEvent{
		ActorID:   1,
		EventType: entities.AuditEventAuth,
		Action:    "login",
		Status:    entities.AuditStatusSuccess,
		CreatedAt: time.Now().Add(-90 * 24 * time.Hour),
	}))
	require.NoError(t, repo.LogEvent(&entities.AuditEvent{
		ActorID:   1,
		EventType: entities.AuditEventAuth,
		Action:    "login",
		Status:    entities.AuditStatusSuccess,
	}))

	count, err := repo.CountOlderThan(time.Now().Add(-30 * 24 * time.Hour))
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	deleted, err := service.DeleteOldEvents(30 * 24 * time.Hour)
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)

	_, total, err := service.GetEvents(0, 10, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
}

// waitForEvents polls until the async logger has flushed the expected number
// of events.
func waitForEvents(t *testing.T, repo *auditrepo.Repository, want int64) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if _, total, err := repo.GetEvents(0, 1, 0); err == nil && total >= want {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("audit events never reached %d", want)
}
