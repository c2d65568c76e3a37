package roles

import (
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openshelf/openshelf/internal/database"
)

func setupTestRepo(t *testing.T) (*Repository, func()) {
	t.Helper()

	dbPath := "./test_roles_" + strings.ReplaceAll(t.Name(), "/", "_") + ".db"
	db, err := database.NewDatabase(dbPath)
	require.NoError(t, err)

	cleanup := func() {
		db.Close()
		os.Remove(dbPath)
	}
	return NewRepository(db.DB), cleanup
}

func TestGetRole(t *testing.T) {
	t.Run("absent assignment is empty string with nil error", func(t *testing.T) {
		repo, cleanup := setupTestRepo(t)
		defer cleanup()

		role, err := repo.GetRole(42)
		require.NoError(t, err)
		assert.Empty(t, role)
	})

	t.Run("returns the stored role", func(t *testing.T) {
		repo, cleanup := setupTestRepo(t)
		defer cleanup()

		require.NoError(t, repo.SetRole(42, "admin"))

		role, err := repo.GetRole(42)
		require.NoError(t, err)
		assert.Equal(t, "admin", role)
	})
}

func TestSetRole(t *testing.T) {
	t.Run("replaces an existing assignment", func(t *testing.T) {
		repo, cleanup := setupTestRepo(t)
		defer cleanup()

		require.NoError(t, repo.SetRole(42, "admin"))
		require.NoError(t, repo.SetRole(42, "user"))

		role, err := repo.GetRole(42)
		require.NoError(t, err)
		assert.Equal(t, "user", role)

		assignments, err := repo.ListAssignments()
		require.NoError(t, err)
		assert.Len(t, assignments, 1)
	})
}

func TestClearRole(t *testing.T) {
	t.Run("reverts to no assignment", func(t *testing.T) {
		repo, cleanup := setupTestRepo(t)
		defer cleanup()

		require.NoError(t, repo.SetRole(42, "admin"))
		require.NoError(t, repo.ClearRole(42))

		role, err := repo.GetRole(42)
		require.NoError(t, err)
		assert.Empty(t, role)
	})

	t.Run("clearing a missing assignment succeeds", func(t *testing.T) {
		repo, cleanup := setupTestRepo(t)
		defer cleanup()

		assert.NoError(t, repo.ClearRole(99))
	})
}
