package auth

import (
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openshelf/openshelf/internal/config"
	"github.com/openshelf/openshelf/internal/database"
)

const testPassword = "correct-horse-battery"

func setupAuthTestService(t *testing.T) (*Service, func()) {
	t.Helper()

	dbPath := "./test_auth_" + strings.ReplaceAll(t.Name(), "/", "_") + ".db"
	db, err := database.NewDatabase(dbPath)
	require.NoError(t, err)

	cfg := config.Auth{
		BcryptCost:       4, // minimum cost to keep tests fast
		MaxLoginAttempts: 3,
		LockoutDuration:  time.Minute,
	}

	cleanup := func() {
		db.Close()
		os.Remove(dbPath)
	}
	return NewService(db.DB, cfg), cleanup
}

func TestSignup(t *testing.T) {
	t.Run("creates a profile", func(t *testing.T) {
		service, cleanup := setupAuthTestService(t)
		defer cleanup()

		user, err := service.Signup("jane@example.com", testPassword, "Jane Reader", "")
		require.NoError(t, err)
		assert.NotZero(t, user.ID)
		assert.Equal(t, "jane@example.com", user.Email)
		assert.NotEqual(t, testPassword, user.PasswordHash)
	})

	t.Run("rejects a duplicate email", func(t *testing.T) {
		service, cleanup := setupAuthTestService(t)
		defer cleanup()

		_, err := service.Signup("jane@example.com", testPassword, "Jane", "")
		require.NoError(t, err)

		_, err = service.Signup("jane@example.com", testPassword, "Imposter", "")
		assert.ErrorIs(t, err, ErrUserExists)
	})

	t.Run("rejects invalid email", func(t *testing.T) {
		service, cleanup := setupAuthTestService(t)
		defer cleanup()

		_, err := service.Signup("not-an-email", testPassword, "Jane", "")
		assert.ErrorIs(t, err, ErrEmailInvalid)
	})

	t.Run("rejects short passwords", func(t *testing.T) {
		service, cleanup := setupAuthTestService(t)
		defer cleanup()

		_, err := service.Signup("jane@example.com", "short", "Jane", "")
		assert.ErrorIs(t, err, ErrPasswordTooShort)
	})
}

func TestAuthenticate(t *testing.T) {
	t.Run("valid credentials", func(t *testing.T) {
		service, cleanup := setupAuthTestService(t)
		defer cleanup()

		created, err := service.Signup("jane@example.com", testPassword, "Jane", "")
		require.NoError(t, err)

		user, err := service.Authenticate("jane@example.com", testPassword)
		require.NoError(t, err)
		assert.Equal(t, created.ID, user.ID)
	})

	t.Run("unknown email", func(t *testing.T) {
		service, cleanup := setupAuthTestService(t)
		defer cleanup()

		_, err := service.Authenticate("nobody@example.com", testPassword)
		assert.ErrorIs(t, err, ErrUserNotFound)
	})

	t.Run("wrong password", func(t *testing.T) {
		service, cleanup := setupAuthTestService(t)
		defer cleanup()

		_, err := service.Signup("jane@example.com", testPassword, "Jane", "")
		require.NoError(t, err)

		_, err = service.Authenticate("jane@example.com", "wrong-password-entirely")
		assert.ErrorIs(t, err, ErrInvalidPassword)
	})

	t.Run("locks the account after repeated failures", func(t *testing.T) {
		service, cleanup := setupAuthTestService(t)
		defer cleanup()

		_, err := service.Signup("jane@example.com", testPassword, "Jane", "")
		require.NoError(t, err)

		for i := 0; i < 3; i++ {
			_, err = service.Authenticate("jane@example.com", "wrong-password-entirely")
			assert.ErrorIs(t, err, ErrInvalidPassword)
		}

		// Even the correct password is rejected while locked.
		_, err = service.Authenticate("jane@example.com", testPassword)
		assert.ErrorIs(t, err, ErrAccountLocked)
	})

	t.Run("successful login resets the failure counter", func(t *testing.T) {
		service, cleanup := setupAuthTestService(t)
		defer cleanup()

		created, err := service.Signup("jane@example.com", testPassword, "Jane", "")
		require.NoError(t, err)

		_, err = service.Authenticate("jane@example.com", "wrong-password-entirely")
		assert.ErrorIs(t, err, ErrInvalidPassword)

		_, err = service.Authenticate("jane@example.com", testPassword)
		require.NoError(t, err)

		user, err := service.GetUserByID(created.ID)
		require.NoError(t, err)
		assert.Zero(t, user.FailedLoginCount)
		assert.NotNil(t, user.LastLoginAt)
	})
}

func TestChangePassword(t *testing.T) {
	t.Run("requires the old password", func(t *testing.T) {
		service, cleanup := setupAuthTestService(t)
		defer cleanup()

		created, err := service.Signup("jane@example.com", testPassword, "Jane", "")
		require.NoError(t, err)

		err = service.ChangePassword(created.ID, "wrong-password-entirely", "a-new-long-password")
		assert.ErrorIs(t, err, ErrInvalidPassword)

		require.NoError(t, service.ChangePassword(created.ID, testPassword, "a-new-long-password"))

		_, err = service.Authenticate("jane@example.com", "a-new-long-password")
		assert.NoError(t, err)
	})
}

func TestHasUsers(t *testing.T) {
	service, cleanup := setupAuthTestService(t)
	defer cleanup()

	has, err := service.HasUsers()
	require.NoError(t, err)
	assert.False(t, has)

	_, err = service.Signup("jane@example.com", testPassword, "Jane", "")
	require.NoError(t, err)

	has, err = service.HasUsers()
	require.NoError(t, err)
	assert.True(t, has)
}
