package access

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/openshelf/openshelf/internal/entities"
)

func TestAuthorize(t *testing.T) {
	enabled := &entities.Book{ID: "b1", Title: "Visible", Enabled: true}
	disabled := &entities.Book{ID: "b2", Title: "Hidden", Enabled: false}

	t.Run("nil book grants nothing", func(t *testing.T) {
		assert.Equal(t, Decision{}, Authorize(RoleAdmin, nil))
	})

	t.Run("anonymous can view but not read or download", func(t *testing.T) {
		d := Authorize(RoleAnonymous, enabled)
		assert.True(t, d.CanView)
		assert.False(t, d.CanRead)
		assert.False(t, d.CanDownload)
	})

	t.Run("authenticated user can view read and download", func(t *testing.T) {
		d := Authorize(RoleUser, enabled)
		assert.Equal(t, Decision{CanView: true, CanRead: true, CanDownload: true}, d)
	})

	t.Run("admin gets full access", func(t *testing.T) {
		d := Authorize(RoleAdmin, enabled)
		assert.Equal(t, Decision{CanView: true, CanRead: true, CanDownload: true}, d)
	})

	t.Run("disabled book is invisible to anonymous", func(t *testing.T) {
		assert.Equal(t, Decision{}, Authorize(RoleAnonymous, disabled))
	})

	t.Run("disabled book is invisible to regular users", func(t *testing.T) {
		assert.Equal(t, Decision{}, Authorize(RoleUser, disabled))
	})

	t.Run("disabled book remains accessible to admins", func(t *testing.T) {
		d := Authorize(RoleAdmin, disabled)
		assert.Equal(t, Decision{CanView: true, CanRead: true, CanDownload: true}, d)
	})

	t.Run("is deterministic for the same inputs", func(t *testing.T) {
		first := Authorize(RoleUser, enabled)
		second := Authorize(RoleUser, enabled)
		assert.Equal(t, first, second)
	})
}

func TestParseRole(t *testing.T) {
	t.Run("known roles parse to themselves", func(t *testing.T) {
		assert.Equal(t, RoleAdmin, ParseRole("admin"))
		assert.Equal(t, RoleUser, ParseRole("user"))
	})

	t.Run("unknown role never escalates to admin", func(t *testing.T) {
		for _, raw := range []string{"", "Administrator", "ADMIN ", "root", "superuser"} {
			assert.Equal(t, RoleUser, ParseRole(raw), "raw role %q", raw)
		}
	})
}

func TestRoleAuthenticated(t *testing.T) {
	assert.False(t, RoleAnonymous.Authenticated())
	assert.True(t, RoleUser.Authenticated())
	assert.True(t, RoleAdmin.Authenticated())
}
