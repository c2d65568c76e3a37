package access

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakeRoleStore struct {
	role  string
	err   error
	calls int
}

func (f *fakeRoleStore) GetRole(userID uint) (string, error) {
	f.calls++
	return f.role, f.err
}

func TestResolverResolve(t *testing.T) {
	t.Run("anonymous user id resolves to anonymous without a lookup", func(t *testing.T) {
		store := &fakeRoleStore{role: "admin"}
		resolver := NewResolver(store)

		assert.Equal(t, RoleAnonymous, resolver.Resolve(AnonymousUserID))
		assert.Zero(t, store.calls)
	})

	t.Run("store failure fails closed to anonymous", func(t *testing.T) {
		store := &fakeRoleStore{err: errors.New("connection refused")}
		resolver := NewResolver(store)

		assert.Equal(t, RoleAnonymous, resolver.Resolve(42))
	})

	t.Run("missing assignment resolves to user", func(t *testing.T) {
		store := &fakeRoleStore{}
		resolver := NewResolver(store)

		assert.Equal(t, RoleUser, resolver.Resolve(42))
		assert.Equal(t, 1, store.calls)
	})

	t.Run("explicit admin assignment resolves to admin", func(t *testing.T) {
		resolver := NewResolver(&fakeRoleStore{role: "admin"})

		assert.Equal(t, RoleAdmin, resolver.Resolve(42))
	})

	t.Run("garbage assignment resolves to user", func(t *testing.T) {
		resolver := NewResolver(&fakeRoleStore{role: "owner"})

		assert.Equal(t, RoleUser, resolver.Resolve(42))
	})

	t.Run("resolves per call with no caching", func(t *testing.T) {
		store := &fakeRoleStore{role: "admin"}
		resolver := NewResolver(store)

		assert.Equal(t, RoleAdmin, resolver.Resolve(42))
		store.role = ""
		assert.Equal(t, RoleUser, resolver.Resolve(42))
		assert.Equal(t, 2, store.calls)
	})
}
