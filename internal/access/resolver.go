package access

import "log"

// AnonymousUserID is the user ID carried by unauthenticated requests.
const AnonymousUserID = uint(0)

// RoleStore looks up the explicit role assignment for a user. It returns an
// empty string with a nil error when no assignment exists.
type RoleStore interface {
	GetRole(userID uint) (string, error)
}

// Resolver maps an authenticated user ID to a Role using the role store.
type Resolver struct {
	store RoleStore
}

// NewResolver creates a role resolver backed by the given store.
func NewResolver(store RoleStore) *Resolver {
	return &Resolver{store: store}
}

// Resolve returns the caller's role. Anonymous callers resolve to
// RoleAnonymous. A store failure also resolves to RoleAnonymous (fail
// closed); a missing assignment resolves to RoleUser.
func (r *Resolver) Resolve(userID uint) Role {
	if userID == AnonymousUserID {
		return RoleAnonymous
	}

	role, err := r.store.GetRole(userID)
	if err != nil {
		log.Printf("Role lookup failed for user %d, treating as anonymous: %v", userID, err)
		return RoleAnonymous
	}
	if role == "" {
		return RoleUser
	}
	return ParseRole(role)
}
