// Package access implements the catalog access-control rules: resolving a
// caller to a role and deciding which actions a role may perform on a book.
//
// Both the gate and the resolver are evaluated per request. Decisions are
// never cached across requests because roles and book enablement can change
// between requests.
package access

import "errors"

var (
	ErrUnauthenticated = errors.New("authentication required")
	ErrForbidden       = errors.New("insufficient permissions")
)

// Role is the resolved permission level of a caller.
type Role string

const (
	// RoleAnonymous is the pseudo-role of unauthenticated callers. It is
	// strictly weaker than RoleUser.
	RoleAnonymous Role = "anonymous"
	RoleUser      Role = "user"
	RoleAdmin     Role = "admin"
)

// ParseRole maps a stored role string to a Role. Unknown values degrade to
// RoleUser, never to RoleAdmin.
func ParseRole(s string) Role {
	switch s {
	case string(RoleAdmin):
		return RoleAdmin
	default:
		return RoleUser
	}
}

// Authenticated reports whether the role belongs to a signed-in caller.
func (r Role) Authenticated() bool {
	return r == RoleUser || r == RoleAdmin
}
