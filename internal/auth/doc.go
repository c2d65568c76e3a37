// Package auth provides authentication for the library portal.
//
// It covers password hashing and verification, session management backed by
// SQLite, login rate limiting, CSRF protection, and the Gin middleware that
// resolves the caller's identity and role for every request.
//
// Roles are resolved on each request through access.Resolver and carried in
// the Gin context only. They are never stored in the session or in any
// process-wide state, so a role change takes effect on the next request.
package auth
