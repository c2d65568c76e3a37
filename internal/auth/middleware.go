package auth

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/openshelf/openshelf/internal/access"
)

// Context keys for caller data. Set fresh on every request.
const (
	ContextKeyUserID = "auth_user_id"
	ContextKeyEmail  = "auth_email"
	ContextKeyRole   = "auth_role"
)

// Middleware resolves the caller's identity and role for each request.
type Middleware struct {
	service        *Service
	sessionManager *SessionManager
	resolver       *access.Resolver
}

// NewMiddleware creates the identity middleware.
func NewMiddleware(service *Service, sessionManager *SessionManager, resolver *access.Resolver) *Middleware {
	return &Middleware{
		service:        service,
		sessionManager: sessionManager,
		resolver:       resolver,
	}
}

// Handler returns a Gin middleware that identifies the caller and resolves
// their role. It never rejects a request; anonymous callers pass through with
// RoleAnonymous. Access decisions belong to RequireAuth/RequireAdmin and the
// access gate, not here.
func (m *Middleware) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := access.AnonymousUserID
		email := ""

		if m.sessionManager != nil {
			if sessionUserID := m.sessionManager.GetUserID(c.Request); sessionUserID != 0 {
				// The profile must still exist; a stale session for a
				// deleted user stays anonymous.
				if user, err := m.service.GetUserByID(sessionUserID); err == nil {
					userID = user.ID
					email = user.Email
				}
			}
		}

		c.Set(ContextKeyUserID, userID)
		c.Set(ContextKeyEmail, email)
		c.Set(ContextKeyRole, m.resolver.Resolve(userID))
		c.Next()
	}
}

// RequireAuth returns a middleware that rejects anonymous callers. API
// callers get a 401; web callers are redirected to the login page.
func (m *Middleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if GetUserID(c) == access.AnonymousUserID {
			if isAPIRequest(c) {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
					"error": "authentication required",
				})
				return
			}
			c.Redirect(http.StatusFound, "/login?next="+c.Request.URL.Path)
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequireAdmin returns a middleware that rejects every caller whose resolved
// role is not admin. The check runs before any handler so no store write can
// be attempted by an unauthorized caller. Non-admin web callers are sent away
// from the admin area entirely.
func (m *Middleware) RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		role := GetRole(c)
		if role == access.RoleAdmin {
			c.Next()
			return
		}

		if role == access.RoleAnonymous {
			if isAPIRequest(c) {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
					"error": "authentication required",
				})
				return
			}
			c.Redirect(http.StatusFound, "/login?next="+c.Request.URL.Path)
			c.Abort()
			return
		}

		if isAPIRequest(c) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error": "insufficient permissions",
			})
			return
		}
		c.Redirect(http.StatusFound, "/")
		c.Abort()
	}
}

// isAPIRequest determines if this is an API request vs web browser request.
func isAPIRequest(c *gin.Context) bool {
	if strings.HasPrefix(c.Request.URL.Path, "/api/") ||
		strings.HasPrefix(c.Request.URL.Path, "/admin/api/") {
		return true
	}

	accept := c.GetHeader("Accept")
	return strings.Contains(accept, "application/json")
}

// Helper functions to extract caller data from the Gin context.

// GetUserID retrieves the authenticated user's ID from the context.
// Returns access.AnonymousUserID for anonymous callers.
func GetUserID(c *gin.Context) uint {
	if id, exists := c.Get(ContextKeyUserID); exists {
		if userID, ok := id.(uint); ok {
			return userID
		}
	}
	return access.AnonymousUserID
}

// GetEmail retrieves the authenticated user's email from the context.
func GetEmail(c *gin.Context) string {
	if e, exists := c.Get(ContextKeyEmail); exists {
		if email, ok := e.(string); ok {
			return email
		}
	}
	return ""
}

// GetRole retrieves the caller's resolved role from the context.
// Unset context (e.g. a route without the identity middleware) reads as
// anonymous.
func GetRole(c *gin.Context) access.Role {
	if r, exists := c.Get(ContextKeyRole); exists {
		if role, ok := r.(access.Role); ok {
			return role
		}
	}
	return access.RoleAnonymous
}
