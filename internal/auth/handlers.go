package auth

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/openshelf/openshelf/internal/access"
	"github.com/openshelf/openshelf/internal/audit"
	"github.com/openshelf/openshelf/internal/config"
)

// Controller handles authentication HTTP endpoints.
type Controller struct {
	service        *Service
	sessionManager *SessionManager
	auditService   *audit.Service
	rateLimiter    *RateLimiter
}

// NewController creates a new authentication controller. auditService may be
// nil.
func NewController(service *Service, sessionManager *SessionManager, auditService *audit.Service, cfg config.Auth) *Controller {
	rateLimiter := NewRateLimiter(RateLimitConfig{
		MaxAttempts:     cfg.MaxLoginAttempts,
		WindowDuration:  cfg.RateLimitWindow,
		LockoutDuration: cfg.LockoutDuration,
	})

	return &Controller{
		service:        service,
		sessionManager: sessionManager,
		auditService:   auditService,
		rateLimiter:    rateLimiter,
	}
}

// RegisterRoutes registers authentication routes on the router.
func (ac *Controller) RegisterRoutes(router *gin.Engine) {
	router.POST("/api/auth/signup", ac.Signup)
	router.POST("/api/auth/login", ac.Login)
	router.POST("/api/auth/logout", ac.Logout)
	router.GET("/api/auth/me", ac.Me)

	// Landing spot for web redirects from protected pages.
	router.GET("/login", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "sign in required",
			"next":    c.Query("next"),
		})
	})
}

// Stop cleans up resources (rate limiter background goroutine).
func (ac *Controller) Stop() {
	if ac.rateLimiter != nil {
		ac.rateLimiter.Stop()
	}
}

type signupRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
	FullName string `json:"full_name"`
	Phone    string `json:"phone"`
}

// Signup creates a profile for a new identity and starts a session.
// POST /api/auth/signup
func (ac *Controller) Signup(c *gin.Context) {
	var req signupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "email and password are required"})
		return
	}

	user, err := ac.service.Signup(req.Email, req.Password, req.FullName, req.Phone)
	if err != nil {
		switch {
		case errors.Is(err, ErrUserExists):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		case errors.Is(err, ErrEmailInvalid), errors.Is(err, ErrPasswordTooShort), errors.Is(err, ErrPasswordTooLong):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create account"})
		}
		return
	}

	if err := ac.sessionManager.CreateSession(c.Request, user); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create session"})
		return
	}

	if ac.auditService != nil {
		ac.auditService.LogAuth(user.ID, "signup", c.ClientIP(), true)
	}

	c.JSON(http.StatusCreated, gin.H{"user": user})
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Login validates credentials and starts a session.
// POST /api/auth/login
func (ac *Controller) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "email and password are required"})
		return
	}

	ip := c.ClientIP()

	if allowed, retryAfter := ac.rateLimiter.Allow(ip, req.Email); !allowed {
		c.Header("Retry-After", retryAfter.String())
		c.JSON(http.StatusTooManyRequests, gin.H{
			"error":       "too many login attempts",
			"retry_after": retryAfter.String(),
		})
		return
	}

	user, err := ac.service.Authenticate(req.Email, req.Password)
	if err != nil {
		ac.rateLimiter.RecordFailure(ip, req.Email)
		if ac.auditService != nil {
			ac.auditService.LogAuth(0, "login", ip, false)
		}

		if errors.Is(err, ErrAccountLocked) {
			c.JSON(http.StatusTooManyRequests, gin.H{"error": err.Error()})
			return
		}
		// Do not reveal whether the account exists.
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid email or password"})
		return
	}

	if err := ac.sessionManager.CreateSession(c.Request, user); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create session"})
		return
	}

	ac.rateLimiter.RecordSuccess(ip, req.Email)
	if ac.auditService != nil {
		ac.auditService.LogAuth(user.ID, "login", ip, true)
	}

	c.JSON(http.StatusOK, gin.H{"user": user})
}

// Logout destroys the caller's session.
// POST /api/auth/logout
func (ac *Controller) Logout(c *gin.Context) {
	userID := GetUserID(c)

	if err := ac.sessionManager.DestroySession(c.Request); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to destroy session"})
		return
	}

	if ac.auditService != nil && userID != access.AnonymousUserID {
		ac.auditService.LogAuth(userID, "logout", c.ClientIP(), true)
	}

	c.JSON(http.StatusOK, gin.H{"message": "logged out"})
}

// Me returns the current caller's profile and resolved role.
// GET /api/auth/me
func (ac *Controller) Me(c *gin.Context) {
	userID := GetUserID(c)
	if userID == access.AnonymousUserID {
		c.JSON(http.StatusOK, gin.H{"authenticated": false, "role": access.RoleAnonymous})
		return
	}

	user, err := ac.service.GetUserByID(userID)
	if err != nil {
		c.JSON(http.StatusOK, gin.H{"authenticated": false, "role": access.RoleAnonymous})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"authenticated": true,
		"user":          user,
		"role":          GetRole(c),
	})
}
