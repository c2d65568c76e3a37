package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/openshelf/openshelf/internal/auth"
)

// NewRouter creates and configures the HTTP router with all endpoints.
func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	router.Use(auth.SecurityHeadersMiddleware())

	// CSRF must run before session middleware so the session context set up
	// by the session layer is not overwritten by CSRF's request replacement.
	if len(cfg.CSRFSecret) > 0 {
		router.Use(auth.CSRFMiddleware(cfg.CSRFSecret, cfg.SecureCookies))
	}

	if cfg.SessionManager != nil {
		router.Use(cfg.SessionManager.SessionLoadSave())
	}

	// The identity middleware resolves the caller's role on every request.
	// It never rejects; route guards below decide what each role may reach.
	if cfg.AuthMiddleware != nil {
		router.Use(cfg.AuthMiddleware.Handler())
	}

	if cfg.AuthController != nil {
		cfg.AuthController.RegisterRoutes(router)
	}

	health := NewHealthController(cfg.Database, cfg.Version)
	booksController := NewBooksController(cfg.Catalog)
	downloadsController := NewDownloadsController(cfg.Recorder, cfg.Records)
	contactController := NewContactController(cfg.Moderation)

	router.GET("/health", health.Status)
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	// Public catalog. Anyone can browse; the access decision attached to
	// each book reflects the caller's resolved role.
	router.GET("/api/books", booksController.ListBooks)
	router.GET("/api/books/:id", booksController.GetBook)
	router.GET("/api/categories", booksController.ListCategories)

	if cfg.CoverCache != nil {
		coversController := NewCoversController(cfg.CoverCache, cfg.Catalog)
		router.GET("/api/books/:id/cover", coversController.GetCover)
	}

	// Contact form, open to anonymous visitors.
	router.POST("/api/contact", contactController.Submit)

	// Routes that require a signed-in reader.
	if cfg.AuthMiddleware != nil {
		authed := router.Group("/", cfg.AuthMiddleware.RequireAuth())
		authed.POST("/api/books/:id/download", downloadsController.Download)
		authed.GET("/api/downloads", downloadsController.History)

		// Admin surface. RequireAdmin guards the group; the curation
		// service re-checks the role before every store write.
		admin := router.Group("/admin/api", cfg.AuthMiddleware.RequireAdmin())
		{
			adminBooks := NewAdminBooksController(cfg.Curation)
			admin.GET("/books", adminBooks.ListBooks)
			admin.POST("/books", adminBooks.CreateBook)
			admin.GET("/books/:id", adminBooks.GetBook)
			admin.PUT("/books/:id", adminBooks.UpdateBook)
			admin.PATCH("/books/:id/enabled", adminBooks.SetEnabled)
			admin.DELETE("/books/:id", adminBooks.DeleteBook)

			adminMessages := NewAdminMessagesController(cfg.Moderation, cfg.AuditService)
			admin.GET("/messages", adminMessages.ListMessages)
			admin.GET("/messages/:id", adminMessages.GetMessage)
			admin.POST("/messages/:id/read", adminMessages.MarkRead)

			adminUsers := NewAdminUsersController(cfg.Users, cfg.Roles, cfg.AuditService)
			admin.GET("/users", adminUsers.ListUsers)
			admin.PUT("/users/:id/role", adminUsers.SetRole)

			adminStats := NewAdminStatsController(cfg.Counter, cfg.Users, cfg.Records, cfg.Moderation.UnreadCount, cfg.AuditService)
			admin.GET("/stats", adminStats.GetStats)
			admin.GET("/downloads", adminStats.ListDownloads)
			admin.GET("/audit", adminStats.ListAuditEvents)
		}
	}

	return router
}
