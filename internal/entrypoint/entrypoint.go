package entrypoint

import (
	"context"
	"encoding/hex"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/openshelf/openshelf/internal/access"
	"github.com/openshelf/openshelf/internal/audit"
	"github.com/openshelf/openshelf/internal/auth"
	"github.com/openshelf/openshelf/internal/config"
	"github.com/openshelf/openshelf/internal/covers"
	"github.com/openshelf/openshelf/internal/curation"
	"github.com/openshelf/openshelf/internal/database"
	auditrepo "github.com/openshelf/openshelf/internal/database/audit"
	"github.com/openshelf/openshelf/internal/database/books"
	downloadsrepo "github.com/openshelf/openshelf/internal/database/downloads"
	"github.com/openshelf/openshelf/internal/database/messages"
	"github.com/openshelf/openshelf/internal/database/roles"
	"github.com/openshelf/openshelf/internal/database/users"
	"github.com/openshelf/openshelf/internal/downloads"
	http_controllers "github.com/openshelf/openshelf/internal/http"
	"github.com/openshelf/openshelf/internal/moderation"
	"github.com/openshelf/openshelf/internal/scheduler"
	"github.com/openshelf/openshelf/internal/tasks"
)

// ShutdownFunc is called during graceful shutdown to clean up resources.
type ShutdownFunc func(ctx context.Context)

func Serve(router *gin.Engine, cfg *config.Config, onShutdown ShutdownFunc) {
	timeout := time.Duration(cfg.Global.ShutdownTimeoutInSeconds) * time.Second

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port),
		Handler: router,
	}

	go func() {
		log.Printf("Starting server at %s:%d", cfg.HTTP.Host, cfg.HTTP.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	// Graceful shutdown on SIGINT/SIGTERM.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Printf("Shutdown Server, waiting %v before killing\n", timeout)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	// Call shutdown callback first (e.g., to stop the task queue)
	if onShutdown != nil {
		onShutdown(ctx)
	}

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server Shutdown:", err)
	}

	log.Println("Server exiting")
}

func Run(cfg *config.Config, version string) {
	log.Printf("Starting OpenShelf v%s", version)

	// Initialize database
	db, err := database.NewDatabase(cfg.Database.Path)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Printf("Error closing database: %v", err)
		}
	}()

	// Repositories
	bookRepo := books.NewRepository(db.DB)
	downloadRepo := downloadsrepo.NewRepository(db.DB)
	messageRepo := messages.NewRepository(db.DB)
	roleRepo := roles.NewRepository(db.DB)
	userRepo := users.NewRepository(db.DB)
	auditRepo := auditrepo.NewRepository(db.DB)

	// Domain services
	auditService := audit.NewService(auditRepo)
	resolver := access.NewResolver(roleRepo)
	recorder := downloads.NewRecorder(bookRepo, downloadRepo)
	moderationService := moderation.NewService(messageRepo)
	curationService := curation.NewService(bookRepo, auditService)

	// Cover cache next to the database file
	coverCacheDir := filepath.Join(filepath.Dir(cfg.Database.Path), "covers")
	coverCache, err := covers.NewCache(coverCacheDir)
	if err != nil {
		log.Printf("WARNING: Failed to initialize cover cache: %v", err)
		coverCache = nil
	} else {
		curationService.SetCoverInvalidator(coverCache)
	}

	// Task queue for background maintenance
	var taskClient *tasks.Client
	var taskCtxCancel context.CancelFunc
	var auditCleanup *scheduler.AuditCleanupScheduler
	if cfg.Tasks.Enabled {
		taskCfg := tasks.Config{
			Workers:         cfg.Tasks.Workers,
			ReleaseAfter:    cfg.Tasks.ReleaseAfter,
			CleanupInterval: cfg.Tasks.CleanupInterval,
		}

		taskClient, err = tasks.NewClient(cfg.Database.Path, taskCfg)
		if err != nil {
			log.Fatalf("Failed to initialize task queue: %v", err)
		}
		defer func() {
			if err := taskClient.Close(); err != nil {
				log.Printf("Error closing task client: %v", err)
			}
		}()

		taskClient.Register(
			tasks.NewCleanupAuditEventsQueue(auditService),
		)

		var taskCtx context.Context
		taskCtx, taskCtxCancel = context.WithCancel(context.Background())
		go taskClient.Start(taskCtx)

		auditCleanup = scheduler.NewAuditCleanupScheduler(taskClient, cfg.Audit)
		if err := auditCleanup.Start(taskCtx); err != nil {
			log.Fatalf("Failed to start audit cleanup scheduler: %v", err)
		}
	}

	// Authentication
	authService := auth.NewService(db.DB, cfg.Auth)

	sqlDB, err := db.DB.DB()
	if err != nil {
		log.Fatalf("Failed to get SQL DB for sessions: %v", err)
	}

	sessionManager, err := auth.NewSessionManager(sqlDB, cfg.Auth)
	if err != nil {
		log.Fatalf("Failed to initialize session manager: %v", err)
	}

	authMiddleware := auth.NewMiddleware(authService, sessionManager, resolver)
	authController := auth.NewController(authService, sessionManager, auditService, cfg.Auth)

	csrfSecret := resolveCSRFSecret(cfg.Auth.SessionSecret)

	hasUsers, _ := authService.HasUsers()
	if !hasUsers {
		log.Printf("No users found. Use 'create-user' to create an administrator account.")
	}

	routerCfg := http_controllers.RouterConfig{
		Database:       db,
		Version:        version,
		SessionManager: sessionManager,
		AuthMiddleware: authMiddleware,
		AuthController: authController,
		CSRFSecret:     csrfSecret,
		SecureCookies:  cfg.Auth.SecureCookies,
		Catalog:        bookRepo,
		Counter:        bookRepo,
		Recorder:       recorder,
		Records:        downloadRepo,
		CoverCache:     coverCache,
		Curation:       curationService,
		Moderation:     moderationService,
		Users:          userRepo,
		Roles:          roleRepo,
		AuditService:   auditService,
	}

	router := http_controllers.NewRouter(routerCfg)

	onShutdown := func(ctx context.Context) {
		authController.Stop()
		if auditCleanup != nil {
			auditCleanup.Stop()
		}
		if taskClient != nil && taskCtxCancel != nil {
			taskClient.Stop(ctx)
			taskCtxCancel()
		}
	}

	Serve(router, cfg, onShutdown)
}

// resolveCSRFSecret derives the CSRF key from the configured session secret,
// generating an ephemeral one when none is set.
func resolveCSRFSecret(configured string) []byte {
	if configured != "" {
		if decoded, err := hex.DecodeString(configured); err == nil {
			return decoded
		}
		return []byte(configured)
	}

	secret, err := auth.GenerateSessionSecret()
	if err != nil {
		log.Fatalf("Failed to generate CSRF secret: %v", err)
	}
	log.Printf("Generated session secret (set AUTH_SESSION_SECRET to persist)")
	decoded, _ := hex.DecodeString(secret)
	return decoded
}
