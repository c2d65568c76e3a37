package http

import (
	"github.com/openshelf/openshelf/internal/audit"
	"github.com/openshelf/openshelf/internal/auth"
	"github.com/openshelf/openshelf/internal/covers"
	"github.com/openshelf/openshelf/internal/curation"
	"github.com/openshelf/openshelf/internal/database"
	"github.com/openshelf/openshelf/internal/downloads"
	"github.com/openshelf/openshelf/internal/moderation"
)

// RouterConfig holds all dependencies needed to construct the router.
// Using a config struct instead of positional parameters keeps NewRouter
// testable as the dependency list grows.
type RouterConfig struct {
	Database *database.Database
	Version  string

	// Auth and session plumbing. SessionManager and AuthMiddleware must both
	// be set for authenticated routes to work; CSRFSecret enables CSRF
	// protection when non-empty.
	SessionManager *auth.SessionManager
	AuthMiddleware *auth.Middleware
	AuthController *auth.Controller
	CSRFSecret     []byte
	SecureCookies  bool

	// Catalog and download stores.
	Catalog    CatalogReader
	Counter    StatsCounter
	Recorder   *downloads.Recorder
	Records    DownloadReader
	CoverCache *covers.Cache

	// Admin surface dependencies.
	Curation     *curation.Service
	Moderation   *moderation.Service
	Users        UserReader
	Roles        RoleWriter
	AuditService *audit.Service
}
