package interfaces

// Compile-time interface implementation checks. These ensure the concrete
// repositories satisfy the interfaces the services and controllers consume,
// catching missing methods before runtime.

import (
	"github.com/openshelf/openshelf/internal/access"
	"github.com/openshelf/openshelf/internal/audit"
	"github.com/openshelf/openshelf/internal/covers"
	"github.com/openshelf/openshelf/internal/curation"
	"github.com/openshelf/openshelf/internal/database/books"
	downloadsrepo "github.com/openshelf/openshelf/internal/database/downloads"
	"github.com/openshelf/openshelf/internal/database/messages"
	"github.com/openshelf/openshelf/internal/database/roles"
	"github.com/openshelf/openshelf/internal/database/users"
	"github.com/openshelf/openshelf/internal/downloads"
	"github.com/openshelf/openshelf/internal/http"
	"github.com/openshelf/openshelf/internal/moderation"
	"github.com/openshelf/openshelf/internal/tasks"
)

// Role resolution
var _ access.RoleStore = (*roles.Repository)(nil)

// Catalog stores
var _ http.CatalogReader = (*books.Repository)(nil)
var _ http.StatsCounter = (*books.Repository)(nil)
var _ curation.CatalogStore = (*books.Repository)(nil)
var _ downloads.CatalogStore = (*books.Repository)(nil)

// Download recording
var _ downloads.RecordStore = (*downloadsrepo.Repository)(nil)
var _ http.DownloadReader = (*downloadsrepo.Repository)(nil)

// Message moderation
var _ moderation.Store = (*messages.Repository)(nil)

// Admin surface
var _ http.UserReader = (*users.Repository)(nil)
var _ http.RoleWriter = (*roles.Repository)(nil)

// Cover cache invalidation
var _ curation.CoverInvalidator = (*covers.Cache)(nil)

// Background maintenance
var _ tasks.AuditEventCleaner = (*audit.Service)(nil)
