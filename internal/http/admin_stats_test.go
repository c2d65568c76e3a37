package http

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openshelf/openshelf/internal/access"
	"github.com/openshelf/openshelf/internal/audit"
	"github.com/openshelf/openshelf/internal/database"
	auditrepo "github.com/openshelf/openshelf/internal/database/audit"
	"github.com/openshelf/openshelf/internal/database/books"
	downloadsrepo "github.com/openshelf/openshelf/internal/database/downloads"
	"github.com/openshelf/openshelf/internal/database/messages"
	"github.com/openshelf/openshelf/internal/database/users"
	"github.com/openshelf/openshelf/internal/entities"
	"github.com/openshelf/openshelf/internal/moderation"
)

type statsFixture struct {
	router   *gin.Engine
	books    *books.Repository
	users    *users.Repository
	records  *downloadsrepo.Repository
	messages *messages.Repository
	audit    *audit.Service
}

func newStatsFixture(db *database.Database) *statsFixture {
	bookRepo := books.NewRepository(db.DB)
	userRepo := users.NewRepository(db.DB)
	recordRepo := downloadsrepo.NewRepository(db.DB)
	messageRepo := messages.NewRepository(db.DB)
	moderationService := moderation.NewService(messageRepo)
	auditService := audit.NewService(auditrepo.NewRepository(db.DB))

	controller := NewAdminStatsController(bookRepo, userRepo, recordRepo, moderationService.UnreadCount, auditService)

	router := gin.New()
	router.Use(withIdentity(1, access.RoleAdmin))
	router.GET("/admin/api/stats", controller.GetStats)
	router.GET("/admin/api/downloads", controller.ListDownloads)
	router.GET("/admin/api/audit", controller.ListAuditEvents)

	return &statsFixture{
		router:   router,
		books:    bookRepo,
		users:    userRepo,
		records:  recordRepo,
		messages: messageRepo,
		audit:    auditService,
	}
}

func TestAdminStatsController_GetStats(t *testing.T) {
	t.Run("aggregates the dashboard counters", func(t *testing.T) {
		db, cleanup := setupTestDB(t)
		defer cleanup()

		f := newStatsFixture(db)
		seedCatalogBook(t, f.books, "Visible", true)
		seedCatalogBook(t, f.books, "Hidden", false)
		seedUser(t, f.users, "reader@example.com")
		require.NoError(t, f.records.Create(&entities.DownloadRecord{UserID: 1, BookID: "b1"}))
		seedContactMessage(t, f.messages)

		w := performRequest(f.router, "GET", "/admin/api/stats", nil)
		assert.Equal(t, http.StatusOK, w.Code)

		var response map[string]any
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Equal(t, float64(2), response["total_books"])
		assert.Equal(t, float64(1), response["total_users"])
		assert.Equal(t, float64(1), response["total_downloads"])
		assert.Equal(t, float64(1), response["unread_messages"])

		recent, ok := response["recent_downloads"].([]any)
		require.True(t, ok)
		assert.Len(t, recent, 1)
	})
}

func TestAdminStatsController_ListDownloads(t *testing.T) {
	t.Run("spans all users", func(t *testing.T) {
		db, cleanup := setupTestDB(t)
		defer cleanup()

		f := newStatsFixture(db)
		require.NoError(t, f.records.Create(&entities.DownloadRecord{UserID: 1, BookID: "b1"}))
		require.NoError(t, f.records.Create(&entities.DownloadRecord{UserID: 2, BookID: "b2"}))

		w := performRequest(f.router, "GET", "/admin/api/downloads", nil)
		assert.Equal(t, http.StatusOK, w.Code)

		var response PaginatedResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Equal(t, int64(2), response.Total)
	})
}

func TestAdminStatsController_ListAuditEvents(t *testing.T) {
	t.Run("filters by actor", func(t *testing.T) {
		db, cleanup := setupTestDB(t)
		defer cleanup()

		f := newStatsFixture(db)
		require.NoError(t, f.audit.Log(&entities.AuditEvent{ActorID: 1, EventType: entities.AuditEventCuration, Action: "book_create"}))
		require.NoError(t, f.audit.Log(&entities.AuditEvent{ActorID: 2, EventType: entities.AuditEventCuration, Action: "book_delete"}))

		w := performRequest(f.router, "GET", "/admin/api/audit?actor_id=2", nil)
		assert.Equal(t, http.StatusOK, w.Code)

		var response PaginatedResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Equal(t, int64(1), response.Total)
	})

	t.Run("rejects a malformed actor id", func(t *testing.T) {
		db, cleanup := setupTestDB(t)
		defer cleanup()

		f := newStatsFixture(db)

		w := performRequest(f.router, "GET", "/admin/api/audit?actor_id=bogus", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
