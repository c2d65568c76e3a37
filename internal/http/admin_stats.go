package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/openshelf/openshelf/internal/audit"
)

// AdminStatsController serves the dashboard counters, the global download
// log and the curation audit trail.
type AdminStatsController struct {
	books        StatsCounter
	users        UserReader
	records      DownloadReader
	unreadCount  func() (int64, error)
	auditService *audit.Service
}

func NewAdminStatsController(
	books StatsCounter,
	users UserReader,
	records DownloadReader,
	unreadCount func() (int64, error),
	auditService *audit.Service,
) *AdminStatsController {
	return &AdminStatsController{
		books:        books,
		users:        users,
		records:      records,
		unreadCount:  unreadCount,
		auditService: auditService,
	}
}

// GetStats handles GET /admin/api/stats.
func (controller *AdminStatsController) GetStats(c *gin.Context) {
	bookCount, err := controller.books.CountBooks()
	if err != nil {
		respondInternalError(c, err, "count books")
		return
	}
	userCount, err := controller.users.Count()
	if err != nil {
		respondInternalError(c, err, "count users")
		return
	}
	downloadCount, err := controller.records.CountAll()
	if err != nil {
		respondInternalError(c, err, "count downloads")
		return
	}
	unread, err := controller.unreadCount()
	if err != nil {
		respondInternalError(c, err, "count unread messages")
		return
	}
	recent, _, err := controller.records.ListAll(5, 0)
	if err != nil {
		respondInternalError(c, err, "list recent downloads")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"total_books":      bookCount,
		"total_users":      userCount,
		"total_downloads":  downloadCount,
		"unread_messages":  unread,
		"recent_downloads": recent,
	})
}

// ListDownloads handles GET /admin/api/downloads, the global download log.
func (controller *AdminStatsController) ListDownloads(c *gin.Context) {
	limit, offset := parsePagination(c)

	records, total, err := controller.records.ListAll(limit, offset)
	if err != nil {
		respondInternalError(c, err, "list downloads")
		return
	}

	c.JSON(http.StatusOK, PaginatedResponse{
		Data:    records,
		Total:   total,
		Limit:   limit,
		Offset:  offset,
		HasMore: int64(offset+len(records)) < total,
	})
}

// ListAuditEvents handles GET /admin/api/audit. An optional actor_id query
// parameter narrows the log to a single admin.
func (controller *AdminStatsController) ListAuditEvents(c *gin.Context) {
	limit, offset := parsePagination(c)

	actorID := 0
	if raw := c.Query("actor_id"); raw != "" {
		parsed, err := parsePositiveInt(raw)
		if err != nil || parsed < 0 {
			respondBadRequest(c, "invalid actor_id")
			return
		}
		actorID = parsed
	}

	events, total, err := controller.auditService.GetEvents(uint(actorID), limit, offset)
	if err != nil {
		respondInternalError(c, err, "list audit events")
		return
	}

	c.JSON(http.StatusOK, PaginatedResponse{
		Data:    events,
		Total:   total,
		Limit:   limit,
		Offset:  offset,
		HasMore: int64(offset+len(events)) < total,
	})
}
