package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/openshelf/openshelf/internal/audit"
	"github.com/openshelf/openshelf/internal/moderation"
)

// AdminMessagesController lets admins review the contact message queue.
type AdminMessagesController struct {
	moderation   *moderation.Service
	auditService *audit.Service
}

func NewAdminMessagesController(service *moderation.Service, auditService *audit.Service) *AdminMessagesController {
	return &AdminMessagesController{moderation: service, auditService: auditService}
}

// ListMessages handles GET /admin/api/messages.
func (controller *AdminMessagesController) ListMessages(c *gin.Context) {
	limit, offset := parsePagination(c)

	list, total, err := controller.moderation.List(limit, offset)
	if err != nil {
		respondInternalError(c, err, "list messages")
		return
	}

	unread, err := controller.moderation.UnreadCount()
	if err != nil {
		respondInternalError(c, err, "count unread messages")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"messages": list,
		"total":    total,
		"unread":   unread,
		"limit":    limit,
		"offset":   offset,
	})
}

// GetMessage handles GET /admin/api/messages/:id. Opening an unread message
// marks it read in the same request.
func (controller *AdminMessagesController) GetMessage(c *gin.Context) {
	id := c.Param("id")

	message, err := controller.moderation.Open(id)
	if err != nil {
		if errors.Is(err, moderation.ErrMessageNotFound) {
			respondNotFound(c, "message")
			return
		}
		respondInternalError(c, err, "open message")
		return
	}

	controller.auditService.LogModeration(GetUserID(c), "message_open", id)
	c.JSON(http.StatusOK, message)
}

// MarkRead handles POST /admin/api/messages/:id/read. Marking a message
// that is already read succeeds without changing anything.
func (controller *AdminMessagesController) MarkRead(c *gin.Context) {
	id := c.Param("id")

	if err := controller.moderation.MarkRead(id); err != nil {
		if errors.Is(err, moderation.ErrMessageNotFound) {
			respondNotFound(c, "message")
			return
		}
		respondInternalError(c, err, "mark message read")
		return
	}

	controller.auditService.LogModeration(GetUserID(c), "message_read", id)
	respondSuccess(c, "message marked as read")
}
