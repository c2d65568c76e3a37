package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/openshelf/openshelf/internal/access"
	"github.com/openshelf/openshelf/internal/downloads"
)

// DownloadsController handles download requests and a reader's own history.
type DownloadsController struct {
	recorder *downloads.Recorder
	records  DownloadReader
}

func NewDownloadsController(recorder *downloads.Recorder, records DownloadReader) *DownloadsController {
	return &DownloadsController{recorder: recorder, records: records}
}

// Download handles POST /api/books/:id/download. The response carries the
// book's content URL; nothing is returned until the record is written.
func (controller *DownloadsController) Download(c *gin.Context) {
	userID := GetUserID(c)
	bookID := c.Param("id")

	record, contentURL, err := controller.recorder.Record(userID, bookID)
	if err != nil {
		switch {
		case errors.Is(err, access.ErrUnauthenticated):
			respondUnauthenticated(c)
		case errors.Is(err, downloads.ErrBookNotFound):
			respondNotFound(c, "book")
		default:
			respondInternalError(c, err, "record download")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"download_id":   record.ID,
		"book_id":       record.BookID,
		"downloaded_at": record.DownloadedAt,
		"content_url":   contentURL,
	})
}

// History handles GET /api/downloads and lists the caller's own records.
func (controller *DownloadsController) History(c *gin.Context) {
	userID := GetUserID(c)
	if userID == access.AnonymousUserID {
		respondUnauthenticated(c)
		return
	}

	limit, offset := parsePagination(c)
	records, total, err := controller.records.ListForUser(userID, limit, offset)
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
