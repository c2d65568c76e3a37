package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/openshelf/openshelf/internal/auth"
	"github.com/openshelf/openshelf/internal/curation"
)

// AdminBooksController exposes the catalog curation operations. The routes
// are mounted behind the admin middleware, and the curation service checks
// the resolved role again before touching the store.
type AdminBooksController struct {
	curation *curation.Service
}

func NewAdminBooksController(service *curation.Service) *AdminBooksController {
	return &AdminBooksController{curation: service}
}

// ListBooks handles GET /admin/api/books, including disabled entries.
func (controller *AdminBooksController) ListBooks(c *gin.Context) {
	list, err := controller.curation.ListAll(auth.GetRole(c))
	if err != nil {
		if errors.Is(err, curation.ErrForbidden) {
			respondForbidden(c)
			return
		}
		respondInternalError(c, err, "admin list books")
		return
	}
	c.JSON(http.StatusOK, gin.H{"books": list, "count": len(list)})
}

// GetBook handles GET /admin/api/books/:id.
func (controller *AdminBooksController) GetBook(c *gin.Context) {
	book, err := controller.curation.GetBook(auth.GetRole(c), c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, curation.ErrForbidden):
			respondForbidden(c)
		case errors.Is(err, curation.ErrBookNotFound):
			respondNotFound(c, "book")
		default:
			respondInternalError(c, err, "admin get book")
		}
		return
	}
	c.JSON(http.StatusOK, book)
}

// CreateBook handles POST /admin/api/books.
func (controller *AdminBooksController) CreateBook(c *gin.Context) {
	var input curation.BookInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}

	book, err := controller.curation.CreateBook(auth.GetRole(c), GetUserID(c), input)
	if err != nil {
		if errors.Is(err, curation.ErrForbidden) {
			respondForbidden(c)
			return
		}
		if isValidationError(err) {
			respondBadRequest(c, err.Error())
			return
		}
		respondInternalError(c, err, "admin create book")
		return
	}

	respondCreated(c, book)
}

// UpdateBook handles PUT /admin/api/books/:id.
func (controller *AdminBooksController) UpdateBook(c *gin.Context) {
	var input curation.BookInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}

	book, err := controller.curation.UpdateBook(auth.GetRole(c), GetUserID(c), c.Param("id"), input)
	if err != nil {
		switch {
		case errors.Is(err, curation.ErrForbidden):
			respondForbidden(c)
		case errors.Is(err, curation.ErrBookNotFound):
			respondNotFound(c, "book")
		default:
			if isValidationError(err) {
				respondBadRequest(c, err.Error())
				return
			}
			respondInternalError(c, err, "admin update book")
		}
		return
	}

	c.JSON(http.StatusOK, book)
}

type enabledRequest struct {
	Enabled *bool `json:"enabled"`
}

// SetEnabled handles PATCH /admin/api/books/:id/enabled.
func (controller *AdminBooksController) SetEnabled(c *gin.Context) {
	var req enabledRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Enabled == nil {
		respondBadRequest(c, "enabled flag is required")
		return
	}

	err := controller.curation.SetEnabled(auth.GetRole(c), GetUserID(c), c.Param("id"), *req.Enabled)
	if err != nil {
		switch {
		case errors.Is(err, curation.ErrForbidden):
			respondForbidden(c)
		case errors.Is(err, curation.ErrBookNotFound):
			respondNotFound(c, "book")
		default:
			respondInternalError(c, err, "admin set enabled")
		}
		return
	}

	respondSuccess(c, "book visibility updated")
}

// DeleteBook handles DELETE /admin/api/books/:id. The delete is permanent;
// download records referencing the book are kept.
func (controller *AdminBooksController) DeleteBook(c *gin.Context) {
	err := controller.curation.DeleteBook(auth.GetRole(c), GetUserID(c), c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, curation.ErrForbidden):
			respondForbidden(c)
		case errors.Is(err, curation.ErrBookNotFound):
			respondNotFound(c, "book")
		default:
			respondInternalError(c, err, "admin delete book")
		}
		return
	}

	respondSuccess(c, "book deleted")
}

func isValidationError(err error) bool {
	switch {
	case errors.Is(err, curation.ErrTitleRequired),
		errors.Is(err, curation.ErrAuthorRequired),
		errors.Is(err, curation.ErrCategoryRequired),
		errors.Is(err, curation.ErrBookURLRequired),
		errors.Is(err, curation.ErrBookURLInvalid),
		errors.Is(err, curation.ErrCoverURLInvalid):
		return true
	}
	return false
}
