package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/openshelf/openshelf/internal/access"
	"github.com/openshelf/openshelf/internal/auth"
	"github.com/openshelf/openshelf/internal/database/books"
	"github.com/openshelf/openshelf/internal/entities"
)

// BooksController serves the public catalog. Disabled books never appear
// here regardless of who is asking; admins manage them through the
// curation endpoints instead.
type BooksController struct {
	catalog CatalogReader
}

func NewBooksController(catalog CatalogReader) *BooksController {
	return &BooksController{catalog: catalog}
}

// bookView is the catalog representation of a book. The content URL is
// deliberately absent; it is only revealed by the download endpoint.
type bookView struct {
	ID          string          `json:"id"`
	Title       string          `json:"title"`
	Author      string          `json:"author"`
	Category    string          `json:"category"`
	Description string          `json:"description"`
	CoverURL    string          `json:"cover_url"`
	Access      access.Decision `json:"access"`
}

func toBookView(book *entities.Book, role access.Role) bookView {
	return bookView{
		ID:          book.ID,
		Title:       book.Title,
		Author:      book.Author,
		Category:    book.Category,
		Description: book.Description,
		CoverURL:    book.CoverURL,
		Access:      access.Authorize(role, book),
	}
}

// ListBooks handles GET /api/books with optional search and category filters.
func (controller *BooksController) ListBooks(c *gin.Context) {
	filter := books.ListFilter{
		Search:   strings.TrimSpace(c.Query("search")),
		Category: strings.TrimSpace(c.Query("category")),
	}

	role := auth.GetRole(c)

	list, err := controller.catalog.ListBooks(filter)
	if err != nil {
		respondInternalError(c, err, "list books")
		return
	}

	views := make([]bookView, 0, len(list))
	for i := range list {
		views = append(views, toBookView(&list[i], role))
	}

	c.JSON(http.StatusOK, gin.H{"books": views, "count": len(views)})
}

// GetBook handles GET /api/books/:id. A disabled book is reported as not
// found so its existence does not leak.
func (controller *BooksController) GetBook(c *gin.Context) {
	id := c.Param("id")

	book, err := controller.catalog.GetBookByID(id, false)
	if err != nil {
		if errors.Is(err, books.ErrBookNotFound) {
			respondNotFound(c, "book")
			return
		}
		respondInternalError(c, err, "get book")
		return
	}

	c.JSON(http.StatusOK, toBookView(book, auth.GetRole(c)))
}

// ListCategories handles GET /api/categories.
func (controller *BooksController) ListCategories(c *gin.Context) {
	categories, err := controller.catalog.Categories()
	if err != nil {
		respondInternalError(c, err, "list categories")
		return
	}
	c.JSON(http.StatusOK, gin.H{"categories": categories})
}
