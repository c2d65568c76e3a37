package http

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/openshelf/openshelf/internal/covers"
	"github.com/openshelf/openshelf/internal/database/books"
)

// CoversController serves locally cached cover images for catalog entries.
type CoversController struct {
	cache   *covers.Cache
	catalog CatalogReader
}

func NewCoversController(cache *covers.Cache, catalog CatalogReader) *CoversController {
	return &CoversController{cache: cache, catalog: catalog}
}

// GetCover handles GET /api/books/:id/cover. Disabled books yield the same
// 404 as missing ones.
func (controller *CoversController) GetCover(c *gin.Context) {
	id := c.Param("id")

	book, err := controller.catalog.GetBookByID(id, false)
	if err != nil {
		if errors.Is(err, books.ErrBookNotFound) {
			respondNotFound(c, "book")
			return
		}
		respondInternalError(c, err, "get book for cover")
		return
	}

	if book.CoverURL == "" {
		respondNotFound(c, "cover")
		return
	}

	path, err := controller.cache.GetCover(book.ID, book.CoverURL)
	if err != nil {
		respondInternalError(c, err, "fetch cover")
		return
	}
	if path == "" {
		respondNotFound(c, "cover")
		return
	}

	c.Header("Cache-Control", "public, max-age=86400")
	c.File(path)
}
