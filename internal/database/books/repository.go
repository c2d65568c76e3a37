// Package books provides database operations for the catalog.
//
// Disabled books are filtered out of every query unless the caller asks for
// them explicitly via ListFilter.IncludeDisabled or the includeDisabled
// argument. The admin curation surface is the only call site that sets it.
package books

import (
	"errors"

	"gorm.io/gorm"

	"github.com/openshelf/openshelf/internal/entities"
)

var ErrBookNotFound = errors.New("book not found")

// ListFilter narrows a catalog listing.
type ListFilter struct {
	// Search matches a case-insensitive substring of title, author or
	// description.
	Search string
	// Category matches the category label exactly.
	Category string
	// IncludeDisabled returns disabled books too. Reserved for the admin
	// curation surface.
	IncludeDisabled bool
}

// Repository handles catalog database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new catalog repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// ListBooks retrieves books matching the filter, ordered by title.
func (r *Repository) ListBooks(filter ListFilter) ([]entities.Book, error) {
	query := r.db.Model(&entities.Book{})
	if !filter.IncludeDisabled {
		query = query.Where("enabled = ?", true)
	}
	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where(
			"LOWER(title) LIKE LOWER(?) OR LOWER(author) LIKE LOWER(?) OR LOWER(description) LIKE LOWER(?)",
			pattern, pattern, pattern,
		)
	}

	var books []entities.Book
	err := query.Order("title ASC").Find(&books).Error
	return books, err
}

// GetBookByID retrieves a single book. Disabled books resolve to
// ErrBookNotFound unless includeDisabled is set.
func (r *Repository) GetBookByID(id string, includeDisabled bool) (*entities.Book, error) {
	query := r.db.Where("id = ?", id)
	if !includeDisabled {
		query = query.Where("enabled = ?", true)
	}

	var book entities.Book
	err := query.First(&book).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookNotFound
		}
		return nil, err
	}
	return &book, nil
}

// Categories returns the distinct categories of enabled books, sorted.
func (r *Repository) Categories() ([]string, error) {
	var categories []string
	err := r.db.Model(&entities.Book{}).
		Where("enabled = ?", true).
		Distinct("category").
		Order("category ASC").
		Pluck("category", &categories).Error
	return categories, err
}

// CreateBook inserts a new catalog entry.
func (r *Repository) CreateBook(book *entities.Book) error {
	return r.db.Create(book).Error
}

// UpdateBook replaces the editable fields of an existing book.
func (r *Repository) UpdateBook(book *entities.Book) error {
	result := r.db.Model(&entities.Book{}).Where("id = ?", book.ID).Updates(map[string]any{
		"title":       book.Title,
		"author":      book.Author,
		"category":    book.Category,
		"description": book.Description,
		"book_url":    book.BookURL,
		"cover_url":   book.CoverURL,
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrBookNotFound
	}
	return nil
}

// SetEnabled flips the visibility flag of a book.
func (r *Repository) SetEnabled(id string, enabled bool) error {
	result := r.db.Model(&entities.Book{}).Where("id = ?", id).Update("enabled", enabled)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrBookNotFound
	}
	return nil
}

// DeleteBook removes a book permanently. Download records referencing the
// book are left in place.
func (r *Repository) DeleteBook(id string) error {
	result := r.db.Where("id = ?", id).Delete(&entities.Book{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrBookNotFound
	}
	return nil
}

// CountBooks returns the total number of books, including disabled ones.
func (r *Repository) CountBooks() (int64, error) {
	var count int64
	err := r.db.Model(&entities.Book{}).Count(&count).Error
	return count, err
}
