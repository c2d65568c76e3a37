// Package curation implements the admin catalog operations. Every operation
// checks the caller's resolved role before any store write is attempted.
package curation

import (
	"errors"
	"fmt"
	"log"
	"net/url"
	"strings"

	"github.com/openshelf/openshelf/internal/access"
	"github.com/openshelf/openshelf/internal/audit"
	"github.com/openshelf/openshelf/internal/database/books"
	"github.com/openshelf/openshelf/internal/entities"
)

var (
	ErrForbidden    = access.ErrForbidden
	ErrBookNotFound = books.ErrBookNotFound

	ErrTitleRequired    = errors.New("title is required")
	ErrAuthorRequired   = errors.New("author is required")
	ErrCategoryRequired = errors.New("category is required")
	ErrBookURLRequired  = errors.New("book URL is required")
	ErrBookURLInvalid   = errors.New("book URL is not a valid URL")
	ErrCoverURLInvalid  = errors.New("cover URL is not a valid URL")
)

// CatalogStore is the catalog persistence needed by the curation service.
type CatalogStore interface {
	ListBooks(filter books.ListFilter) ([]entities.Book, error)
	GetBookByID(id string, includeDisabled bool) (*entities.Book, error)
	CreateBook(book *entities.Book) error
	UpdateBook(book *entities.Book) error
	SetEnabled(id string, enabled bool) error
	DeleteBook(id string) error
}

// BookInput carries the editable fields of a catalog entry.
type BookInput struct {
	Title       string `json:"title"`
	Author      string `json:"author"`
	Category    string `json:"category"`
	Description string `json:"description"`
	BookURL     string `json:"book_url"`
	CoverURL    string `json:"cover_url"`
}

// CoverInvalidator drops cached cover images when a book changes.
type CoverInvalidator interface {
	InvalidateCover(bookID string) error
}

// Service performs admin catalog operations.
type Service struct {
	catalog      CatalogStore
	auditService *audit.Service
	coverCache   CoverInvalidator
}

// NewService creates a curation service. auditService may be nil.
func NewService(catalog CatalogStore, auditService *audit.Service) *Service {
	return &Service{catalog: catalog, auditService: auditService}
}

// SetCoverInvalidator connects a cover cache so edits and deletes drop the
// stale image.
func (s *Service) SetCoverInvalidator(invalidator CoverInvalidator) {
	s.coverCache = invalidator
}

// ListAll returns every book irrespective of the enabled flag. Only the
// curation surface may see disabled books.
func (s *Service) ListAll(role access.Role) ([]entities.Book, error) {
	if role != access.RoleAdmin {
		return nil, ErrForbidden
	}
	return s.catalog.ListBooks(books.ListFilter{IncludeDisabled: true})
}

// GetBook looks up a book including disabled ones.
func (s *Service) GetBook(role access.Role, id string) (*entities.Book, error) {
	if role != access.RoleAdmin {
		return nil, ErrForbidden
	}
	return s.catalog.GetBookByID(id, true)
}

// CreateBook validates the input and inserts a new, enabled catalog entry.
func (s *Service) CreateBook(role access.Role, actorID uint, in BookInput) (*entities.Book, error) {
	if role != access.RoleAdmin {
		return nil, ErrForbidden
	}
	if err := validate(in); err != nil {
		return nil, err
	}

	book := &entities.Book{
		Title:       strings.TrimSpace(in.Title),
		Author:      strings.TrimSpace(in.Author),
		Category:    strings.TrimSpace(in.Category),
		Description: strings.TrimSpace(in.Description),
		BookURL:     strings.TrimSpace(in.BookURL),
		CoverURL:    strings.TrimSpace(in.CoverURL),
		Enabled:     true,
	}
	if err := s.catalog.CreateBook(book); err != nil {
		s.logCuration(actorID, "book_create", "", book.Title, err)
		return nil, fmt.Errorf("failed to create book: %w", err)
	}

	s.logCuration(actorID, "book_create", book.ID, book.Title, nil)
	return book, nil
}

// UpdateBook validates the input and replaces the editable fields of an
// existing book. The enabled flag is not touched here; use SetEnabled.
func (s *Service) UpdateBook(role access.Role, actorID uint, id string, in BookInput) (*entities.Book, error) {
	if role != access.RoleAdmin {
		return nil, ErrForbidden
	}
	if err := validate(in); err != nil {
		return nil, err
	}

	book := &entities.Book{
		ID:          id,
		Title:       strings.TrimSpace(in.Title),
		Author:      strings.TrimSpace(in.Author),
		Category:    strings.TrimSpace(in.Category),
		Description: strings.TrimSpace(in.Description),
		BookURL:     strings.TrimSpace(in.BookURL),
		CoverURL:    strings.TrimSpace(in.CoverURL),
	}
	if err := s.catalog.UpdateBook(book); err != nil {
		if !errors.Is(err, ErrBookNotFound) {
			s.logCuration(actorID, "book_update", id, book.Title, err)
		}
		return nil, err
	}

	s.logCuration(actorID, "book_update", id, book.Title, nil)
	s.invalidateCover(id)
	return s.catalog.GetBookByID(id, true)
}

// SetEnabled flips the visibility flag of a book.
func (s *Service) SetEnabled(role access.Role, actorID uint, id string, enabled bool) error {
	if role != access.RoleAdmin {
		return ErrForbidden
	}

	if err := s.catalog.SetEnabled(id, enabled); err != nil {
		return err
	}

	action := "book_disable"
	if enabled {
		action = "book_enable"
	}
	s.logCuration(actorID, action, id, "", nil)
	return nil
}

// DeleteBook removes a book permanently. There is no soft delete and no
// recovery. Download records referencing the book are retained; their book
// reference is left dangling on purpose so the audit trail stays complete.
func (s *Service) DeleteBook(role access.Role, actorID uint, id string) error {
	if role != access.RoleAdmin {
		return ErrForbidden
	}

	// Resolve the title first so the audit entry survives the delete.
	title := ""
	if book, err := s.catalog.GetBookByID(id, true); err == nil {
		title = book.Title
	}

	if err := s.catalog.DeleteBook(id); err != nil {
		return err
	}

	s.logCuration(actorID, "book_delete", id, title, nil)
	s.invalidateCover(id)
	return nil
}

func (s *Service) invalidateCover(bookID string) {
	if s.coverCache == nil {
		return
	}
	if err := s.coverCache.InvalidateCover(bookID); err != nil {
		log.Printf("Failed to invalidate cover cache for book %s: %v", bookID, err)
	}
}

func (s *Service) logCuration(actorID uint, action, bookID, title string, err error) {
	if s.auditService == nil {
		return
	}
	description := action
	if title != "" {
		description = fmt.Sprintf("%s: %s", action, title)
	}
	s.auditService.LogCuration(actorID, action, bookID, description, err)
}

func validate(in BookInput) error {
	switch {
	case strings.TrimSpace(in.Title) == "":
		return ErrTitleRequired
	case strings.TrimSpace(in.Author) == "":
		return ErrAuthorRequired
	case strings.TrimSpace(in.Category) == "":
		return ErrCategoryRequired
	case strings.TrimSpace(in.BookURL) == "":
		return ErrBookURLRequired
	}

	if !validURL(in.BookURL) {
		return ErrBookURLInvalid
	}
	if cover := strings.TrimSpace(in.CoverURL); cover != "" && !validURL(cover) {
		return ErrCoverURLInvalid
	}
	return nil
}

func validURL(raw string) bool {
	u, err := url.Parse(strings.TrimSpace(raw))
	return err == nil && (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
