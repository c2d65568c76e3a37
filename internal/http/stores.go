package http

import (
	"github.com/openshelf/openshelf/internal/database/books"
	"github.com/openshelf/openshelf/internal/entities"
)

// This file consolidates the store interface definitions used by HTTP
// controllers. Each controller depends only on the operations it needs.

// CatalogReader provides read access to the public catalog. Implementations
// must exclude disabled books unless the filter explicitly includes them.
type CatalogReader interface {
	ListBooks(filter books.ListFilter) ([]entities.Book, error)
	GetBookByID(id string, includeDisabled bool) (*entities.Book, error)
	Categories() ([]string, error)
}

// DownloadReader provides read access to download records.
type DownloadReader interface {
	ListForUser(userID uint, limit, offset int) ([]entities.DownloadRecord, int64, error)
	ListAll(limit, offset int) ([]entities.DownloadRecord, int64, error)
	CountAll() (int64, error)
}

// UserReader provides read access to reader profiles.
type UserReader interface {
	GetByID(id uint) (*entities.User, error)
	List(limit, offset int) ([]entities.User, int64, error)
	Count() (int64, error)
}

// RoleWriter grants and revokes explicit role assignments.
type RoleWriter interface {
	GetRole(userID uint) (string, error)
	SetRole(userID uint, role string) error
	ClearRole(userID uint) error
}

// StatsCounter aggregates the counts shown on the admin dashboard.
type StatsCounter interface {
	CountBooks() (int64, error)
}
