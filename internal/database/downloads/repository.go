// Package downloads persists the append-only download audit trail.
package downloads

import (
	"time"

	"gorm.io/gorm"

	"github.com/openshelf/openshelf/internal/entities"
)

// Repository handles download record database operations. Records are only
// ever inserted; there is no update or delete path.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new downloads repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create appends a single download record. The timestamp is set here if the
// caller left it zero.
func (r *Repository) Create(record *entities.DownloadRecord) error {
	if record.DownloadedAt.IsZero() {
		record.DownloadedAt = time.Now()
	}
	return r.db.Create(record).Error
}

// ListForUser retrieves a user's download history, most recent first.
func (r *Repository) ListForUser(userID uint, limit, offset int) ([]entities.DownloadRecord, int64, error) {
	var records []entities.DownloadRecord
	var total int64

	query := r.db.Model(&entities.DownloadRecord{}).Where("user_id = ?", userID)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	err := query.Order("downloaded_at DESC").Limit(limit).Offset(offset).Find(&records).Error
	return records, total, err
}

// ListAll retrieves download records across all users, most recent first.
func (r *Repository) ListAll(limit, offset int) ([]entities.DownloadRecord, int64, error) {
	var records []entities.DownloadRecord
	var total int64

	if err := r.db.Model(&entities.DownloadRecord{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	err := r.db.Order("downloaded_at DESC").Limit(limit).Offset(offset).Find(&records).Error
	return records, total, err
}

// CountAll returns the total number of download records.
func (r *Repository) CountAll() (int64, error) {
	var count int64
	err := r.db.Model(&entities.DownloadRecord{}).Count(&count).Error
	return count, err
}

// CountForBook returns how many download records reference a book.
func (r *Repository) CountForBook(bookID string) (int64, error) {
	var count int64
	err := r.db.Model(&entities.DownloadRecord{}).Where("book_id = ?", bookID).Count(&count).Error
	return count, err
}
