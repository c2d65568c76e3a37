// Package messages persists inbound contact form submissions.
package messages

import (
	"errors"

	"gorm.io/gorm"

	"github.com/openshelf/openshelf/internal/entities"
)

var ErrMessageNotFound = errors.New("message not found")

// Repository handles contact message database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new messages repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a new contact message. Messages always start unread.
func (r *Repository) Create(message *entities.ContactMessage) error {
	message.IsRead = false
	return r.db.Create(message).Error
}

// GetByID retrieves a single message.
func (r *Repository) GetByID(id string) (*entities.ContactMessage, error) {
	var message entities.ContactMessage
	err := r.db.Where("id = ?", id).First(&message).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMessageNotFound
		}
		return nil, err
	}
	return &message, nil
}

// List retrieves messages, newest first.
func (r *Repository) List(limit, offset int) ([]entities.ContactMessage, int64, error) {
	var msgs []entities.ContactMessage
	var total int64

	if err := r.db.Model(&entities.ContactMessage{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	err := r.db.Order("created_at DESC").Limit(limit).Offset(offset).Find(&msgs).Error
	return msgs, total, err
}

// MarkRead flips is_read to true. The update is idempotent: marking an
// already-read message succeeds without touching the row again.
func (r *Repository) MarkRead(id string) error {
	result := r.db.Model(&entities.ContactMessage{}).
		Where("id = ? AND is_read = ?", id, false).
		Update("is_read", true)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		// Either already read or missing; only the latter is an error.
		var count int64
		if err := r.db.Model(&entities.ContactMessage{}).Where("id = ?", id).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return ErrMessageNotFound
		}
	}
	return nil
}

// UnreadCount returns how many messages have not been read yet.
func (r *Repository) UnreadCount() (int64, error) {
	var count int64
	err := r.db.Model(&entities.ContactMessage{}).Where("is_read = ?", false).Count(&count).Error
	return count, err
}
