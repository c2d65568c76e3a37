package entities

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DownloadRecord is one entry of the append-only access audit trail. Records
// are never updated or deleted; re-downloading the same book produces a new
// record. BookID is intentionally not a foreign key so that records survive a
// hard delete of the book they reference.
type DownloadRecord struct {
	ID           string    `gorm:"primaryKey;size:36" json:"id"`
	UserID       uint      `gorm:"index" json:"user_id"`
	BookID       string    `gorm:"index;size:36" json:"book_id"`
	DownloadedAt time.Time `gorm:"index" json:"downloaded_at"`
}

func (DownloadRecord) TableName() string {
	return "downloads"
}

func (d *DownloadRecord) BeforeCreate(tx *gorm.DB) error {
	if d.ID == "" {
		d.ID = uuid.NewString()
	}
	return nil
}
