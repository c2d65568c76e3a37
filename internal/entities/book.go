package entities

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Book is a single catalog entry. The book content itself is never stored or
// served by this system; BookURL points at the externally hosted content.
type Book struct {
	ID          string    `gorm:"primaryKey;size:36" json:"id"`
	Title       string    `gorm:"index;size:512" json:"title"`
	Author      string    `gorm:"index;size:256" json:"author"`
	Category    string    `gorm:"index;size:100" json:"category"`
	Description string    `gorm:"type:text" json:"description,omitempty"`
	BookURL     string    `gorm:"size:2048" json:"book_url"`
	CoverURL    string    `gorm:"size:2048" json:"cover_url,omitempty"`
	Enabled     bool      `gorm:"default:true;index" json:"enabled"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (Book) TableName() string {
	return "books"
}

// BeforeCreate assigns an opaque identifier when none was provided.
func (b *Book) BeforeCreate(tx *gorm.DB) error {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	return nil
}
