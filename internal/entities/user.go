package entities

import (
	"time"
)

// User is a reader profile. One profile exists per identity and is created at
// first authentication (signup).
type User struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	FullName     string     `gorm:"size:256" json:"full_name,omitempty"`
	Email        string     `gorm:"uniqueIndex;size:255" json:"email"`
	Phone        string     `gorm:"size:32" json:"phone,omitempty"`
	PasswordHash string     `gorm:"size:128" json:"-"`
	LastLoginAt  *time.Time `json:"last_login_at,omitempty"`

	// Account lockout state for failed logins.
	FailedLoginCount int        `gorm:"default:0" json:"-"`
	LockedUntil      *time.Time `json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}

// RoleAssignment maps a user to an explicit role. At most one row exists per
// user; users without a row are plain readers.
type RoleAssignment struct {
	UserID    uint      `gorm:"primaryKey" json:"user_id"`
	Role      string    `gorm:"size:20" json:"role"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (RoleAssignment) TableName() string {
	return "user_roles"
}
