// Package roles persists explicit role assignments. Most users never have a
// row here; absence means the plain reader role.
package roles

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/openshelf/openshelf/internal/entities"
)

// Repository handles role assignment database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new roles repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// GetRole returns the explicit role assigned to a user, or an empty string
// with a nil error when no assignment exists. A non-nil error means the
// lookup itself failed and the caller must fail closed.
func (r *Repository) GetRole(userID uint) (string, error) {
	var assignment entities.RoleAssignment
	err := r.db.Where("user_id = ?", userID).First(&assignment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil
		}
		return "", fmt.Errorf("failed to look up role: %w", err)
	}
	return assignment.Role, nil
}

// SetRole creates or replaces the role assignment for a user. A user has at
// most one active assignment.
func (r *Repository) SetRole(userID uint, role string) error {
	assignment := entities.RoleAssignment{UserID: userID, Role: role}
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"role", "updated_at"}),
	}).Create(&assignment).Error
}

// ClearRole removes the explicit assignment, reverting the user to the
// default reader role.
func (r *Repository) ClearRole(userID uint) error {
	return r.db.Where("user_id = ?", userID).Delete(&entities.RoleAssignment{}).Error
}

// ListAssignments returns every explicit role assignment.
func (r *Repository) ListAssignments() ([]entities.RoleAssignment, error) {
	var assignments []entities.RoleAssignment
	err := r.db.Find(&assignments).Error
	return assignments, err
}
