// Package audit records administrative and authentication actions as
// operational audit events. These are separate from download records: audit
// events have a retention window, download records do not.
package audit

import (
	"fmt"
	"log"
	"time"

	"github.com/openshelf/openshelf/internal/database/audit"
	"github.com/openshelf/openshelf/internal/entities"
)

// Service provides high-level audit logging functionality.
type Service struct {
	repo *audit.Repository
}

// NewService creates a new audit service.
func NewService(repo *audit.Repository) *Service {
	return &Service{repo: repo}
}

// Log records a generic audit event.
func (s *Service) Log(event *entities.AuditEvent) error {
	return s.repo.LogEvent(event)
}

// LogAsync records an audit event in the background (non-blocking).
func (s *Service) LogAsync(event *entities.AuditEvent) {
	go func() {
		if err := s.repo.LogEvent(event); err != nil {
			log.Printf("Failed to log audit event: %v", err)
		}
	}()
}

// LogCuration records an admin catalog action (create, update, enable,
// disable, delete).
func (s *Service) LogCuration(actorID uint, action, bookID, description string, err error) {
	event := &entities.AuditEvent{
		ActorID:     actorID,
		EventType:   entities.AuditEventCuration,
		Action:      action,
		Description: description,
		EntityType:  "book",
		EntityID:    bookID,
		Status:      entities.AuditStatusSuccess,
	}

	if err != nil {
		event.Status = entities.AuditStatusFailed
		event.ErrorMsg = truncate(err.Error(), 500)
	}

	s.LogAsync(event)
}

// LogModeration records a contact message state change.
func (s *Service) LogModeration(actorID uint, action, messageID string) {
	event := &entities.AuditEvent{
		ActorID:    actorID,
		EventType:  entities.AuditEventModeration,
		Action:     action,
		EntityType: "message",
		EntityID:   messageID,
		Status:     entities.AuditStatusSuccess,
	}

	s.LogAsync(event)
}

// LogRoleChange records an admin granting or revoking a role.
func (s *Service) LogRoleChange(actorID, targetUserID uint, role string) {
	event := &entities.AuditEvent{
		ActorID:     actorID,
		EventType:   entities.AuditEventRole,
		Action:      "role_set",
		Description: fmt.Sprintf("Set role %q for user %d", role, targetUserID),
		EntityType:  "user",
		EntityID:    fmt.Sprintf("%d", targetUserID),
		Status:      entities.AuditStatusSuccess,
	}

	s.LogAsync(event)
}

// LogAuth records an authentication event.
func (s *Service) LogAuth(userID uint, action, ipAddr string, success bool) {
	event := &entities.AuditEvent{
		ActorID:   userID,
		EventType: entities.AuditEventAuth,
		Action:    action,
		IPAddress: ipAddr,
		Status:    entities.AuditStatusSuccess,
	}

	if !success {
		event.Status = entities.AuditStatusFailed
	}

	s.LogAsync(event)
}

// GetEvents retrieves paginated audit events.
func (s *Service) GetEvents(actorID uint, limit, offset int) ([]entities.AuditEvent, int64, error) {
	return s.repo.GetEvents(actorID, limit, offset)
}

// DeleteOldEvents removes events older than the specified duration.
func (s *Service) DeleteOldEvents(retention time.Duration) (int64, error) {
	cutoff := time.Now().Add(-retention)
	return s.repo.DeleteOldEvents(cutoff)
}

// truncate shortens a string to max length.
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
