package entities

import "time"

type AuditEventType string

const (
	AuditEventCuration   AuditEventType = "curation"
	AuditEventModeration AuditEventType = "moderation"
	AuditEventAuth       AuditEventType = "auth"
	AuditEventRole       AuditEventType = "role"
)

type AuditStatus string

const (
	AuditStatusSuccess AuditStatus = "success"
	AuditStatusFailed  AuditStatus = "failed"
)

// AuditEvent records an administrative or authentication action. Unlike
// DownloadRecords, audit events are operational history and are purged after
// the configured retention period.
type AuditEvent struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	ActorID     uint           `gorm:"index" json:"actor_id"`
	EventType   AuditEventType `gorm:"index;size:50" json:"event_type"`
	Action      string         `gorm:"size:100" json:"action"`      // e.g., "book_create", "message_read"
	Description string         `gorm:"size:500" json:"description"` // Human-readable summary
	EntityType  string         `gorm:"size:50" json:"entity_type"`  // "book", "message", "user"
	EntityID    string         `gorm:"index;size:36" json:"entity_id,omitempty"`
	IPAddress   string         `gorm:"size:45" json:"ip_address,omitempty"`
	Status      AuditStatus    `gorm:"size:20" json:"status"`
	ErrorMsg    string         `gorm:"size:500" json:"error_msg,omitempty"`
	CreatedAt   time.Time      `gorm:"index" json:"created_at"`
}

func (AuditEvent) TableName() string {
	return "audit_events"
}
