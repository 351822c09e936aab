package entities

import "time"

type AuditAction string

const (
	AuditActionCreate         AuditAction = "create"
	AuditActionUpdate         AuditAction = "update"
	AuditActionDelete         AuditAction = "delete"
	AuditActionPasswordChange AuditAction = "password_change"
)

type AuditEvent struct {
	ID          uint        `gorm:"primaryKey" json:"id"`
	UserID      uint        `gorm:"index" json:"user_id"`
	Action      AuditAction `gorm:"index;size:50" json:"action"`
	EntityType  string      `gorm:"size:50" json:"entity_type"` // "book", "author", "book_review", "user"
	EntityID    *uint       `gorm:"index" json:"entity_id,omitempty"`
	Description string      `gorm:"size:500" json:"description"` // Human-readable summary
	CreatedAt   time.Time   `gorm:"index" json:"created_at"`
}

func (AuditEvent) TableName() string {
	return "audit_events"
}
