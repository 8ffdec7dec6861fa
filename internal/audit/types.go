package audit

import (
	"time"
)

// AuditAction represents the type of change made to a contact
type AuditAction string

const (
	AuditActionCreate      AuditAction = "create"
	AuditActionUpdate      AuditAction = "update"
	AuditActionDelete      AuditAction = "delete"
	AuditActionPhoneAdd    AuditAction = "phone_add"
	AuditActionPhoneEdit   AuditAction = "phone_edit"
	AuditActionPhoneRemove AuditAction = "phone_remove"
	AuditActionImport      AuditAction = "import"
)

// AuditLog represents a single audit log entry
type AuditLog struct {
	ID        string            `json:"id"`
	Contact   string            `json:"contact"`
	Action    AuditAction       `json:"action"`
	Timestamp time.Time         `json:"timestamp"`
	Details   map[string]string `json:"details,omitempty"`
	Changes   map[string]Change `json:"changes,omitempty"`
}

// Change represents a change in a contact field
type Change struct {
	OldValue string `json:"old_value,omitempty"`
	NewValue string `json:"new_value,omitempty"`
}
