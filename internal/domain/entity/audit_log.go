package entity

import "time"

// Audit actions.
const (
	AuditCreated  = "created"
	AuditModified = "modified"
	AuditDeleted  = "deleted"
)

// AuditLog append-only change record. OldValues/NewValues are JSON snapshots.
type AuditLog struct {
	ID        int64
	CompanyID string
	UserID    string
	TableName string
	Action    string
	KeyValue  string
	OldValues []byte
	NewValues []byte
	CreatedAt time.Time
}
