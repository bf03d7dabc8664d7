package models

import "time"

// AuditAction is the kind of mutation recorded in history.
type AuditAction string

const (
	ActionCreated AuditAction = "Created"
	ActionUpdated AuditAction = "Updated"
	ActionDeleted AuditAction = "Deleted"
)

// AuditLog is an immutable history entry.
type AuditLog struct {
	ID        int64       `json:"id" bson:"_id"`
	Timestamp time.Time   `json:"timestamp" bson:"timestamp"`
	User      Role        `json:"user" bson:"user"`
	Action    AuditAction `json:"action" bson:"action"`
	Module    string      `json:"module" bson:"module"`
	Details   string      `json:"details" bson:"details"`
}

func (a AuditLog) EntityID() int64 { return a.ID }

func (a AuditLog) WithID(id int64) AuditLog {
	a.ID = id
	return a
}
