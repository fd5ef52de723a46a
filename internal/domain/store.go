package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ListSnapshot is the last list an operator successfully loaded for a
// resource. It is what a screen falls back to when a refresh fails.
type ListSnapshot struct {
	ID         uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	OperatorID string         `gorm:"column:operator_id;not null;uniqueIndex:idx_snapshot_operator_resource" json:"operator_id"`
	Resource   string         `gorm:"column:resource;not null;uniqueIndex:idx_snapshot_operator_resource" json:"resource"`
	Payload    datatypes.JSON `gorm:"column:payload;not null" json:"payload"`
	ItemCount  int            `gorm:"column:item_count;not null;default:0" json:"item_count"`
	FetchedAt  time.Time      `gorm:"column:fetched_at;not null;index" json:"fetched_at"`
	UpdatedAt  time.Time      `gorm:"not null" json:"updated_at"`
}

func (ListSnapshot) TableName() string { return "list_snapshot" }

func (s *ListSnapshot) BeforeCreate(*gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// Audit actions.
const (
	AuditCreate = "create"
	AuditUpdate = "update"
	AuditDelete = "delete"
)

// AuditEntry records one successful mutation made through the console.
type AuditEntry struct {
	ID         uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	OperatorID string         `gorm:"column:operator_id;not null;index" json:"operator_id"`
	Resource   string         `gorm:"column:resource;not null;index" json:"resource"`
	Action     string         `gorm:"column:action;not null" json:"action"`
	EntityID   string         `gorm:"column:entity_id;index" json:"entity_id,omitempty"`
	RequestID  string         `gorm:"column:request_id" json:"request_id,omitempty"`
	Details    datatypes.JSON `gorm:"column:details" json:"details,omitempty"`
	CreatedAt  time.Time      `gorm:"not null;index" json:"created_at"`
}

func (AuditEntry) TableName() string { return "audit_entry" }

func (e *AuditEntry) BeforeCreate(*gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}
