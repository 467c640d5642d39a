package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// BehaviorEvent is a single timestamped, point-valued log entry for a child.
// Immutable once created; the coach engine only ever reads these.
type BehaviorEvent struct {
	ID             uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	ChildID        uuid.UUID      `gorm:"type:uuid;not null;index:idx_behavior_event_child_occurred" json:"child_id"`
	Child          *Child         `gorm:"constraint:OnDelete:CASCADE;foreignKey:ChildID;references:ID" json:"child,omitempty"`
	BehaviorTypeID uuid.UUID      `gorm:"type:uuid;not null;index" json:"behavior_type_id"`
	BehaviorType   *BehaviorType  `gorm:"foreignKey:BehaviorTypeID;references:ID" json:"behavior_type,omitempty"`
	Points         int            `gorm:"not null" json:"points"`
	OccurredAt     time.Time      `gorm:"not null;index:idx_behavior_event_child_occurred" json:"occurred_at"`
	Note           string         `gorm:"column:note" json:"note,omitempty"`
	HasMedia       bool           `gorm:"not null;default:false" json:"has_media"`
	Meta           datatypes.JSON `gorm:"column:meta" json:"meta,omitempty"`
	CreatedAt      time.Time      `gorm:"not null" json:"created_at"`
	UpdatedAt      time.Time      `gorm:"not null" json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (BehaviorEvent) TableName() string { return "behavior_event" }
