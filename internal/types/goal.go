package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Goal is a point target with a deadline, at most one active per child.
type Goal struct {
	ID           uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	ChildID      uuid.UUID      `gorm:"type:uuid;not null;index" json:"child_id"`
	Child        *Child         `gorm:"constraint:OnDelete:CASCADE;foreignKey:ChildID;references:ID" json:"child,omitempty"`
	Title        string         `gorm:"not null" json:"title"`
	RewardName   string         `gorm:"column:reward_name" json:"reward_name,omitempty"`
	TargetPoints int            `gorm:"not null" json:"target_points"`
	StartedAt    time.Time      `gorm:"not null" json:"started_at"`
	DeadlineAt   time.Time      `gorm:"not null" json:"deadline_at"`
	Active       bool           `gorm:"not null;default:true;index" json:"active"`
	CreatedAt    time.Time      `gorm:"not null" json:"created_at"`
	UpdatedAt    time.Time      `gorm:"not null" json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (Goal) TableName() string { return "goal" }
