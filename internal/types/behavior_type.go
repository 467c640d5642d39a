package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	BehaviorCategoryPositive        = "positive"
	BehaviorCategoryRoutinePositive = "routine_positive"
	BehaviorCategoryNegative        = "negative"
)

// BehaviorType is reference data: the catalog of loggable moments.
type BehaviorType struct {
	ID            uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	Name          string         `gorm:"not null" json:"name"`
	Icon          string         `gorm:"column:icon" json:"icon"`
	Category      string         `gorm:"not null;index" json:"category"`
	DefaultPoints int            `gorm:"not null;default:0" json:"default_points"`
	Active        bool           `gorm:"not null;default:true" json:"active"`
	CreatedAt     time.Time      `gorm:"not null" json:"created_at"`
	UpdatedAt     time.Time      `gorm:"not null" json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (BehaviorType) TableName() string { return "behavior_type" }

func (bt *BehaviorType) IsPositive() bool {
	return bt.Category == BehaviorCategoryPositive || bt.Category == BehaviorCategoryRoutinePositive
}
