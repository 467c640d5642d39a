package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CooldownEntityNone is the entity slot for cards that are not scoped to a
// specific behavior type or goal.
const CooldownEntityNone = "none"

// CooldownRecord remembers when a coach card (template + subject entity) was
// last genuinely shown to this child's parent. Durable across sessions.
// Only the impression tracker's commit step writes these.
type CooldownRecord struct {
	ID               uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	ChildID          uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex:idx_cooldown_child_template_entity" json:"child_id"`
	TemplateID       string         `gorm:"not null;uniqueIndex:idx_cooldown_child_template_entity" json:"template_id"`
	EntityID         string         `gorm:"not null;default:none;uniqueIndex:idx_cooldown_child_template_entity" json:"entity_id"`
	LastCommittedAt  *time.Time     `gorm:"column:last_committed_at" json:"last_committed_at,omitempty"`
	LastInteractedAt *time.Time     `gorm:"column:last_interacted_at" json:"last_interacted_at,omitempty"`
	CreatedAt        time.Time      `gorm:"not null" json:"created_at"`
	UpdatedAt        time.Time      `gorm:"not null" json:"updated_at"`
	DeletedAt        gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (CooldownRecord) TableName() string { return "cooldown_record" }
