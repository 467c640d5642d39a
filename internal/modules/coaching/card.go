package coaching

import (
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/google/uuid"
)

type PriorityTier string

const (
	TierRisk        PriorityTier = "risk"
	TierImprovement PriorityTier = "improvement"
	TierCelebration PriorityTier = "celebration"
)

// LocalizedContent ships the copy key plus concrete arguments so the client
// can re-render the card in any locale without business logic.
type LocalizedContent struct {
	Key  string            `json:"key"`
	Args map[string]string `json:"args,omitempty"`
}

// CoachCard is the wire contract to the presentation layer. Rebuilt on every
// generation call, never stored. The id is deterministic: the same child
// state always yields the same card id, which is what lets cooldown and
// impression tracking recognize "the same card" across regenerations.
type CoachCard struct {
	ID                 string           `json:"id"`
	ChildID            uuid.UUID        `json:"childId"`
	Priority           PriorityTier     `json:"priority"`
	Title              string           `json:"title"`
	OneLiner           string           `json:"oneLiner"`
	Steps              []string         `json:"steps,omitempty"`
	EvidenceEventIDs   []uuid.UUID      `json:"evidenceEventIds"`
	CTA                string           `json:"cta"`
	ExpiresAt          time.Time        `json:"expiresAt"`
	TemplateID         string           `json:"templateId"`
	EvidenceWindowDays int              `json:"evidenceWindowDays"`
	PrimaryEntityID    *uuid.UUID       `json:"primaryEntityId,omitempty"`
	Localized          LocalizedContent `json:"localizedContent"`
}

// EntityKey is the entity slot used for cooldown records.
func (c *CoachCard) EntityKey() string {
	if c.PrimaryEntityID == nil {
		return "none"
	}
	return c.PrimaryEntityID.String()
}

// Candidate pairs a rendered card with the selection metadata that is not
// part of the wire contract.
type Candidate struct {
	Card             CoachCard
	Template         *CardTemplate
	LatestEvidenceAt time.Time
}

func cardID(templateID string, childID uuid.UUID, entityKey string, windowEnd time.Time) string {
	h := sha256.New()
	h.Write([]byte(templateID))
	h.Write([]byte("|"))
	h.Write([]byte(childID.String()))
	h.Write([]byte("|"))
	h.Write([]byte(entityKey))
	h.Write([]byte("|"))
	h.Write([]byte(windowEnd.UTC().Format("2006-01-02")))
	return hex.EncodeToString(h.Sum(nil))[:16]
}
