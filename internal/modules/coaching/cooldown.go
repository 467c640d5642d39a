package coaching

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/brightsteps/brightsteps-backend/internal/platform/logger"
	"github.com/brightsteps/brightsteps-backend/internal/types"
)

// CooldownStore answers "is this (template, entity) suppressed for this
// child right now" and persists commit writes. Reads during generation and
// writes from the impression tracker share a short-duration lock; state is
// local to one user's account so nothing heavier is needed.
//
// Store failures fail open: a record that cannot be read counts as "no
// cooldown". Showing a card slightly early beats silently starving the user
// of insights, and the entry is overwritten on the next commit anyway.
type CooldownStore struct {
	mu    sync.RWMutex
	repo  CooldownPersistence
	log   *logger.Logger
	cache map[uuid.UUID]map[string]*types.CooldownRecord // child -> template|entity
}

func NewCooldownStore(repo CooldownPersistence, baseLog *logger.Logger) *CooldownStore {
	return &CooldownStore{
		repo:  repo,
		log:   baseLog.With("component", "CooldownStore"),
		cache: make(map[uuid.UUID]map[string]*types.CooldownRecord),
	}
}

func cooldownKey(templateID, entityID string) string {
	if entityID == "" {
		entityID = types.CooldownEntityNone
	}
	return templateID + "|" + entityID
}

// Preload pulls the child's records into the in-memory cache. Called at the
// start of each generation cycle so suppression checks stay I/O free.
func (s *CooldownStore) Preload(ctx context.Context, childID uuid.UUID) {
	rows, err := s.repo.List(ctx, childID)
	if err != nil {
		s.log.Warn("cooldown preload failed, failing open", "child_id", childID, "error", err)
		rows = nil
	}
	byKey := make(map[string]*types.CooldownRecord, len(rows))
	for _, row := range rows {
		if row == nil || row.TemplateID == "" {
			continue // malformed row, treated as absent
		}
		byKey[cooldownKey(row.TemplateID, row.EntityID)] = row
	}
	s.mu.Lock()
	s.cache[childID] = byKey
	s.mu.Unlock()
}

// IsSuppressed reports whether the template+entity pair sits inside its
// cooldown window. Urgency-override templates are never suppressed.
func (s *CooldownStore) IsSuppressed(childID uuid.UUID, tmpl *CardTemplate, entityID string, now time.Time) bool {
	if tmpl == nil || tmpl.UrgencyOverride {
		return false
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	byKey := s.cache[childID]
	if byKey == nil {
		return false
	}
	rec := byKey[cooldownKey(tmpl.ID, entityID)]
	if rec == nil || rec.LastCommittedAt == nil {
		return false
	}
	return now.Sub(*rec.LastCommittedAt) < tmpl.Cooldown()
}

// Commit upserts the last-committed timestamp. Idempotent: re-committing the
// same display just refreshes the timestamp.
func (s *CooldownStore) Commit(ctx context.Context, childID uuid.UUID, templateID, entityID string, now time.Time) error {
	s.touch(childID, templateID, entityID, func(rec *types.CooldownRecord) {
		t := now.UTC()
		rec.LastCommittedAt = &t
	})
	if err := s.repo.MarkCommitted(ctx, childID, templateID, entityID, now); err != nil {
		s.log.Warn("cooldown commit persist failed", "child_id", childID, "template_id", templateID, "error", err)
		return err
	}
	return nil
}

// Interact records the last interaction timestamp.
func (s *CooldownStore) Interact(ctx context.Context, childID uuid.UUID, templateID, entityID string, now time.Time) error {
	s.touch(childID, templateID, entityID, func(rec *types.CooldownRecord) {
		t := now.UTC()
		rec.LastInteractedAt = &t
	})
	if err := s.repo.MarkInteracted(ctx, childID, templateID, entityID, now); err != nil {
		s.log.Warn("cooldown interact persist failed", "child_id", childID, "template_id", templateID, "error", err)
		return err
	}
	return nil
}

func (s *CooldownStore) touch(childID uuid.UUID, templateID, entityID string, mutate func(*types.CooldownRecord)) {
	if entityID == "" {
		entityID = types.CooldownEntityNone
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	byKey := s.cache[childID]
	if byKey == nil {
		byKey = make(map[string]*types.CooldownRecord)
		s.cache[childID] = byKey
	}
	key := cooldownKey(templateID, entityID)
	rec := byKey[key]
	if rec == nil {
		rec = &types.CooldownRecord{ChildID: childID, TemplateID: templateID, EntityID: entityID}
		byKey[key] = rec
	}
	mutate(rec)
}
