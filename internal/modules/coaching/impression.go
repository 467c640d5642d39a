package coaching

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/brightsteps/brightsteps-backend/internal/platform/logger"
)

// ImpressionTracker decides when a shown card genuinely counts as seen.
// Per displayed card and generation cycle the states are
//
//	Rendered -> Visible -> (DwellThresholdMet | Interacted) -> Committed
//	Rendered -> Visible -> Hidden            (never committed)
//
// A card scrolled past in under the dwell threshold must not consume its
// cooldown window: suppression tracks genuine exposure, not computation.
// A card is committed at most once per cycle.
type ImpressionTracker struct {
	mu     sync.Mutex
	store  *CooldownStore
	dwell  time.Duration
	log    *logger.Logger
	clock  func() time.Time
	states map[string]*impressionState
}

type impressionState struct {
	childID    uuid.UUID
	templateID string
	entityID   string
	visibleAt  time.Time
	visible    bool
	committed  bool
	timer      *time.Timer
}

func NewImpressionTracker(store *CooldownStore, dwell time.Duration, baseLog *logger.Logger) *ImpressionTracker {
	return &ImpressionTracker{
		store:  store,
		dwell:  dwell,
		log:    baseLog.With("component", "ImpressionTracker"),
		clock:  time.Now,
		states: make(map[string]*impressionState),
	}
}

// BeginCycle replaces the tracked set for a child with the cards of a fresh
// generation cycle. Pending dwell timers from the previous cycle are
// cancelled; a stale card id from an old cycle is silently ignored later.
func (t *ImpressionTracker) BeginCycle(childID uuid.UUID, cards []CoachCard) {
	t.mu.Lock()
	defer t.mu.Unlock()
	for id, st := range t.states {
		if st.childID == childID {
			if st.timer != nil {
				st.timer.Stop()
			}
			delete(t.states, id)
		}
	}
	for _, card := range cards {
		t.states[card.ID] = &impressionState{
			childID:    card.ChildID,
			templateID: card.TemplateID,
			entityID:   card.EntityKey(),
		}
	}
}

func (t *ImpressionTracker) CardBecameVisible(cardID string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	st := t.states[cardID]
	if st == nil || st.committed || st.visible {
		return
	}
	st.visible = true
	st.visibleAt = t.clock()
	st.timer = time.AfterFunc(t.dwell, func() { t.dwellMet(cardID) })
}

func (t *ImpressionTracker) CardBecameHidden(cardID string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	st := t.states[cardID]
	if st == nil || !st.visible {
		return
	}
	st.visible = false
	if st.timer != nil {
		st.timer.Stop()
		st.timer = nil
	}
	// The timer may not have fired yet even though the dwell was reached.
	if !st.committed && t.clock().Sub(st.visibleAt) >= t.dwell {
		t.commitLocked(st)
	}
}

// RecordInteraction short-circuits straight to Committed regardless of dwell.
func (t *ImpressionTracker) RecordInteraction(cardID string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	st := t.states[cardID]
	if st == nil {
		return
	}
	if st.timer != nil {
		st.timer.Stop()
		st.timer = nil
	}
	now := t.clock()
	_ = t.store.Interact(context.Background(), st.childID, st.templateID, st.entityID, now)
	if !st.committed {
		t.commitLocked(st)
	}
}

func (t *ImpressionTracker) dwellMet(cardID string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	st := t.states[cardID]
	if st == nil || st.committed || !st.visible {
		return
	}
	t.commitLocked(st)
}

func (t *ImpressionTracker) commitLocked(st *impressionState) {
	st.committed = true
	if err := t.store.Commit(context.Background(), st.childID, st.templateID, st.entityID, t.clock()); err != nil {
		t.log.Warn("impression commit failed", "child_id", st.childID, "template_id", st.templateID, "error", err)
	}
}
