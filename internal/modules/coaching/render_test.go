package coaching

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/brightsteps/brightsteps-backend/internal/platform/logger"
	"github.com/brightsteps/brightsteps-backend/internal/types"
)

func renderFixture(t *testing.T) (Config, *TemplateCatalog) {
	t.Helper()
	cat, err := LoadTemplates()
	if err != nil {
		t.Fatalf("LoadTemplates: %v", err)
	}
	return Config{}.normalized(), cat
}

func routineSignal(snap *snapshot, bt *types.BehaviorType, events []*types.BehaviorEvent) Signal {
	evidence, latest := evidenceOf(events)
	entityID := bt.ID
	return Signal{
		Kind:        SignalRoutineForming,
		ChildID:     snap.childID,
		EntityID:    &entityID,
		WindowStart: windowStart(snap.now, 7),
		WindowEnd:   snap.now,
		Metrics: SignalMetrics{
			Count:      len(events),
			WindowDays: 7,
			EntityName: bt.Name,
		},
		EvidenceIDs:      evidence,
		LatestEvidenceAt: latest,
	}
}

func TestRenderSignalFillsCopy(t *testing.T) {
	cfg, cat := renderFixture(t)
	child := uuid.New()
	bt := mkType("Shared toys", types.BehaviorCategoryPositive)
	events := []*types.BehaviorEvent{
		mkEvent(child, bt.ID, 1, testNow.Add(-3*24*time.Hour)),
		mkEvent(child, bt.ID, 1, testNow.Add(-2*24*time.Hour)),
		mkEvent(child, bt.ID, 1, testNow.Add(-1*24*time.Hour)),
	}
	snap := mkSnapshot(child, testNow, events, map[uuid.UUID]*types.BehaviorType{bt.ID: bt}, nil)

	cand, ok := renderSignal(logger.NewNop(), cfg, cat, snap, routineSignal(snap, bt, events))
	if !ok {
		t.Fatalf("signal rejected")
	}
	card := cand.Card
	if !strings.Contains(card.OneLiner, "Shared toys") {
		t.Fatalf("one-liner %q missing entity name", card.OneLiner)
	}
	if strings.Contains(card.Title+card.OneLiner+strings.Join(card.Steps, ""), "{") {
		t.Fatalf("unfilled placeholder in rendered copy")
	}
	if card.Localized.Key == "" || card.Localized.Args["entity"] != "Shared toys" {
		t.Fatalf("localized content = %+v", card.Localized)
	}
	if card.Priority != TierCelebration {
		t.Fatalf("priority = %s", card.Priority)
	}
	if !card.ExpiresAt.Equal(testNow.Add(cfg.CardTTL)) {
		t.Fatalf("expiry = %v", card.ExpiresAt)
	}
}

func TestRenderSignalRejectsThinEvidence(t *testing.T) {
	cfg, cat := renderFixture(t)
	child := uuid.New()
	bt := mkType("Shared toys", types.BehaviorCategoryPositive)
	events := []*types.BehaviorEvent{
		mkEvent(child, bt.ID, 1, testNow.Add(-1*24*time.Hour)),
	}
	snap := mkSnapshot(child, testNow, events, map[uuid.UUID]*types.BehaviorType{bt.ID: bt}, nil)

	sig := routineSignal(snap, bt, events)
	if _, ok := renderSignal(logger.NewNop(), cfg, cat, snap, sig); ok {
		t.Fatalf("accepted a signal below min evidence")
	}
}

func TestRenderSignalRejectsForeignEvidence(t *testing.T) {
	cfg, cat := renderFixture(t)
	child := uuid.New()
	bt := mkType("Shared toys", types.BehaviorCategoryPositive)
	events := []*types.BehaviorEvent{
		mkEvent(child, bt.ID, 1, testNow.Add(-3*24*time.Hour)),
		mkEvent(child, bt.ID, 1, testNow.Add(-2*24*time.Hour)),
		mkEvent(child, bt.ID, 1, testNow.Add(-1*24*time.Hour)),
	}
	snap := mkSnapshot(child, testNow, events, map[uuid.UUID]*types.BehaviorType{bt.ID: bt}, nil)

	sig := routineSignal(snap, bt, events)
	sig.EvidenceIDs = append(sig.EvidenceIDs, uuid.New()) // dangling id
	if _, ok := renderSignal(logger.NewNop(), cfg, cat, snap, sig); ok {
		t.Fatalf("accepted dangling evidence")
	}

	// Evidence from another child is rejected even if the snapshot holds it.
	foreign := mkEvent(uuid.New(), bt.ID, 1, testNow.Add(-1*time.Hour))
	snap.eventsByID[foreign.ID] = foreign
	sig = routineSignal(snap, bt, events)
	sig.EvidenceIDs = append(sig.EvidenceIDs, foreign.ID)
	if _, ok := renderSignal(logger.NewNop(), cfg, cat, snap, sig); ok {
		t.Fatalf("accepted another child's evidence")
	}
}

func TestRenderSignalRejectsInactiveEntity(t *testing.T) {
	cfg, cat := renderFixture(t)
	child := uuid.New()
	bt := mkType("Shared toys", types.BehaviorCategoryPositive)
	bt.Active = false
	events := []*types.BehaviorEvent{
		mkEvent(child, bt.ID, 1, testNow.Add(-3*24*time.Hour)),
		mkEvent(child, bt.ID, 1, testNow.Add(-2*24*time.Hour)),
		mkEvent(child, bt.ID, 1, testNow.Add(-1*24*time.Hour)),
	}
	snap := mkSnapshot(child, testNow, events, map[uuid.UUID]*types.BehaviorType{bt.ID: bt}, nil)

	if _, ok := renderSignal(logger.NewNop(), cfg, cat, snap, routineSignal(snap, bt, events)); ok {
		t.Fatalf("accepted a signal for an archived behavior type")
	}
}

func TestRenderSignalChallengeTimeHint(t *testing.T) {
	cfg, cat := renderFixture(t)
	child := uuid.New()
	bt := mkType("Bedtime refusal", types.BehaviorCategoryNegative)
	events := []*types.BehaviorEvent{
		mkEvent(child, bt.ID, -2, testNow.Add(-3*24*time.Hour)),
		mkEvent(child, bt.ID, -2, testNow.Add(-1*24*time.Hour)),
	}
	snap := mkSnapshot(child, testNow, events, map[uuid.UUID]*types.BehaviorType{bt.ID: bt}, nil)
	evidence, latest := evidenceOf(events)
	entityID := bt.ID
	sig := Signal{
		Kind:        SignalRecurringChallenge,
		ChildID:     child,
		EntityID:    &entityID,
		WindowStart: windowStart(testNow, 14),
		WindowEnd:   testNow,
		Metrics: SignalMetrics{
			Count:      2,
			WindowDays: 14,
			EntityName: bt.Name,
			TimeBucket: bucketEvening,
		},
		EvidenceIDs:      evidence,
		LatestEvidenceAt: latest,
	}

	cand, ok := renderSignal(logger.NewNop(), cfg, cat, snap, sig)
	if !ok {
		t.Fatalf("signal rejected")
	}
	if !strings.Contains(cand.Card.OneLiner, "evening") {
		t.Fatalf("one-liner %q missing time hint", cand.Card.OneLiner)
	}

	// Without a dominant bucket the hint collapses cleanly.
	sig.Metrics.TimeBucket = ""
	cand, ok = renderSignal(logger.NewNop(), cfg, cat, snap, sig)
	if !ok {
		t.Fatalf("signal rejected without bucket")
	}
	if strings.Contains(cand.Card.OneLiner, "{time_hint}") || strings.Contains(cand.Card.OneLiner, "mostly") {
		t.Fatalf("one-liner %q leaked empty time hint", cand.Card.OneLiner)
	}
}
