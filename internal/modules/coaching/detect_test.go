package coaching

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/brightsteps/brightsteps-backend/internal/types"
)

func mkSnapshot(childID uuid.UUID, now time.Time, events []*types.BehaviorEvent, btypes map[uuid.UUID]*types.BehaviorType, goal *types.Goal) *snapshot {
	snap := &snapshot{
		childID:    childID,
		now:        now,
		events:     events,
		eventsByID: map[uuid.UUID]*types.BehaviorEvent{},
		typesByID:  btypes,
		goal:       goal,
	}
	for _, ev := range events {
		snap.eventsByID[ev.ID] = ev
	}
	if goal != nil {
		snap.goalEvents = eventsSince(events, goal.StartedAt)
	}
	return snap
}

func TestDetectRoutineFormingThreshold(t *testing.T) {
	cfg := Config{}.normalized()
	child := uuid.New()
	bt := mkType("Brushed teeth", types.BehaviorCategoryRoutinePositive)
	btypes := map[uuid.UUID]*types.BehaviorType{bt.ID: bt}

	two := []*types.BehaviorEvent{
		mkEvent(child, bt.ID, 1, testNow.Add(-3*24*time.Hour)),
		mkEvent(child, bt.ID, 1, testNow.Add(-1*24*time.Hour)),
	}
	if got := detectRoutineForming(cfg, mkSnapshot(child, testNow, two, btypes, nil)); len(got) != 0 {
		t.Fatalf("2 occurrences fired %d signals, want 0", len(got))
	}

	three := append(two, mkEvent(child, bt.ID, 1, testNow.Add(-5*24*time.Hour)))
	got := detectRoutineForming(cfg, mkSnapshot(child, testNow, three, btypes, nil))
	if len(got) != 1 {
		t.Fatalf("3 occurrences fired %d signals, want 1", len(got))
	}
	sig := got[0]
	if sig.Kind != SignalRoutineForming {
		t.Fatalf("kind = %s", sig.Kind)
	}
	if sig.Metrics.Count != 3 || sig.Metrics.EntityName != "Brushed teeth" {
		t.Fatalf("metrics = %+v", sig.Metrics)
	}
	if len(sig.EvidenceIDs) != 3 {
		t.Fatalf("evidence = %d, want 3", len(sig.EvidenceIDs))
	}
}

func TestDetectRoutineFormingIgnoresOldAndNegative(t *testing.T) {
	cfg := Config{}.normalized()
	child := uuid.New()
	pos := mkType("Shared toys", types.BehaviorCategoryPositive)
	neg := mkType("Hitting", types.BehaviorCategoryNegative)
	btypes := map[uuid.UUID]*types.BehaviorType{pos.ID: pos, neg.ID: neg}

	events := []*types.BehaviorEvent{
		// Third occurrence outside the 7-day window.
		mkEvent(child, pos.ID, 1, testNow.Add(-9*24*time.Hour)),
		mkEvent(child, pos.ID, 1, testNow.Add(-3*24*time.Hour)),
		mkEvent(child, pos.ID, 1, testNow.Add(-1*24*time.Hour)),
		// Negative behaviors never form routines.
		mkEvent(child, neg.ID, -1, testNow.Add(-3*24*time.Hour)),
		mkEvent(child, neg.ID, -1, testNow.Add(-2*24*time.Hour)),
		mkEvent(child, neg.ID, -1, testNow.Add(-1*24*time.Hour)),
	}
	if got := detectRoutineForming(cfg, mkSnapshot(child, testNow, events, btypes, nil)); len(got) != 0 {
		t.Fatalf("fired %d signals, want 0", len(got))
	}
}

func TestDetectPositivePatternSkipsActiveRoutine(t *testing.T) {
	cfg := Config{}.normalized()
	child := uuid.New()
	bt := mkType("Shared toys", types.BehaviorCategoryPositive)
	btypes := map[uuid.UUID]*types.BehaviorType{bt.ID: bt}

	// All three occurrences inside the routine window: routine_forming owns it.
	dense := []*types.BehaviorEvent{
		mkEvent(child, bt.ID, 1, testNow.Add(-5*24*time.Hour)),
		mkEvent(child, bt.ID, 1, testNow.Add(-3*24*time.Hour)),
		mkEvent(child, bt.ID, 1, testNow.Add(-1*24*time.Hour)),
	}
	if got := detectPositivePattern(cfg, mkSnapshot(child, testNow, dense, btypes, nil)); len(got) != 0 {
		t.Fatalf("dense cluster fired %d pattern signals, want 0", len(got))
	}

	// Spread over two weeks: no routine, but a sustained pattern.
	spread := []*types.BehaviorEvent{
		mkEvent(child, bt.ID, 1, testNow.Add(-12*24*time.Hour)),
		mkEvent(child, bt.ID, 1, testNow.Add(-8*24*time.Hour)),
		mkEvent(child, bt.ID, 1, testNow.Add(-2*24*time.Hour)),
	}
	got := detectPositivePattern(cfg, mkSnapshot(child, testNow, spread, btypes, nil))
	if len(got) != 1 {
		t.Fatalf("spread cluster fired %d signals, want 1", len(got))
	}
	if got[0].Kind != SignalPositivePattern || got[0].Metrics.Count != 3 {
		t.Fatalf("signal = %+v", got[0])
	}
}

func TestDetectGoalAtRisk(t *testing.T) {
	cfg := Config{}.normalized()
	child := uuid.New()
	bt := mkType("Did chores", types.BehaviorCategoryPositive)
	btypes := map[uuid.UUID]*types.BehaviorType{bt.ID: bt}
	goal := &types.Goal{
		ID:           uuid.New(),
		ChildID:      child,
		Title:        "New bike",
		TargetPoints: 100,
		StartedAt:    testNow.Add(-14 * 24 * time.Hour),
		DeadlineAt:   testNow.Add(5 * 24 * time.Hour),
		Active:       true,
	}

	// 7 points in the trailing week: 1/day against 93 remaining, far past
	// the 5-day deadline.
	events := []*types.BehaviorEvent{
		mkEvent(child, bt.ID, 4, testNow.Add(-5*24*time.Hour)),
		mkEvent(child, bt.ID, 3, testNow.Add(-2*24*time.Hour)),
	}
	got := detectGoalAtRisk(cfg, mkSnapshot(child, testNow, events, btypes, goal))
	if len(got) != 1 {
		t.Fatalf("fired %d signals, want 1", len(got))
	}
	m := got[0].Metrics
	if m.EarnedPoints != 7 || m.TargetPoints != 100 {
		t.Fatalf("metrics = %+v", m)
	}
	if m.ProjectedDays <= m.DaysToDeadline {
		t.Fatalf("projection %dd does not exceed deadline %dd", m.ProjectedDays, m.DaysToDeadline)
	}
	if got[0].EntityID == nil || *got[0].EntityID != goal.ID {
		t.Fatalf("entity = %v, want goal id", got[0].EntityID)
	}
}

func TestDetectGoalAtRiskNeedsEarnRate(t *testing.T) {
	cfg := Config{}.normalized()
	child := uuid.New()
	goal := &types.Goal{
		ID:           uuid.New(),
		ChildID:      child,
		Title:        "New bike",
		TargetPoints: 100,
		StartedAt:    testNow.Add(-14 * 24 * time.Hour),
		DeadlineAt:   testNow.Add(5 * 24 * time.Hour),
		Active:       true,
	}
	// No events at all: no rate, no projection, no signal.
	if got := detectGoalAtRisk(cfg, mkSnapshot(child, testNow, nil, nil, goal)); len(got) != 0 {
		t.Fatalf("fired %d signals with no earn rate, want 0", len(got))
	}
}

func TestDetectGoalAtRiskOnTrack(t *testing.T) {
	cfg := Config{}.normalized()
	child := uuid.New()
	bt := mkType("Did chores", types.BehaviorCategoryPositive)
	btypes := map[uuid.UUID]*types.BehaviorType{bt.ID: bt}
	goal := &types.Goal{
		ID:           uuid.New(),
		ChildID:      child,
		Title:        "New bike",
		TargetPoints: 20,
		StartedAt:    testNow.Add(-7 * 24 * time.Hour),
		DeadlineAt:   testNow.Add(10 * 24 * time.Hour),
		Active:       true,
	}
	// 14 points/week trailing, 6 remaining: comfortably on track.
	events := []*types.BehaviorEvent{
		mkEvent(child, bt.ID, 7, testNow.Add(-5*24*time.Hour)),
		mkEvent(child, bt.ID, 7, testNow.Add(-2*24*time.Hour)),
	}
	if got := detectGoalAtRisk(cfg, mkSnapshot(child, testNow, events, btypes, goal)); len(got) != 0 {
		t.Fatalf("fired %d signals for an on-track goal, want 0", len(got))
	}
}

func TestDetectGoalStalled(t *testing.T) {
	cfg := Config{}.normalized()
	child := uuid.New()
	bt := mkType("Did chores", types.BehaviorCategoryPositive)
	btypes := map[uuid.UUID]*types.BehaviorType{bt.ID: bt}
	goal := &types.Goal{
		ID:           uuid.New(),
		ChildID:      child,
		Title:        "New bike",
		TargetPoints: 100,
		StartedAt:    testNow.Add(-20 * 24 * time.Hour),
		DeadlineAt:   testNow.Add(30 * 24 * time.Hour),
		Active:       true,
	}

	// Two earns 10 and 8 days ago, then 8 quiet days.
	stalled := []*types.BehaviorEvent{
		mkEvent(child, bt.ID, 5, testNow.Add(-10*24*time.Hour)),
		mkEvent(child, bt.ID, 5, testNow.Add(-8*24*time.Hour)),
	}
	got := detectGoalStalled(cfg, mkSnapshot(child, testNow, stalled, btypes, goal))
	if len(got) != 1 {
		t.Fatalf("fired %d signals, want 1", len(got))
	}
	if got[0].Metrics.QuietDays != 8 {
		t.Fatalf("quiet days = %d, want 8", got[0].Metrics.QuietDays)
	}

	// A recent earn resets the quiet clock.
	active := append(stalled, mkEvent(child, bt.ID, 5, testNow.Add(-2*24*time.Hour)))
	if got := detectGoalStalled(cfg, mkSnapshot(child, testNow, active, btypes, goal)); len(got) != 0 {
		t.Fatalf("fired %d signals with a recent earn, want 0", len(got))
	}
}

func TestDetectRecurringChallengeTimeBucket(t *testing.T) {
	cfg := Config{}.normalized()
	child := uuid.New()
	bt := mkType("Bedtime refusal", types.BehaviorCategoryNegative)
	btypes := map[uuid.UUID]*types.BehaviorType{bt.ID: bt}

	evening := func(daysAgo int) time.Time {
		return time.Date(2025, 6, 10-daysAgo, 19, 30, 0, 0, time.UTC)
	}
	events := []*types.BehaviorEvent{
		mkEvent(child, bt.ID, -2, evening(6)),
		mkEvent(child, bt.ID, -2, evening(4)),
		mkEvent(child, bt.ID, -2, evening(2)),
	}
	got := detectRecurringChallenge(cfg, mkSnapshot(child, testNow, events, btypes, nil))
	if len(got) != 1 {
		t.Fatalf("fired %d signals, want 1", len(got))
	}
	if got[0].Metrics.TimeBucket != bucketEvening {
		t.Fatalf("bucket = %q, want evening", got[0].Metrics.TimeBucket)
	}
}

func TestDetectRecurringChallengeNoDominantBucket(t *testing.T) {
	cfg := Config{}.normalized()
	child := uuid.New()
	bt := mkType("Bedtime refusal", types.BehaviorCategoryNegative)
	btypes := map[uuid.UUID]*types.BehaviorType{bt.ID: bt}

	// One morning, one evening: no bucket beats the other by more than one.
	events := []*types.BehaviorEvent{
		mkEvent(child, bt.ID, -2, time.Date(2025, 6, 8, 8, 0, 0, 0, time.UTC)),
		mkEvent(child, bt.ID, -2, time.Date(2025, 6, 9, 19, 0, 0, 0, time.UTC)),
	}
	got := detectRecurringChallenge(cfg, mkSnapshot(child, testNow, events, btypes, nil))
	if len(got) != 1 {
		t.Fatalf("fired %d signals, want 1", len(got))
	}
	if got[0].Metrics.TimeBucket != "" {
		t.Fatalf("bucket = %q, want empty", got[0].Metrics.TimeBucket)
	}
}

func TestTimeBucketBoundaries(t *testing.T) {
	cases := []struct {
		hour int
		want string
	}{
		{4, bucketNight},
		{5, bucketMorning},
		{11, bucketMorning},
		{12, bucketAfternoon},
		{16, bucketAfternoon},
		{17, bucketEvening},
		{20, bucketEvening},
		{21, bucketNight},
		{0, bucketNight},
	}
	for _, tc := range cases {
		got := timeBucket(time.Date(2025, 6, 10, tc.hour, 30, 0, 0, time.UTC))
		if got != tc.want {
			t.Fatalf("hour %d: bucket = %q, want %q", tc.hour, got, tc.want)
		}
	}
}
