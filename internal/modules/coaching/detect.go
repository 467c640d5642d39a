package coaching

import (
	"math"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/brightsteps/brightsteps-backend/internal/types"
)

// snapshot is the in-memory view the whole pipeline runs against. No I/O
// happens after it is built.
type snapshot struct {
	childID    uuid.UUID
	now        time.Time
	events     []*types.BehaviorEvent // ascending by occurred_at, inside the max window
	eventsByID map[uuid.UUID]*types.BehaviorEvent
	typesByID  map[uuid.UUID]*types.BehaviorType
	goal       *types.Goal
	goalEvents []*types.BehaviorEvent // since goal start, ascending
}

// detectAll runs every detector over the snapshot. Detectors are pure: they
// never mutate shared state and never consult cooldowns, so their output is
// always what is objectively true right now.
func detectAll(cfg Config, snap *snapshot) []Signal {
	var out []Signal
	out = append(out, detectRoutineForming(cfg, snap)...)
	out = append(out, detectPositivePattern(cfg, snap)...)
	out = append(out, detectGoalAtRisk(cfg, snap)...)
	out = append(out, detectGoalStalled(cfg, snap)...)
	out = append(out, detectRecurringChallenge(cfg, snap)...)
	return out
}

func windowStart(now time.Time, days int) time.Time {
	return now.Add(-time.Duration(days) * 24 * time.Hour)
}

func eventsSince(events []*types.BehaviorEvent, from time.Time) []*types.BehaviorEvent {
	var out []*types.BehaviorEvent
	for _, ev := range events {
		if !ev.OccurredAt.Before(from) {
			out = append(out, ev)
		}
	}
	return out
}

func groupByType(events []*types.BehaviorEvent) map[uuid.UUID][]*types.BehaviorEvent {
	out := make(map[uuid.UUID][]*types.BehaviorEvent)
	for _, ev := range events {
		out[ev.BehaviorTypeID] = append(out[ev.BehaviorTypeID], ev)
	}
	return out
}

// sortedTypeIDs gives a stable iteration order over a type-grouped map.
func sortedTypeIDs(groups map[uuid.UUID][]*types.BehaviorEvent) []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(groups))
	for id := range groups {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i].String() < ids[j].String() })
	return ids
}

func evidenceOf(events []*types.BehaviorEvent) ([]uuid.UUID, time.Time) {
	ids := make([]uuid.UUID, 0, len(events))
	var latest time.Time
	for _, ev := range events {
		ids = append(ids, ev.ID)
		if ev.OccurredAt.After(latest) {
			latest = ev.OccurredAt
		}
	}
	return ids, latest
}

// detectRoutineForming fires per behavior type: a positive behavior logged at
// least RoutineMinCount times inside the routine window.
func detectRoutineForming(cfg Config, snap *snapshot) []Signal {
	from := windowStart(snap.now, cfg.RoutineWindowDays)
	groups := groupByType(eventsSince(snap.events, from))

	var out []Signal
	for _, typeID := range sortedTypeIDs(groups) {
		events := groups[typeID]
		bt := snap.typesByID[typeID]
		if bt == nil || !bt.Active || !bt.IsPositive() {
			continue
		}
		if len(events) < cfg.RoutineMinCount {
			continue
		}
		evidence, latest := evidenceOf(events)
		entityID := typeID
		out = append(out, Signal{
			Kind:        SignalRoutineForming,
			ChildID:     snap.childID,
			EntityID:    &entityID,
			WindowStart: from,
			WindowEnd:   snap.now,
			Metrics: SignalMetrics{
				Count:      len(events),
				WindowDays: cfg.RoutineWindowDays,
				EntityName: bt.Name,
			},
			EvidenceIDs:      evidence,
			LatestEvidenceAt: latest,
		})
	}
	return out
}

// detectPositivePattern fires for the single most frequent positive behavior
// over the pattern window. A type that already qualifies as routine_forming
// is skipped so the same evidence never yields two overlapping cards.
func detectPositivePattern(cfg Config, snap *snapshot) []Signal {
	from := windowStart(snap.now, cfg.PatternWindowDays)
	groups := groupByType(eventsSince(snap.events, from))

	var topID uuid.UUID
	topCount := 0
	for _, typeID := range sortedTypeIDs(groups) {
		bt := snap.typesByID[typeID]
		if bt == nil || !bt.Active || !bt.IsPositive() {
			continue
		}
		if n := len(groups[typeID]); n > topCount {
			topID = typeID
			topCount = n
		}
	}
	if topCount < cfg.PatternMinCount {
		return nil
	}

	routineFrom := windowStart(snap.now, cfg.RoutineWindowDays)
	recent := 0
	for _, ev := range groups[topID] {
		if !ev.OccurredAt.Before(routineFrom) {
			recent++
		}
	}
	if recent >= cfg.RoutineMinCount {
		return nil
	}

	evidence, latest := evidenceOf(groups[topID])
	entityID := topID
	return []Signal{{
		Kind:        SignalPositivePattern,
		ChildID:     snap.childID,
		EntityID:    &entityID,
		WindowStart: from,
		WindowEnd:   snap.now,
		Metrics: SignalMetrics{
			Count:      topCount,
			WindowDays: cfg.PatternWindowDays,
			EntityName: snap.typesByID[topID].Name,
		},
		EvidenceIDs:      evidence,
		LatestEvidenceAt: latest,
	}}
}

// detectGoalAtRisk projects a completion date from the trailing earn rate and
// fires when the projection lands past the goal's deadline.
func detectGoalAtRisk(cfg Config, snap *snapshot) []Signal {
	goal := snap.goal
	if goal == nil || !goal.Active || !goal.DeadlineAt.After(snap.now) {
		return nil
	}

	earned := 0
	for _, ev := range snap.goalEvents {
		if ev.Points > 0 {
			earned += ev.Points
		}
	}
	remaining := goal.TargetPoints - earned
	if remaining <= 0 {
		return nil
	}

	from := windowStart(snap.now, cfg.GoalRiskWindowDays)
	var trailing []*types.BehaviorEvent
	trailingPoints := 0
	for _, ev := range eventsSince(snap.events, from) {
		if ev.Points > 0 {
			trailing = append(trailing, ev)
			trailingPoints += ev.Points
		}
	}
	if len(trailing) == 0 || trailingPoints <= 0 {
		// No earn rate to project from; goal_stalled covers the silence.
		return nil
	}

	rate := float64(trailingPoints) / float64(cfg.GoalRiskWindowDays)
	projectedDays := int(math.Ceil(float64(remaining) / rate))
	projectedAt := snap.now.Add(time.Duration(projectedDays) * 24 * time.Hour)
	if !projectedAt.After(goal.DeadlineAt) {
		return nil
	}

	evidence, latest := evidenceOf(trailing)
	entityID := goal.ID
	daysLeft := int(goal.DeadlineAt.Sub(snap.now).Hours() / 24)
	return []Signal{{
		Kind:        SignalGoalAtRisk,
		ChildID:     snap.childID,
		EntityID:    &entityID,
		WindowStart: from,
		WindowEnd:   snap.now,
		Metrics: SignalMetrics{
			Count:          len(trailing),
			WindowDays:     cfg.GoalRiskWindowDays,
			EntityName:     goal.Title,
			PointsPerDay:   math.Round(rate*10) / 10,
			EarnedPoints:   earned,
			TargetPoints:   goal.TargetPoints,
			DaysToDeadline: daysLeft,
			ProjectedDays:  projectedDays,
		},
		EvidenceIDs:      evidence,
		LatestEvidenceAt: latest,
	}}
}

// detectGoalStalled fires when a goal had earning momentum inside the window
// but nothing has been logged for the quiet period.
func detectGoalStalled(cfg Config, snap *snapshot) []Signal {
	goal := snap.goal
	if goal == nil || !goal.Active {
		return nil
	}

	from := windowStart(snap.now, cfg.StalledWindowDays)
	var earning []*types.BehaviorEvent
	for _, ev := range eventsSince(snap.events, from) {
		if ev.Points > 0 {
			earning = append(earning, ev)
		}
	}
	if len(earning) < cfg.StalledMinCount {
		return nil
	}

	quietFrom := windowStart(snap.now, cfg.StalledQuietDays)
	var lastEarn time.Time
	for _, ev := range earning {
		if ev.OccurredAt.After(lastEarn) {
			lastEarn = ev.OccurredAt
		}
	}
	if !lastEarn.Before(quietFrom) {
		return nil
	}

	evidence, latest := evidenceOf(earning)
	entityID := goal.ID
	quietDays := int(snap.now.Sub(lastEarn).Hours() / 24)
	return []Signal{{
		Kind:        SignalGoalStalled,
		ChildID:     snap.childID,
		EntityID:    &entityID,
		WindowStart: from,
		WindowEnd:   snap.now,
		Metrics: SignalMetrics{
			Count:      len(earning),
			WindowDays: cfg.StalledWindowDays,
			EntityName: goal.Title,
			QuietDays:  quietDays,
		},
		EvidenceIDs:      evidence,
		LatestEvidenceAt: latest,
	}}
}

// Time-of-day buckets for challenge clustering.
const (
	bucketMorning   = "morning"   // 05:00–11:59
	bucketAfternoon = "afternoon" // 12:00–16:59
	bucketEvening   = "evening"   // 17:00–20:59
	bucketNight     = "night"     // 21:00–04:59
)

func timeBucket(t time.Time) string {
	switch h := t.Hour(); {
	case h >= 5 && h < 12:
		return bucketMorning
	case h >= 12 && h < 17:
		return bucketAfternoon
	case h >= 17 && h < 21:
		return bucketEvening
	default:
		return bucketNight
	}
}

// detectRecurringChallenge fires for the most frequent negative behavior in
// the challenge window. The dominant time-of-day bucket is only reported when
// it beats the runner-up by more than one occurrence; otherwise the signal
// carries no time hint rather than a shaky one.
func detectRecurringChallenge(cfg Config, snap *snapshot) []Signal {
	from := windowStart(snap.now, cfg.ChallengeWindowDays)
	groups := groupByType(eventsSince(snap.events, from))

	var topID uuid.UUID
	topCount := 0
	for _, typeID := range sortedTypeIDs(groups) {
		bt := snap.typesByID[typeID]
		if bt == nil || !bt.Active || bt.Category != types.BehaviorCategoryNegative {
			continue
		}
		if n := len(groups[typeID]); n > topCount {
			topID = typeID
			topCount = n
		}
	}
	if topCount < cfg.ChallengeMinCount {
		return nil
	}

	events := groups[topID]
	buckets := map[string]int{}
	for _, ev := range events {
		buckets[timeBucket(ev.OccurredAt)]++
	}
	dominant, runnerUp := "", 0
	best := 0
	for _, name := range []string{bucketMorning, bucketAfternoon, bucketEvening, bucketNight} {
		n := buckets[name]
		if n > best {
			runnerUp = best
			best = n
			dominant = name
		} else if n > runnerUp {
			runnerUp = n
		}
	}
	if best-runnerUp <= 1 {
		dominant = "" // no clear pattern
	}

	evidence, latest := evidenceOf(events)
	entityID := topID
	return []Signal{{
		Kind:        SignalRecurringChallenge,
		ChildID:     snap.childID,
		EntityID:    &entityID,
		WindowStart: from,
		WindowEnd:   snap.now,
		Metrics: SignalMetrics{
			Count:      topCount,
			WindowDays: cfg.ChallengeWindowDays,
			EntityName: snap.typesByID[topID].Name,
			TimeBucket: dominant,
		},
		EvidenceIDs:      evidence,
		LatestEvidenceAt: latest,
	}}
}
