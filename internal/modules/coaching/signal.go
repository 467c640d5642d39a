package coaching

import (
	"time"

	"github.com/google/uuid"
)

// SignalKind is a closed enumeration. Each kind maps to exactly one card
// template in the catalog.
type SignalKind string

const (
	SignalRoutineForming     SignalKind = "routine_forming"
	SignalPositivePattern    SignalKind = "positive_pattern"
	SignalGoalAtRisk         SignalKind = "goal_at_risk"
	SignalGoalStalled        SignalKind = "goal_stalled"
	SignalRecurringChallenge SignalKind = "recurring_challenge"
)

// SignalMetrics holds the concrete numbers a detector computed. Zero values
// mean "not applicable for this kind".
type SignalMetrics struct {
	Count          int
	WindowDays     int
	EntityName     string
	PointsPerDay   float64
	EarnedPoints   int
	TargetPoints   int
	DaysToDeadline int
	ProjectedDays  int
	QuietDays      int
	TimeBucket     string
}

// Signal is a detected candidate pattern, created fresh on every engine
// invocation and never persisted. Evidence ids justify the claim; a signal
// without enough evidence never becomes a card.
type Signal struct {
	Kind             SignalKind
	ChildID          uuid.UUID
	EntityID         *uuid.UUID
	WindowStart      time.Time
	WindowEnd        time.Time
	Metrics          SignalMetrics
	EvidenceIDs      []uuid.UUID
	LatestEvidenceAt time.Time
}
