package coaching

import (
	"strconv"

	"github.com/brightsteps/brightsteps-backend/internal/platform/logger"
	"github.com/brightsteps/brightsteps-backend/internal/types"
)

// renderSignal turns one signal into a candidate card, or rejects it.
// Validation is re-checked here even though detectors already enforce it:
// a card must never ship with dangling or out-of-window evidence.
func renderSignal(log *logger.Logger, cfg Config, catalog *TemplateCatalog, snap *snapshot, sig Signal) (*Candidate, bool) {
	tmpl := catalog.ForKind(sig.Kind)
	if tmpl == nil {
		log.Warn("no template for signal kind", "kind", string(sig.Kind))
		return nil, false
	}
	if len(sig.EvidenceIDs) < tmpl.MinEvidence {
		return nil, false
	}
	if !validEvidence(log, snap, sig) {
		return nil, false
	}
	if !validEntity(snap, sig) {
		return nil, false
	}

	args := copyArgs(sig)
	entityKey := types.CooldownEntityNone
	if sig.EntityID != nil {
		entityKey = sig.EntityID.String()
	}

	card := CoachCard{
		ID:                 cardID(tmpl.ID, sig.ChildID, entityKey, sig.WindowEnd),
		ChildID:            sig.ChildID,
		Priority:           tmpl.Tier,
		Title:              fillPlaceholders(tmpl.Title, args),
		OneLiner:           fillPlaceholders(tmpl.OneLiner, args),
		Steps:              fillSteps(tmpl.Steps, args),
		EvidenceEventIDs:   sig.EvidenceIDs,
		CTA:                tmpl.CTA,
		ExpiresAt:          sig.WindowEnd.Add(cfg.CardTTL),
		TemplateID:         tmpl.ID,
		EvidenceWindowDays: sig.Metrics.WindowDays,
		PrimaryEntityID:    sig.EntityID,
		Localized:          LocalizedContent{Key: tmpl.CopyKey, Args: args},
	}
	return &Candidate{Card: card, Template: tmpl, LatestEvidenceAt: sig.LatestEvidenceAt}, true
}

// validEvidence checks that every evidence id exists in the snapshot, belongs
// to the claimed child and falls inside the claimed window.
func validEvidence(log *logger.Logger, snap *snapshot, sig Signal) bool {
	if len(sig.EvidenceIDs) == 0 {
		return false
	}
	for _, id := range sig.EvidenceIDs {
		ev := snap.eventsByID[id]
		if ev == nil {
			log.Warn("signal dropped: unknown evidence event", "kind", string(sig.Kind))
			return false
		}
		if ev.ChildID != sig.ChildID {
			log.Warn("signal dropped: evidence belongs to another child", "kind", string(sig.Kind))
			return false
		}
		if ev.OccurredAt.Before(sig.WindowStart) || ev.OccurredAt.After(sig.WindowEnd) {
			log.Warn("signal dropped: evidence outside window", "kind", string(sig.Kind))
			return false
		}
	}
	return true
}

// validEntity checks the subject entity still exists and is active.
func validEntity(snap *snapshot, sig Signal) bool {
	if sig.EntityID == nil {
		return true
	}
	switch sig.Kind {
	case SignalGoalAtRisk, SignalGoalStalled:
		return snap.goal != nil && snap.goal.Active && snap.goal.ID == *sig.EntityID
	default:
		bt := snap.typesByID[*sig.EntityID]
		return bt != nil && bt.Active
	}
}

func copyArgs(sig Signal) map[string]string {
	m := sig.Metrics
	args := map[string]string{
		"count":       strconv.Itoa(m.Count),
		"window_days": strconv.Itoa(m.WindowDays),
	}
	if m.EntityName != "" {
		args["entity"] = m.EntityName
		args["goal"] = m.EntityName
	}
	if m.PointsPerDay > 0 {
		args["points_per_day"] = strconv.FormatFloat(m.PointsPerDay, 'f', 1, 64)
	}
	if m.TargetPoints > 0 {
		args["target"] = strconv.Itoa(m.TargetPoints)
		args["earned"] = strconv.Itoa(m.EarnedPoints)
	}
	if m.ProjectedDays > 0 {
		args["projected_days"] = strconv.Itoa(m.ProjectedDays)
	}
	if m.DaysToDeadline > 0 {
		args["days_left"] = strconv.Itoa(m.DaysToDeadline) + " days"
	}
	if m.QuietDays > 0 {
		args["quiet_days"] = strconv.Itoa(m.QuietDays)
	}
	if m.TimeBucket != "" {
		args["time_hint"] = ", mostly in the " + m.TimeBucket
		args["time_bucket"] = m.TimeBucket
	} else if sig.Kind == SignalRecurringChallenge {
		args["time_hint"] = ""
	}
	return args
}

func fillSteps(steps []string, args map[string]string) []string {
	if len(steps) == 0 {
		return nil
	}
	out := make([]string, len(steps))
	for i, s := range steps {
		out[i] = fillPlaceholders(s, args)
	}
	return out
}
