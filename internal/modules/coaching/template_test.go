package coaching

import "testing"

func TestLoadTemplatesCoversEveryKind(t *testing.T) {
	cat, err := LoadTemplates()
	if err != nil {
		t.Fatalf("LoadTemplates: %v", err)
	}
	kinds := []SignalKind{
		SignalRoutineForming,
		SignalPositivePattern,
		SignalGoalAtRisk,
		SignalGoalStalled,
		SignalRecurringChallenge,
	}
	for _, kind := range kinds {
		tmpl := cat.ForKind(kind)
		if tmpl == nil {
			t.Fatalf("no template for kind %s", kind)
		}
		if cat.ByID(tmpl.ID) != tmpl {
			t.Fatalf("ByID(%s) does not round-trip", tmpl.ID)
		}
		if tmpl.Cooldown() <= 0 {
			t.Fatalf("template %s has no cooldown", tmpl.ID)
		}
	}
	risk := cat.ForKind(SignalGoalAtRisk)
	if risk.Tier != TierRisk || !risk.UrgencyOverride {
		t.Fatalf("goal_at_risk = tier %s, urgency %v", risk.Tier, risk.UrgencyOverride)
	}
}

func TestParseTemplatesRejectsBadCatalog(t *testing.T) {
	cases := map[string]string{
		"unknown tier": `
version: 1
templates:
  - id: a
    kind: routine_forming
    tier: panic
    cooldown_hours: 1
    min_evidence: 1
`,
		"missing cooldown": `
version: 1
templates:
  - id: a
    kind: routine_forming
    tier: celebration
    min_evidence: 1
`,
		"duplicate kind": `
version: 1
templates:
  - id: a
    kind: routine_forming
    tier: celebration
    cooldown_hours: 1
    min_evidence: 1
  - id: b
    kind: routine_forming
    tier: celebration
    cooldown_hours: 1
    min_evidence: 1
`,
		"empty": `version: 1`,
	}
	for name, raw := range cases {
		if _, err := parseTemplates([]byte(raw)); err == nil {
			t.Fatalf("%s: expected parse error", name)
		}
	}
}

func TestFillPlaceholders(t *testing.T) {
	args := map[string]string{"entity": "Shared toys", "count": "3"}
	got := fillPlaceholders("{entity} logged {count} times, {unknown} left", args)
	want := "Shared toys logged 3 times, {unknown} left"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
	if fillPlaceholders("", args) != "" {
		t.Fatalf("empty input changed")
	}
}
