package coaching

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func cand(tier PriorityTier, templateID string, entityID *uuid.UUID, latest time.Time) Candidate {
	return Candidate{
		Card: CoachCard{
			ID:              cardID(templateID, uuid.Nil, "x", latest),
			Priority:        tier,
			TemplateID:      templateID,
			PrimaryEntityID: entityID,
		},
		LatestEvidenceAt: latest,
	}
}

func TestSelectCardsCaps(t *testing.T) {
	cfg := Config{}.normalized()
	id := uuid.New()
	var cands []Candidate
	for i := 0; i < 3; i++ {
		cands = append(cands, cand(TierRisk, "risk_"+string(rune('a'+i)), &id, testNow))
	}
	for i := 0; i < 4; i++ {
		cands = append(cands, cand(TierImprovement, "improve_"+string(rune('a'+i)), &id, testNow))
	}
	for i := 0; i < 6; i++ {
		cands = append(cands, cand(TierCelebration, "celebrate_"+string(rune('a'+i)), &id, testNow))
	}

	out := selectCards(cands, cfg)
	if len(out) != 5 {
		t.Fatalf("selected %d cards, want 5", len(out))
	}
	counts := map[PriorityTier]int{}
	for _, card := range out {
		counts[card.Priority]++
	}
	if counts[TierRisk] != 1 || counts[TierImprovement] != 2 || counts[TierCelebration] != 2 {
		t.Fatalf("tier counts = %v", counts)
	}
	// Risk first, then improvement, then celebration.
	if out[0].Priority != TierRisk || out[1].Priority != TierImprovement {
		t.Fatalf("tier order = %v", []PriorityTier{out[0].Priority, out[1].Priority})
	}
}

func TestSelectCardsOrderingWithinTier(t *testing.T) {
	cfg := Config{}.normalized()
	id := uuid.New()
	older := testNow.Add(-2 * time.Hour)
	cands := []Candidate{
		cand(TierCelebration, "b_generic", nil, testNow),
		cand(TierCelebration, "c_scoped_old", &id, older),
		cand(TierCelebration, "a_scoped_new", &id, testNow),
	}
	out := selectCards(cands, cfg)
	if len(out) != 3 {
		t.Fatalf("selected %d, want 3", len(out))
	}
	got := []string{out[0].TemplateID, out[1].TemplateID, out[2].TemplateID}
	want := []string{"a_scoped_new", "c_scoped_old", "b_generic"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("order = %v, want %v", got, want)
		}
	}
}

func TestSelectCardsTieBreakByTemplateID(t *testing.T) {
	cfg := Config{}.normalized()
	id := uuid.New()
	cands := []Candidate{
		cand(TierCelebration, "zeta", &id, testNow),
		cand(TierCelebration, "alpha", &id, testNow),
	}
	out := selectCards(cands, cfg)
	if out[0].TemplateID != "alpha" || out[1].TemplateID != "zeta" {
		t.Fatalf("tie-break order = %s, %s", out[0].TemplateID, out[1].TemplateID)
	}
}
