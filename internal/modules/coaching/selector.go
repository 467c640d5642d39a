package coaching

import "sort"

// selectCards applies the safety rails: at most RiskCap risk cards and
// ImprovementCap improvement cards per cycle, remaining slots filled with
// celebrations up to MaxCards. A card excluded by a cap is simply omitted;
// the next cycle recomputes from scratch.
//
// Within a tier: entity-scoped cards outrank generic ones, then most recent
// evidence first, then template id lexical order so the result is fully
// deterministic.
func selectCards(cands []Candidate, cfg Config) []CoachCard {
	byTier := map[PriorityTier][]Candidate{}
	for _, cand := range cands {
		byTier[cand.Card.Priority] = append(byTier[cand.Card.Priority], cand)
	}
	for tier := range byTier {
		sortTier(byTier[tier])
	}

	out := make([]CoachCard, 0, cfg.MaxCards)
	out = appendCapped(out, byTier[TierRisk], cfg.RiskCap, cfg.MaxCards)
	out = appendCapped(out, byTier[TierImprovement], cfg.ImprovementCap, cfg.MaxCards)
	out = appendCapped(out, byTier[TierCelebration], cfg.MaxCards, cfg.MaxCards)
	return out
}

func sortTier(cands []Candidate) {
	sort.SliceStable(cands, func(i, j int) bool {
		a, b := cands[i], cands[j]
		aScoped := a.Card.PrimaryEntityID != nil
		bScoped := b.Card.PrimaryEntityID != nil
		if aScoped != bScoped {
			return aScoped
		}
		if !a.LatestEvidenceAt.Equal(b.LatestEvidenceAt) {
			return a.LatestEvidenceAt.After(b.LatestEvidenceAt)
		}
		return a.Card.TemplateID < b.Card.TemplateID
	})
}

func appendCapped(out []CoachCard, cands []Candidate, tierCap, total int) []CoachCard {
	taken := 0
	for _, cand := range cands {
		if taken >= tierCap || len(out) >= total {
			break
		}
		out = append(out, cand.Card)
		taken++
	}
	return out
}
