package filtering

import (
	"slices"
	"sort"

	"github.com/ob1-scout/ob1-scout/internal/dna"
	"github.com/ob1-scout/ob1-scout/internal/nlp"
)

const (
	DefaultTalentLimit = 5

	positionBonus       = 10
	characteristicBonus = 5
	ageBonus            = 5
	// A characteristic earns its bonus only on players already fitting this well.
	characteristicMinFit = 80
)

// SearchTalents ranks fit matches against a field-language talent query.
// Players outside the requested positions or age window are dropped, the rest
// are ordered by fit score plus bonuses and deduplicated per player. A
// non-positive limit means DefaultTalentLimit.
func SearchTalents(matches []dna.Match, q nlp.TalentQuery, limit int) []dna.Match {
	if limit <= 0 {
		limit = DefaultTalentLimit
	}

	type ranked struct {
		match dna.Match
		rank  int
	}

	candidates := make([]ranked, 0, len(matches))
	for _, m := range matches {
		if m.Opportunity == nil || m.Result.Blocked {
			continue
		}

		rank := m.Result.Score

		if len(q.Positions) > 0 {
			if !slices.Contains(q.Positions, m.Opportunity.Position()) {
				continue
			}
			rank += positionBonus
		}

		if m.Result.Score >= characteristicMinFit {
			rank += characteristicBonus * len(q.Characteristics)
		}

		if q.HasAgeRange() {
			if age, ok := m.Opportunity.AgeYears(); ok {
				if q.AgeMax > 0 && age > q.AgeMax {
					continue
				}
				if q.AgeMin > 0 && age < q.AgeMin {
					continue
				}
				rank += ageBonus
			}
		}

		candidates = append(candidates, ranked{match: m, rank: rank})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].rank > candidates[j].rank
	})

	seen := make(map[string]struct{}, len(candidates))
	out := make([]dna.Match, 0, min(limit, len(candidates)))
	for _, c := range candidates {
		if _, ok := seen[c.match.Opportunity.ID]; ok {
			continue
		}
		seen[c.match.Opportunity.ID] = struct{}{}
		out = append(out, c.match)
		if len(out) == limit {
			break
		}
	}
	return out
}
