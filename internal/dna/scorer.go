package dna

import (
	"fmt"
	"math"
	"slices"

	"github.com/ob1-scout/ob1-scout/internal/feed"
)

const (
	ReasonUnavailable  = "player not available"
	ReasonNoRole       = "no compatible role"
	exactRoleFit       = 100
	coveredRoleFit     = 40
	reverseRoleFit     = 35
	unlistedRoleFit    = 50
	highPriorityBonus  = 5
	highPriorityAbove  = 70
	unknownAgeFit      = 50
	ageStepPenalty     = 25
	neutralStyleFit    = 50
	styleContribution  = 40
	otherAvailability  = 30
	unknownBudgetFit   = 50
	noBudgetFit        = 30
	unknownTierLevel   = 50
	defaultTierCapName = "default"
)

// Score computes how well a player fits a club. It is pure: the same inputs
// always give the same result. A blocked result has score 0 and an all-zero
// breakdown. Errors are returned only for nil or invalid arguments.
func Score(p *feed.Opportunity, club *ClubProfile) (FitResult, error) {
	if p == nil {
		return FitResult{}, ErrNilPlayer
	}
	if club == nil {
		return FitResult{}, ErrNilClub
	}
	if err := club.Validate(); err != nil {
		return FitResult{}, err
	}

	availability := p.Availability()
	if availability == feed.AvailabilityUnavailable {
		return blocked(ReasonUnavailable), nil
	}

	value := p.ValueThousands()
	if limit := valueCap(club.Category); value > 0 && value > limit {
		return blocked(fmt.Sprintf("market value %dk exceeds the %s cap of %dk", value, capName(club.Category), limit)), nil
	}

	role, need := roleFit(p.Position(), club.Needs)
	if role == 0 {
		return blocked(ReasonNoRole), nil
	}

	b := Breakdown{
		Role:         role,
		Age:          ageFit(p, need),
		Style:        styleFit(club.PlayingStyles),
		Availability: availabilityScore(availability),
		Budget:       budgetFit(p, club.MaxLoanCost),
		Level:        levelFit(value, club.Category),
	}

	return FitResult{
		Score:       aggregate(b, weights),
		Breakdown:   b,
		MatchedNeed: need,
	}, nil
}

func blocked(reason string) FitResult {
	return FitResult{Blocked: true, Reason: reason}
}

func valueCap(t Tier) int {
	if limit, ok := valueCaps[t]; ok {
		return limit
	}
	return defaultValueCap
}

func capName(t Tier) string {
	if _, ok := valueCaps[t]; ok {
		return string(t)
	}
	return defaultTierCapName
}

func roleFit(r feed.Role, needs []RoleNeed) (int, *RoleNeed) {
	if len(needs) == 0 {
		if s, ok := defaultRoleFit[r]; ok {
			return s, nil
		}
		return unlistedRoleFit, nil
	}

	best := 0
	var matched *RoleNeed
	for _, need := range needs {
		s := 0
		switch {
		case need.Position == r:
			s = exactRoleFit
		case slices.Contains(compatibleRoles[r], need.Position):
			s = coveredRoleFit
		case slices.Contains(compatibleRoles[need.Position], r):
			s = reverseRoleFit
		}

		if need.Priority == PriorityHigh && s >= highPriorityAbove {
			s = min(100, s+highPriorityBonus)
		}

		// ties keep the earlier need
		if s > best {
			best = s
			n := need
			matched = &n
		}
	}
	return best, matched
}

func ageFit(p *feed.Opportunity, need *RoleNeed) int {
	age, ok := p.AgeYears()
	if !ok {
		return unknownAgeFit
	}

	if need != nil && need.HasAgeRange() {
		upper := need.AgeMax
		if upper == 0 {
			upper = math.MaxInt
		}
		switch {
		case age < need.AgeMin:
			return clamp(100 - (need.AgeMin-age)*ageStepPenalty)
		case age > upper:
			return clamp(100 - (age-upper)*ageStepPenalty)
		default:
			return 100
		}
	}

	switch {
	case age >= 20 && age <= 25:
		return 100
	case age < 20:
		return 80
	case age <= 28:
		return 60
	default:
		return clamp(100 - abs(age-23)*15)
	}
}

// styleFit is a proxy: without per-player skill data every mapped style counts the same.
func styleFit(styles []string) int {
	if len(styles) == 0 {
		return neutralStyleFit
	}

	total, counted := 0, 0
	for _, style := range styles {
		if len(styleSkills[style]) == 0 {
			continue
		}
		total += styleContribution
		counted++
	}

	if counted == 0 {
		return neutralStyleFit
	}
	return int(math.Round(float64(total) / float64(counted)))
}

func availabilityScore(a feed.Availability) int {
	if s, ok := availabilityFit[a]; ok {
		return s
	}
	return otherAvailability
}

func budgetFit(p *feed.Opportunity, maxCost int) int {
	cost := p.CostThousands()
	if cost == 0 && p.ValueThousands() == 0 {
		return unknownBudgetFit
	}
	if maxCost <= 0 {
		return noBudgetFit
	}

	switch {
	case cost <= maxCost:
		return 100
	case cost*10 <= maxCost*13:
		return 70
	case cost <= maxCost*2:
		return 35
	case cost <= maxCost*3:
		return 15
	default:
		return 5
	}
}

func levelFit(value int, t Tier) int {
	curve, ok := levelCurves[t]
	if !ok {
		return unknownTierLevel
	}
	if value == 0 {
		return curve.unknown
	}
	for _, step := range curve.steps {
		if value <= step.max {
			return step.score
		}
	}
	return curve.above
}

// aggregate rounds half up using integer arithmetic.
func aggregate(b Breakdown, w Weights) int {
	sum := b.Role*w.Role +
		b.Age*w.Age +
		b.Style*w.Style +
		b.Availability*w.Availability +
		b.Budget*w.Budget +
		b.Level*w.Level
	return clamp((sum + 50) / 100)
}

func clamp(v int) int {
	return max(0, min(100, v))
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
