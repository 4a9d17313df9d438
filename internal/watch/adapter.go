package watch

import (
	"slices"

	"github.com/ob1-scout/ob1-scout/internal/dna"
	"github.com/ob1-scout/ob1-scout/internal/feed"
)

const (
	watchClubPrefix = "watch_"
	defaultAgeMin   = 17
	defaultAgeMax   = 36
)

// ClubProfile turns a watch profile into the club profile used for fit
// scoring. The min score stays a pre-filter and is not part of the result.
func ClubProfile(p *Profile) *dna.ClubProfile {
	ageMin, ageMax := p.AgeMin, p.AgeMax
	if ageMin == 0 {
		ageMin = defaultAgeMin
	}
	if ageMax == 0 {
		ageMax = defaultAgeMax
	}

	var needs []dna.RoleNeed
	if len(p.Roles) > 0 {
		for _, r := range p.Roles {
			needs = append(needs, dna.RoleNeed{Position: r, Priority: dna.PriorityHigh, AgeMin: ageMin, AgeMax: ageMax})
		}
	} else {
		needs = []dna.RoleNeed{{Position: feed.RoleCentralMid, Priority: dna.PriorityMedium, AgeMin: ageMin, AgeMax: ageMax}}
	}

	budget, maxCost := dna.BudgetPurchases, 100
	switch {
	case len(p.OpportunityTypes) == 1 && p.OpportunityTypes[0] == feed.AvailabilityFreeAgent:
		budget, maxCost = dna.BudgetFreeAgentsOnly, 0
	case slices.Contains(p.OpportunityTypes, feed.AvailabilityLoan):
		budget, maxCost = dna.BudgetLoansOnly, 50
	}

	name := p.Name
	if name == "" {
		name = defaultProfileName
	}

	return &dna.ClubProfile{
		ID:               watchClubPrefix + p.ID,
		Name:             name,
		Category:         dna.TierSerieC,
		PrimaryFormation: "4-3-3",
		PlayingStyles:    []string{"possesso", "transizioni"},
		Needs:            needs,
		BudgetType:       budget,
		MaxLoanCost:      maxCost,
	}
}
