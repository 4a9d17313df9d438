package filtering

import (
	"slices"
	"testing"

	"github.com/ob1-scout/ob1-scout/internal/feed"
	"github.com/ob1-scout/ob1-scout/internal/nlp"
)

func TestCriteriaMatches(t *testing.T) {
	t.Parallel()

	player := &feed.Opportunity{ID: "p", Role: "CC", Age: intPtr(24), OpportunityType: "svincolato", OB1Score: 72}
	ageless := &feed.Opportunity{ID: "q", Role: "CC", OpportunityType: "prestito", OB1Score: 72}

	tests := []struct {
		name     string
		criteria Criteria
		player   *feed.Opportunity
		want     bool
	}{
		{"empty", Criteria{}, player, true},
		{"nil player", Criteria{}, nil, false},
		{"role in set", Criteria{Roles: []feed.Role{feed.RoleDefensiveMid, feed.RoleCentralMid}}, player, true},
		{"role missing", Criteria{Roles: []feed.Role{feed.RoleForward}}, player, false},
		{"availability in set", Criteria{Availability: []feed.Availability{feed.AvailabilityFreeAgent}}, player, true},
		{"availability missing", Criteria{Availability: []feed.Availability{feed.AvailabilityLoan}}, player, false},
		{"age inside", Criteria{AgeMin: 24, AgeMax: 24}, player, true},
		{"too young", Criteria{AgeMin: 25}, player, false},
		{"too old", Criteria{AgeMax: 23}, player, false},
		{"unknown age passes", Criteria{AgeMin: 30, AgeMax: 35}, ageless, true},
		{"min score met", Criteria{MinScore: 72}, player, true},
		{"min score missed", Criteria{MinScore: 73}, player, false},
		{"max score", Criteria{MinScore: 60, MaxScore: 71}, player, false},
		{"all present", Criteria{
			Roles:        []feed.Role{feed.RoleCentralMid},
			Availability: []feed.Availability{feed.AvailabilityFreeAgent},
			AgeMax:       25,
			MinScore:     60,
			MaxScore:     79,
		}, player, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := tt.criteria.Matches(tt.player); got != tt.want {
				t.Fatalf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestFromQuery(t *testing.T) {
	t.Parallel()

	c := FromQuery(nlp.Parse("centrocampisti svincolati under 25"))

	if !slices.Equal(c.Roles, []feed.Role{feed.RoleCentralMid, feed.RoleDefensiveMid, feed.RoleAttackingMid}) {
		t.Fatalf("unexpected roles %v", c.Roles)
	}
	if !slices.Equal(c.Availability, []feed.Availability{feed.AvailabilityFreeAgent}) {
		t.Fatalf("unexpected availability %v", c.Availability)
	}
	if c.AgeMax != 25 || c.AgeMin != 0 {
		t.Fatalf("unexpected ages %d-%d", c.AgeMin, c.AgeMax)
	}

	good := FromQuery(nlp.Parse("giocatori interessanti"))
	if good.MinScore != 60 || good.MaxScore != 79 || len(good.Roles) != 0 {
		t.Fatalf("unexpected criteria %+v", good)
	}

	if !FromQuery(nlp.Parse("ciao")).IsZero() {
		t.Fatalf("expected greeting to carry no criteria")
	}
}

func TestFromQueryPrefersAlertSets(t *testing.T) {
	t.Parallel()

	q := nlp.ParsedQuery{Filters: nlp.Filters{
		Role:         nlp.FamilyDefender,
		Roles:        []feed.Role{feed.RoleCentreBack},
		Availability: feed.AvailabilityLoan,
		Types:        []feed.Availability{feed.AvailabilityLoan, feed.AvailabilityFreeAgent},
	}}

	c := FromQuery(q)
	if !slices.Equal(c.Roles, []feed.Role{feed.RoleCentreBack}) || len(c.Availability) != 2 {
		t.Fatalf("unexpected criteria %+v", c)
	}

	q.Filters.Roles[0] = feed.RoleGoalkeeper
	if c.Roles[0] != feed.RoleCentreBack {
		t.Fatalf("expected criteria to own its slices")
	}
}

func TestCriteriaFilterStatus(t *testing.T) {
	t.Parallel()

	f := NewCriteria(Criteria{Roles: []feed.Role{feed.RoleForward, feed.RoleCentreForward}, MinScore: 80}, nil)
	status := Describe([]Filter{f})[0]
	if status.Details["roles"] != "ATT,PC" || status.Details["min_score"] != "80" {
		t.Fatalf("unexpected status %+v", status)
	}
}
