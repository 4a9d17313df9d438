package dna

import (
	"errors"
	"strings"
	"testing"

	"github.com/ob1-scout/ob1-scout/internal/feed"
)

func intPtr(v int) *int { return &v }

func thirdDivisionClub() *ClubProfile {
	return &ClubProfile{
		ID:       "club",
		Name:     "Club",
		Category: ParseTier("third_division"),
		Needs: []RoleNeed{
			{Position: feed.RoleForward, Priority: PriorityHigh, AgeMin: 20, AgeMax: 28},
		},
		MaxLoanCost: 50,
	}
}

func TestWeightsSumToOne(t *testing.T) {
	t.Parallel()

	if total := DefaultWeights().Total(); total != 100 {
		t.Fatalf("expected weights to sum to 100%%, got %d", total)
	}
}

func TestScoreFreeAgentForward(t *testing.T) {
	t.Parallel()

	player := &feed.Opportunity{ID: "p1", Role: "ATT", Age: intPtr(24), OpportunityType: "svincolato"}

	res, err := Score(player, thirdDivisionClub())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := Breakdown{Role: 100, Age: 100, Style: 50, Availability: 100, Budget: 50, Level: 60}
	if res.Breakdown != want {
		t.Fatalf("expected breakdown %+v, got %+v", want, res.Breakdown)
	}
	if res.Score != 81 {
		t.Fatalf("expected score 81, got %d", res.Score)
	}
	if res.Blocked {
		t.Fatalf("expected result not to be blocked")
	}
	if res.MatchedNeed == nil || res.MatchedNeed.Position != feed.RoleForward {
		t.Fatalf("expected ATT need to be matched, got %+v", res.MatchedNeed)
	}
}

func TestScoreBlocking(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		player *feed.Opportunity
		club   *ClubProfile
		reason string
	}{
		{
			name:   "unavailable player",
			player: &feed.Opportunity{Role: "ATT", Age: intPtr(24), OpportunityType: "incedibile"},
			club:   thirdDivisionClub(),
			reason: ReasonUnavailable,
		},
		{
			name:   "value above tier cap",
			player: &feed.Opportunity{Role: "ATT", OpportunityType: "prestito", MarketValue: 800_000},
			club:   &ClubProfile{Category: TierSerieD},
			reason: "800k exceeds the Serie D cap of 500k",
		},
		{
			name:   "value above default cap",
			player: &feed.Opportunity{Role: "ATT", OpportunityType: "prestito", MarketValue: 6_000_000},
			club:   &ClubProfile{Category: "Eccellenza"},
			reason: "6000k exceeds the default cap of 5000k",
		},
		{
			name:   "no compatible role",
			player: &feed.Opportunity{Role: "POR", OpportunityType: "svincolato"},
			club:   thirdDivisionClub(),
			reason: ReasonNoRole,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			res, err := Score(tt.player, tt.club)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !res.Blocked {
				t.Fatalf("expected blocked result, got %+v", res)
			}
			if res.Score != 0 {
				t.Fatalf("expected score 0, got %d", res.Score)
			}
			if res.Breakdown != (Breakdown{}) {
				t.Fatalf("expected zero breakdown, got %+v", res.Breakdown)
			}
			if !strings.Contains(res.Reason, tt.reason) {
				t.Fatalf("expected reason containing %q, got %q", tt.reason, res.Reason)
			}
		})
	}
}

func TestScoreValueAtCapIsNotBlocked(t *testing.T) {
	t.Parallel()

	player := &feed.Opportunity{Role: "CC", OpportunityType: "prestito", MarketValue: 500_000}
	res, err := Score(player, &ClubProfile{Category: TierSerieD, MaxLoanCost: 60})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Blocked {
		t.Fatalf("expected value equal to cap to pass, got %q", res.Reason)
	}
}

func TestScoreErrors(t *testing.T) {
	t.Parallel()

	if _, err := Score(nil, thirdDivisionClub()); !errors.Is(err, ErrNilPlayer) {
		t.Fatalf("expected ErrNilPlayer, got %v", err)
	}
	if _, err := Score(&feed.Opportunity{}, nil); !errors.Is(err, ErrNilClub) {
		t.Fatalf("expected ErrNilClub, got %v", err)
	}

	bad := &ClubProfile{Needs: []RoleNeed{{Position: feed.RoleCentreBack, AgeMin: 30, AgeMax: 20}}}
	if _, err := Score(&feed.Opportunity{Role: "DC"}, bad); !errors.Is(err, ErrInvalidClub) {
		t.Fatalf("expected ErrInvalidClub, got %v", err)
	}
}

func TestRoleAdjacencyIsDirectional(t *testing.T) {
	t.Parallel()

	medNeed := []RoleNeed{{Position: feed.RoleDefensiveMid, Priority: PriorityMedium}}
	if got, _ := roleFit(feed.RoleCentreBack, medNeed); got != 40 {
		t.Fatalf("expected DC player for MED need to score 40, got %d", got)
	}

	dcNeed := []RoleNeed{{Position: feed.RoleCentreBack, Priority: PriorityMedium}}
	if got, _ := roleFit(feed.RoleDefensiveMid, dcNeed); got != 35 {
		t.Fatalf("expected MED player for DC need to score 35, got %d", got)
	}
}

func TestRoleFitPicksBestNeed(t *testing.T) {
	t.Parallel()

	needs := []RoleNeed{
		{Position: feed.RoleAttackingMid, Priority: PriorityLow},
		{Position: feed.RoleCentralMid, Priority: PriorityHigh, AgeMin: 18, AgeMax: 22},
	}

	score, need := roleFit(feed.RoleCentralMid, needs)
	if score != 100 {
		t.Fatalf("expected exact match 100, got %d", score)
	}
	if need == nil || need.Position != feed.RoleCentralMid {
		t.Fatalf("expected CC need, got %+v", need)
	}
}

func TestRoleFitDefaults(t *testing.T) {
	t.Parallel()

	tests := map[feed.Role]int{
		feed.RoleGoalkeeper: 90,
		feed.RoleCentralMid: 70,
		feed.RoleLeftBack:   65,
		feed.RoleForward:    60,
		feed.Role("XX"):     50,
	}

	for role, want := range tests {
		if got, need := roleFit(role, nil); got != want || need != nil {
			t.Fatalf("role %s: expected %d without need, got %d (%+v)", role, want, got, need)
		}
	}
}

func TestAgeFit(t *testing.T) {
	t.Parallel()

	need := &RoleNeed{Position: feed.RoleCentralMid, AgeMin: 20, AgeMax: 25}

	tests := []struct {
		name string
		age  *int
		need *RoleNeed
		want int
	}{
		{name: "unknown", age: nil, need: need, want: 50},
		{name: "at upper bound", age: intPtr(25), need: need, want: 100},
		{name: "one year above", age: intPtr(26), need: need, want: 75},
		{name: "two years below", age: intPtr(18), need: need, want: 50},
		{name: "far outside", age: intPtr(35), need: need, want: 0},
		{name: "default prime", age: intPtr(22), want: 100},
		{name: "default teenager", age: intPtr(18), want: 80},
		{name: "default late twenties", age: intPtr(27), want: 60},
		{name: "default veteran", age: intPtr(31), want: 0},
		{name: "default thirty", age: intPtr(29), want: 10},
		{name: "need without range uses defaults", age: intPtr(27), need: &RoleNeed{Position: feed.RoleCentralMid}, want: 60},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := ageFit(&feed.Opportunity{Age: tt.age}, tt.need); got != tt.want {
				t.Fatalf("expected %d, got %d", tt.want, got)
			}
		})
	}
}

func TestStyleFit(t *testing.T) {
	t.Parallel()

	if got := styleFit(nil); got != 50 {
		t.Fatalf("expected neutral 50 without styles, got %d", got)
	}
	if got := styleFit([]string{"catenaccio"}); got != 50 {
		t.Fatalf("expected neutral 50 for unmapped styles, got %d", got)
	}
	if got := styleFit([]string{"possesso", "catenaccio", "pressing_alto"}); got != 40 {
		t.Fatalf("expected 40 for mapped styles, got %d", got)
	}
}

func TestBudgetFit(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		player  feed.Opportunity
		maxCost int
		want    int
	}{
		{name: "nothing known", player: feed.Opportunity{}, maxCost: 50, want: 50},
		{name: "no budget", player: feed.Opportunity{EstimatedLoanCost: 10}, maxCost: 0, want: 30},
		{name: "within budget", player: feed.Opportunity{EstimatedLoanCost: 50}, maxCost: 50, want: 100},
		{name: "slightly above", player: feed.Opportunity{EstimatedLoanCost: 65}, maxCost: 50, want: 70},
		{name: "double", player: feed.Opportunity{EstimatedLoanCost: 100}, maxCost: 50, want: 35},
		{name: "triple", player: feed.Opportunity{EstimatedLoanCost: 150}, maxCost: 50, want: 15},
		{name: "way above", player: feed.Opportunity{EstimatedLoanCost: 151}, maxCost: 50, want: 5},
		{name: "derived from value", player: feed.Opportunity{MarketValue: 400_000}, maxCost: 50, want: 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := budgetFit(&tt.player, tt.maxCost); got != tt.want {
				t.Fatalf("expected %d, got %d", tt.want, got)
			}
		})
	}
}

func TestLevelFit(t *testing.T) {
	t.Parallel()

	tests := []struct {
		tier  Tier
		value int
		want  int
	}{
		{TierSanMarino, 0, 60},
		{TierSanMarino, 100, 100},
		{TierSanMarino, 301, 40},
		{TierSanMarino, 2000, 5},
		{TierSerieD, 300, 100},
		{TierSerieD, 1500, 40},
		{TierSerieD, 1501, 15},
		{TierSerieC, 400, 90},
		{TierSerieC, 1500, 100},
		{TierSerieC, 4000, 30},
		{TierSerieC, 9000, 10},
		{TierSerieB, 9000, 50},
		{Tier("Eccellenza"), 100, 50},
	}

	for _, tt := range tests {
		if got := levelFit(tt.value, tt.tier); got != tt.want {
			t.Fatalf("%s value %d: expected %d, got %d", tt.tier, tt.value, tt.want, got)
		}
	}
}

func TestAvailabilityFit(t *testing.T) {
	t.Parallel()

	tests := map[feed.Availability]int{
		feed.AvailabilityFreeAgent:         100,
		feed.AvailabilityMutualTermination: 95,
		feed.AvailabilityLoan:              70,
		feed.AvailabilityContractExpiring:  60,
		feed.AvailabilityUnknown:           30,
	}
	for a, want := range tests {
		if got := availabilityScore(a); got != want {
			t.Fatalf("%s: expected %d, got %d", a, want, got)
		}
	}
}

func TestScoreIsIdempotent(t *testing.T) {
	t.Parallel()

	player := &feed.Opportunity{Role: "CC", Age: intPtr(27), OpportunityType: "prestito", MarketValue: 350_000}
	club := &ClubProfile{
		Category:      TierSerieC,
		PlayingStyles: []string{"possesso"},
		Needs:         []RoleNeed{{Position: feed.RoleDefensiveMid, Priority: PriorityHigh, AgeMin: 22, AgeMax: 26}},
		MaxLoanCost:   30,
	}

	first, err := Score(player, club)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i := 0; i < 5; i++ {
		again, err := Score(player, club)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if again.Score != first.Score || again.Breakdown != first.Breakdown {
			t.Fatalf("expected identical results, got %+v and %+v", first, again)
		}
	}

	// CC player, MED need: 40; age one over: 75; style 40; loan 70;
	// cost 42 vs 30 -> 35; value 350 in Serie C -> 90.
	want := Breakdown{Role: 40, Age: 75, Style: 40, Availability: 70, Budget: 35, Level: 90}
	if first.Breakdown != want {
		t.Fatalf("expected %+v, got %+v", want, first.Breakdown)
	}
	if first.Score != 53 {
		t.Fatalf("expected score 53, got %d", first.Score)
	}
}

func TestClassify(t *testing.T) {
	t.Parallel()

	if Classify(80) != ClassHot || Classify(79) != ClassWarm || Classify(59) != ClassCold {
		t.Fatalf("unexpected classification boundaries")
	}
}
