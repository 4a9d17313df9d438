package filtering

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/ob1-scout/ob1-scout/internal/dna"
	"github.com/ob1-scout/ob1-scout/internal/feed"
)

func intPtr(v int) *int { return &v }

func serieCForwardClub() *dna.ClubProfile {
	return &dna.ClubProfile{
		ID:       "cesena",
		Name:     "Cesena",
		Category: dna.TierSerieC,
		Needs: []dna.RoleNeed{
			{Position: feed.RoleForward, Priority: dna.PriorityHigh, AgeMin: 20, AgeMax: 28},
		},
		MaxLoanCost: 50,
	}
}

func sampleFeed() *feed.Opportunities {
	return &feed.Opportunities{Items: []*feed.Opportunity{
		{ID: "a", PlayerName: "Free Forward", Role: "ATT", Age: intPtr(24), OpportunityType: "svincolato", OB1Score: 70},
		{ID: "b", PlayerName: "Locked Forward", Role: "ATT", Age: intPtr(24), OpportunityType: "incedibile", OB1Score: 90},
		{ID: "c", PlayerName: "Keeper", Role: "POR", Age: intPtr(25), OpportunityType: "svincolato", OB1Score: 65},
		{ID: "d", PlayerName: "Rival Forward", Role: "ATT", Age: intPtr(23), OpportunityType: "svincolato", PreviousClubs: []string{"Rimini"}, OB1Score: 75},
		{ID: "e", PlayerName: "Seen Forward", Role: "ATT", Age: intPtr(26), OpportunityType: "svincolato", OB1Score: 60},
	}}
}

func TestRunFiltersPipeline(t *testing.T) {
	t.Parallel()

	seenPath := filepath.Join(t.TempDir(), "seen.json")
	seen := (&feed.Opportunities{Items: []*feed.Opportunity{{ID: "e"}}}).ToSeen("", time.Now())
	if err := seen.ToFile(seenPath); err != nil {
		t.Fatalf("writing seen file: %v", err)
	}

	core, logs := observer.New(zapcore.InfoLevel)
	fit := NewFit(&FitFilterConfig{Club: serieCForwardClub(), MinScore: 50}, nil)
	steps := []Filter{
		NewCriteria(Criteria{Roles: []feed.Role{feed.RoleForward}}, nil),
		NewRivalry("Cesena", nil),
		NewSeen(seenPath),
		fit,
	}

	input := sampleFeed()
	out, err := New(steps, zap.New(core)).RunFilters(context.Background(), input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if out.Len() != 1 || out.Items[0].ID != "a" {
		t.Fatalf("expected only a to survive, got %v", out.IDs())
	}
	if input.Len() != 5 {
		t.Fatalf("expected input to be untouched, got %d items", input.Len())
	}

	matches := fit.Matches()
	if len(matches) != 1 || matches[0].Result.Score != 81 {
		t.Fatalf("expected one match scoring 81, got %+v", matches)
	}

	stepLogs := logs.FilterMessage("filter step").All()
	if len(stepLogs) != len(steps) {
		t.Fatalf("expected %d step logs, got %d", len(steps), len(stepLogs))
	}
	want := []struct {
		name    string
		dropped int64
	}{{"criteria", 1}, {"rivalry", 1}, {"seen", 1}, {"fit", 1}}
	for i, entry := range stepLogs {
		fields := entry.ContextMap()
		if fields["name"] != want[i].name || fields["dropped"] != want[i].dropped {
			t.Fatalf("step %d: unexpected fields %v", i, fields)
		}
	}
}

func TestRunFiltersSkipsDisabledSteps(t *testing.T) {
	t.Parallel()

	core, logs := observer.New(zapcore.InfoLevel)
	rivalry := NewRivalry("Cesena", nil)
	steps := []Filter{rivalry}
	DisableByName(steps, "rivalry", "requested")

	out, err := New(steps, zap.New(core)).RunFilters(context.Background(), sampleFeed())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Len() != 5 {
		t.Fatalf("expected nothing dropped, got %d", out.Len())
	}
	if logs.FilterMessage("filter disabled").Len() != 1 {
		t.Fatalf("expected a disabled log entry")
	}

	statuses := Describe(steps)
	if len(statuses) != 1 || statuses[0].Enabled || statuses[0].Reason != "requested" {
		t.Fatalf("unexpected status: %+v", statuses)
	}
}

func TestRunFiltersValidatesFirst(t *testing.T) {
	t.Parallel()

	steps := []Filter{
		NewCriteria(Criteria{MinScore: 99}, nil),
		NewFit(&FitFilterConfig{}, nil),
	}
	_, err := New(steps, nil).RunFilters(context.Background(), sampleFeed())
	if err == nil {
		t.Fatalf("expected validation error")
	}

	invalid := &dna.ClubProfile{ID: "x", Needs: []dna.RoleNeed{{AgeMin: 20}}}
	_, err = New([]Filter{NewFit(&FitFilterConfig{Club: invalid}, nil)}, nil).RunFilters(context.Background(), sampleFeed())
	if !errors.Is(err, dna.ErrInvalidClub) {
		t.Fatalf("expected ErrInvalidClub, got %v", err)
	}
}

func TestRunFiltersHonoursCancellation(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New([]Filter{NewSeen("")}, nil).RunFilters(ctx, sampleFeed())
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestRivalryUsesCurrentClub(t *testing.T) {
	t.Parallel()

	v := &feed.Opportunities{Items: []*feed.Opportunity{
		{ID: "x", CurrentClub: "Rimini"},
		{ID: "y", CurrentClub: "Bari"},
	}}
	out, step, err := NewRivalry("cesena", nil).Apply(context.Background(), v)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Len() != 1 || out.Items[0].ID != "y" || step.Dropped != 1 {
		t.Fatalf("unexpected result: %v %+v", out.IDs(), step)
	}
}

func TestSeenMissingFileDropsNothing(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "missing.json")
	out, step, err := NewSeen(path).Apply(context.Background(), sampleFeed())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Len() != 5 || step.Dropped != 0 {
		t.Fatalf("expected nothing dropped, got %+v", step)
	}
}

func TestFitStatus(t *testing.T) {
	t.Parallel()

	f := NewFit(&FitFilterConfig{Club: serieCForwardClub(), MinScore: 60}, nil)
	status := Describe([]Filter{f})[0]
	if status.Details["club"] != "cesena" || status.Details["min_score"] != "60" {
		t.Fatalf("unexpected status: %+v", status)
	}
}
