package filtering

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"go.uber.org/zap"

	"github.com/ob1-scout/ob1-scout/internal/dna"
	"github.com/ob1-scout/ob1-scout/internal/feed"
)

type fitFilter struct {
	enabled bool
	reason  string
	config  *FitFilterConfig
	deps    *FitFilterDeps
	matches []dna.Match
}

type FitFilterDeps struct {
	Logger *zap.Logger
}

type FitFilterConfig struct {
	Club     *dna.ClubProfile
	MinScore int
}

// FitFilter is the scoring step; after Apply, Matches returns the ranked fits.
type FitFilter interface {
	Filter
	Matches() []dna.Match
}

// NewFit creates the step that scores every opportunity against the club
// profile and keeps the non-blocked ones at or above MinScore, best first.
func NewFit(cfg *FitFilterConfig, deps *FitFilterDeps) FitFilter {
	if deps == nil {
		deps = &FitFilterDeps{}
	}
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	return &fitFilter{
		enabled: true,
		config:  cfg,
		deps:    deps,
	}
}

func (f *fitFilter) Name() string { return "fit" }

func (f *fitFilter) Disable(reason string) {
	f.enabled = false
	f.reason = reason
}

func (f *fitFilter) IsEnabled() bool { return f.enabled }

func (f *fitFilter) Validate() error {
	if f.config == nil || f.config.Club == nil {
		return errors.New("club profile is required for fit scoring")
	}
	if err := f.config.Club.Validate(); err != nil {
		return fmt.Errorf("club %s: %w", f.config.Club.ID, err)
	}
	return nil
}

func (f *fitFilter) Apply(ctx context.Context, v *feed.Opportunities) (*feed.Opportunities, Step, error) {
	initial := v.Len()
	club := f.config.Club

	matches := make([]dna.Match, 0, initial)
	for _, o := range v.Items {
		if err := ctx.Err(); err != nil {
			return v, Step{}, err
		}

		res, err := dna.Score(o, club)
		if err != nil {
			return v, Step{}, fmt.Errorf("scoring %s: %w", o.ID, err)
		}

		if res.Blocked {
			f.deps.Logger.Debug("opportunity blocked",
				zap.String("opportunity_id", o.ID),
				zap.String("club", club.ID),
				zap.String("reason", res.Reason),
			)
			continue
		}

		if res.Score < f.config.MinScore {
			f.deps.Logger.Debug("opportunity below fit threshold",
				zap.String("opportunity_id", o.ID),
				zap.Int("fit_score", res.Score),
			)
			continue
		}

		matches = append(matches, dna.Match{Opportunity: o, Result: res})
	}

	dna.SortMatches(matches)
	f.matches = matches

	items := make([]*feed.Opportunity, 0, len(matches))
	for _, m := range matches {
		items = append(items, m.Opportunity)
	}
	v.Items = items

	f.deps.Logger.Info("fit scoring completed",
		zap.String("club", club.ID),
		zap.Int("initial_opportunities", initial),
		zap.Int("matched_opportunities", len(matches)),
	)

	return v, newStep(initial, v), nil
}

func (f *fitFilter) Matches() []dna.Match {
	return f.matches
}

func (f *fitFilter) Status() Status {
	details := map[string]string{}
	if f.config != nil {
		details["min_score"] = strconv.Itoa(f.config.MinScore)
		if f.config.Club != nil {
			details["club"] = f.config.Club.ID
		}
	}
	return Status{Name: f.Name(), Enabled: f.enabled, Reason: f.reason, Details: details}
}
