package filtering

import (
	"context"
	"slices"
	"strings"

	"go.uber.org/zap"

	"github.com/ob1-scout/ob1-scout/internal/dna"
	"github.com/ob1-scout/ob1-scout/internal/feed"
)

type rivalryFilter struct {
	enabled bool
	reason  string
	target  string
	logger  *zap.Logger
}

// NewRivalry creates a filter that removes players whose current or past
// clubs are historic rivals of target.
func NewRivalry(target string, logger *zap.Logger) Filter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &rivalryFilter{
		enabled: true,
		target:  strings.TrimSpace(target),
		logger:  logger,
	}
}

func (f *rivalryFilter) Name() string { return "rivalry" }

func (f *rivalryFilter) Disable(reason string) {
	f.enabled = false
	f.reason = reason
}

func (f *rivalryFilter) IsEnabled() bool { return f.enabled }

func (f *rivalryFilter) Validate() error { return nil }

func (f *rivalryFilter) Apply(_ context.Context, v *feed.Opportunities) (*feed.Opportunities, Step, error) {
	initial := v.Len()
	if f.target == "" {
		return v, newStep(initial, v), nil
	}

	dropped := v.Keep(func(o *feed.Opportunity) bool {
		clubs := slices.Clone(o.PreviousClubs)
		if o.CurrentClub != "" {
			clubs = append(clubs, o.CurrentClub)
		}
		return !dna.IsRivalMove(clubs, f.target)
	})
	if len(dropped) > 0 {
		f.logger.Info("excluding players coming from rival clubs",
			zap.String("club", f.target),
			zap.Strings("excluded_opportunities", dropped),
			zap.Int("opportunities_left", v.Len()),
		)
	}

	return v, newStep(initial, v), nil
}

func (f *rivalryFilter) Status() Status {
	details := map[string]string{}
	if f.target != "" {
		details["club"] = f.target
	}
	return Status{Name: f.Name(), Enabled: f.enabled, Reason: f.reason, Details: details}
}
