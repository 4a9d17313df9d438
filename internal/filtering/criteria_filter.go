package filtering

import (
	"context"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/ob1-scout/ob1-scout/internal/feed"
)

type criteriaFilter struct {
	criteria Criteria
	logger   *zap.Logger
}

// NewCriteria creates a filter that keeps only opportunities matching c.
func NewCriteria(c Criteria, logger *zap.Logger) Filter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &criteriaFilter{criteria: c, logger: logger}
}

func (f *criteriaFilter) Name() string { return "criteria" }

func (f *criteriaFilter) Disable(string) {}

func (f *criteriaFilter) IsEnabled() bool { return true }

func (f *criteriaFilter) Validate() error { return nil }

func (f *criteriaFilter) Apply(_ context.Context, v *feed.Opportunities) (*feed.Opportunities, Step, error) {
	initial := v.Len()
	if f.criteria.IsZero() {
		return v, newStep(initial, v), nil
	}

	dropped := v.Keep(f.criteria.Matches)
	if len(dropped) > 0 {
		f.logger.Debug("excluding opportunities by criteria",
			zap.Strings("excluded_opportunities", dropped),
			zap.Int("opportunities_left", v.Len()),
		)
	}

	return v, newStep(initial, v), nil
}

func (f *criteriaFilter) Status() Status {
	c := f.criteria
	details := map[string]string{}
	if len(c.Roles) > 0 {
		roles := make([]string, 0, len(c.Roles))
		for _, r := range c.Roles {
			roles = append(roles, string(r))
		}
		details["roles"] = strings.Join(roles, ",")
	}
	if len(c.Availability) > 0 {
		types := make([]string, 0, len(c.Availability))
		for _, a := range c.Availability {
			types = append(types, string(a))
		}
		details["availability"] = strings.Join(types, ",")
	}
	if c.AgeMin > 0 {
		details["age_min"] = strconv.Itoa(c.AgeMin)
	}
	if c.AgeMax > 0 {
		details["age_max"] = strconv.Itoa(c.AgeMax)
	}
	if c.MinScore > 0 {
		details["min_score"] = strconv.Itoa(c.MinScore)
	}
	if c.MaxScore > 0 {
		details["max_score"] = strconv.Itoa(c.MaxScore)
	}
	return Status{Name: f.Name(), Enabled: true, Details: details}
}
