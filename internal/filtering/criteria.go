package filtering

import (
	"slices"

	"github.com/ob1-scout/ob1-scout/internal/feed"
	"github.com/ob1-scout/ob1-scout/internal/nlp"
)

// Criteria is the boolean pre-filter. Empty sets and zero bounds are not applied.
type Criteria struct {
	Roles        []feed.Role         `json:"roles,omitempty"`
	Availability []feed.Availability `json:"availability,omitempty"`
	AgeMin       int                 `json:"age_min,omitempty"`
	AgeMax       int                 `json:"age_max,omitempty"`
	MinScore     int                 `json:"min_score,omitempty"`
	MaxScore     int                 `json:"max_score,omitempty"`
}

// FromQuery builds criteria out of the filters of a parsed query.
func FromQuery(q nlp.ParsedQuery) Criteria {
	f := q.Filters
	c := Criteria{
		AgeMin:   f.AgeMin,
		AgeMax:   f.AgeMax,
		MinScore: f.MinScore,
		MaxScore: f.MaxScore,
	}

	c.Roles = slices.Clone(f.Roles)
	if len(c.Roles) == 0 && f.Role != "" {
		c.Roles = f.Role.Positions()
	}

	c.Availability = slices.Clone(f.Types)
	if len(c.Availability) == 0 && f.Availability != "" {
		c.Availability = []feed.Availability{f.Availability}
	}

	return c
}

func (c Criteria) IsZero() bool {
	return len(c.Roles) == 0 && len(c.Availability) == 0 &&
		c.AgeMin == 0 && c.AgeMax == 0 && c.MinScore == 0 && c.MaxScore == 0
}

// Matches reports whether o satisfies every present criterion. A player of
// unknown age passes the age bounds.
func (c Criteria) Matches(o *feed.Opportunity) bool {
	if o == nil {
		return false
	}
	if len(c.Roles) > 0 && !slices.Contains(c.Roles, o.Position()) {
		return false
	}
	if len(c.Availability) > 0 && !slices.Contains(c.Availability, o.Availability()) {
		return false
	}
	if age, ok := o.AgeYears(); ok {
		if c.AgeMin > 0 && age < c.AgeMin {
			return false
		}
		if c.AgeMax > 0 && age > c.AgeMax {
			return false
		}
	}
	if o.OB1Score < c.MinScore {
		return false
	}
	if c.MaxScore > 0 && o.OB1Score > c.MaxScore {
		return false
	}
	return true
}
