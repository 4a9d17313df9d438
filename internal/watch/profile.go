package watch

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ob1-scout/ob1-scout/internal/feed"
	"github.com/ob1-scout/ob1-scout/internal/filtering"
	"github.com/ob1-scout/ob1-scout/internal/nlp"
)

const (
	profileIDPrefix    = "wp_"
	defaultProfileName = "Watch Profile"
)

var ErrNotAlert = errors.New("query does not ask for an alert")

// Profile is a saved search that raises alerts on new matching opportunities.
type Profile struct {
	ID               string              `json:"id" mapstructure:"id"`
	Name             string              `json:"name" mapstructure:"name"`
	Roles            []feed.Role         `json:"roles,omitempty" mapstructure:"roles"`
	OpportunityTypes []feed.Availability `json:"opportunity_types,omitempty" mapstructure:"opportunity-types"`
	AgeMin           int                 `json:"age_min,omitempty" mapstructure:"age-min"`
	AgeMax           int                 `json:"age_max,omitempty" mapstructure:"age-max"`
	MinScore         int                 `json:"min_ob1_score,omitempty" mapstructure:"min-score"`
	AlertImmediately bool                `json:"alert_immediately" mapstructure:"alert-immediately"`
	IncludeInDigest  bool                `json:"include_in_digest" mapstructure:"include-in-digest"`
	Active           bool                `json:"active" mapstructure:"active"`
	CreatedAt        time.Time           `json:"created_at" mapstructure:"created-at"`
	UpdatedAt        time.Time           `json:"updated_at" mapstructure:"updated-at"`
}

// NewProfile returns an active profile with a fresh id, alerting immediately
// and in the digest.
func NewProfile(name string, now time.Time) *Profile {
	return &Profile{
		ID:               profileIDPrefix + uuid.NewString(),
		Name:             name,
		AlertImmediately: true,
		IncludeInDigest:  true,
		Active:           true,
		CreatedAt:        now.UTC(),
		UpdatedAt:        now.UTC(),
	}
}

// FromQuery builds a profile out of a create-alert query.
func FromQuery(q nlp.ParsedQuery, now time.Time) (*Profile, error) {
	if q.Intent != nlp.IntentCreateAlert {
		return nil, fmt.Errorf("%w: intent is %s", ErrNotAlert, q.Intent)
	}

	c := filtering.FromQuery(q)
	p := NewProfile("", now)
	p.Roles = c.Roles
	p.OpportunityTypes = c.Availability
	p.AgeMin = c.AgeMin
	p.AgeMax = c.AgeMax
	p.MinScore = c.MinScore
	p.Name = p.DisplayName()
	return p, nil
}

// Normalize canonicalizes role codes and opportunity types, typically after
// loading profiles from configuration.
func (p *Profile) Normalize() {
	for i, r := range p.Roles {
		p.Roles[i] = feed.ParseRole(string(r))
	}
	for i, t := range p.OpportunityTypes {
		p.OpportunityTypes[i] = feed.ParseAvailability(string(t))
	}
	if p.ID == "" {
		p.ID = profileIDPrefix + uuid.NewString()
	}
	if p.Name == "" {
		p.Name = p.DisplayName()
	}
}

// Criteria is the boolean pre-filter equivalent of the profile.
func (p *Profile) Criteria() filtering.Criteria {
	return filtering.Criteria{
		Roles:        p.Roles,
		Availability: p.OpportunityTypes,
		AgeMin:       p.AgeMin,
		AgeMax:       p.AgeMax,
		MinScore:     p.MinScore,
	}
}

type roleGroup struct {
	label string
	roles []feed.Role
}

var roleGroups = []roleGroup{
	{"Difensore", []feed.Role{feed.RoleCentreBack, feed.RoleRightBack, feed.RoleLeftBack}},
	{"Centrocampista", []feed.Role{feed.RoleCentralMid, feed.RoleDefensiveMid, feed.RoleAttackingMid}},
	{"Esterno", []feed.Role{feed.RoleLeftWingBack, feed.RoleRightWingBack, feed.RoleLeftWinger, feed.RoleRightWinger}},
	{"Attaccante", []feed.Role{feed.RoleForward, feed.RoleCentreForward}},
	{"Portiere", []feed.Role{feed.RoleGoalkeeper}},
}

var typeLabels = map[feed.Availability]string{
	feed.AvailabilityFreeAgent:         "svincolato",
	feed.AvailabilityLoan:              "prestito",
	feed.AvailabilityMutualTermination: "rescissione",
	feed.AvailabilityContractExpiring:  "scadenza",
}

// DisplayName summarizes the profile, e.g. "Difensore svincolato U23".
func (p *Profile) DisplayName() string {
	var parts []string

	if len(p.Roles) > 0 {
		roles := slices.Sorted(slices.Values(p.Roles))
		for _, g := range roleGroups {
			if slices.Equal(roles, slices.Sorted(slices.Values(g.roles))) {
				parts = append(parts, g.label)
				break
			}
		}
	}

	if len(p.OpportunityTypes) > 0 {
		if label, ok := typeLabels[p.OpportunityTypes[0]]; ok {
			parts = append(parts, label)
		}
	}

	if p.AgeMax > 0 {
		parts = append(parts, fmt.Sprintf("U%d", p.AgeMax))
	}

	if len(parts) == 0 {
		return defaultProfileName
	}
	return strings.Join(parts, " ")
}
