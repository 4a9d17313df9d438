package dna

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ob1-scout/ob1-scout/internal/feed"
)

var (
	ErrNilPlayer   = errors.New("player is required")
	ErrNilClub     = errors.New("club profile is required")
	ErrInvalidClub = errors.New("invalid club profile")
)

// Tier is the competition level a club plays in.
type Tier string

const (
	TierSanMarino Tier = "Campionato Sammarinese"
	TierSerieD    Tier = "Serie D"
	TierSerieC    Tier = "Serie C"
	TierSerieB    Tier = "Serie B"
)

var tierAliases = map[string]Tier{
	"campionato sammarinese": TierSanMarino,
	"sammarinese":            TierSanMarino,
	"san marino":             TierSanMarino,
	"serie d":                TierSerieD,
	"serie_d":                TierSerieD,
	"fourth_division":        TierSerieD,
	"serie c":                TierSerieC,
	"serie_c":                TierSerieC,
	"lega pro":               TierSerieC,
	"third_division":         TierSerieC,
	"serie b":                TierSerieB,
	"serie_b":                TierSerieB,
	"second_division":        TierSerieB,
}

// ParseTier resolves common spellings of a tier. Unknown tiers are kept verbatim.
func ParseTier(s string) Tier {
	trimmed := strings.TrimSpace(s)
	if tier, ok := tierAliases[strings.ToLower(trimmed)]; ok {
		return tier
	}
	return Tier(trimmed)
}

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// ParsePriority accepts both English and Italian (alta/media/bassa) spellings.
func ParsePriority(s string) Priority {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "high", "alta":
		return PriorityHigh
	case "low", "bassa":
		return PriorityLow
	default:
		return PriorityMedium
	}
}

// BudgetCategory describes which kind of operations a club can afford.
type BudgetCategory string

const (
	BudgetFreeAgentsOnly BudgetCategory = "solo_svincolati"
	BudgetLoansOnly      BudgetCategory = "solo_prestiti"
	BudgetPurchases      BudgetCategory = "acquisti"
)

// RoleNeed is a position the club is looking to fill. AgeMin and AgeMax are
// inclusive; both zero means no age preference.
type RoleNeed struct {
	Position   feed.Role `json:"position" mapstructure:"position"`
	Priority   Priority  `json:"priority" mapstructure:"priority"`
	AgeMin     int       `json:"age_min,omitempty" mapstructure:"age-min"`
	AgeMax     int       `json:"age_max,omitempty" mapstructure:"age-max"`
	PlayerType string    `json:"player_type,omitempty" mapstructure:"player-type"`
}

func (n RoleNeed) HasAgeRange() bool {
	return n.AgeMin > 0 || n.AgeMax > 0
}

// ClubProfile is the club's footballing identity used by the scorer.
type ClubProfile struct {
	ID               string         `json:"id" mapstructure:"id"`
	Name             string         `json:"name" mapstructure:"name"`
	City             string         `json:"city,omitempty" mapstructure:"city"`
	Category         Tier           `json:"category" mapstructure:"category"`
	PrimaryFormation string         `json:"primary_formation,omitempty" mapstructure:"primary-formation"`
	PlayingStyles    []string       `json:"playing_styles,omitempty" mapstructure:"playing-styles"`
	Needs            []RoleNeed     `json:"needs,omitempty" mapstructure:"needs"`
	BudgetType       BudgetCategory `json:"budget_type,omitempty" mapstructure:"budget-type"`
	// MaxLoanCost is expressed in thousands of euro.
	MaxLoanCost int `json:"max_loan_cost" mapstructure:"max-loan-cost"`
}

// Normalize canonicalizes the tier, priorities and role codes, typically after
// loading the profile from configuration.
func (c *ClubProfile) Normalize() {
	c.Category = ParseTier(string(c.Category))
	for i := range c.Needs {
		c.Needs[i].Position = feed.ParseRole(string(c.Needs[i].Position))
		c.Needs[i].Priority = ParsePriority(string(c.Needs[i].Priority))
	}
}

func (c *ClubProfile) Validate() error {
	for _, need := range c.Needs {
		if need.Position == feed.RoleUnknown {
			return fmt.Errorf("%w: need without position", ErrInvalidClub)
		}
		if need.AgeMax > 0 && need.AgeMin > need.AgeMax {
			return fmt.Errorf("%w: %s age range %d-%d", ErrInvalidClub, need.Position, need.AgeMin, need.AgeMax)
		}
	}
	return nil
}

// Clone returns a deep copy so adapters never mutate shared profiles.
func (c *ClubProfile) Clone() *ClubProfile {
	cp := *c
	cp.PlayingStyles = append([]string(nil), c.PlayingStyles...)
	cp.Needs = append([]RoleNeed(nil), c.Needs...)
	return &cp
}

// Breakdown holds the six dimension scores, each in [0,100].
type Breakdown struct {
	Role         int `json:"role"`
	Age          int `json:"age"`
	Style        int `json:"style"`
	Availability int `json:"availability"`
	Budget       int `json:"budget"`
	Level        int `json:"level"`
}

func (b Breakdown) String() string {
	return fmt.Sprintf("Role: %d%% | Age: %d%% | Style: %d%% | Availability: %d%% | Budget: %d%% | Level: %d%%",
		b.Role, b.Age, b.Style, b.Availability, b.Budget, b.Level)
}

type FitResult struct {
	Score       int       `json:"score"`
	Breakdown   Breakdown `json:"breakdown"`
	MatchedNeed *RoleNeed `json:"matched_need,omitempty"`
	Blocked     bool      `json:"blocked"`
	Reason      string    `json:"reason,omitempty"`
}

// Classification buckets a fit score.
type Classification string

const (
	ClassHot  Classification = "hot"
	ClassWarm Classification = "warm"
	ClassCold Classification = "cold"
)

func Classify(score int) Classification {
	switch {
	case score >= 80:
		return ClassHot
	case score >= 60:
		return ClassWarm
	default:
		return ClassCold
	}
}
