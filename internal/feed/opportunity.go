package feed

import (
	"sort"
	"strings"
)

const (
	OpportunityIDField   = "ID"
	OpportunityNameField = "PlayerName"
)

// Role is a short positional code as published in the feed (CC, DC, ATT...).
type Role string

const (
	RoleGoalkeeper    Role = "POR"
	RoleCentreBack    Role = "DC"
	RoleLeftBack      Role = "TS"
	RoleRightBack     Role = "TD"
	RoleDefensiveMid  Role = "MED"
	RoleCentralMid    Role = "CC"
	RoleAttackingMid  Role = "TRQ"
	RoleLeftWingBack  Role = "ES"
	RoleRightWingBack Role = "ED"
	RoleLeftWinger    Role = "AS"
	RoleRightWinger   Role = "AD"
	RoleForward       Role = "ATT"
	RoleCentreForward Role = "PC"
	RoleUnknown       Role = ""
)

const (
	// share of the market value used as loan cost when the feed has none
	defaultCostPercent = 12
	hotThreshold       = 80
	warmThreshold      = 60
)

var roleAliases = map[string]Role{
	"PO": RoleGoalkeeper,
	"GK": RoleGoalkeeper,
	"CB": RoleCentreBack,
	"LB": RoleLeftBack,
	"RB": RoleRightBack,
	"DM": RoleDefensiveMid,
	"CM": RoleCentralMid,
	"AM": RoleAttackingMid,
	"CF": RoleCentreForward,
	"ST": RoleForward,
}

var knownRoles = map[Role]struct{}{
	RoleGoalkeeper: {}, RoleCentreBack: {}, RoleLeftBack: {}, RoleRightBack: {},
	RoleDefensiveMid: {}, RoleCentralMid: {}, RoleAttackingMid: {},
	RoleLeftWingBack: {}, RoleRightWingBack: {}, RoleLeftWinger: {}, RoleRightWinger: {},
	RoleForward: {}, RoleCentreForward: {},
}

// Known reports whether r is one of the canonical position codes.
func (r Role) Known() bool {
	_, ok := knownRoles[r]
	return ok
}

// ParseRole normalizes a feed role code. Unknown codes are returned upper-cased as-is.
func ParseRole(s string) Role {
	code := strings.ToUpper(strings.TrimSpace(s))
	if alias, ok := roleAliases[code]; ok {
		return alias
	}
	return Role(code)
}

// Availability is the normalized form of the feed's free-text opportunity type.
type Availability string

const (
	AvailabilityFreeAgent         Availability = "free_agent"
	AvailabilityMutualTermination Availability = "mutual_termination"
	AvailabilityLoan              Availability = "loan"
	AvailabilityContractExpiring  Availability = "contract_expiring"
	AvailabilityUnavailable       Availability = "unavailable"
	AvailabilityUnknown           Availability = "unknown"
)

var availabilityKeywords = []struct {
	needles []string
	value   Availability
}{
	{needles: []string{"incedibil", "non disponibil", "unavailable"}, value: AvailabilityUnavailable},
	{needles: []string{"svincol", "free_agent", "free agent", "parametro zero"}, value: AvailabilityFreeAgent},
	{needles: []string{"rescis", "risoluz", "mutual_termination"}, value: AvailabilityMutualTermination},
	{needles: []string{"prestit", "loan"}, value: AvailabilityLoan},
	{needles: []string{"scaden", "contract_expiring", "expiring"}, value: AvailabilityContractExpiring},
}

// ParseAvailability maps the feed's opportunity_type (Italian free text or a
// normalized code) to an Availability value.
func ParseAvailability(s string) Availability {
	lower := strings.ToLower(strings.TrimSpace(s))
	if lower == "" {
		return AvailabilityUnknown
	}
	for _, kw := range availabilityKeywords {
		for _, needle := range kw.needles {
			if strings.Contains(lower, needle) {
				return kw.value
			}
		}
	}
	return AvailabilityUnknown
}

// Tier is the upstream desirability bucket derived from ob1_score.
type Tier string

const (
	TierHot  Tier = "hot"
	TierWarm Tier = "warm"
	TierCold Tier = "cold"
)

// TierForScore buckets an aggregate score.
func TierForScore(score int) Tier {
	switch {
	case score >= hotThreshold:
		return TierHot
	case score >= warmThreshold:
		return TierWarm
	default:
		return TierCold
	}
}

type Opportunities struct {
	Items      []*Opportunity
	LastUpdate string
}

type Opportunity struct {
	ID                string   `json:"id,omitempty"`
	PlayerName        string   `json:"player_name,omitempty"`
	Age               *int     `json:"age,omitempty"`
	Role              string   `json:"role,omitempty"`
	RoleName          string   `json:"role_name,omitempty"`
	OpportunityType   string   `json:"opportunity_type,omitempty"`
	ReportedDate      string   `json:"reported_date,omitempty"`
	SourceName        string   `json:"source_name,omitempty"`
	SourceURL         string   `json:"source_url,omitempty"`
	CurrentClub       string   `json:"current_club,omitempty"`
	PreviousClubs     []string `json:"previous_clubs,omitempty"`
	Appearances       int      `json:"appearances,omitempty"`
	Goals             int      `json:"goals,omitempty"`
	Summary           string   `json:"summary,omitempty"`
	Nationality       string   `json:"nationality,omitempty"`
	SecondNationality string   `json:"second_nationality,omitempty"`
	Foot              string   `json:"foot,omitempty"`
	// MarketValue is expressed in euro; zero means unknown.
	MarketValue int `json:"market_value,omitempty"`
	// EstimatedLoanCost is expressed in thousands of euro.
	EstimatedLoanCost int    `json:"estimated_loan_cost,omitempty"`
	OB1Score          int    `json:"ob1_score"`
	Classification    string `json:"classification,omitempty"`
}

// Position returns the normalized role code of the player.
func (o *Opportunity) Position() Role {
	return ParseRole(o.Role)
}

// Availability returns the normalized availability type.
func (o *Opportunity) Availability() Availability {
	return ParseAvailability(o.OpportunityType)
}

// AgeYears returns the player's age and whether it is known.
func (o *Opportunity) AgeYears() (int, bool) {
	if o.Age == nil || *o.Age <= 0 {
		return 0, false
	}
	return *o.Age, true
}

// RoleLabel prefers the descriptive role name over the short code.
func (o *Opportunity) RoleLabel() string {
	if name := strings.TrimSpace(o.RoleName); name != "" {
		return name
	}
	return o.Role
}

// Tier returns the published classification, falling back to the score bucket.
func (o *Opportunity) Tier() Tier {
	switch Tier(strings.ToLower(strings.TrimSpace(o.Classification))) {
	case TierHot:
		return TierHot
	case TierWarm:
		return TierWarm
	case TierCold:
		return TierCold
	}
	return TierForScore(o.OB1Score)
}

// ValueThousands returns the market value in thousands of euro. Feeds are not
// consistent about units, so values at or below 1000 are taken as already
// expressed in thousands.
func (o *Opportunity) ValueThousands() int {
	return NormalizeValue(o.MarketValue)
}

// CostThousands returns the estimated acquisition cost in thousands of euro,
// deriving it from the market value when the feed does not carry one.
func (o *Opportunity) CostThousands() int {
	if o.EstimatedLoanCost > 0 {
		return o.EstimatedLoanCost
	}
	mv := o.ValueThousands()
	if mv <= 0 {
		return 0
	}
	return (mv*defaultCostPercent + 50) / 100
}

// NormalizeValue converts a market value to thousands of euro.
func NormalizeValue(v int) int {
	if v <= 0 {
		return 0
	}
	if v > 1000 {
		return (v + 500) / 1000
	}
	return v
}

func (o *Opportunity) GetStringField(name string) string {
	switch name {
	case OpportunityIDField:
		return o.ID
	case OpportunityNameField:
		return o.PlayerName
	default:
		return ""
	}
}

func (v *Opportunities) Len() int {
	return len(v.Items)
}

func (v *Opportunities) FindByID(id string) *Opportunity {
	for _, o := range v.Items {
		if o.ID == id {
			return o
		}
	}
	return nil
}

// Exclude removes opportunities whose field matches one of targets and returns the removed ids.
// Order of the remaining items is preserved.
func (v *Opportunities) Exclude(name string, targets []string) []string {
	if len(targets) == 0 {
		return nil
	}
	set := make(map[string]struct{}, len(targets))
	for _, t := range targets {
		set[t] = struct{}{}
	}

	var excluded []string
	kept := v.Items[:0]
	for _, o := range v.Items {
		if _, ok := set[o.GetStringField(name)]; ok {
			excluded = append(excluded, o.ID)
			continue
		}
		kept = append(kept, o)
	}
	v.Items = kept
	return excluded
}

// Keep retains only the items for which fn returns true and returns the dropped ids.
func (v *Opportunities) Keep(fn func(*Opportunity) bool) []string {
	var dropped []string
	kept := v.Items[:0]
	for _, o := range v.Items {
		if fn(o) {
			kept = append(kept, o)
			continue
		}
		dropped = append(dropped, o.ID)
	}
	v.Items = kept
	return dropped
}

// Copy returns a shallow copy so that filters can drop items without touching the source list.
func (v *Opportunities) Copy() *Opportunities {
	items := make([]*Opportunity, len(v.Items))
	copy(items, v.Items)
	return &Opportunities{Items: items, LastUpdate: v.LastUpdate}
}

// SortByScore orders the list by ob1_score, highest first.
func (v *Opportunities) SortByScore() {
	sort.SliceStable(v.Items, func(i, j int) bool {
		return v.Items[i].OB1Score > v.Items[j].OB1Score
	})
}

// Limit truncates the list to n items. Non-positive n leaves the list untouched.
func (v *Opportunities) Limit(n int) {
	if n > 0 && len(v.Items) > n {
		v.Items = v.Items[:n]
	}
}

func (v *Opportunities) byTier(tier Tier) *Opportunities {
	out := &Opportunities{LastUpdate: v.LastUpdate}
	for _, o := range v.Items {
		if TierForScore(o.OB1Score) == tier {
			out.Items = append(out.Items, o)
		}
	}
	return out
}

// Hot returns opportunities scoring 80 or more.
func (v *Opportunities) Hot() *Opportunities { return v.byTier(TierHot) }

// Warm returns opportunities scoring between 60 and 79.
func (v *Opportunities) Warm() *Opportunities { return v.byTier(TierWarm) }

// Cold returns opportunities scoring below 60.
func (v *Opportunities) Cold() *Opportunities { return v.byTier(TierCold) }

// Search matches the query against the player name, role label, opportunity
// type and prior clubs, returning hits sorted by score.
func (v *Opportunities) Search(query string) *Opportunities {
	q := strings.ToLower(strings.TrimSpace(query))
	out := &Opportunities{LastUpdate: v.LastUpdate}
	if q == "" {
		return out
	}

	for _, o := range v.Items {
		if o.matches(q) {
			out.Items = append(out.Items, o)
		}
	}
	out.SortByScore()
	return out
}

func (o *Opportunity) matches(q string) bool {
	fields := []string{o.PlayerName, o.RoleLabel(), o.Role, o.OpportunityType, o.CurrentClub}
	fields = append(fields, o.PreviousClubs...)
	for _, f := range fields {
		if f != "" && strings.Contains(strings.ToLower(f), q) {
			return true
		}
	}
	return false
}

// Stats summarizes the feed by tier.
type Stats struct {
	Total      int    `json:"total"`
	Hot        int    `json:"hot"`
	Warm       int    `json:"warm"`
	Cold       int    `json:"cold"`
	LastUpdate string `json:"last_update,omitempty"`
}

func (v *Opportunities) Stats() Stats {
	stats := Stats{Total: v.Len(), LastUpdate: v.LastUpdate}
	for _, o := range v.Items {
		switch TierForScore(o.OB1Score) {
		case TierHot:
			stats.Hot++
		case TierWarm:
			stats.Warm++
		default:
			stats.Cold++
		}
	}
	return stats
}

// IDs returns the ids of every opportunity in the list.
func (v *Opportunities) IDs() []string {
	ids := make([]string, 0, len(v.Items))
	for _, o := range v.Items {
		ids = append(ids, o.ID)
	}
	return ids
}
