package nlp

import (
	"strings"

	"github.com/ob1-scout/ob1-scout/internal/feed"
)

type Intent string

const (
	IntentBestList     Intent = "best-list"
	IntentGoodList     Intent = "good-list"
	IntentFullList     Intent = "full-list"
	IntentStats        Intent = "stats"
	IntentHelp         Intent = "help"
	IntentNameSearch   Intent = "name-search"
	IntentClubFit      Intent = "club-fit"
	IntentTopTalent    Intent = "top-talent"
	IntentCreateAlert  Intent = "create-alert"
	IntentUnrecognized Intent = "unrecognized"
)

// RoleFamily is a broad role as people name it ("centrocampista"), covering several position codes.
type RoleFamily string

const (
	FamilyMidfielder RoleFamily = "centrocampista"
	FamilyDefender   RoleFamily = "difensore"
	FamilyForward    RoleFamily = "attaccante"
	FamilyGoalkeeper RoleFamily = "portiere"
	FamilyWide       RoleFamily = "esterno"
	FamilyFullBack   RoleFamily = "terzino"
)

var familyPositions = map[RoleFamily][]feed.Role{
	FamilyMidfielder: {feed.RoleCentralMid, feed.RoleDefensiveMid, feed.RoleAttackingMid},
	FamilyDefender:   {feed.RoleCentreBack, feed.RoleRightBack, feed.RoleLeftBack},
	FamilyForward:    {feed.RoleForward, feed.RoleCentreForward},
	FamilyGoalkeeper: {feed.RoleGoalkeeper},
	FamilyWide:       {feed.RoleLeftWingBack, feed.RoleRightWingBack, feed.RoleLeftWinger, feed.RoleRightWinger},
	FamilyFullBack:   {feed.RoleRightBack, feed.RoleLeftBack},
}

// Positions returns the position codes covered by the family.
func (f RoleFamily) Positions() []feed.Role {
	return append([]feed.Role(nil), familyPositions[RoleFamily(strings.ToLower(string(f)))]...)
}

var familyOrder = []RoleFamily{FamilyFullBack, FamilyMidfielder, FamilyDefender, FamilyForward, FamilyGoalkeeper, FamilyWide}

// ParseRoleFamily finds the family named in free text such as "terzino destro" or "Difensori".
func ParseRoleFamily(s string) (RoleFamily, bool) {
	lower := strings.ToLower(s)
	for _, f := range familyOrder {
		// stems, so plurals match too
		if strings.Contains(lower, string(f)[:len(f)-1]) {
			return f, true
		}
	}
	return "", false
}

// Filters is the structured part of a query. Zero values mean "not requested".
type Filters struct {
	Role               RoleFamily          `json:"role,omitempty"`
	Roles              []feed.Role         `json:"roles,omitempty"`
	Availability       feed.Availability   `json:"availability,omitempty"`
	Types              []feed.Availability `json:"types,omitempty"`
	AgeMin             int                 `json:"age_min,omitempty"`
	AgeMax             int                 `json:"age_max,omitempty"`
	MinScore           int                 `json:"min_score,omitempty"`
	MaxScore           int                 `json:"max_score,omitempty"`
	Query              string              `json:"query,omitempty"`
	Limit              int                 `json:"limit,omitempty"`
	Nationality        string              `json:"nationality,omitempty"`
	RequiresEUPassport bool                `json:"requires_eu_passport,omitempty"`
}

type ParsedQuery struct {
	Intent         Intent  `json:"intent"`
	Filters        Filters `json:"filters"`
	Confidence     float64 `json:"confidence"`
	Interpretation string  `json:"interpretation,omitempty"`
	Warning        string  `json:"warning,omitempty"`
	// Fallback is set when no rule recognized the text and the intent is
	// the permissive full-list guess.
	Fallback       bool    `json:"fallback,omitempty"`
}

// Reliability tells callers what to do with a parse.
type Reliability int

const (
	Reliable Reliability = iota
	NeedsReclassification
	Failed
)

const (
	DefaultHelpBelow       = 0.3
	DefaultReclassifyBelow = 0.5
)

// Reliability classifies an unrecognized parse by confidence: below helpBelow
// it failed, below reclassifyBelow it is worth a second opinion. A fallback
// guess always deserves a second opinion; other recognized intents are
// reliable.
func (q ParsedQuery) Reliability(helpBelow, reclassifyBelow float64) Reliability {
	if q.Fallback {
		return NeedsReclassification
	}
	if q.Intent != IntentUnrecognized {
		return Reliable
	}
	switch {
	case q.Confidence < helpBelow:
		return Failed
	case q.Confidence < reclassifyBelow:
		return NeedsReclassification
	default:
		return Reliable
	}
}
