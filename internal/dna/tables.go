package dna

import "github.com/ob1-scout/ob1-scout/internal/feed"

// Weights are expressed in percent and sum to 100.
type Weights struct {
	Role         int
	Age          int
	Style        int
	Availability int
	Budget       int
	Level        int
}

func (w Weights) Total() int {
	return w.Role + w.Age + w.Style + w.Availability + w.Budget + w.Level
}

// DefaultWeights returns the dimension weights used by Score.
func DefaultWeights() Weights {
	return weights
}

var weights = Weights{
	Role:         25,
	Age:          15,
	Style:        15,
	Availability: 20,
	Budget:       20,
	Level:        5,
}

// compatibleRoles lists, per role, the roles a player can reasonably cover.
// The relation is directional: DC covers MED but MED does not cover DC.
var compatibleRoles = map[feed.Role][]feed.Role{
	feed.RoleCentreBack:    {feed.RoleDefensiveMid},
	feed.RoleLeftBack:      {feed.RoleLeftWingBack},
	feed.RoleRightBack:     {feed.RoleRightWingBack},
	feed.RoleDefensiveMid:  {feed.RoleCentralMid},
	feed.RoleCentralMid:    {feed.RoleDefensiveMid, feed.RoleAttackingMid},
	feed.RoleAttackingMid:  {feed.RoleCentralMid},
	feed.RoleLeftWingBack:  {feed.RoleLeftBack, feed.RoleLeftWinger},
	feed.RoleRightWingBack: {feed.RoleRightBack, feed.RoleRightWinger},
	feed.RoleLeftWinger:    {feed.RoleLeftWingBack},
	feed.RoleRightWinger:   {feed.RoleRightWingBack},
	feed.RoleForward:       {feed.RoleCentreForward, feed.RoleLeftWinger, feed.RoleRightWinger},
	feed.RoleCentreForward: {feed.RoleForward},
	feed.RoleGoalkeeper:    {},
}

// defaultRoleFit applies when the club has not declared any need.
var defaultRoleFit = map[feed.Role]int{
	feed.RoleGoalkeeper:    90,
	feed.RoleCentralMid:    70,
	feed.RoleCentreBack:    70,
	feed.RoleDefensiveMid:  70,
	feed.RoleAttackingMid:  70,
	feed.RoleLeftBack:      65,
	feed.RoleRightBack:     65,
	feed.RoleLeftWingBack:  65,
	feed.RoleRightWingBack: 65,
	feed.RoleLeftWinger:    60,
	feed.RoleRightWinger:   60,
	feed.RoleForward:       60,
	feed.RoleCentreForward: 60,
}

// valueCaps is the maximum market value (thousands of euro) a tier can afford.
var valueCaps = map[Tier]int{
	TierSanMarino: 300,
	TierSerieD:    500,
	TierSerieC:    2000,
	TierSerieB:    10000,
}

const defaultValueCap = 5000

// styleSkills maps a playing style tag to the skills it relies on.
var styleSkills = map[string][]string{
	"pressing_alto":     {"pressing", "fisico", "velocita"},
	"possesso":          {"tecnica", "visione"},
	"transizioni":       {"velocita", "dribbling", "tecnica"},
	"difesa_bassa":      {"difesa", "fisico"},
	"gioco_diretto":     {"fisico", "tiro"},
	"gioco_aereo":       {"fisico"},
	"gioco_sulle_fasce": {"velocita", "dribbling", "tecnica"},
	"mix_sammarinese":   {"tecnica", "visione", "velocita", "dribbling"},
}

var availabilityFit = map[feed.Availability]int{
	feed.AvailabilityFreeAgent:         100,
	feed.AvailabilityMutualTermination: 95,
	feed.AvailabilityLoan:              70,
	feed.AvailabilityContractExpiring:  60,
}

// levelStep is one band of a level curve: values up to max score the given points.
type levelStep struct {
	max   int
	score int
}

type levelCurve struct {
	unknown int
	steps   []levelStep
	above   int
}

var levelCurves = map[Tier]levelCurve{
	TierSanMarino: {
		unknown: 60,
		steps:   []levelStep{{100, 100}, {300, 70}, {500, 40}, {1000, 20}},
		above:   5,
	},
	TierSerieD: {
		unknown: 60,
		steps:   []levelStep{{300, 100}, {800, 70}, {1500, 40}},
		above:   15,
	},
	TierSerieC: {
		unknown: 60,
		steps:   []levelStep{{500, 90}, {1500, 100}, {3000, 60}, {5000, 30}},
		above:   10,
	},
}

// StyleSkills returns the skills associated with a playing style tag.
func StyleSkills(style string) []string {
	return append([]string(nil), styleSkills[style]...)
}

// CompatibleRoles returns the roles r can cover besides its own.
func CompatibleRoles(r feed.Role) []feed.Role {
	return append([]feed.Role(nil), compatibleRoles[r]...)
}
