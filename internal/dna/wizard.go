package dna

import (
	"slices"
	"strings"

	"github.com/ob1-scout/ob1-scout/internal/feed"
)

const (
	VirtualClubID   = "wizard_virtual"
	virtualClubName = "Ricerca Wizard"
	anyCode         = "any"
)

// WizardAnswers are the answer codes collected by the scouting questionnaire.
// Character is recorded for the summary only; it does not shape the profile.
type WizardAnswers struct {
	Role       string `json:"role"`
	Experience string `json:"experience"`
	Budget     string `json:"budget"`
	Character  string `json:"character"`
	Club       string `json:"club"`
}

type ageRange struct {
	min int
	max int
}

type budgetChoice struct {
	category BudgetCategory
	maxCost  int
}

var wizardRoles = map[string][]feed.Role{
	"dif": {feed.RoleCentreBack, feed.RoleLeftBack, feed.RoleRightBack},
	"cen": {feed.RoleCentralMid, feed.RoleDefensiveMid, feed.RoleAttackingMid},
	"att": {feed.RoleForward, feed.RoleCentreForward, feed.RoleLeftWinger, feed.RoleRightWinger},
	"por": {feed.RoleGoalkeeper},
	"any": nil,
}

var wizardExperience = map[string]ageRange{
	"gio": {17, 23},
	"pro": {23, 28},
	"esp": {28, 36},
	"any": {17, 36},
}

var wizardBudget = map[string]budgetChoice{
	"zer": {BudgetFreeAgentsOnly, 0},
	"pre": {BudgetLoansOnly, 50},
	"any": {BudgetPurchases, 200},
}

func lookup[T any](m map[string]T, code string) T {
	if v, ok := m[strings.ToLower(strings.TrimSpace(code))]; ok {
		return v
	}
	return m[anyCode]
}

// FromWizard turns questionnaire answers into a club profile. When answers.Club
// names one of clubs, that profile is refined instead of building a virtual one.
// The clubs map is never modified.
func FromWizard(answers WizardAnswers, clubs map[string]*ClubProfile) *ClubProfile {
	roles := lookup(wizardRoles, answers.Role)
	ages := lookup(wizardExperience, answers.Experience)
	budget := lookup(wizardBudget, answers.Budget)

	if base, ok := clubs[strings.TrimSpace(answers.Club)]; ok && base != nil {
		return refine(base.Clone(), roles, ages, budget)
	}

	var needs []RoleNeed
	if len(roles) > 0 {
		for _, r := range roles {
			needs = append(needs, RoleNeed{Position: r, Priority: PriorityHigh, AgeMin: ages.min, AgeMax: ages.max})
		}
	} else {
		needs = []RoleNeed{
			{Position: feed.RoleCentralMid, Priority: PriorityMedium, AgeMin: ages.min, AgeMax: ages.max},
			{Position: feed.RoleCentreBack, Priority: PriorityMedium, AgeMin: ages.min, AgeMax: ages.max},
			{Position: feed.RoleForward, Priority: PriorityMedium, AgeMin: ages.min, AgeMax: ages.max},
			{Position: feed.RoleLeftWingBack, Priority: PriorityLow, AgeMin: ages.min, AgeMax: ages.max},
		}
	}

	return &ClubProfile{
		ID:               VirtualClubID,
		Name:             virtualClubName,
		Category:         TierSerieC,
		PrimaryFormation: "4-3-3",
		PlayingStyles:    []string{"possesso", "transizioni"},
		Needs:            needs,
		BudgetType:       budget.category,
		MaxLoanCost:      budget.maxCost,
	}
}

func refine(club *ClubProfile, roles []feed.Role, ages ageRange, budget budgetChoice) *ClubProfile {
	if len(roles) > 0 {
		matched := false
		for i := range club.Needs {
			if slices.Contains(roles, club.Needs[i].Position) {
				club.Needs[i].Priority = PriorityHigh
				club.Needs[i].AgeMin = ages.min
				club.Needs[i].AgeMax = ages.max
				matched = true
				continue
			}
			club.Needs[i].Priority = PriorityLow
		}
		if !matched {
			for _, r := range roles {
				club.Needs = append(club.Needs, RoleNeed{Position: r, Priority: PriorityHigh, AgeMin: ages.min, AgeMax: ages.max})
			}
		}
	} else {
		for i := range club.Needs {
			club.Needs[i].AgeMin, club.Needs[i].AgeMax = intersect(club.Needs[i], ages)
		}
	}

	club.BudgetType = budget.category
	if cost := min(club.MaxLoanCost, budget.maxCost); cost > 0 {
		club.MaxLoanCost = cost
	} else {
		club.MaxLoanCost = budget.maxCost
	}
	return club
}

// intersect narrows a need's range to ages; a need without a range takes ages,
// and disjoint ranges collapse onto ages.
func intersect(n RoleNeed, ages ageRange) (int, int) {
	if !n.HasAgeRange() {
		return ages.min, ages.max
	}
	lo := max(n.AgeMin, ages.min)
	hi := ages.max
	if n.AgeMax > 0 {
		hi = min(n.AgeMax, ages.max)
	}
	if lo > hi {
		return ages.min, ages.max
	}
	return lo, hi
}

type WizardOption struct {
	Label string
	Code  string
}

type WizardQuestion struct {
	Key     string
	Prompt  string
	Options []WizardOption
}

// WizardQuestions is the questionnaire in the order it is asked.
var WizardQuestions = []WizardQuestion{
	{
		Key:    "role",
		Prompt: "Che ruolo stai cercando?",
		Options: []WizardOption{
			{"Difensore", "dif"}, {"Centrocampista", "cen"}, {"Attaccante", "att"},
			{"Portiere", "por"}, {"Vediamo tutto", anyCode},
		},
	},
	{
		Key:    "experience",
		Prompt: "Che profilo di esperienza?",
		Options: []WizardOption{
			{"Giovane da far crescere", "gio"}, {"Già pronto per la categoria", "pro"},
			{"Esperto/Leader", "esp"}, {"Non importa", anyCode},
		},
	},
	{
		Key:    "budget",
		Prompt: "Che budget hai?",
		Options: []WizardOption{
			{"Solo parametri zero", "zer"}, {"Anche prestiti", "pre"}, {"Vediamo tutto", anyCode},
		},
	},
	{
		Key:    "character",
		Prompt: "Che tipo di giocatore serve allo spogliatoio?",
		Options: []WizardOption{
			{"Un leader/capitano", "lea"}, {"Un gregario affidabile", "gre"},
			{"Un talento da scoprire", "tal"}, {"Non importa", anyCode},
		},
	},
}

// Set stores code under the question key.
func (a *WizardAnswers) Set(key, code string) {
	switch key {
	case "role":
		a.Role = code
	case "experience":
		a.Experience = code
	case "budget":
		a.Budget = code
	case "character":
		a.Character = code
	case "club":
		a.Club = code
	}
}
