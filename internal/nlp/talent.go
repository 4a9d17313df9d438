package nlp

import (
	"regexp"
	"slices"
	"strings"

	"github.com/ob1-scout/ob1-scout/internal/feed"
)

// SkillRequirement is a minimum value on one scouting skill.
type SkillRequirement struct {
	Skill       string `json:"skill"`
	MinValue    int    `json:"min_value"`
	Description string `json:"description,omitempty"`
}

// TalentQuery is a field-language request ("terzino che spinge") turned into
// positions, skill hints and an age window.
type TalentQuery struct {
	Positions       []feed.Role        `json:"positions,omitempty"`
	Characteristics []SkillRequirement `json:"characteristics,omitempty"`
	AgeMin          int                `json:"age_min,omitempty"`
	AgeMax          int                `json:"age_max,omitempty"`
	Description     string             `json:"description"`
}

// HasAgeRange reports whether the query restricts player age.
func (q TalentQuery) HasAgeRange() bool {
	return q.AgeMin > 0 || q.AgeMax > 0
}

type phrase[T any] struct {
	words string
	value T
	re    *regexp.Regexp
}

func newPhrase[T any](words string, value T) phrase[T] {
	return phrase[T]{words: words, value: value, re: regexp.MustCompile(`\b` + regexp.QuoteMeta(words) + `\b`)}
}

// Longer phrases come before the words they contain; the first match wins.
var talentRoles = []phrase[[]feed.Role]{
	newPhrase("terzino destro", []feed.Role{feed.RoleRightBack}),
	newPhrase("terzino sinistro", []feed.Role{feed.RoleLeftBack}),
	newPhrase("terzino", []feed.Role{feed.RoleRightBack, feed.RoleLeftBack}),
	newPhrase("difensore centrale", []feed.Role{feed.RoleCentreBack}),
	newPhrase("centrocampista centrale", []feed.Role{feed.RoleCentralMid}),
	newPhrase("centrale", []feed.Role{feed.RoleCentreBack}),
	newPhrase("difensore", []feed.Role{feed.RoleCentreBack, feed.RoleRightBack, feed.RoleLeftBack}),
	newPhrase("stopper", []feed.Role{feed.RoleCentreBack}),
	newPhrase("centrocampista", []feed.Role{feed.RoleCentralMid, feed.RoleDefensiveMid, feed.RoleAttackingMid}),
	newPhrase("mediano", []feed.Role{feed.RoleDefensiveMid, feed.RoleCentralMid}),
	newPhrase("regista", []feed.Role{feed.RoleDefensiveMid, feed.RoleCentralMid}),
	newPhrase("mezzala", []feed.Role{feed.RoleCentralMid}),
	newPhrase("trequartista", []feed.Role{feed.RoleAttackingMid}),
	newPhrase("interno", []feed.Role{feed.RoleCentralMid}),
	newPhrase("esterno destro", []feed.Role{feed.RoleRightWingBack, feed.RoleRightWinger}),
	newPhrase("esterno sinistro", []feed.Role{feed.RoleLeftWingBack, feed.RoleLeftWinger}),
	newPhrase("esterno", []feed.Role{feed.RoleLeftWingBack, feed.RoleRightWingBack, feed.RoleLeftWinger, feed.RoleRightWinger}),
	newPhrase("ala destra", []feed.Role{feed.RoleRightWinger}),
	newPhrase("ala sinistra", []feed.Role{feed.RoleLeftWinger}),
	newPhrase("ala", []feed.Role{feed.RoleLeftWinger, feed.RoleRightWinger}),
	newPhrase("fascia", []feed.Role{feed.RoleLeftWingBack, feed.RoleRightWingBack, feed.RoleLeftBack, feed.RoleRightBack}),
	newPhrase("attaccante", []feed.Role{feed.RoleForward, feed.RoleCentreForward}),
	newPhrase("prima punta", []feed.Role{feed.RoleCentreForward}),
	newPhrase("seconda punta", []feed.Role{feed.RoleForward, feed.RoleAttackingMid}),
	newPhrase("punta", []feed.Role{feed.RoleCentreForward, feed.RoleForward}),
	newPhrase("centravanti", []feed.Role{feed.RoleCentreForward}),
	newPhrase("portiere", []feed.Role{feed.RoleGoalkeeper}),
}

func req(skill string, minValue int, description string) SkillRequirement {
	return SkillRequirement{Skill: skill, MinValue: minValue, Description: description}
}

// Every matching characteristic contributes.
var talentCharacteristics = []phrase[[]SkillRequirement]{
	newPhrase("veloce", []SkillRequirement{req("velocita", 75, "veloce")}),
	newPhrase("rapido", []SkillRequirement{req("velocita", 75, "rapido")}),
	newPhrase("tecnico", []SkillRequirement{req("tecnica", 75, "tecnico")}),
	newPhrase("dribblatore", []SkillRequirement{req("dribbling", 75, "bravo nel dribbling")}),
	newPhrase("che dribbla", []SkillRequirement{req("dribbling", 70, "bravo nel dribbling")}),
	newPhrase("goleador", []SkillRequirement{req("tiro", 70, "pericoloso sotto porta")}),
	newPhrase("bomber", []SkillRequirement{req("tiro", 75, "bomber")}),
	newPhrase("che segna", []SkillRequirement{req("tiro", 68, "pericoloso")}),
	newPhrase("che difende", []SkillRequirement{req("difesa", 70, "solido difensivamente")}),
	newPhrase("difensivo", []SkillRequirement{req("difesa", 70, "affidabile dietro")}),
	newPhrase("che pressa", []SkillRequirement{req("pressing", 75, "aggressivo nel pressing")}),
	newPhrase("aggressivo", []SkillRequirement{req("pressing", 75, "aggressivo")}),
	newPhrase("pressing alto", []SkillRequirement{req("pressing", 78, "ottimo nel pressing alto")}),
	newPhrase("fisico", []SkillRequirement{req("fisico", 75, "fisicamente forte")}),
	newPhrase("forte", []SkillRequirement{req("fisico", 75, "forte fisicamente")}),
	newPhrase("robusto", []SkillRequirement{req("fisico", 78, "robusto")}),
	newPhrase("potente", []SkillRequirement{req("fisico", 75, "potente")}),
	newPhrase("che imposta", []SkillRequirement{req("visione", 70, ""), req("tecnica", 70, "")}),
	newPhrase("impostazione", []SkillRequirement{req("visione", 72, ""), req("tecnica", 68, "")}),
	newPhrase("che vede il gioco", []SkillRequirement{req("visione", 75, "ottima visione di gioco")}),
	newPhrase("intelligente", []SkillRequirement{req("visione", 72, "intelligente tatticamente")}),
	newPhrase("box to box", boxToBox),
	newPhrase("box-to-box", boxToBox),
	newPhrase("che spinge", []SkillRequirement{req("velocita", 72, "propositivo in fase offensiva"), req("fisico", 65, "")}),
	newPhrase("offensivo", []SkillRequirement{req("velocita", 68, ""), req("tecnica", 68, "propositivo in avanti")}),
	newPhrase("tutta fascia", []SkillRequirement{req("velocita", 75, "tutta fascia"), req("difesa", 60, ""), req("fisico", 70, "")}),
	newPhrase("incursore", []SkillRequirement{req("velocita", 70, "incursore"), req("dribbling", 68, "")}),
}

var boxToBox = []SkillRequirement{req("pressing", 70, "box-to-box"), req("fisico", 68, ""), req("tecnica", 65, "")}

type talentAge struct {
	min int
	max int
}

var talentAges = []phrase[talentAge]{
	newPhrase("giovanissimo", talentAge{max: 19}),
	newPhrase("giovane", talentAge{max: 21}),
	newPhrase("under 21", talentAge{max: 21}),
	newPhrase("under 23", talentAge{max: 23}),
	newPhrase("under 25", talentAge{max: 25}),
	newPhrase("esperto", talentAge{min: 26}),
	newPhrase("maturo", talentAge{min: 25}),
}

var talentQueryPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\b(mi serve|cerco|voglio|ho bisogno|mi manca)\b.*\b(un|uno|una)\b`),
	regexp.MustCompile(`(?i)\b(terzino|difensore|centrocampista|ala|attaccante|punta|mediano|trequartista)\b.*\b(che|veloce|tecnico|forte|bravo)\b`),
	regexp.MustCompile(`(?i)\b(che spinge|box.?to.?box|tutta fascia|che imposta|che pressa)\b`),
	regexp.MustCompile(`(?i)\b(giocatore|talento)\b.*\b(veloce|tecnico|fisico|giovane)\b`),
}

// IsTalentQuery reports whether text reads like a field-language talent request.
func IsTalentQuery(text string) bool {
	for _, re := range talentQueryPatterns {
		if re.MatchString(text) {
			return true
		}
	}
	return false
}

// ParseTalentQuery extracts a talent request from text. It reports false when
// neither a role nor a characteristic is mentioned.
func ParseTalentQuery(text string) (TalentQuery, bool) {
	lower := strings.ToLower(strings.TrimSpace(text))

	var (
		q            TalentQuery
		descriptions []string
	)

	for _, p := range talentRoles {
		if p.re.MatchString(lower) {
			q.Positions = append(q.Positions, p.value...)
			descriptions = append(descriptions, p.words)
			break
		}
	}

	for _, p := range talentCharacteristics {
		if !p.re.MatchString(lower) {
			continue
		}
		q.Characteristics = append(q.Characteristics, p.value...)
		for _, r := range p.value {
			if r.Description == "" {
				continue
			}
			if !slices.Contains(descriptions, r.Description) {
				descriptions = append(descriptions, r.Description)
			}
			break
		}
	}

	for _, p := range talentAges {
		if p.re.MatchString(lower) {
			q.AgeMin, q.AgeMax = p.value.min, p.value.max
			descriptions = append(descriptions, p.words)
			break
		}
	}

	if len(q.Positions) == 0 && len(q.Characteristics) == 0 {
		return TalentQuery{}, false
	}

	q.Description = strings.Join(descriptions, ", ")
	return q, true
}
