package nlp

import (
	"slices"
	"testing"

	"github.com/ob1-scout/ob1-scout/internal/feed"
)

func TestParseTalentQuery(t *testing.T) {
	t.Parallel()

	tests := []struct {
		text      string
		positions []feed.Role
		skills    []string
		ageMin    int
		ageMax    int
		desc      string
	}{
		{
			text:      "mi serve un terzino che spinge",
			positions: []feed.Role{feed.RoleRightBack, feed.RoleLeftBack},
			skills:    []string{"velocita", "fisico"},
			desc:      "terzino, propositivo in fase offensiva",
		},
		{
			text:      "Terzino destro veloce giovane",
			positions: []feed.Role{feed.RoleRightBack},
			skills:    []string{"velocita"},
			ageMax:    21,
			desc:      "terzino destro, veloce, giovane",
		},
		{
			text:      "centrocampista box-to-box",
			positions: []feed.Role{feed.RoleCentralMid, feed.RoleDefensiveMid, feed.RoleAttackingMid},
			skills:    []string{"pressing", "fisico", "tecnica"},
			desc:      "centrocampista, box-to-box",
		},
		{
			text:   "qualcuno che imposta, esperto",
			skills: []string{"visione", "tecnica"},
			ageMin: 26,
			desc:   "esperto",
		},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			t.Parallel()

			q, ok := ParseTalentQuery(tt.text)
			if !ok {
				t.Fatalf("expected a talent query")
			}
			if !slices.Equal(q.Positions, tt.positions) {
				t.Fatalf("expected positions %v, got %v", tt.positions, q.Positions)
			}
			var skills []string
			for _, c := range q.Characteristics {
				skills = append(skills, c.Skill)
			}
			if !slices.Equal(skills, tt.skills) {
				t.Fatalf("expected skills %v, got %v", tt.skills, skills)
			}
			if q.AgeMin != tt.ageMin || q.AgeMax != tt.ageMax {
				t.Fatalf("expected age %d-%d, got %d-%d", tt.ageMin, tt.ageMax, q.AgeMin, q.AgeMax)
			}
			if q.Description != tt.desc {
				t.Fatalf("expected description %q, got %q", tt.desc, q.Description)
			}
		})
	}
}

func TestParseTalentQueryNoMatch(t *testing.T) {
	t.Parallel()

	for _, text := range []string{"dammi le statistiche", "una scala", "giovane"} {
		if q, ok := ParseTalentQuery(text); ok {
			t.Fatalf("%q: expected no talent query, got %+v", text, q)
		}
	}
}

func TestIsTalentQuery(t *testing.T) {
	t.Parallel()

	tests := []struct {
		text string
		want bool
	}{
		{"mi serve un terzino", true},
		{"attaccante veloce", true},
		{"un esterno tutta fascia", true},
		{"talento tecnico", true},
		{"statistiche", false},
		{"centrocampisti svincolati", false},
	}

	for _, tt := range tests {
		if got := IsTalentQuery(tt.text); got != tt.want {
			t.Fatalf("%q: expected %v, got %v", tt.text, tt.want, got)
		}
	}
}

func TestShouldStartWizard(t *testing.T) {
	t.Parallel()

	tests := []struct {
		text string
		want bool
	}{
		{"/scout", true},
		{"/Wizard please", true},
		{"mi serve qualcuno in difesa", true},
		{"non so cosa cercare", true},
		{"che opportunità ci sono", true},
		{"centrocampisti svincolati under 25", false},
		{"scout", false},
	}

	for _, tt := range tests {
		if got := ShouldStartWizard(tt.text); got != tt.want {
			t.Fatalf("%q: expected %v, got %v", tt.text, tt.want, got)
		}
	}
}
