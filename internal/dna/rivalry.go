package dna

import (
	"sort"
	"strings"
)

// rivalries lists historic local rivalries. A player with a past at one of
// these clubs is unlikely to accept a move to its rival.
var rivalries = map[string][]string{
	"cesena":       {"rimini"},
	"rimini":       {"cesena"},
	"reggiana":     {"modena", "parma"},
	"modena":       {"reggiana", "parma"},
	"parma":        {"reggiana", "modena"},
	"spal":         {"bologna"},
	"pisa":         {"livorno", "fiorentina"},
	"livorno":      {"pisa"},
	"empoli":       {"fiorentina"},
	"siena":        {"fiorentina"},
	"frosinone":    {"latina"},
	"latina":       {"frosinone"},
	"avellino":     {"salernitana", "benevento"},
	"salernitana":  {"avellino", "napoli"},
	"benevento":    {"avellino"},
	"catania":      {"palermo", "messina"},
	"palermo":      {"catania"},
	"messina":      {"catania", "reggina"},
	"reggina":      {"cosenza", "catanzaro"},
	"cosenza":      {"reggina", "catanzaro"},
	"catanzaro":    {"reggina", "cosenza"},
	"bari":         {"lecce", "foggia"},
	"lecce":        {"bari", "taranto"},
	"foggia":       {"bari"},
	"taranto":      {"lecce"},
	"padova":       {"venezia", "vicenza", "verona"},
	"venezia":      {"padova", "treviso"},
	"vicenza":      {"padova", "verona"},
	"brescia":      {"atalanta", "cremonese"},
	"cremonese":    {"brescia"},
	"como":         {"varese"},
	"novara":       {"alessandria", "pro vercelli"},
	"alessandria":  {"novara"},
	"pro vercelli": {"novara"},
}

// IncompatibleClubs returns, sorted, the clubs a player coming from
// previousClubs would probably refuse.
func IncompatibleClubs(previousClubs []string) []string {
	set := make(map[string]struct{})
	for _, club := range previousClubs {
		for _, rival := range rivalries[normalizeClub(club)] {
			set[rival] = struct{}{}
		}
	}

	out := make([]string, 0, len(set))
	for club := range set {
		out = append(out, club)
	}
	sort.Strings(out)
	return out
}

// IsRivalMove reports whether a player with the given past would be joining a rival.
func IsRivalMove(previousClubs []string, target string) bool {
	target = normalizeClub(target)
	if target == "" {
		return false
	}
	for _, club := range IncompatibleClubs(previousClubs) {
		if club == target {
			return true
		}
	}
	return false
}

func normalizeClub(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
