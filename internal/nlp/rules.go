package nlp

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/ob1-scout/ob1-scout/internal/feed"
)

type intentMode int

const (
	// keep the current intent when one is already set
	setIfUnset intentMode = iota
	override
)

// signal is what a rule contributes to the parse. Confidence values are
// whole percent points.
type signal struct {
	intent   Intent
	mode     intentMode
	add      int
	floor    int
	fragment string
	prepend  string
	warning  string
	apply    func(*Filters)
	final    bool
	// fallback marks a permissive guess rather than a recognized request
	fallback bool
}

type state struct {
	raw     string
	lower   string
	intent  Intent
	filters Filters
}

type rule func(st *state) (signal, bool)

// rules are folded in this order.
var rules = []rule{
	greetingRule,
	helpRule,
	statsRule,
	nameRule,
	roleRule,
	typeRule,
	ageRule,
	nationalityRule,
	qualityRule,
	genericListRule,
	limitRule,
	alertRule,
	talentRule,
	clubFitRule,
	fallbackRule,
}

func greetingRule(st *state) (signal, bool) {
	if !reGreeting.MatchString(st.lower) && !reSmallTalk.MatchString(st.lower) {
		return signal{}, false
	}
	return signal{intent: IntentHelp, mode: override, floor: 90, fragment: "benvenuto", final: true}, true
}

func helpRule(st *state) (signal, bool) {
	if !reHelp.MatchString(st.lower) {
		return signal{}, false
	}
	return signal{intent: IntentHelp, mode: override, floor: 95, final: true}, true
}

func statsRule(st *state) (signal, bool) {
	if !reStats.MatchString(st.lower) || reGenericList.MatchString(st.lower) {
		return signal{}, false
	}
	return signal{intent: IntentStats, mode: override, floor: 90, final: true}, true
}

func nameRule(st *state) (signal, bool) {
	name := extractPlayerName(st.raw)
	if utf8.RuneCountInString(name) <= 2 {
		return signal{}, false
	}
	return signal{
		intent:   IntentNameSearch,
		mode:     override,
		add:      70,
		fragment: fmt.Sprintf("%q", name),
		apply:    func(f *Filters) { f.Query = name },
	}, true
}

// extractPlayerName returns the capitalized word runs of text that are not
// query vocabulary, joined by a space.
func extractPlayerName(text string) string {
	clean := strings.TrimSpace(reNameStopWords.ReplaceAllString(text, ""))

	var names []string
	for _, run := range reNameRun.FindAllString(clean, -1) {
		var kept []string
		for _, word := range strings.Fields(run) {
			if isVocabulary(word) {
				continue
			}
			kept = append(kept, word)
		}
		if len(kept) > 0 {
			names = append(names, strings.Join(kept, " "))
		}
	}
	return strings.Join(names, " ")
}

func roleRule(st *state) (signal, bool) {
	for _, p := range rolePatterns {
		if !p.re.MatchString(st.lower) {
			continue
		}
		family := p.family
		return signal{
			intent:   IntentFullList,
			add:      25,
			fragment: string(family),
			apply:    func(f *Filters) { f.Role = family },
		}, true
	}
	return signal{}, false
}

func typeRule(st *state) (signal, bool) {
	for _, p := range typePatterns {
		if !p.re.MatchString(st.lower) {
			continue
		}
		availability := p.availability
		return signal{
			intent:   IntentFullList,
			add:      25,
			fragment: p.label,
			apply:    func(f *Filters) { f.Availability = availability },
		}, true
	}
	return signal{}, false
}

func ageRule(st *state) (signal, bool) {
	lo, hi, ok := ageBounds(st.lower)
	if !ok {
		return signal{}, false
	}

	var fragment string
	switch {
	case lo > 0 && lo == hi:
		fragment = fmt.Sprintf("%d anni", lo)
	case hi > 0:
		fragment = fmt.Sprintf("under %d", hi)
	case lo > 0:
		fragment = fmt.Sprintf("over %d", lo)
	}

	return signal{
		intent:   IntentFullList,
		add:      20,
		fragment: fragment,
		apply: func(f *Filters) {
			if lo > 0 {
				f.AgeMin = lo
			}
			if hi > 0 {
				f.AgeMax = hi
			}
		},
	}, true
}

// ageBounds reads the first age phrase: young (default max 25), experienced
// (default min 30) or an exact "N anni".
func ageBounds(lower string) (int, int, bool) {
	if m := reYoung.FindStringSubmatch(lower); m != nil {
		if n := firstNumber(m[2], m[3]); n > 0 {
			return 0, n, true
		}
		return 0, 25, true
	}
	if m := reExperienced.FindStringSubmatch(lower); m != nil {
		if n := firstNumber(m[2]); n > 0 {
			return n, 0, true
		}
		return 30, 0, true
	}
	if m := reExactAge.FindStringSubmatch(lower); m != nil {
		n := firstNumber(m[1])
		return n, n, true
	}
	return 0, 0, false
}

func firstNumber(candidates ...string) int {
	for _, c := range candidates {
		if n, err := strconv.Atoi(c); err == nil && n > 0 {
			return n
		}
	}
	return 0
}

func nationalityRule(st *state) (signal, bool) {
	for _, p := range nationalityPatterns {
		if !p.re.MatchString(st.lower) {
			continue
		}
		label := p.label
		passport := label != nationalityEuropean && nationalityPatterns[1].re.MatchString(st.lower)
		fragment := label
		if passport {
			fragment += " con passaporto UE"
		}
		return signal{
			intent:   IntentFullList,
			add:      15,
			fragment: fragment,
			warning:  "I dati di nazionalità sono ancora limitati nel database.",
			apply: func(f *Filters) {
				f.Nationality = label
				f.RequiresEUPassport = passport
			},
		}, true
	}
	return signal{}, false
}

func qualityRule(st *state) (signal, bool) {
	switch {
	case reHot.MatchString(st.lower):
		return signal{
			intent:  IntentBestList,
			mode:    override,
			floor:   80,
			prepend: "migliori",
			apply: func(f *Filters) {
				f.MinScore = 80
				f.MaxScore = 0
			},
		}, true
	case reWarm.MatchString(st.lower):
		return signal{
			intent:  IntentGoodList,
			mode:    override,
			floor:   75,
			prepend: "interessanti",
			apply: func(f *Filters) {
				f.MinScore = 60
				f.MaxScore = 79
			},
		}, true
	}
	return signal{}, false
}

func genericListRule(st *state) (signal, bool) {
	if st.intent != "" {
		return signal{}, false
	}
	hasTime := reTime.MatchString(st.lower)
	needPlayers := reNeedPlayers.MatchString(st.lower)
	if !hasTime && !needPlayers && !reGenericList.MatchString(st.lower) && !reListAll.MatchString(st.lower) {
		return signal{}, false
	}

	sig := signal{intent: IntentFullList, floor: 70}
	var fragments []string
	if hasTime {
		fragments = append(fragments, "recenti")
	}
	if needPlayers {
		fragments = append(fragments, "svincolati disponibili")
		sig.apply = func(f *Filters) { f.Availability = feed.AvailabilityFreeAgent }
	}
	sig.fragment = strings.Join(fragments, " ")
	return sig, true
}

const maxLimit = 20

// limitRule takes the first number in 1..20 that is not part of an age phrase.
func limitRule(st *state) (signal, bool) {
	for _, loc := range reLimit.FindAllStringSubmatchIndex(st.lower, -1) {
		start, end := loc[4], loc[5]
		if reAgeLead.MatchString(st.lower[:start]) || reAgeTrail.MatchString(st.lower[end:]) {
			continue
		}
		n, err := strconv.Atoi(st.lower[start:end])
		if err != nil || n < 1 || n > maxLimit {
			continue
		}
		return signal{apply: func(f *Filters) { f.Limit = n }}, true
	}
	return signal{}, false
}

func alertRule(st *state) (signal, bool) {
	if !reWatch.MatchString(st.lower) && !reWatchAlt.MatchString(st.lower) {
		return signal{}, false
	}
	return signal{
		intent:  IntentCreateAlert,
		mode:    override,
		floor:   90,
		prepend: "crea alert",
		apply: func(f *Filters) {
			if f.Role != "" {
				f.Roles = f.Role.Positions()
			}
			if f.Availability != "" {
				f.Types = []feed.Availability{f.Availability}
			}
		},
	}, true
}

func talentRule(st *state) (signal, bool) {
	if st.intent != "" || !reTalent.MatchString(st.lower) {
		return signal{}, false
	}
	return signal{intent: IntentTopTalent, floor: 85, prepend: "talenti squadre B"}, true
}

func clubFitRule(st *state) (signal, bool) {
	if st.intent != "" || !reClubFit.MatchString(st.lower) {
		return signal{}, false
	}
	club := clubName(st.lower)
	if club == "" {
		return signal{}, false
	}
	return signal{
		intent:   IntentClubFit,
		floor:    80,
		fragment: "DNA match per " + club,
		apply:    func(f *Filters) { f.Query = club },
	}, true
}

func clubName(lower string) string {
	for _, re := range clubPatterns {
		m := re.FindStringSubmatch(lower)
		if m == nil || m[1] == "" {
			continue
		}
		if _, skip := clubSkipWords[m[1]]; skip {
			continue
		}
		return m[1]
	}
	return ""
}

const shortText = 30

func fallbackRule(st *state) (signal, bool) {
	if st.intent != "" {
		return signal{}, false
	}
	if !reQuestion.MatchString(st.lower) && !reFootball.MatchString(st.lower) && utf8.RuneCountInString(st.lower) >= shortText {
		return signal{}, false
	}
	return signal{intent: IntentFullList, floor: 50, fallback: true}, true
}
