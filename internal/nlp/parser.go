package nlp

import (
	"slices"
	"strings"
)

const maxConfidence = 100

// Parse interprets an Italian free-text request. It never fails: text it
// cannot make sense of comes back as IntentUnrecognized with zero confidence.
func Parse(text string) ParsedQuery {
	st := &state{
		raw:   strings.TrimSpace(text),
		lower: strings.ToLower(strings.TrimSpace(text)),
	}

	var (
		confidence int
		fragments  []string
		warnings   []string
		fallback   bool
	)

	for _, r := range rules {
		sig, ok := r(st)
		if !ok {
			continue
		}

		if sig.intent != "" && (sig.mode == override || st.intent == "") {
			st.intent = sig.intent
		}
		confidence = max(confidence+sig.add, sig.floor)
		if sig.apply != nil {
			sig.apply(&st.filters)
		}
		if sig.prepend != "" && !slices.Contains(fragments, sig.prepend) {
			fragments = append([]string{sig.prepend}, fragments...)
		}
		if sig.fragment != "" {
			fragments = append(fragments, sig.fragment)
		}
		if sig.warning != "" {
			warnings = append(warnings, sig.warning)
		}
		if sig.fallback {
			fallback = true
		}
		if sig.final {
			break
		}
	}

	intent := st.intent
	if intent == "" {
		intent = IntentUnrecognized
	}

	return ParsedQuery{
		Intent:         intent,
		Filters:        st.filters,
		Confidence:     float64(min(confidence, maxConfidence)) / 100,
		Interpretation: strings.Join(fragments, " "),
		Warning:        strings.Join(warnings, " "),
		Fallback:       fallback,
	}
}
