package ai

import (
	"context"
	"regexp"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/ob1-scout/ob1-scout/internal/feed"
	"github.com/ob1-scout/ob1-scout/internal/nlp"
)

// Intent is the label set the language model answers with.
type Intent string

const (
	IntentTalentSearch      Intent = "talent_search"
	IntentListOpportunities Intent = "list_opportunities"
	IntentStats             Intent = "stats"
	IntentHelp              Intent = "help"
	IntentGreeting          Intent = "greeting"
	IntentUnknown           Intent = "unknown"
)

var intentMap = map[Intent]nlp.Intent{
	IntentTalentSearch:      nlp.IntentFullList,
	IntentListOpportunities: nlp.IntentFullList,
	IntentStats:             nlp.IntentStats,
	IntentHelp:              nlp.IntentHelp,
	IntentGreeting:          nlp.IntentHelp,
	IntentUnknown:           nlp.IntentUnrecognized,
}

type ClassifiedFilters struct {
	Role           string `json:"role,omitempty"`
	Position       string `json:"position,omitempty"`
	Characteristic string `json:"characteristic,omitempty"`
	Type           string `json:"type,omitempty"`
	Age            string `json:"age,omitempty"`
}

type Classification struct {
	Intent      Intent
	Filters     ClassifiedFilters
	Confidence  float64
	Explanation string
	Raw         string
}

type Classifier interface {
	Classify(ctx context.Context, text string) (*Classification, error)
}

var (
	reUnder = regexp.MustCompile(`(?i)under\s*(\d+)`)
	reOver  = regexp.MustCompile(`(?i)over\s*(\d+)`)
)

// ToQuery maps the model answer onto the interpreter's query shape.
func (c *Classification) ToQuery() nlp.ParsedQuery {
	intent, ok := intentMap[Intent(strings.ToLower(strings.TrimSpace(string(c.Intent))))]
	if !ok {
		intent = nlp.IntentUnrecognized
	}

	var f nlp.Filters
	if family, ok := nlp.ParseRoleFamily(c.Filters.Role); ok {
		f.Role = family
	}
	if pos := feed.ParseRole(c.Filters.Position); pos.Known() {
		f.Roles = []feed.Role{pos}
	}
	if a := feed.ParseAvailability(c.Filters.Type); a != feed.AvailabilityUnknown {
		f.Availability = a
	}
	if m := reUnder.FindStringSubmatch(c.Filters.Age); m != nil {
		f.AgeMax, _ = strconv.Atoi(m[1])
	}
	if m := reOver.FindStringSubmatch(c.Filters.Age); m != nil {
		f.AgeMin, _ = strconv.Atoi(m[1])
	}

	return nlp.ParsedQuery{
		Intent:         intent,
		Filters:        f,
		Confidence:     max(0, min(1, c.Confidence)),
		Interpretation: strings.TrimSpace(c.Explanation),
	}
}

type Thresholds struct {
	HelpBelow       float64
	ReclassifyBelow float64
}

func DefaultThresholds() Thresholds {
	return Thresholds{HelpBelow: nlp.DefaultHelpBelow, ReclassifyBelow: nlp.DefaultReclassifyBelow}
}

// NeedsSecondOpinion reports whether parsed is unreliable enough to ask the
// model: uncertain parses, fallback guesses and outright failures.
func NeedsSecondOpinion(parsed nlp.ParsedQuery, th Thresholds) bool {
	return parsed.Reliability(th.HelpBelow, th.ReclassifyBelow) != nlp.Reliable
}

// Reclassify asks the classifier for a second opinion when the rule-based
// parse is a guess or a failure. The model answer replaces the parse only when
// it is recognized and more confident. Classifier errors leave the parse as is.
func Reclassify(ctx context.Context, c Classifier, text string, parsed nlp.ParsedQuery, th Thresholds, logger *zap.Logger) nlp.ParsedQuery {
	if logger == nil {
		logger = zap.NewNop()
	}
	if c == nil || !NeedsSecondOpinion(parsed, th) {
		return parsed
	}

	classified, err := c.Classify(ctx, text)
	if err != nil {
		logger.Warn("reclassification failed", zap.Error(err))
		return parsed
	}

	q := classified.ToQuery()
	if q.Intent == nlp.IntentUnrecognized || q.Confidence <= parsed.Confidence {
		logger.Debug("reclassification ignored",
			zap.String("intent", string(q.Intent)),
			zap.Float64("confidence", q.Confidence),
		)
		return parsed
	}

	logger.Info("query reclassified",
		zap.String("intent", string(q.Intent)),
		zap.Float64("confidence", q.Confidence),
		zap.Float64("rule_confidence", parsed.Confidence),
	)
	return q
}
