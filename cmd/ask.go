package cmd

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ob1-scout/ob1-scout/internal/ai"
	"github.com/ob1-scout/ob1-scout/internal/dna"
	"github.com/ob1-scout/ob1-scout/internal/feed"
	"github.com/ob1-scout/ob1-scout/internal/filtering"
	"github.com/ob1-scout/ob1-scout/internal/nlp"
	"github.com/ob1-scout/ob1-scout/internal/watch"
)

const (
	clubFitMinScore = 50
	clubFitLimit    = 5
)

const helpText = `Puoi chiedermi ad esempio:
  - "migliori attaccanti"             opportunità hot (score >= 80)
  - "centrocampisti svincolati under 23"
  - "statistiche"                     numeri del feed
  - "cerca Mario Rossi"               ricerca per nome
  - "adatti per il pescara"           DNA match con un club configurato
  - "talenti"                         giovani dalle squadre B
  - "avvisami quando esce un terzino svincolato"
Per una ricerca guidata usa: ob1-scout wizard`

var askCmd = &cobra.Command{
	Use:   "ask TEXT",
	Short: "Ask the scouting feed a question in italian",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ask(cmd, strings.Join(args, " "))
	},
}

func init() {
	rootCmd.AddCommand(askCmd)
}

func ask(cmd *cobra.Command, text string) {
	ctx := context.Background()
	l, config := setup("ask")
	out := cmd.OutOrStdout()

	if nlp.ShouldStartWizard(text) {
		fmt.Fprintln(out, "Sembra una ricerca da impostare passo passo: prova `ob1-scout wizard`.")
		return
	}

	th := ai.Thresholds{HelpBelow: config.AI.HelpBelow, ReclassifyBelow: config.AI.ReclassifyBelow}

	var classifier classifierFactory
	if config.AI.Enabled {
		classifier = func() (ai.Classifier, error) { return newClassifier(ctx, config.AI, l) }
	}
	parsed := interpret(ctx, text, th, classifier, l)

	r := &responder{
		clubs:  config.Clubs,
		now:    time.Now(),
		logger: l,
		out:    out,
	}
	if needsFeed(parsed.Intent) {
		r.opps = loadFeed(ctx, config, l)
	}

	if err := r.respond(ctx, text, parsed); err != nil {
		l.Fatal("answering the query", zap.Error(err))
	}
}

// classifierFactory builds the model classifier lazily so the api key is only
// needed when a parse actually asks for a second opinion.
type classifierFactory func() (ai.Classifier, error)

// interpret parses text and, when a classifier factory is given, lets the
// model reclassify guesses and failures.
func interpret(ctx context.Context, text string, th ai.Thresholds, newClassifier classifierFactory, l *zap.Logger) nlp.ParsedQuery {
	parsed := nlp.Parse(text)
	l.Info("query interpreted",
		zap.String("intent", string(parsed.Intent)),
		zap.Float64("confidence", parsed.Confidence),
		zap.String("interpretation", parsed.Interpretation),
		zap.Bool("fallback", parsed.Fallback),
	)

	if newClassifier == nil || !ai.NeedsSecondOpinion(parsed, th) {
		return parsed
	}

	classifier, err := newClassifier()
	if err != nil {
		l.Warn("skipping reclassification", zap.Error(err))
		return parsed
	}
	return ai.Reclassify(ctx, classifier, text, parsed, th, l)
}

func needsFeed(intent nlp.Intent) bool {
	switch intent {
	case nlp.IntentHelp, nlp.IntentCreateAlert, nlp.IntentUnrecognized:
		return false
	}
	return true
}

// responder renders the answer to a parsed query.
type responder struct {
	opps   *feed.Opportunities
	clubs  []*dna.ClubProfile
	now    time.Time
	logger *zap.Logger
	out    io.Writer
}

func (r *responder) respond(ctx context.Context, text string, q nlp.ParsedQuery) error {
	if q.Interpretation != "" && q.Intent != nlp.IntentHelp {
		fmt.Fprintf(r.out, "Ho capito: %s\n", q.Interpretation)
	}

	switch q.Intent {
	case nlp.IntentHelp:
		if q.Interpretation != "" {
			fmt.Fprintln(r.out, capitalize(q.Interpretation)+"!")
		}
		fmt.Fprintln(r.out, helpText)
	case nlp.IntentStats:
		printStats(r.out, r.opps.Stats())
	case nlp.IntentBestList, nlp.IntentGoodList, nlp.IntentFullList:
		return r.list(ctx, q)
	case nlp.IntentNameSearch:
		found := r.opps.Search(q.Filters.Query)
		found.Limit(limitOr(q, defaultLimit))
		printOpportunities(r.out, found)
	case nlp.IntentClubFit:
		return r.clubFit(ctx, q)
	case nlp.IntentTopTalent:
		return r.talents(text, q)
	case nlp.IntentCreateAlert:
		return r.createAlert(q)
	default:
		fmt.Fprintln(r.out, "Non ho capito la richiesta.")
		fmt.Fprintln(r.out, helpText)
	}

	if q.Warning != "" {
		fmt.Fprintf(r.out, "Nota: %s\n", q.Warning)
	}
	return nil
}

func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

func limitOr(q nlp.ParsedQuery, def int) int {
	if q.Filters.Limit > 0 {
		return q.Filters.Limit
	}
	return def
}

func (r *responder) list(ctx context.Context, q nlp.ParsedQuery) error {
	steps := []filtering.Filter{filtering.NewCriteria(filtering.FromQuery(q), r.logger)}

	filtered, err := filtering.New(steps, r.logger).RunFilters(ctx, r.opps)
	if err != nil {
		return err
	}
	filtered.SortByScore()
	filtered.Limit(limitOr(q, defaultLimit))

	printOpportunities(r.out, filtered)
	if q.Warning != "" {
		fmt.Fprintf(r.out, "Nota: %s\n", q.Warning)
	}
	return nil
}

func (r *responder) clubFit(ctx context.Context, q nlp.ParsedQuery) error {
	club := findClub(r.clubs, q.Filters.Query)
	if club == nil {
		fmt.Fprintf(r.out, "Il club %q non è configurato.\n", q.Filters.Query)
		return nil
	}

	matches, err := rankForClub(ctx, r.opps, club, filtering.Criteria{}, clubFitMinScore, r.logger)
	if err != nil {
		return err
	}
	printMatches(r.out, club, dna.TopMatches(matches, clubFitMinScore, limitOr(q, clubFitLimit)))
	return nil
}

// talentClub is the first configured club, or the wizard's open profile.
func (r *responder) talentClub() *dna.ClubProfile {
	for _, c := range r.clubs {
		if c != nil {
			return c
		}
	}
	return dna.FromWizard(dna.WizardAnswers{}, nil)
}

func (r *responder) talents(text string, q nlp.ParsedQuery) error {
	tq, _ := nlp.ParseTalentQuery(text)
	club := r.talentClub()

	matches, err := dna.ScoreAll(r.opps.Items, club, 0)
	if err != nil {
		return err
	}

	if tq.Description != "" {
		fmt.Fprintf(r.out, "Ricerca talenti: %s\n", tq.Description)
	}
	printMatches(r.out, club, filtering.SearchTalents(matches, tq, limitOr(q, filtering.DefaultTalentLimit)))
	return nil
}

func (r *responder) createAlert(q nlp.ParsedQuery) error {
	p, err := watch.FromQuery(q, r.now)
	if err != nil {
		return err
	}

	fmt.Fprintf(r.out, "Nuovo watch profile %q:\n", p.Name)
	return printJSON(r.out, p)
}
