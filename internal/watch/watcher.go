package watch

import (
	"context"
	"fmt"

	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"

	"github.com/ob1-scout/ob1-scout/internal/feed"
	"github.com/ob1-scout/ob1-scout/internal/filtering"
)

type Mode string

const (
	ModeImmediate Mode = "immediate"
	ModeDigest    Mode = "digest"
)

type Config struct {
	Profiles []*Profile
	SeenFile string
	MinScore int
}

type Deps struct {
	Clock  clockwork.Clock
	Logger *zap.Logger
}

// Watcher checks a feed against the watch profiles and remembers which
// opportunities already raised an alert.
type Watcher struct {
	profiles []*Profile
	seenFile string
	minScore int
	clock    clockwork.Clock
	logger   *zap.Logger
}

func New(cfg Config, deps Deps) *Watcher {
	if deps.Clock == nil {
		deps.Clock = clockwork.NewRealClock()
	}
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	for _, p := range cfg.Profiles {
		p.Normalize()
	}
	return &Watcher{
		profiles: cfg.Profiles,
		seenFile: cfg.SeenFile,
		minScore: cfg.MinScore,
		clock:    deps.Clock,
		logger:   deps.Logger,
	}
}

func (w *Watcher) Profiles() []*Profile {
	return w.profiles
}

func (w *Watcher) threshold(mode Mode) int {
	if w.minScore > 0 {
		return w.minScore
	}
	if mode == ModeDigest {
		return DefaultDigestMinScore
	}
	return DefaultImmediateMinScore
}

// Run drops already seen opportunities, scores the rest for the given mode and
// records the alerted ones in the seen file.
func (w *Watcher) Run(ctx context.Context, v *feed.Opportunities, mode Mode) ([]DNAMatch, error) {
	fresh, err := filtering.New([]filtering.Filter{filtering.NewSeen(w.seenFile)}, w.logger).RunFilters(ctx, v)
	if err != nil {
		return nil, err
	}

	minScore := w.threshold(mode)
	var matches []DNAMatch
	switch mode {
	case ModeImmediate:
		matches, err = ImmediateAlertsDNA(fresh.Items, w.profiles, minScore)
	case ModeDigest:
		matches, err = DigestOpportunitiesDNA(fresh.Items, w.profiles, minScore)
	default:
		return nil, fmt.Errorf("unknown watch mode %q", mode)
	}
	if err != nil {
		return nil, err
	}

	w.logger.Info("watch completed",
		zap.String("mode", string(mode)),
		zap.Int("profiles", len(w.profiles)),
		zap.Int("fresh", fresh.Len()),
		zap.Int("matches", len(matches)),
		zap.Int("min_score", minScore),
	)

	if len(matches) == 0 || w.seenFile == "" {
		return matches, nil
	}

	if err := w.remember(matches); err != nil {
		return matches, fmt.Errorf("saving seen opportunities: %w", err)
	}
	return matches, nil
}

func (w *Watcher) remember(matches []DNAMatch) error {
	seen, err := feed.LoadSeen(w.seenFile)
	if err != nil {
		return err
	}

	now := w.clock.Now()
	for _, m := range matches {
		alerted := &feed.Opportunities{Items: []*feed.Opportunity{m.Opportunity}}
		seen.Append(alerted.ToSeen(m.Profile.ID, now))
	}
	return seen.ToFile(w.seenFile)
}
