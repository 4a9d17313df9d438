package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"strings"

	"github.com/jonboulle/clockwork"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/ob1-scout/ob1-scout/internal/ai"
	"github.com/ob1-scout/ob1-scout/internal/ai/gemini"
	"github.com/ob1-scout/ob1-scout/internal/dna"
	"github.com/ob1-scout/ob1-scout/internal/feed"
	"github.com/ob1-scout/ob1-scout/internal/filtering"
	"github.com/ob1-scout/ob1-scout/internal/logger"
	"github.com/ob1-scout/ob1-scout/internal/secrets"
)

// setup builds the logger and config every command starts from.
func setup(command string) (*zap.Logger, *Config) {
	l, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}
	l = logger.WithCommand(l, command)

	config, err := getConfig()
	if err != nil {
		l.Fatal("getting a config", zap.Error(err))
	}

	// do not bother error since there is a valid parseable config
	pretty, _ := json.MarshalIndent(config, "", "  ")
	l.Debug(fmt.Sprintf("starting with config: \n %s", pretty))

	return l, config
}

func newFeedClient(cfg *FeedConfig, l *zap.Logger) (*feed.Client, error) {
	opts := []feed.Option{feed.WithTimeout(cfg.Timeout)}

	ttl := cfg.Cache.TTL
	if ttl <= 0 {
		ttl = feed.DefaultCacheTTL
	}

	switch backend := strings.ToLower(strings.TrimSpace(cfg.Cache.Backend)); backend {
	case "", "memory":
		opts = append(opts, feed.WithCache(feed.NewMemoryCache(clockwork.NewRealClock()), ttl))
	case "redis":
		if cfg.Cache.Redis == nil || cfg.Cache.Redis.Address == "" {
			return nil, fmt.Errorf("feed.cache.redis.address is required for the redis cache")
		}
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Cache.Redis.Address,
			Password: cfg.Cache.Redis.Password,
			DB:       cfg.Cache.Redis.DB,
		})
		opts = append(opts, feed.WithCache(feed.NewRedisCache(client), ttl))
	case "none":
	default:
		return nil, fmt.Errorf("unsupported feed cache backend: %s", cfg.Cache.Backend)
	}

	return feed.New(cfg.URL, l.With(zap.String("feed", cfg.URL)), opts...), nil
}

func loadFeed(ctx context.Context, cfg *Config, l *zap.Logger) *feed.Opportunities {
	client, err := newFeedClient(cfg.Feed, l)
	if err != nil {
		l.Fatal("creating the feed client", zap.Error(err))
	}

	v, err := client.Load(ctx)
	if err != nil {
		l.Fatal("loading the feed",
			zap.Error(err),
			zap.String("hint", "set OB1_FEED_URL, --feed or the 'feed.url' key in the configuration file"),
		)
	}

	l.Info("feed loaded", zap.Int("count", v.Len()), zap.String("last_update", v.LastUpdate))
	return v
}

func clubsByID(clubs []*dna.ClubProfile) map[string]*dna.ClubProfile {
	out := make(map[string]*dna.ClubProfile, len(clubs))
	for _, c := range clubs {
		if c != nil && c.ID != "" {
			out[c.ID] = c
		}
	}
	return out
}

// findClub resolves a club by id, then by a case-insensitive name match.
func findClub(clubs []*dna.ClubProfile, ref string) *dna.ClubProfile {
	ref = strings.ToLower(strings.TrimSpace(ref))
	if ref == "" {
		return nil
	}
	for _, c := range clubs {
		if c != nil && strings.ToLower(c.ID) == ref {
			return c
		}
	}
	for _, c := range clubs {
		if c == nil {
			continue
		}
		name := strings.ToLower(c.Name)
		if name == ref || strings.Contains(name, ref) || (c.City != "" && strings.ToLower(c.City) == ref) {
			return c
		}
	}
	return nil
}

// rankForClub runs the criteria, rivalry and fit steps and returns the ranked matches.
func rankForClub(ctx context.Context, v *feed.Opportunities, club *dna.ClubProfile, criteria filtering.Criteria, minScore int, l *zap.Logger) ([]dna.Match, error) {
	fit := filtering.NewFit(&filtering.FitFilterConfig{Club: club, MinScore: minScore}, &filtering.FitFilterDeps{Logger: l})

	var steps []filtering.Filter
	if !criteria.IsZero() {
		steps = append(steps, filtering.NewCriteria(criteria, l))
	}
	steps = append(steps, filtering.NewRivalry(club.Name, l), fit)

	if _, err := filtering.New(steps, l).RunFilters(ctx, v); err != nil {
		return nil, err
	}
	return fit.Matches(), nil
}

func newClassifier(ctx context.Context, cfg *AIConfig, l *zap.Logger) (ai.Classifier, error) {
	provider := strings.TrimSpace(strings.ToLower(cfg.Provider))
	if provider != "" && provider != "gemini" {
		return nil, fmt.Errorf("unsupported ai provider: %s", cfg.Provider)
	}

	apiKey, err := secrets.Load(secrets.Source{
		Name:  "gemini api key",
		Value: cfg.Gemini.APIKey,
		Env:   "GEMINI_API_KEY",
		File:  cfg.Gemini.APIKeyFile,
	})
	if err != nil {
		return nil, fmt.Errorf("%w (set ai.gemini.api-key-file or GEMINI_API_KEY_FILE)", err)
	}

	genLogger := logger.WithAIFields(l, "gemini", cfg.Gemini.Model).With(
		zap.Int("ai_retry_attempts", cfg.Gemini.MaxRetries),
	)

	generator, err := gemini.NewGenerator(ctx, apiKey, cfg.Gemini.Model, cfg.Gemini.MaxRetries, genLogger)
	if err != nil {
		return nil, err
	}

	return gemini.NewClassifier(generator, logger.WithAIFields(l, "gemini", generator.Model()), cfg.Gemini.MaxLogLength), nil
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
