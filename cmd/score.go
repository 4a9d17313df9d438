package cmd

import (
	"context"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ob1-scout/ob1-scout/internal/dna"
	"github.com/ob1-scout/ob1-scout/internal/filtering"
	"github.com/ob1-scout/ob1-scout/internal/logger"
	"github.com/ob1-scout/ob1-scout/internal/nlp"
)

const (
	defaultMinScore = 50
	defaultLimit    = 10
)

var scoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Rank the feed against a configured club",
	Run: func(cmd *cobra.Command, _ []string) {
		score(cmd)
	},
}

func init() {
	rootCmd.AddCommand(scoreCmd)

	scoreCmd.Flags().StringP("club", "c", "", "club id or name from the clubs section (required)")
	scoreCmd.Flags().Int("min-score", defaultMinScore, "minimum fit score")
	scoreCmd.Flags().IntP("limit", "n", defaultLimit, "maximum number of players to print")
	scoreCmd.Flags().StringP("query", "q", "", "italian free-text pre-filter, e.g. \"attaccanti under 23\"")
	scoreCmd.MarkFlagRequired("club")
}

func score(cmd *cobra.Command) {
	ctx := context.Background()
	l, config := setup("score")

	ref, _ := cmd.Flags().GetString("club")
	minScore, _ := cmd.Flags().GetInt("min-score")
	limit, _ := cmd.Flags().GetInt("limit")
	query, _ := cmd.Flags().GetString("query")

	club := findClub(config.Clubs, ref)
	if club == nil {
		l.Fatal("club not found", zap.String("club", ref), zap.Int("configured_clubs", len(config.Clubs)))
	}
	l = logger.WithFields(l, logger.ClubFields(club.ID, club.Name)...)

	var criteria filtering.Criteria
	if query != "" {
		parsed := nlp.Parse(query)
		criteria = filtering.FromQuery(parsed)
		l.Info("query interpreted",
			zap.String("intent", string(parsed.Intent)),
			zap.Float64("confidence", parsed.Confidence),
			zap.String("interpretation", parsed.Interpretation),
		)
	}

	v := loadFeed(ctx, config, l)

	matches, err := rankForClub(ctx, v, club, criteria, minScore, l)
	if err != nil {
		l.Fatal("scoring failed", zap.Error(err))
	}

	printMatches(cmd.OutOrStdout(), club, dna.TopMatches(matches, minScore, limit))
}
