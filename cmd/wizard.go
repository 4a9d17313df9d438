package cmd

import (
	"context"
	"errors"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ob1-scout/ob1-scout/internal/dna"
	"github.com/ob1-scout/ob1-scout/internal/filtering"
	"github.com/ob1-scout/ob1-scout/internal/logger"
)

const wizardNoClub = "Nessun club, ricerca libera"

var wizardCmd = &cobra.Command{
	Use:   "wizard",
	Short: "Build a search step by step and rank the feed against it",
	Run: func(cmd *cobra.Command, _ []string) {
		wizard(cmd)
	},
}

func init() {
	rootCmd.AddCommand(wizardCmd)

	wizardCmd.Flags().Int("min-score", defaultMinScore, "minimum fit score")
	wizardCmd.Flags().IntP("limit", "n", defaultLimit, "maximum number of players to print")
}

func wizard(cmd *cobra.Command) {
	ctx := context.Background()
	l, config := setup("wizard")

	minScore, _ := cmd.Flags().GetInt("min-score")
	limit, _ := cmd.Flags().GetInt("limit")

	answers, err := askWizard(wizardQuestions(config.Clubs))
	if err != nil {
		if errors.Is(err, promptui.ErrInterrupt) || errors.Is(err, promptui.ErrEOF) {
			return
		}
		l.Fatal("wizard prompt failed", zap.Error(err))
	}

	club := dna.FromWizard(answers, clubsByID(config.Clubs))
	l = logger.WithFields(l, logger.ClubFields(club.ID, club.Name)...)
	l.Info("wizard completed",
		zap.String("role", answers.Role),
		zap.String("experience", answers.Experience),
		zap.String("budget", answers.Budget),
		zap.String("character", answers.Character),
	)

	v := loadFeed(ctx, config, l)

	matches, err := rankForClub(ctx, v, club, filtering.Criteria{}, minScore, l)
	if err != nil {
		l.Fatal("scoring failed", zap.Error(err))
	}

	printMatches(cmd.OutOrStdout(), club, dna.TopMatches(matches, minScore, limit))
}

// wizardQuestions appends a club question when clubs are configured.
func wizardQuestions(clubs []*dna.ClubProfile) []dna.WizardQuestion {
	questions := append([]dna.WizardQuestion(nil), dna.WizardQuestions...)

	options := []dna.WizardOption{{Label: wizardNoClub, Code: ""}}
	for _, c := range clubs {
		if c != nil && c.ID != "" {
			options = append(options, dna.WizardOption{Label: c.Name, Code: c.ID})
		}
	}
	if len(options) == 1 {
		return questions
	}

	return append(questions, dna.WizardQuestion{
		Key:     "club",
		Prompt:  "Per quale club?",
		Options: options,
	})
}

func askWizard(questions []dna.WizardQuestion) (dna.WizardAnswers, error) {
	var answers dna.WizardAnswers

	for _, q := range questions {
		labels := make([]string, 0, len(q.Options))
		for _, o := range q.Options {
			labels = append(labels, o.Label)
		}

		prompt := promptui.Select{
			Label: q.Prompt,
			Items: labels,
		}

		idx, _, err := prompt.Run()
		if err != nil {
			return answers, err
		}

		answers.Set(q.Key, q.Options[idx].Code)
	}

	return answers, nil
}
