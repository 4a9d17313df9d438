package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/jonboulle/clockwork"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/ob1-scout/ob1-scout/internal/feed"
	"github.com/ob1-scout/ob1-scout/internal/logger"
	"github.com/ob1-scout/ob1-scout/internal/utils"
	"github.com/ob1-scout/ob1-scout/internal/watch"
)

const defaultSeenFile = "ob1-seen.json"

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Check the feed against the watch profiles and print new alerts",
	Run: func(cmd *cobra.Command, _ []string) {
		watchFeed(cmd)
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)

	watchCmd.Flags().Bool("immediate", true, "alerts for profiles with alert-immediately set")
	watchCmd.Flags().Bool("digest", false, "digest of profiles with include-in-digest set")
	watchCmd.Flags().String("seen-file", "", "file with already alerted opportunities (overrides watch.seen-file)")
	watchCmd.Flags().Duration("every", 0, "repeat the check with this interval until interrupted")

	watchCmd.MarkFlagsMutuallyExclusive("immediate", "digest")
	viper.BindPFlag("watch.seen-file", watchCmd.Flags().Lookup("seen-file"))
}

func watchFeed(cmd *cobra.Command) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	l, config := setup("watch")

	mode := watch.ModeImmediate
	if digest, _ := cmd.Flags().GetBool("digest"); digest {
		mode = watch.ModeDigest
	}
	every, _ := cmd.Flags().GetDuration("every")

	if len(config.Watch.Profiles) == 0 {
		l.Fatal("no watch profiles configured", zap.String("hint", "add profiles under watch.profiles or create one with `ob1-scout ask \"avvisami quando ...\"`"))
	}

	seenFile := config.Watch.SeenFile
	if seenFile == "" {
		seenFile = defaultSeenFile
	}

	clock := clockwork.NewRealClock()
	w := watch.New(watch.Config{
		Profiles: config.Watch.Profiles,
		SeenFile: seenFile,
		MinScore: config.Watch.MinScore,
	}, watch.Deps{
		Clock:  clock,
		Logger: l,
	})

	for _, p := range w.Profiles() {
		l.Debug("watch profile loaded",
			zap.String(logger.FieldProfile, p.ID),
			zap.String("name", p.Name),
			zap.Bool("active", p.Active),
		)
	}

	client, err := newFeedClient(config.Feed, l)
	if err != nil {
		l.Fatal("creating the feed client", zap.Error(err))
	}

	for {
		if err := watchOnce(ctx, cmd, client, w, mode, l); err != nil {
			if every <= 0 {
				l.Fatal("watch failed", zap.Error(err))
			}
			l.Warn("watch failed, retrying on the next tick", zap.Error(err), zap.Duration("every", every))
		}

		if every <= 0 {
			return
		}
		if err := utils.WaitFor(ctx, clock, every); err != nil {
			l.Info("watch stopped", zap.Error(err))
			return
		}
	}
}

func watchOnce(ctx context.Context, cmd *cobra.Command, client *feed.Client, w *watch.Watcher, mode watch.Mode, l *zap.Logger) error {
	v, err := client.Load(ctx)
	if err != nil {
		return err
	}

	matches, err := w.Run(ctx, v, mode)
	if err != nil {
		return err
	}

	for _, m := range matches {
		l.Info("alert",
			zap.String(logger.FieldProfile, m.Profile.ID),
			zap.String("player", m.Opportunity.PlayerName),
			zap.Int("score", m.Result.Score),
		)
	}

	printAlerts(cmd.OutOrStdout(), mode, matches)
	return nil
}
