package cmd

import (
	"context"
	"log/slog"
	"os/signal"
	"syscall"
	"time"

	"blogpulse/internal/metrics"
	"blogpulse/internal/moderation"
	"blogpulse/internal/redisclient"
	"blogpulse/internal/reputation"
	"blogpulse/internal/storage"
	"blogpulse/worker"

	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the background workers",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := GetConfig()
		// Redis client
		rdb := redisclient.New(cfg.Redis)
		defer rdb.Close()
		store := storage.NewRedisStore(rdb)

		lexicon, err := loadLexicon(cfg.Moderation)
		if err != nil {
			return err
		}
		scorer := reputation.NewScorer(store)
		gate := moderation.NewGate(lexicon, scorer)
		classifier := newClassifier(cfg.Sentiment)

		sweepInterval, err := time.ParseDuration(cfg.Moderation.SweepInterval)
		if err != nil {
			return err
		}
		rebuildInterval, err := time.ParseDuration(cfg.Trending.RebuildInterval)
		if err != nil {
			return err
		}

		ws := []worker.Worker{
			&worker.TrendingCollector{
				Store:    store,
				Interval: rebuildInterval,
			},
			&worker.ModerationSweeper{
				Store:      store,
				Gate:       gate,
				Classifier: classifier,
				Interval:   sweepInterval,
			},
		}

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		if cfg.Metrics.Addr != "" {
			ms, err := metrics.NewServer(cfg.Metrics.Addr, store)
			if err != nil {
				return err
			}
			defer ms.Shutdown(context.Background()) //nolint:errcheck
		}

		slog.Info("serve: starting workers", "lexicon_words", lexicon.Len(),
			"sweep_interval", sweepInterval, "rebuild_interval", rebuildInterval)
		return worker.NewManager(ws...).Start(ctx)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
