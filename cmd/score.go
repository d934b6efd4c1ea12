package cmd

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"blogpulse/internal/redisclient"
	"blogpulse/internal/reputation"
	"blogpulse/internal/storage"

	"github.com/spf13/cobra"
)

// scoreCmd computes a publisher's composite reputation score on demand.
var scoreCmd = &cobra.Command{
	Use:   "score <publisherID>",
	Short: "Compute a publisher's reputation score",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		publisherID, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid publisher id %q: %w", args[0], err)
		}
		cfg := GetConfig()

		rdb := redisclient.New(cfg.Redis)
		defer rdb.Close()
		store := storage.NewRedisStore(rdb)

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		rank, err := reputation.NewScorer(store).Score(ctx, publisherID)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "publisher %d reputation: %.4f\n", publisherID, rank)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(scoreCmd)
}
