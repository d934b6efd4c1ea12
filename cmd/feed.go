package cmd

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"blogpulse/internal/feed"
	"blogpulse/internal/redisclient"
	"blogpulse/internal/reputation"
	"blogpulse/internal/storage"

	"github.com/spf13/cobra"
)

// feedCmd assembles the recommended feed for a user.
var feedCmd = &cobra.Command{
	Use:   "feed <userID>",
	Short: "Build a user's recommended feed",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		userID, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid user id %q: %w", args[0], err)
		}
		cfg := GetConfig()

		rdb := redisclient.New(cfg.Redis)
		defer rdb.Close()
		store := storage.NewRedisStore(rdb)

		recommender := feed.NewRecommender(store, store, reputation.NewScorer(store), cfg.Feed)

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		posts, err := recommender.Build(ctx, userID)
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "recommended %d posts for user %d\n", len(posts), userID)
		for id, p := range posts {
			fmt.Fprintf(cmd.OutOrStdout(), "  %d\t%s\t(publisher %d)\n", id, p.Title, p.PublisherID)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(feedCmd)
}
