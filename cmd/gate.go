package cmd

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"blogpulse/internal/moderation"
	"blogpulse/internal/redisclient"
	"blogpulse/internal/reputation"
	"blogpulse/internal/storage"

	"github.com/spf13/cobra"
)

// gateCmd runs the content gate against a stored post: classifies its
// sentiment when missing, masks flagged tokens, decides the status, and
// writes the result back.
var gateCmd = &cobra.Command{
	Use:   "gate <postID>",
	Short: "Mask and gate a post's content",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		postID, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid post id %q: %w", args[0], err)
		}
		cfg := GetConfig()

		rdb := redisclient.New(cfg.Redis)
		defer rdb.Close()
		store := storage.NewRedisStore(rdb)

		lexicon, err := loadLexicon(cfg.Moderation)
		if err != nil {
			return err
		}
		gate := moderation.NewGate(lexicon, reputation.NewScorer(store))

		ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
		defer cancel()

		post, err := store.Post(ctx, postID)
		if err != nil {
			return err
		}
		if post.Sentiment == "" {
			label, err := newClassifier(cfg.Sentiment).Classify(ctx, post.Content)
			if err != nil {
				return err
			}
			post.Sentiment = label
		}
		if err := gate.Apply(ctx, &post); err != nil {
			return err
		}
		if err := store.SavePost(ctx, post); err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "post %d: sentiment=%s status=%s\n%s\n",
			post.ID, post.Sentiment, post.Status, post.Content)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(gateCmd)
}
