package cmd

import (
	"context"
	"fmt"
	"time"

	"blogpulse/internal/model"
	"blogpulse/internal/redisclient"
	"blogpulse/internal/storage"

	"github.com/spf13/cobra"
)

// seedCmd loads a small fixture dataset: a reader, two publishers, a
// handful of posts, and the follow edges between them. Handy for poking at
// score/gate/feed locally.
var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load fixture data into Redis",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := GetConfig()

		rdb := redisclient.New(cfg.Redis)
		defer rdb.Close()
		store := storage.NewRedisStore(rdb)

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		users := []model.User{
			{ID: 1, Username: "reader", Genres: []string{"golang", "databases"}},
			{ID: 2, Username: "prolific-pat"},
			{ID: 3, Username: "occasional-ola"},
		}
		now := time.Now().UTC()
		posts := []model.Post{
			{ID: 101, PublisherID: 2, Title: "Goroutines in anger", Content: "A deep dive into scheduling. No damn shortcuts here.", Tags: []string{"golang"}, Likes: 320, Shares: 45, Comments: 12, PublishedAt: now.Add(-20 * time.Hour)},
			{ID: 102, PublisherID: 2, Title: "Indexes explained", Content: "Why your query is slow and how to fix it.", Tags: []string{"databases"}, Likes: 210, Shares: 30, Comments: 8, PublishedAt: now.Add(-44 * time.Hour)},
			{ID: 103, PublisherID: 2, Title: "Profiling cheatsheet", Content: "pprof flags you always forget.", Tags: []string{"golang", "tooling"}, Likes: 95, Shares: 11, Comments: 3, PublishedAt: now.Add(-70 * time.Hour)},
			{ID: 104, PublisherID: 3, Title: "My first post", Content: "Hello world, testing things out.", Tags: []string{"misc"}, Likes: 2, Shares: 0, Comments: 1, PublishedAt: now.Add(-3 * 24 * time.Hour)},
		}

		for _, u := range users {
			if err := store.SaveUser(ctx, u); err != nil {
				return err
			}
		}
		for _, p := range posts {
			if err := store.SavePost(ctx, p); err != nil {
				return err
			}
			if err := store.EnqueueModeration(ctx, p.ID); err != nil {
				return err
			}
		}
		if err := store.Follow(ctx, 1, 2); err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "seeded %d users and %d posts (moderation queued)\n", len(users), len(posts))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(seedCmd)
}
