package worker

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"blogpulse/internal/model"
	"blogpulse/internal/moderation"
	"blogpulse/internal/sentiment"
	"blogpulse/internal/storage"
)

// ModerationStore is the slice of the store the sweeper needs.
type ModerationStore interface {
	DequeueModeration(ctx context.Context) (int64, bool, error)
	EnqueueModeration(ctx context.Context, postID int64) error
	Post(ctx context.Context, id int64) (model.Post, error)
	SavePost(ctx context.Context, p model.Post) error
}

// ModerationSweeper drains the moderation queue: for each queued post it
// runs the sentiment classifier (when the post has no label yet), applies
// the content gate, and writes the masked content and status back. This is
// the asynchronous version of the create/update post flow.
type ModerationSweeper struct {
	Store      ModerationStore
	Gate       *moderation.Gate
	Classifier sentiment.Classifier
	Interval   time.Duration
}

func (w *ModerationSweeper) Start(ctx context.Context) error {
	if w.Interval <= 0 {
		w.Interval = 30 * time.Second
	}

	w.runOnce(ctx)

	t := time.NewTicker(w.Interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-t.C:
			w.runOnce(ctx)
		}
	}
}

func (w *ModerationSweeper) runOnce(ctx context.Context) {
	swept := 0
	var failed []int64
	for {
		id, ok, err := w.Store.DequeueModeration(ctx)
		if err != nil {
			slog.Error("moderation-sweeper: dequeue error", "error", err)
			break
		}
		if !ok {
			break
		}
		if err := w.sweep(ctx, id); err != nil {
			slog.Error("moderation-sweeper: sweep error", "post", id, "error", err)
			failed = append(failed, id)
			continue
		}
		swept++
	}
	// A failed sweep (classifier blip, store hiccup) must not lose the post.
	// Requeue after the drain so a persistent failure waits for the next
	// tick instead of spinning this one.
	for _, id := range failed {
		if err := w.Store.EnqueueModeration(ctx, id); err != nil {
			slog.Error("moderation-sweeper: requeue error", "post", id, "error", err)
		}
	}
	if swept > 0 || len(failed) > 0 {
		slog.Info("moderation-sweeper: completed", "swept", swept, "requeued", len(failed))
	}
}

func (w *ModerationSweeper) sweep(ctx context.Context, postID int64) error {
	post, err := w.Store.Post(ctx, postID)
	if errors.Is(err, storage.ErrNotFound) {
		return nil // deleted while queued
	}
	if err != nil {
		return err
	}

	if post.Sentiment == "" && w.Classifier != nil {
		label, err := w.Classifier.Classify(ctx, post.Content)
		if err != nil {
			return err
		}
		post.Sentiment = label
	}

	if err := w.Gate.Apply(ctx, &post); err != nil {
		return err
	}
	return w.Store.SavePost(ctx, post)
}
