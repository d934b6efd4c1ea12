package worker

import (
	"context"
	"log/slog"
	"time"

	"blogpulse/internal/metrics"
	"blogpulse/internal/storage"
)

// Trending periods and the publish-date window each one covers.
var trendingPeriods = []struct {
	Name   string
	Window time.Duration
}{
	{"daily", 24 * time.Hour},
	{"weekly", 7 * 24 * time.Hour},
	{"monthly", 30 * 24 * time.Hour},
}

// TrendingCollector periodically rebuilds the engagement-ranked trending
// indexes the feed recommender draws its candidate pool from.
type TrendingCollector struct {
	Store    *storage.RedisStore
	Interval time.Duration
}

func (w *TrendingCollector) Start(ctx context.Context) error {
	if w.Interval <= 0 {
		w.Interval = 10 * time.Minute
	}

	// initial run
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

func (w *TrendingCollector) runOnce(ctx context.Context) {
	for _, p := range trendingPeriods {
		indexed, err := w.Store.RebuildTrending(ctx, p.Name, p.Window)
		if err != nil {
			slog.Error("trending-collector: rebuild error", "period", p.Name, "error", err)
			continue
		}
		metrics.TrendingRebuilds.WithLabelValues(p.Name).Inc()
		slog.Info("trending-collector: rebuilt index", "period", p.Name, "indexed", indexed)
	}
}
