package reputation

import (
	"context"

	"blogpulse/internal/metrics"
	"blogpulse/internal/model"

	"golang.org/x/sync/errgroup"
)

// PostStore is the slice of the persistence store the scorer reads from.
type PostStore interface {
	PostsByPublisher(ctx context.Context, publisherID int64) ([]model.Post, error)
	FollowerCount(ctx context.Context, publisherID int64) (int64, error)
}

// Sub-metric caps. Each contribution is capped before combination, so a
// runaway metric cannot dominate the composite.
const (
	engagementCap = 25.0
	frequencyCap  = 2.5
	sentimentCap  = 2.5
	profanityCap  = 7.5
	followerCap   = 2.5
)

// Scorer computes a publisher's composite reputation from engagement,
// posting cadence, post sentiment, moderation history, and audience size.
// Reputation is an advisory signal: it feeds the recommendation feed and
// the per-post profanity allowance, and is recomputed on demand rather
// than persisted.
type Scorer struct {
	store PostStore
}

func NewScorer(store PostStore) *Scorer {
	return &Scorer{store: store}
}

// Score returns the composite reputation for a publisher. A publisher with
// no posts gets the minimum score without any sub-metric work. The four
// positive sub-metrics and the profanity penalty are computed concurrently
// and joined; the first error aborts the whole computation.
func (s *Scorer) Score(ctx context.Context, publisherID int64) (float64, error) {
	posts, err := s.store.PostsByPublisher(ctx, publisherID)
	if err != nil {
		return 0, err
	}
	if len(posts) == 0 {
		return 0.0, nil // assigned min score
	}

	var engagement, frequency, sentiment, profanity, follower float64

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		engagement = min(engagementScore(posts), engagementCap)
		return nil
	})
	g.Go(func() error {
		frequency = min(frequencyScore(posts), frequencyCap)
		return nil
	})
	g.Go(func() error {
		sentiment = min(sentimentScore(posts), sentimentCap)
		return nil
	})
	g.Go(func() error {
		profanity = min(profanityScore(posts), profanityCap)
		return nil
	})
	g.Go(func() error {
		count, err := s.store.FollowerCount(ctx, publisherID)
		if err != nil {
			return err
		}
		follower = min(float64(count)/100, followerCap)
		return nil
	})
	if err := g.Wait(); err != nil {
		return 0, err
	}

	metrics.ReputationComputations.Inc()
	return engagement + frequency + sentiment + follower - profanity, nil
}
