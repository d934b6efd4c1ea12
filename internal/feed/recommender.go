package feed

import (
	"context"
	"fmt"
	"strconv"
	"sync"

	"blogpulse/internal/config"
	"blogpulse/internal/metrics"
	"blogpulse/internal/model"

	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"
)

// UserGraph is the slice of the persistence store the recommender reads:
// user resolution, the follow graph, and genre preferences.
type UserGraph interface {
	User(ctx context.Context, id int64) (model.User, error)
	Following(ctx context.Context, userID int64) (map[int64]struct{}, error)
	FavoriteGenres(ctx context.Context, userID int64) (map[string]struct{}, error)
}

// TrendingProvider returns the engagement-ranked candidate pool for a
// period. Posts outside this window are never considered.
type TrendingProvider interface {
	TopTrending(ctx context.Context, n int, period string) ([]model.Post, error)
}

// ReputationSource supplies publisher reputation scores.
type ReputationSource interface {
	Score(ctx context.Context, publisherID int64) (float64, error)
}

// Recommender assembles a personalized set of posts for a user's feed from
// the trending window, the follow graph, publisher reputation, and genre
// preference.
type Recommender struct {
	graph         UserGraph
	trending      TrendingProvider
	scorer        ReputationSource
	windowSize    int
	period        string
	distinguished float64
}

func NewRecommender(graph UserGraph, trending TrendingProvider, scorer ReputationSource, cfg config.FeedConfig) *Recommender {
	return &Recommender{
		graph:         graph,
		trending:      trending,
		scorer:        scorer,
		windowSize:    cfg.WindowSize,
		period:        cfg.Period,
		distinguished: cfg.DistinguishedThreshold,
	}
}

// Build assembles the recommended feed for a user. A trending post is
// included when its publisher is followed by the user, or the publisher's
// reputation reaches the distinguished threshold, or any of its tags is one
// of the user's favorite genres. The result is a set keyed by post id;
// iteration order is unspecified.
//
// Publisher reputation is memoized for the duration of one Build call: even
// with candidates evaluated concurrently, at most one score computation per
// publisher is in flight.
func (r *Recommender) Build(ctx context.Context, userID int64) (map[int64]model.Post, error) {
	if _, err := r.graph.User(ctx, userID); err != nil {
		return nil, fmt.Errorf("resolve user %d: %w", userID, err)
	}
	following, err := r.graph.Following(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("follow set for user %d: %w", userID, err)
	}
	genres, err := r.graph.FavoriteGenres(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("genres for user %d: %w", userID, err)
	}
	window, err := r.trending.TopTrending(ctx, r.windowSize, r.period)
	if err != nil {
		return nil, fmt.Errorf("trending window: %w", err)
	}

	memo := newScoreMemo(r.scorer)
	out := make(map[int64]model.Post, len(window))
	var mu sync.Mutex

	g, ctx := errgroup.WithContext(ctx)
	for _, post := range window {
		post := post
		g.Go(func() error {
			ok, err := r.include(ctx, post, following, genres, memo)
			if err != nil {
				return err
			}
			if ok {
				mu.Lock()
				out[post.ID] = post
				mu.Unlock()
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	metrics.FeedBuilds.Inc()
	return out, nil
}

func (r *Recommender) include(ctx context.Context, post model.Post, following map[int64]struct{}, genres map[string]struct{}, memo *scoreMemo) (bool, error) {
	if _, ok := following[post.PublisherID]; ok {
		return true, nil
	}
	rank, err := memo.score(ctx, post.PublisherID)
	if err != nil {
		return false, err
	}
	if rank >= r.distinguished {
		return true, nil
	}
	return lo.SomeBy(post.Tags, func(tag string) bool {
		_, ok := genres[tag]
		return ok
	}), nil
}

// scoreMemo caches publisher reputation for a single feed build. The
// singleflight group collapses concurrent lookups for the same publisher
// into one computation; the map serves everything after that.
type scoreMemo struct {
	scorer ReputationSource
	group  singleflight.Group

	mu     sync.Mutex
	scores map[int64]float64
}

func newScoreMemo(scorer ReputationSource) *scoreMemo {
	return &scoreMemo{scorer: scorer, scores: make(map[int64]float64)}
}

func (m *scoreMemo) score(ctx context.Context, publisherID int64) (float64, error) {
	m.mu.Lock()
	if v, ok := m.scores[publisherID]; ok {
		m.mu.Unlock()
		return v, nil
	}
	m.mu.Unlock()

	v, err, _ := m.group.Do(strconv.FormatInt(publisherID, 10), func() (any, error) {
		rank, err := m.scorer.Score(ctx, publisherID)
		if err != nil {
			return nil, err
		}
		m.mu.Lock()
		m.scores[publisherID] = rank
		m.mu.Unlock()
		return rank, nil
	})
	if err != nil {
		return 0, err
	}
	return v.(float64), nil
}
