package reputation

import (
	"context"
	"errors"
	"math"
	"sync"
	"testing"
	"time"

	"blogpulse/internal/model"
)

type fakeStore struct {
	mu            sync.Mutex
	posts         map[int64][]model.Post
	followers     map[int64]int64
	followerErr   error
	postsCalls    int
	followerCalls int
}

func (f *fakeStore) PostsByPublisher(_ context.Context, publisherID int64) ([]model.Post, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.postsCalls++
	return f.posts[publisherID], nil
}

func (f *fakeStore) FollowerCount(_ context.Context, publisherID int64) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.followerCalls++
	if f.followerErr != nil {
		return 0, f.followerErr
	}
	return f.followers[publisherID], nil
}

func fixturePosts(t0 time.Time) []model.Post {
	return []model.Post{
		{ID: 1, PublisherID: 7, Likes: 10, Shares: 0, Comments: 1, Sentiment: model.Positive, Status: model.StatusActive, PublishedAt: t0},
		{ID: 2, PublisherID: 7, Likes: 20, Shares: 5, Comments: 2, Sentiment: model.Neutral, Status: model.StatusBlocked, PublishedAt: t0.Add(24 * time.Hour)},
		{ID: 3, PublisherID: 7, Likes: 30, Shares: 10, Comments: 3, Sentiment: model.Negative, Status: model.StatusActive, PublishedAt: t0.Add(48 * time.Hour)},
	}
}

func TestScoreNoPosts(t *testing.T) {
	store := &fakeStore{posts: map[int64][]model.Post{}, followers: map[int64]int64{42: 1000}}
	s := NewScorer(store)

	got, err := s.Score(context.Background(), 42)
	if err != nil {
		t.Fatalf("Score: %v", err)
	}
	if got != 0.0 {
		t.Errorf("score = %v, want exactly 0.0", got)
	}
	if store.followerCalls != 0 {
		t.Errorf("FollowerCount called %d times for zero-post publisher, want 0", store.followerCalls)
	}
}

func TestScoreComposite(t *testing.T) {
	t0 := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	store := &fakeStore{
		posts:     map[int64][]model.Post{7: fixturePosts(t0)},
		followers: map[int64]int64{7: 500},
	}
	s := NewScorer(store)

	got, err := s.Score(context.Background(), 7)
	if err != nil {
		t.Fatalf("Score: %v", err)
	}

	// engagement: means (20 + 5 + 2) / 3 * 18 = 162, capped at 25
	// frequency: two 24h gaps -> (1/24.0001)/120
	// sentiment: (+1 + 0 - 1)/3 * 8 = 0
	// followers: 500/100 = 5, capped at 2.5
	// profanity: 1 of 3 blocked -> (1/3)*6 = 2, subtracted
	want := 25.0 + (1.0/(24.0+0.0001))/120.0 + 0.0 + 2.5 - 2.0
	if math.Abs(got-want) > 1e-12 {
		t.Errorf("score = %v, want %v", got, want)
	}
}

func TestScorePermutationInvariant(t *testing.T) {
	t0 := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	posts := fixturePosts(t0)
	reversed := []model.Post{posts[2], posts[0], posts[1]}

	storeA := &fakeStore{posts: map[int64][]model.Post{7: posts}, followers: map[int64]int64{7: 120}}
	storeB := &fakeStore{posts: map[int64][]model.Post{7: reversed}, followers: map[int64]int64{7: 120}}

	a, err := NewScorer(storeA).Score(context.Background(), 7)
	if err != nil {
		t.Fatalf("Score: %v", err)
	}
	b, err := NewScorer(storeB).Score(context.Background(), 7)
	if err != nil {
		t.Fatalf("Score: %v", err)
	}
	if a != b {
		t.Errorf("permuted input changed score: %v vs %v", a, b)
	}
}

func TestScoreDeterministic(t *testing.T) {
	t0 := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	store := &fakeStore{posts: map[int64][]model.Post{7: fixturePosts(t0)}, followers: map[int64]int64{7: 50}}
	s := NewScorer(store)

	first, err := s.Score(context.Background(), 7)
	if err != nil {
		t.Fatalf("Score: %v", err)
	}
	second, err := s.Score(context.Background(), 7)
	if err != nil {
		t.Fatalf("Score: %v", err)
	}
	if first != second {
		t.Errorf("two runs over unchanged data differ: %v vs %v", first, second)
	}
}

func TestScoreCaps(t *testing.T) {
	t0 := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	store := &fakeStore{
		posts: map[int64][]model.Post{9: {
			{ID: 1, PublisherID: 9, Likes: 10000, Shares: 10000, Comments: 10000, Sentiment: model.VeryPositive, Status: model.StatusActive, PublishedAt: t0},
		}},
		followers: map[int64]int64{9: 1_000_000},
	}

	got, err := NewScorer(store).Score(context.Background(), 9)
	if err != nil {
		t.Fatalf("Score: %v", err)
	}
	// engagement 25, frequency 0 (single post), sentiment 2.5, followers 2.5
	want := 25.0 + 0.0 + 2.5 + 2.5
	if got != want {
		t.Errorf("score = %v, want %v (every sub-metric at its cap)", got, want)
	}
}

func TestScoreFollowerLookupError(t *testing.T) {
	t0 := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	wantErr := errors.New("store down")
	store := &fakeStore{
		posts:       map[int64][]model.Post{7: fixturePosts(t0)},
		followerErr: wantErr,
	}

	_, err := NewScorer(store).Score(context.Background(), 7)
	if !errors.Is(err, wantErr) {
		t.Fatalf("err = %v, want %v", err, wantErr)
	}
}

func TestWeightedMedianEvenCount(t *testing.T) {
	// The halved per-element weight for even-sized lists cancels out, so the
	// estimator equals the mean either way. Pin that down.
	even := weightedMedian([]float64{2, 4, 6, 8}, 0.45)
	if math.Abs(even-5.0) > 1e-12 {
		t.Errorf("weightedMedian(even) = %v, want 5", even)
	}
	odd := weightedMedian([]float64{2, 4, 6}, 0.45)
	if math.Abs(odd-4.0) > 1e-12 {
		t.Errorf("weightedMedian(odd) = %v, want 4", odd)
	}
}
