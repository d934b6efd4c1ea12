package storage

import (
	"context"
	"testing"

	"blogpulse/internal/model"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newTestStore(t *testing.T) *RedisStore {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })
	return NewRedisStore(rdb)
}

func wantGenres(t *testing.T, store *RedisStore, userID int64, want ...string) {
	t.Helper()
	got, err := store.FavoriteGenres(context.Background(), userID)
	if err != nil {
		t.Fatalf("FavoriteGenres: %v", err)
	}
	if len(got) != len(want) {
		t.Fatalf("genres = %v, want %v", got, want)
	}
	for _, g := range want {
		if _, ok := got[g]; !ok {
			t.Fatalf("genres = %v, want %v", got, want)
		}
	}
}

func TestSetFavoriteGenresReplaces(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	if err := store.SaveUser(ctx, model.User{ID: 1, Username: "ada", Genres: []string{"tech", "food"}}); err != nil {
		t.Fatalf("SaveUser: %v", err)
	}
	wantGenres(t, store, 1, "tech", "food")

	if err := store.SetFavoriteGenres(ctx, 1, []string{"travel"}); err != nil {
		t.Fatalf("SetFavoriteGenres: %v", err)
	}
	wantGenres(t, store, 1, "travel")
}

func TestSetFavoriteGenresClears(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	if err := store.SetFavoriteGenres(ctx, 1, []string{"tech"}); err != nil {
		t.Fatalf("SetFavoriteGenres: %v", err)
	}
	if err := store.SetFavoriteGenres(ctx, 1, nil); err != nil {
		t.Fatalf("SetFavoriteGenres clear: %v", err)
	}
	wantGenres(t, store, 1)
}

func TestSaveUserClearsStaleGenres(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	if err := store.SaveUser(ctx, model.User{ID: 1, Username: "ada", Genres: []string{"tech"}}); err != nil {
		t.Fatalf("SaveUser: %v", err)
	}
	// Resaving the user without genres must not leave the old set behind.
	if err := store.SaveUser(ctx, model.User{ID: 1, Username: "ada"}); err != nil {
		t.Fatalf("SaveUser: %v", err)
	}
	wantGenres(t, store, 1)
}

func TestFollowWritesBothSides(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	if err := store.Follow(ctx, 1, 2); err != nil {
		t.Fatalf("Follow: %v", err)
	}
	following, err := store.Following(ctx, 1)
	if err != nil {
		t.Fatalf("Following: %v", err)
	}
	if _, ok := following[2]; !ok {
		t.Errorf("following = %v, want publisher 2", following)
	}
	n, err := store.FollowerCount(ctx, 2)
	if err != nil {
		t.Fatalf("FollowerCount: %v", err)
	}
	if n != 1 {
		t.Errorf("follower count = %d, want 1", n)
	}

	if err := store.Unfollow(ctx, 1, 2); err != nil {
		t.Fatalf("Unfollow: %v", err)
	}
	n, err = store.FollowerCount(ctx, 2)
	if err != nil {
		t.Fatalf("FollowerCount: %v", err)
	}
	if n != 0 {
		t.Errorf("follower count after unfollow = %d, want 0", n)
	}
}

func TestModerationQueueFIFO(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	for _, id := range []int64{3, 5} {
		if err := store.EnqueueModeration(ctx, id); err != nil {
			t.Fatalf("EnqueueModeration: %v", err)
		}
	}
	for _, want := range []int64{3, 5} {
		id, ok, err := store.DequeueModeration(ctx)
		if err != nil || !ok {
			t.Fatalf("DequeueModeration = (%d, %v, %v), want queued id", id, ok, err)
		}
		if id != want {
			t.Errorf("dequeued %d, want %d", id, want)
		}
	}
	if _, ok, err := store.DequeueModeration(ctx); err != nil || ok {
		t.Fatalf("DequeueModeration on empty queue: ok=%v err=%v, want quiet empty", ok, err)
	}
}
