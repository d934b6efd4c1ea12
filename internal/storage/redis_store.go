package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"blogpulse/internal/model"

	"github.com/redis/go-redis/v9"
)

// RedisStore is the persistence store for posts, users, the follow graph,
// and the trending indexes.
type RedisStore struct {
	rdb *redis.Client
}

func NewRedisStore(rdb *redis.Client) *RedisStore {
	return &RedisStore{rdb: rdb}
}

func postKey(id int64) string {
	return fmt.Sprintf("blog:post:%d", id)
}

func publisherPostsKey(publisherID int64) string {
	return fmt.Sprintf("blog:publisher:%d:posts", publisherID)
}

func userKey(id int64) string {
	return fmt.Sprintf("blog:user:%d", id)
}

func followersKey(publisherID int64) string {
	return fmt.Sprintf("blog:publisher:%d:followers", publisherID)
}

func followingKey(userID int64) string {
	return fmt.Sprintf("blog:user:%d:following", userID)
}

func genresKey(userID int64) string {
	return fmt.Sprintf("blog:user:%d:genres", userID)
}

func trendingKey(period string) string {
	return fmt.Sprintf("blog:trending:%s", period)
}

const moderationQueueKey = "blog:moderation:queue"

// Ping verifies the store connection.
func (s *RedisStore) Ping(ctx context.Context) error {
	return s.rdb.Ping(ctx).Err()
}

// SavePost stores or updates a post and indexes it under its publisher.
func (s *RedisStore) SavePost(ctx context.Context, p model.Post) error {
	if p.ID == 0 || p.PublisherID == 0 {
		return fmt.Errorf("%w: post needs id and publisher id", ErrInvalidInput)
	}
	b, err := json.Marshal(p)
	if err != nil {
		return err
	}
	pipe := s.rdb.TxPipeline()
	pipe.Set(ctx, postKey(p.ID), b, 0)
	pipe.SAdd(ctx, publisherPostsKey(p.PublisherID), p.ID)
	_, err = pipe.Exec(ctx)
	return err
}

// Post retrieves a single post by id.
func (s *RedisStore) Post(ctx context.Context, id int64) (model.Post, error) {
	b, err := s.rdb.Get(ctx, postKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return model.Post{}, fmt.Errorf("post %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return model.Post{}, err
	}
	var p model.Post
	if err := json.Unmarshal(b, &p); err != nil {
		return model.Post{}, err
	}
	return p, nil
}

// PostsByPublisher returns all posts attributed to a publisher. A publisher
// with no posts yields an empty slice, not an error.
func (s *RedisStore) PostsByPublisher(ctx context.Context, publisherID int64) ([]model.Post, error) {
	ids, err := s.rdb.SMembers(ctx, publisherPostsKey(publisherID)).Result()
	if err != nil {
		return nil, err
	}
	posts := make([]model.Post, 0, len(ids))
	for _, raw := range ids {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: bad post id %q", ErrInvalidInput, raw)
		}
		p, err := s.Post(ctx, id)
		if errors.Is(err, ErrNotFound) {
			continue // post expired or deleted out from under the index
		}
		if err != nil {
			return nil, err
		}
		posts = append(posts, p)
	}
	return posts, nil
}

// FollowerCount returns the number of users following a publisher.
func (s *RedisStore) FollowerCount(ctx context.Context, publisherID int64) (int64, error) {
	return s.rdb.SCard(ctx, followersKey(publisherID)).Result()
}

// SaveUser stores or updates a user record. The record's genre list
// replaces the user's favorite-genre set, so saving a user with no genres
// clears it.
func (s *RedisStore) SaveUser(ctx context.Context, u model.User) error {
	if u.ID == 0 {
		return fmt.Errorf("%w: user needs an id", ErrInvalidInput)
	}
	b, err := json.Marshal(u)
	if err != nil {
		return err
	}
	pipe := s.rdb.TxPipeline()
	pipe.Set(ctx, userKey(u.ID), b, 0)
	writeGenres(ctx, pipe, u.ID, u.Genres)
	_, err = pipe.Exec(ctx)
	return err
}

// SetFavoriteGenres replaces the user's favorite-genre set. An empty list
// clears it.
func (s *RedisStore) SetFavoriteGenres(ctx context.Context, userID int64, genres []string) error {
	if userID == 0 {
		return fmt.Errorf("%w: user needs an id", ErrInvalidInput)
	}
	pipe := s.rdb.TxPipeline()
	writeGenres(ctx, pipe, userID, genres)
	_, err := pipe.Exec(ctx)
	return err
}

func writeGenres(ctx context.Context, pipe redis.Pipeliner, userID int64, genres []string) {
	pipe.Del(ctx, genresKey(userID))
	if len(genres) > 0 {
		pipe.SAdd(ctx, genresKey(userID), toAnySlice(genres)...)
	}
}

// User retrieves a user by id.
func (s *RedisStore) User(ctx context.Context, id int64) (model.User, error) {
	b, err := s.rdb.Get(ctx, userKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return model.User{}, fmt.Errorf("user %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return model.User{}, err
	}
	var u model.User
	if err := json.Unmarshal(b, &u); err != nil {
		return model.User{}, err
	}
	return u, nil
}

// Follow records that userID follows publisherID. Both sides of the graph
// are written in one transaction.
func (s *RedisStore) Follow(ctx context.Context, userID, publisherID int64) error {
	pipe := s.rdb.TxPipeline()
	pipe.SAdd(ctx, followingKey(userID), publisherID)
	pipe.SAdd(ctx, followersKey(publisherID), userID)
	_, err := pipe.Exec(ctx)
	return err
}

// Unfollow removes a follow edge from both sides of the graph.
func (s *RedisStore) Unfollow(ctx context.Context, userID, publisherID int64) error {
	pipe := s.rdb.TxPipeline()
	pipe.SRem(ctx, followingKey(userID), publisherID)
	pipe.SRem(ctx, followersKey(publisherID), userID)
	_, err := pipe.Exec(ctx)
	return err
}

// Following returns the set of publisher ids the user follows.
func (s *RedisStore) Following(ctx context.Context, userID int64) (map[int64]struct{}, error) {
	raw, err := s.rdb.SMembers(ctx, followingKey(userID)).Result()
	if err != nil {
		return nil, err
	}
	out := make(map[int64]struct{}, len(raw))
	for _, r := range raw {
		id, err := strconv.ParseInt(r, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: bad publisher id %q", ErrInvalidInput, r)
		}
		out[id] = struct{}{}
	}
	return out, nil
}

// FavoriteGenres returns the user's favorite blog genres as a set.
func (s *RedisStore) FavoriteGenres(ctx context.Context, userID int64) (map[string]struct{}, error) {
	raw, err := s.rdb.SMembers(ctx, genresKey(userID)).Result()
	if err != nil {
		return nil, err
	}
	out := make(map[string]struct{}, len(raw))
	for _, g := range raw {
		out[g] = struct{}{}
	}
	return out, nil
}

// AddLike increments a post's like counter.
func (s *RedisStore) AddLike(ctx context.Context, postID int64) error {
	return s.bump(ctx, postID, func(p *model.Post) { p.Likes++ })
}

// AddShare increments a post's share counter.
func (s *RedisStore) AddShare(ctx context.Context, postID int64) error {
	return s.bump(ctx, postID, func(p *model.Post) { p.Shares++ })
}

// AddComment increments a post's comment counter.
func (s *RedisStore) AddComment(ctx context.Context, postID int64) error {
	return s.bump(ctx, postID, func(p *model.Post) { p.Comments++ })
}

// ReportPost increments a post's report counter. Reports only ever increase.
func (s *RedisStore) ReportPost(ctx context.Context, postID int64) error {
	return s.bump(ctx, postID, func(p *model.Post) { p.Reports++ })
}

func (s *RedisStore) bump(ctx context.Context, postID int64, mutate func(*model.Post)) error {
	p, err := s.Post(ctx, postID)
	if err != nil {
		return err
	}
	mutate(&p)
	return s.SavePost(ctx, p)
}

// EnqueueModeration queues a post id for the moderation sweeper.
func (s *RedisStore) EnqueueModeration(ctx context.Context, postID int64) error {
	return s.rdb.LPush(ctx, moderationQueueKey, postID).Err()
}

// DequeueModeration pops the next queued post id. Returns ok=false when the
// queue is empty.
func (s *RedisStore) DequeueModeration(ctx context.Context) (int64, bool, error) {
	raw, err := s.rdb.RPop(ctx, moderationQueueKey).Result()
	if errors.Is(err, redis.Nil) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, false, fmt.Errorf("%w: bad queued post id %q", ErrInvalidInput, raw)
	}
	return id, true, nil
}

// TopTrending returns up to n currently active posts from the period's
// trending index, ordered by likes desc, shares desc, comments desc.
func (s *RedisStore) TopTrending(ctx context.Context, n int, period string) ([]model.Post, error) {
	ids, err := s.rdb.ZRevRange(ctx, trendingKey(period), 0, int64(n-1)).Result()
	if err != nil {
		return nil, err
	}
	out := make([]model.Post, 0, len(ids))
	for _, raw := range ids {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: bad trending post id %q", ErrInvalidInput, raw)
		}
		p, err := s.Post(ctx, id)
		if errors.Is(err, ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		// Status may have flipped since the index was built.
		if p.Status != model.StatusActive {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

// RebuildTrending rescans all posts and rewrites the period's trending
// index with active posts published within the window.
func (s *RedisStore) RebuildTrending(ctx context.Context, period string, window time.Duration) (int, error) {
	cutoff := time.Now().UTC().Add(-window)
	tmp := trendingKey(period) + ":rebuild"
	if err := s.rdb.Del(ctx, tmp).Err(); err != nil {
		return 0, err
	}

	indexed := 0
	var cursor uint64
	for {
		keys, next, err := s.rdb.Scan(ctx, cursor, "blog:post:*", 200).Result()
		if err != nil {
			return 0, err
		}
		for _, key := range keys {
			b, err := s.rdb.Get(ctx, key).Bytes()
			if errors.Is(err, redis.Nil) {
				continue
			}
			if err != nil {
				return 0, err
			}
			var p model.Post
			if err := json.Unmarshal(b, &p); err != nil {
				continue // skip unreadable entries rather than aborting the rebuild
			}
			if p.Status != model.StatusActive || p.PublishedAt.Before(cutoff) {
				continue
			}
			z := redis.Z{Score: TrendingRank(p), Member: p.ID}
			if err := s.rdb.ZAdd(ctx, tmp, z).Err(); err != nil {
				return 0, err
			}
			indexed++
		}
		cursor = next
		if cursor == 0 {
			break
		}
	}

	if indexed == 0 {
		pipe := s.rdb.TxPipeline()
		pipe.Del(ctx, trendingKey(period))
		pipe.Del(ctx, tmp)
		_, err := pipe.Exec(ctx)
		return 0, err
	}
	return indexed, s.rdb.Rename(ctx, tmp, trendingKey(period)).Err()
}

// TrendingRank packs (likes, shares, comments) into a single ZSET score so
// that descending score order matches likes desc, shares desc, comments
// desc. Holds as long as shares and comments stay below 10^6 per post and
// likes stay below about 9*10^3; past that the float64 mantissa can no
// longer carry the comments unit and the last tie-break degrades.
func TrendingRank(p model.Post) float64 {
	return float64(p.Likes)*1e12 + float64(p.Shares)*1e6 + float64(p.Comments)
}

func toAnySlice(ss []string) []any {
	out := make([]any, len(ss))
	for i, s := range ss {
		out[i] = s
	}
	return out
}
