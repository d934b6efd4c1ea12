package model

import "time"

// Post represents a single blog post owned by a publisher.
type Post struct {
	ID          int64     `json:"id"`
	PublisherID int64     `json:"publisher_id"`
	Title       string    `json:"title"`
	Content     string    `json:"content"`
	Tags        []string  `json:"tags"`
	Likes       int64     `json:"likes"`
	Shares      int64     `json:"shares"`
	Comments    int64     `json:"comments"`
	Reports     int64     `json:"reports"`
	Sentiment   Sentiment `json:"sentiment"`
	Status      Status    `json:"status"`
	PublishedAt time.Time `json:"published_at"`
}

// User is a platform user; acting as a content owner they are a publisher.
type User struct {
	ID       int64    `json:"id"`
	Username string   `json:"username"`
	Genres   []string `json:"genres"` // favorite blog genres
}

// Status is the visibility status the content gate writes onto a post.
// The zero value means the post has not been gated yet.
type Status string

const (
	StatusActive  Status = "Active"
	StatusBlocked Status = "Blocked"
)
