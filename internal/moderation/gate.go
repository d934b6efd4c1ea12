package moderation

import (
	"context"
	"fmt"
	"strings"

	"blogpulse/internal/metrics"
	"blogpulse/internal/model"
)

// Mask replaces a flagged word in post content.
const Mask = "****"

// Base profanity thresholds per sentiment class. A negative post gets the
// least slack; the publisher's reputation can widen any of them by at most
// two percentage points.
const (
	negativeThreshold = 0.02
	neutralThreshold  = 0.03
	positiveThreshold = 0.04

	bonusPerPoint = 0.005
	bonusCap      = 0.02
)

// ReputationSource supplies the publisher reputation used to compute the
// threshold allowance.
type ReputationSource interface {
	Score(ctx context.Context, publisherID int64) (float64, error)
}

// Gate scans post content for flagged tokens, masks them, and decides the
// post's visibility status. It never deletes or rejects a post; a blocked
// post is only hidden from listings by the read path.
type Gate struct {
	lexicon Lexicon
	scorer  ReputationSource
}

func NewGate(lexicon Lexicon, scorer ReputationSource) *Gate {
	return &Gate{lexicon: lexicon, scorer: scorer}
}

// Apply masks flagged tokens in the post's content and sets its status.
// Empty content is trivially active. A post whose sentiment has not been
// assigned yet is masked but keeps its current status; the sweeper will
// come back to it once the classifier has run.
func (g *Gate) Apply(ctx context.Context, post *model.Post) error {
	masked, profane, total := g.maskContent(post.Content)
	if total == 0 {
		post.Status = model.StatusActive
		return nil
	}

	if post.Sentiment == "" {
		post.Content = masked
		return nil
	}

	rank, err := g.scorer.Score(ctx, post.PublisherID)
	if err != nil {
		// The post is left untouched so the caller can retry the whole gate.
		return fmt.Errorf("publisher %d reputation: %w", post.PublisherID, err)
	}
	// Regardless of how good someone's reputation is, the bonus allowance
	// stays capped at 2%.
	bonus := min(rank*bonusPerPoint, bonusCap)

	post.Content = masked
	ratio := float64(profane) / float64(total)
	if ratio >= g.threshold(post.Sentiment)+bonus {
		post.Status = model.StatusBlocked
	} else {
		post.Status = model.StatusActive
	}
	metrics.PostsGated.WithLabelValues(string(post.Status)).Inc()
	return nil
}

// FilterActive gates each post and returns the ones that come out active.
func (g *Gate) FilterActive(ctx context.Context, posts []model.Post) ([]model.Post, error) {
	out := make([]model.Post, 0, len(posts))
	for i := range posts {
		p := posts[i]
		if err := g.Apply(ctx, &p); err != nil {
			return nil, err
		}
		if p.Status == model.StatusActive {
			out = append(out, p)
		}
	}
	return out, nil
}

func (g *Gate) threshold(s model.Sentiment) float64 {
	switch s.ThresholdClass() {
	case model.Negative:
		return negativeThreshold
	case model.Positive:
		return positiveThreshold
	default:
		return neutralThreshold
	}
}

// maskContent tokenizes on whitespace, masks flagged words keeping any
// trailing punctuation, and rejoins with single spaces.
func (g *Gate) maskContent(content string) (masked string, profane, total int) {
	tokens := strings.Fields(content)
	for i, tok := range tokens {
		word, punct := splitTrailingPunct(tok)
		if word != "" && g.lexicon.Contains(word) {
			profane++
			tokens[i] = Mask + punct
		}
	}
	return strings.Join(tokens, " "), profane, len(tokens)
}

// splitTrailingPunct splits off a trailing run of '.', ',', or '!' from the
// leading word part.
func splitTrailingPunct(tok string) (word, punct string) {
	i := len(tok)
	for i > 0 {
		switch tok[i-1] {
		case '.', ',', '!':
			i--
		default:
			return tok[:i], tok[i:]
		}
	}
	return tok[:i], tok[i:]
}
