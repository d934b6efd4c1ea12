package reputation

import (
	"sort"

	"blogpulse/internal/model"
)

// Engagement metric weights. Likes and shares carry most of the signal;
// comments are easy to inflate.
const (
	likesWeight    = 0.45
	sharesWeight   = 0.45
	commentsWeight = 0.10
)

// engagementScore combines weighted medians of the per-post like, share,
// and comment counts, scaled by a normalization constant.
func engagementScore(posts []model.Post) float64 {
	const normalizationFactor = 18.0

	likes := make([]float64, 0, len(posts))
	shares := make([]float64, 0, len(posts))
	comments := make([]float64, 0, len(posts))
	for _, p := range posts {
		likes = append(likes, float64(p.Likes))
		shares = append(shares, float64(p.Shares))
		comments = append(comments, float64(p.Comments))
	}

	weightedMedianLikes := weightedMedian(likes, likesWeight)
	weightedMedianShares := weightedMedian(shares, sharesWeight)
	weightedMedianComments := weightedMedian(comments, commentsWeight)

	return ((weightedMedianLikes + weightedMedianShares + weightedMedianComments) / 3) * normalizationFactor
}

// weightedMedian sorts the values ascending and takes a weighted sum over
// the sorted sequence, halving each element's weight for even-sized lists,
// divided by the accumulated weight.
func weightedMedian(values []float64, weight float64) float64 {
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	medianWeight := 1.0
	if len(sorted)%2 == 0 {
		medianWeight = 0.5
	}

	var weightedSum, totalWeight float64
	for _, v := range sorted {
		w := medianWeight * weight
		weightedSum += v * w
		totalWeight += w
	}
	return weightedSum / totalWeight
}

// frequencyScore rewards frequent posting with an inverse-time law over the
// gaps between consecutive posts, ordered by publish time. Undefined (zero
// contribution) when fewer than two posts exist.
func frequencyScore(posts []model.Post) float64 {
	const (
		normalizationFactor = 120.0
		epsilon             = 0.0001 // guards same-instant posts
	)
	if len(posts) < 2 {
		return 0
	}

	ordered := make([]model.Post, len(posts))
	copy(ordered, posts)
	sort.Slice(ordered, func(i, j int) bool {
		return ordered[i].PublishedAt.Before(ordered[j].PublishedAt)
	})

	var total float64
	for i := 1; i < len(ordered); i++ {
		hoursBetween := ordered[i].PublishedAt.Sub(ordered[i-1].PublishedAt).Hours()
		total += 1.0 / (hoursBetween + epsilon)
	}
	return (total / float64(len(ordered)-1)) / normalizationFactor
}

// sentimentScore averages the per-post sentiment contributions. The result
// can be negative; only the upper bound is capped.
func sentimentScore(posts []model.Post) float64 {
	const normalizationFactor = 8.0

	total := 0
	for _, p := range posts {
		total += p.Sentiment.Score()
	}
	return (float64(total) / float64(len(posts))) * normalizationFactor
}

// profanityScore is the penalty contribution: the fraction of the
// publisher's posts currently blocked, scaled up.
func profanityScore(posts []model.Post) float64 {
	const normalizationFactor = 6.0

	var blocked float64
	for _, p := range posts {
		if p.Status == model.StatusBlocked {
			blocked++
		}
	}
	return (blocked / float64(len(posts))) * normalizationFactor
}
