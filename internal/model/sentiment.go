package model

import "strings"

// Sentiment is the coarse sentiment label assigned to a post at creation
// time by the external classifier. The zero value means no label has been
// assigned yet, which is distinct from Undetermined (the classifier ran but
// could not decide).
type Sentiment string

const (
	VeryNegative Sentiment = "VeryNegative"
	Negative     Sentiment = "Negative"
	Neutral      Sentiment = "Neutral"
	Positive     Sentiment = "Positive"
	VeryPositive Sentiment = "VeryPositive"
	Undetermined Sentiment = "Undetermined"
)

// ParseSentiment normalizes free-form classifier output to the closed label
// set. Anything unrecognized maps to Undetermined; normalization happens
// here, at the classifier boundary, never inside scoring logic.
func ParseSentiment(s string) Sentiment {
	switch strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), " ", "") {
	case "verynegative":
		return VeryNegative
	case "negative":
		return Negative
	case "neutral":
		return Neutral
	case "positive":
		return Positive
	case "verypositive":
		return VeryPositive
	default:
		return Undetermined
	}
}

// Score maps a sentiment to its reputation contribution: -1 for the
// negative class, +1 for the positive class, 0 otherwise.
func (s Sentiment) Score() int {
	switch s {
	case Negative, VeryNegative:
		return -1
	case Positive, VeryPositive:
		return 1
	default:
		return 0
	}
}

// ThresholdClass collapses the six labels onto the three buckets profanity
// thresholds are defined for. The extremes join their coarse class and
// Undetermined is treated as Neutral.
func (s Sentiment) ThresholdClass() Sentiment {
	switch s {
	case Negative, VeryNegative:
		return Negative
	case Positive, VeryPositive:
		return Positive
	default:
		return Neutral
	}
}
