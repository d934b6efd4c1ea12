package model

import "testing"

func TestParseSentiment(t *testing.T) {
	cases := []struct {
		in   string
		want Sentiment
	}{
		{"Positive", Positive},
		{"positive", Positive},
		{"Very Positive", VeryPositive},
		{"verypositive", VeryPositive},
		{"Very Negative", VeryNegative},
		{" negative ", Negative},
		{"NEUTRAL", Neutral},
		{"undetermined", Undetermined},
		{"", Undetermined},
		{"cannot classify a blank response", Undetermined},
		{"mostly positive-ish", Undetermined},
	}
	for _, c := range cases {
		if got := ParseSentiment(c.in); got != c.want {
			t.Errorf("ParseSentiment(%q) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestSentimentScore(t *testing.T) {
	cases := []struct {
		s    Sentiment
		want int
	}{
		{VeryNegative, -1},
		{Negative, -1},
		{Neutral, 0},
		{Undetermined, 0},
		{Sentiment(""), 0},
		{Positive, 1},
		{VeryPositive, 1},
	}
	for _, c := range cases {
		if got := c.s.Score(); got != c.want {
			t.Errorf("%v.Score() = %d, want %d", c.s, got, c.want)
		}
	}
}

func TestThresholdClass(t *testing.T) {
	cases := []struct {
		s    Sentiment
		want Sentiment
	}{
		{VeryNegative, Negative},
		{Negative, Negative},
		{Neutral, Neutral},
		{Undetermined, Neutral},
		{Positive, Positive},
		{VeryPositive, Positive},
	}
	for _, c := range cases {
		if got := c.s.ThresholdClass(); got != c.want {
			t.Errorf("%v.ThresholdClass() = %v, want %v", c.s, got, c.want)
		}
	}
}
