package cmd

import (
	"blogpulse/internal/config"
	"blogpulse/internal/model"
	"blogpulse/internal/moderation"
	"blogpulse/internal/sentiment"
)

func loadLexicon(cfg config.ModerationConfig) (moderation.Lexicon, error) {
	if cfg.LexiconPath == "" {
		return moderation.DefaultLexicon(), nil
	}
	return moderation.LoadLexicon(cfg.LexiconPath)
}

// newClassifier returns the OpenAI classifier when configured, otherwise a
// neutral-labeling stand-in so the pipeline keeps working offline.
func newClassifier(cfg config.SentimentConfig) sentiment.Classifier {
	if cfg.APIKey == "" {
		return sentiment.Static{Label: model.Neutral}
	}
	return sentiment.NewOpenAI(sentiment.Config{
		APIKey:  cfg.APIKey,
		Model:   cfg.Model,
		BaseURL: cfg.BaseURL,
	})
}
