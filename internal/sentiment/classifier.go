package sentiment

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"blogpulse/internal/model"

	openai "github.com/sashabaranov/go-openai"
)

// Classifier maps raw post text to a coarse sentiment label. Implementations
// must be side-effect-free and safe for concurrent use.
type Classifier interface {
	Classify(ctx context.Context, text string) (model.Sentiment, error)
}

// OpenAIClient implements Classifier using the OpenAI Chat Completions API.
type OpenAIClient struct {
	client *openai.Client
	model  string
}

type Config struct {
	APIKey  string
	Model   string
	BaseURL string // optional
}

func NewOpenAI(cfg Config) *OpenAIClient {
	var c *openai.Client
	if cfg.BaseURL != "" {
		cc := openai.DefaultConfig(cfg.APIKey)
		cc.BaseURL = cfg.BaseURL
		c = openai.NewClientWithConfig(cc)
	} else {
		c = openai.NewClient(cfg.APIKey)
	}
	model := cfg.Model
	if model == "" {
		panic("OpenAI model must be specified")
	}
	return &OpenAIClient{client: c, model: model}
}

const classifyPrompt = `You are a sentiment classifier for blog posts.
Reply with exactly one of these labels and nothing else:
Very Negative, Negative, Neutral, Positive, Very Positive.
If you cannot decide, reply Undetermined.`

// Classify labels the text. The raw model output is normalized to the
// closed label set here, at the boundary; callers never see free-form
// strings.
func (o *OpenAIClient) Classify(ctx context.Context, text string) (model.Sentiment, error) {
	// Default timeout guard, if caller didn't set one
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, 30*time.Second)
		defer cancel()
	}

	// Trim input to keep tokens reasonable
	text = strings.TrimSpace(text)
	if len([]rune(text)) > 2000 {
		text = string([]rune(text)[:2000])
	}

	resp, err := o.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: o.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: classifyPrompt},
			{Role: openai.ChatMessageRoleUser, Content: text},
		},
		Temperature: 0,
	})
	if err != nil {
		slog.Error("sentiment: classify error", "err", err)
		return "", fmt.Errorf("classify: %w", err)
	}
	if len(resp.Choices) == 0 {
		return model.Undetermined, nil
	}
	return model.ParseSentiment(resp.Choices[0].Message.Content), nil
}

// Static is a Classifier that always returns a fixed label. Useful in
// tests and for running the sweeper without an API key.
type Static struct {
	Label model.Sentiment
}

func (s Static) Classify(_ context.Context, _ string) (model.Sentiment, error) {
	if s.Label == "" {
		return model.Neutral, nil
	}
	return s.Label, nil
}
