package config

// AppConfig holds application-level settings.
type AppConfig struct {
	LogLevel string `mapstructure:"log_level"`
}

// RedisConfig holds redis connection settings.
type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// SentimentConfig controls the external sentiment classifier.
type SentimentConfig struct {
	APIKey  string `mapstructure:"api_key"`
	Model   string `mapstructure:"model"`
	BaseURL string `mapstructure:"base_url"` // optional, for OpenAI-compatible endpoints
}

// ModerationConfig controls the content gate.
type ModerationConfig struct {
	LexiconPath   string `mapstructure:"lexicon_path"`   // YAML word list; built-in list if empty
	SweepInterval string `mapstructure:"sweep_interval"` // duration string, e.g., "30s"
}

// FeedConfig controls recommended-feed assembly.
type FeedConfig struct {
	WindowSize             int     `mapstructure:"window_size"` // trending candidate pool size
	Period                 string  `mapstructure:"period"`      // daily, weekly, or monthly
	DistinguishedThreshold float64 `mapstructure:"distinguished_threshold"`
}

// TrendingConfig controls the trending collector worker.
type TrendingConfig struct {
	RebuildInterval string `mapstructure:"rebuild_interval"` // duration string, e.g., "10m"
}

// MetricsConfig controls the operational metrics listener.
type MetricsConfig struct {
	Addr string `mapstructure:"addr"` // empty disables the listener
}

// Config is the top-level configuration structure.
type Config struct {
	App        AppConfig        `mapstructure:"app"`
	Redis      RedisConfig      `mapstructure:"redis"`
	Sentiment  SentimentConfig  `mapstructure:"sentiment"`
	Moderation ModerationConfig `mapstructure:"moderation"`
	Feed       FeedConfig       `mapstructure:"feed"`
	Trending   TrendingConfig   `mapstructure:"trending"`
	Metrics    MetricsConfig    `mapstructure:"metrics"`
}

// FillDefaults applies default values if not provided.
func (c *Config) FillDefaults() {
	if c.App.LogLevel == "" {
		c.App.LogLevel = "info"
	}
	if c.Redis.Addr == "" {
		c.Redis.Addr = "127.0.0.1:6379"
	}
	if c.Moderation.SweepInterval == "" {
		c.Moderation.SweepInterval = "30s"
	}
	if c.Feed.WindowSize == 0 {
		c.Feed.WindowSize = 25
	}
	if c.Feed.Period == "" {
		c.Feed.Period = "weekly"
	}
	if c.Feed.DistinguishedThreshold == 0 {
		c.Feed.DistinguishedThreshold = 20
	}
	if c.Trending.RebuildInterval == "" {
		c.Trending.RebuildInterval = "10m"
	}
	if c.Metrics.Addr == "" {
		c.Metrics.Addr = ":8080"
	}
}
