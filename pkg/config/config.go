package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Environment string `yaml:"environment"`
	Server      struct {
		Port            int           `yaml:"port"`
		ReadTimeout     time.Duration `yaml:"read_timeout"`
		WriteTimeout    time.Duration `yaml:"write_timeout"`
		ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	} `yaml:"server"`
	Logging struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"`
		Output string `yaml:"output"`
	} `yaml:"logging"`
	Metrics struct {
		Enabled bool   `yaml:"enabled"`
		Path    string `yaml:"path"`
	} `yaml:"metrics"`
	MarketData struct {
		Hosts      []string      `yaml:"hosts"`
		Timeout    time.Duration `yaml:"timeout"`
		MaxRetries int           `yaml:"max_retries"`
		Period     string        `yaml:"period"`
		CacheTTL   time.Duration `yaml:"cache_ttl"`
		SearchHost string        `yaml:"search_host"`
		RatePerSec float64       `yaml:"rate_per_sec"`
		RateBurst  float64       `yaml:"rate_burst"`
	} `yaml:"market_data"`
	News struct {
		FeedURL  string        `yaml:"feed_url"`
		Limit    int           `yaml:"limit"`
		Timeout  time.Duration `yaml:"timeout"`
		CacheTTL time.Duration `yaml:"cache_ttl"`
	} `yaml:"news"`
	Sentiment struct {
		Provider    string        `yaml:"provider"` // lexicon or openai
		OpenAIKey   string        `yaml:"openai_key"`
		OpenAIModel string        `yaml:"openai_model"`
		Timeout     time.Duration `yaml:"timeout"`
	} `yaml:"sentiment"`
	Forecast struct {
		DefaultHorizonDays int `yaml:"default_horizon_days"`
		MaxHorizonDays     int `yaml:"max_horizon_days"`
	} `yaml:"forecast"`
	Movers struct {
		Watchlist []string `yaml:"watchlist"`
		TopN      int      `yaml:"top_n"`
	} `yaml:"movers"`
	Chart struct {
		Width    int           `yaml:"width"`
		Height   int           `yaml:"height"`
		CacheTTL time.Duration `yaml:"cache_ttl"`
	} `yaml:"chart"`
	Cache struct {
		MaxSize int `yaml:"max_size"`
		Redis   struct {
			Enabled  bool   `yaml:"enabled"`
			Addr     string `yaml:"addr"`
			Password string `yaml:"password"`
			DB       int    `yaml:"db"`
		} `yaml:"redis"`
	} `yaml:"cache"`
}

// Load reads and parses a YAML configuration file.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var c Config
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	c.applyDefaults()

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return &c, nil
}

// LoadWithEnv loads config from YAML and overrides with environment variables.
func LoadWithEnv(path string) (*Config, error) {
	c, err := Load(path)
	if err != nil {
		return nil, err
	}

	if v := os.Getenv("OPENAI_API_KEY"); v != "" {
		c.Sentiment.OpenAIKey = v
	}
	if v := os.Getenv("SENTIMENT_PROVIDER"); v != "" {
		c.Sentiment.Provider = v
	}
	if v := os.Getenv("WATCHLIST"); v != "" {
		c.Movers.Watchlist = strings.Split(v, ",")
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		c.Cache.Redis.Enabled = true
		c.Cache.Redis.Addr = v
	}

	return c, nil
}

func (c *Config) applyDefaults() {
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if len(c.MarketData.Hosts) == 0 {
		c.MarketData.Hosts = []string{"query1.finance.yahoo.com", "query2.finance.yahoo.com"}
	}
	if c.MarketData.SearchHost == "" {
		c.MarketData.SearchHost = "query2.finance.yahoo.com"
	}
	if c.MarketData.Period == "" {
		c.MarketData.Period = "2y"
	}
	if c.MarketData.Timeout == 0 {
		c.MarketData.Timeout = 10 * time.Second
	}
	if c.MarketData.CacheTTL == 0 {
		c.MarketData.CacheTTL = 15 * time.Minute
	}
	if c.News.FeedURL == "" {
		c.News.FeedURL = "https://news.google.com/rss/search"
	}
	if c.News.Limit == 0 {
		c.News.Limit = 20
	}
	if c.News.Timeout == 0 {
		c.News.Timeout = 10 * time.Second
	}
	if c.News.CacheTTL == 0 {
		c.News.CacheTTL = 15 * time.Minute
	}
	if c.Sentiment.Provider == "" {
		c.Sentiment.Provider = "lexicon"
	}
	if c.Sentiment.OpenAIModel == "" {
		c.Sentiment.OpenAIModel = "gpt-4o-mini"
	}
	if c.Sentiment.Timeout == 0 {
		c.Sentiment.Timeout = 15 * time.Second
	}
	if c.Forecast.DefaultHorizonDays == 0 {
		c.Forecast.DefaultHorizonDays = 30
	}
	if c.Forecast.MaxHorizonDays == 0 {
		c.Forecast.MaxHorizonDays = 365
	}
	if c.Movers.TopN == 0 {
		c.Movers.TopN = 5
	}
	if c.Chart.Width == 0 {
		c.Chart.Width = 800
	}
	if c.Chart.Height == 0 {
		c.Chart.Height = 400
	}
	if c.Chart.CacheTTL == 0 {
		c.Chart.CacheTTL = time.Minute
	}
	if c.Cache.MaxSize == 0 {
		c.Cache.MaxSize = 1000
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Logging.Format == "" {
		c.Logging.Format = "console"
	}
	if c.Logging.Output == "" {
		c.Logging.Output = "stdout"
	}
	if c.Metrics.Path == "" {
		c.Metrics.Path = "/metrics"
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Environment == "" {
		return fmt.Errorf("environment is required")
	}
	if c.Sentiment.Provider != "lexicon" && c.Sentiment.Provider != "openai" {
		return fmt.Errorf("sentiment.provider must be 'lexicon' or 'openai', got '%s'", c.Sentiment.Provider)
	}
	if c.Sentiment.Provider == "openai" && c.Sentiment.OpenAIKey == "" {
		return fmt.Errorf("sentiment.openai_key is required when provider is 'openai'")
	}
	if c.Forecast.DefaultHorizonDays < 1 {
		return fmt.Errorf("forecast.default_horizon_days must be >= 1")
	}
	if c.Forecast.MaxHorizonDays < c.Forecast.DefaultHorizonDays {
		return fmt.Errorf("forecast.max_horizon_days must be >= default_horizon_days")
	}
	return nil
}
