package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config stores all configuration for the application.
type Config struct {
	ServerPort  string `mapstructure:"SERVER_PORT"`
	LogLevel    string `mapstructure:"LOG_LEVEL"`
	LogFormat   string `mapstructure:"LOG_FORMAT"`
	Environment string `mapstructure:"ENVIRONMENT"`

	UpstreamBaseURL        string `mapstructure:"UPSTREAM_BASE_URL"`
	UpstreamTimeoutSeconds int    `mapstructure:"UPSTREAM_TIMEOUT_SECONDS"`
	// Empty means the fetcher's built-in desktop browser agent.
	UpstreamUserAgent string `mapstructure:"UPSTREAM_USER_AGENT"`

	RedisAddr       string `mapstructure:"REDIS_ADDR"`
	RedisPassword   string `mapstructure:"REDIS_PASSWORD"`
	RedisDB         int    `mapstructure:"REDIS_DB"`
	MemoryCacheSize int    `mapstructure:"MEMORY_CACHE_SIZE"`

	BoxerCacheTTLSeconds   int `mapstructure:"BOXER_CACHE_TTL_SECONDS"`
	SearchCacheTTLSeconds  int `mapstructure:"SEARCH_CACHE_TTL_SECONDS"`
	RatingsCacheTTLSeconds int `mapstructure:"RATINGS_CACHE_TTL_SECONDS"`

	RateLimitRequests      int `mapstructure:"RATE_LIMIT_REQUESTS"`
	RateLimitWindowSeconds int `mapstructure:"RATE_LIMIT_WINDOW_SECONDS"`

	PostgresURL string `mapstructure:"POSTGRES_URL"`

	SessionCookieMaxAgeSeconds int `mapstructure:"SESSION_COOKIE_MAX_AGE_SECONDS"`
}

var defaults = map[string]any{
	"SERVER_PORT":                    "8080",
	"LOG_LEVEL":                      "info",
	"LOG_FORMAT":                     "json",
	"ENVIRONMENT":                    "development",
	"UPSTREAM_BASE_URL":              "https://boxrec.com",
	"UPSTREAM_TIMEOUT_SECONDS":       30,
	"UPSTREAM_USER_AGENT":            "",
	"REDIS_ADDR":                     "",
	"REDIS_PASSWORD":                 "",
	"REDIS_DB":                       0,
	"MEMORY_CACHE_SIZE":              4096,
	"BOXER_CACHE_TTL_SECONDS":        3600,
	"SEARCH_CACHE_TTL_SECONDS":       1800,
	"RATINGS_CACHE_TTL_SECONDS":      3600,
	"RATE_LIMIT_REQUESTS":            100,
	"RATE_LIMIT_WINDOW_SECONDS":      3600,
	"POSTGRES_URL":                   "",
	"SESSION_COOKIE_MAX_AGE_SECONDS": 86400,
}

// Load reads configuration from the env file at path (if it exists) and
// from environment variables, which take precedence.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("env")
	v.AutomaticEnv()

	// A missing file is fine; production is configured purely through the environment.
	_ = v.ReadInConfig()

	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects settings the service cannot run with.
func (c *Config) Validate() error {
	var errs []error
	positive := []struct {
		key   string
		value int
	}{
		{"UPSTREAM_TIMEOUT_SECONDS", c.UpstreamTimeoutSeconds},
		{"MEMORY_CACHE_SIZE", c.MemoryCacheSize},
		{"BOXER_CACHE_TTL_SECONDS", c.BoxerCacheTTLSeconds},
		{"SEARCH_CACHE_TTL_SECONDS", c.SearchCacheTTLSeconds},
		{"RATINGS_CACHE_TTL_SECONDS", c.RatingsCacheTTLSeconds},
		{"RATE_LIMIT_REQUESTS", c.RateLimitRequests},
		{"RATE_LIMIT_WINDOW_SECONDS", c.RateLimitWindowSeconds},
		{"SESSION_COOKIE_MAX_AGE_SECONDS", c.SessionCookieMaxAgeSeconds},
	}
	for _, p := range positive {
		if p.value <= 0 {
			errs = append(errs, fmt.Errorf("%s must be positive, got %d", p.key, p.value))
		}
	}
	if strings.TrimSpace(c.ServerPort) == "" {
		errs = append(errs, errors.New("SERVER_PORT must be set"))
	}
	if strings.TrimSpace(c.UpstreamBaseURL) == "" {
		errs = append(errs, errors.New("UPSTREAM_BASE_URL must be set"))
	}
	return errors.Join(errs...)
}

func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Environment, "production")
}

func (c *Config) UpstreamTimeout() time.Duration {
	return time.Duration(c.UpstreamTimeoutSeconds) * time.Second
}

func (c *Config) BoxerCacheTTL() time.Duration {
	return time.Duration(c.BoxerCacheTTLSeconds) * time.Second
}

func (c *Config) SearchCacheTTL() time.Duration {
	return time.Duration(c.SearchCacheTTLSeconds) * time.Second
}

func (c *Config) RatingsCacheTTL() time.Duration {
	return time.Duration(c.RatingsCacheTTLSeconds) * time.Second
}

func (c *Config) RateLimitWindow() time.Duration {
	return time.Duration(c.RateLimitWindowSeconds) * time.Second
}

func (c *Config) SessionCookieMaxAge() time.Duration {
	return time.Duration(c.SessionCookieMaxAgeSeconds) * time.Second
}
