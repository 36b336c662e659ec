package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Source kinds accepted by faq.source.kind.
const (
	SourceFile     = "file"
	SourceHTTP     = "http"
	SourceS3       = "s3"
	SourcePostgres = "postgres"
	SourceStatic   = "static"
)

// Config aggregates runtime configuration used across the service.
type Config struct {
	HTTP HTTPConfig `yaml:"http"`
	FAQ  FAQConfig  `yaml:"faq"`
}

// HTTPConfig controls server level behavior.
type HTTPConfig struct {
	Address        string          `yaml:"address"`
	ReadTimeout    time.Duration   `yaml:"readTimeout"`
	WriteTimeout   time.Duration   `yaml:"writeTimeout"`
	AllowedOrigins []string        `yaml:"allowedOrigins"`
	AdminToken     string          `yaml:"adminToken"`
	RateLimit      RateLimitConfig `yaml:"rateLimit"`
}

// RateLimitConfig drives the request limiting middleware.
type RateLimitConfig struct {
	Enabled           bool `yaml:"enabled"`
	RequestsPerMinute int  `yaml:"requestsPerMinute"`
	Burst             int  `yaml:"burst"`
}

// FAQConfig controls matching thresholds, messages and where the table lives.
type FAQConfig struct {
	AcceptThreshold    float64      `yaml:"acceptThreshold"`
	SuggestThreshold   float64      `yaml:"suggestThreshold"`
	ShortlistSize      int          `yaml:"shortlistSize"`
	NoMatchAnswer      string       `yaml:"noMatchAnswer"`
	Greeting           string       `yaml:"greeting"`
	LoadFailureNotice  string       `yaml:"loadFailureNotice"`
	TopRecommendations int          `yaml:"topRecommendations"`
	Source             SourceConfig `yaml:"source"`
	Redis              RedisConfig  `yaml:"redis"`
}

// SourceConfig selects and configures the table source.
type SourceConfig struct {
	Kind     string         `yaml:"kind"`
	Path     string         `yaml:"path"`
	Watch    bool           `yaml:"watch"`
	URL      string         `yaml:"url"`
	Timeout  time.Duration  `yaml:"timeout"`
	Static   string         `yaml:"static"`
	S3       S3Config       `yaml:"s3"`
	Postgres PostgresConfig `yaml:"postgres"`
}

// S3Config points at an object in an S3-compatible bucket.
type S3Config struct {
	Endpoint  string `yaml:"endpoint"`
	AccessKey string `yaml:"accessKey"`
	SecretKey string `yaml:"secretKey"`
	Bucket    string `yaml:"bucket"`
	Region    string `yaml:"region"`
	Key       string `yaml:"key"`
}

// PostgresConfig contains DSN, pooling settings and the FAQ table name.
type PostgresConfig struct {
	DSN      string `yaml:"dsn"`
	MaxConns int32  `yaml:"maxConns"`
	MinConns int32  `yaml:"minConns"`
	Table    string `yaml:"table"`
}

// RedisConfig contains connection information for the trending store.
type RedisConfig struct {
	Enabled bool   `yaml:"enabled"`
	Addr    string `yaml:"addr"`
	Prefix  string `yaml:"prefix"`
}

// Load reads configuration from a YAML file and environment variables.
func Load() (*Config, error) {
	cfg := defaultConfig()

	if path := os.Getenv("CONFIG_PATH"); path != "" {
		if err := hydrateFromFile(cfg, path); err != nil {
			return nil, err
		}
	} else if _, err := os.Stat("configs/config.yaml"); err == nil {
		if err := hydrateFromFile(cfg, "configs/config.yaml"); err != nil {
			return nil, err
		}
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

func hydrateFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("HTTP_ADDRESS"); v != "" {
		cfg.HTTP.Address = v
	}
	if v := os.Getenv("HTTP_ALLOWED_ORIGINS"); v != "" {
		cfg.HTTP.AllowedOrigins = splitList(v)
	}
	if v := os.Getenv("HTTP_ADMIN_TOKEN"); v != "" {
		cfg.HTTP.AdminToken = v
	}
	if v := os.Getenv("HTTP_RATE_LIMIT_ENABLED"); v != "" {
		cfg.HTTP.RateLimit.Enabled = parseBool(v)
	}
	if v := os.Getenv("HTTP_RATE_LIMIT_RPM"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.HTTP.RateLimit.RequestsPerMinute = parsed
		}
	}
	if v := os.Getenv("HTTP_RATE_LIMIT_BURST"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.HTTP.RateLimit.Burst = parsed
		}
	}
	if v := os.Getenv("FAQ_ACCEPT_THRESHOLD"); v != "" {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.FAQ.AcceptThreshold = parsed
		}
	}
	if v := os.Getenv("FAQ_SUGGEST_THRESHOLD"); v != "" {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.FAQ.SuggestThreshold = parsed
		}
	}
	if v := os.Getenv("FAQ_SHORTLIST_SIZE"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.FAQ.ShortlistSize = parsed
		}
	}
	if v := os.Getenv("FAQ_NO_MATCH_ANSWER"); v != "" {
		cfg.FAQ.NoMatchAnswer = v
	}
	if v := os.Getenv("FAQ_GREETING"); v != "" {
		cfg.FAQ.Greeting = v
	}
	if v := os.Getenv("FAQ_RECOMMENDATIONS"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.FAQ.TopRecommendations = parsed
		}
	}
	if v := os.Getenv("FAQ_SOURCE_KIND"); v != "" {
		cfg.FAQ.Source.Kind = strings.ToLower(v)
	}
	if v := os.Getenv("FAQ_SOURCE_PATH"); v != "" {
		cfg.FAQ.Source.Path = v
	}
	if v := os.Getenv("FAQ_SOURCE_WATCH"); v != "" {
		cfg.FAQ.Source.Watch = parseBool(v)
	}
	if v := os.Getenv("FAQ_SOURCE_URL"); v != "" {
		cfg.FAQ.Source.URL = v
	}
	if v := os.Getenv("FAQ_SOURCE_TIMEOUT"); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			cfg.FAQ.Source.Timeout = parsed
		}
	}
	if v := os.Getenv("FAQ_S3_ENDPOINT"); v != "" {
		cfg.FAQ.Source.S3.Endpoint = v
	}
	if v := os.Getenv("FAQ_S3_ACCESS_KEY"); v != "" {
		cfg.FAQ.Source.S3.AccessKey = v
	}
	if v := os.Getenv("FAQ_S3_SECRET_KEY"); v != "" {
		cfg.FAQ.Source.S3.SecretKey = v
	}
	if v := os.Getenv("FAQ_S3_BUCKET"); v != "" {
		cfg.FAQ.Source.S3.Bucket = v
	}
	if v := os.Getenv("FAQ_S3_REGION"); v != "" {
		cfg.FAQ.Source.S3.Region = v
	}
	if v := os.Getenv("FAQ_S3_KEY"); v != "" {
		cfg.FAQ.Source.S3.Key = v
	}
	if v := os.Getenv("FAQ_POSTGRES_DSN"); v != "" {
		cfg.FAQ.Source.Postgres.DSN = v
	}
	if v := os.Getenv("FAQ_POSTGRES_MAX_CONNS"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.FAQ.Source.Postgres.MaxConns = int32(parsed)
		}
	}
	if v := os.Getenv("FAQ_POSTGRES_MIN_CONNS"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.FAQ.Source.Postgres.MinConns = int32(parsed)
		}
	}
	if v := os.Getenv("FAQ_POSTGRES_TABLE"); v != "" {
		cfg.FAQ.Source.Postgres.Table = v
	}
	if v := os.Getenv("FAQ_REDIS_ENABLED"); v != "" {
		cfg.FAQ.Redis.Enabled = parseBool(v)
	}
	if v := os.Getenv("FAQ_REDIS_ADDR"); v != "" {
		cfg.FAQ.Redis.Addr = v
	}
}

func defaultConfig() *Config {
	return &Config{
		HTTP: HTTPConfig{
			Address:      ":8080",
			ReadTimeout:  5 * time.Second,
			WriteTimeout: 5 * time.Second,
			RateLimit: RateLimitConfig{
				Enabled:           true,
				RequestsPerMinute: 60,
				Burst:             20,
			},
		},
		FAQ: FAQConfig{
			AcceptThreshold:    0.45,
			SuggestThreshold:   0.35,
			ShortlistSize:      3,
			NoMatchAnswer:      "🤖 Sorry, I couldn't find a matching answer.",
			Greeting:           "👋 Hi — I'm the Devbay Assistant. Ask me anything about Devbay!",
			LoadFailureNotice:  "⚠️ Failed to load Q&A data from CSV.",
			TopRecommendations: 5,
			Source: SourceConfig{
				Kind:    SourceFile,
				Path:    "data/faq.csv",
				Timeout: 10 * time.Second,
				Postgres: PostgresConfig{
					MaxConns: 4,
					Table:    "faq_entries",
				},
			},
			Redis: RedisConfig{
				Prefix: "faq",
			},
		},
	}
}

// Validate ensures the configuration is safe to use.
func (c *Config) Validate() error {
	if c.HTTP.Address == "" {
		return errors.New("http.address cannot be empty")
	}
	if c.HTTP.RateLimit.Enabled {
		if c.HTTP.RateLimit.RequestsPerMinute <= 0 {
			return errors.New("http.rateLimit.requestsPerMinute must be positive")
		}
		if c.HTTP.RateLimit.Burst <= 0 {
			return errors.New("http.rateLimit.burst must be positive")
		}
	}
	if c.FAQ.AcceptThreshold < 0 || c.FAQ.AcceptThreshold > 1 {
		return errors.New("faq.acceptThreshold must be within [0,1]")
	}
	if c.FAQ.SuggestThreshold < 0 || c.FAQ.SuggestThreshold > 1 {
		return errors.New("faq.suggestThreshold must be within [0,1]")
	}
	if c.FAQ.ShortlistSize <= 0 {
		return errors.New("faq.shortlistSize must be positive")
	}
	if c.FAQ.TopRecommendations <= 0 {
		return errors.New("faq.topRecommendations must be positive")
	}
	if strings.TrimSpace(c.FAQ.NoMatchAnswer) == "" {
		return errors.New("faq.noMatchAnswer cannot be empty")
	}
	if c.FAQ.Redis.Enabled && strings.TrimSpace(c.FAQ.Redis.Addr) == "" {
		return errors.New("faq.redis.addr cannot be empty when redis is enabled")
	}
	return c.FAQ.Source.validate()
}

func (s SourceConfig) validate() error {
	switch s.Kind {
	case SourceFile:
		if strings.TrimSpace(s.Path) == "" {
			return errors.New("faq.source.path cannot be empty for file sources")
		}
	case SourceHTTP:
		if strings.TrimSpace(s.URL) == "" {
			return errors.New("faq.source.url cannot be empty for http sources")
		}
		if s.Timeout < 0 {
			return errors.New("faq.source.timeout cannot be negative")
		}
	case SourceS3:
		if s.S3.Endpoint == "" || s.S3.Bucket == "" || s.S3.Key == "" {
			return errors.New("faq.source.s3 requires endpoint, bucket and key")
		}
	case SourcePostgres:
		if strings.TrimSpace(s.Postgres.DSN) == "" {
			return errors.New("faq.source.postgres.dsn cannot be empty for postgres sources")
		}
	case SourceStatic:
	default:
		return fmt.Errorf("faq.source.kind %q is not supported", s.Kind)
	}
	return nil
}

func parseBool(v string) bool {
	return v == "1" || strings.EqualFold(v, "true")
}

func splitList(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
