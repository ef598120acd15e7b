package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/fwojciec/docidx"
	dochttp "github.com/fwojciec/docidx/http"
	"gopkg.in/yaml.v3"
)

// Config holds settings read from the YAML config file.
type Config struct {
	Search SearchConfig `yaml:"search"`
	Log    LogConfig    `yaml:"log"`
	HTTP   HTTPConfig   `yaml:"http"`
}

// SearchConfig controls query defaults and ranking.
type SearchConfig struct {
	// Limit is the result count used when a query gives none.
	Limit int `yaml:"limit"`

	// KindPriority overrides the rank of item kinds, keyed by kind name.
	// Lower ranks sort first.
	KindPriority map[string]int `yaml:"kindPriority"`
}

// LogConfig selects the log handler.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// HTTPConfig controls remote fetching.
type HTTPConfig struct {
	Timeout   time.Duration `yaml:"timeout"`
	RateLimit float64       `yaml:"rateLimit"`
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() *Config {
	return &Config{
		Search: SearchConfig{Limit: dochttp.DefaultLimit},
		Log:    LogConfig{Level: "info", Format: "text"},
		HTTP:   HTTPConfig{Timeout: dochttp.DefaultFetchTimeout, RateLimit: 2},
	}
}

// LoadConfig reads the YAML file at path over the defaults. An empty path
// returns the defaults.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, docidx.Errorf(docidx.EINVALID, "config %s: %v", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	if c.Search.Limit <= 0 {
		return docidx.Errorf(docidx.EINVALID, "search.limit must be positive")
	}
	if _, err := c.Search.Policy(); err != nil {
		return err
	}
	if _, err := c.Log.level(); err != nil {
		return err
	}
	if c.HTTP.Timeout <= 0 {
		return docidx.Errorf(docidx.EINVALID, "http.timeout must be positive")
	}
	return nil
}

// Policy returns the default kind policy with KindPriority applied.
// Returns EINVALID for an unknown kind name.
func (c SearchConfig) Policy() (docidx.KindPolicy, error) {
	policy := docidx.DefaultKindPolicy()
	for name, rank := range c.KindPriority {
		kind, err := docidx.ParseKind(name)
		if err != nil {
			return nil, docidx.Errorf(docidx.EINVALID, "search.kindPriority: unknown kind %q", name)
		}
		policy[kind] = rank
	}
	return policy, nil
}

func (c LogConfig) level() (slog.Level, error) {
	var level slog.Level
	if c.Level == "" {
		return slog.LevelInfo, nil
	}
	if err := level.UnmarshalText([]byte(c.Level)); err != nil {
		return 0, docidx.Errorf(docidx.EINVALID, "log.level: unknown level %q", c.Level)
	}
	return level, nil
}

// NewLogger builds a logger writing to w.
func (c LogConfig) NewLogger(w io.Writer) (*slog.Logger, error) {
	level, err := c.level()
	if err != nil {
		return nil, err
	}
	opts := &slog.HandlerOptions{Level: level}

	switch strings.ToLower(c.Format) {
	case "", "text":
		return slog.New(slog.NewTextHandler(w, opts)), nil
	case "json":
		return slog.New(slog.NewJSONHandler(w, opts)), nil
	default:
		return nil, docidx.Errorf(docidx.EINVALID, "log.format: unknown format %q", c.Format)
	}
}
