package commands

import (
	"fmt"
	"os"
	"time"

	nitter "github.com/anatolykoptev/go-nitter"
	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"
)

// settings is the CLI configuration, read from YAML and overridden by flags.
type settings struct {
	Instance      string        `yaml:"instance"`
	Proxy         string        `yaml:"proxy"`
	Stealth       bool          `yaml:"stealth"`
	Jitter        bool          `yaml:"jitter"`
	Profile       int           `yaml:"profile"`
	UserAgent     string        `yaml:"user_agent"`
	Timeout       time.Duration `yaml:"timeout"`
	MaxAttempts   int           `yaml:"max_attempts"`
	Limit         int           `yaml:"limit"`
	MinID         uint64        `yaml:"min_id"`
	ReorderPinned bool          `yaml:"reorder_pinned"`
	SkipRetweets  bool          `yaml:"skip_retweets"`
	LogLevel      string        `yaml:"log_level"`
}

func defaultSettings() settings {
	return settings{
		Timeout:     30 * time.Second,
		MaxAttempts: 10,
		LogLevel:    "info",
	}
}

// loadSettings reads a YAML config file over the defaults. An empty path
// returns the defaults.
func loadSettings(path string) (settings, error) {
	cfg := defaultSettings()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config file: %w", err)
	}
	return cfg, nil
}

// overrides copies one flag-backed field from src to dst, keyed by flag name.
var overrides = map[string]func(dst, src *settings){
	"instance":       func(d, s *settings) { d.Instance = s.Instance },
	"proxy":          func(d, s *settings) { d.Proxy = s.Proxy },
	"stealth":        func(d, s *settings) { d.Stealth = s.Stealth },
	"jitter":         func(d, s *settings) { d.Jitter = s.Jitter },
	"profile":        func(d, s *settings) { d.Profile = s.Profile },
	"user-agent":     func(d, s *settings) { d.UserAgent = s.UserAgent },
	"timeout":        func(d, s *settings) { d.Timeout = s.Timeout },
	"max-attempts":   func(d, s *settings) { d.MaxAttempts = s.MaxAttempts },
	"limit":          func(d, s *settings) { d.Limit = s.Limit },
	"min-id":         func(d, s *settings) { d.MinID = s.MinID },
	"reorder-pinned": func(d, s *settings) { d.ReorderPinned = s.ReorderPinned },
	"skip-retweets":  func(d, s *settings) { d.SkipRetweets = s.SkipRetweets },
	"log-level":      func(d, s *settings) { d.LogLevel = s.LogLevel },
}

// merge returns s with every flag explicitly set on fs taken from flagged.
func (s settings) merge(fs *pflag.FlagSet, flagged settings) settings {
	fs.Visit(func(f *pflag.Flag) {
		if o, ok := overrides[f.Name]; ok {
			o(&s, &flagged)
		}
	})
	return s
}

func (s settings) clientConfig() nitter.ClientConfig {
	return nitter.ClientConfig{
		Instance:    s.Instance,
		Proxy:       s.Proxy,
		Stealth:     s.Stealth,
		Jitter:      s.Jitter,
		Profile:     s.Profile,
		UserAgent:   s.UserAgent,
		Timeout:     s.Timeout,
		MaxAttempts: s.MaxAttempts,
	}
}

func (s settings) streamConfig(q nitter.Query) nitter.StreamConfig {
	return nitter.StreamConfig{
		Query:         q,
		Limit:         s.Limit,
		MinID:         s.MinID,
		ReorderPinned: s.ReorderPinned,
		SkipRetweets:  s.SkipRetweets,
	}
}
