// Package config loads mood-journal settings from an optional YAML file and
// the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
	"gopkg.in/yaml.v3"

	"github.com/justestif/go-mood-journal/internal/journal"
	"github.com/justestif/go-mood-journal/internal/mood"
	"github.com/justestif/go-mood-journal/internal/playlist"
)

const (
	configDirName  = "mood-journal"
	configFileName = "config.yaml"

	// DefaultAddr is where the web form listens.
	DefaultAddr = "127.0.0.1:8080"
)

// Environment variables that override file settings.
const (
	EnvClientID     = "SPOTIFY_ID"
	EnvClientSecret = "SPOTIFY_SECRET"
	EnvJournalPath  = "JOURNAL_PATH"
	EnvDatabaseURL  = "JOURNAL_DATABASE_URL"
	EnvAddr         = "JOURNAL_ADDR"
)

// ErrMissingCredentials is returned when SPOTIFY_ID or SPOTIFY_SECRET is not set.
var ErrMissingCredentials = errors.New("missing SPOTIFY_ID or SPOTIFY_SECRET (set them in the environment or config file)")

// SpotifyConfig holds catalog credentials.
type SpotifyConfig struct {
	ClientID     string `yaml:"client_id"`
	ClientSecret string `yaml:"client_secret"`
}

// LexiconConfig overrides the classifier word lists. An empty list keeps the default.
type LexiconConfig struct {
	Positive []string `yaml:"positive"`
	Negative []string `yaml:"negative"`
}

// PlaylistConfig overrides the keyword rules and fallback query.
type PlaylistConfig struct {
	Rules         []playlist.Rule `yaml:"rules"`
	FallbackQuery string          `yaml:"fallback_query"`
	SearchTimeout string          `yaml:"search_timeout"`
	RetryDelay    string          `yaml:"retry_delay"`
	CacheTTL      string          `yaml:"cache_ttl"`
}

// Config is the full application configuration.
type Config struct {
	Spotify     SpotifyConfig  `yaml:"spotify"`
	JournalPath string         `yaml:"journal_path"`
	DatabaseURL string         `yaml:"database_url,omitempty"`
	Addr        string         `yaml:"addr"`
	Lexicon     LexiconConfig  `yaml:"lexicon"`
	Playlist    PlaylistConfig `yaml:"playlist"`

	searchTimeout time.Duration
	retryDelay    time.Duration
	cacheTTL      time.Duration
}

// DefaultConfigPath returns $XDG_CONFIG_HOME/mood-journal/config.yaml (or the
// platform equivalent).
func DefaultConfigPath() string {
	return filepath.Join(xdg.ConfigHome, configDirName, configFileName)
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		JournalPath:   journal.DefaultPath,
		Addr:          DefaultAddr,
		searchTimeout: playlist.DefaultAttemptTimeout,
		retryDelay:    playlist.DefaultRetryDelay,
		cacheTTL:      playlist.DefaultCacheTTL,
	}
}

// Load builds the configuration from defaults, the YAML file at path, and
// environment overrides, in that order. An empty path tries the default
// location and skips it silently if absent; an explicit path must exist.
// Credentials are not checked here, see RequireSpotify.
func Load(path string) (*Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = DefaultConfigPath()
	}

	if err := cfg.loadFile(path); err != nil {
		if explicit || !errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
	}

	cfg.applyEnv()

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parsing config %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv() {
	overrides := []struct {
		env    string
		target *string
	}{
		{EnvClientID, &c.Spotify.ClientID},
		{EnvClientSecret, &c.Spotify.ClientSecret},
		{EnvJournalPath, &c.JournalPath},
		{EnvDatabaseURL, &c.DatabaseURL},
		{EnvAddr, &c.Addr},
	}
	for _, o := range overrides {
		if v := os.Getenv(o.env); v != "" {
			*o.target = v
		}
	}
}

func (c *Config) validate() error {
	if c.JournalPath == "" {
		c.JournalPath = journal.DefaultPath
	}
	if c.Addr == "" {
		c.Addr = DefaultAddr
	}

	durations := []struct {
		name   string
		raw    string
		target *time.Duration
	}{
		{"playlist.search_timeout", c.Playlist.SearchTimeout, &c.searchTimeout},
		{"playlist.retry_delay", c.Playlist.RetryDelay, &c.retryDelay},
		{"playlist.cache_ttl", c.Playlist.CacheTTL, &c.cacheTTL},
	}
	for _, d := range durations {
		if d.raw == "" {
			continue
		}
		v, err := time.ParseDuration(d.raw)
		if err != nil {
			return fmt.Errorf("invalid %s %q: %w", d.name, d.raw, err)
		}
		if v < 0 {
			return fmt.Errorf("invalid %s %q: must not be negative", d.name, d.raw)
		}
		*d.target = v
	}

	for i, r := range c.Playlist.Rules {
		if r.Keyword == "" || r.Query == "" {
			return fmt.Errorf("invalid playlist.rules[%d]: keyword and query are required", i)
		}
	}
	return nil
}

// RequireSpotify returns ErrMissingCredentials unless both credentials are set.
func (c *Config) RequireSpotify() error {
	if c.Spotify.ClientID == "" || c.Spotify.ClientSecret == "" {
		return ErrMissingCredentials
	}
	return nil
}

// SearchTimeout bounds a single playlist search attempt.
func (c *Config) SearchTimeout() time.Duration { return c.searchTimeout }

// RetryDelay is the pause before retrying a failed playlist search.
func (c *Config) RetryDelay() time.Duration { return c.retryDelay }

// CacheTTL is how long playlist search results are reused.
func (c *Config) CacheTTL() time.Duration { return c.cacheTTL }

// MoodOptions returns classifier options for any lexicon overrides.
func (c *Config) MoodOptions() []mood.Option {
	lex := mood.DefaultLexicon()
	changed := false
	if len(c.Lexicon.Positive) > 0 {
		lex.Positive = c.Lexicon.Positive
		changed = true
	}
	if len(c.Lexicon.Negative) > 0 {
		lex.Negative = c.Lexicon.Negative
		changed = true
	}
	if !changed {
		return nil
	}
	return []mood.Option{mood.WithLexicon(lex)}
}

// PlaylistOptions returns router options for rule and timing settings.
func (c *Config) PlaylistOptions() []playlist.Option {
	opts := []playlist.Option{
		playlist.WithAttemptTimeout(c.searchTimeout),
		playlist.WithRetryDelay(c.retryDelay),
	}
	if len(c.Playlist.Rules) > 0 {
		opts = append(opts, playlist.WithRules(c.Playlist.Rules))
	}
	if c.Playlist.FallbackQuery != "" {
		opts = append(opts, playlist.WithFallbackQuery(c.Playlist.FallbackQuery))
	}
	return opts
}
