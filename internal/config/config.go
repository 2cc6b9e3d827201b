package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/llehouerou/genwaves/internal/playlist"
)

const (
	DefaultDecoderURL     = "http://localhost:8000"
	DefaultDecoderTimeout = 30 * time.Second
	DefaultShareBaseURL   = "http://localhost:8080/"
	DefaultSeekStep       = 5 * time.Second
	DefaultLogLevel       = "info"
)

type Config struct {
	Decoder DecoderConfig `koanf:"decoder"`
	Player  PlayerConfig  `koanf:"player"`
	Share   ShareConfig   `koanf:"share"`
	Storage StorageConfig `koanf:"storage"`
	Log     LogConfig     `koanf:"log"`

	// Desktop notifications on track change and generation failure (default: true)
	Notifications *bool `koanf:"notifications"`
}

// DecoderConfig holds the decode-service connection settings.
type DecoderConfig struct {
	URL               string        `koanf:"url"`                 // e.g., "http://localhost:8000"
	APIKey            string        `koanf:"api_key"`             // sent as a bearer token when set
	Timeout           time.Duration `koanf:"timeout"`             // e.g., "30s"
	RequestsPerMinute int           `koanf:"requests_per_minute"` // 0 disables client-side limiting
}

// PlayerConfig holds the initial output and transport settings.
type PlayerConfig struct {
	Volume   *float64      `koanf:"volume"`    // 0.0-1.0 (default: 1.0)
	Muted    bool          `koanf:"muted"`     // start muted
	Repeat   string        `koanf:"repeat"`    // "off", "all" or "one"
	SeekStep time.Duration `koanf:"seek_step"` // seek backward/forward jump (default: 5s)
}

// ShareConfig holds share-link settings.
type ShareConfig struct {
	BaseURL string `koanf:"base_url"` // page the share token is appended to
}

// StorageConfig holds local persistence settings.
type StorageConfig struct {
	Path string `koanf:"path"` // empty means $XDG_DATA_HOME/genwaves/genwaves.db
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `koanf:"level"` // debug, info, warn, error
	File  string `koanf:"file"`  // empty means $XDG_STATE_HOME/genwaves/genwaves.log
}

// Load reads the default config files, then any extra paths in order.
func Load(extra ...string) (*Config, error) {
	return LoadFrom(append(getConfigPaths(), extra...)...)
}

// LoadFrom reads the given TOML files in order; later files override earlier
// ones. Missing files are skipped.
func LoadFrom(paths ...string) (*Config, error) {
	k := koanf.New(".")

	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
				return nil, err
			}
		}
	}

	cfg := &Config{}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, err
	}

	cfg.Decoder.URL = strings.TrimSuffix(cfg.Decoder.URL, "/")

	if cfg.Storage.Path != "" {
		cfg.Storage.Path = expandPath(cfg.Storage.Path)
	}
	if cfg.Log.File != "" {
		cfg.Log.File = expandPath(cfg.Log.File)
	}

	return cfg, nil
}

func getConfigPaths() []string {
	paths := []string{}

	// 1. ~/.config/genwaves/config.toml
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", "genwaves", "config.toml"))
	}

	// 2. ./config.toml (pwd, highest priority)
	paths = append(paths, "config.toml")

	return paths
}

func expandPath(path string) string {
	if path != "" && path[0] == '~' {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}

// DecoderURL returns the decode-service URL with the default applied.
func (c *Config) DecoderURL() string {
	if c.Decoder.URL == "" {
		return DefaultDecoderURL
	}
	return c.Decoder.URL
}

// DecoderTimeout returns the request timeout with the default applied.
func (c *Config) DecoderTimeout() time.Duration {
	if c.Decoder.Timeout <= 0 {
		return DefaultDecoderTimeout
	}
	return c.Decoder.Timeout
}

// Volume returns the initial volume clamped to 0.0-1.0.
func (c *Config) Volume() float64 {
	if c.Player.Volume == nil {
		return 1.0
	}
	return max(0, min(*c.Player.Volume, 1))
}

// RepeatMode returns the initial repeat mode.
func (c *Config) RepeatMode() playlist.RepeatMode {
	return playlist.ParseRepeatMode(strings.ToLower(c.Player.Repeat))
}

// SeekStep returns the relative seek jump with the default applied.
func (c *Config) SeekStep() time.Duration {
	if c.Player.SeekStep <= 0 {
		return DefaultSeekStep
	}
	return c.Player.SeekStep
}

// ShareBaseURL returns the share-link base with the default applied.
func (c *Config) ShareBaseURL() string {
	if c.Share.BaseURL == "" {
		return DefaultShareBaseURL
	}
	return c.Share.BaseURL
}

// LogLevel returns the configured log level name.
func (c *Config) LogLevel() string {
	if c.Log.Level == "" {
		return DefaultLogLevel
	}
	return strings.ToLower(c.Log.Level)
}

// NotificationsEnabled reports whether desktop notifications are on.
func (c *Config) NotificationsEnabled() bool {
	return c.Notifications == nil || *c.Notifications
}
