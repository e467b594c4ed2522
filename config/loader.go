package config

import (
	"os"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

const (
	DefaultPort               = 16181
	DefaultLimit              = 20
	DefaultGracePeriodSeconds = 60
	DefaultLogLevel           = "info"
)

// DefaultPaths are tried in order when no config path is given.
var DefaultPaths = []string{"config.yml", "./config/config.yml"}

// Config is the global application configuration
var Config AppConfig

// LoadAppConfig loads config.yml, applies environment overrides and stores
// the result in Config.
func LoadAppConfig(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	Config = cfg
	return nil
}

// Load reads and validates a configuration file. An empty path tries
// DefaultPaths. Values from .env and the process environment override the
// file: GTFS_FEED_SOURCE, GTFS_SNAPSHOT_PATH, GTFS_TIMEZONE, SERVER_PORT and
// LOG_LEVEL.
func Load(path string) (AppConfig, error) {
	// .env is optional
	_ = godotenv.Load()

	var cfg AppConfig
	data, err := readFirst(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, errors.Wrap(err, "parse config")
	}
	if err := applyEnv(&cfg); err != nil {
		return cfg, err
	}
	applyDefaults(&cfg)
	if err := Validate(cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func readFirst(path string) ([]byte, error) {
	paths := DefaultPaths
	if path != "" {
		paths = []string{path}
	}
	var lastErr error
	for _, p := range paths {
		data, err := os.ReadFile(p)
		if err == nil {
			return data, nil
		}
		lastErr = err
	}
	return nil, errors.Wrap(lastErr, "read config")
}

func applyEnv(cfg *AppConfig) error {
	if v := os.Getenv("GTFS_FEED_SOURCE"); v != "" {
		cfg.Feed.Source = v
	}
	if v := os.Getenv("GTFS_SNAPSHOT_PATH"); v != "" {
		cfg.Feed.Snapshot = v
	}
	if v := os.Getenv("GTFS_TIMEZONE"); v != "" {
		cfg.Feed.Timezone = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv("SERVER_PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return errors.Errorf("invalid SERVER_PORT: %q", v)
		}
		cfg.Server.Port = port
	}
	return nil
}

func applyDefaults(cfg *AppConfig) {
	if cfg.Server.Port == 0 {
		cfg.Server.Port = DefaultPort
	}
	if cfg.Query.Limit == 0 {
		cfg.Query.Limit = DefaultLimit
	}
	if cfg.Query.GracePeriodSeconds == 0 {
		cfg.Query.GracePeriodSeconds = DefaultGracePeriodSeconds
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = DefaultLogLevel
	}
}

// Validate checks struct tags. The top-level feed is only validated when no
// feeds list is given.
func Validate(cfg AppConfig) error {
	v := validator.New()
	for _, s := range []any{cfg.Server, cfg.Query, cfg.Logging} {
		if err := v.Struct(s); err != nil {
			return errors.Wrap(err, "invalid config")
		}
	}
	if len(cfg.Feeds) == 0 {
		return errors.Wrap(v.Struct(cfg.Feed), "invalid feed config")
	}
	for _, f := range cfg.Feeds {
		if err := v.Struct(f); err != nil {
			return errors.Wrapf(err, "invalid feed config %q", f.Name)
		}
	}
	return nil
}

// SelectFeed chooses a feed by name; fallback to first; if none, use the top-level feed.
func SelectFeed(name string) FeedConfig {
	return Config.SelectFeed(name)
}

func (c AppConfig) SelectFeed(name string) FeedConfig {
	if name != "" {
		for _, f := range c.Feeds {
			if f.Name == name {
				return f
			}
		}
	}
	if len(c.Feeds) > 0 {
		return c.Feeds[0]
	}
	return c.Feed
}
