// Package config loads nightcss settings from an optional TOML file and the
// NIGHTCSS_* environment variables.
package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"nightcss/darkcss"
)

// EngineConfig holds the classifier thresholds.
type EngineConfig struct {
	MaxNestingDepth int  `toml:"max_nesting_depth"` // 0 means the engine default, negative disables
	MaxTagDepth     int  `toml:"max_tag_depth"`     // pre-parse cap; 0 means the engine default
	AllowTables     bool `toml:"allow_tables"`
}

// CacheConfig sizes the render memo. Entries <= 0 disables it.
type CacheConfig struct {
	Entries int    `toml:"entries"`
	TTL     string `toml:"ttl"` // Go duration, e.g. "10m"; empty never expires
}

// ServerConfig holds HTTP API settings.
type ServerConfig struct {
	Addr         string `toml:"addr"`
	MaxBodyBytes int64  `toml:"max_body_bytes"`
}

// PreviewConfig configures the headless Chrome previewer.
type PreviewConfig struct {
	Enabled    bool   `toml:"enabled"`
	ChromePath string `toml:"chrome_path"`
	Width      int    `toml:"width"`
	Timeout    string `toml:"timeout"`
}

type Config struct {
	Engine  EngineConfig  `toml:"engine"`
	Cache   CacheConfig   `toml:"cache"`
	Server  ServerConfig  `toml:"server"`
	Preview PreviewConfig `toml:"preview"`
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		Engine: EngineConfig{MaxNestingDepth: darkcss.DefaultMaxNestingDepth},
		Cache:  CacheConfig{Entries: 1024, TTL: "10m"},
		Server: ServerConfig{Addr: ":8081", MaxBodyBytes: 8 << 20},
		Preview: PreviewConfig{
			Width:   600,
			Timeout: "20s",
		},
	}
}

// Load reads path (skipped when empty or missing) over the defaults and
// then applies environment overrides.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		path = strings.TrimSpace(os.Getenv("NIGHTCSS_CONFIG"))
	}
	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if _, err := toml.DecodeFile(path, cfg); err != nil {
				return nil, fmt.Errorf("decode config: %w", err)
			}
		} else if !os.IsNotExist(err) {
			return nil, fmt.Errorf("stat config: %w", err)
		}
	}
	if err := cfg.applyEnv(os.Getenv); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv(getenv func(string) string) error {
	env := func(name string) string { return strings.TrimSpace(getenv(name)) }
	if v := env("NIGHTCSS_ADDR"); v != "" {
		c.Server.Addr = v
	}
	if v := env("PORT"); v != "" {
		c.Server.Addr = ":" + v
	}
	if v := env("NIGHTCSS_MAX_DEPTH"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("NIGHTCSS_MAX_DEPTH: %w", err)
		}
		c.Engine.MaxNestingDepth = n
	}
	if v := env("NIGHTCSS_ALLOW_TABLES"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("NIGHTCSS_ALLOW_TABLES: %w", err)
		}
		c.Engine.AllowTables = b
	}
	if v := env("NIGHTCSS_CACHE_ENTRIES"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("NIGHTCSS_CACHE_ENTRIES: %w", err)
		}
		c.Cache.Entries = n
	}
	if v := env("NIGHTCSS_CACHE_TTL"); v != "" {
		c.Cache.TTL = v
	}
	if v := env("NIGHTCSS_PREVIEW_WIDTH"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("NIGHTCSS_PREVIEW_WIDTH: %w", err)
		}
		c.Preview.Width = n
	}
	if v := env("NIGHTCSS_CHROME_PATH"); v != "" {
		c.Preview.ChromePath = v
		c.Preview.Enabled = true
	}
	return nil
}

// Validate checks the duration fields and sizes.
func (c *Config) Validate() error {
	if _, err := c.CacheTTL(); err != nil {
		return err
	}
	if _, err := c.PreviewTimeout(); err != nil {
		return err
	}
	if c.Preview.Width < 0 {
		return fmt.Errorf("preview width must not be negative, got %d", c.Preview.Width)
	}
	return nil
}

// CacheTTL parses Cache.TTL.
func (c *Config) CacheTTL() (time.Duration, error) {
	return parseDuration("cache ttl", c.Cache.TTL)
}

// PreviewTimeout parses Preview.Timeout.
func (c *Config) PreviewTimeout() (time.Duration, error) {
	return parseDuration("preview timeout", c.Preview.Timeout)
}

func parseDuration(field, raw string) (time.Duration, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", field, err)
	}
	return d, nil
}

// EngineOptions builds darkcss.Options, including the memo cache when enabled.
func (c *Config) EngineOptions(logger *log.Logger) darkcss.Options {
	opts := darkcss.Options{
		MaxNestingDepth: c.Engine.MaxNestingDepth,
		MaxTagDepth:     c.Engine.MaxTagDepth,
		AllowTables:     c.Engine.AllowTables,
		Logger:          logger,
	}
	if c.Cache.Entries > 0 {
		ttl, _ := c.CacheTTL()
		opts.Cache = darkcss.NewMemoryCache(c.Cache.Entries, ttl, nil)
	}
	return opts
}
