// Package config loads c4export settings.
//
// Settings come from, in increasing precedence:
//
//  1. built-in defaults ([Default])
//  2. a TOML file: ./c4export.toml, else $XDG_CONFIG_HOME/c4export/config.toml
//  3. environment variables, optionally loaded from a .env file
//  4. command-line flags (applied by the CLI)
//
// Example c4export.toml:
//
//	[export]
//	file_prefix = "payments"
//	output_dir  = "docs/diagrams"
//
//	[cache]
//	backend = "redis"
//	url     = "redis://localhost:6379/0"
//	prefix  = "c4export:"
//
//	[server]
//	addr = ":8080"
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	"github.com/matzehuels/c4export/pkg/cache"
)

// FileName is the project-local config file name.
const FileName = "c4export.toml"

// Environment variables that override file settings.
const (
	EnvAddr     = "C4EXPORT_ADDR"
	EnvCache    = "C4EXPORT_CACHE"
	EnvCacheDir = "C4EXPORT_CACHE_DIR"
	EnvPrefix   = "C4EXPORT_FILE_PREFIX"
	EnvWrap     = "C4EXPORT_WRAP_WIDTH"
	EnvRedisURL = "REDIS_URL"
	EnvMongoURI = "MONGO_URI"
)

// Config holds every setting.
type Config struct {
	Export ExportConfig `toml:"export"`
	Cache  CacheConfig  `toml:"cache"`
	Server ServerConfig `toml:"server"`

	// Path is the file the settings were read from, empty for defaults only.
	Path string `toml:"-"`
}

// ExportConfig holds export defaults.
type ExportConfig struct {
	FilePrefix string  `toml:"file_prefix"`
	OutputDir  string  `toml:"output_dir"`
	WrapWidth  int     `toml:"wrap_width"`
	LegendGap  float64 `toml:"legend_gap"`
}

// CacheConfig selects the artifact cache.
type CacheConfig struct {
	Backend string `toml:"backend"` // none, file, redis or mongo
	Dir     string `toml:"dir"`
	URL     string `toml:"url"`
	Prefix  string `toml:"prefix"`
}

// ServerConfig configures "c4export serve".
type ServerConfig struct {
	Addr string `toml:"addr"`
	// MaxBodyBytes bounds request documents.
	MaxBodyBytes int64 `toml:"max_body_bytes"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Export: ExportConfig{OutputDir: "."},
		Cache:  CacheConfig{Backend: cache.BackendFile},
		Server: ServerConfig{Addr: ":8080", MaxBodyBytes: 10 << 20},
	}
}

// CacheOptions converts the cache section for [cache.Open].
func (c Config) CacheOptions() cache.Config {
	return cache.Config{
		Backend: c.Cache.Backend,
		Dir:     c.Cache.Dir,
		URL:     c.Cache.URL,
		Prefix:  c.Cache.Prefix,
	}
}

// =============================================================================
// Loading
// =============================================================================

// Load reads settings from path, or from the first existing default location
// when path is empty, then applies environment overrides. A missing default
// file is not an error; a missing explicit path is.
func Load(path string) (Config, error) {
	cfg := Default()

	if path == "" {
		path = Find()
	} else if _, err := os.Stat(path); err != nil {
		return cfg, fmt.Errorf("config file: %w", err)
	}
	if path != "" {
		if _, err := toml.DecodeFile(path, &cfg); err != nil {
			return cfg, fmt.Errorf("parse %s: %w", path, err)
		}
		cfg.Path = path
	}

	if err := cfg.applyEnv(os.Getenv); err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}

// LoadDotEnv loads variables from .env files into the process environment.
// Existing variables win. Missing files are ignored.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("load %s: %w", f, err)
		}
	}
	return nil
}

// Find returns the first existing config file, or "".
func Find() string {
	for _, p := range SearchPaths() {
		if info, err := os.Stat(p); err == nil && !info.IsDir() {
			return p
		}
	}
	return ""
}

// SearchPaths lists the default config locations in lookup order.
func SearchPaths() []string {
	paths := []string{FileName}
	if dir, err := os.UserConfigDir(); err == nil {
		paths = append(paths, filepath.Join(dir, "c4export", "config.toml"))
	}
	return paths
}

// applyEnv overrides settings from getenv.
func (c *Config) applyEnv(getenv func(string) string) error {
	if v := getenv(EnvAddr); v != "" {
		c.Server.Addr = v
	}
	if v := getenv(EnvCache); v != "" {
		c.Cache.Backend = v
	}
	if v := getenv(EnvCacheDir); v != "" {
		c.Cache.Dir = v
	}
	if v := getenv(EnvPrefix); v != "" {
		c.Export.FilePrefix = v
	}
	if v := getenv(EnvWrap); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvWrap, err)
		}
		c.Export.WrapWidth = n
	}
	switch c.Cache.Backend {
	case cache.BackendRedis:
		if v := getenv(EnvRedisURL); v != "" {
			c.Cache.URL = v
		}
	case cache.BackendMongo:
		if v := getenv(EnvMongoURI); v != "" {
			c.Cache.URL = v
		}
	}
	return nil
}

// Validate checks the settings for consistency.
func (c Config) Validate() error {
	switch c.Cache.Backend {
	case "", cache.BackendNone, cache.BackendFile:
	case cache.BackendRedis, cache.BackendMongo:
		if c.Cache.URL == "" {
			return fmt.Errorf("cache backend %q needs a url (set cache.url, %s or %s)", c.Cache.Backend, EnvRedisURL, EnvMongoURI)
		}
	default:
		return fmt.Errorf("%w: %q", cache.ErrUnknownBackend, c.Cache.Backend)
	}
	if c.Export.WrapWidth < 0 {
		return fmt.Errorf("export.wrap_width cannot be negative")
	}
	if c.Server.MaxBodyBytes <= 0 {
		return fmt.Errorf("server.max_body_bytes must be positive")
	}
	return nil
}
