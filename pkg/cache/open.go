package cache

import (
	"context"
	"fmt"
)

// Backend names accepted by [Open].
const (
	BackendNone  = "none"
	BackendFile  = "file"
	BackendRedis = "redis"
	BackendMongo = "mongo"
)

// Config selects and configures a backend.
type Config struct {
	Backend string // One of the Backend* names; empty means file
	Dir     string // FileCache directory; empty uses DefaultDir
	URL     string // Redis or MongoDB connection string
	Prefix  string // Redis key prefix
}

// Open creates the configured cache.
func Open(ctx context.Context, cfg Config) (Cache, error) {
	switch cfg.Backend {
	case BackendNone:
		return NewNullCache(), nil
	case BackendFile, "":
		dir := cfg.Dir
		if dir == "" {
			d, err := DefaultDir()
			if err != nil {
				return nil, fmt.Errorf("cache dir: %w", err)
			}
			dir = d
		}
		fc, err := NewFileCache(dir)
		if err != nil {
			return nil, err
		}
		return fc, nil
	case BackendRedis:
		if cfg.URL == "" {
			return nil, fmt.Errorf("redis cache requires a url")
		}
		rc, err := NewRedisCache(ctx, cfg.URL, cfg.Prefix)
		if err != nil {
			return nil, err
		}
		return rc, nil
	case BackendMongo:
		if cfg.URL == "" {
			return nil, fmt.Errorf("mongo cache requires a uri")
		}
		mc, err := NewMongoCache(ctx, cfg.URL, "", "")
		if err != nil {
			return nil, err
		}
		return mc, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, cfg.Backend)
}
