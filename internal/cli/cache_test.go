package cli

import (
	"context"
	"io"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/c4export/internal/config"
	"github.com/matzehuels/c4export/pkg/cache"
)

func TestCacheLocation(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "/tmp/xdg-cache")

	tests := []struct {
		name string
		cfg  config.CacheConfig
		want string
	}{
		{"default file", config.CacheConfig{}, filepath.Join("/tmp/xdg-cache", appName)},
		{"explicit dir", config.CacheConfig{Backend: "file", Dir: "/var/cache/c4"}, "/var/cache/c4"},
		{"disabled", config.CacheConfig{Backend: "none"}, "(disabled)"},
		{"redis", config.CacheConfig{Backend: "redis", URL: "redis://r:6379/0"}, "redis://r:6379/0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New(io.Discard, log.InfoLevel)
			c.Config.Cache = tt.cfg
			got, err := c.cacheLocation()
			if err != nil {
				t.Fatal(err)
			}
			if got != tt.want {
				t.Errorf("cacheLocation() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestOpenCache(t *testing.T) {
	ctx := context.Background()
	c := New(io.Discard, log.InfoLevel)

	ch, err := c.openCache(ctx, true)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := ch.(cache.NullCache); !ok {
		t.Errorf("--no-cache opened %T, want NullCache", ch)
	}

	c.Config.Cache = config.CacheConfig{Backend: "file", Dir: t.TempDir()}
	ch, err = c.openCache(ctx, false)
	if err != nil {
		t.Fatal(err)
	}
	defer ch.Close()
	if _, ok := ch.(*cache.FileCache); !ok {
		t.Errorf("file backend opened %T", ch)
	}

	c.Config.Cache = config.CacheConfig{Backend: "memcached"}
	if _, err := c.openCache(ctx, false); err == nil {
		t.Error("unknown backend should fail")
	}
}

func TestKeyerScopesWithPrefix(t *testing.T) {
	c := New(io.Discard, log.InfoLevel)
	plain := c.keyer().ArtifactKey("h", cache.ArtifactKeyOpts{Format: "drawio"})

	c.Config.Cache.Prefix = "staging:"
	scoped := c.keyer().ArtifactKey("h", cache.ArtifactKeyOpts{Format: "drawio"})
	if scoped != "staging:"+plain {
		t.Errorf("scoped key = %q, want prefix on %q", scoped, plain)
	}
}
