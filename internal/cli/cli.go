// Package cli implements the c4export command-line interface.
package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/c4export/internal/config"
	"github.com/matzehuels/c4export/pkg/buildinfo"
	"github.com/matzehuels/c4export/pkg/cache"
	"github.com/matzehuels/c4export/pkg/observability"
	"github.com/matzehuels/c4export/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = "c4export"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
	Config config.Config

	configPath string
	verbose    bool
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		Config: config.Default(),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "c4export turns architecture diagrams into draw.io documents",
		Long: `c4export lays out C4-style architecture diagrams (services, databases, brokers,
gateways, boundaries and typed connections) and writes them as multi-page draw.io files.`,
		Version:           buildinfo.Version,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: c.setup,
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default ./c4export.toml)")

	root.AddCommand(c.exportCommand())
	root.AddCommand(c.previewCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// setup runs before every command: it sets the log level, loads settings and
// attaches the logger to the command context.
func (c *CLI) setup(cmd *cobra.Command, args []string) error {
	if c.verbose {
		c.SetLogLevel(LogDebug)
		observability.SetPipelineHooks(observability.LogPipelineHooks{Logger: c.Logger})
		observability.SetCacheHooks(observability.LogCacheHooks{Logger: c.Logger})
	}

	cfg, err := config.Load(c.configPath)
	if err != nil {
		return err
	}
	c.Config = cfg
	if cfg.Path != "" {
		c.Logger.Debug("loaded config", "path", cfg.Path)
	}

	cmd.SetContext(withLogger(cmd.Context(), c.Logger))
	return nil
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(ctx context.Context, noCache bool) (*pipeline.Runner, error) {
	ch, err := c.openCache(ctx, noCache)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(ch, c.keyer(), c.Logger), nil
}

// openCache opens the configured backend. An unusable file cache degrades to
// no caching; network backends must be reachable.
func (c *CLI) openCache(ctx context.Context, noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	cfg := c.Config.CacheOptions()
	ch, err := cache.Open(ctx, cfg)
	if err != nil {
		if cfg.Backend == cache.BackendFile || cfg.Backend == "" {
			c.Logger.Warn("file cache unavailable, continuing without cache", "error", err)
			return cache.NewNullCache(), nil
		}
		return nil, fmt.Errorf("open %s cache: %w", cfg.Backend, err)
	}
	return ch, nil
}

func (c *CLI) keyer() cache.Keyer {
	if p := c.Config.Cache.Prefix; p != "" {
		return cache.NewScopedKeyer(nil, p)
	}
	return cache.NewDefaultKeyer()
}

// =============================================================================
// Options Helpers
// =============================================================================

// exportDefaults builds pipeline options from settings. Flags override them.
func (c *CLI) exportDefaults() pipeline.Options {
	return pipeline.Options{
		FilePrefix: c.Config.Export.FilePrefix,
		WrapWidth:  c.Config.Export.WrapWidth,
		LegendGap:  c.Config.Export.LegendGap,
		Logger:     c.Logger,
	}
}
