package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/c4export/internal/config"
	"github.com/matzehuels/c4export/internal/server"
	"github.com/matzehuels/c4export/pkg/observability"
)

// serveOpts holds the command-line flags for the serve command.
type serveOpts struct {
	addr    string
	envFile string
	noCache bool
}

// serveCommand creates the serve command.
func (c *CLI) serveCommand() *cobra.Command {
	var opts serveOpts

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve exports over HTTP",
		Long: `Serve runs an HTTP server that accepts diagram documents and answers with
.drawio attachments (POST /export), JSON summaries (POST /summary) and
previews (POST /preview).

Settings are read from the config file, then from a .env file and the
environment (C4EXPORT_ADDR, C4EXPORT_CACHE, REDIS_URL, MONGO_URI), then flags.`,
		Example: `  c4export serve
  C4EXPORT_CACHE=redis REDIS_URL=redis://localhost:6379/0 c4export serve --addr :9000`,
		Args: cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			// .env values must be in the environment before settings are
			// reloaded, so they take part in the usual precedence.
			if err := config.LoadDotEnv(opts.envFile); err != nil {
				return err
			}
			cfg, err := config.Load(c.configPath)
			if err != nil {
				return err
			}
			c.Config = cfg
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("addr") {
				opts.addr = c.Config.Server.Addr
			}
			return c.runServe(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.addr, "addr", ":8080", "listen address")
	cmd.Flags().StringVar(&opts.envFile, "env-file", ".env", "dotenv file to load")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the artifact cache")

	return cmd
}

func (c *CLI) runServe(cmd *cobra.Command, opts serveOpts) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	runner, err := c.newRunner(ctx, opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	observability.SetHTTPHooks(observability.LogHTTPHooks{Logger: logger})

	srv := server.New(server.Options{
		Runner:       runner,
		Defaults:     c.exportDefaults(),
		MaxBodyBytes: c.Config.Server.MaxBodyBytes,
		Logger:       logger,
	})
	printInfo("Serving on %s", opts.addr)
	printKeyValue("cache:", c.backendName())
	printKeyValue("max body:", fmt.Sprintf("%d bytes", c.Config.Server.MaxBodyBytes))
	return srv.ListenAndServe(ctx, opts.addr)
}
