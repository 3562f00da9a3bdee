package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/matzehuels/c4export/pkg/diagram"
	"github.com/matzehuels/c4export/pkg/errors"
	"github.com/matzehuels/c4export/pkg/pipeline"
)

// exportOpts holds the command-line flags for the export command.
type exportOpts struct {
	output    string   // output directory, or "-" for stdout
	name      string   // file name prefix
	pages     []string // pages to export; empty exports all
	selectTUI bool     // pick pages interactively
	noCache   bool     // bypass the artifact cache
	refresh   bool     // recompute and overwrite the cached artifact
	wrapWidth int      // edge label wrap width
	legendGap float64  // space above the legend
}

// exportCommand creates the export command.
func (c *CLI) exportCommand() *cobra.Command {
	var opts exportOpts

	cmd := &cobra.Command{
		Use:   "export <file>",
		Short: "Export a diagram document to a dated .drawio file",
		Long: `Export reads a diagram document (JSON or YAML) and writes one draw.io file with a
page per workspace. The file is named <prefix>-YYYY-MM-DD.drawio.`,
		Example: `  c4export export architecture.json
  c4export export model.yaml -o docs --name payments
  c4export export model.json --select`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeDocuments,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("output") {
				opts.output = c.Config.Export.OutputDir
			}
			return c.runExport(cmd, args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", ".", `output directory ("-" writes to stdout)`)
	cmd.Flags().StringVar(&opts.name, "name", "", "file name prefix (default \"architecture\")")
	cmd.Flags().StringSliceVarP(&opts.pages, "page", "p", nil, "export only these pages (repeatable)")
	cmd.Flags().BoolVar(&opts.selectTUI, "select", false, "choose pages interactively")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the artifact cache")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "ignore cached artifacts")
	cmd.Flags().IntVar(&opts.wrapWidth, "wrap", 0, "edge label wrap width in characters (default 25)")
	cmd.Flags().Float64Var(&opts.legendGap, "legend-gap", 0, "space between the lowest node and the legend (default 100)")
	cmd.MarkFlagsMutuallyExclusive("page", "select")
	_ = cmd.RegisterFlagCompletionFunc("page", completePageNames)

	return cmd
}

func (c *CLI) runExport(cmd *cobra.Command, path string, opts exportOpts) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	doc, err := readDocument(path)
	if err != nil {
		return err
	}

	popts := c.exportDefaults()
	popts.Logger = logger
	popts.Refresh = opts.refresh
	popts.Pages = opts.pages
	if opts.name != "" {
		popts.FilePrefix = opts.name
	}
	if opts.wrapWidth != 0 {
		popts.WrapWidth = opts.wrapWidth
	}
	if opts.legendGap != 0 {
		popts.LegendGap = opts.legendGap
	}

	if opts.selectTUI {
		names, ok, err := selectPages(pipeline.Summarize(doc, logger))
		if err != nil {
			return err
		}
		if !ok {
			printWarning("Export cancelled")
			return nil
		}
		popts.Pages = names
	}

	result, err := c.export(ctx, doc, popts, opts.noCache)
	if err != nil {
		return err
	}

	if opts.output == "-" {
		_, err := stdout.Write(result.Data)
		return err
	}
	dest, err := writeOutput(opts.output, result.Filename, result.Data)
	if err != nil {
		return err
	}

	printSuccess("Exported %s", plural(result.Summary.PageCount(), "page"))
	printFile(dest)
	printSummary(result.Summary, result.CacheHit)
	if result.Summary.PageCount() > 0 {
		printNextStep("Preview a page", fmt.Sprintf("%s preview %s --page %q", appName, path, result.Summary.Pages[0].Name))
	}
	return nil
}

// export runs the pipeline behind a spinner.
func (c *CLI) export(ctx context.Context, doc diagram.Document, opts pipeline.Options, noCache bool) (*pipeline.Result, error) {
	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return nil, err
	}
	defer runner.Close()

	spinner := newSpinnerWithContext(ctx, "Assembling pages...")
	detach := attachSpinner(spinner)
	spinner.Start()
	prog := newProgress(opts.Logger)
	result, err := runner.Export(ctx, doc, opts)
	spinner.Stop()
	detach()
	if err != nil {
		return nil, err
	}
	prog.done(fmt.Sprintf("Assembled %s", plural(result.Summary.PageCount(), "page")))
	return result, nil
}

// readDocument validates path and decodes the document it names.
func readDocument(path string) (diagram.Document, error) {
	if err := errors.ValidateInputPath(path); err != nil {
		return diagram.Document{}, err
	}
	return diagram.ReadDocumentFile(path)
}

// writeOutput writes data to dir/name, creating dir when needed, and returns
// the written path.
func writeOutput(dir, name string, data []byte) (string, error) {
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}
	dest := filepath.Join(dir, name)
	if err := os.WriteFile(dest, data, 0o644); err != nil {
		return "", fmt.Errorf("write %s: %w", dest, err)
	}
	return dest, nil
}
