package cli

import (
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/c4export/pkg/pipeline"
)

// previewOpts holds the command-line flags for the preview command.
type previewOpts struct {
	output   string // output file, or "-" for stdout
	page     string // page name; empty renders the first page
	format   string // svg, png or pdf
	detailed bool   // add technology and kind lines to labels
	noCache  bool
}

// previewCommand creates the preview command.
func (c *CLI) previewCommand() *cobra.Command {
	var opts previewOpts

	cmd := &cobra.Command{
		Use:   "preview <file>",
		Short: "Render one page as SVG, PNG or PDF",
		Long: `Preview renders a single page through Graphviz with every node pinned to its
canvas position. It is a quick look at the layout without opening draw.io.`,
		Example: `  c4export preview model.json
  c4export preview model.json --page Billing -f png -o billing.png`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeDocuments,
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.format == "" {
				opts.format = formatFromOutput(opts.output)
			}
			if err := pipeline.ValidatePreviewFormat(opts.format); err != nil {
				return err
			}
			return c.runPreview(cmd, args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", `output file (default "<page>.<format>", "-" for stdout)`)
	cmd.Flags().StringVar(&opts.page, "page", "", "page to render (default first page)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", "", "output format: svg (default), png, pdf")
	cmd.Flags().BoolVar(&opts.detailed, "detailed", false, "show technology and kind in node labels")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the artifact cache")
	_ = cmd.RegisterFlagCompletionFunc("page", completePageNames)
	_ = cmd.RegisterFlagCompletionFunc("format", cobra.FixedCompletions([]string{"svg", "png", "pdf"}, cobra.ShellCompDirectiveNoFileComp))

	return cmd
}

func (c *CLI) runPreview(cmd *cobra.Command, path string, opts previewOpts) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	doc, err := readDocument(path)
	if err != nil {
		return err
	}

	runner, err := c.newRunner(ctx, opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	prog := newProgress(logger)
	data, page, err := runner.Preview(ctx, doc, pipeline.PreviewOptions{
		Page:     opts.page,
		Format:   opts.format,
		Detailed: opts.detailed,
		Logger:   logger,
	})
	if err != nil {
		return err
	}
	prog.done("Rendered " + page)

	if opts.output == "-" {
		_, err := stdout.Write(data)
		return err
	}
	output := opts.output
	if output == "" {
		output = previewFilename(page, opts.format)
	}
	dest, err := writeOutput(filepath.Dir(output), filepath.Base(output), data)
	if err != nil {
		return err
	}
	printSuccess("Rendered %s", page)
	printFile(dest)
	return nil
}

// formatFromOutput infers the format from an output file extension.
func formatFromOutput(output string) string {
	switch {
	case strings.HasSuffix(output, ".png"):
		return pipeline.FormatPNG
	case strings.HasSuffix(output, ".pdf"):
		return pipeline.FormatPDF
	}
	return pipeline.FormatSVG
}

// previewFilename turns a page name into a file name, e.g. "Data Plane" →
// "data-plane.svg".
func previewFilename(page, format string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(page) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			dash = false
		case !dash && b.Len() > 0:
			b.WriteByte('-')
			dash = true
		}
	}
	name := strings.TrimSuffix(b.String(), "-")
	if name == "" {
		name = "preview"
	}
	return name + "." + format
}
