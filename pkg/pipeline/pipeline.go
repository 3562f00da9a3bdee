// Package pipeline runs the export of a diagram document.
//
// This package implements the complete read → prepare → assemble → write
// pipeline that is used by the CLI and the HTTP server. By centralizing this
// logic, both entry points name files, count edges and cache artifacts the
// same way.
//
// # Architecture
//
// Every page of a document goes through the same stages:
//
//  1. Prepare: filter ghost nodes and deduplicate edges ([transform.Prepare])
//  2. Assemble: resolve geometry, allocate ports and emit cells ([drawio.Assemble])
//  3. Write: wrap all pages in one mxfile document ([drawio.NewFile])
//
// Previews skip the mxfile stage and render a single prepared page through
// Graphviz instead.
//
// # Usage
//
// Create a Runner and export a document:
//
//	runner := pipeline.NewRunner(c, nil, logger)
//	result, err := runner.Export(ctx, doc, pipeline.Options{FilePrefix: "shop"})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	os.WriteFile(result.Filename, result.Data, 0o644)
//
// The stages are also available without a cache:
//
//	result, err := pipeline.Export(ctx, doc, opts)
//	summary := pipeline.Summarize(doc, logger)
package pipeline

import (
	"io"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/c4export/pkg/cache"
	"github.com/matzehuels/c4export/pkg/errors"
	"github.com/matzehuels/c4export/pkg/render/drawio"
	"github.com/matzehuels/c4export/pkg/styles"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and API
// =============================================================================

const (
	// DefaultFilePrefix names exported files when no prefix is given.
	DefaultFilePrefix = "architecture"

	// FileExtension is appended to every exported file name.
	FileExtension = ".drawio"

	// DateLayout is the date embedded in exported file names.
	DateLayout = "2006-01-02"

	// DefaultPreviewScale is the PNG preview scale factor.
	DefaultPreviewScale = 2.0
)

// Format constants for outputs.
const (
	FormatDrawio = "drawio"
	FormatSVG    = "svg"
	FormatPNG    = "png"
	FormatPDF    = "pdf"
)

// ValidPreviewFormats is the set of supported preview formats.
var ValidPreviewFormats = map[string]bool{
	FormatSVG: true,
	FormatPNG: true,
	FormatPDF: true,
}

// =============================================================================
// Options - Export Configuration
// =============================================================================

// Options contains all configuration for an export.
// This struct supports JSON serialization for API requests.
type Options struct {
	// FilePrefix is the leading part of the dated file name.
	FilePrefix string `json:"file_prefix,omitempty"`
	// WrapWidth is the edge label wrap threshold in characters.
	WrapWidth int `json:"wrap_width,omitempty"`
	// LegendGap is the space between the lowest node and the legend.
	LegendGap float64 `json:"legend_gap,omitempty"`
	// Pages restricts the export to the named pages. Empty exports all.
	Pages []string `json:"pages,omitempty"`
	// Refresh skips the cache lookup but still stores the result.
	Refresh bool `json:"refresh,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger      `json:"-"`
	Now    func() time.Time `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// PreviewOptions configures a single-page preview.
type PreviewOptions struct {
	// Page is the page to render. Empty renders the first page.
	Page string `json:"page,omitempty"`
	// Format is one of svg, png or pdf.
	Format string `json:"format,omitempty"`
	// Detailed adds technology and kind lines to node labels.
	Detailed bool `json:"detailed,omitempty"`

	Logger *log.Logger `json:"-"`
}

// Result contains the outputs of an export.
type Result struct {
	// Data is the encoded mxfile document.
	Data []byte
	// Filename is the dated file name, e.g. "architecture-2024-05-01.drawio".
	Filename string
	// DocumentHash is the content hash of the canonical input.
	DocumentHash string
	// Summary reports what was exported.
	Summary Summary
	// Stats counts the assembled cells across all pages.
	Stats drawio.Stats
	// Duration is the wall time of the export.
	Duration time.Duration
	// CacheHit is true when Data came from the cache.
	CacheHit bool
}

// Summary is the notification shown after an export.
type Summary struct {
	Pages []PageSummary `json:"pages"`
	// Edges is the number of edges retained after deduplication on all pages.
	Edges int `json:"edges"`
	// Removed is the number of edges dropped by deduplication on all pages.
	Removed int `json:"removed"`
}

// PageSummary counts one page.
type PageSummary struct {
	Name    string `json:"name"`
	Nodes   int    `json:"nodes"`
	Edges   int    `json:"edges"`
	Removed int    `json:"removed"`
}

// PageCount returns the number of exported pages.
func (s Summary) PageCount() int { return len(s.Pages) }

// =============================================================================
// Validation Functions
// =============================================================================

// ValidatePreviewFormat checks that a preview format is valid.
func ValidatePreviewFormat(format string) error {
	if !ValidPreviewFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat, "invalid preview format: %q (must be one of: svg, png, pdf)", format)
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks fields and applies defaults.
// This method is idempotent - calling it multiple times has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if o.FilePrefix == "" {
		o.FilePrefix = DefaultFilePrefix
	}
	if err := errors.ValidateFilePrefix(o.FilePrefix); err != nil {
		return err
	}
	if o.WrapWidth < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "wrap width cannot be negative: %d", o.WrapWidth)
	}
	if o.WrapWidth == 0 {
		o.WrapWidth = styles.DefaultWrapWidth
	}
	if o.LegendGap < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "legend gap cannot be negative: %g", o.LegendGap)
	}
	if o.LegendGap == 0 {
		o.LegendGap = drawio.DefaultLegendGap
	}
	for _, p := range o.Pages {
		if err := errors.ValidatePageName(p); err != nil {
			return err
		}
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	if o.Now == nil {
		o.Now = time.Now
	}
	o.validated = true
	return nil
}

// ValidateAndSetDefaults checks fields and applies defaults.
func (o *PreviewOptions) ValidateAndSetDefaults() error {
	if o.Format == "" {
		o.Format = FormatSVG
	}
	if err := ValidatePreviewFormat(o.Format); err != nil {
		return err
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return nil
}

// Filename returns the dated file name for t.
func (o *Options) Filename(t time.Time) string {
	prefix := o.FilePrefix
	if prefix == "" {
		prefix = DefaultFilePrefix
	}
	return prefix + "-" + t.Format(DateLayout) + FileExtension
}

// AssembleOptions returns the page assembly options.
func (o *Options) AssembleOptions() drawio.Options {
	return drawio.Options{WrapWidth: o.WrapWidth, LegendGap: o.LegendGap, Logger: o.Logger}
}

// ArtifactKeyOpts returns cache key options for the exported document.
// The file name is not part of the key: it only changes with the date.
func (o *Options) ArtifactKeyOpts() cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{
		Format:    FormatDrawio,
		WrapWidth: o.WrapWidth,
		LegendGap: o.LegendGap,
		Page:      joinPages(o.Pages),
	}
}

// ArtifactKeyOpts returns cache key options for a preview.
func (o *PreviewOptions) ArtifactKeyOpts() cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{
		Format:   o.Format,
		Page:     o.Page,
		Detailed: o.Detailed,
	}
}

func joinPages(pages []string) string {
	if len(pages) == 0 {
		return ""
	}
	sorted := slices.Clone(pages)
	slices.Sort(sorted)
	return strings.Join(sorted, "\x1f")
}
