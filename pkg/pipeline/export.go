package pipeline

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/c4export/pkg/buildinfo"
	"github.com/matzehuels/c4export/pkg/diagram"
	"github.com/matzehuels/c4export/pkg/diagram/transform"
	"github.com/matzehuels/c4export/pkg/errors"
	"github.com/matzehuels/c4export/pkg/observability"
	"github.com/matzehuels/c4export/pkg/render/drawio"
)

// Export assembles every selected page of doc into one mxfile document.
//
// A document without workspaces exports a single page named
// [diagram.DefaultPageName]. The summary is computed by [Summarize], which
// deduplicates each page again instead of reusing assembly counts.
func Export(ctx context.Context, doc diagram.Document, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	start := time.Now()

	pages, err := SelectPages(doc, opts.Pages)
	if err != nil {
		return nil, err
	}

	hooks := observability.Pipeline()
	hooks.OnExportStart(ctx, doc.Name, len(pages))

	diagrams := make([]drawio.Diagram, 0, len(pages))
	var stats drawio.Stats
	for _, ws := range pages {
		pageStart := time.Now()
		page := transform.Prepare(ws, opts.Logger)
		d, s := drawio.Assemble(page, opts.AssembleOptions())
		diagrams = append(diagrams, d)
		stats = stats.Add(s)

		hooks.OnPageAssembled(ctx, page.Name, s.Nodes, s.Edges, s.Skipped, time.Since(pageStart))
		opts.Logger.Debug("assembled page",
			"page", page.Name,
			"nodes", s.Nodes,
			"edges", s.Edges,
			"duplicates", page.Removed,
			"skipped", s.Skipped)
	}

	data, err := drawio.Marshal(drawio.NewFile(diagrams, buildinfo.Agent()))
	if err != nil {
		err = errors.Wrap(errors.ErrCodeInternal, err, "encode drawio document")
		hooks.OnExportComplete(ctx, doc.Name, 0, time.Since(start), err)
		return nil, err
	}

	summary := summarizePages(pages, opts.Logger)
	result := &Result{
		Data:     data,
		Filename: opts.Filename(opts.Now()),
		Summary:  summary,
		Stats:    stats,
		Duration: time.Since(start),
	}
	hooks.OnExportComplete(ctx, doc.Name, summary.Edges, result.Duration, nil)
	return result, nil
}

// Summarize counts the pages and retained edges of doc. Deduplication runs
// again for every page so the counts match what [Export] writes.
func Summarize(doc diagram.Document, logger *log.Logger) Summary {
	return summarizePages(doc.Pages(), logger)
}

func summarizePages(pages []diagram.Workspace, logger *log.Logger) Summary {
	var s Summary
	for _, ws := range pages {
		p := transform.Prepare(ws, logger)
		s.Pages = append(s.Pages, PageSummary{
			Name:    p.Name,
			Nodes:   len(p.Nodes),
			Edges:   len(p.Edges),
			Removed: p.Removed,
		})
		s.Edges += len(p.Edges)
		s.Removed += p.Removed
	}
	return s
}

// SelectPages returns the pages of doc named in names, in document order.
// Every page carrying a selected name is kept, so workspaces sharing a name
// are exported together. An empty selection returns every page. Unknown names
// are reported as PAGE_NOT_FOUND.
func SelectPages(doc diagram.Document, names []string) ([]diagram.Workspace, error) {
	pages := doc.Pages()
	if len(names) == 0 {
		return pages, nil
	}
	want := make(map[string]bool, len(names))
	for _, n := range names {
		want[n] = true
	}
	found := make(map[string]bool, len(names))
	var out []diagram.Workspace
	for _, p := range pages {
		if want[p.Name] {
			out = append(out, p)
			found[p.Name] = true
		}
	}
	for _, n := range names {
		if !found[n] {
			return nil, errors.New(errors.ErrCodePageNotFound, "page %q not found", n)
		}
	}
	return out, nil
}

// FindPage returns the page called name. An empty name returns the first page.
func FindPage(doc diagram.Document, name string) (diagram.Workspace, error) {
	pages := doc.Pages()
	if name == "" {
		return pages[0], nil
	}
	for _, p := range pages {
		if p.Name == name {
			return p, nil
		}
	}
	return diagram.Workspace{}, errors.New(errors.ErrCodePageNotFound, "page %q not found", name)
}

// PageNames lists the page names of doc in order.
func PageNames(doc diagram.Document) []string {
	pages := doc.Pages()
	names := make([]string, len(pages))
	for i, p := range pages {
		names[i] = p.Name
	}
	return names
}
