package pipeline

import (
	"context"
	"time"

	"github.com/matzehuels/c4export/pkg/diagram"
	"github.com/matzehuels/c4export/pkg/diagram/transform"
	"github.com/matzehuels/c4export/pkg/errors"
	"github.com/matzehuels/c4export/pkg/observability"
	"github.com/matzehuels/c4export/pkg/render/nodelink"
)

// Preview renders one page of doc through Graphviz with node positions
// pinned to their canvas coordinates. It returns the rendered bytes and the
// name of the page that was rendered.
func Preview(ctx context.Context, doc diagram.Document, opts PreviewOptions) ([]byte, string, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, "", err
	}
	ws, err := FindPage(doc, opts.Page)
	if err != nil {
		return nil, "", err
	}

	hooks := observability.Pipeline()
	hooks.OnPreviewStart(ctx, ws.Name, opts.Format)
	start := time.Now()

	page := transform.Prepare(ws, opts.Logger)
	dot := nodelink.ToDOT(page, nodelink.Options{Detailed: opts.Detailed, Logger: opts.Logger})

	var data []byte
	switch opts.Format {
	case FormatSVG:
		data, err = nodelink.RenderSVG(ctx, dot)
	case FormatPNG:
		data, err = nodelink.RenderPNG(ctx, dot, DefaultPreviewScale)
	case FormatPDF:
		data, err = nodelink.RenderPDF(ctx, dot)
	}
	if err != nil && errors.GetCode(err) == "" {
		err = errors.Wrap(errors.ErrCodeInternal, err, "render %s", opts.Format)
	}
	hooks.OnPreviewComplete(ctx, ws.Name, opts.Format, time.Since(start), err)
	if err != nil {
		return nil, "", err
	}
	return data, ws.Name, nil
}
