// Package render turns prepared diagram pages into output documents.
//
// # Overview
//
// Two renderers share the same prepared input (ghost-free nodes and
// deduplicated edges, see [transform.Prepare]):
//
//   - [drawio] assembles the editable draw.io document that is the export
//     artifact.
//   - [nodelink] renders a static SVG preview through Graphviz, keeping every
//     node at its canvas position.
//
// # Format Conversion
//
// [ToPDF] and [ToPNG] convert a rendered SVG preview using the external
// rsvg-convert tool (from librsvg).
//
//	svg, err := nodelink.RenderSVG(ctx, nodelink.ToDOT(page, nodelink.Options{}))
//	png, err := render.ToPNG(ctx, svg, 2.0)  // 2x scale
//
// [transform.Prepare]: github.com/matzehuels/c4export/pkg/diagram/transform.Prepare
// [drawio]: github.com/matzehuels/c4export/pkg/render/drawio
// [nodelink]: github.com/matzehuels/c4export/pkg/render/nodelink
package render
