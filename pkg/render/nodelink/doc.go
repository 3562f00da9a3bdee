// Package nodelink renders diagram pages as SVG previews using Graphviz.
//
// # Overview
//
// The draw.io export needs a desktop or web editor to look at. This package
// produces a quick static picture of the same page instead. Nodes keep the
// absolute canvas positions resolved by [diagram.NewIndex]; Graphviz only
// routes the edges.
//
// # Usage
//
//	dot := nodelink.ToDOT(page, nodelink.Options{Detailed: true})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// For PDF or PNG output, use the render functions:
//
//	pdf, err := nodelink.RenderPDF(ctx, dot)
//	png, err := nodelink.RenderPNG(ctx, dot, 2.0)  // 2x scale
//
// # DOT Format
//
// [ToDOT] writes an undirected-layout graph for the neato engine. Every node
// carries a pinned pos attribute ("x,y!") in inches with the y axis flipped,
// and shapes and colors come from the styles package so the preview matches
// the export.
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering. PDF and PNG conversion requires librsvg (rsvg-convert).
package nodelink
