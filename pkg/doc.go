// Package pkg provides the core libraries for c4export.
//
// # Overview
//
// c4export turns a canvas-style architecture document (nodes with canvas
// positions, typed connections, optional workspaces) into an editable
// draw.io file with one page per workspace. The pkg directory is organized
// into three areas:
//
//  1. Domain: [diagram] and [diagram/transform] model and prepare documents
//  2. Rendering: [layout], [styles], [render/drawio] and [render/nodelink]
//  3. Orchestration: [pipeline], [cache], [errors] and [observability]
//
// # Architecture
//
// The data flow for one export:
//
//	JSON or YAML document
//	         ↓
//	    [diagram] package (decode + validate)
//	         ↓
//	    [diagram/transform] package (ghost filtering + edge deduplication)
//	         ↓
//	    [layout] package (boundary sides + port allocation)
//	         ↓
//	    [render/drawio] package (cells, styles, legend)
//	         ↓
//	    one .drawio file with every page
//
// # Quick Start
//
// Read a document and export it:
//
//	import (
//	    "context"
//	    "github.com/matzehuels/c4export/pkg/diagram"
//	    "github.com/matzehuels/c4export/pkg/pipeline"
//	)
//
//	doc, _ := diagram.ReadDocumentFile("architecture.json")
//	result, _ := pipeline.Export(context.Background(), doc, pipeline.Options{})
//	os.WriteFile(result.Filename, result.Data, 0o644)
//
// # Main Packages
//
// [diagram] - Input model: nodes, edges, workspaces and the node kind
// catalog. Decodes JSON and YAML and computes absolute geometry for nodes
// nested in boundaries.
//
// [diagram/transform] - Page preparation shared by export and summary:
// ghost nodes are dropped and duplicate or dangling edges are removed.
//
// [layout] - Connection side selection from box geometry and the even
// spreading of edge endpoints along each side.
//
// [styles] - draw.io style strings for nodes and edges, the status and
// connection palettes, and label wrapping.
//
// [render/drawio] - mxfile document assembly, including the legend group.
//
// [render/nodelink] - Static Graphviz previews with pinned node positions.
//
// [render] - SVG to PDF/PNG conversion via rsvg-convert.
//
// [pipeline] - The export and preview pipeline used by both the CLI and the
// HTTP server, with a caching [pipeline.Runner].
//
// [cache] - Artifact caches: file, Redis, MongoDB and a null cache.
//
// # Testing
//
// Run tests:
//
//	go test ./...              # All tests
//	go test ./pkg/layout/...   # Specific package
//	go test -run Example ./... # Examples only
//
// [diagram]: https://pkg.go.dev/github.com/matzehuels/c4export/pkg/diagram
// [diagram/transform]: https://pkg.go.dev/github.com/matzehuels/c4export/pkg/diagram/transform
// [layout]: https://pkg.go.dev/github.com/matzehuels/c4export/pkg/layout
// [styles]: https://pkg.go.dev/github.com/matzehuels/c4export/pkg/styles
// [render]: https://pkg.go.dev/github.com/matzehuels/c4export/pkg/render
// [render/drawio]: https://pkg.go.dev/github.com/matzehuels/c4export/pkg/render/drawio
// [render/nodelink]: https://pkg.go.dev/github.com/matzehuels/c4export/pkg/render/nodelink
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/c4export/pkg/pipeline
// [pipeline.Runner]: https://pkg.go.dev/github.com/matzehuels/c4export/pkg/pipeline#Runner
// [cache]: https://pkg.go.dev/github.com/matzehuels/c4export/pkg/cache
// [errors]: https://pkg.go.dev/github.com/matzehuels/c4export/pkg/errors
// [observability]: https://pkg.go.dev/github.com/matzehuels/c4export/pkg/observability
package pkg
