package nodelink

import (
	"bytes"
	"cmp"
	"context"
	"fmt"
	"io"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/c4export/pkg/diagram"
	"github.com/matzehuels/c4export/pkg/diagram/transform"
	"github.com/matzehuels/c4export/pkg/render"
	"github.com/matzehuels/c4export/pkg/styles"
)

// pointsPerInch converts canvas pixels to Graphviz inches.
const pointsPerInch = 72.0

// Options configures preview rendering.
type Options struct {
	// Detailed adds the technology line and kind title to node labels.
	// When false, only the display label is shown.
	Detailed bool
	// Logger receives geometry warnings. Nil discards.
	Logger *log.Logger
}

// ToDOT converts a prepared page to Graphviz DOT source for the neato engine.
// The resulting DOT string can be rendered using [RenderSVG], [RenderPDF], or
// [RenderPNG].
//
// Boundary nodes are written first, shallowest first, so they are painted
// beneath the nodes they contain.
func ToDOT(p transform.Page, opts Options) string {
	logger := opts.Logger
	if logger == nil {
		logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	ix := p.Index(logger)
	var ids []string
	for _, n := range p.Nodes {
		if _, ok := ix.Node(n.ID); ok && !slices.Contains(ids, n.ID) {
			ids = append(ids, n.ID)
		}
	}

	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	fmt.Fprintf(&buf, "  label=%q;\n", p.Name)
	buf.WriteString("  labelloc=t;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  splines=ortho;\n")
	buf.WriteString("  overlap=true;\n")
	buf.WriteString("  node [fixedsize=true, fontname=\"Helvetica\", fontsize=11, style=\"rounded,filled\"];\n")
	buf.WriteString("  edge [fontname=\"Helvetica\", fontsize=9];\n")
	buf.WriteString("\n")

	for _, id := range drawOrder(ix, ids) {
		n, _ := ix.Node(id)
		r, _ := ix.Rect(id)
		attrs := fmtAttrs(n, r, fmtLabel(n, opts.Detailed))
		fmt.Fprintf(&buf, "  %q [%s];\n", n.ID, strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	for _, e := range p.Edges {
		if !slices.Contains(ids, e.Source) || !slices.Contains(ids, e.Target) {
			continue
		}
		fmt.Fprintf(&buf, "  %q -> %q [%s];\n", e.Source, e.Target, strings.Join(edgeAttrs(&e), ", "))
	}

	buf.WriteString("}\n")
	return buf.String()
}

func drawOrder(ix *diagram.Index, visible []string) []string {
	ids := slices.Clone(visible)
	rank := func(id string) int {
		n, _ := ix.Node(id)
		if n.Kind().IsBoundary() {
			return ix.Depth(id)
		}
		return 1 << 20
	}
	slices.SortStableFunc(ids, func(a, b string) int { return cmp.Compare(rank(a), rank(b)) })
	return ids
}

func fmtLabel(n *diagram.Node, detailed bool) string {
	label := n.DisplayLabel()
	if !detailed {
		return label
	}
	parts := []string{label}
	if tech := n.TechnologyLine(); tech != "" {
		parts = append(parts, "["+tech+"]")
	}
	parts = append(parts, n.Kind().Title())
	return strings.Join(parts, "\n")
}

var dotShapes = map[styles.Shape]string{
	styles.ShapeBox:      "box",
	styles.ShapeCylinder: "cylinder",
	styles.ShapeQueue:    "box3d",
	styles.ShapeHexagon:  "hexagon",
	styles.ShapeCloud:    "ellipse",
	styles.ShapePerson:   "box",
	styles.ShapeTable:    "box",
	styles.ShapeBoundary: "box",
}

func fmtAttrs(n *diagram.Node, r diagram.Rect, label string) []string {
	st := styles.ForNode(n)
	c := r.Center()
	attrs := []string{
		fmt.Sprintf("label=%q", label),
		fmt.Sprintf("shape=%s", dotShapes[st.Shape]),
		fmt.Sprintf("pos=\"%s,%s!\"", inches(c.X), inches(-c.Y)),
		fmt.Sprintf("width=%s", inches(r.W)),
		fmt.Sprintf("height=%s", inches(r.H)),
		fmt.Sprintf("color=%q", st.Stroke),
		fmt.Sprintf("fontcolor=%q", st.Font),
	}
	switch st.Shape {
	case styles.ShapeBoundary:
		attrs = append(attrs, "style=\"rounded,dashed\"", "labelloc=t")
	case styles.ShapePerson:
		attrs = append(attrs, "style=\"rounded,filled,bold\"", fmt.Sprintf("fillcolor=%q", st.Fill))
	default:
		attrs = append(attrs, fmt.Sprintf("fillcolor=%q", st.Fill))
	}
	return attrs
}

var dotArrows = map[styles.Arrow]string{
	styles.ArrowNone:        "none",
	styles.ArrowClassic:     "normal",
	styles.ArrowOpenBlock:   "empty",
	styles.ArrowDiamond:     "diamond",
	styles.ArrowOpenDiamond: "odiamond",
}

func edgeAttrs(e *diagram.Edge) []string {
	st := styles.ForEdge(e)
	attrs := []string{
		fmt.Sprintf("color=%q", st.Color),
		fmt.Sprintf("fontcolor=%q", st.Color),
		"dir=both",
		fmt.Sprintf("arrowtail=%s", dotArrows[st.Start]),
		fmt.Sprintf("arrowhead=%s", dotArrows[st.End]),
	}
	if st.Dashed {
		attrs = append(attrs, "style=dashed")
	}
	if lines := styles.EdgeLabel(e, styles.DefaultWrapWidth); len(lines) > 0 {
		attrs = append(attrs, fmt.Sprintf("label=%q", strings.Join(lines, "\n")))
	}
	return attrs
}

func inches(px float64) string {
	return strconv.FormatFloat(px/pointsPerInch, 'f', 3, 64)
}

// RenderSVG renders DOT source to SVG using the neato engine, which honors
// the pinned node positions. Returns the SVG bytes ready for display or
// further conversion with [render.ToPDF] or [render.ToPNG].
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()
	gv.SetLayout(graphviz.NEATO)

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}

// RenderPDF renders DOT source as PDF via SVG conversion.
//
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPDF(ctx context.Context, dot string) ([]byte, error) {
	svg, err := RenderSVG(ctx, dot)
	if err != nil {
		return nil, err
	}
	return render.ToPDF(ctx, svg)
}

// RenderPNG renders DOT source as PNG via SVG conversion. A scale of 2.0
// produces a 2x resolution image suitable for high-DPI displays.
func RenderPNG(ctx context.Context, dot string, scale float64) ([]byte, error) {
	svg, err := RenderSVG(ctx, dot)
	if err != nil {
		return nil, err
	}
	return render.ToPNG(ctx, svg, scale)
}
