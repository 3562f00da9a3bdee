package drawio

import (
	"cmp"
	"fmt"
	"html"
	"io"
	"math"
	"slices"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/c4export/pkg/diagram"
	"github.com/matzehuels/c4export/pkg/diagram/transform"
	"github.com/matzehuels/c4export/pkg/layout"
	"github.com/matzehuels/c4export/pkg/styles"
)

// DefaultLegendGap is the vertical distance between the lowest node and the
// legend.
const DefaultLegendGap = 100.0

// Options configure page assembly.
type Options struct {
	// WrapWidth is the edge label wrap threshold. Zero uses
	// [styles.DefaultWrapWidth].
	WrapWidth int
	// LegendGap is the space above the legend. Zero uses [DefaultLegendGap].
	LegendGap float64
	// Logger receives debug output for skipped edges. Nil discards.
	Logger *log.Logger
}

func (o Options) withDefaults() Options {
	if o.WrapWidth == 0 {
		o.WrapWidth = styles.DefaultWrapWidth
	}
	if o.LegendGap == 0 {
		o.LegendGap = DefaultLegendGap
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return o
}

// Stats counts what a page assembly emitted.
type Stats struct {
	Nodes   int // Diagram nodes emitted (composites count once)
	Edges   int // Connectors emitted
	Skipped int // Edges dropped for a missing endpoint cell
}

// Add returns the sum of two stats.
func (s Stats) Add(o Stats) Stats {
	return Stats{Nodes: s.Nodes + o.Nodes, Edges: s.Edges + o.Edges, Skipped: s.Skipped + o.Skipped}
}

// Preferred cell IDs. [assembler.newID] adds a "~N" suffix when one is
// already taken, so the IDs written to a page are always unique.
func nodeCellID(id string) string { return "node-" + id }
func columnCellID(id string, i int) string { return fmt.Sprintf("node-%s-col-%d", id, i) }
func edgeCellID(id string) string { return "edge-" + id }

type columnRef struct {
	node  string
	index int
}

// =============================================================================
// Page Assembly
// =============================================================================

type assembler struct {
	opts Options
	ix   *diagram.Index
	// visible lists the IDs of the nodes to draw, in input order.
	visible []string
	cells   []MxCell
	used    map[string]bool
	// nodeCells and columnCells map graph elements to the cells a connector
	// may reference.
	nodeCells   map[string]string
	columnCells map[columnRef]string
	stats       Stats
}

// Assemble lays out one prepared page. p.Nodes must be ghost-free and
// p.Edges deduplicated, as produced by [transform.Prepare]. Geometry is
// resolved over p.Geometry so ghost ancestors still contribute their offsets.
func Assemble(p transform.Page, opts Options) (Diagram, Stats) {
	opts = opts.withDefaults()
	a := &assembler{
		opts:        opts,
		ix:          p.Index(opts.Logger),
		used:        make(map[string]bool),
		nodeCells:   make(map[string]string),
		columnCells: make(map[columnRef]string),
	}
	seen := make(map[string]bool, len(p.Nodes))
	for _, n := range p.Nodes {
		if _, ok := a.ix.Node(n.ID); ok && !seen[n.ID] {
			seen[n.ID] = true
			a.visible = append(a.visible, n.ID)
		}
	}

	model := newModel()
	for _, c := range model.Root.Cells {
		a.used[c.ID] = true
	}
	a.cells = model.Root.Cells

	a.boundaries()
	a.regular()
	a.connectors(p.Edges)
	a.legend()

	model.Root.Cells = a.cells
	return Diagram{Name: p.Name, Model: model}, a.stats
}

// boundaries emits grouping nodes, parents before children.
func (a *assembler) boundaries() {
	var ids []string
	for _, id := range a.visible {
		n, _ := a.ix.Node(id)
		if n.Kind().IsBoundary() {
			ids = append(ids, id)
		}
	}
	slices.SortStableFunc(ids, func(x, y string) int {
		return cmp.Compare(a.ix.Depth(x), a.ix.Depth(y))
	})
	for _, id := range ids {
		n, _ := a.ix.Node(id)
		r, _ := a.ix.Rect(id)
		st := styles.ForNode(n)
		a.nodeCells[id] = a.add(vertex(nodeCellID(id), boundaryLabel(n), nodeStyle(st), r.X, r.Y, r.W, r.H))
		a.stats.Nodes++
	}
}

// regular emits all non-boundary nodes in input order.
func (a *assembler) regular() {
	for _, id := range a.visible {
		n, _ := a.ix.Node(id)
		if n.Kind().IsBoundary() {
			continue
		}
		r, _ := a.ix.Rect(id)
		st := styles.ForNode(n)
		switch st.Shape {
		case styles.ShapeTable:
			a.table(n, r, st)
		case styles.ShapePerson:
			a.client(n, r, st)
		default:
			a.nodeCells[id] = a.add(vertex(nodeCellID(id), nodeLabel(n), nodeStyle(st), r.X, r.Y, r.W, r.H))
		}
		a.stats.Nodes++
	}
}

func (a *assembler) table(n *diagram.Node, r diagram.Rect, st styles.NodeStyle) {
	a.nodeCells[n.ID] = a.add(vertex(nodeCellID(n.ID), "", tableFrameStyle(st), r.X, r.Y, r.W, r.H))
	a.add(vertex(nodeCellID(n.ID)+"-header", "<b>"+html.EscapeString(n.DisplayLabel())+"</b>",
		nodeStyle(st), r.X, r.Y, r.W, diagram.TableHeaderHeight))

	rowStyle := tableRowStyle(st)
	for i, c := range n.Data.Columns {
		y := r.Y + diagram.TableHeaderHeight + float64(i)*(diagram.TableRowHeight+diagram.TableRowGap) + diagram.TableRowGap
		a.columnCells[columnRef{n.ID, i}] = a.add(vertex(columnCellID(n.ID, i), columnLabel(c), rowStyle, r.X, y, r.W, diagram.TableRowHeight))
	}
}

func (a *assembler) client(n *diagram.Node, r diagram.Rect, st styles.NodeStyle) {
	d := math.Round(math.Min(r.W, r.H) * 0.4)
	a.add(vertex(nodeCellID(n.ID)+"-head", "", clientHeadStyle(st), r.X+(r.W-d)/2, r.Y, d, d))
	a.nodeCells[n.ID] = a.add(vertex(nodeCellID(n.ID), nodeLabel(n), nodeStyle(st), r.X, r.Y+d, r.W, r.H-d))
}

func (a *assembler) connectors(edges []diagram.Edge) {
	ports := layout.Allocate(edges, a.ix)
	pairs := layout.GroupPairs(edges)

	for i, e := range edges {
		as := ports[i]
		if !as.Drawable() {
			a.skip(e, "unresolved endpoint")
			continue
		}
		src, okSrc := a.endpointCell(e.Source, as.Exit)
		dst, okDst := a.endpointCell(e.Target, as.Entry)
		if !okSrc || !okDst {
			a.skip(e, "endpoint cell not emitted")
			continue
		}

		geo := &Geometry{Relative: "1", As: "geometry"}
		if slot := pairs[i]; slot.Multi() {
			geo.X = labelSpread(slot)
			geo.Y = labelOffset(slot.Rank)
		}
		a.add(MxCell{
			ID:       edgeCellID(e.ID),
			Parent:   "1",
			Value:    edgeLabel(&e, a.opts.WrapWidth),
			Style:    edgeStyle(styles.ForEdge(&e), as),
			Edge:     "1",
			Source:   src,
			Target:   dst,
			Geometry: geo,
		})
		a.stats.Edges++
	}
}

func (a *assembler) skip(e diagram.Edge, reason string) {
	a.opts.Logger.Debug("skipping edge", "edge", e.ID, "reason", reason)
	a.stats.Skipped++
}

// add appends c under a unique ID and returns the ID it was given.
func (a *assembler) add(c MxCell) string {
	c.ID = a.newID(c.ID)
	a.cells = append(a.cells, c)
	return c.ID
}

// newID returns want, or want with the first free "~N" suffix.
func (a *assembler) newID(want string) string {
	id := want
	for n := 2; a.used[id]; n++ {
		id = fmt.Sprintf("%s~%d", want, n)
	}
	a.used[id] = true
	return id
}

// endpointCell returns the cell a connector end attaches to.
func (a *assembler) endpointCell(nodeID string, p layout.Port) (string, bool) {
	if p.Pinned {
		id, ok := a.columnCells[columnRef{nodeID, p.Column}]
		return id, ok
	}
	id, ok := a.nodeCells[nodeID]
	return id, ok
}

// labelSpread places the label of the rank-th edge of a pair along the
// connector, evenly across [-0.3, 0.3].
func labelSpread(s layout.PairSlot) float64 {
	return -0.3 + 0.6*float64(s.Rank)/float64(s.Count-1)
}

// labelOffset alternates labels above and below the connector, moving further
// out every second rank.
func labelOffset(rank int) float64 {
	off := 14 * float64(rank/2+1)
	if rank%2 == 1 {
		return -off
	}
	return off
}

// =============================================================================
// Labels
// =============================================================================

func nodeLabel(n *diagram.Node) string {
	var b strings.Builder
	b.WriteString("<b>" + html.EscapeString(n.DisplayLabel()) + "</b>")
	if tech := n.TechnologyLine(); tech != "" {
		b.WriteString(`<br><span style="font-size:10px">[` + html.EscapeString(tech) + `]</span>`)
	}
	b.WriteString(`<br><i style="font-size:10px">` + n.Kind().Title() + `</i>`)
	return b.String()
}

func boundaryLabel(n *diagram.Node) string {
	return "<b>" + html.EscapeString(n.DisplayLabel()) + "</b>" +
		`<br><span style="font-size:10px;font-weight:normal">[` + n.Kind().Title() + `]</span>`
}

func columnLabel(c diagram.Column) string {
	var b strings.Builder
	if c.Key != "" {
		b.WriteString("<b>" + html.EscapeString(c.Key) + "</b> ")
	}
	b.WriteString(html.EscapeString(c.Name))
	if c.DataType != "" {
		b.WriteString(` <span style="color:#888888">` + html.EscapeString(c.DataType) + `</span>`)
	}
	return b.String()
}

func edgeLabel(e *diagram.Edge, width int) string {
	lines := styles.EdgeLabel(e, width)
	for i, l := range lines {
		lines[i] = html.EscapeString(l)
	}
	return strings.Join(lines, "<br>")
}
