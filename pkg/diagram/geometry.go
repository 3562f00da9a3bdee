package diagram

import (
	"io"

	"github.com/charmbracelet/log"
)

// Table row metrics. A table's height is always derived from its row count.
const (
	TableHeaderHeight = 32.0
	TableRowHeight    = 26.0
	TableRowGap       = 2.0
)

// Side is one of the four sides of a node box.
type Side int

const (
	SideNone Side = iota
	SideTop
	SideBottom
	SideLeft
	SideRight
)

// String returns the side name.
func (s Side) String() string {
	switch s {
	case SideTop:
		return "top"
	case SideBottom:
		return "bottom"
	case SideLeft:
		return "left"
	case SideRight:
		return "right"
	}
	return "none"
}

// Horizontal reports whether connectors leave the side horizontally.
func (s Side) Horizontal() bool { return s == SideLeft || s == SideRight }

// Rect is an axis-aligned box in absolute page coordinates.
type Rect struct {
	X, Y, W, H float64
}

// Center returns the midpoint of the box.
func (r Rect) Center() Position { return Position{X: r.X + r.W/2, Y: r.Y + r.H/2} }

// Right returns the x-coordinate of the right edge.
func (r Rect) Right() float64 { return r.X + r.W }

// Bottom returns the y-coordinate of the bottom edge.
func (r Rect) Bottom() float64 { return r.Y + r.H }

// DefaultSize returns the fallback dimensions for a kind.
func DefaultSize(k ComponentKind) (w, h float64) {
	if k.IsBoundary() {
		return 480, 320
	}
	switch k {
	case KindClient:
		return 120, 120
	case KindDatabase, KindDataWarehouse, KindCache, KindObjectStorage:
		return 140, 90
	case KindQueue, KindMessageBroker, KindEventStream:
		return 160, 70
	case KindTable:
		return 220, TableHeaderHeight
	}
	return 180, 90
}

// TableHeight returns the height of a table with n rows.
func TableHeight(rows int) float64 {
	return TableHeaderHeight + float64(rows)*(TableRowHeight+TableRowGap)
}

// Size returns the node's width and height, falling back to type defaults for
// missing or non-positive values. Tables always use [TableHeight].
func (n *Node) Size() (w, h float64) {
	kind := n.Kind()
	w, h = DefaultSize(kind)
	if n.Width > 0 {
		w = n.Width
	}
	if n.Height > 0 {
		h = n.Height
	}
	if kind == KindTable {
		h = TableHeight(len(n.Data.Columns))
	}
	return w, h
}

// =============================================================================
// Index - Resolved Geometry
// =============================================================================

// Index is a read-only view of one page's nodes with absolute geometry.
// It is built once per export pass and never mutated afterwards.
type Index struct {
	nodes  map[string]*Node
	order  []string
	rects  map[string]Rect
	depth  map[string]int
	cyclic map[string]bool
}

// NewIndex resolves absolute rectangles for nodes. The absolute position of a
// node is the sum of its local position and every ancestor's local position.
//
// A missing parent ends the chain at the last node found. A parent chain that
// revisits a node is a cycle: every node on or below the cycle keeps its local
// position and a warning is logged once per cycle entry. Duplicate IDs keep the
// first occurrence.
func NewIndex(nodes []Node, logger *log.Logger) *Index {
	if logger == nil {
		logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	ix := &Index{
		nodes:  make(map[string]*Node, len(nodes)),
		order:  make([]string, 0, len(nodes)),
		rects:  make(map[string]Rect, len(nodes)),
		depth:  make(map[string]int, len(nodes)),
		cyclic: make(map[string]bool),
	}
	for i := range nodes {
		n := &nodes[i]
		if _, dup := ix.nodes[n.ID]; dup {
			logger.Debug("duplicate node id ignored", "id", n.ID)
			continue
		}
		ix.nodes[n.ID] = n
		ix.order = append(ix.order, n.ID)
	}
	for _, id := range ix.order {
		n := ix.nodes[id]
		pos, depth, ok := ix.absolute(n)
		if !ok {
			ix.cyclic[id] = true
			logger.Warn("parent cycle detected, using local coordinates", "node", id, "parent", n.ParentID)
		}
		w, h := n.Size()
		ix.rects[id] = Rect{X: pos.X, Y: pos.Y, W: w, H: h}
		ix.depth[id] = depth
	}
	return ix
}

// absolute walks the parent chain of n. ok is false when the chain loops.
func (ix *Index) absolute(n *Node) (pos Position, depth int, ok bool) {
	pos = n.Position
	seen := map[string]bool{n.ID: true}
	cur := n
	for cur.ParentID != "" {
		parent, found := ix.nodes[cur.ParentID]
		if !found {
			break
		}
		if seen[parent.ID] {
			return n.Position, 0, false
		}
		seen[parent.ID] = true
		pos.X += parent.Position.X
		pos.Y += parent.Position.Y
		depth++
		cur = parent
	}
	return pos, depth, true
}

// Node returns the node with the given ID.
func (ix *Index) Node(id string) (*Node, bool) {
	n, ok := ix.nodes[id]
	return n, ok
}

// Rect returns the absolute box of the node with the given ID.
func (ix *Index) Rect(id string) (Rect, bool) {
	r, ok := ix.rects[id]
	return r, ok
}

// Depth returns the nesting depth of a node (0 for top-level nodes).
func (ix *Index) Depth(id string) int { return ix.depth[id] }

// Cyclic reports whether the node's parent chain contains a cycle.
func (ix *Index) Cyclic(id string) bool { return ix.cyclic[id] }

// IDs returns node IDs in input order.
func (ix *Index) IDs() []string { return ix.order }

// Len returns the number of indexed nodes.
func (ix *Index) Len() int { return len(ix.order) }
