package layout

import (
	"cmp"
	"math"
	"slices"

	"github.com/matzehuels/c4export/pkg/diagram"
)

// HorizontalThreshold is the largest vertical distance between two node
// centers for which a connector may still leave a node sideways.
const HorizontalThreshold = 80.0

// Offset bounds for sides with more than one connector.
const (
	MinOffset = 0.2
	MaxOffset = 0.8
)

// =============================================================================
// Port
// =============================================================================

// Port is one end of a connector.
type Port struct {
	Side   diagram.Side
	Offset float64 // Fraction along the side, 0 at top/left
	Rank   int     // Position among the connectors on the same side

	// Column is the table row the port is pinned to, or -1.
	Column int
	// Pinned ports attach to a table row rather than a node side.
	Pinned bool
	// Resolved is false for pinned ports whose handle names no column.
	Resolved bool
}

// Point returns the relative attachment point (0..1 on both axes) on the box
// the connector references: the node itself or the pinned column row.
func (p Port) Point() (x, y float64) {
	switch p.Side {
	case diagram.SideTop:
		return p.Offset, 0
	case diagram.SideLeft:
		return 0, p.Offset
	case diagram.SideRight:
		return 1, p.Offset
	default:
		return p.Offset, 1
	}
}

// Assignment holds both ends of one edge.
type Assignment struct {
	Exit  Port
	Entry Port
	// Placed is false when an endpoint is missing from the index.
	Placed bool
}

// Drawable reports whether both ends can be attached.
func (a Assignment) Drawable() bool {
	return a.Placed && (!a.Exit.Pinned || a.Exit.Resolved) && (!a.Entry.Pinned || a.Entry.Resolved)
}

// Assignments holds the ports of each edge at the edge's position in the
// allocated slice. Edge IDs are not required to be unique.
type Assignments []Assignment

// =============================================================================
// Allocation
// =============================================================================

type endpoint struct {
	index int // position in the edge slice
	edge  string
	exit  bool    // true for the source end
	order float64 // perpendicular coordinate of the other endpoint
}

type sideKey struct {
	node string
	side diagram.Side
}

// Allocate computes ports for every edge whose endpoints are both in ix. The
// result is indexed like edges; edges with an unknown endpoint are not Placed.
func Allocate(edges []diagram.Edge, ix *diagram.Index) Assignments {
	out := make(Assignments, len(edges))
	sides := make(map[sideKey][]endpoint)
	var keys []sideKey

	for i, e := range edges {
		src, okSrc := ix.Rect(e.Source)
		dst, okDst := ix.Rect(e.Target)
		if !okSrc || !okDst {
			continue
		}
		var a Assignment
		for _, end := range []struct {
			id, handle string
			self, peer diagram.Rect
			exit       bool
		}{
			{e.Source, e.SourceHandle, src, dst, true},
			{e.Target, e.TargetHandle, dst, src, false},
		} {
			n, _ := ix.Node(end.id)
			if port, pinned := pinPort(n, end.handle, end.self, end.peer); pinned {
				a.set(end.exit, port)
				continue
			}
			side := Classify(end.self.Center(), end.peer.Center())
			k := sideKey{end.id, side}
			if _, seen := sides[k]; !seen {
				keys = append(keys, k)
			}
			sides[k] = append(sides[k], endpoint{
				index: i,
				edge:  e.ID,
				exit:  end.exit,
				order: perpendicular(side, end.peer.Center()),
			})
			a.set(end.exit, Port{Side: side, Column: -1})
		}
		a.Placed = true
		out[i] = a
	}

	for _, k := range keys {
		eps := sides[k]
		slices.SortStableFunc(eps, func(a, b endpoint) int {
			if c := cmp.Compare(a.order, b.order); c != 0 {
				return c
			}
			if c := cmp.Compare(a.edge, b.edge); c != 0 {
				return c
			}
			return cmp.Compare(a.index, b.index)
		})
		for i, ep := range eps {
			out[ep.index].set(ep.exit, Port{
				Side:   k.side,
				Offset: SpreadOffset(i, len(eps)),
				Rank:   i,
				Column: -1,
			})
		}
	}
	return out
}

func (a *Assignment) set(exit bool, p Port) {
	if exit {
		a.Exit = p
	} else {
		a.Entry = p
	}
}

// Classify returns the side of a node centered at from that faces to.
func Classify(from, to diagram.Position) diagram.Side {
	dx, dy := to.X-from.X, to.Y-from.Y
	if math.Abs(dy) < HorizontalThreshold && math.Abs(dx) > math.Abs(dy) {
		if dx > 0 {
			return diagram.SideRight
		}
		return diagram.SideLeft
	}
	if dy < 0 {
		return diagram.SideTop
	}
	return diagram.SideBottom
}

// SpreadOffset returns the offset of the i-th of n connectors on one side.
func SpreadOffset(i, n int) float64 {
	if n <= 1 {
		return 0.5
	}
	return MinOffset + (MaxOffset-MinOffset)*float64(i)/float64(n-1)
}

func perpendicular(side diagram.Side, p diagram.Position) float64 {
	if side.Horizontal() {
		return p.Y
	}
	return p.X
}

// pinPort pins an endpoint to a table column. pinned is false when the node is
// not a table or carries no handle.
func pinPort(n *diagram.Node, handle string, self, peer diagram.Rect) (Port, bool) {
	if n == nil || handle == "" || n.Kind() != diagram.KindTable {
		return Port{}, false
	}
	col, ok := n.ResolveColumn(handle)
	if !ok {
		return Port{Column: -1, Pinned: true}, true
	}
	side := col.Side
	if side == diagram.SideNone {
		side = diagram.SideRight
		if peer.Center().X < self.Center().X {
			side = diagram.SideLeft
		}
	}
	return Port{Side: side, Offset: 0.5, Column: col.Index, Pinned: true, Resolved: true}, true
}
