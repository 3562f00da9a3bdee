// Package layout assigns connector attachment points on node sides.
//
// # Overview
//
// draw.io routes orthogonal connectors between fixed points on the source and
// target boxes. When several edges leave the same side of a node at the
// midpoint they overlap into a single line. [Allocate] spreads them out:
// every edge endpoint is classified onto a side, the edges on a side are
// ordered by where their other endpoint lies, and each is given an evenly
// spaced offset along the side.
//
// # Side Classification
//
// An endpoint uses the left or right side when the other node's center is
// less than [HorizontalThreshold] pixels away vertically and further away
// horizontally than vertically. Otherwise it uses the top or bottom side.
//
// # Offsets
//
// A side with a single edge attaches at 0.5. A side with N edges spreads them
// over [0.2, 0.8], so the i-th edge (0-based) sits at 0.2 + 0.6*i/(N-1).
//
// # Table Columns
//
// An edge handle on a table node may name a column. Such endpoints are pinned
// to the left or right edge of that column's row and do not take part in side
// allocation. A handle that names no column yields an unresolved pinned port;
// the edge cannot be drawn.
//
// # Pairs
//
// [GroupPairs] numbers the edges running between the same two nodes so the
// assembler can fan out their labels.
package layout
