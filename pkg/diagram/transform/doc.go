// Package transform prepares a page's graph for layout.
//
// # Overview
//
// Snapshots from the editor are noisy: ghost nodes are placeholders that must
// not be exported, edges may be hidden, point back at their own source, or
// reference nodes that were deleted. The same connection is often drawn twice.
// This package turns that input into a clean edge list with stable order.
//
// # Ghost Filtering
//
// [FilterGhosts] drops nodes flagged as ghosts. It runs before deduplication
// so that edges touching a ghost become orphans.
//
// # Deduplication
//
// [Dedupe] applies four rules in order:
//
//  1. Hidden edges are discarded.
//  2. Self-loops are discarded.
//  3. Edges whose source or target is not in the node list are discarded and
//     logged at debug level.
//  4. Edges sharing source, target, connection type and label collapse into
//     one. The last occurrence wins but keeps the position of the first.
//
// Dedupe is idempotent: applying it to its own output removes nothing.
package transform
