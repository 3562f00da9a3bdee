package transform

import (
	"io"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/c4export/pkg/diagram"
)

// FilterGhosts returns the nodes that are not ghosts, in input order.
func FilterGhosts(nodes []diagram.Node) []diagram.Node {
	out := make([]diagram.Node, 0, len(nodes))
	for _, n := range nodes {
		if !n.IsGhost() {
			out = append(out, n)
		}
	}
	return out
}

// EdgeKey is the identity of an edge for duplicate detection.
type EdgeKey struct {
	Source, Target string
	Type           string
	Label          string
}

// KeyOf returns the duplicate-detection key of e.
func KeyOf(e diagram.Edge) EdgeKey {
	return EdgeKey{
		Source: e.Source,
		Target: e.Target,
		Type:   e.TypeKey(),
		Label:  e.KeyLabel(),
	}
}

// Dedupe removes hidden edges, self-loops, orphans and duplicates from edges.
// nodes must already be ghost-filtered. removed counts every discarded edge.
func Dedupe(edges []diagram.Edge, nodes []diagram.Node, logger *log.Logger) (out []diagram.Edge, removed int) {
	if logger == nil {
		logger = log.NewWithOptions(io.Discard, log.Options{})
	}

	known := make(map[string]bool, len(nodes))
	for _, n := range nodes {
		known[n.ID] = true
	}

	slot := make(map[EdgeKey]int, len(edges))
	out = make([]diagram.Edge, 0, len(edges))
	for _, e := range edges {
		switch {
		case e.Hidden:
			removed++
			continue
		case e.Source == e.Target:
			removed++
			continue
		case !known[e.Source] || !known[e.Target]:
			logger.Debug("dropping orphan edge", "edge", e.ID, "source", e.Source, "target", e.Target)
			removed++
			continue
		}

		key := KeyOf(e)
		if i, dup := slot[key]; dup {
			out[i] = e
			removed++
			continue
		}
		slot[key] = len(out)
		out = append(out, e)
	}
	return out, removed
}

// Page is one page's graph after filtering and deduplication.
type Page struct {
	Name string
	// Nodes are the nodes to draw: ghosts are removed.
	Nodes []diagram.Node
	// Geometry holds every node of the workspace, ghosts included, so that a
	// node nested in a ghost still gets its ancestors' offsets. Nil means Nodes.
	Geometry []diagram.Node
	Edges    []diagram.Edge
	Removed  int
}

// Index resolves absolute geometry for the page from [Page.Geometry].
func (p Page) Index(logger *log.Logger) *diagram.Index {
	if p.Geometry == nil {
		return diagram.NewIndex(p.Nodes, logger)
	}
	return diagram.NewIndex(p.Geometry, logger)
}

// Prepare filters ghosts out of a workspace and deduplicates its edges.
func Prepare(ws diagram.Workspace, logger *log.Logger) Page {
	nodes := FilterGhosts(ws.Nodes)
	edges, removed := Dedupe(ws.Edges, nodes, logger)
	return Page{Name: ws.Name, Nodes: nodes, Geometry: ws.Nodes, Edges: edges, Removed: removed}
}
