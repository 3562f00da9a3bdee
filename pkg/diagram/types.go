package diagram

import (
	"fmt"
	"strings"
)

// DefaultPageName names the implicit page of a document without workspaces.
const DefaultPageName = "Architecture"

// =============================================================================
// Document
// =============================================================================

// Document is the export input: a list of named workspaces, or a single implicit
// page made of the top-level Nodes and Edges.
type Document struct {
	Name       string      `json:"name,omitempty" yaml:"name,omitempty"`
	Workspaces []Workspace `json:"workspaces,omitempty" yaml:"workspaces,omitempty"`
	Nodes      []Node      `json:"nodes,omitempty" yaml:"nodes,omitempty"`
	Edges      []Edge      `json:"edges,omitempty" yaml:"edges,omitempty"`
}

// Workspace is one independently laid-out page of the export.
type Workspace struct {
	ID    string `json:"id,omitempty" yaml:"id,omitempty"`
	Name  string `json:"name" yaml:"name"`
	Nodes []Node `json:"nodes" yaml:"nodes"`
	Edges []Edge `json:"edges" yaml:"edges"`
}

// Pages returns the pages to export. When the document lists no workspaces, a
// single page named [DefaultPageName] is synthesized from Nodes and Edges.
// Unnamed workspaces are titled "Page N".
func (d Document) Pages() []Workspace {
	if len(d.Workspaces) == 0 {
		return []Workspace{{Name: DefaultPageName, Nodes: d.Nodes, Edges: d.Edges}}
	}
	pages := make([]Workspace, len(d.Workspaces))
	for i, w := range d.Workspaces {
		if strings.TrimSpace(w.Name) == "" {
			w.Name = fmt.Sprintf("Page %d", i+1)
		}
		pages[i] = w
	}
	return pages
}

// =============================================================================
// Node
// =============================================================================

// Position is a point in canvas coordinates.
type Position struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

// Node is a canvas element. Position is relative to ParentID when set.
// Width and Height are optional; zero means "use the type default".
type Node struct {
	ID       string   `json:"id" yaml:"id"`
	Position Position `json:"position" yaml:"position"`
	Width    float64  `json:"width,omitempty" yaml:"width,omitempty"`
	Height   float64  `json:"height,omitempty" yaml:"height,omitempty"`
	ParentID string   `json:"parentId,omitempty" yaml:"parentId,omitempty"`
	Data     NodeData `json:"data" yaml:"data"`
}

// NodeData is the semantic payload of a node.
type NodeData struct {
	Type        string         `json:"type" yaml:"type"`
	Label       string         `json:"label,omitempty" yaml:"label,omitempty"`
	Status      string         `json:"status,omitempty" yaml:"status,omitempty"`
	CustomColor string         `json:"customColor,omitempty" yaml:"customColor,omitempty"`
	IsGhost     bool           `json:"isGhost,omitempty" yaml:"isGhost,omitempty"`
	Technology  string         `json:"technology,omitempty" yaml:"technology,omitempty"`
	Vendor      string         `json:"vendor,omitempty" yaml:"vendor,omitempty"`
	Description string         `json:"description,omitempty" yaml:"description,omitempty"`
	Columns     []Column       `json:"columns,omitempty" yaml:"columns,omitempty"`
	Config      map[string]any `json:"config,omitempty" yaml:"config,omitempty"`
}

// Column is one row of a table node.
type Column struct {
	ID       string `json:"id,omitempty" yaml:"id,omitempty"`
	Name     string `json:"name" yaml:"name"`
	DataType string `json:"type,omitempty" yaml:"type,omitempty"`
	Key      string `json:"key,omitempty" yaml:"key,omitempty"` // "PK", "FK" or empty
}

// Kind returns the parsed component kind.
func (n *Node) Kind() ComponentKind { return ParseComponentKind(n.Data.Type) }

// Status returns the parsed lifecycle status.
func (n *Node) Status() Status { return ParseStatus(n.Data.Status) }

// IsGhost reports whether the node is excluded from export.
func (n *Node) IsGhost() bool { return n.Data.IsGhost }

// DisplayLabel returns the label if set, otherwise the ID.
func (n *Node) DisplayLabel() string {
	if l := strings.TrimSpace(n.Data.Label); l != "" {
		return l
	}
	return n.ID
}

// TechnologyLine returns the vendor and technology of the node joined with " / ",
// reading the dedicated fields first and the free-form config second.
func (n *Node) TechnologyLine() string {
	var parts []string
	add := func(s string) {
		s = strings.TrimSpace(s)
		if s == "" {
			return
		}
		for _, p := range parts {
			if strings.EqualFold(p, s) {
				return
			}
		}
		parts = append(parts, s)
	}
	add(n.Data.Vendor)
	add(configString(n.Data.Config, "vendor"))
	add(n.Data.Technology)
	add(configString(n.Data.Config, "technology"))
	return strings.Join(parts, " / ")
}

func configString(cfg map[string]any, key string) string {
	if cfg == nil {
		return ""
	}
	if s, ok := cfg[key].(string); ok {
		return s
	}
	return ""
}

// ColumnHandle is a resolved reference from an edge handle to a table column.
type ColumnHandle struct {
	Index int  // Row index within the table
	Side  Side // SideLeft, SideRight, or SideNone when the handle carries no hint
}

// ResolveColumn matches an edge handle against the node's columns. A handle
// names a column by ID or name, optionally followed by "-left", "-right",
// "-source" or "-target". ok is false for non-table nodes, empty handles and
// handles that name no column.
func (n *Node) ResolveColumn(handle string) (ColumnHandle, bool) {
	if handle == "" || n.Kind() != KindTable {
		return ColumnHandle{}, false
	}
	for i, c := range n.Data.Columns {
		if c.matches(handle) {
			return ColumnHandle{Index: i, Side: SideNone}, true
		}
	}
	base, side := splitHandle(handle)
	if base == handle {
		return ColumnHandle{}, false
	}
	for i, c := range n.Data.Columns {
		if c.matches(base) {
			return ColumnHandle{Index: i, Side: side}, true
		}
	}
	return ColumnHandle{}, false
}

func (c Column) matches(ref string) bool {
	return (c.ID != "" && c.ID == ref) || c.Name == ref
}

func splitHandle(handle string) (string, Side) {
	for _, s := range []struct {
		suffix string
		side   Side
	}{
		{"-left", SideLeft},
		{"-right", SideRight},
		{"-source", SideNone},
		{"-target", SideNone},
	} {
		if strings.HasSuffix(handle, s.suffix) {
			return strings.TrimSuffix(handle, s.suffix), s.side
		}
	}
	return handle, SideNone
}

// =============================================================================
// Edge
// =============================================================================

// Edge is a directed connector between two nodes.
type Edge struct {
	ID           string   `json:"id" yaml:"id"`
	Source       string   `json:"source" yaml:"source"`
	Target       string   `json:"target" yaml:"target"`
	SourceHandle string   `json:"sourceHandle,omitempty" yaml:"sourceHandle,omitempty"`
	TargetHandle string   `json:"targetHandle,omitempty" yaml:"targetHandle,omitempty"`
	Hidden       bool     `json:"hidden,omitempty" yaml:"hidden,omitempty"`
	Label        string   `json:"label,omitempty" yaml:"label,omitempty"`
	Data         EdgeData `json:"data" yaml:"data"`
}

// EdgeData is the semantic payload of an edge.
type EdgeData struct {
	ConnectionType   string `json:"connectionType,omitempty" yaml:"connectionType,omitempty"`
	DataDescription  string `json:"dataDescription,omitempty" yaml:"dataDescription,omitempty"`
	Description      string `json:"description,omitempty" yaml:"description,omitempty"`
	CustomColor      string `json:"customColor,omitempty" yaml:"customColor,omitempty"`
	RelationshipType string `json:"relationshipType,omitempty" yaml:"relationshipType,omitempty"`
}

// Kind returns the connection kind. An edge with a relationship cardinality and
// no explicit connection type is a relationship.
func (e *Edge) Kind() ConnectionKind {
	k := ParseConnectionKind(e.Data.ConnectionType)
	if k == ConnDefault && strings.TrimSpace(e.Data.RelationshipType) != "" {
		return ConnRelationship
	}
	return k
}

// TypeKey identifies the connection type for duplicate detection. Relationship
// edges include their cardinality so "1:1" and "1:n" stay distinct.
func (e *Edge) TypeKey() string {
	k := e.Kind()
	if k == ConnRelationship {
		return k.String() + ":" + strings.ToLower(strings.TrimSpace(e.Data.RelationshipType))
	}
	return k.String()
}

// KeyLabel returns the label text that takes part in edge identity: the
// explicit label, else the data description, else empty.
func (e *Edge) KeyLabel() string {
	if e.Label != "" {
		return e.Label
	}
	return e.Data.DataDescription
}

// DisplayLabel returns the author-provided label text, falling back to the
// free-form description. Empty means the style resolver derives a label from
// the connection kind.
func (e *Edge) DisplayLabel() string {
	if l := e.KeyLabel(); strings.TrimSpace(l) != "" {
		return l
	}
	return e.Data.Description
}

// HandleFor returns the edge handle on the given endpoint node.
func (e *Edge) HandleFor(nodeID string) string {
	if nodeID == e.Source {
		return e.SourceHandle
	}
	if nodeID == e.Target {
		return e.TargetHandle
	}
	return ""
}

// Other returns the endpoint opposite nodeID.
func (e *Edge) Other(nodeID string) string {
	if nodeID == e.Source {
		return e.Target
	}
	return e.Source
}
