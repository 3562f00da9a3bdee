package styles

import (
	"strings"

	"github.com/matzehuels/c4export/pkg/diagram"
)

// Arrow is an arrow head.
type Arrow int

const (
	ArrowNone Arrow = iota
	ArrowClassic
	ArrowOpenBlock
	ArrowDiamond
	ArrowOpenDiamond
)

// Name returns the draw.io marker name.
func (a Arrow) Name() string {
	switch a {
	case ArrowClassic:
		return "classic"
	case ArrowOpenBlock:
		return "block"
	case ArrowDiamond, ArrowOpenDiamond:
		return "diamond"
	}
	return "none"
}

// Filled reports whether the marker is drawn solid.
func (a Arrow) Filled() bool { return a != ArrowOpenBlock && a != ArrowOpenDiamond }

// EdgeStyle is the resolved look of a connector.
type EdgeStyle struct {
	Color  string
	Dashed bool
	Start  Arrow
	End    Arrow
	Label  string // Shown when the edge has no text of its own
}

var edgeStyles = [...]EdgeStyle{
	diagram.ConnDefault:            {Color: "#555555", End: ArrowClassic},
	diagram.ConnREST:               {Color: "#1565c0", End: ArrowClassic, Label: "REST"},
	diagram.ConnGRPC:               {Color: "#6a1b9a", End: ArrowClassic, Label: "gRPC"},
	diagram.ConnGraphQL:            {Color: "#c2185b", End: ArrowClassic, Label: "GraphQL"},
	diagram.ConnAsync:              {Color: "#ef6c00", Dashed: true, End: ArrowClassic, Label: "Async"},
	diagram.ConnAsyncBidirectional: {Color: "#ef6c00", Dashed: true, Start: ArrowClassic, End: ArrowClassic, Label: "Async (bidirectional)"},
	diagram.ConnDatabase:           {Color: "#2e7d32", End: ArrowClassic, Label: "Database"},
	diagram.ConnReplication:        {Color: "#2e7d32", Dashed: true, End: ArrowClassic, Label: "Replication"},
	diagram.ConnCache:              {Color: "#d84315", End: ArrowClassic, Label: "Cache"},
	diagram.ConnDependency:         {Color: "#616161", End: ArrowClassic, Label: "Depends on"},
	diagram.ConnComposition:        {Color: "#37474f", Start: ArrowDiamond, Label: "Composition"},
	diagram.ConnAggregation:        {Color: "#37474f", Start: ArrowOpenDiamond, Label: "Aggregation"},
	diagram.ConnMethodCall:         {Color: "#455a64", End: ArrowClassic, Label: "Method call"},
	diagram.ConnInheritance:        {Color: "#37474f", Dashed: true, End: ArrowOpenBlock, Label: "Inherits"},
	diagram.ConnOIDC:               {Color: "#00838f", End: ArrowClassic, Label: "OIDC"},
	diagram.ConnOAuth2:             {Color: "#00838f", End: ArrowClassic, Label: "OAuth 2.0"},
	diagram.ConnSAML:               {Color: "#00838f", End: ArrowClassic, Label: "SAML"},
	diagram.ConnWS:                 {Color: "#5e35b1", Dashed: true, Start: ArrowClassic, End: ArrowClassic, Label: "WebSocket"},
	diagram.ConnWSS:                {Color: "#5e35b1", Dashed: true, Start: ArrowClassic, End: ArrowClassic, Label: "WebSocket (TLS)"},
	diagram.ConnRelationship:       {Color: "#424242"},
}

var _ = [1]struct{}{}[len(edgeStyles)-int(diagram.NumConnectionKinds)]

// ForConnection returns the base style of a connection kind.
func ForConnection(k diagram.ConnectionKind) EdgeStyle {
	if k < 0 || k >= diagram.NumConnectionKinds {
		return edgeStyles[diagram.ConnDefault]
	}
	return edgeStyles[k]
}

// ForEdge resolves the style of an edge. Relationship edges are labelled with
// their cardinality.
func ForEdge(e *diagram.Edge) EdgeStyle {
	k := e.Kind()
	st := ForConnection(k)
	if c := strings.TrimSpace(e.Data.CustomColor); c != "" {
		st.Color = c
	}
	if k == diagram.ConnRelationship {
		st.Label = Cardinality(e.Data.RelationshipType)
	}
	return st
}

// Cardinality formats a "start:end" code for display: "1:n" becomes "1:N".
func Cardinality(code string) string {
	code = strings.TrimSpace(code)
	if code == "" {
		return ""
	}
	parts := strings.Split(code, ":")
	for i, p := range parts {
		parts[i] = strings.ToUpper(strings.TrimSpace(p))
	}
	return strings.Join(parts, ":")
}

// EdgeLabel returns the display lines of an edge label: the author's text with
// any direction prefix stripped, or the kind's default label, wrapped at width.
// It returns nil when there is nothing to show.
func EdgeLabel(e *diagram.Edge, width int) []string {
	text := StripDirectionPrefix(e.DisplayLabel())
	if text == "" {
		text = ForEdge(e).Label
	}
	if text == "" {
		return nil
	}
	return WrapLabel(text, width)
}
