package styles

import (
	"strings"

	"github.com/matzehuels/c4export/pkg/diagram"
)

// Shape is the drawing primitive family of a node.
type Shape int

const (
	ShapeBox Shape = iota
	ShapeCylinder
	ShapeQueue
	ShapeHexagon
	ShapeCloud
	ShapePerson
	ShapeTable
	ShapeBoundary
)

func (s Shape) String() string {
	switch s {
	case ShapeCylinder:
		return "cylinder"
	case ShapeQueue:
		return "queue"
	case ShapeHexagon:
		return "hexagon"
	case ShapeCloud:
		return "cloud"
	case ShapePerson:
		return "person"
	case ShapeTable:
		return "table"
	case ShapeBoundary:
		return "boundary"
	}
	return "box"
}

// Palette is a fill/stroke/font color triple. An empty Fill means transparent.
type Palette struct {
	Fill   string
	Stroke string
	Font   string
}

// NodeStyle is the resolved look of a node.
type NodeStyle struct {
	Shape Shape
	Palette
}

// Status palettes.
var (
	PaletteNew        = Palette{Fill: "#2e7d32", Stroke: "#1b5e20", Font: "#ffffff"}
	PaletteExisting   = Palette{Fill: "#1565c0", Stroke: "#0d47a1", Font: "#ffffff"}
	PaletteRefinement = Palette{Fill: "#ffe082", Stroke: "#ffb300", Font: "#333333"}
)

var (
	paletteNeutral  = Palette{Fill: "#f5f5f5", Stroke: "#666666", Font: "#333333"}
	palettePerson   = Palette{Fill: "#08427b", Stroke: "#073b6f", Font: "#ffffff"}
	paletteFrontend = Palette{Fill: "#dae8fc", Stroke: "#6c8ebf", Font: "#333333"}
	paletteService  = Palette{Fill: "#d5e8d4", Stroke: "#82b366", Font: "#333333"}
	paletteCompute  = Palette{Fill: "#fff2cc", Stroke: "#d6b656", Font: "#333333"}
	paletteEdge     = Palette{Fill: "#e1d5e7", Stroke: "#9673a6", Font: "#333333"}
	paletteData     = Palette{Fill: "#f8cecc", Stroke: "#b85450", Font: "#333333"}
	paletteMessage  = Palette{Fill: "#ffe6cc", Stroke: "#d79b00", Font: "#333333"}
	paletteExternal = Palette{Fill: "#999999", Stroke: "#8a8a8a", Font: "#ffffff"}
)

func boundary(stroke string) NodeStyle {
	return NodeStyle{Shape: ShapeBoundary, Palette: Palette{Stroke: stroke, Font: stroke}}
}

var nodeStyles = [...]NodeStyle{
	diagram.KindComponent:        {ShapeBox, paletteNeutral},
	diagram.KindClient:           {ShapePerson, palettePerson},
	diagram.KindFrontend:         {ShapeBox, paletteFrontend},
	diagram.KindMobileApp:        {ShapeBox, paletteFrontend},
	diagram.KindService:          {ShapeBox, paletteService},
	diagram.KindWorker:           {ShapeBox, paletteService},
	diagram.KindServerless:       {ShapeBox, paletteCompute},
	diagram.KindAPIGateway:       {ShapeHexagon, paletteEdge},
	diagram.KindLoadBalancer:     {ShapeHexagon, paletteEdge},
	diagram.KindProxy:            {ShapeBox, paletteEdge},
	diagram.KindCDN:              {ShapeCloud, paletteEdge},
	diagram.KindDatabase:         {ShapeCylinder, paletteData},
	diagram.KindDataWarehouse:    {ShapeCylinder, paletteData},
	diagram.KindTable:            {ShapeTable, paletteData},
	diagram.KindCache:            {ShapeCylinder, paletteMessage},
	diagram.KindSearchEngine:     {ShapeBox, paletteCompute},
	diagram.KindObjectStorage:    {ShapeCylinder, paletteData},
	diagram.KindMessageBroker:    {ShapeQueue, paletteMessage},
	diagram.KindQueue:            {ShapeQueue, paletteMessage},
	diagram.KindEventStream:      {ShapeQueue, paletteMessage},
	diagram.KindIdentityProvider: {ShapeBox, paletteEdge},
	diagram.KindMonitoring:       {ShapeBox, paletteNeutral},
	diagram.KindExternalService:  {ShapeCloud, paletteExternal},
	diagram.KindSystem:           boundary("#1168bd"),
	diagram.KindExternalSystem:   boundary("#8a8a8a"),
	diagram.KindBusinessDomain:   boundary("#6c8ebf"),
	diagram.KindVPC:              boundary("#ff9900"),
	diagram.KindSubnet:           boundary("#248814"),
}

var _ = [1]struct{}{}[len(nodeStyles)-int(diagram.NumComponentKinds)]

// ForKind returns the base style of a kind.
func ForKind(k diagram.ComponentKind) NodeStyle {
	if k < 0 || k >= diagram.NumComponentKinds {
		return nodeStyles[diagram.KindComponent]
	}
	return nodeStyles[k]
}

// ForStatus returns the palette of a lifecycle status. ok is false for
// [diagram.StatusDefault].
func ForStatus(s diagram.Status) (Palette, bool) {
	switch s {
	case diagram.StatusNew:
		return PaletteNew, true
	case diagram.StatusExisting:
		return PaletteExisting, true
	case diagram.StatusRefinement:
		return PaletteRefinement, true
	}
	return Palette{}, false
}

// ForNode resolves the style of a node. Status overrides the whole palette;
// otherwise a custom color replaces the base fill. Boundaries keep their
// transparent fill and take a status or custom color as their stroke.
func ForNode(n *diagram.Node) NodeStyle {
	st := ForKind(n.Kind())
	custom := strings.TrimSpace(n.Data.CustomColor)

	if p, ok := ForStatus(n.Status()); ok {
		if st.Shape == ShapeBoundary {
			st.Stroke, st.Font = p.Stroke, p.Stroke
			return st
		}
		st.Palette = p
		return st
	}
	if custom != "" {
		if st.Shape == ShapeBoundary {
			st.Stroke, st.Font = custom, custom
		} else {
			st.Fill = custom
		}
	}
	return st
}
