package drawio

import (
	"math"
	"strconv"
	"strings"

	"github.com/matzehuels/c4export/pkg/layout"
	"github.com/matzehuels/c4export/pkg/styles"
)

// styleBuilder accumulates a draw.io style string ("key=value;...").
type styleBuilder struct{ strings.Builder }

func newStyle(base string) *styleBuilder {
	b := &styleBuilder{}
	b.WriteString(base)
	return b
}

func (b *styleBuilder) set(key, value string) *styleBuilder {
	if value == "" {
		return b
	}
	b.WriteString(key)
	b.WriteByte('=')
	b.WriteString(value)
	b.WriteByte(';')
	return b
}

func (b *styleBuilder) num(key string, v float64) *styleBuilder {
	return b.set(key, num(v))
}

func (b *styleBuilder) palette(p styles.Palette) *styleBuilder {
	fill := p.Fill
	if fill == "" {
		fill = "none"
	}
	return b.set("fillColor", fill).set("strokeColor", p.Stroke).set("fontColor", p.Font)
}

// num formats v with at most four decimals.
func num(v float64) string {
	return strconv.FormatFloat(math.Round(v*1e4)/1e4, 'f', -1, 64)
}

var shapeBase = map[styles.Shape]string{
	styles.ShapeBox:      "rounded=1;whiteSpace=wrap;html=1;arcSize=10;",
	styles.ShapeCylinder: "shape=cylinder3;whiteSpace=wrap;html=1;boundedLbl=1;backgroundOutline=1;size=12;",
	styles.ShapeQueue:    "shape=process;whiteSpace=wrap;html=1;backgroundOutline=1;size=0.08;",
	styles.ShapeHexagon:  "shape=hexagon;perimeter=hexagonPerimeter2;whiteSpace=wrap;html=1;size=0.12;",
	styles.ShapeCloud:    "ellipse;shape=cloud;whiteSpace=wrap;html=1;",
	styles.ShapePerson:   "rounded=1;arcSize=35;whiteSpace=wrap;html=1;",
	styles.ShapeTable:    "rounded=0;whiteSpace=wrap;html=1;fontStyle=1;",
	styles.ShapeBoundary: "rounded=1;arcSize=2;whiteSpace=wrap;html=1;dashed=1;dashPattern=8 4;verticalAlign=top;align=left;spacingLeft=10;spacingTop=4;fontStyle=1;",
}

func nodeStyle(st styles.NodeStyle) string {
	return newStyle(shapeBase[st.Shape]).palette(st.Palette).String()
}

func tableFrameStyle(st styles.NodeStyle) string {
	return newStyle("rounded=0;html=1;fillColor=none;").set("strokeColor", st.Stroke).String()
}

func tableRowStyle(st styles.NodeStyle) string {
	return newStyle("text;html=1;align=left;verticalAlign=middle;spacingLeft=8;fillColor=#ffffff;fontColor=#333333;").
		set("strokeColor", st.Stroke).String()
}

func clientHeadStyle(st styles.NodeStyle) string {
	return newStyle("ellipse;html=1;aspect=fixed;connectable=0;").palette(st.Palette).String()
}

func arrows(b *styleBuilder, prefix string, a styles.Arrow) {
	b.set(prefix+"Arrow", a.Name())
	if a != styles.ArrowNone {
		fill := "0"
		if a.Filled() {
			fill = "1"
		}
		b.set(prefix+"Fill", fill)
	}
}

func edgeStyle(st styles.EdgeStyle, a layout.Assignment) string {
	b := newStyle("edgeStyle=orthogonalEdgeStyle;rounded=1;orthogonalLoop=1;jettySize=auto;html=1;strokeWidth=1.5;fontSize=11;labelBackgroundColor=#ffffff;")
	b.set("strokeColor", st.Color).set("fontColor", st.Color)
	if st.Dashed {
		b.set("dashed", "1")
	}
	arrows(b, "start", st.Start)
	arrows(b, "end", st.End)

	ex, ey := a.Exit.Point()
	nx, ny := a.Entry.Point()
	b.num("exitX", ex).num("exitY", ey).set("exitDx", "0").set("exitDy", "0")
	b.num("entryX", nx).num("entryY", ny).set("entryDx", "0").set("entryDy", "0")
	b.num("sourceJettySize", jetty(a.Exit.Rank))
	b.num("targetJettySize", jetty(a.Entry.Rank))
	return b.String()
}

// jetty is the straight stub length before a connector turns.
func jetty(rank int) float64 { return 20 + 10*float64(rank) }
