package drawio

import "github.com/matzehuels/c4export/pkg/styles"

const (
	legendWidth  = 200.0
	legendHeight = 116.0
	legendRow    = 26.0
)

var legendEntries = []struct {
	id, label string
	palette   styles.Palette
}{
	{"new", "New", styles.PaletteNew},
	{"existing", "Existing", styles.PaletteExisting},
	{"refinement", "Refinement", styles.PaletteRefinement},
}

// legendOrigin returns the legend's top-left corner: below the lowest regular
// node, aligned with the leftmost one. Boundaries are only used when the page
// has no regular nodes.
func (a *assembler) legendOrigin() (x, y float64) {
	var regular, all []string
	for _, id := range a.visible {
		all = append(all, id)
		if n, _ := a.ix.Node(id); !n.Kind().IsBoundary() {
			regular = append(regular, id)
		}
	}
	ids := regular
	if len(ids) == 0 {
		ids = all
	}
	if len(ids) == 0 {
		return 0, a.opts.LegendGap
	}

	first, _ := a.ix.Rect(ids[0])
	minX, maxBottom := first.X, first.Bottom()
	for _, id := range ids[1:] {
		r, _ := a.ix.Rect(id)
		minX = min(minX, r.X)
		maxBottom = max(maxBottom, r.Bottom())
	}
	return minX, maxBottom + a.opts.LegendGap
}

func (a *assembler) legend() {
	x, y := a.legendOrigin()
	a.add(vertex("legend", "<b>Legend</b>",
		"rounded=1;arcSize=4;whiteSpace=wrap;html=1;verticalAlign=top;align=left;spacingLeft=10;spacingTop=4;fillColor=#ffffff;strokeColor=#999999;fontColor=#333333;",
		x, y, legendWidth, legendHeight))

	for i, e := range legendEntries {
		rowY := y + 30 + float64(i)*legendRow
		swatch := newStyle("rounded=1;html=1;").palette(e.palette).String()
		a.add(vertex("legend-"+e.id, "", swatch, x+12, rowY+4, 24, 14))
		a.add(vertex("legend-"+e.id+"-label", e.label,
			"text;html=1;align=left;verticalAlign=middle;fontColor=#333333;",
			x+44, rowY, legendWidth-56, 22))
	}
}
