package styles

import (
	"testing"

	"github.com/matzehuels/c4export/pkg/diagram"
)

func TestForKind_Exhaustive(t *testing.T) {
	for k := diagram.ComponentKind(0); k < diagram.NumComponentKinds; k++ {
		st := ForKind(k)
		if st.Stroke == "" {
			t.Errorf("%s has no stroke color", k)
		}
		if (st.Shape == ShapeBoundary) != k.IsBoundary() {
			t.Errorf("%s shape = %s, boundary = %v", k, st.Shape, k.IsBoundary())
		}
	}
	if ForKind(diagram.NumComponentKinds+3) != ForKind(diagram.KindComponent) {
		t.Error("out-of-range kind should fall back to component")
	}
}

func TestForKind_Shapes(t *testing.T) {
	tests := []struct {
		kind diagram.ComponentKind
		want Shape
	}{
		{diagram.KindClient, ShapePerson},
		{diagram.KindDatabase, ShapeCylinder},
		{diagram.KindTable, ShapeTable},
		{diagram.KindQueue, ShapeQueue},
		{diagram.KindService, ShapeBox},
		{diagram.KindVPC, ShapeBoundary},
	}
	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			if got := ForKind(tt.kind).Shape; got != tt.want {
				t.Errorf("shape = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestForNode(t *testing.T) {
	tests := []struct {
		name string
		data diagram.NodeData
		want Palette
	}{
		{
			name: "base",
			data: diagram.NodeData{Type: "service"},
			want: paletteService,
		},
		{
			name: "status new",
			data: diagram.NodeData{Type: "service", Status: "new"},
			want: PaletteNew,
		},
		{
			name: "status beats custom color",
			data: diagram.NodeData{Type: "database", Status: "existing", CustomColor: "#abcdef"},
			want: PaletteExisting,
		},
		{
			name: "refinement uses dark text",
			data: diagram.NodeData{Type: "queue", Status: "refinement"},
			want: Palette{Fill: "#ffe082", Stroke: "#ffb300", Font: "#333333"},
		},
		{
			name: "custom color replaces fill only",
			data: diagram.NodeData{Type: "service", CustomColor: "#abcdef"},
			want: Palette{Fill: "#abcdef", Stroke: paletteService.Stroke, Font: paletteService.Font},
		},
		{
			name: "unknown type falls back",
			data: diagram.NodeData{Type: "mainframe"},
			want: paletteNeutral,
		},
		{
			name: "boundary status recolors stroke",
			data: diagram.NodeData{Type: "system", Status: "new"},
			want: Palette{Stroke: PaletteNew.Stroke, Font: PaletteNew.Stroke},
		},
		{
			name: "boundary custom color recolors stroke",
			data: diagram.NodeData{Type: "subnet", CustomColor: "#123456"},
			want: Palette{Stroke: "#123456", Font: "#123456"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := diagram.Node{ID: "n", Data: tt.data}
			if got := ForNode(&n).Palette; got != tt.want {
				t.Errorf("ForNode() palette = %+v, want %+v", got, tt.want)
			}
		})
	}
}
