package diagram

import (
	"bytes"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

func node(id, parent string, x, y float64, typ string) Node {
	return Node{ID: id, ParentID: parent, Position: Position{X: x, Y: y}, Data: NodeData{Type: typ}}
}

func TestIndexAbsolutePosition(t *testing.T) {
	// Leaf to root local offsets (10,10), (20,20), (30,30).
	nodes := []Node{
		node("leaf", "mid", 10, 10, "service"),
		node("mid", "root", 20, 20, "business-domain"),
		node("root", "", 30, 30, "system"),
	}
	ix := NewIndex(nodes, nil)

	r, ok := ix.Rect("leaf")
	if !ok {
		t.Fatal("leaf not indexed")
	}
	if r.X != 60 || r.Y != 60 {
		t.Errorf("leaf absolute = (%v,%v), want (60,60)", r.X, r.Y)
	}
	if got := ix.Depth("leaf"); got != 2 {
		t.Errorf("Depth(leaf) = %d, want 2", got)
	}
	if got := ix.Depth("root"); got != 0 {
		t.Errorf("Depth(root) = %d, want 0", got)
	}
}

func TestIndexMissingParent(t *testing.T) {
	nodes := []Node{
		node("a", "gone", 5, 7, "service"),
	}
	ix := NewIndex(nodes, nil)
	r, _ := ix.Rect("a")
	if r.X != 5 || r.Y != 7 {
		t.Errorf("absolute = (%v,%v), want local (5,7)", r.X, r.Y)
	}
	if ix.Cyclic("a") {
		t.Error("missing parent must not be reported as a cycle")
	}
}

func TestIndexParentCycle(t *testing.T) {
	var buf bytes.Buffer
	logger := log.New(&buf)

	nodes := []Node{
		node("a", "b", 1, 2, "service"),
		node("b", "a", 10, 20, "system"),
		node("c", "", 3, 3, "service"),
	}
	ix := NewIndex(nodes, logger)

	for _, id := range []string{"a", "b"} {
		if !ix.Cyclic(id) {
			t.Errorf("Cyclic(%s) = false, want true", id)
		}
	}
	if ix.Cyclic("c") {
		t.Error("Cyclic(c) = true, want false")
	}
	r, _ := ix.Rect("a")
	if r.X != 1 || r.Y != 2 {
		t.Errorf("cyclic node absolute = (%v,%v), want local (1,2)", r.X, r.Y)
	}
	if !strings.Contains(buf.String(), "parent cycle") {
		t.Errorf("expected cycle warning, got %q", buf.String())
	}
}

func TestIndexSelfParent(t *testing.T) {
	ix := NewIndex([]Node{node("a", "a", 4, 4, "service")}, nil)
	if !ix.Cyclic("a") {
		t.Error("self-parent should be a cycle")
	}
	r, _ := ix.Rect("a")
	if r.X != 4 || r.Y != 4 {
		t.Errorf("absolute = (%v,%v), want (4,4)", r.X, r.Y)
	}
}

func TestIndexDuplicateIDs(t *testing.T) {
	ix := NewIndex([]Node{
		node("a", "", 1, 1, "service"),
		node("a", "", 9, 9, "service"),
	}, nil)
	if ix.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", ix.Len())
	}
	r, _ := ix.Rect("a")
	if r.X != 1 {
		t.Errorf("first occurrence should win, got x=%v", r.X)
	}
}

func TestNodeSize(t *testing.T) {
	tests := []struct {
		name  string
		node  Node
		wantW float64
		wantH float64
	}{
		{"service default", node("s", "", 0, 0, "service"), 180, 90},
		{"database default", node("d", "", 0, 0, "database"), 140, 90},
		{"boundary default", node("b", "", 0, 0, "system"), 480, 320},
		{"explicit", Node{Width: 300, Height: 40, Data: NodeData{Type: "service"}}, 300, 40},
		{"negative falls back", Node{Width: -1, Height: 0, Data: NodeData{Type: "queue"}}, 160, 70},
		{
			"table computed",
			Node{Height: 999, Data: NodeData{Type: "table", Columns: []Column{{Name: "id"}, {Name: "name"}, {Name: "email"}}}},
			220, TableHeaderHeight + 3*(TableRowHeight+TableRowGap),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, h := tt.node.Size()
			if w != tt.wantW || h != tt.wantH {
				t.Errorf("Size() = (%v,%v), want (%v,%v)", w, h, tt.wantW, tt.wantH)
			}
		})
	}
}

func TestRect(t *testing.T) {
	r := Rect{X: 10, Y: 20, W: 100, H: 50}
	if c := r.Center(); c.X != 60 || c.Y != 45 {
		t.Errorf("Center() = %+v, want (60,45)", c)
	}
	if r.Right() != 110 || r.Bottom() != 70 {
		t.Errorf("Right/Bottom = %v/%v, want 110/70", r.Right(), r.Bottom())
	}
}
