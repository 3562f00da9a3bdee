package drawio

import (
	"bytes"
	"strings"
	"testing"

	"github.com/matzehuels/c4export/pkg/diagram"
	"github.com/matzehuels/c4export/pkg/diagram/transform"
)

func TestEncodeDecode(t *testing.T) {
	a, _ := Assemble(transform.Page{Name: "One", Nodes: []diagram.Node{svc("x", 0, 0)}}, Options{})
	b, _ := Assemble(transform.Page{Name: "Two & more"}, Options{})
	f := NewFile([]Diagram{a, b}, "c4export test")

	var buf bytes.Buffer
	if err := Encode(&buf, f); err != nil {
		t.Fatalf("Encode: %v", err)
	}
	out := buf.String()
	if !strings.HasPrefix(out, "<?xml") {
		t.Error("missing XML declaration")
	}
	if !strings.Contains(out, `pages="2"`) || !strings.Contains(out, `name="Two &amp; more"`) {
		t.Errorf("unexpected document:\n%s", out)
	}

	back, err := Decode(&buf)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if back.Pages != 2 || len(back.Diagrams) != 2 {
		t.Fatalf("decoded %d pages (%d diagrams)", back.Pages, len(back.Diagrams))
	}
	if back.Diagrams[0].ID != "page-1" || back.Diagrams[1].ID != "page-2" {
		t.Errorf("page ids = %s, %s", back.Diagrams[0].ID, back.Diagrams[1].ID)
	}
	if back.Diagrams[0].Name != "One" {
		t.Errorf("page name = %q", back.Diagrams[0].Name)
	}
	if n := len(back.Diagrams[0].Model.Root.Cells); n != len(a.Model.Root.Cells) {
		t.Errorf("decoded %d cells, want %d", n, len(a.Model.Root.Cells))
	}
}

func TestNum(t *testing.T) {
	tests := map[float64]string{
		0:                 "0",
		0.5:               "0.5",
		0.2 + 0.6*1/3:     "0.4",
		1:                 "1",
		20:                "20",
		-0.30000000000001: "-0.3",
	}
	for in, want := range tests {
		if got := num(in); got != want {
			t.Errorf("num(%v) = %q, want %q", in, got, want)
		}
	}
}
