package transform

import (
	"bytes"
	"reflect"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/c4export/pkg/diagram"
)

func nodes(ids ...string) []diagram.Node {
	out := make([]diagram.Node, len(ids))
	for i, id := range ids {
		out[i] = diagram.Node{ID: id, Data: diagram.NodeData{Type: "service"}}
	}
	return out
}

func edge(id, src, dst, conn, label string) diagram.Edge {
	return diagram.Edge{ID: id, Source: src, Target: dst, Label: label,
		Data: diagram.EdgeData{ConnectionType: conn}}
}

func ids(edges []diagram.Edge) []string {
	out := make([]string, len(edges))
	for i, e := range edges {
		out[i] = e.ID
	}
	return out
}

func TestFilterGhosts(t *testing.T) {
	in := nodes("a", "b", "c")
	in[1].Data.IsGhost = true

	got := FilterGhosts(in)
	if len(got) != 2 || got[0].ID != "a" || got[1].ID != "c" {
		t.Errorf("FilterGhosts() = %v, want [a c]", got)
	}
	if !in[1].IsGhost() {
		t.Error("FilterGhosts should not modify its input")
	}
}

func TestDedupe(t *testing.T) {
	tests := []struct {
		name        string
		edges       []diagram.Edge
		wantIDs     []string
		wantRemoved int
	}{
		{
			name:        "empty",
			edges:       nil,
			wantIDs:     []string{},
			wantRemoved: 0,
		},
		{
			name: "duplicate collapses last write wins",
			edges: []diagram.Edge{
				edge("e1", "a", "b", "rest", ""),
				edge("e2", "a", "b", "rest", ""),
				edge("e3", "a", "b", "grpc", ""),
			},
			wantIDs:     []string{"e2", "e3"},
			wantRemoved: 1,
		},
		{
			name: "winner keeps first position",
			edges: []diagram.Edge{
				edge("e1", "a", "b", "rest", ""),
				edge("e2", "b", "c", "rest", ""),
				edge("e3", "a", "b", "rest", ""),
			},
			wantIDs:     []string{"e3", "e2"},
			wantRemoved: 1,
		},
		{
			name: "labels distinguish edges",
			edges: []diagram.Edge{
				edge("e1", "a", "b", "rest", "orders"),
				edge("e2", "a", "b", "rest", "invoices"),
			},
			wantIDs:     []string{"e1", "e2"},
			wantRemoved: 0,
		},
		{
			name: "direction distinguishes edges",
			edges: []diagram.Edge{
				edge("e1", "a", "b", "rest", ""),
				edge("e2", "b", "a", "rest", ""),
			},
			wantIDs:     []string{"e1", "e2"},
			wantRemoved: 0,
		},
		{
			name: "self loop and orphan dropped",
			edges: []diagram.Edge{
				edge("loop", "a", "a", "rest", ""),
				edge("orphan", "a", "ghost", "rest", ""),
				edge("ok", "a", "c", "rest", ""),
			},
			wantIDs:     []string{"ok"},
			wantRemoved: 2,
		},
		{
			name: "hidden dropped",
			edges: []diagram.Edge{
				{ID: "h", Source: "a", Target: "b", Hidden: true},
				edge("v", "a", "b", "", ""),
			},
			wantIDs:     []string{"v"},
			wantRemoved: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, removed := Dedupe(tt.edges, nodes("a", "b", "c"), nil)
			if !reflect.DeepEqual(ids(got), tt.wantIDs) {
				t.Errorf("Dedupe() ids = %v, want %v", ids(got), tt.wantIDs)
			}
			if removed != tt.wantRemoved {
				t.Errorf("Dedupe() removed = %d, want %d", removed, tt.wantRemoved)
			}
		})
	}
}

func TestDedupe_DataDescriptionIsLabel(t *testing.T) {
	a := edge("e1", "a", "b", "rest", "")
	a.Data.DataDescription = "orders"
	b := edge("e2", "a", "b", "rest", "orders")

	got, removed := Dedupe([]diagram.Edge{a, b}, nodes("a", "b"), nil)
	if len(got) != 1 || removed != 1 || got[0].ID != "e2" {
		t.Errorf("Dedupe() = %v removed %d, want [e2] removed 1", ids(got), removed)
	}
}

func TestDedupe_RelationshipCardinality(t *testing.T) {
	one := diagram.Edge{ID: "r1", Source: "a", Target: "b", Data: diagram.EdgeData{RelationshipType: "1:1"}}
	many := diagram.Edge{ID: "r2", Source: "a", Target: "b", Data: diagram.EdgeData{RelationshipType: "1:n"}}

	got, _ := Dedupe([]diagram.Edge{one, many}, nodes("a", "b"), nil)
	if len(got) != 2 {
		t.Errorf("different cardinalities should not collapse, got %v", ids(got))
	}
}

func TestDedupe_Idempotent(t *testing.T) {
	in := []diagram.Edge{
		edge("e1", "a", "b", "rest", ""),
		edge("e2", "a", "b", "rest", ""),
		edge("e3", "b", "c", "async", "events"),
		edge("e4", "c", "c", "", ""),
		edge("e5", "c", "x", "", ""),
		edge("e6", "b", "c", "async", "events"),
	}
	ns := nodes("a", "b", "c")

	once, _ := Dedupe(in, ns, nil)
	twice, removed := Dedupe(once, ns, nil)
	if removed != 0 {
		t.Errorf("second pass removed %d edges, want 0", removed)
	}
	if !reflect.DeepEqual(once, twice) {
		t.Errorf("second pass changed output: %v -> %v", ids(once), ids(twice))
	}
}

func TestDedupe_NoDanglingOrLoops(t *testing.T) {
	in := []diagram.Edge{
		edge("e1", "a", "b", "", ""),
		edge("e2", "b", "b", "", ""),
		edge("e3", "z", "a", "", ""),
		edge("e4", "c", "a", "", ""),
	}
	ns := nodes("a", "b", "c")
	known := map[string]bool{"a": true, "b": true, "c": true}

	got, _ := Dedupe(in, ns, nil)
	for _, e := range got {
		if e.Source == e.Target {
			t.Errorf("self loop %s survived", e.ID)
		}
		if !known[e.Source] || !known[e.Target] {
			t.Errorf("dangling edge %s survived", e.ID)
		}
	}
}

func TestDedupe_LogsOrphans(t *testing.T) {
	var buf bytes.Buffer
	logger := log.New(&buf)
	logger.SetLevel(log.DebugLevel)

	Dedupe([]diagram.Edge{edge("lost", "a", "gone", "", "")}, nodes("a"), logger)
	if !strings.Contains(buf.String(), "orphan") || !strings.Contains(buf.String(), "lost") {
		t.Errorf("expected orphan debug log, got %q", buf.String())
	}
}

func TestPrepare_GhostEndpointsBecomeOrphans(t *testing.T) {
	ws := diagram.Workspace{
		Name:  "Main",
		Nodes: nodes("a", "b", "c"),
		Edges: []diagram.Edge{
			edge("e1", "a", "b", "", ""),
			edge("e2", "a", "c", "", ""),
		},
	}
	ws.Nodes[2].Data.IsGhost = true

	p := Prepare(ws, nil)
	if p.Name != "Main" || len(p.Nodes) != 2 {
		t.Errorf("Prepare() page = %+v", p)
	}
	if len(p.Edges) != 1 || p.Edges[0].ID != "e1" || p.Removed != 1 {
		t.Errorf("Prepare() edges = %v removed %d, want [e1] removed 1", ids(p.Edges), p.Removed)
	}
}

func TestPrepare_GhostAncestorsKeepGeometry(t *testing.T) {
	ws := diagram.Workspace{Nodes: []diagram.Node{
		{ID: "sys", Position: diagram.Position{X: 400, Y: 300}, Data: diagram.NodeData{Type: "system", IsGhost: true}},
		{ID: "svc", ParentID: "sys", Position: diagram.Position{X: 10, Y: 10}, Data: diagram.NodeData{Type: "service"}},
	}}

	p := Prepare(ws, nil)
	if len(p.Nodes) != 1 || len(p.Geometry) != 2 {
		t.Fatalf("Prepare() nodes = %d, geometry = %d, want 1 and 2", len(p.Nodes), len(p.Geometry))
	}
	r, ok := p.Index(nil).Rect("svc")
	if !ok || r.X != 410 || r.Y != 310 {
		t.Errorf("svc rect = %+v, want origin (410, 310)", r)
	}
}
