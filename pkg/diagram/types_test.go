package diagram

import "testing"

func TestDocumentPages(t *testing.T) {
	t.Run("implicit page", func(t *testing.T) {
		doc := Document{
			Nodes: []Node{{ID: "a"}},
			Edges: []Edge{{ID: "e", Source: "a", Target: "a"}},
		}
		pages := doc.Pages()
		if len(pages) != 1 {
			t.Fatalf("len(pages) = %d, want 1", len(pages))
		}
		if pages[0].Name != DefaultPageName {
			t.Errorf("Name = %q, want %q", pages[0].Name, DefaultPageName)
		}
		if len(pages[0].Nodes) != 1 || len(pages[0].Edges) != 1 {
			t.Errorf("page content not carried over: %+v", pages[0])
		}
	})

	t.Run("workspaces win over top-level", func(t *testing.T) {
		doc := Document{
			Nodes:      []Node{{ID: "ignored"}},
			Workspaces: []Workspace{{Name: "One"}, {Name: "  "}},
		}
		pages := doc.Pages()
		if len(pages) != 2 {
			t.Fatalf("len(pages) = %d, want 2", len(pages))
		}
		if pages[0].Name != "One" || pages[1].Name != "Page 2" {
			t.Errorf("names = %q, %q", pages[0].Name, pages[1].Name)
		}
		if doc.Workspaces[1].Name != "  " {
			t.Error("Pages must not mutate the document")
		}
	})
}

func TestNodeLabels(t *testing.T) {
	n := Node{ID: "svc-1", Data: NodeData{
		Vendor:     "AWS",
		Technology: "Go",
		Config:     map[string]any{"technology": "go", "vendor": "Amazon"},
	}}
	if got := n.DisplayLabel(); got != "svc-1" {
		t.Errorf("DisplayLabel() = %q, want svc-1", got)
	}
	if got := n.TechnologyLine(); got != "AWS / Amazon / Go" {
		t.Errorf("TechnologyLine() = %q, want %q", got, "AWS / Amazon / Go")
	}

	n.Data.Label = " Orders "
	if got := n.DisplayLabel(); got != "Orders" {
		t.Errorf("DisplayLabel() = %q, want Orders", got)
	}
}

func TestResolveColumn(t *testing.T) {
	table := Node{ID: "users", Data: NodeData{Type: "table", Columns: []Column{
		{ID: "c1", Name: "id", Key: "PK"},
		{ID: "c2", Name: "email"},
	}}}

	tests := []struct {
		handle   string
		wantOK   bool
		wantIdx  int
		wantSide Side
	}{
		{"c1", true, 0, SideNone},
		{"email", true, 1, SideNone},
		{"c2-left", true, 1, SideLeft},
		{"id-right", true, 0, SideRight},
		{"email-source", true, 1, SideNone},
		{"missing", false, 0, SideNone},
		{"missing-left", false, 0, SideNone},
		{"", false, 0, SideNone},
	}

	for _, tt := range tests {
		t.Run(tt.handle, func(t *testing.T) {
			got, ok := table.ResolveColumn(tt.handle)
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if ok && (got.Index != tt.wantIdx || got.Side != tt.wantSide) {
				t.Errorf("ResolveColumn(%q) = %+v, want index %d side %v", tt.handle, got, tt.wantIdx, tt.wantSide)
			}
		})
	}

	svc := Node{ID: "svc", Data: NodeData{Type: "service", Columns: table.Data.Columns}}
	if _, ok := svc.ResolveColumn("c1"); ok {
		t.Error("non-table nodes never resolve columns")
	}
}

func TestEdgeAccessors(t *testing.T) {
	e := Edge{ID: "e", Source: "a", Target: "b", SourceHandle: "h1", TargetHandle: "h2",
		Data: EdgeData{DataDescription: "orders", Description: "free text"}}

	if got := e.KeyLabel(); got != "orders" {
		t.Errorf("KeyLabel() = %q, want orders", got)
	}
	e.Label = "explicit"
	if got := e.KeyLabel(); got != "explicit" {
		t.Errorf("KeyLabel() = %q, want explicit", got)
	}
	if got := e.HandleFor("a"); got != "h1" {
		t.Errorf("HandleFor(a) = %q", got)
	}
	if got := e.HandleFor("b"); got != "h2" {
		t.Errorf("HandleFor(b) = %q", got)
	}
	if got := e.Other("a"); got != "b" {
		t.Errorf("Other(a) = %q", got)
	}

	desc := Edge{Data: EdgeData{Description: "free text"}}
	if got := desc.DisplayLabel(); got != "free text" {
		t.Errorf("DisplayLabel() = %q, want free text", got)
	}
}

func TestEdgeKind(t *testing.T) {
	tests := []struct {
		name    string
		data    EdgeData
		want    ConnectionKind
		wantKey string
	}{
		{"rest", EdgeData{ConnectionType: "rest"}, ConnREST, "rest"},
		{"unset", EdgeData{}, ConnDefault, "default"},
		{"cardinality only", EdgeData{RelationshipType: "1:N"}, ConnRelationship, "relationship:1:n"},
		{"explicit type wins", EdgeData{ConnectionType: "grpc", RelationshipType: "1:1"}, ConnGRPC, "grpc"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := Edge{Data: tt.data}
			if got := e.Kind(); got != tt.want {
				t.Errorf("Kind() = %v, want %v", got, tt.want)
			}
			if got := e.TypeKey(); got != tt.wantKey {
				t.Errorf("TypeKey() = %q, want %q", got, tt.wantKey)
			}
		})
	}
}
