package diagram

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/c4export/pkg/errors"
)

const sampleJSON = `{
  "workspaces": [{
    "name": "Payments",
    "nodes": [
      {"id": "api", "position": {"x": 100, "y": 80}, "width": 200,
       "data": {"type": "service", "label": "Payments API", "status": "new",
                "config": {"technology": "Go"}}},
      {"id": "users", "position": {"x": 10, "y": 20}, "parentId": "api",
       "data": {"type": "table", "columns": [{"id": "c1", "name": "id", "type": "uuid", "key": "PK"}]}}
    ],
    "edges": [
      {"id": "e1", "source": "api", "target": "users", "targetHandle": "c1-left", "hidden": false,
       "label": "reads", "data": {"connectionType": "database-connection", "customColor": "#ff0000"}}
    ]
  }]
}`

const sampleYAML = `
nodes:
  - id: api
    position: {x: 1, y: 2}
    data:
      type: apiGateway
      isGhost: true
edges:
  - id: e1
    source: api
    target: api
    data:
      relationshipType: "1:n"
`

func TestUnmarshalDocumentJSON(t *testing.T) {
	doc, err := UnmarshalDocument([]byte(sampleJSON), FormatJSON)
	if err != nil {
		t.Fatalf("UnmarshalDocument: %v", err)
	}
	pages := doc.Pages()
	if len(pages) != 1 || pages[0].Name != "Payments" {
		t.Fatalf("pages = %+v", pages)
	}
	p := pages[0]
	if len(p.Nodes) != 2 || len(p.Edges) != 1 {
		t.Fatalf("got %d nodes %d edges", len(p.Nodes), len(p.Edges))
	}
	api := p.Nodes[0]
	if api.Width != 200 || api.Kind() != KindService || api.Status() != StatusNew {
		t.Errorf("api decoded wrong: %+v", api)
	}
	if api.TechnologyLine() != "Go" {
		t.Errorf("TechnologyLine() = %q, want Go", api.TechnologyLine())
	}
	users := p.Nodes[1]
	if users.ParentID != "api" || len(users.Data.Columns) != 1 || users.Data.Columns[0].Key != "PK" {
		t.Errorf("users decoded wrong: %+v", users)
	}
	e := p.Edges[0]
	if e.TargetHandle != "c1-left" || e.Kind() != ConnDatabase || e.Data.CustomColor != "#ff0000" {
		t.Errorf("edge decoded wrong: %+v", e)
	}
}

func TestUnmarshalDocumentYAML(t *testing.T) {
	doc, err := UnmarshalDocument([]byte(sampleYAML), FormatYAML)
	if err != nil {
		t.Fatalf("UnmarshalDocument: %v", err)
	}
	pages := doc.Pages()
	if len(pages) != 1 || pages[0].Name != DefaultPageName {
		t.Fatalf("pages = %+v", pages)
	}
	n := pages[0].Nodes[0]
	if n.Kind() != KindAPIGateway || !n.IsGhost() || n.Position.Y != 2 {
		t.Errorf("node decoded wrong: %+v", n)
	}
	if pages[0].Edges[0].Kind() != ConnRelationship {
		t.Errorf("edge kind = %v, want relationship", pages[0].Edges[0].Kind())
	}
}

func TestUnmarshalDocumentErrors(t *testing.T) {
	tests := []struct {
		name   string
		data   string
		format Format
		code   errors.Code
	}{
		{"bad json", "{", FormatJSON, errors.ErrCodeInvalidDocument},
		{"bad yaml", "nodes: [", FormatYAML, errors.ErrCodeInvalidDocument},
		{"unknown format", "{}", Format("xml"), errors.ErrCodeInvalidFormat},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := UnmarshalDocument([]byte(tt.data), tt.format)
			if !errors.Is(err, tt.code) {
				t.Errorf("err = %v, want code %s", err, tt.code)
			}
		})
	}
}

func TestReadDocumentFile(t *testing.T) {
	dir := t.TempDir()

	jsonPath := filepath.Join(dir, "diagram.json")
	if err := os.WriteFile(jsonPath, []byte(sampleJSON), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := ReadDocumentFile(jsonPath); err != nil {
		t.Errorf("ReadDocumentFile(json): %v", err)
	}

	yamlPath := filepath.Join(dir, "diagram.yml")
	if err := os.WriteFile(yamlPath, []byte(sampleYAML), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := ReadDocumentFile(yamlPath); err != nil {
		t.Errorf("ReadDocumentFile(yaml): %v", err)
	}

	_, err := ReadDocumentFile(filepath.Join(dir, "missing.json"))
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("missing file err = %v, want FILE_NOT_FOUND", err)
	}

	_, err = ReadDocumentFile(filepath.Join(dir, "diagram.drawio"))
	if !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("bad extension err = %v, want INVALID_FORMAT", err)
	}
}

func TestReadDocument(t *testing.T) {
	doc, err := ReadDocument(strings.NewReader(sampleJSON), FormatJSON)
	if err != nil {
		t.Fatalf("ReadDocument: %v", err)
	}
	if len(doc.Workspaces) != 1 {
		t.Errorf("len(Workspaces) = %d, want 1", len(doc.Workspaces))
	}
}

func TestMarshalDocumentStable(t *testing.T) {
	doc, err := UnmarshalDocument([]byte(sampleJSON), FormatJSON)
	if err != nil {
		t.Fatal(err)
	}
	a, err := MarshalDocument(doc)
	if err != nil {
		t.Fatal(err)
	}
	b, _ := MarshalDocument(doc)
	if string(a) != string(b) {
		t.Error("MarshalDocument should be deterministic")
	}

	back, err := UnmarshalDocument(a, FormatJSON)
	if err != nil {
		t.Fatalf("re-decode: %v", err)
	}
	if back.Workspaces[0].Nodes[0].Data.Label != "Payments API" {
		t.Error("round trip lost node label")
	}
}
