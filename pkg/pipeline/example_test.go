package pipeline_test

import (
	"fmt"
	"time"

	"github.com/matzehuels/c4export/pkg/diagram"
	"github.com/matzehuels/c4export/pkg/pipeline"
)

func ExampleSummarize() {
	doc := diagram.Document{
		Nodes: []diagram.Node{
			{ID: "web", Data: diagram.NodeData{Type: "client"}},
			{ID: "api", Position: diagram.Position{X: 300}, Data: diagram.NodeData{Type: "service"}},
		},
		Edges: []diagram.Edge{
			{ID: "e1", Source: "web", Target: "api", Data: diagram.EdgeData{ConnectionType: "rest"}},
			{ID: "e2", Source: "web", Target: "api", Data: diagram.EdgeData{ConnectionType: "rest"}},
			{ID: "e3", Source: "web", Target: "ghost"},
		},
	}
	s := pipeline.Summarize(doc, nil)
	fmt.Printf("%d page(s), %d edge(s) retained, %d removed\n", s.PageCount(), s.Edges, s.Removed)
	// Output: 1 page(s), 1 edge(s) retained, 2 removed
}

func ExampleOptions_Filename() {
	opts := pipeline.Options{FilePrefix: "payments"}
	fmt.Println(opts.Filename(time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)))
	// Output: payments-2024-05-01.drawio
}
