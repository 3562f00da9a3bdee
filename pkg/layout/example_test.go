package layout_test

import (
	"fmt"

	"github.com/matzehuels/c4export/pkg/diagram"
	"github.com/matzehuels/c4export/pkg/layout"
)

func ExampleAllocate() {
	nodes := []diagram.Node{
		{ID: "gateway", Position: diagram.Position{X: 200, Y: 0}},
		{ID: "orders", Position: diagram.Position{X: 0, Y: 300}},
		{ID: "billing", Position: diagram.Position{X: 400, Y: 300}},
	}
	edges := []diagram.Edge{
		{ID: "to-billing", Source: "gateway", Target: "billing"},
		{ID: "to-orders", Source: "gateway", Target: "orders"},
	}

	ports := layout.Allocate(edges, diagram.NewIndex(nodes, nil))
	for i, e := range edges {
		p := ports[i].Exit
		fmt.Printf("%s: %s %.1f\n", e.ID, p.Side, p.Offset)
	}
	// Output:
	// to-billing: bottom 0.8
	// to-orders: bottom 0.2
}
