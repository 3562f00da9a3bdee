package layout

import (
	"testing"

	"github.com/matzehuels/c4export/pkg/diagram"
)

func TestGroupPairs(t *testing.T) {
	edges := []diagram.Edge{
		link("e1", "a", "b"),
		link("e2", "b", "a"),
		link("e3", "a", "c"),
		link("e4", "a", "b"),
	}
	got := GroupPairs(edges)

	want := []PairSlot{
		{Rank: 0, Count: 3},
		{Rank: 1, Count: 3},
		{Rank: 0, Count: 1},
		{Rank: 2, Count: 3},
	}
	for i, w := range want {
		if got[i] != w {
			t.Errorf("GroupPairs()[%d] (%s) = %+v, want %+v", i, edges[i].ID, got[i], w)
		}
	}
	if got[2].Multi() || !got[0].Multi() {
		t.Error("Multi() mismatch")
	}
}

func TestGroupPairs_SharedEdgeIDs(t *testing.T) {
	got := GroupPairs([]diagram.Edge{link("e", "a", "b"), link("e", "a", "b")})
	if got[0] != (PairSlot{Rank: 0, Count: 2}) || got[1] != (PairSlot{Rank: 1, Count: 2}) {
		t.Errorf("GroupPairs() = %+v, want ranks 0 and 1 of 2", got)
	}
}
