package layout

import "github.com/matzehuels/c4export/pkg/diagram"

// PairSlot locates an edge among all edges joining the same two nodes,
// regardless of direction.
type PairSlot struct {
	Rank  int
	Count int
}

// Multi reports whether the pair holds more than one edge.
func (s PairSlot) Multi() bool { return s.Count > 1 }

type pair struct{ a, b string }

func pairOf(e diagram.Edge) pair {
	if e.Source < e.Target {
		return pair{e.Source, e.Target}
	}
	return pair{e.Target, e.Source}
}

// GroupPairs ranks edges within their unordered node pair, in input order.
// The result is indexed like edges.
func GroupPairs(edges []diagram.Edge) []PairSlot {
	groups := make(map[pair][]int)
	for i, e := range edges {
		p := pairOf(e)
		groups[p] = append(groups[p], i)
	}
	out := make([]PairSlot, len(edges))
	for _, members := range groups {
		for rank, i := range members {
			out[i] = PairSlot{Rank: rank, Count: len(members)}
		}
	}
	return out
}
