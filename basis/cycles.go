package basis

import (
	"sort"

	"netmeta/network"
)

// Cycle is a fundamental cycle stored as a canonical closed walk:
// c[0] == c[len-1], at least three edges, lexicographically minimal over all
// rotations of the walk and of its reversal.
type Cycle []network.Treatment

// Signature returns the comma-joined walk, the cycle's identity key.
func (c Cycle) Signature() string { return joinSig(c) }

// String implements fmt.Stringer.
func (c Cycle) String() string { return c.Signature() }

// Len returns the number of edges in the cycle.
func (c Cycle) Len() int { return len(c) - 1 }

// Direction reports how the consecutive pair (from, to) appears in the
// cycle walk: +1 if the walk traverses from→to, -1 for to→from, 0 when the
// pair is not an edge of the cycle.
func (c Cycle) Direction(from, to network.Treatment) int {
	for i := 0; i+1 < len(c); i++ {
		if c[i] == from && c[i+1] == to {
			return 1
		}
		if c[i] == to && c[i+1] == from {
			return -1
		}
	}
	return 0
}

// canonicalCycle closes and canonicalizes an open walk w (w[0] and
// w[len-1] are the cycle's non-tree edge endpoints): the lexicographically
// smaller of the minimal rotations of the walk and of its reversal, closed
// by repeating the first element.
func canonicalCycle(w []network.Treatment) Cycle {
	rotF := minimalRotation(w)
	rotB := minimalRotation(reverseWalk(w))
	pick := rotF
	if compareWalks(rotB, rotF) < 0 {
		pick = rotB
	}
	closed := append(append([]network.Treatment(nil), pick...), pick[0])
	return Cycle(closed)
}

// Basis is the fundamental graph basis of one network: the comparison
// graph, one deterministic spanning tree, and one fundamental cycle per
// non-tree edge. Immutable after New.
type Basis struct {
	graph   *Graph
	tree    *Tree
	nonTree []Edge // ascending (U, V) order
	cycles  map[Edge]Cycle
}

// New builds the basis of n with the spanning tree rooted at root.
// The same network and root always produce the identical basis.
func New(n *network.Network, root network.Treatment) (*Basis, error) {
	if n == nil {
		return nil, ErrNilNetwork
	}
	g := NewGraph(n)
	tree, err := spanningTree(g, root)
	if err != nil {
		return nil, err
	}

	b := &Basis{graph: g, tree: tree, cycles: make(map[Edge]Cycle)}

	// Classify edges: every edge outside the tree closes one fundamental
	// cycle, the tree path between its endpoints plus the edge itself.
	for _, e := range g.Edges() {
		if tree.Contains(e.U, e.V) {
			continue
		}
		b.nonTree = append(b.nonTree, e)
		b.cycles[e] = canonicalCycle(tree.Path(e.U, e.V))
	}
	sort.Slice(b.nonTree, func(i, j int) bool {
		if b.nonTree[i].U != b.nonTree[j].U {
			return b.nonTree[i].U < b.nonTree[j].U
		}
		return b.nonTree[i].V < b.nonTree[j].V
	})
	return b, nil
}

// Graph returns the underlying comparison graph.
func (b *Basis) Graph() *Graph { return b.graph }

// Tree returns the spanning tree.
func (b *Basis) Tree() *Tree { return b.tree }

// NonTreeEdges returns the cycle-inducing edges in ascending (U, V) order.
func (b *Basis) NonTreeEdges() []Edge {
	out := make([]Edge, len(b.nonTree))
	copy(out, b.nonTree)
	return out
}

// Cycle returns the fundamental cycle closed by non-tree edge e.
func (b *Basis) Cycle(e Edge) (Cycle, bool) {
	c, ok := b.cycles[e]
	return c, ok
}

// Cycles returns all fundamental cycles in non-tree edge order.
func (b *Basis) Cycles() []Cycle {
	out := make([]Cycle, 0, len(b.nonTree))
	for _, e := range b.nonTree {
		out = append(out, b.cycles[e])
	}
	return out
}
