package basis

import (
	"errors"
	"sort"

	"netmeta/network"
)

// Sentinel errors for basis construction.
var (
	// ErrNilNetwork indicates New was called with a nil network.
	ErrNilNetwork = errors.New("basis: nil network")

	// ErrUnknownRoot indicates the requested root treatment is absent.
	ErrUnknownRoot = errors.New("basis: root treatment not in network")

	// ErrDisconnected indicates the comparison graph is not connected.
	ErrDisconnected = errors.New("basis: comparison graph is disconnected")
)

// Edge is one undirected comparison-graph edge in canonical (U < V) order.
type Edge struct {
	U, V network.Treatment
}

// NewEdge returns the canonical edge over a and b, ordering U < V.
func NewEdge(a, b network.Treatment) Edge {
	if b.Less(a) {
		a, b = b, a
	}
	return Edge{U: a, V: b}
}

// Graph is the undirected comparison graph induced by a network's studies.
// It is immutable after construction.
type Graph struct {
	treatments []network.Treatment
	adj        map[network.Treatment][]network.Treatment // sorted neighbor lists
	support    map[Edge]int                              // studies directly informing each edge
}

// NewGraph builds the comparison graph of n: an edge joins two treatments
// whenever some study includes both.
func NewGraph(n *network.Network) *Graph {
	g := &Graph{
		treatments: n.Treatments(),
		adj:        make(map[network.Treatment][]network.Treatment),
		support:    make(map[Edge]int),
	}

	// 1. Count edge support from every study's treatment pairs.
	for _, s := range n.Studies() {
		ts := s.Treatments()
		for i := 0; i < len(ts); i++ {
			for j := i + 1; j < len(ts); j++ {
				g.support[NewEdge(ts[i], ts[j])]++
			}
		}
	}

	// 2. Materialize sorted adjacency lists from the edge set.
	for e := range g.support {
		g.adj[e.U] = append(g.adj[e.U], e.V)
		g.adj[e.V] = append(g.adj[e.V], e.U)
	}
	for t := range g.adj {
		nbrs := g.adj[t]
		sort.Slice(nbrs, func(i, j int) bool { return nbrs[i] < nbrs[j] })
	}
	return g
}

// Treatments returns all vertices in ascending order. The slice is shared;
// callers must not mutate it.
func (g *Graph) Treatments() []network.Treatment { return g.treatments }

// Neighbors returns t's adjacent treatments in ascending order.
func (g *Graph) Neighbors(t network.Treatment) []network.Treatment { return g.adj[t] }

// HasEdge reports whether a and b are directly compared by some study.
func (g *Graph) HasEdge(a, b network.Treatment) bool {
	_, ok := g.support[NewEdge(a, b)]
	return ok
}

// Support returns the number of studies directly informing edge (a, b).
func (g *Graph) Support(a, b network.Treatment) int { return g.support[NewEdge(a, b)] }

// Edges returns every edge in ascending (U, V) order.
func (g *Graph) Edges() []Edge {
	out := make([]Edge, 0, len(g.support))
	for e := range g.support {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].U != out[j].U {
			return out[i].U < out[j].U
		}
		return out[i].V < out[j].V
	})
	return out
}
