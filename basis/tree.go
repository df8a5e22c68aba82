package basis

import (
	"sort"

	"netmeta/network"
)

// TreeEdge is one spanning-tree edge oriented away from the root.
type TreeEdge struct {
	Parent, Child network.Treatment
}

// Tree is a rooted spanning tree of the comparison graph.
type Tree struct {
	root   network.Treatment
	parent map[network.Treatment]network.Treatment // child → parent; root absent
	depth  map[network.Treatment]int
	order  []network.Treatment // BFS discovery order, root first
}

// spanningTree grows a breadth-first spanning tree of g from root.
//
// Neighbor exploration order is the deterministic rule fixed for the whole
// toolkit: at each dequeued vertex, unvisited neighbors are taken by
// descending edge support (well-informed comparisons become tree edges
// first), ties broken by ascending treatment order.
//
// Returns ErrUnknownRoot if root is not a vertex, ErrDisconnected if the
// tree cannot reach every treatment.
func spanningTree(g *Graph, root network.Treatment) (*Tree, error) {
	if _, ok := g.adj[root]; !ok {
		// A root may legitimately be an isolated vertex only in a
		// single-treatment graph, which a valid network never produces.
		found := false
		for _, t := range g.treatments {
			if t == root {
				found = true
				break
			}
		}
		if !found {
			return nil, ErrUnknownRoot
		}
	}

	t := &Tree{
		root:   root,
		parent: make(map[network.Treatment]network.Treatment, len(g.treatments)),
		depth:  map[network.Treatment]int{root: 0},
		order:  make([]network.Treatment, 0, len(g.treatments)),
	}

	// Standard BFS loop with the deterministic frontier ordering.
	queue := []network.Treatment{root}
	visited := map[network.Treatment]bool{root: true}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		t.order = append(t.order, cur)

		// Collect unvisited neighbors, then order them by the fixed rule.
		var next []network.Treatment
		for _, nbr := range g.Neighbors(cur) {
			if !visited[nbr] {
				next = append(next, nbr)
			}
		}
		sort.Slice(next, func(i, j int) bool {
			si, sj := g.Support(cur, next[i]), g.Support(cur, next[j])
			if si != sj {
				return si > sj
			}
			return next[i] < next[j]
		})

		for _, nbr := range next {
			visited[nbr] = true
			t.parent[nbr] = cur
			t.depth[nbr] = t.depth[cur] + 1
			queue = append(queue, nbr)
		}
	}

	if len(t.order) != len(g.treatments) {
		return nil, ErrDisconnected
	}
	return t, nil
}

// Root returns the tree's root treatment.
func (t *Tree) Root() network.Treatment { return t.root }

// Parent returns the parent of child, and false for the root.
func (t *Tree) Parent(child network.Treatment) (network.Treatment, bool) {
	p, ok := t.parent[child]
	return p, ok
}

// Contains reports whether (a, b) is a tree edge in either orientation.
func (t *Tree) Contains(a, b network.Treatment) bool {
	return t.parent[a] == b || t.parent[b] == a
}

// Edges returns the tree edges oriented parent→child, sorted by (Parent,
// Child). A spanning tree over n treatments always yields exactly n-1 edges.
func (t *Tree) Edges() []TreeEdge {
	out := make([]TreeEdge, 0, len(t.parent))
	for child, parent := range t.parent {
		out = append(out, TreeEdge{Parent: parent, Child: child})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Parent != out[j].Parent {
			return out[i].Parent < out[j].Parent
		}
		return out[i].Child < out[j].Child
	})
	return out
}

// Path returns the unique tree path from a to b, inclusive of both ends.
// It lifts the deeper endpoint until the two walks meet at the lowest
// common ancestor, then concatenates the halves.
func (t *Tree) Path(a, b network.Treatment) []network.Treatment {
	// 1. Climb both endpoints to equal depth.
	fromA := []network.Treatment{a}
	fromB := []network.Treatment{b}
	x, y := a, b
	for t.depth[x] > t.depth[y] {
		x = t.parent[x]
		fromA = append(fromA, x)
	}
	for t.depth[y] > t.depth[x] {
		y = t.parent[y]
		fromB = append(fromB, y)
	}
	// 2. Climb in lockstep until the walks meet.
	for x != y {
		x = t.parent[x]
		fromA = append(fromA, x)
		y = t.parent[y]
		fromB = append(fromB, y)
	}
	// 3. Join: a..lca plus reversed b..(below lca).
	for i := len(fromB) - 2; i >= 0; i-- {
		fromA = append(fromA, fromB[i])
	}
	return fromA
}
