// Package basis turns an evidence network into its fundamental graph basis:
// the comparison graph over treatments, one deterministic spanning tree, and
// the classification of every remaining edge as the generator of one
// fundamental cycle.
//
// What & Why
//
//   - Comparison graph: vertices are treatments; an undirected edge joins two
//     treatments whenever at least one study measures both. Each edge carries
//     its support — the number of studies informing it directly.
//
//   - Spanning tree: one tree per network (networks must be connected),
//     rooted at a caller-chosen treatment. Tree edges become the basic
//     effect parameters of the meta-analysis model: they span every
//     consistency-model effect.
//
//   - Fundamental cycles: every non-tree edge closes exactly one cycle
//     relative to the tree. Those cycles index the inconsistency parameters,
//     which measure disagreement between direct and indirect evidence.
//
// Determinism
//
// Identical networks yield identical bases on every run. The spanning tree
// is grown breadth-first from the root; at each vertex the unvisited
// neighbors are taken in order of descending edge support, ties broken by
// ascending treatment order, so well-informed comparisons become basic
// parameters first. Cycles are stored as canonical closed walks: the
// lexicographically least rotation of the walk or its reversal, computed
// with Booth's minimal-rotation algorithm.
//
// Errors:
//
//	ErrNilNetwork   — New was called with a nil network.
//	ErrUnknownRoot  — the requested root treatment is not in the network.
//	ErrDisconnected — the comparison graph does not connect all treatments.
//
// Complexity: building a basis is O(V + E·V) time in the worst case
// (each non-tree edge walks one tree path); memory is O(V + E).
package basis
