// Package param is the parameterization engine of the meta-analysis model:
// it names the model parameters induced by a fundamental graph basis and
// expresses every relative treatment effect as an integer linear combination
// of them.
//
// Parameters
//
//   - BasicParameter — one ordered pair (Base, Subject) per spanning-tree
//     edge, oriented parent→child. Together the basic parameters span every
//     effect a consistency model can express.
//   - InconsistencyParameter — one per fundamental cycle, keyed by the
//     cycle's canonical closed walk. It captures disagreement between the
//     direct evidence on the cycle's non-tree edge and the indirect evidence
//     around the rest of the cycle.
//
// Decomposition
//
// For any ordered treatment pair (base, subject), Decompose returns the
// signed combination of basic parameters along the unique tree path, each
// traversal direction contributing +1 or -1. Under the inconsistency
// variant, a pair joined directly by a non-tree edge additionally carries
// that edge's inconsistency parameter, signed by whether the traversal
// matches the stored cycle orientation. Decompositions are total, finite,
// deterministic, and derived purely from the basis, never from sampled
// values.
//
// Baseline assignment
//
// Every study needs a baseline among its own treatments so its effects can
// be written baseline→other. FindBaselines runs an explicit-stack
// depth-first search over the studies in ID order, trying candidate
// baselines in treatment order and returning the first complete assignment.
// Under the inconsistency variant a study containing both endpoints of a
// non-tree edge must take one of those endpoints as baseline, otherwise the
// study's decomposition could never express the edge's inconsistency
// factor. Exhaustion reports not-found; callers treat that as a fatal
// internal-consistency violation, since any valid connected network admits
// an assignment.
package param
