package param

import (
	"netmeta/basis"
	"netmeta/network"
)

// Assignment maps every study ID to its chosen baseline treatment.
type Assignment map[string]network.Treatment

// FindBaselines chooses one baseline per study such that the union of
// choices is realizable by the decomposition rule. It is an explicit-stack
// depth-first search with backtracking over the studies in ID order,
// candidate baselines tried in treatment order; the first complete
// assignment wins.
//
// Feasibility of baseline b for study s:
//   - always: b is one of s's treatments (candidates come from the study);
//   - inconsistency variant: for every non-tree edge with both endpoints
//     among s's treatments, b must be one of that edge's endpoints, so the
//     study's decomposition expresses the edge's inconsistency factor.
//
// The boolean result is false only when the search exhausts all branches;
// callers escalate that to ErrNoAssignment.
func FindBaselines(n *network.Network, b *basis.Basis, inconsistency bool) (Assignment, bool) {
	studies := n.Studies()

	// 1. Precompute the feasible candidate list per study.
	cands := make([][]network.Treatment, len(studies))
	for i, s := range studies {
		for _, t := range s.Treatments() {
			if feasibleBaseline(s, t, b, inconsistency) {
				cands[i] = append(cands[i], t)
			}
		}
	}

	// 2. Depth-first search over candidate indices with an explicit stack.
	//    choice[d] is the candidate index currently tried at depth d.
	choice := make([]int, len(studies))
	depth := 0
	for depth < len(studies) {
		if choice[depth] < len(cands[depth]) {
			// Candidate available: per-study feasibility is already
			// established, descend to the next study.
			depth++
			continue
		}
		// Exhausted this study's candidates: backtrack.
		choice[depth] = 0
		depth--
		if depth < 0 {
			return nil, false
		}
		choice[depth]++
	}

	// 3. A completed stack is a full assignment.
	out := make(Assignment, len(studies))
	for i, s := range studies {
		out[s.ID()] = cands[i][choice[i]]
	}
	return out, true
}

// feasibleBaseline applies the per-study feasibility rule.
func feasibleBaseline(s *network.Study, b network.Treatment, bs *basis.Basis, inconsistency bool) bool {
	if !inconsistency {
		return true
	}
	for _, e := range bs.NonTreeEdges() {
		if s.Contains(e.U) && s.Contains(e.V) && b != e.U && b != e.V {
			return false
		}
	}
	return true
}
