package param

import (
	"fmt"

	"netmeta/basis"
	"netmeta/network"
)

// Parameterization binds a network to its basis, the per-study baseline
// assignment, and the ordered parameter lists. Immutable after construction.
type Parameterization struct {
	net           *network.Network
	basis         *basis.Basis
	inconsistency bool

	baselines Assignment
	basics    []BasicParameter                          // sorted by (Base, Subject)
	incons    []InconsistencyParameter                  // non-tree edge order
	byEdge    map[basis.Edge]InconsistencyParameter     // non-tree edge → factor
	cycles    map[InconsistencyParameter]basis.Cycle    // factor → canonical walk
	known     map[network.Treatment]struct{}            // treatment membership
}

// NewConsistency builds the consistency-variant parameterization: relative
// effects decompose over basic parameters only; inconsistency factors are
// still enumerated (their estimates degenerate to zero downstream).
func NewConsistency(n *network.Network, b *basis.Basis) (*Parameterization, error) {
	return newParameterization(n, b, false)
}

// NewInconsistency builds the inconsistency-variant parameterization:
// non-tree-edge pairs additionally carry their cycle's inconsistency factor.
func NewInconsistency(n *network.Network, b *basis.Basis) (*Parameterization, error) {
	return newParameterization(n, b, true)
}

func newParameterization(n *network.Network, b *basis.Basis, inconsistency bool) (*Parameterization, error) {
	assignment, ok := FindBaselines(n, b, inconsistency)
	if !ok {
		return nil, ErrNoAssignment
	}

	p := &Parameterization{
		net:           n,
		basis:         b,
		inconsistency: inconsistency,
		baselines:     assignment,
		byEdge:        make(map[basis.Edge]InconsistencyParameter),
		cycles:        make(map[InconsistencyParameter]basis.Cycle),
		known:         make(map[network.Treatment]struct{}),
	}
	for _, t := range n.Treatments() {
		p.known[t] = struct{}{}
	}
	for _, e := range b.Tree().Edges() {
		p.basics = append(p.basics, BasicParameter{Base: e.Parent, Subject: e.Child})
	}
	for _, e := range b.NonTreeEdges() {
		c, _ := b.Cycle(e)
		w := NewInconsistencyParameter(c)
		p.incons = append(p.incons, w)
		p.byEdge[e] = w
		p.cycles[w] = c
	}
	return p, nil
}

// IsInconsistency reports the parameterization variant.
func (p *Parameterization) IsInconsistency() bool { return p.inconsistency }

// Basis returns the underlying fundamental graph basis.
func (p *Parameterization) Basis() *basis.Basis { return p.basis }

// Baseline returns the assigned baseline of the study with the given ID.
func (p *Parameterization) Baseline(studyID string) (network.Treatment, bool) {
	t, ok := p.baselines[studyID]
	return t, ok
}

// Baselines returns a copy of the full study→baseline assignment.
func (p *Parameterization) Baselines() Assignment {
	out := make(Assignment, len(p.baselines))
	for k, v := range p.baselines {
		out[k] = v
	}
	return out
}

// Basics returns the basic parameters sorted by (Base, Subject).
func (p *Parameterization) Basics() []BasicParameter {
	out := make([]BasicParameter, len(p.basics))
	copy(out, p.basics)
	return out
}

// Inconsistencies returns the inconsistency factors in non-tree edge order,
// regardless of the parameterization variant.
func (p *Parameterization) Inconsistencies() []InconsistencyParameter {
	out := make([]InconsistencyParameter, len(p.incons))
	copy(out, p.incons)
	return out
}

// Cycle returns the canonical cycle of factor w.
func (p *Parameterization) Cycle(w InconsistencyParameter) (basis.Cycle, bool) {
	c, ok := p.cycles[w]
	return c, ok
}

// Decompose expresses the relative effect base→subject as an integer
// linear combination of parameters:
//
//  1. Walk the unique tree path base→subject; traversing a tree edge
//     parent→child contributes +1 to its basic parameter, child→parent
//     contributes -1.
//  2. Inconsistency variant only: if (base, subject) is itself a non-tree
//     edge, add that edge's inconsistency factor with sign +1 when the
//     traversal matches the stored cycle orientation, -1 otherwise.
//
// The result depends only on the basis, never on sampled values.
func (p *Parameterization) Decompose(base, subject network.Treatment) (Combination, error) {
	if _, ok := p.known[base]; !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownTreatment, base)
	}
	if _, ok := p.known[subject]; !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownTreatment, subject)
	}
	if base == subject {
		return nil, fmt.Errorf("%w: %q", ErrSamePair, base)
	}

	comb := make(Combination)
	tree := p.basis.Tree()

	// 1. Signed sum of basic parameters along the tree path.
	path := tree.Path(base, subject)
	for i := 0; i+1 < len(path); i++ {
		x, y := path[i], path[i+1]
		if par, ok := tree.Parent(y); ok && par == x {
			comb.add(BasicParameter{Base: x, Subject: y}, 1)
		} else {
			comb.add(BasicParameter{Base: y, Subject: x}, -1)
		}
	}

	// 2. One inconsistency factor for direct non-tree comparisons.
	if p.inconsistency {
		if w, ok := p.byEdge[basis.NewEdge(base, subject)]; ok {
			comb.add(w, p.cycles[w].Direction(base, subject))
		}
	}
	return comb, nil
}
