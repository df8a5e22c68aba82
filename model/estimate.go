package model

import (
	"netmeta/network"
	"netmeta/param"
	"netmeta/stats"
)

// pairKey is an unordered treatment pair stored in ascending order.
type pairKey struct {
	lo, hi network.Treatment
}

// derivedEffect tracks the posterior of one treatment-pair effect lo→hi,
// evaluated every recorded sweep from the pair's decomposition.
type derivedEffect struct {
	terms []term
	acc   stats.RunningMoments
}

// posterior holds every streaming accumulator the simulation phase feeds:
// all treatment-pair effects (basic parameters included, as the one-term
// case), the inconsistency factors, sigma and sigmaw.
type posterior struct {
	pairs     map[pairKey]*derivedEffect
	inconsIdx map[param.InconsistencyParameter]int
	incons    []stats.RunningMoments
	sigma     stats.RunningMoments
	sigmaw    stats.RunningMoments
}

// newPosterior resolves the decomposition of every unordered treatment
// pair once, so each recorded sweep is a plain dot product per pair.
func newPosterior(n *network.Network, p *param.Parameterization, a *assembly) (*posterior, error) {
	post := &posterior{
		pairs:     make(map[pairKey]*derivedEffect),
		inconsIdx: make(map[param.InconsistencyParameter]int),
	}
	ts := n.Treatments()
	for i := 0; i < len(ts); i++ {
		for j := i + 1; j < len(ts); j++ {
			comb, err := p.Decompose(ts[i], ts[j])
			if err != nil {
				return nil, err
			}
			post.pairs[pairKey{lo: ts[i], hi: ts[j]}] = &derivedEffect{
				terms: resolveTerms(comb, a.basicIdx, a.inconsIdx),
			}
		}
	}
	factors := p.Inconsistencies()
	post.incons = make([]stats.RunningMoments, len(factors))
	for i, w := range factors {
		post.inconsIdx[w] = i
	}
	return post, nil
}

// record folds the current sampler state into every accumulator.
func (p *posterior) record(a *assembly) {
	for _, d := range p.pairs {
		var v float64
		for _, t := range d.terms {
			if t.basic {
				v += t.coeff * a.basic.vals[t.idx]
			} else {
				v += t.coeff * a.incons.vals[t.idx]
			}
		}
		d.acc.Add(v)
	}
	for k := range p.incons {
		p.incons[k].Add(a.incons.vals[k])
	}
	p.sigma.Add(a.sigma.vals[0])
	p.sigmaw.Add(a.sigmaw.vals[0])
}

// effect returns the posterior estimate of b relative to a, negating the
// mean when the stored orientation is reversed.
func (p *posterior) effect(a, b network.Treatment) (Estimate, bool) {
	if a == b {
		return Estimate{}, false
	}
	lo, hi, flip := a, b, false
	if hi.Less(lo) {
		lo, hi, flip = b, a, true
	}
	d, ok := p.pairs[pairKey{lo: lo, hi: hi}]
	if !ok {
		return Estimate{}, false
	}
	est := summarize(d.acc)
	if flip {
		est.Mean = -est.Mean
	}
	return est, true
}

// inconsistency returns the posterior estimate of factor w.
func (p *posterior) inconsistency(w param.InconsistencyParameter) (Estimate, bool) {
	i, ok := p.inconsIdx[w]
	if !ok {
		return Estimate{}, false
	}
	return summarize(p.incons[i]), true
}

// summarize converts a streaming accumulator to an Estimate.
func summarize(r stats.RunningMoments) Estimate {
	return Estimate{Mean: r.Mean(), StdDev: r.StdDev()}
}
