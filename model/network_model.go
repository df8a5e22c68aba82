package model

import (
	"math"

	"netmeta/network"
	"netmeta/param"
	"netmeta/stats"
)

// relativeEffect is one study comparison, oriented baseline→subject, with
// its parameter decomposition resolved once at aggregation time.
type relativeEffect struct {
	study   *network.Study
	base    network.Treatment
	subject network.Treatment
	comb    param.Combination
}

// networkModel aggregates the stable index maps, the full ordered relative
// effect list, and the variance-prior bound of one parameterized network.
type networkModel struct {
	studyIndex     map[string]int            // study ID → 1-based index
	treatmentIndex map[network.Treatment]int // treatment → 1-based index
	effects        []relativeEffect          // per study, per non-baseline treatment
	bound          float64                   // upper bound for the variance priors
}

// newNetworkModel builds the aggregation for n under parameterization p.
//
//  1. 1-based index maps in study/treatment order.
//  2. relativeEffects: for every study in order, one baseline→treatment
//     effect per non-baseline treatment in treatment order, so each study
//     contributes (arms - 1) entries.
//  3. variancePrior: 2·IQR of the transformed outcome values.
func newNetworkModel(n *network.Network, p *param.Parameterization) (*networkModel, error) {
	nm := &networkModel{
		studyIndex:     make(map[string]int),
		treatmentIndex: make(map[network.Treatment]int),
	}
	for i, s := range n.Studies() {
		nm.studyIndex[s.ID()] = i + 1
	}
	for i, t := range n.Treatments() {
		nm.treatmentIndex[t] = i + 1
	}

	for _, s := range n.Studies() {
		base, _ := p.Baseline(s.ID())
		for _, t := range s.Treatments() {
			if t == base {
				continue
			}
			comb, err := p.Decompose(base, t)
			if err != nil {
				return nil, err
			}
			nm.effects = append(nm.effects, relativeEffect{
				study: s, base: base, subject: t, comb: comb,
			})
		}
	}

	bound, err := variancePrior(n)
	if err != nil {
		return nil, err
	}
	nm.bound = bound
	return nm, nil
}

// variancePrior derives the Uniform-prior upper bound for the deviation
// parameters: twice the interquartile range of the per-measurement point
// values. Dichotomous measurements map to ln(r/(n-r)) with boundary counts
// pulled in by one half to dodge the zero-division singularities;
// continuous measurements contribute their raw mean. The IQR uses the
// fixed rank = p·(n+1)/100 interpolation rule from package stats, which
// must not be replaced by another quantile definition.
func variancePrior(n *network.Network) (float64, error) {
	var values []float64
	for _, s := range n.Studies() {
		for _, t := range s.Treatments() {
			m, err := s.Measurement(t)
			if err != nil {
				return 0, err
			}
			switch n.Type() {
			case network.Rate:
				r := float64(m.Responders())
				size := float64(m.SampleSize())
				if r == 0 {
					r = 0.5
				}
				if r == size {
					r = size - 0.5
				}
				values = append(values, math.Log(r/(size-r)))
			default:
				values = append(values, m.Mean())
			}
		}
	}
	iqr, err := stats.IQR(values)
	if err != nil {
		return 0, err
	}
	return 2 * iqr, nil
}
