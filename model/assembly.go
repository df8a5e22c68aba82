package model

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat/distuv"

	"netmeta/network"
	"netmeta/param"
	"netmeta/startval"
)

// latentVector is one named block of sampled scalars with per-element
// proposal scales. Fixed vectors (inconsistency state under the
// consistency variant) hold exact zeros and are never proposed.
type latentVector struct {
	name   string
	vals   []float64
	scales []float64
	fixed  bool
}

func newLatentVector(name string, n int, scale float64) *latentVector {
	v := &latentVector{name: name, vals: make([]float64, n), scales: make([]float64, n)}
	for i := range v.scales {
		v.scales[i] = scale
	}
	return v
}

func newFixedVector(name string, n int) *latentVector {
	return &latentVector{name: name, vals: make([]float64, n), scales: make([]float64, n), fixed: true}
}

// term is one resolved summand of a decomposition: coeff times either a
// basic or an inconsistency element.
type term struct {
	basic bool
	idx   int
	coeff float64
}

// armSite binds one study arm's measurement to its latent inputs.
type armSite struct {
	study    int // 0-based study index into mu
	deltaIdx int // index into delta; -1 for the baseline arm
	meas     network.Measurement
}

// effectSite is the structural bond of one random effect: the likelihood
// site of its subject arm plus the decomposition terms forming its mean.
type effectSite struct {
	arm   int // index into arms
	terms []term
}

// assembly is the fully wired sampling state: every latent vector, every
// bond, and the reverse dependency lists the conditional updates need.
// Built in one step during PhaseConstructing; nothing partial escapes.
type assembly struct {
	dataType network.DataType
	bound    float64

	mu     *latentVector // one per study
	delta  *latentVector // one per relative effect
	basic  *latentVector // one per basic parameter
	incons *latentVector // one per inconsistency factor
	sigma  *latentVector // shared heterogeneity deviation, length 1
	sigmaw *latentVector // shared inconsistency deviation, length 1

	arms        []armSite
	armsByStudy [][]int
	effects     []effectSite
	basicDeps   [][]int // basic k → effects whose decomposition reads it
	inconsDeps  [][]int // factor k → effects whose decomposition reads it

	basicIdx  map[param.BasicParameter]int
	inconsIdx map[param.InconsistencyParameter]int
}

// newAssembly wires the latent vectors, likelihood bonds, structural bonds
// and starting values for one parameterized network. Starting values come
// from the deterministic data-driven generator, so every chain with the
// same seed reproduces exactly.
func newAssembly(n *network.Network, p *param.Parameterization, nm *networkModel) (*assembly, error) {
	gen, err := startval.New(n)
	if err != nil {
		return nil, err
	}

	basics := p.Basics()
	factors := p.Inconsistencies()
	basicIdx := make(map[param.BasicParameter]int, len(basics))
	for i, b := range basics {
		basicIdx[b] = i
	}
	inconsIdx := make(map[param.InconsistencyParameter]int, len(factors))
	for i, w := range factors {
		inconsIdx[w] = i
	}

	studies := n.Studies()
	a := &assembly{
		dataType:    n.Type(),
		bound:       nm.bound,
		mu:          newLatentVector("mu", len(studies), initialScale),
		delta:       newLatentVector("delta", len(nm.effects), initialScale),
		basic:       newLatentVector("basic", len(basics), initialScale),
		sigma:       newLatentVector("sigma", 1, initialScale),
		armsByStudy: make([][]int, len(studies)),
		basicDeps:   make([][]int, len(basics)),
		inconsDeps:  make([][]int, len(factors)),
		basicIdx:    basicIdx,
		inconsIdx:   inconsIdx,
	}
	if p.IsInconsistency() {
		a.incons = newLatentVector("incons", len(factors), initialScale)
		a.sigmaw = newLatentVector("sigmaw", 1, initialScale)
	} else {
		a.incons = newFixedVector("incons", len(factors))
		a.sigmaw = newFixedVector("sigmaw", 1)
	}

	// 1. Likelihood sites and random-effect wiring, walking the studies in
	//    order so arm/effect indices line up with nm.effects.
	j := 0
	for si, s := range studies {
		baseT, _ := p.Baseline(s.ID())
		for _, t := range s.Treatments() {
			m, err := s.Measurement(t)
			if err != nil {
				return nil, err
			}
			site := armSite{study: si, deltaIdx: -1, meas: m}
			if t != baseT {
				site.deltaIdx = j
				a.effects = append(a.effects, effectSite{
					arm:   len(a.arms),
					terms: resolveTerms(nm.effects[j].comb, basicIdx, inconsIdx),
				})
				j++
			}
			a.armsByStudy[si] = append(a.armsByStudy[si], len(a.arms))
			a.arms = append(a.arms, site)
		}
	}

	// 2. Reverse dependencies: which structural bonds each parameter feeds.
	for ei, e := range a.effects {
		for _, t := range e.terms {
			if t.basic {
				a.basicDeps[t.idx] = append(a.basicDeps[t.idx], ei)
			} else {
				a.inconsDeps[t.idx] = append(a.inconsDeps[t.idx], ei)
			}
		}
	}

	// 3. Starting values.
	for si, s := range studies {
		baseT, _ := p.Baseline(s.ID())
		v, err := gen.TreatmentEffect(s, baseT)
		if err != nil {
			return nil, err
		}
		a.mu.vals[si] = v
	}
	for ei, re := range nm.effects {
		v, err := gen.RelativeEffect(re.study, re.base, re.subject)
		if err != nil {
			return nil, err
		}
		a.delta.vals[ei] = v
	}
	for bi, b := range basics {
		v, err := gen.PooledEffect(b.Base, b.Subject)
		if err != nil {
			return nil, err
		}
		a.basic.vals[bi] = v
	}
	sd, err := gen.StandardDeviation()
	if err != nil {
		return nil, err
	}
	a.sigma.vals[0] = clamp(sd, sigmaFloor, nm.bound)
	if p.IsInconsistency() {
		a.sigmaw.vals[0] = a.sigma.vals[0]
	}
	return a, nil
}

// resolveTerms flattens a decomposition into index-based terms in a fixed
// order (basics first, each block by ascending index), so summation order
// is identical on every run.
func resolveTerms(comb param.Combination, basicIdx map[param.BasicParameter]int, inconsIdx map[param.InconsistencyParameter]int) []term {
	terms := make([]term, 0, len(comb))
	for pr, coeff := range comb {
		switch p := pr.(type) {
		case param.BasicParameter:
			terms = append(terms, term{basic: true, idx: basicIdx[p], coeff: float64(coeff)})
		case param.InconsistencyParameter:
			terms = append(terms, term{basic: false, idx: inconsIdx[p], coeff: float64(coeff)})
		}
	}
	sort.Slice(terms, func(i, j int) bool {
		if terms[i].basic != terms[j].basic {
			return terms[i].basic
		}
		return terms[i].idx < terms[j].idx
	})
	return terms
}

func clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

// armLogLik is the data-likelihood bond of one arm: Binomial through the
// logistic link for rate data, Normal with the reported (known) standard
// error for continuous data.
func (a *assembly) armLogLik(i int) float64 {
	site := a.arms[i]
	eta := a.mu.vals[site.study]
	if site.deltaIdx >= 0 {
		eta += a.delta.vals[site.deltaIdx]
	}
	if a.dataType == network.Rate {
		p := 1 / (1 + math.Exp(-eta))
		// Keep the success probability off the exact boundary, where the
		// Binomial log-density degenerates.
		p = clamp(p, 1e-12, 1-1e-12)
		bin := distuv.Binomial{N: float64(site.meas.SampleSize()), P: p}
		return bin.LogProb(float64(site.meas.Responders()))
	}
	norm := distuv.Normal{Mu: eta, Sigma: site.meas.StdErr()}
	return norm.LogProb(site.meas.Mean())
}

// effectMean evaluates the decomposition of random effect j over the
// current basic and inconsistency state.
func (a *assembly) effectMean(j int) float64 {
	var m float64
	for _, t := range a.effects[j].terms {
		if t.basic {
			m += t.coeff * a.basic.vals[t.idx]
		} else {
			m += t.coeff * a.incons.vals[t.idx]
		}
	}
	return m
}

// effectLogDensity is the structural bond of random effect j:
// Normal(decomposition mean, sigma).
func (a *assembly) effectLogDensity(j int) float64 {
	norm := distuv.Normal{Mu: a.effectMean(j), Sigma: a.sigma.vals[0]}
	return norm.LogProb(a.delta.vals[j])
}

// vaguePrior is the Normal(0, √1000) prior shared by mu and basic.
func vaguePrior(x float64) float64 {
	return distuv.Normal{Mu: 0, Sigma: priorSD}.LogProb(x)
}

// condMu is the log conditional of mu[s]: the study's arm likelihoods plus
// the vague prior.
func (a *assembly) condMu(s int) float64 {
	sum := vaguePrior(a.mu.vals[s])
	for _, i := range a.armsByStudy[s] {
		sum += a.armLogLik(i)
	}
	return sum
}

// condDelta is the log conditional of delta[j]: its arm likelihood plus
// its structural bond.
func (a *assembly) condDelta(j int) float64 {
	return a.armLogLik(a.effects[j].arm) + a.effectLogDensity(j)
}

// condBasic is the log conditional of basic[k]: every structural bond that
// reads it plus the vague prior.
func (a *assembly) condBasic(k int) float64 {
	sum := vaguePrior(a.basic.vals[k])
	for _, j := range a.basicDeps[k] {
		sum += a.effectLogDensity(j)
	}
	return sum
}

// condIncons is the log conditional of incons[k]: its structural bonds
// plus the Normal(0, sigmaw) prior.
func (a *assembly) condIncons(k int) float64 {
	prior := distuv.Normal{Mu: 0, Sigma: a.sigmaw.vals[0]}
	sum := prior.LogProb(a.incons.vals[k])
	for _, j := range a.inconsDeps[k] {
		sum += a.effectLogDensity(j)
	}
	return sum
}

// condSigma is the log conditional of the heterogeneity deviation: all
// structural bonds, with the Uniform[ε, bound] prior entering as a hard
// support check (its density is constant inside).
func (a *assembly) condSigma() float64 {
	s := a.sigma.vals[0]
	if s < sigmaFloor || s > a.bound {
		return math.Inf(-1)
	}
	var sum float64
	for j := range a.effects {
		sum += a.effectLogDensity(j)
	}
	return sum
}

// condSigmaw is the log conditional of the inconsistency deviation: every
// factor's prior, under the same Uniform support rule as sigma.
func (a *assembly) condSigmaw() float64 {
	s := a.sigmaw.vals[0]
	if s < sigmaFloor || s > a.bound {
		return math.Inf(-1)
	}
	prior := distuv.Normal{Mu: 0, Sigma: s}
	var sum float64
	for k := range a.incons.vals {
		sum += prior.LogProb(a.incons.vals[k])
	}
	return sum
}
