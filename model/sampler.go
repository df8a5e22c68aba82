package model

import (
	"fmt"
	"math"

	"golang.org/x/exp/rand"
)

// tuners groups one tuner per adapted latent vector for the burn-in phase.
type tuners struct {
	mu, delta, basic, incons, sigma, sigmaw *tuner
}

// Run executes the whole chain on the calling goroutine: model assembly,
// adaptive burn-in, and the recorded simulation phase, in that order.
// Progress events are delivered synchronously through the optional
// callback. Run may be called once; any failure leaves the model in its
// current non-Ready phase with all intermediate state unusable.
func (m *Model) Run(progress ProgressFunc) error {
	if m.phase != PhaseNotStarted {
		return ErrAlreadyRun
	}
	notify := func(e Event) {
		if progress != nil {
			progress(e)
		}
	}

	// Construction: wire every latent vector, bond and accumulator.
	m.phase = PhaseConstructing
	notify(Event{Phase: PhaseConstructing, Kind: EventStarted})
	m.rng = rand.New(rand.NewSource(m.seed))
	asm, err := newAssembly(m.net, m.par, m.nm)
	if err != nil {
		return fmt.Errorf("model: assembling: %w", err)
	}
	post, err := newPosterior(m.net, m.par, asm)
	if err != nil {
		return fmt.Errorf("model: assembling: %w", err)
	}
	m.asm = asm
	m.post = post
	notify(Event{Phase: PhaseConstructing, Kind: EventFinished})

	// Burn-in: sweep and adapt proposal scales batch by batch.
	m.phase = PhaseBurnIn
	notify(Event{Phase: PhaseBurnIn, Kind: EventStarted, Total: m.burnIn})
	tn := &tuners{
		mu:     newTuner(asm.mu),
		delta:  newTuner(asm.delta),
		basic:  newTuner(asm.basic),
		incons: newTuner(asm.incons),
		sigma:  newTuner(asm.sigma),
		sigmaw: newTuner(asm.sigmaw),
	}
	batch := 0
	for it := 1; it <= m.burnIn; it++ {
		m.sweep(tn)
		if it%TuneInterval == 0 {
			tn.mu.adjust(batch)
			tn.delta.adjust(batch)
			tn.basic.adjust(batch)
			tn.incons.adjust(batch)
			tn.sigma.adjust(batch)
			tn.sigmaw.adjust(batch)
			batch++
			notify(Event{Phase: PhaseBurnIn, Kind: EventProgress, Iteration: it, Total: m.burnIn})
		}
	}
	notify(Event{Phase: PhaseBurnIn, Kind: EventFinished, Iteration: m.burnIn, Total: m.burnIn})

	// Simulation: scales frozen, every sweep recorded.
	m.phase = PhaseSimulating
	notify(Event{Phase: PhaseSimulating, Kind: EventStarted, Total: m.simulation})
	for it := 1; it <= m.simulation; it++ {
		m.sweep(nil)
		m.post.record(m.asm)
		if it%TuneInterval == 0 {
			notify(Event{Phase: PhaseSimulating, Kind: EventProgress, Iteration: it, Total: m.simulation})
		}
	}
	notify(Event{Phase: PhaseSimulating, Kind: EventFinished, Iteration: m.simulation, Total: m.simulation})

	m.phase = PhaseReady
	return nil
}

// sweep updates every latent vector once, in the fixed order mu, delta,
// basic, incons, sigma, sigmaw. Fixed vectors are skipped. When tn is
// non-nil (burn-in), proposal outcomes feed the tuners.
func (m *Model) sweep(tn *tuners) {
	a := m.asm
	for s := range a.mu.vals {
		acc := m.step(a.mu, s, func() float64 { return a.condMu(s) })
		if tn != nil {
			tn.mu.observe(s, acc)
		}
	}
	for j := range a.delta.vals {
		acc := m.step(a.delta, j, func() float64 { return a.condDelta(j) })
		if tn != nil {
			tn.delta.observe(j, acc)
		}
	}
	for k := range a.basic.vals {
		acc := m.step(a.basic, k, func() float64 { return a.condBasic(k) })
		if tn != nil {
			tn.basic.observe(k, acc)
		}
	}
	if !a.incons.fixed {
		for k := range a.incons.vals {
			acc := m.step(a.incons, k, func() float64 { return a.condIncons(k) })
			if tn != nil {
				tn.incons.observe(k, acc)
			}
		}
	}
	acc := m.step(a.sigma, 0, a.condSigma)
	if tn != nil {
		tn.sigma.observe(0, acc)
	}
	if !a.sigmaw.fixed {
		acc = m.step(a.sigmaw, 0, a.condSigmaw)
		if tn != nil {
			tn.sigmaw.observe(0, acc)
		}
	}
}

// step performs one random-walk Metropolis proposal on element i of v
// against its log conditional. Returns whether the proposal was accepted.
func (m *Model) step(v *latentVector, i int, cond func() float64) bool {
	old := v.vals[i]
	lp0 := cond()
	v.vals[i] = old + v.scales[i]*m.rng.NormFloat64()
	lp1 := cond()
	diff := lp1 - lp0
	if diff >= 0 || math.Log(m.rng.Float64()) < diff {
		return true
	}
	v.vals[i] = old
	return false
}
