package model

import (
	"fmt"

	"golang.org/x/exp/rand"

	"netmeta/basis"
	"netmeta/network"
	"netmeta/param"
)

// Model is one independent meta-analysis chain: configuration, latent
// state, and (after Run) posterior estimates. A Model owns its state
// exclusively and must not be shared across goroutines while running;
// independent chains are independent Model values.
type Model struct {
	net *network.Network
	par *param.Parameterization
	nm  *networkModel

	inconsistency bool
	root          network.Treatment
	seed          uint64
	burnIn        int
	simulation    int

	phase Phase
	rng   *rand.Rand
	asm   *assembly
	post  *posterior
}

// Option configures a Model before construction.
type Option func(*Model)

// WithInconsistency selects the inconsistency variant: cycle factors and
// their shared deviation are sampled instead of pinned at zero.
func WithInconsistency() Option {
	return func(m *Model) { m.inconsistency = true }
}

// WithRoot chooses the spanning-tree root treatment. Defaults to the first
// treatment in the network's order.
func WithRoot(t network.Treatment) Option {
	return func(m *Model) { m.root = t }
}

// WithSeed seeds the chain's random source. Equal seeds on equal inputs
// reproduce the chain exactly.
func WithSeed(seed uint64) Option {
	return func(m *Model) { m.seed = seed }
}

// New validates the network, derives its basis and parameterization, and
// aggregates the index maps, relative-effect list and variance-prior
// bound. All configuration errors surface here, before any long-running
// work: a disconnected network, an unknown root, or an exhausted baseline
// search fail construction.
func New(n *network.Network, opts ...Option) (*Model, error) {
	if n == nil {
		return nil, ErrNilNetwork
	}
	m := &Model{
		net:        n,
		seed:       1,
		burnIn:     defaultBurnIn,
		simulation: defaultSimulation,
		phase:      PhaseNotStarted,
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.root == "" {
		m.root = n.Treatments()[0]
	}

	b, err := basis.New(n, m.root)
	if err != nil {
		return nil, fmt.Errorf("model: %w", err)
	}
	if m.inconsistency {
		m.par, err = param.NewInconsistency(n, b)
	} else {
		m.par, err = param.NewConsistency(n, b)
	}
	if err != nil {
		return nil, fmt.Errorf("model: %w", err)
	}
	m.nm, err = newNetworkModel(n, m.par)
	if err != nil {
		return nil, fmt.Errorf("model: %w", err)
	}
	// The sigma priors are Uniform[sigmaFloor, bound]; a bound at or below
	// the floor leaves them empty. The negated comparison also rejects a
	// NaN bound.
	if !(m.nm.bound > sigmaFloor) {
		return nil, fmt.Errorf("%w: %v", ErrDegenerateVariance, m.nm.bound)
	}
	return m, nil
}

// Phase returns the current life-cycle phase.
func (m *Model) Phase() Phase { return m.phase }

// IsReady reports whether the simulation completed and estimates exist.
func (m *Model) IsReady() bool { return m.phase == PhaseReady }

// VariancePrior returns the Uniform-prior upper bound derived from the
// data: twice the interquartile range of the transformed outcome values.
func (m *Model) VariancePrior() float64 { return m.nm.bound }

// BurnInIterations returns the configured burn-in length.
func (m *Model) BurnInIterations() int { return m.burnIn }

// SetBurnInIterations reconfigures the burn-in length. The value must be a
// strictly positive multiple of TuneInterval, and the model must not have
// started running.
func (m *Model) SetBurnInIterations(n int) error {
	if m.phase != PhaseNotStarted {
		return ErrAlreadyRun
	}
	if n <= 0 || n%TuneInterval != 0 {
		return fmt.Errorf("%w: %d", ErrBadIterations, n)
	}
	m.burnIn = n
	return nil
}

// SimulationIterations returns the configured simulation length.
func (m *Model) SimulationIterations() int { return m.simulation }

// SetSimulationIterations reconfigures the simulation length under the
// same validation rule as SetBurnInIterations.
func (m *Model) SetSimulationIterations(n int) error {
	if m.phase != PhaseNotStarted {
		return ErrAlreadyRun
	}
	if n <= 0 || n%TuneInterval != 0 {
		return fmt.Errorf("%w: %d", ErrBadIterations, n)
	}
	m.simulation = n
	return nil
}

// InconsistencyFactors returns the ordered inconsistency factors of the
// fitted parameterization, regardless of variant; under the consistency
// variant their estimates degenerate to exact zero.
func (m *Model) InconsistencyFactors() []param.InconsistencyParameter {
	return m.par.Inconsistencies()
}

// RelativeEffect returns the posterior estimate of the effect of b
// relative to a. Querying the reversed direction of a stored pair negates
// the mean and keeps the standard deviation. Fails with ErrNotReady before
// Run completes and ErrNotFound for pairs the fitted model does not cover.
func (m *Model) RelativeEffect(a, b network.Treatment) (Estimate, error) {
	if !m.IsReady() {
		return Estimate{}, ErrNotReady
	}
	est, ok := m.post.effect(a, b)
	if !ok {
		return Estimate{}, fmt.Errorf("%w: %s vs %s", ErrNotFound, a, b)
	}
	return est, nil
}

// Inconsistency returns the posterior estimate of one inconsistency factor.
func (m *Model) Inconsistency(w param.InconsistencyParameter) (Estimate, error) {
	if !m.IsReady() {
		return Estimate{}, ErrNotReady
	}
	est, ok := m.post.inconsistency(w)
	if !ok {
		return Estimate{}, fmt.Errorf("%w: %s", ErrNotFound, w)
	}
	return est, nil
}

// Heterogeneity returns the posterior estimate of the between-study
// deviation sigma.
func (m *Model) Heterogeneity() (Estimate, error) {
	if !m.IsReady() {
		return Estimate{}, ErrNotReady
	}
	return summarize(m.post.sigma), nil
}

// InconsistencyDeviation returns the posterior estimate of the shared
// inconsistency deviation sigmaw (exactly zero under consistency).
func (m *Model) InconsistencyDeviation() (Estimate, error) {
	if !m.IsReady() {
		return Estimate{}, ErrNotReady
	}
	return summarize(m.post.sigmaw), nil
}
