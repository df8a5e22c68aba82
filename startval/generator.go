package startval

import (
	"errors"
	"fmt"
	"sort"

	"golang.org/x/exp/rand"

	"netmeta/network"
	"netmeta/stats"
)

// Sentinel errors for starting-value generation.
var (
	// ErrNilNetwork indicates a constructor received a nil network.
	ErrNilNetwork = errors.New("startval: nil network")

	// ErrNoDirectEvidence indicates a pooled effect was requested for a
	// treatment pair no study compares directly.
	ErrNoDirectEvidence = errors.New("startval: no study compares the pair directly")
)

// Generator produces data-driven starting values for one network.
type Generator interface {
	// TreatmentEffect returns a starting value for the absolute effect of
	// treatment t in study s.
	TreatmentEffect(s *network.Study, t network.Treatment) (float64, error)

	// RelativeEffect returns a starting value for the within-study effect
	// of subject relative to base in study s.
	RelativeEffect(s *network.Study, base, subject network.Treatment) (float64, error)

	// PooledEffect returns a starting value for the base→subject effect
	// pooled over every study reporting both treatments.
	PooledEffect(base, subject network.Treatment) (float64, error)

	// StandardDeviation returns a heterogeneity starting value derived
	// from the pooled standard errors of all directly-compared pairs.
	StandardDeviation() (float64, error)
}

// Option configures a Generator.
type Option func(*config)

type config struct {
	rng   *rand.Rand
	scale float64
}

// WithRand switches the generator to randomized mode: every value is
// perturbed by scale·SE gaussian noise drawn from rng.
func WithRand(rng *rand.Rand, scale float64) Option {
	return func(c *config) {
		c.rng = rng
		c.scale = scale
	}
}

// New returns the generator matching the network's data type.
func New(n *network.Network, opts ...Option) (Generator, error) {
	if n == nil {
		return nil, ErrNilNetwork
	}
	if n.Type() == network.Rate {
		return NewDichotomous(n, opts...)
	}
	return NewContinuous(n, opts...)
}

// NewDichotomous returns a Generator for rate data.
// Returns network.ErrWrongDataType if the network is not Rate.
func NewDichotomous(n *network.Network, opts ...Option) (Generator, error) {
	if n == nil {
		return nil, ErrNilNetwork
	}
	if n.Type() != network.Rate {
		return nil, fmt.Errorf("%w: want rate, have %s", network.ErrWrongDataType, n.Type())
	}
	g := &generator{net: n, arm: dichotomousArm, relative: dichotomousRelative}
	for _, opt := range opts {
		opt(&g.cfg)
	}
	return g, nil
}

// NewContinuous returns a Generator for continuous data.
// Returns network.ErrWrongDataType if the network is not Continuous.
func NewContinuous(n *network.Network, opts ...Option) (Generator, error) {
	if n == nil {
		return nil, ErrNilNetwork
	}
	if n.Type() != network.Continuous {
		return nil, fmt.Errorf("%w: want continuous, have %s", network.ErrWrongDataType, n.Type())
	}
	g := &generator{net: n, arm: continuousArm, relative: continuousRelative}
	for _, opt := range opts {
		opt(&g.cfg)
	}
	return g, nil
}

// dichotomousArm estimates one arm's absolute effect: the corrected
// log-odds with its large-sample standard error.
func dichotomousArm(m network.Measurement) (stats.Estimate, error) {
	point, err := stats.LogOdds(m.Responders(), m.SampleSize(), true)
	if err != nil {
		return stats.Estimate{}, err
	}
	se, err := stats.LogOddsSE(m.Responders(), m.SampleSize(), true)
	if err != nil {
		return stats.Estimate{}, err
	}
	return stats.Estimate{Point: point, SE: se}, nil
}

// dichotomousRelative estimates a within-study log odds ratio.
func dichotomousRelative(m0, m1 network.Measurement) (stats.Estimate, error) {
	return stats.LogOddsRatio(m0.Responders(), m0.SampleSize(), m1.Responders(), m1.SampleSize(), true)
}

// continuousArm estimates one arm's absolute effect: the reported mean and
// its standard error, both taken as given.
func continuousArm(m network.Measurement) (stats.Estimate, error) {
	return stats.Estimate{Point: m.Mean(), SE: m.StdErr()}, nil
}

// continuousRelative estimates a within-study mean difference.
func continuousRelative(m0, m1 network.Measurement) (stats.Estimate, error) {
	return stats.MeanDifference(m0.Mean(), m0.StdErr(), m1.Mean(), m1.StdErr()), nil
}

// generator carries the variant-independent machinery; the two function
// fields hold the variant dispatch, resolved once at construction.
type generator struct {
	net *network.Network
	cfg config

	arm      func(network.Measurement) (stats.Estimate, error)
	relative func(m0, m1 network.Measurement) (stats.Estimate, error)
}

// generate reduces an estimate to one number: the point estimate, or a
// scale·SE gaussian perturbation of it in randomized mode.
func (g *generator) generate(e stats.Estimate) float64 {
	if g.cfg.rng == nil {
		return e.Point
	}
	return e.Point + g.cfg.rng.NormFloat64()*g.cfg.scale*e.SE
}

// TreatmentEffect implements Generator.
func (g *generator) TreatmentEffect(s *network.Study, t network.Treatment) (float64, error) {
	m, err := s.Measurement(t)
	if err != nil {
		return 0, err
	}
	e, err := g.arm(m)
	if err != nil {
		return 0, err
	}
	return g.generate(e), nil
}

// RelativeEffect implements Generator.
func (g *generator) RelativeEffect(s *network.Study, baseT, subject network.Treatment) (float64, error) {
	e, err := g.relativeEstimate(s, baseT, subject)
	if err != nil {
		return 0, err
	}
	return g.generate(e), nil
}

// PooledEffect implements Generator.
func (g *generator) PooledEffect(baseT, subject network.Treatment) (float64, error) {
	pooled, err := g.pooledEffect(baseT, subject)
	if err != nil {
		return 0, err
	}
	return g.generate(pooled), nil
}

// StandardDeviation implements Generator: the mean pooled standard error
// over all directly-compared pairs, or a uniformly drawn one in randomized
// mode.
func (g *generator) StandardDeviation() (float64, error) {
	pairs := g.directPairs()
	ses := make([]float64, 0, len(pairs))
	for _, p := range pairs {
		pooled, err := g.pooledEffect(p[0], p[1])
		if err != nil {
			return 0, err
		}
		ses = append(ses, pooled.SE)
	}
	if g.cfg.rng != nil {
		return ses[g.cfg.rng.Intn(len(ses))], nil
	}
	var sum float64
	for _, se := range ses {
		sum += se
	}
	return sum / float64(len(ses)), nil
}

// relativeEstimate computes one study's base→subject estimate.
func (g *generator) relativeEstimate(s *network.Study, baseT, subject network.Treatment) (stats.Estimate, error) {
	m0, err := s.Measurement(baseT)
	if err != nil {
		return stats.Estimate{}, err
	}
	m1, err := s.Measurement(subject)
	if err != nil {
		return stats.Estimate{}, err
	}
	return g.relative(m0, m1)
}

// pooledEffect pools base→subject over every supporting study.
func (g *generator) pooledEffect(baseT, subject network.Treatment) (stats.Estimate, error) {
	studies := g.net.SupportingStudies(baseT, subject)
	if len(studies) == 0 {
		return stats.Estimate{}, fmt.Errorf("%w: %s vs %s", ErrNoDirectEvidence, baseT, subject)
	}
	ests := make([]stats.Estimate, 0, len(studies))
	for _, s := range studies {
		e, err := g.relativeEstimate(s, baseT, subject)
		if err != nil {
			return stats.Estimate{}, err
		}
		ests = append(ests, e)
	}
	pooled, _, err := stats.DerSimonianLaird(ests)
	return pooled, err
}

// directPairs enumerates every directly-compared unordered pair, ascending.
func (g *generator) directPairs() [][2]network.Treatment {
	seen := make(map[[2]network.Treatment]struct{})
	for _, s := range g.net.Studies() {
		ts := s.Treatments()
		for i := 0; i < len(ts); i++ {
			for j := i + 1; j < len(ts); j++ {
				seen[[2]network.Treatment{ts[i], ts[j]}] = struct{}{}
			}
		}
	}
	out := make([][2]network.Treatment, 0, len(seen))
	for p := range seen {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i][0] != out[j][0] {
			return out[i][0] < out[j][0]
		}
		return out[i][1] < out[j][1]
	})
	return out
}
