package model

import "errors"

// Sentinel errors for model configuration, execution and queries.
var (
	// ErrNilNetwork indicates New received a nil network.
	ErrNilNetwork = errors.New("model: nil network")

	// ErrBadIterations indicates an iteration count that is not a strictly
	// positive multiple of TuneInterval.
	ErrBadIterations = errors.New("model: iterations must be a positive multiple of the tuning batch")

	// ErrAlreadyRun indicates Run or a setter was called after a run began.
	ErrAlreadyRun = errors.New("model: model already run")

	// ErrNotReady indicates a query before the simulation phase completed.
	ErrNotReady = errors.New("model: results not ready; call Run first")

	// ErrNotFound indicates an effect query over a pair or factor the
	// fitted model does not cover.
	ErrNotFound = errors.New("model: no estimate for the requested parameter")

	// ErrDegenerateVariance indicates the data-driven variance-prior bound
	// does not exceed the sigma floor, leaving the Uniform prior empty.
	// Happens when the transformed point values have zero interquartile
	// range, e.g. every arm reporting the same outcome.
	ErrDegenerateVariance = errors.New("model: variance prior bound below the sigma floor")
)

// Sampler constants. TuneInterval is load-bearing for configuration
// validation: burn-in and simulation lengths must be positive multiples.
const (
	// TuneInterval is the adaptation batch size in sweeps, and the cadence
	// of progress events in both phases.
	TuneInterval = 100

	// targetAcceptance is the per-element acceptance rate the burn-in
	// tuner steers proposal scales toward (scalar random-walk optimum).
	targetAcceptance = 0.44

	// tuneStep0 and tuneDecay define the exponentially decaying log-scale
	// adjustment: batch b nudges log(scale) by ±tuneStep0·tuneDecay^b.
	tuneStep0 = 0.5
	tuneDecay = 0.95

	// initialScale seeds every adapted proposal scale.
	initialScale = 0.5

	// priorSD is the vague Normal prior deviation for mu and basic
	// parameters (variance 1000).
	priorSD = 31.622776601683793

	// sigmaFloor keeps the uniform variance priors away from the
	// degenerate zero-deviation state.
	sigmaFloor = 1e-4

	// Default chain lengths; both are multiples of TuneInterval.
	defaultBurnIn     = 10_000
	defaultSimulation = 20_000
)

// Phase is the model life-cycle state.
type Phase int

const (
	// PhaseNotStarted: configured but Run not yet called.
	PhaseNotStarted Phase = iota
	// PhaseConstructing: latent vectors and bonds being assembled.
	PhaseConstructing
	// PhaseBurnIn: adaptive burn-in sweeps in progress.
	PhaseBurnIn
	// PhaseSimulating: recorded simulation sweeps in progress.
	PhaseSimulating
	// PhaseReady: terminal; estimates are available.
	PhaseReady
)

// String returns the phase name.
func (p Phase) String() string {
	switch p {
	case PhaseNotStarted:
		return "not-started"
	case PhaseConstructing:
		return "constructing"
	case PhaseBurnIn:
		return "burn-in"
	case PhaseSimulating:
		return "simulating"
	case PhaseReady:
		return "ready"
	default:
		return "unknown"
	}
}

// EventKind distinguishes the notifications emitted for each phase.
type EventKind int

const (
	// EventStarted fires once when a phase begins.
	EventStarted EventKind = iota
	// EventProgress fires every TuneInterval sweeps within a phase.
	EventProgress
	// EventFinished fires once when a phase completes.
	EventFinished
)

// Event is one progress notification. Iteration and Total are meaningful
// for EventProgress during burn-in and simulation.
type Event struct {
	Phase     Phase
	Kind      EventKind
	Iteration int
	Total     int
}

// ProgressFunc receives synchronous progress events on the Run goroutine.
// A nil ProgressFunc disables notification.
type ProgressFunc func(Event)

// Estimate is a posterior summary: mean and standard deviation.
type Estimate struct {
	Mean   float64
	StdDev float64
}
