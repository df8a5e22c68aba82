package param

import (
	"errors"
	"strings"

	"netmeta/basis"
	"netmeta/network"
)

// Sentinel errors for parameterization.
var (
	// ErrNoAssignment indicates the baseline search exhausted every branch.
	// A valid connected network always admits an assignment, so callers
	// treat this as an internal-consistency violation.
	ErrNoAssignment = errors.New("param: no feasible baseline assignment")

	// ErrUnknownTreatment indicates a decomposition over a treatment that is
	// not part of the network.
	ErrUnknownTreatment = errors.New("param: treatment not in network")

	// ErrSamePair indicates a decomposition of a treatment against itself.
	ErrSamePair = errors.New("param: relative effect of a treatment against itself")
)

// Parameter is the tagged union over the two model-parameter kinds.
// Both implementations are comparable value types usable as map keys.
type Parameter interface {
	// String returns the parameter's stable display name.
	String() string

	isParameter()
}

// BasicParameter is one relative-effect parameter (Base → Subject)
// corresponding to a spanning-tree edge oriented away from the root.
type BasicParameter struct {
	Base    network.Treatment
	Subject network.Treatment
}

// String returns the conventional "d.<base>.<subject>" name.
func (p BasicParameter) String() string {
	return "d." + string(p.Base) + "." + string(p.Subject)
}

func (BasicParameter) isParameter() {}

// InconsistencyParameter is one inconsistency factor, identified by the
// canonical closed walk of the fundamental cycle it belongs to. Equality
// and map-key hashing follow the walk signature.
type InconsistencyParameter struct {
	sig string
}

// NewInconsistencyParameter keys a parameter by cycle c.
func NewInconsistencyParameter(c basis.Cycle) InconsistencyParameter {
	return InconsistencyParameter{sig: c.Signature()}
}

// Signature returns the comma-joined canonical cycle walk.
func (p InconsistencyParameter) Signature() string { return p.sig }

// Cycle reconstructs the canonical closed walk from the signature.
func (p InconsistencyParameter) Cycle() basis.Cycle {
	parts := strings.Split(p.sig, ",")
	walk := make([]network.Treatment, len(parts))
	for i, s := range parts {
		walk[i] = network.Treatment(s)
	}
	return basis.Cycle(walk)
}

// String returns the conventional "w.<t1>.<t2>..." name, built from the
// cycle walk without its closing repeat.
func (p InconsistencyParameter) String() string {
	parts := strings.Split(p.sig, ",")
	return "w." + strings.Join(parts[:len(parts)-1], ".")
}

func (InconsistencyParameter) isParameter() {}

// Combination is an integer-coefficient linear combination of parameters.
type Combination map[Parameter]int

// add accumulates coeff onto p, dropping entries that cancel to zero.
func (c Combination) add(p Parameter, coeff int) {
	sum := c[p] + coeff
	if sum == 0 {
		delete(c, p)
	} else {
		c[p] = sum
	}
}
