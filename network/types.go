// Package network: core types, sentinel errors and read-only accessors.
package network

import (
	"errors"
	"sort"
)

// Sentinel errors for network construction and lookup.
var (
	// ErrEmptyStudyID indicates a study was added with an empty identifier.
	ErrEmptyStudyID = errors.New("network: study ID is empty")

	// ErrDuplicateStudy indicates two studies share one identifier.
	ErrDuplicateStudy = errors.New("network: duplicate study ID")

	// ErrTooFewArms indicates a study includes fewer than two treatments.
	ErrTooFewArms = errors.New("network: study needs at least two treatments")

	// ErrEmptyTreatment indicates a measurement keyed by the empty treatment.
	ErrEmptyTreatment = errors.New("network: treatment ID is empty")

	// ErrWrongDataType indicates a measurement whose variant differs from the
	// network's declared DataType.
	ErrWrongDataType = errors.New("network: measurement variant mismatch")

	// ErrBadMeasurement indicates out-of-range measurement values: a
	// non-positive sample size, responders outside [0, sampleSize], or a
	// non-positive standard error.
	ErrBadMeasurement = errors.New("network: invalid measurement values")

	// ErrNoStudies indicates Build was called before any study was added.
	ErrNoStudies = errors.New("network: no studies")

	// ErrNoMeasurement indicates a study has no measurement for the treatment.
	ErrNoMeasurement = errors.New("network: no measurement for treatment")
)

// Treatment identifies one treatment. Treatments are totally ordered by their
// lexicographic ID order; every deterministic iteration in the toolkit relies
// on that order.
type Treatment string

// Less reports whether t sorts before u in the treatment order.
func (t Treatment) Less(u Treatment) bool { return t < u }

// DataType tags the measurement variant shared by all studies in a Network.
type DataType int

const (
	// Rate marks dichotomous data: responder counts out of sample sizes.
	Rate DataType = iota

	// Continuous marks continuous data: means with known standard errors.
	Continuous
)

// String returns the canonical lower-case name of the data type.
func (d DataType) String() string {
	switch d {
	case Rate:
		return "rate"
	case Continuous:
		return "continuous"
	default:
		return "unknown"
	}
}

// Measurement is the tagged variant over dichotomous and continuous outcome
// data. Use Dichotomous or ContinuousMeasurement to construct one; the zero
// Measurement is a dichotomous measurement of 0/0 and is never valid.
type Measurement struct {
	kind       DataType
	responders int
	sampleSize int
	mean       float64
	stdErr     float64
}

// Dichotomous returns a rate measurement: responders out of sampleSize.
func Dichotomous(responders, sampleSize int) Measurement {
	return Measurement{kind: Rate, responders: responders, sampleSize: sampleSize}
}

// ContinuousMeasurement returns a continuous measurement: a sample mean with
// its (known) standard error.
func ContinuousMeasurement(mean, stdErr float64) Measurement {
	return Measurement{kind: Continuous, mean: mean, stdErr: stdErr}
}

// Type reports the measurement's variant tag.
func (m Measurement) Type() DataType { return m.kind }

// Responders returns the responder count of a rate measurement.
func (m Measurement) Responders() int { return m.responders }

// SampleSize returns the sample size of a rate measurement.
func (m Measurement) SampleSize() int { return m.sampleSize }

// Mean returns the sample mean of a continuous measurement.
func (m Measurement) Mean() float64 { return m.mean }

// StdErr returns the standard error of a continuous measurement.
func (m Measurement) StdErr() float64 { return m.stdErr }

// validate range-checks the measurement's values for its variant.
func (m Measurement) validate() error {
	switch m.kind {
	case Rate:
		if m.sampleSize <= 0 || m.responders < 0 || m.responders > m.sampleSize {
			return ErrBadMeasurement
		}
	default:
		if !(m.stdErr > 0) { // rejects NaN as well
			return ErrBadMeasurement
		}
	}
	return nil
}

// Study is one clinical study: an identifier, the sorted list of treatments
// it compares, and one measurement per treatment. Studies are immutable once
// their Network is built.
type Study struct {
	id           string
	treatments   []Treatment // sorted ascending
	measurements map[Treatment]Measurement
}

// ID returns the study identifier.
func (s *Study) ID() string { return s.id }

// Treatments returns the study's treatments in ascending order.
// The returned slice is a copy; callers may mutate it freely.
func (s *Study) Treatments() []Treatment {
	out := make([]Treatment, len(s.treatments))
	copy(out, s.treatments)
	return out
}

// Contains reports whether t is one of the study's treatments.
func (s *Study) Contains(t Treatment) bool {
	_, ok := s.measurements[t]
	return ok
}

// ContainsAll reports whether every treatment in ts is in the study.
func (s *Study) ContainsAll(ts ...Treatment) bool {
	for _, t := range ts {
		if !s.Contains(t) {
			return false
		}
	}
	return true
}

// Measurement returns the study's measurement for treatment t,
// or ErrNoMeasurement if the study does not include t.
func (s *Study) Measurement(t Treatment) (Measurement, error) {
	m, ok := s.measurements[t]
	if !ok {
		return Measurement{}, ErrNoMeasurement
	}
	return m, nil
}

// Network is a validated, immutable set of studies plus the derived sorted
// set of all treatments appearing in them. Construct via Builder or ParseYAML.
type Network struct {
	dataType   DataType
	studies    []*Study    // sorted by ID
	treatments []Treatment // sorted ascending, derived from studies
}

// Type reports the measurement variant shared by every study in the network.
func (n *Network) Type() DataType { return n.dataType }

// Studies returns the studies in ascending ID order.
// The returned slice is a copy.
func (n *Network) Studies() []*Study {
	out := make([]*Study, len(n.studies))
	copy(out, n.studies)
	return out
}

// Treatments returns every treatment appearing in the network, ascending.
// The returned slice is a copy.
func (n *Network) Treatments() []Treatment {
	out := make([]Treatment, len(n.treatments))
	copy(out, n.treatments)
	return out
}

// Study returns the study with the given ID, or nil if absent.
// Lookup is a binary search over the sorted study list.
func (n *Network) Study(id string) *Study {
	i := sort.Search(len(n.studies), func(i int) bool { return n.studies[i].id >= id })
	if i < len(n.studies) && n.studies[i].id == id {
		return n.studies[i]
	}
	return nil
}

// SupportingStudies returns, in ID order, every study containing both a and b.
func (n *Network) SupportingStudies(a, b Treatment) []*Study {
	var out []*Study
	for _, s := range n.studies {
		if s.Contains(a) && s.Contains(b) {
			out = append(out, s)
		}
	}
	return out
}
