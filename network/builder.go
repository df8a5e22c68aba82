package network

import (
	"fmt"
	"sort"
)

// Builder accumulates studies and produces an immutable Network in one
// explicit Build step. A Builder is single-use: Build validates everything
// it has seen and either returns a fully populated Network or an error;
// no partially-constructed Network is observable either way.
type Builder struct {
	dataType DataType
	studies  map[string]map[Treatment]Measurement
	order    []string // study IDs in insertion order, for stable error reporting
}

// NewBuilder returns a Builder for a network of the given measurement variant.
func NewBuilder(dataType DataType) *Builder {
	return &Builder{
		dataType: dataType,
		studies:  make(map[string]map[Treatment]Measurement),
	}
}

// AddStudy records one study with its per-treatment measurements.
// Validation performed here:
//  1. id must be non-empty and unused (ErrEmptyStudyID, ErrDuplicateStudy).
//  2. at least two treatments, none empty (ErrTooFewArms, ErrEmptyTreatment).
//  3. every measurement must match the builder's variant (ErrWrongDataType).
//  4. measurement values must be in range (ErrBadMeasurement): rate arms
//     need sampleSize > 0 and responders in [0, sampleSize], continuous
//     arms need stdErr > 0.
func (b *Builder) AddStudy(id string, arms map[Treatment]Measurement) error {
	if id == "" {
		return ErrEmptyStudyID
	}
	if _, dup := b.studies[id]; dup {
		return fmt.Errorf("%w: %q", ErrDuplicateStudy, id)
	}
	if len(arms) < 2 {
		return fmt.Errorf("%w: study %q has %d", ErrTooFewArms, id, len(arms))
	}
	for t, m := range arms {
		if t == "" {
			return fmt.Errorf("%w: study %q", ErrEmptyTreatment, id)
		}
		if m.Type() != b.dataType {
			return fmt.Errorf("%w: study %q treatment %q is %s, network is %s",
				ErrWrongDataType, id, t, m.Type(), b.dataType)
		}
		if err := m.validate(); err != nil {
			return fmt.Errorf("%w: study %q treatment %q", err, id, t)
		}
	}

	// Copy the arm map so later caller mutation cannot reach the builder.
	cp := make(map[Treatment]Measurement, len(arms))
	for t, m := range arms {
		cp[t] = m
	}
	b.studies[id] = cp
	b.order = append(b.order, id)
	return nil
}

// Build validates the accumulated studies and returns the immutable Network.
// Returns ErrNoStudies when nothing was added.
func (b *Builder) Build() (*Network, error) {
	if len(b.studies) == 0 {
		return nil, ErrNoStudies
	}

	// 1. Materialize studies with sorted treatment lists.
	studies := make([]*Study, 0, len(b.studies))
	for id, arms := range b.studies {
		ts := make([]Treatment, 0, len(arms))
		for t := range arms {
			ts = append(ts, t)
		}
		sort.Slice(ts, func(i, j int) bool { return ts[i] < ts[j] })
		studies = append(studies, &Study{id: id, treatments: ts, measurements: arms})
	}
	// 2. Sort studies by ID for deterministic iteration everywhere downstream.
	sort.Slice(studies, func(i, j int) bool { return studies[i].id < studies[j].id })

	// 3. Derive the sorted treatment universe.
	seen := make(map[Treatment]struct{})
	var treatments []Treatment
	for _, s := range studies {
		for _, t := range s.treatments {
			if _, ok := seen[t]; !ok {
				seen[t] = struct{}{}
				treatments = append(treatments, t)
			}
		}
	}
	sort.Slice(treatments, func(i, j int) bool { return treatments[i] < treatments[j] })

	return &Network{dataType: b.dataType, studies: studies, treatments: treatments}, nil
}
