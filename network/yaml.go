package network

import (
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

// ErrBadYAML indicates the input document is not a valid network description.
var ErrBadYAML = errors.New("network: invalid YAML network")

// yamlNetwork is the on-disk document shape:
//
//	type: rate
//	studies:
//	  - id: s01
//	    arms:
//	      - {treatment: A, responders: 12, sampleSize: 100}
//	      - {treatment: B, responders: 18, sampleSize: 102}
//
// Continuous arms carry mean/stdErr instead of responders/sampleSize.
type yamlNetwork struct {
	Type    string      `yaml:"type"`
	Studies []yamlStudy `yaml:"studies"`
}

type yamlStudy struct {
	ID   string    `yaml:"id"`
	Arms []yamlArm `yaml:"arms"`
}

type yamlArm struct {
	Treatment  string   `yaml:"treatment"`
	Responders *int     `yaml:"responders,omitempty"`
	SampleSize *int     `yaml:"sampleSize,omitempty"`
	Mean       *float64 `yaml:"mean,omitempty"`
	StdErr     *float64 `yaml:"stdErr,omitempty"`
}

// ParseYAML decodes a YAML network description and builds the Network.
// The declared type governs which arm fields are required; a missing or
// mismatched field set fails with ErrBadYAML before the Builder ever runs.
func ParseYAML(data []byte) (*Network, error) {
	var doc yamlNetwork
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadYAML, err)
	}

	var dt DataType
	switch doc.Type {
	case Rate.String():
		dt = Rate
	case Continuous.String():
		dt = Continuous
	default:
		return nil, fmt.Errorf("%w: unknown type %q", ErrBadYAML, doc.Type)
	}

	b := NewBuilder(dt)
	for _, ys := range doc.Studies {
		arms := make(map[Treatment]Measurement, len(ys.Arms))
		for _, a := range ys.Arms {
			m, err := a.measurement(dt)
			if err != nil {
				return nil, fmt.Errorf("study %q treatment %q: %w", ys.ID, a.Treatment, err)
			}
			arms[Treatment(a.Treatment)] = m
		}
		if err := b.AddStudy(ys.ID, arms); err != nil {
			return nil, err
		}
	}
	return b.Build()
}

// measurement converts one YAML arm into a Measurement of the declared type.
func (a yamlArm) measurement(dt DataType) (Measurement, error) {
	switch dt {
	case Rate:
		if a.Responders == nil || a.SampleSize == nil {
			return Measurement{}, fmt.Errorf("%w: rate arm needs responders and sampleSize", ErrBadYAML)
		}
		if a.Mean != nil || a.StdErr != nil {
			return Measurement{}, fmt.Errorf("%w: rate arm carries continuous fields", ErrBadYAML)
		}
		return Dichotomous(*a.Responders, *a.SampleSize), nil
	default: // Continuous
		if a.Mean == nil || a.StdErr == nil {
			return Measurement{}, fmt.Errorf("%w: continuous arm needs mean and stdErr", ErrBadYAML)
		}
		if a.Responders != nil || a.SampleSize != nil {
			return Measurement{}, fmt.Errorf("%w: continuous arm carries rate fields", ErrBadYAML)
		}
		return ContinuousMeasurement(*a.Mean, *a.StdErr), nil
	}
}

// EncodeYAML renders the Network back into the document shape ParseYAML reads.
func EncodeYAML(n *Network) ([]byte, error) {
	doc := yamlNetwork{Type: n.Type().String()}
	for _, s := range n.Studies() {
		ys := yamlStudy{ID: s.ID()}
		for _, t := range s.Treatments() {
			m, err := s.Measurement(t)
			if err != nil {
				return nil, err
			}
			arm := yamlArm{Treatment: string(t)}
			switch n.Type() {
			case Rate:
				r, sz := m.Responders(), m.SampleSize()
				arm.Responders, arm.SampleSize = &r, &sz
			default:
				mean, se := m.Mean(), m.StdErr()
				arm.Mean, arm.StdErr = &mean, &se
			}
			ys.Arms = append(ys.Arms, arm)
		}
		doc.Studies = append(doc.Studies, ys)
	}
	return yaml.Marshal(doc)
}
