package network_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"netmeta/network"
)

// buildSmoking builds a small three-treatment rate network:
// s01 compares A/B, s02 compares B/C, s03 compares all three.
func buildSmoking(t *testing.T) *network.Network {
	t.Helper()
	b := network.NewBuilder(network.Rate)
	require.NoError(t, b.AddStudy("s01", map[network.Treatment]network.Measurement{
		"A": network.Dichotomous(12, 100),
		"B": network.Dichotomous(18, 102),
	}))
	require.NoError(t, b.AddStudy("s02", map[network.Treatment]network.Measurement{
		"B": network.Dichotomous(7, 80),
		"C": network.Dichotomous(10, 85),
	}))
	require.NoError(t, b.AddStudy("s03", map[network.Treatment]network.Measurement{
		"A": network.Dichotomous(5, 50),
		"B": network.Dichotomous(6, 50),
		"C": network.Dichotomous(9, 50),
	}))
	n, err := b.Build()
	require.NoError(t, err)
	return n
}

func TestBuilder_Validation(t *testing.T) {
	b := network.NewBuilder(network.Rate)

	// Empty ID is rejected.
	err := b.AddStudy("", map[network.Treatment]network.Measurement{
		"A": network.Dichotomous(1, 10),
		"B": network.Dichotomous(2, 10),
	})
	assert.ErrorIs(t, err, network.ErrEmptyStudyID)

	// Single-arm studies are rejected.
	err = b.AddStudy("s01", map[network.Treatment]network.Measurement{
		"A": network.Dichotomous(1, 10),
	})
	assert.ErrorIs(t, err, network.ErrTooFewArms)

	// Variant mismatch is rejected synchronously, not at Build.
	err = b.AddStudy("s01", map[network.Treatment]network.Measurement{
		"A": network.Dichotomous(1, 10),
		"B": network.ContinuousMeasurement(0.4, 0.1),
	})
	assert.ErrorIs(t, err, network.ErrWrongDataType)

	// Duplicate IDs are rejected.
	ok := map[network.Treatment]network.Measurement{
		"A": network.Dichotomous(1, 10),
		"B": network.Dichotomous(2, 10),
	}
	require.NoError(t, b.AddStudy("s01", ok))
	assert.ErrorIs(t, b.AddStudy("s01", ok), network.ErrDuplicateStudy)

	// Building with zero studies fails.
	_, err = network.NewBuilder(network.Rate).Build()
	assert.ErrorIs(t, err, network.ErrNoStudies)
}

func TestBuilder_MeasurementRange(t *testing.T) {
	b := network.NewBuilder(network.Rate)

	// Out-of-range counts fail at AddStudy, not later in the pipeline.
	for _, m := range []network.Measurement{
		network.Dichotomous(7, 5),
		network.Dichotomous(-1, 10),
		network.Dichotomous(1, 0),
	} {
		err := b.AddStudy("s01", map[network.Treatment]network.Measurement{
			"A": m,
			"B": network.Dichotomous(3, 30),
		})
		assert.ErrorIs(t, err, network.ErrBadMeasurement)
	}

	// Boundary counts are valid.
	assert.NoError(t, b.AddStudy("s02", map[network.Treatment]network.Measurement{
		"A": network.Dichotomous(0, 10),
		"B": network.Dichotomous(10, 10),
	}))

	// Continuous arms need a positive standard error.
	c := network.NewBuilder(network.Continuous)
	err := c.AddStudy("t01", map[network.Treatment]network.Measurement{
		"X": network.ContinuousMeasurement(1.0, 0),
		"Y": network.ContinuousMeasurement(0.5, 0.2),
	})
	assert.ErrorIs(t, err, network.ErrBadMeasurement)
}

func TestNetwork_DerivedSetsAreSortedAndImmutable(t *testing.T) {
	n := buildSmoking(t)

	assert.Equal(t, network.Rate, n.Type())
	assert.Equal(t, []network.Treatment{"A", "B", "C"}, n.Treatments())

	studies := n.Studies()
	require.Len(t, studies, 3)
	assert.Equal(t, "s01", studies[0].ID())
	assert.Equal(t, "s03", studies[2].ID())

	// Mutating returned slices must not affect the network.
	ts := n.Treatments()
	ts[0] = "Z"
	assert.Equal(t, []network.Treatment{"A", "B", "C"}, n.Treatments())
}

func TestStudy_Lookups(t *testing.T) {
	n := buildSmoking(t)
	s := n.Study("s03")
	require.NotNil(t, s)

	assert.Equal(t, []network.Treatment{"A", "B", "C"}, s.Treatments())
	assert.True(t, s.Contains("B"))
	assert.True(t, s.ContainsAll("A", "C"))
	assert.False(t, s.ContainsAll("A", "D"))

	m, err := s.Measurement("C")
	require.NoError(t, err)
	assert.Equal(t, 9, m.Responders())
	assert.Equal(t, 50, m.SampleSize())

	_, err = s.Measurement("D")
	assert.ErrorIs(t, err, network.ErrNoMeasurement)

	assert.Nil(t, n.Study("nope"))
}

func TestNetwork_SupportingStudies(t *testing.T) {
	n := buildSmoking(t)

	ab := n.SupportingStudies("A", "B")
	require.Len(t, ab, 2)
	assert.Equal(t, "s01", ab[0].ID())
	assert.Equal(t, "s03", ab[1].ID())

	ac := n.SupportingStudies("A", "C")
	require.Len(t, ac, 1)
	assert.Equal(t, "s03", ac[0].ID())
}
