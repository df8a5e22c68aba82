package stats_test

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"netmeta/stats"
)

func TestLogOdds(t *testing.T) {
	// Uncorrected: ln(2/8).
	v, err := stats.LogOdds(2, 10, false)
	require.NoError(t, err)
	assert.InDelta(t, math.Log(0.25), v, 1e-12)

	// Corrected: ln(2.5/8.5).
	v, err = stats.LogOdds(2, 10, true)
	require.NoError(t, err)
	assert.InDelta(t, math.Log(2.5/8.5), v, 1e-12)

	// Correction keeps the boundary cases finite.
	v, err = stats.LogOdds(0, 10, true)
	require.NoError(t, err)
	assert.False(t, math.IsInf(v, 0))
	v, err = stats.LogOdds(10, 10, true)
	require.NoError(t, err)
	assert.False(t, math.IsInf(v, 0))

	// Invalid counts are rejected.
	_, err = stats.LogOdds(11, 10, false)
	assert.ErrorIs(t, err, stats.ErrBadCounts)
	_, err = stats.LogOdds(-1, 10, false)
	assert.ErrorIs(t, err, stats.ErrBadCounts)
	_, err = stats.LogOdds(0, 0, false)
	assert.ErrorIs(t, err, stats.ErrBadCounts)
}

func TestLogOddsSE(t *testing.T) {
	se, err := stats.LogOddsSE(2, 10, true)
	require.NoError(t, err)
	assert.InDelta(t, math.Sqrt(1/2.5+1/8.5), se, 1e-12)
}

func TestLogOddsRatio(t *testing.T) {
	// Symmetric arms give a zero ratio.
	e, err := stats.LogOddsRatio(5, 10, 5, 10, true)
	require.NoError(t, err)
	assert.InDelta(t, 0, e.Point, 1e-12)
	assert.InDelta(t, math.Sqrt(4/5.5), e.SE, 1e-12)

	// Swapping the arms negates the point estimate, SE unchanged.
	fwd, err := stats.LogOddsRatio(2, 10, 8, 10, true)
	require.NoError(t, err)
	rev, err := stats.LogOddsRatio(8, 10, 2, 10, true)
	require.NoError(t, err)
	assert.InDelta(t, -fwd.Point, rev.Point, 1e-12)
	assert.InDelta(t, fwd.SE, rev.SE, 1e-12)
}

func TestMeanDifference(t *testing.T) {
	e := stats.MeanDifference(1.0, 0.3, 2.5, 0.4)
	assert.InDelta(t, 1.5, e.Point, 1e-12)
	assert.InDelta(t, 0.5, e.SE, 1e-12)
}

func TestDerSimonianLaird(t *testing.T) {
	// Empty input fails.
	_, _, err := stats.DerSimonianLaird(nil)
	assert.ErrorIs(t, err, stats.ErrNoEstimates)

	// A single estimate pools to itself with zero heterogeneity.
	single := stats.Estimate{Point: 0.7, SE: 0.2}
	pooled, tau2, err := stats.DerSimonianLaird([]stats.Estimate{single})
	require.NoError(t, err)
	assert.Equal(t, single, pooled)
	assert.Zero(t, tau2)

	// Homogeneous estimates: tau² collapses to zero and pooling reduces to
	// the inverse-variance average.
	homog := []stats.Estimate{
		{Point: 0.5, SE: 0.2},
		{Point: 0.5, SE: 0.4},
	}
	pooled, tau2, err = stats.DerSimonianLaird(homog)
	require.NoError(t, err)
	assert.Zero(t, tau2)
	assert.InDelta(t, 0.5, pooled.Point, 1e-12)
	wSum := 1/0.04 + 1/0.16
	assert.InDelta(t, math.Sqrt(1/wSum), pooled.SE, 1e-12)

	// Strongly conflicting estimates produce positive tau² and a wider SE
	// than the fixed-effect pooling would give.
	heterog := []stats.Estimate{
		{Point: -1.0, SE: 0.1},
		{Point: 1.0, SE: 0.1},
	}
	pooled, tau2, err = stats.DerSimonianLaird(heterog)
	require.NoError(t, err)
	assert.Greater(t, tau2, 0.0)
	assert.InDelta(t, 0, pooled.Point, 1e-12)
	assert.Greater(t, pooled.SE, math.Sqrt(1/(2/0.01)))
}

func TestQuantile_ReferenceRule(t *testing.T) {
	// n=3, rank(25) = 1.0 and rank(75) = 3.0: the quartiles are the extremes.
	vals := []float64{3, 1, 2}
	q1, err := stats.Quantile(vals, 25)
	require.NoError(t, err)
	q3, err := stats.Quantile(vals, 75)
	require.NoError(t, err)
	assert.InDelta(t, 1, q1, 1e-12)
	assert.InDelta(t, 3, q3, 1e-12)

	// n=4, rank(25) = 1.25: interpolate a quarter of the way from x[1] to x[2].
	q1, err = stats.Quantile([]float64{10, 20, 30, 40}, 25)
	require.NoError(t, err)
	assert.InDelta(t, 12.5, q1, 1e-12)

	// Median of an even-length list interpolates halfway.
	med, err := stats.Quantile([]float64{1, 2, 3, 4}, 50)
	require.NoError(t, err)
	assert.InDelta(t, 2.5, med, 1e-12)

	// Empty input fails.
	_, err = stats.Quantile(nil, 50)
	assert.ErrorIs(t, err, stats.ErrNoValues)

	// Input order must not matter and the input must not be mutated.
	in := []float64{9, 7, 8}
	_, err = stats.Quantile(in, 75)
	require.NoError(t, err)
	assert.Equal(t, []float64{9, 7, 8}, in)
}

func TestIQR(t *testing.T) {
	iqr, err := stats.IQR([]float64{1, 2, 3})
	require.NoError(t, err)
	assert.InDelta(t, 2, iqr, 1e-12)
}

func TestRunningMoments(t *testing.T) {
	var r stats.RunningMoments
	assert.Zero(t, r.Count())
	assert.Zero(t, r.Mean())
	assert.Zero(t, r.StdDev())

	// Constant stream: mean equals the constant, deviation exactly zero.
	for i := 0; i < 100; i++ {
		r.Add(4.25)
	}
	assert.EqualValues(t, 100, r.Count())
	assert.InDelta(t, 4.25, r.Mean(), 1e-12)
	assert.InDelta(t, 0, r.StdDev(), 1e-12)

	// Against a two-pass reference on random data.
	rng := rand.New(rand.NewSource(42))
	xs := make([]float64, 1000)
	var s stats.RunningMoments
	for i := range xs {
		xs[i] = rng.NormFloat64()*3 + 7
		s.Add(xs[i])
	}
	var mean float64
	for _, x := range xs {
		mean += x
	}
	mean /= float64(len(xs))
	var m2 float64
	for _, x := range xs {
		m2 += (x - mean) * (x - mean)
	}
	sd := math.Sqrt(m2 / float64(len(xs)-1))
	assert.InDelta(t, mean, s.Mean(), 1e-9)
	assert.InDelta(t, sd, s.StdDev(), 1e-9)
}
