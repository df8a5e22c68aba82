package startval_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"

	"netmeta/network"
	"netmeta/startval"
	"netmeta/stats"
)

func rateNet(t *testing.T) *network.Network {
	t.Helper()
	b := network.NewBuilder(network.Rate)
	require.NoError(t, b.AddStudy("s1", map[network.Treatment]network.Measurement{
		"A": network.Dichotomous(12, 100),
		"B": network.Dichotomous(20, 100),
	}))
	require.NoError(t, b.AddStudy("s2", map[network.Treatment]network.Measurement{
		"A": network.Dichotomous(8, 80),
		"B": network.Dichotomous(14, 80),
	}))
	n, err := b.Build()
	require.NoError(t, err)
	return n
}

func contNet(t *testing.T) *network.Network {
	t.Helper()
	b := network.NewBuilder(network.Continuous)
	require.NoError(t, b.AddStudy("t1", map[network.Treatment]network.Measurement{
		"X": network.ContinuousMeasurement(-1.2, 0.4),
		"Y": network.ContinuousMeasurement(-0.7, 0.3),
	}))
	n, err := b.Build()
	require.NoError(t, err)
	return n
}

func TestNew_DispatchAndVariantChecks(t *testing.T) {
	rn, cn := rateNet(t), contNet(t)

	g, err := startval.New(rn)
	require.NoError(t, err)
	require.NotNil(t, g)

	// Wrong-variant constructors fail synchronously.
	_, err = startval.NewDichotomous(cn)
	assert.ErrorIs(t, err, network.ErrWrongDataType)
	_, err = startval.NewContinuous(rn)
	assert.ErrorIs(t, err, network.ErrWrongDataType)

	_, err = startval.New(nil)
	assert.ErrorIs(t, err, startval.ErrNilNetwork)
}

func TestDichotomous_Deterministic(t *testing.T) {
	n := rateNet(t)
	g, err := startval.NewDichotomous(n)
	require.NoError(t, err)
	s1 := n.Study("s1")

	// Treatment effect: corrected log-odds of the arm.
	v, err := g.TreatmentEffect(s1, "A")
	require.NoError(t, err)
	assert.InDelta(t, math.Log(12.5/88.5), v, 1e-12)

	// Relative effect: corrected log odds ratio B vs A.
	v, err = g.RelativeEffect(s1, "A", "B")
	require.NoError(t, err)
	want := math.Log(20.5/80.5) - math.Log(12.5/88.5)
	assert.InDelta(t, want, v, 1e-12)

	// Pooled effect: DerSimonian-Laird over both studies.
	e1, err := stats.LogOddsRatio(12, 100, 20, 100, true)
	require.NoError(t, err)
	e2, err := stats.LogOddsRatio(8, 80, 14, 80, true)
	require.NoError(t, err)
	pooled, _, err := stats.DerSimonianLaird([]stats.Estimate{e1, e2})
	require.NoError(t, err)
	v, err = g.PooledEffect("A", "B")
	require.NoError(t, err)
	assert.InDelta(t, pooled.Point, v, 1e-12)

	// One direct pair: the heterogeneity value is that pair's pooled SE.
	sd, err := g.StandardDeviation()
	require.NoError(t, err)
	assert.InDelta(t, pooled.SE, sd, 1e-12)

	// No direct evidence for an unknown pair.
	_, err = g.PooledEffect("A", "Z")
	assert.ErrorIs(t, err, startval.ErrNoDirectEvidence)
}

func TestContinuous_Deterministic(t *testing.T) {
	n := contNet(t)
	g, err := startval.NewContinuous(n)
	require.NoError(t, err)
	s := n.Study("t1")

	v, err := g.TreatmentEffect(s, "Y")
	require.NoError(t, err)
	assert.InDelta(t, -0.7, v, 1e-12)

	v, err = g.RelativeEffect(s, "X", "Y")
	require.NoError(t, err)
	assert.InDelta(t, 0.5, v, 1e-12)

	v, err = g.PooledEffect("X", "Y")
	require.NoError(t, err)
	assert.InDelta(t, 0.5, v, 1e-12)
}

func TestRandomized_PerturbsAroundPoint(t *testing.T) {
	n := rateNet(t)
	det, err := startval.NewDichotomous(n)
	require.NoError(t, err)
	s1 := n.Study("s1")
	point, err := det.RelativeEffect(s1, "A", "B")
	require.NoError(t, err)

	rng := rand.New(rand.NewSource(7))
	rnd, err := startval.NewDichotomous(n, startval.WithRand(rng, 0.1))
	require.NoError(t, err)

	// Perturbed draws differ from the point estimate but stay near it.
	var diff bool
	for i := 0; i < 10; i++ {
		v, err := rnd.RelativeEffect(s1, "A", "B")
		require.NoError(t, err)
		if v != point {
			diff = true
		}
		assert.InDelta(t, point, v, 1.0)
	}
	assert.True(t, diff)

	// Seeded generators reproduce their sequence.
	a, err := startval.NewDichotomous(n, startval.WithRand(rand.New(rand.NewSource(11)), 0.1))
	require.NoError(t, err)
	b, err := startval.NewDichotomous(n, startval.WithRand(rand.New(rand.NewSource(11)), 0.1))
	require.NoError(t, err)
	for i := 0; i < 5; i++ {
		va, err := a.TreatmentEffect(s1, "B")
		require.NoError(t, err)
		vb, err := b.TreatmentEffect(s1, "B")
		require.NoError(t, err)
		assert.Equal(t, va, vb)
	}
}
