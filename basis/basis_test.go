package basis_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"netmeta/basis"
	"netmeta/network"
)

// buildNet assembles a rate network from study→treatment lists, with dummy
// counts; only the comparison structure matters for basis tests.
func buildNet(t *testing.T, studies map[string][]network.Treatment) *network.Network {
	t.Helper()
	b := network.NewBuilder(network.Rate)
	for id, ts := range studies {
		arms := make(map[network.Treatment]network.Measurement, len(ts))
		for _, tr := range ts {
			arms[tr] = network.Dichotomous(5, 50)
		}
		require.NoError(t, b.AddStudy(id, arms))
	}
	n, err := b.Build()
	require.NoError(t, err)
	return n
}

// triangleNet is the classic three-treatment loop: every pair directly
// observed, so any spanning tree leaves exactly one non-tree edge.
func triangleNet(t *testing.T) *network.Network {
	return buildNet(t, map[string][]network.Treatment{
		"s1": {"A", "B"},
		"s2": {"B", "C"},
		"s3": {"A", "C"},
	})
}

func TestNewGraph_EdgesAndSupport(t *testing.T) {
	n := buildNet(t, map[string][]network.Treatment{
		"s1": {"A", "B"},
		"s2": {"A", "B", "C"},
	})
	g := basis.NewGraph(n)

	assert.Equal(t, []network.Treatment{"A", "B", "C"}, g.Treatments())
	assert.Equal(t, []basis.Edge{
		{U: "A", V: "B"},
		{U: "A", V: "C"},
		{U: "B", V: "C"},
	}, g.Edges())

	// A-B is informed by both studies; the three-arm study informs the rest.
	assert.Equal(t, 2, g.Support("A", "B"))
	assert.Equal(t, 1, g.Support("B", "C"))
	assert.Equal(t, 2, g.Support("B", "A")) // orientation-free
	assert.True(t, g.HasEdge("C", "A"))
	assert.False(t, g.HasEdge("A", "D"))
	assert.Equal(t, []network.Treatment{"A", "C"}, g.Neighbors("B")[:2])
}

func TestNew_TriangleBasis(t *testing.T) {
	b, err := basis.New(triangleNet(t), "A")
	require.NoError(t, err)

	// |treatments|-1 tree edges, one cycle-inducing edge.
	assert.Len(t, b.Tree().Edges(), 2)
	require.Len(t, b.NonTreeEdges(), 1)

	// The single fundamental cycle is the canonical triangle walk.
	cycles := b.Cycles()
	require.Len(t, cycles, 1)
	assert.Equal(t, 3, cycles[0].Len())
	assert.Equal(t, "A,B,C,A", cycles[0].Signature())
}

func TestNew_Validation(t *testing.T) {
	_, err := basis.New(nil, "A")
	assert.ErrorIs(t, err, basis.ErrNilNetwork)

	_, err = basis.New(triangleNet(t), "Z")
	assert.ErrorIs(t, err, basis.ErrUnknownRoot)

	// Two islands: {A,B} and {C,D}.
	disc := buildNet(t, map[string][]network.Treatment{
		"s1": {"A", "B"},
		"s2": {"C", "D"},
	})
	_, err = basis.New(disc, "A")
	assert.ErrorIs(t, err, basis.ErrDisconnected)
}

func TestSpanningTree_SupportOrdering(t *testing.T) {
	// B-D is far better informed than C-D, but C is discovered before B
	// because A-C (2 studies) beats A-B (1 study); C therefore claims D.
	n := buildNet(t, map[string][]network.Treatment{
		"s1": {"A", "B"},
		"s2": {"A", "C"},
		"s3": {"A", "C"},
		"s4": {"C", "D"},
		"s5": {"B", "D"},
	})
	b, err := basis.New(n, "A")
	require.NoError(t, err)

	tree := b.Tree()
	assert.Equal(t, network.Treatment("A"), tree.Root())

	p, ok := tree.Parent("D")
	require.True(t, ok)
	assert.Equal(t, network.Treatment("C"), p)

	_, ok = tree.Parent("A")
	assert.False(t, ok)

	// The remaining B-D edge closes the only cycle.
	assert.Equal(t, []basis.Edge{{U: "B", V: "D"}}, b.NonTreeEdges())
}

func TestTree_Path(t *testing.T) {
	// Chain A-B-C-D assembled out of two-arm studies.
	n := buildNet(t, map[string][]network.Treatment{
		"s1": {"A", "B"},
		"s2": {"B", "C"},
		"s3": {"C", "D"},
	})
	b, err := basis.New(n, "A")
	require.NoError(t, err)
	tree := b.Tree()

	assert.Equal(t, []network.Treatment{"A", "B", "C", "D"}, tree.Path("A", "D"))
	assert.Equal(t, []network.Treatment{"D", "C", "B"}, tree.Path("D", "B"))
	assert.Equal(t, []network.Treatment{"B"}, tree.Path("B", "B"))
	assert.True(t, tree.Contains("B", "A"))
	assert.False(t, tree.Contains("A", "C"))
}

func TestCycle_Direction(t *testing.T) {
	b, err := basis.New(triangleNet(t), "A")
	require.NoError(t, err)
	c := b.Cycles()[0] // A,B,C,A

	assert.Equal(t, 1, c.Direction("A", "B"))
	assert.Equal(t, -1, c.Direction("B", "A"))
	assert.Equal(t, 1, c.Direction("C", "A"))
	assert.Equal(t, 0, c.Direction("A", "D"))
}

// TestNew_Deterministic rebuilds the same moderately tangled network many
// times and requires bit-identical bases: tree edges, non-tree edges and
// canonical cycle signatures.
func TestNew_Deterministic(t *testing.T) {
	studies := map[string][]network.Treatment{
		"s1": {"A", "B"},
		"s2": {"B", "C"},
		"s3": {"A", "C"},
		"s4": {"C", "D", "E"},
		"s5": {"B", "E"},
		"s6": {"A", "D"},
	}

	ref, err := basis.New(buildNet(t, studies), "B")
	require.NoError(t, err)
	refTree := ref.Tree().Edges()
	refNonTree := ref.NonTreeEdges()
	var refSigs []string
	for _, c := range ref.Cycles() {
		refSigs = append(refSigs, c.Signature())
	}

	for i := 0; i < 25; i++ {
		b, err := basis.New(buildNet(t, studies), "B")
		require.NoError(t, err)
		assert.Empty(t, cmp.Diff(refTree, b.Tree().Edges()))
		assert.Empty(t, cmp.Diff(refNonTree, b.NonTreeEdges()))
		var sigs []string
		for _, c := range b.Cycles() {
			sigs = append(sigs, c.Signature())
		}
		assert.Equal(t, refSigs, sigs)
	}
}
