package labelprop

import (
	"context"
	"math/rand/v2"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dd0wney/cluso-gds/pkg/algorithms"
	"github.com/dd0wney/cluso-gds/pkg/algorithms/algotest"
	"github.com/dd0wney/cluso-gds/pkg/algorithms/wcc"
	"github.com/dd0wney/cluso-gds/pkg/graph"
	"github.com/dd0wney/cluso-gds/pkg/graphstore"
)

func testConfig(concurrency int) Config {
	cfg := DefaultConfig()
	cfg.Concurrency = concurrency
	return cfg
}

func twoTriangles() [][2]int {
	tri := [][2]int{{0, 1}, {1, 2}, {2, 0}}
	return algotest.Concat(tri, algotest.Offset(tri, 3))
}

func TestCompute_TwoTriangles(t *testing.T) {
	view := graph.FromEdges(6, graph.Undirected, twoTriangles()...)

	res, err := Compute(view, nil, testConfig(1), algotest.Exec())
	require.NoError(t, err)

	assert.Equal(t, []int64{0, 0, 0, 3, 3, 3}, res.Labels)
	assert.Equal(t, 2, res.CommunityCount)
	assert.Equal(t, 2, res.Iterations)
	assert.True(t, res.Converged)
}

func TestCompute_SeedsAreKept(t *testing.T) {
	k4 := algotest.Complete(4)
	edges := algotest.Concat(k4, algotest.Offset(k4, 4), [][2]int{{3, 4}})
	view := graph.FromEdges(8, graph.Undirected, edges...)

	res, err := Compute(view, []int64{1, 1, 1, 1, 2, 2, 2, 2}, testConfig(1), algotest.Exec())
	require.NoError(t, err)

	assert.Equal(t, []int64{1, 1, 1, 1, 2, 2, 2, 2}, res.Labels)
	assert.Equal(t, 2, res.CommunityCount)
	assert.Equal(t, 1, res.Iterations)
	assert.True(t, res.Converged)
}

func TestCompute_Weighted(t *testing.T) {
	view := graph.FromWeightedEdges(3, graph.Undirected,
		graph.WeightedEdge{Source: 0, Target: 1, Weight: 1},
		graph.WeightedEdge{Source: 1, Target: 2, Weight: 3},
	)

	res, err := Compute(view, nil, testConfig(1), algotest.Exec())
	require.NoError(t, err)

	// node 1 follows its heavier neighbor first, so node 0 needs a second pass
	assert.Equal(t, []int64{0, 0, 0}, res.Labels)
	assert.Equal(t, 3, res.Iterations)
}

func TestCompute_IterationCap(t *testing.T) {
	view := graph.FromEdges(4, graph.Undirected, algotest.Path(4)...)
	cfg := testConfig(1)
	cfg.MaxIterations = 1

	res, err := Compute(view, nil, cfg, algotest.Exec())
	require.NoError(t, err)
	assert.Equal(t, 1, res.Iterations)
	assert.False(t, res.Converged)
}

func TestCompute_IsolatedNodesKeepTheirLabel(t *testing.T) {
	res, err := Compute(graph.FromEdges(3, graph.Undirected), nil, testConfig(2), algotest.Exec())
	require.NoError(t, err)
	assert.Equal(t, []int64{0, 1, 2}, res.Labels)
	assert.True(t, res.Converged)
}

func TestCompute_Terminated(t *testing.T) {
	view := graph.FromEdges(3, graph.Undirected, [2]int{0, 1})
	res, err := Compute(view, nil, testConfig(2), algotest.Terminated())
	assert.Nil(t, res)
	assert.True(t, algorithms.IsCancelled(err))
}

func TestWinner(t *testing.T) {
	tests := []struct {
		name  string
		votes map[int64]float64
		want  int64
		ok    bool
	}{
		{"heaviest", map[int64]float64{3: 1, 5: 2}, 5, true},
		{"tie goes to smallest", map[int64]float64{7: 2, 3: 2, 5: 2}, 3, true},
		{"no votes", map[int64]float64{}, 0, false},
		{"only non-positive", map[int64]float64{4: 0, 2: -1}, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := winner(tt.votes)
			assert.Equal(t, tt.ok, ok)
			if ok {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestConfig_Validate(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())

	cfg.MaxIterations = 0
	assert.ErrorIs(t, cfg.Validate(), algorithms.ErrInvalidConfig)
	assert.Equal(t, algorithms.KindConfig, algorithms.KindOf(cfg.Validate()))
}

func TestRun_ThroughStoreWithSeeds(t *testing.T) {
	store := algotest.Store(t, 6, twoTriangles()...)
	store, err := store.WithNodeProperty("seed", graphstore.NewLongProperty([]int64{7, 7, 7, 9, 9, 9}), false)
	require.NoError(t, err)
	cfg := testConfig(2)
	cfg.SeedProperty = "seed"

	res, err := algorithms.Run(context.Background(), Algorithm{}, store, cfg, algotest.Exec())
	require.NoError(t, err)
	assert.Equal(t, []int64{7, 7, 7, 9, 9, 9}, res.Labels)

	stats := Build(store, cfg, res).Stats()
	assert.Equal(t, 2, stats["communityCount"])
	assert.Equal(t, true, stats["didConverge"])

	cfg.SeedProperty = "missing"
	_, err = algorithms.Run(context.Background(), Algorithm{}, store, cfg, algotest.Exec())
	assert.ErrorIs(t, err, graphstore.ErrPropertyNotFound)
}

func TestProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 40
	properties := gopter.NewProperties(parameters)

	properties.Property("communities stay inside components and are named by their smallest member", prop.ForAll(
		func(n, m int, seed uint64, workers int) bool {
			rng := rand.New(rand.NewPCG(seed, 3))
			edges := make([][2]int, m)
			for i := range edges {
				edges[i] = [2]int{rng.IntN(n), rng.IntN(n)}
			}
			view := graph.FromEdges(n, graph.Undirected, edges...)
			res, err := Compute(view, nil, testConfig(workers), algotest.Exec())
			if err != nil {
				return false
			}
			comps, err := wcc.Compute(view, wcc.DefaultConfig(), algotest.Exec())
			if err != nil {
				return false
			}
			component := map[int64]int64{}
			for v, l := range res.Labels {
				if l > int64(v) || res.Labels[l] != l {
					return false
				}
				if c, ok := component[l]; ok && c != comps.Components[v] {
					return false
				}
				component[l] = comps.Components[v]
			}
			return len(component) == res.CommunityCount
		},
		gen.IntRange(1, 120),
		gen.IntRange(0, 250),
		gen.UInt64(),
		gen.IntRange(1, 8),
	))

	properties.TestingRun(t)
}
