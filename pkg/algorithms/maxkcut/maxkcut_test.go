package maxkcut

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
	"github.com/dd0wney/cluso-gds/pkg/graph"
)

func testConfig(concurrency int) Config {
	cfg := DefaultConfig()
	cfg.Concurrency = concurrency
	cfg.RandomSeed = 42
	return cfg
}

func sizes(comm []int64, k int) []int {
	out := make([]int, k)
	for _, c := range comm {
		out[c]++
	}
	return out
}

// referenceCost counts every listed relationship once
func referenceCost(comm []int64, edges [][2]int) float64 {
	cost := 0.0
	for _, e := range edges {
		if comm[e[0]] != comm[e[1]] {
			cost++
		}
	}
	return cost
}

func TestCompute_DisjointEdges(t *testing.T) {
	view := graph.FromEdges(4, graph.Undirected, [2]int{0, 1}, [2]int{2, 3})

	res, err := Compute(view, testConfig(2), algotest.Exec())
	require.NoError(t, err)
	assert.Equal(t, 2.0, res.CutCost)
	assert.NotEqual(t, res.Communities[0], res.Communities[1])
	assert.NotEqual(t, res.Communities[2], res.Communities[3])
}

func TestCompute_CompleteGraphSplitsEvenly(t *testing.T) {
	view := graph.FromEdges(4, graph.Undirected, algotest.Complete(4)...)

	res, err := Compute(view, testConfig(2), algotest.Exec())
	require.NoError(t, err)
	assert.Equal(t, 4.0, res.CutCost)
	assert.Equal(t, []int{2, 2}, sizes(res.Communities, 2))
}

func TestCompute_Weighted(t *testing.T) {
	view := graph.FromWeightedEdges(3, graph.Undirected,
		graph.WeightedEdge{Source: 0, Target: 1, Weight: 10},
		graph.WeightedEdge{Source: 1, Target: 2, Weight: 1},
		graph.WeightedEdge{Source: 0, Target: 2, Weight: 1},
	)

	res, err := Compute(view, testConfig(1), algotest.Exec())
	require.NoError(t, err)
	assert.Equal(t, 11.0, res.CutCost)
	assert.NotEqual(t, res.Communities[0], res.Communities[1])
}

func TestCompute_Minimize(t *testing.T) {
	tri := [][2]int{{0, 1}, {1, 2}, {2, 0}, {1, 1}}
	view := graph.FromEdges(6, graph.Undirected, algotest.Concat(tri, algotest.Offset(tri, 3))...)
	cfg := testConfig(2)
	cfg.Minimize = true

	res, err := Compute(view, cfg, algotest.Exec())
	require.NoError(t, err)
	assert.Zero(t, res.CutCost)
	assert.Equal(t, res.Communities[0], res.Communities[2])
	assert.Equal(t, res.Communities[3], res.Communities[5])
}

func TestCompute_MinCommunitySizes(t *testing.T) {
	view := graph.FromEdges(4, graph.Undirected, algotest.Path(4)...)
	cfg := testConfig(2)
	cfg.Minimize = true
	cfg.MinCommunitySizes = []int{2, 2}

	res, err := Compute(view, cfg, algotest.Exec())
	require.NoError(t, err)
	assert.Equal(t, []int{2, 2}, sizes(res.Communities, 2))
	assert.Equal(t, referenceCost(res.Communities, algotest.Path(4)), res.CutCost)

	cfg.MinCommunitySizes = []int{3, 2}
	_, err = Compute(view, cfg, algotest.Exec())
	assert.Equal(t, algorithms.KindConfig, algorithms.KindOf(err))
}

func TestCompute_SeedIsReproducible(t *testing.T) {
	edges := algotest.Concat(algotest.Complete(5), algotest.Offset(algotest.Path(6), 5))
	view := graph.FromEdges(11, graph.Undirected, edges...)
	cfg := testConfig(1)
	cfg.K = 3

	a, err := Compute(view, cfg, algotest.Exec())
	require.NoError(t, err)
	cfg.Concurrency = 4
	b, err := Compute(view, cfg, algotest.Exec())
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestCompute_Terminated(t *testing.T) {
	view := graph.FromEdges(3, graph.Undirected, algotest.Path(3)...)
	res, err := Compute(view, testConfig(2), algotest.Terminated())
	assert.Nil(t, res)
	assert.True(t, algorithms.IsCancelled(err))
}

func TestConfig_Validate(t *testing.T) {
	require.NoError(t, DefaultConfig().Validate())

	tests := []struct {
		name  string
		apply func(*Config)
	}{
		{"k below two", func(c *Config) { c.K = 1 }},
		{"no iterations", func(c *Config) { c.Iterations = 0 }},
		{"sizes length", func(c *Config) { c.MinCommunitySizes = []int{1, 1, 1} }},
		{"negative size", func(c *Config) { c.MinCommunitySizes = []int{1, -1} }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.apply(&cfg)
			assert.ErrorIs(t, cfg.Validate(), algorithms.ErrInvalidConfig)
		})
	}
}

func TestRun_ThroughStore(t *testing.T) {
	store := algotest.Store(t, 4, algotest.Complete(4)...)

	res, err := algorithms.Run(context.Background(), Algorithm{}, store, testConfig(2), algotest.Exec())
	require.NoError(t, err)

	stats := Build(store, testConfig(2), res).Stats()
	assert.Equal(t, 4.0, stats["cutCost"])
	assert.Equal(t, 2, stats["communityCount"])
}

func TestProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 30
	properties := gopter.NewProperties(parameters)

	properties.Property("reported cost matches the assignment and respects bounds", prop.ForAll(
		func(n, m int, seed uint64, k int) bool {
			rng := rand.New(rand.NewPCG(seed, 17))
			edges := make([][2]int, m)
			for i := range edges {
				edges[i] = [2]int{rng.IntN(n), rng.IntN(n)}
			}
			view := graph.FromEdges(n, graph.Undirected, edges...)
			cfg := testConfig(3)
			cfg.K = k
			cfg.RandomSeed = seed
			cfg.Iterations = 3
			cfg.MinCommunitySizes = make([]int, k)
			cfg.MinCommunitySizes[0] = n / (2 * k)

			maxRes, err := Compute(view, cfg, algotest.Exec())
			if err != nil {
				return false
			}
			cfg.Minimize = true
			minRes, err := Compute(view, cfg, algotest.Exec())
			if err != nil {
				return false
			}
			for _, r := range []*Result{maxRes, minRes} {
				if r.CutCost != referenceCost(r.Communities, edges) {
					return false
				}
				if sizes(r.Communities, k)[0] < cfg.MinCommunitySizes[0] {
					return false
				}
			}
			return minRes.CutCost <= maxRes.CutCost
		},
		gen.IntRange(1, 80),
		gen.IntRange(0, 200),
		gen.UInt64(),
		gen.IntRange(2, 5),
	))

	properties.TestingRun(t)
}
