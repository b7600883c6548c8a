package nodesim

import (
	"context"
	"math"
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
	"github.com/dd0wney/cluso-gds/pkg/results"
)

func testConfig(concurrency int) Config {
	cfg := DefaultConfig()
	cfg.Concurrency = concurrency
	cfg.TopK = 0
	return cfg
}

// 0 and 1 both point at 2 and 3; 4 points at 3 only; 5 is isolated
func shopping() [][2]int {
	return [][2]int{{0, 2}, {0, 3}, {1, 2}, {1, 3}, {4, 3}}
}

func pair(a, b int, s float64) results.Pair { return results.Pair{Node1: a, Node2: b, Score: s} }

func TestScore(t *testing.T) {
	assert.InDelta(t, 0.5, Score(MetricJaccard, 1, 2, 1), 1e-12)
	assert.InDelta(t, 1.0, Score(MetricOverlap, 1, 2, 1), 1e-12)
	assert.InDelta(t, 1/math.Sqrt2, Score(MetricCosine, 1, 2, 1), 1e-12)
	assert.Zero(t, Score(MetricJaccard, 0, 3, 3))
	assert.Zero(t, Score(MetricCosine, 1, 0, 1))
}

func TestCompute_Jaccard(t *testing.T) {
	view := graph.FromEdges(6, graph.Natural, shopping()...)

	res, err := Compute(view, testConfig(2), algotest.Exec())
	require.NoError(t, err)

	assert.Equal(t, []results.Pair{
		pair(0, 1, 1), pair(0, 4, 0.5),
		pair(1, 0, 1), pair(1, 4, 0.5),
		pair(4, 0, 0.5), pair(4, 1, 0.5),
	}, res.Pairs)
	assert.Equal(t, 3, res.NodesCompared)
}

func TestCompute_Limits(t *testing.T) {
	view := graph.FromEdges(6, graph.Natural, shopping()...)

	tests := []struct {
		name  string
		apply func(*Config)
		want  []results.Pair
	}{
		{"topK", func(c *Config) { c.TopK = 1 }, []results.Pair{pair(0, 1, 1), pair(1, 0, 1), pair(4, 0, 0.5)}},
		{"topN", func(c *Config) { c.TopN = 2 }, []results.Pair{pair(0, 1, 1), pair(1, 0, 1)}},
		{"similarity cutoff", func(c *Config) { c.SimilarityCutoff = 0.6 }, []results.Pair{pair(0, 1, 1), pair(1, 0, 1)}},
		{"degree cutoff", func(c *Config) { c.DegreeCutoff = 2 }, []results.Pair{pair(0, 1, 1), pair(1, 0, 1)}},
		{"overlap", func(c *Config) { c.Metric = MetricOverlap; c.TopN = 3 }, []results.Pair{pair(0, 1, 1), pair(0, 4, 1), pair(1, 0, 1)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig(3)
			tt.apply(&cfg)
			res, err := Compute(view, cfg, algotest.Exec())
			require.NoError(t, err)
			assert.Equal(t, tt.want, res.Pairs)
		})
	}
}

func TestCompute_ReverseComparesTargets(t *testing.T) {
	view := graph.FromEdges(6, graph.Reverse, shopping()...)

	res, err := Compute(view, testConfig(1), algotest.Exec())
	require.NoError(t, err)
	require.Len(t, res.Pairs, 2)
	assert.InDelta(t, 2.0/3, res.Pairs[0].Score, 1e-12)
	assert.Equal(t, 2, res.Pairs[0].Node1)
	assert.Equal(t, 3, res.Pairs[0].Node2)
}

func TestCompute_IgnoresSelfLoopsAndDuplicates(t *testing.T) {
	view := graph.FromEdges(3, graph.Natural, [2]int{0, 0}, [2]int{0, 2}, [2]int{0, 2}, [2]int{1, 2})

	res, err := Compute(view, testConfig(1), algotest.Exec())
	require.NoError(t, err)
	assert.Equal(t, []results.Pair{pair(0, 1, 1), pair(1, 0, 1)}, res.Pairs)
}

func TestCompute_Terminated(t *testing.T) {
	view := graph.FromEdges(6, graph.Natural, shopping()...)
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
		{"unknown metric", func(c *Config) { c.Metric = "EUCLID" }},
		{"negative topK", func(c *Config) { c.TopK = -1 }},
		{"cutoff above one", func(c *Config) { c.SimilarityCutoff = 1.5 }},
		{"zero degree cutoff", func(c *Config) { c.DegreeCutoff = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.apply(&cfg)
			assert.Equal(t, algorithms.KindConfig, algorithms.KindOf(cfg.Validate()))
		})
	}
}

func TestRun_ThroughStore(t *testing.T) {
	store := algotest.Store(t, 6, shopping()...)
	cfg := DefaultConfig()
	cfg.Concurrency = 2

	res, err := algorithms.Run(context.Background(), Algorithm{}, store, cfg, algotest.Exec())
	require.NoError(t, err)

	b := Build(store, cfg, res)
	stats := b.Stats()
	assert.Equal(t, 6, stats["pairCount"])
	assert.Equal(t, 3, stats["nodesCompared"])
	assert.Equal(t, MetricJaccard, stats["similarityMetric"])

	rows := results.Collect(b)
	require.Len(t, rows, 6)
	assert.Equal(t, store.OriginalID(0), rows[0]["node1"])
	assert.Equal(t, 1.0, rows[0]["similarity"])
}

func TestProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 40
	properties := gopter.NewProperties(parameters)

	properties.Property("pairs match brute force jaccard", prop.ForAll(
		func(n, m int, seed uint64, workers int) bool {
			rng := rand.New(rand.NewPCG(seed, 11))
			edges := make([][2]int, m)
			sets := make([]map[int]bool, n)
			for i := range sets {
				sets[i] = map[int]bool{}
			}
			for i := range edges {
				e := [2]int{rng.IntN(n), rng.IntN(n)}
				edges[i] = e
				if e[0] != e[1] {
					sets[e[0]][e[1]] = true
				}
			}
			res, err := Compute(graph.FromEdges(n, graph.Natural, edges...), testConfig(workers), algotest.Exec())
			if err != nil {
				return false
			}
			want := map[[2]int]float64{}
			for a := range n {
				for b := range n {
					common := 0
					for x := range sets[a] {
						if sets[b][x] {
							common++
						}
					}
					if a != b && common > 0 {
						want[[2]int{a, b}] = float64(common) / float64(len(sets[a])+len(sets[b])-common)
					}
				}
			}
			if len(want) != len(res.Pairs) {
				return false
			}
			for _, p := range res.Pairs {
				if math.Abs(want[[2]int{p.Node1, p.Node2}]-p.Score) > 1e-12 {
					return false
				}
			}
			return true
		},
		gen.IntRange(1, 60),
		gen.IntRange(0, 200),
		gen.UInt64(),
		gen.IntRange(1, 6),
	))

	properties.TestingRun(t)
}
