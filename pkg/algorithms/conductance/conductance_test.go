package conductance

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dd0wney/cluso-gds/pkg/algorithms"
	"github.com/dd0wney/cluso-gds/pkg/algorithms/algotest"
	"github.com/dd0wney/cluso-gds/pkg/graph"
	"github.com/dd0wney/cluso-gds/pkg/graphstore"
)

func testConfig() Config {
	cfg := DefaultConfig()
	cfg.Concurrency = 2
	cfg.CommunityProperty = "community"
	return cfg
}

func TestCompute_SeparatedCliques(t *testing.T) {
	edges := algotest.Concat(algotest.Complete(3), algotest.Offset(algotest.Complete(3), 3))
	view := graph.FromEdges(6, graph.Undirected, edges...)

	res, err := Compute(view, []int64{0, 0, 0, 1, 1, 1}, testConfig(), algotest.Exec())
	require.NoError(t, err)
	assert.Equal(t, []CommunityConductance{{0, 0}, {1, 0}}, res.Communities)
	assert.Zero(t, res.Average)
}

func TestCompute_PoorSplit(t *testing.T) {
	view := graph.FromEdges(4, graph.Undirected, algotest.Path(4)...)

	res, err := Compute(view, []int64{0, 0, 1, 1}, testConfig(), algotest.Exec())
	require.NoError(t, err)
	require.Len(t, res.Communities, 2)
	assert.InDelta(t, 1.0/3, res.Communities[0].Conductance, 1e-12)
	assert.InDelta(t, 1.0/3, res.Communities[1].Conductance, 1e-12)
	assert.InDelta(t, 1.0/3, res.Average, 1e-12)
}

func TestCompute_Weighted(t *testing.T) {
	view := graph.FromWeightedEdges(3, graph.Undirected,
		graph.WeightedEdge{Source: 0, Target: 1, Weight: 3},
		graph.WeightedEdge{Source: 1, Target: 2, Weight: 1},
	)
	res, err := Compute(view, []int64{0, 0, 1}, testConfig(), algotest.Exec())
	require.NoError(t, err)
	// community 0: internal 3+3, external 1
	assert.InDelta(t, 1.0/7, res.Communities[0].Conductance, 1e-12)
	assert.InDelta(t, 1.0, res.Communities[1].Conductance, 1e-12)
}

func TestCompute_IsolatedCommunity(t *testing.T) {
	view := graph.FromEdges(3, graph.Undirected, [2]int{0, 1})
	res, err := Compute(view, []int64{0, 0, 5}, testConfig(), algotest.Exec())
	require.NoError(t, err)
	assert.Equal(t, []CommunityConductance{{0, 0}, {5, 0}}, res.Communities)
}

func TestCompute_Terminated(t *testing.T) {
	view := graph.FromEdges(2, graph.Undirected, [2]int{0, 1})
	_, err := Compute(view, []int64{0, 1}, testConfig(), algotest.Terminated())
	assert.True(t, algorithms.IsCancelled(err))
}

func TestRun_ThroughStore(t *testing.T) {
	store := algotest.Store(t, 4, algotest.Path(4)...)
	store, err := store.WithNodeProperty("community", graphstore.NewLongProperty([]int64{0, 0, 1, 1}), false)
	require.NoError(t, err)

	res, err := algorithms.Run(context.Background(), Algorithm{}, store, testConfig(), algotest.Exec())
	require.NoError(t, err)
	stats := Build(store, testConfig(), res).Stats()
	assert.Equal(t, 2, stats["communityCount"])
	assert.InDelta(t, 1.0/3, stats["averageConductance"].(float64), 1e-12)

	_, err = algorithms.Run(context.Background(), Algorithm{}, store, DefaultConfig(), algotest.Exec())
	assert.ErrorIs(t, err, algorithms.ErrInvalidConfig)
}
