package lcc

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dd0wney/cluso-gds/pkg/algorithms"
	"github.com/dd0wney/cluso-gds/pkg/algorithms/algotest"
	"github.com/dd0wney/cluso-gds/pkg/algorithms/triangle"
	"github.com/dd0wney/cluso-gds/pkg/graph"
	"github.com/dd0wney/cluso-gds/pkg/graphstore"
	"github.com/dd0wney/cluso-gds/pkg/results"
)

func testConfig() Config {
	cfg := DefaultConfig()
	cfg.Concurrency = 2
	return cfg
}

// (0,1,2) and (0,1,3) share the edge 0-1
var sharedEdge = [][2]int{{0, 1}, {1, 2}, {2, 0}, {0, 3}, {1, 3}}

func TestCompute_SharedEdge(t *testing.T) {
	view := graph.FromEdges(4, graph.Undirected, sharedEdge...)

	res, err := Compute(view, nil, testConfig(), algotest.Exec())
	require.NoError(t, err)

	// nodes 0 and 1: 2 triangles over 3 neighbor pairs
	assert.InDeltaSlice(t, []float64{2.0 / 3, 2.0 / 3, 1, 1}, res.Coefficients, 1e-12)
	assert.InDelta(t, (4.0/3+2)/4, res.Average, 1e-12)
}

func TestCompute_FewNeighbors(t *testing.T) {
	view := graph.FromEdges(3, graph.Undirected, [2]int{0, 1})
	res, err := Compute(view, nil, testConfig(), algotest.Exec())
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 0, 0}, res.Coefficients)
}

func TestCompute_PrecomputedTriangles(t *testing.T) {
	view := graph.FromEdges(4, graph.Undirected, sharedEdge...)
	res, err := Compute(view, []int64{2, 2, 1, -1}, testConfig(), algotest.Exec())
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{2.0 / 3, 2.0 / 3, 1, 0}, res.Coefficients, 1e-12)
}

func TestCompute_Terminated(t *testing.T) {
	view := graph.FromEdges(3, graph.Undirected, algotest.Complete(3)...)
	_, err := Compute(view, nil, testConfig(), algotest.Terminated())
	assert.True(t, algorithms.IsCancelled(err))
}

func TestRun_FromMutatedTriangleCounts(t *testing.T) {
	store := algotest.Store(t, 4, sharedEdge...)
	tc, err := algorithms.Run(context.Background(), triangle.Algorithm{}, store, triangle.DefaultConfig(), algotest.Exec())
	require.NoError(t, err)

	b := triangle.Build(store, triangle.DefaultConfig(), tc).(results.NodePropertyProducer)
	store, err = store.WithNodeProperty("triangles", b.NodeProperty(), false)
	require.NoError(t, err)

	cfg := testConfig()
	cfg.TriangleCountProperty = "triangles"
	res, err := algorithms.Run(context.Background(), Algorithm{}, store, cfg, algotest.Exec())
	require.NoError(t, err)
	assert.InDelta(t, 1.0, res.Coefficients[3], 1e-12)

	cfg.TriangleCountProperty = "nope"
	_, err = algorithms.Run(context.Background(), Algorithm{}, store, cfg, algotest.Exec())
	assert.ErrorIs(t, err, graphstore.ErrPropertyNotFound)
}
