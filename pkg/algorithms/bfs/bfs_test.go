package bfs

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dd0wney/cluso-gds/pkg/algorithms"
	"github.com/dd0wney/cluso-gds/pkg/algorithms/algotest"
	"github.com/dd0wney/cluso-gds/pkg/graph"
	"github.com/dd0wney/cluso-gds/pkg/graphstore"
	"github.com/dd0wney/cluso-gds/pkg/results"
)

// 0 -> 1, 0 -> 2, 1 -> 3, 2 -> 3, 3 -> 4, 5 isolated
func diamond() graph.View {
	return graph.FromEdges(6, graph.Natural,
		[2]int{0, 2}, [2]int{0, 1}, [2]int{1, 3}, [2]int{2, 3}, [2]int{3, 4})
}

func testConfig() Config {
	cfg := DefaultConfig()
	cfg.Concurrency = 4
	return cfg
}

func TestCompute_FullTraversal(t *testing.T) {
	res, err := Compute(diamond(), 0, nil, testConfig(), algotest.Exec())
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1, 2, 3, 4}, res.Nodes)
	assert.Equal(t, []int{0, 1, 1, 2, 3}, res.Depths)
	assert.False(t, res.TargetFound)
}

func TestCompute_MaxDepth(t *testing.T) {
	cfg := testConfig()
	cfg.MaxDepth = 1
	res, err := Compute(diamond(), 0, nil, cfg, algotest.Exec())
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1, 2}, res.Nodes)

	cfg.MaxDepth = 0
	res, err = Compute(diamond(), 0, nil, cfg, algotest.Exec())
	require.NoError(t, err)
	assert.Equal(t, []int{0}, res.Nodes)
}

func TestCompute_StopsAtFirstTarget(t *testing.T) {
	res, err := Compute(diamond(), 0, []int{4, 2}, testConfig(), algotest.Exec())
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1, 2}, res.Nodes)
	assert.True(t, res.TargetFound)
}

func TestCompute_SourceIsTarget(t *testing.T) {
	res, err := Compute(diamond(), 3, []int{3}, testConfig(), algotest.Exec())
	require.NoError(t, err)
	assert.Equal(t, []int{3}, res.Nodes)
	assert.True(t, res.TargetFound)
}

func TestCompute_UnreachableTarget(t *testing.T) {
	res, err := Compute(diamond(), 0, []int{5}, testConfig(), algotest.Exec())
	require.NoError(t, err)
	assert.Len(t, res.Nodes, 5)
	assert.False(t, res.TargetFound)
}

func TestCompute_InvalidNodes(t *testing.T) {
	_, err := Compute(diamond(), 9, nil, testConfig(), algotest.Exec())
	assert.ErrorIs(t, err, graph.ErrNodeOutOfRange)

	_, err = Compute(diamond(), 0, []int{-1}, testConfig(), algotest.Exec())
	assert.Equal(t, algorithms.KindGraph, algorithms.KindOf(err))
}

func TestCompute_Terminated(t *testing.T) {
	res, err := Compute(diamond(), 0, nil, testConfig(), algotest.Terminated())
	assert.Nil(t, res)
	assert.True(t, algorithms.IsCancelled(err))
}

func TestRun_ThroughStore(t *testing.T) {
	store := algotest.Store(t, 4, algotest.Path(4)...)
	cfg := testConfig()
	cfg.SourceNode = 1
	cfg.Orientation = graph.Undirected

	res, err := algorithms.Run(context.Background(), Algorithm{}, store, cfg, algotest.Exec())
	require.NoError(t, err)

	rows := results.Collect(Build(store, cfg, res))
	require.Len(t, rows, 1)
	assert.Equal(t, []uint64{1, 0, 2, 3}, rows[0]["nodeIds"])
	assert.Equal(t, []float64{0, 1, 1, 2}, rows[0]["costs"])
}

func TestRun_UnknownSource(t *testing.T) {
	store := algotest.Store(t, 2, [2]int{0, 1})
	cfg := testConfig()
	cfg.SourceNode = 7
	_, err := algorithms.Run(context.Background(), Algorithm{}, store, cfg, algotest.Exec())
	assert.ErrorIs(t, err, graphstore.ErrNodeNotFound)
}
