package kcore

import (
	"context"
	"math/rand/v2"
	"slices"
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
	return cfg
}

// a 4-clique with a two-node tail, a self loop on the tail end and an
// isolated node
func cliqueWithTail() [][2]int {
	return algotest.Concat(algotest.Complete(4), [][2]int{{3, 4}, {4, 5}, {5, 5}})
}

func TestCompute_CliqueWithTail(t *testing.T) {
	view := graph.FromEdges(7, graph.Undirected, cliqueWithTail()...)

	res, err := Compute(view, testConfig(3), algotest.Exec())
	require.NoError(t, err)
	assert.Equal(t, []int64{3, 3, 3, 3, 1, 1, 0}, res.Cores)
	assert.Equal(t, int64(3), res.Degeneracy)
}

func TestCompute_Empty(t *testing.T) {
	res, err := Compute(graph.FromEdges(0, graph.Undirected), testConfig(2), algotest.Exec())
	require.NoError(t, err)
	assert.Empty(t, res.Cores)
	assert.Zero(t, res.Degeneracy)
}

func TestCompute_Terminated(t *testing.T) {
	view := graph.FromEdges(3, graph.Undirected, algotest.Path(3)...)
	res, err := Compute(view, testConfig(2), algotest.Terminated())
	assert.Nil(t, res)
	assert.True(t, algorithms.IsCancelled(err))
}

func TestRun_ThroughStore(t *testing.T) {
	store := algotest.Store(t, 7, cliqueWithTail()...)

	res, err := algorithms.Run(context.Background(), Algorithm{}, store, testConfig(2), algotest.Exec())
	require.NoError(t, err)

	stats := Build(store, testConfig(2), res).Stats()
	assert.Equal(t, int64(3), stats["degeneracy"])
	assert.Equal(t, 7, stats["nodeCount"])
}

// sequentialCores removes a node of minimum degree at a time
func sequentialCores(n int, edges [][2]int) []int64 {
	adj := make([][]int, n)
	for _, e := range edges {
		if e[0] != e[1] {
			adj[e[0]] = append(adj[e[0]], e[1])
			adj[e[1]] = append(adj[e[1]], e[0])
		}
	}
	deg := make([]int, n)
	for v := range n {
		deg[v] = len(adj[v])
	}
	cores := make([]int64, n)
	removed := make([]bool, n)
	k := 0
	for range n {
		best := -1
		for v := range n {
			if !removed[v] && (best < 0 || deg[v] < deg[best]) {
				best = v
			}
		}
		k = max(k, deg[best])
		cores[best] = int64(k)
		removed[best] = true
		for _, u := range adj[best] {
			if !removed[u] {
				deg[u]--
			}
		}
	}
	return cores
}

func TestProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 50
	properties := gopter.NewProperties(parameters)

	properties.Property("parallel peeling matches sequential peeling", prop.ForAll(
		func(n, m int, seed uint64, workers int) bool {
			rng := rand.New(rand.NewPCG(seed, 5))
			edges := make([][2]int, m)
			for i := range edges {
				edges[i] = [2]int{rng.IntN(n), rng.IntN(n)}
			}
			res, err := Compute(graph.FromEdges(n, graph.Undirected, edges...), testConfig(workers), algotest.Exec())
			if err != nil {
				return false
			}
			return slices.Equal(sequentialCores(n, edges), res.Cores)
		},
		gen.IntRange(1, 120),
		gen.IntRange(0, 400),
		gen.UInt64(),
		gen.IntRange(1, 8),
	))

	properties.TestingRun(t)
}
