package msbfs

import (
	"math/bits"
	"math/rand/v2"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dd0wney/cluso-gds/pkg/concurrency"
	"github.com/dd0wney/cluso-gds/pkg/graph"
)

func bfs(view graph.View, s int) []int {
	dist := make([]int, view.NodeCount())
	for i := range dist {
		dist[i] = -1
	}
	dist[s] = 0
	queue := []int{s}
	for len(queue) > 0 {
		v := queue[0]
		queue = queue[1:]
		for u := range view.Neighbors(v) {
			if dist[u] < 0 {
				dist[u] = dist[v] + 1
				queue = append(queue, u)
			}
		}
	}
	return dist
}

func TestRun_MatchesSingleSourceBFS(t *testing.T) {
	// more than two batches of sources
	n := 150
	rng := rand.New(rand.NewPCG(1, 2))
	edges := make([][2]int, 400)
	for i := range edges {
		edges[i] = [2]int{rng.IntN(n), rng.IntN(n)}
	}
	view := graph.FromEdges(n, graph.Natural, edges...)

	got := make([][]int, n)
	for i := range got {
		got[i] = make([]int, n)
		for j := range got[i] {
			got[i][j] = -1
		}
	}
	var mu sync.Mutex
	visits := 0
	sourceCount := 0
	err := Run(view, concurrency.RunningTrue(), 4,
		func(offset, node, depth int, sources uint64) {
			mu.Lock()
			defer mu.Unlock()
			for m := sources; m != 0; m &= m - 1 {
				s := offset + bits.TrailingZeros64(m)
				got[s][node] = depth
				visits++
			}
		},
		func(sources int) {
			mu.Lock()
			sourceCount += sources
			mu.Unlock()
		})
	require.NoError(t, err)
	assert.Equal(t, n, sourceCount)

	reachable := 0
	for s := 0; s < n; s++ {
		want := bfs(view, s)
		assert.Equal(t, want, got[s], "source %d", s)
		for _, d := range want {
			if d >= 0 {
				reachable++
			}
		}
	}
	assert.Equal(t, reachable, visits)
}

func TestRun_Terminated(t *testing.T) {
	flag := concurrency.RunningTrue()
	flag.Terminate()
	view := graph.FromEdges(3, graph.Undirected, [2]int{0, 1})
	err := Run(view, flag, 2, func(int, int, int, uint64) {}, nil)
	assert.ErrorIs(t, err, concurrency.ErrTerminated)
}

func TestCount(t *testing.T) {
	assert.Equal(t, 3, Count(0b1011))
	assert.Equal(t, 64, Count(^uint64(0)))
}
