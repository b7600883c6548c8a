// Package msbfs runs breadth-first searches from up to 64 sources at once.
//
// Every node carries three bit sets: which sources have seen it, which
// reach it in the current level and which reach it in the next. One pass
// over the frontier advances all sources of a batch together, so shared
// parts of their search trees are walked once.
package msbfs

import (
	"math/bits"

	"github.com/dd0wney/cluso-gds/pkg/concurrency"
	"github.com/dd0wney/cluso-gds/pkg/graph"
)

// Omega is the number of sources in one batch
const Omega = 64

// VisitFunc is called once per level for every node some source of the
// batch reaches at that depth; sources holds one bit per such source, bit
// i standing for source offset+i. Depth 0 reports the sources themselves.
type VisitFunc func(offset, node, depth int, sources uint64)

type state struct {
	seen, visit, next []uint64
	frontier          []int
	upcoming          []int
}

func newState(n int) *state {
	return &state{
		seen:  make([]uint64, n),
		visit: make([]uint64, n),
		next:  make([]uint64, n),
	}
}

// Run searches from every node of view in batches of Omega sources. Batches
// run concurrently; visit must tolerate concurrent calls for the same node
// from different batches. The flag is checked per batch.
func Run(view graph.View, flag *concurrency.TerminationFlag, conc int, visit VisitFunc, batchDone func(sources int)) error {
	n := view.NodeCount()
	batches := (n + Omega - 1) / Omega
	return concurrency.ParallelFor(flag, conc, batches, 1,
		func() *state { return newState(n) },
		func(st *state, b int) error {
			start := b * Omega
			count := min(Omega, n-start)
			st.run(view, start, count, visit)
			if batchDone != nil {
				batchDone(count)
			}
			return nil
		})
}

func (st *state) run(view graph.View, start, count int, visit VisitFunc) {
	for i := 0; i < count; i++ {
		s := start + i
		bit := uint64(1) << i
		st.seen[s] = bit
		st.visit[s] = bit
		st.frontier = append(st.frontier, s)
		visit(start, s, 0, bit)
	}

	for depth := 1; len(st.frontier) > 0; depth++ {
		for _, v := range st.frontier {
			mask := st.visit[v]
			for u := range view.Neighbors(v) {
				fresh := mask &^ st.seen[u]
				if fresh == 0 {
					continue
				}
				if st.next[u] == 0 {
					st.upcoming = append(st.upcoming, u)
				}
				st.next[u] |= fresh
				st.seen[u] |= fresh
			}
		}
		for _, v := range st.frontier {
			st.visit[v] = 0
		}
		for _, u := range st.upcoming {
			st.visit[u] = st.next[u]
			st.next[u] = 0
			visit(start, u, depth, st.visit[u])
		}
		st.frontier, st.upcoming = st.upcoming, st.frontier[:0]
	}

	clear(st.seen)
}

// Count returns the number of sources in a mask
func Count(sources uint64) int { return bits.OnesCount64(sources) }
