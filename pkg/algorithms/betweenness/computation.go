package betweenness

import (
	"container/heap"
	"math"

	"github.com/dd0wney/cluso-gds/pkg/algorithms"
	"github.com/dd0wney/cluso-gds/pkg/concurrency"
	"github.com/dd0wney/cluso-gds/pkg/graph"
)

// Result holds the raw dependency sums. For undirected views every pair is
// counted from both ends; Build halves them for presentation.
type Result struct {
	Scores      []float64
	SourceCount int
}

// sourceState is the per-worker scratch space. It is reset after every
// source by walking the settled stack and the discovered queue, so a worker
// never touches more than the nodes a source reached.
type sourceState struct {
	sigma   []float64
	delta   []float64
	dist    []float64
	settled []bool
	preds   [][]int
	stack   []int
	queue   []int
	pq      distHeap
}

func newSourceState(n int) *sourceState {
	st := &sourceState{
		sigma:   make([]float64, n),
		delta:   make([]float64, n),
		dist:    make([]float64, n),
		settled: make([]bool, n),
		preds:   make([][]int, n),
	}
	for i := range st.dist {
		st.dist[i] = math.Inf(1)
	}
	return st
}

func (st *sourceState) reset() {
	st.clear(st.stack)
	st.clear(st.queue)
	st.stack = st.stack[:0]
	st.queue = st.queue[:0]
	st.pq = st.pq[:0]
}

func (st *sourceState) clear(nodes []int) {
	for _, v := range nodes {
		st.sigma[v] = 0
		st.delta[v] = 0
		st.dist[v] = math.Inf(1)
		st.settled[v] = false
		st.preds[v] = st.preds[v][:0]
	}
}

// Compute runs Brandes' algorithm from every selected source. Sources are
// handed to workers one at a time; the termination flag is checked before
// each source, so a single source always runs to completion.
func Compute(view graph.View, cfg Config, exec *algorithms.Execution) (*Result, error) {
	exec = exec.WithDefaults()
	if err := exec.Termination.AssertRunning(); err != nil {
		return nil, err
	}

	n := view.NodeCount()
	sources := selectSources(view, cfg)
	scores := concurrency.NewAtomicFloat64Array(n)
	weighted := view.HasWeights()

	err := exec.Track("Betweenness", len(sources), func() error {
		return concurrency.ParallelFor(exec.Termination, cfg.Concurrency, len(sources), 1,
			func() *sourceState { return newSourceState(n) },
			func(st *sourceState, i int) error {
				s := sources[i]
				var err error
				if weighted {
					err = st.dijkstra(view, s)
				} else {
					st.bfs(view, s)
				}
				if err == nil {
					st.accumulate(s, scores)
				}
				st.reset()
				exec.Progress(1)
				return err
			})
	})
	if err != nil {
		return nil, err
	}
	return &Result{Scores: scores.ToSlice(), SourceCount: len(sources)}, nil
}

func (st *sourceState) bfs(view graph.View, s int) {
	st.dist[s] = 0
	st.sigma[s] = 1
	st.queue = append(st.queue, s)
	for head := 0; head < len(st.queue); head++ {
		v := st.queue[head]
		st.stack = append(st.stack, v)
		next := st.dist[v] + 1
		for w := range view.Neighbors(v) {
			if math.IsInf(st.dist[w], 1) {
				st.dist[w] = next
				st.queue = append(st.queue, w)
			}
			if st.dist[w] == next {
				st.sigma[w] += st.sigma[v]
				st.preds[w] = append(st.preds[w], v)
			}
		}
	}
}

func (st *sourceState) dijkstra(view graph.View, s int) error {
	st.dist[s] = 0
	st.sigma[s] = 1
	st.queue = append(st.queue, s)
	heap.Push(&st.pq, distItem{node: s})
	for st.pq.Len() > 0 {
		it := heap.Pop(&st.pq).(distItem)
		v := it.node
		if st.settled[v] || it.dist > st.dist[v] {
			continue
		}
		st.settled[v] = true
		st.stack = append(st.stack, v)
		for w, wt := range view.WeightedNeighbors(v, graph.DefaultWeight) {
			if wt < 0 || math.IsNaN(wt) {
				return algorithms.NewError(Name).Kind(algorithms.KindGraph).
					Context("relationship %d->%d has weight %g", v, w, wt).
					Cause(algorithms.ErrNegativeWeight).Err()
			}
			if st.settled[w] {
				continue
			}
			nd := st.dist[v] + wt
			switch {
			case nd < st.dist[w]:
				if math.IsInf(st.dist[w], 1) {
					st.queue = append(st.queue, w)
				}
				st.dist[w] = nd
				st.sigma[w] = st.sigma[v]
				st.preds[w] = append(st.preds[w][:0], v)
				heap.Push(&st.pq, distItem{node: w, dist: nd})
			case nd == st.dist[w]:
				st.sigma[w] += st.sigma[v]
				st.preds[w] = append(st.preds[w], v)
			}
		}
	}
	return nil
}

// accumulate walks the settled nodes from farthest to nearest and pushes
// each node's dependency into the shared scores.
func (st *sourceState) accumulate(s int, scores *concurrency.AtomicFloat64Array) {
	for i := len(st.stack) - 1; i >= 0; i-- {
		w := st.stack[i]
		coeff := (1 + st.delta[w]) / st.sigma[w]
		for _, u := range st.preds[w] {
			st.delta[u] += st.sigma[u] * coeff
		}
		if w != s && st.delta[w] != 0 {
			scores.Add(w, st.delta[w])
		}
	}
}

type distItem struct {
	node int
	dist float64
}

type distHeap []distItem

func (h distHeap) Len() int           { return len(h) }
func (h distHeap) Less(i, j int) bool { return h[i].dist < h[j].dist }
func (h distHeap) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }
func (h *distHeap) Push(x any)        { *h = append(*h, x.(distItem)) }
func (h *distHeap) Pop() any {
	old := *h
	it := old[len(old)-1]
	*h = old[:len(old)-1]
	return it
}
