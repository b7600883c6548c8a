package bellmanford

import (
	"math"
	"slices"
	"sync"

	"github.com/dd0wney/cluso-gds/pkg/algorithms"
	"github.com/dd0wney/cluso-gds/pkg/concurrency"
	"github.com/dd0wney/cluso-gds/pkg/graph"
	"github.com/dd0wney/cluso-gds/pkg/logging"
	"github.com/dd0wney/cluso-gds/pkg/results"
)

// Result holds a shortest path to every reachable node, ordered by target,
// or, when a negative cycle is reachable from the source, that cycle and
// no paths.
type Result struct {
	Paths                 []results.Path
	NegativeCycle         results.Path
	ContainsNegativeCycle bool
}

type state struct {
	dist       []float64
	pred       []int
	predWeight []float64
	queued     []bool
	locks      *concurrency.StripedLocks
}

// Compute runs frontier-based Bellman-Ford in synchronous rounds. Round k
// relaxes the relationships of the nodes improved in round k-1, using
// their distances as of the start of the round, so after round k every
// distance is the weight of a walk of at most k relationships. An
// improvement in round n therefore needs a walk of n relationships and
// proves a negative cycle. Updates to one target are serialized by a
// striped lock that covers its distance and predecessor together.
func Compute(view graph.View, source int, cfg Config, exec *algorithms.Execution) (*Result, error) {
	exec = exec.WithDefaults()
	if err := exec.Termination.AssertRunning(); err != nil {
		return nil, err
	}
	if err := algorithms.CheckNode(Name, "SourceNode", view, source); err != nil {
		return nil, err
	}

	n := view.NodeCount()
	st := &state{
		dist:       make([]float64, n),
		pred:       make([]int, n),
		predWeight: make([]float64, n),
		queued:     make([]bool, n),
		locks:      concurrency.NewStripedLocks(max(64, 4*cfg.Concurrency)),
	}
	for i := range st.dist {
		st.dist[i] = math.Inf(1)
		st.pred[i] = -1
	}
	st.dist[source] = 0

	frontier := []int{source}
	rounds := 0
	err := exec.Track("BellmanFord :: relax", n, func() error {
		for ; len(frontier) > 0 && rounds < n; rounds++ {
			next, err := st.relax(view, frontier, cfg.Concurrency, exec.Termination)
			if err != nil {
				return err
			}
			exec.Progress(1)
			frontier = next
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	res := &Result{}
	if len(frontier) > 0 {
		res.ContainsNegativeCycle = true
		res.NegativeCycle = st.findCycle(frontier, n)
		exec.Logger.Debug("negative cycle found", logging.Int("rounds", rounds), logging.Int("cycle_length", len(res.NegativeCycle.Nodes)-1))
		return res, nil
	}
	for v := 0; v < n; v++ {
		if !math.IsInf(st.dist[v], 1) {
			res.Paths = append(res.Paths, st.trace(v))
		}
	}
	return res, nil
}

func (st *state) relax(view graph.View, frontier []int, conc int, flag *concurrency.TerminationFlag) ([]int, error) {
	snapshot := make([]float64, len(frontier))
	for i, v := range frontier {
		snapshot[i] = st.dist[v]
	}

	var (
		mu   sync.Mutex
		next []int
	)
	parts := concurrency.RangePartitions(len(frontier), conc, 64)
	err := concurrency.RunPartitions(flag, conc, parts, func(p concurrency.Partition) error {
		var local []int
		for i := p.Start; i < p.End(); i++ {
			v, dv := frontier[i], snapshot[i]
			for u, w := range view.WeightedNeighbors(v, graph.DefaultWeight) {
				if math.IsNaN(w) {
					return algorithms.NewError(Name).Kind(algorithms.KindGraph).
						Context("relationship %d->%d has no numeric weight", v, u).Err()
				}
				d := dv + w
				lock := st.locks.For(uint64(u))
				lock.Lock()
				if d < st.dist[u] {
					st.dist[u] = d
					st.pred[u] = v
					st.predWeight[u] = w
					if !st.queued[u] {
						st.queued[u] = true
						local = append(local, u)
					}
				}
				lock.Unlock()
			}
		}
		mu.Lock()
		next = append(next, local...)
		mu.Unlock()
		return nil
	})
	if err != nil {
		return nil, err
	}
	for _, u := range next {
		st.queued[u] = false
	}
	slices.Sort(next)
	return next, nil
}

// trace follows predecessors back to the source
func (st *state) trace(target int) results.Path {
	var nodes []int
	for v := target; v >= 0; v = st.pred[v] {
		nodes = append(nodes, v)
	}
	slices.Reverse(nodes)
	costs := make([]float64, len(nodes))
	for i, v := range nodes {
		costs[i] = st.dist[v]
	}
	return results.Path{Source: nodes[0], Target: target, Nodes: nodes, Costs: costs}
}

// findCycle walks n predecessors back from a node improved in the last
// round, which ends on a cycle of the predecessor graph, and returns that
// cycle starting and ending at the same node. Costs accumulate the
// relationship weights along it.
func (st *state) findCycle(improved []int, n int) results.Path {
	for _, start := range improved {
		v := start
		for i := 0; i < n && v >= 0; i++ {
			v = st.pred[v]
		}
		if v < 0 {
			continue
		}
		nodes := []int{v}
		for u := st.pred[v]; u != v; u = st.pred[u] {
			nodes = append(nodes, u)
		}
		nodes = append(nodes, v)
		slices.Reverse(nodes)

		costs := make([]float64, len(nodes))
		for i := 1; i < len(nodes); i++ {
			costs[i] = costs[i-1] + st.predWeight[nodes[i]]
		}
		return results.Path{Source: v, Target: v, Nodes: nodes, Costs: costs}
	}
	return results.Path{}
}
