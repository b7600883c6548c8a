package daglongest

import (
	"math"
	"slices"

	"github.com/dd0wney/cluso-gds/pkg/algorithms"
	"github.com/dd0wney/cluso-gds/pkg/algorithms/toposort"
	"github.com/dd0wney/cluso-gds/pkg/concurrency"
	"github.com/dd0wney/cluso-gds/pkg/graph"
	"github.com/dd0wney/cluso-gds/pkg/results"
)

// Result holds, for every node, the longest path ending in it, ordered by
// target id. A node without incoming relationships has a path of itself.
type Result struct {
	Paths []results.Path
}

// Compute relaxes relationships in topological order. Workers raise target
// distances concurrently with an atomic max on the bit pattern of the
// float, which is why weights must not be negative. Predecessors are
// chosen afterwards: the smallest in-neighbor whose distance plus weight
// equals the final distance.
//
// A graph with a cycle fails with ErrNotDAG; a negative or NaN weight with
// ErrNegativeWeight.
func Compute(view graph.View, cfg Config, exec *algorithms.Execution) (*Result, error) {
	exec = exec.WithDefaults()
	if err := exec.Termination.AssertRunning(); err != nil {
		return nil, err
	}

	n := view.NodeCount()
	dist := concurrency.NewAtomicFloat64Array(n)
	relax := func(source, target int, w float64) error {
		if w < 0 || math.IsNaN(w) {
			return algorithms.NewError(Name).Kind(algorithms.KindGraph).
				Context("relationship %d->%d has weight %v", source, target, w).
				Cause(algorithms.ErrNegativeWeight).Err()
		}
		if _, err := dist.MaxNonNegative(target, dist.Get(source)+w); err != nil {
			return algorithms.NewError(Name).Kind(algorithms.KindExecution).Cause(err).Err()
		}
		return nil
	}

	var order []int
	err := exec.Track("DagLongestPath :: relax", n, func() error {
		var err error
		order, err = toposort.Order(view, cfg.Concurrency, exec.Termination, relax, exec.Progress)
		return err
	})
	if err != nil {
		return nil, err
	}
	if len(order) < n {
		return nil, algorithms.NewError(Name).Kind(algorithms.KindGraph).
			Context("%d of %d nodes lie on or behind a cycle", n-len(order), n).
			Cause(algorithms.ErrNotDAG).Err()
	}

	distances := dist.ToSlice()
	pred := make([]int, n)
	parts := concurrency.RangePartitions(n, cfg.Concurrency, 1024)
	err = concurrency.RunPartitions(exec.Termination, cfg.Concurrency, parts, func(p concurrency.Partition) error {
		for v := p.Start; v < p.End(); v++ {
			pred[v] = -1
			for u, w := range view.InverseWeightedNeighbors(v, graph.DefaultWeight) {
				if distances[u]+w == distances[v] && (pred[v] < 0 || u < pred[v]) {
					pred[v] = u
				}
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	res := &Result{Paths: make([]results.Path, n)}
	for v := 0; v < n; v++ {
		var nodes []int
		for u := v; u >= 0; u = pred[u] {
			nodes = append(nodes, u)
		}
		slices.Reverse(nodes)
		costs := make([]float64, len(nodes))
		for i, u := range nodes {
			costs[i] = distances[u]
		}
		res.Paths[v] = results.Path{Source: nodes[0], Target: v, Nodes: nodes, Costs: costs}
	}
	return res, nil
}
