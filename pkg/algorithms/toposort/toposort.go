// Package toposort orders the nodes of a directed graph so that every
// relationship points forward, and can compute each node's longest
// distance from a node without incoming relationships. Nodes on cycles are
// not part of the order. Cancellation is checked once per level.
package toposort

import (
	"math"

	"github.com/dd0wney/cluso-gds/pkg/algorithms"
	"github.com/dd0wney/cluso-gds/pkg/concurrency"
	"github.com/dd0wney/cluso-gds/pkg/graph"
	"github.com/dd0wney/cluso-gds/pkg/graphstore"
	"github.com/dd0wney/cluso-gds/pkg/results"
)

type Algorithm struct{}

var _ algorithms.Algorithm[Config, *Result] = Algorithm{}

func (Algorithm) Name() string          { return Name }
func (Algorithm) DefaultConfig() Config { return DefaultConfig() }

func (Algorithm) Estimate(store *graphstore.GraphStore, cfg Config) algorithms.MemoryRange {
	n := store.NodeCount()
	rels := store.RelationshipCount(cfg.RelationshipTypes...)
	m := algorithms.ArrayOf(n, algorithms.BytesPerInt64).
		Add(algorithms.ArrayOf(n, algorithms.BytesPerInt).Times(2)).
		Add(algorithms.ArrayOf(rels, algorithms.BytesPerInt))
	if cfg.ComputeMaxDistanceFromSource {
		m = m.Add(algorithms.ArrayOf(n, algorithms.BytesPerFloat64))
	}
	return m
}

func (Algorithm) Compute(store *graphstore.GraphStore, cfg Config, exec *algorithms.Execution) (*Result, error) {
	p := algorithms.Projection{Orientation: graph.Natural}
	if cfg.ComputeMaxDistanceFromSource {
		p.WeightProperty = cfg.RelationshipWeightProperty
	}
	view, err := algorithms.Project(Name, store, cfg.BaseConfig, p)
	if err != nil {
		return nil, err
	}
	return Compute(view, cfg, exec)
}

// Result holds the sorted nodes and, when requested, the longest distance
// of every node indexed by node id. Unsorted nodes have a NaN distance.
type Result struct {
	Order        []int
	MaxDistances []float64
	NodeCount    int
}

func Compute(view graph.View, cfg Config, exec *algorithms.Execution) (*Result, error) {
	exec = exec.WithDefaults()
	if err := exec.Termination.AssertRunning(); err != nil {
		return nil, err
	}

	n := view.NodeCount()
	var (
		dist  *concurrency.AtomicFloat64Array
		relax RelaxFunc
	)
	if cfg.ComputeMaxDistanceFromSource {
		dist = concurrency.NewAtomicFloat64Array(n)
		relax = func(source, target int, w float64) error {
			dist.UpdateMax(target, dist.Get(source)+w)
			return nil
		}
	}

	var order []int
	err := exec.Track("TopologicalSort :: traverse", n, func() error {
		var err error
		order, err = Order(view, cfg.Concurrency, exec.Termination, relax, exec.Progress)
		return err
	})
	if err != nil {
		return nil, err
	}

	res := &Result{Order: order, NodeCount: n}
	if dist != nil {
		res.MaxDistances = dist.ToSlice()
		sorted := make([]bool, n)
		for _, v := range order {
			sorted[v] = true
		}
		for v := range res.MaxDistances {
			if !sorted[v] {
				res.MaxDistances[v] = math.NaN()
			}
		}
	}
	return res, nil
}

// Build streams each sorted node with its position in the order and, when
// computed, its longest distance.
func Build(ids results.IDMap, _ Config, r *Result) results.Builder {
	position := make([]int64, r.NodeCount)
	for i := range position {
		position[i] = -1
	}
	for i, v := range r.Order {
		position[v] = int64(i)
	}
	b := results.NewNodeValues(ids, "position", position).
		Skip(func(_ int, p int64) bool { return p < 0 }).
		With("sortedNodeCount", len(r.Order)).
		With("cycleNodeCount", len(position)-len(r.Order))
	if r.MaxDistances != nil {
		b.WithColumn("maxDistanceFromSource", func(node int) any { return r.MaxDistances[node] })
	}
	return b
}
