package nodesim

import (
	"cmp"
	"math"
	"slices"

	"github.com/dd0wney/cluso-gds/pkg/algorithms"
	"github.com/dd0wney/cluso-gds/pkg/concurrency"
	"github.com/dd0wney/cluso-gds/pkg/graph"
	"github.com/dd0wney/cluso-gds/pkg/logging"
	"github.com/dd0wney/cluso-gds/pkg/results"
)

// Result holds the kept pairs. Without TopN they are grouped by the first
// node in ascending order, best score first within a group; with TopN they
// are ordered by score overall.
type Result struct {
	Pairs         []results.Pair
	NodesCompared int
}

// Score computes metric for two neighbor sets of the given sizes sharing
// intersection members. Empty sets score 0.
func Score(metric string, intersection, sizeA, sizeB int) float64 {
	if intersection == 0 || sizeA == 0 || sizeB == 0 {
		return 0
	}
	i := float64(intersection)
	switch metric {
	case MetricOverlap:
		return i / float64(min(sizeA, sizeB))
	case MetricCosine:
		return i / math.Sqrt(float64(sizeA)*float64(sizeB))
	default:
		return i / float64(sizeA+sizeB-intersection)
	}
}

// neighborSets returns the distinct neighbors of every node without self
// loops, plus the inverted index from a neighbor to the nodes holding it.
func neighborSets(view graph.View) (sets, holders [][]int) {
	n := view.NodeCount()
	sets = make([][]int, n)
	holders = make([][]int, n)
	for v := range n {
		var set []int
		for u := range view.Neighbors(v) {
			if u != v {
				set = append(set, u)
			}
		}
		slices.Sort(set)
		sets[v] = slices.Compact(set)
		for _, u := range sets[v] {
			holders[u] = append(holders[u], v)
		}
	}
	return sets, holders
}

func byScore(a, b results.Pair) int {
	if c := cmp.Compare(b.Score, a.Score); c != 0 {
		return c
	}
	if c := cmp.Compare(a.Node1, b.Node1); c != 0 {
		return c
	}
	return cmp.Compare(a.Node2, b.Node2)
}

// Compute compares every node with each node it shares a neighbor with.
// Nodes are handed to workers in batches; cancellation is checked per batch.
func Compute(view graph.View, cfg Config, exec *algorithms.Execution) (*Result, error) {
	exec = exec.WithDefaults()
	if err := exec.Termination.AssertRunning(); err != nil {
		return nil, err
	}

	n := view.NodeCount()
	sets, holders := neighborSets(view)
	eligible := func(v int) bool { return len(sets[v]) >= cfg.DegreeCutoff }
	perNode := make([][]results.Pair, n)
	batch := max(1, min(256, n/(cfg.Concurrency*4)))

	err := exec.Track("NodeSimilarity :: compare", n, func() error {
		return concurrency.ParallelFor(exec.Termination, cfg.Concurrency, n, batch,
			func() map[int]int { return map[int]int{} },
			func(shared map[int]int, a int) error {
				defer exec.Progress(1)
				if !eligible(a) {
					return nil
				}
				clear(shared)
				for _, x := range sets[a] {
					for _, b := range holders[x] {
						if b != a && eligible(b) {
							shared[b]++
						}
					}
				}
				var pairs []results.Pair
				for b, common := range shared {
					s := Score(cfg.Metric, common, len(sets[a]), len(sets[b]))
					if s > 0 && s >= cfg.SimilarityCutoff {
						pairs = append(pairs, results.Pair{Node1: a, Node2: b, Score: s})
					}
				}
				slices.SortFunc(pairs, byScore)
				if cfg.TopK > 0 && len(pairs) > cfg.TopK {
					pairs = slices.Clip(pairs[:cfg.TopK])
				}
				perNode[a] = pairs
				return nil
			})
	})
	if err != nil {
		return nil, err
	}

	res := &Result{Pairs: slices.Concat(perNode...)}
	for v := range n {
		if eligible(v) {
			res.NodesCompared++
		}
	}
	if cfg.TopN > 0 {
		slices.SortFunc(res.Pairs, byScore)
		if len(res.Pairs) > cfg.TopN {
			res.Pairs = res.Pairs[:cfg.TopN]
		}
	}
	exec.Logger.Debug("node similarity finished",
		logging.Int("pairs", len(res.Pairs)), logging.Int("compared", res.NodesCompared))
	return res, nil
}
