package pagerank

import (
	"math"

	"github.com/dd0wney/cluso-gds/pkg/algorithms"
	"github.com/dd0wney/cluso-gds/pkg/concurrency"
	"github.com/dd0wney/cluso-gds/pkg/graph"
	"github.com/dd0wney/cluso-gds/pkg/logging"
)

// Result holds one rank per node. Ranks are not normalized: with no
// dangling nodes they sum to the node count, or to the number of sources
// when personalized.
type Result struct {
	Scores     []float64
	Iterations int
	Converged  bool
}

// Compute runs delta PageRank. Every node starts at its teleport share,
// 1-d, or 0 for non-sources of a personalized run. Each iteration a node
// pulls d*delta(u)/out(u) from every in-neighbor u whose last change
// exceeded the tolerance and adds the sum to its rank. Weighted views
// split delta by relationship weight instead of count. The run has
// converged once no change exceeds the tolerance.
//
// Sources are dense ids; an empty list means every node.
func Compute(view graph.View, sources []int, cfg Config, exec *algorithms.Execution) (*Result, error) {
	exec = exec.WithDefaults()
	if err := exec.Termination.AssertRunning(); err != nil {
		return nil, err
	}
	for _, s := range sources {
		if err := algorithms.CheckNode(Name, "SourceNodes", view, s); err != nil {
			return nil, err
		}
	}

	n := view.NodeCount()
	parts := concurrency.RangePartitions(n, cfg.Concurrency, 1024)

	outWeight := make([]float64, n)
	err := exec.Track("PageRank :: out weights", n, func() error {
		return concurrency.RunPartitions(exec.Termination, cfg.Concurrency, parts, func(p concurrency.Partition) error {
			for v := p.Start; v < p.End(); v++ {
				sum := 0.0
				for u, w := range view.WeightedNeighbors(v, graph.DefaultWeight) {
					if w < 0 || math.IsNaN(w) {
						return algorithms.NewError(Name).Kind(algorithms.KindGraph).
							Context("relationship %d->%d has weight %v", v, u, w).
							Cause(algorithms.ErrNegativeWeight).Err()
					}
					sum += w
				}
				outWeight[v] = sum
			}
			exec.Progress(p.Length)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	alpha := 1 - cfg.DampingFactor
	rank := make([]float64, n)
	delta := make([]float64, n)
	if len(sources) == 0 {
		for v := range rank {
			rank[v] = alpha
		}
	} else {
		for _, s := range sources {
			rank[s] = alpha
		}
	}
	copy(delta, rank)
	next := make([]float64, n)
	// every node sends on the first iteration
	threshold := math.Inf(-1)

	res := &Result{Scores: rank}
	err = exec.Track("PageRank :: iterations", cfg.MaxIterations, func() error {
		for res.Iterations < cfg.MaxIterations {
			if err := exec.Termination.AssertRunning(); err != nil {
				return err
			}
			maxDelta := concurrency.NewAtomicFloat64Array(1)
			err := concurrency.RunPartitions(exec.Termination, cfg.Concurrency, parts, func(p concurrency.Partition) error {
				local := 0.0
				for v := p.Start; v < p.End(); v++ {
					sum := 0.0
					for u, w := range view.InverseWeightedNeighbors(v, graph.DefaultWeight) {
						if delta[u] > threshold && outWeight[u] > 0 {
							sum += delta[u] * w / outWeight[u]
						}
					}
					d := cfg.DampingFactor * sum
					next[v] = d
					rank[v] += d
					local = max(local, d)
				}
				maxDelta.UpdateMax(0, local)
				return nil
			})
			if err != nil {
				return err
			}
			res.Iterations++
			exec.Progress(1)

			delta, next = next, delta
			threshold = cfg.Tolerance
			if m := maxDelta.Get(0); m <= cfg.Tolerance {
				exec.Logger.Debug("pagerank converged",
					logging.Iterations(res.Iterations), logging.Float64("max_delta", m))
				res.Converged = true
				return nil
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if exec.Metrics != nil {
		exec.Metrics.RecordIterations(Name, res.Iterations)
	}
	return res, nil
}

