package labelprop

import (
	"github.com/dd0wney/cluso-gds/pkg/algorithms"
	"github.com/dd0wney/cluso-gds/pkg/concurrency"
	"github.com/dd0wney/cluso-gds/pkg/graph"
	"github.com/dd0wney/cluso-gds/pkg/logging"
)

// Result holds one label per node. Unseeded runs report each community
// under its smallest member id; seeded runs report the labels as they
// propagated, so seed values are kept.
type Result struct {
	Labels         []int64
	CommunityCount int
	Iterations     int
	Converged      bool
}

// Compute repeatedly moves every node to the label with the largest total
// relationship weight among its neighbors, breaking ties by the smallest
// label. Labels are updated in place, so a node already sees the new
// labels of nodes processed before it in the same iteration. With more
// than one worker that order depends on scheduling. The run converges when
// an iteration changes no label.
//
// seeds may be nil; negative entries mark unseeded nodes, which start with
// a label above every seed.
func Compute(view graph.View, seeds []int64, cfg Config, exec *algorithms.Execution) (*Result, error) {
	exec = exec.WithDefaults()
	if err := exec.Termination.AssertRunning(); err != nil {
		return nil, err
	}

	n := view.NodeCount()
	labels := concurrency.NewAtomicInt64Array(n)
	fresh := int64(0)
	for _, s := range seeds {
		fresh = max(fresh, s+1)
	}
	for v := 0; v < n; v++ {
		if seeds != nil && seeds[v] >= 0 {
			labels.Set(v, seeds[v])
		} else {
			labels.Set(v, fresh+int64(v))
		}
	}

	parts := concurrency.DegreePartitions(n, cfg.Concurrency, view.Degree)
	res := &Result{}
	err := exec.Track("LabelPropagation :: iterate", cfg.MaxIterations, func() error {
		for res.Iterations < cfg.MaxIterations {
			changed := concurrency.NewAtomicInt64Array(1)
			err := concurrency.ParallelFor(exec.Termination, cfg.Concurrency, len(parts), 1,
				func() map[int64]float64 { return map[int64]float64{} },
				func(votes map[int64]float64, i int) error {
					p := parts[i]
					for v := p.Start; v < p.End(); v++ {
						clear(votes)
						for u, w := range view.WeightedNeighbors(v, graph.DefaultWeight) {
							votes[labels.Get(u)] += w
						}
						if best, ok := winner(votes); ok && best != labels.Get(v) {
							labels.Set(v, best)
							changed.Add(0, 1)
						}
					}
					return nil
				})
			if err != nil {
				return err
			}
			res.Iterations++
			exec.Progress(1)
			if changed.Get(0) == 0 {
				res.Converged = true
				return nil
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	res.Labels = labels.ToSlice()
	res.CommunityCount = normalize(res.Labels, seeds != nil)
	exec.Logger.Debug("label propagation finished",
		logging.Iterations(res.Iterations), logging.Bool("converged", res.Converged),
		logging.Int("communities", res.CommunityCount))
	if exec.Metrics != nil {
		exec.Metrics.RecordIterations(Name, res.Iterations)
	}
	return res, nil
}

// winner picks the label with the most weight, the smallest on ties. Nodes
// without neighbors, or with only non-positive votes, keep their label.
func winner(votes map[int64]float64) (int64, bool) {
	best, bestWeight, found := int64(0), 0.0, false
	for label, w := range votes {
		if w <= 0 {
			continue
		}
		if !found || w > bestWeight || (w == bestWeight && label < best) {
			best, bestWeight, found = label, w, true
		}
	}
	return best, found
}

// normalize counts the labels and, unless keep is set, rewrites each label
// as the smallest node id carrying it.
func normalize(labels []int64, keep bool) int {
	smallest := map[int64]int64{}
	for v, l := range labels {
		if _, ok := smallest[l]; !ok {
			smallest[l] = int64(v)
		}
	}
	if !keep {
		for v, l := range labels {
			labels[v] = smallest[l]
		}
	}
	return len(smallest)
}
