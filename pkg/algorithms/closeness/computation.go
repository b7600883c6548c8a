package closeness

import (
	"github.com/dd0wney/cluso-gds/pkg/algorithms"
	"github.com/dd0wney/cluso-gds/pkg/algorithms/msbfs"
	"github.com/dd0wney/cluso-gds/pkg/concurrency"
	"github.com/dd0wney/cluso-gds/pkg/graph"
	"github.com/dd0wney/cluso-gds/pkg/logging"
)

// Result holds one score per node together with the raw sums it came from.
type Result struct {
	Scores []float64
	// Farness is the sum of distances from every node that reaches this one
	Farness []int64
	// Reached counts those nodes, excluding the node itself
	Reached []int64
}

// Compute runs a multi-source BFS from every node. Distances are summed at
// the node reached, so under Natural orientation a score describes how
// close the rest of the graph is to the node. Nodes nobody reaches score 0.
func Compute(view graph.View, cfg Config, exec *algorithms.Execution) (*Result, error) {
	exec = exec.WithDefaults()
	if err := exec.Termination.AssertRunning(); err != nil {
		return nil, err
	}

	n := view.NodeCount()
	farness := concurrency.NewAtomicInt64Array(n)
	reached := concurrency.NewAtomicInt64Array(n)

	err := exec.Track("Closeness :: farness", n, func() error {
		return msbfs.Run(view, exec.Termination, cfg.Concurrency,
			func(_, node, depth int, sources uint64) {
				if depth == 0 {
					return
				}
				c := int64(msbfs.Count(sources))
				farness.Add(node, c*int64(depth))
				reached.Add(node, c)
			},
			exec.Progress)
	})
	if err != nil {
		return nil, err
	}

	res := &Result{Scores: make([]float64, n), Farness: farness.ToSlice(), Reached: reached.ToSlice()}
	err = exec.Track("Closeness :: scores", n, func() error {
		parts := concurrency.RangePartitions(n, cfg.Concurrency, 4096)
		return concurrency.RunPartitions(exec.Termination, cfg.Concurrency, parts, func(p concurrency.Partition) error {
			for v := p.Start; v < p.End(); v++ {
				res.Scores[v] = score(res.Farness[v], res.Reached[v], n, cfg.WassermanFaust)
			}
			exec.Progress(p.Length)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	exec.Logger.Debug("closeness computed", logging.NodeCount(n))
	return res, nil
}

func score(farness, reached int64, n int, wassermanFaust bool) float64 {
	if farness == 0 {
		return 0
	}
	c := float64(reached) / float64(farness)
	if wassermanFaust {
		if n <= 1 {
			return 0
		}
		c *= float64(reached) / float64(n-1)
	}
	return c
}
