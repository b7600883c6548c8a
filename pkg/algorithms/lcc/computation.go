package lcc

import (
	"github.com/dd0wney/cluso-gds/pkg/algorithms"
	"github.com/dd0wney/cluso-gds/pkg/algorithms/triangle"
	"github.com/dd0wney/cluso-gds/pkg/concurrency"
	"github.com/dd0wney/cluso-gds/pkg/graph"
)

type Result struct {
	Coefficients []float64
	Average      float64
}

// Compute derives 2T / (d(d-1)) per node from triangle counts, where d is
// the number of distinct neighbors. Nodes with fewer than two neighbors
// score 0. When triangles is nil they are counted first; negative stored
// counts also score 0.
func Compute(view graph.View, triangles []int64, cfg Config, exec *algorithms.Execution) (*Result, error) {
	exec = exec.WithDefaults()
	if err := exec.Termination.AssertRunning(); err != nil {
		return nil, err
	}

	var degrees []int
	if triangles == nil {
		tc, err := triangle.Compute(view, triangle.Config{BaseConfig: cfg.BaseConfig}, exec)
		if err != nil {
			return nil, err
		}
		triangles, degrees = tc.Local, tc.Degrees
	} else {
		adj, err := triangle.Neighborhoods(view, cfg.Concurrency, exec.Termination)
		if err != nil {
			return nil, err
		}
		degrees = make([]int, len(adj))
		for v, a := range adj {
			degrees[v] = len(a)
		}
	}

	n := view.NodeCount()
	coefficients := make([]float64, n)
	parts := concurrency.RangePartitions(n, cfg.Concurrency, 4096)
	err := exec.Track("LocalClusteringCoefficient", n, func() error {
		return concurrency.RunPartitions(exec.Termination, cfg.Concurrency, parts, func(p concurrency.Partition) error {
			for v := p.Start; v < p.End(); v++ {
				d := float64(degrees[v])
				if d < 2 || triangles[v] <= 0 {
					continue
				}
				coefficients[v] = 2 * float64(triangles[v]) / (d * (d - 1))
			}
			exec.Progress(p.Length)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	res := &Result{Coefficients: coefficients}
	if n > 0 {
		sum := 0.0
		for _, c := range coefficients {
			sum += c
		}
		res.Average = sum / float64(n)
	}
	return res, nil
}
