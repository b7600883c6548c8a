// Package harmonic computes harmonic centrality: the mean inverse distance
// from the other n-1 nodes, with unreachable pairs contributing 0. It
// shares the multi-source BFS and cancellation granularity of closeness.
package harmonic

import (
	"github.com/dd0wney/cluso-gds/pkg/algorithms"
	"github.com/dd0wney/cluso-gds/pkg/algorithms/msbfs"
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
	perWorker := algorithms.ArrayOf(n, msbfs.Omega/8).Times(3).
		Add(algorithms.ArrayOf(n, algorithms.BytesPerInt).Times(2))
	return algorithms.ArrayOf(n, algorithms.BytesPerFloat64).
		Add(perWorker.Times(cfg.Concurrency)).
		Add(algorithms.ArrayOf(2*rels, algorithms.BytesPerInt))
}

func (Algorithm) Compute(store *graphstore.GraphStore, cfg Config, exec *algorithms.Execution) (*Result, error) {
	view, err := algorithms.Project(Name, store, cfg.BaseConfig, algorithms.Projection{Orientation: cfg.Orientation})
	if err != nil {
		return nil, err
	}
	return Compute(view, cfg, exec)
}

type Result struct {
	Scores []float64
}

// Compute sums 1/depth at every node a source reaches and normalizes by
// n-1. A graph of at most one node scores 0 everywhere.
func Compute(view graph.View, cfg Config, exec *algorithms.Execution) (*Result, error) {
	exec = exec.WithDefaults()
	if err := exec.Termination.AssertRunning(); err != nil {
		return nil, err
	}

	n := view.NodeCount()
	sums := concurrency.NewAtomicFloat64Array(n)
	err := exec.Track("Harmonic :: inverse distances", n, func() error {
		return msbfs.Run(view, exec.Termination, cfg.Concurrency,
			func(_, node, depth int, sources uint64) {
				if depth > 0 {
					sums.Add(node, float64(msbfs.Count(sources))/float64(depth))
				}
			},
			exec.Progress)
	})
	if err != nil {
		return nil, err
	}

	scores := sums.ToSlice()
	if n <= 1 {
		clear(scores)
		return &Result{Scores: scores}, nil
	}
	for v := range scores {
		scores[v] /= float64(n - 1)
	}
	return &Result{Scores: scores}, nil
}

func Build(ids results.IDMap, _ Config, r *Result) results.Builder {
	return results.NewNodeValues(ids, "score", r.Scores)
}
