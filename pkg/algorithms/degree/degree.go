// Package degree scores every node by its number of relationships, or by
// the sum of their weights when a weight property is configured. Only
// positive weights count. Cancellation is checked once per batch.
package degree

import (
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
	return algorithms.ArrayOf(n, algorithms.BytesPerFloat64).
		Add(algorithms.ArrayOf(2*rels, algorithms.BytesPerInt))
}

func (Algorithm) Compute(store *graphstore.GraphStore, cfg Config, exec *algorithms.Execution) (*Result, error) {
	view, err := algorithms.Project(Name, store, cfg.BaseConfig, algorithms.Projection{
		Orientation:    cfg.Orientation,
		WeightProperty: cfg.RelationshipWeightProperty,
	})
	if err != nil {
		return nil, err
	}
	return Compute(view, cfg, exec)
}

type Result struct {
	Scores []float64
}

func Compute(view graph.View, cfg Config, exec *algorithms.Execution) (*Result, error) {
	exec = exec.WithDefaults()
	if err := exec.Termination.AssertRunning(); err != nil {
		return nil, err
	}

	n := view.NodeCount()
	scores := make([]float64, n)
	parts := concurrency.DegreePartitions(n, cfg.Concurrency, view.Degree)
	err := exec.Track("Degree :: sum", n, func() error {
		return concurrency.RunPartitions(exec.Termination, cfg.Concurrency, parts, func(p concurrency.Partition) error {
			for v := p.Start; v < p.End(); v++ {
				if !view.HasWeights() {
					scores[v] = float64(view.Degree(v))
					continue
				}
				sum := 0.0
				for _, w := range view.WeightedNeighbors(v, graph.DefaultWeight) {
					if w > 0 {
						sum += w
					}
				}
				scores[v] = sum
			}
			exec.Progress(p.Length)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return &Result{Scores: scores}, nil
}

func Build(ids results.IDMap, _ Config, r *Result) results.Builder {
	return results.NewNodeValues(ids, "score", r.Scores)
}
