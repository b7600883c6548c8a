// Package wcc finds weakly connected components with a concurrent
// union-find.
//
// Workers scan contiguous node batches and union every node with its
// neighbors through compare-and-swap on parent pointers; no lock is held.
// The smaller root always becomes the parent, which trades the path bound
// of union-by-rank for component ids that do not depend on scheduling.
// Cancellation is checked once per batch.
package wcc

import (
	"github.com/dd0wney/cluso-gds/pkg/algorithms"
	"github.com/dd0wney/cluso-gds/pkg/graphstore"
	"github.com/dd0wney/cluso-gds/pkg/results"
)

// Algorithm is the WCC entry point for the registry
type Algorithm struct{}

var _ algorithms.Algorithm[Config, *Result] = Algorithm{}

func (Algorithm) Name() string          { return Name }
func (Algorithm) DefaultConfig() Config { return DefaultConfig() }

// Estimate counts the parent array, the output array and the projection.
func (Algorithm) Estimate(store *graphstore.GraphStore, cfg Config) algorithms.MemoryRange {
	n := store.NodeCount()
	rels := store.RelationshipCount(cfg.RelationshipTypes...)
	return algorithms.ArrayOf(n, algorithms.BytesPerInt64).Times(2).
		Add(algorithms.ArrayOf(2*rels, algorithms.BytesPerInt))
}

// Compute projects store and runs union-find
func (Algorithm) Compute(store *graphstore.GraphStore, cfg Config, exec *algorithms.Execution) (*Result, error) {
	sr, err := NewStorageRuntime(store, cfg)
	if err != nil {
		return nil, err
	}
	return Compute(sr.View(), cfg, exec)
}

// Build adapts a result to the output modes
func Build(ids results.IDMap, _ Config, r *Result) results.Builder {
	return results.NewPartition(ids, "component", r.Components).
		With("componentCount", r.ComponentCount)
}
