// Package registry maps algorithm names to type-erased procedures and
// dispatches runs against catalog graphs in one of the output modes.
package registry

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/dd0wney/cluso-gds/pkg/algorithms"
	"github.com/dd0wney/cluso-gds/pkg/graphstore"
	"github.com/dd0wney/cluso-gds/pkg/metrics"
	"github.com/dd0wney/cluso-gds/pkg/results"
)

var (
	ErrUnknownAlgorithm = errors.New("unknown algorithm")
	ErrDuplicate        = errors.New("algorithm already registered")
)

// Category groups procedures in listings
type Category string

const (
	CategoryCentrality  Category = "centrality"
	CategoryCommunity   Category = "community"
	CategoryPathFinding Category = "pathFinding"
	CategorySimilarity  Category = "similarity"
)

// Procedure is one registered algorithm with its config type erased.
type Procedure struct {
	Name        string
	Category    Category
	Description string

	defaults func() any
	compute  func(ctx context.Context, store *graphstore.GraphStore, raw RawConfig, exec *algorithms.Execution) (results.Builder, error)
	estimate func(store *graphstore.GraphStore, raw RawConfig, m *metrics.Registry) (algorithms.MemoryRange, error)
}

// Define erases the types of alg. build adapts its result to the output
// modes.
func Define[C algorithms.Config, R any](alg algorithms.Algorithm[C, R], category Category, description string, build func(results.IDMap, C, R) results.Builder) Procedure {
	name := alg.Name()
	config := func(raw RawConfig) (C, error) {
		cfg := alg.DefaultConfig()
		err := decode(name, raw, &cfg)
		return cfg, err
	}
	return Procedure{
		Name:        name,
		Category:    category,
		Description: description,
		defaults:    func() any { return alg.DefaultConfig() },
		compute: func(ctx context.Context, store *graphstore.GraphStore, raw RawConfig, exec *algorithms.Execution) (results.Builder, error) {
			cfg, err := config(raw)
			if err != nil {
				return nil, err
			}
			r, err := algorithms.Run(ctx, alg, store, cfg, exec)
			if err != nil {
				return nil, err
			}
			return build(store, cfg, r), nil
		},
		estimate: func(store *graphstore.GraphStore, raw RawConfig, m *metrics.Registry) (algorithms.MemoryRange, error) {
			cfg, err := config(raw)
			if err != nil {
				return algorithms.MemoryRange{}, err
			}
			return algorithms.Estimate(alg, store, cfg, m)
		},
	}
}

// DefaultConfig returns the algorithm's default config value
func (p Procedure) DefaultConfig() any { return p.defaults() }

// Compute decodes raw over the defaults, runs the algorithm once and
// returns the result builder
func (p Procedure) Compute(ctx context.Context, store *graphstore.GraphStore, raw RawConfig, exec *algorithms.Execution) (results.Builder, error) {
	return p.compute(ctx, store, raw, exec)
}

// Estimate decodes raw over the defaults and estimates memory
func (p Procedure) Estimate(store *graphstore.GraphStore, raw RawConfig, m *metrics.Registry) (algorithms.MemoryRange, error) {
	return p.estimate(store, raw, m)
}

// Registry is a concurrency-safe set of procedures. Names are matched
// without regard to case.
type Registry struct {
	mu    sync.RWMutex
	procs map[string]Procedure
}

func New() *Registry {
	return &Registry{procs: make(map[string]Procedure)}
}

func (r *Registry) Register(p Procedure) error {
	key := strings.ToLower(p.Name)
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.procs[key]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicate, p.Name)
	}
	r.procs[key] = p
	return nil
}

// MustRegister panics on a duplicate name
func (r *Registry) MustRegister(procs ...Procedure) {
	for _, p := range procs {
		if err := r.Register(p); err != nil {
			panic(err)
		}
	}
}

func (r *Registry) Lookup(name string) (Procedure, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.procs[strings.ToLower(name)]
	if !ok {
		return Procedure{}, fmt.Errorf("%w: %q", ErrUnknownAlgorithm, name)
	}
	return p, nil
}

// Names returns the registered names in sorted order
func (r *Registry) Names() []string {
	r.mu.RLock()
	names := make([]string, 0, len(r.procs))
	for _, p := range r.procs {
		names = append(names, p.Name)
	}
	r.mu.RUnlock()
	slices.Sort(names)
	return names
}

// Procedures returns every procedure ordered by category and name
func (r *Registry) Procedures() []Procedure {
	r.mu.RLock()
	out := make([]Procedure, 0, len(r.procs))
	for _, p := range r.procs {
		out = append(out, p)
	}
	r.mu.RUnlock()
	slices.SortFunc(out, func(a, b Procedure) int {
		if c := strings.Compare(string(a.Category), string(b.Category)); c != 0 {
			return c
		}
		return strings.Compare(a.Name, b.Name)
	})
	return out
}
