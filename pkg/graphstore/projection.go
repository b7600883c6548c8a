package graphstore

import (
	"math"

	"github.com/dd0wney/cluso-gds/pkg/graph"
)

// ProjectionConfig selects what a storage runtime needs from the store.
type ProjectionConfig struct {
	// RelationshipTypes to include; empty means all types
	RelationshipTypes []string
	Orientation       graph.Orientation
	// WeightProperty names the relationship property used as weight;
	// empty means unweighted
	WeightProperty string
	// DefaultWeight replaces missing (NaN) weights; zero means 1.0
	DefaultWeight float64
	// InverseIndex also builds incoming adjacency for directed views
	InverseIndex bool
}

// Project builds the traversal view described by cfg. It fails with
// ErrGraphProjectionFailed for unknown relationship types and with
// ErrPropertyNotFound when a selected type lacks the weight property.
func (s *GraphStore) Project(cfg ProjectionConfig) (*graph.CSRGraph, error) {
	types := cfg.RelationshipTypes
	if len(types) == 0 {
		types = s.RelationshipTypes()
	}

	fallback := cfg.DefaultWeight
	if fallback == 0 {
		fallback = graph.DefaultWeight
	}

	weighted := cfg.WeightProperty != ""
	total := 0
	for _, t := range types {
		rels, ok := s.relationships[t]
		if !ok {
			return nil, NewError("project").Relationship(t).
				Context("available types %v", s.RelationshipTypes()).
				Cause(ErrGraphProjectionFailed).Err()
		}
		if weighted {
			if _, ok := rels.Properties[cfg.WeightProperty]; !ok {
				return nil, NewError("project").Property(cfg.WeightProperty).
					Context("missing on relationship type %q", t).
					Cause(ErrPropertyNotFound).Err()
			}
		}
		total += rels.Len()
	}

	b := graph.NewBuilder(s.NodeCount(), weighted)
	for _, t := range types {
		rels := s.relationships[t]
		var weights []float64
		if weighted {
			weights = rels.Properties[cfg.WeightProperty]
		}
		for i := range rels.Sources {
			w := graph.DefaultWeight
			if weights != nil {
				w = weights[i]
				if math.IsNaN(w) {
					w = fallback
				}
			}
			if err := b.Add(rels.Sources[i], rels.Targets[i], w); err != nil {
				return nil, NewError("project").Relationship(t).Cause(err).Err()
			}
		}
	}
	return b.Build(cfg.Orientation, cfg.InverseIndex), nil
}

// NodeDoubles resolves a node property as float64 values, failing with
// ErrPropertyNotFound when the key is unknown.
func (s *GraphStore) NodeDoubles(key string) ([]float64, error) {
	p, err := s.NodeProperty(key)
	if err != nil {
		return nil, err
	}
	out := make([]float64, p.Len())
	for i := range out {
		out[i] = p.Double(i)
	}
	return out, nil
}
