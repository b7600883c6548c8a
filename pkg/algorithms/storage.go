package algorithms

import (
	"github.com/dd0wney/cluso-gds/pkg/graph"
	"github.com/dd0wney/cluso-gds/pkg/graphstore"
)

// Projection is what a storage runtime asks of the graph store.
type Projection struct {
	Orientation    graph.Orientation
	WeightProperty string
	InverseIndex   bool
}

// Project builds the view an algorithm needs from store. Errors are
// KindGraph and name the missing relationship type or property.
func Project(algorithm string, store *graphstore.GraphStore, base BaseConfig, p Projection) (*graph.CSRGraph, error) {
	view, err := store.Project(graphstore.ProjectionConfig{
		RelationshipTypes: base.RelationshipTypes,
		Orientation:       p.Orientation,
		WeightProperty:    p.WeightProperty,
		InverseIndex:      p.InverseIndex,
	})
	if err != nil {
		b := NewError(algorithm).Kind(KindGraph).Cause(err)
		if p.WeightProperty != "" && graphstore.IsNotFound(err) {
			b.Field(p.WeightProperty)
		}
		return nil, b.Err()
	}
	return view, nil
}

// ResolveNode maps a caller-supplied original node id to its dense id.
func ResolveNode(algorithm, field string, store *graphstore.GraphStore, id uint64) (int, error) {
	dense, ok := store.DenseID(id)
	if !ok {
		return 0, NewError(algorithm).Kind(KindGraph).Field(field).
			Cause(graphstore.NodeNotFoundError("resolve", id)).Err()
	}
	return dense, nil
}

// ResolveNodes maps several original ids, failing on the first unknown one.
func ResolveNodes(algorithm, field string, store *graphstore.GraphStore, ids []uint64) ([]int, error) {
	out := make([]int, len(ids))
	for i, id := range ids {
		d, err := ResolveNode(algorithm, field, store, id)
		if err != nil {
			return nil, err
		}
		out[i] = d
	}
	return out, nil
}

// CheckNode validates a dense id against the view, for computation runtimes
// called directly with caller-chosen sources.
func CheckNode(algorithm, field string, view graph.View, node int) error {
	if node < 0 || node >= view.NodeCount() {
		return NewError(algorithm).Kind(KindGraph).Field(field).
			Context("node %d with %d nodes", node, view.NodeCount()).
			Cause(graph.ErrNodeOutOfRange).Err()
	}
	return nil
}

// NonNegativeLongs reads a node property of ids or counts, such as seed
// communities. Missing, negative or fractional values come back as -1.
func NonNegativeLongs(algorithm, field string, store *graphstore.GraphStore, key string) ([]int64, error) {
	prop, err := store.NodeProperty(key)
	if err != nil {
		return nil, NewError(algorithm).Kind(KindGraph).Field(field).Cause(err).Err()
	}
	out := make([]int64, prop.Len())
	for i := range out {
		v, ok := prop.Long(i)
		if !ok || v < 0 {
			v = -1
		}
		out[i] = v
	}
	return out, nil
}
