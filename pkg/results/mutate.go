package results

import (
	"fmt"

	"github.com/dd0wney/cluso-gds/pkg/catalog"
	"github.com/dd0wney/cluso-gds/pkg/graphstore"
	"github.com/dd0wney/cluso-gds/pkg/metrics"
	"github.com/dd0wney/cluso-gds/pkg/validation"
)

// MutateRequest says where a result is written back to.
type MutateRequest struct {
	// SourceGraph is the catalog graph the result was computed on
	SourceGraph string
	// TargetGraph receives the new snapshot; empty means SourceGraph.
	// A different name must not be taken yet.
	TargetGraph string
	// Property is the node property key, or the relationship property key
	// for relationship results (empty uses the builder's default)
	Property string
	// RelationshipType is required for relationship results
	RelationshipType string
}

// MutateResult reports what a mutation wrote
type MutateResult struct {
	Graph                 string `json:"graph"`
	NodePropertiesWritten int    `json:"nodePropertiesWritten"`
	RelationshipsWritten  int    `json:"relationshipsWritten"`
	RelationshipsDropped  int    `json:"relationshipsDropped"`
}

// Mutate writes the result of b into a new snapshot of the source graph and
// registers it under the target name. The source snapshot is never
// modified. Relationships with dangling endpoints are skipped and counted.
// Writing back to the source name goes through Catalog.Update, so
// concurrent mutations of one graph all land.
func Mutate(cat *catalog.Catalog, req MutateRequest, b Builder, m *metrics.Registry) (MutateResult, error) {
	target := req.TargetGraph
	if target == "" {
		target = req.SourceGraph
	}

	kind, err := mutationKind(b)
	if err != nil {
		return MutateResult{}, err
	}
	res := MutateResult{Graph: target}
	apply := func(store *graphstore.GraphStore) (*graphstore.GraphStore, error) {
		return mutateStore(store, req, b, &res)
	}

	if target == req.SourceGraph {
		err = cat.Update(target, apply)
	} else {
		var store, next *graphstore.GraphStore
		store, err = cat.Get(req.SourceGraph)
		if err == nil {
			next, err = apply(store)
		}
		if err == nil {
			err = cat.Put(target, next)
		}
	}
	if err != nil {
		return MutateResult{}, err
	}
	if m != nil {
		m.RecordMutation(kind)
	}
	return res, nil
}

func mutationKind(b Builder) (string, error) {
	switch b.(type) {
	case NodePropertyProducer:
		return "node_property", nil
	case RelationshipProducer:
		return "relationships", nil
	default:
		return "", fmt.Errorf("%w: %T cannot be mutated", ErrUnsupportedMode, b)
	}
}

// mutateStore builds the next snapshot of store and fills in res.
func mutateStore(store *graphstore.GraphStore, req MutateRequest, b Builder, res *MutateResult) (*graphstore.GraphStore, error) {
	switch p := b.(type) {
	case NodePropertyProducer:
		if err := validation.ValidatePropertyKey(req.Property); err != nil {
			return nil, err
		}
		prop := p.NodeProperty()
		next, err := store.WithNodeProperty(req.Property, prop, false)
		if err != nil {
			return nil, err
		}
		res.NodePropertiesWritten = prop.Len()
		return next, nil

	case RelationshipProducer:
		if err := validation.ValidateToken("relationship type", req.RelationshipType); err != nil {
			return nil, err
		}
		key := req.Property
		if key == "" {
			key = p.DefaultRelationshipProperty()
		}
		if err := validation.ValidatePropertyKey(key); err != nil {
			return nil, err
		}
		rels := p.Relationships(key)
		next, dropped, err := store.WithRelationships(req.RelationshipType, rels)
		if err != nil {
			return nil, err
		}
		res.RelationshipsWritten = rels.Len() - dropped
		res.RelationshipsDropped = dropped
		return next, nil
	}
	_, err := mutationKind(b)
	return nil, err
}
