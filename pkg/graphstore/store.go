// Package graphstore is the in-memory graph store that storage runtimes
// project views from. A GraphStore is immutable; mutations produce a new
// store that shares unchanged columns with its parent.
package graphstore

import (
	"maps"
	"slices"
	"sort"
)

// GraphStore holds nodes with labels and typed property columns, and
// relationships grouped by type with double property columns.
type GraphStore struct {
	originalIDs   []uint64
	denseIDs      map[uint64]int
	labels        map[string][]int
	nodeProps     map[string]*NodeProperty
	relationships map[string]*Relationships
}

// NodeCount returns the number of nodes
func (s *GraphStore) NodeCount() int { return len(s.originalIDs) }

// RelationshipCount counts relationships of the given types, or of all
// types when none are given.
func (s *GraphStore) RelationshipCount(types ...string) int {
	if len(types) == 0 {
		types = s.RelationshipTypes()
	}
	n := 0
	for _, t := range types {
		if r, ok := s.relationships[t]; ok {
			n += r.Len()
		}
	}
	return n
}

// OriginalID maps a dense id back to the id the node was loaded with
func (s *GraphStore) OriginalID(dense int) uint64 { return s.originalIDs[dense] }

// DenseID maps an original id to its dense id
func (s *GraphStore) DenseID(original uint64) (int, bool) {
	d, ok := s.denseIDs[original]
	return d, ok
}

// ToDense maps original ids to dense ids and fails on the first unknown id.
func (s *GraphStore) ToDense(op string, originals ...uint64) ([]int, error) {
	out := make([]int, len(originals))
	for i, o := range originals {
		d, ok := s.denseIDs[o]
		if !ok {
			return nil, NodeNotFoundError(op, o)
		}
		out[i] = d
	}
	return out, nil
}

// Labels returns the sorted label names
func (s *GraphStore) Labels() []string {
	return slices.Sorted(maps.Keys(s.labels))
}

// NodesWithLabel returns the dense ids carrying label, ascending
func (s *GraphStore) NodesWithLabel(label string) []int {
	return s.labels[label]
}

// NodeLabels returns the labels of one node, sorted
func (s *GraphStore) NodeLabels(dense int) []string {
	var out []string
	for l, nodes := range s.labels {
		if _, found := slices.BinarySearch(nodes, dense); found {
			out = append(out, l)
		}
	}
	sort.Strings(out)
	return out
}

// RelationshipTypes returns the sorted relationship type names
func (s *GraphStore) RelationshipTypes() []string {
	return slices.Sorted(maps.Keys(s.relationships))
}

// HasRelationshipType reports whether relType is stored
func (s *GraphStore) HasRelationshipType(relType string) bool {
	_, ok := s.relationships[relType]
	return ok
}

// Relationships returns the relationships of one type
func (s *GraphStore) Relationships(relType string) (*Relationships, bool) {
	r, ok := s.relationships[relType]
	return r, ok
}

// NodePropertyKeys returns the sorted node property keys
func (s *GraphStore) NodePropertyKeys() []string {
	return slices.Sorted(maps.Keys(s.nodeProps))
}

// NodeProperty returns a node property column
func (s *GraphStore) NodeProperty(key string) (*NodeProperty, error) {
	p, ok := s.nodeProps[key]
	if !ok {
		return nil, PropertyNotFoundError("read", key)
	}
	return p, nil
}

// RelationshipPropertyKeys returns the property keys of one type, sorted
func (s *GraphStore) RelationshipPropertyKeys(relType string) []string {
	r, ok := s.relationships[relType]
	if !ok {
		return nil
	}
	return slices.Sorted(maps.Keys(r.Properties))
}

// EstimatedBytes approximates the heap held by the store's columns
func (s *GraphStore) EstimatedBytes() int64 {
	n := int64(len(s.originalIDs))
	total := n*8 + n*24 // ids + map entries
	for _, p := range s.nodeProps {
		total += int64(p.Len()) * 8
	}
	for _, r := range s.relationships {
		total += int64(r.Len()) * 16
		total += int64(len(r.Properties)) * int64(r.Len()) * 8
	}
	return total
}

// WithNodeProperty returns a new store with one more node property column.
// The receiver is not modified.
func (s *GraphStore) WithNodeProperty(key string, prop *NodeProperty, overwrite bool) (*GraphStore, error) {
	if prop.Len() != s.NodeCount() {
		return nil, NewError("mutate").Property(key).
			Context("column has %d values for %d nodes", prop.Len(), s.NodeCount()).
			Cause(ErrTypeMismatch).Err()
	}
	if _, exists := s.nodeProps[key]; exists && !overwrite {
		return nil, NewError("mutate").Property(key).Cause(ErrPropertyExists).Err()
	}
	next := s.shallowCopy()
	next.nodeProps = maps.Clone(s.nodeProps)
	next.nodeProps[key] = prop
	return next, nil
}

// WithRelationships returns a new store with one more relationship type.
// Relationships referencing dense ids outside the store are dropped and
// counted in the second return value.
func (s *GraphStore) WithRelationships(relType string, rels *Relationships) (*GraphStore, int, error) {
	if _, exists := s.relationships[relType]; exists {
		return nil, 0, NewError("mutate").Relationship(relType).Cause(ErrRelationshipExists).Err()
	}

	n := s.NodeCount()
	kept := NewRelationships(slices.Collect(maps.Keys(rels.Properties))...)
	dropped := 0
	for i := range rels.Sources {
		src, dst := rels.Sources[i], rels.Targets[i]
		if src < 0 || src >= n || dst < 0 || dst >= n {
			dropped++
			continue
		}
		kept.Sources = append(kept.Sources, src)
		kept.Targets = append(kept.Targets, dst)
		for k, col := range rels.Properties {
			kept.Properties[k] = append(kept.Properties[k], col[i])
		}
	}

	next := s.shallowCopy()
	next.relationships = maps.Clone(s.relationships)
	next.relationships[relType] = kept
	return next, dropped, nil
}

func (s *GraphStore) shallowCopy() *GraphStore {
	return &GraphStore{
		originalIDs:   s.originalIDs,
		denseIDs:      s.denseIDs,
		labels:        s.labels,
		nodeProps:     s.nodeProps,
		relationships: s.relationships,
	}
}
