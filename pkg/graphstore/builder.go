package graphstore

import (
	"fmt"
	"math"
	"slices"

	"github.com/dd0wney/cluso-gds/pkg/validation"
)

type pendingRel struct {
	source, target uint64
	props          map[string]float64
}

// Builder assembles a GraphStore. Nodes get dense ids in insertion order.
type Builder struct {
	originalIDs []uint64
	denseIDs    map[uint64]int
	labels      map[string][]int
	props       map[string]map[int]Value
	propTypes   map[string]ValueType
	rels        map[string][]pendingRel
}

// NewBuilder returns an empty builder
func NewBuilder() *Builder {
	return &Builder{
		denseIDs:  make(map[uint64]int),
		labels:    make(map[string][]int),
		props:     make(map[string]map[int]Value),
		propTypes: make(map[string]ValueType),
		rels:      make(map[string][]pendingRel),
	}
}

// AddNode registers a node under its original id
func (b *Builder) AddNode(id uint64, labels ...string) error {
	if _, exists := b.denseIDs[id]; exists {
		return NewError("load").Node(id).Cause(ErrDuplicateNode).Err()
	}
	for _, l := range labels {
		if err := validation.ValidateToken("label", l); err != nil {
			return NewError("load").Node(id).Cause(err).Err()
		}
	}
	dense := len(b.originalIDs)
	b.originalIDs = append(b.originalIDs, id)
	b.denseIDs[id] = dense
	for _, l := range labels {
		b.labels[l] = append(b.labels[l], dense)
	}
	return nil
}

// SetNodeProperty sets one property value. A column's type is fixed by its
// first value; a long may later widen the column to double, never the
// other way round.
func (b *Builder) SetNodeProperty(id uint64, key string, v Value) error {
	dense, ok := b.denseIDs[id]
	if !ok {
		return NodeNotFoundError("load", id)
	}
	if err := validation.ValidatePropertyKey(key); err != nil {
		return NewError("load").Property(key).Cause(err).Err()
	}
	col, ok := b.props[key]
	if !ok {
		col = make(map[int]Value)
		b.props[key] = col
		b.propTypes[key] = v.Type
	}
	if v.Type == TypeDouble && b.propTypes[key] == TypeLong {
		b.propTypes[key] = TypeDouble
	}
	col[dense] = v
	return nil
}

// AddRelationship records source -[relType]-> target between known nodes.
func (b *Builder) AddRelationship(relType string, source, target uint64, props map[string]float64) error {
	if err := validation.ValidateToken("relationship type", relType); err != nil {
		return NewError("load").Relationship(relType).Cause(err).Err()
	}
	if _, ok := b.denseIDs[source]; !ok {
		return NodeNotFoundError("load", source)
	}
	if _, ok := b.denseIDs[target]; !ok {
		return NodeNotFoundError("load", target)
	}
	for k := range props {
		if err := validation.ValidatePropertyKey(k); err != nil {
			return NewError("load").Property(k).Cause(err).Err()
		}
	}
	b.rels[relType] = append(b.rels[relType], pendingRel{source: source, target: target, props: props})
	return nil
}

// Build produces the immutable store
func (b *Builder) Build() (*GraphStore, error) {
	n := len(b.originalIDs)
	s := &GraphStore{
		originalIDs:   slices.Clone(b.originalIDs),
		denseIDs:      make(map[uint64]int, n),
		labels:        make(map[string][]int, len(b.labels)),
		nodeProps:     make(map[string]*NodeProperty, len(b.props)),
		relationships: make(map[string]*Relationships, len(b.rels)),
	}
	for k, v := range b.denseIDs {
		s.denseIDs[k] = v
	}
	for l, nodes := range b.labels {
		s.labels[l] = slices.Clone(nodes)
	}

	for key, col := range b.props {
		switch b.propTypes[key] {
		case TypeLong:
			values := make([]int64, n)
			for i := range values {
				values[i] = MissingLong
			}
			for dense, v := range col {
				values[dense] = v.Long
			}
			s.nodeProps[key] = NewLongProperty(values)
		case TypeDouble:
			values := make([]float64, n)
			for i := range values {
				values[i] = math.NaN()
			}
			for dense, v := range col {
				values[dense] = v.AsDouble()
			}
			s.nodeProps[key] = NewDoubleProperty(values)
		default:
			return nil, fmt.Errorf("property %q: %w", key, ErrTypeMismatch)
		}
	}

	for relType, pending := range b.rels {
		rels := NewRelationships()
		for _, p := range pending {
			rels.Add(b.denseIDs[p.source], b.denseIDs[p.target], p.props)
		}
		s.relationships[relType] = rels
	}
	return s, nil
}
