package graph

import (
	"errors"
	"fmt"
)

// ErrNodeOutOfRange is returned when a relationship references a node id
// outside [0, nodeCount).
var ErrNodeOutOfRange = errors.New("node id out of range")

// Builder collects relationships and produces a CSRGraph.
type Builder struct {
	nodeCount int
	weighted  bool
	sources   []int
	targets   []int
	weights   []float64
}

// NewBuilder starts a graph of nodeCount nodes. Weights passed to Add are
// kept only when weighted is true.
func NewBuilder(nodeCount int, weighted bool) *Builder {
	return &Builder{nodeCount: nodeCount, weighted: weighted}
}

// Add records a relationship source -> target.
func (b *Builder) Add(source, target int, weight float64) error {
	if source < 0 || source >= b.nodeCount || target < 0 || target >= b.nodeCount {
		return fmt.Errorf("%w: (%d)->(%d) with %d nodes", ErrNodeOutOfRange, source, target, b.nodeCount)
	}
	b.sources = append(b.sources, source)
	b.targets = append(b.targets, target)
	if b.weighted {
		b.weights = append(b.weights, weight)
	}
	return nil
}

// Len returns the number of relationships added so far
func (b *Builder) Len() int { return len(b.sources) }

// Build produces a view with the given orientation. The inverse index is
// built when withInverse is set or the orientation is Undirected.
func (b *Builder) Build(orientation Orientation, withInverse bool) *CSRGraph {
	out := buildAdjacency(b.nodeCount, b.sources, b.targets, b.weights)
	var in *Adjacency
	if withInverse || orientation != Natural {
		in = buildAdjacency(b.nodeCount, b.targets, b.sources, b.weights)
	}

	switch orientation {
	case Reverse:
		if !withInverse {
			return NewCSRGraph(b.nodeCount, Reverse, in, nil)
		}
		return NewCSRGraph(b.nodeCount, Reverse, in, out)
	default:
		return NewCSRGraph(b.nodeCount, orientation, out, in)
	}
}

// buildAdjacency is a counting sort of (from, to) pairs by from. Targets of
// each node keep insertion order.
func buildAdjacency(n int, from, to []int, weights []float64) *Adjacency {
	offsets := make([]int, n+1)
	for _, s := range from {
		offsets[s+1]++
	}
	for i := 0; i < n; i++ {
		offsets[i+1] += offsets[i]
	}

	cursor := make([]int, n)
	copy(cursor, offsets[:n])
	targets := make([]int, len(from))
	var w []float64
	if weights != nil {
		w = make([]float64, len(from))
	}
	for i, s := range from {
		pos := cursor[s]
		cursor[s]++
		targets[pos] = to[i]
		if w != nil {
			w[pos] = weights[i]
		}
	}
	return &Adjacency{Offsets: offsets, Targets: targets, Weights: w}
}

// FromEdges builds an unweighted view from an edge list. It panics on
// out-of-range ids and is meant for tests and fixtures.
func FromEdges(nodeCount int, orientation Orientation, edges ...[2]int) *CSRGraph {
	b := NewBuilder(nodeCount, false)
	for _, e := range edges {
		if err := b.Add(e[0], e[1], DefaultWeight); err != nil {
			panic(err)
		}
	}
	return b.Build(orientation, true)
}

// WeightedEdge is a weighted fixture relationship
type WeightedEdge struct {
	Source, Target int
	Weight         float64
}

// FromWeightedEdges builds a weighted view from an edge list; see FromEdges.
func FromWeightedEdges(nodeCount int, orientation Orientation, edges ...WeightedEdge) *CSRGraph {
	b := NewBuilder(nodeCount, true)
	for _, e := range edges {
		if err := b.Add(e.Source, e.Target, e.Weight); err != nil {
			panic(err)
		}
	}
	return b.Build(orientation, true)
}
