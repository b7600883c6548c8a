package graph

import "iter"

// Adjacency is one direction of a graph in compressed sparse row form:
// the targets of node v are Targets[Offsets[v]:Offsets[v+1]].
type Adjacency struct {
	Offsets []int
	Targets []int
	Weights []float64 // nil when unweighted
}

// Degree returns the number of entries of node v
func (a *Adjacency) Degree(v int) int { return a.Offsets[v+1] - a.Offsets[v] }

// Len returns the number of entries
func (a *Adjacency) Len() int { return len(a.Targets) }

func (a *Adjacency) targets(v int) iter.Seq[int] {
	return func(yield func(int) bool) {
		for _, t := range a.Targets[a.Offsets[v]:a.Offsets[v+1]] {
			if !yield(t) {
				return
			}
		}
	}
}

func (a *Adjacency) weighted(v int, fallback float64) iter.Seq2[int, float64] {
	return func(yield func(int, float64) bool) {
		lo, hi := a.Offsets[v], a.Offsets[v+1]
		for i := lo; i < hi; i++ {
			w := fallback
			if a.Weights != nil {
				w = a.Weights[i]
			}
			if !yield(a.Targets[i], w) {
				return
			}
		}
	}
}

// CSRGraph implements View over a forward and an optional backward
// adjacency. For Reverse orientation the builder has already swapped them.
type CSRGraph struct {
	nodeCount   int
	orientation Orientation
	fwd         *Adjacency
	bwd         *Adjacency
}

// NewCSRGraph wraps prebuilt adjacencies. bwd may be nil unless the
// orientation is Undirected.
func NewCSRGraph(nodeCount int, orientation Orientation, fwd, bwd *Adjacency) *CSRGraph {
	return &CSRGraph{nodeCount: nodeCount, orientation: orientation, fwd: fwd, bwd: bwd}
}

func (g *CSRGraph) NodeCount() int           { return g.nodeCount }
func (g *CSRGraph) Orientation() Orientation { return g.orientation }
func (g *CSRGraph) HasWeights() bool         { return g.fwd.Weights != nil }
func (g *CSRGraph) HasInverseIndex() bool    { return g.bwd != nil }

func (g *CSRGraph) RelationshipCount() int {
	if g.orientation == Undirected {
		return g.fwd.Len() + g.bwd.Len()
	}
	return g.fwd.Len()
}

func (g *CSRGraph) Degree(v int) int {
	if g.orientation == Undirected {
		return g.fwd.Degree(v) + g.bwd.Degree(v)
	}
	return g.fwd.Degree(v)
}

func (g *CSRGraph) Neighbors(v int) iter.Seq[int] {
	if g.orientation != Undirected {
		return g.fwd.targets(v)
	}
	return func(yield func(int) bool) {
		for t := range g.fwd.targets(v) {
			if !yield(t) {
				return
			}
		}
		for t := range g.bwd.targets(v) {
			if !yield(t) {
				return
			}
		}
	}
}

func (g *CSRGraph) WeightedNeighbors(v int, fallback float64) iter.Seq2[int, float64] {
	if g.orientation != Undirected {
		return g.fwd.weighted(v, fallback)
	}
	return func(yield func(int, float64) bool) {
		for t, w := range g.fwd.weighted(v, fallback) {
			if !yield(t, w) {
				return
			}
		}
		for t, w := range g.bwd.weighted(v, fallback) {
			if !yield(t, w) {
				return
			}
		}
	}
}

func (g *CSRGraph) InverseDegree(v int) int {
	if g.orientation == Undirected {
		return g.Degree(v)
	}
	if g.bwd == nil {
		return 0
	}
	return g.bwd.Degree(v)
}

func (g *CSRGraph) InverseNeighbors(v int) iter.Seq[int] {
	if g.orientation == Undirected {
		return g.Neighbors(v)
	}
	if g.bwd == nil {
		return func(func(int) bool) {}
	}
	return g.bwd.targets(v)
}

func (g *CSRGraph) InverseWeightedNeighbors(v int, fallback float64) iter.Seq2[int, float64] {
	if g.orientation == Undirected {
		return g.WeightedNeighbors(v, fallback)
	}
	if g.bwd == nil {
		return func(func(int, float64) bool) {}
	}
	return g.bwd.weighted(v, fallback)
}
