// Package graph defines the read-only traversal contract that computation
// runtimes consume, plus a compressed sparse row implementation of it.
//
// Node ids are dense integers in [0, NodeCount()). A View never yields an
// out-of-range neighbor; builders reject such relationships up front.
package graph

import (
	"fmt"
	"iter"
	"strings"
)

// Orientation says how stored relationships are exposed for traversal.
type Orientation int

const (
	// Natural follows relationships from source to target
	Natural Orientation = iota
	// Reverse follows relationships from target to source
	Reverse
	// Undirected follows relationships both ways
	Undirected
)

func (o Orientation) String() string {
	switch o {
	case Natural:
		return "NATURAL"
	case Reverse:
		return "REVERSE"
	case Undirected:
		return "UNDIRECTED"
	default:
		return fmt.Sprintf("Orientation(%d)", int(o))
	}
}

// ParseOrientation accepts NATURAL, REVERSE or UNDIRECTED in any case.
func ParseOrientation(s string) (Orientation, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "", "NATURAL":
		return Natural, nil
	case "REVERSE":
		return Reverse, nil
	case "UNDIRECTED":
		return Undirected, nil
	default:
		return Natural, fmt.Errorf("unknown orientation %q", s)
	}
}

// MarshalText implements encoding.TextMarshaler
func (o Orientation) MarshalText() ([]byte, error) { return []byte(o.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler
func (o *Orientation) UnmarshalText(b []byte) error {
	parsed, err := ParseOrientation(string(b))
	if err != nil {
		return err
	}
	*o = parsed
	return nil
}

// View is the traversal contract. Implementations are safe for concurrent
// readers.
type View interface {
	NodeCount() int
	// RelationshipCount counts traversable relationships; undirected views
	// count each stored relationship twice.
	RelationshipCount() int
	Orientation() Orientation

	Degree(node int) int
	Neighbors(node int) iter.Seq[int]
	// WeightedNeighbors yields fallback as the weight when the view
	// carries no weights.
	WeightedNeighbors(node int, fallback float64) iter.Seq2[int, float64]

	// HasInverseIndex reports whether incoming relationships can be
	// traversed. Undirected views always can.
	HasInverseIndex() bool
	InverseDegree(node int) int
	InverseNeighbors(node int) iter.Seq[int]
	InverseWeightedNeighbors(node int, fallback float64) iter.Seq2[int, float64]

	HasWeights() bool
}

// DefaultWeight is the weight assumed for relationships without one.
const DefaultWeight = 1.0
