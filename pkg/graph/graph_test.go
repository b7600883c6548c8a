package graph

import (
	"errors"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func collect(seq func(func(int) bool)) []int {
	var out []int
	for v := range seq {
		out = append(out, v)
	}
	return out
}

func TestParseOrientation(t *testing.T) {
	for in, want := range map[string]Orientation{
		"natural":    Natural,
		"":           Natural,
		"REVERSE":    Reverse,
		"Undirected": Undirected,
	} {
		got, err := ParseOrientation(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := ParseOrientation("sideways")
	assert.Error(t, err)

	var o Orientation
	require.NoError(t, o.UnmarshalText([]byte("undirected")))
	assert.Equal(t, Undirected, o)
	text, _ := o.MarshalText()
	assert.Equal(t, "UNDIRECTED", string(text))
}

func TestBuilder_RejectsOutOfRange(t *testing.T) {
	b := NewBuilder(3, false)
	assert.NoError(t, b.Add(0, 2, 1))
	assert.True(t, errors.Is(b.Add(0, 3, 1), ErrNodeOutOfRange))
	assert.True(t, errors.Is(b.Add(-1, 0, 1), ErrNodeOutOfRange))
	assert.Equal(t, 1, b.Len())
}

func TestCSRGraph_Natural(t *testing.T) {
	g := FromEdges(4, Natural, [2]int{0, 1}, [2]int{0, 2}, [2]int{2, 3}, [2]int{1, 2})

	assert.Equal(t, 4, g.NodeCount())
	assert.Equal(t, 4, g.RelationshipCount())
	assert.Equal(t, []int{1, 2}, collect(g.Neighbors(0)))
	assert.Equal(t, 2, g.Degree(0))
	assert.Empty(t, collect(g.Neighbors(3)))

	require.True(t, g.HasInverseIndex())
	assert.Equal(t, []int{0, 1}, collect(g.InverseNeighbors(2)))
	assert.Equal(t, 2, g.InverseDegree(2))
	assert.False(t, g.HasWeights())
}

func TestCSRGraph_Reverse(t *testing.T) {
	g := FromEdges(3, Reverse, [2]int{0, 1}, [2]int{1, 2})
	assert.Equal(t, []int{0}, collect(g.Neighbors(1)))
	assert.Equal(t, []int{2}, collect(g.InverseNeighbors(1)))
	assert.Equal(t, Reverse, g.Orientation())
}

func TestCSRGraph_UndirectedKeepsDuplicates(t *testing.T) {
	g := FromEdges(3, Undirected, [2]int{0, 1}, [2]int{1, 0}, [2]int{1, 2})

	got := collect(g.Neighbors(1))
	slices.Sort(got)
	assert.Equal(t, []int{0, 0, 2}, got, "out and in streams are unioned without dedup")
	assert.Equal(t, 3, g.Degree(1))
	assert.Equal(t, 6, g.RelationshipCount())
	assert.Equal(t, collect(g.Neighbors(1)), collect(g.InverseNeighbors(1)))
}

func TestCSRGraph_WeightedFallback(t *testing.T) {
	unweighted := FromEdges(2, Natural, [2]int{0, 1})
	for _, w := range unweighted.WeightedNeighbors(0, 2.5) {
		assert.Equal(t, 2.5, w)
	}

	weighted := FromWeightedEdges(3, Natural, WeightedEdge{0, 1, 4}, WeightedEdge{0, 2, 0.5})
	require.True(t, weighted.HasWeights())
	sum := 0.0
	for _, w := range weighted.WeightedNeighbors(0, 1) {
		sum += w
	}
	assert.Equal(t, 4.5, sum)
	assert.Equal(t, 4.5, WeightedDegree(weighted, 0, 1))
	assert.Equal(t, 4.5, TotalWeight(weighted, 1))
	for _, w := range weighted.InverseWeightedNeighbors(1, 1) {
		assert.Equal(t, 4.0, w)
	}
}

func TestCSRGraph_NoInverseIndex(t *testing.T) {
	b := NewBuilder(2, false)
	require.NoError(t, b.Add(0, 1, 1))
	g := b.Build(Natural, false)
	assert.False(t, g.HasInverseIndex())
	assert.Empty(t, collect(g.InverseNeighbors(1)))
	assert.Zero(t, g.InverseDegree(1))
}

func TestCSRGraph_EarlyBreak(t *testing.T) {
	g := FromEdges(4, Undirected, [2]int{0, 1}, [2]int{0, 2}, [2]int{3, 0})
	seen := 0
	for range g.Neighbors(0) {
		seen++
		if seen == 2 {
			break
		}
	}
	assert.Equal(t, 2, seen)
}

func TestMaxDegree(t *testing.T) {
	g := FromEdges(4, Undirected, [2]int{0, 1}, [2]int{0, 2}, [2]int{0, 3})
	assert.Equal(t, 3, MaxDegree(g))
	assert.Equal(t, 0, MaxDegree(FromEdges(0, Natural)))
}
