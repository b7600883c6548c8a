// Package algotest holds fixtures shared by algorithm package tests.
package algotest

import (
	"context"
	"testing"

	"github.com/dd0wney/cluso-gds/pkg/algorithms"
	"github.com/dd0wney/cluso-gds/pkg/concurrency"
	"github.com/dd0wney/cluso-gds/pkg/graph"
	"github.com/dd0wney/cluso-gds/pkg/graphstore"
)

// RelType is the relationship type used by fixture stores
const RelType = "REL"

// WeightProperty is the relationship property fixture weights are stored under
const WeightProperty = "weight"

// Store builds a graph store of n nodes with original ids 0..n-1 and one
// REL relationship per edge.
func Store(t testing.TB, n int, edges ...[2]int) *graphstore.GraphStore {
	t.Helper()
	b := graphstore.NewBuilder()
	for i := 0; i < n; i++ {
		if err := b.AddNode(uint64(i), "Node"); err != nil {
			t.Fatalf("add node: %v", err)
		}
	}
	for _, e := range edges {
		if err := b.AddRelationship(RelType, uint64(e[0]), uint64(e[1]), nil); err != nil {
			t.Fatalf("add relationship: %v", err)
		}
	}
	s, err := b.Build()
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	return s
}

// WeightedStore is Store with a weight property on every relationship.
func WeightedStore(t testing.TB, n int, edges ...graph.WeightedEdge) *graphstore.GraphStore {
	t.Helper()
	b := graphstore.NewBuilder()
	for i := 0; i < n; i++ {
		if err := b.AddNode(uint64(i), "Node"); err != nil {
			t.Fatalf("add node: %v", err)
		}
	}
	for _, e := range edges {
		props := map[string]float64{WeightProperty: e.Weight}
		if err := b.AddRelationship(RelType, uint64(e.Source), uint64(e.Target), props); err != nil {
			t.Fatalf("add relationship: %v", err)
		}
	}
	s, err := b.Build()
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	return s
}

// Exec returns an execution that never trips
func Exec() *algorithms.Execution {
	return algorithms.NewExecution(context.Background())
}

// Terminated returns an execution whose flag has already tripped
func Terminated() *algorithms.Execution {
	e := Exec()
	e.Termination = concurrency.RunningTrue()
	e.Termination.Terminate()
	return e
}

// Path returns the edges 0-1, 1-2, ..., (n-2)-(n-1)
func Path(n int) [][2]int {
	edges := make([][2]int, 0, max(n-1, 0))
	for i := 0; i+1 < n; i++ {
		edges = append(edges, [2]int{i, i + 1})
	}
	return edges
}

// Complete returns the edges i->j for every i < j < n
func Complete(n int) [][2]int {
	var edges [][2]int
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			edges = append(edges, [2]int{i, j})
		}
	}
	return edges
}

// Offset shifts every endpoint by k
func Offset(edges [][2]int, k int) [][2]int {
	out := make([][2]int, len(edges))
	for i, e := range edges {
		out[i] = [2]int{e[0] + k, e[1] + k}
	}
	return out
}

// Concat joins edge lists
func Concat(lists ...[][2]int) [][2]int {
	var out [][2]int
	for _, l := range lists {
		out = append(out, l...)
	}
	return out
}
