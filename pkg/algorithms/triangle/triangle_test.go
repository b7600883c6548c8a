package triangle

import (
	"context"
	"math/rand/v2"
	"slices"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/dd0wney/cluso-gds/pkg/algorithms"
	"github.com/dd0wney/cluso-gds/pkg/algorithms/algotest"
	"github.com/dd0wney/cluso-gds/pkg/graph"
	"github.com/dd0wney/cluso-gds/pkg/results"
)

func count(t *testing.T, n int, cfg Config, edges ...[2]int) *Result {
	t.Helper()
	res, err := Compute(graph.FromEdges(n, graph.Undirected, edges...), cfg, algotest.Exec())
	if err != nil {
		t.Fatalf("Compute failed: %v", err)
	}
	return res
}

func testConfig() Config {
	cfg := DefaultConfig()
	cfg.Concurrency = 2
	return cfg
}

func TestCompute_EmptyGraph(t *testing.T) {
	res := count(t, 0, testConfig())
	if res.Global != 0 || len(res.Local) != 0 {
		t.Errorf("Expected no triangles, got %d global and %v local", res.Global, res.Local)
	}
}

func TestCompute_SingleTriangle(t *testing.T) {
	// a directed cycle is one undirected triangle
	res := count(t, 3, testConfig(), [2]int{0, 1}, [2]int{1, 2}, [2]int{2, 0})

	if res.Global != 1 {
		t.Errorf("Expected 1 global triangle, got %d", res.Global)
	}
	for v, c := range res.Local {
		if c != 1 {
			t.Errorf("Node %d: expected 1 triangle, got %d", v, c)
		}
	}
}

func TestCompute_TwoTrianglesSharedEdge(t *testing.T) {
	// (0,1,2) and (0,1,3) share the edge 0-1
	res := count(t, 4, testConfig(),
		[2]int{0, 1}, [2]int{1, 2}, [2]int{2, 0},
		[2]int{0, 3}, [2]int{1, 3},
	)

	if res.Global != 2 {
		t.Errorf("Expected 2 global triangles, got %d", res.Global)
	}
	want := []int64{2, 2, 1, 1}
	if !slices.Equal(res.Local, want) {
		t.Errorf("Expected local counts %v, got %v", want, res.Local)
	}
}

func TestCompute_StarNoTriangles(t *testing.T) {
	res := count(t, 5, testConfig(), [2]int{0, 1}, [2]int{0, 2}, [2]int{0, 3}, [2]int{0, 4})
	if res.Global != 0 {
		t.Errorf("Expected 0 triangles in a star, got %d", res.Global)
	}
}

func TestCompute_CompleteGraph4(t *testing.T) {
	res := count(t, 4, testConfig(), algotest.Complete(4)...)
	if res.Global != 4 {
		t.Errorf("Expected 4 triangles in K4, got %d", res.Global)
	}
	for v, c := range res.Local {
		if c != 3 {
			t.Errorf("Node %d: expected 3 triangles, got %d", v, c)
		}
	}
}

func TestCompute_ParallelAndSelfLoops(t *testing.T) {
	res := count(t, 3, testConfig(),
		[2]int{0, 1}, [2]int{1, 0}, [2]int{0, 1},
		[2]int{1, 2}, [2]int{2, 0}, [2]int{2, 2},
	)
	if res.Global != 1 {
		t.Errorf("Expected duplicates to be ignored, got %d triangles", res.Global)
	}
	if !slices.Equal(res.Degrees, []int{2, 2, 2}) {
		t.Errorf("Expected distinct degrees [2 2 2], got %v", res.Degrees)
	}
}

func TestCompute_MaxDegree(t *testing.T) {
	cfg := testConfig()
	cfg.MaxDegree = 2
	// node 0 has three neighbors and is left out with its triangles
	res := count(t, 4, cfg,
		[2]int{0, 1}, [2]int{1, 2}, [2]int{2, 0}, [2]int{0, 3},
	)
	if res.Global != 0 {
		t.Errorf("Expected 0 triangles, got %d", res.Global)
	}
	if res.Local[0] != Excluded {
		t.Errorf("Expected node 0 to be excluded, got %d", res.Local[0])
	}

	rows := results.Collect(Build(results.Identity{}, cfg, res))
	if len(rows) != 3 {
		t.Errorf("Expected excluded node to be skipped, got %d rows", len(rows))
	}
}

func TestCompute_Terminated(t *testing.T) {
	_, err := Compute(graph.FromEdges(3, graph.Undirected, algotest.Complete(3)...), testConfig(), algotest.Terminated())
	if !algorithms.IsCancelled(err) {
		t.Errorf("Expected cancellation, got %v", err)
	}
}

func TestRun_ThroughStore(t *testing.T) {
	store := algotest.Store(t, 4, algotest.Complete(4)...)
	res, err := algorithms.Run(context.Background(), Algorithm{}, store, testConfig(), algotest.Exec())
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	stats := Build(store, testConfig(), res).Stats()
	if stats["globalTriangleCount"] != int64(4) {
		t.Errorf("Expected globalTriangleCount 4, got %v", stats["globalTriangleCount"])
	}
}

func bruteForce(n int, edges [][2]int) int64 {
	adj := make([][]bool, n)
	for i := range adj {
		adj[i] = make([]bool, n)
	}
	for _, e := range edges {
		if e[0] != e[1] {
			adj[e[0]][e[1]] = true
			adj[e[1]][e[0]] = true
		}
	}
	var total int64
	for a := 0; a < n; a++ {
		for b := a + 1; b < n; b++ {
			for c := b + 1; c < n; c++ {
				if adj[a][b] && adj[b][c] && adj[a][c] {
					total++
				}
			}
		}
	}
	return total
}

func TestProperties(t *testing.T) {
	properties := gopter.NewProperties(gopter.DefaultTestParameters())

	properties.Property("global count matches brute force and local counts sum to three times it", prop.ForAll(
		func(n, m int, seed uint64) bool {
			rng := rand.New(rand.NewPCG(seed, 3))
			edges := make([][2]int, m)
			for i := range edges {
				edges[i] = [2]int{rng.IntN(n), rng.IntN(n)}
			}
			res, err := Compute(graph.FromEdges(n, graph.Undirected, edges...), testConfig(), algotest.Exec())
			if err != nil {
				return false
			}
			var sum int64
			for _, c := range res.Local {
				sum += c
			}
			return res.Global == bruteForce(n, edges) && sum == 3*res.Global
		},
		gen.IntRange(1, 30),
		gen.IntRange(0, 120),
		gen.UInt64(),
	))

	properties.TestingRun(t)
}
