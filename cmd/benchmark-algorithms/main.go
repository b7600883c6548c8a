package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"math/rand/v2"
	"runtime"
	"slices"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/dd0wney/cluso-gds/pkg/catalog"
	"github.com/dd0wney/cluso-gds/pkg/graphstore"
	"github.com/dd0wney/cluso-gds/pkg/logging"
	"github.com/dd0wney/cluso-gds/pkg/metrics"
	"github.com/dd0wney/cluso-gds/pkg/registry"
	"github.com/dd0wney/cluso-gds/pkg/results"
)

// benchmark is one registry call. Score-producing algorithms also print
// their top nodes.
type benchmark struct {
	algorithm string
	config    string
	ranked    bool
}

var benchmarks = []benchmark{
	{algorithm: "pageRank", ranked: true},
	{algorithm: "betweenness", config: `{"samplingStrategy": "random_degree", "samplingSize": 64}`, ranked: true},
	{algorithm: "degree", ranked: true},
	{algorithm: "closeness", config: `{"orientation": "UNDIRECTED"}`, ranked: true},
	{algorithm: "localClusteringCoefficient"},
	{algorithm: "triangleCount"},
	{algorithm: "wcc"},
	{algorithm: "scc"},
	{algorithm: "labelPropagation"},
	{algorithm: "louvain"},
	{algorithm: "kcore"},
	{algorithm: "approxMaxKCut"},
	{algorithm: "nodeSimilarity", config: `{"topK": 5}`},
	{algorithm: "dijkstra", config: `{"relationshipWeightProperty": "weight"}`},
	{algorithm: "bfs"},
}

// denseIDs maps dense ids to the streamed node ids
type denseIDs []uint64

func (d denseIDs) OriginalID(dense int) uint64 { return d[dense] }

func main() {
	nodes := flag.Int("nodes", 1000, "Number of nodes to create")
	edges := flag.Int("edges", 3000, "Number of edges to create")
	concurrency := flag.Int("concurrency", runtime.GOMAXPROCS(0), "Worker count per algorithm")
	seed := flag.Uint64("seed", 42, "Random graph seed")
	parallel := flag.Int("parallel", 1, "Also run every benchmark at once on this many workers when above 1")
	flag.Parse()

	fmt.Printf("Graph algorithm benchmark\n")
	fmt.Printf("=========================\n\n")
	fmt.Printf("Configuration:\n")
	fmt.Printf("  Nodes: %d\n", *nodes)
	fmt.Printf("  Edges: %d\n", *edges)
	fmt.Printf("  Concurrency: %d\n\n", *concurrency)

	start := time.Now()
	store, err := randomGraph(*nodes, *edges, *seed)
	if err != nil {
		log.Fatalf("Failed to build graph: %v", err)
	}
	fmt.Printf("Built graph in %v (~%s)\n", time.Since(start), humanize.IBytes(uint64(store.EstimatedBytes())))

	m := metrics.NewRegistry()
	cat := catalog.New(logging.NopLogger(), m)
	if err := cat.Put("bench", store); err != nil {
		log.Fatalf("Failed to register graph: %v", err)
	}
	d := &registry.Dispatcher{Catalog: cat, Registry: registry.Default(), Metrics: m}
	ctx := context.Background()

	for i, b := range benchmarks {
		fmt.Printf("\n%d. %s\n", i+1, b.algorithm)
		cfg := withConcurrency(b.config, *concurrency)

		est, err := d.Estimate(ctx, registry.Request{Algorithm: b.algorithm, Graph: "bench", Config: cfg})
		if err != nil {
			log.Fatalf("%s estimate failed: %v", b.algorithm, err)
		}
		fmt.Printf("  Estimated memory: %s\n", est.Estimate.String())

		start := time.Now()
		mode := results.ModeStats
		if b.ranked {
			mode = results.ModeStream
		}
		resp, err := d.Dispatch(ctx, registry.Request{Algorithm: b.algorithm, Graph: "bench", Mode: mode, Config: cfg})
		if err != nil {
			log.Fatalf("%s failed: %v", b.algorithm, err)
		}
		if b.ranked {
			printTop(resp, 5)
		}
		fmt.Printf("  Completed in %v\n", time.Since(start))
		for _, k := range sortedKeys(resp.Stats) {
			if _, ok := resp.Stats[k].(results.Distribution); ok {
				continue
			}
			fmt.Printf("  %s: %v\n", k, resp.Stats[k])
		}
	}

	if *parallel > 1 {
		reqs := make([]registry.Request, len(benchmarks))
		for i, b := range benchmarks {
			reqs[i] = registry.Request{Algorithm: b.algorithm, Graph: "bench", Mode: results.ModeStats, Config: withConcurrency(b.config, *concurrency)}
		}
		start := time.Now()
		if _, err := d.DispatchAll(ctx, reqs, *parallel); err != nil {
			log.Fatalf("Parallel run failed: %v", err)
		}
		fmt.Printf("\nAll %d algorithms on %d workers in %v\n", len(reqs), *parallel, time.Since(start))
	}

	fmt.Printf("\nBenchmark complete!\n")
}

func randomGraph(nodes, edges int, seed uint64) (*graphstore.GraphStore, error) {
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	b := graphstore.NewBuilder()
	for i := range nodes {
		if err := b.AddNode(uint64(i), "User"); err != nil {
			return nil, err
		}
		if err := b.SetNodeProperty(uint64(i), "trustScore", graphstore.LongValue(rng.Int64N(1000))); err != nil {
			return nil, err
		}
	}
	for range edges {
		from, to := rng.IntN(nodes), rng.IntN(nodes)
		if from == to {
			to = (to + 1) % nodes
		}
		props := map[string]float64{"weight": rng.Float64()}
		if err := b.AddRelationship("CONNECTED_TO", uint64(from), uint64(to), props); err != nil {
			return nil, err
		}
	}
	return b.Build()
}

// withConcurrency adds the concurrency field to a JSON config object
func withConcurrency(config string, concurrency int) registry.RawConfig {
	if config == "" {
		return registry.JSON(fmt.Sprintf(`{"concurrency": %d}`, concurrency))
	}
	return registry.JSON(fmt.Sprintf(`{"concurrency": %d, %s`, concurrency, config[1:]))
}

func printTop(resp *registry.Response, k int) {
	var ids denseIDs
	var scores []float64
	for row := range resp.Rows {
		ids = append(ids, row[results.ColumnNodeID].(uint64))
		scores = append(scores, row["score"].(float64))
	}
	fmt.Printf("  Top %d nodes:\n", k)
	for i, n := range results.TopNodes(ids, scores, k) {
		fmt.Printf("    %d. Node %d (score: %.6f)\n", i+1, n.NodeID, n.Score)
	}
}

func sortedKeys(s results.Summary) []string {
	keys := make([]string, 0, len(s))
	for k := range s {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
