package registry

import (
	"sync"

	"github.com/dd0wney/cluso-gds/pkg/algorithms/bellmanford"
	"github.com/dd0wney/cluso-gds/pkg/algorithms/betweenness"
	"github.com/dd0wney/cluso-gds/pkg/algorithms/bfs"
	"github.com/dd0wney/cluso-gds/pkg/algorithms/closeness"
	"github.com/dd0wney/cluso-gds/pkg/algorithms/conductance"
	"github.com/dd0wney/cluso-gds/pkg/algorithms/daglongest"
	"github.com/dd0wney/cluso-gds/pkg/algorithms/degree"
	"github.com/dd0wney/cluso-gds/pkg/algorithms/dijkstra"
	"github.com/dd0wney/cluso-gds/pkg/algorithms/harmonic"
	"github.com/dd0wney/cluso-gds/pkg/algorithms/kcore"
	"github.com/dd0wney/cluso-gds/pkg/algorithms/labelprop"
	"github.com/dd0wney/cluso-gds/pkg/algorithms/lcc"
	"github.com/dd0wney/cluso-gds/pkg/algorithms/louvain"
	"github.com/dd0wney/cluso-gds/pkg/algorithms/maxkcut"
	"github.com/dd0wney/cluso-gds/pkg/algorithms/modularity"
	"github.com/dd0wney/cluso-gds/pkg/algorithms/nodesim"
	"github.com/dd0wney/cluso-gds/pkg/algorithms/pagerank"
	"github.com/dd0wney/cluso-gds/pkg/algorithms/scc"
	"github.com/dd0wney/cluso-gds/pkg/algorithms/toposort"
	"github.com/dd0wney/cluso-gds/pkg/algorithms/triangle"
	"github.com/dd0wney/cluso-gds/pkg/algorithms/wcc"
)

var (
	defaultRegistry *Registry
	defaultOnce     sync.Once
)

// Default returns the process-wide registry holding every built-in
// algorithm
func Default() *Registry {
	defaultOnce.Do(func() {
		defaultRegistry = New()
		RegisterBuiltins(defaultRegistry)
	})
	return defaultRegistry
}

// RegisterBuiltins adds every built-in algorithm to r
func RegisterBuiltins(r *Registry) {
	r.MustRegister(
		Define(betweenness.Algorithm{}, CategoryCentrality, "Brandes betweenness with optional source sampling", betweenness.Build),
		Define(closeness.Algorithm{}, CategoryCentrality, "closeness by batched multi-source BFS", closeness.Build),
		Define(degree.Algorithm{}, CategoryCentrality, "number or weight of relationships per node", degree.Build),
		Define(harmonic.Algorithm{}, CategoryCentrality, "mean inverse distance to every other node", harmonic.Build),
		Define(pagerank.Algorithm{}, CategoryCentrality, "PageRank with optional personalization", pagerank.Build),

		Define(conductance.Algorithm{}, CategoryCommunity, "conductance of each community of a node property", conductance.Build),
		Define(kcore.Algorithm{}, CategoryCommunity, "core value of every node", kcore.Build),
		Define(labelprop.Algorithm{}, CategoryCommunity, "communities by label propagation", labelprop.Build),
		Define(lcc.Algorithm{}, CategoryCommunity, "local clustering coefficient", lcc.Build),
		Define(louvain.Algorithm{}, CategoryCommunity, "communities by multi-level modularity optimization", louvain.Build),
		Define(maxkcut.Algorithm{}, CategoryCommunity, "approximate maximum k-cut by GRASP", maxkcut.Build),
		Define(modularity.Algorithm{}, CategoryCommunity, "modularity of each community of a node property", modularity.Build),
		Define(scc.Algorithm{}, CategoryCommunity, "strongly connected components", scc.Build),
		Define(triangle.Algorithm{}, CategoryCommunity, "triangles per node", triangle.Build),
		Define(wcc.Algorithm{}, CategoryCommunity, "weakly connected components", wcc.Build),

		Define(bellmanford.Algorithm{}, CategoryPathFinding, "single-source shortest paths with negative weights", bellmanford.Build),
		Define(bfs.Algorithm{}, CategoryPathFinding, "breadth-first traversal from one node", bfs.Build),
		Define(daglongest.Algorithm{}, CategoryPathFinding, "longest paths in a directed acyclic graph", daglongest.Build),
		Define(dijkstra.Algorithm{}, CategoryPathFinding, "single-source shortest paths", dijkstra.Build),
		Define(toposort.Algorithm{}, CategoryPathFinding, "topological order with optional longest distance", toposort.Build),

		Define(nodesim.Algorithm{}, CategorySimilarity, "neighborhood similarity of node pairs", nodesim.Build),
	)
}
