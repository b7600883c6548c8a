package betweenness

import (
	"cmp"
	"math"
	"math/rand/v2"
	"slices"

	"github.com/dd0wney/cluso-gds/pkg/graph"
)

// selectSources returns the source nodes for cfg in ascending order.
func selectSources(view graph.View, cfg Config) []int {
	n := view.NodeCount()
	if cfg.SamplingStrategy == StrategyAll || (cfg.SamplingStrategy == StrategyRandom && cfg.SamplingSize >= n) {
		all := make([]int, n)
		for i := range all {
			all[i] = i
		}
		return all
	}

	rng := rand.New(rand.NewPCG(cfg.SamplingSeed, cfg.SamplingSeed^0x9e3779b97f4a7c15))
	var picked []int
	switch cfg.SamplingStrategy {
	case StrategyRandom:
		picked = rng.Perm(n)[:cfg.SamplingSize]
	case StrategyRandomDegree:
		picked = degreeWeightedSample(view, cfg.SamplingSize, rng)
	}
	slices.Sort(picked)
	return picked
}

// degreeWeightedSample draws k nodes without replacement with probability
// proportional to degree. Each node gets the key u^(1/degree) and the k
// largest keys win. Isolated nodes are never picked.
func degreeWeightedSample(view graph.View, k int, rng *rand.Rand) []int {
	type keyed struct {
		node int
		key  float64
	}
	var candidates []keyed
	for v := 0; v < view.NodeCount(); v++ {
		d := view.Degree(v)
		if d == 0 {
			continue
		}
		candidates = append(candidates, keyed{node: v, key: math.Pow(rng.Float64(), 1/float64(d))})
	}
	slices.SortFunc(candidates, func(a, b keyed) int {
		if c := cmp.Compare(b.key, a.key); c != 0 {
			return c
		}
		return cmp.Compare(a.node, b.node)
	})
	k = min(k, len(candidates))
	out := make([]int, k)
	for i := range out {
		out[i] = candidates[i].node
	}
	return out
}
