package modularity

import (
	"cmp"
	"slices"

	"github.com/dd0wney/cluso-gds/pkg/algorithms"
	"github.com/dd0wney/cluso-gds/pkg/concurrency"
	"github.com/dd0wney/cluso-gds/pkg/graph"
)

// CommunityModularity is the contribution of one community
type CommunityModularity struct {
	Community  int64
	Modularity float64
}

// Result lists communities in ascending id order. Total is their sum.
type Result struct {
	Communities []CommunityModularity
	Total       float64
}

type weights struct {
	internal float64
	degree   float64
}

// Compute scores the partition given by communities, one id per node. Nodes
// with a negative id belong to no community and only count towards the
// total weight. A graph without weight yields an empty result.
//
// Workers aggregate their node range into local maps which are merged once
// all partitions finish; the flag is checked per partition.
func Compute(view graph.View, communities []int64, cfg Config, exec *algorithms.Execution) (*Result, error) {
	exec = exec.WithDefaults()
	if err := exec.Termination.AssertRunning(); err != nil {
		return nil, err
	}

	n := view.NodeCount()
	parts := concurrency.RangePartitions(n, cfg.Concurrency, 1024)
	local := make([]map[int64]*weights, len(parts))
	totals := make([]float64, len(parts))

	err := exec.Track("Modularity", n, func() error {
		return concurrency.ParallelFor(exec.Termination, cfg.Concurrency, len(parts), 1,
			func() struct{} { return struct{}{} },
			func(_ struct{}, i int) error {
				p := parts[i]
				acc := make(map[int64]*weights)
				total := 0.0
				for v := p.Start; v < p.End(); v++ {
					cv := communities[v]
					for u, w := range view.WeightedNeighbors(v, graph.DefaultWeight) {
						total += w
						if cv < 0 {
							continue
						}
						cw := acc[cv]
						if cw == nil {
							cw = &weights{}
							acc[cv] = cw
						}
						cw.degree += w
						if communities[u] == cv {
							cw.internal += w
						}
					}
				}
				local[i] = acc
				totals[i] = total
				exec.Progress(p.Length)
				return nil
			})
	})
	if err != nil {
		return nil, err
	}

	merged := make(map[int64]*weights)
	m2 := 0.0
	for i, acc := range local {
		m2 += totals[i]
		for c, w := range acc {
			if cw, ok := merged[c]; ok {
				cw.internal += w.internal
				cw.degree += w.degree
			} else {
				merged[c] = w
			}
		}
	}

	res := &Result{}
	if m2 == 0 {
		return res, nil
	}
	for c, w := range merged {
		q := w.internal/m2 - cfg.Gamma*(w.degree/m2)*(w.degree/m2)
		res.Communities = append(res.Communities, CommunityModularity{Community: c, Modularity: q})
	}
	slices.SortFunc(res.Communities, func(a, b CommunityModularity) int { return cmp.Compare(a.Community, b.Community) })
	for _, c := range res.Communities {
		res.Total += c.Modularity
	}
	return res, nil
}

// Dense is the sequential form used inside community detection: ids must
// lie in [0, len(communities)) and every node belongs to a community.
// A view without weight has modularity 0.
func Dense(view graph.View, communities []int64, gamma float64) float64 {
	n := view.NodeCount()
	internal := make([]float64, n)
	degree := make([]float64, n)
	m2 := 0.0
	for v := 0; v < n; v++ {
		cv := communities[v]
		for u, w := range view.WeightedNeighbors(v, graph.DefaultWeight) {
			m2 += w
			degree[cv] += w
			if communities[u] == cv {
				internal[cv] += w
			}
		}
	}
	if m2 == 0 {
		return 0
	}
	q := 0.0
	for c := range n {
		q += internal[c]/m2 - gamma*(degree[c]/m2)*(degree[c]/m2)
	}
	return q
}
