package conductance

import (
	"cmp"
	"slices"

	"github.com/dd0wney/cluso-gds/pkg/algorithms"
	"github.com/dd0wney/cluso-gds/pkg/concurrency"
	"github.com/dd0wney/cluso-gds/pkg/graph"
)

type CommunityConductance struct {
	Community   int64
	Conductance float64
}

// Result lists communities in ascending id order
type Result struct {
	Communities []CommunityConductance
	Average     float64
}

type cut struct {
	internal float64
	external float64
}

// Compute measures, per community, the share of its members' relationship
// weight that leaves the community. A community without any weight has
// conductance 0. Nodes with a negative community id are ignored as
// sources but still count as outside every community.
//
// The flag is checked per node range.
func Compute(view graph.View, communities []int64, cfg Config, exec *algorithms.Execution) (*Result, error) {
	exec = exec.WithDefaults()
	if err := exec.Termination.AssertRunning(); err != nil {
		return nil, err
	}

	n := view.NodeCount()
	parts := concurrency.RangePartitions(n, cfg.Concurrency, 1024)
	local := make([]map[int64]*cut, len(parts))

	err := exec.Track("Conductance", n, func() error {
		return concurrency.ParallelFor(exec.Termination, cfg.Concurrency, len(parts), 1,
			func() struct{} { return struct{}{} },
			func(_ struct{}, i int) error {
				p := parts[i]
				acc := make(map[int64]*cut)
				for v := p.Start; v < p.End(); v++ {
					cv := communities[v]
					if cv < 0 {
						continue
					}
					c := acc[cv]
					if c == nil {
						c = &cut{}
						acc[cv] = c
					}
					for u, w := range view.WeightedNeighbors(v, graph.DefaultWeight) {
						if communities[u] == cv {
							c.internal += w
						} else {
							c.external += w
						}
					}
				}
				local[i] = acc
				exec.Progress(p.Length)
				return nil
			})
	})
	if err != nil {
		return nil, err
	}

	merged := make(map[int64]*cut)
	for _, acc := range local {
		for id, c := range acc {
			if m, ok := merged[id]; ok {
				m.internal += c.internal
				m.external += c.external
			} else {
				merged[id] = c
			}
		}
	}

	res := &Result{Communities: make([]CommunityConductance, 0, len(merged))}
	for id, c := range merged {
		phi := 0.0
		if total := c.internal + c.external; total > 0 {
			phi = c.external / total
		}
		res.Communities = append(res.Communities, CommunityConductance{Community: id, Conductance: phi})
		res.Average += phi
	}
	if len(res.Communities) > 0 {
		res.Average /= float64(len(res.Communities))
	}
	slices.SortFunc(res.Communities, func(a, b CommunityConductance) int { return cmp.Compare(a.Community, b.Community) })
	return res, nil
}
