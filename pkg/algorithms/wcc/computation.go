package wcc

import (
	"github.com/dd0wney/cluso-gds/pkg/algorithms"
	"github.com/dd0wney/cluso-gds/pkg/concurrency"
	"github.com/dd0wney/cluso-gds/pkg/graph"
)

// Result holds one component id per node. Without ConsecutiveIDs the id
// is the smallest node id of the component.
type Result struct {
	Components     []int64
	ComponentCount int
}

// disjointSets is a union-find forest over atomic parent pointers. Links
// always point from the larger root to the smaller one, so every parent
// is at most its child and the root of a set is its smallest member,
// whatever order the unions ran in.
type disjointSets struct {
	parent *concurrency.AtomicInt64Array
}

func newDisjointSets(n int) *disjointSets {
	return &disjointSets{parent: concurrency.NewAtomicInt64ArrayIdentity(n)}
}

// find walks to the root with path halving.
func (d *disjointSets) find(x int64) int64 {
	for {
		p := d.parent.Get(int(x))
		if p == x {
			return x
		}
		gp := d.parent.Get(int(p))
		if gp != p {
			d.parent.CompareAndSwap(int(x), p, gp)
		}
		x = gp
	}
}

func (d *disjointSets) union(a, b int64) {
	for {
		ra, rb := d.find(a), d.find(b)
		if ra == rb {
			return
		}
		if ra > rb {
			ra, rb = rb, ra
		}
		// rb may have been linked meanwhile; then retry from the new roots
		if d.parent.CompareAndSwap(int(rb), rb, ra) {
			return
		}
	}
}

// Compute runs union-find over view. The node range is split into about
// one batch per worker; the termination flag is checked when each batch
// starts. A cancelled run returns no result.
func Compute(view graph.View, cfg Config, exec *algorithms.Execution) (*Result, error) {
	exec = exec.WithDefaults()
	if err := exec.Termination.AssertRunning(); err != nil {
		return nil, err
	}

	n := view.NodeCount()
	sets := newDisjointSets(n)
	parts := concurrency.RangePartitions(n, cfg.Concurrency, cfg.MinBatchSize)
	weighted := cfg.weighted() && view.HasWeights()

	err := exec.Track("WCC :: union", n, func() error {
		return concurrency.RunPartitions(exec.Termination, cfg.Concurrency, parts, func(p concurrency.Partition) error {
			for v := p.Start; v < p.End(); v++ {
				if weighted {
					for u, w := range view.WeightedNeighbors(v, graph.DefaultWeight) {
						if w > cfg.Threshold {
							sets.union(int64(v), int64(u))
						}
					}
				} else {
					for u := range view.Neighbors(v) {
						sets.union(int64(v), int64(u))
					}
				}
			}
			exec.Progress(p.Length)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	components := make([]int64, n)
	err = exec.Track("WCC :: flatten", n, func() error {
		return concurrency.RunPartitions(exec.Termination, cfg.Concurrency, parts, func(p concurrency.Partition) error {
			for v := p.Start; v < p.End(); v++ {
				components[v] = sets.find(int64(v))
			}
			exec.Progress(p.Length)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	count := relabel(components, cfg.ConsecutiveIDs)
	return &Result{Components: components, ComponentCount: count}, nil
}

// relabel counts the roots and, when consecutive is set, renumbers them
// 0..k-1 in ascending root order. Roots are their own smallest member, so
// scanning by node id meets every root before its other members.
func relabel(components []int64, consecutive bool) int {
	next := int64(0)
	mapping := make(map[int64]int64)
	for v, root := range components {
		if root == int64(v) {
			mapping[root] = next
			next++
		}
	}
	if consecutive {
		for v, root := range components {
			components[v] = mapping[root]
		}
	}
	return int(next)
}
