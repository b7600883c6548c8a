package toposort

import (
	"slices"
	"sync"

	"github.com/dd0wney/cluso-gds/pkg/concurrency"
	"github.com/dd0wney/cluso-gds/pkg/graph"
)

// RelaxFunc is called once per relationship of a node when the node is
// sorted. Every relationship into a node is relaxed before the node itself
// is sorted.
type RelaxFunc func(source, target int, weight float64) error

// Order runs Kahn's algorithm one level at a time: the nodes whose
// remaining in-degree dropped to zero in one level are processed in
// parallel in the next. Within a level nodes are ordered by id. Nodes on a
// cycle, or reachable only through one, are left out of the order.
func Order(view graph.View, conc int, flag *concurrency.TerminationFlag, relax RelaxFunc, levelDone func(size int)) ([]int, error) {
	n := view.NodeCount()
	inDegree := concurrency.NewAtomicInt64Array(n)
	parts := concurrency.RangePartitions(n, conc, 1024)
	err := concurrency.RunPartitions(flag, conc, parts, func(p concurrency.Partition) error {
		for v := p.Start; v < p.End(); v++ {
			for u := range view.Neighbors(v) {
				inDegree.Add(u, 1)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	var frontier []int
	for v := 0; v < n; v++ {
		if inDegree.Get(v) == 0 {
			frontier = append(frontier, v)
		}
	}

	order := make([]int, 0, n)
	for len(frontier) > 0 {
		order = append(order, frontier...)
		if levelDone != nil {
			levelDone(len(frontier))
		}
		next, err := expand(view, frontier, inDegree, conc, flag, relax)
		if err != nil {
			return nil, err
		}
		frontier = next
	}
	return order, nil
}

func expand(view graph.View, frontier []int, inDegree *concurrency.AtomicInt64Array, conc int, flag *concurrency.TerminationFlag, relax RelaxFunc) ([]int, error) {
	var (
		mu   sync.Mutex
		next []int
	)
	parts := concurrency.RangePartitions(len(frontier), conc, 256)
	err := concurrency.RunPartitions(flag, conc, parts, func(p concurrency.Partition) error {
		var local []int
		for _, v := range frontier[p.Start:p.End()] {
			for u, w := range view.WeightedNeighbors(v, graph.DefaultWeight) {
				if relax != nil {
					if err := relax(v, u, w); err != nil {
						return err
					}
				}
				if inDegree.Add(u, -1) == 0 {
					local = append(local, u)
				}
			}
		}
		mu.Lock()
		next = append(next, local...)
		mu.Unlock()
		return nil
	})
	if err != nil {
		return nil, err
	}
	slices.Sort(next)
	return next, nil
}
