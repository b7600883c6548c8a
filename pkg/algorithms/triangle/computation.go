package triangle

import (
	"slices"
	"sync/atomic"

	"github.com/dd0wney/cluso-gds/pkg/algorithms"
	"github.com/dd0wney/cluso-gds/pkg/concurrency"
	"github.com/dd0wney/cluso-gds/pkg/graph"
)

// Excluded marks nodes skipped because of MaxDegree
const Excluded int64 = -1

// Result holds per-node triangle counts and the global count. Degrees are
// the distinct neighbor counts the counting ran on.
type Result struct {
	Local   []int64
	Global  int64
	Degrees []int
}

// Neighborhoods returns the distinct neighbors of every node in ascending
// order, without the node itself. Parallel relationships and self-loops
// therefore never add triangles.
func Neighborhoods(view graph.View, conc int, flag *concurrency.TerminationFlag) ([][]int, error) {
	n := view.NodeCount()
	adj := make([][]int, n)
	parts := concurrency.DegreePartitions(n, conc, view.Degree)
	err := concurrency.RunPartitions(flag, conc, parts, func(p concurrency.Partition) error {
		for v := p.Start; v < p.End(); v++ {
			list := make([]int, 0, view.Degree(v))
			for u := range view.Neighbors(v) {
				if u != v {
					list = append(list, u)
				}
			}
			slices.Sort(list)
			adj[v] = slices.Compact(list)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return adj, nil
}

// Compute counts every triangle once, from its smallest node, by
// intersecting sorted neighborhoods, and credits all three members. Work is
// split into ranges of similar total degree and the flag is checked per
// range.
func Compute(view graph.View, cfg Config, exec *algorithms.Execution) (*Result, error) {
	exec = exec.WithDefaults()
	if err := exec.Termination.AssertRunning(); err != nil {
		return nil, err
	}

	n := view.NodeCount()
	var adj [][]int
	err := exec.Track("TriangleCount :: neighborhoods", n, func() error {
		var err error
		adj, err = Neighborhoods(view, cfg.Concurrency, exec.Termination)
		exec.Progress(n)
		return err
	})
	if err != nil {
		return nil, err
	}

	excluded := func(v int) bool { return cfg.MaxDegree > 0 && len(adj[v]) > cfg.MaxDegree }
	local := concurrency.NewAtomicInt64Array(n)
	var global atomic.Int64
	parts := concurrency.DegreePartitions(n, cfg.Concurrency, func(v int) int { return len(adj[v]) })

	err = exec.Track("TriangleCount :: count", n, func() error {
		return concurrency.RunPartitions(exec.Termination, cfg.Concurrency, parts, func(p concurrency.Partition) error {
			for u := p.Start; u < p.End(); u++ {
				if excluded(u) {
					continue
				}
				nu := adj[u]
				for i, v := range nu {
					if v < u || excluded(v) {
						continue
					}
					forEachCommonAbove(nu[i+1:], adj[v], v, func(w int) {
						if excluded(w) {
							return
						}
						local.Add(u, 1)
						local.Add(v, 1)
						local.Add(w, 1)
						global.Add(1)
					})
				}
			}
			exec.Progress(p.Length)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	res := &Result{Local: local.ToSlice(), Global: global.Load(), Degrees: make([]int, n)}
	for v := range n {
		res.Degrees[v] = len(adj[v])
		if excluded(v) {
			res.Local[v] = Excluded
		}
	}
	return res, nil
}

// forEachCommonAbove calls fn for every element greater than floor present
// in both sorted slices.
func forEachCommonAbove(a, b []int, floor int, fn func(int)) {
	i, _ := slices.BinarySearch(a, floor+1)
	j, _ := slices.BinarySearch(b, floor+1)
	for i < len(a) && j < len(b) {
		switch {
		case a[i] < b[j]:
			i++
		case a[i] > b[j]:
			j++
		default:
			fn(a[i])
			i++
			j++
		}
	}
}
