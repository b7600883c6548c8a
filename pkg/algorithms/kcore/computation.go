package kcore

import (
	"sync"

	"github.com/dd0wney/cluso-gds/pkg/algorithms"
	"github.com/dd0wney/cluso-gds/pkg/concurrency"
	"github.com/dd0wney/cluso-gds/pkg/graph"
	"github.com/dd0wney/cluso-gds/pkg/logging"
)

// Result holds the core value of every node: the largest k such that the
// node belongs to a subgraph in which every node has degree at least k.
type Result struct {
	Cores      []int64
	Degeneracy int64
}

// Compute peels the undirected view. For each k it removes every node of
// remaining degree at most k, in rounds: removing a node decrements its
// live neighbors, and a neighbor that drops to k joins the next round.
// Nodes are claimed by compare-and-swap on the core array. Self loops do
// not count towards the degree; parallel relationships do.
func Compute(view graph.View, cfg Config, exec *algorithms.Execution) (*Result, error) {
	exec = exec.WithDefaults()
	if err := exec.Termination.AssertRunning(); err != nil {
		return nil, err
	}

	n := view.NodeCount()
	degree := concurrency.NewAtomicInt64Array(n)
	core := concurrency.NewAtomicInt64ArrayFilled(n, -1)
	parts := concurrency.RangePartitions(n, cfg.Concurrency, 1024)

	err := exec.Track("KCore :: peel", n, func() error {
		err := concurrency.RunPartitions(exec.Termination, cfg.Concurrency, parts, func(p concurrency.Partition) error {
			for v := p.Start; v < p.End(); v++ {
				d := int64(0)
				for u := range view.Neighbors(v) {
					if u != v {
						d++
					}
				}
				degree.Set(v, d)
			}
			return nil
		})
		if err != nil {
			return err
		}

		removed := 0
		for k := int64(0); removed < n; {
			frontier, err := collect(degree, core, k, parts, cfg.Concurrency, exec.Termination)
			if err != nil {
				return err
			}
			for len(frontier) > 0 {
				removed += len(frontier)
				exec.Progress(len(frontier))
				if frontier, err = peel(view, frontier, degree, core, k, cfg.Concurrency, exec.Termination); err != nil {
					return err
				}
			}
			k = nextK(degree, core, k)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	res := &Result{Cores: core.ToSlice()}
	for _, c := range res.Cores {
		res.Degeneracy = max(res.Degeneracy, c)
	}
	exec.Logger.Debug("k-core finished", logging.NodeCount(n), logging.Int("degeneracy", int(res.Degeneracy)))
	return res, nil
}

// collect claims every live node whose degree is at most k
func collect(degree, core *concurrency.AtomicInt64Array, k int64, parts []concurrency.Partition, conc int, flag *concurrency.TerminationFlag) ([]int, error) {
	var (
		mu       sync.Mutex
		frontier []int
	)
	err := concurrency.RunPartitions(flag, conc, parts, func(p concurrency.Partition) error {
		var local []int
		for v := p.Start; v < p.End(); v++ {
			if degree.Get(v) <= k && core.CompareAndSwap(v, -1, k) {
				local = append(local, v)
			}
		}
		mu.Lock()
		frontier = append(frontier, local...)
		mu.Unlock()
		return nil
	})
	return frontier, err
}

func peel(view graph.View, frontier []int, degree, core *concurrency.AtomicInt64Array, k int64, conc int, flag *concurrency.TerminationFlag) ([]int, error) {
	var (
		mu   sync.Mutex
		next []int
	)
	parts := concurrency.RangePartitions(len(frontier), conc, 256)
	err := concurrency.RunPartitions(flag, conc, parts, func(p concurrency.Partition) error {
		var local []int
		for _, v := range frontier[p.Start:p.End()] {
			for u := range view.Neighbors(v) {
				if u == v || core.Get(u) >= 0 {
					continue
				}
				if degree.Add(u, -1) <= k && core.CompareAndSwap(u, -1, k) {
					local = append(local, u)
				}
			}
		}
		mu.Lock()
		next = append(next, local...)
		mu.Unlock()
		return nil
	})
	return next, err
}

// nextK skips straight to the smallest remaining degree
func nextK(degree, core *concurrency.AtomicInt64Array, k int64) int64 {
	next := int64(-1)
	for v := range degree.Len() {
		if core.Get(v) < 0 {
			if d := degree.Get(v); next < 0 || d < next {
				next = d
			}
		}
	}
	return max(k+1, next)
}
