package bfs

import (
	"slices"
	"sync"

	"github.com/dd0wney/cluso-gds/pkg/algorithms"
	"github.com/dd0wney/cluso-gds/pkg/concurrency"
	"github.com/dd0wney/cluso-gds/pkg/graph"
	"github.com/dd0wney/cluso-gds/pkg/logging"
	"github.com/dd0wney/cluso-gds/pkg/progress"
)

// Result lists the visited nodes in traversal order with their depths.
// Within one level nodes are ordered by id.
type Result struct {
	Nodes  []int
	Depths []int
	// TargetFound is set when the traversal stopped at a target
	TargetFound bool
}

// Compute expands the frontier one level at a time. Each level is split
// across workers, which claim nodes by compare-and-swap on a shared depth
// array, so every node is visited once. The traversal stops at MaxDepth,
// when the frontier is empty or after the level in which a target shows
// up; the output then ends at the smallest target of that level.
func Compute(view graph.View, source int, targets []int, cfg Config, exec *algorithms.Execution) (*Result, error) {
	exec = exec.WithDefaults()
	if err := exec.Termination.AssertRunning(); err != nil {
		return nil, err
	}
	if err := algorithms.CheckNode(Name, "SourceNode", view, source); err != nil {
		return nil, err
	}
	isTarget := make(map[int]bool, len(targets))
	for _, t := range targets {
		if err := algorithms.CheckNode(Name, "TargetNodes", view, t); err != nil {
			return nil, err
		}
		isTarget[t] = true
	}

	n := view.NodeCount()
	depth := concurrency.NewAtomicInt64ArrayFilled(n, -1)
	depth.Set(source, 0)
	res := &Result{Nodes: []int{source}, Depths: []int{0}}
	if isTarget[source] {
		res.TargetFound = true
		return res, nil
	}

	frontier := []int{source}
	err := exec.Track("BFS :: traverse", progress.UnknownVolume, func() error {
		for level := 1; len(frontier) > 0 && (cfg.MaxDepth == Unlimited || level <= cfg.MaxDepth); level++ {
			next, err := expand(view, frontier, depth, int64(level), cfg.Concurrency, exec.Termination)
			if err != nil {
				return err
			}
			slices.Sort(next)
			for _, v := range next {
				res.Nodes = append(res.Nodes, v)
				res.Depths = append(res.Depths, level)
				if isTarget[v] {
					res.TargetFound = true
					return nil
				}
			}
			exec.Progress(len(next))
			frontier = next
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	exec.Logger.Debug("bfs finished", logging.Int("visited", len(res.Nodes)), logging.Bool("target_found", res.TargetFound))
	return res, nil
}

func expand(view graph.View, frontier []int, depth *concurrency.AtomicInt64Array, level int64, conc int, flag *concurrency.TerminationFlag) ([]int, error) {
	var (
		mu   sync.Mutex
		next []int
	)
	parts := concurrency.RangePartitions(len(frontier), conc, 256)
	err := concurrency.RunPartitions(flag, conc, parts, func(p concurrency.Partition) error {
		var local []int
		for _, v := range frontier[p.Start:p.End()] {
			for u := range view.Neighbors(v) {
				if depth.CompareAndSwap(u, -1, level) {
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
