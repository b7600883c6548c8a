package scc

import (
	"cmp"
	"maps"
	"slices"

	"github.com/dd0wney/cluso-gds/pkg/algorithms"
	"github.com/dd0wney/cluso-gds/pkg/graph"
	"github.com/dd0wney/cluso-gds/pkg/logging"
)

// checkEvery is how many DFS roots pass between termination checks
const checkEvery = 1024

// CondensationEdge is a relationship of the component DAG with the number
// of relationships it stands for.
type CondensationEdge struct {
	From, To int64
	Count    int
}

// Result holds one component id per node. Without ConsecutiveIDs the id is
// the smallest node id of the component.
type Result struct {
	Components     []int64
	ComponentCount int
	LargestSize    int
	SingletonCount int
	// Condensation lists the relationships between components, sorted
	Condensation []CondensationEdge
}

type frame struct {
	node int
	next int
}

// Compute runs Tarjan's algorithm with an explicit stack, so deep graphs
// cannot overflow the goroutine stack. Neighbors are copied into a flat
// array first so a frame can resume its scan by index. The search is
// sequential.
func Compute(view graph.View, cfg Config, exec *algorithms.Execution) (*Result, error) {
	exec = exec.WithDefaults()
	if err := exec.Termination.AssertRunning(); err != nil {
		return nil, err
	}

	n := view.NodeCount()
	offsets := make([]int, n+1)
	targets := make([]int, 0, view.RelationshipCount())
	for v := 0; v < n; v++ {
		for u := range view.Neighbors(v) {
			targets = append(targets, u)
		}
		offsets[v+1] = len(targets)
	}

	index := make([]int, n)
	low := make([]int, n)
	onStack := make([]bool, n)
	for i := range index {
		index[i] = -1
	}
	components := make([]int64, n)
	var (
		stack   []int
		frames  []frame
		counter int
	)

	err := exec.Track("SCC :: tarjan", n, func() error {
		for root := 0; root < n; root++ {
			if root%checkEvery == 0 {
				if err := exec.Termination.AssertRunning(); err != nil {
					return err
				}
			}
			if index[root] >= 0 {
				continue
			}
			frames = append(frames, frame{node: root, next: offsets[root]})
			index[root], low[root] = counter, counter
			counter++
			stack = append(stack, root)
			onStack[root] = true

			for len(frames) > 0 {
				f := &frames[len(frames)-1]
				v := f.node
				if f.next < offsets[v+1] {
					u := targets[f.next]
					f.next++
					if index[u] < 0 {
						index[u], low[u] = counter, counter
						counter++
						stack = append(stack, u)
						onStack[u] = true
						frames = append(frames, frame{node: u, next: offsets[u]})
					} else if onStack[u] {
						low[v] = min(low[v], index[u])
					}
					continue
				}

				frames = frames[:len(frames)-1]
				if len(frames) > 0 {
					parent := frames[len(frames)-1].node
					low[parent] = min(low[parent], low[v])
				}
				if low[v] != index[v] {
					continue
				}
				// v roots a component: pop it and label with its smallest member
				i := len(stack) - 1
				smallest := v
				for stack[i] != v {
					smallest = min(smallest, stack[i])
					i--
				}
				for _, w := range stack[i:] {
					components[w] = int64(smallest)
					onStack[w] = false
				}
				exec.Progress(len(stack) - i)
				stack = stack[:i]
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	res := summarize(components)
	res.Condensation = condense(offsets, targets, components)
	if cfg.ConsecutiveIDs {
		relabel(res)
	}
	exec.Logger.Debug("scc computed",
		logging.Int("components", res.ComponentCount), logging.Int("largest", res.LargestSize))
	return res, nil
}

func summarize(components []int64) *Result {
	sizes := map[int64]int{}
	for _, c := range components {
		sizes[c]++
	}
	res := &Result{Components: components, ComponentCount: len(sizes)}
	for _, s := range sizes {
		res.LargestSize = max(res.LargestSize, s)
		if s == 1 {
			res.SingletonCount++
		}
	}
	return res
}

func condense(offsets, targets []int, components []int64) []CondensationEdge {
	counts := map[[2]int64]int{}
	for v := 0; v+1 < len(offsets); v++ {
		for _, u := range targets[offsets[v]:offsets[v+1]] {
			if cv, cu := components[v], components[u]; cv != cu {
				counts[[2]int64{cv, cu}]++
			}
		}
	}
	keys := slices.SortedFunc(maps.Keys(counts), func(a, b [2]int64) int {
		if c := cmp.Compare(a[0], b[0]); c != 0 {
			return c
		}
		return cmp.Compare(a[1], b[1])
	})
	edges := make([]CondensationEdge, len(keys))
	for i, k := range keys {
		edges[i] = CondensationEdge{From: k[0], To: k[1], Count: counts[k]}
	}
	return edges
}

// relabel renumbers components 0..k-1 in order of their smallest member
func relabel(res *Result) {
	mapping := map[int64]int64{}
	for v, c := range res.Components {
		if c == int64(v) {
			mapping[c] = int64(len(mapping))
		}
	}
	for v, c := range res.Components {
		res.Components[v] = mapping[c]
	}
	for i := range res.Condensation {
		res.Condensation[i].From = mapping[res.Condensation[i].From]
		res.Condensation[i].To = mapping[res.Condensation[i].To]
	}
}
