package dijkstra

import (
	"container/heap"
	"math"
	"slices"

	"github.com/dd0wney/cluso-gds/pkg/algorithms"
	"github.com/dd0wney/cluso-gds/pkg/graph"
	"github.com/dd0wney/cluso-gds/pkg/results"
)

// checkEvery is how many settled nodes pass between termination checks
const checkEvery = 1024

// Result holds one path per reached target, in the order the targets were
// settled.
type Result struct {
	Paths []results.Path
}

type item struct {
	node int
	dist float64
}

type queue []item

func (q queue) Len() int { return len(q) }
func (q queue) Less(i, j int) bool {
	if q[i].dist != q[j].dist {
		return q[i].dist < q[j].dist
	}
	return q[i].node < q[j].node
}
func (q queue) Swap(i, j int) { q[i], q[j] = q[j], q[i] }
func (q *queue) Push(x any)   { *q = append(*q, x.(item)) }
func (q *queue) Pop() any {
	old := *q
	it := old[len(old)-1]
	*q = old[:len(old)-1]
	return it
}

// Compute runs Dijkstra from source with a lazy-deletion binary heap. It
// stops once every target is settled; with no targets it settles the whole
// reachable graph. Unweighted views cost 1 per hop. Negative or NaN
// weights fail the run as soon as they are relaxed.
//
// The search is sequential; Concurrency is not used.
func Compute(view graph.View, source int, targets []int, cfg Config, exec *algorithms.Execution) (*Result, error) {
	exec = exec.WithDefaults()
	if err := exec.Termination.AssertRunning(); err != nil {
		return nil, err
	}
	if err := algorithms.CheckNode(Name, "SourceNode", view, source); err != nil {
		return nil, err
	}
	wanted := make(map[int]bool, len(targets))
	for _, t := range targets {
		if err := algorithms.CheckNode(Name, "TargetNodes", view, t); err != nil {
			return nil, err
		}
		wanted[t] = true
	}

	n := view.NodeCount()
	dist := make([]float64, n)
	for i := range dist {
		dist[i] = math.Inf(1)
	}
	pred := make([]int, n)
	settled := make([]bool, n)
	dist[source] = 0
	pred[source] = -1

	res := &Result{}
	remaining := len(wanted)
	pq := queue{{node: source}}

	err := exec.Track("Dijkstra :: search", n, func() error {
		for count := 0; pq.Len() > 0; count++ {
			if count%checkEvery == 0 {
				if err := exec.Termination.AssertRunning(); err != nil {
					return err
				}
			}
			it := heap.Pop(&pq).(item)
			v := it.node
			if settled[v] {
				continue
			}
			settled[v] = true
			exec.Progress(1)

			if len(wanted) == 0 || wanted[v] {
				res.Paths = append(res.Paths, trace(v, dist, pred))
				if len(wanted) > 0 {
					remaining--
					if remaining == 0 {
						return nil
					}
				}
			}

			for u, w := range view.WeightedNeighbors(v, graph.DefaultWeight) {
				if w < 0 || math.IsNaN(w) {
					return algorithms.NewError(Name).Kind(algorithms.KindGraph).
						Context("relationship %d->%d has weight %v", v, u, w).
						Cause(algorithms.ErrNegativeWeight).Err()
				}
				if settled[u] {
					continue
				}
				if d := dist[v] + w; d < dist[u] {
					dist[u] = d
					pred[u] = v
					heap.Push(&pq, item{node: u, dist: d})
				}
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

// trace walks predecessors back from target
func trace(target int, dist []float64, pred []int) results.Path {
	var nodes []int
	for v := target; v >= 0; v = pred[v] {
		nodes = append(nodes, v)
	}
	slices.Reverse(nodes)
	costs := make([]float64, len(nodes))
	for i, v := range nodes {
		costs[i] = dist[v]
	}
	return results.Path{Source: nodes[0], Target: target, Nodes: nodes, Costs: costs}
}
