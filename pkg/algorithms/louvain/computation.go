package louvain

import (
	"fmt"
	"slices"
	"sync/atomic"

	"github.com/dd0wney/cluso-gds/pkg/algorithms"
	"github.com/dd0wney/cluso-gds/pkg/algorithms/modularity"
	"github.com/dd0wney/cluso-gds/pkg/concurrency"
	"github.com/dd0wney/cluso-gds/pkg/graph"
	"github.com/dd0wney/cluso-gds/pkg/logging"
)

// Result is the coarsest accepted partition mapped back to input nodes.
// Modularities holds one value per accepted level and never decreases.
// When no level is accepted it holds the modularity of the starting
// partition, so Modularity is always its last entry.
type Result struct {
	Communities    []int64
	CommunityCount int
	Modularity     float64
	Modularities   []float64
	Levels         int
	// Converged is false when the run stopped on MaxLevels, or on
	// MaxIterations within its last level, while nodes were still moving.
	Converged bool
	// Intermediate holds the partition after every level, only with
	// IncludeIntermediateCommunities.
	Intermediate [][]int64
}

// level is one rung of the dendrogram: a graph whose nodes are the
// communities of the level below.
type level struct {
	view    graph.View
	degrees []float64
	m2      float64
}

func newLevel(view graph.View) *level {
	l := &level{view: view, degrees: make([]float64, view.NodeCount())}
	for v := range l.degrees {
		l.degrees[v] = graph.WeightedDegree(view, v, graph.DefaultWeight)
		l.m2 += l.degrees[v]
	}
	return l
}

// Compute runs Louvain on an undirected view. seeds may be nil; otherwise
// it holds one starting community per node, negative for none.
//
// A level that merges nothing or does not raise modularity is discarded
// and ends the run; a level whose gain stays under Tolerance is kept and
// ends the run. The flag is checked per batch of nodes during local moving
// and per node range during aggregation.
func Compute(view graph.View, seeds []int64, cfg Config, exec *algorithms.Execution) (*Result, error) {
	exec = exec.WithDefaults()
	if err := exec.Termination.AssertRunning(); err != nil {
		return nil, err
	}

	n := view.NodeCount()
	membership := make([]int64, n)
	for v := range membership {
		membership[v] = int64(v)
	}

	lvl := newLevel(view)
	current := initialCommunities(n, seeds)
	prevQ := modularity.Dense(view, current, cfg.Gamma)
	res := &Result{Converged: true}

	for depth := 0; ; depth++ {
		if depth == cfg.MaxLevels {
			res.Converged = false
			break
		}

		var communities []int64
		var exhausted bool
		err := exec.Track(fmt.Sprintf("Louvain :: level %d", depth), cfg.MaxIterations, func() error {
			var err error
			communities, exhausted, err = localMoving(lvl, current, cfg, exec)
			return err
		})
		if err != nil {
			return nil, err
		}

		k := renumber(communities)
		q := modularity.Dense(lvl.view, communities, cfg.Gamma)
		if k == lvl.view.NodeCount() || q <= prevQ {
			break
		}

		for v, c := range membership {
			membership[v] = communities[c]
		}
		gain := q - prevQ
		prevQ = q
		res.Levels++
		res.Modularities = append(res.Modularities, q)
		if cfg.IncludeIntermediateCommunities {
			res.Intermediate = append(res.Intermediate, label(membership, cfg.ConsecutiveIDs))
		}
		exec.Logger.Debug("louvain level accepted",
			logging.Int("level", depth), logging.Int("communities", k), logging.Float64("modularity", q))

		res.Converged = !exhausted
		if gain < cfg.Tolerance {
			break
		}

		next, err := aggregate(lvl.view, communities, k, cfg, exec)
		if err != nil {
			return nil, err
		}
		lvl = newLevel(next)
		current = identity(k)
	}

	if res.Levels == 0 {
		renumber(current)
		copy(membership, current)
		res.Modularities = []float64{prevQ}
	}
	res.Communities = label(membership, cfg.ConsecutiveIDs)
	res.CommunityCount = countDistinct(res.Communities)
	res.Modularity = prevQ
	if exec.Metrics != nil {
		exec.Metrics.RecordIterations(Name, res.Levels)
	}
	return res, nil
}

// initialCommunities assigns dense ids in order of first appearance; every
// unseeded node gets a community of its own.
func initialCommunities(n int, seeds []int64) []int64 {
	if seeds == nil {
		return identity(n)
	}
	out := make([]int64, n)
	ids := make(map[int64]int64)
	next := int64(0)
	for v, s := range seeds {
		if s < 0 {
			out[v] = next
			next++
			continue
		}
		id, ok := ids[s]
		if !ok {
			id = next
			ids[s] = id
			next++
		}
		out[v] = id
	}
	return out
}

func identity(n int) []int64 {
	out := make([]int64, n)
	for i := range out {
		out[i] = int64(i)
	}
	return out
}

type moveState struct {
	weights []float64
	seen    []bool
	touched []int64
}

// localMoving reassigns nodes to the neighboring community with the best
// modularity gain until an iteration moves nobody, gains less than
// Tolerance, or MaxIterations is reached. exhausted reports the last case.
//
// Moving node i from its community A (without i) to C changes modularity
// in proportion to
//
//	w(i,C) - w(i,A) - gamma * k_i * (tot(C) - tot(A)) / m2
//
// where m2 is twice the total weight. Only communities of neighbors are
// candidates. Community totals are shared atomics; with several workers two
// singletons could swap into each other forever, so a singleton only joins
// another singleton with a smaller id.
func localMoving(lvl *level, initial []int64, cfg Config, exec *algorithms.Execution) ([]int64, bool, error) {
	n := lvl.view.NodeCount()
	comm := concurrency.NewAtomicInt64Array(n)
	tot := concurrency.NewAtomicFloat64Array(n)
	size := concurrency.NewAtomicInt64Array(n)
	for v, c := range initial {
		comm.Set(v, c)
		tot.Add(int(c), lvl.degrees[v])
		size.Add(int(c), 1)
	}
	if lvl.m2 == 0 {
		return comm.ToSlice(), false, nil
	}

	guardSwaps := cfg.Concurrency > 1
	batch := max(1, min(1024, n/(cfg.Concurrency*4)))
	lastQ := modularity.Dense(lvl.view, initial, cfg.Gamma)

	for iter := 0; iter < cfg.MaxIterations; iter++ {
		var moves atomic.Int64
		err := concurrency.ParallelFor(exec.Termination, cfg.Concurrency, n, batch,
			func() *moveState {
				return &moveState{weights: make([]float64, n), seen: make([]bool, n)}
			},
			func(st *moveState, i int) error {
				ki := lvl.degrees[i]
				if ki == 0 {
					return nil
				}
				own := comm.Get(i)
				for u, w := range lvl.view.WeightedNeighbors(i, graph.DefaultWeight) {
					if u == i {
						continue
					}
					c := comm.Get(u)
					if !st.seen[c] {
						st.seen[c] = true
						st.touched = append(st.touched, c)
					}
					st.weights[c] += w
				}

				scale := cfg.Gamma * ki / lvl.m2
				best := own
				bestScore := st.weights[own] - scale*(tot.Get(int(own))-ki)
				for _, c := range st.touched {
					if c == own {
						continue
					}
					if score := st.weights[c] - scale*tot.Get(int(c)); score > bestScore {
						best, bestScore = c, score
					}
				}
				for _, c := range st.touched {
					st.weights[c] = 0
					st.seen[c] = false
				}
				st.touched = st.touched[:0]

				if best == own {
					return nil
				}
				if guardSwaps && best > own && size.Get(int(own)) == 1 && size.Get(int(best)) == 1 {
					return nil
				}
				tot.Add(int(own), -ki)
				tot.Add(int(best), ki)
				size.Add(int(own), -1)
				size.Add(int(best), 1)
				comm.Set(i, best)
				moves.Add(1)
				return nil
			})
		if err != nil {
			return nil, false, err
		}
		exec.Progress(1)

		if moves.Load() == 0 {
			return comm.ToSlice(), false, nil
		}
		q := modularity.Dense(lvl.view, comm.ToSlice(), cfg.Gamma)
		if q-lastQ < cfg.Tolerance {
			return comm.ToSlice(), false, nil
		}
		lastQ = q
	}
	return comm.ToSlice(), true, nil
}

// aggregate collapses every community into one node. Relationships
// between communities sum their weights; relationships inside a community
// become a self-loop carrying half the traversed weight, which the
// undirected view then yields twice, so degrees and the total weight are
// preserved.
func aggregate(view graph.View, communities []int64, k int, cfg Config, exec *algorithms.Execution) (*graph.CSRGraph, error) {
	n := view.NodeCount()
	acc := concurrency.NewShardedFloatMap(cfg.Concurrency * 4)
	parts := concurrency.RangePartitions(n, cfg.Concurrency, 1024)

	err := exec.Track("Louvain :: aggregate", n, func() error {
		return concurrency.RunPartitions(exec.Termination, cfg.Concurrency, parts, func(p concurrency.Partition) error {
			for v := p.Start; v < p.End(); v++ {
				cv := int(communities[v])
				for u, w := range view.WeightedNeighbors(v, graph.DefaultWeight) {
					cu := int(communities[u])
					switch {
					case cv < cu:
						acc.Add(concurrency.PackPair(cv, cu), w)
					case cv == cu:
						acc.Add(concurrency.PackPair(cv, cv), w/2)
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

	keys := make([]uint64, 0, acc.Len())
	acc.Range(func(key uint64, _ float64) { keys = append(keys, key) })
	slices.Sort(keys)

	b := graph.NewBuilder(k, true)
	for _, key := range keys {
		w, _ := acc.Get(key)
		src, dst := concurrency.UnpackPair(key)
		if err := b.Add(src, dst, w); err != nil {
			return nil, err
		}
	}
	return b.Build(graph.Undirected, false), nil
}

// renumber rewrites ids in place to 0..k-1 in order of first appearance
// and returns k.
func renumber(ids []int64) int {
	mapping := make(map[int64]int64)
	for i, c := range ids {
		id, ok := mapping[c]
		if !ok {
			id = int64(len(mapping))
			mapping[c] = id
		}
		ids[i] = id
	}
	return len(mapping)
}

// label returns output ids: consecutive ones, or else the smallest node id
// of each community.
func label(membership []int64, consecutive bool) []int64 {
	out := slices.Clone(membership)
	if consecutive {
		renumber(out)
		return out
	}
	first := make(map[int64]int64)
	for v, c := range membership {
		if _, ok := first[c]; !ok {
			first[c] = int64(v)
		}
		out[v] = first[c]
	}
	return out
}

func countDistinct(ids []int64) int {
	seen := make(map[int64]struct{})
	for _, c := range ids {
		seen[c] = struct{}{}
	}
	return len(seen)
}
