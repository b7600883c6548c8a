package maxkcut

import (
	"math/rand/v2"

	"github.com/dd0wney/cluso-gds/pkg/algorithms"
	"github.com/dd0wney/cluso-gds/pkg/concurrency"
	"github.com/dd0wney/cluso-gds/pkg/graph"
	"github.com/dd0wney/cluso-gds/pkg/logging"
)

// maxLocalSearchRounds bounds the improvement rounds of one iteration
const maxLocalSearchRounds = 100

// Result holds the best assignment found and the total weight of the
// relationships it cuts.
type Result struct {
	Communities []int64
	CutCost     float64
}

// solution is one candidate assignment with the weight each node sends
// into every community, row-major by node.
type solution struct {
	k           int
	comm        []int
	sizes       []int
	toCommunity []float64
}

// Compute runs Iterations rounds of randomized construction followed by
// local search and keeps the best cut. The view must be undirected so a
// relationship is seen from both ends. Self loops never cross the cut.
// Runs are reproducible for a fixed RandomSeed regardless of concurrency.
func Compute(view graph.View, cfg Config, exec *algorithms.Execution) (*Result, error) {
	exec = exec.WithDefaults()
	if err := exec.Termination.AssertRunning(); err != nil {
		return nil, err
	}

	n := view.NodeCount()
	minSizes := cfg.minSizes()
	required := 0
	for _, s := range minSizes {
		required += s
	}
	if required > n {
		return nil, algorithms.ConfigError(Name, "MinCommunitySizes",
			"communities need %d nodes but the graph has %d", required, n)
	}

	parts := concurrency.RangePartitions(n, cfg.Concurrency, 1024)
	var best *Result
	err := exec.Track("ApproxMaxKCut :: iterate", cfg.Iterations, func() error {
		for iter := range cfg.Iterations {
			rng := rand.New(rand.NewPCG(cfg.RandomSeed, uint64(iter)))
			s := place(n, cfg.K, minSizes, rng)
			if err := s.weigh(view, parts, cfg.Concurrency, exec.Termination); err != nil {
				return err
			}
			s.improve(view, minSizes, cfg.Minimize)
			cost, err := cutCost(view, s.comm, parts, cfg.Concurrency, exec.Termination)
			if err != nil {
				return err
			}
			if best == nil || (cfg.Minimize && cost < best.CutCost) || (!cfg.Minimize && cost > best.CutCost) {
				best = &Result{Communities: make([]int64, n), CutCost: cost}
				for v, c := range s.comm {
					best.Communities[v] = int64(c)
				}
			}
			exec.Progress(1)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	exec.Logger.Debug("approximate max k-cut finished",
		logging.NodeCount(n), logging.Float64("cut_cost", best.CutCost), logging.Bool("minimize", cfg.Minimize))
	return best, nil
}

// place fills every community up to its minimum with nodes of a random
// permutation and spreads the rest uniformly.
func place(n, k int, minSizes []int, rng *rand.Rand) *solution {
	s := &solution{k: k, comm: make([]int, n), sizes: make([]int, k), toCommunity: make([]float64, n*k)}
	perm := rng.Perm(n)
	i := 0
	for c, size := range minSizes {
		for range size {
			s.comm[perm[i]] = c
			s.sizes[c]++
			i++
		}
	}
	for _, v := range perm[i:] {
		c := rng.IntN(k)
		s.comm[v] = c
		s.sizes[c]++
	}
	return s
}

// weigh fills toCommunity; every worker writes only the rows of its nodes
func (s *solution) weigh(view graph.View, parts []concurrency.Partition, conc int, flag *concurrency.TerminationFlag) error {
	return concurrency.RunPartitions(flag, conc, parts, func(p concurrency.Partition) error {
		for v := p.Start; v < p.End(); v++ {
			row := s.toCommunity[v*s.k : (v+1)*s.k]
			clear(row)
			for u, w := range view.WeightedNeighbors(v, graph.DefaultWeight) {
				if u != v {
					row[s.comm[u]] += w
				}
			}
		}
		return nil
	})
}

// improve moves nodes one at a time to the community that most improves
// the cut, updating neighbor rows as it goes, until a round moves nothing.
// A community already at its minimum size gives up no nodes.
func (s *solution) improve(view graph.View, minSizes []int, minimize bool) {
	better := func(a, b float64) bool {
		if minimize {
			return a > b
		}
		return a < b
	}
	n := len(s.comm)
	for range maxLocalSearchRounds {
		moved := false
		for v := range n {
			from := s.comm[v]
			if s.sizes[from] <= minSizes[from] {
				continue
			}
			row := s.toCommunity[v*s.k : (v+1)*s.k]
			to := from
			for c := range s.k {
				if better(row[c], row[to]) {
					to = c
				}
			}
			if to == from {
				continue
			}
			s.comm[v] = to
			s.sizes[from]--
			s.sizes[to]++
			for u, w := range view.WeightedNeighbors(v, graph.DefaultWeight) {
				if u != v {
					s.toCommunity[u*s.k+from] -= w
					s.toCommunity[u*s.k+to] += w
				}
			}
			moved = true
		}
		if !moved {
			return
		}
	}
}

// cutCost sums the weight of relationships whose ends differ. Each
// relationship is seen from both ends of the undirected view.
func cutCost(view graph.View, comm []int, parts []concurrency.Partition, conc int, flag *concurrency.TerminationFlag) (float64, error) {
	total := concurrency.NewAtomicFloat64Array(1)
	err := concurrency.RunPartitions(flag, conc, parts, func(p concurrency.Partition) error {
		sum := 0.0
		for v := p.Start; v < p.End(); v++ {
			for u, w := range view.WeightedNeighbors(v, graph.DefaultWeight) {
				if comm[u] != comm[v] {
					sum += w
				}
			}
		}
		total.Add(0, sum)
		return nil
	})
	return total.Get(0) / 2, err
}
