package graph

// TotalWeight sums the weights of every traversable relationship. Undirected
// views therefore count each stored relationship twice.
func TotalWeight(v View, fallback float64) float64 {
	total := 0.0
	for n := 0; n < v.NodeCount(); n++ {
		for _, w := range v.WeightedNeighbors(n, fallback) {
			total += w
		}
	}
	return total
}

// WeightedDegree sums the weights of the relationships of node n
func WeightedDegree(v View, n int, fallback float64) float64 {
	sum := 0.0
	for _, w := range v.WeightedNeighbors(n, fallback) {
		sum += w
	}
	return sum
}

// MaxDegree returns the largest degree in the view, 0 for an empty view
func MaxDegree(v View) int {
	best := 0
	for n := 0; n < v.NodeCount(); n++ {
		best = max(best, v.Degree(n))
	}
	return best
}
