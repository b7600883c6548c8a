package results

import (
	"math"
	"slices"

	"golang.org/x/exp/constraints"
)

// Number is any value a per-node result column can hold
type Number interface {
	constraints.Integer | constraints.Float
}

// Distribution summarizes a set of values. NaN values are not counted.
type Distribution struct {
	Count  int     `json:"count"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	Mean   float64 `json:"mean"`
	StdDev float64 `json:"stdDev"`
	P50    float64 `json:"p50"`
	P75    float64 `json:"p75"`
	P90    float64 `json:"p90"`
	P95    float64 `json:"p95"`
	P99    float64 `json:"p99"`
	P999   float64 `json:"p999"`
}

// Distribute computes the distribution of values. An empty or all-NaN
// input yields the zero Distribution.
func Distribute[V Number](values []V) Distribution {
	sorted := make([]float64, 0, len(values))
	for _, v := range values {
		f := float64(v)
		if math.IsNaN(f) {
			continue
		}
		sorted = append(sorted, f)
	}
	if len(sorted) == 0 {
		return Distribution{}
	}
	slices.Sort(sorted)

	sum := 0.0
	for _, f := range sorted {
		sum += f
	}
	mean := sum / float64(len(sorted))
	variance := 0.0
	for _, f := range sorted {
		d := f - mean
		variance += d * d
	}
	variance /= float64(len(sorted))

	return Distribution{
		Count:  len(sorted),
		Min:    sorted[0],
		Max:    sorted[len(sorted)-1],
		Mean:   mean,
		StdDev: math.Sqrt(variance),
		P50:    percentile(sorted, 0.50),
		P75:    percentile(sorted, 0.75),
		P90:    percentile(sorted, 0.90),
		P95:    percentile(sorted, 0.95),
		P99:    percentile(sorted, 0.99),
		P999:   percentile(sorted, 0.999),
	}
}

// percentile uses the nearest-rank method on a sorted slice
func percentile(sorted []float64, p float64) float64 {
	rank := int(math.Ceil(p*float64(len(sorted)))) - 1
	rank = max(0, min(rank, len(sorted)-1))
	return sorted[rank]
}

func isFloat[V Number]() bool {
	half := 0.5
	return V(half) != 0
}
