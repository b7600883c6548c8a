package concurrency

import (
	"errors"
	"fmt"
)

// DefaultConcurrency is used when a config does not set one explicitly.
const DefaultConcurrency = 4

// ErrInvalidConcurrency is returned for a concurrency below one.
var ErrInvalidConcurrency = errors.New("concurrency must be at least 1")

// ValidateConcurrency rejects zero and negative worker counts.
func ValidateConcurrency(concurrency int) error {
	if concurrency < 1 {
		return fmt.Errorf("%w, got %d", ErrInvalidConcurrency, concurrency)
	}
	return nil
}

// Partition is a contiguous range of node ids [Start, Start+Length).
type Partition struct {
	Start  int
	Length int
}

// End returns the exclusive upper bound of the partition
func (p Partition) End() int { return p.Start + p.Length }

// RangePartitions splits [0, n) into contiguous batches, about one per
// worker, never smaller than minBatch except for the last one.
func RangePartitions(n, concurrency, minBatch int) []Partition {
	if n <= 0 {
		return nil
	}
	if concurrency < 1 {
		concurrency = 1
	}
	if minBatch < 1 {
		minBatch = 1
	}

	// int64 keeps the ceiling division from overflowing
	batch := int((int64(n) + int64(concurrency) - 1) / int64(concurrency))
	if batch < minBatch {
		batch = minBatch
	}

	parts := make([]Partition, 0, (n+batch-1)/batch)
	for start := 0; start < n; start += batch {
		length := batch
		if start+length > n {
			length = n - start
		}
		parts = append(parts, Partition{Start: start, Length: length})
	}
	return parts
}

// DegreePartitions splits [0, n) into contiguous batches of roughly equal
// total degree, so that hub-heavy ranges do not end up on a single worker.
func DegreePartitions(n, concurrency int, degree func(node int) int) []Partition {
	if n <= 0 {
		return nil
	}
	if concurrency < 1 {
		concurrency = 1
	}

	var total int64
	for v := 0; v < n; v++ {
		total += int64(degree(v))
	}
	if total == 0 {
		return RangePartitions(n, concurrency, 1)
	}

	target := (total + int64(concurrency) - 1) / int64(concurrency)
	parts := make([]Partition, 0, concurrency)
	start := 0
	var acc int64
	for v := 0; v < n; v++ {
		acc += int64(degree(v))
		if acc >= target {
			parts = append(parts, Partition{Start: start, Length: v + 1 - start})
			start = v + 1
			acc = 0
		}
	}
	if start < n {
		parts = append(parts, Partition{Start: start, Length: n - start})
	}
	return parts
}
