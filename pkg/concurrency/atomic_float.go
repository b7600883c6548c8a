package concurrency

import (
	"errors"
	"math"
	"sync/atomic"
)

// ErrUnorderedBits is returned by MaxNonNegative when a value is negative or
// NaN, where IEEE-754 bit order no longer matches numeric order.
var ErrUnorderedBits = errors.New("value cannot be ordered by bit pattern")

const negativeZeroBits = uint64(1) << 63

// AtomicFloat64Array stores float64 values as their bit patterns so that
// workers can update elements with compare-and-swap.
type AtomicFloat64Array struct {
	bits []atomic.Uint64
}

// NewAtomicFloat64Array returns an array of n zeros.
func NewAtomicFloat64Array(n int) *AtomicFloat64Array {
	return &AtomicFloat64Array{bits: make([]atomic.Uint64, n)}
}

// NewAtomicFloat64ArrayFilled returns an array of n copies of v.
func NewAtomicFloat64ArrayFilled(n int, v float64) *AtomicFloat64Array {
	a := NewAtomicFloat64Array(n)
	b := math.Float64bits(v)
	for i := range a.bits {
		a.bits[i].Store(b)
	}
	return a
}

// Len returns the number of elements
func (a *AtomicFloat64Array) Len() int { return len(a.bits) }

// Get loads element i
func (a *AtomicFloat64Array) Get(i int) float64 {
	return math.Float64frombits(a.bits[i].Load())
}

// Set stores v at element i
func (a *AtomicFloat64Array) Set(i int, v float64) {
	a.bits[i].Store(math.Float64bits(v))
}

// CompareAndSwap replaces element i with new if it is bit-identical to old.
func (a *AtomicFloat64Array) CompareAndSwap(i int, old, new float64) bool {
	return a.bits[i].CompareAndSwap(math.Float64bits(old), math.Float64bits(new))
}

// Add adds delta to element i and returns the new value.
func (a *AtomicFloat64Array) Add(i int, delta float64) float64 {
	for {
		oldBits := a.bits[i].Load()
		next := math.Float64frombits(oldBits) + delta
		if a.bits[i].CompareAndSwap(oldBits, math.Float64bits(next)) {
			return next
		}
	}
}

// UpdateMin stores v if it is numerically smaller than the current value.
// Comparison is numeric, so any non-NaN value is handled; a NaN never wins.
func (a *AtomicFloat64Array) UpdateMin(i int, v float64) bool {
	for {
		oldBits := a.bits[i].Load()
		if !(v < math.Float64frombits(oldBits)) {
			return false
		}
		if a.bits[i].CompareAndSwap(oldBits, math.Float64bits(v)) {
			return true
		}
	}
}

// UpdateMax stores v if it is numerically larger than the current value.
func (a *AtomicFloat64Array) UpdateMax(i int, v float64) bool {
	for {
		oldBits := a.bits[i].Load()
		if !(v > math.Float64frombits(oldBits)) {
			return false
		}
		if a.bits[i].CompareAndSwap(oldBits, math.Float64bits(v)) {
			return true
		}
	}
}

// MaxNonNegative raises element i to v comparing raw bit patterns, which
// order like the numbers only for non-negative, non-NaN values. Both v and
// the stored value are checked; -0 is treated as +0.
func (a *AtomicFloat64Array) MaxNonNegative(i int, v float64) (bool, error) {
	if math.IsNaN(v) || v < 0 {
		return false, ErrUnorderedBits
	}
	newBits := math.Float64bits(v)
	if v == 0 {
		newBits = 0
	}
	for {
		oldBits := a.bits[i].Load()
		if oldBits == negativeZeroBits {
			a.bits[i].CompareAndSwap(negativeZeroBits, 0)
			continue
		}
		if oldBits>>63 == 1 || math.IsNaN(math.Float64frombits(oldBits)) {
			return false, ErrUnorderedBits
		}
		if newBits <= oldBits {
			return false, nil
		}
		if a.bits[i].CompareAndSwap(oldBits, newBits) {
			return true, nil
		}
	}
}

// ToSlice copies the array into a plain slice. Callers must ensure no
// writer is active.
func (a *AtomicFloat64Array) ToSlice() []float64 {
	out := make([]float64, len(a.bits))
	for i := range a.bits {
		out[i] = math.Float64frombits(a.bits[i].Load())
	}
	return out
}
