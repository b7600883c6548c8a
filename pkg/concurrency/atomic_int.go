package concurrency

import "sync/atomic"

// AtomicInt64Array is a fixed-length array of int64 with atomic element access.
type AtomicInt64Array struct {
	v []atomic.Int64
}

// NewAtomicInt64Array returns an array of n zeros.
func NewAtomicInt64Array(n int) *AtomicInt64Array {
	return &AtomicInt64Array{v: make([]atomic.Int64, n)}
}

// NewAtomicInt64ArrayFilled returns an array of n copies of x.
func NewAtomicInt64ArrayFilled(n int, x int64) *AtomicInt64Array {
	a := NewAtomicInt64Array(n)
	for i := range a.v {
		a.v[i].Store(x)
	}
	return a
}

// NewAtomicInt64ArrayIdentity returns [0, 1, ..., n-1].
func NewAtomicInt64ArrayIdentity(n int) *AtomicInt64Array {
	a := NewAtomicInt64Array(n)
	for i := range a.v {
		a.v[i].Store(int64(i))
	}
	return a
}

// Len returns the number of elements
func (a *AtomicInt64Array) Len() int { return len(a.v) }

// Get loads element i
func (a *AtomicInt64Array) Get(i int) int64 { return a.v[i].Load() }

// Set stores x at element i
func (a *AtomicInt64Array) Set(i int, x int64) { a.v[i].Store(x) }

// Add adds delta to element i and returns the new value
func (a *AtomicInt64Array) Add(i int, delta int64) int64 { return a.v[i].Add(delta) }

// CompareAndSwap swaps element i from old to new
func (a *AtomicInt64Array) CompareAndSwap(i int, old, new int64) bool {
	return a.v[i].CompareAndSwap(old, new)
}

// UpdateMin lowers element i to x if x is smaller
func (a *AtomicInt64Array) UpdateMin(i int, x int64) bool {
	for {
		old := a.v[i].Load()
		if x >= old {
			return false
		}
		if a.v[i].CompareAndSwap(old, x) {
			return true
		}
	}
}

// ToSlice copies the array into a plain slice
func (a *AtomicInt64Array) ToSlice() []int64 {
	out := make([]int64, len(a.v))
	for i := range a.v {
		out[i] = a.v[i].Load()
	}
	return out
}
