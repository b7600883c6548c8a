package concurrency

import (
	"math/bits"
	"sync"
)

// StripedLocks maps keys onto a fixed set of mutexes.
type StripedLocks struct {
	mask  uint64
	locks []paddedMutex
}

type paddedMutex struct {
	sync.Mutex
	_ [56]byte
}

// NewStripedLocks returns at least stripes locks, rounded up to a power of two.
func NewStripedLocks(stripes int) *StripedLocks {
	if stripes < 1 {
		stripes = 1
	}
	n := 1 << bits.Len(uint(stripes-1))
	return &StripedLocks{mask: uint64(n - 1), locks: make([]paddedMutex, n)}
}

func spread(key uint64) uint64 {
	key *= 0x9E3779B97F4A7C15
	return key ^ (key >> 32)
}

// For returns the mutex guarding key
func (s *StripedLocks) For(key uint64) *sync.Mutex {
	return &s.locks[spread(key)&s.mask].Mutex
}

// ShardedFloatMap accumulates float64 sums per uint64 key. Each shard has
// its own lock so concurrent writers to different keys rarely contend.
type ShardedFloatMap struct {
	mask   uint64
	shards []floatShard
}

type floatShard struct {
	mu sync.Mutex
	m  map[uint64]float64
}

// NewShardedFloatMap returns a map with at least shards shards.
func NewShardedFloatMap(shards int) *ShardedFloatMap {
	if shards < 1 {
		shards = 1
	}
	n := 1 << bits.Len(uint(shards-1))
	sm := &ShardedFloatMap{mask: uint64(n - 1), shards: make([]floatShard, n)}
	for i := range sm.shards {
		sm.shards[i].m = make(map[uint64]float64)
	}
	return sm
}

// Add adds delta to key
func (sm *ShardedFloatMap) Add(key uint64, delta float64) {
	sh := &sm.shards[spread(key)&sm.mask]
	sh.mu.Lock()
	sh.m[key] += delta
	sh.mu.Unlock()
}

// Get returns the sum stored for key
func (sm *ShardedFloatMap) Get(key uint64) (float64, bool) {
	sh := &sm.shards[spread(key)&sm.mask]
	sh.mu.Lock()
	defer sh.mu.Unlock()
	v, ok := sh.m[key]
	return v, ok
}

// Len returns the number of keys
func (sm *ShardedFloatMap) Len() int {
	n := 0
	for i := range sm.shards {
		sm.shards[i].mu.Lock()
		n += len(sm.shards[i].m)
		sm.shards[i].mu.Unlock()
	}
	return n
}

// Range calls fn for every key. Iteration order is unspecified; callers
// must not write to the map while ranging.
func (sm *ShardedFloatMap) Range(fn func(key uint64, sum float64)) {
	for i := range sm.shards {
		for k, v := range sm.shards[i].m {
			fn(k, v)
		}
	}
}

// PackPair packs two 32-bit ids into one key
func PackPair(a, b int) uint64 { return uint64(uint32(a))<<32 | uint64(uint32(b)) }

// UnpackPair reverses PackPair
func UnpackPair(key uint64) (int, int) { return int(key >> 32), int(uint32(key)) }
