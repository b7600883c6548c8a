package concurrency

import (
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunPartitions_VisitsEveryIndexOnce(t *testing.T) {
	const n = 1000
	seen := make([]atomic.Int32, n)

	err := RunPartitions(RunningTrue(), 4, RangePartitions(n, 4, 1), func(p Partition) error {
		for i := p.Start; i < p.End(); i++ {
			seen[i].Add(1)
		}
		return nil
	})
	require.NoError(t, err)
	for i := range seen {
		require.EqualValues(t, 1, seen[i].Load(), "index %d", i)
	}
}

func TestRunPartitions_RejectsZeroConcurrency(t *testing.T) {
	err := RunPartitions(RunningTrue(), 0, RangePartitions(10, 1, 1), func(Partition) error { return nil })
	assert.ErrorIs(t, err, ErrInvalidConcurrency)
}

func TestRunPartitions_PreTrippedFlag(t *testing.T) {
	flag := RunningTrue()
	flag.Terminate()

	var calls atomic.Int32
	err := RunPartitions(flag, 2, RangePartitions(10, 2, 1), func(Partition) error {
		calls.Add(1)
		return nil
	})
	assert.ErrorIs(t, err, ErrTerminated)
	assert.Zero(t, calls.Load())
}

func TestRunPartitions_TerminateMidway(t *testing.T) {
	flag := RunningTrue()
	err := RunPartitions(flag, 1, RangePartitions(100, 100, 1), func(p Partition) error {
		if p.Start == 3 {
			flag.Terminate()
		}
		return nil
	})
	assert.ErrorIs(t, err, ErrTerminated)
}

func TestRunPartitions_PropagatesError(t *testing.T) {
	boom := errors.New("boom")
	err := RunPartitions(RunningTrue(), 3, RangePartitions(9, 3, 1), func(p Partition) error {
		if p.Start == 3 {
			return boom
		}
		return nil
	})
	assert.ErrorIs(t, err, boom)
}

func TestRunPartitions_ErrorSkipsRemainingPartitions(t *testing.T) {
	boom := errors.New("boom")
	var started atomic.Int32
	err := RunPartitions(RunningTrue(), 1, RangePartitions(10, 10, 1), func(p Partition) error {
		started.Add(1)
		return boom
	})
	assert.ErrorIs(t, err, boom)
	assert.EqualValues(t, 1, started.Load())
}

func TestRunPartitions_RecoversPanic(t *testing.T) {
	err := RunPartitions(RunningTrue(), 2, RangePartitions(4, 2, 1), func(p Partition) error {
		if p.Start == 0 {
			panic("bad index")
		}
		return nil
	})
	assert.ErrorIs(t, err, ErrWorkerPanic)
}

func TestParallelFor_PerWorkerState(t *testing.T) {
	const n = 10_000
	var states atomic.Int32
	var total atomic.Int64

	err := ParallelFor(RunningTrue(), 4, n, 64,
		func() *int64 {
			states.Add(1)
			return new(int64)
		},
		func(local *int64, i int) error {
			*local += int64(i)
			total.Add(int64(i))
			return nil
		})
	require.NoError(t, err)
	assert.EqualValues(t, int64(n)*(n-1)/2, total.Load())
	assert.LessOrEqual(t, states.Load(), int32(4))
}

func TestParallelFor_TerminatedBetweenBatches(t *testing.T) {
	flag := RunningTrue()
	var processed atomic.Int32
	err := ParallelFor(flag, 1, 1000, 10, func() struct{} { return struct{}{} }, func(_ struct{}, i int) error {
		processed.Add(1)
		if i == 15 {
			flag.Terminate()
		}
		return nil
	})
	assert.ErrorIs(t, err, ErrTerminated)
	assert.EqualValues(t, 20, processed.Load(), "the batch in flight completes, later batches are skipped")
}

func TestParallelFor_ErrorStopsOtherWorkers(t *testing.T) {
	const n = 100_000
	boom := errors.New("boom")
	var processed atomic.Int64
	err := ParallelFor(RunningTrue(), 4, n, 1, func() struct{} { return struct{}{} }, func(_ struct{}, i int) error {
		if i == 0 {
			return boom
		}
		processed.Add(1)
		time.Sleep(10 * time.Microsecond)
		return nil
	})
	assert.ErrorIs(t, err, boom)
	assert.Less(t, processed.Load(), int64(n/2))
}

func TestParallelFor_Empty(t *testing.T) {
	err := ParallelFor(RunningTrue(), 2, 0, 1, func() int { return 0 }, func(int, int) error {
		t.Fatal("fn called for empty range")
		return nil
	})
	assert.NoError(t, err)
}
