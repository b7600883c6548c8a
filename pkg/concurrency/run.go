package concurrency

import (
	"context"
	"fmt"
	"sync/atomic"

	"golang.org/x/sync/errgroup"
)

// RunPartitions runs fn once per partition with at most concurrency workers.
// The flag is checked before each partition starts. The first error wins
// and keeps partitions that have not started from running; a panic inside
// fn is returned as an error wrapping ErrWorkerPanic.
func RunPartitions(flag *TerminationFlag, concurrency int, parts []Partition, fn func(Partition) error) error {
	if err := ValidateConcurrency(concurrency); err != nil {
		return err
	}
	if err := flag.AssertRunning(); err != nil {
		return err
	}

	g, ctx := errgroup.WithContext(context.Background())
	g.SetLimit(concurrency)
	for _, p := range parts {
		g.Go(func() error {
			if ctx.Err() != nil {
				return nil
			}
			if err := flag.AssertRunning(); err != nil {
				return err
			}
			return safeCall(func() error { return fn(p) })
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	return flag.AssertRunning()
}

// ParallelFor processes indices [0, n) in batches handed out by an atomic
// cursor. Each worker builds its own state once with newState and reuses it
// across batches. The flag is checked once per batch; after the first
// error no worker takes another batch.
func ParallelFor[S any](flag *TerminationFlag, concurrency, n, batch int, newState func() S, fn func(state S, i int) error) error {
	if err := ValidateConcurrency(concurrency); err != nil {
		return err
	}
	if err := flag.AssertRunning(); err != nil {
		return err
	}
	if n <= 0 {
		return nil
	}
	if batch < 1 {
		batch = 1
	}

	workers := concurrency
	if maxUseful := (n + batch - 1) / batch; workers > maxUseful {
		workers = maxUseful
	}

	var cursor atomic.Int64
	g, ctx := errgroup.WithContext(context.Background())
	for w := 0; w < workers; w++ {
		g.Go(func() error {
			return safeCall(func() error {
				state := newState()
				for {
					start := int(cursor.Add(int64(batch))) - batch
					if start >= n || ctx.Err() != nil {
						return nil
					}
					if err := flag.AssertRunning(); err != nil {
						return err
					}
					end := min(start+batch, n)
					for i := start; i < end; i++ {
						if err := fn(state, i); err != nil {
							return err
						}
					}
				}
			})
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	return flag.AssertRunning()
}

func safeCall(fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrWorkerPanic, r)
		}
	}()
	return fn()
}
