package concurrency

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestWorkerPoolBasicOperations(t *testing.T) {
	pool, err := NewWorkerPool(4)
	if err != nil {
		t.Fatalf("NewWorkerPool: %v", err)
	}

	var executed atomic.Bool
	if err := pool.Submit(func() error {
		executed.Store(true)
		return nil
	}); err != nil {
		t.Fatalf("Submit: %v", err)
	}

	if err := pool.Wait(); err != nil {
		t.Fatalf("Wait: %v", err)
	}
	if !executed.Load() {
		t.Error("Task was not executed")
	}
}

func TestWorkerPoolRejectsZeroWorkers(t *testing.T) {
	if _, err := NewWorkerPool(0); !errors.Is(err, ErrInvalidConcurrency) {
		t.Errorf("NewWorkerPool(0) error = %v, want ErrInvalidConcurrency", err)
	}
}

func TestWorkerPoolConcurrentSubmissions(t *testing.T) {
	pool, _ := NewWorkerPool(10)

	const numTasks = 100
	var counter atomic.Int64
	var wg sync.WaitGroup
	for i := 0; i < numTasks; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = pool.Submit(func() error {
				counter.Add(1)
				return nil
			})
		}()
	}
	wg.Wait()

	if err := pool.Wait(); err != nil {
		t.Fatalf("Wait: %v", err)
	}
	if counter.Load() != numTasks {
		t.Errorf("Expected counter %d, got %d", numTasks, counter.Load())
	}
}

func TestWorkerPoolCollectsErrors(t *testing.T) {
	pool, _ := NewWorkerPool(2)
	boom := errors.New("boom")
	_ = pool.Submit(func() error { return boom })
	_ = pool.Submit(func() error { return nil })

	if err := pool.Wait(); !errors.Is(err, boom) {
		t.Errorf("Wait() = %v, want boom", err)
	}
}

func TestWorkerPoolPanicBecomesError(t *testing.T) {
	pool, _ := NewWorkerPool(2)
	var observed atomic.Int32
	pool.OnPanic = func(any) { observed.Add(1) }

	_ = pool.Submit(func() error { panic("task exploded") })
	var after atomic.Bool
	_ = pool.Submit(func() error {
		after.Store(true)
		return nil
	})

	err := pool.Wait()
	if !errors.Is(err, ErrWorkerPanic) {
		t.Errorf("Wait() = %v, want ErrWorkerPanic", err)
	}
	if observed.Load() != 1 {
		t.Errorf("OnPanic called %d times, want 1", observed.Load())
	}
	if !after.Load() {
		t.Error("worker died after panic")
	}
}

func TestWorkerPoolSubmitAfterClose(t *testing.T) {
	pool, _ := NewWorkerPool(1)
	pool.Close()
	if err := pool.Submit(func() error { return nil }); !errors.Is(err, ErrPoolClosed) {
		t.Errorf("Submit after close = %v, want ErrPoolClosed", err)
	}
}

func TestWorkerPoolCloseRace(t *testing.T) {
	for iteration := 0; iteration < 50; iteration++ {
		pool, _ := NewWorkerPool(4)

		var wg sync.WaitGroup
		for i := 0; i < 8; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for j := 0; j < 10; j++ {
					_ = pool.Submit(func() error {
						time.Sleep(time.Microsecond)
						return nil
					})
				}
			}()
		}

		time.Sleep(time.Millisecond)
		pool.Close()
		wg.Wait()
	}
}
