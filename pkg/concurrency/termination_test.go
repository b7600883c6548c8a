package concurrency

import (
	"context"
	"errors"
	"sync"
	"testing"
)

func TestTerminationFlag_Terminate(t *testing.T) {
	flag := RunningTrue()
	if err := flag.AssertRunning(); err != nil {
		t.Fatalf("fresh flag: %v", err)
	}

	flag.Terminate()
	flag.Terminate()

	if flag.Running() {
		t.Error("flag still running after Terminate")
	}
	if !errors.Is(flag.AssertRunning(), ErrTerminated) {
		t.Errorf("AssertRunning() = %v, want ErrTerminated", flag.AssertRunning())
	}
}

func TestTerminationFlag_ContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	flag := NewTerminationFlag(ctx)
	if !flag.Running() {
		t.Fatal("flag tripped before cancel")
	}
	cancel()
	if flag.Running() {
		t.Error("flag running after ctx cancel")
	}
}

func TestTerminationFlag_Sticky(t *testing.T) {
	flag := RunningTrue()
	flag.Terminate()
	for i := 0; i < 10; i++ {
		if flag.AssertRunning() == nil {
			t.Fatalf("flag recovered on check %d", i)
		}
	}
}

func TestTerminationFlag_NilIsRunning(t *testing.T) {
	var flag *TerminationFlag
	if err := flag.AssertRunning(); err != nil {
		t.Errorf("nil flag AssertRunning() = %v", err)
	}
	flag.Terminate()
}

func TestTerminationFlag_ConcurrentChecks(t *testing.T) {
	flag := RunningTrue()
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 1000; j++ {
				_ = flag.AssertRunning()
			}
		}()
	}
	flag.Terminate()
	wg.Wait()
	if flag.Running() {
		t.Error("flag running after concurrent Terminate")
	}
}
