// Package algorithms holds the machinery shared by every algorithm: the
// Algorithm contract, the execution context handed to computation runtimes,
// the single error type surfaced to dispatch and run instrumentation.
//
// Each algorithm lives in its own sub-package as a triad:
//   - a storage runtime that projects the graph store into the oriented,
//     filtered and weighted graph.View the algorithm needs
//   - a computation runtime, a pure function of the view, the config and
//     the Execution, that owns its concurrency
//   - a result value that pkg/results turns into stream, stats, mutate and
//     write output without running the computation again
package algorithms

import (
	"context"

	"github.com/dd0wney/cluso-gds/pkg/concurrency"
	"github.com/dd0wney/cluso-gds/pkg/graphstore"
	"github.com/dd0wney/cluso-gds/pkg/logging"
	"github.com/dd0wney/cluso-gds/pkg/metrics"
	"github.com/dd0wney/cluso-gds/pkg/progress"
)

// Algorithm is implemented once per algorithm package. Compute runs the
// storage runtime and the computation runtime; it is called through Run,
// which validates the config and instruments the call.
type Algorithm[C Config, R any] interface {
	Name() string
	DefaultConfig() C
	Estimate(store *graphstore.GraphStore, cfg C) MemoryRange
	Compute(store *graphstore.GraphStore, cfg C, exec *Execution) (R, error)
}

// Execution carries the collaborators of one computation call.
type Execution struct {
	Termination *concurrency.TerminationFlag
	Tracker     progress.Tracker
	Logger      logging.Logger
	Metrics     *metrics.Registry
	// Mode labels metrics and logs; it does not change the computation
	Mode string
}

// NewExecution returns an execution whose flag trips when ctx is done.
func NewExecution(ctx context.Context) *Execution {
	return &Execution{
		Termination: concurrency.NewTerminationFlag(ctx),
		Tracker:     progress.NopTracker{},
		Logger:      logging.NopLogger(),
	}
}

// WithDefaults returns a copy of e with nil collaborators replaced by
// no-ops. A nil e yields a fresh, never-tripping execution.
func (e *Execution) WithDefaults() *Execution {
	if e == nil {
		return NewExecution(context.Background())
	}
	out := *e
	if out.Termination == nil {
		out.Termination = concurrency.RunningTrue()
	}
	if out.Tracker == nil {
		out.Tracker = progress.NopTracker{}
	}
	if out.Logger == nil {
		out.Logger = logging.NopLogger()
	}
	return &out
}

// Track runs fn as a progress subtask of the given volume and closes the
// subtask with the outcome of fn.
func (e *Execution) Track(name string, volume int, fn func() error) error {
	e.Tracker.BeginSubTask(name, volume)
	if err := fn(); err != nil {
		e.Tracker.EndSubTaskWithFailure(err)
		return err
	}
	e.Tracker.EndSubTask()
	return nil
}

// Progress is a shorthand for Tracker.LogProgress
func (e *Execution) Progress(n int) { e.Tracker.LogProgress(n) }
