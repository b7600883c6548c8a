package progress

import (
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/dd0wney/cluso-gds/pkg/logging"
	"github.com/dd0wney/cluso-gds/pkg/metrics"
)

// TaskTracker is the standard Tracker. It keeps a stack of open subtasks,
// logs each 10% step of the innermost task and publishes status to metrics
// and an optional TaskRegistry.
type TaskTracker struct {
	jobID     string
	algorithm string
	logger    logging.Logger
	metrics   *metrics.Registry
	registry  *TaskRegistry

	mu    sync.Mutex
	stack []*task

	current atomic.Pointer[task]
}

// TrackerConfig configures a TaskTracker. Zero values are valid.
type TrackerConfig struct {
	Algorithm string
	JobID     string
	Logger    logging.Logger
	Metrics   *metrics.Registry
	Registry  *TaskRegistry
}

// NewTaskTracker creates a tracker for one computation call.
func NewTaskTracker(cfg TrackerConfig) *TaskTracker {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.NopLogger()
	}
	jobID := cfg.JobID
	if jobID == "" && cfg.Registry != nil {
		jobID = cfg.Registry.NewJobID()
	}
	return &TaskTracker{
		jobID:     jobID,
		algorithm: cfg.Algorithm,
		logger:    logger.With(logging.Algorithm(cfg.Algorithm), logging.JobID(jobID)),
		metrics:   cfg.Metrics,
		registry:  cfg.Registry,
	}
}

// JobID returns the id under which status is published
func (tt *TaskTracker) JobID() string { return tt.jobID }

// BeginSubTask opens a nested task. volume may be UnknownVolume.
func (tt *TaskTracker) BeginSubTask(name string, volume int) {
	tt.mu.Lock()
	var parent *task
	if len(tt.stack) > 0 {
		parent = tt.stack[len(tt.stack)-1]
	}
	t := newTask(parent, name, volume)
	tt.stack = append(tt.stack, t)
	depth := len(tt.stack)
	tt.mu.Unlock()

	tt.current.Store(t)
	if tt.metrics != nil {
		tt.metrics.TaskStarted()
	}

	fields := []logging.Field{logging.Task(t.path)}
	if volume != UnknownVolume {
		fields = append(fields, logging.Int64("volume", int64(volume)))
	}
	tt.logger.Debug("task started", fields...)
	tt.publish(t, depth, StateRunning, nil)
}

// LogProgress adds n units to the innermost task. Safe for concurrent use.
func (tt *TaskTracker) LogProgress(n int) {
	t := tt.current.Load()
	if t == nil || n <= 0 {
		return
	}
	done := t.progress.Add(int64(n))
	vol := t.volume.Load()
	if vol <= 0 {
		return
	}

	decile := done * 10 / vol
	if decile > 10 {
		decile = 10
	}
	for {
		last := t.reported.Load()
		if decile <= last {
			return
		}
		if t.reported.CompareAndSwap(last, decile) {
			break
		}
	}

	percent := float64(decile * 10)
	tt.logger.Info("progress", logging.Task(t.path), logging.Percent(percent))
	if tt.metrics != nil {
		tt.metrics.SetTaskProgress(tt.metricLabel(t), percent)
	}
	tt.publish(t, tt.depth(), StateRunning, nil)
}

// SetVolume replaces the volume of the innermost task, e.g. once a
// previously unknown amount of work becomes known.
func (tt *TaskTracker) SetVolume(volume int) {
	if t := tt.current.Load(); t != nil {
		t.volume.Store(int64(volume))
		t.reported.Store(0)
	}
}

// EndSubTask closes the innermost task.
func (tt *TaskTracker) EndSubTask() { tt.end(nil) }

// EndSubTaskWithFailure closes the innermost task and marks it failed.
func (tt *TaskTracker) EndSubTaskWithFailure(err error) { tt.end(err) }

func (tt *TaskTracker) end(err error) {
	tt.mu.Lock()
	if len(tt.stack) == 0 {
		tt.mu.Unlock()
		return
	}
	depth := len(tt.stack)
	t := tt.stack[depth-1]
	tt.stack = tt.stack[:depth-1]
	var next *task
	if len(tt.stack) > 0 {
		next = tt.stack[len(tt.stack)-1]
	}
	tt.mu.Unlock()
	tt.current.Store(next)

	fields := []logging.Field{
		logging.Task(t.path),
		logging.Int64("progress", t.progress.Load()),
		logging.Latency(time.Since(t.start)),
	}
	if p := t.percent(); p >= 0 {
		fields = append(fields, logging.Percent(p))
	}

	state := StateFinished
	if err != nil {
		state = StateFailed
		tt.logger.Warn("task failed", append(fields, logging.Error(err))...)
	} else {
		tt.logger.Debug("task finished", fields...)
	}
	if tt.metrics != nil {
		tt.metrics.TaskFinished(tt.metricLabel(t), err != nil)
	}
	tt.publish(t, depth, state, err)
}

// metricLabel keeps task metrics to one series per algorithm; subtask
// names such as per-level tasks stay in logs and statuses only.
func (tt *TaskTracker) metricLabel(t *task) string {
	if tt.algorithm != "" {
		return tt.algorithm
	}
	root, _, _ := strings.Cut(t.path, " :: ")
	return root
}

func (tt *TaskTracker) depth() int {
	tt.mu.Lock()
	defer tt.mu.Unlock()
	return len(tt.stack)
}

func (tt *TaskTracker) publish(t *task, depth int, state State, err error) {
	if tt.registry == nil {
		return
	}
	s := Status{
		JobID:     tt.jobID,
		Algorithm: tt.algorithm,
		Task:      t.path,
		Depth:     depth,
		Progress:  t.progress.Load(),
		Volume:    t.volume.Load(),
		Percent:   t.percent(),
		State:     state,
		UpdatedAt: time.Now(),
	}
	if err != nil {
		s.Error = err.Error()
	}
	tt.registry.Update(s)
}
