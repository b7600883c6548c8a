package progress

import (
	"strings"
	"sync/atomic"
	"time"
)

// State is the lifecycle state of a task
type State string

const (
	StateRunning  State = "running"
	StateFinished State = "finished"
	StateFailed   State = "failed"
)

// task is one open level of the tracker stack
type task struct {
	name     string
	path     string
	start    time.Time
	volume   atomic.Int64
	progress atomic.Int64
	// highest decile (0..10) already reported
	reported atomic.Int64
}

func newTask(parent *task, name string, volume int) *task {
	t := &task{name: name, path: name, start: time.Now()}
	if parent != nil {
		t.path = parent.path + " :: " + name
	}
	t.volume.Store(int64(volume))
	return t
}

// percent returns the completion percentage, or -1 for unknown volume
func (t *task) percent() float64 {
	vol := t.volume.Load()
	if vol <= 0 {
		if vol == 0 {
			return 100
		}
		return -1
	}
	p := float64(t.progress.Load()) * 100 / float64(vol)
	if p > 100 {
		p = 100
	}
	return p
}

// Status is a point-in-time view of a tracked task
type Status struct {
	JobID     string    `json:"jobId"`
	Algorithm string    `json:"algorithm"`
	Task      string    `json:"task"`
	Depth     int       `json:"depth"`
	Progress  int64     `json:"progress"`
	Volume    int64     `json:"volume"`
	Percent   float64   `json:"percent"`
	State     State     `json:"state"`
	Error     string    `json:"error,omitempty"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Leaf returns the innermost task name of Status.Task
func (s Status) Leaf() string {
	if i := strings.LastIndex(s.Task, " :: "); i >= 0 {
		return s.Task[i+4:]
	}
	return s.Task
}
