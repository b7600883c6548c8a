package progress

import (
	"slices"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// Listener observes task status changes
type Listener func(Status)

// TaskRegistry holds the latest status per job and fans updates out to
// listeners. Listeners are called synchronously from the reporting goroutine
// and must not block.
type TaskRegistry struct {
	mu        sync.RWMutex
	jobs      map[string]Status
	listeners map[int]Listener
	nextID    int
}

// NewTaskRegistry creates an empty registry
func NewTaskRegistry() *TaskRegistry {
	return &TaskRegistry{
		jobs:      make(map[string]Status),
		listeners: make(map[int]Listener),
	}
}

// NewJobID returns a fresh random job id
func (r *TaskRegistry) NewJobID() string {
	return uuid.NewString()
}

// Update records s as the latest status of its job
func (r *TaskRegistry) Update(s Status) {
	r.mu.Lock()
	r.jobs[s.JobID] = s
	listeners := make([]Listener, 0, len(r.listeners))
	for _, l := range r.listeners {
		listeners = append(listeners, l)
	}
	r.mu.Unlock()

	for _, l := range listeners {
		l(s)
	}
}

// Get returns the latest status of a job
func (r *TaskRegistry) Get(jobID string) (Status, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.jobs[jobID]
	return s, ok
}

// List returns all job statuses ordered by job id
func (r *TaskRegistry) List() []Status {
	r.mu.RLock()
	out := make([]Status, 0, len(r.jobs))
	for _, s := range r.jobs {
		out = append(out, s)
	}
	r.mu.RUnlock()

	slices.SortFunc(out, func(a, b Status) int { return strings.Compare(a.JobID, b.JobID) })
	return out
}

// Remove forgets a job
func (r *TaskRegistry) Remove(jobID string) {
	r.mu.Lock()
	delete(r.jobs, jobID)
	r.mu.Unlock()
}

// Subscribe registers l and returns a function that unregisters it
func (r *TaskRegistry) Subscribe(l Listener) (unsubscribe func()) {
	r.mu.Lock()
	id := r.nextID
	r.nextID++
	r.listeners[id] = l
	r.mu.Unlock()

	return func() {
		r.mu.Lock()
		delete(r.listeners, id)
		r.mu.Unlock()
	}
}
