// Package progress reports how far a computation has come. A computation
// opens nested subtasks with a volume, logs increments from any worker and
// closes the subtask when done.
package progress

// UnknownVolume marks a subtask whose total work is not known up front.
// Percentages are not reported for such tasks.
const UnknownVolume = -1

// Tracker is the narrow progress contract computations depend on.
// BeginSubTask/EndSubTask belong to the goroutine driving the computation;
// LogProgress may be called from any worker.
type Tracker interface {
	BeginSubTask(name string, volume int)
	LogProgress(n int)
	SetVolume(volume int)
	EndSubTask()
	EndSubTaskWithFailure(err error)
}

// NopTracker ignores all calls.
type NopTracker struct{}

func (NopTracker) BeginSubTask(string, int)    {}
func (NopTracker) LogProgress(int)             {}
func (NopTracker) SetVolume(int)               {}
func (NopTracker) EndSubTask()                 {}
func (NopTracker) EndSubTaskWithFailure(error) {}
