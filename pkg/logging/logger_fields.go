package logging

import "time"

// String creates a string field
func String(key, value string) Field { return Field{Key: key, Value: value} }

// Int creates an int field
func Int(key string, value int) Field { return Field{Key: key, Value: value} }

// Int64 creates an int64 field
func Int64(key string, value int64) Field { return Field{Key: key, Value: value} }

// Uint64 creates a uint64 field
func Uint64(key string, value uint64) Field { return Field{Key: key, Value: value} }

// Float64 creates a float64 field
func Float64(key string, value float64) Field { return Field{Key: key, Value: value} }

// Bool creates a bool field
func Bool(key string, value bool) Field { return Field{Key: key, Value: value} }

// Duration creates a duration field rendered as a string
func Duration(key string, value time.Duration) Field {
	return Field{Key: key, Value: value.String()}
}

// Error creates an error field; a nil error yields a nil value
func Error(err error) Field {
	if err == nil {
		return Field{Key: "error", Value: nil}
	}
	return Field{Key: "error", Value: err.Error()}
}

// Any creates a field with an arbitrary value
func Any(key string, value any) Field { return Field{Key: key, Value: value} }

// Latency creates a latency field in milliseconds
func Latency(d time.Duration) Field {
	return Field{Key: "latency_ms", Value: float64(d.Microseconds()) / 1000.0}
}

// Component tags entries with the emitting package
func Component(name string) Field { return String("component", name) }

// Algorithm tags entries with the algorithm name
func Algorithm(name string) Field { return String("algorithm", name) }

// Mode tags entries with the execution mode (stream, stats, mutate, write)
func Mode(mode string) Field { return String("mode", mode) }

// GraphName tags entries with the catalog graph name
func GraphName(name string) Field { return String("graph", name) }

// NodeCount creates a node count field
func NodeCount(n int) Field { return Int("node_count", n) }

// RelationshipCount creates a relationship count field
func RelationshipCount(n int) Field { return Int("relationship_count", n) }

// Concurrency creates a worker count field
func Concurrency(n int) Field { return Int("concurrency", n) }

// JobID creates a job id field
func JobID(id string) Field { return String("job_id", id) }

// Task creates a progress task name field
func Task(name string) Field { return String("task", name) }

// Percent creates a progress percentage field
func Percent(p float64) Field { return Float64("percent", p) }

// Iterations creates an iteration count field
func Iterations(n int) Field { return Int("iterations", n) }
