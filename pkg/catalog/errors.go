package catalog

import "fmt"

// Error reports a failed catalog operation on a named graph
type Error struct {
	Op    string
	Name  string
	Cause error
}

func (e *Error) Error() string {
	return fmt.Sprintf("catalog %s %q: %v", e.Op, e.Name, e.Cause)
}

func (e *Error) Unwrap() error { return e.Cause }
