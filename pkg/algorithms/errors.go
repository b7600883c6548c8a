package algorithms

import (
	"context"
	"errors"
	"fmt"

	"github.com/dd0wney/cluso-gds/pkg/concurrency"
	"github.com/dd0wney/cluso-gds/pkg/graph"
	"github.com/dd0wney/cluso-gds/pkg/graphstore"
	"github.com/dd0wney/cluso-gds/pkg/validation"
)

// Sentinel errors shared by algorithm packages
var (
	ErrInvalidConfig  = errors.New("invalid configuration")
	ErrNotDAG         = errors.New("graph contains a cycle")
	ErrNegativeWeight = errors.New("negative relationship weight")
	ErrCancelled      = errors.New("algorithm cancelled")
)

// Kind classifies an algorithm error for dispatch.
type Kind int

const (
	// KindExecution is any failure during computation that is not one of
	// the other kinds
	KindExecution Kind = iota
	// KindConfig is an invalid configuration, detected before traversal
	KindConfig
	// KindGraph is a graph-shape problem: missing type or property,
	// unknown node, unsupported structure
	KindGraph
	// KindCancelled is a tripped termination flag
	KindCancelled
)

func (k Kind) String() string {
	switch k {
	case KindConfig:
		return "config"
	case KindGraph:
		return "graph"
	case KindCancelled:
		return "cancelled"
	default:
		return "execution"
	}
}

// Error is the single error type algorithm runs surface.
type Error struct {
	Algorithm string
	Kind      Kind
	Field     string // offending config field or property, if any
	Context   string
	Cause     error
}

// Error implements the error interface.
func (e *Error) Error() string {
	subject := e.Algorithm
	if e.Field != "" {
		subject = fmt.Sprintf("%s %q", subject, e.Field)
	}
	if e.Context != "" {
		return fmt.Sprintf("%s: %s error (%s): %v", subject, e.Kind, e.Context, e.Cause)
	}
	return fmt.Sprintf("%s: %s error: %v", subject, e.Kind, e.Cause)
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error { return e.Cause }

// Is matches ErrInvalidConfig and ErrCancelled by kind, so callers need not
// know which concrete cause produced the error.
func (e *Error) Is(target error) bool {
	switch target {
	case ErrInvalidConfig:
		return e.Kind == KindConfig
	case ErrCancelled:
		return e.Kind == KindCancelled
	}
	return false
}

// ErrorBuilder provides a fluent interface for building Errors.
type ErrorBuilder struct {
	err Error
}

// NewError starts an execution error for algorithm.
func NewError(algorithm string) *ErrorBuilder {
	return &ErrorBuilder{err: Error{Algorithm: algorithm, Kind: KindExecution}}
}

// Kind sets the error kind.
func (b *ErrorBuilder) Kind(k Kind) *ErrorBuilder {
	b.err.Kind = k
	return b
}

// Field names the offending config field or property.
func (b *ErrorBuilder) Field(name string) *ErrorBuilder {
	b.err.Field = name
	return b
}

// Context adds free-form context.
func (b *ErrorBuilder) Context(format string, args ...any) *ErrorBuilder {
	b.err.Context = fmt.Sprintf(format, args...)
	return b
}

// Cause sets the underlying error.
func (b *ErrorBuilder) Cause(err error) *ErrorBuilder {
	b.err.Cause = err
	return b
}

// Err returns the built error.
func (b *ErrorBuilder) Err() error {
	e := b.err
	if e.Cause == nil {
		e.Cause = errors.New(e.Kind.String() + " failure")
	}
	return &e
}

// ConfigError reports an invalid config field.
func ConfigError(algorithm, field, format string, args ...any) error {
	return NewError(algorithm).Kind(KindConfig).Field(field).
		Cause(fmt.Errorf("%w: %s", ErrInvalidConfig, fmt.Sprintf(format, args...))).Err()
}

// KindOf classifies any error. Errors that are not *Error are classified by
// the sentinels they wrap.
func KindOf(err error) Kind {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Kind
	}
	var fe *validation.FieldError
	switch {
	case errors.Is(err, concurrency.ErrTerminated),
		errors.Is(err, context.Canceled),
		errors.Is(err, context.DeadlineExceeded):
		return KindCancelled
	case errors.Is(err, ErrInvalidConfig),
		errors.Is(err, concurrency.ErrInvalidConcurrency),
		errors.As(err, &fe):
		return KindConfig
	case errors.Is(err, graphstore.ErrGraphProjectionFailed),
		errors.Is(err, graphstore.ErrPropertyNotFound),
		errors.Is(err, graphstore.ErrNodeNotFound),
		errors.Is(err, graph.ErrNodeOutOfRange),
		errors.Is(err, ErrNotDAG),
		errors.Is(err, ErrNegativeWeight):
		return KindGraph
	default:
		return KindExecution
	}
}

// Wrap turns err into an *Error for algorithm, keeping an existing *Error
// as is. A nil err stays nil.
func Wrap(algorithm string, err error) error {
	if err == nil {
		return nil
	}
	var ae *Error
	if errors.As(err, &ae) {
		return err
	}
	b := NewError(algorithm).Kind(KindOf(err)).Cause(err)
	var fe *validation.FieldError
	if errors.As(err, &fe) {
		b.Field(fe.Field)
	}
	return b.Err()
}

// IsCancelled reports whether err is a cancellation outcome
func IsCancelled(err error) bool { return err != nil && KindOf(err) == KindCancelled }
