package graphstore

import (
	"errors"
	"fmt"
)

// Sentinel errors
var (
	ErrNodeNotFound          = errors.New("node not found")
	ErrPropertyNotFound      = errors.New("property not found")
	ErrGraphProjectionFailed = errors.New("graph projection failed")
	ErrDuplicateNode         = errors.New("duplicate node")
	ErrTypeMismatch          = errors.New("property type mismatch")
	ErrRelationshipExists    = errors.New("relationship type already exists")
	ErrPropertyExists        = errors.New("property already exists")
)

// StoreError provides structured error information for store operations.
type StoreError struct {
	Op      string // e.g. "project", "load", "mutate"
	Entity  string // "node", "property", "relationship"
	ID      uint64 // original node id, if any
	HasID   bool
	Field   string // property key or relationship type
	Cause   error
	Context string
}

// Error implements the error interface.
func (e *StoreError) Error() string {
	subject := e.Entity
	if e.HasID {
		subject = fmt.Sprintf("%s %d", subject, e.ID)
	}
	if e.Field != "" {
		subject = fmt.Sprintf("%s %q", subject, e.Field)
	}
	if e.Context != "" {
		return fmt.Sprintf("%s %s (%s): %v", e.Op, subject, e.Context, e.Cause)
	}
	return fmt.Sprintf("%s %s: %v", e.Op, subject, e.Cause)
}

// Unwrap returns the underlying cause.
func (e *StoreError) Unwrap() error { return e.Cause }

// ErrorBuilder provides a fluent interface for building StoreErrors.
type ErrorBuilder struct {
	err StoreError
}

// NewError starts an error for the given operation.
func NewError(op string) *ErrorBuilder {
	return &ErrorBuilder{err: StoreError{Op: op}}
}

// Node sets the entity to a node with the given original id.
func (b *ErrorBuilder) Node(id uint64) *ErrorBuilder {
	b.err.Entity = "node"
	b.err.ID = id
	b.err.HasID = true
	return b
}

// Property sets the entity to a property key.
func (b *ErrorBuilder) Property(key string) *ErrorBuilder {
	b.err.Entity = "property"
	b.err.Field = key
	return b
}

// Relationship sets the entity to a relationship type.
func (b *ErrorBuilder) Relationship(relType string) *ErrorBuilder {
	b.err.Entity = "relationship type"
	b.err.Field = relType
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
	return &e
}

// NodeNotFoundError reports an unknown original node id.
func NodeNotFoundError(op string, id uint64) error {
	return NewError(op).Node(id).Cause(ErrNodeNotFound).Err()
}

// PropertyNotFoundError reports a missing property key.
func PropertyNotFoundError(op, key string) error {
	return NewError(op).Property(key).Cause(ErrPropertyNotFound).Err()
}

// IsNotFound reports whether err is a missing node or property.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNodeNotFound) || errors.Is(err, ErrPropertyNotFound)
}
