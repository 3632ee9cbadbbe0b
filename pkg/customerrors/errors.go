// Package customerrors defines the error kinds shared by the storage and
// execution layers. Callers match them with errors.Is; every layer wraps
// them with context but never replaces one kind with another.
package customerrors

import (
	"errors"
)

var (
	// ErrNotFound is returned by lookups of a field ordinal, field name,
	// table id or table name that does not exist.
	ErrNotFound = errors.New("not found")

	// ErrUnsupported is returned by operations that are declared but not
	// implemented, e.g. page mutation or rewinding a heap file iterator.
	ErrUnsupported = errors.New("operation not supported")

	// ErrShortRead means the backing store is shorter than a requested page.
	// It indicates corruption or a caller error and is never retried.
	ErrShortRead = errors.New("short read")

	// ErrNotOpen is returned when an iterator or operator is used outside of
	// its open lifecycle, or reconfigured while open.
	ErrNotOpen = errors.New("iterator not open")

	// ErrNoSuchElement is returned by Next once a stream is exhausted.
	ErrNoSuchElement = errors.New("no more tuples")

	// ErrTransactionAborted is raised by the page cache when the running
	// transaction must abort. It passes through every layer unchanged.
	ErrTransactionAborted = errors.New("transaction aborted")

	ErrInvalidArgument = errors.New("invalid argument")
)
