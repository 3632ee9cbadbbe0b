// Package iterator defines the pull protocol shared by file scans and
// relational operators.
package iterator

import (
	"go-heapdb/pkg/schema"
	"go-heapdb/pkg/tuple"
)

// DbFileIterator walks the tuples of a file. HasNext and Next fail with
// customerrors.ErrNotOpen before Open or after Close, and Next fails with
// customerrors.ErrNoSuchElement once the tuples are exhausted.
type DbFileIterator interface {
	Open() error
	HasNext() (bool, error)
	Next() (*tuple.Tuple, error)
	Rewind() error
	Close() error
}

// OpIterator is a DbFileIterator that knows the schema of what it produces.
type OpIterator interface {
	DbFileIterator
	Schema() *schema.TupleDesc
}

// ForEach calls fn for every remaining tuple of an opened iterator and stops
// at the first error.
func ForEach(it DbFileIterator, fn func(t *tuple.Tuple) error) error {
	for {
		ok, err := it.HasNext()
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}

		t, err := it.Next()
		if err != nil {
			return err
		}
		if err := fn(t); err != nil {
			return err
		}
	}
}

// Collect opens it, drains it and closes it. Errors are returned as
// received.
func Collect(it DbFileIterator) ([]*tuple.Tuple, error) {
	if err := it.Open(); err != nil {
		return nil, err
	}
	defer it.Close()

	var out []*tuple.Tuple
	err := ForEach(it, func(t *tuple.Tuple) error {
		out = append(out, t)
		return nil
	})
	return out, err
}

func Count(it DbFileIterator) (int, error) {
	n := 0
	if err := it.Open(); err != nil {
		return 0, err
	}
	defer it.Close()

	err := ForEach(it, func(*tuple.Tuple) error {
		n++
		return nil
	})
	return n, err
}
