// Package pages holds the on-disk page formats and the contracts that let
// files and operators fetch pages without knowing who caches them.
package pages

import (
	"encoding"
	"encoding/binary"

	"go-heapdb/pkg/primitives"
	"go-heapdb/pkg/transaction"
	"go-heapdb/pkg/tuple"
)

var bin = binary.BigEndian

type Permission uint8

const (
	READ_ONLY Permission = iota
	READ_WRITE
)

func (p Permission) String() string {
	switch p {
		case READ_ONLY:  return "READ_ONLY"
		case READ_WRITE: return "READ_WRITE"
	}
	return "UNKNOWN"
}

// Page is a fixed size block of a database file.
type Page interface {
	encoding.BinaryMarshaler

	ID() primitives.PageID
	NumTuples() int
	// Iterator yields the tuples stored on the page in slot order.
	Iterator() TupleIterator
}

type TupleIterator interface {
	HasNext() bool
	Next() (*tuple.Tuple, error)
}

// Fetcher hands out pages on behalf of a transaction. Errors it returns,
// including transaction aborts, are passed to callers unchanged.
type Fetcher interface {
	FetchPage(tid transaction.ID, pid primitives.PageID, perm Permission) (Page, error)
	PageSize() int
}
