package heapfile

import (
	"go-heapdb/pkg/customerrors"
	"go-heapdb/pkg/pages"
	"go-heapdb/pkg/primitives"
	"go-heapdb/pkg/transaction"
	"go-heapdb/pkg/tuple"

	"github.com/pkg/errors"
)

type iterState uint8

const (
	stateNotStarted iterState = iota
	stateOnPage
	stateExhausted
	stateFailed
	stateClosed
)

// fileIterator walks pages 0..NumPages()-1 in order. While onPage it holds
// the tuple iterator of page pageNo. Pages without tuples are skipped, so
// the move to exhausted happens as soon as the last tuple is consumed.
// A failed page fetch is terminal: every later HasNext and Next returns the
// same error until the iterator is reopened.
type fileIterator struct {
	file    *HeapFile
	tid     transaction.ID
	fetcher pages.Fetcher

	state    iterState
	pageNo   int
	pageIter pages.TupleIterator
	err      error
}

func (it *fileIterator) Open() error {
	it.pageNo = -1
	it.pageIter = nil
	it.err = nil
	if err := it.advance(); err != nil {
		it.state = stateNotStarted
		return err
	}
	return nil
}

// advance moves to the next page holding at least one tuple. pageNo only
// moves past pages that were fetched. Fetch errors are returned as is so
// transaction aborts reach the caller untouched.
func (it *fileIterator) advance() error {
	numPages, err := it.file.NumPages()
	if err != nil {
		return err
	}

	for next := it.pageNo + 1; next < numPages; next++ {
		pid := primitives.PageID{TableID: it.file.ID(), PageNo: next}
		page, err := it.fetcher.FetchPage(it.tid, pid, pages.READ_WRITE)
		if err != nil {
			return err
		}

		it.pageNo = next
		it.pageIter = page.Iterator()
		if it.pageIter.HasNext() {
			it.state = stateOnPage
			return nil
		}
	}

	it.pageNo = numPages
	it.pageIter = nil
	it.state = stateExhausted
	return nil
}

func (it *fileIterator) HasNext() (bool, error) {
	switch it.state {
		case stateNotStarted, stateClosed: return false, errors.Wrap(customerrors.ErrNotOpen, "heap file iterator")
		case stateExhausted:               return false, nil
		case stateFailed:                  return false, it.err
	}

	if !it.pageIter.HasNext() {
		if err := it.advance(); err != nil {
			it.state = stateFailed
			it.err = err
			it.pageIter = nil
			return false, err
		}
	}
	return it.state == stateOnPage, nil
}

func (it *fileIterator) Next() (*tuple.Tuple, error) {
	ok, err := it.HasNext()
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, customerrors.ErrNoSuchElement
	}
	return it.pageIter.Next()
}

// Rewind is not supported. Wrap the scan in a materializing operator to
// iterate it more than once.
func (it *fileIterator) Rewind() error {
	return errors.Wrap(customerrors.ErrUnsupported, "rewind of heap file iterator")
}

// Close drops the page iterator. Pages belong to the fetcher.
func (it *fileIterator) Close() error {
	it.pageIter = nil
	it.err = nil
	it.state = stateClosed
	return nil
}
