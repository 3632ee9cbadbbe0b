// Package execution implements the pull based relational operators.
package execution

import (
	"go-heapdb/pkg/catalog"
	"go-heapdb/pkg/customerrors"
	"go-heapdb/pkg/pages"
	"go-heapdb/pkg/transaction"
	"go-heapdb/pkg/tuple"

	"github.com/pkg/errors"
)

// Context is what operators need from the running engine.
type Context struct {
	Tid     transaction.ID
	Catalog *catalog.Catalog
	Pages   pages.Fetcher
}

// operator caches one tuple of lookahead on top of fetchNext, which returns
// nil once the operator has nothing more to produce. An error from fetchNext
// is kept and returned by every later call until Open, Rewind or Close.
type operator struct {
	fetchNext func() (*tuple.Tuple, error)
	name      string
	opened    bool
	next      *tuple.Tuple
	err       error
}

func (o *operator) HasNext() (bool, error) {
	if !o.opened {
		return false, errors.Wrap(customerrors.ErrNotOpen, o.name)
	}
	if o.err != nil {
		return false, o.err
	}
	if o.next == nil {
		t, err := o.fetchNext()
		if err != nil {
			o.err = err
			return false, err
		}
		o.next = t
	}
	return o.next != nil, nil
}

func (o *operator) Next() (*tuple.Tuple, error) {
	ok, err := o.HasNext()
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, customerrors.ErrNoSuchElement
	}

	t := o.next
	o.next = nil
	return t, nil
}

func (o *operator) markOpened() {
	o.opened = true
	o.next = nil
	o.err = nil
}

func (o *operator) markClosed() {
	o.opened = false
	o.next = nil
	o.err = nil
}

// dropLookahead forgets the cached tuple and error, used on rewind.
func (o *operator) dropLookahead() {
	o.next = nil
	o.err = nil
}
