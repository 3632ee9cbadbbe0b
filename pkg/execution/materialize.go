package execution

import (
	"go-heapdb/pkg/customerrors"
	"go-heapdb/pkg/iterator"
	"go-heapdb/pkg/schema"
	"go-heapdb/pkg/tuple"

	"github.com/pkg/errors"
)

// TupleList serves a fixed slice of tuples and can be rewound.
type TupleList struct {
	operator

	desc   *schema.TupleDesc
	tuples []*tuple.Tuple
	pos    int
}

func NewTupleList(desc *schema.TupleDesc, tuples []*tuple.Tuple) *TupleList {
	l := &TupleList{desc: desc, tuples: tuples}
	l.operator = operator{fetchNext: l.fetchNext, name: "tuple list"}
	return l
}

func (l *TupleList) Schema() *schema.TupleDesc {
	return l.desc
}

func (l *TupleList) Open() error {
	l.pos = 0
	l.markOpened()
	return nil
}

func (l *TupleList) fetchNext() (*tuple.Tuple, error) {
	if l.pos >= len(l.tuples) {
		return nil, nil
	}
	t := l.tuples[l.pos]
	l.pos++
	return t, nil
}

func (l *TupleList) Rewind() error {
	if !l.opened {
		return errors.Wrap(customerrors.ErrNotOpen, l.name)
	}
	l.pos = 0
	l.dropLookahead()
	return nil
}

func (l *TupleList) Close() error {
	l.markClosed()
	return nil
}

// Materialize drains its child on Open and serves the buffered tuples, so
// it can be rewound even when the child cannot.
type Materialize struct {
	*TupleList
	child iterator.OpIterator
}

func NewMaterialize(child iterator.OpIterator) *Materialize {
	m := &Materialize{
		TupleList: NewTupleList(child.Schema(), nil),
		child:     child,
	}
	m.name = "materialize"
	return m
}

func (m *Materialize) Open() error {
	tuples, err := iterator.Collect(m.child)
	if err != nil {
		return err
	}
	m.tuples = tuples
	return m.TupleList.Open()
}

func (m *Materialize) Close() error {
	m.tuples = nil
	return m.TupleList.Close()
}
