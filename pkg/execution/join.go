package execution

import (
	"go-heapdb/pkg/customerrors"
	"go-heapdb/pkg/iterator"
	"go-heapdb/pkg/schema"
	"go-heapdb/pkg/tuple"

	"github.com/pkg/errors"
)

type joinState uint8

const (
	joinUnopened joinState = iota
	joinOpened
	joinClosed
)

// Join is a nested loop join. For every outer (left) tuple the inner
// (right) child is scanned from the start, so the inner child must support
// Rewind. Wrap a table scan in Materialize to use it as the inner side.
type Join struct {
	operator

	pred  JoinPredicate
	left  iterator.OpIterator
	right iterator.OpIterator
	desc  *schema.TupleDesc

	state joinState
	outer *tuple.Tuple
}

func NewJoin(pred JoinPredicate, left, right iterator.OpIterator) *Join {
	j := &Join{
		pred:  pred,
		left:  left,
		right: right,
		desc:  schema.Concat(left.Schema(), right.Schema()),
	}
	j.operator = operator{fetchNext: j.fetchNext, name: "join"}
	return j
}

func (j *Join) Predicate() JoinPredicate {
	return j.pred
}

// JoinField1Name names the outer field of a FieldPredicate.
func (j *Join) JoinField1Name() (string, error) {
	p, ok := j.pred.(FieldPredicate)
	if !ok {
		return "", errors.Wrap(customerrors.ErrUnsupported, "predicate does not name fields")
	}
	return j.left.Schema().FieldName(p.Field1)
}

// JoinField2Name names the inner field of a FieldPredicate.
func (j *Join) JoinField2Name() (string, error) {
	p, ok := j.pred.(FieldPredicate)
	if !ok {
		return "", errors.Wrap(customerrors.ErrUnsupported, "predicate does not name fields")
	}
	return j.right.Schema().FieldName(p.Field2)
}

func (j *Join) Schema() *schema.TupleDesc {
	return j.desc
}

// Open opens the outer child, loads the first outer tuple and opens the
// inner child. On failure every child opened so far is closed again.
func (j *Join) Open() error {
	if err := j.left.Open(); err != nil {
		return err
	}
	if err := j.readOuter(); err != nil {
		j.outer = nil
		j.left.Close()
		return err
	}
	if err := j.right.Open(); err != nil {
		j.outer = nil
		j.left.Close()
		return err
	}

	j.state = joinOpened
	j.markOpened()
	return nil
}

// readOuter loads the next outer tuple, leaving the register nil once the
// outer child is exhausted.
func (j *Join) readOuter() error {
	j.outer = nil
	ok, err := j.left.HasNext()
	if err != nil || !ok {
		return err
	}
	j.outer, err = j.left.Next()
	return err
}

func (j *Join) fetchNext() (*tuple.Tuple, error) {
	for j.outer != nil {
		for {
			ok, err := j.right.HasNext()
			if err != nil {
				return nil, err
			}
			if !ok {
				break
			}

			inner, err := j.right.Next()
			if err != nil {
				return nil, err
			}
			if j.pred.Filter(j.outer, inner) {
				return tuple.Concat(j.desc, j.outer, inner), nil
			}
		}

		if err := j.readOuter(); err != nil {
			return nil, err
		}
		if j.outer == nil {
			break
		}
		if err := j.right.Rewind(); err != nil {
			return nil, err
		}
	}
	return nil, nil
}

// Rewind restarts both children and reloads the outer register.
func (j *Join) Rewind() error {
	if j.state != joinOpened {
		return errors.Wrap(customerrors.ErrNotOpen, "join")
	}
	if err := j.left.Rewind(); err != nil {
		return err
	}
	if err := j.right.Rewind(); err != nil {
		return err
	}

	j.dropLookahead()
	if err := j.readOuter(); err != nil {
		j.err = err
		return err
	}
	return nil
}

func (j *Join) Close() error {
	j.state = joinClosed
	j.outer = nil
	j.markClosed()

	lerr := j.left.Close()
	rerr := j.right.Close()
	if lerr != nil {
		return lerr
	}
	return rerr
}

// Children returns the outer child followed by the inner child.
func (j *Join) Children() []iterator.OpIterator {
	return []iterator.OpIterator{j.left, j.right}
}

// SetChildren replaces the outer and inner child of a join that is not open.
func (j *Join) SetChildren(children []iterator.OpIterator) error {
	if j.state == joinOpened {
		return errors.Wrap(customerrors.ErrNotOpen, "cannot replace children of an open join")
	}
	if len(children) != 2 {
		return errors.Wrapf(customerrors.ErrInvalidArgument, "join takes 2 children, got %d", len(children))
	}

	j.left, j.right = children[0], children[1]
	j.desc = schema.Concat(j.left.Schema(), j.right.Schema())
	return nil
}
