package execution

import (
	"fmt"

	"go-heapdb/pkg/tuple"
	"go-heapdb/pkg/types"
)

// JoinPredicate decides whether a pair of tuples joins. It must not have
// side effects; Join may call it any number of times, including zero.
type JoinPredicate interface {
	Filter(outer, inner *tuple.Tuple) bool
}

type PredicateFunc func(outer, inner *tuple.Tuple) bool

func (f PredicateFunc) Filter(outer, inner *tuple.Tuple) bool {
	return f(outer, inner)
}

// FieldPredicate compares field Field1 of the outer tuple with field Field2
// of the inner tuple. Missing or null fields never match.
type FieldPredicate struct {
	Field1 int
	Op     types.Operator
	Field2 int
}

func (p FieldPredicate) Filter(outer, inner *tuple.Tuple) bool {
	a, err := outer.Field(p.Field1)
	if err != nil || a == nil {
		return false
	}
	b, err := inner.Field(p.Field2)
	if err != nil || b == nil {
		return false
	}
	return a.Compare(p.Op, b)
}

func (p FieldPredicate) String() string {
	return fmt.Sprintf("$%d %s $%d", p.Field1, p.Op, p.Field2)
}
