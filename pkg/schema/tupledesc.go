// Package schema implements TupleDesc, the ordered list of fixed-width
// field descriptors that defines the layout of a tuple.
package schema

import (
	"strings"

	"go-heapdb/pkg/column"
	"go-heapdb/pkg/customerrors"
	"go-heapdb/pkg/types"

	"github.com/pkg/errors"
)

// TupleDesc is immutable once constructed. It always has at least one field.
type TupleDesc struct {
	columns []column.Column
	size    int
}

// New builds a TupleDesc from field types and optional names. names may be
// nil for an all-unnamed schema, otherwise it must match typs in length.
func New(typs []types.Type, names []string) (*TupleDesc, error) {
	if names != nil && len(names) != len(typs) {
		return nil, errors.Wrapf(customerrors.ErrInvalidArgument,
			"got %d names for %d types", len(names), len(typs))
	}

	cols := make([]column.Column, len(typs))
	for i, typ := range typs {
		cols[i].Typ = typ
		if names != nil {
			cols[i].Name = names[i]
		}
	}
	return FromColumns(cols)
}

// FromColumns copies cols into a new TupleDesc.
func FromColumns(cols []column.Column) (*TupleDesc, error) {
	if len(cols) == 0 {
		return nil, errors.Wrap(customerrors.ErrInvalidArgument, "schema needs at least one field")
	}

	td := &TupleDesc{columns: make([]column.Column, len(cols))}
	for i, c := range cols {
		if !c.Typ.Valid() {
			return nil, errors.Wrapf(customerrors.ErrInvalidArgument, "field %d has invalid type", i)
		}
		td.columns[i] = c
		td.size += c.Typ.Len()
	}
	return td, nil
}

// MustNew is New that panics on error, for static schemas.
func MustNew(typs []types.Type, names []string) *TupleDesc {
	td, err := New(typs, names)
	if err != nil {
		panic(err)
	}
	return td
}

func (td *TupleDesc) NumFields() int {
	return len(td.columns)
}

func (td *TupleDesc) FieldName(i int) (string, error) {
	c, err := td.column(i)
	if err != nil {
		return "", err
	}
	return c.Name, nil
}

func (td *TupleDesc) FieldType(i int) (types.Type, error) {
	c, err := td.column(i)
	if err != nil {
		return 0, err
	}
	return c.Typ, nil
}

// IndexOf returns the ordinal of the first field named name. Unnamed fields
// never match.
func (td *TupleDesc) IndexOf(name string) (int, error) {
	if name != "" {
		for i, c := range td.columns {
			if c.Name == name {
				return i, nil
			}
		}
	}
	return -1, errors.Wrapf(customerrors.ErrNotFound, "field '%s'", name)
}

// Size returns the byte size of a tuple with this schema.
func (td *TupleDesc) Size() int {
	return td.size
}

// Columns returns a copy of the field descriptors.
func (td *TupleDesc) Columns() []column.Column {
	return append([]column.Column(nil), td.columns...)
}

// Equal reports whether both schemas have the same field types in the same
// order. Field names are ignored.
func (td *TupleDesc) Equal(o *TupleDesc) bool {
	if o == nil || len(td.columns) != len(o.columns) {
		return false
	}
	for i := range td.columns {
		if td.columns[i].Typ != o.columns[i].Typ {
			return false
		}
	}
	return true
}

func (td *TupleDesc) String() string {
	parts := make([]string, len(td.columns))
	for i, c := range td.columns {
		parts[i] = c.String()
	}
	return strings.Join(parts, ", ")
}

// Concat returns a new schema with the fields of a followed by those of b.
func Concat(a, b *TupleDesc) *TupleDesc {
	cols := make([]column.Column, 0, len(a.columns)+len(b.columns))
	cols = append(cols, a.columns...)
	cols = append(cols, b.columns...)
	return &TupleDesc{
		columns: cols,
		size:    a.size + b.size,
	}
}

func (td *TupleDesc) column(i int) (column.Column, error) {
	if i < 0 || i >= len(td.columns) {
		return column.Column{}, errors.Wrapf(customerrors.ErrNotFound,
			"field index %d out of range [0, %d)", i, len(td.columns))
	}
	return td.columns[i], nil
}
