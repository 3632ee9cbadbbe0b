package tuple

import (
	"strings"

	"go-heapdb/pkg/customerrors"
	"go-heapdb/pkg/primitives"
	"go-heapdb/pkg/schema"
	"go-heapdb/pkg/types"

	"github.com/pkg/errors"
)

// Tuple is one record laid out according to its schema.
type Tuple struct {
	desc   *schema.TupleDesc
	fields []types.Field
	rid    *primitives.RecordID
}

func New(desc *schema.TupleDesc) *Tuple {
	return &Tuple{
		desc:   desc,
		fields: make([]types.Field, desc.NumFields()),
	}
}

// FromFields builds a tuple and type checks every field against desc.
func FromFields(desc *schema.TupleDesc, fields ...types.Field) (*Tuple, error) {
	if len(fields) != desc.NumFields() {
		return nil, errors.Wrapf(customerrors.ErrInvalidArgument,
			"got %d fields for schema of %d", len(fields), desc.NumFields())
	}

	t := New(desc)
	for i, f := range fields {
		if err := t.SetField(i, f); err != nil {
			return nil, err
		}
	}
	return t, nil
}

func (t *Tuple) Schema() *schema.TupleDesc {
	return t.desc
}

func (t *Tuple) Field(i int) (types.Field, error) {
	if i < 0 || i >= len(t.fields) {
		return nil, errors.Wrapf(customerrors.ErrNotFound,
			"field index %d out of range [0, %d)", i, len(t.fields))
	}
	return t.fields[i], nil
}

func (t *Tuple) SetField(i int, f types.Field) error {
	typ, err := t.desc.FieldType(i)
	if err != nil {
		return err
	}
	if f != nil && f.Type() != typ {
		return errors.Wrapf(customerrors.ErrInvalidArgument,
			"field %d expects %v, got %v", i, typ, f.Type())
	}
	t.fields[i] = f
	return nil
}

func (t *Tuple) Fields() []types.Field {
	return append([]types.Field(nil), t.fields...)
}

// RecordID returns where the tuple is stored, or nil for tuples that were
// not read from a page.
func (t *Tuple) RecordID() *primitives.RecordID {
	return t.rid
}

func (t *Tuple) SetRecordID(rid *primitives.RecordID) {
	t.rid = rid
}

// Copy returns a tuple sharing the schema and field values of t. Fields are
// immutable, so only the field slice is duplicated.
func (t *Tuple) Copy() *Tuple {
	return &Tuple{
		desc:   t.desc,
		fields: append([]types.Field(nil), t.fields...),
		rid:    t.rid,
	}
}

// Equal compares the field values of both tuples.
func (t *Tuple) Equal(o *Tuple) bool {
	if o == nil || len(t.fields) != len(o.fields) {
		return false
	}
	for i := range t.fields {
		a, b := t.fields[i], o.fields[i]
		if a == nil || b == nil {
			if a != b {
				return false
			}
			continue
		}
		if !a.Compare(types.Equal, b) {
			return false
		}
	}
	return true
}

// String renders the fields tab separated.
func (t *Tuple) String() string {
	parts := make([]string, len(t.fields))
	for i, f := range t.fields {
		if f == nil {
			parts[i] = "null"
		} else {
			parts[i] = f.String()
		}
	}
	return strings.Join(parts, "\t")
}

// MarshalBinary encodes the tuple in schema order, t.Schema().Size() bytes.
// Unset fields are written as zero bytes.
func (t *Tuple) MarshalBinary() ([]byte, error) {
	buf := make([]byte, t.desc.Size())
	offset := 0

	for i, f := range t.fields {
		typ, _ := t.desc.FieldType(i)
		if f != nil {
			b, err := f.MarshalBinary()
			if err != nil {
				return nil, errors.Wrapf(err, "failed to marshal field %d", i)
			}
			copy(buf[offset:offset+typ.Len()], b)
		}
		offset += typ.Len()
	}

	return buf, nil
}

// Parse decodes a tuple of schema desc from the first desc.Size() bytes of data.
func Parse(desc *schema.TupleDesc, data []byte) (*Tuple, error) {
	if len(data) < desc.Size() {
		return nil, errors.Wrapf(customerrors.ErrInvalidArgument,
			"tuple needs %d bytes, got %d", desc.Size(), len(data))
	}

	t := New(desc)
	offset := 0
	for i := range t.fields {
		typ, _ := desc.FieldType(i)
		f, err := typ.Parse(data[offset:])
		if err != nil {
			return nil, errors.Wrapf(err, "failed to parse field %d", i)
		}
		t.fields[i] = f
		offset += typ.Len()
	}
	return t, nil
}

// Concat returns a tuple of schema desc holding the fields of a followed by
// the fields of b.
func Concat(desc *schema.TupleDesc, a, b *Tuple) *Tuple {
	fields := make([]types.Field, 0, len(a.fields)+len(b.fields))
	fields = append(fields, a.fields...)
	fields = append(fields, b.fields...)
	return &Tuple{
		desc:   desc,
		fields: fields,
	}
}
