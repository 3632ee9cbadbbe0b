package types

import (
	"go-heapdb/pkg/customerrors"

	"github.com/pkg/errors"
)

// StringLen is the capacity in bytes of a TYPE_STRING value. On disk the
// value is preceded by a 4 byte length and zero padded to capacity.
const StringLen = 128

func init() {
	typesMap[TYPE_STRING] = newable{
		name: "string",
		size: 4 + StringLen,
		parse: func(data []byte) (Field, error) {
			n := bin.Uint32(data[:4])
			if n > StringLen {
				return nil, errors.Wrapf(customerrors.ErrInvalidArgument,
					"string length %d exceeds capacity %d", n, StringLen)
			}
			return NewString(string(data[4 : 4+n])), nil
		},
		parseText: func(s string) (Field, error) {
			return NewString(s), nil
		},
	}
}

type StringField struct {
	value string
}

// NewString truncates s to StringLen bytes.
func NewString(s string) *StringField {
	if len(s) > StringLen {
		s = s[:StringLen]
	}
	return &StringField{value: s}
}

func (f *StringField) MarshalBinary() ([]byte, error) {
	data := make([]byte, 4+StringLen)
	bin.PutUint32(data[:4], uint32(len(f.value)))
	copy(data[4:], f.value)
	return data, nil
}

func (f *StringField) Type() Type {
	return TYPE_STRING
}

func (f *StringField) Value() interface{} {
	return f.value
}

func (f *StringField) Compare(operator Operator, val Field) bool {
	v, ok := val.(*StringField)
	if !ok {
		return false
	}
	return compare(operator, f.value, v.value)
}

func (f *StringField) String() string {
	return f.value
}
