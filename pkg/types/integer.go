package types

import (
	"strconv"

	"github.com/pkg/errors"
)

func init() {
	typesMap[TYPE_INT] = newable{
		name: "int",
		size: 4,
		parse: func(data []byte) (Field, error) {
			return NewInt(int32(bin.Uint32(data))), nil
		},
		parseText: func(s string) (Field, error) {
			v, err := strconv.ParseInt(s, 10, 32)
			if err != nil {
				return nil, errors.Wrapf(err, "invalid int '%s'", s)
			}
			return NewInt(int32(v)), nil
		},
	}
}

type IntField struct {
	value int32
}

func NewInt(v int32) *IntField {
	return &IntField{value: v}
}

func (f *IntField) MarshalBinary() ([]byte, error) {
	data := make([]byte, 4)
	bin.PutUint32(data, uint32(f.value))
	return data, nil
}

func (f *IntField) Type() Type {
	return TYPE_INT
}

func (f *IntField) Value() interface{} {
	return f.value
}

func (f *IntField) Int() int32 {
	return f.value
}

func (f *IntField) Compare(operator Operator, val Field) bool {
	v, ok := val.(*IntField)
	if !ok {
		return false
	}
	return compare(operator, f.value, v.value)
}

func (f *IntField) String() string {
	return strconv.FormatInt(int64(f.value), 10)
}
