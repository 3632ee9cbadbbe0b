package types

import (
	"encoding"
	"encoding/binary"
	"fmt"
	"strings"

	"go-heapdb/pkg/customerrors"

	"github.com/pkg/errors"
	"golang.org/x/exp/constraints"
)

// bin is the byte order used for all marshals/unmarshals.
var bin = binary.BigEndian

type Type uint8

const (
	TYPE_INT    Type = iota + 1 // 4 byte signed integer
	TYPE_STRING                 // fixed capacity string with length prefix
)

type Operator string

const (
	Equal          Operator = "="
	GreaterOrEqual Operator = ">="
	LessOrEqual    Operator = "<="
	Greater        Operator = ">"
	Less           Operator = "<"
	NotEqual       Operator = "!="
)

type newable struct {
	name      string
	size      int
	parse     func(data []byte) (Field, error)
	parseText func(s string) (Field, error)
}

var typesMap = map[Type]newable{}

// Field is a single fixed-width value of a tuple.
type Field interface {
	encoding.BinaryMarshaler

	Type() Type
	Value() interface{}
	// Compare reports whether `f op val` holds. Fields of different types
	// never compare true.
	Compare(op Operator, val Field) bool
	String() string
}

func ParseType(name string) (Type, error) {
	for code, n := range typesMap {
		if strings.EqualFold(n.name, name) {
			return code, nil
		}
	}
	return 0, errors.Wrapf(customerrors.ErrNotFound, "unknown type '%s'", name)
}

func (t Type) Valid() bool {
	_, ok := typesMap[t]
	return ok
}

// Len returns the number of bytes a value of this type occupies on disk.
func (t Type) Len() int {
	return typesMap[t].size
}

func (t Type) String() string {
	if n, ok := typesMap[t]; ok {
		return n.name
	}
	return fmt.Sprintf("type(%d)", uint8(t))
}

// Parse decodes a value from the first t.Len() bytes of data.
func (t Type) Parse(data []byte) (Field, error) {
	n, ok := typesMap[t]
	if !ok {
		return nil, errors.Wrapf(customerrors.ErrInvalidArgument, "invalid type %v", uint8(t))
	}
	if len(data) < n.size {
		return nil, errors.Wrapf(customerrors.ErrInvalidArgument,
			"%s needs %d bytes, got %d", n.name, n.size, len(data))
	}
	return n.parse(data[:n.size])
}

// ParseText decodes a value from its textual form.
func (t Type) ParseText(s string) (Field, error) {
	n, ok := typesMap[t]
	if !ok {
		return nil, errors.Wrapf(customerrors.ErrInvalidArgument, "invalid type %v", uint8(t))
	}
	return n.parseText(s)
}

func (t Type) MarshalText() ([]byte, error) {
	if !t.Valid() {
		return nil, errors.Wrapf(customerrors.ErrInvalidArgument, "invalid type %v", uint8(t))
	}
	return []byte(t.String()), nil
}

func (t *Type) UnmarshalText(text []byte) error {
	code, err := ParseType(string(text))
	if err != nil {
		return err
	}
	*t = code
	return nil
}

func compare[T constraints.Ordered](operator Operator, a, b T) bool {
	switch operator {
		case Equal:          return a == b
		case GreaterOrEqual: return a >= b
		case LessOrEqual:    return a <= b
		case Greater:        return a > b
		case Less:           return a < b
		case NotEqual:       return a != b
	}
	panic(fmt.Errorf("invalid operator:'%s'", operator))
}
