package types

import (
	"testing"

	"go-heapdb/pkg/customerrors"

	"github.com/stretchr/testify/require"
)

func TestLen(t *testing.T) {
	require.Equal(t, 4, TYPE_INT.Len())
	require.Equal(t, 132, TYPE_STRING.Len())
}

func TestIntBinary(t *testing.T) {
	b, err := NewInt(-42).MarshalBinary()
	require.NoError(t, err)
	require.Equal(t, []byte{0xff, 0xff, 0xff, 0xd6}, b)

	f, err := TYPE_INT.Parse(b)
	require.NoError(t, err)
	require.Equal(t, int32(-42), f.Value())
}

func TestStringBinary(t *testing.T) {
	b, err := NewString("hello").MarshalBinary()
	require.NoError(t, err)
	require.Len(t, b, TYPE_STRING.Len())

	f, err := TYPE_STRING.Parse(b)
	require.NoError(t, err)
	require.Equal(t, "hello", f.String())

	b[3] = 0xff
	_, err = TYPE_STRING.Parse(b)
	require.ErrorIs(t, err, customerrors.ErrInvalidArgument)
}

func TestParseShort(t *testing.T) {
	_, err := TYPE_INT.Parse([]byte{1, 2})
	require.ErrorIs(t, err, customerrors.ErrInvalidArgument)
}

func TestCompare(t *testing.T) {
	require.True(t, NewInt(1).Compare(Equal, NewInt(1)))
	require.True(t, NewInt(1).Compare(Less, NewInt(2)))
	require.True(t, NewInt(3).Compare(GreaterOrEqual, NewInt(3)))
	require.False(t, NewInt(3).Compare(NotEqual, NewInt(3)))
	require.True(t, NewString("a").Compare(Less, NewString("b")))
	require.False(t, NewInt(1).Compare(Equal, NewString("1")))
}

func TestTypeText(t *testing.T) {
	var typ Type
	require.NoError(t, typ.UnmarshalText([]byte("STRING")))
	require.Equal(t, TYPE_STRING, typ)

	require.ErrorIs(t, typ.UnmarshalText([]byte("blob")), customerrors.ErrNotFound)

	f, err := TYPE_INT.ParseText("17")
	require.NoError(t, err)
	require.Equal(t, int32(17), f.Value())

	_, err = TYPE_INT.ParseText("x")
	require.Error(t, err)
}
