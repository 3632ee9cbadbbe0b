package column

import (
	"encoding/json"
	"testing"

	"go-heapdb/pkg/types"

	"github.com/stretchr/testify/require"
)

func TestEqual(t *testing.T) {
	require.True(t, New(types.TYPE_INT, "id").Equal(New(types.TYPE_INT, "id")))
	require.False(t, New(types.TYPE_INT, "id").Equal(New(types.TYPE_STRING, "id")))
	require.False(t, New(types.TYPE_INT, "id").Equal(New(types.TYPE_INT, "")))
	require.True(t, New(types.TYPE_INT, "").Equal(New(types.TYPE_INT, "")))
}

func TestJSON(t *testing.T) {
	var c Column
	require.NoError(t, json.Unmarshal([]byte(`{"name":"title","type":"string"}`), &c))
	require.Equal(t, New(types.TYPE_STRING, "title"), c)

	b, err := json.Marshal(New(types.TYPE_INT, "id"))
	require.NoError(t, err)
	require.JSONEq(t, `{"name":"id","type":"int"}`, string(b))
}

func TestString(t *testing.T) {
	require.Equal(t, "id(int)", New(types.TYPE_INT, "id").String())
	require.Equal(t, "null(string)", New(types.TYPE_STRING, "").String())
}
