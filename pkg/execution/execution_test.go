package execution

import (
	"path/filepath"
	"testing"

	"go-heapdb/config"
	"go-heapdb/pkg/bufferpool"
	"go-heapdb/pkg/catalog"
	"go-heapdb/pkg/heapfile"
	"go-heapdb/pkg/schema"
	"go-heapdb/pkg/transaction"
	"go-heapdb/pkg/tuple"
	"go-heapdb/pkg/types"

	"github.com/stretchr/testify/require"
)

const pageSize = 128

var threeInts = schema.MustNew(
	[]types.Type{types.TYPE_INT, types.TYPE_INT, types.TYPE_INT},
	[]string{"a", "b", "c"},
)

func ints(t *testing.T, desc *schema.TupleDesc, rows ...[]int32) []*tuple.Tuple {
	out := make([]*tuple.Tuple, len(rows))
	for i, r := range rows {
		fields := make([]types.Field, len(r))
		for j, v := range r {
			fields[j] = types.NewInt(v)
		}
		tup, err := tuple.FromFields(desc, fields...)
		require.NoError(t, err)
		out[i] = tup
	}
	return out
}

func strs(tuples []*tuple.Tuple) []string {
	out := make([]string, len(tuples))
	for i, t := range tuples {
		out[i] = t.String()
	}
	return out
}

// newContext registers one heap file per table in a fresh catalog.
func newContext(t *testing.T, tables map[string][]*tuple.Tuple, desc *schema.TupleDesc) *Context {
	dir := t.TempDir()
	c := catalog.New()
	t.Cleanup(func() { c.Close() })

	for name, tuples := range tables {
		path := filepath.Join(dir, name+".dat")
		require.NoError(t, heapfile.Create(path, desc, tuples, pageSize))
		hf, err := heapfile.Open(path, desc, pageSize)
		require.NoError(t, err)
		require.NoError(t, c.AddTable(hf, name, ""))
	}

	cfg := config.NewStorageConfig()
	cfg.PageSize = pageSize
	bp, err := bufferpool.New(cfg, c)
	require.NoError(t, err)

	return &Context{
		Tid:     transaction.NewID(),
		Catalog: c,
		Pages:   bp,
	}
}
