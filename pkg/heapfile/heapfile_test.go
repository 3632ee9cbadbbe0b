package heapfile

import (
	"os"
	"path/filepath"
	"testing"

	"go-heapdb/pkg/customerrors"
	"go-heapdb/pkg/iterator"
	"go-heapdb/pkg/pages"
	"go-heapdb/pkg/primitives"
	"go-heapdb/pkg/schema"
	"go-heapdb/pkg/transaction"
	"go-heapdb/pkg/tuple"
	"go-heapdb/pkg/types"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

var desc = schema.MustNew([]types.Type{types.TYPE_INT, types.TYPE_INT}, []string{"a", "b"})

// 8 byte tuples on 64 byte pages: 7 slots per page
const pageSize = 64

type directFetcher struct {
	file  *HeapFile
	calls []primitives.PageID
}

func (f *directFetcher) FetchPage(_ transaction.ID, pid primitives.PageID, _ pages.Permission) (pages.Page, error) {
	f.calls = append(f.calls, pid)
	return f.file.ReadPage(pid)
}

func (f *directFetcher) PageSize() int {
	return f.file.PageSize()
}

type abortFetcher struct{}

func (f *abortFetcher) FetchPage(transaction.ID, primitives.PageID, pages.Permission) (pages.Page, error) {
	return nil, customerrors.ErrTransactionAborted
}

func (f *abortFetcher) PageSize() int { return pageSize }

// failOnce aborts the first fetch of page failPage and serves every other
// fetch from disk.
type failOnce struct {
	directFetcher
	failPage int
	failed   bool
}

func (f *failOnce) FetchPage(tid transaction.ID, pid primitives.PageID, perm pages.Permission) (pages.Page, error) {
	if pid.PageNo == f.failPage && !f.failed {
		f.failed = true
		return nil, errors.Wrapf(customerrors.ErrTransactionAborted, "%v", tid)
	}
	return f.directFetcher.FetchPage(tid, pid, perm)
}

func rows(t *testing.T, n int) []*tuple.Tuple {
	out := make([]*tuple.Tuple, n)
	for i := range out {
		tup, err := tuple.FromFields(desc, types.NewInt(int32(i)), types.NewInt(int32(i*i)))
		require.NoError(t, err)
		out[i] = tup
	}
	return out
}

func create(t *testing.T, tuples []*tuple.Tuple) *HeapFile {
	path := filepath.Join(t.TempDir(), "t.dat")
	require.NoError(t, Create(path, desc, tuples, pageSize))
	for _, tup := range tuples {
		require.Nil(t, tup.RecordID())
	}
	hf, err := Open(path, desc, pageSize)
	require.NoError(t, err)
	t.Cleanup(func() { hf.Close() })
	return hf
}

func TestNumPages(t *testing.T) {
	path := filepath.Join(t.TempDir(), "raw.dat")
	for size, want := range map[int]int{0: 0, 4096: 1, 4097: 2, 8192: 2} {
		require.NoError(t, os.WriteFile(path, make([]byte, size), 0644))
		hf, err := Open(path, desc, 4096)
		require.NoError(t, err)
		n, err := hf.NumPages()
		require.NoError(t, err)
		require.Equal(t, want, n, "file of %d bytes", size)
		require.NoError(t, hf.Close())
	}
}

func TestID(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.dat")
	require.NoError(t, os.WriteFile(a, nil, 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.dat"), nil, 0644))

	hf1, err := Open(a, desc, pageSize)
	require.NoError(t, err)
	defer hf1.Close()
	hf2, err := Open(filepath.Join(dir, ".", "a.dat"), desc, pageSize)
	require.NoError(t, err)
	defer hf2.Close()
	hf3, err := Open(filepath.Join(dir, "b.dat"), desc, pageSize)
	require.NoError(t, err)
	defer hf3.Close()

	require.Equal(t, hf1.ID(), hf2.ID())
	require.NotEqual(t, hf1.ID(), hf3.ID())
	require.Equal(t, hf1.Path(), hf2.Path())
}

func TestOpenErrors(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "missing.dat"), desc, pageSize)
	require.Error(t, err)

	_, err = Open("x", desc, 0)
	require.ErrorIs(t, err, customerrors.ErrInvalidArgument)
}

func TestReadPage(t *testing.T) {
	hf := create(t, rows(t, 10))

	n, err := hf.NumPages()
	require.NoError(t, err)
	require.Equal(t, 2, n)

	p, err := hf.ReadPage(primitives.PageID{TableID: hf.ID(), PageNo: 1})
	require.NoError(t, err)
	require.Equal(t, 3, p.NumTuples())

	_, err = hf.ReadPage(primitives.PageID{TableID: hf.ID(), PageNo: 2})
	require.ErrorIs(t, err, customerrors.ErrShortRead)
	require.Contains(t, err.Error(), hf.Path())

	_, err = hf.ReadPage(primitives.PageID{TableID: hf.ID() + 1, PageNo: 0})
	require.ErrorIs(t, err, customerrors.ErrInvalidArgument)
}

func TestReadPageTruncated(t *testing.T) {
	path := filepath.Join(t.TempDir(), "short.dat")
	require.NoError(t, os.WriteFile(path, make([]byte, pageSize+10), 0644))
	hf, err := Open(path, desc, pageSize)
	require.NoError(t, err)
	defer hf.Close()

	n, err := hf.NumPages()
	require.NoError(t, err)
	require.Equal(t, 2, n)

	_, err = hf.ReadPage(primitives.PageID{TableID: hf.ID(), PageNo: 1})
	require.ErrorIs(t, err, customerrors.ErrShortRead)
}

func TestUnsupportedMutations(t *testing.T) {
	hf := create(t, rows(t, 1))
	tid := transaction.NewID()
	tup := rows(t, 1)[0]

	require.ErrorIs(t, hf.InsertTuple(tid, tup), customerrors.ErrUnsupported)
	require.ErrorIs(t, hf.DeleteTuple(tid, tup), customerrors.ErrUnsupported)
	require.ErrorIs(t, hf.WritePage(nil), customerrors.ErrUnsupported)
}

func TestIteratorAcrossPages(t *testing.T) {
	hf := create(t, rows(t, 20))
	f := &directFetcher{file: hf}

	got, err := iterator.Collect(hf.Iterator(transaction.NewID(), f))
	require.NoError(t, err)
	require.Len(t, got, 20)
	for i, tup := range got {
		fld, err := tup.Field(0)
		require.NoError(t, err)
		require.Equal(t, int32(i), fld.Value())
	}
	require.Len(t, f.calls, 3)
	require.Equal(t, primitives.PageID{TableID: hf.ID(), PageNo: 0}, f.calls[0])
}

func TestIteratorSkipsEmptyPages(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gaps.dat")
	out, err := os.Create(path)
	require.NoError(t, err)
	_, err = out.Write(make([]byte, pageSize))
	require.NoError(t, err)
	_, err = Encode(out, desc, rows(t, 2), pageSize)
	require.NoError(t, err)
	_, err = out.Write(make([]byte, pageSize))
	require.NoError(t, err)
	require.NoError(t, out.Close())

	hf, err := Open(path, desc, pageSize)
	require.NoError(t, err)
	defer hf.Close()

	it := hf.Iterator(transaction.NewID(), &directFetcher{file: hf})
	require.NoError(t, it.Open())
	for i := 0; i < 2; i++ {
		ok, err := it.HasNext()
		require.NoError(t, err)
		require.True(t, ok)
		_, err = it.Next()
		require.NoError(t, err)
	}
	ok, err := it.HasNext()
	require.NoError(t, err)
	require.False(t, ok)
	_, err = it.Next()
	require.ErrorIs(t, err, customerrors.ErrNoSuchElement)
}

func TestIteratorEmptyFile(t *testing.T) {
	hf := create(t, nil)
	f := &directFetcher{file: hf}

	it := hf.Iterator(transaction.NewID(), f)
	require.NoError(t, it.Open())
	ok, err := it.HasNext()
	require.NoError(t, err)
	require.False(t, ok)
	require.Empty(t, f.calls)
}

func TestIteratorProtocol(t *testing.T) {
	hf := create(t, rows(t, 3))
	it := hf.Iterator(transaction.NewID(), &directFetcher{file: hf})

	_, err := it.HasNext()
	require.ErrorIs(t, err, customerrors.ErrNotOpen)
	_, err = it.Next()
	require.ErrorIs(t, err, customerrors.ErrNotOpen)

	require.ErrorIs(t, it.Rewind(), customerrors.ErrUnsupported)
	require.NoError(t, it.Open())
	require.ErrorIs(t, it.Rewind(), customerrors.ErrUnsupported)

	require.NoError(t, it.Close())
	_, err = it.HasNext()
	require.ErrorIs(t, err, customerrors.ErrNotOpen)
}

func TestIteratorPropagatesAbort(t *testing.T) {
	hf := create(t, rows(t, 3))
	it := hf.Iterator(transaction.NewID(), &abortFetcher{})

	err := it.Open()
	require.Equal(t, customerrors.ErrTransactionAborted, err)
	_, err = it.HasNext()
	require.ErrorIs(t, err, customerrors.ErrNotOpen)
}

func TestIteratorAbortMidScan(t *testing.T) {
	hf := create(t, rows(t, 21))
	f := &failOnce{directFetcher: directFetcher{file: hf}, failPage: 1}
	it := hf.Iterator(transaction.NewID(), f)
	require.NoError(t, it.Open())

	seen := 0
	err := iterator.ForEach(it, func(*tuple.Tuple) error {
		seen++
		return nil
	})
	require.ErrorIs(t, err, customerrors.ErrTransactionAborted)
	require.Equal(t, 7, seen)

	// the failure sticks even though the page is now readable
	for i := 0; i < 2; i++ {
		ok, err := it.HasNext()
		require.ErrorIs(t, err, customerrors.ErrTransactionAborted)
		require.False(t, ok)
	}
	_, err = it.Next()
	require.ErrorIs(t, err, customerrors.ErrTransactionAborted)

	require.NoError(t, it.Close())
	_, err = it.HasNext()
	require.ErrorIs(t, err, customerrors.ErrNotOpen)

	n, err := iterator.Count(it)
	require.NoError(t, err)
	require.Equal(t, 21, n)
}

func TestEncodeRejects(t *testing.T) {
	wide := schema.MustNew([]types.Type{types.TYPE_STRING}, nil)
	_, err := Encode(nil, wide, nil, pageSize)
	require.ErrorIs(t, err, customerrors.ErrInvalidArgument)

	other := schema.MustNew([]types.Type{types.TYPE_INT}, nil)
	tup, err := tuple.FromFields(other, types.NewInt(1))
	require.NoError(t, err)
	_, err = Encode(nopWriter{}, desc, []*tuple.Tuple{tup}, pageSize)
	require.True(t, errors.Is(err, customerrors.ErrInvalidArgument))
}

type nopWriter struct{}

func (nopWriter) Write(p []byte) (int, error) { return len(p), nil }
