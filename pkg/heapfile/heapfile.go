// Package heapfile stores the tuples of one table as an unordered sequence
// of fixed size heap pages. Page k occupies bytes [k*pageSize, (k+1)*pageSize)
// of the backing file.
package heapfile

import (
	"hash/fnv"
	"io"
	"os"

	"go-heapdb/pkg/customerrors"
	"go-heapdb/pkg/iterator"
	"go-heapdb/pkg/pages"
	"go-heapdb/pkg/primitives"
	"go-heapdb/pkg/schema"
	"go-heapdb/pkg/transaction"
	"go-heapdb/pkg/tuple"
	"go-heapdb/util/helpers"
	"go-heapdb/util/logger"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

type HeapFile struct {
	id       int
	path     string
	desc     *schema.TupleDesc
	pageSize int
	file     *os.File
}

// Open opens an existing heap file read only.
func Open(path string, desc *schema.TupleDesc, pageSize int) (*HeapFile, error) {
	if pageSize <= 0 {
		return nil, errors.Wrapf(customerrors.ErrInvalidArgument, "invalid page size %d", pageSize)
	}

	canonical, err := helpers.CanonicalPath(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to resolve '%s'", path)
	}

	file, err := os.Open(canonical)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open heap file '%s'", canonical)
	}

	return &HeapFile{
		id:       fileID(canonical),
		path:     canonical,
		desc:     desc,
		pageSize: pageSize,
		file:     file,
	}, nil
}

// fileID hashes the canonical path. Two paths hashing to the same value
// would share an id; the catalog rejects such a pair.
func fileID(path string) int {
	h := fnv.New32a()
	h.Write([]byte(path))
	return int(h.Sum32())
}

// ID identifies the file for the lifetime of its path.
func (hf *HeapFile) ID() int {
	return hf.id
}

func (hf *HeapFile) Path() string {
	return hf.path
}

func (hf *HeapFile) Schema() *schema.TupleDesc {
	return hf.desc
}

func (hf *HeapFile) PageSize() int {
	return hf.pageSize
}

// NumPages is computed from the current file length, a partial trailing
// page counting as a page.
func (hf *HeapFile) NumPages() (int, error) {
	info, err := hf.file.Stat()
	if err != nil {
		return 0, errors.Wrapf(err, "failed to stat heap file '%s'", hf.path)
	}
	return int(helpers.CeilDiv(info.Size(), int64(hf.pageSize))), nil
}

// ReadPage reads page pid.PageNo straight from disk. Reads use absolute
// offsets so concurrent readers need no coordination.
func (hf *HeapFile) ReadPage(pid primitives.PageID) (pages.Page, error) {
	if pid.TableID != hf.id {
		return nil, errors.Wrapf(customerrors.ErrInvalidArgument,
			"page %v does not belong to file %d", pid, hf.id)
	}
	if pid.PageNo < 0 {
		return nil, errors.Wrapf(customerrors.ErrInvalidArgument, "negative page number %d", pid.PageNo)
	}

	logger.L.WithFields(logrus.Fields{
		"file": hf.path,
		"page": pid.PageNo,
	}).Debug("reading page")

	buf := make([]byte, hf.pageSize)
	n, err := hf.file.ReadAt(buf, int64(pid.PageNo)*int64(hf.pageSize))
	if n < hf.pageSize {
		if err != nil && err != io.EOF {
			return nil, errors.Wrapf(err, "failed to read page %d of '%s'", pid.PageNo, hf.path)
		}
		return nil, errors.Wrapf(customerrors.ErrShortRead,
			"page %d of '%s': got %d of %d bytes", pid.PageNo, hf.path, n, hf.pageSize)
	}

	return pages.NewHeapPage(pid, hf.desc, buf)
}

func (hf *HeapFile) WritePage(pages.Page) error {
	return errors.Wrap(customerrors.ErrUnsupported, "heap file pages are read only")
}

func (hf *HeapFile) InsertTuple(transaction.ID, *tuple.Tuple) error {
	return errors.Wrap(customerrors.ErrUnsupported, "insert into heap file")
}

func (hf *HeapFile) DeleteTuple(transaction.ID, *tuple.Tuple) error {
	return errors.Wrap(customerrors.ErrUnsupported, "delete from heap file")
}

// Iterator returns a cross page iterator that fetches pages through f on
// behalf of tid.
func (hf *HeapFile) Iterator(tid transaction.ID, f pages.Fetcher) iterator.DbFileIterator {
	return &fileIterator{
		file:    hf,
		tid:     tid,
		fetcher: f,
	}
}

func (hf *HeapFile) Close() error {
	return hf.file.Close()
}
