package heapfile

import (
	"io"
	"os"

	"go-heapdb/pkg/customerrors"
	"go-heapdb/pkg/pages"
	"go-heapdb/pkg/primitives"
	"go-heapdb/pkg/schema"
	"go-heapdb/pkg/tuple"
	"go-heapdb/util/logger"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// Encode packs tuples in order into heap pages of pageSize bytes and writes
// them to w. The tuples are not modified. It returns the number of pages
// written; no tuples means no pages.
func Encode(w io.Writer, desc *schema.TupleDesc, tuples []*tuple.Tuple, pageSize int) (int, error) {
	if pages.HeapSlots(pageSize, desc.Size()) == 0 {
		return 0, errors.Wrapf(customerrors.ErrInvalidArgument,
			"tuple of %d bytes does not fit a %d byte page", desc.Size(), pageSize)
	}

	written := 0
	var page *pages.HeapPage
	flush := func() error {
		data, err := page.MarshalBinary()
		if err != nil {
			return err
		}
		if _, err := w.Write(data); err != nil {
			return errors.Wrapf(err, "failed to write page %d", written)
		}
		written++
		page = nil
		return nil
	}

	for i, t := range tuples {
		if page == nil {
			page = pages.EmptyHeapPage(primitives.PageID{PageNo: written}, desc, pageSize)
		}
		if err := page.AddTuple(t); err != nil {
			return written, errors.Wrapf(err, "tuple %d", i)
		}
		if page.NumEmptySlots() == 0 {
			if err := flush(); err != nil {
				return written, err
			}
		}
	}

	if page != nil {
		if err := flush(); err != nil {
			return written, err
		}
	}
	return written, nil
}

// Create writes tuples to a new heap file at path, replacing any existing one.
func Create(path string, desc *schema.TupleDesc, tuples []*tuple.Tuple, pageSize int) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0644)
	if err != nil {
		return errors.Wrapf(err, "failed to create heap file '%s'", path)
	}

	n, err := Encode(f, desc, tuples, pageSize)
	if err != nil {
		f.Close()
		return errors.Wrapf(err, "failed to encode heap file '%s'", path)
	}

	logger.L.WithFields(logrus.Fields{
		"file":   path,
		"pages":  n,
		"tuples": len(tuples),
	}).Info("heap file written")

	return f.Close()
}
