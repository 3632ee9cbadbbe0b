package execution

import (
	"go-heapdb/pkg/column"
	"go-heapdb/pkg/customerrors"
	"go-heapdb/pkg/iterator"
	"go-heapdb/pkg/schema"
	"go-heapdb/pkg/tuple"

	"github.com/pkg/errors"
)

// SeqScan reads every tuple of one table in page order.
type SeqScan struct {
	ctx     *Context
	tableID int
	alias   string
	desc    *schema.TupleDesc
	it      iterator.DbFileIterator
}

// NewSeqScan scans table tableID, naming its fields "alias.field" in
// Schema. An empty alias or field name is rendered as "null".
func NewSeqScan(ctx *Context, tableID int, alias string) (*SeqScan, error) {
	s := &SeqScan{ctx: ctx}
	if err := s.Reset(tableID, alias); err != nil {
		return nil, err
	}
	return s, nil
}

// NewSeqScanDefault uses the table's name as alias.
func NewSeqScanDefault(ctx *Context, tableID int) (*SeqScan, error) {
	name, err := ctx.Catalog.TableName(tableID)
	if err != nil {
		return nil, err
	}
	return NewSeqScan(ctx, tableID, name)
}

// Reset points a closed scan at another table.
func (s *SeqScan) Reset(tableID int, alias string) error {
	if s.it != nil {
		return errors.Wrap(customerrors.ErrNotOpen, "cannot reset an open scan")
	}

	desc, err := s.ctx.Catalog.Schema(tableID)
	if err != nil {
		return err
	}

	s.tableID = tableID
	s.alias = alias
	s.desc = aliased(desc, alias)
	return nil
}

func aliased(desc *schema.TupleDesc, alias string) *schema.TupleDesc {
	prefix := alias
	if prefix == "" {
		prefix = "null"
	}

	cols := desc.Columns()
	for i, c := range cols {
		name := c.Name
		if name == "" {
			name = "null"
		}
		cols[i] = column.New(c.Typ, prefix+"."+name)
	}

	renamed, err := schema.FromColumns(cols)
	if err != nil {
		// cols came from a valid schema
		panic(err)
	}
	return renamed
}

func (s *SeqScan) TableName() (string, error) {
	return s.ctx.Catalog.TableName(s.tableID)
}

func (s *SeqScan) Alias() string {
	return s.alias
}

func (s *SeqScan) Schema() *schema.TupleDesc {
	return s.desc
}

func (s *SeqScan) Open() error {
	file, err := s.ctx.Catalog.DatabaseFile(s.tableID)
	if err != nil {
		return err
	}

	it := file.Iterator(s.ctx.Tid, s.ctx.Pages)
	if err := it.Open(); err != nil {
		return err
	}
	s.it = it
	return nil
}

func (s *SeqScan) HasNext() (bool, error) {
	if s.it == nil {
		return false, errors.Wrap(customerrors.ErrNotOpen, "seq scan")
	}
	return s.it.HasNext()
}

func (s *SeqScan) Next() (*tuple.Tuple, error) {
	if s.it == nil {
		return nil, errors.Wrap(customerrors.ErrNotOpen, "seq scan")
	}
	return s.it.Next()
}

// Rewind is passed to the file iterator, which may not support it.
func (s *SeqScan) Rewind() error {
	if s.it == nil {
		return errors.Wrap(customerrors.ErrNotOpen, "seq scan")
	}
	return s.it.Rewind()
}

func (s *SeqScan) Close() error {
	if s.it == nil {
		return nil
	}
	err := s.it.Close()
	s.it = nil
	return err
}
