// Package catalog maps table ids to the files and schemas that back them.
package catalog

import (
	"sync"

	"go-heapdb/pkg/customerrors"
	"go-heapdb/pkg/iterator"
	"go-heapdb/pkg/pages"
	"go-heapdb/pkg/primitives"
	"go-heapdb/pkg/schema"
	"go-heapdb/pkg/transaction"
	"go-heapdb/util/logger"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// DbFile is a table's backing file as seen by the catalog and page cache.
type DbFile interface {
	ID() int
	Path() string
	Schema() *schema.TupleDesc
	NumPages() (int, error)
	ReadPage(pid primitives.PageID) (pages.Page, error)
	Iterator(tid transaction.ID, f pages.Fetcher) iterator.DbFileIterator
	Close() error
}

type table struct {
	file DbFile
	name string
	pkey string
}

type Catalog struct {
	lock   sync.RWMutex
	tables map[int]*table
	names  map[string]int
}

func New() *Catalog {
	return &Catalog{
		tables: map[int]*table{},
		names:  map[string]int{},
	}
}

// AddTable registers file under name. A table already registered under the
// same name or the same file id is replaced and its file is closed, unless
// it is file itself. Two different paths with the same id are rejected.
func (c *Catalog) AddTable(file DbFile, name, pkey string) error {
	c.lock.Lock()
	defer c.lock.Unlock()

	id := file.ID()
	var replaced []*table
	if old, ok := c.tables[id]; ok {
		if old.file.Path() != file.Path() {
			return errors.Wrapf(customerrors.ErrInvalidArgument,
				"file id %d of '%s' collides with '%s'", id, file.Path(), old.file.Path())
		}
		delete(c.names, old.name)
		delete(c.tables, id)
		replaced = append(replaced, old)
	}
	if oldID, ok := c.names[name]; ok {
		replaced = append(replaced, c.tables[oldID])
		delete(c.tables, oldID)
		delete(c.names, name)
	}

	c.tables[id] = &table{file: file, name: name, pkey: pkey}
	c.names[name] = id

	for _, t := range replaced {
		if t.file == file {
			continue
		}
		if err := t.file.Close(); err != nil {
			logger.L.WithFields(logrus.Fields{
				"table": t.name,
				"file":  t.file.Path(),
			}).Warn(errors.Wrap(err, "failed to close replaced table"))
		}
	}
	return nil
}

func (c *Catalog) TableID(name string) (int, error) {
	c.lock.RLock()
	defer c.lock.RUnlock()

	id, ok := c.names[name]
	if !ok {
		return 0, errors.Wrapf(customerrors.ErrNotFound, "table '%s'", name)
	}
	return id, nil
}

func (c *Catalog) table(id int) (*table, error) {
	c.lock.RLock()
	defer c.lock.RUnlock()

	t, ok := c.tables[id]
	if !ok {
		return nil, errors.Wrapf(customerrors.ErrNotFound, "table id %d", id)
	}
	return t, nil
}

func (c *Catalog) DatabaseFile(id int) (DbFile, error) {
	t, err := c.table(id)
	if err != nil {
		return nil, err
	}
	return t.file, nil
}

func (c *Catalog) Schema(id int) (*schema.TupleDesc, error) {
	t, err := c.table(id)
	if err != nil {
		return nil, err
	}
	return t.file.Schema(), nil
}

func (c *Catalog) TableName(id int) (string, error) {
	t, err := c.table(id)
	if err != nil {
		return "", err
	}
	return t.name, nil
}

func (c *Catalog) PrimaryKey(id int) (string, error) {
	t, err := c.table(id)
	if err != nil {
		return "", err
	}
	return t.pkey, nil
}

// TableIDs returns the registered ids in ascending order.
func (c *Catalog) TableIDs() []int {
	c.lock.RLock()
	ids := maps.Keys(c.tables)
	c.lock.RUnlock()

	slices.Sort(ids)
	return ids
}

// Clear forgets every table without closing its file.
func (c *Catalog) Clear() {
	c.lock.Lock()
	defer c.lock.Unlock()

	c.tables = map[int]*table{}
	c.names = map[string]int{}
}

// Close closes every registered file and clears the catalog.
func (c *Catalog) Close() error {
	c.lock.Lock()
	defer c.lock.Unlock()

	var firstErr error
	for _, t := range c.tables {
		if err := t.file.Close(); err != nil && firstErr == nil {
			firstErr = errors.Wrapf(err, "failed to close table '%s'", t.name)
		}
	}
	c.tables = map[int]*table{}
	c.names = map[string]int{}
	return firstErr
}
