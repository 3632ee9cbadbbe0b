// Package bufferpool caches pages read from table files and hands them to
// iterators on behalf of transactions.
package bufferpool

import (
	"sync"

	"go-heapdb/config"
	"go-heapdb/pkg/cache"
	"go-heapdb/pkg/catalog"
	"go-heapdb/pkg/customerrors"
	"go-heapdb/pkg/pages"
	"go-heapdb/pkg/primitives"
	"go-heapdb/pkg/transaction"
	"go-heapdb/util/logger"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// Files resolves a table id to its file. *catalog.Catalog implements it.
type Files interface {
	DatabaseFile(id int) (catalog.DbFile, error)
}

type BufferPool struct {
	lock     sync.Mutex
	pageSize int
	files    Files
	pages    *cache.Cache[primitives.PageID, pages.Page]
	aborted  map[transaction.ID]struct{}
}

func New(cfg *config.StorageConfig, files Files) (*BufferPool, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid storage config")
	}

	bp := &BufferPool{
		pageSize: cfg.PageSize,
		files:    files,
		aborted:  map[transaction.ID]struct{}{},
	}
	bp.pages = cache.New(cfg.BufferPoolPages, func(pid primitives.PageID, _ pages.Page) {
		logger.L.WithField("page", pid.String()).Debug("evicting page")
	})
	return bp, nil
}

func (bp *BufferPool) PageSize() int {
	return bp.pageSize
}

// FetchPage returns the cached page or reads it from its file. Pages are
// never modified in place, so perm only matters to callers.
func (bp *BufferPool) FetchPage(tid transaction.ID, pid primitives.PageID, perm pages.Permission) (pages.Page, error) {
	bp.lock.Lock()
	defer bp.lock.Unlock()

	if _, ok := bp.aborted[tid]; ok {
		return nil, errors.Wrapf(customerrors.ErrTransactionAborted, "%v", tid)
	}

	if p, ok := bp.pages.Get(pid); ok {
		return p, nil
	}

	logger.L.WithFields(logrus.Fields{
		"page": pid.String(),
		"tx":   tid.String(),
		"perm": perm.String(),
	}).Debug("page miss")

	file, err := bp.files.DatabaseFile(pid.TableID)
	if err != nil {
		return nil, err
	}
	p, err := file.ReadPage(pid)
	if err != nil {
		return nil, err
	}

	bp.pages.Add(pid, p)
	return p, nil
}

// Abort makes every later fetch by tid fail with ErrTransactionAborted.
func (bp *BufferPool) Abort(tid transaction.ID) {
	bp.lock.Lock()
	defer bp.lock.Unlock()
	bp.aborted[tid] = struct{}{}
}

// TransactionComplete forgets tid.
func (bp *BufferPool) TransactionComplete(tid transaction.ID) {
	bp.lock.Lock()
	defer bp.lock.Unlock()
	delete(bp.aborted, tid)
}

// Discard drops pid from the cache without writing it anywhere.
func (bp *BufferPool) Discard(pid primitives.PageID) {
	bp.lock.Lock()
	defer bp.lock.Unlock()
	bp.pages.Remove(pid)
}

func (bp *BufferPool) Len() int {
	bp.lock.Lock()
	defer bp.lock.Unlock()
	return bp.pages.Len()
}
