package catalog

import (
	"encoding/json"
	"os"
	"path/filepath"

	"go-heapdb/pkg/column"
	"go-heapdb/pkg/heapfile"
	"go-heapdb/pkg/schema"
	"go-heapdb/util/logger"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

type tableMeta struct {
	Name       string          `json:"name"`
	File       string          `json:"file"`
	PrimaryKey string          `json:"primary_key,omitempty"`
	Columns    []column.Column `json:"columns"`
}

type catalogMeta struct {
	Tables []tableMeta `json:"tables"`
}

// LoadSchema reads a JSON catalog file and registers every table it lists,
// in order. Relative file paths are resolved against the catalog's directory.
func (c *Catalog) LoadSchema(path string, pageSize int) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrapf(err, "failed to read catalog '%s'", path)
	}

	meta := &catalogMeta{}
	if err := json.Unmarshal(data, meta); err != nil {
		return errors.Wrapf(err, "failed to parse catalog '%s'", path)
	}

	dir := filepath.Dir(path)
	files := make([]*heapfile.HeapFile, len(meta.Tables))

	g := &errgroup.Group{}
	for i, tm := range meta.Tables {
		i, tm := i, tm
		g.Go(func() error {
			desc, err := schema.FromColumns(tm.Columns)
			if err != nil {
				return errors.Wrapf(err, "invalid schema for table '%s'", tm.Name)
			}

			filePath := tm.File
			if !filepath.IsAbs(filePath) {
				filePath = filepath.Join(dir, filePath)
			}

			hf, err := heapfile.Open(filePath, desc, pageSize)
			if err != nil {
				return errors.Wrapf(err, "failed to open table '%s'", tm.Name)
			}
			files[i] = hf
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		closeAll(files)
		return err
	}

	for i, tm := range meta.Tables {
		if err := c.AddTable(files[i], tm.Name, tm.PrimaryKey); err != nil {
			closeAll(files[i:])
			return err
		}
		logger.L.WithFields(logrus.Fields{
			"table": tm.Name,
			"file":  files[i].Path(),
			"id":    files[i].ID(),
		}).Info("table loaded")
	}
	return nil
}

func closeAll(files []*heapfile.HeapFile) {
	for _, f := range files {
		if f != nil {
			f.Close()
		}
	}
}
