package config

import "github.com/pkg/errors"

// DefaultPageSize is the size in bytes of every page of every heap file.
const DefaultPageSize = 4096

type StorageConfig struct {
	// PageSize to be used for file I/O. All page reads are done with pages of
	// exactly this size.
	PageSize int

	// BufferPoolPages is the number of pages the buffer pool keeps cached.
	BufferPoolPages int

	DataPath    string
	CatalogFile string
}

func NewStorageConfig() *StorageConfig {
	return &StorageConfig{
		PageSize:        DefaultPageSize,
		BufferPoolPages: 50,
		DataPath:        "./data",
		CatalogFile:     "catalog.json",
	}
}

func (c *StorageConfig) Validate() error {
	if c.PageSize <= 0 {
		return errors.Errorf("page size must be positive, got %d", c.PageSize)
	}
	if c.BufferPoolPages <= 0 {
		return errors.Errorf("buffer pool capacity must be positive, got %d", c.BufferPoolPages)
	}
	return nil
}
