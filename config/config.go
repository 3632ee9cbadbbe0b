package config

import (
	"os"
	"strconv"

	"github.com/pkg/errors"
)

const (
	envPageSize    = "HEAPDB_PAGE_SIZE"
	envBufferPages = "HEAPDB_BUFFER_PAGES"
	envDataPath    = "HEAPDB_DATA_PATH"
	envCatalog     = "HEAPDB_CATALOG"
	envLogLevel    = "HEAPDB_LOG_LEVEL"
)

type AppConfig struct {
	Storage *StorageConfig
	Logger  *LoggerConfig
}

func New() *AppConfig {
	return &AppConfig{
		Storage: NewStorageConfig(),
		Logger:  NewLoggerConfig(),
	}
}

// FromEnv returns the default config with HEAPDB_* environment overrides
// applied. The result is validated.
func FromEnv() (*AppConfig, error) {
	cfg := New()

	if v, ok := os.LookupEnv(envPageSize); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, errors.Wrapf(err, "invalid %s", envPageSize)
		}
		cfg.Storage.PageSize = n
	}
	if v, ok := os.LookupEnv(envBufferPages); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, errors.Wrapf(err, "invalid %s", envBufferPages)
		}
		cfg.Storage.BufferPoolPages = n
	}
	if v, ok := os.LookupEnv(envDataPath); ok {
		cfg.Storage.DataPath = v
	}
	if v, ok := os.LookupEnv(envCatalog); ok {
		cfg.Storage.CatalogFile = v
	}
	if v, ok := os.LookupEnv(envLogLevel); ok {
		cfg.Logger.Level = v
	}

	return cfg, cfg.Validate()
}

func (c *AppConfig) Validate() error {
	if err := c.Storage.Validate(); err != nil {
		return errors.Wrap(err, "storage config")
	}
	return errors.Wrap(c.Logger.Validate(), "logger config")
}
