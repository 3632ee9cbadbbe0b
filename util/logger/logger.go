package logger

import (
	"os"

	"go-heapdb/config"

	"github.com/pkg/errors"
	logger "github.com/sirupsen/logrus"
	prefixed "github.com/x-cray/logrus-prefixed-formatter"
)

var L = &logger.Logger{
	Out:   os.Stderr,
	Level: logger.InfoLevel,
	Hooks: make(logger.LevelHooks),
	Formatter: &prefixed.TextFormatter{
		TimestampFormat: "2006-01-02 15:04:05",
		FullTimestamp:   true,
		ForceFormatting: true,
	},
}

// Configure applies the configured level to L.
func Configure(cfg *config.LoggerConfig) error {
	lvl, err := logger.ParseLevel(cfg.Level)
	if err != nil {
		return errors.Wrapf(err, "invalid log level '%s'", cfg.Level)
	}
	L.SetLevel(lvl)
	return nil
}
