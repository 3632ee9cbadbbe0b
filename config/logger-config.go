package config

import (
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

type LoggerConfig struct {
	Level string
}

func NewLoggerConfig() *LoggerConfig {
	return &LoggerConfig{
		Level: "info",
	}
}

func (c *LoggerConfig) Validate() error {
	_, err := logrus.ParseLevel(c.Level)
	return errors.Wrapf(err, "invalid log level '%s'", c.Level)
}
