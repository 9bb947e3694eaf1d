// Package logging configures the shared logrus logger for the CLI.
package logging

import (
	"time"

	"github.com/sirupsen/logrus"
)

// Logger wraps logrus so call sites depend on one place for setup.
type Logger struct {
	*logrus.Logger
}

// New creates a logger with the given level ("debug", "info", "warn",
// "error") and format ("text" or "json"). Unknown values fall back to info
// and text.
func New(level, format string) *Logger {
	logger := logrus.New()

	switch level {
	case "debug":
		logger.SetLevel(logrus.DebugLevel)
	case "info":
		logger.SetLevel(logrus.InfoLevel)
	case "warn":
		logger.SetLevel(logrus.WarnLevel)
	case "error":
		logger.SetLevel(logrus.ErrorLevel)
	default:
		logger.SetLevel(logrus.InfoLevel)
	}

	if format == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: time.RFC3339,
		})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
		})
	}

	return &Logger{Logger: logger}
}
