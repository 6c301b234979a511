// Package logging provides structured logging using zap
package logging

import (
	"fmt"
	"io"
	"os"
)

// NewDefaultLogger creates a logger with default configuration using zap
func NewDefaultLogger() Logger {
	logger, err := NewZapLogger(DefaultLogConfig())
	if err != nil {
		panic(fmt.Sprintf("failed to initialize default zap logger: %v", err))
	}
	return logger
}

// NewFromEnv builds a logger from LOG_LEVEL and LOG_FILE. Without LOG_FILE the
// logger writes to stderr. The returned closer flushes the logger and closes
// the log file, if any.
func NewFromEnv() (Logger, io.Closer, error) {
	config := DefaultLogConfig()

	var file *os.File
	if name := os.Getenv("LOG_FILE"); name != "" {
		f, err := os.OpenFile(name, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open log file %s: %w", name, err)
		}
		file = f
		config.Output = f
	}

	logger, err := NewZapLogger(config)
	if err != nil {
		if file != nil {
			_ = file.Close()
		}
		return nil, nil, err
	}

	return logger, closerFunc(func() error {
		if z, ok := logger.(*ZapAdapter); ok {
			_ = z.Sync()
		}
		if file != nil {
			return file.Close()
		}
		return nil
	}), nil
}

type closerFunc func() error

func (f closerFunc) Close() error { return f() }

// Err creates an error field with key "error"
func Err(err error) Field {
	return Field{Key: "error", Value: err}
}
