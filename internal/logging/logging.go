// Package logging builds the logrus loggers shared by the studio binaries.
package logging

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/pedagogy-studio/internal/domain"
)

// New creates a logger from cfg. Unknown levels fall back to info.
// The returned closer releases the log file when Output names one.
func New(cfg domain.LoggingConfig) (*logrus.Logger, io.Closer, error) {
	logger := logrus.New()

	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)
	logger.SetFormatter(formatter(cfg.Format))

	out, closer, err := output(cfg.Output)
	if err != nil {
		return nil, nil, err
	}
	logger.SetOutput(out)

	return logger, closer, nil
}

// NewWriter creates a logger writing to w, used by the stdio binaries which
// must keep stdout free for protocol traffic.
func NewWriter(level, format string, w io.Writer) *logrus.Logger {
	logger, _, _ := New(domain.LoggingConfig{Level: level, Format: format})
	logger.SetOutput(w)
	return logger
}

func formatter(format string) logrus.Formatter {
	if strings.EqualFold(format, "json") {
		return &logrus.JSONFormatter{
			TimestampFormat: time.RFC3339Nano,
			FieldMap: logrus.FieldMap{
				logrus.FieldKeyTime:  "timestamp",
				logrus.FieldKeyLevel: "level",
				logrus.FieldKeyMsg:   "message",
			},
		}
	}
	return &logrus.TextFormatter{
		TimestampFormat: time.RFC3339,
		FullTimestamp:   true,
	}
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

func output(target string) (io.Writer, io.Closer, error) {
	switch strings.ToLower(target) {
	case "", "stdout":
		return os.Stdout, nopCloser{}, nil
	case "stderr":
		return os.Stderr, nopCloser{}, nil
	}

	f, err := os.OpenFile(target, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log file %s: %w", target, err)
	}
	return f, f, nil
}

type correlationKey struct{}

// WithCorrelationID stores a correlation id on ctx.
func WithCorrelationID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, correlationKey{}, id)
}

// CorrelationID returns the id stored by WithCorrelationID, or "".
func CorrelationID(ctx context.Context) string {
	id, _ := ctx.Value(correlationKey{}).(string)
	return id
}

// FromContext returns an entry carrying the context's correlation id, if any.
func FromContext(ctx context.Context, logger *logrus.Logger) *logrus.Entry {
	entry := logrus.NewEntry(logger)
	if id := CorrelationID(ctx); id != "" {
		entry = entry.WithField("correlation_id", id)
	}
	return entry
}

// Operation times a named unit of work and logs its outcome once.
type Operation struct {
	entry   *logrus.Entry
	started time.Time
}

// StartOperation logs the start of an operation at debug level.
func StartOperation(ctx context.Context, logger *logrus.Logger, name string, fields logrus.Fields) *Operation {
	entry := FromContext(ctx, logger).WithField("operation", name).WithFields(fields)
	entry.Debug("Operation started")
	return &Operation{entry: entry, started: time.Now()}
}

// End logs the duration and, when err is non-nil, the failure.
func (o *Operation) End(err error) {
	entry := o.entry.WithField("duration_ms", time.Since(o.started).Milliseconds())
	if err != nil {
		entry.WithError(err).Warn("Operation failed")
		return
	}
	entry.Info("Operation completed")
}
