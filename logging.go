package sigcache

import (
	"fmt"
	"io"
	"log/slog"
	"os"
)

// logSink couples a structured logger with the file handle backing it,
// if any, so Close can release it.
type logSink struct {
	*slog.Logger
	closer io.Closer
}

// Close releases the sink's file handle, when one exists.
func (s logSink) Close() error {
	if s.closer != nil {
		return s.closer.Close()
	}
	return nil
}

// setupLogging resolves the logging options into a single sink. The
// default is a text handler on stdout; WithLogFile switches to an
// append-mode file opened through the cache's filesystem.
func (c *Cache) setupLogging() error {
	if c.useFile {
		if c.logPath == "" {
			return ErrMissingLogFile
		}
		f, err := c.fs.OpenFile(c.logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
		if err != nil {
			return fmt.Errorf("%w: opening log file %s: %v", ErrStorageUnavailable, c.logPath, err)
		}
		c.logger = logSink{Logger: slog.New(slog.NewTextHandler(f, nil)), closer: f}
		return nil
	}
	if c.logger.Logger == nil {
		c.logger = logSink{Logger: slog.New(slog.NewTextHandler(os.Stdout, nil))}
	}
	return nil
}

// DiscardLogger returns a logger that drops every record. Pass it to
// WithLogger to silence the cache.
func DiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
