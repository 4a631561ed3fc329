package sigcache

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/afero"
)

// WithFs sets a custom filesystem for the cache.
// This is primarily useful for testing with in-memory filesystems.
//
// Example:
//
//	cache, err := sigcache.Open("report.json", sigcache.WithFs(afero.NewMemMapFs()))
func WithFs(fs afero.Fs) Option {
	return func(c *Cache) {
		c.fs = fs
	}
}

// WithNowFunc sets a custom time function for the cache.
// This is primarily useful for testing with deterministic timestamps.
func WithNowFunc(nowFunc NowFunc) Option {
	return func(c *Cache) {
		c.now = nowFunc
	}
}

// WithAlgorithm sets the signature algorithm identifier. The default is
// sha256. The identifier is not validated here; an unknown algorithm
// fails on the first Write with ErrUnsupportedAlgorithm.
func WithAlgorithm(algorithm string) Option {
	return func(c *Cache) {
		c.algo = algorithm
	}
}

// WithInterval sets the refresh window. The policy deadline is computed
// once when Open runs, not per gating check. The default is 24 hours.
func WithInterval(d time.Duration) Option {
	return func(c *Cache) {
		if d <= 0 {
			c.errs = append(c.errs, fmt.Errorf("interval must be positive, got %v", d))
			return
		}
		c.interval = d
	}
}

// WithPolicyFunc sets a caller-supplied refresh policy function, stored
// verbatim and consulted on every gating check. It takes precedence over
// WithInterval.
func WithPolicyFunc(fn func() time.Time) Option {
	return func(c *Cache) {
		if fn == nil {
			c.errs = append(c.errs, fmt.Errorf("policy function must not be nil"))
			return
		}
		c.policyFn = fn
	}
}

// WithLogger sets the structured logger the cache emits to. The default
// logs to stdout; use DiscardLogger() to silence the cache.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Cache) {
		c.logger = logSink{Logger: logger}
	}
}

// WithLogFile appends log lines to the given file instead of stdout.
// The file is opened through the cache's filesystem when Open runs;
// an empty path is an ErrMissingLogFile error.
func WithLogFile(path string) Option {
	return func(c *Cache) {
		c.useFile = true
		c.logPath = path
	}
}

// WithRemoveOldCache purges the cache directory immediately after Open
// creates it.
func WithRemoveOldCache() Option {
	return func(c *Cache) {
		c.removeOld = true
	}
}

// WithAgeGating switches the gating check to compare the newest matching
// artifact's embedded creation time plus the policy's interval against
// the current time. Without it, the check compares the policy's fixed
// deadline against the current time, so an existing artifact blocks
// rewrites until the policy is replaced or the write is forced.
// Calendar and custom policies carry no interval and gate by deadline in
// either mode.
func WithAgeGating() Option {
	return func(c *Cache) {
		c.ageGating = true
	}
}
