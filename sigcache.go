package sigcache

import (
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/spf13/afero"
)

// NowFunc defines a function that returns the current time.
type NowFunc func() time.Time

// Option defines a function that configures a Cache.
type Option func(*Cache)

// Cache is a content-addressed file cache bound to a single source file.
// It gates rewrites of derived data: a payload whose signature already has
// an artifact on disk is only written again once the refresh policy allows
// it, or when the caller forces the write.
type Cache struct {
	source    string
	algo      string
	store     *store
	policy    Policy
	ageGating bool

	logger  logSink
	logPath string
	useFile bool

	interval  time.Duration
	policyFn  func() time.Time
	removeOld bool

	mu   sync.RWMutex
	fs   afero.Fs
	now  NowFunc
	errs []error // option validation errors, surfaced by Open
}

// Open creates a cache for the given source file. The cache directory is
// derived from the source path (<dir>/<base before first dot>_cache) and
// created if absent. The directory is fixed for the cache's lifetime; the
// refresh policy is not, see SetInterval and SetPolicy.
func Open(sourcePath string, options ...Option) (*Cache, error) {
	cache := &Cache{
		source: sourcePath,
		algo:   DefaultAlgorithm,
		fs:     afero.NewOsFs(),
		now:    time.Now,
	}

	// Apply options
	for _, option := range options {
		option(cache)
	}
	if err := newValidationError(cache.errs); err != nil {
		return nil, err
	}

	cache.store = &store{
		dir: cacheDirFor(sourcePath),
		ext: strings.TrimPrefix(filepath.Ext(sourcePath), "."),
		fs:  cache.fs,
		now: cache.now,
	}

	// The policy deadline is computed once, here, not per gating check.
	switch {
	case cache.policyFn != nil:
		cache.policy = Func(cache.policyFn)
	case cache.interval > 0:
		cache.policy = After(cache.now(), cache.interval)
	default:
		cache.policy = After(cache.now(), DefaultInterval)
	}

	if err := cache.setupLogging(); err != nil {
		return nil, err
	}

	if err := cache.store.ensure(); err != nil {
		return nil, err
	}

	if cache.removeOld {
		if err := cache.DeleteCache(); err != nil {
			return nil, err
		}
	}

	return cache, nil
}

// cacheDirFor derives the cache directory from a source path. The stem is
// everything before the first dot of the basename, so "report.tar.gz"
// maps to "report_cache".
func cacheDirFor(source string) string {
	base := filepath.Base(source)
	stem, _, _ := strings.Cut(base, ".")
	return filepath.Join(filepath.Dir(source), stem+"_cache")
}

// Dir returns the cache directory path.
func (c *Cache) Dir() string {
	return c.store.dir
}

// Source returns the source file path the cache was opened for.
func (c *Cache) Source() string {
	return c.source
}

// SignatureAlgorithm returns the configured signature algorithm identifier.
func (c *Cache) SignatureAlgorithm() string {
	return c.algo
}

// SetPolicy replaces the active refresh policy wholesale. Artifacts
// already on disk are unaffected.
func (c *Cache) SetPolicy(p Policy) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.policy = p
}

// SetInterval replaces the policy with a fixed deadline d from now.
// The deadline is captured once, at this call.
func (c *Cache) SetInterval(d time.Duration) {
	c.SetPolicy(After(c.now(), d))
}

// SetPolicyFunc replaces the policy with a caller-supplied function,
// stored verbatim and consulted on every gating check.
func (c *Cache) SetPolicyFunc(fn func() time.Time) {
	c.SetPolicy(Func(fn))
}

// SetNextDayAt8 gates writes until tomorrow at 08:00.
func (c *Cache) SetNextDayAt8() {
	c.SetPolicy(At(nextDayAt8(c.now())))
}

// SetNextMonday gates writes until the coming Monday at 00:00.
func (c *Cache) SetNextMonday() {
	c.SetPolicy(At(nextMonday(c.now())))
}

// SetFirstOfNextMonth gates writes until the first day of the next month.
func (c *Cache) SetFirstOfNextMonth() {
	c.SetPolicy(At(firstOfNextMonth(c.now())))
}

// SetFirstOfNextYear gates writes until January 1st of the next year.
func (c *Cache) SetFirstOfNextYear() {
	c.SetPolicy(At(firstOfNextYear(c.now())))
}

// Policy returns the active refresh policy.
func (c *Cache) Policy() Policy {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.policy
}

// Close releases resources held by the cache, currently the append-mode
// log file when file logging is configured.
func (c *Cache) Close() error {
	return c.logger.Close()
}
