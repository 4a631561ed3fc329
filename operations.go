package sigcache

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Write stores payload as a new artifact unless gating decides the
// content is unchanged and still fresh. It returns the path of the
// artifact that was written, or "" when the write was skipped.
//
// The gating check: when at least one artifact with the payload's
// signature exists and the refresh policy's next allowed time is still in
// the future, the write is skipped. force bypasses the check entirely.
func (c *Cache) Write(payload []byte, force bool) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	signature, err := Sum(c.algo, payload)
	if err != nil {
		return "", err
	}

	// Candidate path captures the current time in the file name.
	path := c.store.filePath(signature)

	if !force {
		matches, err := c.store.findBySignature(signature)
		if err != nil {
			return "", fmt.Errorf("failed to scan cache directory: %w", err)
		}
		if len(matches) > 0 && c.gated(matches) {
			c.logger.Info("payload unchanged and refresh window not reached, skipping write",
				"signature", signature)
			return "", nil
		}
	}

	if err := c.store.write(path, payload); err != nil {
		return "", err
	}
	c.logger.Info("artifact written", "path", path, "bytes", len(payload))
	return path, nil
}

// gated reports whether the matching artifacts block a write right now.
func (c *Cache) gated(matches []Artifact) bool {
	now := c.now()
	if c.ageGating {
		if d := c.policy.Interval(); d > 0 {
			newest := matches[0].CreatedAt
			for _, a := range matches[1:] {
				if a.CreatedAt.After(newest) {
					newest = a.CreatedAt
				}
			}
			return now.Before(newest.Add(d))
		}
	}
	return c.policy.NextAllowed().After(now)
}

// Read returns the bytes of an artifact. Returns ErrNotFound if the path
// does not exist.
func (c *Cache) Read(artifactPath string) ([]byte, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.store.read(artifactPath)
}

// DeleteCache removes every file currently in the cache directory,
// logging each deletion and a final summary. A missing directory or file
// is a logged observation, not an error.
func (c *Cache) DeleteCache() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	infos, err := c.store.list()
	if err != nil {
		if os.IsNotExist(err) {
			c.logger.Info("cache directory does not exist", "dir", c.store.dir)
			return nil
		}
		return fmt.Errorf("failed to list cache directory: %w", err)
	}

	deleted := 0
	for _, info := range infos {
		path := filepath.Join(c.store.dir, info.Name())
		removed, err := c.store.remove(path)
		if err != nil {
			return err
		}
		if removed {
			c.logger.Info("artifact deleted", "path", path)
			deleted++
		} else {
			c.logger.Info("artifact does not exist", "path", path)
		}
	}

	c.logger.Info("cache cleared", "dir", c.store.dir, "deleted", deleted)
	return nil
}

// SizeKB returns the total size of all files in the cache directory in
// kilobytes.
func (c *Cache) SizeKB() (float64, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	total, err := c.store.totalSize()
	if err != nil {
		return 0, fmt.Errorf("failed to size cache directory: %w", err)
	}
	return float64(total) / 1024, nil
}

// CreationDate returns the creation time of an artifact. For paths
// following the artifact codec the timestamp embedded in the name is
// authoritative. Returns ErrNotFound if the path does not exist.
func (c *Cache) CreationDate(artifactPath string) (time.Time, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.store.creationTime(artifactPath)
}
