package sigcache

import (
	"fmt"
	"time"
)

// Stats represents cache statistics.
type Stats struct {
	Entries     int           // Number of decodable artifacts in the directory
	TotalSize   int64         // Total size of all files in bytes
	OldestEntry time.Duration // Age of the oldest artifact
	NewestEntry time.Duration // Age of the newest artifact
}

// Stats returns statistics about the cache directory. Ages are computed
// from the timestamps embedded in the artifact names.
func (c *Cache) Stats() (Stats, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	stats := Stats{}

	total, err := c.store.totalSize()
	if err != nil {
		return Stats{}, fmt.Errorf("failed to size cache directory: %w", err)
	}
	stats.TotalSize = total

	arts, err := c.store.artifacts()
	if err != nil {
		return Stats{}, fmt.Errorf("failed to scan cache directory: %w", err)
	}

	var oldest, newest time.Time
	for _, a := range arts {
		stats.Entries++
		if oldest.IsZero() || a.CreatedAt.Before(oldest) {
			oldest = a.CreatedAt
		}
		if newest.IsZero() || a.CreatedAt.After(newest) {
			newest = a.CreatedAt
		}
	}

	now := c.now()
	if !oldest.IsZero() {
		stats.OldestEntry = now.Sub(oldest)
	}
	if !newest.IsZero() {
		stats.NewestEntry = now.Sub(newest)
	}

	return stats, nil
}
