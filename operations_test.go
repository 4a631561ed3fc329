package sigcache

import (
	"bytes"
	"errors"
	"fmt"
	"math"
	"testing"
	"time"
)

func TestWriteReadRoundTrip(t *testing.T) {
	cache, _ := setupTestCache(t)

	payload := []byte("Test data")
	path, err := cache.Write(payload, true)
	if err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	if path == "" {
		t.Fatal("Forced write returned no path")
	}

	got, err := cache.Read(path)
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if !bytes.Equal(got, payload) {
		t.Errorf("Read returned %q, want %q", got, payload)
	}
}

func TestWriteGatingScenario(t *testing.T) {
	// Construct with a 1 minute interval, then: forced write creates an
	// artifact; an immediate gated write of the same payload is skipped;
	// a forced write creates a second artifact with a different embedded
	// timestamp.
	clock := newTestClock()
	cache, memFs := setupTestCacheWithClock(t, clock, WithInterval(time.Minute))

	payload := []byte("Test data")

	first, err := cache.Write(payload, true)
	if err != nil {
		t.Fatalf("First write failed: %v", err)
	}
	if n := countArtifacts(t, memFs, cache.Dir()); n != 1 {
		t.Fatalf("Artifact count after first write = %d, want 1", n)
	}

	skipped, err := cache.Write(payload, false)
	if err != nil {
		t.Fatalf("Gated write failed: %v", err)
	}
	if skipped != "" {
		t.Errorf("Gated write created %s, want skip", skipped)
	}
	if n := countArtifacts(t, memFs, cache.Dir()); n != 1 {
		t.Errorf("Artifact count after gated write = %d, want 1", n)
	}

	clock.Advance(time.Second)
	second, err := cache.Write(payload, true)
	if err != nil {
		t.Fatalf("Forced rewrite failed: %v", err)
	}
	if second == first {
		t.Errorf("Forced rewrite reused path %s", first)
	}
	if n := countArtifacts(t, memFs, cache.Dir()); n != 2 {
		t.Errorf("Artifact count after forced rewrite = %d, want 2", n)
	}

	firstAt, err := cache.CreationDate(first)
	if err != nil {
		t.Fatalf("CreationDate(first) failed: %v", err)
	}
	secondAt, err := cache.CreationDate(second)
	if err != nil {
		t.Fatalf("CreationDate(second) failed: %v", err)
	}
	if !secondAt.After(firstAt) {
		t.Errorf("Embedded timestamps not distinct: %v vs %v", firstAt, secondAt)
	}
}

func TestWriteChangedPayloadNotGated(t *testing.T) {
	clock := newTestClock()
	cache, memFs := setupTestCacheWithClock(t, clock, WithInterval(time.Hour))

	if _, err := cache.Write([]byte("generation 1"), false); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	clock.Advance(time.Second)

	// A different payload has a different signature; the deadline does
	// not apply to it.
	path, err := cache.Write([]byte("generation 2"), false)
	if err != nil {
		t.Fatalf("Write of changed payload failed: %v", err)
	}
	if path == "" {
		t.Error("Changed payload was skipped")
	}
	if n := countArtifacts(t, memFs, cache.Dir()); n != 2 {
		t.Errorf("Artifact count = %d, want 2", n)
	}
}

func TestWriteDeadlineGatingBlocksUntilPolicyReplaced(t *testing.T) {
	clock := newTestClock()
	cache, _ := setupTestCacheWithClock(t, clock, WithInterval(time.Hour))

	payload := []byte("Test data")
	if _, err := cache.Write(payload, true); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	// Two hours later the original deadline has passed, so the write goes
	// through again.
	clock.Advance(2 * time.Hour)
	path, err := cache.Write(payload, false)
	if err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	if path == "" {
		t.Fatal("Write skipped after the deadline passed")
	}

	// Selecting a fresh interval arms a new deadline, and the artifact's
	// actual age plays no part: the existing artifact blocks again.
	clock.Advance(time.Second)
	cache.SetInterval(time.Minute)
	path, err = cache.Write(payload, false)
	if err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	if path != "" {
		t.Errorf("Deadline gating wrote %s, want skip", path)
	}
}

func TestWriteAgeGating(t *testing.T) {
	clock := newTestClock()
	cache, _ := setupTestCacheWithClock(t, clock, WithInterval(time.Hour), WithAgeGating())

	payload := []byte("Test data")
	if _, err := cache.Write(payload, true); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	// Half the interval: still fresh.
	clock.Advance(30 * time.Minute)
	path, err := cache.Write(payload, false)
	if err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	if path != "" {
		t.Errorf("Age gating wrote %s before the artifact aged out", path)
	}

	// Past the artifact's age window: the write proceeds even though the
	// policy deadline was re-armed in the meantime.
	clock.Advance(time.Hour)
	cache.SetInterval(time.Hour)
	path, err = cache.Write(payload, false)
	if err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	if path == "" {
		t.Error("Age gating skipped a write for an aged-out artifact")
	}
}

func TestWriteUnsupportedAlgorithm(t *testing.T) {
	cache, memFs := setupTestCache(t, WithAlgorithm("whirlpool"))

	// Open does not validate the identifier; the write does.
	_, err := cache.Write([]byte("Test data"), true)
	if !errors.Is(err, ErrUnsupportedAlgorithm) {
		t.Errorf("Expected ErrUnsupportedAlgorithm, got %v", err)
	}
	if n := countArtifacts(t, memFs, cache.Dir()); n != 0 {
		t.Errorf("Failed write left %d artifacts", n)
	}
}

func TestReadMissingArtifact(t *testing.T) {
	cache, _ := setupTestCache(t)

	_, err := cache.Read("/data/report_cache/tmp_1700000000_nope.json")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

func TestDeleteCacheCompleteness(t *testing.T) {
	clock := newTestClock()
	cache, memFs := setupTestCacheWithClock(t, clock)

	const n = 5
	for i := 0; i < n; i++ {
		if _, err := cache.Write([]byte(fmt.Sprintf("payload %d", i)), true); err != nil {
			t.Fatalf("Write %d failed: %v", i, err)
		}
		clock.Advance(time.Second)
	}
	if got := countArtifacts(t, memFs, cache.Dir()); got != n {
		t.Fatalf("Artifact count = %d, want %d", got, n)
	}

	if err := cache.DeleteCache(); err != nil {
		t.Fatalf("DeleteCache failed: %v", err)
	}
	if got := countArtifacts(t, memFs, cache.Dir()); got != 0 {
		t.Errorf("Artifact count after DeleteCache = %d, want 0", got)
	}

	// Deleting an already-empty cache is a no-op.
	if err := cache.DeleteCache(); err != nil {
		t.Errorf("Second DeleteCache failed: %v", err)
	}
}

func TestDeleteCacheMissingDirectory(t *testing.T) {
	cache, memFs := setupTestCache(t)

	if err := memFs.RemoveAll(cache.Dir()); err != nil {
		t.Fatalf("Failed to remove cache directory: %v", err)
	}
	if err := cache.DeleteCache(); err != nil {
		t.Errorf("DeleteCache on missing directory failed: %v", err)
	}
}

func TestSizeKB(t *testing.T) {
	clock := newTestClock()
	cache, _ := setupTestCacheWithClock(t, clock)

	sizes := []int{100, 400, 12}
	total := 0
	for i, n := range sizes {
		if _, err := cache.Write(bytes.Repeat([]byte{byte('a' + i)}, n), true); err != nil {
			t.Fatalf("Write failed: %v", err)
		}
		total += n
		clock.Advance(time.Second)
	}

	got, err := cache.SizeKB()
	if err != nil {
		t.Fatalf("SizeKB failed: %v", err)
	}
	want := float64(total) / 1024
	if math.Abs(got-want) > 1e-9 {
		t.Errorf("SizeKB = %v, want %v", got, want)
	}
}

func TestCreationDate(t *testing.T) {
	clock := newTestClock()
	cache, _ := setupTestCacheWithClock(t, clock)

	path, err := cache.Write([]byte("Test data"), true)
	if err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	got, err := cache.CreationDate(path)
	if err != nil {
		t.Fatalf("CreationDate failed: %v", err)
	}
	if got.Unix() != clock.Now().Unix() {
		t.Errorf("CreationDate = %v, want %v", got, clock.Now())
	}

	_, err = cache.CreationDate(path + ".gone")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound for missing path, got %v", err)
	}
}

func TestStats(t *testing.T) {
	clock := newTestClock()
	cache, _ := setupTestCacheWithClock(t, clock)

	if _, err := cache.Write([]byte("first"), true); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	clock.Advance(10 * time.Minute)
	if _, err := cache.Write([]byte("second"), true); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	clock.Advance(5 * time.Minute)

	stats, err := cache.Stats()
	if err != nil {
		t.Fatalf("Stats failed: %v", err)
	}
	if stats.Entries != 2 {
		t.Errorf("Entries = %d, want 2", stats.Entries)
	}
	if stats.TotalSize != int64(len("first")+len("second")) {
		t.Errorf("TotalSize = %d, want %d", stats.TotalSize, len("first")+len("second"))
	}
	if stats.OldestEntry != 15*time.Minute {
		t.Errorf("OldestEntry = %v, want 15m", stats.OldestEntry)
	}
	if stats.NewestEntry != 5*time.Minute {
		t.Errorf("NewestEntry = %v, want 5m", stats.NewestEntry)
	}
}
