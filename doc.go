/*
	Package sigcache provides a signature-gated local file cache for derived data.

It decides, for a byte payload tied to a source file, whether a new cache
artifact should be written, based on the payload's content signature and a
time-based refresh policy.

# Overview

sigcache serves single-process workloads that periodically regenerate derived
data (reports, snapshots, exports) and want to skip redundant writes while the
content is unchanged within a configurable refresh window. Everything is local
filesystem state: there is no index file and no manifest, the directory
listing is the only source of truth.

# Core Architecture

A Cache is bound to one source file. Next to that file it owns a cache
directory named after the file's basename:

	report.json  →  report_cache/

Artifacts inside it encode their own metadata in the file name:

	tmp_<unixSeconds>_<hexSignature>.<extension>

The write path is: compute the payload signature, scan the directory for
artifacts carrying the same signature, and consult the refresh policy to
decide between writing a new artifact and skipping.

# Basic Usage

Opening a cache:

	cache, err := sigcache.Open("report.json")
	if err != nil {
	    log.Fatalf("Failed to open cache: %v", err)
	}
	defer cache.Close()

Writing gated and forced:

	path, err := cache.Write(payload, false)
	if err != nil {
	    log.Fatalf("Cache write: %v", err)
	}
	if path == "" {
	    fmt.Println("unchanged, nothing written")
	}

	// Bypass gating entirely
	path, _ = cache.Write(payload, true)

Reading an artifact back:

	data, err := cache.Read(path)
	if errors.Is(err, sigcache.ErrNotFound) {
	    // artifact was removed
	}

# Refresh Policies

A policy is a single "next allowed time". Presets compute their target once,
when selected, and hold it fixed until the policy is replaced:

	cache.SetInterval(sigcache.Interval30Minutes)
	cache.SetNextDayAt8()
	cache.SetFirstOfNextMonth()
	cache.SetPolicyFunc(func() time.Time { return myDeadline })

By default the gating check compares the policy's fixed deadline against the
current time, which means an existing artifact with the same signature blocks
rewrites until the policy is replaced or the write is forced. Opt into
age-based gating to compare against the matched artifact's own creation time
plus the interval instead:

	cache, err := sigcache.Open("report.json",
	    sigcache.WithInterval(time.Hour),
	    sigcache.WithAgeGating(),
	)

# Configuration Options

	cache, err := sigcache.Open("report.json",
	    sigcache.WithAlgorithm(sigcache.XXHash64),
	    sigcache.WithLogFile("cache.log"),
	    sigcache.WithFs(afero.NewMemMapFs()),
	)

# Error Handling

The package defines several sentinel errors:

  - ErrUnsupportedAlgorithm: unknown signature algorithm identifier
  - ErrNotFound: Read or CreationDate on a missing path
  - ErrStorageUnavailable: directory creation or artifact write failed
  - ErrMissingLogFile: WithLogFile was given an empty path

Always match them with errors.Is:

	if _, err := cache.Read(path); errors.Is(err, sigcache.ErrNotFound) {
	    // regenerate
	}

# Concurrency

Operations on one Cache are serialized with an internal mutex. Nothing
coordinates multiple processes: concurrent writers with the same signature
may create duplicate artifacts with different embedded timestamps.
*/
package sigcache
