package sigcache

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/afero"
)

// artifactPrefix starts every encoded artifact file name.
const artifactPrefix = "tmp_"

// Artifact is the decoded view of an artifact file name. It is derived
// entirely from the name; the filesystem listing is the only index.
type Artifact struct {
	Signature string    // hex content signature
	CreatedAt time.Time // creation instant embedded in the name, second precision
	Ext       string    // extension shared by all artifacts in a cache directory
	Path      string    // absolute path, set when decoded from a directory listing
}

// ParseArtifactName decodes an encoded artifact file name of the form
// tmp_<unixSeconds>_<signature>.<ext>. The extension may be empty; the
// trailing dot is still present in that case. Returns false for names
// that do not follow the codec.
func ParseArtifactName(name string) (Artifact, bool) {
	rest, ok := strings.CutPrefix(name, artifactPrefix)
	if !ok {
		return Artifact{}, false
	}
	tsStr, rest, ok := strings.Cut(rest, "_")
	if !ok {
		return Artifact{}, false
	}
	// Signatures are hex and never contain a dot, so the last dot
	// separates the extension.
	dot := strings.LastIndex(rest, ".")
	if dot < 0 {
		return Artifact{}, false
	}
	sig, ext := rest[:dot], rest[dot+1:]
	if sig == "" {
		return Artifact{}, false
	}
	ts, err := strconv.ParseInt(tsStr, 10, 64)
	if err != nil {
		return Artifact{}, false
	}
	return Artifact{Signature: sig, CreatedAt: time.Unix(ts, 0), Ext: ext}, true
}

// store owns the cache directory tied to a source file and implements the
// filename codec and the file-level operations on artifacts.
type store struct {
	dir string
	ext string
	fs  afero.Fs
	now NowFunc
}

// ensure creates the cache directory and any parents. Idempotent.
func (s *store) ensure() error {
	if err := s.fs.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("%w: creating %s: %v", ErrStorageUnavailable, s.dir, err)
	}
	return nil
}

// fileName encodes an artifact name for the signature, capturing the
// current time at call time.
func (s *store) fileName(signature string) string {
	return fmt.Sprintf("%s%d_%s.%s", artifactPrefix, s.now().Unix(), signature, s.ext)
}

// filePath returns the full candidate path for a new artifact.
func (s *store) filePath(signature string) string {
	return filepath.Join(s.dir, s.fileName(signature))
}

// list returns the current directory entries in filesystem-listing order.
// Callers must not depend on the ordering.
func (s *store) list() ([]os.FileInfo, error) {
	infos, err := afero.ReadDir(s.fs, s.dir)
	if err != nil {
		return nil, err
	}
	return infos, nil
}

// artifacts decodes every entry in the directory that follows the codec.
func (s *store) artifacts() ([]Artifact, error) {
	infos, err := s.list()
	if err != nil {
		return nil, err
	}
	var arts []Artifact
	for _, info := range infos {
		a, ok := ParseArtifactName(info.Name())
		if !ok {
			continue
		}
		a.Path = filepath.Join(s.dir, info.Name())
		arts = append(arts, a)
	}
	return arts, nil
}

// findBySignature returns every artifact whose decoded signature field
// equals signature exactly. A digest that is a substring of another
// digest's name does not match.
func (s *store) findBySignature(signature string) ([]Artifact, error) {
	arts, err := s.artifacts()
	if err != nil {
		return nil, err
	}
	var matches []Artifact
	for _, a := range arts {
		if a.Signature == signature {
			matches = append(matches, a)
		}
	}
	return matches, nil
}

// write persists an artifact. A failed write is not recovered; there is
// no atomic rename step.
func (s *store) write(path string, data []byte) error {
	if err := afero.WriteFile(s.fs, path, data, 0o644); err != nil {
		return fmt.Errorf("%w: writing %s: %v", ErrStorageUnavailable, path, err)
	}
	return nil
}

// read returns the bytes of an artifact.
func (s *store) read(path string) ([]byte, error) {
	data, err := afero.ReadFile(s.fs, path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return data, nil
}

// remove deletes a single file. Removing a missing file is not an error;
// the boolean reports whether a file was actually deleted.
func (s *store) remove(path string) (bool, error) {
	exists, err := afero.Exists(s.fs, path)
	if err != nil {
		return false, fmt.Errorf("failed to check %s: %w", path, err)
	}
	if !exists {
		return false, nil
	}
	if err := s.fs.Remove(path); err != nil {
		return false, fmt.Errorf("failed to remove %s: %w", path, err)
	}
	return true, nil
}

// totalSize sums the byte sizes of every file currently in the directory.
func (s *store) totalSize() (int64, error) {
	infos, err := s.list()
	if err != nil {
		return 0, err
	}
	var total int64
	for _, info := range infos {
		total += info.Size()
	}
	return total, nil
}

// creationTime reports when an artifact was created. The timestamp
// embedded in the name is authoritative; the filesystem mtime is the
// fallback for files that do not follow the codec.
func (s *store) creationTime(path string) (time.Time, error) {
	info, err := s.fs.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return time.Time{}, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return time.Time{}, fmt.Errorf("failed to stat %s: %w", path, err)
	}
	if a, ok := ParseArtifactName(filepath.Base(path)); ok {
		return a.CreatedAt, nil
	}
	return info.ModTime(), nil
}
