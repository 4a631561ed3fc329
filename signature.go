package sigcache

import (
	"bytes"
	"crypto/md5"
	"crypto/sha1"
	"crypto/sha256"
	"crypto/sha512"
	"encoding/hex"
	"fmt"
	"hash"
	"io"
	"sync"

	"github.com/cespare/xxhash/v2"
)

// Signature algorithm identifiers accepted by Sum and WithAlgorithm.
const (
	SHA256   = "sha256"
	SHA1     = "sha1"
	SHA512   = "sha512"
	MD5      = "md5"
	XXHash64 = "xxhash64"

	// DefaultAlgorithm is used when no algorithm option is given.
	DefaultAlgorithm = SHA256
)

// Default size for the buffer used when hashing payloads
const defaultBufferSize = 32 * 1024 // 32KB

// bufferPool is a pool of byte slices used for I/O during hashing
var bufferPool = sync.Pool{
	New: func() interface{} {
		buffer := make([]byte, defaultBufferSize)
		return &buffer
	},
}

// newDigest returns a fresh hash for the given algorithm identifier.
// Unknown identifiers fail with ErrUnsupportedAlgorithm at call time;
// there is no validation at construction.
func newDigest(algorithm string) (hash.Hash, error) {
	switch algorithm {
	case SHA256:
		return sha256.New(), nil
	case SHA1:
		return sha1.New(), nil
	case SHA512:
		return sha512.New(), nil
	case MD5:
		return md5.New(), nil
	case XXHash64:
		return xxhash.New(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedAlgorithm, algorithm)
	}
}

// Sum computes the hex-encoded content signature of payload using the
// given algorithm. Deterministic: the same algorithm and bytes always
// produce the same signature.
func Sum(algorithm string, payload []byte) (string, error) {
	h, err := newDigest(algorithm)
	if err != nil {
		return "", err
	}
	if err := hashPayload(bytes.NewReader(payload), h); err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// hashPayload hashes the content from a reader using the provided hash.
func hashPayload(content io.Reader, h hash.Hash) error {
	bufPtr := bufferPool.Get().(*[]byte)
	buffer := *bufPtr
	defer bufferPool.Put(bufPtr)

	_, err := io.CopyBuffer(h, content, buffer)
	if err != nil {
		return fmt.Errorf("failed to copy content: %w", err)
	}
	return nil
}
