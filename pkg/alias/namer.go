package alias

import (
	"encoding/hex"
	"fmt"

	"golang.org/x/crypto/blake2b"
)

// DigestSize is the default identifier digest length in bytes (16 hex chars)
const DigestSize = 8

// Namer maps a directory path to its identifier
type Namer func(dir string) string

// ForDirectory returns the identifier for dir using the default digest size
func ForDirectory(dir string) string {
	return hashDir(dir, DigestSize)
}

// NewNamer returns a Namer producing digests of size bytes.
// Valid sizes are 1 through 64.
func NewNamer(size int) (Namer, error) {
	if size < 1 || size > blake2b.Size {
		return nil, fmt.Errorf("digest size must be between 1 and %d, got %d", blake2b.Size, size)
	}
	return func(dir string) string {
		return hashDir(dir, size)
	}, nil
}

func hashDir(dir string, size int) string {
	// Only an invalid size or key can make New fail.
	h, err := blake2b.New(size, nil)
	if err != nil {
		panic(err)
	}
	h.Write([]byte(dir))
	return hex.EncodeToString(h.Sum(nil))
}
