// Package sniff decides whether a byte stream is binary. A stream counts
// as binary when a NUL byte appears within a bounded prefix; the bound
// keeps the check cheap even for very large files.
package sniff

import (
	"bytes"
	"io"
	"os"
)

// DefaultChunkSize is the prefix length inspected when the caller passes a
// non-positive bound.
const DefaultChunkSize = 1024

// NulIndex reads at most maxBytes from r and returns the offset of the
// first NUL byte, or -1 if the prefix contains none. It never reads past
// maxBytes.
func NulIndex(r io.Reader, maxBytes int) int {
	if maxBytes <= 0 {
		maxBytes = DefaultChunkSize
	}

	buf := make([]byte, maxBytes)
	n, _ := io.ReadFull(io.LimitReader(r, int64(maxBytes)), buf)
	// Short reads are fine: an empty or truncated prefix simply has
	// fewer bytes to scan.
	return bytes.IndexByte(buf[:n], 0)
}

// IsBinary reports whether the first maxBytes of r contain a NUL byte.
// An empty source is not binary.
func IsBinary(r io.Reader, maxBytes int) bool {
	return NulIndex(r, maxBytes) >= 0
}

// File opens path and sniffs its leading bytes.
func File(path string, maxBytes int) (bool, error) {
	f, err := os.Open(path)
	if err != nil {
		return false, err
	}
	defer f.Close()

	return IsBinary(f, maxBytes), nil
}
