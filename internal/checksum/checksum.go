package checksum

import (
	"crypto/sha256"
	"encoding/hex"
	"hash"
	"io"
)

// Reader passes reads through to an underlying reader and hashes them.
// Not safe for concurrent use.
type Reader struct {
	src   io.Reader
	hash  hash.Hash
	bytes int64
	eof   bool
}

// NewReader returns a Reader hashing everything read from src.
func NewReader(src io.Reader) *Reader {
	return &Reader{src: src, hash: sha256.New()}
}

// Read implements io.Reader.
func (r *Reader) Read(p []byte) (int, error) {
	n, err := r.src.Read(p)
	if n > 0 {
		r.hash.Write(p[:n])
		r.bytes += int64(n)
	}
	if err == io.EOF {
		r.eof = true
	}
	return n, err
}

// Bytes returns the number of bytes read so far.
func (r *Reader) Bytes() int64 { return r.bytes }

// Complete reports whether the underlying reader reached EOF.
func (r *Reader) Complete() bool { return r.eof }

// Sum returns the hex SHA-256 of the bytes read so far.
func (r *Reader) Sum() string {
	return hex.EncodeToString(r.hash.Sum(nil))
}

// Raw returns the hex SHA-256 of content.
func Raw(content []byte) string {
	sum := sha256.Sum256(content)
	return hex.EncodeToString(sum[:])
}
