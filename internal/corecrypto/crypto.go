// Package corecrypto holds the small, pooled compression and hashing
// helpers shared by the document store and the transport dispatcher —
// adapted from the fleet's own federation-link compression/hashing pair,
// generalized past their original peer-to-peer use.
package corecrypto

import (
	"bytes"
	"encoding/hex"
	"sync"

	"github.com/pierrec/lz4/v4"
	"lukechampine.com/blake3"
)

var bufferPool = sync.Pool{New: func() interface{} { return new(bytes.Buffer) }}

// Compress LZ4-compresses src using a pooled buffer.
func Compress(src []byte) []byte {
	buf := bufferPool.Get().(*bytes.Buffer)
	buf.Reset()
	defer bufferPool.Put(buf)

	w := lz4.NewWriter(buf)
	_, _ = w.Write(src)
	_ = w.Close()

	out := make([]byte, buf.Len())
	copy(out, buf.Bytes())
	return out
}

// Decompress reverses Compress.
func Decompress(src []byte) ([]byte, error) {
	r := lz4.NewReader(bytes.NewReader(src))
	buf := bufferPool.Get().(*bytes.Buffer)
	buf.Reset()
	defer bufferPool.Put(buf)

	if _, err := buf.ReadFrom(r); err != nil {
		return nil, err
	}
	out := make([]byte, buf.Len())
	copy(out, buf.Bytes())
	return out, nil
}

// Hash returns the hex-encoded BLAKE3-256 digest of data.
func Hash(data []byte) string {
	sum := RawHash(data)
	return hex.EncodeToString(sum[:])
}

// RawHash returns the raw 32-byte BLAKE3-256 digest of data.
func RawHash(data []byte) [32]byte {
	return blake3.Sum256(data)
}
