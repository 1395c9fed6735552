package docstore

import (
	"crypto/rand"
	"encoding/hex"
	"time"

	"github.com/cardforge/server/internal/corecrypto"
)

// NewObjectID produces a 12-byte opaque identifier, hex-encoded to a
// 24-character string, the same shape a real document-store driver hands
// back for a BSON ObjectId. It is derived from a timestamp plus random
// bytes run through BLAKE3 rather than returned raw, so the id carries no
// directly invertible timing side channel.
func NewObjectID() string {
	seed := make([]byte, 16)
	_, _ = rand.Read(seed)
	stamp := time.Now().UnixNano()
	buf := make([]byte, 0, 24)
	buf = append(buf, byte(stamp>>56), byte(stamp>>48), byte(stamp>>40), byte(stamp>>32),
		byte(stamp>>24), byte(stamp>>16), byte(stamp>>8), byte(stamp))
	buf = append(buf, seed...)
	sum := corecrypto.RawHash(buf)
	return hex.EncodeToString(sum[:12])
}
