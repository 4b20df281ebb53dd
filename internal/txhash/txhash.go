// Package txhash generates placeholder transaction hashes for simulated
// minting and distribution. The hashes look like 32-byte hex digests with
// a 0x prefix but reference no real chain.
package txhash

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"time"

	"github.com/google/uuid"
)

// New returns a placeholder transaction hash: the hex digest of random
// uuid bytes salted with the current time, 0x-prefixed.
func New() string {
	id := uuid.New()

	var ts [8]byte
	binary.BigEndian.PutUint64(ts[:], uint64(time.Now().UnixNano()))

	sum := sha256.Sum256(append(id[:], ts[:]...))
	return "0x" + hex.EncodeToString(sum[:])
}
