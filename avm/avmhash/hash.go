// Package avmhash wraps the single hash primitive the AVM protocol commits
// to: Keccak-256 over canonical big-endian byte encodings.
package avmhash

import (
	"github.com/holiman/uint256"
	"golang.org/x/crypto/sha3"
)

// Size is the length in bytes of a digest.
const Size = 32

// Sum returns the Keccak-256 digest of buf as a 256-bit big-endian integer,
// matching the wire and hashing conventions used throughout the AVM: every
// hash in this protocol is consumed as a 32-byte big-endian word.
func Sum(buf []byte) uint256.Int {
	h := sha3.NewLegacyKeccak256()
	h.Write(buf)
	var out uint256.Int
	return *out.SetBytes(h.Sum(nil))
}

// Builder accumulates byte segments before hashing, avoiding repeated
// concatenation allocations in the hot hashing paths (tuple and stack hash
// chains are recomputed frequently).
type Builder struct {
	buf []byte
}

// NewBuilder returns a Builder with capacity pre-reserved for n bytes.
func NewBuilder(n int) *Builder {
	return &Builder{buf: make([]byte, 0, n)}
}

// WriteByte appends a single byte.
func (b *Builder) WriteByte(v byte) *Builder {
	b.buf = append(b.buf, v)
	return b
}

// Write appends raw bytes.
func (b *Builder) Write(p []byte) *Builder {
	b.buf = append(b.buf, p...)
	return b
}

// WriteUint256 appends the big-endian 32-byte encoding of v.
func (b *Builder) WriteUint256(v *uint256.Int) *Builder {
	be := v.Bytes32()
	b.buf = append(b.buf, be[:]...)
	return b
}

// Sum hashes the accumulated bytes.
func (b *Builder) Sum() uint256.Int {
	return Sum(b.buf)
}

// Bytes returns the accumulated buffer without hashing it, for callers that
// need the raw marshal form as well as its hash (marshalForProof).
func (b *Builder) Bytes() []byte {
	return b.buf
}
