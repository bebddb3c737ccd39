package common

import (
	"crypto/sha256"
	"encoding/binary"
	"math/big"
)

// HashInt is the deterministic Fiat-Shamir hash shared by every
// Σ-protocol in this module: SHA-256 of the length-prefixed
// concatenation of parts, interpreted as a big-endian unsigned integer
// and reduced modulo 2^nonceBits. Length prefixes keep the encoding
// injective, so no two distinct transcripts collide by concatenation.
func HashInt(nonceBits uint, parts ...[]byte) *big.Int {
	h := sha256.New()
	var lenBuf [8]byte
	for _, p := range parts {
		binary.BigEndian.PutUint64(lenBuf[:], uint64(len(p)))
		h.Write(lenBuf[:])
		h.Write(p)
	}
	sum := h.Sum(nil)
	n := new(big.Int).SetBytes(sum)
	// The reduction narrows the challenge below the digest's 256 bits;
	// both sides of the protocol must reduce identically.
	mod := new(big.Int).Lsh(big.NewInt(1), nonceBits)
	return n.Mod(n, mod)
}
