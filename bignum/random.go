package bignum

import (
	"crypto/rand"
	"io"
	"math/big"
)

// source is the process-wide randomness source: cryptographically secure
// by default, swappable for the duration of a test to a deterministic
// one via WithDeterministicSource.
var source io.Reader = rand.Reader

// WithDeterministicSource swaps the package's randomness source for r
// and returns a function that restores the prior source. Intended for
// tests that need byte-identical output across runs.
func WithDeterministicSource(r io.Reader) (restore func()) {
	prev := source
	source = r
	return func() { source = prev }
}

// RandomBigInt samples a uniformly random integer in [0, 2^bits).
func RandomBigInt(bits uint) (*big.Int, error) {
	if bits == 0 {
		return big.NewInt(0), nil
	}
	byteLen := (bits + 7) / 8
	buf := make([]byte, byteLen)
	if _, err := io.ReadFull(source, buf); err != nil {
		return nil, err
	}
	n := new(big.Int).SetBytes(buf)
	// Shift out the excess bits read beyond the requested width so the
	// result stays within [0, 2^bits).
	excess := byteLen*8 - bits
	if excess > 0 {
		n.Rsh(n, excess)
	}
	return n, nil
}

// RandomPrimeInRange returns a random prime e with
// 2^start <= e < 2^start + 2^length, the sampling range of a CL
// signature's exponent. The Prover itself never samples e; this exists
// for fixtures standing in for an Issuer.
func RandomPrimeInRange(start, length uint) (*big.Int, error) {
	base := Lsh2(start)
	for {
		offset, err := RandomBigInt(length)
		if err != nil {
			return nil, err
		}
		candidate := new(big.Int).Add(base, offset)
		if candidate.Bit(0) == 0 {
			candidate.Add(candidate, big.NewInt(1))
		}
		if candidate.ProbablyPrime(20) {
			return candidate, nil
		}
	}
}
