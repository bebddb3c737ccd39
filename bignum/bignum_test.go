package bignum

import (
	"bytes"
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestModMul(t *testing.T) {
	n := big.NewInt(4171) // small modulus (43*97) for a cheap sanity check
	product := ModMul(big.NewInt(123), big.NewInt(456), n)
	require.Equal(t, 0, product.Cmp(new(big.Int).Mod(big.NewInt(123*456), n)))
}

func TestModInverseRoundTrip(t *testing.T) {
	n := big.NewInt(4171)
	a := big.NewInt(17)

	inv, ok := ModInverse(a, n)
	require.True(t, ok)

	product := ModMul(a, inv, n)
	require.Equal(t, 0, product.Cmp(big.NewInt(1)))
}

func TestModInverseNoInverse(t *testing.T) {
	// a and n share a factor, so no inverse exists.
	_, ok := ModInverse(big.NewInt(6), big.NewInt(9))
	require.False(t, ok)
}

func TestModDiv(t *testing.T) {
	n := big.NewInt(4171)
	q, ok := ModDiv(big.NewInt(30), big.NewInt(5), n)
	require.True(t, ok)
	require.Equal(t, 0, ModMul(q, big.NewInt(5), n).Cmp(big.NewInt(30)))
}

func TestIsPrime(t *testing.T) {
	require.True(t, IsPrime(big.NewInt(7919)))
	require.False(t, IsPrime(big.NewInt(7920)))
}

func TestBytesRoundTrip(t *testing.T) {
	n := big.NewInt(987654321)
	b := Bytes(n)
	require.False(t, bytes.HasPrefix(b, []byte{0x00}), "minimal encoding must not have a leading zero byte")
	require.Equal(t, 0, FromBytes(b).Cmp(n))
}

func TestFromDecimalString(t *testing.T) {
	n, ok := FromDecimalString("987654321987654321")
	require.True(t, ok)
	require.Equal(t, "987654321987654321", n.String())
}

func TestLsh2(t *testing.T) {
	require.Equal(t, 0, Lsh2(8).Cmp(big.NewInt(256)))
}

func TestRandomBigIntRespectsBitLength(t *testing.T) {
	for i := 0; i < 50; i++ {
		n, err := RandomBigInt(16)
		require.NoError(t, err)
		require.True(t, n.BitLen() <= 16)
	}
}

func TestRandomBigIntDeterministicSource(t *testing.T) {
	// With the same deterministic byte stream, two draws of the same
	// bit length must be byte-identical.
	restore := WithDeterministicSource(bytes.NewReader(bytes.Repeat([]byte{0x42}, 64)))
	a, err := RandomBigInt(64)
	require.NoError(t, err)
	restore()

	restore = WithDeterministicSource(bytes.NewReader(bytes.Repeat([]byte{0x42}, 64)))
	b, err := RandomBigInt(64)
	require.NoError(t, err)
	restore()

	require.Equal(t, 0, a.Cmp(b))
}

func TestRandomPrimeInRange(t *testing.T) {
	p, err := RandomPrimeInRange(8, 4)
	require.NoError(t, err)
	require.True(t, p.ProbablyPrime(20))
	require.True(t, p.Cmp(Lsh2(8)) >= 0)
	upper := new(big.Int).Add(Lsh2(8), Lsh2(4))
	require.True(t, p.Cmp(upper) < 0)
}
