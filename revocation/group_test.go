package revocation

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func elementsEqual(a, b *GroupOrderElement) bool {
	return bytes.Equal(a.Bytes(), b.Bytes())
}

func TestGroupOrderElementSubSelfIsZero(t *testing.T) {
	a, err := NewRandomGroupOrderElement()
	require.NoError(t, err)

	diff := a.Sub(a)
	zero := a.AddMod(a.Neg())
	require.True(t, elementsEqual(diff, zero))
}

func TestGroupOrderElementAddModCommutes(t *testing.T) {
	a, err := NewRandomGroupOrderElement()
	require.NoError(t, err)
	b, err := NewRandomGroupOrderElement()
	require.NoError(t, err)

	require.True(t, elementsEqual(a.AddMod(b), b.AddMod(a)))
}

func TestGroupOrderElementFromBytesRoundTrip(t *testing.T) {
	a, err := NewRandomGroupOrderElement()
	require.NoError(t, err)

	b := GroupOrderElementFromBytes(a.Bytes())
	require.True(t, elementsEqual(a, b))
}

func TestPointG1ScalarMulDistributesOverAddMod(t *testing.T) {
	a, err := NewRandomGroupOrderElement()
	require.NoError(t, err)
	b, err := NewRandomGroupOrderElement()
	require.NoError(t, err)

	g := G1Generator()
	lhs := g.Mul(a.AddMod(b))
	rhs := g.Mul(a).Add(g.Mul(b))

	require.True(t, bytes.Equal(lhs.Bytes(), rhs.Bytes()))
}

func TestPairBilinearInScalar(t *testing.T) {
	a, err := NewRandomGroupOrderElement()
	require.NoError(t, err)

	g1 := G1Generator()
	g2 := G2Generator()

	lhs := Pair(g1.Mul(a), g2)
	rhs := Pair(g1, g2.Mul(a))
	require.True(t, lhs.Equal(rhs))
}
