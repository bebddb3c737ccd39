package rangeproof

import (
	"crypto/rand"
	"math/big"
	"testing"

	"github.com/credentialkit/clprover/gabikeys"
	"github.com/credentialkit/clprover/internal/common"
	"github.com/stretchr/testify/require"
)

// testPublicKeyForGE manufactures a small RSA-group public key purely so
// the GE sub-proof's Pedersen commitments have a modulus/bases to
// exponentiate against; it is not cryptographically sound as an Issuer
// key (too small), only fast for tests.
func testPublicKeyForGE(t *testing.T) *gabikeys.PublicKey {
	t.Helper()
	n, err := rand.Prime(rand.Reader, 256)
	require.NoError(t, err)
	s, err := rand.Int(rand.Reader, n)
	require.NoError(t, err)
	z, err := rand.Int(rand.Reader, n)
	require.NoError(t, err)
	return &gabikeys.PublicKey{N: n, S: s, Z: z, R: map[string]*big.Int{}}
}

func sumOfSquares(u [4]*big.Int) *big.Int {
	sq := func(x *big.Int) *big.Int { return new(big.Int).Mul(x, x) }
	sum := new(big.Int).Add(sq(u[0]), sq(u[1]))
	sum.Add(sum, sq(u[2]))
	return sum.Add(sum, sq(u[3]))
}

func TestFourSquaresIdentity(t *testing.T) {
	cases := []int64{0, 1, 2, 3, 7, 17, 18, 100, 9999, 123456789}
	for _, delta := range cases {
		u0, u1, u2, u3, err := FourSquares(big.NewInt(delta))
		require.NoError(t, err, "delta=%d", delta)
		got := sumOfSquares([4]*big.Int{u0, u1, u2, u3})
		require.Equal(t, 0, got.Cmp(big.NewInt(delta)), "delta=%d decomposed to %s,%s,%s,%s", delta, u0, u1, u2, u3)
	}
}

func TestFourSquaresNegativeFails(t *testing.T) {
	_, _, _, _, err := FourSquares(big.NewInt(-1))
	require.Error(t, err)
}

func TestInitGEProofDecomposesDelta(t *testing.T) {
	pk := testPublicKeyForGE(t)

	ip, err := InitGEProof(pk, big.NewInt(35), Statement{AttrName: "age", Value: 18}, big.NewInt(12345))
	require.NoError(t, err)
	require.Equal(t, 0, sumOfSquares(ip.u).Cmp(big.NewInt(17)))
}

func TestInitGEProofUnsatisfiedPredicateFails(t *testing.T) {
	pk := testPublicKeyForGE(t)

	_, err := InitGEProof(pk, big.NewInt(17), Statement{AttrName: "age", Value: 18}, big.NewInt(1))
	require.Error(t, err)
	require.True(t, IsPredicateNotSatisfied(err))
	require.Equal(t, "Predicate is not satisfied", err.Error())
}

// TestGEProofVerifierEquations replays the verifier's side of the GE
// Σ-protocol: each blinded commitment must be recomputable from the
// responses and the challenge as tau_i == Z^u_hat * S^r_hat / T_i^c and
// its delta/alpha analogs.
func TestGEProofVerifierEquations(t *testing.T) {
	pk := testPublicKeyForGE(t)

	attrValue := big.NewInt(35)
	bound := int64(18)
	mTilde := big.NewInt(987654321)

	ip, err := InitGEProof(pk, attrValue, Statement{AttrName: "age", Value: bound}, mTilde)
	require.NoError(t, err)

	challenge := big.NewInt(99991)
	mj := new(big.Int).Add(mTilde, new(big.Int).Mul(challenge, attrValue))
	proof := ip.FinalizeGEProof(challenge, mj)

	// Z^u_hat_i * S^r_hat_i == tau_i * T_i^c
	for i := 0; i < gabikeys.Iteration; i++ {
		lhs := common.GetPedersenCommitment(pk.Z, proof.U[i], pk.S, proof.R[i], pk.N)
		rhs := new(big.Int).Exp(proof.T[i], challenge, pk.N)
		rhs.Mul(rhs, ip.tauList[i]).Mod(rhs, pk.N)
		require.Equal(t, 0, lhs.Cmp(rhs), "square %d", i)
	}

	// Z^mj * S^r_hat_delta == tau_delta * (T_delta * Z^bound)^c
	lhs := common.GetPedersenCommitment(pk.Z, proof.Mj, pk.S, proof.RDelta, pk.N)
	base := new(big.Int).Exp(pk.Z, big.NewInt(bound), pk.N)
	base.Mul(base, proof.TDelta).Mod(base, pk.N)
	rhs := new(big.Int).Exp(base, challenge, pk.N)
	rhs.Mul(rhs, ip.tauList[4]).Mod(rhs, pk.N)
	require.Equal(t, 0, lhs.Cmp(rhs))

	// S^alpha * Π T_i^u_hat_i == tau_q * T_delta^c
	lhs = new(big.Int).Exp(pk.S, proof.Alpha, pk.N)
	for i := 0; i < gabikeys.Iteration; i++ {
		lhs.Mul(lhs, new(big.Int).Exp(proof.T[i], proof.U[i], pk.N)).Mod(lhs, pk.N)
	}
	rhs = new(big.Int).Exp(proof.TDelta, challenge, pk.N)
	rhs.Mul(rhs, ip.tauList[5]).Mod(rhs, pk.N)
	require.Equal(t, 0, lhs.Cmp(rhs))
}
