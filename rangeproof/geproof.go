package rangeproof

import (
	"math/big"

	"github.com/credentialkit/clprover/bignum"
	"github.com/credentialkit/clprover/gabikeys"
	"github.com/credentialkit/clprover/internal/common"
)

// PredicateType names the kind of comparison a predicate asserts. GE (>=)
// is the only supported kind; the named type leaves room in the data
// model without inventing unsupported kinds.
type PredicateType string

// GE is the only supported predicate kind: attribute value >= bound.
const GE PredicateType = "GE"

// Statement is the public side of a GE sub-proof request: which attribute,
// against what bound.
type Statement struct {
	AttrName string
	Value    int64
}

// InitProof is the prover's per-predicate working state: the four-square
// decomposition of delta = attrValue - bound, the commitment randomizers
// for each square and for delta itself, and the commitment (c_list) and
// blinded-commitment (tau_list) values that feed the Fiat-Shamir
// transcript.
type InitProof struct {
	Statement Statement

	u      [4]*big.Int
	r      [4]*big.Int
	rDelta *big.Int

	uTilde      [4]*big.Int
	rTilde      [4]*big.Int
	rDeltaTilde *big.Int
	alphaTilde  *big.Int

	t      [4]*big.Int
	tDelta *big.Int

	tauList [6]*big.Int
}

// Proof is the finalized GE sub-proof: the commitments plus the
// challenge-response scalars for each square, for delta, and for the
// cross-term alpha. Mj is the response for the attribute itself, shared
// with the equality sub-proof.
type Proof struct {
	Statement Statement

	U      [4]*big.Int
	R      [4]*big.Int
	RDelta *big.Int
	Mj     *big.Int
	Alpha  *big.Int
	T      [4]*big.Int
	TDelta *big.Int
}

// InitGEProof builds the commitment phase of the GE sub-proof: it
// decomposes delta = attrValue - bound into four squares, commits to each
// square and to delta itself as T_i = Z^u_i * S^r_i mod n, and computes
// the blinded tau-list analogs from fresh randomizers. mTilde is the
// attribute's randomizer as already sampled by the equality sub-proof;
// both sub-proofs must commit to the same value for the shared attribute.
func InitGEProof(pk *gabikeys.PublicKey, attrValue *big.Int, stmt Statement, mTilde *big.Int) (*InitProof, error) {
	delta := new(big.Int).Sub(attrValue, big.NewInt(stmt.Value))
	if delta.Sign() < 0 {
		return nil, errPredicateNotSatisfied{}
	}
	u0, u1, u2, u3, err := FourSquares(delta)
	if err != nil {
		return nil, err
	}

	ip := &InitProof{
		Statement: stmt,
		u:         [4]*big.Int{u0, u1, u2, u3},
	}

	for i := 0; i < gabikeys.Iteration; i++ {
		r, err := randomExponent(gabikeys.LargeVPrime)
		if err != nil {
			return nil, err
		}
		ip.r[i] = r
		ip.t[i] = common.GetPedersenCommitment(pk.Z, ip.u[i], pk.S, r, pk.N)
	}

	rDelta, err := randomExponent(gabikeys.LargeVPrime)
	if err != nil {
		return nil, err
	}
	ip.rDelta = rDelta
	ip.tDelta = common.GetPedersenCommitment(pk.Z, delta, pk.S, rDelta, pk.N)

	for i := 0; i < gabikeys.Iteration; i++ {
		if ip.uTilde[i], err = randomExponent(gabikeys.LargeUTilde); err != nil {
			return nil, err
		}
		if ip.rTilde[i], err = randomExponent(gabikeys.LargeRTilde); err != nil {
			return nil, err
		}
	}
	if ip.rDeltaTilde, err = randomExponent(gabikeys.LargeRTilde); err != nil {
		return nil, err
	}
	if ip.alphaTilde, err = randomExponent(gabikeys.LargeAlphaTilde); err != nil {
		return nil, err
	}

	// tau_list mirrors c_list under the tilde randomizers: one entry per
	// square, one binding delta to the shared attribute randomizer, and
	// one tying the squares back to delta through the T_i commitments.
	for i := 0; i < gabikeys.Iteration; i++ {
		ip.tauList[i] = common.GetPedersenCommitment(pk.Z, ip.uTilde[i], pk.S, ip.rTilde[i], pk.N)
	}
	ip.tauList[4] = common.GetPedersenCommitment(pk.Z, mTilde, pk.S, ip.rDeltaTilde, pk.N)

	q := []common.BaseExp{{Base: pk.S, Exp: ip.alphaTilde}}
	for i := 0; i < gabikeys.Iteration; i++ {
		q = append(q, common.BaseExp{Base: ip.t[i], Exp: ip.uTilde[i]})
	}
	ip.tauList[5] = common.GetExponentiatedGenerators(q, pk.N)

	return ip, nil
}

// CList returns the commitment bytes (T_0..T_3, T_delta) for the
// Fiat-Shamir transcript.
func (ip *InitProof) CList() [][]byte {
	out := make([][]byte, 0, gabikeys.Iteration+1)
	for i := 0; i < gabikeys.Iteration; i++ {
		out = append(out, ip.t[i].Bytes())
	}
	return append(out, ip.tDelta.Bytes())
}

// TauList returns the blinded-commitment bytes for the Fiat-Shamir
// transcript, in the same order the verifier recomputes them.
func (ip *InitProof) TauList() [][]byte {
	out := make([][]byte, 0, len(ip.tauList))
	for _, tau := range ip.tauList {
		out = append(out, tau.Bytes())
	}
	return out
}

// FinalizeGEProof consumes the Fiat-Shamir challenge and the equality
// sub-proof's response for the predicate attribute (mj) and produces the
// response scalars.
func (ip *InitProof) FinalizeGEProof(challenge, mj *big.Int) *Proof {
	p := &Proof{Statement: ip.Statement, T: ip.t, TDelta: ip.tDelta, Mj: mj}

	urProduct := big.NewInt(0)
	for i := 0; i < gabikeys.Iteration; i++ {
		p.U[i] = new(big.Int).Add(ip.uTilde[i], new(big.Int).Mul(challenge, ip.u[i]))
		p.R[i] = new(big.Int).Add(ip.rTilde[i], new(big.Int).Mul(challenge, ip.r[i]))
		urProduct.Add(urProduct, new(big.Int).Mul(ip.u[i], ip.r[i]))
	}
	p.RDelta = new(big.Int).Add(ip.rDeltaTilde, new(big.Int).Mul(challenge, ip.rDelta))

	alpha := new(big.Int).Sub(ip.rDelta, urProduct)
	alpha.Mul(alpha, challenge)
	p.Alpha = alpha.Add(alpha, ip.alphaTilde)

	return p
}

func randomExponent(bits uint) (*big.Int, error) {
	return bignum.RandomBigInt(bits)
}

// errPredicateNotSatisfied is returned verbatim from InitGEProof when the
// attribute value is strictly less than the predicate bound.
type errPredicateNotSatisfied struct{}

func (errPredicateNotSatisfied) Error() string { return "Predicate is not satisfied" }

// IsPredicateNotSatisfied reports whether err is the predicate-violation
// failure from InitGEProof, letting callers surface the literal message
// without string matching.
func IsPredicateNotSatisfied(err error) bool {
	_, ok := err.(errPredicateNotSatisfied)
	return ok
}
