package clprover

import (
	"math/big"
	"sort"

	"github.com/credentialkit/clprover/bignum"
	"github.com/credentialkit/clprover/gabikeys"
	"github.com/credentialkit/clprover/internal/common"
)

// EqualityInitProof is the working state of the equality sub-proof's
// commit phase: the randomized signature A', the per-undisclosed-attribute
// and e/v randomizers, and the blinded commitment T that feeds the
// aggregated Fiat-Shamir transcript.
type EqualityInitProof struct {
	APrime *big.Int
	T      *big.Int

	eTilde  *big.Int
	ePrime  *big.Int
	vTilde  *big.Int
	vPrime  *big.Int
	mTildes map[string]*big.Int
	m2Tilde *big.Int
	m2      *big.Int
}

// InitEqualityProof randomizes the primary signature (A' = A*S^r mod n,
// v' = v - e*r, so A'^e*S^v' equals A^e*S^v) and commits to fresh
// randomizers for e, v, m2 and every undisclosed attribute. A non-nil
// mTildes is shared state: entries already present are reused, and entries
// sampled here are visible to the caller afterwards (a nil mTildes is
// replaced by a fresh map the caller does not see), so a range sub-proof for an
// undisclosed attribute commits to the exact same randomizer. m2Tilde,
// when non-nil, is the m2 randomizer captured from a non-revocation
// sub-proof init so both sub-proofs bind the same m2.
func InitEqualityProof(
	pk *gabikeys.PublicKey,
	sig *PrimaryCredentialSignature,
	schema *CredentialSchema,
	revealed map[string]bool,
	mTildes map[string]*big.Int,
	m2Tilde *big.Int,
) (*EqualityInitProof, error) {
	if m2Tilde == nil {
		var err error
		m2Tilde, err = randomBigIntBits(gabikeys.LargeMVect)
		if err != nil {
			return nil, wrapInvalidStructure("sampling m2~", err)
		}
	}

	r, err := randomBigIntBits(gabikeys.LargeVPrime)
	if err != nil {
		return nil, wrapInvalidStructure("sampling signature randomizer r", err)
	}
	eTilde, err := randomBigIntBits(gabikeys.LargeETilde)
	if err != nil {
		return nil, wrapInvalidStructure("sampling e~", err)
	}
	vTilde, err := randomBigIntBits(gabikeys.LargeVTilde)
	if err != nil {
		return nil, wrapInvalidStructure("sampling v~", err)
	}

	if mTildes == nil {
		mTildes = make(map[string]*big.Int)
	}

	unrevealed := make([]string, 0, len(schema.AttrNames))
	for _, name := range schema.AttrNames {
		if !revealed[name] {
			unrevealed = append(unrevealed, name)
		}
	}
	sort.Strings(unrevealed)

	for _, name := range unrevealed {
		if _, ok := mTildes[name]; ok {
			continue
		}
		mTilde, err := randomBigIntBits(gabikeys.LargeMTilde)
		if err != nil {
			return nil, wrapInvalidStructure("sampling m~ for "+name, err)
		}
		mTildes[name] = mTilde
	}

	aPrime := common.GetPedersenCommitment(pk.S, r, sig.A, big.NewInt(1), pk.N)
	vPrime := new(big.Int).Sub(sig.V, new(big.Int).Mul(sig.E, r))
	ePrime := new(big.Int).Sub(sig.E, bignum.Lsh2(gabikeys.LargeEStart))

	pairs := []common.BaseExp{
		{Base: aPrime, Exp: eTilde},
		{Base: pk.S, Exp: vTilde},
		{Base: pk.Rctxt, Exp: m2Tilde},
	}
	for _, name := range unrevealed {
		base, ok := pk.R[name]
		if !ok {
			return nil, newInvalidStructure("value by key '" + name + "' not found in pk.r")
		}
		pairs = append(pairs, common.BaseExp{Base: base, Exp: mTildes[name]})
	}
	t := common.GetExponentiatedGenerators(pairs, pk.N)

	return &EqualityInitProof{
		APrime:  aPrime,
		T:       t,
		eTilde:  eTilde,
		ePrime:  ePrime,
		vTilde:  vTilde,
		vPrime:  vPrime,
		mTildes: mTildes,
		m2Tilde: m2Tilde,
		m2:      sig.M2,
	}, nil
}

// FinalizeEqualityProof consumes the Fiat-Shamir challenge and produces
// the equality sub-proof's response scalars plus the disclosed attribute
// values.
func (ip *EqualityInitProof) FinalizeEqualityProof(
	challenge *big.Int,
	schema *CredentialSchema,
	values *CredentialValues,
	revealed map[string]bool,
) (*EqualityProof, error) {
	resp := func(tilde, secret *big.Int) *big.Int {
		return new(big.Int).Add(tilde, new(big.Int).Mul(challenge, secret))
	}

	m := make(map[string]*big.Int, len(ip.mTildes))
	revealedValues := make(map[string]*big.Int)
	for _, name := range schema.AttrNames {
		attr, ok := values.Attrs[name]
		if !ok {
			return nil, newInvalidStructure("value by key '" + name + "' not found in cred_values")
		}
		if revealed[name] {
			revealedValues[name] = attr.Value
			continue
		}
		mTilde, ok := ip.mTildes[name]
		if !ok {
			return nil, newInvalidStructure("value by key '" + name + "' not found in m_tilde")
		}
		m[name] = resp(mTilde, attr.Value)
	}

	return &EqualityProof{
		RevealedAttrs: revealedValues,
		APrime:        ip.APrime,
		E:             resp(ip.eTilde, ip.ePrime),
		V:             resp(ip.vTilde, ip.vPrime),
		M:             m,
		M2:            resp(ip.m2Tilde, ip.m2),
	}, nil
}
