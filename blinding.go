package clprover

import (
	"math/big"
	"sort"

	"github.com/credentialkit/clprover/gabikeys"
	"github.com/credentialkit/clprover/internal/common"
	"github.com/credentialkit/clprover/revocation"
)

// BlindCredentialSecrets blinds the holder's private attribute values
// against the Issuer's public key ahead of issuance: it checks the key's
// correctness proof, folds every blinded attribute into the aggregate
// commitment U under a fresh random v' (and, when a revocation key is
// supplied, a parallel pairing-group commitment UR), commits to each
// blinded attribute individually, and produces a correctness proof the
// Issuer can check before it signs.
func BlindCredentialSecrets(
	pk *gabikeys.PublicKey,
	kcp *gabikeys.KeyCorrectnessProof,
	values *CredentialValues,
	nonce *big.Int,
	revPub *revocation.PublicKey,
) (*BlindedCredentialSecrets, *CredentialSecretsBlindingFactors, *BlindedCredentialSecretsCorrectnessProof, error) {
	Logger.Trace("clprover: blinding credential secrets")

	if err := gabikeys.CheckKeyCorrectnessProof(pk, kcp); err != nil {
		return nil, nil, nil, wrapInvalidStructure("issuer public key failed its correctness proof", err)
	}

	blindedNames := make([]string, 0, len(values.Attrs))
	for name, attr := range values.Attrs {
		if attr.Blinded() {
			blindedNames = append(blindedNames, name)
		}
	}
	sort.Strings(blindedNames)

	vPrime, err := randomBigIntBits(gabikeys.LargeVPrime)
	if err != nil {
		return nil, nil, nil, wrapInvalidStructure("sampling v'", err)
	}

	u := new(big.Int).Exp(pk.S, vPrime, pk.N)
	committed := make(map[string]*big.Int, len(blindedNames))
	for _, name := range blindedNames {
		attr := values.Attrs[name]
		base, ok := pk.R[name]
		if !ok {
			return nil, nil, nil, newInvalidStructure("value by key '" + name + "' not found in pk.r")
		}
		u.Mul(u, new(big.Int).Exp(base, attr.Value, pk.N)).Mod(u, pk.N)
		committed[name] = common.GetPedersenCommitment(pk.S, attr.BlindingFactor, pk.Z, attr.Value, pk.N)
	}

	blinded := &BlindedCredentialSecrets{
		U:                   u,
		HiddenAttributes:    blindedNames,
		CommittedAttributes: committed,
	}
	factors := &CredentialSecretsBlindingFactors{VPrime: vPrime}

	if revPub != nil {
		vrPrime, err := revocation.NewRandomGroupOrderElement()
		if err != nil {
			return nil, nil, nil, wrapInvalidStructure("sampling vr'", err)
		}
		blinded.UR = revPub.H2.Mul(vrPrime)
		factors.VrPrime = vrPrime
	}

	proof, err := newBlindedSecretsCorrectnessProof(pk, values, blindedNames, u, vPrime, committed, nonce)
	if err != nil {
		return nil, nil, nil, err
	}

	return blinded, factors, proof, nil
}

// newBlindedSecretsCorrectnessProof runs the Σ-protocol over the blinded
// attributes: fresh randomizers v~, m~_i, r~_i, the shadow commitments
// U~ and C~_i they produce, a Fiat-Shamir challenge over the shadow and
// real commitments in sorted attribute order, and the response scalars.
func newBlindedSecretsCorrectnessProof(
	pk *gabikeys.PublicKey,
	values *CredentialValues,
	blindedNames []string,
	u, vPrime *big.Int,
	committed map[string]*big.Int,
	nonce *big.Int,
) (*BlindedCredentialSecretsCorrectnessProof, error) {
	vDashTilde, err := randomBigIntBits(gabikeys.LargeVPrimeTilde)
	if err != nil {
		return nil, wrapInvalidStructure("sampling v~", err)
	}

	uTilde := new(big.Int).Exp(pk.S, vDashTilde, pk.N)
	mTildes := make(map[string]*big.Int, len(blindedNames))
	rTildes := make(map[string]*big.Int, len(blindedNames))
	parts := make([][]byte, 0, 2*len(blindedNames)+3)

	for _, name := range blindedNames {
		mTilde, err := randomBigIntBits(gabikeys.LargeMTilde)
		if err != nil {
			return nil, wrapInvalidStructure("sampling m~ for "+name, err)
		}
		rTilde, err := randomBigIntBits(gabikeys.LargeMTilde)
		if err != nil {
			return nil, wrapInvalidStructure("sampling r~ for "+name, err)
		}
		mTildes[name] = mTilde
		rTildes[name] = rTilde

		uTilde.Mul(uTilde, new(big.Int).Exp(pk.R[name], mTilde, pk.N)).Mod(uTilde, pk.N)
		commitmentTilde := common.GetPedersenCommitment(pk.Z, mTilde, pk.S, rTilde, pk.N)
		parts = append(parts, commitmentTilde.Bytes(), committed[name].Bytes())
	}

	parts = append(parts, u.Bytes(), uTilde.Bytes(), nonce.Bytes())
	c := common.HashInt(gabikeys.LargeNonce, parts...)

	vDashCap := new(big.Int).Mul(c, vPrime)
	vDashCap.Add(vDashCap, vDashTilde)

	mCaps := make(map[string]*big.Int, len(blindedNames))
	rCaps := make(map[string]*big.Int, len(blindedNames))
	for _, name := range blindedNames {
		attr := values.Attrs[name]
		mCaps[name] = new(big.Int).Add(mTildes[name], new(big.Int).Mul(c, attr.Value))
		rCaps[name] = new(big.Int).Add(rTildes[name], new(big.Int).Mul(c, attr.BlindingFactor))
	}

	return &BlindedCredentialSecretsCorrectnessProof{C: c, VDashCap: vDashCap, MCaps: mCaps, RCaps: rCaps}, nil
}
