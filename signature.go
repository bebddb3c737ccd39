package clprover

import (
	"math/big"
	"sort"

	"github.com/credentialkit/clprover/bignum"
	"github.com/credentialkit/clprover/gabikeys"
	"github.com/credentialkit/clprover/internal/common"
	"github.com/credentialkit/clprover/revocation"
)

// ProcessCredentialSignature finishes issuance on the Prover's side: it
// unblinds the Issuer-returned primary signature's v component with the
// v' this Prover generated in BlindCredentialSecrets, checks the
// signature correctness proof against the public key and the attribute
// values, and — when the credential carries a non-revocation signature —
// unblinds vr'' and verifies the witness against the revocation
// accumulator via the pairing identities of revocation.TestWitnessSignature.
// sig is mutated in place (sig.Primary.V and sig.NonRevoc.VRPrimePrime):
// the value the caller holds afterwards is the final, usable signature,
// and presenting it goes through that same mutated value.
func ProcessCredentialSignature(
	sig *CredentialSignature,
	values *CredentialValues,
	scp *SignatureCorrectnessProof,
	factors *CredentialSecretsBlindingFactors,
	pk *gabikeys.PublicKey,
	nonce *big.Int,
	revPub *revocation.PublicKey,
	revKeyPub *revocation.RevocationKeyPublic,
	accum *revocation.Accumulator,
	witness *revocation.Witness,
) error {
	Logger.Trace("clprover: processing credential signature")

	if sig.Primary == nil {
		return newInvalidStructure("credential signature has no primary component")
	}
	sig.Primary.V = new(big.Int).Add(sig.Primary.V, factors.VPrime)

	if err := checkSignatureCorrectnessProof(sig.Primary, values, scp, pk, nonce); err != nil {
		return err
	}

	if sig.NonRevoc != nil {
		if revPub == nil || revKeyPub == nil || accum == nil || witness == nil {
			return newInvalidStructure("credential carries a non-revocation signature but no revocation key/accumulator/witness was supplied")
		}
		if factors.VrPrime != nil {
			sig.NonRevoc.VRPrimePrime = factors.VrPrime.AddMod(sig.NonRevoc.VRPrimePrime)
		}
		if err := revocation.TestWitnessSignature(sig.NonRevoc, revPub, accum, revKeyPub, witness); err != nil {
			return wrapInvalidStructure("Issuer is sending incorrect data", err)
		}
	}

	return nil
}

// checkSignatureCorrectnessProof verifies that the unblinded signature
// satisfies A^e = Z / (S^v * Rctxt^m2 * Π R_i^a_i) mod n with a prime e,
// then recomputes the Issuer's Fiat-Shamir challenge over
// (Q, A, A^(c+se*e), nonce) and compares it against the proof.
func checkSignatureCorrectnessProof(sig *PrimaryCredentialSignature, values *CredentialValues, scp *SignatureCorrectnessProof, pk *gabikeys.PublicKey, nonce *big.Int) error {
	if !bignum.IsPrime(sig.E) {
		return newInvalidStructure("Invalid Signature correctness proof")
	}

	names := make([]string, 0, len(values.Attrs))
	for name := range values.Attrs {
		names = append(names, name)
	}
	sort.Strings(names)

	pairs := []common.BaseExp{
		{Base: pk.S, Exp: sig.V},
		{Base: pk.Rctxt, Exp: sig.M2},
	}
	for _, name := range names {
		base, ok := pk.R[name]
		if !ok {
			return newInvalidStructure("value by key '" + name + "' not found in pk.r")
		}
		pairs = append(pairs, common.BaseExp{Base: base, Exp: values.Attrs[name].Value})
	}
	rx := common.GetExponentiatedGenerators(pairs, pk.N)

	q, ok := bignum.ModDiv(pk.Z, rx, pk.N)
	if !ok {
		return newInvalidStructure("Invalid Signature correctness proof")
	}

	expectedQ := new(big.Int).Exp(sig.A, sig.E, pk.N)
	if q.Cmp(expectedQ) != 0 {
		return newInvalidStructure("Invalid Signature correctness proof")
	}

	degree := new(big.Int).Add(scp.C, new(big.Int).Mul(scp.SE, sig.E))
	aCap := new(big.Int).Exp(sig.A, degree, pk.N)

	cPrime := common.HashInt(gabikeys.LargeNonce, q.Bytes(), sig.A.Bytes(), aCap.Bytes(), nonce.Bytes())
	if cPrime.Cmp(scp.C) != 0 {
		return newInvalidStructure("Invalid Signature correctness proof")
	}
	return nil
}
