package revocation

import "github.com/go-errors/errors"

// Accumulator is the current state of the revocation registry published
// by the Issuer. Prover code only ever reads it; updating it is an
// Issuer-side concern.
type Accumulator struct {
	Value *PointG2
}

// WitnessSignature is the per-credential witness material the Issuer
// hands out alongside the accumulator state: {sigma_i, u_i, g_i}.
type WitnessSignature struct {
	SigmaI *PointG2
	UI     *PointG2
	GI     *PointG1
}

// Witness is the membership witness for one credential's revocation
// index against a given accumulator state.
type Witness struct {
	Omega *PointG2
}

// NonRevocationCredentialSignature is the revocation half of a processed
// credential signature:
// { sigma, c, vr_prime_prime, witness_signature, g_i, i, m2 }.
type NonRevocationCredentialSignature struct {
	Sigma            *PointG1
	C                *GroupOrderElement
	VRPrimePrime     *GroupOrderElement
	WitnessSignature *WitnessSignature
	GI               *PointG1
	Index            uint64
	M2               *GroupOrderElement
}

// ErrWitnessInvalid is returned by TestWitnessSignature when any of the
// three pairing identities fails to hold.
var ErrWitnessInvalid = errors.New("revocation: witness signature does not satisfy the accumulator pairing identities")

// TestWitnessSignature checks the three pairing identities that bind a
// processed non-revocation credential signature to the Issuer's
// revocation public key, the accumulator state and the witness:
//
//	e(g_i, accum) * e(g, omega)^-1 == z
//	e(pk + g_i, sigma_i)           == e(g, g_dash)
//	e(sigma, y + h_cap*c)          == e(h0 + h1*m2 + h2*vr'' + g_i, h_cap)
//
// m2 is re-derived from the credential's m2 bytes so the check matches
// what the equality sub-proof will later bind to.
func TestWitnessSignature(sig *NonRevocationCredentialSignature, pub *PublicKey, accum *Accumulator, zPub *RevocationKeyPublic, w *Witness) error {
	zCalc := Pair(sig.WitnessSignature.GI, accum.Value).Mul(Pair(pub.G, w.Omega).Inverse())
	if !zCalc.Equal(zPub.Z) {
		return ErrWitnessInvalid
	}

	pairGGCalc := Pair(pub.PK.Add(sig.GI), sig.WitnessSignature.SigmaI)
	pairGG := Pair(pub.G, pub.GDash)
	if !pairGGCalc.Equal(pairGG) {
		return ErrWitnessInvalid
	}

	m2 := GroupOrderElementFromBytes(sig.M2.Bytes())

	pairH1 := Pair(sig.Sigma, pub.Y.Add(pub.HCap.Mul(sig.C)))
	pairH2 := Pair(
		pub.H0.Add(pub.H1.Mul(m2)).Add(pub.H2.Mul(sig.VRPrimePrime)).Add(sig.GI),
		pub.HCap,
	)
	if !pairH1.Equal(pairH2) {
		return ErrWitnessInvalid
	}

	return nil
}
