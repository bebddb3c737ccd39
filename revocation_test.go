package clprover

import (
	"math/big"
	"testing"

	"github.com/credentialkit/clprover/revocation"
	"github.com/stretchr/testify/require"
)

// testRevocationSetup builds a self-consistent single-member accumulator,
// the revocation half of a credential signature bound to it, and its
// witness, the way an Issuer would.
type testRevocationSetup struct {
	pub    *revocation.PublicKey
	keyPub *revocation.RevocationKeyPublic
	accum  *revocation.Accumulator
	wit    *revocation.Witness
	sig    *revocation.NonRevocationCredentialSignature
}

func newTestRevocationSetup(t *testing.T, vrPrime *revocation.GroupOrderElement) *testRevocationSetup {
	t.Helper()

	scalar := func() *revocation.GroupOrderElement {
		s, err := revocation.NewRandomGroupOrderElement()
		require.NoError(t, err)
		return s
	}
	pow := func(base *revocation.GroupOrderElement, k int) *revocation.GroupOrderElement {
		r := revocation.GroupOrderElementFromBig(big.NewInt(1))
		for i := 0; i < k; i++ {
			r = r.MulMod(base)
		}
		return r
	}

	g := revocation.G1Generator()
	gDash := revocation.G2Generator()
	sk := scalar()
	x := scalar()

	pub := &revocation.PublicKey{
		G:      g,
		GDash:  gDash,
		H:      g.Mul(scalar()),
		H0:     g.Mul(scalar()),
		H1:     g.Mul(scalar()),
		H2:     g.Mul(scalar()),
		HTilde: g.Mul(scalar()),
		HCap:   gDash.Mul(scalar()),
		U:      gDash.Mul(scalar()),
		PK:     g.Mul(sk),
	}
	pub.Y = pub.HCap.Mul(x)

	gamma := scalar()
	const idx, maxCreds = 1, 4
	gI := g.Mul(pow(gamma, idx))
	accum := &revocation.Accumulator{Value: gDash.Mul(pow(gamma, maxCreds+1-idx))}
	keyPub := &revocation.RevocationKeyPublic{Z: revocation.Pair(g, gDash).Exp(pow(gamma, maxCreds+1))}
	wit := &revocation.Witness{Omega: gDash.Mul(revocation.GroupOrderElementFromBig(big.NewInt(0)))}

	sigmaI := gDash.Mul(sk.AddMod(pow(gamma, idx)).Inverse())

	m2 := scalar()
	c := scalar()
	vrTotal := scalar()

	sigmaBase := pub.H0.Add(pub.H1.Mul(m2)).Add(pub.H2.Mul(vrTotal)).Add(gI)
	sigma := sigmaBase.Mul(x.AddMod(c).Inverse())

	// The Issuer hands out vr'' short of the holder's vr'; processing
	// adds vr' back so the third pairing identity closes.
	vrIssued := vrTotal
	if vrPrime != nil {
		vrIssued = vrTotal.Sub(vrPrime)
	}

	sig := &revocation.NonRevocationCredentialSignature{
		Sigma:        sigma,
		C:            c,
		VRPrimePrime: vrIssued,
		WitnessSignature: &revocation.WitnessSignature{
			SigmaI: sigmaI,
			UI:     gDash.Mul(scalar()),
			GI:     gI,
		},
		GI:    gI,
		Index: idx,
		M2:    m2,
	}

	return &testRevocationSetup{pub: pub, keyPub: keyPub, accum: accum, wit: wit, sig: sig}
}

func TestProcessCredentialSignatureWithRevocation(t *testing.T) {
	priv, pk, _ := testIssuerKey(t)
	nonce := big.NewInt(31337)
	values := testIssuedValues()

	primary, scp := buildToySignature(t, priv, pk, values, nonce)

	vrPrime, err := revocation.NewRandomGroupOrderElement()
	require.NoError(t, err)
	setup := newTestRevocationSetup(t, vrPrime)

	credSig := &CredentialSignature{Primary: primary, NonRevoc: setup.sig}
	factors := &CredentialSecretsBlindingFactors{VPrime: big.NewInt(0), VrPrime: vrPrime}

	err = ProcessCredentialSignature(credSig, values, scp, factors, pk, nonce, setup.pub, setup.keyPub, setup.accum, setup.wit)
	require.NoError(t, err)

	idx, ok := credSig.NonrevIndex()
	require.True(t, ok)
	require.Equal(t, uint64(1), idx)
}

func TestProcessCredentialSignatureRejectsBrokenWitness(t *testing.T) {
	priv, pk, _ := testIssuerKey(t)
	nonce := big.NewInt(31337)
	values := testIssuedValues()

	primary, scp := buildToySignature(t, priv, pk, values, nonce)
	setup := newTestRevocationSetup(t, nil)
	setup.wit.Omega = setup.pub.GDash // not the accumulator's witness

	credSig := &CredentialSignature{Primary: primary, NonRevoc: setup.sig}
	factors := &CredentialSecretsBlindingFactors{VPrime: big.NewInt(0)}

	err := ProcessCredentialSignature(credSig, values, scp, factors, pk, nonce, setup.pub, setup.keyPub, setup.accum, setup.wit)
	require.Error(t, err)
}

func TestProcessCredentialSignatureRejectsMissingRevocationInputs(t *testing.T) {
	priv, pk, _ := testIssuerKey(t)
	nonce := big.NewInt(31337)
	values := testIssuedValues()

	primary, scp := buildToySignature(t, priv, pk, values, nonce)
	setup := newTestRevocationSetup(t, nil)

	credSig := &CredentialSignature{Primary: primary, NonRevoc: setup.sig}
	factors := &CredentialSecretsBlindingFactors{VPrime: big.NewInt(0)}

	err := ProcessCredentialSignature(credSig, values, scp, factors, pk, nonce, nil, nil, nil, nil)
	require.Error(t, err)
}

// TestFinalizeWithNonRevocationSubProof runs the presentation phase over
// a revocable credential: the non-revocation sub-proof must contribute
// its commitments to the aggregated transcript and its responses to the
// sub-proof, alongside the primary proof.
func TestFinalizeWithNonRevocationSubProof(t *testing.T) {
	priv, pk, _ := testIssuerKey(t)
	values := testIssuedValues()

	primary, scp := buildToySignature(t, priv, pk, values, big.NewInt(5))
	setup := newTestRevocationSetup(t, nil)

	credSig := &CredentialSignature{Primary: primary, NonRevoc: setup.sig}
	factors := &CredentialSecretsBlindingFactors{VPrime: big.NewInt(0)}
	require.NoError(t, ProcessCredentialSignature(credSig, values, scp, factors, pk, big.NewInt(5), setup.pub, setup.keyPub, setup.accum, setup.wit))

	req := &SubProofRequest{RevealedAttrs: map[string]bool{"height": true}}
	b := NewProofBuilder()
	require.NoError(t, b.AddSubProofRequest("cred1", req, testSchema(), credSig, values, pk, setup.pub, setup.accum, setup.wit))

	proof, err := b.Finalize(big.NewInt(8642))
	require.NoError(t, err)

	sp := proof.SubProofs["cred1"]
	require.NotNil(t, sp.NonRevoc)
	require.Len(t, sp.NonRevoc.XList.AsList(), 14)
	require.NotNil(t, sp.NonRevoc.CList)
	// 7 non-revocation commitments plus the randomized signature A'.
	require.Len(t, proof.Aggregated.CList, 8)
}
