// Package clprover implements the Prover side of a Camenisch-Lysyanskaya
// anonymous-credential system: blinding private attribute values into an
// issuance request, processing the Issuer's returned signature, and
// building zero-knowledge presentation proofs against it (optionally
// including a non-revocation sub-proof over a pairing-based cryptographic
// accumulator). Plain value types live here; the three protocol phases
// each have their own file (mastersecret.go, blinding.go, signature.go),
// and the proof machinery is split across equality.go/proofbuilder.go
// plus the rangeproof and revocation sub-packages.
package clprover

import (
	"math/big"

	"github.com/credentialkit/clprover/rangeproof"
	"github.com/credentialkit/clprover/revocation"
)

// MasterSecret is the Prover's link secret, shared across every credential
// issued to the same holder so that two credentials can be proven to
// belong to the same party without revealing the secret itself.
type MasterSecret struct {
	MS *big.Int
}

// CredentialSchema names the attributes an Issuer's public key provisions
// bases for. Order is insignificant here; callers sort names themselves
// before hashing so the transcript stays deterministic.
type CredentialSchema struct {
	AttrNames []string
}

// NewCredentialSchema builds a CredentialSchema from the given attribute
// names.
func NewCredentialSchema(attrNames ...string) *CredentialSchema {
	names := make([]string, len(attrNames))
	copy(names, attrNames)
	return &CredentialSchema{AttrNames: names}
}

// AttributeValue is one attribute of a credential. Attributes carrying a
// blinding factor are committed by the holder during issuance (the Issuer
// signs them without learning their value); attributes without one are
// issued in the clear.
type AttributeValue struct {
	Value          *big.Int
	BlindingFactor *big.Int
}

// Blinded reports whether this attribute is hidden from the Issuer behind
// a commitment.
func (a *AttributeValue) Blinded() bool {
	return a.BlindingFactor != nil
}

// CredentialValues holds the attribute values a credential is issued
// over, keyed by attribute name.
type CredentialValues struct {
	Attrs map[string]*AttributeValue
}

// CredentialValuesBuilder accumulates attribute values ahead of blinding
// and issuance.
type CredentialValuesBuilder struct {
	attrs map[string]*AttributeValue
}

// NewCredentialValuesBuilder returns an empty builder.
func NewCredentialValuesBuilder() *CredentialValuesBuilder {
	return &CredentialValuesBuilder{attrs: make(map[string]*AttributeValue)}
}

// AddKnown sets the value for an attribute the Issuer learns in the clear.
func (b *CredentialValuesBuilder) AddKnown(name string, value *big.Int) *CredentialValuesBuilder {
	b.attrs[name] = &AttributeValue{Value: value}
	return b
}

// AddBlinded sets the value for an attribute hidden from the Issuer behind
// a Pedersen commitment opened with blindingFactor.
func (b *CredentialValuesBuilder) AddBlinded(name string, value, blindingFactor *big.Int) *CredentialValuesBuilder {
	b.attrs[name] = &AttributeValue{Value: value, BlindingFactor: blindingFactor}
	return b
}

// Finalize returns the built CredentialValues.
func (b *CredentialValuesBuilder) Finalize() *CredentialValues {
	return &CredentialValues{Attrs: b.attrs}
}

// Predicate is a single GE (>=) comparison requested against an attribute.
// PType is currently always rangeproof.GE; the field exists so the data
// model does not have to change shape if another predicate kind is added.
type Predicate struct {
	AttrName string
	PType    rangeproof.PredicateType
	Value    int64
}

// SubProofRequest describes what a single credential's sub-proof must
// reveal and prove: a set of attributes disclosed in the clear, and a set
// of GE predicates proven without revealing the underlying value.
type SubProofRequest struct {
	RevealedAttrs map[string]bool
	Predicates    []Predicate
}

// PrimaryCredentialSignature is the RSA-group half of an Issuer's CL
// signature: {m2, A, e, v} with A^e = Z / (S^v * Rctxt^m2 * Π R_i^a_i) mod n.
type PrimaryCredentialSignature struct {
	M2 *big.Int
	A  *big.Int
	E  *big.Int
	V  *big.Int
}

// CredentialSignature bundles the primary signature with the optional
// non-revocation signature.
type CredentialSignature struct {
	Primary  *PrimaryCredentialSignature
	NonRevoc *revocation.NonRevocationCredentialSignature
}

// NonrevIndex returns the credential's revocation-accumulator index, if
// this credential carries a non-revocation signature.
func (c *CredentialSignature) NonrevIndex() (uint64, bool) {
	if c.NonRevoc == nil {
		return 0, false
	}
	return c.NonRevoc.Index, true
}

// BlindedCredentialSecrets is what BlindCredentialSecrets sends to the
// Issuer in place of the plaintext blinded attributes: the aggregate
// commitment U (and, when a non-revocation key is present, its
// pairing-group twin UR), the names of the hidden attributes, and a
// Pedersen commitment per hidden attribute.
type BlindedCredentialSecrets struct {
	U                   *big.Int
	UR                  *revocation.PointG1
	HiddenAttributes    []string
	CommittedAttributes map[string]*big.Int
}

// CredentialSecretsBlindingFactors are the Prover-held secret randomizers
// used to produce BlindedCredentialSecrets, needed again later to unblind
// the Issuer's returned signature in ProcessCredentialSignature.
type CredentialSecretsBlindingFactors struct {
	VPrime  *big.Int
	VrPrime *revocation.GroupOrderElement
}

// BlindedCredentialSecretsCorrectnessProof lets the Issuer verify that
// BlindedCredentialSecrets was honestly constructed over the Prover's
// committed attributes, without learning their values.
type BlindedCredentialSecretsCorrectnessProof struct {
	C        *big.Int
	VDashCap *big.Int
	MCaps    map[string]*big.Int
	RCaps    map[string]*big.Int
}

// SignatureCorrectnessProof is the Issuer-supplied proof that the
// returned signature actually satisfies the CL equation, checked in
// ProcessCredentialSignature before the signature is trusted.
type SignatureCorrectnessProof struct {
	SE *big.Int
	C  *big.Int
}

// EqualityProof is the finalized equality sub-proof: the randomized
// signature A', the response scalars for e, v, m2 and every undisclosed
// attribute, and the disclosed attributes with their values.
type EqualityProof struct {
	RevealedAttrs map[string]*big.Int
	APrime        *big.Int
	E             *big.Int
	V             *big.Int
	M             map[string]*big.Int
	M2            *big.Int
}

// PrimaryProof is one credential's RSA-group sub-proof: the equality
// sub-proof plus one GE sub-proof per requested predicate.
type PrimaryProof struct {
	EqProof  *EqualityProof
	GEProofs []*rangeproof.Proof
}

// SubProof is one credential's contribution to a presentation: the
// primary proof and, for revocable credentials, the non-revocation proof.
type SubProof struct {
	Primary  *PrimaryProof
	NonRevoc *revocation.NonRevocProof
}

// AggregatedProof is the Fiat-Shamir glue across every sub-proof in a
// presentation: the shared challenge and the commitment transcript it
// was derived from.
type AggregatedProof struct {
	CHash *big.Int
	CList [][]byte
}

// Proof is the final output of (*ProofBuilder).Finalize: one SubProof per
// requested credential, keyed the same way the caller's AddSubProofRequest
// calls were keyed, plus the AggregatedProof binding them together.
type Proof struct {
	SubProofs  map[string]*SubProof
	Aggregated *AggregatedProof
}
