package clprover

import (
	"math/big"
	"sort"

	"github.com/credentialkit/clprover/gabikeys"
	"github.com/credentialkit/clprover/internal/common"
	"github.com/credentialkit/clprover/rangeproof"
	"github.com/credentialkit/clprover/revocation"
)

// InitProof is the per-credential state recorded by AddSubProofRequest:
// the commit-phase material of the equality, range and (optionally)
// non-revocation sub-proofs, plus clones of the inputs Finalize needs to
// compute the responses.
type InitProof struct {
	eqInit   *EqualityInitProof
	geInits  []*rangeproof.InitProof
	nrInit   *revocation.NonRevocInitProof
	schema   *CredentialSchema
	values   *CredentialValues
	request  *SubProofRequest
	revealed map[string]bool
}

// ProofBuilder accumulates sub-proof requests across credentials and, on
// Finalize, binds them all under a single Fiat-Shamir challenge. The
// commitment transcript (c_list/tau_list) grows in the order requests
// are added; that order is part of the protocol, since the verifier
// replays it. A builder is single-use: construct, add requests, finalize
// once.
type ProofBuilder struct {
	initProofs map[string]*InitProof
	cList      [][]byte
	tauList    [][]byte
	strict     bool
}

// NewProofBuilder returns a builder that silently overwrites the stored
// init proof when a key_id is reused in AddSubProofRequest.
func NewProofBuilder() *ProofBuilder {
	return &ProofBuilder{initProofs: make(map[string]*InitProof)}
}

// NewProofBuilderStrict returns a builder that rejects a duplicate
// key_id with an error instead of silently overwriting.
func NewProofBuilderStrict() *ProofBuilder {
	return &ProofBuilder{initProofs: make(map[string]*InitProof), strict: true}
}

// AddSubProofRequest registers one credential's disclosure/predicate
// request under keyID and runs the commit phase of its sub-proofs. When
// the credential is revocable and accum and witness are supplied, the
// non-revocation sub-proof is initialized first and its m2 randomizer is
// threaded into the equality sub-proof, so both bind the same m2. On
// error the builder is left unchanged.
func (b *ProofBuilder) AddSubProofRequest(
	keyID string,
	request *SubProofRequest,
	schema *CredentialSchema,
	sig *CredentialSignature,
	values *CredentialValues,
	pk *gabikeys.PublicKey,
	revPub *revocation.PublicKey,
	accum *revocation.Accumulator,
	witness *revocation.Witness,
) error {
	Logger.Trace("clprover: adding sub-proof request ", keyID)

	if _, exists := b.initProofs[keyID]; exists && b.strict {
		return newInvalidStructure("duplicate key_id in proof builder: " + keyID)
	}
	if err := checkSubProofRequestConsistency(values, request, schema); err != nil {
		return err
	}

	cList := make([][]byte, 0)
	tauList := make([][]byte, 0)

	var nrInit *revocation.NonRevocInitProof
	var m2Tilde *big.Int
	if sig.NonRevoc != nil && accum != nil && revPub != nil && witness != nil {
		var err error
		nrInit, err = revocation.Commit(sig.NonRevoc, revPub, accum, witness)
		if err != nil {
			return wrapInvalidStructure("initializing non-revocation sub-proof for "+keyID, err)
		}
		cList = append(cList, nrInit.AsCList()...)
		tauList = append(tauList, nrInit.AsTauList()...)
		m2Tilde = nrInit.TauListParams.M2.ToBignum()
	}

	revealed := make(map[string]bool, len(request.RevealedAttrs))
	for name, ok := range request.RevealedAttrs {
		if ok {
			revealed[name] = true
		}
	}

	mTildes := make(map[string]*big.Int)
	eqInit, err := InitEqualityProof(pk, sig.Primary, schema, revealed, mTildes, m2Tilde)
	if err != nil {
		return err
	}

	geInits := make([]*rangeproof.InitProof, 0, len(request.Predicates))
	for _, p := range request.Predicates {
		mTilde, ok := mTildes[p.AttrName]
		if !ok {
			return newInvalidStructure("predicate attribute " + p.AttrName + " is revealed, so no range proof can hide it")
		}
		stmt := rangeproof.Statement{AttrName: p.AttrName, Value: p.Value}
		geInit, err := rangeproof.InitGEProof(pk, values.Attrs[p.AttrName].Value, stmt, mTilde)
		if err != nil {
			if rangeproof.IsPredicateNotSatisfied(err) {
				return newInvalidStructure("Predicate is not satisfied")
			}
			return wrapInvalidStructure("initializing range sub-proof for "+keyID+"."+p.AttrName, err)
		}
		geInits = append(geInits, geInit)
	}

	cList = append(cList, eqInit.APrime.Bytes())
	tauList = append(tauList, eqInit.T.Bytes())
	for _, geInit := range geInits {
		cList = append(cList, geInit.CList()...)
		tauList = append(tauList, geInit.TauList()...)
	}

	b.cList = append(b.cList, cList...)
	b.tauList = append(b.tauList, tauList...)
	b.initProofs[keyID] = &InitProof{
		eqInit:   eqInit,
		geInits:  geInits,
		nrInit:   nrInit,
		schema:   schema,
		values:   values,
		request:  request,
		revealed: revealed,
	}
	return nil
}

// checkSubProofRequestConsistency verifies that the credential values
// cover exactly the schema's attributes and that every revealed and
// predicate attribute is part of the schema.
func checkSubProofRequestConsistency(values *CredentialValues, request *SubProofRequest, schema *CredentialSchema) error {
	if len(schema.AttrNames) != len(values.Attrs) {
		return newInvalidStructure("credential doesn't correspond to credential schema")
	}
	schemaAttrs := make(map[string]bool, len(schema.AttrNames))
	for _, name := range schema.AttrNames {
		if _, ok := values.Attrs[name]; !ok {
			return newInvalidStructure("credential doesn't correspond to credential schema")
		}
		schemaAttrs[name] = true
	}
	for name := range request.RevealedAttrs {
		if !schemaAttrs[name] {
			return newInvalidStructure("credential doesn't contain requested attribute " + name)
		}
	}
	for _, p := range request.Predicates {
		if !schemaAttrs[p.AttrName] {
			return newInvalidStructure("credential doesn't contain attribute requested in predicate: " + p.AttrName)
		}
	}
	return nil
}

// Finalize derives the aggregated Fiat-Shamir challenge over the
// accumulated tau_list, c_list and the verifier's nonce, then runs the
// respond phase of every registered sub-proof.
func (b *ProofBuilder) Finalize(nonce *big.Int) (*Proof, error) {
	Logger.Trace("clprover: finalizing proof")

	parts := make([][]byte, 0, len(b.tauList)+len(b.cList)+1)
	parts = append(parts, b.tauList...)
	parts = append(parts, b.cList...)
	parts = append(parts, nonce.Bytes())
	challenge := common.HashInt(gabikeys.LargeNonce, parts...)

	keyIDs := make([]string, 0, len(b.initProofs))
	for keyID := range b.initProofs {
		keyIDs = append(keyIDs, keyID)
	}
	sort.Strings(keyIDs)

	subProofs := make(map[string]*SubProof, len(keyIDs))
	for _, keyID := range keyIDs {
		init := b.initProofs[keyID]

		var nrProof *revocation.NonRevocProof
		if init.nrInit != nil {
			nrProof = init.nrInit.Finalize(revocation.GroupOrderElementFromBig(challenge))
		}

		eqProof, err := init.eqInit.FinalizeEqualityProof(challenge, init.schema, init.values, init.revealed)
		if err != nil {
			return nil, err
		}

		geProofs := make([]*rangeproof.Proof, 0, len(init.geInits))
		for _, geInit := range init.geInits {
			mj, ok := eqProof.M[geInit.Statement.AttrName]
			if !ok {
				return nil, newInvalidStructure("value by key '" + geInit.Statement.AttrName + "' not found in eq_proof.m")
			}
			geProofs = append(geProofs, geInit.FinalizeGEProof(challenge, mj))
		}

		subProofs[keyID] = &SubProof{
			Primary:  &PrimaryProof{EqProof: eqProof, GEProofs: geProofs},
			NonRevoc: nrProof,
		}
	}

	return &Proof{
		SubProofs:  subProofs,
		Aggregated: &AggregatedProof{CHash: challenge, CList: b.cList},
	}, nil
}
