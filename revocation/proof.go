package revocation

// NonRevocProofXList is the scalar vector of the non-revocation
// Σ-protocol. The commit phase fills it with the seven fresh blinders
// (rho, r, r', r'', r''', o, o'), the four derived cross-terms
// (m = rho*c, m' = r*r'', t = o*c, t' = o'*r'') and the credential's own
// secrets (m2, s = vr'', c); the respond phase reuses the same shape for
// the challenge responses.
type NonRevocProofXList struct {
	Rho              *GroupOrderElement
	R                *GroupOrderElement
	RPrime           *GroupOrderElement
	RPrimePrime      *GroupOrderElement
	RPrimePrimePrime *GroupOrderElement
	O                *GroupOrderElement
	OPrime           *GroupOrderElement
	M                *GroupOrderElement
	MPrime           *GroupOrderElement
	T                *GroupOrderElement
	TPrime           *GroupOrderElement
	M2               *GroupOrderElement
	S                *GroupOrderElement
	C                *GroupOrderElement
}

// AsList flattens the vector into its fixed canonical order. Responses
// are computed slot-wise against this order, so it must match between
// the c-list params and the tau-list params.
func (x *NonRevocProofXList) AsList() []*GroupOrderElement {
	return []*GroupOrderElement{
		x.Rho, x.O, x.C, x.OPrime, x.M, x.MPrime, x.T, x.TPrime,
		x.M2, x.S, x.R, x.RPrime, x.RPrimePrime, x.RPrimePrimePrime,
	}
}

// xListFromList is the inverse of AsList.
func xListFromList(l []*GroupOrderElement) *NonRevocProofXList {
	return &NonRevocProofXList{
		Rho: l[0], O: l[1], C: l[2], OPrime: l[3], M: l[4], MPrime: l[5],
		T: l[6], TPrime: l[7], M2: l[8], S: l[9], R: l[10], RPrime: l[11],
		RPrimePrime: l[12], RPrimePrimePrime: l[13],
	}
}

// genCListParams samples the seven blinders and derives the cross-terms
// and credential secrets for the commit phase.
func genCListParams(sig *NonRevocationCredentialSignature) (*NonRevocProofXList, error) {
	fresh := make([]*GroupOrderElement, 7)
	for i := range fresh {
		v, err := NewRandomGroupOrderElement()
		if err != nil {
			return nil, err
		}
		fresh[i] = v
	}
	rho, r, rPrime, rPrimePrime, rPrimePrimePrime, o, oPrime :=
		fresh[0], fresh[1], fresh[2], fresh[3], fresh[4], fresh[5], fresh[6]

	return &NonRevocProofXList{
		Rho:              rho,
		R:                r,
		RPrime:           rPrime,
		RPrimePrime:      rPrimePrime,
		RPrimePrimePrime: rPrimePrimePrime,
		O:                o,
		OPrime:           oPrime,
		M:                rho.MulMod(sig.C),
		MPrime:           r.MulMod(rPrimePrime),
		T:                o.MulMod(sig.C),
		TPrime:           oPrime.MulMod(rPrimePrime),
		M2:               GroupOrderElementFromBytes(sig.M2.Bytes()),
		S:                sig.VRPrimePrime,
		C:                sig.C,
	}, nil
}

// genTauListParams samples a fresh, fully independent randomizer for
// every slot of the vector.
func genTauListParams() (*NonRevocProofXList, error) {
	l := make([]*GroupOrderElement, 14)
	for i := range l {
		v, err := NewRandomGroupOrderElement()
		if err != nil {
			return nil, err
		}
		l[i] = v
	}
	return xListFromList(l), nil
}

// NonRevocProofCList is the commitment list {E, D, A, G, W, S, U}: the
// credential's sigma/g_i and the witness's omega/sigma_i/u_i blinded by
// the c-list params against the revocation public key's bases.
type NonRevocProofCList struct {
	E *PointG1
	D *PointG1
	A *PointG1
	G *PointG1
	W *PointG2
	S *PointG2
	U *PointG2
}

// AsCList returns the commitment bytes in transcript order.
func (cl *NonRevocProofCList) AsCList() [][]byte {
	return [][]byte{
		cl.E.Bytes(), cl.D.Bytes(), cl.A.Bytes(), cl.G.Bytes(),
		cl.W.Bytes(), cl.S.Bytes(), cl.U.Bytes(),
	}
}

// createCListValues blinds the credential and witness elements with the
// c-list params.
func createCListValues(sig *NonRevocationCredentialSignature, params *NonRevocProofXList, pub *PublicKey, w *Witness) *NonRevocProofCList {
	return &NonRevocProofCList{
		E: pub.H.Mul(params.Rho).Add(pub.HTilde.Mul(params.O)),
		D: pub.G.Mul(params.R).Add(pub.HTilde.Mul(params.OPrime)),
		A: sig.Sigma.Add(pub.HTilde.Mul(params.Rho)),
		G: sig.GI.Add(pub.HTilde.Mul(params.R)),
		W: w.Omega.Add(pub.HCap.Mul(params.RPrime)),
		S: sig.WitnessSignature.SigmaI.Add(pub.HCap.Mul(params.RPrimePrime)),
		U: sig.WitnessSignature.UI.Add(pub.HCap.Mul(params.RPrimePrimePrime)),
	}
}

// NonRevocProofTauList is the blinded-commitment list of the Σ-protocol:
// the verifier recomputes the same eight values from the responses and
// the challenge, so their composition fixes the proven relations.
type NonRevocProofTauList struct {
	T1 *PointG1
	T2 *PointG1
	T3 *GTElement
	T4 *GTElement
	T5 *PointG1
	T6 *PointG1
	T7 *GTElement
	T8 *GTElement
}

// AsTauList returns the blinded-commitment bytes in transcript order.
func (tl *NonRevocProofTauList) AsTauList() [][]byte {
	return [][]byte{
		tl.T1.Bytes(), tl.T2.Bytes(), tl.T3.Bytes(), tl.T4.Bytes(),
		tl.T5.Bytes(), tl.T6.Bytes(), tl.T7.Bytes(), tl.T8.Bytes(),
	}
}

// CreateTauListValues computes the eight blinded commitments from a
// params vector and the commit-phase c-list. It is shared with the
// verifier's mirror computation: called with the tau-list params it
// yields the prover's tau list, called with the response vector it
// yields the values the verifier compares against.
func CreateTauListValues(pub *PublicKey, accum *Accumulator, params *NonRevocProofXList, c *NonRevocProofCList) *NonRevocProofTauList {
	t1 := pub.H.Mul(params.Rho).Add(pub.HTilde.Mul(params.O))
	t2 := c.E.Mul(params.C).
		Add(pub.H.Mul(params.M.Neg())).
		Add(pub.HTilde.Mul(params.T.Neg()))

	t3 := Pair(c.A, pub.HCap).Exp(params.C).
		Mul(Pair(pub.HTilde, pub.HCap).Exp(params.R)).
		Mul(Pair(pub.HTilde, pub.Y).Exp(params.Rho).
			Mul(Pair(pub.HTilde, pub.HCap).Exp(params.M)).
			Mul(Pair(pub.H1, pub.HCap).Exp(params.M2)).
			Mul(Pair(pub.H2, pub.HCap).Exp(params.S)).
			Inverse())

	t4 := Pair(pub.HTilde, accum.Value).Exp(params.R).
		Mul(Pair(pub.G.Neg(), pub.HCap).Exp(params.RPrime))

	t5 := pub.G.Mul(params.R).Add(pub.HTilde.Mul(params.OPrime))
	t6 := c.D.Mul(params.RPrimePrime).
		Add(pub.G.Mul(params.MPrime.Neg())).
		Add(pub.HTilde.Mul(params.TPrime.Neg()))

	t7 := Pair(pub.PK.Add(c.G), pub.HCap).Exp(params.RPrimePrime).
		Mul(Pair(pub.HTilde, pub.HCap).Exp(params.MPrime.Neg())).
		Mul(Pair(pub.HTilde, c.S).Exp(params.R))

	t8 := Pair(pub.HTilde, pub.U).Exp(params.R).
		Mul(Pair(pub.G.Neg(), pub.HCap).Exp(params.RPrimePrimePrime))

	return &NonRevocProofTauList{T1: t1, T2: t2, T3: t3, T4: t4, T5: t5, T6: t6, T7: t7, T8: t8}
}

// NonRevocInitProof bundles the two randomizer vectors, the commitment
// list and the tau list produced by Commit, awaiting the Fiat-Shamir
// challenge.
type NonRevocInitProof struct {
	CListParams   *NonRevocProofXList
	TauListParams *NonRevocProofXList
	CList         *NonRevocProofCList
	TauList       *NonRevocProofTauList
}

// AsCList returns the commitment bytes for the aggregated transcript.
func (ip *NonRevocInitProof) AsCList() [][]byte { return ip.CList.AsCList() }

// AsTauList returns the blinded-commitment bytes for the aggregated
// transcript.
func (ip *NonRevocInitProof) AsTauList() [][]byte { return ip.TauList.AsTauList() }

// NonRevocProof is the finalized sub-proof: the commitment list plus the
// slot-wise challenge responses.
type NonRevocProof struct {
	XList *NonRevocProofXList
	CList *NonRevocProofCList
}

// Commit runs the commit phase of the non-revocation Σ-protocol: blind
// the credential and witness elements with fresh randomizers, then build
// the tau list from a second, independent randomizer vector.
func Commit(sig *NonRevocationCredentialSignature, pub *PublicKey, accum *Accumulator, w *Witness) (*NonRevocInitProof, error) {
	cParams, err := genCListParams(sig)
	if err != nil {
		return nil, err
	}
	cList := createCListValues(sig, cParams, pub, w)

	tauParams, err := genTauListParams()
	if err != nil {
		return nil, err
	}
	tauList := CreateTauListValues(pub, accum, tauParams, cList)

	return &NonRevocInitProof{
		CListParams:   cParams,
		TauListParams: tauParams,
		CList:         cList,
		TauList:       tauList,
	}, nil
}

// Finalize consumes the Fiat-Shamir challenge and produces the slot-wise
// responses x_i = tau_i - ch*c_i mod q.
func (ip *NonRevocInitProof) Finalize(challenge *GroupOrderElement) *NonRevocProof {
	tau := ip.TauListParams.AsList()
	c := ip.CListParams.AsList()

	responses := make([]*GroupOrderElement, len(tau))
	for i := range tau {
		responses[i] = tau[i].Sub(challenge.MulMod(c[i]))
	}

	return &NonRevocProof{XList: xListFromList(responses), CList: ip.CList}
}
