// Package revocation implements the pairing-based non-revocation side of
// the credential protocol: bilinear-group wrappers over bls12-381, the
// accumulator witness checks, and the non-revocation Σ-protocol.
package revocation

import (
	"bytes"
	"math/big"

	"github.com/credentialkit/clprover/bignum"
	bls12381 "github.com/kilic/bls12-381"
)

var (
	g1 = bls12381.NewG1()
	g2 = bls12381.NewG2()
	gt = bls12381.NewGT()
)

// GroupOrderElement is an element of Z_q, where q is the prime order of
// the pairing groups.
type GroupOrderElement struct {
	fr bls12381.Fr
}

// NewRandomGroupOrderElement samples a random element of Z_q from the
// module-wide randomness source, so deterministic test sources fix the
// pairing-side randomness too.
func NewRandomGroupOrderElement() (*GroupOrderElement, error) {
	n, err := bignum.RandomBigInt(320)
	if err != nil {
		return nil, err
	}
	n.Mod(n, g1.Q())
	fr := new(bls12381.Fr).FromBytes(n.Bytes())
	return &GroupOrderElement{fr: *fr}, nil
}

// GroupOrderElementFromBytes parses b (big-endian) as a Z_q element,
// reducing modulo q. Reinterpreting a serialized bignum as a group-order
// element and vice versa goes through this byte encoding.
func GroupOrderElementFromBytes(b []byte) *GroupOrderElement {
	return GroupOrderElementFromBig(new(big.Int).SetBytes(b))
}

// GroupOrderElementFromBig reduces n modulo q.
func GroupOrderElementFromBig(n *big.Int) *GroupOrderElement {
	r := new(big.Int).Mod(n, g1.Q())
	fr := new(bls12381.Fr).FromBytes(r.Bytes())
	return &GroupOrderElement{fr: *fr}
}

// Bytes returns the big-endian encoding of the element.
func (g *GroupOrderElement) Bytes() []byte {
	return g.fr.ToBytes()
}

// ToBignum reinterprets the element's big-endian byte encoding as an
// unsigned bignum.
func (g *GroupOrderElement) ToBignum() *big.Int {
	return new(big.Int).SetBytes(g.Bytes())
}

// AddMod returns g+o mod q.
func (g *GroupOrderElement) AddMod(o *GroupOrderElement) *GroupOrderElement {
	r := new(bls12381.Fr)
	r.Add(&g.fr, &o.fr)
	return &GroupOrderElement{fr: *r}
}

// MulMod returns g*o mod q.
func (g *GroupOrderElement) MulMod(o *GroupOrderElement) *GroupOrderElement {
	r := new(bls12381.Fr)
	r.Mul(&g.fr, &o.fr)
	return &GroupOrderElement{fr: *r}
}

// Neg returns -g mod q.
func (g *GroupOrderElement) Neg() *GroupOrderElement {
	r := new(bls12381.Fr)
	r.Neg(&g.fr)
	return &GroupOrderElement{fr: *r}
}

// Sub returns g-o mod q.
func (g *GroupOrderElement) Sub(o *GroupOrderElement) *GroupOrderElement {
	return g.AddMod(o.Neg())
}

// Inverse returns g^-1 mod q.
func (g *GroupOrderElement) Inverse() *GroupOrderElement {
	r := new(bls12381.Fr)
	r.Inverse(&g.fr)
	return &GroupOrderElement{fr: *r}
}

func (g *GroupOrderElement) frPtr() *bls12381.Fr { return &g.fr }

// PointG1 is an element of the additive group G1.
type PointG1 struct {
	p *bls12381.PointG1
}

// G1Generator returns the fixed generator of G1.
func G1Generator() *PointG1 { return &PointG1{p: g1.One()} }

// Add returns g+o.
func (g *PointG1) Add(o *PointG1) *PointG1 {
	r := &bls12381.PointG1{}
	g1.Add(r, g.p, o.p)
	return &PointG1{p: r}
}

// Mul returns g scaled by the scalar s.
func (g *PointG1) Mul(s *GroupOrderElement) *PointG1 {
	r := &bls12381.PointG1{}
	g1.MulScalar(r, g.p, s.frPtr())
	return &PointG1{p: r}
}

// Neg returns -g.
func (g *PointG1) Neg() *PointG1 {
	r := &bls12381.PointG1{}
	g1.Neg(r, g.p)
	return &PointG1{p: r}
}

// Bytes returns the uncompressed encoding of the point.
func (g *PointG1) Bytes() []byte { return g1.ToBytes(g.p) }

// Equal reports whether g and o denote the same point.
func (g *PointG1) Equal(o *PointG1) bool {
	return bytes.Equal(g.Bytes(), o.Bytes())
}

// PointG2 is an element of the additive group G2.
type PointG2 struct {
	p *bls12381.PointG2
}

// G2Generator returns the fixed generator of G2.
func G2Generator() *PointG2 { return &PointG2{p: g2.One()} }

// Add returns g+o.
func (g *PointG2) Add(o *PointG2) *PointG2 {
	r := &bls12381.PointG2{}
	g2.Add(r, g.p, o.p)
	return &PointG2{p: r}
}

// Mul returns g scaled by the scalar s.
func (g *PointG2) Mul(s *GroupOrderElement) *PointG2 {
	r := &bls12381.PointG2{}
	g2.MulScalar(r, g.p, s.frPtr())
	return &PointG2{p: r}
}

// Neg returns -g.
func (g *PointG2) Neg() *PointG2 {
	r := &bls12381.PointG2{}
	g2.Neg(r, g.p)
	return &PointG2{p: r}
}

// Bytes returns the uncompressed encoding of the point.
func (g *PointG2) Bytes() []byte { return g2.ToBytes(g.p) }

// Equal reports whether g and o denote the same point.
func (g *PointG2) Equal(o *PointG2) bool {
	return bytes.Equal(g.Bytes(), o.Bytes())
}

// GTElement is an element of the pairing target group GT.
type GTElement struct {
	e *bls12381.E
}

// Pair computes the bilinear pairing e(a, b) ∈ GT.
func Pair(a *PointG1, b *PointG2) *GTElement {
	engine := bls12381.NewEngine()
	engine.AddPair(a.p, b.p)
	return &GTElement{e: engine.Result()}
}

// Mul returns the product of g and o in GT.
func (g *GTElement) Mul(o *GTElement) *GTElement {
	r := new(bls12381.E)
	gt.Mul(r, g.e, o.e)
	return &GTElement{e: r}
}

// Exp returns g raised to the scalar s.
func (g *GTElement) Exp(s *GroupOrderElement) *GTElement {
	r := new(bls12381.E)
	gt.Exp(r, g.e, s.ToBignum())
	return &GTElement{e: r}
}

// Bytes returns the encoding of the element for the transcript.
func (g *GTElement) Bytes() []byte { return gt.ToBytes(g.e) }

// Inverse returns g^-1 in GT.
func (g *GTElement) Inverse() *GTElement {
	r := new(bls12381.E)
	gt.Inverse(r, g.e)
	return &GTElement{e: r}
}

// Equal reports whether g and o denote the same GT element.
func (g *GTElement) Equal(o *GTElement) bool {
	return bytes.Equal(gt.ToBytes(g.e), gt.ToBytes(o.e))
}
