package revocation

// PublicKey is the Issuer's revocation (pairing) public key:
// { g, g_dash, h, h0, h1, h2, htilde, h_cap, u, pk, y }. GDash, HCap, U
// and Y live in G2 so the witness pairing identities type-check against
// sigma/g_i/sigma_i/omega/accum as assigned in witness.go; every other
// base lives in G1.
type PublicKey struct {
	G      *PointG1
	GDash  *PointG2
	H      *PointG1
	H0     *PointG1
	H1     *PointG1
	H2     *PointG1
	HTilde *PointG1
	HCap   *PointG2
	U      *PointG2
	PK     *PointG1
	Y      *PointG2
}

// RevocationKeyPublic is the accumulator's public verification key:
// { z: GT }.
type RevocationKeyPublic struct {
	Z *GTElement
}
