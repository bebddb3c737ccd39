package gabikeys

// Protocol-fixed bit sizes for the CL-signature Σ-protocols. These are
// distinct from, and used alongside, the key-length-dependent
// SystemParameters: SystemParameters scale with the Issuer's modulus
// size, while the constants below are the fixed Fiat-Shamir/range-proof
// bit lengths the protocol itself dictates regardless of modulus size.
const (
	// LargeMasterSecret is the bit length of a freshly generated master
	// secret / link secret.
	LargeMasterSecret uint = 256

	// LargeVPrime is the bit length of the primary blinding factor v',
	// of the signature randomizer r in the equality sub-proof, and of
	// the per-square commitment randomizers in the range sub-proof.
	LargeVPrime uint = 2128

	// LargeVPrimeTilde is the bit length of the blinding-correctness
	// proof's v~ commitment randomizer.
	LargeVPrimeTilde uint = 673

	// LargeMTilde is the bit length of a per-attribute m~/r~ randomizer
	// sampled during blinding-correctness and equality sub-proof init.
	LargeMTilde uint = 593

	// LargeMVect is the bit length used to sample m2~ when it is not
	// supplied by a non-revocation sub-proof init.
	LargeMVect uint = 592

	// LargeETilde is the bit length of the equality sub-proof's e~
	// randomizer.
	LargeETilde uint = 456

	// LargeVTilde is the bit length of the equality sub-proof's v~
	// randomizer.
	LargeVTilde uint = 3060

	// LargeEStart is the low end of the exponent e's sampling range:
	// e ∈ [2^LargeEStart, 2^LargeEStart+2^LargeE).
	LargeEStart uint = 596

	// LargeE is the width of e's sampling range above LargeEStart.
	LargeE uint = 119

	// LargeUTilde is the bit length of a range sub-proof's u~ randomizer.
	LargeUTilde uint = 592

	// LargeRTilde is the bit length of a range sub-proof's r~ randomizer.
	LargeRTilde uint = 672

	// LargeAlphaTilde is the bit length of a range sub-proof's α~
	// randomizer.
	LargeAlphaTilde uint = 2787

	// LargeNonce is the bit length of a Fiat-Shamir nonce/challenge.
	LargeNonce uint = 80

	// Iteration is the fixed number of squares in a four-square
	// decomposition (Lagrange's four-square theorem: every non-negative
	// integer is the sum of at most four squares).
	Iteration = 4
)
