// Package rangeproof implements the GE (≥) range sub-proof of a credential
// attribute against a public bound, built on Lagrange's four-square
// theorem: every non-negative integer delta can be written as
// u0²+u1²+u2²+u3², which lets the Σ-protocol commit to delta without
// revealing it while still proving delta ≥ 0.
package rangeproof

import (
	"math/big"

	"github.com/credentialkit/clprover/bignum"
	"github.com/credentialkit/clprover/keyproof"
)

var (
	zero = big.NewInt(0)
	one  = big.NewInt(1)
	two  = big.NewInt(2)
	four = big.NewInt(4)
)

// maxAttempts bounds the randomized search for a prime remainder in
// FourSquares; it is generous enough that exhausting it indicates a
// programmer error rather than bad luck.
const maxAttempts = 10000

// FourSquares decomposes a non-negative delta into four squares
// u0²+u1²+u2²+u3² = delta, the decomposition the GE sub-proof commits to
// in place of delta itself. It uses the standard randomized reduction:
// strip factors of 4 (scaling the result back up at the end), then search
// for a such that delta-a² is prime and congruent to 1 mod 4 (or equal to
// 2), which Fermat's two-square theorem guarantees is a sum of two
// squares, recovered here via Cornacchia's algorithm on the Gaussian
// integers.
func FourSquares(delta *big.Int) (u0, u1, u2, u3 *big.Int, err error) {
	if delta.Sign() < 0 {
		return nil, nil, nil, nil, errNegativeDelta{delta: delta}
	}
	if delta.Sign() == 0 {
		return big.NewInt(0), big.NewInt(0), big.NewInt(0), big.NewInt(0), nil
	}

	keyproof.Follower.StepStart("four-square decomposition", maxAttempts)
	defer keyproof.Follower.StepDone()

	n := new(big.Int).Set(delta)
	scale := big.NewInt(1)
	for new(big.Int).Mod(n, four).Sign() == 0 {
		n.Div(n, four)
		scale.Mul(scale, two)
	}

	// n mod 8 == 7 is not a sum of three squares (Legendre); peel off one
	// unit square so the remainder (n-1) mod 8 != 7 and the main search
	// below only ever needs two squares for the rest.
	var lead *big.Int
	m := new(big.Int).Set(n)
	mod8 := new(big.Int).Mod(n, big.NewInt(8))
	if mod8.Cmp(big.NewInt(7)) == 0 {
		lead = big.NewInt(1)
		m.Sub(m, one)
	} else {
		lead = big.NewInt(0)
	}

	sqrtM := new(big.Int).Sqrt(m)

	for attempt := 0; attempt < maxAttempts; attempt++ {
		keyproof.Follower.Tick()

		a, err := randBigIntUpTo(sqrtM)
		if err != nil {
			return nil, nil, nil, nil, err
		}
		r := new(big.Int).Sub(m, new(big.Int).Mul(a, a))
		if r.Sign() < 0 {
			continue
		}
		if r.Sign() == 0 {
			return scaleAll(scale, lead, a, zero, zero)
		}
		if r.Cmp(two) == 0 {
			return scaleAll(scale, lead, a, one, one)
		}
		if !r.ProbablyPrime(20) {
			continue
		}
		if new(big.Int).Mod(r, four).Cmp(one) != 0 {
			continue
		}
		b, c, ok := cornacchia(r)
		if !ok {
			continue
		}
		return scaleAll(scale, lead, a, b, c)
	}

	return nil, nil, nil, nil, errSearchExhausted{delta: delta}
}

// scaleAll assembles the final (u0,u1,u2,u3) from the lead unit square,
// the two-square decomposition (a,b,c) of the reduced remainder, and
// rescales by the factors-of-4 removed up front (delta=4^k*n =>
// (2^k*x)² for every x in n's decomposition).
func scaleAll(scale, lead, a, b, c *big.Int) (*big.Int, *big.Int, *big.Int, *big.Int, error) {
	mul := func(x *big.Int) *big.Int { return new(big.Int).Mul(scale, x) }
	return mul(lead), mul(a), mul(b), mul(c), nil
}

// cornacchia finds x,y with x²+y² = p for a prime p ≡ 1 (mod 4), via the
// Gaussian-integer Euclidean algorithm seeded by a square root of -1 mod p
// (Tonelli-Shanks).
func cornacchia(p *big.Int) (*big.Int, *big.Int, bool) {
	r0 := sqrtNegOneModPrime(p)
	if r0 == nil {
		return nil, nil, false
	}
	r1 := new(big.Int).Set(p)
	sqrtP := new(big.Int).Sqrt(p)
	for r0.Cmp(sqrtP) > 0 {
		r1, r0 = r0, new(big.Int).Mod(r1, r0)
	}
	y := new(big.Int).Set(r0)
	x2 := new(big.Int).Sub(p, new(big.Int).Mul(y, y))
	x := new(big.Int).Sqrt(x2)
	if new(big.Int).Mul(x, x).Cmp(x2) != 0 {
		return nil, nil, false
	}
	return x, y, true
}

// sqrtNegOneModPrime finds s with s² ≡ -1 (mod p) for a prime p ≡ 1 (mod 4),
// by sampling a random base and raising it to (p-1)/4; the result squares
// to the Legendre symbol of the base, so half of all bases succeed.
func sqrtNegOneModPrime(p *big.Int) *big.Int {
	exp := new(big.Int).Div(new(big.Int).Sub(p, one), four)
	for attempt := 0; attempt < 256; attempt++ {
		g, err := randBigIntUpTo(new(big.Int).Sub(p, two))
		if err != nil {
			return nil
		}
		g.Add(g, one)
		s := new(big.Int).Exp(g, exp, p)
		check := new(big.Int).Exp(s, two, p)
		if new(big.Int).Mod(new(big.Int).Add(check, one), p).Sign() == 0 {
			return s
		}
	}
	return nil
}

// randBigIntUpTo samples uniformly from [0, max] using the package-wide
// randomness source, so a deterministic source fixes the decomposition
// as well.
func randBigIntUpTo(max *big.Int) (*big.Int, error) {
	if max.Sign() <= 0 {
		return big.NewInt(0), nil
	}
	bits := uint(max.BitLen())
	for {
		n, err := bignum.RandomBigInt(bits)
		if err != nil {
			return nil, err
		}
		if n.Cmp(max) <= 0 {
			return n, nil
		}
	}
}

type errNegativeDelta struct{ delta *big.Int }

func (e errNegativeDelta) Error() string {
	return "rangeproof: delta " + e.delta.String() + " is negative, not a sum of four squares"
}

type errSearchExhausted struct{ delta *big.Int }

func (e errSearchExhausted) Error() string {
	return "rangeproof: four-square search exhausted its attempt budget for delta " + e.delta.String()
}
