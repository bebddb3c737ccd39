// Copyright 2016 Maarten Everts. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gabikeys

import (
	"crypto/rand"
	"math/big"
)

var bigONE = big.NewInt(1)
var bigTWO = big.NewInt(2)

// PrivateKey represents an issuer's primary (RSA) private key. The Prover
// never signs with it; this module keeps it only so tests can manufacture
// an Issuer key pair to blind and sign credentials against.
type PrivateKey struct {
	P      *big.Int
	Q      *big.Int
	PPrime *big.Int
	QPrime *big.Int
	// Order is the order of the group used for inverting e when signing;
	// equal to PPrime*QPrime.
	Order *big.Int
}

// NewPrivateKey derives an issuer private key from the given safe primes.
func NewPrivateKey(p, q *big.Int) *PrivateKey {
	sk := &PrivateKey{P: p, Q: q, PPrime: new(big.Int), QPrime: new(big.Int)}
	sk.PPrime.Sub(p, bigONE)
	sk.PPrime.Rsh(sk.PPrime, 1)
	sk.QPrime.Sub(q, bigONE)
	sk.QPrime.Rsh(sk.QPrime, 1)
	sk.Order = new(big.Int).Mul(sk.PPrime, sk.QPrime)
	return sk
}

// PublicKey represents an issuer's primary (RSA) public key: the CL
// signature bases n, s, z, rctxt and one r base per attribute name.
type PublicKey struct {
	N      *big.Int
	Z      *big.Int
	S      *big.Int
	Rctxt  *big.Int
	R      map[string]*big.Int
	Params *SystemParameters
}

// NewPublicKey wraps the given bases into a PublicKey.
func NewPublicKey(n, z, s, rctxt *big.Int, r map[string]*big.Int, params *SystemParameters) *PublicKey {
	return &PublicKey{N: n, Z: z, S: s, Rctxt: rctxt, R: r, Params: params}
}

// randomSafePrime produces a safe prime of the requested bit length:
// p such that (p-1)/2 is also prime.
func randomSafePrime(bits int) (*big.Int, error) {
	p2 := new(big.Int)
	for {
		p, err := rand.Prime(rand.Reader, bits)
		if err != nil {
			return nil, err
		}
		p2.Rsh(p, 1)
		if p2.ProbablyPrime(20) {
			return p, nil
		}
	}
}

func randomBigInt(bits uint) (*big.Int, error) {
	buf := make([]byte, (bits+7)/8)
	if _, err := rand.Read(buf); err != nil {
		return nil, err
	}
	return new(big.Int).SetBytes(buf), nil
}

func legendreSymbol(a, p *big.Int) int {
	if a.Sign() == 0 {
		return 0
	}
	exp := new(big.Int).Sub(p, bigONE)
	exp.Rsh(exp, 1)
	r := new(big.Int).Exp(a, exp, p)
	if r.Cmp(bigONE) == 0 {
		return 1
	}
	return -1
}

// GenerateKeyPair generates a private/public primary keypair for an Issuer
// over the given attribute names, for use as a test fixture.
func GenerateKeyPair(param *SystemParameters, attrNames []string) (*PrivateKey, *PublicKey, error) {
	priv, pubk, _, err := GenerateKeyPairWithCorrectnessProof(param, attrNames)
	return priv, pubk, err
}

// GenerateKeyPairWithCorrectnessProof is GenerateKeyPair plus the honest
// KeyCorrectnessProof over Z and every R[name], for fixtures that need to
// exercise BlindCredentialSecrets' key-correctness check end to end.
func GenerateKeyPairWithCorrectnessProof(param *SystemParameters, attrNames []string) (*PrivateKey, *PublicKey, *KeyCorrectnessProof, error) {
	primeSize := param.Ln / 2

	p, err := randomSafePrime(int(primeSize))
	if err != nil {
		return nil, nil, nil, err
	}
	q, err := randomSafePrime(int(primeSize))
	if err != nil {
		return nil, nil, nil, err
	}
	priv := NewPrivateKey(p, q)

	pubk := &PublicKey{Params: param}
	pubk.N = new(big.Int).Mul(priv.P, priv.Q)

	var s *big.Int
	for {
		s, err = randomBigInt(param.Ln)
		if err != nil {
			return nil, nil, nil, err
		}
		if s.Cmp(pubk.N) > 0 {
			continue
		}
		if legendreSymbol(s, priv.P) == 1 && legendreSymbol(s, priv.Q) == 1 {
			break
		}
	}
	pubk.S = s

	randomExponent := func() (*big.Int, error) {
		for {
			x, err := randomBigInt(primeSize)
			if err != nil {
				return nil, err
			}
			if x.Cmp(bigTWO) > 0 && x.Cmp(pubk.N) < 0 {
				return x, nil
			}
		}
	}

	xz, err := randomExponent()
	if err != nil {
		return nil, nil, nil, err
	}
	pubk.Z = new(big.Int).Exp(pubk.S, xz, pubk.N)

	xrctxt, err := randomExponent()
	if err != nil {
		return nil, nil, nil, err
	}
	pubk.Rctxt = new(big.Int).Exp(pubk.S, xrctxt, pubk.N)

	pubk.R = make(map[string]*big.Int, len(attrNames))
	xr := make(map[string]*big.Int, len(attrNames))
	for _, name := range attrNames {
		x, err := randomExponent()
		if err != nil {
			return nil, nil, nil, err
		}
		xr[name] = x
		pubk.R[name] = new(big.Int).Exp(pubk.S, x, pubk.N)
	}

	proof, err := newKeyCorrectnessProof(pubk, xz, xr)
	if err != nil {
		return nil, nil, nil, err
	}

	return priv, pubk, proof, nil
}
