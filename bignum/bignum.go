// Copyright 2016 Maarten Everts. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package bignum wraps math/big with the small arithmetic surface the
// credential protocol needs beyond what the standard library spells
// conveniently: modular division, primality at a fixed confidence level,
// minimal unsigned big-endian encoding, and a swappable randomness
// source. Scratch state is handled by math/big internally, so operations
// take no explicit context handle and release their temporaries on every
// return path via the garbage collector.
package bignum

import "math/big"

// ModMul returns a*b mod n.
func ModMul(a, b, n *big.Int) *big.Int {
	r := new(big.Int).Mul(a, b)
	return r.Mod(r, n)
}

// ModInverse returns a^-1 mod n. ok is false if a has no inverse mod n.
func ModInverse(a, n *big.Int) (inv *big.Int, ok bool) {
	inv = new(big.Int).ModInverse(a, n)
	return inv, inv != nil
}

// ModDiv returns a * b^-1 mod n. ok is false if b has no inverse mod n.
func ModDiv(a, b, n *big.Int) (q *big.Int, ok bool) {
	inv, ok := ModInverse(b, n)
	if !ok {
		return nil, false
	}
	return ModMul(a, inv, n), true
}

// IsPrime reports whether n is probably prime (Baillie-PSW plus 20
// Miller-Rabin rounds).
func IsPrime(n *big.Int) bool {
	return n.ProbablyPrime(20)
}

// Bytes returns the minimal-length unsigned big-endian encoding of n,
// the encoding every Fiat-Shamir transcript in this module is built
// from.
func Bytes(n *big.Int) []byte {
	return n.Bytes()
}

// FromBytes parses b as an unsigned big-endian integer.
func FromBytes(b []byte) *big.Int {
	return new(big.Int).SetBytes(b)
}

// FromDecimalString parses s as a base-10 integer.
func FromDecimalString(s string) (*big.Int, bool) {
	return new(big.Int).SetString(s, 10)
}

// Lsh2 returns 2^k.
func Lsh2(k uint) *big.Int {
	return new(big.Int).Lsh(big.NewInt(1), k)
}
