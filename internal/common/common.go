// Copyright 2016 Maarten Everts. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package common holds the bignum-group helpers shared by the blinding
// engine, the equality sub-proof, and the range sub-proof: Pedersen
// commitments, exponentiated-generator products, and modular inverses.
package common

import (
	"math/big"
)

// BaseExp pairs a base with the exponent it is raised to, for
// GetExponentiatedGenerators.
type BaseExp struct {
	Base *big.Int
	Exp  *big.Int
}

// ModInverse returns a^-1 mod n. ok is false if a has no inverse mod n.
func ModInverse(a, n *big.Int) (*big.Int, bool) {
	inv := new(big.Int).ModInverse(a, n)
	return inv, inv != nil
}

// GetPedersenCommitment returns base1^exp1 * base2^exp2 mod n.
func GetPedersenCommitment(base1, exp1, base2, exp2, n *big.Int) *big.Int {
	left := new(big.Int).Exp(base1, exp1, n)
	right := new(big.Int).Exp(base2, exp2, n)
	return left.Mul(left, right).Mod(left, n)
}

// GetExponentiatedGenerators returns Π base_i^exp_i mod n.
func GetExponentiatedGenerators(pairs []BaseExp, n *big.Int) *big.Int {
	result := big.NewInt(1)
	for _, p := range pairs {
		term := new(big.Int).Exp(p.Base, p.Exp, n)
		result.Mul(result, term).Mod(result, n)
	}
	return result
}
