// Copyright 2016 Maarten Everts. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gabikeys

import (
	"sort"
)

// SystemParameters holds the key-length-dependent parameters of an
// Issuer key pair. The Σ-protocol bit lengths themselves are fixed by
// the protocol (see constants.go) and do not scale with the modulus, so
// the only parameter a key carries is the modulus size.
type SystemParameters struct {
	// Ln is the bit length of the RSA modulus n.
	Ln uint
}

var (
	// DefaultSystemParameters holds per keylength the default parameters
	// as are currently in use at the moment. This might (and probably
	// will) change in the future.
	DefaultSystemParameters = map[int]*SystemParameters{
		1024: {Ln: 1024},
		2048: {Ln: 2048},
		4096: {Ln: 4096},
	}

	// DefaultKeyLengths is a slice of integers holding the keylengths for
	// which system parameters are available.
	DefaultKeyLengths = getAvailableKeyLengths(DefaultSystemParameters)
)

// getAvailableKeyLengths returns the keylengths for the provided map of
// system parameters.
func getAvailableKeyLengths(sysParamsMap map[int]*SystemParameters) []int {
	lengths := make([]int, 0, len(sysParamsMap))
	for k := range sysParamsMap {
		lengths = append(lengths, k)
	}
	sort.Ints(lengths)
	return lengths
}
