package clprover

import (
	"math/big"

	"github.com/credentialkit/clprover/bignum"
)

func randomBigIntBits(bits uint) (*big.Int, error) {
	return bignum.RandomBigInt(bits)
}
