package clprover

import (
	"math/big"

	"github.com/credentialkit/clprover/gabikeys"
)

// NewMasterSecret samples a fresh master secret of the protocol-mandated
// bit length.
func NewMasterSecret() (*MasterSecret, error) {
	Logger.Trace("clprover: generating master secret")
	ms, err := randomBigIntBits(gabikeys.LargeMasterSecret)
	if err != nil {
		return nil, wrapInvalidStructure("generating master secret", err)
	}
	return &MasterSecret{MS: ms}, nil
}

// NewBlindingFactor samples a fresh Pedersen blinding factor for an
// attribute that is to be hidden from the Issuer during issuance.
func NewBlindingFactor() (*big.Int, error) {
	bf, err := randomBigIntBits(gabikeys.LargeMasterSecret)
	if err != nil {
		return nil, wrapInvalidStructure("generating blinding factor", err)
	}
	return bf, nil
}
