package gabikeys

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// smallTestParams trades real-world security margins for fast safe-prime
// generation in tests; production Issuer keys use DefaultSystemParameters.
var smallTestParams = &SystemParameters{Ln: 256}

func TestGenerateKeyPairWithCorrectnessProofVerifies(t *testing.T) {
	_, pk, proof, err := GenerateKeyPairWithCorrectnessProof(smallTestParams, []string{"master_secret", "age"})
	require.NoError(t, err)
	require.NoError(t, CheckKeyCorrectnessProof(pk, proof))
}

func TestCheckKeyCorrectnessProofRejectsTamperedKey(t *testing.T) {
	_, pk, proof, err := GenerateKeyPairWithCorrectnessProof(smallTestParams, []string{"master_secret"})
	require.NoError(t, err)

	pk.Z.Add(pk.Z, bigONE)
	require.Error(t, CheckKeyCorrectnessProof(pk, proof))
}

func TestCheckKeyCorrectnessProofRejectsMissingAttrResponse(t *testing.T) {
	_, pk, proof, err := GenerateKeyPairWithCorrectnessProof(smallTestParams, []string{"master_secret", "age"})
	require.NoError(t, err)

	delete(proof.XRCap, "age")
	require.Error(t, CheckKeyCorrectnessProof(pk, proof))
}
