// Copyright 2022-2026 The N42 Authors
// This file is part of the N42 library.
//
// The N42 library is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// The N42 library is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with the N42 library. If not, see <http://www.gnu.org/licenses/>.

// EIP-4844: Shard Blob Transactions - point evaluation precompile.
// Reference: https://eips.ethereum.org/EIPS/eip-4844

package precompiles

import (
	"errors"

	"github.com/cancunvm/engine/common/crypto/kzg"
	"github.com/cancunvm/engine/common/transaction"
	"github.com/cancunvm/engine/common/types"
	"github.com/cancunvm/engine/params"
)

// PointEvaluationPrecompileAddress is the address of the point evaluation precompile.
var PointEvaluationPrecompileAddress = types.HexToAddress("0x000000000000000000000000000000000000000a")

// Point evaluation input/output sizes.
const (
	// Input format: versioned_hash (32) + z (32) + y (32) + commitment (48) + proof (48) = 192 bytes
	pointEvaluationInputLength = 192

	// Output is 64 bytes: FIELD_ELEMENTS_PER_BLOB (32) + BLS_MODULUS (32)
	pointEvaluationOutputLength = 64
)

// BLS12-381 scalar field modulus.
// 0x73eda753299d7d483339d80809a1d80553bda402fffe5bfeffffffff00000001
var blsModulus = [32]byte{
	0x73, 0xed, 0xa7, 0x53, 0x29, 0x9d, 0x7d, 0x48,
	0x33, 0x39, 0xd8, 0x08, 0x09, 0xa1, 0xd8, 0x05,
	0x53, 0xbd, 0xa4, 0x02, 0xff, 0xfe, 0x5b, 0xfe,
	0xff, 0xff, 0xff, 0xff, 0x00, 0x00, 0x00, 0x01,
}

// pointEvaluationPrecompile implements the KZG point evaluation precompile
// introduced in EIP-4844.
type pointEvaluationPrecompile struct{}

// RequiredGas returns the gas required to execute the precompiled contract.
func (c *pointEvaluationPrecompile) RequiredGas(input []byte) uint64 {
	return params.BlobTxPointEvaluationPrecompileGas
}

// Run executes the point evaluation precompile.
//
// Input format (192 bytes):
//   - versioned_hash: 32 bytes - The versioned hash of the blob commitment
//   - z: 32 bytes - The evaluation point
//   - y: 32 bytes - The claimed evaluation result
//   - commitment: 48 bytes - The KZG commitment
//   - proof: 48 bytes - The KZG proof
//
// Output format (64 bytes):
//   - FIELD_ELEMENTS_PER_BLOB: 32 bytes (big-endian)
//   - BLS_MODULUS: 32 bytes (big-endian)
func (c *pointEvaluationPrecompile) Run(input []byte) ([]byte, error) {
	if len(input) != pointEvaluationInputLength {
		return nil, errBlobVerifyInputLength
	}

	var (
		versionedHash types.Hash
		z             [32]byte
		y             [32]byte
		commitment    transaction.Commitment
		proof         transaction.Proof
	)

	copy(versionedHash[:], input[0:32])
	copy(z[:], input[32:64])
	copy(y[:], input[64:96])
	copy(commitment[:], input[96:144])
	copy(proof[:], input[144:192])

	if err := verifyVersionedHash(versionedHash, commitment); err != nil {
		return nil, err
	}

	if err := kzg.VerifyProof(commitment, z, y, proof); err != nil {
		return nil, errBlobVerifyKZGProof
	}

	// Return success: FIELD_ELEMENTS_PER_BLOB || BLS_MODULUS
	output := make([]byte, pointEvaluationOutputLength)

	// FIELD_ELEMENTS_PER_BLOB = 4096 as 32-byte big-endian
	output[31] = byte(kzg.FieldElementsPerBlob & 0xff)
	output[30] = byte((kzg.FieldElementsPerBlob >> 8) & 0xff)

	// BLS_MODULUS as 32-byte big-endian
	copy(output[32:64], blsModulus[:])

	return output, nil
}

// verifyVersionedHash verifies that the versioned hash matches the commitment.
func verifyVersionedHash(versionedHash types.Hash, commitment transaction.Commitment) error {
	if versionedHash[0] != transaction.VersionedHashVersionKZG {
		return errBlobVerifyVersionHash
	}

	expected := kzg.CommitmentToVersionedHash(commitment)
	if versionedHash != expected {
		return errBlobVerifyMismatch
	}

	return nil
}

var (
	errBlobVerifyInputLength = errors.New("invalid input length for point evaluation")
	errBlobVerifyVersionHash = errors.New("invalid versioned hash version")
	errBlobVerifyMismatch    = errors.New("versioned hash mismatch")
	errBlobVerifyKZGProof    = errors.New("kzg proof verification failed")
)

// NewPointEvaluation returns the point evaluation precompile instance
// (address 0x0a, active from Cancun).
func NewPointEvaluation() PrecompiledContract {
	return &pointEvaluationPrecompile{}
}
