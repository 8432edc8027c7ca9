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

// EIP-4844: Shard Blob Transactions - block/transaction-level blob gas
// accounting. The point evaluation precompile itself lives in
// internal/vm/precompiles (address 0x0a).
// Reference: https://eips.ethereum.org/EIPS/eip-4844

package vm

import (
	"crypto/sha256"
	"errors"

	"github.com/cancunvm/engine/common/crypto/kzg"
	"github.com/cancunvm/engine/common/transaction"
	"github.com/cancunvm/engine/common/types"
)

// ComputeBlobHash computes the versioned hash for a blob.
func ComputeBlobHash(blob *transaction.Blob) (types.Hash, error) {
	commitment, err := kzg.BlobToCommitment(blob)
	if err != nil {
		return types.Hash{}, err
	}
	return kzg.CommitmentToVersionedHash(commitment), nil
}

// VerifyBlobHashes verifies that blob hashes match the sidecar.
func VerifyBlobHashes(expectedHashes []types.Hash, sidecar *transaction.BlobTxSidecar) error {
	if sidecar == nil {
		return errors.New("sidecar is nil")
	}

	if len(expectedHashes) != len(sidecar.Blobs) {
		return errors.New("hash count mismatch")
	}

	for i, blob := range sidecar.Blobs {
		hash, err := ComputeBlobHash(&blob)
		if err != nil {
			return err
		}
		if hash != expectedHashes[i] {
			return errors.New("blob hash mismatch")
		}
	}

	return nil
}

// BlobGasUsed returns the blob gas used by transactions in a block.
func BlobGasUsed(txs []*transaction.Transaction) uint64 {
	var total uint64
	for _, tx := range txs {
		if tx.Type() == transaction.BlobTxType {
			blobHashes := tx.BlobHashes()
			if blobHashes != nil {
				total += uint64(len(blobHashes)) * transaction.BlobTxBlobGasPerBlob
			}
		}
	}
	return total
}

// ValidateBlobGasUsed validates the blob gas used field in a block header.
func ValidateBlobGasUsed(blobGasUsed uint64, txs []*transaction.Transaction) error {
	expected := BlobGasUsed(txs)
	if blobGasUsed != expected {
		return errors.New("invalid blob gas used")
	}
	if blobGasUsed > transaction.MaxBlobGasPerBlock {
		return errors.New("blob gas exceeds maximum")
	}
	return nil
}

// CreateMockBlob creates a mock blob for testing.
func CreateMockBlob(data []byte) transaction.Blob {
	var blob transaction.Blob
	copy(blob[:], data)
	return blob
}

// CreateMockCommitment creates a mock commitment for testing.
func CreateMockCommitment(blob *transaction.Blob) transaction.Commitment {
	h := sha256.Sum256(blob[:])
	var commitment transaction.Commitment
	copy(commitment[:], h[:])
	return commitment
}

// CreateMockProof creates a mock proof for testing.
func CreateMockProof() transaction.Proof {
	return transaction.Proof{}
}

// CreateMockSidecar creates a mock sidecar for testing.
func CreateMockSidecar(numBlobs int) *transaction.BlobTxSidecar {
	sidecar := &transaction.BlobTxSidecar{
		Blobs:       make([]transaction.Blob, numBlobs),
		Commitments: make([]transaction.Commitment, numBlobs),
		Proofs:      make([]transaction.Proof, numBlobs),
	}

	for i := 0; i < numBlobs; i++ {
		sidecar.Commitments[i] = CreateMockCommitment(&sidecar.Blobs[i])
	}

	return sidecar
}
