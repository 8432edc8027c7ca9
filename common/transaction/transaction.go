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

package transaction

import "github.com/cancunvm/engine/common/types"

// Transaction types, as carried by the outer envelope. The engine only ever
// reads the fields it needs (value, data, blob hashes); signature
// verification and RLP framing of the envelope are out of scope.
const (
	LegacyTxType     = 0x00
	AccessListTxType = 0x01
	DynamicFeeTxType = 0x02
	BlobTxType       = 0x03
)

// MaxBlobsPerBlock bounds the number of blobs a block may carry under
// Cancun; MaxBlobGasPerBlock is its gas-equivalent.
const (
	MaxBlobsPerBlock   = 6
	MaxBlobGasPerBlock = MaxBlobsPerBlock * BlobTxBlobGasPerBlob
)

// Transaction is the minimal outer-envelope view this engine consults: the
// fields execute_bytecode derives its ExecutionMessage from, plus the blob
// identifiers needed for BLOBHASH and blob-gas bookkeeping.
type Transaction struct {
	TxType     byte
	ChainID    uint64
	Nonce      uint64
	To         *types.Address
	Value      [32]byte
	Data       []byte
	AccessList AccessList

	BlobVersionedHashes []types.Hash
}

// Type returns the EIP-2718 transaction type byte.
func (t *Transaction) Type() byte { return t.TxType }

// BlobHashes returns the versioned blob hashes carried by a blob transaction,
// or nil for any other type.
func (t *Transaction) BlobHashes() []types.Hash {
	if t.TxType != BlobTxType {
		return nil
	}
	return t.BlobVersionedHashes
}

// BlobTxSidecar carries the blobs, KZG commitments and proofs that
// accompany a blob transaction off-chain. It never reaches consensus state;
// it exists only to validate BlobVersionedHashes against the data the
// sender claims to have published.
type BlobTxSidecar struct {
	Blobs       []Blob
	Commitments []Commitment
	Proofs      []Proof
}
