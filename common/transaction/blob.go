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

// EIP-4844 blob sizes. A real blob is 4096 field elements of 32 bytes;
// commitments and proofs are compressed BLS12-381 G1 points.
const (
	BytesPerBlob        = 4096 * 32
	BytesPerCommitment  = 48
	BytesPerProof       = 48
	BlobTxBlobGasPerBlob = 131072

	// VersionedHashVersionKZG is the version byte of a versioned blob hash
	// computed from a KZG commitment.
	VersionedHashVersionKZG = 0x01
)

type (
	Blob       [BytesPerBlob]byte
	Commitment [BytesPerCommitment]byte
	Proof      [BytesPerProof]byte
)
