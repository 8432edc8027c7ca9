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

// Package transaction carries the small set of outer-envelope types the
// execution engine borrows fields from (EIP-2930 access lists, EIP-4844
// blob identifiers). Signature verification, RLP framing and nonce/fee
// validation of the outer envelope are out of scope for this engine.
package transaction

import "github.com/cancunvm/engine/common/types"

// AccessTuple is one (address, storage keys) entry of an EIP-2930 access list.
type AccessTuple struct {
	Address     types.Address
	StorageKeys []types.Hash
}

// AccessList is the EIP-2930 access list carried by a transaction.
type AccessList []AccessTuple
