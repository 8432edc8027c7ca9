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

// Package account defines the persisted account record shape. StorageRoot is
// carried as an opaque field only: this engine never computes an authentic
// Merkle root, it is a placeholder kept for on-disk record compatibility.
package account

import (
	"github.com/cancunvm/engine/common/encoding"
	"github.com/cancunvm/engine/common/types"
	"github.com/holiman/uint256"
)

// EmptyCodeHash is the keccak256 hash of the empty byte string, the
// CodeHash value of every externally-owned account.
var EmptyCodeHash = types.HexToHash("0xc5d2460186f7233c927e7db2dcc703c0e500b653ca82273b7bfad8045d85a470")

// StateAccount is the in-memory/on-disk representation of one account.
// StorageRoot is stored but never computed from storage, and no account
// proofs are carried.
type StateAccount struct {
	Nonce       uint64
	Balance     uint256.Int
	StorageRoot types.Hash // opaque placeholder, never recomputed from storage
	CodeHash    types.Hash
	Incarnation uint16
}

// NewEmptyAccount returns the zero-value account record used for freshly
// created accounts: zero nonce/balance, empty code hash.
func NewEmptyAccount() *StateAccount {
	return &StateAccount{CodeHash: EmptyCodeHash}
}

// NewAccount is an alias of NewEmptyAccount kept for call sites that
// construct a fresh account record without caring about the "empty" framing.
func NewAccount() *StateAccount {
	return NewEmptyAccount()
}

// IsEmpty implements the EIP-161 emptiness test: zero nonce, zero balance,
// no code.
func (a *StateAccount) IsEmpty() bool {
	return a.Nonce == 0 && a.Balance.IsZero() && a.CodeHash == EmptyCodeHash
}

// Copy returns a deep copy suitable for journaling.
func (a *StateAccount) Copy() *StateAccount {
	cp := *a
	return &cp
}

// SelfCopy is an alias of Copy kept for call sites that read more naturally
// copying "itself" rather than handing back an unrelated copy.
func (a *StateAccount) SelfCopy() *StateAccount {
	return a.Copy()
}

// EncodeRLP returns the canonical on-disk encoding: a 5-element list of
// [nonce, balance, storageRoot, codeHash, incarnation].
func (a *StateAccount) EncodeRLP() []byte {
	var body []byte
	body = encoding.EncodeUint64(body, a.Nonce)
	body = encoding.EncodeByteString(body, a.Balance.Bytes())
	body = encoding.EncodeByteString(body, a.StorageRoot.Bytes())
	body = encoding.EncodeByteString(body, a.CodeHash.Bytes())
	body = encoding.EncodeUint64(body, uint64(a.Incarnation))
	return encoding.EncodeList(nil, body)
}

// DecodeRLPAccount parses the encoding produced by EncodeRLP.
func DecodeRLPAccount(buf []byte) (*StateAccount, error) {
	list, err := encoding.NewReader(buf).EnterList()
	if err != nil {
		return nil, err
	}
	nonce, err := list.ReadBytes()
	if err != nil {
		return nil, err
	}
	balance, err := list.ReadBytes()
	if err != nil {
		return nil, err
	}
	storageRoot, err := list.ReadBytes()
	if err != nil {
		return nil, err
	}
	codeHash, err := list.ReadBytes()
	if err != nil {
		return nil, err
	}
	incarnation, err := list.ReadBytes()
	if err != nil {
		return nil, err
	}

	a := &StateAccount{
		Nonce:       bytesToUint64(nonce),
		Incarnation: uint16(bytesToUint64(incarnation)),
	}
	a.Balance.SetBytes(balance)
	a.StorageRoot = types.BytesToHash(storageRoot)
	a.CodeHash = types.BytesToHash(codeHash)
	return a, nil
}

func bytesToUint64(b []byte) uint64 {
	var v uint64
	for _, c := range b {
		v = v<<8 | uint64(c)
	}
	return v
}
