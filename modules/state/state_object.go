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

package state

import (
	"github.com/holiman/uint256"
	"github.com/cancunvm/engine/common/account"
	"github.com/cancunvm/engine/common/crypto"
	"github.com/cancunvm/engine/common/types"
)

// Storage maps storage keys to their uint256 values. It backs both the
// committed-storage cache of a stateObject and the per-transaction
// transient storage table.
type Storage map[types.Hash]uint256.Int

// Copy returns an independent copy of the storage map.
func (s Storage) Copy() Storage {
	cp := make(Storage, len(s))
	for k, v := range s {
		cp[k] = v
	}
	return cp
}

// stateObject represents one Ethereum account being modified. It caches the
// account's committed storage reads and tracks the slots dirtied during the
// current transaction so the journal can revert them precisely.
type stateObject struct {
	address types.Address
	data    account.StateAccount

	db *IntraBlockState

	// code is the contract bytecode, lazily loaded via the state reader.
	code []byte

	originStorage Storage // committed values already read from the backend
	dirtyStorage  Storage // values written during the current transaction

	// fakeStorage, if non-nil, overrides reads entirely. Used only for
	// simulated eth_call style execution where storage is pre-seeded rather
	// than backed by a persistent reader.
	fakeStorage Storage

	dirtyCode bool

	// newContract marks that this object was created (not merely touched)
	// in the currently executing transaction. It backs the EIP-6780
	// SELFDESTRUCT restriction: only contracts created in the same
	// transaction can be fully removed by SELFDESTRUCT.
	newContract bool

	selfDestructed bool
	deleted        bool
}

func newObject(db *IntraBlockState, address types.Address, data *account.StateAccount) *stateObject {
	if data == nil {
		data = account.NewEmptyAccount()
	}
	return &stateObject{
		db:            db,
		address:       address,
		data:          *data,
		originStorage: make(Storage),
		dirtyStorage:  make(Storage),
	}
}

// empty implements the EIP-161 emptiness test.
func (o *stateObject) empty() bool {
	return o.data.Nonce == 0 && o.data.Balance.IsZero() && o.data.CodeHash == account.EmptyCodeHash
}

func (o *stateObject) markSelfdestructed() {
	o.selfDestructed = true
}

func (o *stateObject) touch() {
	o.db.journal.append(touchChange{account: &o.address})
}

func (o *stateObject) setBalance(amount *uint256.Int) {
	o.data.Balance = *amount
}

func (o *stateObject) setNonce(nonce uint64) {
	o.data.Nonce = nonce
}

func (o *stateObject) setCode(codeHash types.Hash, code []byte) {
	o.code = code
	o.data.CodeHash = codeHash
	o.dirtyCode = true
}

func (o *stateObject) Balance() *uint256.Int {
	return &o.data.Balance
}

func (o *stateObject) Nonce() uint64 {
	return o.data.Nonce
}

func (o *stateObject) CodeHash() types.Hash {
	return o.data.CodeHash
}

// Code returns the contract bytecode, loading it from the backend reader on
// first access and caching the result.
func (o *stateObject) Code() []byte {
	if o.code != nil {
		return o.code
	}
	if o.data.CodeHash == account.EmptyCodeHash {
		return nil
	}
	code, err := o.db.stateReader.ReadAccountCode(o.address, o.data.Incarnation, o.data.CodeHash)
	if err != nil {
		o.db.setError(err)
	}
	o.code = code
	return code
}

func (o *stateObject) CodeSize() int {
	if o.code != nil {
		return len(o.code)
	}
	if o.data.CodeHash == account.EmptyCodeHash {
		return 0
	}
	size, err := o.db.stateReader.ReadAccountCodeSize(o.address, o.data.Incarnation, o.data.CodeHash)
	if err != nil {
		o.db.setError(err)
	}
	return size
}

// GetState returns the current (possibly dirty) value of a storage slot.
func (o *stateObject) GetState(key types.Hash) uint256.Int {
	if o.fakeStorage != nil {
		return o.fakeStorage[key]
	}
	if value, dirty := o.dirtyStorage[key]; dirty {
		return value
	}
	return o.GetCommittedState(key)
}

// GetCommittedState returns the value of a storage slot as of the start of
// the current transaction, bypassing any dirty writes.
func (o *stateObject) GetCommittedState(key types.Hash) uint256.Int {
	if o.fakeStorage != nil {
		return o.fakeStorage[key]
	}
	if value, cached := o.originStorage[key]; cached {
		return value
	}
	raw, err := o.db.stateReader.ReadAccountStorage(o.address, o.data.Incarnation, &key)
	if err != nil {
		o.db.setError(err)
		return uint256.Int{}
	}
	var value uint256.Int
	if len(raw) > 0 {
		value.SetBytes(raw)
	}
	o.originStorage[key] = value
	return value
}

func (o *stateObject) setState(key types.Hash, value uint256.Int) {
	o.dirtyStorage[key] = value
}

// SetFakeStorage seeds the object with a complete, backend-independent
// storage table. Intended for read-only simulation contexts.
func (o *stateObject) SetFakeStorage(storage Storage) {
	o.fakeStorage = storage
}

func (o *stateObject) deepCopy(db *IntraBlockState) *stateObject {
	cp := newObject(db, o.address, o.data.Copy())
	cp.code = o.code
	cp.originStorage = o.originStorage.Copy()
	cp.dirtyStorage = o.dirtyStorage.Copy()
	cp.dirtyCode = o.dirtyCode
	cp.selfDestructed = o.selfDestructed
	cp.newContract = o.newContract
	cp.deleted = o.deleted
	if o.fakeStorage != nil {
		cp.fakeStorage = o.fakeStorage.Copy()
	}
	return cp
}

// addressHash returns the keccak256 hash of the address. Nothing in this
// engine calls it, and it is not part of any consensus computation (this
// engine never derives a real storage root).
func (o *stateObject) addressHash() types.Hash {
	return types.BytesToHash(crypto.Keccak256(o.address.Bytes()))
}
