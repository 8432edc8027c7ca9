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
	"fmt"
	"sort"

	"github.com/holiman/uint256"
	"github.com/cancunvm/engine/common"
	"github.com/cancunvm/engine/common/account"
	"github.com/cancunvm/engine/common/block"
	"github.com/cancunvm/engine/common/crypto"
	"github.com/cancunvm/engine/common/transaction"
	"github.com/cancunvm/engine/common/types"
)

// IntraBlockState implements the engine-wide common.StateDB contract.
var _ common.StateDB = (*IntraBlockState)(nil)

// revision ties a journal length to an externally visible Snapshot id, so
// RevertToSnapshot can find how far back to unwind.
type revision struct {
	id           int
	journalIndex int
}

// IntraBlockState is the journaled, checkpointable view of account state
// exposed to the interpreter through common.StateDB. All mutations during
// one execution are buffered here; only Commit persists them through a
// StateWriter.
type IntraBlockState struct {
	stateReader StateReader

	stateObjects      map[types.Address]*stateObject
	stateObjectsDirty map[types.Address]struct{}

	// accounts that have been removed during the current transaction but
	// are retained in stateObjects so a later read in the same tx (or a
	// revert) observes the pre-deletion state correctly.
	journal        *journal
	validRevisions []revision
	nextRevisionID int

	refund uint64

	thash   types.Hash
	txIndex int
	logs    map[types.Hash][]*block.Log
	logSize uint

	accessList       *accessList
	transientStorage transientStorage

	lastErr error
}

// NewIntraBlockState creates a fresh journaled state view reading committed
// data from reader. reader may be nil, in which case every account not
// created during execution is treated as non-existent (useful for isolated
// bytecode execution against a synthetic account/storage table).
func NewIntraBlockState(reader StateReader) *IntraBlockState {
	if reader == nil {
		reader = NewNoopReader()
	}
	return &IntraBlockState{
		stateReader:       reader,
		stateObjects:      make(map[types.Address]*stateObject),
		stateObjectsDirty: make(map[types.Address]struct{}),
		journal:           newJournal(),
		logs:              make(map[types.Hash][]*block.Log),
		accessList:        newAccessList(),
		transientStorage:  newTransientStorage(),
	}
}

// SetTxContext primes the log-tagging context ahead of executing one
// transaction within a block.
func (s *IntraBlockState) SetTxContext(txHash types.Hash, txIndex int) {
	s.thash = txHash
	s.txIndex = txIndex
}

func (s *IntraBlockState) setError(err error) {
	if s.lastErr == nil {
		s.lastErr = err
	}
}

// Error returns the first error observed while reading from the backend, if
// any. The interpreter treats a non-nil error as fatal.
func (s *IntraBlockState) Error() error {
	return s.lastErr
}

// ========== account lookup ==========

func (s *IntraBlockState) getStateObject(addr types.Address) *stateObject {
	if obj, ok := s.stateObjects[addr]; ok {
		return obj
	}
	data, err := s.stateReader.ReadAccountData(addr)
	if err != nil {
		s.setError(err)
		return nil
	}
	if data == nil {
		return nil
	}
	obj := newObject(s, addr, data)
	s.setStateObject(addr, obj)
	return obj
}

func (s *IntraBlockState) setStateObject(addr types.Address, object *stateObject) {
	s.stateObjects[addr] = object
}

func (s *IntraBlockState) getOrNewStateObject(addr types.Address) *stateObject {
	obj := s.getStateObject(addr)
	if obj == nil || obj.deleted {
		obj, _ = s.createObject(addr)
	}
	return obj
}

// createObject creates a new state object, carrying forward the balance of
// whatever account previously lived at addr (an EOA may have received
// funds before being deployed to).
func (s *IntraBlockState) createObject(addr types.Address) (newObj, prevObj *stateObject) {
	prevObj = s.getStateObject(addr)

	newObj = newObject(s, addr, nil)
	if prevObj == nil {
		s.journal.append(createObjectChange{account: &addr})
	} else {
		s.journal.append(resetObjectChange{prev: prevObj})
		newObj.data.Balance = prevObj.data.Balance
	}
	s.setStateObject(addr, newObj)
	return newObj, prevObj
}

// CreateAccount implements common.StateDB. contractCreation marks the new
// object as having been created in the current transaction, which gates
// the EIP-6780 SELFDESTRUCT restriction.
func (s *IntraBlockState) CreateAccount(addr types.Address, contractCreation bool) {
	obj, _ := s.createObject(addr)
	if contractCreation {
		obj.newContract = true
	}
}

func (s *IntraBlockState) Exist(addr types.Address) bool {
	return s.getStateObject(addr) != nil
}

func (s *IntraBlockState) Empty(addr types.Address) bool {
	obj := s.getStateObject(addr)
	return obj == nil || obj.empty()
}

// ========== balance ==========

func (s *IntraBlockState) SubBalance(addr types.Address, amount *uint256.Int) {
	obj := s.getOrNewStateObject(addr)
	if obj == nil || amount.IsZero() {
		return
	}
	s.journal.append(balanceChange{account: &addr, prev: obj.data.Balance})
	next := new(uint256.Int).Sub(&obj.data.Balance, amount)
	obj.setBalance(next)
}

func (s *IntraBlockState) AddBalance(addr types.Address, amount *uint256.Int) {
	obj := s.getOrNewStateObject(addr)
	if obj == nil {
		return
	}
	s.journal.append(balanceChange{account: &addr, prev: obj.data.Balance})
	if amount.IsZero() {
		// Touching an account with a zero-value transfer still marks it
		// dirty under EIP-161, so empty accounts created this way are
		// correctly considered for deletion.
		return
	}
	next := new(uint256.Int).Add(&obj.data.Balance, amount)
	obj.setBalance(next)
}

func (s *IntraBlockState) GetBalance(addr types.Address) *uint256.Int {
	obj := s.getStateObject(addr)
	if obj == nil {
		return new(uint256.Int)
	}
	return obj.Balance()
}

// ========== nonce ==========

func (s *IntraBlockState) GetNonce(addr types.Address) uint64 {
	obj := s.getStateObject(addr)
	if obj == nil {
		return 0
	}
	return obj.Nonce()
}

func (s *IntraBlockState) SetNonce(addr types.Address, nonce uint64) {
	obj := s.getOrNewStateObject(addr)
	if obj == nil {
		return
	}
	s.journal.append(nonceChange{account: &addr, prev: obj.data.Nonce})
	obj.setNonce(nonce)
}

// ========== code ==========

func (s *IntraBlockState) GetCodeHash(addr types.Address) types.Hash {
	obj := s.getStateObject(addr)
	if obj == nil {
		return types.Hash{}
	}
	return obj.CodeHash()
}

func (s *IntraBlockState) GetCode(addr types.Address) []byte {
	obj := s.getStateObject(addr)
	if obj == nil {
		return nil
	}
	return obj.Code()
}

func (s *IntraBlockState) SetCode(addr types.Address, code []byte) {
	obj := s.getOrNewStateObject(addr)
	if obj == nil {
		return
	}
	codeHash := account.EmptyCodeHash
	if len(code) > 0 {
		codeHash = crypto.Keccak256Hash(code)
	}
	s.journal.append(codeChange{account: &addr, prevhash: obj.CodeHash().Bytes(), prevcode: obj.code})
	obj.setCode(codeHash, code)
}

func (s *IntraBlockState) GetCodeSize(addr types.Address) int {
	obj := s.getStateObject(addr)
	if obj == nil {
		return 0
	}
	return obj.CodeSize()
}

// ========== refund ==========

func (s *IntraBlockState) AddRefund(gas uint64) {
	s.journal.append(refundChange{prev: s.refund})
	s.refund += gas
}

func (s *IntraBlockState) SubRefund(gas uint64) {
	s.journal.append(refundChange{prev: s.refund})
	if gas > s.refund {
		panic(fmt.Sprintf("refund counter below zero (gas: %d > refund: %d)", gas, s.refund))
	}
	s.refund -= gas
}

func (s *IntraBlockState) GetRefund() uint64 {
	return s.refund
}

// ========== storage ==========

func (s *IntraBlockState) GetCommittedState(addr types.Address, key *types.Hash, outValue *uint256.Int) {
	obj := s.getStateObject(addr)
	if obj == nil {
		outValue.Clear()
		return
	}
	*outValue = obj.GetCommittedState(*key)
}

func (s *IntraBlockState) GetState(addr types.Address, key *types.Hash, outValue *uint256.Int) {
	obj := s.getStateObject(addr)
	if obj == nil {
		outValue.Clear()
		return
	}
	*outValue = obj.GetState(*key)
}

func (s *IntraBlockState) SetState(addr types.Address, key *types.Hash, value uint256.Int) {
	obj := s.getOrNewStateObject(addr)
	if obj == nil {
		return
	}
	prev := obj.GetState(*key)
	if prev == value {
		return
	}
	s.journal.append(storageChange{account: &addr, key: *key, prevalue: prev})
	obj.setState(*key, value)
}

// ========== self-destruct ==========

// Selfdestruct marks addr for full removal at the end of the transaction:
// its balance is zeroed and the object is dropped from state on Finalise.
// Callers must only invoke this for accounts eligible for full deletion;
// see CreatedInCurrentTx for the EIP-6780 gate.
func (s *IntraBlockState) Selfdestruct(addr types.Address) bool {
	obj := s.getStateObject(addr)
	if obj == nil {
		return false
	}
	s.journal.append(selfDestructChange{
		account:     &addr,
		prev:        obj.selfDestructed,
		prevBalance: obj.data.Balance,
	})
	obj.markSelfdestructed()
	obj.data.Balance = uint256.Int{}
	return true
}

func (s *IntraBlockState) HasSelfdestructed(addr types.Address) bool {
	obj := s.getStateObject(addr)
	if obj == nil {
		return false
	}
	return obj.selfDestructed
}

// CreatedInCurrentTx reports whether addr was deployed to (CreateAccount
// with contractCreation=true) during the transaction currently executing on
// this state view. SELFDESTRUCT handling (EIP-6780) uses this to decide
// between full deletion and a balance-only transfer.
func (s *IntraBlockState) CreatedInCurrentTx(addr types.Address) bool {
	obj, ok := s.stateObjects[addr]
	return ok && obj.newContract
}

// ========== access list (EIP-2929 / EIP-2930) ==========

func (s *IntraBlockState) PrepareAccessList(sender types.Address, dest *types.Address, precompiles []types.Address, txAccesses transaction.AccessList) {
	s.AddAddressToAccessList(sender)
	if dest != nil {
		s.AddAddressToAccessList(*dest)
	}
	for _, addr := range precompiles {
		s.AddAddressToAccessList(addr)
	}
	for _, tuple := range txAccesses {
		s.AddAddressToAccessList(tuple.Address)
		for _, key := range tuple.StorageKeys {
			s.AddSlotToAccessList(tuple.Address, key)
		}
	}
}

func (s *IntraBlockState) AddressInAccessList(addr types.Address) bool {
	return s.accessList.ContainsAddress(addr)
}

func (s *IntraBlockState) SlotInAccessList(addr types.Address, slot types.Hash) (addressOk bool, slotOk bool) {
	return s.accessList.Contains(addr, slot)
}

func (s *IntraBlockState) AddAddressToAccessList(addr types.Address) {
	if s.accessList.AddAddress(addr) {
		s.journal.append(accessListAddAccountChange{address: &addr})
	}
}

func (s *IntraBlockState) AddSlotToAccessList(addr types.Address, slot types.Hash) {
	addrChange, slotChange := s.accessList.AddSlot(addr, slot)
	if addrChange {
		s.journal.append(accessListAddAccountChange{address: &addr})
	}
	if slotChange {
		s.journal.append(accessListAddSlotChange{address: &addr, slot: &slot})
	}
}

// ========== snapshot / revert ==========

func (s *IntraBlockState) Snapshot() int {
	id := s.nextRevisionID
	s.nextRevisionID++
	s.validRevisions = append(s.validRevisions, revision{id: id, journalIndex: s.journal.length()})
	return id
}

func (s *IntraBlockState) RevertToSnapshot(revisionID int) {
	idx := sort.Search(len(s.validRevisions), func(i int) bool {
		return s.validRevisions[i].id >= revisionID
	})
	if idx == len(s.validRevisions) || s.validRevisions[idx].id != revisionID {
		panic(fmt.Errorf("revision id %v cannot be reverted", revisionID))
	}
	snapshot := s.validRevisions[idx].journalIndex

	s.journal.revert(s, snapshot)
	s.validRevisions = s.validRevisions[:idx]
}

// ========== logs ==========

func (s *IntraBlockState) AddLog(log *block.Log) {
	s.journal.append(addLogChange{txhash: s.thash})

	log.TxHash = s.thash
	log.TxIndex = uint(s.txIndex)
	log.Index = s.logSize
	s.logs[s.thash] = append(s.logs[s.thash], log)
	s.logSize++
}

// Logs returns every log recorded against the current transaction hash.
func (s *IntraBlockState) Logs() []*block.Log {
	return s.logs[s.thash]
}

// ========== transient storage (EIP-1153) ==========

func (s *IntraBlockState) GetTransientState(addr types.Address, key types.Hash) uint256.Int {
	return s.transientStorage.Get(addr, key)
}

func (s *IntraBlockState) SetTransientState(addr types.Address, key types.Hash, value uint256.Int) {
	prev := s.transientStorage.Get(addr, key)
	if prev == value {
		return
	}
	s.journal.append(transientStorageChange{
		account:  &addr,
		key:      key,
		prevalue: prev,
	})
	s.setTransientState(addr, key, value)
}

// setTransientState is the journal-revert entry point: it writes without
// recording another journal entry.
func (s *IntraBlockState) setTransientState(addr types.Address, key types.Hash, value uint256.Int) {
	s.transientStorage.Set(addr, key, value)
}

// ========== commit ==========

// Finalise walks every touched account and, for accounts that are empty
// (EIP-161) or self-destructed, marks them deleted; it then persists every
// dirtied account, code and storage slot through writer. deleteEmptyObjects
// should be true for any chain rule set on or after Spurious Dragon (always
// true for Cancun).
func (s *IntraBlockState) Finalise(deleteEmptyObjects bool, writer StateWriter) error {
	for addr, obj := range s.stateObjects {
		if obj.selfDestructed || (deleteEmptyObjects && obj.empty()) {
			obj.deleted = true
			if writer != nil {
				if err := writer.DeleteAccount(addr, &obj.data); err != nil {
					return err
				}
			}
			continue
		}
		if writer == nil {
			continue
		}
		if len(obj.dirtyStorage) > 0 {
			if err := obj.db.writeStorage(obj, writer); err != nil {
				return err
			}
		}
		if obj.dirtyCode {
			if err := writer.UpdateAccountCode(addr, obj.data.Incarnation, obj.data.CodeHash, obj.code); err != nil {
				return err
			}
		}
		if err := writer.UpdateAccountData(addr, nil, &obj.data); err != nil {
			return err
		}
	}
	return nil
}

func (s *IntraBlockState) writeStorage(obj *stateObject, writer StateWriter) error {
	for key, value := range obj.dirtyStorage {
		original := obj.originStorage[key]
		v := value
		if err := writer.WriteAccountStorage(obj.address, obj.data.Incarnation, &key, &original, &v); err != nil {
			return err
		}
		obj.originStorage[key] = value
	}
	obj.dirtyStorage = make(Storage)
	return nil
}
