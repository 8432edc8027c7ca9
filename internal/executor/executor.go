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

// Package executor wires BlockContext, AccountDB and a Computation call
// tree into the engine's single entry point: ExecuteBytecode. Everything
// else in this module is a collaborator reached from here.
package executor

import (
	"math/big"

	"github.com/holiman/uint256"
	"github.com/ledgerwatch/erigon-lib/kv"

	"github.com/cancunvm/engine/common/account"
	"github.com/cancunvm/engine/common/block"
	"github.com/cancunvm/engine/common/types"
	"github.com/cancunvm/engine/internal/vm"
	"github.com/cancunvm/engine/internal/vm/evmtypes"
	"github.com/cancunvm/engine/modules/state"
	"github.com/cancunvm/engine/params"
	"github.com/cancunvm/engine/pkg/errors"
)

// BlockContext carries the fields a transaction's execution is charged
// against: the block it is (notionally) included in. A host typically
// fills this in from an `eth_getBlockByNumber "latest"` RPC response; this
// package treats it as an opaque, already-resolved value.
type BlockContext struct {
	Number        uint64
	Timestamp     uint64
	Coinbase      types.Address
	BaseFee       *uint256.Int
	ChainID       *big.Int
	GasLimit      uint64
	PrevRandao    types.Hash
	BlobBaseFee   *uint256.Int
	BlobHashes    []types.Hash
}

// StateDiff is the write-set a successful (non-reverted) execution leaves
// behind: every account record, storage slot and code row it touched, plus
// everything it deleted. A host persists it by replaying it onto its own
// backing store, or discards it entirely for a dry-run call.
type StateDiff struct {
	UpdatedAccounts map[types.Address]*account.StateAccount
	DeletedAccounts []types.Address
	UpdatedStorage  map[types.Address]map[types.Hash]types.Hash
	NewCode         map[types.Hash][]byte
}

func newStateDiff() *StateDiff {
	return &StateDiff{
		UpdatedAccounts: make(map[types.Address]*account.StateAccount),
		UpdatedStorage:  make(map[types.Address]map[types.Hash]types.Hash),
		NewCode:         make(map[types.Hash][]byte),
	}
}

// Result is the outcome of one ExecuteBytecode call.
type Result struct {
	Success bool
	Output  []byte

	// ContractAddress is set when the message was a creation, regardless
	// of success, to the address CREATE derived for it.
	ContractAddress *types.Address

	Logs      []*block.Log
	StateDiff *StateDiff

	// Reverted reports whether the halt was an explicit REVERT (recoverable,
	// the engine still reports Output as the revert reason) as opposed to a
	// hard error.
	Reverted bool

	// Error is set for any halt other than REVERT. A root-frame error
	// (this field set) discards all state: StateDiff is nil and Logs empty.
	Error error
}

// diffWriter implements state.StateWriter, recording every mutation
// Finalise hands it into a StateDiff and optionally forwarding it to an
// inner persistent-backend writer in the same pass.
type diffWriter struct {
	inner state.StateWriter
	diff  *StateDiff
}

func (w *diffWriter) UpdateAccountData(addr types.Address, original, acc *account.StateAccount) error {
	cp := *acc
	w.diff.UpdatedAccounts[addr] = &cp
	if w.inner != nil {
		return w.inner.UpdateAccountData(addr, original, acc)
	}
	return nil
}

func (w *diffWriter) UpdateAccountCode(addr types.Address, incarnation uint16, codeHash types.Hash, code []byte) error {
	if codeHash != account.EmptyCodeHash && len(code) > 0 {
		w.diff.NewCode[codeHash] = append([]byte(nil), code...)
	}
	if w.inner != nil {
		return w.inner.UpdateAccountCode(addr, incarnation, codeHash, code)
	}
	return nil
}

func (w *diffWriter) DeleteAccount(addr types.Address, original *account.StateAccount) error {
	delete(w.diff.UpdatedAccounts, addr)
	delete(w.diff.UpdatedStorage, addr)
	w.diff.DeletedAccounts = append(w.diff.DeletedAccounts, addr)
	if w.inner != nil {
		return w.inner.DeleteAccount(addr, original)
	}
	return nil
}

func (w *diffWriter) WriteAccountStorage(addr types.Address, incarnation uint16, key *types.Hash, original, value *uint256.Int) error {
	slots, ok := w.diff.UpdatedStorage[addr]
	if !ok {
		slots = make(map[types.Hash]types.Hash)
		w.diff.UpdatedStorage[addr] = slots
	}
	if value == nil || value.IsZero() {
		delete(slots, *key)
	} else {
		slots[*key] = types.BytesToHash(value.Bytes())
	}
	if w.inner != nil {
		return w.inner.WriteAccountStorage(addr, incarnation, key, original, value)
	}
	return nil
}

func (w *diffWriter) CreateContract(addr types.Address) error {
	if w.inner != nil {
		return w.inner.CreateContract(addr)
	}
	return nil
}

// chainConfig derives a ChainConfig matching the Cancun default except for
// the caller-supplied chain id.
func chainConfig(chainID *big.Int) *params.ChainConfig {
	if chainID == nil {
		chainID = params.CancunChainConfig.ChainID
	}
	cfg := *params.CancunChainConfig
	cfg.ChainID = chainID
	return &cfg
}

// zeroBlockHash is this engine's BLOCKHASH policy: the specification leaves
// the choice of "return zero unconditionally" vs. "consult block history"
// unstated (see DESIGN.md), and this engine has no block-history store to
// consult, so it always returns the zero hash.
func zeroBlockHash(uint64) types.Hash { return types.Hash{} }

// gasSentinel picks the deterministic, unmetered GAS value every root call
// starts with: the block gas limit less a fixed intrinsic-transaction
// allowance; a limit at or below that allowance is returned unchanged. It is never exhausted by any opcode's
// (non-authoritative) cost accounting in practice, since real call/create
// gas stipends are carved from it the same way, but it still gives GAS a
// fixed, reproducible answer rather than an arbitrary MaxUint64.
func gasSentinel(blockGasLimit uint64) uint64 {
	const intrinsic = 21000
	if blockGasLimit <= intrinsic {
		return blockGasLimit
	}
	return blockGasLimit - intrinsic
}

// ExecuteBytecode is the engine's single entry point. to == the zero
// address means contract creation: code is treated as initcode and the
// new contract's address is derived from sender/nonce. tx, when non-nil,
// is a read-write transaction against the persistent backend whose rows
// seed AccountDB's StateReader; on success the state diff is also written
// into tx (ExecuteBytecode never commits tx itself). Pass nil to run
// entirely against a synthetic, empty account table.
func ExecuteBytecode(tx kv.RwTx, sender, to types.Address, value *uint256.Int, data, code []byte, blockCtx BlockContext) *Result {
	if value == nil {
		value = new(uint256.Int)
	}

	var reader state.StateReader
	if tx != nil {
		reader = state.NewPlainStateReader(tx)
	}
	ibs := state.NewIntraBlockState(reader)

	evmBlockCtx := evmtypes.BlockContext{
		CanTransfer: vm.CanTransfer,
		Transfer:    vm.Transfer,
		GetHash:     zeroBlockHash,
		Coinbase:    blockCtx.Coinbase,
		GasLimit:    blockCtx.GasLimit,
		BlockNumber: blockCtx.Number,
		Time:        blockCtx.Timestamp,
		Difficulty:  new(big.Int),
		BaseFee:     blockCtx.BaseFee,
		PrevRanDao:  &blockCtx.PrevRandao,
		BlobBaseFee: blockCtx.BlobBaseFee,
	}
	txCtx := evmtypes.TxContext{
		Origin:     sender,
		GasPrice:   new(uint256.Int),
		BlobHashes: blockCtx.BlobHashes,
	}

	evm := vm.NewEVM(evmBlockCtx, txCtx, ibs, chainConfig(blockCtx.ChainID), vm.Config{})
	gas := gasSentinel(blockCtx.GasLimit)

	isCreate := to.IsZero()

	var (
		ret  []byte
		addr types.Address
		err  error
	)
	if isCreate {
		ret, addr, _, err = evm.Create(vm.AccountRef(sender), code, gas, value)
	} else {
		// A regular call's code comes from whatever is already deployed at
		// the target address; this entry point is handed the code to run
		// directly (the specification's ExecutionMessage.code), so install
		// it on the target account first, exactly as a host simulating a
		// call against code that was never separately deployed would.
		if len(code) > 0 {
			ibs.SetCode(to, code)
		}
		ret, _, err = evm.Call(vm.AccountRef(sender), to, data, gas, value, false)
	}

	res := &Result{}
	if isCreate {
		res.ContractAddress = &addr
	}

	switch err {
	case nil:
		res.Success = true
		res.Output = ret
		res.Logs = ibs.Logs()
		diff := newStateDiff()
		w := &diffWriter{diff: diff}
		if tx != nil {
			w.inner = state.NewPlainStateWriter(tx)
		}
		if ferr := ibs.Finalise(true, w); ferr != nil {
			res.Success = false
			res.Error = errors.Wrap(ferr, "committing state diff")
			res.Logs = nil
			return res
		}
		res.StateDiff = diff
		return res
	case vm.ErrExecutionReverted:
		res.Reverted = true
		res.Output = ret
		return res
	default:
		res.Error = err
		return res
	}
}
