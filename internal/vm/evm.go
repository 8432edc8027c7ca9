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

package vm

import (
	"sync/atomic"

	"github.com/holiman/uint256"

	"github.com/cancunvm/engine/common/crypto"
	"github.com/cancunvm/engine/common/types"
	"github.com/cancunvm/engine/internal/vm/evmtypes"
	"github.com/cancunvm/engine/internal/vm/precompiles"
	"github.com/cancunvm/engine/params"
)

// CanTransfer reports whether addr's balance covers amount. It is the
// default evmtypes.CanTransferFunc every top-level caller wires into
// BlockContext; Call, CallCode and create in this package also call it
// directly.
func CanTransfer(db evmtypes.IntraBlockState, addr types.Address, amount *uint256.Int) bool {
	return db.GetBalance(addr).Cmp(amount) >= 0
}

// Transfer moves amount from sender to recipient. It is the default
// evmtypes.TransferFunc; bailout skips the actual move (used when a CALL's
// value transfer already failed upstream and the caller only wants the
// sub-call's side effects, never this engine's own call path).
func Transfer(db evmtypes.IntraBlockState, sender, recipient types.Address, amount *uint256.Int, bailout bool) {
	if bailout {
		return
	}
	db.SubBalance(sender, amount)
	db.AddBalance(recipient, amount)
}

// EVM composes the chain context, the journaled state and a single shared
// EVMInterpreter into the object every call/create operation is dispatched
// through. One EVM belongs to exactly one top-level transaction; the host
// constructs a fresh instance per execution (see the top-level Execute
// entry point).
type EVM struct {
	blockCtx evmtypes.BlockContext
	txCtx    evmtypes.TxContext
	ibs      evmtypes.IntraBlockState

	chainConfig *params.ChainConfig
	chainRules  params.Rules
	vmConfig    Config

	precompiles PrecompileRegistry

	interpreter *EVMInterpreter

	callGasTemp uint64
	cancelled   int32
}

// NewEVM returns an EVM ready to execute messages against ibs, charged with
// blockCtx/txCtx and the chain's Cancun rule set.
func NewEVM(blockCtx evmtypes.BlockContext, txCtx evmtypes.TxContext, ibs evmtypes.IntraBlockState, chainConfig *params.ChainConfig, vmConfig Config) *EVM {
	rules := chainConfig.Rules(blockCtx.BlockNumber, blockCtx.Time)
	evm := &EVM{
		blockCtx:    blockCtx,
		txCtx:       txCtx,
		ibs:         ibs,
		chainConfig: chainConfig,
		chainRules:  rules,
		vmConfig:    vmConfig,
		precompiles: precompiles.NewRegistry(&rules),
	}
	evm.interpreter = NewEVMInterpreter(evm, vmConfig)
	return evm
}

func (evm *EVM) ChainRules() *params.Rules        { return &evm.chainRules }
func (evm *EVM) ChainConfig() *params.ChainConfig { return evm.chainConfig }
func (evm *EVM) IntraBlockState() evmtypes.IntraBlockState { return evm.ibs }
func (evm *EVM) Context() evmtypes.BlockContext   { return evm.blockCtx }
func (evm *EVM) TxContext() evmtypes.TxContext    { return evm.txCtx }
func (evm *EVM) Config() Config                   { return evm.vmConfig }

func (evm *EVM) SetCallGasTemp(gas uint64) { evm.callGasTemp = gas }
func (evm *EVM) CallGasTemp() uint64       { return evm.callGasTemp }

// Cancel requests the running interpreter stop at its next step boundary.
// The spec's entry point is synchronous and single-threaded; this exists so
// a host embedding the engine in a cancellable context can drop a runaway
// call tree without tearing down the whole process.
func (evm *EVM) Cancel() { atomic.StoreInt32(&evm.cancelled, 1) }

// Cancelled reports whether Cancel has been called.
func (evm *EVM) Cancelled() bool { return atomic.LoadInt32(&evm.cancelled) != 0 }

// Reset rebinds the EVM to a new transaction context and state, keeping the
// block context and chain rules. Used by hosts that run many transactions
// against the same block without reconstructing the whole EVM each time.
func (evm *EVM) Reset(txCtx evmtypes.TxContext, ibs evmtypes.IntraBlockState) {
	evm.txCtx = txCtx
	evm.ibs = ibs
}

// ResetBetweenBlocks rebinds everything: block context, tx context, state,
// config and chain rules. Used between blocks rather than between
// transactions within one block.
func (evm *EVM) ResetBetweenBlocks(blockCtx evmtypes.BlockContext, txCtx evmtypes.TxContext, ibs evmtypes.IntraBlockState, vmConfig Config, chainRules *params.Rules) {
	evm.blockCtx = blockCtx
	evm.txCtx = txCtx
	evm.ibs = ibs
	evm.vmConfig = vmConfig
	evm.chainRules = *chainRules
	evm.precompiles = precompiles.NewRegistry(chainRules)
}

// Depth reports the current call-tree depth (0 at the root message).
func (evm *EVM) Depth() int { return evm.interpreter.Depth() }

// Call executes a message call against addr: CALL's semantics. caller's
// value is transferred to addr (unless bailout skips the check), addr's
// code (or a precompile) runs with input as calldata, and any error
// reverts the call's state checkpoint. Depth exceeded and insufficient
// balance are reported as plain errors so the CALL opcode can translate
// them into "failed subcall" (push 0) rather than halting the caller.
func (evm *EVM) Call(caller ContractRef, addr types.Address, input []byte, gas uint64, value *uint256.Int, bailout bool) (ret []byte, leftOverGas uint64, err error) {
	if evm.interpreter.depth > int(params.CallCreateDepth) {
		return nil, gas, ErrDepth
	}
	if value.Sign() != 0 && !bailout && !CanTransfer(evm.ibs, caller.Address(), value) {
		return nil, gas, ErrInsufficientBalance
	}

	snapshot := evm.ibs.Snapshot()
	_, isPrecompile := evm.precompiles.Lookup(addr)

	if !evm.ibs.Exist(addr) {
		if !isPrecompile && value.Sign() == 0 {
			// EIP-161: touching an empty account with a zero-value call
			// must not instantiate it.
			return nil, gas, nil
		}
		evm.ibs.CreateAccount(addr, false)
	}
	evm.blockCtx.Transfer(evm.ibs, caller.Address(), addr, value, bailout)

	if isPrecompile {
		ret, leftOverGas, err = evm.precompiles.Run(addr, input, gas)
	} else if len(evm.ibs.GetCode(addr)) == 0 {
		leftOverGas = gas
	} else {
		addrCopy := addr
		contract := NewContract(caller, AccountRef(addrCopy), value, gas, false)
		contract.SetCallCode(&addrCopy, evm.ibs.GetCodeHash(addrCopy), evm.ibs.GetCode(addrCopy))
		ret, err = evm.interpreter.Run(contract, input, false)
		leftOverGas = contract.Gas
	}
	if err != nil {
		evm.ibs.RevertToSnapshot(snapshot)
		if err != ErrExecutionReverted {
			leftOverGas = 0
		}
	}
	return ret, leftOverGas, err
}

// CallCode executes addr's code against caller's own storage and balance:
// CALLCODE's semantics. Only Address()/storage differ from Call; CALLER
// and CALLVALUE still observe the immediate caller and the value argument
// (unlike DelegateCall, which inherits both from its own caller).
func (evm *EVM) CallCode(caller ContractRef, addr types.Address, input []byte, gas uint64, value *uint256.Int) (ret []byte, leftOverGas uint64, err error) {
	if evm.interpreter.depth > int(params.CallCreateDepth) {
		return nil, gas, ErrDepth
	}
	if !CanTransfer(evm.ibs, caller.Address(), value) {
		return nil, gas, ErrInsufficientBalance
	}

	snapshot := evm.ibs.Snapshot()
	_, isPrecompile := evm.precompiles.Lookup(addr)

	if isPrecompile {
		ret, leftOverGas, err = evm.precompiles.Run(addr, input, gas)
	} else if len(evm.ibs.GetCode(addr)) == 0 {
		leftOverGas = gas
	} else {
		addrCopy := addr
		contract := NewContract(caller, AccountRef(caller.Address()), value, gas, false)
		contract.SetCallCode(&addrCopy, evm.ibs.GetCodeHash(addrCopy), evm.ibs.GetCode(addrCopy))
		ret, err = evm.interpreter.Run(contract, input, false)
		leftOverGas = contract.Gas
	}
	if err != nil {
		evm.ibs.RevertToSnapshot(snapshot)
		if err != ErrExecutionReverted {
			leftOverGas = 0
		}
	}
	return ret, leftOverGas, err
}

// DelegateCall executes addr's code against caller's storage, inheriting
// CALLER and CALLVALUE from caller's own invocation rather than taking a
// value argument: DELEGATECALL's semantics.
func (evm *EVM) DelegateCall(caller ContractRef, addr types.Address, input []byte, gas uint64) (ret []byte, leftOverGas uint64, err error) {
	if evm.interpreter.depth > int(params.CallCreateDepth) {
		return nil, gas, ErrDepth
	}

	snapshot := evm.ibs.Snapshot()
	_, isPrecompile := evm.precompiles.Lookup(addr)

	if isPrecompile {
		ret, leftOverGas, err = evm.precompiles.Run(addr, input, gas)
	} else if len(evm.ibs.GetCode(addr)) == 0 {
		leftOverGas = gas
	} else {
		addrCopy := addr
		contract := NewContract(caller, AccountRef(caller.Address()), nil, gas, false).AsDelegate()
		contract.SetCallCode(&addrCopy, evm.ibs.GetCodeHash(addrCopy), evm.ibs.GetCode(addrCopy))
		ret, err = evm.interpreter.Run(contract, input, false)
		leftOverGas = contract.Gas
	}
	if err != nil {
		evm.ibs.RevertToSnapshot(snapshot)
		if err != ErrExecutionReverted {
			leftOverGas = 0
		}
	}
	return ret, leftOverGas, err
}

// StaticCall executes addr's code with the frame (and every descendant)
// forbidden from mutating state: STATICCALL's semantics.
func (evm *EVM) StaticCall(caller ContractRef, addr types.Address, input []byte, gas uint64) (ret []byte, leftOverGas uint64, err error) {
	if evm.interpreter.depth > int(params.CallCreateDepth) {
		return nil, gas, ErrDepth
	}

	snapshot := evm.ibs.Snapshot()
	_, isPrecompile := evm.precompiles.Lookup(addr)

	if !evm.ibs.Exist(addr) && !isPrecompile {
		// A STATICCALL against a never-touched address simply observes no
		// code; it must not instantiate the account.
		return nil, gas, nil
	}

	if isPrecompile {
		ret, leftOverGas, err = evm.precompiles.Run(addr, input, gas)
	} else if len(evm.ibs.GetCode(addr)) == 0 {
		leftOverGas = gas
	} else {
		addrCopy := addr
		contract := NewContract(caller, AccountRef(addrCopy), new(uint256.Int), gas, false)
		contract.SetCallCode(&addrCopy, evm.ibs.GetCodeHash(addrCopy), evm.ibs.GetCode(addrCopy))
		ret, err = evm.interpreter.Run(contract, input, true)
		leftOverGas = contract.Gas
	}
	if err != nil {
		evm.ibs.RevertToSnapshot(snapshot)
		if err != ErrExecutionReverted {
			leftOverGas = 0
		}
	}
	return ret, leftOverGas, err
}

// Create deploys code as a new contract at the address CREATE derives from
// caller's address and current nonce.
func (evm *EVM) Create(caller ContractRef, code []byte, gas uint64, endowment *uint256.Int) (ret []byte, contractAddr types.Address, leftOverGas uint64, err error) {
	contractAddr = crypto.CreateAddress(caller.Address(), evm.ibs.GetNonce(caller.Address()))
	return evm.create(caller, code, gas, endowment, contractAddr)
}

// Create2 deploys code as a new contract at the address CREATE2 derives
// deterministically from caller's address, salt and the init code's hash.
func (evm *EVM) Create2(caller ContractRef, code []byte, gas uint64, endowment *uint256.Int, salt *uint256.Int) (ret []byte, contractAddr types.Address, leftOverGas uint64, err error) {
	codeHash := crypto.Keccak256(code)
	contractAddr = crypto.CreateAddress2(caller.Address(), salt.Bytes32(), codeHash)
	return evm.create(caller, code, gas, endowment, contractAddr)
}

// create runs the shared CREATE/CREATE2 machinery once the new address has
// been derived: collision check, initcode execution as its own call frame,
// EIP-170/3541 validation of the returned deployment code, and nonce/code
// commit on success.
func (evm *EVM) create(caller ContractRef, code []byte, gas uint64, value *uint256.Int, addr types.Address) (ret []byte, contractAddr types.Address, leftOverGas uint64, err error) {
	contractAddr = addr

	if evm.interpreter.depth > int(params.CallCreateDepth) {
		return nil, addr, gas, ErrDepth
	}
	if !CanTransfer(evm.ibs, caller.Address(), value) {
		return nil, addr, gas, ErrInsufficientBalance
	}
	evm.ibs.SetNonce(caller.Address(), evm.ibs.GetNonce(caller.Address())+1)

	// Collision: an account already occupying addr with nonzero nonce or
	// non-empty code means this CREATE/CREATE2 cannot proceed.
	contractHash := evm.ibs.GetCodeHash(addr)
	if evm.ibs.GetNonce(addr) != 0 || (contractHash != (types.Hash{}) && contractHash != emptyCodeHashPlaceholder()) {
		return nil, addr, gas, ErrContractAddressCollision
	}

	snapshot := evm.ibs.Snapshot()
	evm.ibs.CreateAccount(addr, true)
	evm.ibs.SetNonce(addr, 1)
	evm.blockCtx.Transfer(evm.ibs, caller.Address(), addr, value, false)

	contract := NewContract(caller, AccountRef(addr), value, gas, false)
	contract.IsDeployment = true
	contract.SetCallCode(&addr, crypto.Keccak256Hash(code), code)

	ret, err = evm.interpreter.Run(contract, nil, false)

	if err == nil {
		if len(ret) > params.MaxCodeSize {
			err = ErrMaxCodeSizeExceeded
		} else if len(ret) > 0 && ret[0] == 0xEF {
			err = ErrInvalidCode
		}
	}
	if err == nil {
		evm.ibs.SetCode(addr, ret)
	} else {
		evm.ibs.RevertToSnapshot(snapshot)
		if err != ErrExecutionReverted {
			contract.Gas = 0
		}
	}
	return ret, addr, contract.Gas, err
}

// emptyCodeHashPlaceholder returns the keccak256 hash of the empty byte
// string, used to recognize accounts with no deployed code during the
// CREATE/CREATE2 collision check (a fresh account's zero-valued CodeHash
// field and the explicit empty-code hash are both "no code").
func emptyCodeHashPlaceholder() types.Hash {
	return crypto.Keccak256Hash(nil)
}
