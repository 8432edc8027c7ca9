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
	"github.com/holiman/uint256"

	"github.com/cancunvm/engine/common/types"
	"github.com/cancunvm/engine/internal/vm/stack"
	"github.com/cancunvm/engine/params"
)

// Constant-tier wrappers. The jump table stores these as constantGas values
// computed once at table-construction time rather than as bare literals, the
// way the teacher's own jump table builder prefers a named call over a magic
// number at each call site.
func CreateGasCost() uint64   { return params.CreateGas }
func GasCallStep() uint64     { return params.WarmStorageReadCostEIP2929 }
func JumpdestGasCost() uint64 { return params.JumpdestGas }
func params30Sha3Gas() uint64 { return params.Sha3Gas }

// Additional tiers go-ethereum keeps outside protocol_params.go's own const
// block (call-value/new-account surcharges, the call stipend, and the two
// EXP byte-gas tiers that change at Spurious Dragon).
const (
	callValueTransferGas uint64 = 9000
	callNewAccountGas    uint64 = 25000
	callStipend          uint64 = 2300
	expByteGas           uint64 = 10
	expByteGasEIP158     uint64 = 50
	create2WordGas       uint64 = 6
)

// gasExp charges expByteGas per byte of the exponent, Frontier pricing.
func gasExp(evm VMInterpreter, contract *Contract, stk *stack.Stack, mem *Memory, memorySize uint64) (uint64, error) {
	return gasExpGeneric(stk, expByteGas)
}

// gasExpEIP158 is the Spurious Dragon repricing of EXP (EIP-160).
func gasExpEIP158(evm VMInterpreter, contract *Contract, stk *stack.Stack, mem *Memory, memorySize uint64) (uint64, error) {
	return gasExpGeneric(stk, expByteGasEIP158)
}

func gasExpGeneric(stk *stack.Stack, byteGas uint64) (uint64, error) {
	expBytes := (stk.Back(1).BitLen() + 7) / 8
	var gas, overflow uint64
	var ovf bool
	if gas, ovf = safeMul(uint64(expBytes), byteGas); ovf {
		return 0, ErrGasUintOverflow
	}
	overflow = ovf
	_ = overflow
	return gas, nil
}

// gasSha3 charges the word-count surcharge on top of SHA3's constant cost.
func gasSha3(evm VMInterpreter, contract *Contract, stk *stack.Stack, mem *Memory, memorySize uint64) (uint64, error) {
	gas, err := memoryGasCost(mem, memorySize)
	if err != nil {
		return 0, err
	}
	wordGas, overflow := stk.Back(1).Uint64WithOverflow()
	if overflow {
		return 0, ErrGasUintOverflow
	}
	if wordGas, overflow = safeMul(toWordSize(wordGas), params.Sha3WordGas); overflow {
		return 0, ErrGasUintOverflow
	}
	if gas, overflow = safeAdd(gas, wordGas); overflow {
		return 0, ErrGasUintOverflow
	}
	return gas, nil
}

func memorySha3(stk *stack.Stack) (uint64, bool) {
	return calcMemSize64(stk.Back(0), stk.Back(1))
}

// gasCallDataCopy/gasCodeCopy share the same copy-word pricing; only the
// stack position of the length operand differs by opcode arity, and both
// opcodes put it at position 2.
func gasCopyWords(stk *stack.Stack, lenPos int, mem *Memory, memorySize uint64) (uint64, error) {
	gas, err := memoryGasCost(mem, memorySize)
	if err != nil {
		return 0, err
	}
	words, overflow := stk.Back(lenPos).Uint64WithOverflow()
	if overflow {
		return 0, ErrGasUintOverflow
	}
	var wordGas uint64
	if wordGas, overflow = safeMul(toWordSize(words), params.CopyGas); overflow {
		return 0, ErrGasUintOverflow
	}
	if gas, overflow = safeAdd(gas, wordGas); overflow {
		return 0, ErrGasUintOverflow
	}
	return gas, nil
}

func gasCallDataCopy(evm VMInterpreter, contract *Contract, stk *stack.Stack, mem *Memory, memorySize uint64) (uint64, error) {
	return gasCopyWords(stk, 2, mem, memorySize)
}

func memoryCallDataCopy(stk *stack.Stack) (uint64, bool) {
	return calcMemSize64(stk.Back(0), stk.Back(2))
}

func gasCodeCopy(evm VMInterpreter, contract *Contract, stk *stack.Stack, mem *Memory, memorySize uint64) (uint64, error) {
	return gasCopyWords(stk, 2, mem, memorySize)
}

func memoryCodeCopy(stk *stack.Stack) (uint64, bool) {
	return calcMemSize64(stk.Back(0), stk.Back(2))
}

func gasExtCodeCopy(evm VMInterpreter, contract *Contract, stk *stack.Stack, mem *Memory, memorySize uint64) (uint64, error) {
	return gasCopyWords(stk, 3, mem, memorySize)
}

func memoryExtCodeCopy(stk *stack.Stack) (uint64, bool) {
	return calcMemSize64(stk.Back(1), stk.Back(3))
}

// gasExtCodeCopyEIP2929 adds the cold/warm address access surcharge on top
// of the Berlin-era copy-word pricing.
func gasExtCodeCopyEIP2929(evm VMInterpreter, contract *Contract, stk *stack.Stack, mem *Memory, memorySize uint64) (uint64, error) {
	gas, err := gasCopyWords(stk, 3, mem, memorySize)
	if err != nil {
		return 0, err
	}
	addr := types.Address(stk.Back(0).Bytes20())
	accessGas, overflow := accessGasCost(evm, addr)
	if overflow {
		return 0, ErrGasUintOverflow
	}
	if gas, overflow = safeAdd(gas, accessGas); overflow {
		return 0, ErrGasUintOverflow
	}
	return gas, nil
}

// accessGasCost charges the EIP-2929 cold-access surcharge the first time
// addr is touched in a transaction, warming it as a side effect.
func accessGasCost(evm VMInterpreter, addr types.Address) (uint64, bool) {
	if evm.IntraBlockState().AddressInAccessList(addr) {
		return 0, false
	}
	evm.IntraBlockState().AddAddressToAccessList(addr)
	return params.ColdAccountAccessCostEIP2929 - params.WarmStorageReadCostEIP2929, false
}

// gasEip2929AccountCheck prices BALANCE/EXTCODESIZE/EXTCODEHASH under
// Berlin: a flat warm-storage read, plus the cold surcharge on first touch.
func gasEip2929AccountCheck(evm VMInterpreter, contract *Contract, stk *stack.Stack, mem *Memory, memorySize uint64) (uint64, error) {
	addr := types.Address(stk.Back(0).Bytes20())
	if evm.IntraBlockState().AddressInAccessList(addr) {
		return params.WarmStorageReadCostEIP2929, nil
	}
	evm.IntraBlockState().AddAddressToAccessList(addr)
	return params.ColdAccountAccessCostEIP2929, nil
}

func gasMload(evm VMInterpreter, contract *Contract, stk *stack.Stack, mem *Memory, memorySize uint64) (uint64, error) {
	return memoryGasCost(mem, memorySize)
}

func memoryMload(stk *stack.Stack) (uint64, bool) {
	return calcMemSize64(stk.Back(0), uint256.NewInt(32))
}

func gasMstore(evm VMInterpreter, contract *Contract, stk *stack.Stack, mem *Memory, memorySize uint64) (uint64, error) {
	return memoryGasCost(mem, memorySize)
}

func memoryMstore(stk *stack.Stack) (uint64, bool) {
	return calcMemSize64(stk.Back(0), uint256.NewInt(32))
}

func gasMstore8(evm VMInterpreter, contract *Contract, stk *stack.Stack, mem *Memory, memorySize uint64) (uint64, error) {
	return memoryGasCost(mem, memorySize)
}

func memoryMstore8(stk *stack.Stack) (uint64, bool) {
	return calcMemSize64(stk.Back(0), uint256.NewInt(1))
}

// gasSstore is the pre-Istanbul flat SSTORE pricing: set vs reset.
func gasSstore(evm VMInterpreter, contract *Contract, stk *stack.Stack, mem *Memory, memorySize uint64) (uint64, error) {
	loc := stk.Back(0)
	val := stk.Back(1)
	key := types.Hash(loc.Bytes32())
	var current uint256.Int
	evm.IntraBlockState().GetState(contract.Address(), &key, &current)
	if current.IsZero() && !val.IsZero() {
		return params.SstoreSetGas, nil
	}
	return params.SstoreResetGas, nil
}

// gasSloadEIP2200/gasSstoreEIP2200 implement Istanbul's net-metered SSTORE
// (EIP-2200), comparing against both the committed and current values.
func gasSloadEIP2200(evm VMInterpreter, contract *Contract, stk *stack.Stack, mem *Memory, memorySize uint64) (uint64, error) {
	return params.WarmStorageReadCostEIP2929, nil
}

func gasSstoreEIP2200(evm VMInterpreter, contract *Contract, stk *stack.Stack, mem *Memory, memorySize uint64) (uint64, error) {
	loc := stk.Back(0)
	val := stk.Back(1)
	key := types.Hash(loc.Bytes32())
	ibs := evm.IntraBlockState()

	var current uint256.Int
	ibs.GetState(contract.Address(), &key, &current)
	if current.Eq(val) {
		return params.WarmStorageReadCostEIP2929, nil
	}
	var original uint256.Int
	ibs.GetCommittedState(contract.Address(), &key, &original)
	if original.Eq(&current) {
		if original.IsZero() {
			return params.SstoreSetGas, nil
		}
		return params.SstoreResetGas, nil
	}
	return params.WarmStorageReadCostEIP2929, nil
}

// gasSloadEIP2929/gasSstoreEIP2929 layer the cold/warm slot surcharge
// (Berlin) on top of the EIP-2200 net-metering scheme.
func gasSloadEIP2929(evm VMInterpreter, contract *Contract, stk *stack.Stack, mem *Memory, memorySize uint64) (uint64, error) {
	loc := stk.Back(0)
	key := types.Hash(loc.Bytes32())
	addr := contract.Address()
	_, slotWarm := evm.IntraBlockState().SlotInAccessList(addr, key)
	if slotWarm {
		return params.WarmStorageReadCostEIP2929, nil
	}
	evm.IntraBlockState().AddSlotToAccessList(addr, key)
	return params.ColdSloadCostEIP2929, nil
}

func gasSstoreEIP2929(evm VMInterpreter, contract *Contract, stk *stack.Stack, mem *Memory, memorySize uint64) (uint64, error) {
	loc := stk.Back(0)
	key := types.Hash(loc.Bytes32())
	addr := contract.Address()
	ibs := evm.IntraBlockState()

	var coldSurcharge uint64
	if _, slotWarm := ibs.SlotInAccessList(addr, key); !slotWarm {
		ibs.AddSlotToAccessList(addr, key)
		coldSurcharge = params.ColdSloadCostEIP2929
	}
	gas, err := gasSstoreEIP2200(evm, contract, stk, mem, memorySize)
	if err != nil {
		return 0, err
	}
	sum, overflow := safeAdd(gas, coldSurcharge)
	if overflow {
		return 0, ErrGasUintOverflow
	}
	return sum, nil
}

// gasSstoreEIP3529 prices SSTORE exactly as Berlin's gasSstoreEIP2929. No
// EIP-3529 clear refund is credited anywhere: nothing in the interpreter
// calls AddRefund.
func gasSstoreEIP3529(evm VMInterpreter, contract *Contract, stk *stack.Stack, mem *Memory, memorySize uint64) (uint64, error) {
	return gasSstoreEIP2929(evm, contract, stk, mem, memorySize)
}

func gasReturnDataCopy(evm VMInterpreter, contract *Contract, stk *stack.Stack, mem *Memory, memorySize uint64) (uint64, error) {
	return gasCopyWords(stk, 2, mem, memorySize)
}

func memoryReturnDataCopy(stk *stack.Stack) (uint64, bool) {
	return calcMemSize64(stk.Back(0), stk.Back(2))
}

func memoryRevert(stk *stack.Stack) (uint64, bool) {
	return calcMemSize64(stk.Back(0), stk.Back(1))
}

func memoryReturn(stk *stack.Stack) (uint64, bool) {
	return calcMemSize64(stk.Back(0), stk.Back(1))
}

// gasCreate/memoryCreate price CREATE's init-code word surcharge (EIP-3860)
// on top of the memory-expansion cost for the offset/size operands.
func gasCreate(evm VMInterpreter, contract *Contract, stk *stack.Stack, mem *Memory, memorySize uint64) (uint64, error) {
	gas, err := memoryGasCost(mem, memorySize)
	if err != nil {
		return 0, err
	}
	size, overflow := stk.Back(2).Uint64WithOverflow()
	if overflow {
		return 0, ErrGasUintOverflow
	}
	var initGas uint64
	if initGas, overflow = safeMul(toWordSize(size), 2); overflow {
		return 0, ErrGasUintOverflow
	}
	if gas, overflow = safeAdd(gas, initGas); overflow {
		return 0, ErrGasUintOverflow
	}
	return gas, nil
}

func memoryCreate(stk *stack.Stack) (uint64, bool) {
	return calcMemSize64(stk.Back(1), stk.Back(2))
}

func gasCreate2(evm VMInterpreter, contract *Contract, stk *stack.Stack, mem *Memory, memorySize uint64) (uint64, error) {
	gas, err := memoryGasCost(mem, memorySize)
	if err != nil {
		return 0, err
	}
	size, overflow := stk.Back(2).Uint64WithOverflow()
	if overflow {
		return 0, ErrGasUintOverflow
	}
	var wordGas uint64
	if wordGas, overflow = safeMul(toWordSize(size), create2WordGas); overflow {
		return 0, ErrGasUintOverflow
	}
	if gas, overflow = safeAdd(gas, wordGas); overflow {
		return 0, ErrGasUintOverflow
	}
	return gas, nil
}

func memoryCreate2(stk *stack.Stack) (uint64, bool) {
	return calcMemSize64(stk.Back(1), stk.Back(2))
}

// callValueAndNewAccountGas prices the shared CALL/CALLCODE surcharges: a
// flat fee for moving a non-zero value, plus an extra fee when the target
// account doesn't exist yet and would be implicitly created by the transfer.
func callValueAndNewAccountGas(evm VMInterpreter, addr types.Address, value *uint256.Int, checkEmpty bool) (uint64, bool) {
	var gas uint64
	var overflow bool
	transfersValue := value != nil && !value.IsZero()
	if transfersValue {
		gas = callValueTransferGas
	}
	if checkEmpty && transfersValue && evm.IntraBlockState().Empty(addr) {
		if gas, overflow = safeAdd(gas, callNewAccountGas); overflow {
			return 0, true
		}
	}
	return gas, false
}

func gasCall(evm VMInterpreter, contract *Contract, stk *stack.Stack, mem *Memory, memorySize uint64) (uint64, error) {
	gas, err := memoryGasCost(mem, memorySize)
	if err != nil {
		return 0, err
	}
	addr := types.Address(stk.Back(1).Bytes20())
	value := stk.Back(2)
	extra, overflow := callValueAndNewAccountGas(evm, addr, value, true)
	if overflow {
		return 0, ErrGasUintOverflow
	}
	if gas, overflow = safeAdd(gas, extra); overflow {
		return 0, ErrGasUintOverflow
	}
	evm.SetCallGasTemp(callGasAvailable(contract, gas, stk.Back(0)))
	return gas, nil
}

func gasCallCode(evm VMInterpreter, contract *Contract, stk *stack.Stack, mem *Memory, memorySize uint64) (uint64, error) {
	gas, err := memoryGasCost(mem, memorySize)
	if err != nil {
		return 0, err
	}
	value := stk.Back(2)
	extra, overflow := callValueAndNewAccountGas(evm, types.Address{}, value, false)
	if overflow {
		return 0, ErrGasUintOverflow
	}
	if gas, overflow = safeAdd(gas, extra); overflow {
		return 0, ErrGasUintOverflow
	}
	evm.SetCallGasTemp(callGasAvailable(contract, gas, stk.Back(0)))
	return gas, nil
}

func gasDelegateCall(evm VMInterpreter, contract *Contract, stk *stack.Stack, mem *Memory, memorySize uint64) (uint64, error) {
	gas, err := memoryGasCost(mem, memorySize)
	if err != nil {
		return 0, err
	}
	evm.SetCallGasTemp(callGasAvailable(contract, gas, stk.Back(0)))
	return gas, nil
}

func gasStaticCall(evm VMInterpreter, contract *Contract, stk *stack.Stack, mem *Memory, memorySize uint64) (uint64, error) {
	gas, err := memoryGasCost(mem, memorySize)
	if err != nil {
		return 0, err
	}
	evm.SetCallGasTemp(callGasAvailable(contract, gas, stk.Back(0)))
	return gas, nil
}

// callGasAvailable applies the 63/64ths rule (EIP-150): all-but-one-64th of
// the contract's remaining gas (after memory/surcharge costs) is forwarded to
// a sub-call. The amount requested on the stack is not consulted, so a
// call's outcome never depends on its gas argument.
func callGasAvailable(contract *Contract, costSoFar uint64, requested *uint256.Int) uint64 {
	available := uint64(0)
	if contract.Gas > costSoFar {
		available = contract.Gas - costSoFar
	}
	return available - available/64
}

func memoryCall(stk *stack.Stack) (uint64, bool) {
	x, overflow := calcMemSize64(stk.Back(5), stk.Back(6))
	if overflow {
		return x, overflow
	}
	y, overflow := calcMemSize64(stk.Back(3), stk.Back(4))
	if overflow {
		return y, overflow
	}
	if x > y {
		return x, false
	}
	return y, false
}

func memoryDelegateCall(stk *stack.Stack) (uint64, bool) {
	x, overflow := calcMemSize64(stk.Back(4), stk.Back(5))
	if overflow {
		return x, overflow
	}
	y, overflow := calcMemSize64(stk.Back(2), stk.Back(3))
	if overflow {
		return y, overflow
	}
	if x > y {
		return x, false
	}
	return y, false
}

func memoryStaticCall(stk *stack.Stack) (uint64, bool) {
	return memoryDelegateCall(stk)
}

// gasSelfdestruct is the Tangerine Whistle flat price (constantGas already
// carries Tangerine Whistle's 5000 base; this hook exists only so forks before Berlin
// that set dynamicGas explicitly have a function to point at).
func gasSelfdestruct(evm VMInterpreter, contract *Contract, stk *stack.Stack, mem *Memory, memorySize uint64) (uint64, error) {
	return 0, nil
}

// gasSelfdestructEIP3529 drops the refund SELFDESTRUCT used to grant
// pre-London (EIP-3529 removed it); gas-wise it behaves like the EIP-2929
// cold-address check SELFDESTRUCT already had since Berlin.
func gasSelfdestructEIP3529(evm VMInterpreter, contract *Contract, stk *stack.Stack, mem *Memory, memorySize uint64) (uint64, error) {
	return gasSelfdestructEIP6780(evm, contract, stk, mem, memorySize)
}
