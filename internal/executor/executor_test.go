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

package executor

import (
	"bytes"
	"testing"

	"github.com/holiman/uint256"

	"github.com/cancunvm/engine/common/crypto"
	"github.com/cancunvm/engine/common/types"
)

func testBlockContext() BlockContext {
	return BlockContext{
		Number:      1,
		Timestamp:   1700000000,
		Coinbase:    types.HexToAddress("0xc0ffee0000000000000000000000000000c0ff"),
		BaseFee:     uint256.NewInt(1_000_000_000),
		GasLimit:    30_000_000,
		BlobBaseFee: uint256.NewInt(1),
	}
}

// bytecode: decrements mem[0] from 5 to 0 via a JUMPI loop, then STOPs.
// PUSH1 5 PUSH1 0 MSTORE JUMPDEST PUSH1 0 MLOAD PUSH1 1 SWAP1 SUB DUP1
// PUSH1 0 MSTORE PUSH1 0 EQ ISZERO PUSH1 0x05 JUMPI STOP
var loopCode = []byte{
	0x60, 0x05, 0x60, 0x00, 0x52,
	0x5b,
	0x60, 0x00, 0x51, 0x60, 0x01, 0x90, 0x03, 0x80,
	0x60, 0x00, 0x52,
	0x60, 0x00, 0x14, 0x15,
	0x60, 0x05, 0x57,
	0x00,
}

func TestExecuteBytecode_Loop(t *testing.T) {
	sender := types.HexToAddress("0x1111111111111111111111111111111111111111")
	target := types.HexToAddress("0x2222222222222222222222222222222222222222")

	res := ExecuteBytecode(nil, sender, target, nil, nil, loopCode, testBlockContext())
	if res.Error != nil {
		t.Fatalf("unexpected error: %v", res.Error)
	}
	if !res.Success {
		t.Fatalf("expected success, got reverted=%v", res.Reverted)
	}
}

// bytecode: PUSH1 0x2A PUSH1 0x00 MSTORE PUSH1 0x20 PUSH1 0x00 REVERT
var revertCode = []byte{
	0x60, 0x2A, 0x60, 0x00, 0x52,
	0x60, 0x20, 0x60, 0x00, 0xFD,
}

func TestExecuteBytecode_Revert(t *testing.T) {
	sender := types.HexToAddress("0x1111111111111111111111111111111111111111")
	target := types.HexToAddress("0x2222222222222222222222222222222222222222")

	res := ExecuteBytecode(nil, sender, target, nil, nil, revertCode, testBlockContext())
	if res.Error != nil {
		t.Fatalf("unexpected error: %v", res.Error)
	}
	if !res.Reverted {
		t.Fatalf("expected Reverted=true")
	}
	want := make([]byte, 32)
	want[31] = 0x2A
	if !bytes.Equal(res.Output, want) {
		t.Fatalf("revert output = %x, want %x", res.Output, want)
	}
	if res.StateDiff != nil {
		t.Fatalf("a reverted root frame must not produce a state diff")
	}
}

// initcode: PUSH1 0 PUSH1 0 RETURN -- deploys empty code.
var emptyInitcode = []byte{0x60, 0x00, 0x60, 0x00, 0xF3}

func TestExecuteBytecode_Create(t *testing.T) {
	sender := types.HexToAddress("0x3333333333333333333333333333333333333333")

	res := ExecuteBytecode(nil, sender, types.Address{}, nil, nil, emptyInitcode, testBlockContext())
	if res.Error != nil {
		t.Fatalf("unexpected error: %v", res.Error)
	}
	if !res.Success {
		t.Fatalf("expected success")
	}
	if res.ContractAddress == nil {
		t.Fatalf("expected a contract address for a creation message")
	}
	if res.StateDiff == nil {
		t.Fatalf("expected a state diff recording the new account")
	}
	if _, ok := res.StateDiff.UpdatedAccounts[*res.ContractAddress]; !ok {
		t.Fatalf("state diff missing the newly created account %s", res.ContractAddress.Hex())
	}
}

// bytecode: SSTORE(slot=1, 0xAB); SSTORE(slot=1, 0); STOP.
// PUSH1 0xAB PUSH1 1 SSTORE PUSH1 0 PUSH1 1 SSTORE STOP
var sstoreToZeroCode = []byte{
	0x60, 0xAB, 0x60, 0x01, 0x55,
	0x60, 0x00, 0x60, 0x01, 0x55,
	0x00,
}

func TestExecuteBytecode_SstoreToZeroDeletes(t *testing.T) {
	sender := types.HexToAddress("0x1111111111111111111111111111111111111111")
	target := types.HexToAddress("0x2222222222222222222222222222222222222222")

	res := ExecuteBytecode(nil, sender, target, nil, nil, sstoreToZeroCode, testBlockContext())
	if res.Error != nil {
		t.Fatalf("unexpected error: %v", res.Error)
	}
	if !res.Success {
		t.Fatalf("expected success")
	}
	if res.StateDiff == nil {
		t.Fatalf("expected a state diff")
	}
	if slots, ok := res.StateDiff.UpdatedStorage[target]; ok {
		if _, present := slots[types.HexToHash("0x01")]; present {
			t.Fatalf("slot 1 must be absent from the committed diff after SSTORE-to-zero")
		}
	}
}

func TestExecuteBytecode_InvalidOpcodeHalts(t *testing.T) {
	sender := types.HexToAddress("0x1111111111111111111111111111111111111111")
	target := types.HexToAddress("0x2222222222222222222222222222222222222222")

	res := ExecuteBytecode(nil, sender, target, nil, nil, []byte{0xFE}, testBlockContext())
	if res.Success {
		t.Fatalf("expected failure for INVALID opcode")
	}
	if res.Error == nil {
		t.Fatalf("expected a root-frame error")
	}
	if res.StateDiff != nil {
		t.Fatalf("a root-frame error must discard all state")
	}
}

// bytecode: ADDMOD(10, 10, 8) -> 4, stored and returned.
// PUSH1 8 PUSH1 10 PUSH1 10 ADDMOD PUSH1 0 MSTORE PUSH1 0x20 PUSH1 0 RETURN
var addmodCode = []byte{
	0x60, 0x08, 0x60, 0x0a, 0x60, 0x0a, 0x08,
	0x60, 0x00, 0x52,
	0x60, 0x20, 0x60, 0x00, 0xF3,
}

func TestExecuteBytecode_Addmod(t *testing.T) {
	sender := types.HexToAddress("0x1111111111111111111111111111111111111111")
	target := types.HexToAddress("0x2222222222222222222222222222222222222222")

	res := ExecuteBytecode(nil, sender, target, nil, nil, addmodCode, testBlockContext())
	if res.Error != nil {
		t.Fatalf("unexpected error: %v", res.Error)
	}
	if !res.Success {
		t.Fatalf("expected success")
	}
	want := make([]byte, 32)
	want[31] = 4
	if !bytes.Equal(res.Output, want) {
		t.Fatalf("ADDMOD(10, 10, 8) = %x, want %x", res.Output, want)
	}
}

// initcode embedded in emptyInitcode (PUSH1 0 PUSH1 0 RETURN) is deployed
// twice via CREATE2 with the same salt, so the two derived addresses must
// be identical and the second deployment must collide against the first.
//
// PUSH5 <emptyInitcode> PUSH1 0 MSTORE
// PUSH1 0 PUSH1 5 PUSH1 27 PUSH1 0 CREATE2   (salt=0, size=5, offset=27, value=0)
// PUSH1 32 MSTORE
// PUSH1 0 PUSH1 5 PUSH1 27 PUSH1 0 CREATE2   (identical call: must collide)
// PUSH1 64 MSTORE
// PUSH1 64 PUSH1 32 RETURN
var create2TwiceCode = []byte{
	0x64, 0x60, 0x00, 0x60, 0x00, 0xF3,
	0x60, 0x00, 0x52,
	0x60, 0x00, 0x60, 0x05, 0x60, 0x1b, 0x60, 0x00, 0xf5,
	0x60, 0x20, 0x52,
	0x60, 0x00, 0x60, 0x05, 0x60, 0x1b, 0x60, 0x00, 0xf5,
	0x60, 0x40, 0x52,
	0x60, 0x40, 0x60, 0x20, 0xf3,
}

func TestExecuteBytecode_Create2DeterministicAndCollides(t *testing.T) {
	sender := types.HexToAddress("0x1111111111111111111111111111111111111111")
	target := types.HexToAddress("0x2222222222222222222222222222222222222222")

	res := ExecuteBytecode(nil, sender, target, nil, nil, create2TwiceCode, testBlockContext())
	if res.Error != nil {
		t.Fatalf("unexpected error: %v", res.Error)
	}
	if !res.Success {
		t.Fatalf("expected success, got reverted=%v", res.Reverted)
	}
	if len(res.Output) != 64 {
		t.Fatalf("expected 64 bytes of output, got %d", len(res.Output))
	}

	wantAddr := crypto.CreateAddress2(target, [32]byte{}, crypto.Keccak256(emptyInitcode))
	firstAddr := types.BytesToAddress(res.Output[12:32])
	if firstAddr != wantAddr {
		t.Fatalf("first CREATE2 address = %s, want %s", firstAddr.Hex(), wantAddr.Hex())
	}

	secondWord := res.Output[32:64]
	if !bytes.Equal(secondWord, make([]byte, 32)) {
		t.Fatalf("second CREATE2 at the same address must collide and push 0, got %x", secondWord)
	}
}

// A contract that performs CREATE then STATICCALLs the freshly deployed
// code, which tries to SSTORE. The callee must halt with the static-context
// write-protection error, STATICCALL must push 0, and the caller's own
// execution must otherwise complete normally.
//
// callee initcode: PUSH6 <runtime: PUSH1 1 PUSH1 1 SSTORE STOP> PUSH1 0 MSTORE
//                  PUSH1 6 PUSH1 26 RETURN                              (15 bytes)
//
// caller: PUSH1 0 PUSH1 0 PUSH1 0 PUSH1 0              (retSize, retOffset, inSize, inOffset)
//         PUSH15 <callee initcode> PUSH1 0 MSTORE
//         PUSH1 15 PUSH1 17 PUSH1 0 CREATE             (size=15, offset=17, value=0)
//         PUSH1 0 STATICCALL                           (gas dummy, then STATICCALL)
//         PUSH1 0 MSTORE PUSH1 0x20 PUSH1 0 RETURN
var staticViolationCode = []byte{
	0x60, 0x00, 0x60, 0x00, 0x60, 0x00, 0x60, 0x00,
	0x6e,
	0x65, 0x60, 0x01, 0x60, 0x01, 0x55, 0x00,
	0x60, 0x00, 0x52, 0x60, 0x06, 0x60, 0x1a, 0xF3,
	0x60, 0x00, 0x52,
	0x60, 0x0f, 0x60, 0x11, 0x60, 0x00, 0xf0,
	0x60, 0x00, 0xfa,
	0x60, 0x00, 0x52, 0x60, 0x20, 0x60, 0x00, 0xf3,
}

func TestExecuteBytecode_StaticCallIntoSstoreRejected(t *testing.T) {
	sender := types.HexToAddress("0x1111111111111111111111111111111111111111")
	target := types.HexToAddress("0x2222222222222222222222222222222222222222")

	res := ExecuteBytecode(nil, sender, target, nil, nil, staticViolationCode, testBlockContext())
	if res.Error != nil {
		t.Fatalf("unexpected error: %v", res.Error)
	}
	if !res.Success {
		t.Fatalf("expected the caller frame to succeed despite the callee's rejected STATICCALL")
	}
	want := make([]byte, 32)
	if !bytes.Equal(res.Output, want) {
		t.Fatalf("STATICCALL into an SSTORE must push 0, got %x", res.Output)
	}

	calleeAddr := crypto.CreateAddress(target, 0)
	if res.StateDiff == nil {
		t.Fatalf("expected a state diff recording the deployed callee")
	}
	if slots, ok := res.StateDiff.UpdatedStorage[calleeAddr]; ok {
		if _, present := slots[types.HexToHash("0x01")]; present {
			t.Fatalf("callee's SSTORE must not have taken effect under STATICCALL")
		}
	}
}
