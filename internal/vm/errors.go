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
	"errors"
	"fmt"
)

// Halting errors. Each one ends the current call frame; CALL-family and
// CREATE-family callers translate the recoverable ones into a plain
// "failed subcall" (push 0) instead of propagating further.
var (
	ErrReturnDataOutOfBounds     = errors.New("return data out of bounds")
	ErrWriteProtection           = errors.New("write protection")
	ErrDepth                     = errors.New("max call depth exceeded")
	ErrInsufficientBalance       = errors.New("insufficient balance for transfer")
	ErrContractAddressCollision  = errors.New("contract address collision")
	ErrMaxCodeSizeExceeded       = errors.New("max code size exceeded")
	ErrInvalidCode               = errors.New("invalid code: must not begin with 0xef")
	ErrInvalidJump               = errors.New("invalid jump destination")
	ErrExecutionReverted         = errors.New("execution reverted")
	ErrGasUintOverflow           = errors.New("gas uint64 overflow")
	ErrNoCompatibleInterpreter   = errors.New("no compatible interpreter")

	// ErrExecutionCancelled surfaces a host-initiated EVM.Cancel() call as a
	// halting error at the next opcode boundary.
	ErrExecutionCancelled = errors.New("execution cancelled")

	// ErrOutOfGas is scaffolding for the constantGas/dynamicGas cost
	// machinery the interpreter inherits from go-ethereum's gas-accounting
	// code path (see DESIGN.md): the specification explicitly excludes
	// correct gas metering, so every frame starts with an effectively
	// unbounded budget and this error is not expected to trigger in
	// practice, but UseGas still reports it faithfully if it ever did.
	ErrOutOfGas = errors.New("out of gas")
)

// ErrStackUnderflow reports that an opcode needed more operands than the
// stack currently holds.
type ErrStackUnderflow struct {
	stackLen int
	required int
}

func (e *ErrStackUnderflow) Error() string {
	return fmt.Sprintf("stack underflow (%d <=> %d)", e.stackLen, e.required)
}

// ErrStackOverflow reports that an opcode would push the stack past its
// 1024-word limit.
type ErrStackOverflow struct {
	stackLen int
	limit    int
}

func (e *ErrStackOverflow) Error() string {
	return fmt.Sprintf("stack limit reached %d (%d)", e.stackLen, e.limit)
}

// ErrInvalidOpCode reports that the byte at pc has no entry in the active
// jump table.
type ErrInvalidOpCode struct {
	opcode OpCode
}

func (e *ErrInvalidOpCode) Error() string {
	return fmt.Sprintf("invalid opcode: %s", e.opcode)
}
