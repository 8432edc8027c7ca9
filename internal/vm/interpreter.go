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
	"github.com/cancunvm/engine/internal/vm/stack"
)

// EVMInterpreter is the decode-dispatch loop for one EVM's call tree. It is
// created once per EVM and shared by every Computation (Contract) that EVM
// ever runs; readOnly and depth track the ambient static-context and
// call-depth state across the Run calls that push/pop the call tree.
type EVMInterpreter struct {
	evm      *EVM
	config   Config
	jt       *JumpTable
	readOnly bool
	depth    int

	returnData []byte // the most recent child frame's output, for RETURNDATA*
}

// NewEVMInterpreter returns an interpreter bound to evm, selecting the jump
// table for the chain rules active at evm's block context.
func NewEVMInterpreter(evm *EVM, config Config) *EVMInterpreter {
	jt := GetCachedJumpTable(0, evm.ChainRules())
	for _, eip := range config.ExtraEips {
		enable(eip, &jt)
	}
	return &EVMInterpreter{
		evm:    evm,
		config: config,
		jt:     &jt,
	}
}

// Depth reports the interpreter's current call-tree depth: 0 while no frame
// is running, incremented for the duration of each nested Run call.
func (in *EVMInterpreter) Depth() int { return in.depth }

// Run executes contract's code against in's shared EVM, starting at pc=0
// with input as calldata. readOnly promotes the frame (and, because
// in.readOnly is ratcheted rather than replaced, every descendant) into a
// static context for the duration of this call: once set, it remains set
// until the outermost static frame returns, matching the spec's "this
// frame or any ancestor" rule.
func (in *EVMInterpreter) Run(contract *Contract, input []byte, readOnly bool) (ret []byte, err error) {
	in.depth++
	defer func() { in.depth-- }()

	if readOnly && !in.readOnly {
		in.readOnly = true
		defer func() { in.readOnly = false }()
	}

	// Each frame starts with a clear return-data window: only the most
	// recent child's output is visible, not an ancestor's.
	in.returnData = nil

	if len(contract.Code) == 0 {
		return nil, nil
	}

	var (
		op          OpCode
		mem         = NewMemory()
		st          = stack.New()
		pc          = uint64(0)
		cost        uint64
		scope       = &ScopeContext{Stack: st, Memory: mem, Contract: contract}
	)
	defer stack.ReturnNormalStack(st)

	for {
		if in.evm.Cancelled() {
			return nil, ErrExecutionCancelled
		}

		op = contract.GetOp(pc)
		operation := in.jt[op]
		if operation == nil {
			return nil, &ErrInvalidOpCode{opcode: op}
		}

		if sLen := st.Len(); sLen < operation.numPop {
			return nil, &ErrStackUnderflow{stackLen: sLen, required: operation.numPop}
		} else if operation.numPush > 0 && sLen-operation.numPop+operation.numPush > stack.MaxStackDepth {
			return nil, &ErrStackOverflow{stackLen: sLen, limit: stack.MaxStackDepth}
		}

		cost = operation.constantGas
		if !contract.UseGas(cost) {
			return nil, ErrOutOfGas
		}

		if operation.memorySize != nil {
			memSize, overflow := operation.memorySize(st)
			if overflow {
				return nil, ErrGasUintOverflow
			}
			memSize, overflow = safeMul(toWordSize(memSize), 32)
			if overflow {
				return nil, ErrGasUintOverflow
			}
			if memSize > uint64(mem.Len()) {
				mem.Resize(memSize)
			}
		}

		if operation.dynamicGas != nil {
			dynCost, err := operation.dynamicGas(in.evm, contract, st, mem, uint64(mem.Len()))
			if err != nil {
				return nil, err
			}
			if !contract.UseGas(dynCost) {
				return nil, ErrOutOfGas
			}
		}

		res, err := operation.execute(&pc, in, scope)
		if err != nil {
			if err == errStopToken {
				return res, nil
			}
			return res, err
		}
		pc++
	}
}

// errStopToken is the sentinel STOP and RETURN opcodes halt the Run loop
// with: a normal, successful end of frame that still needs to unwind out of
// the for-loop's error check like any other halt. It never escapes Run.
var errStopToken = &stopTokenError{}

type stopTokenError struct{}

func (e *stopTokenError) Error() string { return "stop token" }
