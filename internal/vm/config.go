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
)

// Config tunes interpreter behavior. The zero value is the production
// default: no tracing hook, no extra instrumentation.
type Config struct {
	// Debug and Tracer are carried on the config only: the interpreter does
	// not read them, so no tracing hook is ever invoked.
	Debug  bool
	Tracer EVMLogger

	// NoBaseFee is carried on the config only: the interpreter does not read
	// it, and BASEFEE behaves the same whether or not it is set.
	NoBaseFee bool

	// ExtraEips lists additional EIP numbers to layer onto the fork's
	// default jump table via the activators registry (see jump_table.go).
	ExtraEips []int
}

// EVMLogger is the tracing hook surface. A minimal subset of
// go-ethereum's vm.EVMLogger: enough for step-level instrumentation
// without committing to its full structured-tracing API.
type EVMLogger interface {
	CaptureStart(from, to types.Address, create bool, input []byte, gas uint64, value *uint256.Int)
	CaptureState(pc uint64, op OpCode, gas, cost uint64, scope *ScopeContext, rData []byte, depth int, err error)
	CaptureEnd(output []byte, gasUsed uint64, err error)
	CaptureFault(pc uint64, op OpCode, gas, cost uint64, scope *ScopeContext, depth int, err error)
}
