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
	"github.com/cancunvm/engine/common/types"
	"github.com/cancunvm/engine/internal/vm/precompiles"
)

// PrecompiledContract is the interface every precompiled contract (addresses
// 0x01 through 0x0a and beyond) implements: a pure, stateless transform from
// input bytes to output bytes, priced independently of the interpreter's own
// gas accounting. The canonical definition lives in internal/vm/precompiles
// so that package can stay free of any dependency back on this one.
type PrecompiledContract = precompiles.PrecompiledContract

// PrecompileRegistry looks up and runs precompiled contracts for a given set
// of chain rules. internal/vm/precompiles.Registry is the sole implementation;
// the interface exists so the interpreter depends only on this package.
type PrecompileRegistry interface {
	Lookup(addr types.Address) (PrecompiledContract, bool)
	Run(addr types.Address, input []byte, suppliedGas uint64) ([]byte, uint64, error)
	ActivePrecompiles() []types.Address
	Has(addr types.Address) bool
}
