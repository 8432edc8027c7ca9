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
	"math"
	"math/bits"

	"github.com/holiman/uint256"
)

// Per-opcode constant gas tiers, carried over from go-ethereum's naming so
// the jump table's constantGas fields read the same way. The specification
// does not require metering these against a real budget (see Contract.Gas
// and errors.go's ErrOutOfGas doc comment); they stay wired into every
// operation purely so the dynamicGas helpers below have the tier constants
// they were written against.
const (
	GasQuickStep   uint64 = 2
	GasFastestStep uint64 = 3
	GasFastStep    uint64 = 5
	GasMidStep     uint64 = 8
	GasSlowStep    uint64 = 10
	GasExtStep     uint64 = 20
)

// memoryGasWordCost and memoryGasQuadCoeff implement go-ethereum's memory
// expansion formula: 3*words + words^2/512.
const (
	memoryGasWordCost  = 3
	memoryGasQuadCoeff = 512
)

// toWordSize rounds size up to the nearest multiple of 32, returning the
// word count.
func toWordSize(size uint64) uint64 {
	if size > math.MaxUint64-31 {
		return math.MaxUint64/32 + 1
	}
	return (size + 31) / 32
}

// safeAdd returns a+b along with whether the addition overflowed uint64.
func safeAdd(a, b uint64) (uint64, bool) {
	sum, carry := bits.Add64(a, b, 0)
	return sum, carry != 0
}

// safeMul returns a*b along with whether the multiplication overflowed uint64.
func safeMul(a, b uint64) (uint64, bool) {
	if a == 0 || b == 0 {
		return 0, false
	}
	hi, lo := bits.Mul64(a, b)
	return lo, hi != 0
}

// calcMemSize64 returns the number of bytes (off+size, both taken from stack
// words) memory must cover, and whether that computation overflowed. A zero
// size never requires expansion regardless of offset.
func calcMemSize64(off, length *uint256.Int) (uint64, bool) {
	if length.IsZero() {
		return 0, false
	}
	if !off.IsUint64() || !length.IsUint64() {
		return 0, true
	}
	sum, overflow := safeAdd(off.Uint64(), length.Uint64())
	return sum, overflow
}

// memoryGasCost returns the incremental cost of expanding memory to
// newMemSize bytes, relative to the memory's last charged size.
func memoryGasCost(mem *Memory, newMemSize uint64) (uint64, error) {
	if newMemSize == 0 {
		return 0, nil
	}
	if newMemSize > math.MaxUint64-31 {
		return 0, ErrGasUintOverflow
	}

	newMemSizeWords := toWordSize(newMemSize)
	newMemSize = newMemSizeWords * 32

	if newMemSize > uint64(mem.Len()) {
		square := newMemSizeWords * newMemSizeWords
		linCoef := newMemSizeWords * memoryGasWordCost
		quadCoef := square / memoryGasQuadCoeff
		newTotalFee := linCoef + quadCoef

		fee := newTotalFee - mem.lastGasCost
		mem.lastGasCost = newTotalFee
		return fee, nil
	}
	return 0, nil
}
