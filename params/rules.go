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

package params

import "math/big"

// Rules is a flattened, comparison-free snapshot of which forks are active
// at a given block/timestamp, consulted once per call frame by the jump
// table cache and the precompile registry instead of re-comparing against
// ChainConfig's block numbers on every opcode dispatch.
//
// IsPrague and IsPectra are kept as distinct fields even though this engine
// always activates them together (see ChainConfig.Rules): go-ethereum split
// the Prague fork's consensus changes from the execution-layer "Pectra"
// bundle, and callers matching on one or the other should not have to know
// they are currently synonyms here.
type Rules struct {
	ChainID *big.Int

	IsHomestead        bool
	IsTangerineWhistle bool
	IsSpuriousDragon   bool
	IsByzantium        bool
	IsConstantinople   bool
	IsPetersburg       bool
	IsIstanbul         bool
	IsBerlin           bool
	IsLondon           bool
	IsShanghai         bool
	IsCancun           bool
	IsPrague           bool
	IsPectra           bool
	IsOsaka            bool
}
