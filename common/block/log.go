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

// Package block carries the small set of block-adjacent record types the
// execution engine produces: LOG entries. Full block/header/body encoding
// is outside this engine's scope.
package block

import "github.com/cancunvm/engine/common/types"

// Log is a single LOG0..LOG4 event emitted by a contract during execution.
type Log struct {
	Address types.Address
	Topics  []types.Hash
	Data    []byte

	// BlockNumber, TxHash, TxIndex, Index are filled in by the caller that
	// embeds this engine in a larger block-processing pipeline; the engine
	// itself only ever sets Address, Topics and Data.
	BlockNumber uint64
	TxHash      types.Hash
	TxIndex     uint
	Index       uint
	Removed     bool
}

// Copy returns a deep copy of the log, safe to retain past a snapshot revert.
func (l *Log) Copy() *Log {
	cp := *l
	cp.Topics = append([]types.Hash(nil), l.Topics...)
	cp.Data = append([]byte(nil), l.Data...)
	return &cp
}
