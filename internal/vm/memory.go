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
)

// Memory is a call frame's byte-addressable scratch space. It only ever
// grows (in 32-byte words) and never shrinks within a frame's lifetime.
type Memory struct {
	store       []byte
	lastGasCost uint64
}

// NewMemory returns an empty Memory with a 4KB initial allocation to avoid
// repeated grows for typical contract executions.
func NewMemory() *Memory {
	return &Memory{store: make([]byte, 0, 4*1024)}
}

// Len returns the current size in bytes, always a multiple of 32.
func (m *Memory) Len() int {
	return len(m.store)
}

// Data returns the backing store directly.
func (m *Memory) Data() []byte {
	return m.store
}

// Reset empties the memory and clears the last-gas-cost marker used by the
// memory-expansion gas formula.
func (m *Memory) Reset() {
	m.store = m.store[:0]
	m.lastGasCost = 0
}

// Resize grows the store to size bytes, zero-filling the new region. It
// never shrinks an already-larger store.
func (m *Memory) Resize(size uint64) {
	if uint64(len(m.store)) >= size {
		return
	}
	m.store = append(m.store, make([]byte, size-uint64(len(m.store)))...)
}

// Set writes value into the store at offset, len(value) must equal size.
// A zero size is a no-op even when offset is out of range.
func (m *Memory) Set(offset, size uint64, value []byte) {
	if size == 0 {
		return
	}
	if offset+size > uint64(len(m.store)) {
		m.Resize(offset + size)
	}
	copy(m.store[offset:offset+size], value)
}

// Set32 writes val as a 32-byte big-endian word at offset.
func (m *Memory) Set32(offset uint64, val *uint256.Int) {
	if offset+32 > uint64(len(m.store)) {
		m.Resize(offset + 32)
	}
	val.WriteToSlice(m.store[offset : offset+32])
}

// GetCopy returns an independent copy of size bytes starting at offset,
// zero-padding the part that runs past the current store length. Returns
// nil for size<=0 and for an offset at or past the end of the store.
func (m *Memory) GetCopy(offset, size int64) []byte {
	if size <= 0 {
		return nil
	}
	if offset >= int64(len(m.store)) {
		return nil
	}
	cp := make([]byte, size)
	end := offset + size
	if end > int64(len(m.store)) {
		end = int64(len(m.store))
	}
	copy(cp, m.store[offset:end])
	return cp
}

// GetPtr returns a slice aliasing the internal store (no copy). Callers
// must not call this with an offset/size past the current store length;
// the interpreter always Resizes before reading.
func (m *Memory) GetPtr(offset, size int64) []byte {
	if size == 0 {
		return nil
	}
	return m.store[offset : offset+size]
}

// Copy performs an internal memmove of length bytes from src to dst,
// correct for overlapping regions.
func (m *Memory) Copy(dst, src, length uint64) {
	if length == 0 {
		return
	}
	end := dst + length
	if srcEnd := src + length; srcEnd > end {
		end = srcEnd
	}
	if end > uint64(len(m.store)) {
		m.Resize(end)
	}
	copy(m.store[dst:dst+length], m.store[src:src+length])
}
