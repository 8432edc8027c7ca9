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

// Package stack implements the 1024-word interpreter stack and the
// call-depth return-address stack (EIP-2315 style), both pooled via
// sync.Pool. The interpreter takes a fresh Stack per call frame and never
// allocates a ReturnStack.
package stack

import (
	"sync"

	"github.com/holiman/uint256"
)

// maxStackDepth is the maximum number of words the interpreter stack holds.
const maxStackDepth = 1024

var stackPool = sync.Pool{
	New: func() interface{} {
		return &Stack{data: make([]uint256.Int, 0, 16)}
	},
}

// Stack is a LIFO sequence of up to 1024 256-bit words.
type Stack struct {
	data []uint256.Int
}

// New returns a Stack drawn from the pool, empty and ready for use.
func New() *Stack {
	return stackPool.Get().(*Stack)
}

// ReturnNormalStack resets s and returns it to the pool.
func ReturnNormalStack(s *Stack) {
	s.Reset()
	stackPool.Put(s)
}

// Reset empties the stack without releasing its backing array.
func (st *Stack) Reset() {
	st.data = st.data[:0]
}

// Data exposes the backing slice, bottom-to-top order.
func (st *Stack) Data() []uint256.Int {
	return st.data
}

// Len reports the current depth.
func (st *Stack) Len() int {
	return len(st.data)
}

// Cap reports the backing array's capacity.
func (st *Stack) Cap() int {
	return cap(st.data)
}

// Push appends a copy of v. Callers are responsible for the 1024-depth
// overflow check before calling Push.
func (st *Stack) Push(v *uint256.Int) {
	st.data = append(st.data, *v)
}

// PushN pushes each value in order (first element ends up deepest).
func (st *Stack) PushN(vs ...uint256.Int) {
	st.data = append(st.data, vs...)
}

// Pop removes and returns the top element. Callers must check Len() > 0.
func (st *Stack) Pop() uint256.Int {
	n := len(st.data) - 1
	v := st.data[n]
	st.data = st.data[:n]
	return v
}

// Peek returns a mutable pointer to the top element without removing it.
func (st *Stack) Peek() *uint256.Int {
	return &st.data[len(st.data)-1]
}

// Back returns a mutable pointer to the n-th element from the top (0 = top).
func (st *Stack) Back(n int) *uint256.Int {
	return &st.data[len(st.data)-n-1]
}

// Swap exchanges the top element with the element n positions below it
// counting the top itself as position 1 (SWAPn passes n+1, so SWAP1 calls
// Swap(2) and exchanges the top two elements).
func (st *Stack) Swap(n int) {
	top := len(st.data) - 1
	below := top - n + 1
	st.data[top], st.data[below] = st.data[below], st.data[top]
}

// Dup pushes a copy of the n-th element from the top (DUP1..DUP16 pass
// n = 1..16).
func (st *Stack) Dup(n int) {
	st.data = append(st.data, st.data[len(st.data)-n])
}

var returnStackPool = sync.Pool{
	New: func() interface{} {
		return &ReturnStack{data: make([]uint32, 0, 16)}
	},
}

// ReturnStack holds the jump-back program counters pushed by the EIP-2315
// subroutine opcodes. This engine does not enable EIP-2315 by default (it
// is not part of the Cancun opcode catalogue) but keeps the primitive
// alongside Stack since the teacher's interpreter wires both from the same
// pool discipline.
type ReturnStack struct {
	data []uint32
}

// NewReturnStack returns a ReturnStack drawn from the pool.
func NewReturnStack() *ReturnStack {
	return returnStackPool.Get().(*ReturnStack)
}

// ReturnRStack resets rs and returns it to the pool.
func ReturnRStack(rs *ReturnStack) {
	rs.data = rs.data[:0]
	returnStackPool.Put(rs)
}

// Data exposes the backing slice.
func (rs *ReturnStack) Data() []uint32 {
	return rs.data
}

// Push appends pc.
func (rs *ReturnStack) Push(pc uint32) {
	rs.data = append(rs.data, pc)
}

// Pop removes and returns the top pc. Callers must check len(Data()) > 0.
func (rs *ReturnStack) Pop() uint32 {
	n := len(rs.data) - 1
	v := rs.data[n]
	rs.data = rs.data[:n]
	return v
}

// MaxStackDepth is exported for the interpreter's overflow check.
const MaxStackDepth = maxStackDepth
