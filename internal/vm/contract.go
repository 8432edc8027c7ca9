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

// ContractRef is anything with an address: a live Contract or a bare
// AccountRef (used for accounts that are never actually executed, e.g.
// the sender of a top-level message).
type ContractRef interface {
	Address() types.Address
}

// AccountRef wraps an address as a ContractRef without any associated code.
type AccountRef types.Address

// Address returns the wrapped address.
func (ar AccountRef) Address() types.Address { return (types.Address)(ar) }

// Contract is the running state of one call frame's target: its code, the
// caller/value it was invoked with, and the gas it still has to spend.
type Contract struct {
	CallerAddress types.Address
	caller        ContractRef
	self          ContractRef

	jumpdests map[types.Hash][]uint64 // shared cache of jumpdest analyses, keyed by code hash
	analysis  []uint64                // this contract's own analysis, once computed

	Code     []byte
	CodeHash types.Hash
	CodeAddr *types.Address
	Input    []byte

	Gas   uint64
	value *uint256.Int

	skipAnalysis bool
	IsDeployment bool
}

// NewContract returns a Contract for a call from caller into object,
// carrying value and an initial gas budget. skipAnalysis makes validJumpdest
// accept any JUMPDEST byte without checking whether it lies inside PUSH
// data; every frame EVM creates passes false.
func NewContract(caller, object ContractRef, value *uint256.Int, gas uint64, skipAnalysis bool) *Contract {
	c := &Contract{
		CallerAddress: caller.Address(),
		caller:        caller,
		self:          object,
		Gas:           gas,
		value:         value,
		skipAnalysis:  skipAnalysis,
	}

	if parent, ok := caller.(*Contract); ok {
		c.jumpdests = parent.jumpdests
	} else {
		c.jumpdests = make(map[types.Hash][]uint64)
	}
	return c
}

// Address returns the contract's own address (the storage/code owner).
func (c *Contract) Address() types.Address { return c.self.Address() }

// Caller returns the address that invoked this frame.
func (c *Contract) Caller() types.Address { return c.CallerAddress }

// Value returns the wei value attached to this call.
func (c *Contract) Value() *uint256.Int { return c.value }

// UseGas deducts gas from the remaining budget, reporting false (and
// leaving Gas unchanged) if the budget would go negative.
func (c *Contract) UseGas(gas uint64) bool {
	if c.Gas < gas {
		return false
	}
	c.Gas -= gas
	return true
}

// RefundGas credits gas back to the remaining budget.
func (c *Contract) RefundGas(gas uint64) {
	c.Gas += gas
}

// GetOp returns the opcode at position n, or STOP past the end of Code.
func (c *Contract) GetOp(n uint64) OpCode {
	if n < uint64(len(c.Code)) {
		return OpCode(c.Code[n])
	}
	return STOP
}

// SetCallCode sets the code this frame executes along with its address and
// hash, used by CALL/CALLCODE/DELEGATECALL/STATICCALL where the executing
// code may belong to an address other than Address() (DELEGATECALL/
// CALLCODE run the target's code against the caller's storage).
func (c *Contract) SetCallCode(addr *types.Address, hash types.Hash, code []byte) {
	c.Code = code
	c.CodeHash = hash
	c.CodeAddr = addr
}

// AsDelegate configures the contract for DELEGATECALL semantics: the
// caller address and value are inherited from the parent frame rather
// than the immediate invoker, so CALLER/CALLVALUE observe the original
// values throughout a chain of delegate calls.
func (c *Contract) AsDelegate() *Contract {
	parent := c.caller.(*Contract)
	c.CallerAddress = parent.CallerAddress
	c.value = parent.value
	return c
}

// jumpdestAnalysis returns the memoized set of valid JUMPDEST positions for
// this contract's code, computing and caching it on first use. The cache is
// keyed by code hash and shared across every frame in the call tree via the
// jumpdests map Contract inherits from its caller, so identical code
// analyzed once in a transaction is never re-walked.
func (c *Contract) jumpdestAnalysis() []uint64 {
	if c.analysis != nil {
		return c.analysis
	}
	if cached, ok := c.jumpdests[c.CodeHash]; ok {
		c.analysis = cached
		return cached
	}
	analysis := codeBitmap(c.Code)
	c.jumpdests[c.CodeHash] = analysis
	c.analysis = analysis
	return analysis
}

// validJumpdest reports whether dest is both in range and not ambiguous.
// skipAnalysis contracts fall back to a direct byte check that does not
// look for PUSH data.
func (c *Contract) validJumpdest(dest *uint256.Int) bool {
	udest, overflow := dest.Uint64WithOverflow()
	if overflow || udest >= uint64(len(c.Code)) {
		return false
	}
	if OpCode(c.Code[udest]) != JUMPDEST {
		return false
	}
	if c.skipAnalysis {
		return true
	}
	return bitvecSet(c.jumpdestAnalysis(), udest)
}

// codeBitmap walks code once, marking every byte index that is a PUSH
// immediate byte (as opposed to a genuine instruction start) with a set bit,
// mirroring go-ethereum's eof-free jumpdest analysis.
func codeBitmap(code []byte) []uint64 {
	bits := make([]uint64, (len(code)/64)+1)
	for pc := 0; pc < len(code); {
		op := OpCode(code[pc])
		if op.IsPush() && op != PUSH0 {
			numbits := op.PushSize()
			pc++
			for ; numbits >= 8; numbits -= 8 {
				setBits8(bits, uint64(pc))
				pc += 8
			}
			for ; numbits > 0; numbits-- {
				setBit(bits, uint64(pc))
				pc++
			}
			continue
		}
		pc++
	}
	return bits
}

// bitvecSet returns true when bit pos in the *code* bitmap is itself an
// instruction start, i.e. is NOT marked as a push-immediate byte.
func bitvecSet(bits []uint64, pos uint64) bool {
	return bits[pos/64]&(1<<(pos%64)) == 0
}

func setBit(bits []uint64, pos uint64) {
	bits[pos/64] |= 1 << (pos % 64)
}

func setBits8(bits []uint64, pos uint64) {
	for i := uint64(0); i < 8; i++ {
		setBit(bits, pos+i)
	}
}
