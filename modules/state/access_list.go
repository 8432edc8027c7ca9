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

package state

import "github.com/cancunvm/engine/common/types"

// accessList is the EIP-2929/EIP-2930 warm/cold access tracker. Addresses
// map to an index into slots, the set of storage slots that have been
// touched; an index of -1 means only the address itself is warm.
type accessList struct {
	addresses map[types.Address]int
	slots     []map[types.Hash]struct{}
}

// newAccessList creates a new empty access list.
func newAccessList() *accessList {
	return &accessList{
		addresses: make(map[types.Address]int),
	}
}

// ContainsAddress returns true if the address is warm.
func (al *accessList) ContainsAddress(address types.Address) bool {
	_, ok := al.addresses[address]
	return ok
}

// Contains checks whether address and slot are warm. If the address is
// missing entirely, both return values are false. If the address exists but
// the slot is not tracked, addressPresent is true and slotPresent is false.
func (al *accessList) Contains(address types.Address, slot types.Hash) (addressPresent, slotPresent bool) {
	idx, ok := al.addresses[address]
	if !ok {
		return false, false
	}
	if idx == -1 {
		return true, false
	}
	_, slotPresent = al.slots[idx][slot]
	return true, slotPresent
}

// AddAddress warms the address. Returns true if it was not previously warm.
func (al *accessList) AddAddress(address types.Address) bool {
	if _, ok := al.addresses[address]; ok {
		return false
	}
	al.addresses[address] = -1
	return true
}

// AddSlot warms (address, slot). Returns whether the address and the slot
// were newly added.
func (al *accessList) AddSlot(address types.Address, slot types.Hash) (addrChange bool, slotChange bool) {
	idx, addrPresent := al.addresses[address]
	if !addrPresent || idx == -1 {
		al.slots = append(al.slots, map[types.Hash]struct{}{})
		idx = len(al.slots) - 1
		al.addresses[address] = idx
		addrChange = !addrPresent
	}
	if _, ok := al.slots[idx][slot]; !ok {
		al.slots[idx][slot] = struct{}{}
		slotChange = true
	}
	return addrChange, slotChange
}

// DeleteSlot removes a slot from an address's warm set. It must only be
// used to revert changes made in the same transaction.
func (al *accessList) DeleteSlot(address types.Address, slot types.Hash) {
	idx, ok := al.addresses[address]
	if !ok || idx == -1 {
		return
	}
	delete(al.slots[idx], slot)
}

// DeleteAddress removes an address from the access list. It must only be
// used to revert changes made in the same transaction.
func (al *accessList) DeleteAddress(address types.Address) {
	delete(al.addresses, address)
}

// Copy returns an independent copy of the access list.
func (al *accessList) Copy() *accessList {
	cp := &accessList{
		addresses: make(map[types.Address]int, len(al.addresses)),
		slots:     make([]map[types.Hash]struct{}, len(al.slots)),
	}
	for k, v := range al.addresses {
		cp.addresses[k] = v
	}
	for i, slotMap := range al.slots {
		newSlots := make(map[types.Hash]struct{}, len(slotMap))
		for k := range slotMap {
			newSlots[k] = struct{}{}
		}
		cp.slots[i] = newSlots
	}
	return cp
}
