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

//nolint:scopelint
package state

import (
	"github.com/holiman/uint256"
	"github.com/cancunvm/engine/common/account"
	"github.com/cancunvm/engine/common/types"
)

const (
	//FirstContractIncarnation - first incarnation for contract accounts. After 1 it increases by 1.
	FirstContractIncarnation = 1
	//NonContractIncarnation incarnation for non contracts
	NonContractIncarnation = 0
)

// Note: StateReader, StateWriter, and WriterWithChangeSets interfaces
// are now defined in interfaces.go for better organization.

// NoopWriter is a StateWriter implementation that does nothing.
// Useful for testing or when state changes should be discarded.
type NoopWriter struct {
}

var noopWriter = &NoopWriter{}

func NewNoopWriter() *NoopWriter {
	return noopWriter
}

func (nw *NoopWriter) UpdateAccountData(address types.Address, original, account *account.StateAccount) error {
	return nil
}

func (nw *NoopWriter) DeleteAccount(address types.Address, original *account.StateAccount) error {
	return nil
}

func (nw *NoopWriter) UpdateAccountCode(address types.Address, incarnation uint16, codeHash types.Hash, code []byte) error {
	return nil
}

func (nw *NoopWriter) WriteAccountStorage(address types.Address, incarnation uint16, key *types.Hash, original, value *uint256.Int) error {
	return nil
}

func (nw *NoopWriter) CreateContract(address types.Address) error {
	return nil
}

func (nw *NoopWriter) WriteChangeSets() error {
	return nil
}

func (nw *NoopWriter) WriteHistory() error {
	return nil
}

// NoopReader is a StateReader implementation that reports every account,
// storage slot and code lookup as absent. Used when an IntraBlockState runs
// over synthetic, purely in-memory account data (no persistent backend).
type NoopReader struct{}

var noopReader = &NoopReader{}

// NewNoopReader returns the shared no-op reader instance.
func NewNoopReader() *NoopReader {
	return noopReader
}

func (nr *NoopReader) ReadAccountData(address types.Address) (*account.StateAccount, error) {
	return nil, nil
}

func (nr *NoopReader) ReadAccountStorage(address types.Address, incarnation uint16, key *types.Hash) ([]byte, error) {
	return nil, nil
}

func (nr *NoopReader) ReadAccountCode(address types.Address, incarnation uint16, codeHash types.Hash) ([]byte, error) {
	return nil, nil
}

func (nr *NoopReader) ReadAccountCodeSize(address types.Address, incarnation uint16, codeHash types.Hash) (int, error) {
	return 0, nil
}

func (nr *NoopReader) ReadAccountIncarnation(address types.Address) (uint16, error) {
	return 0, nil
}
