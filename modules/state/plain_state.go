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

import (
	"encoding/binary"

	"github.com/holiman/uint256"
	"github.com/ledgerwatch/erigon-lib/kv"
	"github.com/cancunvm/engine/common/account"
	"github.com/cancunvm/engine/common/types"
	"github.com/cancunvm/engine/modules"
	"github.com/cancunvm/engine/modules/rawdb"
)

// fillStorageKey writes the AccountStorage table key (address ||
// incarnation || slot) into key, which must be exactly
// types.AddressLength+2+types.HashLength bytes.
func fillStorageKey(key []byte, addr types.Address, incarnation uint16, slot *types.Hash) {
	copy(key, addr.Bytes())
	binary.BigEndian.PutUint16(key[types.AddressLength:], incarnation)
	copy(key[types.AddressLength+2:], slot.Bytes())
}

// storageKey builds the AccountStorage table key: address || incarnation || slot.
func storageKey(addr types.Address, incarnation uint16, slot *types.Hash) []byte {
	key := make([]byte, types.AddressLength+2+types.HashLength)
	fillStorageKey(key, addr, incarnation, slot)
	return key
}

// PlainStateReader reads the latest committed account, code and storage
// values straight out of the erigon-lib key-value backend (the "plain
// state" tables, keyed by address rather than address hash).
type PlainStateReader struct {
	tx kv.Tx
}

// NewPlainStateReader wraps a read transaction for plain-state lookups.
func NewPlainStateReader(tx kv.Tx) *PlainStateReader {
	return &PlainStateReader{tx: tx}
}

func (r *PlainStateReader) ReadAccountData(address types.Address) (*account.StateAccount, error) {
	enc, err := r.tx.GetOne(modules.AccountInfo, address.Bytes())
	if err != nil {
		return nil, err
	}
	if len(enc) == 0 {
		return nil, nil
	}
	return account.DecodeRLPAccount(enc)
}

func (r *PlainStateReader) ReadAccountStorage(address types.Address, incarnation uint16, key *types.Hash) ([]byte, error) {
	return r.tx.GetOne(modules.AccountStorage, storageKey(address, incarnation, key))
}

func (r *PlainStateReader) ReadAccountCode(address types.Address, incarnation uint16, codeHash types.Hash) ([]byte, error) {
	if codeHash == account.EmptyCodeHash {
		return nil, nil
	}
	return r.tx.GetOne(modules.Code, codeHash.Bytes())
}

func (r *PlainStateReader) ReadAccountCodeSize(address types.Address, incarnation uint16, codeHash types.Hash) (int, error) {
	code, err := r.ReadAccountCode(address, incarnation, codeHash)
	if err != nil {
		return 0, err
	}
	return len(code), nil
}

func (r *PlainStateReader) ReadAccountIncarnation(address types.Address) (uint16, error) {
	data, err := r.ReadAccountData(address)
	if err != nil || data == nil {
		return 0, err
	}
	return data.Incarnation, nil
}

// PlainStateWriter persists IntraBlockState.Finalise output back into the
// plain-state tables through a batched read-write transaction. Change-set
// tracking (WriteChangeSets/WriteHistory) is a placeholder: this engine
// keeps no history index, only the latest value per key, consistent with
// its non-goal of reorg/history support.
type PlainStateWriter struct {
	batch *rawdb.BatchWriter
}

// NewPlainStateWriter wraps a read-write transaction for plain-state
// writes. Every Put/Delete runs through a rawdb.BatchWriter so a host
// replaying a large StateDiff can watch PendingWrites and flush (commit
// the underlying tx) on its own cadence instead of per-account.
func NewPlainStateWriter(tx kv.RwTx) *PlainStateWriter {
	return &PlainStateWriter{batch: rawdb.NewBatchWriter(tx, 0)}
}

// PendingWrites reports how many Put/Delete calls this writer has issued
// since construction or the last Reset.
func (w *PlainStateWriter) PendingWrites() int { return w.batch.Pending() }

// Reset zeroes the pending-write counter without touching the underlying
// transaction; call it after a host-level commit point.
func (w *PlainStateWriter) Reset() { w.batch.Reset() }

func (w *PlainStateWriter) UpdateAccountData(address types.Address, original, acc *account.StateAccount) error {
	enc := acc.EncodeRLP()
	buf := rawdb.GetValueBuffer(len(enc))
	copy(buf, enc)
	err := w.batch.Put(modules.AccountInfo, address.Bytes(), buf)
	rawdb.PutValueBuffer(buf)
	return err
}

func (w *PlainStateWriter) UpdateAccountCode(address types.Address, incarnation uint16, codeHash types.Hash, code []byte) error {
	if codeHash == account.EmptyCodeHash || len(code) == 0 {
		return nil
	}
	return w.batch.Put(modules.Code, codeHash.Bytes(), code)
}

func (w *PlainStateWriter) DeleteAccount(address types.Address, original *account.StateAccount) error {
	return w.batch.Delete(modules.AccountInfo, address.Bytes())
}

func (w *PlainStateWriter) WriteAccountStorage(address types.Address, incarnation uint16, key *types.Hash, original, value *uint256.Int) error {
	k := rawdb.StorageKeyBuffer.Get()
	fillStorageKey(k, address, incarnation, key)
	defer rawdb.StorageKeyBuffer.Put(k)

	if value == nil || value.IsZero() {
		return w.batch.Delete(modules.AccountStorage, k)
	}
	buf := rawdb.GetValueBuffer(len(value.Bytes()))
	copy(buf, value.Bytes())
	err := w.batch.Put(modules.AccountStorage, k, buf)
	rawdb.PutValueBuffer(buf)
	return err
}

func (w *PlainStateWriter) CreateContract(address types.Address) error {
	return nil
}

func (w *PlainStateWriter) WriteChangeSets() error {
	return nil
}

func (w *PlainStateWriter) WriteHistory() error {
	return nil
}

// HistoryStateReader reads account/storage/code values as of a specific
// past block number. This engine keeps no change-history index (see
// PlainStateWriter), so it always serves the latest committed value; the
// blockNumber field is retained so call sites written against a historical
// reader compile and behave sensibly against a single-snapshot backend.
type HistoryStateReader struct {
	tx          kv.Tx
	blockNumber uint64
	*PlainStateReader
}

// NewHistoryStateReader wraps a read transaction for state as of blockNumber.
func NewHistoryStateReader(tx kv.Tx, blockNumber uint64) *HistoryStateReader {
	return &HistoryStateReader{
		tx:               tx,
		blockNumber:      blockNumber,
		PlainStateReader: NewPlainStateReader(tx),
	}
}

// BlockNumber returns the historical point this reader was opened at.
func (r *HistoryStateReader) BlockNumber() uint64 {
	return r.blockNumber
}
