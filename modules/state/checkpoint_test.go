// Copyright 2022-2026 The N42 Authors
// This file is part of the N42 library.
//
// Checkpoint soundness: Snapshot()/RevertToSnapshot() must leave the
// observable state exactly as it was immediately before the matching
// Snapshot() call, across every kind of mutation the journal tracks.

package state

import (
	"testing"

	"github.com/holiman/uint256"
	"github.com/cancunvm/engine/common/block"
	"github.com/cancunvm/engine/common/types"
)

func TestRevertToSnapshotRestoresBalance(t *testing.T) {
	s := NewIntraBlockState(nil)
	addr := types.HexToAddress("0x1111111111111111111111111111111111111111")

	s.AddBalance(addr, uint256.NewInt(100))
	before := s.GetBalance(addr).Clone()

	id := s.Snapshot()
	s.AddBalance(addr, uint256.NewInt(50))
	if got := s.GetBalance(addr); got.Cmp(uint256.NewInt(150)) != 0 {
		t.Fatalf("expected 150 mid-checkpoint, got %s", got)
	}

	s.RevertToSnapshot(id)
	if got := s.GetBalance(addr); got.Cmp(before) != 0 {
		t.Errorf("balance not restored: expected %s, got %s", before, got)
	}
}

func TestRevertToSnapshotRestoresNonceAndCode(t *testing.T) {
	s := NewIntraBlockState(nil)
	addr := types.HexToAddress("0x2222222222222222222222222222222222222222")

	s.SetNonce(addr, 1)
	s.SetCode(addr, []byte{0x60, 0x00})
	beforeHash := s.GetCodeHash(addr)

	id := s.Snapshot()
	s.SetNonce(addr, 2)
	s.SetCode(addr, []byte{0x60, 0x01, 0x60, 0x02})

	s.RevertToSnapshot(id)
	if got := s.GetNonce(addr); got != 1 {
		t.Errorf("nonce not restored: expected 1, got %d", got)
	}
	if got := s.GetCodeHash(addr); got != beforeHash {
		t.Errorf("code hash not restored: expected %s, got %s", beforeHash, got)
	}
	if got := s.GetCode(addr); string(got) != "\x60\x00" {
		t.Errorf("code not restored: got %x", got)
	}
}

func TestRevertToSnapshotRestoresStorage(t *testing.T) {
	s := NewIntraBlockState(nil)
	addr := types.HexToAddress("0x3333333333333333333333333333333333333333")
	slot := types.BytesToHash([]byte{0x01})

	s.SetState(addr, &slot, *uint256.NewInt(0xAB))

	id := s.Snapshot()
	s.SetState(addr, &slot, *uint256.NewInt(0xCD))

	var mid uint256.Int
	s.GetState(addr, &slot, &mid)
	if mid.Cmp(uint256.NewInt(0xCD)) != 0 {
		t.Fatalf("expected 0xCD mid-checkpoint, got %s", &mid)
	}

	s.RevertToSnapshot(id)

	var after uint256.Int
	s.GetState(addr, &slot, &after)
	if after.Cmp(uint256.NewInt(0xAB)) != 0 {
		t.Errorf("storage not restored: expected 0xAB, got %s", &after)
	}
}

// TestRevertToSnapshotDropsSstoreToZeroDeletion exercises the concrete
// scenario from §8: SSTORE(slot, v); SSTORE(slot, 0) deletes the slot, and
// a revert of the deleting write brings the original value back.
func TestRevertToSnapshotDropsSstoreToZeroDeletion(t *testing.T) {
	s := NewIntraBlockState(nil)
	addr := types.HexToAddress("0x4444444444444444444444444444444444444444")
	slot := types.BytesToHash([]byte{0x01})

	s.SetState(addr, &slot, *uint256.NewInt(0xAB))

	id := s.Snapshot()
	s.SetState(addr, &slot, *new(uint256.Int))

	var zero uint256.Int
	s.GetState(addr, &slot, &zero)
	if !zero.IsZero() {
		t.Fatalf("expected zero after SSTORE-to-zero, got %s", &zero)
	}

	s.RevertToSnapshot(id)

	var restored uint256.Int
	s.GetState(addr, &slot, &restored)
	if restored.Cmp(uint256.NewInt(0xAB)) != 0 {
		t.Errorf("expected 0xAB restored after revert, got %s", &restored)
	}
}

func TestRevertToSnapshotDropsLogs(t *testing.T) {
	s := NewIntraBlockState(nil)
	addr := types.HexToAddress("0x5555555555555555555555555555555555555555")
	s.SetTxContext(types.HexToHash("0xaa"), 0)

	s.AddLog(&block.Log{Address: addr, Data: []byte("kept")})
	beforeCount := len(s.Logs())

	id := s.Snapshot()
	s.AddLog(&block.Log{Address: addr, Data: []byte("reverted")})
	if len(s.Logs()) != beforeCount+1 {
		t.Fatalf("expected %d logs mid-checkpoint, got %d", beforeCount+1, len(s.Logs()))
	}

	s.RevertToSnapshot(id)
	if got := len(s.Logs()); got != beforeCount {
		t.Errorf("expected %d logs after revert, got %d", beforeCount, got)
	}
	if string(s.Logs()[0].Data) != "kept" {
		t.Errorf("expected the surviving log's data to be 'kept', got %q", s.Logs()[0].Data)
	}
}

// TestNestedSnapshotOnlyUnwindsInnerLayer checks that discarding an inner
// checkpoint leaves an outer, still-open checkpoint's writes in place —
// nested checkpoints form a strict stack, and reverting one does not touch
// its ancestors' commits.
func TestNestedSnapshotOnlyUnwindsInnerLayer(t *testing.T) {
	s := NewIntraBlockState(nil)
	addr := types.HexToAddress("0x6666666666666666666666666666666666666666")

	outer := s.Snapshot()
	s.AddBalance(addr, uint256.NewInt(10))

	inner := s.Snapshot()
	s.AddBalance(addr, uint256.NewInt(5))
	if got := s.GetBalance(addr); got.Cmp(uint256.NewInt(15)) != 0 {
		t.Fatalf("expected 15 before inner revert, got %s", got)
	}

	s.RevertToSnapshot(inner)
	if got := s.GetBalance(addr); got.Cmp(uint256.NewInt(10)) != 0 {
		t.Fatalf("expected 10 after inner revert, got %s", got)
	}

	s.RevertToSnapshot(outer)
	if got := s.GetBalance(addr); !got.IsZero() {
		t.Errorf("expected 0 after outer revert, got %s", got)
	}
}
