// Copyright 2022-2026 The N42 Authors
// This file is part of the N42 library.
//
// Behavioral round-trip tests for the precompiles the registry tests only
// check gas/registration for: RIPEMD160, MODEXP, the BN256 family,
// BLAKE2F and the EIP-4844 point evaluation precompile.

package precompiles_test

import (
	"bytes"
	"math/big"
	"testing"

	"github.com/cancunvm/engine/common/crypto/kzg"
	"github.com/cancunvm/engine/internal/vm/precompiles"
)

func TestRipemd160PrecompileRoundTrip(t *testing.T) {
	ripemd := precompiles.NewRipemd160()

	out, err := ripemd.Run([]byte("hello"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out) != 32 {
		t.Fatalf("expected 32-byte left-zero-padded output, got %d", len(out))
	}
	for _, b := range out[:12] {
		if b != 0 {
			t.Fatalf("expected the first 12 bytes to be zero padding, got %x", out)
		}
	}

	out2, _ := ripemd.Run([]byte("hello"))
	if !bytes.Equal(out, out2) {
		t.Error("RIPEMD160 precompile is not deterministic")
	}

	outEmpty, _ := ripemd.Run(nil)
	if bytes.Equal(out, outEmpty) {
		t.Error("different inputs hashed to the same output")
	}
}

func TestBigModExpPrecompileRoundTrip(t *testing.T) {
	modexp := precompiles.NewBigModExp(true)

	// 3^2 mod 5 = 4, encoded as base_len=1, exp_len=1, mod_len=1 followed
	// by the three 1-byte operands.
	input := make([]byte, 96+3)
	input[31] = 1 // base_len
	input[63] = 1 // exp_len
	input[95] = 1 // mod_len
	input[96] = 3 // base
	input[97] = 2 // exp
	input[98] = 5 // mod

	out, err := modexp.Run(input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out) != 1 || out[0] != 4 {
		t.Fatalf("expected [4], got %v", out)
	}
}

func TestBigModExpPrecompileZeroModulus(t *testing.T) {
	modexp := precompiles.NewBigModExp(true)

	input := make([]byte, 96+3)
	input[31] = 1
	input[63] = 1
	input[95] = 1
	input[96] = 3
	input[97] = 2
	// mod left as zero.

	out, err := modexp.Run(input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out) != 1 || out[0] != 0 {
		t.Fatalf("expected a single zero byte for a zero modulus, got %v", out)
	}
}

func TestBn256AddPrecompileIdentity(t *testing.T) {
	add := precompiles.NewBn256Add(true)

	// Two points at infinity (all-zero 64-byte encodings) sum to infinity.
	input := make([]byte, 128)
	out, err := add.Run(input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !bytes.Equal(out, make([]byte, 64)) {
		t.Errorf("infinity + infinity should be infinity, got %x", out)
	}
}

func TestBn256AddPrecompileRejectsOffCurvePoint(t *testing.T) {
	add := precompiles.NewBn256Add(true)

	input := make([]byte, 128)
	input[31] = 1 // x=1, y=0 is not on y^2 = x^3+3
	if _, err := add.Run(input); err == nil {
		t.Error("expected an off-curve point to be rejected")
	}
}

func TestBn256ScalarMulPrecompileIdentity(t *testing.T) {
	mul := precompiles.NewBn256ScalarMul(true)

	// Infinity scaled by any scalar is still infinity.
	input := make([]byte, 96)
	input[95] = 7 // scalar = 7
	out, err := mul.Run(input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !bytes.Equal(out, make([]byte, 64)) {
		t.Errorf("infinity scaled should be infinity, got %x", out)
	}
}

func TestBn256PairingPrecompileEmptyInputIsVacuouslyTrue(t *testing.T) {
	pairing := precompiles.NewBn256Pairing(true)

	out, err := pairing.Run(nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := make([]byte, 32)
	want[31] = 1
	if !bytes.Equal(out, want) {
		t.Errorf("expected the vacuous-true encoding, got %x", out)
	}
}

func TestBn256PairingPrecompileRejectsMisalignedInput(t *testing.T) {
	pairing := precompiles.NewBn256Pairing(true)

	if _, err := pairing.Run(make([]byte, 191)); err == nil {
		t.Error("expected a length not a multiple of 192 to be rejected")
	}
}

func TestBlake2FPrecompileRoundTrip(t *testing.T) {
	blake2f := precompiles.NewBlake2F()

	input := make([]byte, 213)
	input[3] = 12 // rounds = 12, big-endian uint32
	input[212] = 1 // final block

	out, err := blake2f.Run(input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out) != 64 {
		t.Fatalf("expected a 64-byte compressed state, got %d bytes", len(out))
	}

	out2, err := blake2f.Run(input)
	if err != nil {
		t.Fatalf("unexpected error on second run: %v", err)
	}
	if !bytes.Equal(out, out2) {
		t.Error("BLAKE2F compression is not deterministic")
	}

	nonFinal := append([]byte(nil), input...)
	nonFinal[212] = 0
	outNonFinal, err := blake2f.Run(nonFinal)
	if err != nil {
		t.Fatalf("unexpected error for a non-final block: %v", err)
	}
	if bytes.Equal(out, outNonFinal) {
		t.Error("the final-block flag should affect the compression output")
	}
}

func TestBlake2FPrecompileRejectsMalformedInput(t *testing.T) {
	blake2f := precompiles.NewBlake2F()

	if _, err := blake2f.Run(make([]byte, 212)); err == nil {
		t.Error("expected the wrong-length input to be rejected")
	}

	badFlag := make([]byte, 213)
	badFlag[212] = 2
	if _, err := blake2f.Run(badFlag); err == nil {
		t.Error("expected an invalid final-block flag to be rejected")
	}
}

func TestPointEvaluationPrecompileRoundTrip(t *testing.T) {
	if err := kzg.InitContext(); err != nil {
		t.Fatalf("InitContext() error: %v", err)
	}

	var blob kzg.Blob
	for i := range blob {
		blob[i] = byte(i % 256)
	}
	commitment, err := kzg.BlobToCommitment(&blob)
	if err != nil {
		t.Fatalf("BlobToCommitment() error: %v", err)
	}

	point := [32]byte{0x02}
	proof, claim, err := kzg.ComputeProof(&blob, commitment, point)
	if err != nil {
		t.Fatalf("ComputeProof() error: %v", err)
	}

	versionedHash := kzg.CommitmentToVersionedHash(commitment)

	input := make([]byte, 192)
	copy(input[0:32], versionedHash[:])
	copy(input[32:64], point[:])
	copy(input[64:96], claim[:])
	copy(input[96:144], commitment[:])
	copy(input[144:192], proof[:])

	pe := precompiles.NewPointEvaluation()
	out, err := pe.Run(input)
	if err != nil {
		t.Fatalf("valid point evaluation proof was rejected: %v", err)
	}
	if len(out) != 64 {
		t.Fatalf("expected a 64-byte FIELD_ELEMENTS_PER_BLOB||BLS_MODULUS output, got %d", len(out))
	}
	wantFieldElements := big.NewInt(int64(kzg.FieldElementsPerBlob)).Bytes()
	if !bytes.HasSuffix(out[:32], wantFieldElements) {
		t.Errorf("expected FIELD_ELEMENTS_PER_BLOB in the first 32 bytes, got %x", out[:32])
	}

	// Corrupting the proof must fail verification.
	badInput := append([]byte(nil), input...)
	badInput[144] ^= 0xff
	if _, err := pe.Run(badInput); err == nil {
		t.Error("expected a corrupted proof to be rejected")
	}

	// A versioned hash that doesn't match the commitment must fail too.
	badHashInput := append([]byte(nil), input...)
	badHashInput[31] ^= 0xff
	if _, err := pe.Run(badHashInput); err == nil {
		t.Error("expected a mismatched versioned hash to be rejected")
	}
}

func TestPointEvaluationPrecompileRejectsWrongInputLength(t *testing.T) {
	pe := precompiles.NewPointEvaluation()
	if _, err := pe.Run(make([]byte, 191)); err == nil {
		t.Error("expected a non-192-byte input to be rejected")
	}
}
