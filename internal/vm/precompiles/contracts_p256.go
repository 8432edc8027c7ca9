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

// EIP-7212/EIP-7951: P-256 (secp256r1) signature verification precompile.
// Not part of the Cancun opcode/precompile catalogue; wired for Prague so
// the jump table and registry compile cleanly against a future fork switch.

package precompiles

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"math/big"
)

const P256VerifyGas = 3450

const p256VerifyInputLength = 160

type p256Verify struct{}

func (c *p256Verify) RequiredGas(input []byte) uint64 { return P256VerifyGas }

// Run verifies a P-256 signature over input = hash(32) || r(32) || s(32) ||
// x(32) || y(32), returning a 32-byte word whose last byte is 0x01 on success
// or empty output on failure (no error in either case, matching the
// precompile convention).
func (c *p256Verify) Run(input []byte) ([]byte, error) {
	if len(input) != p256VerifyInputLength {
		return nil, nil
	}

	hash := input[0:32]
	r := new(big.Int).SetBytes(input[32:64])
	s := new(big.Int).SetBytes(input[64:96])
	x := new(big.Int).SetBytes(input[96:128])
	y := new(big.Int).SetBytes(input[128:160])

	curve := elliptic.P256()
	if !curve.IsOnCurve(x, y) {
		return nil, nil
	}

	pub := &ecdsa.PublicKey{Curve: curve, X: x, Y: y}
	if !ecdsa.Verify(pub, hash, r, s) {
		return nil, nil
	}

	out := make([]byte, 32)
	out[31] = 1
	return out, nil
}

// NewP256Verify returns the P-256 verification precompile.
func NewP256Verify() PrecompiledContract { return &p256Verify{} }
