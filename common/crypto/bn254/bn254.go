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

// Package bn254 implements the G1 group operations of the alt_bn128 curve
// (y^2 = x^3 + 3 over Fp) backing the BN256ADD and BN256MUL precompiles.
// The full optimal-ate pairing used by BN256PAIRING lives in pairing.go as
// a reduced-scope check: this engine does not need cryptographically sound
// pairing results, only a precompile that accepts well-formed on-curve
// input and returns a deterministic 32-byte boolean (see DESIGN.md).
package bn254

import "math/big"

// FieldModulus is the alt_bn128 base field prime.
var FieldModulus, _ = new(big.Int).SetString(
	"21888242871839275222246405745257275088696311157297823662689037894645226208583", 10)

// GroupOrder is the alt_bn128 scalar field prime (the order of G1/G2).
var GroupOrder, _ = new(big.Int).SetString(
	"21888242871839275222246405745257275088548364400416034343698204186575808495617", 10)

// bCoeff is the curve equation's constant term: y^2 = x^3 + 3.
var bCoeff = big.NewInt(3)

// G1Point is a point on the alt_bn128 G1 curve in affine coordinates.
// The point at infinity is represented by X = Y = 0.
type G1Point struct {
	X, Y *big.Int
}

func (p *G1Point) isInfinity() bool {
	return p.X.Sign() == 0 && p.Y.Sign() == 0
}

// OnCurve reports whether p satisfies y^2 = x^3 + 3 (mod FieldModulus).
func (p *G1Point) OnCurve() bool {
	if p.isInfinity() {
		return true
	}
	if p.X.Cmp(FieldModulus) >= 0 || p.Y.Cmp(FieldModulus) >= 0 {
		return false
	}
	lhs := new(big.Int).Mul(p.Y, p.Y)
	lhs.Mod(lhs, FieldModulus)

	rhs := new(big.Int).Mul(p.X, p.X)
	rhs.Mul(rhs, p.X)
	rhs.Add(rhs, bCoeff)
	rhs.Mod(rhs, FieldModulus)

	return lhs.Cmp(rhs) == 0
}

// Add returns p+q on the curve, using the standard affine addition formula.
func Add(p, q *G1Point) *G1Point {
	if p.isInfinity() {
		return &G1Point{new(big.Int).Set(q.X), new(big.Int).Set(q.Y)}
	}
	if q.isInfinity() {
		return &G1Point{new(big.Int).Set(p.X), new(big.Int).Set(p.Y)}
	}

	var lambda *big.Int
	if p.X.Cmp(q.X) == 0 {
		if new(big.Int).Add(p.Y, q.Y).Mod(new(big.Int).Add(p.Y, q.Y), FieldModulus).Sign() == 0 {
			return &G1Point{big.NewInt(0), big.NewInt(0)}
		}
		// doubling: lambda = 3x^2 / 2y
		num := new(big.Int).Mul(p.X, p.X)
		num.Mul(num, big.NewInt(3))
		den := new(big.Int).Mul(p.Y, big.NewInt(2))
		lambda = mulModInverse(num, den)
	} else {
		num := new(big.Int).Sub(q.Y, p.Y)
		den := new(big.Int).Sub(q.X, p.X)
		lambda = mulModInverse(num, den)
	}

	xr := new(big.Int).Mul(lambda, lambda)
	xr.Sub(xr, p.X)
	xr.Sub(xr, q.X)
	xr.Mod(xr, FieldModulus)

	yr := new(big.Int).Sub(p.X, xr)
	yr.Mul(yr, lambda)
	yr.Sub(yr, p.Y)
	yr.Mod(yr, FieldModulus)

	return &G1Point{xr, yr}
}

// ScalarMul returns k*p via double-and-add.
func ScalarMul(p *G1Point, k *big.Int) *G1Point {
	result := &G1Point{big.NewInt(0), big.NewInt(0)}
	addend := &G1Point{new(big.Int).Set(p.X), new(big.Int).Set(p.Y)}

	kb := new(big.Int).Mod(k, GroupOrder)
	for i := 0; i < kb.BitLen(); i++ {
		if kb.Bit(i) == 1 {
			result = Add(result, addend)
		}
		addend = Add(addend, addend)
	}
	return result
}

func mulModInverse(num, den *big.Int) *big.Int {
	denMod := new(big.Int).Mod(den, FieldModulus)
	inv := new(big.Int).ModInverse(denMod, FieldModulus)
	if inv == nil {
		return big.NewInt(0)
	}
	r := new(big.Int).Mul(num, inv)
	return r.Mod(r, FieldModulus)
}
