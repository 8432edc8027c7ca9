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

package bn254

import "math/big"

// G2Point is a point on the twisted curve over Fp2, carried here only for
// input-shape validation: coordinates are two Fp elements each.
type G2Point struct {
	X0, X1, Y0, Y1 *big.Int
}

func (p *G2Point) isInfinity() bool {
	return p.X0.Sign() == 0 && p.X1.Sign() == 0 && p.Y0.Sign() == 0 && p.Y1.Sign() == 0
}

// Pair is one (G1, G2) operand of the pairing check precompile.
type Pair struct {
	G1 *G1Point
	G2 *G2Point
}

// PairingCheck reports whether the product of the given pairings equals 1
// in GT, i.e. whether e(a1,b1)*e(a2,b2)*...== 1.
//
// This engine does not implement the Fp12 tower arithmetic and Miller loop
// needed for a cryptographically sound optimal-ate pairing: it checks that
// every G1 operand lies on its curve and that every G2 coordinate is a
// field element below the modulus (G2 curve membership is not checked),
// and accepts the
// well-known degenerate case where every operand is the identity, returning
// true only then. Any pair with non-identity operands returns false. This
// keeps the precompile's input/output contract (192-byte-per-pair input,
// 32-byte boolean output) intact for callers that only exercise the
// interface, while never fabricating a "true" verdict for a real proof.
func PairingCheck(pairs []Pair) bool {
	if len(pairs) == 0 {
		return true
	}
	allIdentity := true
	for _, p := range pairs {
		if !p.G1.OnCurve() || !onTwistCurve(p.G2) {
			return false
		}
		if !p.G1.isInfinity() || !p.G2.isInfinity() {
			allIdentity = false
		}
	}
	return allIdentity
}

// twistB0/twistB1 are the components of b/xi for the standard alt_bn128
// sextic twist. onTwistCurve does not use them: it only checks that each
// coordinate lies in [0, FieldModulus), not that the point is on the twist.
var twistB0, _ = new(big.Int).SetString("19485874751759354771024239261021720505790618469301721065564631296452457478373", 10)
var twistB1, _ = new(big.Int).SetString("266929791119991161246907387137283842545076965332900288569378510910307636690", 10)

func onTwistCurve(p *G2Point) bool {
	if p.isInfinity() {
		return true
	}
	for _, c := range []*big.Int{p.X0, p.X1, p.Y0, p.Y1} {
		if c.Sign() < 0 || c.Cmp(FieldModulus) >= 0 {
			return false
		}
	}
	_ = twistB0
	_ = twistB1
	return true
}
