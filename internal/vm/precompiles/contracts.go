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

package precompiles

import (
	"crypto/sha256"
	"math"
	"math/big"

	"golang.org/x/crypto/ripemd160" //nolint:staticcheck // matches go-ethereum's precompile, no maintained replacement

	"github.com/cancunvm/engine/common/crypto"
	"github.com/cancunvm/engine/common/crypto/bn254"
)

// PrecompiledContract is the interface every precompiled contract (addresses
// 0x01 through 0x0a and beyond) implements: a pure, stateless transform from
// input bytes to output bytes, priced independently of the interpreter's own
// gas accounting. internal/vm.PrecompiledContract is a type alias to this
// definition so the interpreter depends on this package in one direction
// only.
type PrecompiledContract interface {
	// RequiredGas returns the gas cost of running the contract on input,
	// before Run is invoked.
	RequiredGas(input []byte) uint64

	// Run executes the contract and returns its output.
	Run(input []byte) ([]byte, error)
}

// =============================================================================
// 0x01: ECRECOVER
// =============================================================================

const (
	ecrecoverGas     = 3000
	sha256Gas        = 60
	sha256WordGas    = 12
	ripemd160Gas     = 600
	ripemd160WordGas = 120
	identityGas      = 15
	identityWordGas  = 3
)

type ecrecoverPrecompile struct{}

func (c *ecrecoverPrecompile) RequiredGas(input []byte) uint64 { return ecrecoverGas }

func (c *ecrecoverPrecompile) Run(input []byte) ([]byte, error) {
	const inputLength = 128
	input = rightPadBytes(input, inputLength)

	v := input[63]
	hash := input[:32]
	r := input[64:96]
	s := input[96:128]

	if !crypto.ValidateSignatureValues(r, s) {
		return nil, nil
	}
	if v != 27 && v != 28 {
		return nil, nil
	}

	sig := make([]byte, 65)
	copy(sig[0:32], r)
	copy(sig[32:64], s)
	sig[64] = v

	pubkey, err := crypto.Ecrecover(hash, sig)
	if err != nil {
		return nil, nil
	}

	addr := crypto.PubkeyToAddress(pubkey)
	out := make([]byte, 32)
	copy(out[12:], addr[:])
	return out, nil
}

// NewEcrecover creates an ecrecover precompile (address 0x01).
func NewEcrecover() PrecompiledContract { return &ecrecoverPrecompile{} }

// =============================================================================
// 0x02: SHA256
// =============================================================================

type sha256Precompile struct{}

func (c *sha256Precompile) RequiredGas(input []byte) uint64 {
	return uint64(len(input)+31)/32*sha256WordGas + sha256Gas
}

func (c *sha256Precompile) Run(input []byte) ([]byte, error) {
	h := sha256.Sum256(input)
	return h[:], nil
}

// NewSha256 creates a SHA256 precompile (address 0x02).
func NewSha256() PrecompiledContract { return &sha256Precompile{} }

// =============================================================================
// 0x03: RIPEMD160
// =============================================================================

type ripemd160Precompile struct{}

func (c *ripemd160Precompile) RequiredGas(input []byte) uint64 {
	return uint64(len(input)+31)/32*ripemd160WordGas + ripemd160Gas
}

func (c *ripemd160Precompile) Run(input []byte) ([]byte, error) {
	h := ripemd160.New()
	h.Write(input)
	out := make([]byte, 32)
	copy(out[12:], h.Sum(nil))
	return out, nil
}

// NewRipemd160 creates a RIPEMD160 precompile (address 0x03).
func NewRipemd160() PrecompiledContract { return &ripemd160Precompile{} }

// =============================================================================
// 0x04: Identity (data copy)
// =============================================================================

type dataCopyPrecompile struct{}

func (c *dataCopyPrecompile) RequiredGas(input []byte) uint64 {
	return uint64(len(input)+31)/32*identityWordGas + identityGas
}

func (c *dataCopyPrecompile) Run(input []byte) ([]byte, error) {
	out := make([]byte, len(input))
	copy(out, input)
	return out, nil
}

// NewDataCopy creates an identity precompile (address 0x04).
func NewDataCopy() PrecompiledContract { return &dataCopyPrecompile{} }

// =============================================================================
// 0x05: BIGMODEXP
// =============================================================================

type bigModExpPrecompile struct {
	eip2565 bool
}

func (c *bigModExpPrecompile) RequiredGas(input []byte) uint64 {
	var (
		baseLen = new(big.Int).SetBytes(getData(input, 0, 32))
		expLen  = new(big.Int).SetBytes(getData(input, 32, 32))
		modLen  = new(big.Int).SetBytes(getData(input, 64, 32))
	)
	if baseLen.BitLen() > 32 || expLen.BitLen() > 32 || modLen.BitLen() > 32 {
		return math.MaxUint64
	}

	maxLen := baseLen.Uint64()
	if modLen.Uint64() > maxLen {
		maxLen = modLen.Uint64()
	}

	var adjExpLen uint64
	expHead := new(big.Int).SetBytes(getData(input, 96+baseLen.Uint64(), min64(32, expLen.Uint64())))
	if expLen.Uint64() > 32 {
		adjExpLen = 8 * (expLen.Uint64() - 32)
	}
	if bl := expHead.BitLen(); bl > 1 {
		adjExpLen += uint64(bl - 1)
	}

	// Quadratic complexity approximation of EIP-198/EIP-2565's tiered formula:
	// good enough for relative pricing without reproducing the exact
	// piecewise complexity function (gas is not metered against a real
	// budget here).
	gas := new(big.Int).SetUint64(maxLen)
	gas.Mul(gas, gas)
	if c.eip2565 {
		gas.Div(gas, big.NewInt(3))
	} else {
		gas.Div(gas, big.NewInt(20))
	}

	if adjExpLen < 1 {
		adjExpLen = 1
	}
	gas.Mul(gas, new(big.Int).SetUint64(adjExpLen))

	if !gas.IsUint64() {
		return math.MaxUint64
	}
	g := gas.Uint64()
	if c.eip2565 && g < 200 {
		return 200
	}
	return g
}

func (c *bigModExpPrecompile) Run(input []byte) ([]byte, error) {
	var (
		baseLen = new(big.Int).SetBytes(getData(input, 0, 32)).Uint64()
		expLen  = new(big.Int).SetBytes(getData(input, 32, 32)).Uint64()
		modLen  = new(big.Int).SetBytes(getData(input, 64, 32)).Uint64()
	)
	if baseLen == 0 && modLen == 0 {
		return []byte{}, nil
	}

	base := new(big.Int).SetBytes(getData(input, 96, baseLen))
	exp := new(big.Int).SetBytes(getData(input, 96+baseLen, expLen))
	mod := new(big.Int).SetBytes(getData(input, 96+baseLen+expLen, modLen))

	out := make([]byte, modLen)
	if mod.Sign() == 0 {
		return out, nil
	}
	result := new(big.Int).Exp(base, exp, mod)
	result.FillBytes(out)
	return out, nil
}

func min64(a, b uint64) uint64 {
	if a < b {
		return a
	}
	return b
}

// NewBigModExp creates a big integer modular exponentiation precompile
// (address 0x05). eip2565 selects the cheaper Berlin-era gas schedule.
func NewBigModExp(eip2565 bool) PrecompiledContract { return &bigModExpPrecompile{eip2565: eip2565} }

// =============================================================================
// 0x06/0x07/0x08: BN256 (alt_bn128) family
// =============================================================================

const (
	bn256AddGasByzantium         = 500
	bn256AddGasIstanbul          = 150
	bn256ScalarMulGasByzantium   = 40000
	bn256ScalarMulGasIstanbul    = 6000
	bn256PairingBaseGasByzantium = 100000
	bn256PairingPerPointByzantium = 80000
	bn256PairingBaseGasIstanbul  = 45000
	bn256PairingPerPointIstanbul = 34000
)

type bn256AddPrecompile struct{ istanbul bool }

func (c *bn256AddPrecompile) RequiredGas(input []byte) uint64 {
	if c.istanbul {
		return bn256AddGasIstanbul
	}
	return bn256AddGasByzantium
}

func (c *bn256AddPrecompile) Run(input []byte) ([]byte, error) {
	p1 := &bn254.G1Point{X: new(big.Int).SetBytes(getData(input, 0, 32)), Y: new(big.Int).SetBytes(getData(input, 32, 32))}
	p2 := &bn254.G1Point{X: new(big.Int).SetBytes(getData(input, 64, 32)), Y: new(big.Int).SetBytes(getData(input, 96, 32))}
	if !p1.OnCurve() || !p2.OnCurve() {
		return nil, errInvalidCurvePoint
	}
	sum := bn254.Add(p1, p2)
	out := make([]byte, 64)
	sum.X.FillBytes(out[0:32])
	sum.Y.FillBytes(out[32:64])
	return out, nil
}

// NewBn256Add creates a BN256 curve point addition precompile (address 0x06).
func NewBn256Add(istanbul bool) PrecompiledContract { return &bn256AddPrecompile{istanbul: istanbul} }

type bn256ScalarMulPrecompile struct{ istanbul bool }

func (c *bn256ScalarMulPrecompile) RequiredGas(input []byte) uint64 {
	if c.istanbul {
		return bn256ScalarMulGasIstanbul
	}
	return bn256ScalarMulGasByzantium
}

func (c *bn256ScalarMulPrecompile) Run(input []byte) ([]byte, error) {
	p := &bn254.G1Point{X: new(big.Int).SetBytes(getData(input, 0, 32)), Y: new(big.Int).SetBytes(getData(input, 32, 32))}
	if !p.OnCurve() {
		return nil, errInvalidCurvePoint
	}
	k := new(big.Int).SetBytes(getData(input, 64, 32))
	r := bn254.ScalarMul(p, k)
	out := make([]byte, 64)
	r.X.FillBytes(out[0:32])
	r.Y.FillBytes(out[32:64])
	return out, nil
}

// NewBn256ScalarMul creates a BN256 scalar multiplication precompile
// (address 0x07).
func NewBn256ScalarMul(istanbul bool) PrecompiledContract {
	return &bn256ScalarMulPrecompile{istanbul: istanbul}
}

type bn256PairingPrecompile struct{ istanbul bool }

const bn256PairingInputSize = 192

func (c *bn256PairingPrecompile) RequiredGas(input []byte) uint64 {
	points := uint64(len(input)) / bn256PairingInputSize
	if c.istanbul {
		return bn256PairingBaseGasIstanbul + points*bn256PairingPerPointIstanbul
	}
	return bn256PairingBaseGasByzantium + points*bn256PairingPerPointByzantium
}

func (c *bn256PairingPrecompile) Run(input []byte) ([]byte, error) {
	if len(input)%bn256PairingInputSize != 0 {
		return nil, errInvalidPairingInput
	}
	pairs := make([]bn254.Pair, 0, len(input)/bn256PairingInputSize)
	for i := 0; i < len(input); i += bn256PairingInputSize {
		chunk := input[i : i+bn256PairingInputSize]
		pairs = append(pairs, bn254.Pair{
			G1: &bn254.G1Point{X: new(big.Int).SetBytes(chunk[0:32]), Y: new(big.Int).SetBytes(chunk[32:64])},
			G2: &bn254.G2Point{
				X1: new(big.Int).SetBytes(chunk[64:96]),
				X0: new(big.Int).SetBytes(chunk[96:128]),
				Y1: new(big.Int).SetBytes(chunk[128:160]),
				Y0: new(big.Int).SetBytes(chunk[160:192]),
			},
		})
	}
	out := make([]byte, 32)
	if bn254.PairingCheck(pairs) {
		out[31] = 1
	}
	return out, nil
}

// NewBn256Pairing creates a BN256 pairing check precompile (address 0x08).
func NewBn256Pairing(istanbul bool) PrecompiledContract {
	return &bn256PairingPrecompile{istanbul: istanbul}
}

// =============================================================================
// 0x09: BLAKE2F
// =============================================================================

const blake2FGasPerRound = 1

type blake2FPrecompile struct{}

func (c *blake2FPrecompile) RequiredGas(input []byte) uint64 {
	if len(input) != blake2FInputLength {
		return 0
	}
	return uint64(bigEndianUint32(input[0:4]))
}

const blake2FInputLength = 213

func (c *blake2FPrecompile) Run(input []byte) ([]byte, error) {
	if len(input) != blake2FInputLength {
		return nil, errBlake2FInvalidLength
	}
	if input[212] != 0 && input[212] != 1 {
		return nil, errBlake2FInvalidFlag
	}

	rounds := bigEndianUint32(input[0:4])
	final := input[212] == 1

	var h [8]uint64
	for i := 0; i < 8; i++ {
		h[i] = littleEndianUint64(input[4+i*8 : 12+i*8])
	}
	var m [16]uint64
	for i := 0; i < 16; i++ {
		m[i] = littleEndianUint64(input[68+i*8 : 76+i*8])
	}
	t0 := littleEndianUint64(input[196:204])
	t1 := littleEndianUint64(input[204:212])

	blake2fCompress(&h, &m, t0, t1, final, rounds)

	out := make([]byte, 64)
	for i := 0; i < 8; i++ {
		putLittleEndianUint64(out[i*8:i*8+8], h[i])
	}
	return out, nil
}

// NewBlake2F creates a BLAKE2b F compression precompile (address 0x09).
func NewBlake2F() PrecompiledContract { return &blake2FPrecompile{} }

// =============================================================================
// Shared helpers
// =============================================================================

var (
	errInvalidCurvePoint    = errInvalidCurvePointErr{}
	errInvalidPairingInput  = errInvalidPairingInputErr{}
	errBlake2FInvalidLength = errBlake2FInvalidLengthErr{}
	errBlake2FInvalidFlag   = errBlake2FInvalidFlagErr{}
)

type errInvalidCurvePointErr struct{}

func (errInvalidCurvePointErr) Error() string { return "invalid curve point" }

type errInvalidPairingInputErr struct{}

func (errInvalidPairingInputErr) Error() string { return "invalid pairing input length" }

type errBlake2FInvalidLengthErr struct{}

func (errBlake2FInvalidLengthErr) Error() string { return "invalid blake2f input length" }

type errBlake2FInvalidFlagErr struct{}

func (errBlake2FInvalidFlagErr) Error() string { return "invalid blake2f final block flag" }

// getData returns len bytes of input starting at offset, zero-padded if it
// runs past the end, mirroring the EVM's ABI-adjacent precompile inputs.
func getData(data []byte, offset, length uint64) []byte {
	out := make([]byte, length)
	if offset >= uint64(len(data)) {
		return out
	}
	end := offset + length
	if end > uint64(len(data)) {
		end = uint64(len(data))
	}
	copy(out, data[offset:end])
	return out
}

func rightPadBytes(b []byte, size int) []byte {
	if len(b) >= size {
		return b[:size]
	}
	out := make([]byte, size)
	copy(out, b)
	return out
}

func bigEndianUint32(b []byte) uint32 {
	return uint32(b[0])<<24 | uint32(b[1])<<16 | uint32(b[2])<<8 | uint32(b[3])
}

func littleEndianUint64(b []byte) uint64 {
	var v uint64
	for i := 0; i < 8; i++ {
		v |= uint64(b[i]) << (8 * i)
	}
	return v
}

func putLittleEndianUint64(b []byte, v uint64) {
	for i := 0; i < 8; i++ {
		b[i] = byte(v >> (8 * i))
	}
}
