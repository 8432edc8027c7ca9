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

// Package crypto wraps the hashing and signature-recovery primitives the
// engine needs: keccak-256 (the hash convention for code_hash, storage
// trie placeholders and CREATE2 address derivation) and ECDSA public-key
// recovery for the ECRECOVER precompile.
package crypto

import (
	"errors"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcec/v2/ecdsa"
	"github.com/cancunvm/engine/common/encoding"
	"github.com/cancunvm/engine/common/types"
	"golang.org/x/crypto/sha3"
)

// Keccak256 returns the keccak-256 digest of the concatenation of data.
func Keccak256(data ...[]byte) []byte {
	h := sha3.NewLegacyKeccak256()
	for _, b := range data {
		h.Write(b)
	}
	return h.Sum(nil)
}

// Keccak256Hash is Keccak256 with the result boxed as a types.Hash.
func Keccak256Hash(data ...[]byte) types.Hash {
	return types.BytesToHash(Keccak256(data...))
}

var errInvalidRecoveryID = errors.New("crypto: invalid recovery id")

// Ecrecover recovers the 65-byte uncompressed public key (with the 0x04
// prefix) that produced sig over hash. sig is the 65-byte
// [R || S || V] signature with V in {0,1,27,28}.
func Ecrecover(hash, sig []byte) ([]byte, error) {
	if len(sig) != 65 {
		return nil, errors.New("crypto: invalid signature length")
	}
	v := sig[64]
	if v >= 27 {
		v -= 27
	}
	if v > 1 {
		return nil, errInvalidRecoveryID
	}

	compact := make([]byte, 65)
	compact[0] = v + 27
	copy(compact[1:], sig[:64])

	pub, _, err := ecdsa.RecoverCompact(compact, hash)
	if err != nil {
		return nil, err
	}
	return pub.SerializeUncompressed(), nil
}

// PubkeyToAddress derives the 20-byte account address from an uncompressed
// secp256k1 public key (65 bytes, 0x04 prefix, or 64 bytes without it).
func PubkeyToAddress(pub []byte) types.Address {
	if len(pub) == 65 {
		pub = pub[1:]
	}
	h := Keccak256(pub)
	return types.BytesToAddress(h[12:])
}

// CreateAddress derives the address CREATE assigns a new contract:
// keccak256(rlp([sender, nonce]))[12:].
func CreateAddress(sender types.Address, nonce uint64) types.Address {
	var items []byte
	items = encoding.EncodeByteString(items, sender.Bytes())
	items = encoding.EncodeUint64(items, nonce)
	var list []byte
	list = encoding.EncodeList(list, items)
	return types.BytesToAddress(Keccak256(list)[12:])
}

// CreateAddress2 derives the address CREATE2 assigns a new contract:
// keccak256(0xff ++ sender ++ salt ++ keccak256(initcode))[12:].
func CreateAddress2(sender types.Address, salt [32]byte, initCodeHash []byte) types.Address {
	data := make([]byte, 0, 1+types.AddressLength+32+32)
	data = append(data, 0xff)
	data = append(data, sender.Bytes()...)
	data = append(data, salt[:]...)
	data = append(data, initCodeHash...)
	return types.BytesToAddress(Keccak256(data)[12:])
}

// ValidateSignatureValues reports whether r, s lie in the valid range for a
// secp256k1 ECDSA signature: both non-zero and below the curve order.
// High-S signatures are accepted.
func ValidateSignatureValues(r, s []byte) bool {
	if len(r) == 0 || len(s) == 0 {
		return false
	}
	var rInt, sInt btcec.ModNScalar
	if rInt.SetByteSlice(r) {
		return false // overflowed curve order
	}
	if sInt.SetByteSlice(s) {
		return false
	}
	if rInt.IsZero() || sInt.IsZero() {
		return false
	}
	return true
}
