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

// Package encoding carries the small first-party RLP codec used for the
// on-disk account record, plus the buffer pools the rawdb/state packages
// share. RLP framing is treated as a small piece of first-party plumbing,
// not a third-party dependency.
package encoding

import (
	"errors"
	"io"
)

// ErrRLPTooShort is returned when a buffer ends before an encoded value is
// fully consumed.
var ErrRLPTooShort = errors.New("encoding: rlp input too short")

// EncodeByteString appends the canonical RLP encoding of b to dst.
func EncodeByteString(dst []byte, b []byte) []byte {
	switch {
	case len(b) == 1 && b[0] < 0x80:
		return append(dst, b[0])
	case len(b) < 56:
		dst = append(dst, 0x80+byte(len(b)))
		return append(dst, b...)
	default:
		lenBytes := uintToMinimalBytes(uint64(len(b)))
		dst = append(dst, 0xb7+byte(len(lenBytes)))
		dst = append(dst, lenBytes...)
		return append(dst, b...)
	}
}

// EncodeUint64 appends the canonical RLP encoding of v (minimal big-endian
// byte string, empty for zero) to dst.
func EncodeUint64(dst []byte, v uint64) []byte {
	if v == 0 {
		return append(dst, 0x80)
	}
	return EncodeByteString(dst, uintToMinimalBytes(v))
}

// EncodeList wraps the already-encoded concatenation of a list's elements
// (items) in an RLP list header and appends it to dst.
func EncodeList(dst []byte, items []byte) []byte {
	switch {
	case len(items) < 56:
		dst = append(dst, 0xc0+byte(len(items)))
		return append(dst, items...)
	default:
		lenBytes := uintToMinimalBytes(uint64(len(items)))
		dst = append(dst, 0xf7+byte(len(lenBytes)))
		dst = append(dst, lenBytes...)
		return append(dst, items...)
	}
}

func uintToMinimalBytes(v uint64) []byte {
	if v == 0 {
		return nil
	}
	var buf [8]byte
	n := 8
	for v > 0 {
		n--
		buf[n] = byte(v)
		v >>= 8
	}
	return buf[n:]
}

// Reader decodes a sequence of RLP-encoded values from an in-memory buffer.
// It is a minimal, allocation-light counterpart to EncodeByteString /
// EncodeList, sized to the handful of field types an AccountRecord needs:
// byte strings and lists, with no support for RLP's signed-integer corner
// cases this engine never produces.
type Reader struct {
	buf []byte
	pos int
}

// NewReader wraps buf for sequential RLP decoding.
func NewReader(buf []byte) *Reader {
	return &Reader{buf: buf}
}

// ReadBytes consumes one RLP byte-string item and returns its payload.
func (r *Reader) ReadBytes() ([]byte, error) {
	if r.pos >= len(r.buf) {
		return nil, io.EOF
	}
	b0 := r.buf[r.pos]
	switch {
	case b0 < 0x80:
		r.pos++
		return r.buf[r.pos-1 : r.pos], nil
	case b0 < 0xb8:
		size := int(b0 - 0x80)
		return r.take(1, size)
	case b0 < 0xc0:
		sizeLen := int(b0 - 0xb7)
		size, err := r.readLength(1, sizeLen)
		if err != nil {
			return nil, err
		}
		return r.take(1+sizeLen, size)
	default:
		return nil, errors.New("encoding: expected byte string, got list")
	}
}

// EnterList consumes an RLP list header and returns a sub-reader scoped to
// exactly that list's payload.
func (r *Reader) EnterList() (*Reader, error) {
	if r.pos >= len(r.buf) {
		return nil, io.EOF
	}
	b0 := r.buf[r.pos]
	switch {
	case b0 < 0xc0:
		return nil, errors.New("encoding: expected list, got byte string")
	case b0 < 0xf8:
		size := int(b0 - 0xc0)
		payload, err := r.take(1, size)
		if err != nil {
			return nil, err
		}
		return NewReader(payload), nil
	default:
		sizeLen := int(b0 - 0xf7)
		size, err := r.readLength(1, sizeLen)
		if err != nil {
			return nil, err
		}
		payload, err := r.take(1+sizeLen, size)
		if err != nil {
			return nil, err
		}
		return NewReader(payload), nil
	}
}

// Done reports whether every byte of the reader has been consumed.
func (r *Reader) Done() bool {
	return r.pos >= len(r.buf)
}

func (r *Reader) take(headerLen, payloadLen int) ([]byte, error) {
	start := r.pos + headerLen
	end := start + payloadLen
	if end > len(r.buf) {
		return nil, ErrRLPTooShort
	}
	r.pos = end
	return r.buf[start:end], nil
}

func (r *Reader) readLength(headerOffset, sizeLen int) (int, error) {
	start := r.pos + headerOffset
	end := start + sizeLen
	if end > len(r.buf) {
		return 0, ErrRLPTooShort
	}
	var v uint64
	for _, b := range r.buf[start:end] {
		v = v<<8 | uint64(b)
	}
	return int(v), nil
}
