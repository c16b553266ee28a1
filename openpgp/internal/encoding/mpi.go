// Copyright 2017 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package encoding

import (
	"io"
	"math/big"
	"math/bits"
)

// An MPI is used to store the contents of a big integer, along with the
// bit length that was specified in the original input.
type MPI struct {
	bytes     []byte
	bitLength uint16
}

// NewMPI returns a MPI initialized with bytes. Leading zero octets are
// stripped.
func NewMPI(bytes []byte) *MPI {
	for len(bytes) != 0 && bytes[0] == 0 {
		bytes = bytes[1:]
	}
	if len(bytes) == 0 {
		return &MPI{}
	}
	l := len(bytes)*8 - bits.LeadingZeros8(bytes[0])
	return &MPI{bytes: bytes, bitLength: uint16(l)}
}

// Bytes returns the decoded data.
func (m *MPI) Bytes() []byte {
	return m.bytes
}

// BitLength is the size in bits of the decoded data.
func (m *MPI) BitLength() uint16 {
	return m.bitLength
}

// EncodedBytes returns the encoded data.
func (m *MPI) EncodedBytes() []byte {
	return append([]byte{byte(m.bitLength >> 8), byte(m.bitLength)}, m.bytes...)
}

// EncodedLength is the size in bytes of the encoded data.
func (m *MPI) EncodedLength() uint16 {
	return uint16(2 + len(m.bytes))
}

// ReadFrom reads into m the next MPI from r. The declared bit length
// must describe the value exactly: the most significant octet must be
// non-zero and its highest set bit must agree with the length.
func (m *MPI) ReadFrom(r io.Reader) (int64, error) {
	var buf [2]byte
	n, err := readFull(r, buf[0:])
	if err != nil {
		return n, err
	}

	m.bitLength = uint16(buf[0])<<8 | uint16(buf[1])
	m.bytes = make([]byte, (int(m.bitLength)+7)/8)

	nn, err := readFull(r, m.bytes)
	n += nn
	if err != nil {
		return n, err
	}
	if len(m.bytes) > 0 {
		top := 8 - bits.LeadingZeros8(m.bytes[0])
		if top == 0 || (len(m.bytes)-1)*8+top != int(m.bitLength) {
			return n, ErrNonCanonical
		}
	}
	return n, nil
}

// Int returns the value as a big.Int.
func (m *MPI) Int() *big.Int {
	return new(big.Int).SetBytes(m.bytes)
}

// SetBig initializes m with the bits from n.
func (m *MPI) SetBig(n *big.Int) *MPI {
	m.bytes = n.Bytes()
	m.bitLength = uint16(n.BitLen())
	return m
}
