// Copyright 2017 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package encoding implements the encodings of OpenPGP key and
// signature fields, as specified in RFC 9580 section 3.
package encoding

import (
	"io"

	"github.com/cockroachdb/errors"
)

// Field is an encoded field of an OpenPGP packet.
type Field interface {
	// Bytes returns the decoded data.
	Bytes() []byte

	// BitLength is the size in bits of the decoded data.
	BitLength() uint16

	// EncodedBytes returns the encoded data.
	EncodedBytes() []byte

	// EncodedLength is the size in bytes of the encoded data.
	EncodedLength() uint16

	// ReadFrom reads the next Field from r.
	ReadFrom(r io.Reader) (int64, error)
}

var (
	// ErrNonCanonical is returned for an MPI whose declared bit length
	// does not match its value.
	ErrNonCanonical = errors.New("non-canonical MPI")
	// ErrReservedOID is returned for an OID with a reserved length.
	ErrReservedOID = errors.New("reserved OID length")
)

func readFull(r io.Reader, buf []byte) (int64, error) {
	n, err := io.ReadFull(r, buf)
	if err == io.EOF {
		err = io.ErrUnexpectedEOF
	}
	return int64(n), err
}
