// Copyright 2011 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package openpgp

import (
	"hash"

	"github.com/pgpverify/go-pgpverify/openpgp/internal/encoding"
)

// NewCanonicalTextHash reformats text written to it into the canonical
// form and then applies the hash h. See RFC 9580, section 5.2.1.2.
func NewCanonicalTextHash(h hash.Hash) hash.Hash {
	return &canonicalTextHash{h, encoding.NewCanonicalTextWriter(h)}
}

type canonicalTextHash struct {
	h hash.Hash
	w *encoding.CanonicalTextWriter
}

func (cth *canonicalTextHash) Write(buf []byte) (int, error) {
	return cth.w.Write(buf)
}

func (cth *canonicalTextHash) Sum(in []byte) []byte {
	return cth.h.Sum(in)
}

func (cth *canonicalTextHash) Reset() {
	cth.h.Reset()
	cth.w = encoding.NewCanonicalTextWriter(cth.h)
}

func (cth *canonicalTextHash) Size() int {
	return cth.h.Size()
}

func (cth *canonicalTextHash) BlockSize() int {
	return cth.h.BlockSize()
}
