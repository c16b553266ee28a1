// Copyright 2011 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package encoding

import (
	"io"
)

var newline = []byte{'\r', '\n'}

// CanonicalTextWriter converts bare LF line endings to CRLF before
// passing data to the underlying writer, as required for text-mode
// signatures. Existing CRLF pairs are left alone, including pairs that
// straddle two calls to Write.
type CanonicalTextWriter struct {
	w       io.Writer
	afterCR bool
}

// NewCanonicalTextWriter returns a CanonicalTextWriter wrapping w.
func NewCanonicalTextWriter(w io.Writer) *CanonicalTextWriter {
	return &CanonicalTextWriter{w: w}
}

func (c *CanonicalTextWriter) Write(buf []byte) (int, error) {
	start := 0
	for i, b := range buf {
		if b == '\n' && !c.afterCR {
			if _, err := c.w.Write(buf[start:i]); err != nil {
				return start, err
			}
			if _, err := c.w.Write(newline); err != nil {
				return i, err
			}
			start = i + 1
		}
		c.afterCR = b == '\r'
	}
	if _, err := c.w.Write(buf[start:]); err != nil {
		return start, err
	}
	return len(buf), nil
}
