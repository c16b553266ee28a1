// Package ecc implements a generic interface for ECDSA and EdDSA curves.
package ecc

import (
	"github.com/cloudflare/circl/ecc/goldilocks"
	ed448lib "github.com/cloudflare/circl/sign/ed448"
)

type ed448 struct{}

func NewEd448() *ed448 {
	return &ed448{}
}

func (c *ed448) GetCurveType() CurveType {
	return Ed448
}

func (c *ed448) GetCurveName() string {
	return "ed448"
}

func (c *ed448) PublicKeySize() int {
	return ed448lib.PublicKeySize
}

func (c *ed448) SignatureSize() int {
	return ed448lib.SignatureSize
}

func (c *ed448) MinHashSize() int {
	return 64
}

// MarshalBytePoint encodes the public point from native format, adding the prefix.
// See https://www.rfc-editor.org/rfc/rfc9580#section-5.5.5.5
func (c *ed448) MarshalBytePoint(x []byte) []byte {
	return append([]byte{0x40}, x...)
}

// UnmarshalBytePoint decodes a point from prefixed format to native.
// See https://www.rfc-editor.org/rfc/rfc9580#section-5.5.5.5
func (c *ed448) UnmarshalBytePoint(point []byte) (x []byte) {
	if len(point) != ed448lib.PublicKeySize+1 || point[0] != 0x40 {
		return nil
	}
	if !c.ValidatePoint(point[1:]) {
		return nil
	}
	return append([]byte(nil), point[1:]...)
}

// ValidatePoint reports whether x is the canonical encoding of a point on
// the curve.
func (c *ed448) ValidatePoint(x []byte) bool {
	if len(x) != ed448lib.PublicKeySize {
		return false
	}
	_, err := goldilocks.FromBytes(x)
	return err == nil
}

func (c *ed448) Verify(publicKey, message, r, s []byte) bool {
	// Only R is used, in prefixed native format.
	if len(r) != ed448lib.SignatureSize+1 || r[0] != 0x40 || len(s) != 0 {
		return false
	}
	// Ed448 is used with the empty string as a context string.
	// See https://www.rfc-editor.org/rfc/rfc9580#section-5.2.3.3
	return ed448lib.Verify(publicKey, message, r[1:], "")
}
