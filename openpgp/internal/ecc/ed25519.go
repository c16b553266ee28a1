// Package ecc implements a generic interface for ECDSA and EdDSA curves.
package ecc

import (
	"filippo.io/edwards25519"
	ed25519lib "github.com/cloudflare/circl/sign/ed25519"
)

const ed25519Size = 32

type ed25519 struct{}

func NewEd25519() *ed25519 {
	return &ed25519{}
}

func (c *ed25519) GetCurveType() CurveType {
	return Ed25519
}

func (c *ed25519) GetCurveName() string {
	return "ed25519"
}

func (c *ed25519) PublicKeySize() int {
	return ed25519lib.PublicKeySize
}

func (c *ed25519) SignatureSize() int {
	return ed25519lib.SignatureSize
}

func (c *ed25519) MinHashSize() int {
	return 32
}

// MarshalBytePoint encodes the public point from native format, adding the prefix.
// See https://www.rfc-editor.org/rfc/rfc9580#section-5.5.5.5
func (c *ed25519) MarshalBytePoint(x []byte) []byte {
	return append([]byte{0x40}, x...)
}

// UnmarshalBytePoint decodes a point from prefixed format to native.
// See https://www.rfc-editor.org/rfc/rfc9580#section-5.5.5.5
func (c *ed25519) UnmarshalBytePoint(point []byte) (x []byte) {
	if len(point) != ed25519lib.PublicKeySize+1 || point[0] != 0x40 {
		return nil
	}
	if !c.ValidatePoint(point[1:]) {
		return nil
	}
	return append([]byte(nil), point[1:]...)
}

// ValidatePoint reports whether x is the encoding of a point on the curve.
func (c *ed25519) ValidatePoint(x []byte) bool {
	if len(x) != ed25519Size {
		return false
	}
	_, err := new(edwards25519.Point).SetBytes(x)
	return err == nil
}

func (c *ed25519) Verify(publicKey, message, r, s []byte) bool {
	if len(r) > ed25519Size || len(s) > ed25519Size {
		return false
	}
	// R and S are MPIs, so leading zeros may have been stripped.
	signature := make([]byte, ed25519lib.SignatureSize)
	copy(signature[ed25519Size-len(r):ed25519Size], r)
	copy(signature[ed25519lib.SignatureSize-len(s):], s)

	return ed25519lib.Verify(publicKey, message, signature)
}
