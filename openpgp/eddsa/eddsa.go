// Package eddsa implements verification of legacy EdDSA signatures,
// suitable for OpenPGP, as specified in RFC 9580, section 5.2.3.3.
package eddsa

import (
	"github.com/pgpverify/go-pgpverify/openpgp/internal/ecc"
)

type PublicKey struct {
	X     []byte
	Curve ecc.EdDSACurve
}

// NewPublicKey decodes a prefixed native point. It returns nil if the
// point has the wrong length or prefix for the curve.
func NewPublicKey(curve ecc.EdDSACurve, point []byte) *PublicKey {
	x := curve.UnmarshalBytePoint(point)
	if x == nil {
		return nil
	}
	return &PublicKey{X: x, Curve: curve}
}

func Verify(pub *PublicKey, message, r, s []byte) bool {
	return pub.Curve.Verify(pub.X, message, r, s)
}
