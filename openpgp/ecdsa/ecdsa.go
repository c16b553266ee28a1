// Package ecdsa implements ECDSA signature verification, suitable for
// OpenPGP, as specified in RFC 9580, section 5.2.3.2.
package ecdsa

import (
	"math/big"

	"github.com/pgpverify/go-pgpverify/openpgp/internal/ecc"
)

type PublicKey struct {
	X, Y  *big.Int
	Curve ecc.ECDSACurve
}

// NewPublicKey decodes an uncompressed SEC1 point on curve. It returns
// nil if the point is not on the curve.
func NewPublicKey(curve ecc.ECDSACurve, point []byte) *PublicKey {
	x, y := curve.UnmarshalPoint(point)
	if x == nil {
		return nil
	}
	return &PublicKey{X: x, Y: y, Curve: curve}
}

// Verify reports whether (r, s) is a valid signature of hash. The hash
// is truncated to the curve order size by the underlying implementation.
func Verify(pub *PublicKey, hash []byte, r, s *big.Int) bool {
	if r.Sign() <= 0 || s.Sign() <= 0 {
		return false
	}
	return pub.Curve.Verify(pub.X, pub.Y, hash, r, s)
}
