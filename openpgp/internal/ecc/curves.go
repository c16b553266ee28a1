// Package ecc implements a generic interface for ECDSA and EdDSA curves.
package ecc

import (
	"math/big"
)

type Curve interface {
	GetCurveType() CurveType
	GetCurveName() string
}

// ECDSACurve is a short Weierstrass curve usable with ECDSA.
type ECDSACurve interface {
	Curve
	MarshalPoint(x, y *big.Int) []byte
	// UnmarshalPoint returns nil if the point is not on the curve.
	UnmarshalPoint([]byte) (x, y *big.Int)
	Verify(x, y *big.Int, hash []byte, r, s *big.Int) bool
	// BitSize is the size of the base point order.
	BitSize() int
}

// EdDSACurve is a twisted Edwards curve usable with EdDSA.
type EdDSACurve interface {
	Curve
	MarshalBytePoint(x []byte) []byte
	// UnmarshalBytePoint returns nil if the encoding has the wrong
	// length or prefix, or is not a point on the curve.
	UnmarshalBytePoint([]byte) (x []byte)
	ValidatePoint(x []byte) bool
	// Verify checks a signature in the legacy EdDSA (R, S) encoding.
	Verify(publicKey, message, r, s []byte) bool
	// PublicKeySize is the size of a native public key.
	PublicKeySize() int
	// SignatureSize is the size of a native signature.
	SignatureSize() int
	// MinHashSize is the smallest digest, in bytes, the curve may sign.
	MinHashSize() int
}
