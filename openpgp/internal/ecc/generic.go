// Package ecc implements a generic interface for ECDSA and EdDSA curves.
package ecc

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"math/big"
)

type genericCurve struct {
	Curve elliptic.Curve
	Type  CurveType
}

func NewGenericCurve(c elliptic.Curve, t CurveType) *genericCurve {
	return &genericCurve{
		Curve: c,
		Type:  t,
	}
}

func (c *genericCurve) GetCurveName() string {
	return c.Curve.Params().Name
}

func (c *genericCurve) GetCurveType() CurveType {
	return c.Type
}

func (c *genericCurve) BitSize() int {
	return c.Curve.Params().BitSize
}

func (c *genericCurve) MarshalPoint(x, y *big.Int) []byte {
	return elliptic.Marshal(c.Curve, x, y)
}

func (c *genericCurve) UnmarshalPoint(point []byte) (x, y *big.Int) {
	return elliptic.Unmarshal(c.Curve, point)
}

func (c *genericCurve) Verify(x, y *big.Int, hash []byte, r, s *big.Int) bool {
	pub := &ecdsa.PublicKey{X: x, Y: y, Curve: c.Curve}
	return ecdsa.Verify(pub, hash, r, s)
}
