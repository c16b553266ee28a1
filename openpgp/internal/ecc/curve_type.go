// Package ecc implements a generic interface for ECDSA and EdDSA curves.
package ecc

type CurveType uint8

const (
	NISTCurve  CurveType = 1
	Curve25519 CurveType = 2
	Ed25519    CurveType = 5
	Ed448      CurveType = 6
	Curve448   CurveType = 7
)
