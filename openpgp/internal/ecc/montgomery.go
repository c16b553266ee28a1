// Package ecc implements a generic interface for ECDSA and EdDSA curves.
package ecc

// montgomery is a key agreement curve. It is recognized so that
// encryption subkeys can be decoded, but it offers no operations.
type montgomery struct {
	name string
	typ  CurveType
}

func (c *montgomery) GetCurveType() CurveType {
	return c.typ
}

func (c *montgomery) GetCurveName() string {
	return c.name
}
