// Package ecc implements a generic interface for ECDSA and EdDSA curves.
package ecc

import (
	"bytes"
	"crypto/elliptic"

	"github.com/pgpverify/go-pgpverify/openpgp/internal/encoding"
)

type CurveInfo struct {
	Name  string
	Oid   *encoding.OID
	Curve Curve
}

var Curves = []CurveInfo{
	{
		Name:  "NIST curve P-256",
		Oid:   encoding.NewOID([]byte{0x2A, 0x86, 0x48, 0xCE, 0x3D, 0x03, 0x01, 0x07}),
		Curve: NewGenericCurve(elliptic.P256(), NISTCurve),
	},
	{
		Name:  "NIST curve P-384",
		Oid:   encoding.NewOID([]byte{0x2B, 0x81, 0x04, 0x00, 0x22}),
		Curve: NewGenericCurve(elliptic.P384(), NISTCurve),
	},
	{
		Name:  "NIST curve P-521",
		Oid:   encoding.NewOID([]byte{0x2B, 0x81, 0x04, 0x00, 0x23}),
		Curve: NewGenericCurve(elliptic.P521(), NISTCurve),
	},
	{
		Name:  "Curve25519",
		Oid:   encoding.NewOID([]byte{0x2B, 0x06, 0x01, 0x04, 0x01, 0x97, 0x55, 0x01, 0x05, 0x01}),
		Curve: &montgomery{name: "curve25519", typ: Curve25519},
	},
	{
		Name:  "Curve448",
		Oid:   encoding.NewOID([]byte{0x2B, 0x65, 0x6F}),
		Curve: &montgomery{name: "curve448", typ: Curve448},
	},
	{
		Name:  "Ed25519",
		Oid:   encoding.NewOID([]byte{0x2B, 0x06, 0x01, 0x04, 0x01, 0xDA, 0x47, 0x0F, 0x01}),
		Curve: NewEd25519(),
	},
	{
		Name:  "Ed448",
		Oid:   encoding.NewOID([]byte{0x2B, 0x65, 0x71}),
		Curve: NewEd448(),
	},
}

func FindByCurve(curve Curve) *CurveInfo {
	for i := range Curves {
		if Curves[i].Curve.GetCurveType() == curve.GetCurveType() && Curves[i].Curve.GetCurveName() == curve.GetCurveName() {
			return &Curves[i]
		}
	}
	return nil
}

func FindByOid(oid encoding.Field) *CurveInfo {
	var rawBytes = oid.Bytes()
	for i := range Curves {
		if bytes.Equal(Curves[i].Oid.Bytes(), rawBytes) {
			return &Curves[i]
		}
	}
	return nil
}

func FindECDSAByOid(oid encoding.Field) ECDSACurve {
	info := FindByOid(oid)
	if info == nil {
		return nil
	}
	c, _ := info.Curve.(ECDSACurve)
	return c
}

func FindEdDSAByOid(oid encoding.Field) EdDSACurve {
	info := FindByOid(oid)
	if info == nil {
		return nil
	}
	c, _ := info.Curve.(EdDSACurve)
	return c
}
