// Copyright 2011 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package packet implements parsing of the OpenPGP packets needed to verify
// signatures: public keys, user IDs and signatures. See RFC 9580.
package packet

import (
	"crypto"
	"io"

	"github.com/effective-security/xlog"
	"github.com/pgpverify/go-pgpverify/openpgp/errors"
)

var logger = xlog.NewPackageLogger("github.com/pgpverify/go-pgpverify", "openpgp/packet")

// readFull is the same as io.ReadFull except that reading zero bytes returns
// ErrUnexpectedEOF rather than EOF.
func readFull(r io.Reader, buf []byte) (n int, err error) {
	n, err = io.ReadFull(r, buf)
	if err == io.EOF {
		err = io.ErrUnexpectedEOF
	}
	return
}

// packetType represents the numeric ids of the different OpenPGP packet types. See
// http://www.iana.org/assignments/pgp-parameters/pgp-parameters.xhtml#pgp-parameters-2
type packetType uint8

const (
	packetTypeEncryptedKey              packetType = 1
	packetTypeSignature                 packetType = 2
	packetTypeSymmetricKeyEncrypted     packetType = 3
	packetTypeOnePassSignature          packetType = 4
	packetTypePrivateKey                packetType = 5
	packetTypePublicKey                 packetType = 6
	packetTypePrivateSubkey             packetType = 7
	packetTypeCompressed                packetType = 8
	packetTypeSymmetricallyEncrypted    packetType = 9
	packetTypeMarker                    packetType = 10
	packetTypeLiteralData               packetType = 11
	packetTypeTrust                     packetType = 12
	packetTypeUserId                    packetType = 13
	packetTypePublicSubkey              packetType = 14
	packetTypeUserAttribute             packetType = 17
	packetTypeSymmetricallyEncryptedMDC packetType = 18
	packetTypeAEADEncrypted             packetType = 20
	packetPadding                       packetType = 21

	// Tags from 40 to 63 are non-critical: an implementation that does
	// not know them must ignore them. See RFC 9580, section 4.3.
	firstNonCriticalPacketType packetType = 40
)

// Exported packet tags, for callers that work with OpaquePacket.
const (
	TagSignature     = uint8(packetTypeSignature)
	TagPublicKey     = uint8(packetTypePublicKey)
	TagPublicSubkey  = uint8(packetTypePublicSubkey)
	TagMarker        = uint8(packetTypeMarker)
	TagTrust         = uint8(packetTypeTrust)
	TagUserId        = uint8(packetTypeUserId)
	TagUserAttribute = uint8(packetTypeUserAttribute)
	TagPadding       = uint8(packetPadding)
)

// allowsPartialLength reports whether a packet of type t may use partial body
// lengths. See RFC 9580, section 4.2.1.4.
func (t packetType) allowsPartialLength() bool {
	switch t {
	case packetTypeCompressed, packetTypeSymmetricallyEncrypted, packetTypeLiteralData,
		packetTypeSymmetricallyEncryptedMDC, packetTypeAEADEncrypted:
		return true
	}
	return false
}

// Packet represents an OpenPGP packet that this package can decode. Users are
// expected to try casting a Packet to one of the types below.
type Packet interface {
	parse(body []byte) error
}

// SignatureType represents the different semantic meanings of an OpenPGP
// signature. See RFC 9580, section 5.2.1.
type SignatureType uint8

const (
	SigTypeBinary                  SignatureType = 0x00
	SigTypeText                    SignatureType = 0x01
	SigTypeGenericCert             SignatureType = 0x10
	SigTypePersonaCert             SignatureType = 0x11
	SigTypeCasualCert              SignatureType = 0x12
	SigTypePositiveCert            SignatureType = 0x13
	SigTypeSubkeyBinding           SignatureType = 0x18
	SigTypePrimaryKeyBinding       SignatureType = 0x19
	SigTypeDirectSignature         SignatureType = 0x1F
	SigTypeKeyRevocation           SignatureType = 0x20
	SigTypeSubkeyRevocation        SignatureType = 0x28
	SigTypeCertificationRevocation SignatureType = 0x30
)

// IsCertification reports whether the type binds a user ID or user
// attribute to a key.
func (t SignatureType) IsCertification() bool {
	return t >= SigTypeGenericCert && t <= SigTypePositiveCert
}

// PublicKeyAlgorithm represents the different public key system specified for
// OpenPGP. See
// http://www.iana.org/assignments/pgp-parameters/pgp-parameters.xhtml#pgp-parameters-12
type PublicKeyAlgorithm uint8

const (
	PubKeyAlgoRSA     PublicKeyAlgorithm = 1
	PubKeyAlgoElGamal PublicKeyAlgorithm = 16
	PubKeyAlgoDSA     PublicKeyAlgorithm = 17
	// RFC 6637, Section 5.
	PubKeyAlgoECDH  PublicKeyAlgorithm = 18
	PubKeyAlgoECDSA PublicKeyAlgorithm = 19
	// https://www.ietf.org/archive/id/draft-koch-eddsa-for-openpgp-04.txt
	PubKeyAlgoEdDSA PublicKeyAlgorithm = 22
	// https://datatracker.ietf.org/doc/html/draft-ietf-openpgp-crypto-refresh
	PubKeyAlgoX25519  PublicKeyAlgorithm = 25
	PubKeyAlgoX448    PublicKeyAlgorithm = 26
	PubKeyAlgoEd25519 PublicKeyAlgorithm = 27
	PubKeyAlgoEd448   PublicKeyAlgorithm = 28

	// Deprecated in RFC 4880, Section 13.5. Use key flags instead.
	PubKeyAlgoRSAEncryptOnly PublicKeyAlgorithm = 2
	PubKeyAlgoRSASignOnly    PublicKeyAlgorithm = 3
)

// CanEncrypt returns true if it's possible to encrypt a message to a public
// key of the given type.
func (pka PublicKeyAlgorithm) CanEncrypt() bool {
	switch pka {
	case PubKeyAlgoRSA, PubKeyAlgoRSAEncryptOnly, PubKeyAlgoElGamal, PubKeyAlgoECDH, PubKeyAlgoX25519, PubKeyAlgoX448:
		return true
	}
	return false
}

// CanSign returns true if it's possible for a public key of the given type to
// sign a message.
func (pka PublicKeyAlgorithm) CanSign() bool {
	switch pka {
	case PubKeyAlgoRSA, PubKeyAlgoRSASignOnly, PubKeyAlgoDSA, PubKeyAlgoECDSA, PubKeyAlgoEdDSA, PubKeyAlgoEd25519, PubKeyAlgoEd448:
		return true
	}
	return false
}

// compatible reports whether a key of type pka can have made a signature
// declared as sigAlgo.
func (pka PublicKeyAlgorithm) compatible(sigAlgo PublicKeyAlgorithm) bool {
	if pka == sigAlgo {
		return true
	}
	isRSA := func(a PublicKeyAlgorithm) bool {
		return a == PubKeyAlgoRSA || a == PubKeyAlgoRSASignOnly
	}
	return isRSA(pka) && isRSA(sigAlgo)
}

var pubKeyAlgoNames = map[PublicKeyAlgorithm]string{
	PubKeyAlgoRSA:            "RSA",
	PubKeyAlgoRSAEncryptOnly: "RSA-E",
	PubKeyAlgoRSASignOnly:    "RSA-S",
	PubKeyAlgoElGamal:        "ElGamal",
	PubKeyAlgoDSA:            "DSA",
	PubKeyAlgoECDH:           "ECDH",
	PubKeyAlgoECDSA:          "ECDSA",
	PubKeyAlgoEdDSA:          "EdDSA",
	PubKeyAlgoX25519:         "X25519",
	PubKeyAlgoX448:           "X448",
	PubKeyAlgoEd25519:        "Ed25519",
	PubKeyAlgoEd448:          "Ed448",
}

func (pka PublicKeyAlgorithm) String() string {
	if s, ok := pubKeyAlgoNames[pka]; ok {
		return s
	}
	return "unknown"
}

// ParsePublicKeyAlgorithm returns the algorithm with the given name, as
// returned by String.
func ParsePublicKeyAlgorithm(name string) (PublicKeyAlgorithm, bool) {
	for k, v := range pubKeyAlgoNames {
		if v == name {
			return k, true
		}
	}
	return 0, false
}

// Curve is a name of an elliptic curve, as used in policy configuration.
type Curve string

const (
	Curve25519    Curve = "Curve25519"
	Curve448      Curve = "Curve448"
	CurveNistP256 Curve = "P256"
	CurveNistP384 Curve = "P384"
	CurveNistP521 Curve = "P521"
	CurveEd25519  Curve = "Ed25519"
	CurveEd448    Curve = "Ed448"
	CurveUnknown  Curve = ""
)

// ParseCurve returns the curve with the given name.
func ParseCurve(name string) (Curve, bool) {
	switch c := Curve(name); c {
	case Curve25519, Curve448, CurveNistP256, CurveNistP384, CurveNistP521, CurveEd25519, CurveEd448:
		return c, true
	}
	return CurveUnknown, false
}

// TrustLevel represents a trust level per RFC 9580, section 5.2.3.21
type TrustLevel uint8

// TrustAmount represents a trust amount per RFC 9580, section 5.2.3.21
type TrustAmount uint8

// ReasonForRevocation represents a revocation reason code as per RFC 9580
// section 5.2.3.31.
type ReasonForRevocation uint8

const (
	NoReason       ReasonForRevocation = 0
	KeySuperseded  ReasonForRevocation = 1
	KeyCompromised ReasonForRevocation = 2
	KeyRetired     ReasonForRevocation = 3
	UserIDNotValid ReasonForRevocation = 32
	Unknown        ReasonForRevocation = 200
)

// NewReasonForRevocation maps reserved and private codes to Unknown.
func NewReasonForRevocation(value byte) ReasonForRevocation {
	if v := ReasonForRevocation(value); v <= KeyRetired || v == UserIDNotValid {
		return v
	}
	return Unknown
}

// IsSoft reports whether the revocation only applies from the time it was
// made. Superseded and retired keys were valid before; any other reason,
// including none, invalidates the key for all time.
// See RFC 9580, section 5.2.3.31.
func (r ReasonForRevocation) IsSoft() bool {
	return r == KeySuperseded || r == KeyRetired || r == UserIDNotValid
}

// hashAvailable returns an UnsupportedAlgorithm error if h cannot be
// computed by this binary.
func hashAvailable(h crypto.Hash) error {
	if !h.Available() {
		return errors.UnsupportedError("hash function " + h.String())
	}
	return nil
}

// serializeHeader writes an OpenPGP packet header to w. See RFC 9580,
// section 4.2.
func serializeHeader(w io.Writer, ptype packetType, length int) (err error) {
	var buf [6]byte
	var n int

	buf[0] = 0x80 | 0x40 | byte(ptype)
	if length < 192 {
		buf[1] = byte(length)
		n = 2
	} else if length < 8384 {
		length -= 192
		buf[1] = 192 + byte(length>>8)
		buf[2] = byte(length)
		n = 3
	} else {
		buf[1] = 255
		buf[2] = byte(length >> 24)
		buf[3] = byte(length >> 16)
		buf[4] = byte(length >> 8)
		buf[5] = byte(length)
		n = 6
	}

	_, err = w.Write(buf[:n])
	return
}

// SerializeHeader writes a new format header for a packet with the given
// tag and body length.
func SerializeHeader(w io.Writer, tag uint8, length int) error {
	return serializeHeader(w, packetType(tag), length)
}
