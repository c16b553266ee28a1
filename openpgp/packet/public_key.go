// Copyright 2011 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package packet

import (
	"bytes"
	"crypto/dsa"
	"crypto/md5"
	"crypto/rsa"
	"crypto/sha1"
	"crypto/sha256"
	"encoding/binary"
	"fmt"
	"hash"
	"io"
	"math/big"
	"strconv"
	"time"

	"github.com/pgpverify/go-pgpverify/openpgp/ecdsa"
	"github.com/pgpverify/go-pgpverify/openpgp/ed25519"
	"github.com/pgpverify/go-pgpverify/openpgp/ed448"
	"github.com/pgpverify/go-pgpverify/openpgp/eddsa"
	"github.com/pgpverify/go-pgpverify/openpgp/errors"
	"github.com/pgpverify/go-pgpverify/openpgp/internal/ecc"
	"github.com/pgpverify/go-pgpverify/openpgp/internal/encoding"
)

const (
	x25519KeySize = 32
	x448KeySize   = 56
)

// PublicKey represents an OpenPGP public key. See RFC 9580, section 5.5.2.
type PublicKey struct {
	Version      int
	CreationTime time.Time
	PubKeyAlgo   PublicKeyAlgorithm
	PublicKey    interface{} // *rsa.PublicKey, *dsa.PublicKey, *ecdsa.PublicKey, *eddsa.PublicKey, *ed25519.PublicKey, *ed448.PublicKey, or nil for keys that cannot sign
	Fingerprint  []byte
	KeyId        uint64
	IsSubkey     bool

	// ValidDays is the validity period of a v3 key. Zero means it does
	// not expire.
	ValidDays uint16

	// RFC 4880 fields
	n, e, p, q, g, y encoding.Field

	// RFC 6637 fields
	// oid contains the OID byte sequence identifying the elliptic curve used
	oid encoding.Field

	// kdf stores key derivation function parameters
	// used for ECDH encryption. See RFC 6637, Section 9.
	kdf encoding.Field

	// native holds the raw point of X25519, X448, Ed25519 and Ed448 keys.
	native *encoding.OctetArray

	// opaque holds the key material of an algorithm or curve that is not
	// supported; unsupported is the reason.
	opaque      []byte
	unsupported error
}

// NewRSAPublicKey returns a PublicKey that wraps the given rsa.PublicKey.
func NewRSAPublicKey(creationTime time.Time, pub *rsa.PublicKey) *PublicKey {
	pk := &PublicKey{
		Version:      4,
		CreationTime: creationTime,
		PubKeyAlgo:   PubKeyAlgoRSA,
		PublicKey:    pub,
		n:            new(encoding.MPI).SetBig(pub.N),
		e:            new(encoding.MPI).SetBig(big.NewInt(int64(pub.E))),
	}

	pk.setFingerprintAndKeyId()
	return pk
}

// NewV3RSAPublicKey returns a version 3 PublicKey that wraps the given
// rsa.PublicKey.
func NewV3RSAPublicKey(creationTime time.Time, pub *rsa.PublicKey) *PublicKey {
	pk := NewRSAPublicKey(creationTime, pub)
	pk.Version = 3
	pk.setFingerprintAndKeyId()
	return pk
}

// NewDSAPublicKey returns a PublicKey that wraps the given dsa.PublicKey.
func NewDSAPublicKey(creationTime time.Time, pub *dsa.PublicKey) *PublicKey {
	pk := &PublicKey{
		Version:      4,
		CreationTime: creationTime,
		PubKeyAlgo:   PubKeyAlgoDSA,
		PublicKey:    pub,
		p:            new(encoding.MPI).SetBig(pub.P),
		q:            new(encoding.MPI).SetBig(pub.Q),
		g:            new(encoding.MPI).SetBig(pub.G),
		y:            new(encoding.MPI).SetBig(pub.Y),
	}

	pk.setFingerprintAndKeyId()
	return pk
}

func NewECDSAPublicKey(creationTime time.Time, pub *ecdsa.PublicKey) *PublicKey {
	pk := &PublicKey{
		Version:      4,
		CreationTime: creationTime,
		PubKeyAlgo:   PubKeyAlgoECDSA,
		PublicKey:    pub,
		p:            encoding.NewMPI(pub.Curve.MarshalPoint(pub.X, pub.Y)),
	}

	curveInfo := ecc.FindByCurve(pub.Curve)
	if curveInfo == nil {
		panic("unknown elliptic curve")
	}
	pk.oid = curveInfo.Oid
	pk.setFingerprintAndKeyId()
	return pk
}

func NewEdDSAPublicKey(creationTime time.Time, pub *eddsa.PublicKey) *PublicKey {
	curveInfo := ecc.FindByCurve(pub.Curve)
	if curveInfo == nil {
		panic("unknown elliptic curve")
	}
	pk := &PublicKey{
		Version:      4,
		CreationTime: creationTime,
		PubKeyAlgo:   PubKeyAlgoEdDSA,
		PublicKey:    pub,
		oid:          curveInfo.Oid,
		// Native point format, see draft-koch-eddsa-for-openpgp-04, Appendix B
		p: encoding.NewMPI(pub.Curve.MarshalBytePoint(pub.X)),
	}

	pk.setFingerprintAndKeyId()
	return pk
}

// NewEd25519PublicKey returns a key of the given version (4 or 6).
func NewEd25519PublicKey(creationTime time.Time, version int, pub *ed25519.PublicKey) *PublicKey {
	pk := &PublicKey{
		Version:      version,
		CreationTime: creationTime,
		PubKeyAlgo:   PubKeyAlgoEd25519,
		PublicKey:    pub,
		native:       encoding.NewOctetArray(pub.Point),
	}

	pk.setFingerprintAndKeyId()
	return pk
}

// NewEd448PublicKey returns a key of the given version (4 or 6).
func NewEd448PublicKey(creationTime time.Time, version int, pub *ed448.PublicKey) *PublicKey {
	pk := &PublicKey{
		Version:      version,
		CreationTime: creationTime,
		PubKeyAlgo:   PubKeyAlgoEd448,
		PublicKey:    pub,
		native:       encoding.NewOctetArray(pub.Point),
	}

	pk.setFingerprintAndKeyId()
	return pk
}

// ParsePublicKey decodes the body of a public key or public subkey packet.
// If the algorithm or curve is not supported, the returned key is non-nil
// and carries a fingerprint, together with an UnsupportedAlgorithm error.
func ParsePublicKey(body []byte) (*PublicKey, error) {
	pk := new(PublicKey)
	if err := pk.parse(body); err != nil {
		if errors.KindOf(err) == errors.UnsupportedAlgorithm {
			return pk, err
		}
		return nil, err
	}
	return pk, nil
}

func (pk *PublicKey) parse(body []byte) (err error) {
	err = pk.parseBody(body)
	if err == nil || errors.KindOf(err) == errors.UnsupportedAlgorithm || errors.KindOf(err) == errors.MalformedKey {
		return err
	}
	// io.ErrUnexpectedEOF and MPI encoding errors.
	return errors.Wrap(errors.MalformedKey, err)
}

func (pk *PublicKey) parseBody(body []byte) (err error) {
	// RFC 9580, section 5.5.2
	if len(body) < 6 {
		return errors.MalformedKeyError("key packet too short")
	}
	pk.Version = int(body[0])
	pk.CreationTime = time.Unix(int64(binary.BigEndian.Uint32(body[1:5])), 0)

	var material []byte
	switch pk.Version {
	case 2, 3:
		if len(body) < 8 {
			return errors.MalformedKeyError("v3 key packet too short")
		}
		pk.ValidDays = binary.BigEndian.Uint16(body[5:7])
		pk.PubKeyAlgo = PublicKeyAlgorithm(body[7])
		material = body[8:]
	case 4:
		pk.PubKeyAlgo = PublicKeyAlgorithm(body[5])
		material = body[6:]
	case 6:
		if len(body) < 10 {
			return errors.MalformedKeyError("v6 key packet too short")
		}
		pk.PubKeyAlgo = PublicKeyAlgorithm(body[5])
		count := binary.BigEndian.Uint32(body[6:10])
		material = body[10:]
		if uint64(count) != uint64(len(material)) {
			return errors.MalformedKeyError("key material length mismatch")
		}
	default:
		return errors.MalformedKeyError("public key version " + strconv.Itoa(pk.Version))
	}

	if pk.Version <= 3 {
		switch pk.PubKeyAlgo {
		case PubKeyAlgoRSA, PubKeyAlgoRSAEncryptOnly, PubKeyAlgoRSASignOnly:
		default:
			return errors.MalformedKeyError("v3 key of non-RSA type " + strconv.Itoa(int(pk.PubKeyAlgo)))
		}
	}

	r := bytes.NewReader(material)
	switch pk.PubKeyAlgo {
	case PubKeyAlgoRSA, PubKeyAlgoRSAEncryptOnly, PubKeyAlgoRSASignOnly:
		err = pk.parseRSA(r)
	case PubKeyAlgoDSA:
		err = pk.parseDSA(r)
	case PubKeyAlgoElGamal:
		err = pk.parseElGamal(r)
	case PubKeyAlgoECDSA:
		err = pk.parseECDSA(r)
	case PubKeyAlgoECDH:
		err = pk.parseECDH(r)
	case PubKeyAlgoEdDSA:
		err = pk.parseEdDSA(r)
	case PubKeyAlgoX25519:
		err = pk.parseNative(r, x25519KeySize)
	case PubKeyAlgoX448:
		err = pk.parseNative(r, x448KeySize)
	case PubKeyAlgoEd25519:
		if err = pk.parseNative(r, ed25519.PointSize); err == nil {
			err = pk.setNativeKey(ed25519.NewPublicKey(pk.native.Bytes()))
		}
	case PubKeyAlgoEd448:
		if err = pk.parseNative(r, ed448.PointSize); err == nil {
			err = pk.setNativeKey(ed448.NewPublicKey(pk.native.Bytes()))
		}
	default:
		err = errors.UnsupportedError("public key type: " + strconv.Itoa(int(pk.PubKeyAlgo)))
	}
	if errors.KindOf(err) == errors.UnsupportedAlgorithm {
		// Keep the key as an opaque one so that it can still be
		// identified.
		pk.PublicKey = nil
		pk.unsupported = err
		if pk.Version <= 3 {
			// Only RSA reaches here, with n and e already read.
			pk.setFingerprintAndKeyId()
			return err
		}
		pk.n, pk.e, pk.p, pk.q, pk.g, pk.y, pk.oid, pk.kdf, pk.native = nil, nil, nil, nil, nil, nil, nil, nil, nil
		pk.opaque = append([]byte{}, material...)
		pk.setFingerprintAndKeyId()
		return err
	}
	if err != nil {
		return err
	}
	if r.Len() != 0 {
		return errors.MalformedKeyError("trailing data after key material")
	}

	pk.setFingerprintAndKeyId()
	return nil
}

func (pk *PublicKey) setFingerprintAndKeyId() {
	switch {
	case pk.Version <= 3:
		// RFC 4880, section 12.2: MD5 of the MPI bodies, and the low 64
		// bits of the modulus.
		fingerprint := md5.New()
		fingerprint.Write(pk.n.Bytes())
		fingerprint.Write(pk.e.Bytes())
		pk.Fingerprint = fingerprint.Sum(nil)
		var id [8]byte
		n := pk.n.Bytes()
		if len(n) >= 8 {
			copy(id[:], n[len(n)-8:])
		} else {
			copy(id[8-len(n):], n)
		}
		pk.KeyId = binary.BigEndian.Uint64(id[:])
	case pk.Version == 6:
		fingerprint := sha256.New()
		if err := pk.SerializeForHash(fingerprint); err != nil {
			// Should not happen for a hash.
			panic(err)
		}
		pk.Fingerprint = fingerprint.Sum(nil)
		pk.KeyId = binary.BigEndian.Uint64(pk.Fingerprint[:8])
	default:
		fingerprint := sha1.New()
		if err := pk.SerializeForHash(fingerprint); err != nil {
			// Should not happen for a hash.
			panic(err)
		}
		pk.Fingerprint = fingerprint.Sum(nil)
		pk.KeyId = binary.BigEndian.Uint64(pk.Fingerprint[12:20])
	}
}

func readMPIs(r io.Reader, fields ...*encoding.Field) error {
	for _, f := range fields {
		m := new(encoding.MPI)
		if _, err := m.ReadFrom(r); err != nil {
			return err
		}
		*f = m
	}
	return nil
}

// parseRSA parses RSA public key material from the given Reader. See RFC 4880,
// section 5.5.2.
func (pk *PublicKey) parseRSA(r io.Reader) (err error) {
	if err = readMPIs(r, &pk.n, &pk.e); err != nil {
		return
	}

	n := new(big.Int).SetBytes(pk.n.Bytes())
	if n.BitLen() < 512 || n.Bit(0) == 0 {
		return errors.MalformedKeyError("invalid RSA modulus")
	}
	if len(pk.e.Bytes()) > 4 {
		return errors.UnsupportedError("large public exponent")
	}
	e := 0
	for _, b := range pk.e.Bytes() {
		e = e<<8 | int(b)
	}
	if e < 3 || e&1 == 0 || e > 1<<31-1 {
		return errors.MalformedKeyError("invalid RSA public exponent")
	}
	pk.PublicKey = &rsa.PublicKey{N: n, E: e}
	return
}

// parseDSA parses DSA public key material from the given Reader. See RFC 4880,
// section 5.5.2.
func (pk *PublicKey) parseDSA(r io.Reader) (err error) {
	if err = readMPIs(r, &pk.p, &pk.q, &pk.g, &pk.y); err != nil {
		return
	}

	dsa := new(dsa.PublicKey)
	dsa.P = new(big.Int).SetBytes(pk.p.Bytes())
	dsa.Q = new(big.Int).SetBytes(pk.q.Bytes())
	dsa.G = new(big.Int).SetBytes(pk.g.Bytes())
	dsa.Y = new(big.Int).SetBytes(pk.y.Bytes())
	switch dsa.Q.BitLen() {
	case 160, 224, 256:
	default:
		return errors.MalformedKeyError("invalid DSA subgroup size " + strconv.Itoa(dsa.Q.BitLen()))
	}
	one := big.NewInt(1)
	if dsa.P.Cmp(dsa.Q) <= 0 || dsa.G.Cmp(one) <= 0 || dsa.G.Cmp(dsa.P) >= 0 ||
		dsa.Y.Cmp(one) <= 0 || dsa.Y.Cmp(dsa.P) >= 0 {
		return errors.MalformedKeyError("invalid DSA parameters")
	}
	pk.PublicKey = dsa
	return
}

// parseElGamal parses ElGamal public key material from the given Reader. See
// RFC 4880, section 5.5.2. ElGamal keys only encrypt, so the material is
// kept for fingerprinting and nothing else.
func (pk *PublicKey) parseElGamal(r io.Reader) (err error) {
	return readMPIs(r, &pk.p, &pk.g, &pk.y)
}

// parseECDSA parses ECDSA public key material from the given Reader. See
// RFC 6637, Section 9.
func (pk *PublicKey) parseECDSA(r io.Reader) (err error) {
	pk.oid = new(encoding.OID)
	if _, err = pk.oid.ReadFrom(r); err != nil {
		return
	}
	c := ecc.FindECDSAByOid(pk.oid)
	if c == nil {
		return errors.UnsupportedError(fmt.Sprintf("unsupported ECDSA oid: %x", pk.oid.Bytes()))
	}
	if err = readMPIs(r, &pk.p); err != nil {
		return
	}
	ecdsaKey := ecdsa.NewPublicKey(c, pk.p.Bytes())
	if ecdsaKey == nil {
		return errors.MalformedKeyError("ECDSA point is not on the curve")
	}
	pk.PublicKey = ecdsaKey
	return
}

// parseECDH parses ECDH public key material from the given Reader. See
// RFC 6637, Section 9.
func (pk *PublicKey) parseECDH(r io.Reader) (err error) {
	pk.oid = new(encoding.OID)
	if _, err = pk.oid.ReadFrom(r); err != nil {
		return
	}
	if ecc.FindByOid(pk.oid) == nil {
		return errors.UnsupportedError(fmt.Sprintf("unknown ECDH oid: %x", pk.oid.Bytes()))
	}
	if err = readMPIs(r, &pk.p); err != nil {
		return
	}
	pk.kdf = new(encoding.OID)
	if _, err = pk.kdf.ReadFrom(r); err != nil {
		return
	}
	if kdfLen := len(pk.kdf.Bytes()); kdfLen < 3 {
		return errors.MalformedKeyError("unsupported ECDH KDF length: " + strconv.Itoa(kdfLen))
	}
	if reserved := pk.kdf.Bytes()[0]; reserved != 0x01 {
		return errors.MalformedKeyError("unsupported KDF reserved field: " + strconv.Itoa(int(reserved)))
	}
	return
}

func (pk *PublicKey) parseEdDSA(r io.Reader) (err error) {
	pk.oid = new(encoding.OID)
	if _, err = pk.oid.ReadFrom(r); err != nil {
		return
	}
	c := ecc.FindEdDSAByOid(pk.oid)
	if c == nil {
		return errors.UnsupportedError(fmt.Sprintf("unsupported EdDSA oid: %x", pk.oid.Bytes()))
	}
	if err = readMPIs(r, &pk.p); err != nil {
		return
	}
	pub := eddsa.NewPublicKey(c, pk.p.Bytes())
	if pub == nil {
		return errors.MalformedKeyError("invalid EdDSA point encoding")
	}
	pk.PublicKey = pub
	return
}

func (pk *PublicKey) parseNative(r io.Reader, size int) (err error) {
	pk.native = encoding.NewEmptyOctetArray(size)
	_, err = pk.native.ReadFrom(r)
	return
}

// setNativeKey sets the decoded Ed25519 or Ed448 key, which is nil when the
// point is not on its curve.
func (pk *PublicKey) setNativeKey(pub interface{}) error {
	switch pub := pub.(type) {
	case *ed25519.PublicKey:
		if pub == nil {
			return errors.MalformedKeyError("invalid Ed25519 point")
		}
		pk.PublicKey = pub
	case *ed448.PublicKey:
		if pub == nil {
			return errors.MalformedKeyError("invalid Ed448 point")
		}
		pk.PublicKey = pub
	}
	return nil
}

// SerializeForHash serializes the PublicKey to w with the special packet
// header format needed for hashing.
func (pk *PublicKey) SerializeForHash(w io.Writer) error {
	if err := pk.SerializeSignaturePrefix(w); err != nil {
		return err
	}
	return pk.serializeWithoutHeaders(w)
}

// SerializeSignaturePrefix writes the prefix for this public key to the given Writer.
// The prefix is used when calculating a signature over this public key. See
// RFC 9580, section 5.2.4.
func (pk *PublicKey) SerializeSignaturePrefix(w io.Writer) error {
	pLength := pk.bodyLength()
	if pk.Version == 6 {
		// When a v6 signature is made over a key, the hash data starts
		// with the salt, then octet 0x9B, followed by a four-octet length
		// of the key, and then the body of the key packet.
		_, err := w.Write([]byte{
			0x9b,
			byte(pLength >> 24),
			byte(pLength >> 16),
			byte(pLength >> 8),
			byte(pLength),
		})
		return err
	}
	_, err := w.Write([]byte{0x99, byte(pLength >> 8), byte(pLength)})
	return err
}

// Serialize writes the key as a complete packet.
func (pk *PublicKey) Serialize(w io.Writer) (err error) {
	packetType := packetTypePublicKey
	if pk.IsSubkey {
		packetType = packetTypePublicSubkey
	}
	err = serializeHeader(w, packetType, int(pk.bodyLength()))
	if err != nil {
		return
	}
	return pk.serializeWithoutHeaders(w)
}

// bodyLength is the length of the key packet body.
func (pk *PublicKey) bodyLength() uint32 {
	length := uint32(6) + pk.algorithmSpecificByteCount()
	switch pk.Version {
	case 2, 3:
		length += 2 // validity period
	case 6:
		length += 4 // key material count
	}
	return length
}

func (pk *PublicKey) algorithmSpecificByteCount() uint32 {
	if pk.opaque != nil {
		return uint32(len(pk.opaque))
	}
	length := uint32(0)
	switch pk.PubKeyAlgo {
	case PubKeyAlgoRSA, PubKeyAlgoRSAEncryptOnly, PubKeyAlgoRSASignOnly:
		length += uint32(pk.n.EncodedLength())
		length += uint32(pk.e.EncodedLength())
	case PubKeyAlgoDSA:
		length += uint32(pk.p.EncodedLength())
		length += uint32(pk.q.EncodedLength())
		length += uint32(pk.g.EncodedLength())
		length += uint32(pk.y.EncodedLength())
	case PubKeyAlgoElGamal:
		length += uint32(pk.p.EncodedLength())
		length += uint32(pk.g.EncodedLength())
		length += uint32(pk.y.EncodedLength())
	case PubKeyAlgoECDSA, PubKeyAlgoEdDSA:
		length += uint32(pk.oid.EncodedLength())
		length += uint32(pk.p.EncodedLength())
	case PubKeyAlgoECDH:
		length += uint32(pk.oid.EncodedLength())
		length += uint32(pk.p.EncodedLength())
		length += uint32(pk.kdf.EncodedLength())
	case PubKeyAlgoX25519, PubKeyAlgoX448, PubKeyAlgoEd25519, PubKeyAlgoEd448:
		length += uint32(pk.native.EncodedLength())
	default:
		panic("unknown public key algorithm")
	}
	return length
}

// serializeWithoutHeaders marshals the PublicKey to w in the form of an
// OpenPGP public key packet, not including the packet header.
func (pk *PublicKey) serializeWithoutHeaders(w io.Writer) (err error) {
	t := uint32(pk.CreationTime.Unix())
	header := []byte{byte(pk.Version), byte(t >> 24), byte(t >> 16), byte(t >> 8), byte(t)}
	switch pk.Version {
	case 2, 3:
		header = append(header, byte(pk.ValidDays>>8), byte(pk.ValidDays), byte(pk.PubKeyAlgo))
	case 6:
		n := pk.algorithmSpecificByteCount()
		header = append(header, byte(pk.PubKeyAlgo), byte(n>>24), byte(n>>16), byte(n>>8), byte(n))
	default:
		header = append(header, byte(pk.PubKeyAlgo))
	}
	if _, err = w.Write(header); err != nil {
		return
	}

	if pk.opaque != nil {
		_, err = w.Write(pk.opaque)
		return
	}

	var fields []encoding.Field
	switch pk.PubKeyAlgo {
	case PubKeyAlgoRSA, PubKeyAlgoRSAEncryptOnly, PubKeyAlgoRSASignOnly:
		fields = []encoding.Field{pk.n, pk.e}
	case PubKeyAlgoDSA:
		fields = []encoding.Field{pk.p, pk.q, pk.g, pk.y}
	case PubKeyAlgoElGamal:
		fields = []encoding.Field{pk.p, pk.g, pk.y}
	case PubKeyAlgoECDSA, PubKeyAlgoEdDSA:
		fields = []encoding.Field{pk.oid, pk.p}
	case PubKeyAlgoECDH:
		fields = []encoding.Field{pk.oid, pk.p, pk.kdf}
	case PubKeyAlgoX25519, PubKeyAlgoX448, PubKeyAlgoEd25519, PubKeyAlgoEd448:
		fields = []encoding.Field{pk.native}
	default:
		return errors.UnsupportedError("bad public-key algorithm")
	}
	for _, f := range fields {
		if _, err = w.Write(f.EncodedBytes()); err != nil {
			return
		}
	}
	return
}

// CanSign returns true iff this public key can generate signatures
func (pk *PublicKey) CanSign() bool {
	return pk.unsupported == nil && pk.PubKeyAlgo.CanSign()
}

// Unsupported returns the reason the key cannot be used, or nil.
func (pk *PublicKey) Unsupported() error {
	return pk.unsupported
}

// VerifySignature returns nil iff sig is a valid signature, made by this
// public key, of the data hashed into signed. signed is mutated by this call.
func (pk *PublicKey) VerifySignature(signed hash.Hash, sig *Signature) (err error) {
	if err = pk.checkSignatureAlgorithm(sig); err != nil {
		return err
	}
	signed.Write(sig.HashSuffix)
	return pk.VerifyDigest(signed.Sum(nil), sig)
}

func (pk *PublicKey) checkSignatureAlgorithm(sig *Signature) error {
	if pk.unsupported != nil {
		return pk.unsupported
	}
	if !pk.PubKeyAlgo.CanSign() {
		return errors.Newf(errors.AlgorithmMismatch, "%s keys cannot generate signatures", pk.PubKeyAlgo)
	}
	if !pk.PubKeyAlgo.compatible(sig.PubKeyAlgo) {
		return errors.Newf(errors.AlgorithmMismatch, "%s key cannot verify a %s signature", pk.PubKeyAlgo, sig.PubKeyAlgo)
	}
	if (pk.Version == 6) != (sig.Version == 6) {
		return errors.Newf(errors.AlgorithmMismatch, "v%d key cannot verify a v%d signature", pk.Version, sig.Version)
	}
	return nil
}

// VerifyDigest checks sig against a digest that already includes the
// signature's hash suffix.
func (pk *PublicKey) VerifyDigest(hashBytes []byte, sig *Signature) (err error) {
	if err = pk.checkSignatureAlgorithm(sig); err != nil {
		return err
	}
	if len(hashBytes) < 2 || hashBytes[0] != sig.HashTag[0] || hashBytes[1] != sig.HashTag[1] {
		return errors.SignatureError("hash tag doesn't match")
	}

	switch pk.PubKeyAlgo {
	case PubKeyAlgoRSA, PubKeyAlgoRSASignOnly:
		rsaPublicKey := pk.PublicKey.(*rsa.PublicKey)
		sigBytes, ok := padToKeySize(rsaPublicKey, sig.RSASignature.Bytes())
		if !ok {
			return errors.SignatureError("RSA signature larger than modulus")
		}
		if err = rsa.VerifyPKCS1v15(rsaPublicKey, sig.Hash, hashBytes, sigBytes); err != nil {
			return errors.SignatureError("RSA verification failure")
		}
		return nil
	case PubKeyAlgoDSA:
		dsaPublicKey := pk.PublicKey.(*dsa.PublicKey)
		// Need to truncate hashBytes to match FIPS 186-3 section 4.6.
		subgroupSize := (dsaPublicKey.Q.BitLen() + 7) / 8
		if len(hashBytes) > subgroupSize {
			hashBytes = hashBytes[:subgroupSize]
		}
		if !dsa.Verify(dsaPublicKey, hashBytes, new(big.Int).SetBytes(sig.DSASigR.Bytes()), new(big.Int).SetBytes(sig.DSASigS.Bytes())) {
			return errors.SignatureError("DSA verification failure")
		}
		return nil
	case PubKeyAlgoECDSA:
		ecdsaPublicKey := pk.PublicKey.(*ecdsa.PublicKey)
		if !ecdsa.Verify(ecdsaPublicKey, hashBytes, new(big.Int).SetBytes(sig.ECDSASigR.Bytes()), new(big.Int).SetBytes(sig.ECDSASigS.Bytes())) {
			return errors.SignatureError("ECDSA verification failure")
		}
		return nil
	case PubKeyAlgoEdDSA:
		eddsaPublicKey := pk.PublicKey.(*eddsa.PublicKey)
		if !eddsa.Verify(eddsaPublicKey, hashBytes, sig.EdDSASigR.Bytes(), sig.EdDSASigS.Bytes()) {
			return errors.SignatureError("EdDSA verification failure")
		}
		return nil
	case PubKeyAlgoEd25519:
		ed25519PublicKey := pk.PublicKey.(*ed25519.PublicKey)
		if !ed25519.Verify(ed25519PublicKey, hashBytes, sig.EdSig) {
			return errors.SignatureError("Ed25519 verification failure")
		}
		return nil
	case PubKeyAlgoEd448:
		ed448PublicKey := pk.PublicKey.(*ed448.PublicKey)
		if !ed448.Verify(ed448PublicKey, hashBytes, sig.EdSig) {
			return errors.SignatureError("Ed448 verification failure")
		}
		return nil
	default:
		return errors.UnsupportedError("public key algorithm " + strconv.Itoa(int(pk.PubKeyAlgo)))
	}
}

// padToKeySize left-pads a MPI with zeroes to match the length of the
// specified RSA public.
func padToKeySize(pub *rsa.PublicKey, b []byte) ([]byte, bool) {
	k := (pub.N.BitLen() + 7) / 8
	if len(b) > k {
		return nil, false
	}
	if len(b) == k {
		return b, true
	}
	bb := make([]byte, k)
	copy(bb[len(bb)-len(b):], b)
	return bb, true
}

// keySignatureHash writes to h the data signed by pk to assert a
// relationship with signed.
func keySignatureHash(pk, signed *PublicKey, h hash.Hash) error {
	// RFC 9580, section 5.2.4
	if err := pk.SerializeForHash(h); err != nil {
		return err
	}
	return signed.SerializeForHash(h)
}

// VerifyKeySignature returns nil iff sig is a valid subkey binding
// signature, made by this public key, of signed. A binding of a subkey
// that can sign must carry a valid embedded primary key binding signature
// made by the subkey.
func (pk *PublicKey) VerifyKeySignature(signed *PublicKey, sig *Signature) error {
	preparedHash, err := sig.PrepareVerify()
	if err != nil {
		return err
	}
	if err = keySignatureHash(pk, signed, preparedHash); err != nil {
		return err
	}
	if err = pk.VerifySignature(preparedHash, sig); err != nil {
		return err
	}

	if sig.FlagsValid && sig.FlagSign && signed.CanSign() {
		// Signing subkeys must be cross-signed. See
		// https://www.gnupg.org/faq/subkey-cross-certify.html.
		if sig.EmbeddedSignature == nil {
			return errors.New(errors.KeyInvalid, "signing subkey is missing cross-signature")
		}
		if err = signed.VerifyPrimaryKeyBinding(pk, sig.EmbeddedSignature); err != nil {
			return errors.Wrapf(errors.KeyInvalid, err, "cross-signature")
		}
	}
	return nil
}

// VerifyPrimaryKeyBinding returns nil iff sig is a valid primary key binding
// signature (the back-signature), made by this subkey, over primary.
func (pk *PublicKey) VerifyPrimaryKeyBinding(primary *PublicKey, sig *Signature) error {
	if sig.SigType != SigTypePrimaryKeyBinding {
		return errors.MalformedSignatureError("cross-signature has type " + strconv.Itoa(int(sig.SigType)))
	}
	preparedHash, err := sig.PrepareVerify()
	if err != nil {
		return err
	}
	// This is calculated over the same data as the binding signature.
	if err = keySignatureHash(primary, pk, preparedHash); err != nil {
		return err
	}
	return pk.VerifySignature(preparedHash, sig)
}

// VerifyRevocationSignature returns nil iff sig is a valid key revocation
// or direct key signature, made by this public key.
func (pk *PublicKey) VerifyRevocationSignature(sig *Signature) (err error) {
	return pk.VerifyDirectKeySignature(sig)
}

// VerifySubkeyRevocationSignature returns nil iff sig is a valid subkey
// revocation signature, made by this public key, revoking signed.
func (pk *PublicKey) VerifySubkeyRevocationSignature(sig *Signature, signed *PublicKey) (err error) {
	preparedHash, err := sig.PrepareVerify()
	if err != nil {
		return err
	}
	if err = keySignatureHash(pk, signed, preparedHash); err != nil {
		return err
	}
	return pk.VerifySignature(preparedHash, sig)
}

// userIdSignatureHash writes to h the data signed by a certification of the
// given user ID. v3 certifications hash the ID without a header.
func userIdSignatureHash(id string, pk *PublicKey, sigVersion int, h hash.Hash) error {
	// RFC 9580, section 5.2.4
	if err := pk.SerializeForHash(h); err != nil {
		return err
	}
	if sigVersion > 3 {
		var buf [5]byte
		buf[0] = 0xb4
		binary.BigEndian.PutUint32(buf[1:], uint32(len(id)))
		h.Write(buf[:])
	}
	h.Write([]byte(id))
	return nil
}

// VerifyUserIdSignature returns nil iff sig is a valid signature, made by this
// public key, that id is the identity of pub.
func (pk *PublicKey) VerifyUserIdSignature(id string, pub *PublicKey, sig *Signature) (err error) {
	h, err := sig.PrepareVerify()
	if err != nil {
		return err
	}
	if err := userIdSignatureHash(id, pub, sig.Version, h); err != nil {
		return err
	}
	return pk.VerifySignature(h, sig)
}

// VerifyUserAttributeSignature returns nil iff sig is a valid signature,
// made by this public key, that uat is an attribute of pub.
func (pk *PublicKey) VerifyUserAttributeSignature(uat *UserAttribute, pub *PublicKey, sig *Signature) (err error) {
	h, err := sig.PrepareVerify()
	if err != nil {
		return err
	}
	if err = pub.SerializeForHash(h); err != nil {
		return err
	}
	if sig.Version > 3 {
		var buf [5]byte
		buf[0] = 0xd1
		binary.BigEndian.PutUint32(buf[1:], uint32(len(uat.Contents)))
		h.Write(buf[:])
	}
	h.Write(uat.Contents)
	return pk.VerifySignature(h, sig)
}

// VerifyDirectKeySignature returns nil iff sig is a valid signature, made by
// this public key, over this public key alone.
func (pk *PublicKey) VerifyDirectKeySignature(sig *Signature) (err error) {
	h, err := sig.PrepareVerify()
	if err != nil {
		return err
	}
	if err = pk.SerializeForHash(h); err != nil {
		return err
	}
	return pk.VerifySignature(h, sig)
}

// KeyIdString returns the public key's fingerprint in capital hex
// (e.g. "6C7EE1B8621CC013").
func (pk *PublicKey) KeyIdString() string {
	return fmt.Sprintf("%016X", pk.KeyId)
}

// KeyIdShortString returns the short form of public key's fingerprint
// in capital hex, as shown by gpg --list-keys (e.g. "621CC013").
func (pk *PublicKey) KeyIdShortString() string {
	return fmt.Sprintf("%08X", uint32(pk.KeyId))
}

// FingerprintString returns the fingerprint in capital hex.
func (pk *PublicKey) FingerprintString() string {
	return fmt.Sprintf("%X", pk.Fingerprint)
}

// BitLength returns the bit length for the given public key.
func (pk *PublicKey) BitLength() (bitLength uint16, err error) {
	switch pk.PubKeyAlgo {
	case PubKeyAlgoRSA, PubKeyAlgoRSAEncryptOnly, PubKeyAlgoRSASignOnly:
		bitLength = pk.n.BitLength()
	case PubKeyAlgoDSA, PubKeyAlgoElGamal:
		bitLength = pk.p.BitLength()
	case PubKeyAlgoECDSA, PubKeyAlgoECDH, PubKeyAlgoEdDSA:
		bitLength = pk.p.BitLength()
	case PubKeyAlgoX25519, PubKeyAlgoEd25519:
		bitLength = 255
	case PubKeyAlgoX448:
		bitLength = 448
	case PubKeyAlgoEd448:
		bitLength = 456
	default:
		err = errors.UnsupportedError("bad public-key algorithm")
	}
	return
}

// Curve returns the name of the key's elliptic curve, or CurveUnknown.
func (pk *PublicKey) Curve() Curve {
	switch pk.PubKeyAlgo {
	case PubKeyAlgoEd25519, PubKeyAlgoX25519:
		return CurveEd25519
	case PubKeyAlgoEd448, PubKeyAlgoX448:
		return CurveEd448
	}
	if pk.oid == nil {
		return CurveUnknown
	}
	info := ecc.FindByOid(pk.oid)
	if info == nil {
		return CurveUnknown
	}
	return curveNames[info.Name]
}

var curveNames = map[string]Curve{
	"NIST curve P-256": CurveNistP256,
	"NIST curve P-384": CurveNistP384,
	"NIST curve P-521": CurveNistP521,
	"Curve25519":       Curve25519,
	"Curve448":         Curve448,
	"Ed25519":          CurveEd25519,
	"Ed448":            CurveEd448,
}

// MinHashSize returns the smallest digest, in bytes, the key may sign, or
// zero if the algorithm sets no floor.
func (pk *PublicKey) MinHashSize() int {
	switch pub := pk.PublicKey.(type) {
	case *eddsa.PublicKey:
		return pub.Curve.MinHashSize()
	case *ed25519.PublicKey:
		return 32
	case *ed448.PublicKey:
		return 64
	}
	return 0
}

// KeyExpired returns whether sig is a self-signature of a key that has
// expired or is created in the future. A key is valid up to, but not
// including, its expiration time.
func (pk *PublicKey) KeyExpired(sig *Signature, currentTime time.Time) bool {
	if pk.CreationTime.Unix() > currentTime.Unix() {
		return true
	}
	expiry, ok := pk.Expiry(sig)
	return ok && !currentTime.Before(expiry)
}

// Expiry returns the expiration time of the key according to sig. v3 keys
// carry their own validity period and sig may be nil.
func (pk *PublicKey) Expiry(sig *Signature) (time.Time, bool) {
	if pk.Version <= 3 {
		if pk.ValidDays == 0 {
			return time.Time{}, false
		}
		return pk.CreationTime.Add(time.Duration(pk.ValidDays) * 24 * time.Hour), true
	}
	if sig == nil || sig.KeyLifetimeSecs == nil || *sig.KeyLifetimeSecs == 0 {
		return time.Time{}, false
	}
	return pk.CreationTime.Add(time.Duration(*sig.KeyLifetimeSecs) * time.Second), true
}
