// Copyright 2011 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package packet

import (
	"bytes"
	"crypto"
	"encoding/binary"
	"hash"
	"io"
	"strconv"
	"time"

	"github.com/effective-security/xlog"
	"github.com/pgpverify/go-pgpverify/openpgp/ed25519"
	"github.com/pgpverify/go-pgpverify/openpgp/ed448"
	"github.com/pgpverify/go-pgpverify/openpgp/errors"
	"github.com/pgpverify/go-pgpverify/openpgp/internal/algorithm"
	"github.com/pgpverify/go-pgpverify/openpgp/internal/encoding"
)

const (
	// First octet of key flags.
	// See RFC 9580, section 5.2.3.29 for details.
	KeyFlagCertify = 1 << iota
	KeyFlagSign
	KeyFlagEncryptCommunications
	KeyFlagEncryptStorage
	KeyFlagSplitKey
	KeyFlagAuthenticate
	_
	KeyFlagGroupKey
)

const (
	// First octet of keyserver preference flags.
	// See RFC 9580, section 5.2.3.25 for details.
	_ = 1 << iota
	_
	_
	_
	_
	_
	_
	KeyserverPrefNoModify
)

// Signature represents a signature. See RFC 9580, section 5.2.
type Signature struct {
	Version    int
	SigType    SignatureType
	PubKeyAlgo PublicKeyAlgorithm
	Hash       crypto.Hash
	// salt contains a random salt value for v6 signatures
	// See RFC 9580 Section 5.2.4.
	salt []byte

	// HashSuffix is extra data that is hashed in after the signed data.
	HashSuffix []byte
	// HashTag contains the first two bytes of the hash for fast rejection
	// of bad signed data.
	HashTag [2]byte

	CreationTime time.Time

	RSASignature         encoding.Field
	DSASigR, DSASigS     encoding.Field
	ECDSASigR, ECDSASigS encoding.Field
	EdDSASigR, EdDSASigS encoding.Field
	EdSig                []byte

	// The following are optional so are nil when not included in the
	// signature.

	SigLifetimeSecs, KeyLifetimeSecs                        *uint32
	PreferredSymmetric, PreferredHash, PreferredCompression []uint8
	PreferredCipherSuites                                   [][2]uint8
	IssuerKeyId                                             *uint64
	IssuerFingerprint                                       []byte
	SignerUserId                                            *string
	IsPrimaryId                                             *bool
	Notations                                               []*Notation
	IntendedRecipients                                      []*Recipient
	RevocationKeys                                          []*RevocationKey
	Target                                                  *SignatureTarget

	// Revocable is false if the signature carries a revocable subpacket
	// set to zero. See RFC 9580, section 5.2.3.20.
	Revocable *bool

	// TrustLevel and TrustAmount can be set by the signer to assert that
	// the key is not only valid but also trustworthy at the specified
	// level.
	// See RFC 9580, section 5.2.3.21 for details.
	TrustLevel  TrustLevel
	TrustAmount TrustAmount

	// TrustRegularExpression can be used in conjunction with trust Signature
	// packets to limit the scope of the trust that is extended.
	// See RFC 9580, section 5.2.3.22 for details.
	TrustRegularExpression *string

	// KeyserverPrefsValid is set if any keyserver preferences were given. See RFC 9580, section
	// 5.2.3.25 for details.
	KeyserverPrefsValid   bool
	KeyserverPrefNoModify bool

	// PreferredKeyserver can be set to a URI where the latest version of the
	// key that this signature is made over can be found. See RFC 9580, section
	// 5.2.3.26 for details.
	PreferredKeyserver string

	// PolicyURI can be set to the URI of a document that describes the
	// policy under which the signature was issued. See RFC 9580, section
	// 5.2.3.28 for details.
	PolicyURI string

	// FlagsValid is set if any flags were given. See RFC 9580, section
	// 5.2.3.29 for details.
	FlagsValid                                                                                                         bool
	FlagCertify, FlagSign, FlagEncryptCommunications, FlagEncryptStorage, FlagSplitKey, FlagAuthenticate, FlagGroupKey bool

	// RevocationReason is set if this signature has been revoked.
	// See RFC 9580, section 5.2.3.31 for details.
	RevocationReason     *ReasonForRevocation
	RevocationReasonText string

	// In a self-signature, these flags are set there is a features subpacket
	// indicating that the issuer implementation supports these features
	SEIPDv1, SEIPDv2 bool

	// EmbeddedSignature, if non-nil, is a signature of the parent key, by
	// this key. This prevents an attacker from claiming another's signing
	// subkey as their own.
	EmbeddedSignature *Signature

	// embedded is set on a signature parsed from an embedded signature
	// subpacket, which may not nest another.
	embedded bool

	// unusable is the parse error of a keyring signature that was kept
	// only to record that it exists.
	unusable error
}

// Recipient is an intended recipient fingerprint. See RFC 9580, section
// 5.2.3.36.
type Recipient struct {
	KeyVersion  int
	Fingerprint []byte
}

// RevocationKey designates a key allowed to revoke the signer's key. See
// RFC 9580, section 5.2.3.23.
type RevocationKey struct {
	Class       byte
	Algo        PublicKeyAlgorithm
	Fingerprint []byte
}

// SignatureTarget identifies the signature a third-party confirmation or
// revocation refers to. See RFC 9580, section 5.2.3.33.
type SignatureTarget struct {
	PubKeyAlgo PublicKeyAlgorithm
	Hash       byte
	Digest     []byte
}

// ParseSignature decodes the body of a signature packet. The returned
// signature does not reference body.
func ParseSignature(body []byte) (*Signature, error) {
	sig := new(Signature)
	if err := sig.parse(body); err != nil {
		return nil, err
	}
	return sig, nil
}

// Unusable returns the error that prevented a keyring signature from being
// parsed in full. Such a signature never verifies, and only the fields read
// before the error are set.
func (sig *Signature) Unusable() error {
	return sig.unusable
}

// Salt returns the signature salt for v6 signatures.
func (sig *Signature) Salt() []byte {
	if sig == nil {
		return nil
	}
	return sig.salt
}

func (sig *Signature) parse(body []byte) error {
	err := sig.parseBody(bytes.NewReader(body))
	switch errors.KindOf(err) {
	case errors.Unknown:
		// io.ErrUnexpectedEOF and MPI encoding errors.
		return errors.Wrap(errors.MalformedSignature, err)
	default:
		return err
	}
}

func (sig *Signature) parseBody(r *bytes.Reader) (err error) {
	// RFC 9580, section 5.2.3
	var buf [7]byte
	_, err = readFull(r, buf[:1])
	if err != nil {
		return
	}
	sig.Version = int(buf[0])
	switch sig.Version {
	case 2, 3:
		err = sig.parseV3(r)
	case 4, 6:
		err = sig.parseV4(r)
	default:
		return errors.MalformedSignatureError("signature packet version " + strconv.Itoa(int(buf[0])))
	}
	if err != nil {
		return
	}

	if err = sig.parseSignatureValue(r); err != nil {
		return
	}
	if r.Len() != 0 {
		return errors.MalformedSignatureError("trailing data after signature")
	}
	return nil
}

// parseV3 parses the fixed header of a version 3 signature. See RFC 4880,
// section 5.2.2.
func (sig *Signature) parseV3(r io.Reader) (err error) {
	var buf [18]byte
	if _, err = readFull(r, buf[:]); err != nil {
		return
	}
	if buf[0] != 5 {
		return errors.MalformedSignatureError("v3 hashed material length " + strconv.Itoa(int(buf[0])))
	}
	sig.SigType = SignatureType(buf[1])
	t := binary.BigEndian.Uint32(buf[2:6])
	sig.CreationTime = time.Unix(int64(t), 0)
	sig.IssuerKeyId = new(uint64)
	*sig.IssuerKeyId = binary.BigEndian.Uint64(buf[6:14])
	sig.PubKeyAlgo = PublicKeyAlgorithm(buf[14])
	if err = sig.checkPubKeyAlgo(); err != nil {
		return
	}
	var ok bool
	if sig.Hash, ok = algorithm.HashIdToHash(buf[15]); !ok {
		return errors.UnsupportedError("hash function " + strconv.Itoa(int(buf[15])))
	}
	copy(sig.HashTag[:], buf[16:18])

	// The sigtype and creation time are hashed after the data.
	sig.HashSuffix = append([]byte(nil), buf[1:6]...)
	return nil
}

func (sig *Signature) checkPubKeyAlgo() error {
	switch sig.PubKeyAlgo {
	case PubKeyAlgoRSA, PubKeyAlgoRSASignOnly, PubKeyAlgoDSA, PubKeyAlgoECDSA, PubKeyAlgoEdDSA, PubKeyAlgoEd25519, PubKeyAlgoEd448:
		if sig.Version <= 3 && sig.PubKeyAlgo != PubKeyAlgoRSA && sig.PubKeyAlgo != PubKeyAlgoRSASignOnly && sig.PubKeyAlgo != PubKeyAlgoDSA {
			return errors.UnsupportedError("v3 signature with public key algorithm " + strconv.Itoa(int(sig.PubKeyAlgo)))
		}
		return nil
	}
	return errors.UnsupportedError("public key algorithm " + strconv.Itoa(int(sig.PubKeyAlgo)))
}

func (sig *Signature) parseV4(r io.Reader) (err error) {
	var buf [7]byte
	if sig.Version == 6 {
		_, err = readFull(r, buf[:7])
	} else {
		_, err = readFull(r, buf[:5])
	}
	if err != nil {
		return
	}
	sig.SigType = SignatureType(buf[0])
	sig.PubKeyAlgo = PublicKeyAlgorithm(buf[1])
	if err = sig.checkPubKeyAlgo(); err != nil {
		return
	}

	var ok bool
	if sig.Hash, ok = algorithm.HashIdToHash(buf[2]); !ok {
		return errors.UnsupportedError("hash function " + strconv.Itoa(int(buf[2])))
	}

	var hashedSubpacketsLength int
	prefix := []byte{byte(sig.Version), buf[0], buf[1], buf[2]}
	if sig.Version == 6 {
		// For a v6 signature, a four-octet length is used.
		hashedSubpacketsLength =
			int(buf[3])<<24 |
				int(buf[4])<<16 |
				int(buf[5])<<8 |
				int(buf[6])
		prefix = append(prefix, buf[3:7]...)
	} else {
		hashedSubpacketsLength = int(buf[3])<<8 | int(buf[4])
		prefix = append(prefix, buf[3:5]...)
	}
	hashedSubpackets, err := readBounded(r, hashedSubpacketsLength)
	if err != nil {
		return
	}
	sig.buildHashSuffix(prefix, hashedSubpackets)

	if err = parseSignatureSubpackets(sig, hashedSubpackets, true); err != nil {
		return
	}
	if sig.CreationTime.IsZero() {
		return errors.MalformedSignatureError("no creation time in signature")
	}

	var unhashedSubpacketsLength int
	if sig.Version == 6 {
		if _, err = readFull(r, buf[:4]); err != nil {
			return
		}
		unhashedSubpacketsLength = int(binary.BigEndian.Uint32(buf[:4]))
	} else {
		if _, err = readFull(r, buf[:2]); err != nil {
			return
		}
		unhashedSubpacketsLength = int(binary.BigEndian.Uint16(buf[:2]))
	}
	unhashedSubpackets, err := readBounded(r, unhashedSubpacketsLength)
	if err != nil {
		return
	}
	if err = parseSignatureSubpackets(sig, unhashedSubpackets, false); err != nil {
		return
	}

	if _, err = readFull(r, sig.HashTag[:2]); err != nil {
		return
	}

	if sig.Version == 6 {
		// Only for v6 signatures, a variable-length field containing the salt
		if _, err = readFull(r, buf[:1]); err != nil {
			return
		}
		saltLength := int(buf[0])
		expectedSaltLength, ok := algorithm.SaltLengthForHash(sig.Hash)
		if !ok {
			return errors.UnsupportedError("hash function " + sig.Hash.String() + " in v6 signature")
		}
		if saltLength != expectedSaltLength {
			return errors.MalformedSignatureError("unexpected salt size for the given hash algorithm")
		}
		salt := make([]byte, expectedSaltLength)
		if _, err = readFull(r, salt); err != nil {
			return
		}
		sig.salt = salt
	}
	return nil
}

// readBounded reads n bytes, checking n against what is left in r before
// allocating.
func readBounded(r io.Reader, n int) ([]byte, error) {
	if br, ok := r.(*bytes.Reader); ok && n > br.Len() {
		return nil, io.ErrUnexpectedEOF
	}
	b := make([]byte, n)
	if _, err := readFull(r, b); err != nil {
		return nil, err
	}
	return b, nil
}

func (sig *Signature) parseSignatureValue(r io.Reader) (err error) {
	switch sig.PubKeyAlgo {
	case PubKeyAlgoRSA, PubKeyAlgoRSASignOnly:
		sig.RSASignature = new(encoding.MPI)
		_, err = sig.RSASignature.ReadFrom(r)
	case PubKeyAlgoDSA:
		sig.DSASigR = new(encoding.MPI)
		if _, err = sig.DSASigR.ReadFrom(r); err != nil {
			return
		}

		sig.DSASigS = new(encoding.MPI)
		_, err = sig.DSASigS.ReadFrom(r)
	case PubKeyAlgoECDSA:
		sig.ECDSASigR = new(encoding.MPI)
		if _, err = sig.ECDSASigR.ReadFrom(r); err != nil {
			return
		}

		sig.ECDSASigS = new(encoding.MPI)
		_, err = sig.ECDSASigS.ReadFrom(r)
	case PubKeyAlgoEdDSA:
		sig.EdDSASigR = new(encoding.MPI)
		if _, err = sig.EdDSASigR.ReadFrom(r); err != nil {
			return
		}

		sig.EdDSASigS = new(encoding.MPI)
		_, err = sig.EdDSASigS.ReadFrom(r)
	case PubKeyAlgoEd25519:
		sig.EdSig, err = ed25519.ReadSignature(r)
	case PubKeyAlgoEd448:
		sig.EdSig, err = ed448.ReadSignature(r)
	default:
		panic("unreachable")
	}
	return
}

// parseSignatureSubpackets parses subpackets of the main signature packet. See
// RFC 9580, section 5.2.3.1.
func parseSignatureSubpackets(sig *Signature, subpackets []byte, isHashed bool) (err error) {
	for len(subpackets) > 0 {
		subpackets, err = parseSignatureSubpacket(sig, subpackets, isHashed)
		if err != nil {
			return
		}
	}
	return
}

type signatureSubpacketType uint8

const (
	creationTimeSubpacket        signatureSubpacketType = 2
	signatureExpirationSubpacket signatureSubpacketType = 3
	exportableCertSubpacket      signatureSubpacketType = 4
	trustSubpacket               signatureSubpacketType = 5
	regularExpressionSubpacket   signatureSubpacketType = 6
	revocableSubpacket           signatureSubpacketType = 7
	keyExpirationSubpacket       signatureSubpacketType = 9
	prefSymmetricAlgosSubpacket  signatureSubpacketType = 11
	revocationKeySubpacket       signatureSubpacketType = 12
	issuerSubpacket              signatureSubpacketType = 16
	notationDataSubpacket        signatureSubpacketType = 20
	prefHashAlgosSubpacket       signatureSubpacketType = 21
	prefCompressionSubpacket     signatureSubpacketType = 22
	keyserverPrefsSubpacket      signatureSubpacketType = 23
	prefKeyserverSubpacket       signatureSubpacketType = 24
	primaryUserIdSubpacket       signatureSubpacketType = 25
	policyUriSubpacket           signatureSubpacketType = 26
	keyFlagsSubpacket            signatureSubpacketType = 27
	signerUserIdSubpacket        signatureSubpacketType = 28
	reasonForRevocationSubpacket signatureSubpacketType = 29
	featuresSubpacket            signatureSubpacketType = 30
	signatureTargetSubpacket     signatureSubpacketType = 31
	embeddedSignatureSubpacket   signatureSubpacketType = 32
	issuerFingerprintSubpacket   signatureSubpacketType = 33
	intendedRecipientSubpacket   signatureSubpacketType = 35
	prefCipherSuitesSubpacket    signatureSubpacketType = 39
)

// parseSignatureSubpacket parses a single subpacket. len(subpacket) is >= 1.
func parseSignatureSubpacket(sig *Signature, subpacket []byte, isHashed bool) (rest []byte, err error) {
	// RFC 9580, section 5.2.3.7
	var (
		length     uint32
		packetType signatureSubpacketType
		isCritical bool
	)
	if len(subpacket) == 0 {
		err = errors.MalformedSignatureError("zero length signature subpacket")
		return
	}
	switch {
	case subpacket[0] < 192:
		length = uint32(subpacket[0])
		subpacket = subpacket[1:]
	case subpacket[0] < 255:
		if len(subpacket) < 2 {
			goto Truncated
		}
		length = uint32(subpacket[0]-192)<<8 + uint32(subpacket[1]) + 192
		subpacket = subpacket[2:]
	default:
		if len(subpacket) < 5 {
			goto Truncated
		}
		length = uint32(subpacket[1])<<24 |
			uint32(subpacket[2])<<16 |
			uint32(subpacket[3])<<8 |
			uint32(subpacket[4])
		subpacket = subpacket[5:]
	}
	if length > uint32(len(subpacket)) {
		goto Truncated
	}
	rest = subpacket[length:]
	subpacket = subpacket[:length]
	if len(subpacket) == 0 {
		err = errors.MalformedSignatureError("zero length signature subpacket")
		return
	}
	packetType = signatureSubpacketType(subpacket[0] & 0x7f)
	isCritical = subpacket[0]&0x80 == 0x80
	subpacket = subpacket[1:]
	if !isHashed &&
		packetType != issuerSubpacket &&
		packetType != issuerFingerprintSubpacket &&
		packetType != embeddedSignatureSubpacket {
		return
	}
	switch packetType {
	case creationTimeSubpacket:
		if len(subpacket) != 4 {
			err = errors.MalformedSignatureError("signature creation time not four bytes")
			return
		}
		t := binary.BigEndian.Uint32(subpacket)
		sig.CreationTime = time.Unix(int64(t), 0)
	case signatureExpirationSubpacket:
		// Signature expiration time, section 5.2.3.18
		if len(subpacket) != 4 {
			err = errors.MalformedSignatureError("expiration subpacket with bad length")
			return
		}
		sig.SigLifetimeSecs = new(uint32)
		*sig.SigLifetimeSecs = binary.BigEndian.Uint32(subpacket)
	case exportableCertSubpacket:
		if len(subpacket) != 1 {
			err = errors.MalformedSignatureError("exportable subpacket with bad length")
			return
		}
		if subpacket[0] == 0 {
			err = errors.UnsupportedError("signature with non-exportable certification")
			return
		}
	case trustSubpacket:
		if len(subpacket) != 2 {
			err = errors.MalformedSignatureError("trust subpacket with bad length")
			return
		}
		// Trust level and amount, section 5.2.3.21
		sig.TrustLevel = TrustLevel(subpacket[0])
		sig.TrustAmount = TrustAmount(subpacket[1])
	case regularExpressionSubpacket:
		if len(subpacket) == 0 {
			err = errors.MalformedSignatureError("regexp subpacket with bad length")
			return
		}
		// Trust regular expression, section 5.2.3.22
		// RFC specifies the string should be null-terminated; remove a null byte from the end
		if subpacket[len(subpacket)-1] != 0x00 {
			err = errors.MalformedSignatureError("expected regular expression to be null-terminated")
			return
		}
		trustRegularExpression := string(subpacket[:len(subpacket)-1])
		sig.TrustRegularExpression = &trustRegularExpression
	case revocableSubpacket:
		if len(subpacket) != 1 {
			err = errors.MalformedSignatureError("revocable subpacket with bad length")
			return
		}
		sig.Revocable = new(bool)
		*sig.Revocable = subpacket[0] != 0
	case keyExpirationSubpacket:
		// Key expiration time, section 5.2.3.13
		if len(subpacket) != 4 {
			err = errors.MalformedSignatureError("key expiration subpacket with bad length")
			return
		}
		sig.KeyLifetimeSecs = new(uint32)
		*sig.KeyLifetimeSecs = binary.BigEndian.Uint32(subpacket)
	case prefSymmetricAlgosSubpacket:
		// Preferred symmetric algorithms, section 5.2.3.14
		sig.PreferredSymmetric = append([]byte(nil), subpacket...)
	case revocationKeySubpacket:
		// Revocation key, section 5.2.3.23
		if len(subpacket) != 22 && len(subpacket) != 34 {
			err = errors.MalformedSignatureError("revocation key subpacket with bad length")
			return
		}
		sig.RevocationKeys = append(sig.RevocationKeys, &RevocationKey{
			Class:       subpacket[0],
			Algo:        PublicKeyAlgorithm(subpacket[1]),
			Fingerprint: append([]byte(nil), subpacket[2:]...),
		})
	case issuerSubpacket:
		// Issuer, section 5.2.3.12
		if sig.Version > 4 && isHashed {
			err = errors.MalformedSignatureError("issuer subpacket found in v6 signature")
			return
		}
		if len(subpacket) != 8 {
			err = errors.MalformedSignatureError("issuer subpacket with bad length")
			return
		}
		if sig.Version <= 4 && sig.IssuerKeyId == nil {
			sig.IssuerKeyId = new(uint64)
			*sig.IssuerKeyId = binary.BigEndian.Uint64(subpacket)
		}
	case notationDataSubpacket:
		// Notation data, section 5.2.3.24
		notation, ok := parseNotation(subpacket, isCritical)
		if !ok {
			err = errors.MalformedSignatureError("notation data subpacket with bad length")
			return
		}
		sig.Notations = append(sig.Notations, notation)
	case prefHashAlgosSubpacket:
		// Preferred hash algorithms, section 5.2.3.16
		sig.PreferredHash = append([]byte(nil), subpacket...)
	case prefCompressionSubpacket:
		// Preferred compression algorithms, section 5.2.3.17
		sig.PreferredCompression = append([]byte(nil), subpacket...)
	case keyserverPrefsSubpacket:
		// Keyserver preferences, section 5.2.3.25
		sig.KeyserverPrefsValid = true
		if len(subpacket) == 0 {
			return
		}
		if subpacket[0]&KeyserverPrefNoModify != 0 {
			sig.KeyserverPrefNoModify = true
		}
	case prefKeyserverSubpacket:
		// Preferred keyserver, section 5.2.3.26
		sig.PreferredKeyserver = string(subpacket)
	case primaryUserIdSubpacket:
		// Primary User ID, section 5.2.3.27
		if len(subpacket) != 1 {
			err = errors.MalformedSignatureError("primary user id subpacket with bad length")
			return
		}
		sig.IsPrimaryId = new(bool)
		if subpacket[0] > 0 {
			*sig.IsPrimaryId = true
		}
	case keyFlagsSubpacket:
		// Key flags, section 5.2.3.29
		sig.FlagsValid = true
		if len(subpacket) == 0 {
			return
		}
		sig.FlagCertify = subpacket[0]&KeyFlagCertify != 0
		sig.FlagSign = subpacket[0]&KeyFlagSign != 0
		sig.FlagEncryptCommunications = subpacket[0]&KeyFlagEncryptCommunications != 0
		sig.FlagEncryptStorage = subpacket[0]&KeyFlagEncryptStorage != 0
		sig.FlagSplitKey = subpacket[0]&KeyFlagSplitKey != 0
		sig.FlagAuthenticate = subpacket[0]&KeyFlagAuthenticate != 0
		sig.FlagGroupKey = subpacket[0]&KeyFlagGroupKey != 0
	case signerUserIdSubpacket:
		userId := string(subpacket)
		sig.SignerUserId = &userId
	case reasonForRevocationSubpacket:
		// Reason For Revocation, section 5.2.3.31
		if len(subpacket) == 0 {
			err = errors.MalformedSignatureError("empty revocation reason subpacket")
			return
		}
		sig.RevocationReason = new(ReasonForRevocation)
		*sig.RevocationReason = NewReasonForRevocation(subpacket[0])
		sig.RevocationReasonText = string(subpacket[1:])
	case featuresSubpacket:
		// Features subpacket, section 5.2.3.32 specifies a very general
		// mechanism for OpenPGP implementations to signal support for new
		// features.
		if len(subpacket) > 0 {
			sig.SEIPDv1 = subpacket[0]&0x01 != 0
			// 0x02 and 0x04 are reserved
			sig.SEIPDv2 = subpacket[0]&0x08 != 0
		}
	case signatureTargetSubpacket:
		// Signature target, section 5.2.3.33
		if len(subpacket) < 2 {
			err = errors.MalformedSignatureError("signature target subpacket with bad length")
			return
		}
		sig.Target = &SignatureTarget{
			PubKeyAlgo: PublicKeyAlgorithm(subpacket[0]),
			Hash:       subpacket[1],
			Digest:     append([]byte(nil), subpacket[2:]...),
		}
	case embeddedSignatureSubpacket:
		// Only usage is in signatures that cross-certify
		// signing subkeys. section 5.2.3.34 describes the
		// format, with its usage described in section 11.1
		if sig.embedded {
			err = errors.MalformedSignatureError("nested embedded signature")
			return
		}
		if sig.EmbeddedSignature != nil {
			err = errors.MalformedSignatureError("cannot have multiple embedded signatures")
			return
		}
		embedded := &Signature{embedded: true}
		if err = embedded.parse(subpacket); err != nil {
			return
		}
		if sigType := embedded.SigType; sigType != SigTypePrimaryKeyBinding {
			err = errors.MalformedSignatureError("cross-signature has unexpected type " + strconv.Itoa(int(sigType)))
			return
		}
		sig.EmbeddedSignature = embedded
	case policyUriSubpacket:
		// Policy URI, section 5.2.3.28
		sig.PolicyURI = string(subpacket)
	case issuerFingerprintSubpacket:
		if len(subpacket) == 0 {
			err = errors.MalformedSignatureError("empty issuer fingerprint subpacket")
			return
		}
		v, l := subpacket[0], len(subpacket[1:])
		if v >= 5 && l != 32 || v < 5 && l != 20 {
			err = errors.MalformedSignatureError("bad fingerprint length")
			return
		}
		if sig.IssuerFingerprint != nil && !isHashed {
			// The hashed value wins.
			return
		}
		sig.IssuerFingerprint = append([]byte(nil), subpacket[1:]...)
		sig.IssuerKeyId = new(uint64)
		if v >= 5 {
			*sig.IssuerKeyId = binary.BigEndian.Uint64(subpacket[1:9])
		} else {
			*sig.IssuerKeyId = binary.BigEndian.Uint64(subpacket[13:21])
		}
	case intendedRecipientSubpacket:
		// Intended Recipient Fingerprint, section 5.2.3.36
		if len(subpacket) < 1 {
			err = errors.MalformedSignatureError("invalid intended recipient fingerprint length")
			return
		}
		version, length := subpacket[0], len(subpacket[1:])
		if version >= 5 && length != 32 || version < 5 && length != 20 {
			err = errors.MalformedSignatureError("invalid fingerprint length")
			return
		}
		sig.IntendedRecipients = append(sig.IntendedRecipients, &Recipient{int(version), append([]byte(nil), subpacket[1:]...)})
	case prefCipherSuitesSubpacket:
		// Preferred AEAD cipher suites, section 5.2.3.15
		if len(subpacket)%2 != 0 {
			err = errors.MalformedSignatureError("invalid aead cipher suite length")
			return
		}

		sig.PreferredCipherSuites = make([][2]byte, len(subpacket)/2)

		for i := 0; i < len(subpacket)/2; i++ {
			sig.PreferredCipherSuites[i] = [2]uint8{subpacket[2*i], subpacket[2*i+1]}
		}
	default:
		if isCritical {
			err = errors.UnsupportedCriticalSubpacketError(uint8(packetType))
			return
		}
		logger.KV(xlog.DEBUG, "reason", "discard_subpacket", "type", packetType)
	}
	return

Truncated:
	err = errors.MalformedSignatureError("signature subpacket truncated")
	return
}

// Issuer returns the issuer fingerprint and key ID, either of which may be
// nil.
func (sig *Signature) Issuer() (fingerprint []byte, keyId *uint64) {
	return sig.IssuerFingerprint, sig.IssuerKeyId
}

// CheckKeyIdOrFingerprint reports whether pk may have issued sig. The
// fingerprint is compared when present, otherwise the key ID.
func (sig *Signature) CheckKeyIdOrFingerprint(pk *PublicKey) bool {
	if sig.IssuerFingerprint != nil && len(sig.IssuerFingerprint) >= 20 {
		return bytes.Equal(sig.IssuerFingerprint, pk.Fingerprint)
	}
	return sig.IssuerKeyId != nil && *sig.IssuerKeyId == pk.KeyId
}

// SigExpired returns whether sig is a signature that has expired or is created
// in the future. A signature is valid up to, but not including, its
// expiration time.
func (sig *Signature) SigExpired(currentTime time.Time) bool {
	if sig.CreationTime.Unix() > currentTime.Unix() {
		return true
	}
	if sig.SigLifetimeSecs == nil || *sig.SigLifetimeSecs == 0 {
		return false
	}
	expiry := sig.CreationTime.Add(time.Duration(*sig.SigLifetimeSecs) * time.Second)
	return !currentTime.Before(expiry)
}

// IsHardRevocation reports whether a revocation signature invalidates the
// key for all time, rather than from its creation onward.
func (sig *Signature) IsHardRevocation() bool {
	return sig.RevocationReason == nil || !sig.RevocationReason.IsSoft()
}

// buildHashSuffix constructs the HashSuffix member of sig from the hashed
// fields as they appear in the packet.
func (sig *Signature) buildHashSuffix(prefix, hashedSubpackets []byte) {
	hashedFields := bytes.NewBuffer(append([]byte(nil), prefix...))
	hashedFields.Write(hashedSubpackets)

	l := uint64(len(prefix) + len(hashedSubpackets))
	// v4 and v6 case
	hashedFields.Write([]byte{byte(sig.Version), 0xff})
	hashedFields.Write([]byte{
		uint8(l >> 24), uint8(l >> 16), uint8(l >> 8), uint8(l),
	})
	sig.HashSuffix = hashedFields.Bytes()
}

// PrepareVerify must be called to create a hash object before verifying v6 signatures.
// The created hash object initially hashes the internally stored salt.
// If the signature is not v6, the method returns an empty hash object.
// See RFC 9580 Section 5.2.4.
func (sig *Signature) PrepareVerify() (hash.Hash, error) {
	if err := hashAvailable(sig.Hash); err != nil {
		return nil, err
	}
	hasher := sig.Hash.New()
	if sig.Version == 6 {
		if sig.salt == nil {
			return nil, errors.MalformedSignatureError("v6 requires a salt for the hash to be signed")
		}
		hasher.Write(sig.salt)
	}
	return hasher, nil
}
