// Package pgptest builds OpenPGP certificates and detached signatures for
// tests. It signs with the standard library and circl, and serializes
// packets by hand, so the verifier under test never checks its own output.
package pgptest

import (
	"bytes"
	"crypto"
	"crypto/dsa"
	goecdsa "crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/rsa"
	"encoding/binary"
	"hash"
	"io"
	"math/big"
	"testing"
	"time"

	circled25519 "github.com/cloudflare/circl/sign/ed25519"
	circled448 "github.com/cloudflare/circl/sign/ed448"
	"github.com/pgpverify/go-pgpverify/openpgp/ecdsa"
	"github.com/pgpverify/go-pgpverify/openpgp/ed25519"
	"github.com/pgpverify/go-pgpverify/openpgp/ed448"
	"github.com/pgpverify/go-pgpverify/openpgp/eddsa"
	"github.com/pgpverify/go-pgpverify/openpgp/internal/algorithm"
	"github.com/pgpverify/go-pgpverify/openpgp/internal/ecc"
	"github.com/pgpverify/go-pgpverify/openpgp/internal/encoding"
	"github.com/pgpverify/go-pgpverify/openpgp/packet"
	"github.com/stretchr/testify/require"
)

// Key flags, RFC 9580 section 5.2.3.29.
const (
	FlagCertify = 0x01
	FlagSign    = 0x02
	FlagEncrypt = 0x0c
)

// Key is a public key together with the private half that signs for it.
type Key struct {
	Public *packet.PublicKey
	// sign returns the encoded signature value for digest.
	sign func(digest []byte, h crypto.Hash) ([]byte, error)
}

// NewRSA returns a v4 RSA key of the given size.
func NewRSA(t testing.TB, bits int, created time.Time) *Key {
	priv, err := rsa.GenerateKey(rand.Reader, bits)
	require.NoError(t, err)
	return &Key{
		Public: packet.NewRSAPublicKey(created, &priv.PublicKey),
		sign:   rsaSigner(priv),
	}
}

// NewV3RSA returns a v3 RSA key of the given size.
func NewV3RSA(t testing.TB, bits int, created time.Time) *Key {
	priv, err := rsa.GenerateKey(rand.Reader, bits)
	require.NoError(t, err)
	return &Key{
		Public: packet.NewV3RSAPublicKey(created, &priv.PublicKey),
		sign:   rsaSigner(priv),
	}
}

func rsaSigner(priv *rsa.PrivateKey) func([]byte, crypto.Hash) ([]byte, error) {
	return func(digest []byte, h crypto.Hash) ([]byte, error) {
		s, err := rsa.SignPKCS1v15(rand.Reader, priv, h, digest)
		if err != nil {
			return nil, err
		}
		return encoding.NewMPI(s).EncodedBytes(), nil
	}
}

// NewDSA returns a v4 DSA key with a 1024 bit prime and 160 bit subgroup.
func NewDSA(t testing.TB, created time.Time) *Key {
	priv := new(dsa.PrivateKey)
	require.NoError(t, dsa.GenerateParameters(&priv.Parameters, rand.Reader, dsa.L1024N160))
	require.NoError(t, dsa.GenerateKey(priv, rand.Reader))
	return &Key{
		Public: packet.NewDSAPublicKey(created, &priv.PublicKey),
		sign: func(digest []byte, _ crypto.Hash) ([]byte, error) {
			if n := (priv.Q.BitLen() + 7) / 8; len(digest) > n {
				digest = digest[:n]
			}
			r, s, err := dsa.Sign(rand.Reader, priv, digest)
			if err != nil {
				return nil, err
			}
			return mpis(r, s), nil
		},
	}
}

// NewECDSA returns a v4 ECDSA key on a NIST curve.
func NewECDSA(t testing.TB, c elliptic.Curve, created time.Time) *Key {
	priv, err := goecdsa.GenerateKey(c, rand.Reader)
	require.NoError(t, err)
	pub := &ecdsa.PublicKey{X: priv.X, Y: priv.Y, Curve: ecc.NewGenericCurve(c, ecc.NISTCurve)}
	return &Key{
		Public: packet.NewECDSAPublicKey(created, pub),
		sign: func(digest []byte, _ crypto.Hash) ([]byte, error) {
			r, s, err := goecdsa.Sign(rand.Reader, priv, digest)
			if err != nil {
				return nil, err
			}
			return mpis(r, s), nil
		},
	}
}

// NewEdDSA returns a v4 key of the legacy EdDSA algorithm over Ed25519.
func NewEdDSA(t testing.TB, created time.Time) *Key {
	pub, priv, err := circled25519.GenerateKey(rand.Reader)
	require.NoError(t, err)
	return &Key{
		Public: packet.NewEdDSAPublicKey(created, &eddsa.PublicKey{X: pub, Curve: ecc.NewEd25519()}),
		sign: func(digest []byte, _ crypto.Hash) ([]byte, error) {
			sig := circled25519.Sign(priv, digest)
			return append(encoding.NewMPI(sig[:32]).EncodedBytes(), encoding.NewMPI(sig[32:]).EncodedBytes()...), nil
		},
	}
}

// NewEdDSA448 returns a v4 key of the legacy EdDSA algorithm over Ed448.
// The signature is carried in R as a prefixed native value and S is empty.
func NewEdDSA448(t testing.TB, created time.Time) *Key {
	pub, priv, err := circled448.GenerateKey(rand.Reader)
	require.NoError(t, err)
	return &Key{
		Public: packet.NewEdDSAPublicKey(created, &eddsa.PublicKey{X: pub, Curve: ecc.NewEd448()}),
		sign: func(digest []byte, _ crypto.Hash) ([]byte, error) {
			sig := circled448.Sign(priv, digest, "")
			r := encoding.NewMPI(append([]byte{0x40}, sig...))
			return append(r.EncodedBytes(), encoding.NewMPI(nil).EncodedBytes()...), nil
		},
	}
}

// NewEd25519 returns a native Ed25519 key of the given version.
func NewEd25519(t testing.TB, version int, created time.Time) *Key {
	pub, priv, err := circled25519.GenerateKey(rand.Reader)
	require.NoError(t, err)
	return &Key{
		Public: packet.NewEd25519PublicKey(created, version, &ed25519.PublicKey{Point: pub}),
		sign: func(digest []byte, _ crypto.Hash) ([]byte, error) {
			return circled25519.Sign(priv, digest), nil
		},
	}
}

// NewEd448 returns a native Ed448 key of the given version.
func NewEd448(t testing.TB, version int, created time.Time) *Key {
	pub, priv, err := circled448.GenerateKey(rand.Reader)
	require.NoError(t, err)
	return &Key{
		Public: packet.NewEd448PublicKey(created, version, &ed448.PublicKey{Point: pub}),
		sign: func(digest []byte, _ crypto.Hash) ([]byte, error) {
			return circled448.Sign(priv, digest, ""), nil
		},
	}
}

// AsSubkey marks the key as a subkey and returns it.
func (k *Key) AsSubkey() *Key {
	k.Public.IsSubkey = true
	return k
}

// Packet returns the serialized public key packet.
func (k *Key) Packet(t testing.TB) []byte {
	var buf bytes.Buffer
	require.NoError(t, k.Public.Serialize(&buf))
	return buf.Bytes()
}

func mpis(vals ...*big.Int) []byte {
	var out []byte
	for _, v := range vals {
		out = append(out, new(encoding.MPI).SetBig(v).EncodedBytes()...)
	}
	return out
}

// Sig describes a signature to be made by a Key. The zero value is a v4
// binary signature over SHA-256 that names its issuer.
type Sig struct {
	// Version is 3, 4 or 6. Zero follows the key: 6 for v6 keys, 3 for
	// v3 keys, 4 otherwise.
	Version int
	Type    packet.SignatureType
	Hash    crypto.Hash
	Created time.Time
	// Lifetime is the signature expiration in seconds.
	Lifetime uint32
	// KeyLifetime is the key expiration in seconds.
	KeyLifetime uint32
	// Flags is the key flags octet. Zero omits the subpacket.
	Flags byte
	// Reason adds a reason for revocation subpacket.
	Reason *packet.ReasonForRevocation
	// Embedded is the body of an embedded signature.
	Embedded []byte
	// Hashed and Unhashed are extra, already encoded, subpackets.
	Hashed, Unhashed []byte
	// NoIssuer omits the issuer and issuer fingerprint subpackets.
	NoIssuer bool
	// IssuerKeyIdOnly names the issuer by key ID alone.
	IssuerKeyIdOnly bool
	// Salt overrides the random v6 salt.
	Salt []byte
}

// Subpacket encodes a signature subpacket.
func Subpacket(typ byte, critical bool, data ...byte) []byte {
	if critical {
		typ |= 0x80
	}
	l := len(data) + 1
	var out []byte
	switch {
	case l < 192:
		out = []byte{byte(l)}
	case l < 8384:
		l -= 192
		out = []byte{byte(l>>8) + 192, byte(l)}
	default:
		out = []byte{255, byte(l >> 24), byte(l >> 16), byte(l >> 8), byte(l)}
	}
	out = append(out, typ)
	return append(out, data...)
}

// Notation encodes a notation data subpacket holding a UTF-8 value.
func Notation(name, value string, critical bool) []byte {
	data := []byte{0x80, 0, 0, 0}
	data = binary.BigEndian.AppendUint16(data, uint16(len(name)))
	data = binary.BigEndian.AppendUint16(data, uint16(len(value)))
	data = append(data, name...)
	data = append(data, value...)
	return Subpacket(20, critical, data...)
}

func be32(v uint32) []byte {
	return binary.BigEndian.AppendUint32(nil, v)
}

func (k *Key) version(s *Sig) int {
	switch {
	case s.Version != 0:
		return s.Version
	case k.Public.Version == 6:
		return 6
	case k.Public.Version <= 3:
		return 3
	}
	return 4
}

func (k *Key) hashedSubpackets(s *Sig, version int) []byte {
	var out []byte
	out = append(out, Subpacket(2, false, be32(uint32(s.Created.Unix()))...)...)
	if s.Lifetime != 0 {
		out = append(out, Subpacket(3, false, be32(s.Lifetime)...)...)
	}
	if s.KeyLifetime != 0 {
		out = append(out, Subpacket(9, false, be32(s.KeyLifetime)...)...)
	}
	if s.Flags != 0 {
		out = append(out, Subpacket(27, false, s.Flags)...)
	}
	if s.Reason != nil {
		out = append(out, Subpacket(29, false, byte(*s.Reason))...)
	}
	if !s.NoIssuer && !s.IssuerKeyIdOnly {
		out = append(out, Subpacket(33, false, append([]byte{byte(k.Public.Version)}, k.Public.Fingerprint...)...)...)
	}
	if s.Embedded != nil {
		out = append(out, Subpacket(32, false, s.Embedded...)...)
	}
	return append(out, s.Hashed...)
}

func (k *Key) unhashedSubpackets(s *Sig, version int) []byte {
	var out []byte
	if !s.NoIssuer && version == 4 {
		out = append(out, Subpacket(16, false, binary.BigEndian.AppendUint64(nil, k.Public.KeyId)...)...)
	}
	return append(out, s.Unhashed...)
}

// sign hashes the signed material with write and returns the signature
// packet body.
func (k *Key) signBody(t testing.TB, s Sig, write func(h hash.Hash)) []byte {
	if s.Hash == 0 {
		s.Hash = crypto.SHA256
	}
	if s.Created.IsZero() {
		s.Created = k.Public.CreationTime
	}
	hashId, ok := algorithm.HashToHashId(s.Hash)
	require.True(t, ok, "hash %v", s.Hash)
	version := k.version(&s)

	h := s.Hash.New()
	var body []byte
	if version == 3 {
		write(h)
		suffix := append([]byte{byte(s.Type)}, be32(uint32(s.Created.Unix()))...)
		h.Write(suffix)
		digest := h.Sum(nil)
		value, err := k.sign(digest, s.Hash)
		require.NoError(t, err)

		body = []byte{3, 5}
		body = append(body, suffix...)
		body = binary.BigEndian.AppendUint64(body, k.Public.KeyId)
		body = append(body, byte(k.Public.PubKeyAlgo), hashId, digest[0], digest[1])
		return append(body, value...)
	}

	hashed := k.hashedSubpackets(&s, version)
	unhashed := k.unhashedSubpackets(&s, version)
	prefix := []byte{byte(version), byte(s.Type), byte(k.Public.PubKeyAlgo), hashId}
	if version == 6 {
		prefix = append(prefix, be32(uint32(len(hashed)))...)
	} else {
		prefix = binary.BigEndian.AppendUint16(prefix, uint16(len(hashed)))
	}

	salt := s.Salt
	if version == 6 && salt == nil {
		n, ok := algorithm.SaltLengthForHash(s.Hash)
		require.True(t, ok, "no salt length for %v", s.Hash)
		salt = make([]byte, n)
		_, err := io.ReadFull(rand.Reader, salt)
		require.NoError(t, err)
	}
	if version == 6 {
		h.Write(salt)
	}
	write(h)
	h.Write(prefix)
	h.Write(hashed)
	h.Write([]byte{byte(version), 0xff})
	h.Write(be32(uint32(len(prefix) + len(hashed))))
	digest := h.Sum(nil)
	value, err := k.sign(digest, s.Hash)
	require.NoError(t, err)

	body = append(body, prefix...)
	body = append(body, hashed...)
	if version == 6 {
		body = append(body, be32(uint32(len(unhashed)))...)
	} else {
		body = binary.BigEndian.AppendUint16(body, uint16(len(unhashed)))
	}
	body = append(body, unhashed...)
	body = append(body, digest[0], digest[1])
	if version == 6 {
		body = append(body, byte(len(salt)))
		body = append(body, salt...)
	}
	return append(body, value...)
}

// SignData returns the body of a detached signature over data. Text
// signatures hash data with canonical line endings.
func (k *Key) SignData(t testing.TB, s Sig, data []byte) []byte {
	return k.signBody(t, s, func(h hash.Hash) {
		if s.Type == packet.SigTypeText {
			_, _ = encoding.NewCanonicalTextWriter(h).Write(data)
			return
		}
		h.Write(data)
	})
}

// SignUserId returns the body of a certification of id on k's key. The
// type defaults to a positive certification.
func (k *Key) SignUserId(t testing.TB, s Sig, id string) []byte {
	if s.Type == 0 {
		s.Type = packet.SigTypePositiveCert
	}
	return k.signBody(t, s, func(h hash.Hash) {
		require.NoError(t, k.Public.SerializeForHash(h))
		if k.version(&s) > 3 {
			h.Write([]byte{0xb4})
			h.Write(be32(uint32(len(id))))
		}
		h.Write([]byte(id))
	})
}

// SignKeys returns the body of a signature over the pair (primary, subkey):
// a subkey binding, a subkey revocation, or a primary key binding.
func (k *Key) SignKeys(t testing.TB, s Sig, primary, subkey *packet.PublicKey) []byte {
	return k.signBody(t, s, func(h hash.Hash) {
		require.NoError(t, primary.SerializeForHash(h))
		require.NoError(t, subkey.SerializeForHash(h))
	})
}

// SignDirect returns the body of a signature over k's key alone: a direct
// key signature or a key revocation.
func (k *Key) SignDirect(t testing.TB, s Sig) []byte {
	return k.signBody(t, s, func(h hash.Hash) {
		require.NoError(t, k.Public.SerializeForHash(h))
	})
}

// Frame wraps body in a new format packet header.
func Frame(t testing.TB, tag uint8, body []byte) []byte {
	var buf bytes.Buffer
	require.NoError(t, packet.SerializeHeader(&buf, tag, len(body)))
	buf.Write(body)
	return buf.Bytes()
}

// SignaturePacket frames a signature body.
func SignaturePacket(t testing.TB, body []byte) []byte {
	return Frame(t, packet.TagSignature, body)
}

// Cert assembles the packets of a certificate.
type Cert struct {
	t   testing.TB
	buf bytes.Buffer
}

// NewCert starts a certificate with the primary key packet of k.
func NewCert(t testing.TB, k *Key) *Cert {
	c := &Cert{t: t}
	c.buf.Write(k.Packet(t))
	return c
}

// Add appends raw packets.
func (c *Cert) Add(packets ...[]byte) *Cert {
	for _, p := range packets {
		c.buf.Write(p)
	}
	return c
}

// UserId appends a user ID packet.
func (c *Cert) UserId(id string) *Cert {
	c.buf.Write(Frame(c.t, packet.TagUserId, []byte(id)))
	return c
}

// Signature appends a signature packet.
func (c *Cert) Signature(body []byte) *Cert {
	c.buf.Write(SignaturePacket(c.t, body))
	return c
}

// Subkey appends the subkey packet of sub.
func (c *Cert) Subkey(sub *Key) *Cert {
	c.buf.Write(sub.AsSubkey().Packet(c.t))
	return c
}

// Bytes returns the serialized certificate.
func (c *Cert) Bytes() []byte {
	return append([]byte(nil), c.buf.Bytes()...)
}

// SelfSigned returns a certificate of k with one user ID, certified as
// able to certify and sign. v6 keys also get a direct key signature.
func SelfSigned(t testing.TB, k *Key, id string) []byte {
	c := NewCert(t, k)
	if k.Public.Version == 6 {
		c.Signature(k.SignDirect(t, Sig{Type: packet.SigTypeDirectSignature, Flags: FlagCertify | FlagSign}))
	}
	return c.UserId(id).
		Signature(k.SignUserId(t, Sig{Flags: FlagCertify | FlagSign}, id)).
		Bytes()
}

// SigningSubkey returns the subkey packet of sub and a binding by primary
// that carries a back-signature.
func SigningSubkey(t testing.TB, primary, sub *Key) []byte {
	sub.AsSubkey()
	back := sub.SignKeys(t, Sig{Type: packet.SigTypePrimaryKeyBinding}, primary.Public, sub.Public)
	binding := primary.SignKeys(t, Sig{
		Type:     packet.SigTypeSubkeyBinding,
		Flags:    FlagSign,
		Embedded: back,
	}, primary.Public, sub.Public)
	return append(sub.Packet(t), SignaturePacket(t, binding)...)
}
