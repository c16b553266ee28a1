// Package ed25519 implements verification of the native ed25519
// signature algorithm for OpenPGP, as defined in RFC 9580.
package ed25519

import (
	"io"

	ed25519lib "github.com/cloudflare/circl/sign/ed25519"
	"github.com/pgpverify/go-pgpverify/openpgp/internal/ecc"
)

const PointSize = 32
const SignatureSize = 64

type PublicKey struct {
	Point []byte
}

// NewPublicKey returns the key for a native point. It returns nil if point
// is not on the curve.
func NewPublicKey(point []byte) *PublicKey {
	if !ecc.NewEd25519().ValidatePoint(point) {
		return nil
	}
	return &PublicKey{Point: append([]byte(nil), point...)}
}

// Verify verifies a ed25519 signature
func Verify(pub *PublicKey, message []byte, signature []byte) bool {
	if len(pub.Point) != PointSize {
		return false
	}
	return ed25519lib.Verify(pub.Point, message, signature)
}

// ENCODING/DECODING signature:

// ReadSignature reads a native signature from reader.
func ReadSignature(reader io.Reader) ([]byte, error) {
	signature := make([]byte, SignatureSize)
	if _, err := io.ReadFull(reader, signature); err != nil {
		if err == io.EOF {
			err = io.ErrUnexpectedEOF
		}
		return nil, err
	}
	return signature, nil
}
