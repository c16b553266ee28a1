// Package ed448 implements verification of the native ed448 signature
// algorithm for OpenPGP, as defined in RFC 9580.
package ed448

import (
	"io"

	ed448lib "github.com/cloudflare/circl/sign/ed448"
	"github.com/pgpverify/go-pgpverify/openpgp/internal/ecc"
)

const PointSize = 57
const SignatureSize = 114

type PublicKey struct {
	Point []byte
}

// NewPublicKey returns the key for a native point. It returns nil if point
// is not on the curve.
func NewPublicKey(point []byte) *PublicKey {
	if !ecc.NewEd448().ValidatePoint(point) {
		return nil
	}
	return &PublicKey{Point: append([]byte(nil), point...)}
}

// Verify verifies an ed448 signature
func Verify(pub *PublicKey, message []byte, signature []byte) bool {
	if len(pub.Point) != PointSize {
		return false
	}
	// Ed448 is used with the empty string as a context string.
	// See https://www.rfc-editor.org/rfc/rfc9580#section-5.2.3.3
	return ed448lib.Verify(pub.Point, message, signature, "")
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
