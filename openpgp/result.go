package openpgp

import (
	"fmt"
	"strings"

	"github.com/pgpverify/go-pgpverify/openpgp/errors"
	"github.com/pgpverify/go-pgpverify/openpgp/packet"
)

// Result describes a signature that verified.
type Result struct {
	// Signature is the signature packet that verified.
	Signature *packet.Signature
	// Signer is the entity that made the signature.
	Signer *Entity
	// Key is the primary key or subkey that made the signature.
	Key *packet.PublicKey
}

// Fingerprint returns the fingerprint of the signing key.
func (r *Result) Fingerprint() []byte {
	return r.Key.Fingerprint
}

// Rejection records why one candidate key did not validate a signature.
// Fingerprint is nil when no key matched the issuer.
type Rejection struct {
	Fingerprint []byte
	Err         error
}

// Kind returns the kind of the rejection.
func (r Rejection) Kind() errors.Kind {
	return errors.KindOf(r.Err)
}

// VerificationError is returned when no key validates any of the
// signatures. Rejections holds one entry per candidate key, or a single
// NoMatchingKey entry when the keyring has no key for the issuer.
type VerificationError struct {
	Rejections []Rejection
}

func (e *VerificationError) Error() string {
	var b strings.Builder
	b.WriteString("openpgp: no valid signature")
	for i, r := range e.Rejections {
		if i == 0 {
			b.WriteString(": ")
		} else {
			b.WriteString("; ")
		}
		if r.Fingerprint != nil {
			fmt.Fprintf(&b, "%X: ", r.Fingerprint)
		}
		b.WriteString(r.Err.Error())
	}
	return b.String()
}

// Unwrap makes the error match errors.ErrNoValidSignature.
func (e *VerificationError) Unwrap() error {
	return errors.ErrNoValidSignature
}

// HasReason reports whether any candidate was rejected with kind.
func (e *VerificationError) HasReason(kind errors.Kind) bool {
	for _, r := range e.Rejections {
		if errors.HasKind(r.Err, kind) {
			return true
		}
	}
	return false
}

// algorithmOnly reports whether every candidate was rejected because of an
// unsupported or refused algorithm.
func (e *VerificationError) algorithmOnly() bool {
	for _, r := range e.Rejections {
		if !r.Kind().IsAlgorithm() {
			return false
		}
	}
	return len(e.Rejections) > 0
}
