// Copyright 2010 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package errors contains common error types for the OpenPGP verification packages.
package errors

import (
	"fmt"

	"github.com/cockroachdb/errors"
)

// Kind classifies a verification failure.
type Kind int

const (
	// Unknown is returned by KindOf for errors that were not produced by
	// this package.
	Unknown Kind = iota
	// MalformedPacket is a framing error: bad header, bad length or
	// truncated body.
	MalformedPacket
	// MalformedKeyring means the keyring is not a valid certificate sequence.
	MalformedKeyring
	// MalformedKey means a public key packet could not be decoded.
	MalformedKey
	// MalformedSignature means a signature packet could not be decoded.
	MalformedSignature
	// UnsupportedAlgorithm means a public-key algorithm, curve or hash
	// is not implemented.
	UnsupportedAlgorithm
	// UnsupportedCriticalSubpacket means a signature carries a critical
	// subpacket or notation that is not understood.
	UnsupportedCriticalSubpacket
	// AlgorithmMismatch means the key cannot have issued the signature.
	AlgorithmMismatch
	// KeyExpired means the key is not valid at the verification time.
	KeyExpired
	// SignatureExpired means the signature is not valid at the verification time.
	SignatureExpired
	// WeakAlgorithmRejected means the policy refuses an algorithm or key size.
	WeakAlgorithmRejected
	// NoMatchingKey means no key in the keyring matches the issuer.
	NoMatchingKey
	// CryptographicMismatch means the signature does not verify.
	CryptographicMismatch
	// KeyRevoked means the key carries a valid revocation.
	KeyRevoked
	// KeyInvalid means the key is not bound or not flagged for signing.
	KeyInvalid
	// NoValidSignature aggregates per-key rejections.
	NoValidSignature
)

var kindNames = map[Kind]string{
	Unknown:                      "unknown",
	MalformedPacket:              "malformed packet",
	MalformedKeyring:             "malformed keyring",
	MalformedKey:                 "malformed key",
	MalformedSignature:           "malformed signature",
	UnsupportedAlgorithm:         "unsupported algorithm",
	UnsupportedCriticalSubpacket: "unsupported critical subpacket",
	AlgorithmMismatch:            "algorithm mismatch",
	KeyExpired:                   "key expired",
	SignatureExpired:             "signature expired",
	WeakAlgorithmRejected:        "weak algorithm rejected",
	NoMatchingKey:                "no matching key",
	CryptographicMismatch:        "cryptographic mismatch",
	KeyRevoked:                   "key revoked",
	KeyInvalid:                   "key invalid",
	NoValidSignature:             "no valid signature",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// IsAlgorithm reports whether the kind is a refusal of an algorithm, as
// opposed to a structural, temporal or cryptographic failure.
func (k Kind) IsAlgorithm() bool {
	return k == UnsupportedAlgorithm || k == WeakAlgorithmRejected
}

// Error is the concrete error returned by the verification packages.
type Error struct {
	Kind Kind
	Msg  string
	// Err is the underlying cause, if any.
	Err error
}

func (e *Error) Error() string {
	s := "openpgp: " + e.Kind.String()
	if e.Msg != "" {
		s += ": " + e.Msg
	}
	if e.Err != nil {
		s += ": " + e.Err.Error()
	}
	return s
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches any *Error of the same Kind, so that the sentinels below
// can be used with errors.Is.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

// New returns an error of the given kind.
func New(kind Kind, msg string) error {
	return &Error{Kind: kind, Msg: msg}
}

// Newf returns an error of the given kind with a formatted message.
func Newf(kind Kind, format string, args ...interface{}) error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

// Wrap re-classifies err as kind, keeping it as the cause.
// Wrap returns nil if err is nil.
func Wrap(kind Kind, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Kind: kind, Err: err}
}

// Wrapf is Wrap with a message.
func Wrapf(kind Kind, err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...), Err: err}
}

// KindOf returns the kind of the outermost *Error in err's chain.
func KindOf(err error) Kind {
	if err == nil {
		return Unknown
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return Unknown
}

// HasKind reports whether any error in err's chain has the given kind.
func HasKind(err error, kind Kind) bool {
	return errors.Is(err, &Error{Kind: kind})
}

// As finds the first error in err's chain that matches target.
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}

// Is reports whether any error in err's chain matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

func MalformedPacketError(msg string) error {
	return errors.WithStack(&Error{Kind: MalformedPacket, Msg: msg})
}

func MalformedKeyError(msg string) error {
	return errors.WithStack(&Error{Kind: MalformedKey, Msg: msg})
}

func MalformedSignatureError(msg string) error {
	return errors.WithStack(&Error{Kind: MalformedSignature, Msg: msg})
}

func UnsupportedError(msg string) error {
	return &Error{Kind: UnsupportedAlgorithm, Msg: msg}
}

// UnknownPacketTypeError is returned when a packet tag is not allowed
// in its context.
func UnknownPacketTypeError(tag uint8) error {
	return errors.WithStack(&Error{Kind: MalformedPacket, Msg: fmt.Sprintf("unknown packet type: %d", tag)})
}

// UnsupportedCriticalSubpacketError is returned for a critical
// subpacket of an unknown type.
func UnsupportedCriticalSubpacketError(subpacketType uint8) error {
	return &Error{Kind: UnsupportedCriticalSubpacket, Msg: fmt.Sprintf("unknown critical signature subpacket type %d", subpacketType)}
}

// UnknownIssuerError is returned for a key id or fingerprint with no
// matching key.
type UnknownIssuerError struct {
	Issuer string
}

func (u UnknownIssuerError) Error() string {
	return "openpgp: no matching key: signature made by unknown entity " + u.Issuer
}

func (u UnknownIssuerError) Unwrap() error {
	return ErrNoMatchingKey
}

var (
	ErrMalformedKeyring      = &Error{Kind: MalformedKeyring}
	ErrMalformedSignature    = &Error{Kind: MalformedSignature}
	ErrUnsupportedAlgorithm  = &Error{Kind: UnsupportedAlgorithm}
	ErrAlgorithmMismatch     = &Error{Kind: AlgorithmMismatch}
	ErrKeyExpired            = &Error{Kind: KeyExpired}
	ErrSignatureExpired      = &Error{Kind: SignatureExpired}
	ErrWeakAlgorithm         = &Error{Kind: WeakAlgorithmRejected}
	ErrNoMatchingKey         = &Error{Kind: NoMatchingKey}
	ErrCryptographicMismatch = &Error{Kind: CryptographicMismatch}
	ErrKeyRevoked            = &Error{Kind: KeyRevoked}
	ErrKeyInvalid            = &Error{Kind: KeyInvalid}
	ErrNoValidSignature      = &Error{Kind: NoValidSignature}
)

// SignatureError indicates that a syntactically valid signature failed
// to validate.
func SignatureError(msg string) error {
	return &Error{Kind: CryptographicMismatch, Msg: msg}
}
