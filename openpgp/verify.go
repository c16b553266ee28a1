// Copyright 2011 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package openpgp verifies detached OpenPGP signatures against a keyring
// of public key certificates, as specified in RFC 9580.
package openpgp

import (
	"fmt"
	"io"
	"time"

	"github.com/effective-security/xlog"
	"github.com/pgpverify/go-pgpverify/openpgp/errors"
	"github.com/pgpverify/go-pgpverify/openpgp/packet"
)

var logger = xlog.NewPackageLogger("github.com/pgpverify/go-pgpverify", "openpgp")

// ReadSignatures reads the detached signature packets in buf. Marker and
// padding packets are skipped; any other packet, and any signature that is not a
// binary or text document signature, is a MalformedSignature error.
// Unsupported algorithms and unknown critical subpackets keep their own
// error kind.
func ReadSignatures(buf []byte) ([]*packet.Signature, error) {
	if len(buf) == 0 {
		return nil, errors.New(errors.MalformedSignature, "empty signature")
	}
	var sigs []*packet.Signature
	packets := packet.NewOpaqueReader(buf)
	for {
		op, err := packets.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrap(errors.MalformedSignature, err)
		}
		switch op.Tag {
		case packet.TagMarker, packet.TagPadding:
			continue
		case packet.TagSignature:
		default:
			return nil, errors.Newf(errors.MalformedSignature, "unexpected packet type %d in signature", op.Tag)
		}

		sig, err := packet.ParseSignature(op.Contents)
		if err != nil {
			switch errors.KindOf(err) {
			case errors.MalformedSignature, errors.UnsupportedAlgorithm, errors.UnsupportedCriticalSubpacket:
				return nil, err
			default:
				return nil, errors.Wrap(errors.MalformedSignature, err)
			}
		}
		if sig.SigType != packet.SigTypeBinary && sig.SigType != packet.SigTypeText {
			return nil, errors.Newf(errors.MalformedSignature, "signature type 0x%02x is not a document signature", uint8(sig.SigType))
		}
		sigs = append(sigs, sig)
	}
	if len(sigs) == 0 {
		return nil, errors.New(errors.MalformedSignature, "no signature packet")
	}
	return sigs, nil
}

// VerifyDetached parses keyring and signature and checks the signature
// over data. The keyring is parsed first, so that an error in both inputs
// is reported as MalformedKeyring. It returns a *VerificationError if no
// key validates any signature.
func VerifyDetached(keyring, signature, data []byte, config *packet.Config) (*Result, error) {
	el, err := ReadKeyRing(keyring)
	if err != nil {
		return nil, err
	}
	sigs, err := ReadSignatures(signature)
	if err != nil {
		return nil, err
	}
	return VerifyDetachedWithKeyRing(el, sigs, data, config)
}

// VerifyDetachedWithKeyRing checks sigs over data with the keys of el. The
// signatures are tried in order, each against its candidate keys in
// keyring order, and the first that verifies is returned. el may be reused
// across calls and goroutines.
func VerifyDetachedWithKeyRing(el EntityList, sigs []*packet.Signature, data []byte, config *packet.Config) (*Result, error) {
	now := config.Now()
	var rejections []Rejection
	for _, sig := range sigs {
		candidates := el.KeysByIssuer(sig)
		if len(candidates) == 0 {
			rejections = append(rejections, Rejection{Err: errors.UnknownIssuerError{Issuer: issuerString(sig)}})
			continue
		}

		v := &signatureCheck{sig: sig, data: data, now: now, config: config}
		for _, key := range candidates {
			err := v.check(key)
			if err == nil {
				logger.KV(xlog.DEBUG, "status", "valid", "fingerprint", key.PublicKey.FingerprintString())
				return &Result{Signature: sig, Signer: key.Entity, Key: key.PublicKey}, nil
			}
			logger.KV(xlog.DEBUG, "reason", "reject", "fingerprint", key.PublicKey.FingerprintString(), "err", err.Error())
			rejections = append(rejections, Rejection{Fingerprint: key.PublicKey.Fingerprint, Err: err})
		}
	}
	return nil, &VerificationError{Rejections: rejections}
}

func issuerString(sig *packet.Signature) string {
	fingerprint, keyId := sig.Issuer()
	switch {
	case fingerprint != nil:
		return fmt.Sprintf("%X", fingerprint)
	case keyId != nil:
		return fmt.Sprintf("%016X", *keyId)
	}
	return "(none)"
}

// signatureCheck checks one signature against candidate keys. The digest
// of the data is computed once, for the first candidate that gets that far.
type signatureCheck struct {
	sig    *packet.Signature
	data   []byte
	now    time.Time
	config *packet.Config

	digest    []byte
	digestErr error
	digested  bool
}

// check runs the policy checks for key in order and then verifies the
// signature. The first failing check is returned.
func (v *signatureCheck) check(key Key) error {
	pk := key.PublicKey
	sig := v.sig
	if err := pk.Unsupported(); err != nil {
		return err
	}

	primarySig, err := key.Entity.PrimarySelfSignature(v.now, v.config)
	selfSig := primarySig
	if err == nil && !key.IsPrimary() {
		selfSig, err = key.Subkey.LatestValidBindingSignature(v.now, v.config)
	}
	// A key without a valid self-signature is reported once the time and
	// revocation checks have passed.
	keyErr := err

	// Key validity period.
	primary := key.Entity.PrimaryKey
	if primary.KeyExpired(primarySig, v.now) {
		return errors.Newf(errors.KeyExpired, "primary key %s expired or not yet valid", primary.KeyIdString())
	}
	if !key.IsPrimary() && pk.KeyExpired(selfSig, v.now) {
		return errors.Newf(errors.KeyExpired, "subkey %s expired or not yet valid", pk.KeyIdString())
	}

	// Signature validity period.
	if sig.SigExpired(v.now) {
		return errors.ErrSignatureExpired
	}
	if pk.CreationTime.Unix() > sig.CreationTime.Unix() {
		return errors.New(errors.SignatureExpired, "signature is older than the key")
	}

	// Revocation.
	if key.Entity.Revoked(v.now) {
		return errors.Newf(errors.KeyRevoked, "primary key %s is revoked", primary.KeyIdString())
	}
	if !key.IsPrimary() && key.Subkey.Revoked(v.now) {
		return errors.Newf(errors.KeyRevoked, "subkey %s is revoked", pk.KeyIdString())
	}

	// Signing capability.
	if keyErr != nil {
		return keyErr
	}
	if selfSig != nil && selfSig.FlagsValid && !selfSig.FlagSign {
		return errors.Newf(errors.KeyInvalid, "key %s is not flagged for signing", pk.KeyIdString())
	}
	if !key.IsPrimary() && selfSig.EmbeddedSignature == nil {
		return errors.Newf(errors.KeyInvalid, "signing subkey %s is missing cross-signature", pk.KeyIdString())
	}

	// Version pairing.
	if (pk.Version == 6) != (sig.Version == 6) {
		return errors.Newf(errors.AlgorithmMismatch, "v%d key cannot verify a v%d signature", pk.Version, sig.Version)
	}

	// Hash and key policy.
	if v.config.RejectMessageHashAlgorithm(sig.Hash) {
		return errors.Newf(errors.WeakAlgorithmRejected, "insecure message hash algorithm: %s", sig.Hash)
	}
	if minSize := pk.MinHashSize(); minSize > 0 && sig.Hash.Size() < minSize {
		return errors.Newf(errors.WeakAlgorithmRejected, "hash %s is too short for the key", sig.Hash)
	}
	if err := checkKeyRequirements(pk, v.config); err != nil {
		return err
	}

	// Critical notations, on the signature and on the self-signatures that
	// make the key valid.
	sigsToCheck := []*packet.Signature{sig, primarySig}
	if !key.IsPrimary() {
		sigsToCheck = append(sigsToCheck, selfSig, selfSig.EmbeddedSignature)
	}
	for _, s := range sigsToCheck {
		if s == nil {
			continue
		}
		for _, notation := range s.Notations {
			if notation.IsCritical && !v.config.KnownNotation(notation.Name) {
				return errors.Newf(errors.UnsupportedCriticalSubpacket, "unknown critical notation: %s", notation.Name)
			}
		}
	}

	digest, err := v.digestData()
	if err != nil {
		return err
	}
	return pk.VerifyDigest(digest, sig)
}

func (v *signatureCheck) digestData() ([]byte, error) {
	if !v.digested {
		v.digest, v.digestErr = digestData(v.sig, v.data)
		v.digested = true
	}
	return v.digest, v.digestErr
}
