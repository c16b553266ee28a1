// Copyright 2011 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package openpgp

import (
	"bytes"
	"io"
	"sort"
	"sync"
	"time"

	"github.com/effective-security/xlog"
	"github.com/pgpverify/go-pgpverify/openpgp/errors"
	"github.com/pgpverify/go-pgpverify/openpgp/packet"
)

// An Entity represents the components of an OpenPGP certificate: a primary
// public key, the identities claimed by that key, and zero or more
// subkeys. An Entity is not modified after ReadKeyRing returns and may be
// shared between goroutines.
type Entity struct {
	PrimaryKey       *packet.PublicKey
	Identities       map[string]*Identity // indexed by Identity.Name
	UserAttributes   []*UserAttribute
	Revocations      []*VerifiableSignature
	DirectSignatures []*VerifiableSignature
	Subkeys          []Subkey

	// identityOrder holds Identities in the order they appear in the
	// certificate.
	identityOrder []*Identity
}

// An Identity represents an identity claimed by an Entity and zero or more
// assertions by other entities about that claim.
type Identity struct {
	Primary             *Entity
	Name                string // by convention, has the form "Full Name (comment) <email@example.com>"
	UserId              *packet.UserId
	SelfCertifications  []*VerifiableSignature
	OtherCertifications []*packet.Signature
	Revocations         []*VerifiableSignature
}

// A UserAttribute is an attribute packet, such as a photo, with its
// certifications by the primary key.
type UserAttribute struct {
	Primary            *Entity
	UserAttribute      *packet.UserAttribute
	SelfCertifications []*VerifiableSignature
	Revocations        []*VerifiableSignature
}

// A Subkey is an additional public key in an Entity. Subkeys can be used
// for signing only if they are bound by the primary key and cross-signed.
type Subkey struct {
	Primary     *Entity
	PublicKey   *packet.PublicKey
	Bindings    []*VerifiableSignature
	Revocations []*VerifiableSignature
}

// A Key identifies a specific public key in an Entity. This is either the
// Entity's primary key or a subkey.
type Key struct {
	Entity    *Entity
	PublicKey *packet.PublicKey
	// Subkey is nil for the primary key.
	Subkey *Subkey
}

// IsPrimary returns true if the key is the primary key of its entity.
func (k Key) IsPrimary() bool {
	return k.Subkey == nil
}

// VerifiableSignature is a signature packet whose cryptographic check runs
// at most once, however many goroutines ask for it.
type VerifiableSignature struct {
	Packet *packet.Signature

	once sync.Once
	err  error
}

// NewVerifiableSig returns a VerifiableSignature for sig.
func NewVerifiableSig(sig *packet.Signature) *VerifiableSignature {
	return &VerifiableSignature{Packet: sig}
}

// verify returns the result of check on the first call, and the cached
// result afterwards. A signature is always checked by the same component,
// so check never varies for one VerifiableSignature.
func (v *VerifiableSignature) verify(check func(*packet.Signature) error) error {
	v.once.Do(func() {
		if err := v.Packet.Unusable(); err != nil {
			v.err = err
			return
		}
		// Stays set if check panics.
		v.err = errors.New(errors.CryptographicMismatch, "signature check did not complete")
		v.err = check(v.Packet)
	})
	return v.err
}

// An EntityList contains one or more Entities.
type EntityList []*Entity

// KeysById returns the set of keys that have the given key id.
func (el EntityList) KeysById(id uint64) (keys []Key) {
	return el.keys(func(pk *packet.PublicKey) bool { return pk.KeyId == id })
}

// KeysByFingerprint returns the set of keys that have the given fingerprint.
func (el EntityList) KeysByFingerprint(fingerprint []byte) (keys []Key) {
	return el.keys(func(pk *packet.PublicKey) bool { return bytes.Equal(pk.Fingerprint, fingerprint) })
}

// KeysByIssuer returns the keys that may have issued sig, in keyring order.
// The issuer fingerprint is preferred to the key id. A signature that
// names no issuer may have been made by any key.
func (el EntityList) KeysByIssuer(sig *packet.Signature) []Key {
	fingerprint, keyId := sig.Issuer()
	switch {
	case fingerprint != nil:
		return el.KeysByFingerprint(fingerprint)
	case keyId != nil:
		return el.KeysById(*keyId)
	}
	return el.keys(func(*packet.PublicKey) bool { return true })
}

func (el EntityList) keys(match func(*packet.PublicKey) bool) (keys []Key) {
	for _, e := range el {
		if match(e.PrimaryKey) {
			keys = append(keys, Key{Entity: e, PublicKey: e.PrimaryKey})
		}
		for i := range e.Subkeys {
			subkey := &e.Subkeys[i]
			if match(subkey.PublicKey) {
				keys = append(keys, Key{Entity: e, PublicKey: subkey.PublicKey, Subkey: subkey})
			}
		}
	}
	return
}

// EntitiesById returns the entities that contain a key with the given key
// id.
func (el EntityList) EntitiesById(id uint64) (entities []*Entity) {
	for _, key := range el.KeysById(id) {
		if len(entities) == 0 || entities[len(entities)-1] != key.Entity {
			entities = append(entities, key.Entity)
		}
	}
	return
}

// ReadKeyRing reads one or more public keys from buf and returns them as an
// EntityList. Any framing or structural error fails the whole keyring with
// a MalformedKeyring error; keys of unsupported algorithms are kept and
// can never verify a signature.
func ReadKeyRing(buf []byte) (el EntityList, err error) {
	if len(buf) == 0 {
		return nil, errors.New(errors.MalformedKeyring, "empty keyring")
	}
	packets := packet.NewReader(buf)
	for {
		var e *Entity
		e, err = ReadEntity(packets)
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrap(errors.MalformedKeyring, err)
		}
		el = append(el, e)
	}
	if len(el) == 0 {
		return nil, errors.New(errors.MalformedKeyring, "no certificates in keyring")
	}
	return el, nil
}

// ReadEntity reads an entity (public key, identities, subkeys etc) from the
// given Reader. It returns io.EOF if no packets are left.
func ReadEntity(packets *packet.Reader) (*Entity, error) {
	p, err := packets.Next()
	if err != nil {
		return nil, err
	}

	e := new(Entity)
	e.Identities = make(map[string]*Identity)
	var ok bool
	if e.PrimaryKey, ok = p.(*packet.PublicKey); !ok || e.PrimaryKey.IsSubkey {
		return nil, errors.New(errors.MalformedKeyring, "first packet was not a primary public key")
	}
	if err := e.PrimaryKey.Unsupported(); err != nil {
		logger.KV(xlog.DEBUG, "reason", "unsupported_primary_key", "fingerprint", e.PrimaryKey.FingerprintString(), "err", err.Error())
	}

EachPacket:
	for {
		p, err := packets.Next()
		if err == io.EOF {
			break
		} else if err != nil {
			return nil, err
		}

		switch pkt := p.(type) {
		case *packet.UserId:
			if err := readUser(e, packets, pkt); err != nil {
				return nil, err
			}
		case *packet.UserAttribute:
			if err := readUserAttribute(e, packets, pkt); err != nil {
				return nil, err
			}
		case *packet.Signature:
			switch pkt.SigType {
			case packet.SigTypeKeyRevocation:
				e.Revocations = append(e.Revocations, NewVerifiableSig(pkt))
			case packet.SigTypeDirectSignature:
				e.DirectSignatures = append(e.DirectSignatures, NewVerifiableSig(pkt))
			default:
				// Nothing we would know to attach it to.
				logger.KV(xlog.DEBUG, "reason", "ignore_signature", "type", pkt.SigType)
			}
		case *packet.PublicKey:
			if !pkt.IsSubkey {
				packets.Unread(p)
				break EachPacket
			}
			if err := readSubkey(e, packets, pkt); err != nil {
				return nil, err
			}
		}
	}
	return e, nil
}

// readUser reads the certifications that follow a user ID packet. Repeated
// user IDs are merged into one identity.
func readUser(e *Entity, packets *packet.Reader, pkt *packet.UserId) error {
	identity, ok := e.Identities[pkt.Id]
	if !ok {
		identity = &Identity{
			Primary: e,
			Name:    pkt.Id,
			UserId:  pkt,
		}
		e.Identities[pkt.Id] = identity
		e.identityOrder = append(e.identityOrder, identity)
	}

	return readSignatures(packets, func(sig *packet.Signature) {
		if !sig.SigType.IsCertification() && sig.SigType != packet.SigTypeCertificationRevocation {
			return
		}
		if !mayBeSelfSignature(e, sig) {
			identity.OtherCertifications = append(identity.OtherCertifications, sig)
			return
		}
		if sig.SigType == packet.SigTypeCertificationRevocation {
			identity.Revocations = append(identity.Revocations, NewVerifiableSig(sig))
		} else {
			identity.SelfCertifications = append(identity.SelfCertifications, NewVerifiableSig(sig))
		}
	})
}

func readUserAttribute(e *Entity, packets *packet.Reader, pkt *packet.UserAttribute) error {
	uat := &UserAttribute{Primary: e, UserAttribute: pkt}
	e.UserAttributes = append(e.UserAttributes, uat)

	return readSignatures(packets, func(sig *packet.Signature) {
		if !mayBeSelfSignature(e, sig) {
			return
		}
		switch {
		case sig.SigType.IsCertification():
			uat.SelfCertifications = append(uat.SelfCertifications, NewVerifiableSig(sig))
		case sig.SigType == packet.SigTypeCertificationRevocation:
			uat.Revocations = append(uat.Revocations, NewVerifiableSig(sig))
		}
	})
}

func readSubkey(e *Entity, packets *packet.Reader, pub *packet.PublicKey) error {
	subKey := Subkey{
		PublicKey: pub,
		Primary:   e,
	}
	err := readSignatures(packets, func(sig *packet.Signature) {
		switch sig.SigType {
		case packet.SigTypeSubkeyRevocation:
			subKey.Revocations = append(subKey.Revocations, NewVerifiableSig(sig))
		case packet.SigTypeSubkeyBinding:
			subKey.Bindings = append(subKey.Bindings, NewVerifiableSig(sig))
		}
		// Ignore signatures with wrong type
	})
	if err != nil {
		return err
	}
	e.Subkeys = append(e.Subkeys, subKey)
	return nil
}

// readSignatures passes the signature packets at the head of packets to
// add, and stops at the first packet of any other type.
func readSignatures(packets *packet.Reader, add func(*packet.Signature)) error {
	for {
		p, err := packets.Next()
		if err == io.EOF {
			return nil
		} else if err != nil {
			return err
		}
		sig, ok := p.(*packet.Signature)
		if !ok {
			packets.Unread(p)
			return nil
		}
		add(sig)
	}
}

// mayBeSelfSignature reports whether sig names the primary key of e as its
// issuer, or names no issuer at all.
func mayBeSelfSignature(e *Entity, sig *packet.Signature) bool {
	fingerprint, keyId := sig.Issuer()
	if fingerprint == nil && keyId == nil {
		return true
	}
	return sig.CheckKeyIdOrFingerprint(e.PrimaryKey)
}

// selfSignatureCandidate reports whether sig can be selected as the newest
// self-signature at now.
func selfSignatureCandidate(sig, selected *packet.Signature, now time.Time, config *packet.Config) bool {
	if sig.CreationTime.Unix() > now.Unix() {
		return false
	}
	if selected != nil && selected.CreationTime.Unix() >= sig.CreationTime.Unix() {
		// Newer ones are preferred
		return false
	}
	if config.RejectHashAlgorithm(sig.Hash) {
		logger.KV(xlog.DEBUG, "reason", "reject_self_signature_hash", "hash", sig.Hash.String())
		return false
	}
	return !sig.SigExpired(now)
}

// PrimarySelfSignature returns the newest valid self-signature of the
// primary key made at or before now: a direct key signature or a
// certification of a user ID or attribute that is not revoked. A primary
// key that carries no self-signature at all yields nil and no error.
func (e *Entity) PrimarySelfSignature(now time.Time, config *packet.Config) (*packet.Signature, error) {
	var selected *packet.Signature
	var found bool
	consider := func(vs *VerifiableSignature, check func(*packet.Signature) error) {
		found = true
		if !selfSignatureCandidate(vs.Packet, selected, now, config) {
			return
		}
		if err := vs.verify(check); err != nil {
			logger.KV(xlog.DEBUG, "reason", "invalid_self_signature", "fingerprint", e.PrimaryKey.FingerprintString(), "err", err.Error())
			return
		}
		selected = vs.Packet
	}

	for _, vs := range e.DirectSignatures {
		consider(vs, e.PrimaryKey.VerifyDirectKeySignature)
	}
	for _, ident := range e.orderedIdentities() {
		if len(ident.SelfCertifications) > 0 && ident.Revoked(now) {
			found = true
			continue
		}
		for _, vs := range ident.SelfCertifications {
			consider(vs, func(sig *packet.Signature) error {
				return e.PrimaryKey.VerifyUserIdSignature(ident.Name, e.PrimaryKey, sig)
			})
		}
	}
	for _, uat := range e.UserAttributes {
		if len(uat.SelfCertifications) > 0 && uat.Revoked(now) {
			found = true
			continue
		}
		for _, vs := range uat.SelfCertifications {
			consider(vs, func(sig *packet.Signature) error {
				return e.PrimaryKey.VerifyUserAttributeSignature(uat.UserAttribute, e.PrimaryKey, sig)
			})
		}
	}

	if selected == nil && found {
		return nil, errors.New(errors.KeyInvalid, "no valid self-signature for primary key")
	}
	return selected, nil
}

// orderedIdentities returns the identities in certificate order. For an
// Entity that was not read from a keyring, they are sorted by name.
func (e *Entity) orderedIdentities() []*Identity {
	if len(e.identityOrder) == len(e.Identities) {
		return e.identityOrder
	}
	names := make([]string, 0, len(e.Identities))
	for name := range e.Identities {
		names = append(names, name)
	}
	sort.Strings(names)
	idents := make([]*Identity, 0, len(names))
	for _, name := range names {
		idents = append(idents, e.Identities[name])
	}
	return idents
}

// isRevokedBy reports whether any of revocations is valid and in effect at
// now. A hard revocation is in effect even before it was made. The hash
// policy does not apply to revocations.
func isRevokedBy(revocations []*VerifiableSignature, now time.Time, check func(*packet.Signature) error) bool {
	for _, revocation := range revocations {
		if !revocation.Packet.IsHardRevocation() && revocation.Packet.CreationTime.Unix() > now.Unix() {
			continue
		}
		if err := revocation.verify(check); err != nil {
			logger.KV(xlog.DEBUG, "reason", "invalid_revocation", "err", err.Error())
			continue
		}
		return true
	}
	return false
}

// Revoked returns whether the entity has any direct key revocation
// signatures in effect at now.
func (e *Entity) Revoked(now time.Time) bool {
	return isRevokedBy(e.Revocations, now, e.PrimaryKey.VerifyRevocationSignature)
}

// Revoked returns whether the identity has been revoked by a
// self-signature at or before now.
func (i *Identity) Revoked(now time.Time) bool {
	for _, revocation := range i.Revocations {
		if revocation.Packet.CreationTime.Unix() > now.Unix() {
			continue
		}
		err := revocation.verify(func(sig *packet.Signature) error {
			return i.Primary.PrimaryKey.VerifyUserIdSignature(i.Name, i.Primary.PrimaryKey, sig)
		})
		if err == nil {
			return true
		}
	}
	return false
}

// Revoked returns whether the attribute has been revoked by a
// self-signature at or before now.
func (u *UserAttribute) Revoked(now time.Time) bool {
	for _, revocation := range u.Revocations {
		if revocation.Packet.CreationTime.Unix() > now.Unix() {
			continue
		}
		err := revocation.verify(func(sig *packet.Signature) error {
			return u.Primary.PrimaryKey.VerifyUserAttributeSignature(u.UserAttribute, u.Primary.PrimaryKey, sig)
		})
		if err == nil {
			return true
		}
	}
	return false
}

// Revoked returns whether the subkey has been revoked by a signature of the
// primary key in effect at now.
func (s *Subkey) Revoked(now time.Time) bool {
	return isRevokedBy(s.Revocations, now, func(sig *packet.Signature) error {
		return s.Primary.PrimaryKey.VerifySubkeyRevocationSignature(sig, s.PublicKey)
	})
}

// LatestValidBindingSignature returns the newest binding signature of the
// subkey made at or before now that verifies, including its cross-signature
// when the subkey can sign.
func (s *Subkey) LatestValidBindingSignature(now time.Time, config *packet.Config) (*packet.Signature, error) {
	var selected *packet.Signature
	for _, vs := range s.Bindings {
		sig := vs.Packet
		if !selfSignatureCandidate(sig, selected, now, config) {
			continue
		}
		if back := sig.EmbeddedSignature; back != nil && (config.RejectHashAlgorithm(back.Hash) || back.SigExpired(now)) {
			continue
		}
		err := vs.verify(func(sig *packet.Signature) error {
			primary := s.Primary.PrimaryKey
			if err := primary.VerifyKeySignature(s.PublicKey, sig); err != nil {
				return err
			}
			// Without key flags the cross-signature is not checked above.
			if !sig.FlagsValid && sig.EmbeddedSignature != nil && s.PublicKey.CanSign() {
				return errors.Wrapf(errors.KeyInvalid, s.PublicKey.VerifyPrimaryKeyBinding(primary, sig.EmbeddedSignature), "cross-signature")
			}
			return nil
		})
		if err != nil {
			logger.KV(xlog.DEBUG, "reason", "invalid_binding", "fingerprint", s.PublicKey.FingerprintString(), "err", err.Error())
			continue
		}
		selected = sig
	}
	if selected == nil {
		return nil, errors.New(errors.KeyInvalid, "no valid binding signature found for subkey")
	}
	return selected, nil
}

// checkKeyRequirements applies the key algorithm policy of config to
// usedKey.
func checkKeyRequirements(usedKey *packet.PublicKey, config *packet.Config) error {
	algo := usedKey.PubKeyAlgo
	if config.RejectPublicKeyAlgorithm(algo) {
		return errors.Newf(errors.WeakAlgorithmRejected, "public key algorithm %s", algo)
	}
	switch algo {
	case packet.PubKeyAlgoRSA, packet.PubKeyAlgoRSASignOnly:
		length, err := usedKey.BitLength()
		if err != nil || length < config.MinimumRSABits() {
			return errors.Newf(errors.WeakAlgorithmRejected, "minimum rsa length is %d got %d", config.MinimumRSABits(), length)
		}
	case packet.PubKeyAlgoECDSA, packet.PubKeyAlgoEdDSA:
		if curve := usedKey.Curve(); config.RejectCurve(curve) {
			return errors.Newf(errors.WeakAlgorithmRejected, "elliptic curve %s", curve)
		}
	}
	return nil
}
