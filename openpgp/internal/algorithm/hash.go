// Copyright 2017 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package algorithm maps OpenPGP algorithm identifiers to their Go
// implementations.
package algorithm

import (
	"crypto"
	"fmt"
	"hash"

	// Register the digests that OpenPGP names but the standard library
	// does not link by default.
	_ "crypto/md5"
	_ "crypto/sha1"
	_ "crypto/sha256"
	_ "crypto/sha512"

	_ "golang.org/x/crypto/ripemd160"
	_ "golang.org/x/crypto/sha3"
)

// Hash is an official hash function algorithm. See RFC 9580, section 9.5.
type Hash interface {
	// Id returns the algorithm ID, as a byte, of Hash.
	Id() uint8
	// Available reports whether the given hash function is linked into the binary.
	Available() bool
	// HashFunc simply returns the value of h so that Hash implements SignerOpts.
	HashFunc() crypto.Hash
	// New returns a new hash.Hash calculating the given hash function. New
	// panics if the hash function is not linked into the binary.
	New() hash.Hash
	// Size returns the length, in bytes, of a digest resulting from the given
	// hash function.
	Size() int
	// String is the name of the hash function corresponding to the given
	// OpenPGP hash id.
	String() string
}

// The following vars mirror the crypto/Hash supported hash functions.
var (
	MD5       Hash = cryptoHash{1, crypto.MD5}
	SHA1      Hash = cryptoHash{2, crypto.SHA1}
	RIPEMD160 Hash = cryptoHash{3, crypto.RIPEMD160}
	SHA256    Hash = cryptoHash{8, crypto.SHA256}
	SHA384    Hash = cryptoHash{9, crypto.SHA384}
	SHA512    Hash = cryptoHash{10, crypto.SHA512}
	SHA224    Hash = cryptoHash{11, crypto.SHA224}
	SHA3_256  Hash = cryptoHash{12, crypto.SHA3_256}
	SHA3_512  Hash = cryptoHash{14, crypto.SHA3_512}
)

// HashById represents the different hash functions specified for OpenPGP. See
// http://www.iana.org/assignments/pgp-parameters/pgp-parameters.xhtml#pgp-parameters-14
var HashById = map[uint8]Hash{
	MD5.Id():       MD5,
	SHA1.Id():      SHA1,
	RIPEMD160.Id(): RIPEMD160,
	SHA256.Id():    SHA256,
	SHA384.Id():    SHA384,
	SHA512.Id():    SHA512,
	SHA224.Id():    SHA224,
	SHA3_256.Id():  SHA3_256,
	SHA3_512.Id():  SHA3_512,
}

// cryptoHash contains pairs relating OpenPGP's hash identifier with
// Go's crypto.Hash type. See RFC 9580, section 9.5.
type cryptoHash struct {
	id uint8
	crypto.Hash
}

// Id returns the algorithm ID, as a byte, of cryptoHash.
func (h cryptoHash) Id() uint8 {
	return h.id
}

var hashNames = map[uint8]string{
	MD5.Id():       "MD5",
	SHA1.Id():      "SHA1",
	RIPEMD160.Id(): "RIPEMD160",
	SHA256.Id():    "SHA256",
	SHA384.Id():    "SHA384",
	SHA512.Id():    "SHA512",
	SHA224.Id():    "SHA224",
	SHA3_256.Id():  "SHA3-256",
	SHA3_512.Id():  "SHA3-512",
}

func (h cryptoHash) String() string {
	s, ok := hashNames[h.id]
	if !ok {
		panic(fmt.Sprintf("Unsupported hash function %d", h.id))
	}
	return s
}

// HashIdToHash returns a crypto.Hash which corresponds to the given OpenPGP
// hash id.
func HashIdToHash(id byte) (h crypto.Hash, ok bool) {
	if hash, ok := HashById[id]; ok {
		return hash.HashFunc(), true
	}
	return 0, false
}

// HashIdToString returns the name of the hash function corresponding to the
// given OpenPGP hash id.
func HashIdToString(id byte) (name string, ok bool) {
	if hash, ok := HashById[id]; ok {
		return hash.String(), true
	}
	return "", false
}

// HashToHashId returns an OpenPGP hash id which corresponds the given Hash.
func HashToHashId(h crypto.Hash) (id byte, ok bool) {
	for id, hash := range HashById {
		if hash.HashFunc() == h {
			return id, true
		}
	}
	return 0, false
}

// SaltLengthForHash returns the v6 signature salt length for the hash,
// per RFC 9580, section 9.5.
func SaltLengthForHash(h crypto.Hash) (int, bool) {
	switch h {
	case crypto.SHA224, crypto.SHA256, crypto.SHA3_256:
		return 16, true
	case crypto.SHA384:
		return 24, true
	case crypto.SHA512, crypto.SHA3_512:
		return 32, true
	}
	return 0, false
}
