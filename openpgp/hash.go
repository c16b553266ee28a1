// Copyright 2011 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package openpgp

import (
	"hash"
	"strconv"

	"github.com/pgpverify/go-pgpverify/openpgp/errors"
	"github.com/pgpverify/go-pgpverify/openpgp/packet"
)

// hashForSignature returns a pair of hashes that can be used to verify a
// signature. The signature may specify that the contents of the signed
// message should be preprocessed (i.e. to normalize line endings). Thus this
// function returns two hashes. The second should be used to hash the
// message itself and performs any needed preprocessing. The salt of a v6
// signature has already been written to both.
func hashForSignature(sig *packet.Signature) (directHash, wrappedHash hash.Hash, err error) {
	directHash, err = sig.PrepareVerify()
	if err != nil {
		return nil, nil, err
	}
	wrappedHash, err = wrapHashForSignature(directHash, sig.SigType)
	if err != nil {
		return nil, nil, err
	}
	return directHash, wrappedHash, nil
}

func wrapHashForSignature(hashFunc hash.Hash, sigType packet.SignatureType) (hash.Hash, error) {
	switch sigType {
	case packet.SigTypeBinary:
		return hashFunc, nil
	case packet.SigTypeText:
		return NewCanonicalTextHash(hashFunc), nil
	}
	return nil, errors.MalformedSignatureError("not a document signature: type " + strconv.Itoa(int(sigType)))
}

// digestData returns the digest of data under sig, including the
// signature's hashed trailer.
func digestData(sig *packet.Signature, data []byte) ([]byte, error) {
	directHash, wrappedHash, err := hashForSignature(sig)
	if err != nil {
		return nil, err
	}
	if _, err = wrappedHash.Write(data); err != nil {
		return nil, err
	}
	directHash.Write(sig.HashSuffix)
	return directHash.Sum(nil), nil
}
