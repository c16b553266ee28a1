// Copyright 2012 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package packet

import (
	"crypto"
	"os"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/pgpverify/go-pgpverify/openpgp/internal/algorithm"
	"gopkg.in/yaml.v3"
)

// Config collects a number of parameters along with sensible defaults.
// A nil *Config is valid and results in all default values.
type Config struct {
	// Time returns the current time as the number of seconds since the
	// epoch. If Time is nil, time.Now is used.
	Time func() time.Time
	// RejectPublicKeyAlgorithms lists key algorithms that are not accepted
	// for any signature.
	RejectPublicKeyAlgorithms map[PublicKeyAlgorithm]bool
	// RejectHashAlgorithms lists hashes that are not accepted on
	// self-signatures and bindings. If nil, MD5 and RIPEMD-160 are rejected.
	RejectHashAlgorithms map[crypto.Hash]bool
	// RejectMessageHashAlgorithms lists hashes that are not accepted on
	// document signatures. If nil, MD5, SHA-1 and RIPEMD-160 are rejected.
	RejectMessageHashAlgorithms map[crypto.Hash]bool
	// RejectCurves lists elliptic curves that are not accepted.
	RejectCurves map[Curve]bool
	// MinRSABits is the minimum RSA modulus size for a signing key. If
	// zero, 2048 is used.
	MinRSABits uint16
	// KnownNotations lists the critical notation names that the caller
	// understands. A signature with any other critical notation is
	// rejected.
	KnownNotations map[string]bool
}

var (
	defaultRejectHashAlgorithms = map[crypto.Hash]bool{
		crypto.MD5:       true,
		crypto.RIPEMD160: true,
	}
	defaultRejectMessageHashAlgorithms = map[crypto.Hash]bool{
		crypto.MD5:       true,
		crypto.SHA1:      true,
		crypto.RIPEMD160: true,
	}
)

const defaultMinRSABits = 2048

func (c *Config) Now() time.Time {
	if c == nil || c.Time == nil {
		return time.Now().Truncate(time.Second)
	}
	return c.Time().Truncate(time.Second)
}

// RejectPublicKeyAlgorithm reports whether keys of type alg are refused.
func (c *Config) RejectPublicKeyAlgorithm(alg PublicKeyAlgorithm) bool {
	if c == nil || c.RejectPublicKeyAlgorithms == nil {
		return false
	}
	return c.RejectPublicKeyAlgorithms[alg]
}

// RejectHashAlgorithm reports whether h is refused on certifications.
func (c *Config) RejectHashAlgorithm(h crypto.Hash) bool {
	return c.rejectHashAlgorithms()[h]
}

func (c *Config) rejectHashAlgorithms() map[crypto.Hash]bool {
	if c == nil || c.RejectHashAlgorithms == nil {
		return defaultRejectHashAlgorithms
	}
	return c.RejectHashAlgorithms
}

// RejectMessageHashAlgorithm reports whether h is refused on document
// signatures.
func (c *Config) RejectMessageHashAlgorithm(h crypto.Hash) bool {
	if c == nil || c.RejectMessageHashAlgorithms == nil {
		return defaultRejectMessageHashAlgorithms[h]
	}
	return c.RejectMessageHashAlgorithms[h]
}

// RejectCurve reports whether keys on curve are refused.
func (c *Config) RejectCurve(curve Curve) bool {
	if c == nil || c.RejectCurves == nil {
		return false
	}
	return c.RejectCurves[curve]
}

// MinimumRSABits returns the minimum RSA modulus size.
func (c *Config) MinimumRSABits() uint16 {
	if c == nil || c.MinRSABits == 0 {
		return defaultMinRSABits
	}
	return c.MinRSABits
}

// KnownNotation reports whether a critical notation called name is
// understood.
func (c *Config) KnownNotation(notationName string) bool {
	if c == nil {
		return false
	}
	return c.KnownNotations[notationName]
}

// Policy is the YAML form of a Config.
type Policy struct {
	// Time pins the verification time, in RFC 3339 format.
	Time string `json:"time,omitempty" yaml:"time,omitempty"`
	// RejectPublicKeyAlgorithms lists key algorithm names, such as DSA.
	RejectPublicKeyAlgorithms []string `json:"reject_public_key_algorithms,omitempty" yaml:"reject_public_key_algorithms,omitempty"`
	// RejectHashes lists hash names refused on certifications, such as SHA1.
	RejectHashes []string `json:"reject_hashes,omitempty" yaml:"reject_hashes,omitempty"`
	// RejectMessageHashes lists hash names refused on document signatures.
	RejectMessageHashes []string `json:"reject_message_hashes,omitempty" yaml:"reject_message_hashes,omitempty"`
	// RejectCurves lists curve names, such as P256 or Ed448.
	RejectCurves []string `json:"reject_curves,omitempty" yaml:"reject_curves,omitempty"`
	// MinRSABits is the minimum RSA modulus size.
	MinRSABits uint16 `json:"min_rsa_bits,omitempty" yaml:"min_rsa_bits,omitempty"`
	// KnownNotations lists critical notation names that are understood.
	KnownNotations []string `json:"known_notations,omitempty" yaml:"known_notations,omitempty"`
}

// LoadConfig returns the Config described by the YAML policy file.
func LoadConfig(file string) (*Config, error) {
	b, err := os.ReadFile(file)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	cfg, err := ParseConfig(b)
	if err != nil {
		return nil, errors.WithMessagef(err, "unable to load policy %s", file)
	}
	return cfg, nil
}

// ParseConfig returns the Config described by a YAML policy. Lists that
// are not given keep their defaults; an empty list clears them.
func ParseConfig(data []byte) (*Config, error) {
	var p Policy
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, errors.Wrap(err, "unable parse YAML")
	}
	return p.Config()
}

// Config converts the policy.
func (p *Policy) Config() (*Config, error) {
	cfg := &Config{
		MinRSABits: p.MinRSABits,
	}
	if p.Time != "" {
		at, err := time.Parse(time.RFC3339, p.Time)
		if err != nil {
			return nil, errors.Wrapf(err, "invalid time")
		}
		cfg.Time = func() time.Time { return at }
	}
	if p.RejectPublicKeyAlgorithms != nil {
		cfg.RejectPublicKeyAlgorithms = make(map[PublicKeyAlgorithm]bool)
		for _, name := range p.RejectPublicKeyAlgorithms {
			alg, ok := ParsePublicKeyAlgorithm(name)
			if !ok {
				return nil, errors.Errorf("unknown public key algorithm: %s", name)
			}
			cfg.RejectPublicKeyAlgorithms[alg] = true
		}
	}
	var err error
	if cfg.RejectHashAlgorithms, err = parseHashList(p.RejectHashes); err != nil {
		return nil, err
	}
	if cfg.RejectMessageHashAlgorithms, err = parseHashList(p.RejectMessageHashes); err != nil {
		return nil, err
	}
	if p.RejectCurves != nil {
		cfg.RejectCurves = make(map[Curve]bool)
		for _, name := range p.RejectCurves {
			curve, ok := ParseCurve(name)
			if !ok {
				return nil, errors.Errorf("unknown curve: %s", name)
			}
			cfg.RejectCurves[curve] = true
		}
	}
	if p.KnownNotations != nil {
		cfg.KnownNotations = make(map[string]bool)
		for _, name := range p.KnownNotations {
			cfg.KnownNotations[name] = true
		}
	}
	return cfg, nil
}

func parseHashList(names []string) (map[crypto.Hash]bool, error) {
	if names == nil {
		return nil, nil
	}
	m := make(map[crypto.Hash]bool)
	for _, name := range names {
		h, ok := hashByName(name)
		if !ok {
			return nil, errors.Errorf("unknown hash: %s", name)
		}
		m[h] = true
	}
	return m, nil
}

func hashByName(name string) (crypto.Hash, bool) {
	for id := range algorithm.HashById {
		s, _ := algorithm.HashIdToString(id)
		if strings.EqualFold(s, name) {
			return algorithm.HashIdToHash(id)
		}
	}
	return 0, false
}
