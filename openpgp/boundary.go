package openpgp

import (
	"fmt"
	"strconv"
	"time"

	"github.com/effective-security/xlog"
	"github.com/pgpverify/go-pgpverify/metricskey"
	"github.com/pgpverify/go-pgpverify/openpgp/errors"
	"github.com/pgpverify/go-pgpverify/openpgp/packet"
)

// Result codes of VerifyDetachedCode. They are stable across versions.
const (
	// CodeValid means at least one key validated the signature over the data.
	CodeValid = 0
	// CodeNoValidSignature means no key validated the signature.
	CodeNoValidSignature = 1
	// CodeMalformedKeyring means the keyring is not a valid certificate sequence.
	CodeMalformedKeyring = 2
	// CodeMalformedSignature means the signature is not a valid signature packet.
	CodeMalformedSignature = 3
	// CodeUnsupportedAlgorithm means an algorithm required by the input is
	// unsupported or refused by policy.
	CodeUnsupportedAlgorithm = 4
)

// Code maps the error returned by VerifyDetached to a result code.
func Code(err error) int {
	if err == nil {
		return CodeValid
	}
	var verr *VerificationError
	if errors.As(err, &verr) {
		if verr.algorithmOnly() {
			return CodeUnsupportedAlgorithm
		}
		return CodeNoValidSignature
	}
	switch kind := errors.KindOf(err); {
	case kind == errors.MalformedKeyring:
		return CodeMalformedKeyring
	case kind == errors.MalformedSignature, kind == errors.MalformedPacket:
		return CodeMalformedSignature
	case kind.IsAlgorithm():
		return CodeUnsupportedAlgorithm
	}
	return CodeNoValidSignature
}

// VerifyDetachedCode checks a detached signature over data with the keys
// in keyring, at the current time and with the default policy, and
// returns one of the Code constants. It never panics.
func VerifyDetachedCode(keyring, signature, data []byte) int {
	return VerifyDetachedCodeWithConfig(keyring, signature, data, nil)
}

// VerifyDetachedCodeAt is VerifyDetachedCode at the given time.
func VerifyDetachedCodeAt(keyring, signature, data []byte, now time.Time) int {
	return VerifyDetachedCodeWithConfig(keyring, signature, data, &packet.Config{
		Time: func() time.Time { return now },
	})
}

// VerifyDetachedCodeWithConfig is VerifyDetachedCode with a policy.
func VerifyDetachedCodeWithConfig(keyring, signature, data []byte, config *packet.Config) int {
	return defaultPipeline.run(keyring, signature, data, config)
}

// pipeline holds the stages of a verification, so that a fault in any of
// them can be mapped to the code of that stage.
type pipeline struct {
	readKeyRing    func([]byte) (EntityList, error)
	readSignatures func([]byte) ([]*packet.Signature, error)
	verify         func(EntityList, []*packet.Signature, []byte, *packet.Config) (*Result, error)
}

var defaultPipeline = pipeline{
	readKeyRing:    ReadKeyRing,
	readSignatures: ReadSignatures,
	verify:         VerifyDetachedWithKeyRing,
}

// Check is VerifyDetachedCodeWithConfig that also returns the signature
// that verified, or the error behind a non-zero code. It never panics.
func Check(keyring, signature, data []byte, config *packet.Config) (*Result, int, error) {
	return defaultPipeline.check(keyring, signature, data, config)
}

func (p pipeline) run(keyring, signature, data []byte, config *packet.Config) int {
	_, code, _ := p.check(keyring, signature, data, config)
	return code
}

func (p pipeline) check(keyring, signature, data []byte, config *packet.Config) (res *Result, code int, err error) {
	start := time.Now()
	stage := CodeMalformedKeyring
	defer func() {
		if r := recover(); r != nil {
			logger.KV(xlog.ERROR, "reason", "panic", "stage", stage, "err", fmt.Sprint(r))
			res = nil
			code = stage
			err = errors.Newf(errors.Unknown, "recovered: %v", r)
		}
		metricskey.PerfVerify.MeasureSince(start, strconv.Itoa(code))
		if code != CodeValid {
			metricskey.StatsVerifyFailed.IncrCounter(1, errors.KindOf(err).String())
		}
	}()

	el, err := p.readKeyRing(keyring)
	if err != nil {
		logger.KV(xlog.DEBUG, "reason", "keyring", "err", err.Error())
		return nil, Code(err), err
	}
	stage = CodeMalformedSignature
	sigs, err := p.readSignatures(signature)
	if err != nil {
		logger.KV(xlog.DEBUG, "reason", "signature", "err", err.Error())
		return nil, Code(err), err
	}
	stage = CodeNoValidSignature
	res, err = p.verify(el, sigs, data, config)
	return res, Code(err), err
}
