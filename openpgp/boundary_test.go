package openpgp

import (
	"sync"
	"testing"

	goerrors "github.com/cockroachdb/errors"
	"github.com/pgpverify/go-pgpverify/openpgp/errors"
	"github.com/pgpverify/go-pgpverify/openpgp/internal/pgptest"
	"github.com/pgpverify/go-pgpverify/openpgp/packet"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCode(t *testing.T) {
	tcases := []struct {
		name string
		err  error
		code int
	}{
		{"nil", nil, CodeValid},
		{"keyring", errors.New(errors.MalformedKeyring, "no certificates"), CodeMalformedKeyring},
		{"keyring wrapping signature", errors.Wrap(errors.MalformedKeyring, errors.MalformedSignatureError("self-signature")), CodeMalformedKeyring},
		{"signature", errors.MalformedSignatureError("bad subpacket"), CodeMalformedSignature},
		{"framing", errors.MalformedPacketError("truncated"), CodeMalformedSignature},
		{"with message", goerrors.WithMessage(errors.MalformedSignatureError("bad subpacket"), "signature 2"), CodeMalformedSignature},
		{"unsupported", errors.UnsupportedError("public key algorithm 99"), CodeUnsupportedAlgorithm},
		{"weak", errors.ErrWeakAlgorithm, CodeUnsupportedAlgorithm},
		{"critical subpacket", errors.UnsupportedCriticalSubpacketError(100), CodeNoValidSignature},
		{"plain", goerrors.New("plain"), CodeNoValidSignature},
		{"no rejections", &VerificationError{}, CodeNoValidSignature},
		{
			"algorithm rejections",
			&VerificationError{Rejections: []Rejection{
				{Fingerprint: []byte{1}, Err: errors.ErrWeakAlgorithm},
				{Fingerprint: []byte{2}, Err: errors.UnsupportedError("curve")},
			}},
			CodeUnsupportedAlgorithm,
		},
		{
			"mixed rejections",
			&VerificationError{Rejections: []Rejection{
				{Fingerprint: []byte{1}, Err: errors.ErrWeakAlgorithm},
				{Fingerprint: []byte{2}, Err: errors.ErrKeyExpired},
			}},
			CodeNoValidSignature,
		},
		{
			"no matching key",
			&VerificationError{Rejections: []Rejection{{Err: errors.UnknownIssuerError{Issuer: "0102030405060708"}}}},
			CodeNoValidSignature,
		},
	}
	for _, tc := range tcases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.code, Code(tc.err))
		})
	}
}

func TestVerifyDetachedCode_Inputs(t *testing.T) {
	k := pgptest.NewEd25519(t, 4, keyTime)
	keyring := pgptest.SelfSigned(t, k, aliceId)
	sig := detachSign(t, k, pgptest.Sig{}, testData)

	assert.Equal(t, CodeValid, VerifyDetachedCodeAt(keyring, sig, testData, testNow))
	assert.Equal(t, CodeValid, VerifyDetachedCode(keyring, sig, testData))

	// Empty input never succeeds.
	assert.Equal(t, CodeMalformedKeyring, VerifyDetachedCode(nil, nil, nil))
	assert.Equal(t, CodeMalformedKeyring, VerifyDetachedCode([]byte{}, []byte{}, []byte{}))
	assert.Equal(t, CodeMalformedKeyring, VerifyDetachedCode(nil, sig, testData))
	assert.Equal(t, CodeMalformedSignature, VerifyDetachedCode(keyring, nil, testData))
	assert.Equal(t, CodeMalformedSignature, VerifyDetachedCode(keyring, nil, nil))
	assert.Equal(t, CodeNoValidSignature, VerifyDetachedCodeAt(keyring, sig, nil, testNow))

	emptySig := detachSign(t, k, pgptest.Sig{}, nil)
	assert.Equal(t, CodeValid, VerifyDetachedCodeAt(keyring, emptySig, nil, testNow))

	// The keyring is checked first.
	assert.Equal(t, CodeMalformedKeyring, VerifyDetachedCode([]byte{0xff}, []byte{0xff}, testData))
	assert.Equal(t, CodeMalformedSignature, VerifyDetachedCode(keyring, []byte{0xff}, testData))

	assert.Equal(t, CodeUnsupportedAlgorithm, VerifyDetachedCode(keyring, pgptest.SignaturePacket(t, []byte{4, 0, 99, 8, 0, 0}), testData))
	assert.Equal(t, CodeMalformedSignature, VerifyDetachedCode(keyring, keyring, testData))
}

func TestVerifyDetachedCode_UnsupportedKey(t *testing.T) {
	el, err := ReadKeyRing(readArmoredKeyRing(t, bobKeyWithUnsupportedSubkey))
	require.NoError(t, err)
	keyring := readArmoredKeyRing(t, bobKeyWithUnsupportedSubkey)
	subkey := el[0].Subkeys[0].PublicKey

	// A signature that names the unusable subkey as its issuer.
	k := pgptest.NewEd25519(t, 4, keyTime)
	issuer := pgptest.Subpacket(33, false, append([]byte{4}, subkey.Fingerprint...)...)
	sig := detachSign(t, k, pgptest.Sig{NoIssuer: true, Hashed: issuer}, testData)

	_, err = VerifyDetached(keyring, sig, testData, configAt(testNow))
	verr := requireRejected(t, err, errors.UnsupportedAlgorithm)
	require.Len(t, verr.Rejections, 1)
	assert.Equal(t, subkey.Fingerprint, verr.Rejections[0].Fingerprint)
	assert.Equal(t, CodeUnsupportedAlgorithm, Code(err))
	assert.Equal(t, CodeUnsupportedAlgorithm, VerifyDetachedCodeAt(keyring, sig, testData, testNow))
}

func TestVerifyDetachedCode_OffCurveKey(t *testing.T) {
	k := pgptest.NewEd25519(t, 4, keyTime)
	sig := detachSign(t, k, pgptest.Sig{}, testData)

	// y = 2 is not the encoding of an edwards25519 point.
	point := make([]byte, 32)
	point[0] = 2
	body := append([]byte{4, 0x63, 0xb0, 0xcd, 0x00, byte(packet.PubKeyAlgoEd25519)}, point...)
	keyring := pgptest.Frame(t, packet.TagPublicKey, body)

	_, code, err := Check(keyring, sig, testData, configAt(testNow))
	require.Error(t, err)
	assert.Equal(t, errors.MalformedKeyring, errors.KindOf(err), err.Error())
	assert.True(t, errors.HasKind(err, errors.MalformedKey))
	assert.Equal(t, CodeMalformedKeyring, code)
}

func TestPipeline_Recover(t *testing.T) {
	k := pgptest.NewEd25519(t, 4, keyTime)
	keyring := pgptest.SelfSigned(t, k, aliceId)
	sig := detachSign(t, k, pgptest.Sig{}, testData)

	divide := func(n int) int { return 1 / n }

	p := defaultPipeline
	p.readKeyRing = func([]byte) (EntityList, error) {
		var el EntityList
		_ = el[0]
		return el, nil
	}
	assert.Equal(t, CodeMalformedKeyring, p.run(keyring, sig, testData, nil))

	p = defaultPipeline
	p.readSignatures = func([]byte) ([]*packet.Signature, error) {
		return nil, goerrors.Newf("%d", divide(0))
	}
	assert.Equal(t, CodeMalformedSignature, p.run(keyring, sig, testData, nil))

	p = defaultPipeline
	p.verify = func(EntityList, []*packet.Signature, []byte, *packet.Config) (*Result, error) {
		panic("verify")
	}
	assert.Equal(t, CodeNoValidSignature, p.run(keyring, sig, testData, configAt(testNow)))

	// Nothing is left behind for the next call.
	assert.Equal(t, CodeValid, defaultPipeline.run(keyring, sig, testData, configAt(testNow)))
}

func TestVerifyDetached_Parallel(t *testing.T) {
	k := pgptest.NewEd25519(t, 4, keyTime)
	sub := pgptest.NewEd25519(t, 4, keyTime)
	keyring := pgptest.NewCert(t, k).UserId(aliceId).
		Signature(k.SignUserId(t, pgptest.Sig{Flags: pgptest.FlagCertify | pgptest.FlagSign}, aliceId)).
		Add(pgptest.SigningSubkey(t, k, sub)).
		Bytes()
	sig := detachSign(t, sub, pgptest.Sig{}, testData)
	tampered := append([]byte("!"), testData...)

	el, err := ReadKeyRing(keyring)
	require.NoError(t, err)
	sigs, err := ReadSignatures(sig)
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			if i%2 == 0 {
				assert.Equal(t, CodeValid, VerifyDetachedCodeAt(keyring, sig, testData, testNow))
				assert.Equal(t, CodeNoValidSignature, VerifyDetachedCodeAt(keyring, sig, tampered, testNow))
				return
			}
			// A shared keyring caches its self-signature checks.
			res, err := VerifyDetachedWithKeyRing(el, sigs, testData, configAt(testNow))
			if assert.NoError(t, err) {
				assert.Equal(t, sub.Public.Fingerprint, res.Fingerprint())
			}
		}(i)
	}
	wg.Wait()
}

func TestCheck(t *testing.T) {
	k := pgptest.NewEd25519(t, 4, keyTime)
	keyring := pgptest.SelfSigned(t, k, aliceId)
	sig := detachSign(t, k, pgptest.Sig{}, testData)

	res, code, err := Check(keyring, sig, testData, configAt(testNow))
	require.NoError(t, err)
	assert.Equal(t, CodeValid, code)
	assert.Equal(t, k.Public.Fingerprint, res.Fingerprint())

	res, code, err = Check(keyring, sig, []byte("other"), configAt(testNow))
	assert.Nil(t, res)
	assert.Equal(t, CodeNoValidSignature, code)
	assert.True(t, errors.Is(err, errors.ErrNoValidSignature))

	_, code, err = Check(keyring, []byte{0xff}, testData, configAt(testNow))
	assert.Equal(t, CodeMalformedSignature, code)
	assert.Equal(t, CodeMalformedSignature, Code(err))
}
