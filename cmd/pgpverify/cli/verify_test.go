package cli

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/pgpverify/go-pgpverify/openpgp"
)

func (s *testSuite) TestVerify() {
	keyring := s.WriteFile("keyring.pgp", s.Keyring())
	sig := s.WriteFile("data.sig", s.Sign(s.data))
	data := s.WriteFile("data.txt", s.data)
	fp := fmt.Sprintf("%X", s.signer.PrimaryKey.Fingerprint[:])

	cmd := VerifyCmd{Keyring: keyring, Signature: sig, Data: data}
	s.Require().NoError(cmd.Run(s.ctl))
	s.Equal(openpgp.CodeValid, s.ctl.Code())
	s.HasText("Successfully verified signature created by " + fp)
	s.HasNoText("Primary key")
	s.Empty(s.Err.String())

	s.SetupTest()
	cmd.Data = s.WriteFile("other.txt", []byte("hello world"))
	s.Require().NoError(cmd.Run(s.ctl))
	s.Equal(openpgp.CodeNoValidSignature, s.ctl.Code())
	s.Empty(s.Out.String())
	s.HasErrText("error: openpgp: no valid signature")
}

func (s *testSuite) TestVerifyJSON() {
	keyring := s.WriteFile("keyring.pgp", s.Keyring())
	sig := s.WriteFile("data.sig", s.Sign(s.data))
	data := s.WriteFile("data.txt", s.data)

	cmd := VerifyCmd{Keyring: keyring, Signature: sig, Data: data, JSON: true}
	s.Require().NoError(cmd.Run(s.ctl))

	var res VerifyResult
	s.Require().NoError(json.Unmarshal(s.Out.Bytes(), &res))
	s.Equal(openpgp.CodeValid, res.Code)
	s.True(res.Valid)
	s.Equal(fmt.Sprintf("%X", s.signer.PrimaryKey.Fingerprint[:]), res.Fingerprint)
	s.Equal(res.Fingerprint, res.Primary)
	s.Equal(s.signer.PrimaryKey.KeyIdString(), res.KeyID)
	s.Equal("SHA-256", res.Hash)
	s.Require().NotNil(res.Created)
	s.Empty(res.Error)
	s.Empty(res.Reasons)

	// Before the key existed.
	s.SetupTest()
	cmd.At = "2001-01-01T00:00:00Z"
	s.Require().NoError(cmd.Run(s.ctl))
	res = VerifyResult{}
	s.Require().NoError(json.Unmarshal(s.Out.Bytes(), &res))
	s.Equal(openpgp.CodeNoValidSignature, res.Code)
	s.False(res.Valid)
	s.Empty(res.Fingerprint)
	s.NotEmpty(res.Error)
	s.Require().Len(res.Reasons, 1)
	s.Equal(fmt.Sprintf("%X", s.signer.PrimaryKey.Fingerprint[:]), res.Reasons[0].Fingerprint)

	// An empty keyring.
	s.SetupTest()
	cmd.At = ""
	cmd.Keyring = s.WriteFile("empty.pgp", nil)
	s.Require().NoError(cmd.Run(s.ctl))
	res = VerifyResult{}
	s.Require().NoError(json.Unmarshal(s.Out.Bytes(), &res))
	s.Equal(openpgp.CodeMalformedKeyring, res.Code)
	s.Empty(res.Reasons)
}

func (s *testSuite) TestVerifyArmor() {
	keyring := s.WriteFile("keyring.asc", s.Armor(s.Keyring(), "PGP PUBLIC KEY BLOCK"))
	sig := s.WriteFile("data.asc", s.Armor(s.Sign(s.data), "PGP SIGNATURE"))
	data := s.WriteFile("data.txt", s.data)

	cmd := VerifyCmd{Keyring: keyring, Signature: sig, Data: data, Armor: true}
	s.Require().NoError(cmd.Run(s.ctl))
	s.Equal(openpgp.CodeValid, s.ctl.Code())

	// Armored input is malformed unless --armor is set.
	s.SetupTest()
	cmd.Armor = false
	s.Require().NoError(cmd.Run(s.ctl))
	s.Equal(openpgp.CodeMalformedKeyring, s.ctl.Code())

	// Binary input is not armored.
	s.SetupTest()
	cmd.Armor = true
	cmd.Keyring = s.WriteFile("keyring.pgp", s.Keyring())
	err := cmd.Run(s.ctl)
	s.Require().Error(err)
	s.Contains(err.Error(), "unable to load keyring")
	s.Equal(-1, s.ctl.Code())
}

func (s *testSuite) TestVerifyStdin() {
	keyring := s.WriteFile("keyring.pgp", s.Keyring())
	sig := s.WriteFile("data.sig", s.Sign(s.data))

	s.ctl.WithReader(bytes.NewReader(s.data))
	cmd := VerifyCmd{Keyring: keyring, Signature: sig, Data: "-"}
	s.Require().NoError(cmd.Run(s.ctl))
	s.Equal(openpgp.CodeValid, s.ctl.Code())

	s.SetupTest()
	cmd = VerifyCmd{Keyring: "-", Signature: "-", Data: "-"}
	err := cmd.Run(s.ctl)
	s.EqualError(err, "only one input can be read from stdin")
}

func (s *testSuite) TestVerifyPolicy() {
	keyring := s.WriteFile("keyring.pgp", s.Keyring())
	sig := s.WriteFile("data.sig", s.Sign(s.data))
	data := s.WriteFile("data.txt", s.data)

	cmd := VerifyCmd{
		Keyring:   keyring,
		Signature: sig,
		Data:      data,
		Policy:    s.WriteFile("policy.yaml", []byte("reject_message_hashes: [SHA256]\n")),
	}
	s.Require().NoError(cmd.Run(s.ctl))
	s.Equal(openpgp.CodeUnsupportedAlgorithm, s.ctl.Code())

	s.SetupTest()
	cmd.Policy = s.WriteFile("strict.yaml", []byte("min_rsa_bits: 4096\n"))
	s.Require().NoError(cmd.Run(s.ctl))
	s.Equal(openpgp.CodeUnsupportedAlgorithm, s.ctl.Code())

	s.SetupTest()
	cmd.Policy = s.WriteFile("bad.yaml", []byte("reject_message_hashes: [NOPE]\n"))
	err := cmd.Run(s.ctl)
	s.Require().Error(err)
	s.Contains(err.Error(), "unable to load policy")

	s.SetupTest()
	cmd.Policy = ""
	cmd.At = "yesterday"
	err = cmd.Run(s.ctl)
	s.Require().Error(err)
	s.Contains(err.Error(), "invalid --at value")
}

func (s *testSuite) TestReadFile() {
	_, err := s.ctl.ReadFile("")
	s.EqualError(err, "empty file name")

	_, err = s.ctl.ReadFile(s.tmpdir + "/missing")
	s.Error(err)

	s.ctl.WithReader(bytes.NewReader([]byte("stdin")))
	b, err := s.ctl.ReadFile("-")
	s.Require().NoError(err)
	s.Equal("stdin", string(b))
}

func (s *testSuite) TestNewVerifyResult() {
	res := newVerifyResult(nil, openpgp.CodeMalformedSignature, nil)
	s.Equal(&VerifyResult{Code: openpgp.CodeMalformedSignature}, res)
}
