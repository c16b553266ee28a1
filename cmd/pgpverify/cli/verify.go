package cli

import (
	"bytes"
	"fmt"
	"io"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/effective-security/xlog"
	"github.com/pgpverify/go-pgpverify/openpgp"
	"github.com/pgpverify/go-pgpverify/openpgp/packet"
	"golang.org/x/crypto/openpgp/armor"
)

// VerifyCmd checks a detached signature
type VerifyCmd struct {
	Keyring   string `arg:"" help:"Keyring file with the signer certificates, or - for stdin"`
	Signature string `arg:"" help:"Detached signature file, or - for stdin"`
	Data      string `arg:"" help:"Signed data file, or - for stdin"`

	Armor  bool   `help:"Keyring and signature are ASCII-armored"`
	At     string `help:"Verification time in RFC3339 format, current time by default"`
	Policy string `help:"Location of the YAML policy file" type:"path"`
	JSON   bool   `name:"json" help:"Print the result as JSON"`
}

// VerifyResult is printed with --json
type VerifyResult struct {
	Code        int        `json:"code"`
	Valid       bool       `json:"valid"`
	Fingerprint string     `json:"fingerprint,omitempty"`
	KeyID       string     `json:"key_id,omitempty"`
	Primary     string     `json:"primary_fingerprint,omitempty"`
	Created     *time.Time `json:"created,omitempty"`
	Hash        string     `json:"hash,omitempty"`
	Error       string     `json:"error,omitempty"`
	Reasons     []Reason   `json:"reasons,omitempty"`
}

// Reason describes why a candidate key was rejected
type Reason struct {
	Fingerprint string `json:"fingerprint,omitempty"`
	Kind        string `json:"kind"`
	Error       string `json:"error"`
}

// Run the command
func (a *VerifyCmd) Run(ctx *Cli) error {
	stdin := 0
	for _, name := range []string{a.Keyring, a.Signature, a.Data} {
		if name == "-" {
			stdin++
		}
	}
	if stdin > 1 {
		return errors.New("only one input can be read from stdin")
	}

	config, err := a.config()
	if err != nil {
		return err
	}

	keyring, err := a.read(ctx, a.Keyring, a.Armor)
	if err != nil {
		return errors.WithMessagef(err, "unable to load keyring")
	}
	sig, err := a.read(ctx, a.Signature, a.Armor)
	if err != nil {
		return errors.WithMessagef(err, "unable to load signature")
	}
	data, err := a.read(ctx, a.Data, false)
	if err != nil {
		return errors.WithMessagef(err, "unable to load data")
	}

	res, code, err := openpgp.Check(keyring, sig, data, config)
	ctx.code = code
	logger.KV(xlog.DEBUG, "code", code)

	if a.JSON {
		return ctx.WriteJSON(newVerifyResult(res, code, err))
	}
	if code != openpgp.CodeValid {
		fmt.Fprintf(ctx.ErrWriter(), "error: %s\n", err.Error())
		return nil
	}
	fmt.Fprintf(ctx.Writer(), "Successfully verified signature created by %s\n", res.Key.FingerprintString())
	if !bytes.Equal(res.Signer.PrimaryKey.Fingerprint, res.Key.Fingerprint) {
		fmt.Fprintf(ctx.Writer(), "Primary key %s\n", res.Signer.PrimaryKey.FingerprintString())
	}
	return nil
}

func (a *VerifyCmd) config() (*packet.Config, error) {
	config := new(packet.Config)
	if a.Policy != "" {
		var err error
		config, err = packet.LoadConfig(a.Policy)
		if err != nil {
			return nil, errors.WithMessagef(err, "unable to load policy")
		}
	}
	if a.At != "" {
		at, err := time.Parse(time.RFC3339, a.At)
		if err != nil {
			return nil, errors.WithMessagef(err, "invalid --at value")
		}
		config.Time = func() time.Time { return at }
	}
	return config, nil
}

func (a *VerifyCmd) read(ctx *Cli, name string, armored bool) ([]byte, error) {
	b, err := ctx.ReadFile(name)
	if err != nil {
		return nil, err
	}
	if !armored {
		return b, nil
	}
	block, err := armor.Decode(bytes.NewReader(b))
	if err != nil {
		return nil, errors.Wrapf(err, "%s is not ASCII-armored", name)
	}
	body, err := io.ReadAll(block.Body)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid armor in %s", name)
	}
	return body, nil
}

func newVerifyResult(res *openpgp.Result, code int, err error) *VerifyResult {
	r := &VerifyResult{
		Code:  code,
		Valid: code == openpgp.CodeValid,
	}
	if res != nil {
		r.Fingerprint = res.Key.FingerprintString()
		r.KeyID = res.Key.KeyIdString()
		r.Primary = res.Signer.PrimaryKey.FingerprintString()
		created := res.Signature.CreationTime.UTC()
		r.Created = &created
		r.Hash = res.Signature.Hash.String()
	}
	if err != nil {
		r.Error = err.Error()
	}
	var verr *openpgp.VerificationError
	if errors.As(err, &verr) {
		for _, rej := range verr.Rejections {
			reason := Reason{
				Kind:  rej.Kind().String(),
				Error: rej.Err.Error(),
			}
			if rej.Fingerprint != nil {
				reason.Fingerprint = fmt.Sprintf("%X", rej.Fingerprint)
			}
			r.Reasons = append(r.Reasons, reason)
		}
	}
	return r
}
