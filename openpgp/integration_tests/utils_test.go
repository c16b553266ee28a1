package integrationtests

import (
	"bytes"
	"crypto"
	mathrand "math/rand"
	"testing"

	"github.com/stretchr/testify/require"
	xopenpgp "golang.org/x/crypto/openpgp"
	"golang.org/x/crypto/openpgp/armor"
	xpacket "golang.org/x/crypto/openpgp/packet"
)

const maxMessageLength = 1 << 12

// testVector is a certificate made by another implementation, with the
// private key that signs for it.
type testVector struct {
	name      string
	signer    *xopenpgp.Entity
	publicKey string
}

type keySetting struct {
	name string
	cfg  *xpacket.Config
}

// Settings for generating random, fresh key pairs
var keySettings = []keySetting{
	{
		"rsa2048",
		&xpacket.Config{
			RSABits: 2048,
		},
	},
	{
		"rsa3072_sha512",
		&xpacket.Config{
			RSABits:     3072,
			DefaultHash: crypto.SHA512,
		},
	},
	{
		"rsa2048_sha384",
		&xpacket.Config{
			RSABits:     2048,
			DefaultHash: crypto.SHA384,
		},
	},
}

// generateFreshTestVectors generates a key for each setting and returns it
// with its armored certificate.
func generateFreshTestVectors(t *testing.T) (vectors []testVector) {
	for _, setting := range keySettings {
		name, comment, email := randomName(), randomComment(), randomEmail()
		entity, err := xopenpgp.NewEntity(name, comment, email, setting.cfg)
		require.NoError(t, err)

		var w bytes.Buffer
		require.NoError(t, entity.Serialize(&w))
		vectors = append(vectors, testVector{
			name:      setting.name + "_fresh",
			signer:    entity,
			publicKey: armorWithType(t, w.Bytes(), "PGP PUBLIC KEY BLOCK"),
		})
	}
	return
}

// armorWithType make bytes input to armor format
func armorWithType(t *testing.T, input []byte, armorType string) string {
	var b bytes.Buffer
	w, err := armor.Encode(&b, armorType, nil)
	require.NoError(t, err)
	_, err = w.Write(input)
	require.NoError(t, err)
	require.NoError(t, w.Close())
	return b.String()
}

// dearmor returns the body of an armored block.
func dearmor(t *testing.T, armored string) []byte {
	block, err := armor.Decode(bytes.NewBufferString(armored))
	require.NoError(t, err)
	var b bytes.Buffer
	_, err = b.ReadFrom(block.Body)
	require.NoError(t, err)
	return b.Bytes()
}

var runes = []rune("abcdefghijklmnopqrstuvwxyz0123456789ABCDEFGHIJKMNOPQRSTUVWXYZ.:;?/!@#$%^&*{}[]_'\"-+~()<>")

func randomName() string {
	firstName := make([]rune, 8)
	lastName := make([]rune, 8)
	for i := range firstName {
		firstName[i] = runes[mathrand.Intn(26)]
	}
	for i := range lastName {
		lastName[i] = runes[mathrand.Intn(26)]
	}
	return string(firstName) + " " + string(lastName)
}

func randomEmail() string {
	address := make([]rune, 20)
	domain := make([]rune, 5)
	ext := make([]rune, 3)
	for i := range address {
		address[i] = runes[mathrand.Intn(38)]
	}
	for i := range domain {
		domain[i] = runes[mathrand.Intn(36)]
	}
	for i := range ext {
		ext[i] = runes[mathrand.Intn(36)]
	}
	return string(address) + "@" + string(domain) + "." + string(ext)
}

// Comment does not allow the following characters: ()<>\x00
func randomComment() string {
	comment := make([]rune, 140)
	for i := range comment {
		comment[i] = runes[mathrand.Intn(85)]
	}
	return string(comment)
}

// randomMessage returns printable text without line breaks, so that its
// canonical form does not depend on how a lone CR is treated.
func randomMessage() string {
	message := make([]rune, 1+mathrand.Intn(maxMessageLength-1))
	for i := range message {
		message[i] = runes[mathrand.Intn(len(runes))]
	}
	return string(message)
}

// Change one char of the input
func corrupt(input string) string {
	if input == "" {
		return string(runes[mathrand.Intn(len(runes))])
	}
	output := []rune(input)
	for string(output) == input {
		output[mathrand.Intn(len(output))] = runes[mathrand.Intn(len(runes))]
	}
	return string(output)
}
