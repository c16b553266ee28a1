package packet

import (
	"bytes"
	"io"
	"testing"

	"github.com/pgpverify/go-pgpverify/openpgp/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func frame(tag uint8, body []byte) []byte {
	var buf bytes.Buffer
	_ = SerializeHeader(&buf, tag, len(body))
	buf.Write(body)
	return buf.Bytes()
}

func TestOpaqueReaderOldFormat(t *testing.T) {
	tcases := []struct {
		name string
		in   []byte
		tag  uint8
		body []byte
	}{
		{"one octet length", []byte{0x80 | 13<<2, 3, 'a', 'b', 'c'}, 13, []byte("abc")},
		{"two octet length", []byte{0x80 | 13<<2 | 1, 0, 2, 'a', 'b'}, 13, []byte("ab")},
		{"four octet length", []byte{0x80 | 13<<2 | 2, 0, 0, 0, 1, 'a'}, 13, []byte("a")},
		{"indeterminate length", []byte{0x80 | 13<<2 | 3, 'x', 'y', 'z'}, 13, []byte("xyz")},
	}
	for _, tc := range tcases {
		t.Run(tc.name, func(t *testing.T) {
			or := NewOpaqueReader(tc.in)
			op, err := or.Next()
			require.NoError(t, err)
			assert.Equal(t, tc.tag, op.Tag)
			assert.Equal(t, tc.body, op.Contents)
			assert.False(t, op.NewFormat)

			_, err = or.Next()
			assert.Equal(t, io.EOF, err)
		})
	}
}

func TestOpaqueReaderNewFormat(t *testing.T) {
	for _, n := range []int{0, 1, 191, 192, 8383, 8384, 70000} {
		body := bytes.Repeat([]byte{0x61}, n)
		op, err := NewOpaqueReader(frame(TagUserId, body)).Next()
		require.NoError(t, err, "length %d", n)
		assert.Equal(t, TagUserId, op.Tag)
		assert.True(t, op.NewFormat)
		assert.Equal(t, body, op.Contents, "length %d", n)
	}
}

func TestOpaqueReaderPartialLength(t *testing.T) {
	chunk := bytes.Repeat([]byte{0x62}, 512)

	// Literal data: 512 byte partial chunk followed by a final 3 byte chunk.
	in := []byte{0xc0 | 11, 0xe0 | 9}
	in = append(in, chunk...)
	in = append(in, 3, 'e', 'n', 'd')
	op, err := NewOpaqueReader(in).Next()
	require.NoError(t, err)
	assert.Equal(t, uint8(11), op.Tag)
	assert.Equal(t, append(append([]byte(nil), chunk...), "end"...), op.Contents)

	t.Run("not allowed on signatures", func(t *testing.T) {
		in := []byte{0xc0 | TagSignature, 0xe0 | 9}
		in = append(in, chunk...)
		in = append(in, 0)
		_, err := NewOpaqueReader(in).Next()
		assert.Equal(t, errors.MalformedPacket, errors.KindOf(err))
	})
	t.Run("short first chunk", func(t *testing.T) {
		in := []byte{0xc0 | 11, 0xe0 | 8}
		in = append(in, chunk[:256]...)
		in = append(in, 0)
		_, err := NewOpaqueReader(in).Next()
		assert.Equal(t, errors.MalformedPacket, errors.KindOf(err))
	})
	t.Run("missing final chunk", func(t *testing.T) {
		in := []byte{0xc0 | 11, 0xe0 | 9}
		in = append(in, chunk...)
		_, err := NewOpaqueReader(in).Next()
		assert.Equal(t, errors.MalformedPacket, errors.KindOf(err))
	})
}

func TestOpaqueReaderMalformed(t *testing.T) {
	tcases := []struct {
		name string
		in   []byte
	}{
		{"bit 7 clear", []byte{0x40 | 13, 0}},
		{"reserved tag", []byte{0xc0, 0}},
		{"old format reserved tag", []byte{0x80, 0}},
		{"missing length", []byte{0xc0 | 13}},
		{"truncated two octet length", []byte{0xc0 | 13, 0xc0}},
		{"truncated five octet length", []byte{0xc0 | 13, 0xff, 0, 0}},
		{"truncated body", []byte{0xc0 | 13, 5, 'a'}},
		{"truncated old format length", []byte{0x80 | 13<<2 | 2, 0, 0}},
		{"truncated old format body", []byte{0x80 | 13<<2, 5, 'a'}},
		{"huge five octet length", []byte{0xc0 | 13, 0xff, 0xff, 0xff, 0xff, 0xff, 'a'}},
	}
	for _, tc := range tcases {
		t.Run(tc.name, func(t *testing.T) {
			or := NewOpaqueReader(tc.in)
			_, err := or.Next()
			require.Error(t, err)
			assert.Equal(t, errors.MalformedPacket, errors.KindOf(err), err.Error())

			// The reader does not retry the same bytes.
			_, err = or.Next()
			assert.Equal(t, io.EOF, err)
		})
	}
}

func TestOpaqueReaderDoesNotAlias(t *testing.T) {
	in := frame(TagUserId, []byte("alice"))
	op, err := NewOpaqueReader(in).Next()
	require.NoError(t, err)
	in[len(in)-1] = 'X'
	assert.Equal(t, []byte("alice"), op.Contents)
}

func TestOpaqueReaderUnreadReset(t *testing.T) {
	in := append(frame(TagUserId, []byte("a")), frame(TagUserId, []byte("b"))...)
	or := NewOpaqueReader(in)

	first, err := or.Next()
	require.NoError(t, err)
	or.Unread(first)
	again, err := or.Next()
	require.NoError(t, err)
	assert.Same(t, first, again)

	second, err := or.Next()
	require.NoError(t, err)
	assert.Equal(t, []byte("b"), second.Contents)
	_, err = or.Next()
	assert.Equal(t, io.EOF, err)

	or.Reset()
	op, err := or.Next()
	require.NoError(t, err)
	assert.Equal(t, []byte("a"), op.Contents)
}

func TestOpaquePacketParse(t *testing.T) {
	op := &OpaquePacket{Tag: TagUserId, Contents: []byte("Alice (work) <alice@example.com>")}
	p, err := op.Parse()
	require.NoError(t, err)
	uid, ok := p.(*UserId)
	require.True(t, ok)
	assert.Equal(t, "Alice", uid.Name)
	assert.Equal(t, "work", uid.Comment)
	assert.Equal(t, "alice@example.com", uid.Email)

	op = &OpaquePacket{Tag: TagUserAttribute, Contents: []byte{1, 2, 3}}
	p, err = op.Parse()
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 2, 3}, p.(*UserAttribute).Contents)

	op = &OpaquePacket{Tag: 11, Contents: []byte{1}}
	_, err = op.Parse()
	assert.Equal(t, errors.MalformedPacket, errors.KindOf(err))
}

func TestReaderSkipsPackets(t *testing.T) {
	ct := creationTimeData(testSigTime)
	v4 := sigBody(SigTypeBinary, PubKeyAlgoRSA, 8, ct, nil, testRSAValue)
	v5 := append([]byte{5}, v4[1:]...)
	unsupported := sigBody(SigTypeBinary, 100, 8, ct, nil, testRSAValue)
	critical := sigBody(SigTypeBinary, PubKeyAlgoRSA, 8, append(append([]byte(nil), ct...), subpacket(100, true)...), nil, testRSAValue)

	var in []byte
	in = append(in, frame(TagMarker, []byte("PGP"))...)
	in = append(in, frame(TagTrust, []byte{0, 0})...)
	in = append(in, frame(TagPadding, []byte{1, 2, 3, 4})...)
	in = append(in, frame(60, []byte{1})...)
	in = append(in, frame(TagSignature, v5)...)
	in = append(in, frame(TagSignature, unsupported)...)
	in = append(in, frame(TagSignature, critical)...)
	in = append(in, frame(TagSignature, v4)...)
	in = append(in, frame(TagUserId, []byte("bob"))...)

	r := NewReader(in)
	// Signatures that cannot be used are kept, so that a certificate still
	// knows it carried them.
	for _, kind := range []errors.Kind{errors.UnsupportedAlgorithm, errors.UnsupportedCriticalSubpacket} {
		p, err := r.Next()
		require.NoError(t, err)
		sig, ok := p.(*Signature)
		require.True(t, ok, "got %T", p)
		assert.Equal(t, SigTypeBinary, sig.SigType)
		assert.Equal(t, kind, errors.KindOf(sig.Unusable()))
	}

	p, err := r.Next()
	require.NoError(t, err)
	sig, ok := p.(*Signature)
	require.True(t, ok, "got %T", p)
	assert.Equal(t, 4, sig.Version)
	assert.NoError(t, sig.Unusable())

	r.Unread(p)
	p2, err := r.Next()
	require.NoError(t, err)
	assert.Same(t, p, p2)

	p, err = r.Next()
	require.NoError(t, err)
	assert.Equal(t, "bob", p.(*UserId).Id)

	_, err = r.Next()
	assert.Equal(t, io.EOF, err)

	r.Reset()
	p, err = r.Next()
	require.NoError(t, err)
	assert.Error(t, p.(*Signature).Unusable())
}

func TestReaderErrors(t *testing.T) {
	_, err := NewReader(frame(5, []byte{4})).Next()
	assert.Equal(t, errors.MalformedPacket, errors.KindOf(err))

	_, err = NewReader(frame(TagSignature, []byte{4, 0})).Next()
	assert.Equal(t, errors.MalformedSignature, errors.KindOf(err))

	_, err = NewReader([]byte{0x00}).Next()
	assert.Equal(t, errors.MalformedPacket, errors.KindOf(err))
}
