// Copyright 2011 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package packet

import (
	"io"
	"strconv"

	"github.com/effective-security/xlog"
	"github.com/pgpverify/go-pgpverify/openpgp/errors"
)

// OpaquePacket represents an OpenPGP packet as raw, unparsed data. This is
// what the framer produces: the tag, the reassembled body and the header
// format.
type OpaquePacket struct {
	// Packet type
	Tag uint8
	// Reassembled packet body. It does not alias the input buffer.
	Contents []byte
	// NewFormat is true if the packet used an RFC 4880 header.
	NewFormat bool
}

// Parse decodes the packet contents into one of the typed packets.
// Packets of any other type yield an UnknownPacketTypeError.
func (op *OpaquePacket) Parse() (p Packet, err error) {
	switch packetType(op.Tag) {
	case packetTypeSignature:
		p = new(Signature)
	case packetTypePublicKey:
		p = new(PublicKey)
	case packetTypePublicSubkey:
		p = &PublicKey{IsSubkey: true}
	case packetTypeUserId:
		p = new(UserId)
	case packetTypeUserAttribute:
		p = new(UserAttribute)
	default:
		return nil, errors.UnknownPacketTypeError(op.Tag)
	}
	err = p.parse(op.Contents)
	return
}

// OpaqueReader splits a buffer into packets. It keeps a cursor into the
// buffer and never recurses, so nested or partial-length input of any
// depth is handled in constant stack.
type OpaqueReader struct {
	buf []byte
	off int
	q   []*OpaquePacket
}

// NewOpaqueReader returns a framer over buf. buf must not be modified while
// the reader is in use.
func NewOpaqueReader(buf []byte) *OpaqueReader {
	return &OpaqueReader{buf: buf}
}

// Next returns the next packet. At the end of the buffer it returns
// (nil, io.EOF); a truncated or otherwise invalid header yields a
// MalformedPacket error.
func (or *OpaqueReader) Next() (op *OpaquePacket, err error) {
	if len(or.q) > 0 {
		op = or.q[len(or.q)-1]
		or.q = or.q[:len(or.q)-1]
		return op, nil
	}
	if or.off >= len(or.buf) {
		return nil, io.EOF
	}
	op, n, err := readPacket(or.buf[or.off:])
	if err != nil {
		// Do not loop on the same bytes.
		or.off = len(or.buf)
		return nil, err
	}
	or.off += n
	return op, nil
}

// Unread pushes op back so that the next call to Next returns it.
func (or *OpaqueReader) Unread(op *OpaquePacket) {
	or.q = append(or.q, op)
}

// Reset rewinds the reader to the start of the buffer.
func (or *OpaqueReader) Reset() {
	or.off = 0
	or.q = nil
}

// readPacket decodes one packet from the start of buf and returns it along
// with the number of bytes consumed.
func readPacket(buf []byte) (op *OpaquePacket, n int, err error) {
	if len(buf) == 0 {
		return nil, 0, errors.MalformedPacketError("empty packet header")
	}
	tagByte := buf[0]
	n = 1
	if tagByte&0x80 == 0 {
		return nil, 0, errors.MalformedPacketError("tag byte does not have MSB set")
	}

	op = new(OpaquePacket)
	if tagByte&0x40 == 0 {
		// Old format packet
		op.Tag = (tagByte & 0x3f) >> 2
		lengthType := tagByte & 3
		if lengthType == 3 {
			// Indeterminate length: the packet extends to the end of the input.
			op.Contents = append([]byte(nil), buf[n:]...)
			n = len(buf)
		} else {
			lengthBytes := 1 << lengthType
			if len(buf) < n+lengthBytes {
				return nil, 0, errors.MalformedPacketError("truncated old format length")
			}
			var length int64
			for i := 0; i < lengthBytes; i++ {
				length <<= 8
				length |= int64(buf[n+i])
			}
			n += lengthBytes
			if int64(len(buf)-n) < length {
				return nil, 0, errors.MalformedPacketError("truncated packet body")
			}
			op.Contents = append([]byte(nil), buf[n:n+int(length)]...)
			n += int(length)
		}
	} else {
		// New format packet
		op.Tag = tagByte & 0x3f
		op.NewFormat = true
		var contents []byte
		for first := true; ; first = false {
			length, isPartial, ln, err := readLength(buf[n:])
			if err != nil {
				return nil, 0, err
			}
			n += ln
			if isPartial {
				if !packetType(op.Tag).allowsPartialLength() {
					return nil, 0, errors.MalformedPacketError("partial length on packet type " + strconv.Itoa(int(op.Tag)))
				}
				if first && length < 512 {
					return nil, 0, errors.MalformedPacketError("first partial body chunk is shorter than 512 bytes")
				}
			}
			if int64(len(buf)-n) < length {
				return nil, 0, errors.MalformedPacketError("truncated packet body")
			}
			contents = append(contents, buf[n:n+int(length)]...)
			n += int(length)
			if !isPartial {
				break
			}
		}
		if contents == nil {
			contents = []byte{}
		}
		op.Contents = contents
	}
	if op.Tag == 0 {
		return nil, 0, errors.MalformedPacketError("reserved packet type 0")
	}
	return op, n, nil
}

// readLength decodes a new format length field from the start of buf. See
// RFC 9580, section 4.2.1.
func readLength(buf []byte) (length int64, isPartial bool, n int, err error) {
	if len(buf) == 0 {
		return 0, false, 0, errors.MalformedPacketError("missing packet length")
	}
	switch {
	case buf[0] < 192:
		return int64(buf[0]), false, 1, nil
	case buf[0] < 224:
		if len(buf) < 2 {
			return 0, false, 0, errors.MalformedPacketError("truncated two-octet length")
		}
		length = int64(buf[0]-192)<<8 + int64(buf[1]) + 192
		return length, false, 2, nil
	case buf[0] < 255:
		return int64(1) << (buf[0] & 0x1f), true, 1, nil
	default:
		if len(buf) < 5 {
			return 0, false, 0, errors.MalformedPacketError("truncated five-octet length")
		}
		length = int64(buf[1])<<24 | int64(buf[2])<<16 | int64(buf[3])<<8 | int64(buf[4])
		return length, false, 5, nil
	}
}

// Reader reads typed packets from a buffer. Trust, marker and padding
// packets are skipped, as are the non-critical packet types 40 to 63.
// Signatures whose version is not understood are also skipped, since a
// keyring may legitimately carry them.
type Reader struct {
	or *OpaqueReader
	q  []Packet
}

// NewReader returns a typed packet reader over buf.
func NewReader(buf []byte) *Reader {
	return &Reader{or: NewOpaqueReader(buf)}
}

// Next returns the next packet or io.EOF. An UnsupportedAlgorithm error on
// a public key is not returned: the key is returned with the error
// recorded, so that the rest of the certificate can still be read. A
// signature with an unsupported algorithm or an unknown critical subpacket
// is returned likewise, see Signature.Unusable.
func (r *Reader) Next() (p Packet, err error) {
	if len(r.q) > 0 {
		p = r.q[len(r.q)-1]
		r.q = r.q[:len(r.q)-1]
		return p, nil
	}
	for {
		op, err := r.or.Next()
		if err != nil {
			return nil, err
		}
		switch t := packetType(op.Tag); {
		case t == packetTypeTrust, t == packetTypeMarker, t == packetPadding, t >= firstNonCriticalPacketType:
			logger.KV(xlog.DEBUG, "reason", "skip", "tag", op.Tag)
			continue
		case t == packetTypeSignature && !signatureVersionKnown(op.Contents):
			logger.KV(xlog.DEBUG, "reason", "skip_signature_version", "len", len(op.Contents))
			continue
		}
		p, err = op.Parse()
		if err != nil {
			if pk, ok := p.(*PublicKey); ok && errors.KindOf(err) == errors.UnsupportedAlgorithm {
				return pk, nil
			}
			if sig, ok := p.(*Signature); ok && skippableSignatureError(err) {
				logger.KV(xlog.DEBUG, "reason", "unusable_signature", "err", err.Error())
				sig.unusable = err
				return sig, nil
			}
			return nil, err
		}
		return p, nil
	}
}

// Unread pushes p back so that the next call to Next returns it.
func (r *Reader) Unread(p Packet) {
	r.q = append(r.q, p)
}

// Reset rewinds the reader to the start of the buffer.
func (r *Reader) Reset() {
	r.or.Reset()
	r.q = nil
}

func signatureVersionKnown(body []byte) bool {
	if len(body) == 0 {
		return true
	}
	switch body[0] {
	case 3, 4, 6:
		return true
	}
	return false
}

// skippableSignatureError reports whether a keyring signature that failed
// to parse is kept as unusable rather than failing the whole keyring.
func skippableSignatureError(err error) bool {
	switch errors.KindOf(err) {
	case errors.UnsupportedAlgorithm, errors.UnsupportedCriticalSubpacket:
		return true
	}
	return false
}
