// Package wire provides fixed-width network byte order primitives shared by
// the DNS codec. It has no notion of DNS semantics; it only knows how to
// read and write integers and length-prefixed blobs from a byte cursor.
package wire

import (
	"encoding/base64"
	"encoding/binary"
	"encoding/hex"
	"errors"
)

// ErrShortBuffer is returned whenever a read would run past the end of the
// supplied message.
var ErrShortBuffer = errors.New("wire: unexpected end of buffer")

// Cursor is a read-only view over a DNS message together with a mutable
// read offset. Multiple cursors can share the same underlying Msg (e.g. when
// following a compression pointer), which is why Offset is plain int and not
// baked into the struct that owns the buffer.
type Cursor struct {
	Msg []byte
	Off int
}

// NewCursor returns a Cursor positioned at the start of msg.
func NewCursor(msg []byte) *Cursor {
	return &Cursor{Msg: msg}
}

func (c *Cursor) remaining() int { return len(c.Msg) - c.Off }

// ReadUint8 reads a single byte and advances the cursor.
func (c *Cursor) ReadUint8() (uint8, error) {
	if c.remaining() < 1 {
		return 0, ErrShortBuffer
	}
	b := c.Msg[c.Off]
	c.Off++
	return b, nil
}

// ReadUint16 reads a big-endian uint16 and advances the cursor.
func (c *Cursor) ReadUint16() (uint16, error) {
	if c.remaining() < 2 {
		return 0, ErrShortBuffer
	}
	v := binary.BigEndian.Uint16(c.Msg[c.Off : c.Off+2])
	c.Off += 2
	return v, nil
}

// ReadUint32 reads a big-endian uint32 and advances the cursor.
func (c *Cursor) ReadUint32() (uint32, error) {
	if c.remaining() < 4 {
		return 0, ErrShortBuffer
	}
	v := binary.BigEndian.Uint32(c.Msg[c.Off : c.Off+4])
	c.Off += 4
	return v, nil
}

// ReadBytes reads exactly n bytes and advances the cursor. The returned
// slice is a fresh copy; callers may retain it past the lifetime of the
// message buffer.
func (c *Cursor) ReadBytes(n int) ([]byte, error) {
	if n < 0 || c.remaining() < n {
		return nil, ErrShortBuffer
	}
	out := make([]byte, n)
	copy(out, c.Msg[c.Off:c.Off+n])
	c.Off += n
	return out, nil
}

// ReadCharString reads a DNS character-string: a one-byte length prefix
// followed by that many bytes (RFC 1035 §3.3, used by TXT and others).
func (c *Cursor) ReadCharString() (string, error) {
	n, err := c.ReadUint8()
	if err != nil {
		return "", err
	}
	b, err := c.ReadBytes(int(n))
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Builder accumulates serialized wire bytes.
type Builder struct {
	buf []byte
}

// NewBuilder returns a Builder with capacity preallocated.
func NewBuilder(capacityHint int) *Builder {
	return &Builder{buf: make([]byte, 0, capacityHint)}
}

func (b *Builder) WriteUint8(v uint8) { b.buf = append(b.buf, v) }

func (b *Builder) WriteUint16(v uint16) {
	var tmp [2]byte
	binary.BigEndian.PutUint16(tmp[:], v)
	b.buf = append(b.buf, tmp[:]...)
}

func (b *Builder) WriteUint32(v uint32) {
	var tmp [4]byte
	binary.BigEndian.PutUint32(tmp[:], v)
	b.buf = append(b.buf, tmp[:]...)
}

func (b *Builder) WriteBytes(p []byte) { b.buf = append(b.buf, p...) }

// WriteCharString writes a DNS character-string, splitting s into 255-byte
// chunks if it exceeds the single-byte length prefix's range.
func (b *Builder) WriteCharString(s string) {
	p := []byte(s)
	if len(p) <= 255 {
		b.WriteUint8(uint8(len(p)))
		b.WriteBytes(p)
		return
	}
	for i := 0; i < len(p); i += 255 {
		end := min(i+255, len(p))
		chunk := p[i:end]
		b.WriteUint8(uint8(len(chunk)))
		b.WriteBytes(chunk)
	}
}

// Bytes returns the accumulated buffer.
func (b *Builder) Bytes() []byte { return b.buf }

// Len reports the number of bytes written so far.
func (b *Builder) Len() int { return len(b.buf) }

// HexString renders opaque bytes as lowercase hex, for display of keys,
// signatures, and digests.
func HexString(b []byte) string { return hex.EncodeToString(b) }

// Base64String renders opaque bytes as standard base64, for display of
// DNSKEY/DS-style fields that presentation format conventionally base64s.
func Base64String(b []byte) string { return base64.StdEncoding.EncodeToString(b) }
