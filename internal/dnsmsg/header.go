package dnsmsg

import (
	"fmt"

	"github.com/duskcoil/dnsdig/internal/wire"
)

// Header is the fixed 12-byte DNS message header (RFC 1035 §4.1.1).
type Header struct {
	ID      uint16
	Flags   uint16
	QDCount uint16
	ANCount uint16
	NSCount uint16
	ARCount uint16
}

// NewQueryHeader builds a header for a single outbound query with the given
// ID, opcode and recursion-desired setting. AD/CD/Z bits are left for the
// caller to OR in afterward (see WithFlag).
func NewQueryHeader(id uint16, op Opcode, rd bool) Header {
	h := Header{ID: id, QDCount: 1}
	h.Flags |= uint16(op) << opcodeShift & MaskOpcode
	if rd {
		h.Flags |= FlagRD
	}
	return h
}

// WithFlag returns a copy of h with the given flag bit set or cleared.
func (h Header) WithFlag(flag uint16, set bool) Header {
	if set {
		h.Flags |= flag
	} else {
		h.Flags &^= flag
	}
	return h
}

// QR reports whether this header marks a response (true) or query (false).
func (h Header) QR() bool { return h.Flags&FlagQR != 0 }

// Opcode extracts the 4-bit opcode field.
func (h Header) Opcode() Opcode { return Opcode((h.Flags & MaskOpcode) >> opcodeShift) }

// RCode extracts the 4-bit response code field.
func (h Header) RCode() RCode { return RCode(h.Flags & MaskRCode) }

// SetRCode returns a copy of h with the RCODE field replaced.
func (h Header) SetRCode(r RCode) Header {
	h.Flags = (h.Flags &^ MaskRCode) | (uint16(r) & MaskRCode)
	return h
}

func (h Header) hasFlag(f uint16) bool { return h.Flags&f != 0 }

// AA, TC, RD, RA, AD, CD read the corresponding single-bit header flags.
func (h Header) AA() bool { return h.hasFlag(FlagAA) }
func (h Header) TC() bool { return h.hasFlag(FlagTC) }
func (h Header) RD() bool { return h.hasFlag(FlagRD) }
func (h Header) RA() bool { return h.hasFlag(FlagRA) }
func (h Header) AD() bool { return h.hasFlag(FlagAD) }
func (h Header) CD() bool { return h.hasFlag(FlagCD) }

// Marshal serializes the header to its 12-byte wire form.
func (h Header) Marshal(b *wire.Builder) {
	b.WriteUint16(h.ID)
	b.WriteUint16(h.Flags)
	b.WriteUint16(h.QDCount)
	b.WriteUint16(h.ANCount)
	b.WriteUint16(h.NSCount)
	b.WriteUint16(h.ARCount)
}

// ParseHeader reads the fixed 12-byte header from the front of c.
func ParseHeader(c *wire.Cursor) (Header, error) {
	var h Header
	var err error
	if h.ID, err = c.ReadUint16(); err != nil {
		return Header{}, fmt.Errorf("header id: %w", err)
	}
	if h.Flags, err = c.ReadUint16(); err != nil {
		return Header{}, fmt.Errorf("header flags: %w", err)
	}
	if h.QDCount, err = c.ReadUint16(); err != nil {
		return Header{}, fmt.Errorf("header qdcount: %w", err)
	}
	if h.ANCount, err = c.ReadUint16(); err != nil {
		return Header{}, fmt.Errorf("header ancount: %w", err)
	}
	if h.NSCount, err = c.ReadUint16(); err != nil {
		return Header{}, fmt.Errorf("header nscount: %w", err)
	}
	if h.ARCount, err = c.ReadUint16(); err != nil {
		return Header{}, fmt.Errorf("header arcount: %w", err)
	}
	if !h.Opcode().known() {
		return Header{}, fmt.Errorf("%w: %d", ErrUnknownOpcode, h.Opcode())
	}
	return h, nil
}
