package dnsmsg

import (
	"fmt"

	"github.com/duskcoil/dnsdig/internal/wire"
)

// Packet is a complete DNS message: header plus its four sections
// (RFC 1035 §4.1).
type Packet struct {
	Header     Header
	Questions  []Question
	Answer     []ResourceRecord
	Authority  []ResourceRecord
	Additional []ResourceRecord
}

// OPT returns the packet's EDNS OPT pseudo-record from the additional
// section, if present.
func (p Packet) OPT() (ResourceRecord, bool) {
	for _, rr := range p.Additional {
		if rr.Type == TypeOPT {
			return rr, true
		}
	}
	return ResourceRecord{}, false
}

// Marshal serializes the full packet to wire format, fixing up the header's
// section counts from the actual slice lengths.
func (p Packet) Marshal() ([]byte, error) {
	h := p.Header
	h.QDCount = uint16(len(p.Questions))
	h.ANCount = uint16(len(p.Answer))
	h.NSCount = uint16(len(p.Authority))
	h.ARCount = uint16(len(p.Additional))

	b := wire.NewBuilder(512)
	h.Marshal(b)
	for _, q := range p.Questions {
		if err := q.Marshal(b); err != nil {
			return nil, fmt.Errorf("marshal question: %w", err)
		}
	}
	for _, rr := range p.Answer {
		if err := rr.Marshal(b); err != nil {
			return nil, fmt.Errorf("marshal answer record: %w", err)
		}
	}
	for _, rr := range p.Authority {
		if err := rr.Marshal(b); err != nil {
			return nil, fmt.Errorf("marshal authority record: %w", err)
		}
	}
	for _, rr := range p.Additional {
		if err := rr.Marshal(b); err != nil {
			return nil, fmt.Errorf("marshal additional record: %w", err)
		}
	}
	return b.Bytes(), nil
}

// ParsePacket decodes a full DNS message from its wire bytes.
func ParsePacket(msg []byte) (Packet, error) {
	c := wire.NewCursor(msg)
	h, err := ParseHeader(c)
	if err != nil {
		return Packet{}, fmt.Errorf("parse header: %w", err)
	}
	if !h.QR() {
		return Packet{}, fmt.Errorf("%w: message carries the query bit, not a response", ErrUnknownPacketType)
	}

	p := Packet{Header: h}
	off := c.Off

	for i := uint16(0); i < h.QDCount; i++ {
		q, err := ParseQuestion(msg, &off)
		if err != nil {
			return Packet{}, fmt.Errorf("%w: question %d: %v", ErrTruncatedMessage, i, err)
		}
		p.Questions = append(p.Questions, q)
	}
	for i := uint16(0); i < h.ANCount; i++ {
		rr, err := ParseResourceRecord(msg, &off)
		if err != nil {
			return Packet{}, fmt.Errorf("%w: answer record %d: %v", ErrTruncatedMessage, i, err)
		}
		p.Answer = append(p.Answer, rr)
	}
	for i := uint16(0); i < h.NSCount; i++ {
		rr, err := ParseResourceRecord(msg, &off)
		if err != nil {
			return Packet{}, fmt.Errorf("%w: authority record %d: %v", ErrTruncatedMessage, i, err)
		}
		p.Authority = append(p.Authority, rr)
	}
	for i := uint16(0); i < h.ARCount; i++ {
		rr, err := ParseResourceRecord(msg, &off)
		if err != nil {
			return Packet{}, fmt.Errorf("%w: additional record %d: %v", ErrTruncatedMessage, i, err)
		}
		p.Additional = append(p.Additional, rr)
	}
	return p, nil
}
