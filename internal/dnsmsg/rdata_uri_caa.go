package dnsmsg

import (
	"fmt"

	"github.com/duskcoil/dnsdig/internal/wire"
)

// URIRData maps a priority/weight pair to a target URI (RFC 7553 §4.2).
type URIRData struct {
	Priority uint16
	Weight   uint16
	Target   string
}

func (r URIRData) Type() QType { return TypeURI }

func (r URIRData) Marshal(b *wire.Builder) error {
	b.WriteUint16(r.Priority)
	b.WriteUint16(r.Weight)
	b.WriteBytes([]byte(r.Target))
	return nil
}

func (r URIRData) String() string { return fmt.Sprintf("%d %d %q", r.Priority, r.Weight, r.Target) }

func decodeURI(c *wire.Cursor, rdlen int) (RData, error) {
	priority, err := c.ReadUint16()
	if err != nil {
		return nil, fmt.Errorf("uri priority: %w", err)
	}
	weight, err := c.ReadUint16()
	if err != nil {
		return nil, fmt.Errorf("uri weight: %w", err)
	}
	if rdlen < 4 {
		return nil, fmt.Errorf("%w: uri rdlength too short", ErrRDLengthOverrun)
	}
	target, err := c.ReadBytes(rdlen - 4)
	if err != nil {
		return nil, fmt.Errorf("uri target: %w", err)
	}
	return URIRData{Priority: priority, Weight: weight, Target: string(target)}, nil
}

// CAA tag values (RFC 8659 §4).
const (
	CAATagIssue     = "issue"
	CAATagIssueWild = "issuewild"
	CAATagIodef     = "iodef"
)

// CAARData constrains which CAs may issue certificates for a name (RFC 8659 §4).
type CAARData struct {
	Flags uint8
	Tag   string
	Value string
}

func (r CAARData) Type() QType { return TypeCAA }

func (r CAARData) Marshal(b *wire.Builder) error {
	b.WriteUint8(r.Flags)
	b.WriteCharString(r.Tag)
	b.WriteBytes([]byte(r.Value))
	return nil
}

func (r CAARData) String() string { return fmt.Sprintf("%d %s %q", r.Flags, r.Tag, r.Value) }

// IsCritical reports whether the issuer-critical flag bit is set; per
// RFC 8659 §4 a validator that doesn't recognize Tag should treat the
// record as CA-prohibited when this is set.
func (r CAARData) IsCritical() bool { return r.Flags&0x80 != 0 }

func decodeCAA(c *wire.Cursor, rdlen int) (RData, error) {
	start := c.Off
	flags, err := c.ReadUint8()
	if err != nil {
		return nil, fmt.Errorf("caa flags: %w", err)
	}
	tag, err := c.ReadCharString()
	if err != nil {
		return nil, fmt.Errorf("caa tag: %w", err)
	}
	consumed := c.Off - start
	if consumed > rdlen {
		return nil, fmt.Errorf("%w: caa tag overran rdlength", ErrRDLengthOverrun)
	}
	value, err := c.ReadBytes(rdlen - consumed)
	if err != nil {
		return nil, fmt.Errorf("caa value: %w", err)
	}
	return CAARData{Flags: flags, Tag: tag, Value: string(value)}, nil
}

// UnknownRData is the RFC 3597 fallback for RR types this codebase does not
// have a dedicated decoder for: the raw RDATA bytes, carried unopened.
type UnknownRData struct {
	RRType QType
	Raw    []byte
}

func (r UnknownRData) Type() QType                   { return r.RRType }
func (r UnknownRData) Marshal(b *wire.Builder) error { b.WriteBytes(r.Raw); return nil }
func (r UnknownRData) String() string                { return fmt.Sprintf("\\# %d %s", len(r.Raw), wire.HexString(r.Raw)) }

func decodeUnknown(c *wire.Cursor, rdlen int, t QType) (RData, error) {
	raw, err := c.ReadBytes(rdlen)
	if err != nil {
		return nil, fmt.Errorf("unknown rdata: %w", err)
	}
	return UnknownRData{RRType: t, Raw: raw}, nil
}
