package dnsmsg

import (
	"fmt"

	"github.com/duskcoil/dnsdig/internal/dnsname"
	"github.com/duskcoil/dnsdig/internal/wire"
)

// SVCBParam is a single key/value parameter within an SVCB or HTTPS record
// (RFC 9460 §2.1).
type SVCBParam struct {
	Key   SVCBParamKey
	Value []byte
}

// SVCBRData is the shape shared by SVCB and HTTPS records (RFC 9460 §2).
type SVCBRData struct {
	RRType       QType
	Priority     uint16
	Target       dnsname.Name
	Params       []SVCBParam
}

func (r SVCBRData) Type() QType { return r.RRType }

func (r SVCBRData) Marshal(b *wire.Builder) error {
	b.WriteUint16(r.Priority)
	encoded, err := dnsname.Encode(r.Target)
	if err != nil {
		return fmt.Errorf("svcb target: %w", err)
	}
	b.WriteBytes(encoded)
	for _, p := range r.Params {
		b.WriteUint16(uint16(p.Key))
		b.WriteUint16(uint16(len(p.Value)))
		b.WriteBytes(p.Value)
	}
	return nil
}

func (r SVCBRData) String() string {
	s := fmt.Sprintf("%d %s", r.Priority, r.Target)
	for _, p := range r.Params {
		s += fmt.Sprintf(" %s=%s", p.Key, wire.HexString(p.Value))
	}
	return s
}

func decodeSVCBFamily(msg []byte, c *wire.Cursor, rdlen int, t QType) (RData, error) {
	start := c.Off
	priority, err := c.ReadUint16()
	if err != nil {
		return nil, fmt.Errorf("svcb priority: %w", err)
	}
	target, err := dnsname.Decode(msg, &c.Off)
	if err != nil {
		return nil, fmt.Errorf("svcb target: %w", err)
	}
	end := start + rdlen
	var params []SVCBParam
	for c.Off < end {
		key, err := c.ReadUint16()
		if err != nil {
			return nil, fmt.Errorf("svcb param key: %w", err)
		}
		vlen, err := c.ReadUint16()
		if err != nil {
			return nil, fmt.Errorf("svcb param length: %w", err)
		}
		value, err := c.ReadBytes(int(vlen))
		if err != nil {
			return nil, fmt.Errorf("svcb param value: %w", err)
		}
		params = append(params, SVCBParam{Key: SVCBParamKey(key), Value: value})
	}
	if c.Off != end {
		return nil, fmt.Errorf("%w: svcb params overran rdlength", ErrRDLengthOverrun)
	}
	return SVCBRData{RRType: t, Priority: priority, Target: target, Params: params}, nil
}

// EUI48RData carries a 48-bit MAC address (RFC 7043 §3.1).
type EUI48RData struct {
	Addr [6]byte
}

func (r EUI48RData) Type() QType                   { return TypeEUI48 }
func (r EUI48RData) Marshal(b *wire.Builder) error { b.WriteBytes(r.Addr[:]); return nil }
func (r EUI48RData) String() string {
	return fmt.Sprintf("%02x-%02x-%02x-%02x-%02x-%02x", r.Addr[0], r.Addr[1], r.Addr[2], r.Addr[3], r.Addr[4], r.Addr[5])
}

func decodeEUI48(c *wire.Cursor) (RData, error) {
	b, err := c.ReadBytes(6)
	if err != nil {
		return nil, fmt.Errorf("eui48 address: %w", err)
	}
	var out EUI48RData
	copy(out.Addr[:], b)
	return out, nil
}

// EUI64RData carries a 64-bit MAC address (RFC 7043 §4.1).
type EUI64RData struct {
	Addr [8]byte
}

func (r EUI64RData) Type() QType                   { return TypeEUI64 }
func (r EUI64RData) Marshal(b *wire.Builder) error { b.WriteBytes(r.Addr[:]); return nil }
func (r EUI64RData) String() string {
	return fmt.Sprintf("%02x-%02x-%02x-%02x-%02x-%02x-%02x-%02x",
		r.Addr[0], r.Addr[1], r.Addr[2], r.Addr[3], r.Addr[4], r.Addr[5], r.Addr[6], r.Addr[7])
}

func decodeEUI64(c *wire.Cursor) (RData, error) {
	b, err := c.ReadBytes(8)
	if err != nil {
		return nil, fmt.Errorf("eui64 address: %w", err)
	}
	var out EUI64RData
	copy(out.Addr[:], b)
	return out, nil
}
