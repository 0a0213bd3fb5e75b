package dnsmsg

import (
	"fmt"

	"github.com/duskcoil/dnsdig/internal/dnsname"
	"github.com/duskcoil/dnsdig/internal/wire"
)

// SOARData is a Start-Of-Authority record (RFC 1035 §3.3.13).
type SOARData struct {
	MName   dnsname.Name
	RName   dnsname.Name
	Serial  uint32
	Refresh uint32
	Retry   uint32
	Expire  uint32
	Minimum uint32
}

func (r SOARData) Type() QType { return TypeSOA }

func (r SOARData) Marshal(b *wire.Builder) error {
	m, err := dnsname.Encode(r.MName)
	if err != nil {
		return fmt.Errorf("soa mname: %w", err)
	}
	rn, err := dnsname.Encode(r.RName)
	if err != nil {
		return fmt.Errorf("soa rname: %w", err)
	}
	b.WriteBytes(m)
	b.WriteBytes(rn)
	b.WriteUint32(r.Serial)
	b.WriteUint32(r.Refresh)
	b.WriteUint32(r.Retry)
	b.WriteUint32(r.Expire)
	b.WriteUint32(r.Minimum)
	return nil
}

func (r SOARData) String() string {
	return fmt.Sprintf("%s %s %d %d %d %d %d", r.MName, r.RName, r.Serial, r.Refresh, r.Retry, r.Expire, r.Minimum)
}

func decodeSOA(msg []byte, c *wire.Cursor) (RData, error) {
	mname, err := dnsname.Decode(msg, &c.Off)
	if err != nil {
		return nil, fmt.Errorf("soa mname: %w", err)
	}
	rname, err := dnsname.Decode(msg, &c.Off)
	if err != nil {
		return nil, fmt.Errorf("soa rname: %w", err)
	}
	serial, err := c.ReadUint32()
	if err != nil {
		return nil, fmt.Errorf("soa serial: %w", err)
	}
	refresh, err := c.ReadUint32()
	if err != nil {
		return nil, fmt.Errorf("soa refresh: %w", err)
	}
	retry, err := c.ReadUint32()
	if err != nil {
		return nil, fmt.Errorf("soa retry: %w", err)
	}
	expire, err := c.ReadUint32()
	if err != nil {
		return nil, fmt.Errorf("soa expire: %w", err)
	}
	minimum, err := c.ReadUint32()
	if err != nil {
		return nil, fmt.Errorf("soa minimum: %w", err)
	}
	return SOARData{MName: mname, RName: rname, Serial: serial, Refresh: refresh, Retry: retry, Expire: expire, Minimum: minimum}, nil
}
