package dnsmsg

import (
	"fmt"
	"net"

	"github.com/duskcoil/dnsdig/internal/wire"
)

// ARecord is an IPv4 address record (RFC 1035 §3.4.1).
type ARecord struct {
	Addr net.IP
}

func (r ARecord) Type() QType { return TypeA }

func (r ARecord) Marshal(b *wire.Builder) error {
	ip4 := r.Addr.To4()
	if ip4 == nil {
		return fmt.Errorf("A record address %s is not IPv4", r.Addr)
	}
	b.WriteBytes(ip4)
	return nil
}

func (r ARecord) String() string { return r.Addr.String() }

func decodeA(c *wire.Cursor) (RData, error) {
	b, err := c.ReadBytes(4)
	if err != nil {
		return nil, fmt.Errorf("A address: %w", err)
	}
	return ARecord{Addr: net.IP(b)}, nil
}

// AAAARecord is an IPv6 address record (RFC 3596 §2.2).
type AAAARecord struct {
	Addr net.IP
}

func (r AAAARecord) Type() QType { return TypeAAAA }

func (r AAAARecord) Marshal(b *wire.Builder) error {
	ip6 := r.Addr.To16()
	if ip6 == nil {
		return fmt.Errorf("AAAA record address %s is not valid", r.Addr)
	}
	b.WriteBytes(ip6)
	return nil
}

func (r AAAARecord) String() string { return r.Addr.String() }

func decodeAAAA(c *wire.Cursor) (RData, error) {
	b, err := c.ReadBytes(16)
	if err != nil {
		return nil, fmt.Errorf("AAAA address: %w", err)
	}
	return AAAARecord{Addr: net.IP(b)}, nil
}
