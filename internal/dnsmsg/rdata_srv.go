package dnsmsg

import (
	"fmt"

	"github.com/duskcoil/dnsdig/internal/dnsname"
	"github.com/duskcoil/dnsdig/internal/wire"
)

// SRVRData locates services via SRV (RFC 2782).
type SRVRData struct {
	Priority uint16
	Weight   uint16
	Port     uint16
	Target   dnsname.Name
}

func (r SRVRData) Type() QType { return TypeSRV }

func (r SRVRData) Marshal(b *wire.Builder) error {
	encoded, err := dnsname.Encode(r.Target)
	if err != nil {
		return fmt.Errorf("srv target: %w", err)
	}
	b.WriteUint16(r.Priority)
	b.WriteUint16(r.Weight)
	b.WriteUint16(r.Port)
	b.WriteBytes(encoded)
	return nil
}

func (r SRVRData) String() string {
	return fmt.Sprintf("%d %d %d %s", r.Priority, r.Weight, r.Port, r.Target)
}

func decodeSRV(msg []byte, c *wire.Cursor) (RData, error) {
	priority, err := c.ReadUint16()
	if err != nil {
		return nil, fmt.Errorf("srv priority: %w", err)
	}
	weight, err := c.ReadUint16()
	if err != nil {
		return nil, fmt.Errorf("srv weight: %w", err)
	}
	port, err := c.ReadUint16()
	if err != nil {
		return nil, fmt.Errorf("srv port: %w", err)
	}
	target, err := dnsname.Decode(msg, &c.Off)
	if err != nil {
		return nil, fmt.Errorf("srv target: %w", err)
	}
	return SRVRData{Priority: priority, Weight: weight, Port: port, Target: target}, nil
}
