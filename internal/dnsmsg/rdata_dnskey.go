package dnsmsg

import (
	"fmt"

	"github.com/duskcoil/dnsdig/internal/wire"
)

// DNSKEYRData is the shape shared by DNSKEY (RFC 4034 §2) and CDNSKEY
// (RFC 7344 §3.2).
type DNSKEYRData struct {
	RRType    QType
	Flags     uint16
	Protocol  uint8
	Algorithm DNSSECAlgorithm
	PublicKey []byte
}

func (r DNSKEYRData) Type() QType { return r.RRType }

func (r DNSKEYRData) Marshal(b *wire.Builder) error {
	b.WriteUint16(r.Flags)
	b.WriteUint8(r.Protocol)
	b.WriteUint8(uint8(r.Algorithm))
	b.WriteBytes(r.PublicKey)
	return nil
}

// IsZoneKey reports whether the Zone Key flag bit (bit 7) is set.
func (r DNSKEYRData) IsZoneKey() bool { return r.Flags&0x0100 != 0 }

// IsSecureEntryPoint reports whether the SEP flag bit (bit 15) is set.
func (r DNSKEYRData) IsSecureEntryPoint() bool { return r.Flags&0x0001 != 0 }

func (r DNSKEYRData) String() string {
	return fmt.Sprintf("%d %d %s %s", r.Flags, r.Protocol, r.Algorithm, wire.Base64String(r.PublicKey))
}

func decodeDNSKEYFamily(c *wire.Cursor, rdlen int, t QType) (RData, error) {
	flags, err := c.ReadUint16()
	if err != nil {
		return nil, fmt.Errorf("dnskey flags: %w", err)
	}
	protocol, err := c.ReadUint8()
	if err != nil {
		return nil, fmt.Errorf("dnskey protocol: %w", err)
	}
	alg, err := c.ReadUint8()
	if err != nil {
		return nil, fmt.Errorf("dnskey algorithm: %w", err)
	}
	if rdlen < 4 {
		return nil, fmt.Errorf("%w: dnskey rdlength too short", ErrRDLengthOverrun)
	}
	key, err := c.ReadBytes(rdlen - 4)
	if err != nil {
		return nil, fmt.Errorf("dnskey public key: %w", err)
	}
	return DNSKEYRData{RRType: t, Flags: flags, Protocol: protocol, Algorithm: DNSSECAlgorithm(alg), PublicKey: key}, nil
}
