package dnsmsg

import (
	"fmt"
	"net"

	"github.com/duskcoil/dnsdig/internal/dnsname"
	"github.com/duskcoil/dnsdig/internal/wire"
)

// Gateway types for IPSECKEY (RFC 4025 §2.3).
const (
	GatewayTypeNone   uint8 = 0
	GatewayTypeIPv4   uint8 = 1
	GatewayTypeIPv6   uint8 = 2
	GatewayTypeDomain uint8 = 3
)

// IPSECKEYRData publishes an IPsec gateway and public key (RFC 4025 §2).
type IPSECKEYRData struct {
	Precedence  uint8
	GatewayType uint8
	Algorithm   uint8
	GatewayIP   net.IP
	GatewayName dnsname.Name
	PublicKey   []byte
}

func (r IPSECKEYRData) Type() QType { return TypeIPSECKEY }

func (r IPSECKEYRData) Marshal(b *wire.Builder) error {
	b.WriteUint8(r.Precedence)
	b.WriteUint8(r.GatewayType)
	b.WriteUint8(r.Algorithm)
	switch r.GatewayType {
	case GatewayTypeIPv4:
		b.WriteBytes(r.GatewayIP.To4())
	case GatewayTypeIPv6:
		b.WriteBytes(r.GatewayIP.To16())
	case GatewayTypeDomain:
		encoded, err := dnsname.Encode(r.GatewayName)
		if err != nil {
			return fmt.Errorf("ipseckey gateway name: %w", err)
		}
		b.WriteBytes(encoded)
	}
	b.WriteBytes(r.PublicKey)
	return nil
}

func (r IPSECKEYRData) String() string {
	gw := "."
	switch r.GatewayType {
	case GatewayTypeIPv4, GatewayTypeIPv6:
		gw = r.GatewayIP.String()
	case GatewayTypeDomain:
		gw = r.GatewayName.String()
	}
	return fmt.Sprintf("%d %d %d %s %s", r.Precedence, r.GatewayType, r.Algorithm, gw, wire.Base64String(r.PublicKey))
}

func decodeIPSECKEY(msg []byte, c *wire.Cursor, rdlen int) (RData, error) {
	start := c.Off
	precedence, err := c.ReadUint8()
	if err != nil {
		return nil, fmt.Errorf("ipseckey precedence: %w", err)
	}
	gwType, err := c.ReadUint8()
	if err != nil {
		return nil, fmt.Errorf("ipseckey gateway type: %w", err)
	}
	alg, err := c.ReadUint8()
	if err != nil {
		return nil, fmt.Errorf("ipseckey algorithm: %w", err)
	}

	var gwIP net.IP
	var gwName dnsname.Name
	switch gwType {
	case GatewayTypeNone:
	case GatewayTypeIPv4:
		b, err := c.ReadBytes(4)
		if err != nil {
			return nil, fmt.Errorf("ipseckey ipv4 gateway: %w", err)
		}
		gwIP = net.IP(b)
	case GatewayTypeIPv6:
		b, err := c.ReadBytes(16)
		if err != nil {
			return nil, fmt.Errorf("ipseckey ipv6 gateway: %w", err)
		}
		gwIP = net.IP(b)
	case GatewayTypeDomain:
		n, err := dnsname.Decode(msg, &c.Off)
		if err != nil {
			return nil, fmt.Errorf("ipseckey gateway name: %w", err)
		}
		gwName = n
	default:
		return nil, fmt.Errorf("ipseckey: unknown gateway type %d", gwType)
	}

	consumed := c.Off - start
	if consumed > rdlen {
		return nil, fmt.Errorf("%w: ipseckey gateway overran rdlength", ErrRDLengthOverrun)
	}
	key, err := c.ReadBytes(rdlen - consumed)
	if err != nil {
		return nil, fmt.Errorf("ipseckey public key: %w", err)
	}
	return IPSECKEYRData{Precedence: precedence, GatewayType: gwType, Algorithm: alg, GatewayIP: gwIP, GatewayName: gwName, PublicKey: key}, nil
}
