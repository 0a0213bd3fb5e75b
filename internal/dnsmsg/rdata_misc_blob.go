package dnsmsg

import (
	"fmt"

	"github.com/duskcoil/dnsdig/internal/wire"
)

// DHCIDRData associates a DHCP client with a DNS name (RFC 4701 §3.1). The
// payload is an opaque digest; this codebase does not interpret the
// identifier type or digest algorithm beyond carrying the raw bytes.
type DHCIDRData struct {
	Data []byte
}

func (r DHCIDRData) Type() QType                   { return TypeDHCID }
func (r DHCIDRData) Marshal(b *wire.Builder) error { b.WriteBytes(r.Data); return nil }
func (r DHCIDRData) String() string                { return wire.Base64String(r.Data) }

func decodeDHCID(c *wire.Cursor, rdlen int) (RData, error) {
	data, err := c.ReadBytes(rdlen)
	if err != nil {
		return nil, fmt.Errorf("dhcid data: %w", err)
	}
	return DHCIDRData{Data: data}, nil
}

// HIPRData separates a host's identity from its locators (RFC 8005 §5).
type HIPRData struct {
	PKAlgorithm uint8
	HIT         []byte
	PublicKey   []byte
	RendezvousServers []string
}

func (r HIPRData) Type() QType { return TypeHIP }

func (r HIPRData) Marshal(b *wire.Builder) error {
	b.WriteUint8(uint8(len(r.HIT)))
	b.WriteUint8(r.PKAlgorithm)
	b.WriteUint16(uint16(len(r.PublicKey)))
	b.WriteBytes(r.HIT)
	b.WriteBytes(r.PublicKey)
	for _, rvs := range r.RendezvousServers {
		b.WriteBytes([]byte(rvs))
	}
	return nil
}

func (r HIPRData) String() string {
	return fmt.Sprintf("%d %s %s", r.PKAlgorithm, wire.HexString(r.HIT), wire.Base64String(r.PublicKey))
}

func decodeHIP(c *wire.Cursor, rdlen int) (RData, error) {
	start := c.Off
	hitLen, err := c.ReadUint8()
	if err != nil {
		return nil, fmt.Errorf("hip hit length: %w", err)
	}
	pkAlg, err := c.ReadUint8()
	if err != nil {
		return nil, fmt.Errorf("hip pk algorithm: %w", err)
	}
	pkLen, err := c.ReadUint16()
	if err != nil {
		return nil, fmt.Errorf("hip pk length: %w", err)
	}
	hit, err := c.ReadBytes(int(hitLen))
	if err != nil {
		return nil, fmt.Errorf("hip hit: %w", err)
	}
	pk, err := c.ReadBytes(int(pkLen))
	if err != nil {
		return nil, fmt.Errorf("hip public key: %w", err)
	}
	consumed := c.Off - start
	if consumed > rdlen {
		return nil, fmt.Errorf("%w: hip fixed fields overran rdlength", ErrRDLengthOverrun)
	}
	rest, err := c.ReadBytes(rdlen - consumed)
	if err != nil {
		return nil, fmt.Errorf("hip rendezvous servers: %w", err)
	}
	return HIPRData{PKAlgorithm: pkAlg, HIT: hit, PublicKey: pk, RendezvousServers: []string{string(rest)}}, nil
}

// OPENPGPKEYRData carries an OpenPGP transferable public key (RFC 7929 §2).
type OPENPGPKEYRData struct {
	Key []byte
}

func (r OPENPGPKEYRData) Type() QType                   { return TypeOPENPGPKEY }
func (r OPENPGPKEYRData) Marshal(b *wire.Builder) error { b.WriteBytes(r.Key); return nil }
func (r OPENPGPKEYRData) String() string                { return wire.Base64String(r.Key) }

func decodeOPENPGPKEY(c *wire.Cursor, rdlen int) (RData, error) {
	key, err := c.ReadBytes(rdlen)
	if err != nil {
		return nil, fmt.Errorf("openpgpkey key: %w", err)
	}
	return OPENPGPKEYRData{Key: key}, nil
}

// CSYNCRData requests synchronization of child-side data into the parent
// zone (RFC 7477 §2.1.1).
type CSYNCRData struct {
	SOASerial uint32
	Flags     uint16
	Types     TypeBitmap
}

func (r CSYNCRData) Type() QType { return TypeCSYNC }

func (r CSYNCRData) Marshal(b *wire.Builder) error {
	b.WriteUint32(r.SOASerial)
	b.WriteUint16(r.Flags)
	EncodeTypeBitmap(b, r.Types.Types)
	return nil
}

func (r CSYNCRData) String() string {
	return fmt.Sprintf("%d %d %s", r.SOASerial, r.Flags, r.Types)
}

func decodeCSYNC(c *wire.Cursor, rdlen int) (RData, error) {
	serial, err := c.ReadUint32()
	if err != nil {
		return nil, fmt.Errorf("csync soa serial: %w", err)
	}
	flags, err := c.ReadUint16()
	if err != nil {
		return nil, fmt.Errorf("csync flags: %w", err)
	}
	types, err := DecodeTypeBitmap(c, rdlen-6)
	if err != nil {
		return nil, err
	}
	return CSYNCRData{SOASerial: serial, Flags: flags, Types: types}, nil
}

// ZONEMDRData carries a digest of zone contents (RFC 8976 §2).
type ZONEMDRData struct {
	Serial uint32
	Scheme uint8
	HashAlgorithm uint8
	Digest []byte
}

func (r ZONEMDRData) Type() QType { return TypeZONEMD }

func (r ZONEMDRData) Marshal(b *wire.Builder) error {
	b.WriteUint32(r.Serial)
	b.WriteUint8(r.Scheme)
	b.WriteUint8(r.HashAlgorithm)
	b.WriteBytes(r.Digest)
	return nil
}

func (r ZONEMDRData) String() string {
	return fmt.Sprintf("%d %d %d %s", r.Serial, r.Scheme, r.HashAlgorithm, wire.HexString(r.Digest))
}

func decodeZONEMD(c *wire.Cursor, rdlen int) (RData, error) {
	serial, err := c.ReadUint32()
	if err != nil {
		return nil, fmt.Errorf("zonemd serial: %w", err)
	}
	scheme, err := c.ReadUint8()
	if err != nil {
		return nil, fmt.Errorf("zonemd scheme: %w", err)
	}
	hashAlg, err := c.ReadUint8()
	if err != nil {
		return nil, fmt.Errorf("zonemd hash algorithm: %w", err)
	}
	if rdlen < 6 {
		return nil, fmt.Errorf("%w: zonemd rdlength too short", ErrRDLengthOverrun)
	}
	digest, err := c.ReadBytes(rdlen - 6)
	if err != nil {
		return nil, fmt.Errorf("zonemd digest: %w", err)
	}
	return ZONEMDRData{Serial: serial, Scheme: scheme, HashAlgorithm: hashAlg, Digest: digest}, nil
}
