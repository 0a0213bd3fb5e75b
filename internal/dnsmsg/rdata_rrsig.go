package dnsmsg

import (
	"fmt"

	"github.com/duskcoil/dnsdig/internal/dnsname"
	"github.com/duskcoil/dnsdig/internal/wire"
)

// RRSIGRData is a DNSSEC signature over an RRset (RFC 4034 §3).
type RRSIGRData struct {
	TypeCovered QType
	Algorithm   DNSSECAlgorithm
	Labels      uint8
	OrigTTL     uint32
	Expiration  uint32
	Inception   uint32
	KeyTag      uint16
	SignerName  dnsname.Name
	Signature   []byte
}

func (r RRSIGRData) Type() QType { return TypeRRSIG }

func (r RRSIGRData) Marshal(b *wire.Builder) error {
	b.WriteUint16(uint16(r.TypeCovered))
	b.WriteUint8(uint8(r.Algorithm))
	b.WriteUint8(r.Labels)
	b.WriteUint32(r.OrigTTL)
	b.WriteUint32(r.Expiration)
	b.WriteUint32(r.Inception)
	b.WriteUint16(r.KeyTag)
	encoded, err := dnsname.Encode(r.SignerName)
	if err != nil {
		return fmt.Errorf("rrsig signer name: %w", err)
	}
	b.WriteBytes(encoded)
	b.WriteBytes(r.Signature)
	return nil
}

func (r RRSIGRData) String() string {
	return fmt.Sprintf("%s %s %d %d %d %d %d %s %s",
		r.TypeCovered, r.Algorithm, r.Labels, r.OrigTTL, r.Expiration, r.Inception, r.KeyTag, r.SignerName, wire.Base64String(r.Signature))
}

func decodeRRSIG(msg []byte, c *wire.Cursor, rdlen int) (RData, error) {
	start := c.Off
	typeCovered, err := c.ReadUint16()
	if err != nil {
		return nil, fmt.Errorf("rrsig type covered: %w", err)
	}
	alg, err := c.ReadUint8()
	if err != nil {
		return nil, fmt.Errorf("rrsig algorithm: %w", err)
	}
	labels, err := c.ReadUint8()
	if err != nil {
		return nil, fmt.Errorf("rrsig labels: %w", err)
	}
	origTTL, err := c.ReadUint32()
	if err != nil {
		return nil, fmt.Errorf("rrsig original ttl: %w", err)
	}
	expiration, err := c.ReadUint32()
	if err != nil {
		return nil, fmt.Errorf("rrsig expiration: %w", err)
	}
	inception, err := c.ReadUint32()
	if err != nil {
		return nil, fmt.Errorf("rrsig inception: %w", err)
	}
	keyTag, err := c.ReadUint16()
	if err != nil {
		return nil, fmt.Errorf("rrsig key tag: %w", err)
	}
	signer, err := dnsname.Decode(msg, &c.Off)
	if err != nil {
		return nil, fmt.Errorf("rrsig signer name: %w", err)
	}
	consumed := c.Off - start
	if consumed > rdlen {
		return nil, fmt.Errorf("%w: rrsig fixed fields overran rdlength", ErrRDLengthOverrun)
	}
	sig, err := c.ReadBytes(rdlen - consumed)
	if err != nil {
		return nil, fmt.Errorf("rrsig signature: %w", err)
	}
	return RRSIGRData{
		TypeCovered: QType(typeCovered), Algorithm: DNSSECAlgorithm(alg), Labels: labels,
		OrigTTL: origTTL, Expiration: expiration, Inception: inception, KeyTag: keyTag,
		SignerName: signer, Signature: sig,
	}, nil
}
