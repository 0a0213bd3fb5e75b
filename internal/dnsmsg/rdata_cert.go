package dnsmsg

import (
	"fmt"

	"github.com/duskcoil/dnsdig/internal/wire"
)

// CERTRData carries a certificate or CRL (RFC 4398 §2).
type CERTRData struct {
	CertType uint16
	KeyTag   uint16
	Algorithm DNSSECAlgorithm
	Cert     []byte
}

func (r CERTRData) Type() QType { return TypeCERT }

func (r CERTRData) Marshal(b *wire.Builder) error {
	b.WriteUint16(r.CertType)
	b.WriteUint16(r.KeyTag)
	b.WriteUint8(uint8(r.Algorithm))
	b.WriteBytes(r.Cert)
	return nil
}

func (r CERTRData) String() string {
	return fmt.Sprintf("%d %d %s %s", r.CertType, r.KeyTag, r.Algorithm, wire.Base64String(r.Cert))
}

func decodeCERT(c *wire.Cursor, rdlen int) (RData, error) {
	certType, err := c.ReadUint16()
	if err != nil {
		return nil, fmt.Errorf("cert type: %w", err)
	}
	keyTag, err := c.ReadUint16()
	if err != nil {
		return nil, fmt.Errorf("cert key tag: %w", err)
	}
	alg, err := c.ReadUint8()
	if err != nil {
		return nil, fmt.Errorf("cert algorithm: %w", err)
	}
	if rdlen < 5 {
		return nil, fmt.Errorf("%w: cert rdlength too short", ErrRDLengthOverrun)
	}
	cert, err := c.ReadBytes(rdlen - 5)
	if err != nil {
		return nil, fmt.Errorf("cert data: %w", err)
	}
	return CERTRData{CertType: certType, KeyTag: keyTag, Algorithm: DNSSECAlgorithm(alg), Cert: cert}, nil
}

// APLItem is one address prefix entry within an APL record (RFC 3123 §4).
type APLItem struct {
	AddressFamily uint16
	PrefixLength  uint8
	Negate        bool
	AFDPart       []byte
}

// APLRData is an address prefix list record (RFC 3123).
type APLRData struct {
	Items []APLItem
}

func (r APLRData) Type() QType { return TypeAPL }

func (r APLRData) Marshal(b *wire.Builder) error {
	for _, it := range r.Items {
		b.WriteUint16(it.AddressFamily)
		b.WriteUint8(it.PrefixLength)
		neg := uint8(len(it.AFDPart))
		if it.Negate {
			neg |= 0x80
		}
		b.WriteUint8(neg)
		b.WriteBytes(it.AFDPart)
	}
	return nil
}

func (r APLRData) String() string {
	s := ""
	for i, it := range r.Items {
		if i > 0 {
			s += " "
		}
		if it.Negate {
			s += "!"
		}
		s += fmt.Sprintf("%d:%s/%d", it.AddressFamily, wire.HexString(it.AFDPart), it.PrefixLength)
	}
	return s
}

func decodeAPL(c *wire.Cursor, rdlen int) (RData, error) {
	end := c.Off + rdlen
	var items []APLItem
	for c.Off < end {
		family, err := c.ReadUint16()
		if err != nil {
			return nil, fmt.Errorf("apl family: %w", err)
		}
		prefix, err := c.ReadUint8()
		if err != nil {
			return nil, fmt.Errorf("apl prefix length: %w", err)
		}
		nlen, err := c.ReadUint8()
		if err != nil {
			return nil, fmt.Errorf("apl afdlength: %w", err)
		}
		negate := nlen&0x80 != 0
		afdLen := int(nlen &^ 0x80)
		afd, err := c.ReadBytes(afdLen)
		if err != nil {
			return nil, fmt.Errorf("apl afdpart: %w", err)
		}
		items = append(items, APLItem{AddressFamily: family, PrefixLength: prefix, Negate: negate, AFDPart: afd})
	}
	if c.Off != end {
		return nil, fmt.Errorf("%w: apl items overran rdlength", ErrRDLengthOverrun)
	}
	return APLRData{Items: items}, nil
}
