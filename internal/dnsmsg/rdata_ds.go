package dnsmsg

import (
	"fmt"

	"github.com/duskcoil/dnsdig/internal/wire"
)

// DSRData is the Delegation Signer shape shared by DS (RFC 4034 §5), CDS
// (RFC 7344 §3.1) and the historical DLV (RFC 4431).
type DSRData struct {
	RRType     QType
	KeyTag     uint16
	Algorithm  DNSSECAlgorithm
	DigestType uint8
	Digest     []byte
}

func (r DSRData) Type() QType { return r.RRType }

func (r DSRData) Marshal(b *wire.Builder) error {
	b.WriteUint16(r.KeyTag)
	b.WriteUint8(uint8(r.Algorithm))
	b.WriteUint8(r.DigestType)
	b.WriteBytes(r.Digest)
	return nil
}

func (r DSRData) String() string {
	return fmt.Sprintf("%d %s %d %s", r.KeyTag, r.Algorithm, r.DigestType, wire.HexString(r.Digest))
}

func decodeDSFamily(c *wire.Cursor, rdlen int, t QType) (RData, error) {
	keyTag, err := c.ReadUint16()
	if err != nil {
		return nil, fmt.Errorf("ds key tag: %w", err)
	}
	alg, err := c.ReadUint8()
	if err != nil {
		return nil, fmt.Errorf("ds algorithm: %w", err)
	}
	digestType, err := c.ReadUint8()
	if err != nil {
		return nil, fmt.Errorf("ds digest type: %w", err)
	}
	if rdlen < 4 {
		return nil, fmt.Errorf("%w: ds rdlength too short", ErrRDLengthOverrun)
	}
	digest, err := c.ReadBytes(rdlen - 4)
	if err != nil {
		return nil, fmt.Errorf("ds digest: %w", err)
	}
	return DSRData{RRType: t, KeyTag: keyTag, Algorithm: DNSSECAlgorithm(alg), DigestType: digestType, Digest: digest}, nil
}

// TLSARData is the certificate-association shape shared by TLSA (RFC 6698
// §2.1) and SMIMEA (RFC 8162 §2).
type TLSARData struct {
	RRType       QType
	CertUsage    uint8
	Selector     uint8
	MatchingType uint8
	CertAssocData []byte
}

func (r TLSARData) Type() QType { return r.RRType }

func (r TLSARData) Marshal(b *wire.Builder) error {
	b.WriteUint8(r.CertUsage)
	b.WriteUint8(r.Selector)
	b.WriteUint8(r.MatchingType)
	b.WriteBytes(r.CertAssocData)
	return nil
}

func (r TLSARData) String() string {
	return fmt.Sprintf("%d %d %d %s", r.CertUsage, r.Selector, r.MatchingType, wire.HexString(r.CertAssocData))
}

func decodeTLSAFamily(c *wire.Cursor, rdlen int, t QType) (RData, error) {
	usage, err := c.ReadUint8()
	if err != nil {
		return nil, fmt.Errorf("tlsa cert usage: %w", err)
	}
	selector, err := c.ReadUint8()
	if err != nil {
		return nil, fmt.Errorf("tlsa selector: %w", err)
	}
	matching, err := c.ReadUint8()
	if err != nil {
		return nil, fmt.Errorf("tlsa matching type: %w", err)
	}
	if rdlen < 3 {
		return nil, fmt.Errorf("%w: tlsa rdlength too short", ErrRDLengthOverrun)
	}
	data, err := c.ReadBytes(rdlen - 3)
	if err != nil {
		return nil, fmt.Errorf("tlsa cert assoc data: %w", err)
	}
	return TLSARData{RRType: t, CertUsage: usage, Selector: selector, MatchingType: matching, CertAssocData: data}, nil
}

// SSHFPRData carries an SSH public key fingerprint (RFC 4255 §3.1).
type SSHFPRData struct {
	Algorithm   uint8
	FPType      uint8
	Fingerprint []byte
}

func (r SSHFPRData) Type() QType { return TypeSSHFP }

func (r SSHFPRData) Marshal(b *wire.Builder) error {
	b.WriteUint8(r.Algorithm)
	b.WriteUint8(r.FPType)
	b.WriteBytes(r.Fingerprint)
	return nil
}

func (r SSHFPRData) String() string {
	return fmt.Sprintf("%d %d %s", r.Algorithm, r.FPType, wire.HexString(r.Fingerprint))
}

func decodeSSHFP(c *wire.Cursor, rdlen int) (RData, error) {
	alg, err := c.ReadUint8()
	if err != nil {
		return nil, fmt.Errorf("sshfp algorithm: %w", err)
	}
	fptype, err := c.ReadUint8()
	if err != nil {
		return nil, fmt.Errorf("sshfp fingerprint type: %w", err)
	}
	if rdlen < 2 {
		return nil, fmt.Errorf("%w: sshfp rdlength too short", ErrRDLengthOverrun)
	}
	fp, err := c.ReadBytes(rdlen - 2)
	if err != nil {
		return nil, fmt.Errorf("sshfp fingerprint: %w", err)
	}
	return SSHFPRData{Algorithm: alg, FPType: fptype, Fingerprint: fp}, nil
}
