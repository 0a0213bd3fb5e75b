package dnsmsg

import (
	"fmt"

	"github.com/duskcoil/dnsdig/internal/dnsname"
	"github.com/duskcoil/dnsdig/internal/wire"
)

// NSECRData proves non-existence by naming the next owner and the set of
// types present at the current owner (RFC 4034 §4).
type NSECRData struct {
	NextDomain dnsname.Name
	Types      TypeBitmap
}

func (r NSECRData) Type() QType { return TypeNSEC }

func (r NSECRData) Marshal(b *wire.Builder) error {
	encoded, err := dnsname.Encode(r.NextDomain)
	if err != nil {
		return fmt.Errorf("nsec next domain: %w", err)
	}
	b.WriteBytes(encoded)
	EncodeTypeBitmap(b, r.Types.Types)
	return nil
}

func (r NSECRData) String() string { return fmt.Sprintf("%s %s", r.NextDomain, r.Types) }

func decodeNSEC(msg []byte, c *wire.Cursor, rdlen int) (RData, error) {
	start := c.Off
	next, err := dnsname.Decode(msg, &c.Off)
	if err != nil {
		return nil, fmt.Errorf("nsec next domain: %w", err)
	}
	consumed := c.Off - start
	if consumed > rdlen {
		return nil, fmt.Errorf("%w: nsec next domain overran rdlength", ErrRDLengthOverrun)
	}
	types, err := DecodeTypeBitmap(c, rdlen-consumed)
	if err != nil {
		return nil, err
	}
	return NSECRData{NextDomain: next, Types: types}, nil
}

// NSEC3 hash algorithm identifiers (RFC 5155 §2).
const NSEC3HashSHA1 uint8 = 1

// NSEC3 flags (RFC 5155 §3.1.2.1).
const NSEC3FlagOptOut uint8 = 0x01

// NSEC3RData is the hashed-name analogue of NSEC (RFC 5155 §3).
type NSEC3RData struct {
	HashAlgorithm uint8
	Flags         uint8
	Iterations    uint16
	Salt          []byte
	NextHashed    []byte
	Types         TypeBitmap
}

func (r NSEC3RData) Type() QType { return TypeNSEC3 }

func (r NSEC3RData) Marshal(b *wire.Builder) error {
	b.WriteUint8(r.HashAlgorithm)
	b.WriteUint8(r.Flags)
	b.WriteUint16(r.Iterations)
	b.WriteUint8(uint8(len(r.Salt)))
	b.WriteBytes(r.Salt)
	b.WriteUint8(uint8(len(r.NextHashed)))
	b.WriteBytes(r.NextHashed)
	EncodeTypeBitmap(b, r.Types.Types)
	return nil
}

func (r NSEC3RData) String() string {
	return fmt.Sprintf("%d %d %d %s %s %s",
		r.HashAlgorithm, r.Flags, r.Iterations, wire.HexString(r.Salt), base32Hex(r.NextHashed), r.Types)
}

func decodeNSEC3(c *wire.Cursor, rdlen int) (RData, error) {
	start := c.Off
	alg, err := c.ReadUint8()
	if err != nil {
		return nil, fmt.Errorf("nsec3 hash algorithm: %w", err)
	}
	flags, err := c.ReadUint8()
	if err != nil {
		return nil, fmt.Errorf("nsec3 flags: %w", err)
	}
	iterations, err := c.ReadUint16()
	if err != nil {
		return nil, fmt.Errorf("nsec3 iterations: %w", err)
	}
	saltLen, err := c.ReadUint8()
	if err != nil {
		return nil, fmt.Errorf("nsec3 salt length: %w", err)
	}
	salt, err := c.ReadBytes(int(saltLen))
	if err != nil {
		return nil, fmt.Errorf("nsec3 salt: %w", err)
	}
	hashLen, err := c.ReadUint8()
	if err != nil {
		return nil, fmt.Errorf("nsec3 hash length: %w", err)
	}
	nextHashed, err := c.ReadBytes(int(hashLen))
	if err != nil {
		return nil, fmt.Errorf("nsec3 next hashed owner: %w", err)
	}
	consumed := c.Off - start
	if consumed > rdlen {
		return nil, fmt.Errorf("%w: nsec3 fixed fields overran rdlength", ErrRDLengthOverrun)
	}
	types, err := DecodeTypeBitmap(c, rdlen-consumed)
	if err != nil {
		return nil, err
	}
	return NSEC3RData{HashAlgorithm: alg, Flags: flags, Iterations: iterations, Salt: salt, NextHashed: nextHashed, Types: types}, nil
}

// NSEC3PARAMRData publishes the hashing parameters a zone uses (RFC 5155 §4).
type NSEC3PARAMRData struct {
	HashAlgorithm uint8
	Flags         uint8
	Iterations    uint16
	Salt          []byte
}

func (r NSEC3PARAMRData) Type() QType { return TypeNSEC3PARAM }

func (r NSEC3PARAMRData) Marshal(b *wire.Builder) error {
	b.WriteUint8(r.HashAlgorithm)
	b.WriteUint8(r.Flags)
	b.WriteUint16(r.Iterations)
	b.WriteUint8(uint8(len(r.Salt)))
	b.WriteBytes(r.Salt)
	return nil
}

func (r NSEC3PARAMRData) String() string {
	return fmt.Sprintf("%d %d %d %s", r.HashAlgorithm, r.Flags, r.Iterations, wire.HexString(r.Salt))
}

func decodeNSEC3PARAM(c *wire.Cursor) (RData, error) {
	alg, err := c.ReadUint8()
	if err != nil {
		return nil, fmt.Errorf("nsec3param hash algorithm: %w", err)
	}
	flags, err := c.ReadUint8()
	if err != nil {
		return nil, fmt.Errorf("nsec3param flags: %w", err)
	}
	iterations, err := c.ReadUint16()
	if err != nil {
		return nil, fmt.Errorf("nsec3param iterations: %w", err)
	}
	saltLen, err := c.ReadUint8()
	if err != nil {
		return nil, fmt.Errorf("nsec3param salt length: %w", err)
	}
	salt, err := c.ReadBytes(int(saltLen))
	if err != nil {
		return nil, fmt.Errorf("nsec3param salt: %w", err)
	}
	return NSEC3PARAMRData{HashAlgorithm: alg, Flags: flags, Iterations: iterations, Salt: salt}, nil
}

// base32Hex renders a byte slice using the base32hex alphabet RFC 5155
// conventionally uses for NSEC3 hashed owner names, without padding.
func base32Hex(b []byte) string {
	const alphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUV"
	if len(b) == 0 {
		return ""
	}
	var out []byte
	var buf uint32
	var bits uint
	for _, by := range b {
		buf = buf<<8 | uint32(by)
		bits += 8
		for bits >= 5 {
			bits -= 5
			out = append(out, alphabet[(buf>>bits)&0x1F])
		}
	}
	if bits > 0 {
		out = append(out, alphabet[(buf<<(5-bits))&0x1F])
	}
	return string(out)
}
