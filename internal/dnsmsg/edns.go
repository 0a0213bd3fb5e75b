package dnsmsg

import (
	"fmt"

	"github.com/duskcoil/dnsdig/internal/wire"
)

// EDNS(0) fixes the OPT pseudo-record's TYPE at 41 and overloads the CLASS
// and TTL fields of the generic RR envelope (RFC 6891 §6.1.2):
//
//	CLASS  -> requestor's UDP payload size
//	TTL    -> extended RCODE (top 8 bits) | version (next 8 bits) | flags (low 16 bits, bit 15 = DO)
const (
	EDNSFlagDO uint16 = 0x8000
)

// EDNSOption is one option within an OPT record's RDATA (RFC 6891 §6.1.2).
type EDNSOption struct {
	Code EDNSOptionCode
	Data []byte
}

// OPTRData is the RDATA of the OPT pseudo-record: an ordered list of EDNS
// options. The surrounding ResourceRecord's Class/TTL fields, not this
// struct, carry UDP size / extended RCODE / version / flags.
type OPTRData struct {
	Options []EDNSOption
}

func (r OPTRData) Type() QType { return TypeOPT }

func (r OPTRData) Marshal(b *wire.Builder) error {
	for _, o := range r.Options {
		b.WriteUint16(uint16(o.Code))
		b.WriteUint16(uint16(len(o.Data)))
		b.WriteBytes(o.Data)
	}
	return nil
}

func (r OPTRData) String() string {
	s := ""
	for i, o := range r.Options {
		if i > 0 {
			s += " "
		}
		s += fmt.Sprintf("%s:%s", o.Code, wire.HexString(o.Data))
	}
	return s
}

func decodeOPTRData(c *wire.Cursor, rdlen int) (RData, error) {
	end := c.Off + rdlen
	var opts []EDNSOption
	for c.Off < end {
		code, err := c.ReadUint16()
		if err != nil {
			return nil, fmt.Errorf("edns option code: %w", err)
		}
		olen, err := c.ReadUint16()
		if err != nil {
			return nil, fmt.Errorf("edns option length: %w", err)
		}
		data, err := c.ReadBytes(int(olen))
		if err != nil {
			return nil, fmt.Errorf("edns option data: %w", err)
		}
		opts = append(opts, EDNSOption{Code: EDNSOptionCode(code), Data: data})
	}
	if c.Off != end {
		return nil, fmt.Errorf("%w: edns options overran rdlength", ErrRDLengthOverrun)
	}
	return OPTRData{Options: opts}, nil
}

// NewOPTRecord builds an OPT pseudo-record for an outbound query: udpSize is
// the requestor's advertised UDP payload size, dnssecOK sets the DO bit
// (RFC 3225), and opts carries any additional EDNS options (cookie, ECS,
// padding, ...).
func NewOPTRecord(udpSize uint16, dnssecOK bool, opts []EDNSOption) ResourceRecord {
	var ttl uint32
	if dnssecOK {
		ttl |= uint32(EDNSFlagDO)
	}
	return ResourceRecord{
		Type:  TypeOPT,
		Class: QClass(udpSize),
		TTL:   ttl,
		RData: OPTRData{Options: opts},
	}
}

// EDNSMeta is the decoded form of an OPT record's overloaded Class/TTL
// fields, giving the extended RCODE/version/flags meaningful names.
type EDNSMeta struct {
	UDPSize      uint16
	ExtendedRCode uint8
	Version      uint8
	DNSSECOK     bool
}

// ParseEDNSMeta extracts EDNSMeta from an OPT record's Class/TTL fields.
func ParseEDNSMeta(rr ResourceRecord) (EDNSMeta, error) {
	if rr.Type != TypeOPT {
		return EDNSMeta{}, fmt.Errorf("%w: record type %s is not OPT", ErrProtocol, rr.Type)
	}
	return EDNSMeta{
		UDPSize:       uint16(rr.Class),
		ExtendedRCode: uint8(rr.TTL >> 24),
		Version:       uint8(rr.TTL >> 16),
		DNSSECOK:      uint16(rr.TTL)&EDNSFlagDO != 0,
	}, nil
}

// CombinedRCode folds a header's 4-bit RCODE together with an OPT record's
// 8-bit extended RCODE into the full 12-bit value (RFC 6891 §6.1.3).
func CombinedRCode(headerRCode RCode, meta EDNSMeta) RCode {
	return RCode(uint16(meta.ExtendedRCode)<<4 | uint16(headerRCode))
}

// NSIDOption builds an NSID option (RFC 5001 §2.3); payload is server-defined
// opaque bytes, usually displayed as hex.
func NSIDOption(payload []byte) EDNSOption {
	return EDNSOption{Code: OptCodeNSID, Data: payload}
}

// CookieOption builds a DNS Cookie option (RFC 7873 §4): an 8-byte client
// cookie, optionally followed by an 8-to-32-byte server cookie.
func CookieOption(clientCookie, serverCookie []byte) EDNSOption {
	data := make([]byte, 0, len(clientCookie)+len(serverCookie))
	data = append(data, clientCookie...)
	data = append(data, serverCookie...)
	return EDNSOption{Code: OptCodeCookie, Data: data}
}

// PaddingOption builds a Padding option of n zero bytes (RFC 7830 §3).
func PaddingOption(n int) EDNSOption {
	return EDNSOption{Code: OptCodePadding, Data: make([]byte, n)}
}

// ClientSubnetOption builds an EDNS Client Subnet option (RFC 7871 §6).
// family is 1 for IPv4, 2 for IPv6; addr must already be truncated to
// sourcePrefix bits.
func ClientSubnetOption(family uint16, sourcePrefix, scopePrefix uint8, addr []byte) EDNSOption {
	b := wire.NewBuilder(4 + len(addr))
	b.WriteUint16(family)
	b.WriteUint8(sourcePrefix)
	b.WriteUint8(scopePrefix)
	b.WriteBytes(addr)
	return EDNSOption{Code: OptCodeClientSubnet, Data: b.Bytes()}
}

// ExtendedErrorOption builds an Extended DNS Error option (RFC 8914 §2):
// a 16-bit info code followed by an optional UTF-8 extra-text string.
func ExtendedErrorOption(infoCode uint16, extraText string) EDNSOption {
	b := wire.NewBuilder(2 + len(extraText))
	b.WriteUint16(infoCode)
	b.WriteBytes([]byte(extraText))
	return EDNSOption{Code: OptCodeExtendedError, Data: b.Bytes()}
}

// ZoneVersionOption builds a ZONEVERSION option (RFC 9660 §5): a label
// count followed by a type and opaque version payload.
func ZoneVersionOption(labelCount uint8, versionType uint8, version []byte) EDNSOption {
	b := wire.NewBuilder(2 + len(version))
	b.WriteUint8(labelCount)
	b.WriteUint8(versionType)
	b.WriteBytes(version)
	return EDNSOption{Code: OptCodeZoneVersion, Data: b.Bytes()}
}

// KeyTagOption builds an edns-key-tag option (RFC 8145 §5): a list of DNSKEY
// key tags the resolver trusts.
func KeyTagOption(keyTags []uint16) EDNSOption {
	b := wire.NewBuilder(2 * len(keyTags))
	for _, kt := range keyTags {
		b.WriteUint16(kt)
	}
	return EDNSOption{Code: OptCodeKeyTag, Data: b.Bytes()}
}

// AlgorithmListOption builds DAU/DHU/N3U options (RFC 6975 §3), each a list
// of one-byte algorithm identifiers the resolver understands.
func AlgorithmListOption(code EDNSOptionCode, algorithms []uint8) EDNSOption {
	return EDNSOption{Code: code, Data: algorithms}
}
