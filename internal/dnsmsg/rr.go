package dnsmsg

import (
	"fmt"

	"github.com/duskcoil/dnsdig/internal/dnsname"
	"github.com/duskcoil/dnsdig/internal/wire"
)

// RData is implemented by every typed resource-record payload. Each RRTYPE
// gets its own Go type (A, SOA, MX, ...) rather than a generic
// map[string]interface{}, so callers get compile-time field access.
type RData interface {
	Type() QType
	Marshal(b *wire.Builder) error
	String() string
}

// ResourceRecord is one entry of the answer, authority or additional
// section (RFC 1035 §4.1.3). For the OPT pseudo-record (RFC 6891 §6.1.2)
// Class and TTL carry the requestor UDP size and the extended RCODE/
// version/flags instead of their ordinary meaning; see edns.go.
type ResourceRecord struct {
	Name  dnsname.Name
	Type  QType
	Class QClass
	TTL   uint32
	RData RData
}

func (r ResourceRecord) String() string {
	return fmt.Sprintf("%s\t%d\t%s\t%s\t%s", r.Name.String(), r.TTL, r.Class, r.Type, r.RData.String())
}

// Marshal writes the full record: owner name, type, class, TTL, RDLENGTH,
// RDATA.
func (r ResourceRecord) Marshal(b *wire.Builder) error {
	encoded, err := dnsname.Encode(r.Name)
	if err != nil {
		return fmt.Errorf("record name: %w", err)
	}
	b.WriteBytes(encoded)
	b.WriteUint16(uint16(r.Type))
	b.WriteUint16(uint16(r.Class))
	b.WriteUint32(r.TTL)

	rdataBuilder := wire.NewBuilder(64)
	if err := r.RData.Marshal(rdataBuilder); err != nil {
		return fmt.Errorf("record rdata: %w", err)
	}
	rdata := rdataBuilder.Bytes()
	b.WriteUint16(uint16(len(rdata)))
	b.WriteBytes(rdata)
	return nil
}

// ParseResourceRecord reads one resource record from msg at *off, dispatching
// RDATA decoding by QTYPE. Unrecognized types decode to Unknown, a raw-blob
// fallback, rather than failing the whole message (RFC 3597).
func ParseResourceRecord(msg []byte, off *int) (ResourceRecord, error) {
	name, err := dnsname.Decode(msg, off)
	if err != nil {
		return ResourceRecord{}, fmt.Errorf("record name: %w", err)
	}
	c := &wire.Cursor{Msg: msg, Off: *off}
	rawType, err := c.ReadUint16()
	if err != nil {
		return ResourceRecord{}, fmt.Errorf("record type: %w", err)
	}
	rawClass, err := c.ReadUint16()
	if err != nil {
		return ResourceRecord{}, fmt.Errorf("record class: %w", err)
	}
	ttl, err := c.ReadUint32()
	if err != nil {
		return ResourceRecord{}, fmt.Errorf("record ttl: %w", err)
	}
	rdlen, err := c.ReadUint16()
	if err != nil {
		return ResourceRecord{}, fmt.Errorf("record rdlength: %w", err)
	}
	rdataEnd := c.Off + int(rdlen)
	if rdataEnd > len(msg) {
		return ResourceRecord{}, fmt.Errorf("%w: rdlength %d at offset %d", ErrRDLengthOverrun, rdlen, c.Off)
	}

	qtype := QType(rawType)
	rdata, err := parseRData(qtype, msg, c, int(rdlen))
	if err != nil {
		return ResourceRecord{}, fmt.Errorf("record rdata (%s): %w", qtype, err)
	}
	if c.Off != rdataEnd {
		return ResourceRecord{}, fmt.Errorf("%w: %s consumed %d of %d rdata bytes", ErrRDLengthOverrun, qtype, c.Off-(rdataEnd-int(rdlen)), rdlen)
	}
	*off = c.Off

	return ResourceRecord{
		Name:  name,
		Type:  qtype,
		Class: QClass(rawClass),
		TTL:   ttl,
		RData: rdata,
	}, nil
}

// parseRData dispatches to the per-RRTYPE decoder. c.Off must advance by
// exactly rdlen bytes on success.
func parseRData(t QType, msg []byte, c *wire.Cursor, rdlen int) (RData, error) {
	switch t {
	case TypeA:
		return decodeA(c)
	case TypeAAAA:
		return decodeAAAA(c)
	case TypeNS:
		return decodeNameRData(msg, c, TypeNS)
	case TypeCNAME:
		return decodeNameRData(msg, c, TypeCNAME)
	case TypePTR:
		return decodeNameRData(msg, c, TypePTR)
	case TypeDNAME:
		return decodeNameRData(msg, c, TypeDNAME)
	case TypeMB:
		return decodeNameRData(msg, c, TypeMB)
	case TypeMD:
		return decodeNameRData(msg, c, TypeMD)
	case TypeMF:
		return decodeNameRData(msg, c, TypeMF)
	case TypeMG:
		return decodeNameRData(msg, c, TypeMG)
	case TypeMR:
		return decodeNameRData(msg, c, TypeMR)
	case TypeSOA:
		return decodeSOA(msg, c)
	case TypeMX:
		return decodeMX(msg, c)
	case TypeAFSDB:
		return decodeAFSDB(msg, c)
	case TypeKX:
		return decodeKX(msg, c)
	case TypeRT:
		return decodeRT(msg, c)
	case TypeTXT:
		return decodeTXT(c, rdlen)
	case TypeHINFO:
		return decodeHINFO(c)
	case TypeRP:
		return decodeRP(msg, c)
	case TypeSRV:
		return decodeSRV(msg, c)
	case TypeNAPTR:
		return decodeNAPTR(msg, c)
	case TypeLOC:
		return decodeLOC(c)
	case TypeCERT:
		return decodeCERT(c, rdlen)
	case TypeAPL:
		return decodeAPL(c, rdlen)
	case TypeDS:
		return decodeDSFamily(c, rdlen, TypeDS)
	case TypeCDS:
		return decodeDSFamily(c, rdlen, TypeCDS)
	case TypeDLV:
		return decodeDSFamily(c, rdlen, TypeDLV)
	case TypeTLSA:
		return decodeTLSAFamily(c, rdlen, TypeTLSA)
	case TypeSMIMEA:
		return decodeTLSAFamily(c, rdlen, TypeSMIMEA)
	case TypeSSHFP:
		return decodeSSHFP(c, rdlen)
	case TypeIPSECKEY:
		return decodeIPSECKEY(msg, c, rdlen)
	case TypeRRSIG:
		return decodeRRSIG(msg, c, rdlen)
	case TypeNSEC:
		return decodeNSEC(msg, c, rdlen)
	case TypeDNSKEY:
		return decodeDNSKEYFamily(c, rdlen, TypeDNSKEY)
	case TypeCDNSKEY:
		return decodeDNSKEYFamily(c, rdlen, TypeCDNSKEY)
	case TypeDHCID:
		return decodeDHCID(c, rdlen)
	case TypeNSEC3:
		return decodeNSEC3(c, rdlen)
	case TypeNSEC3PARAM:
		return decodeNSEC3PARAM(c)
	case TypeHIP:
		return decodeHIP(c, rdlen)
	case TypeOPENPGPKEY:
		return decodeOPENPGPKEY(c, rdlen)
	case TypeCSYNC:
		return decodeCSYNC(c, rdlen)
	case TypeZONEMD:
		return decodeZONEMD(c, rdlen)
	case TypeSVCB:
		return decodeSVCBFamily(msg, c, rdlen, TypeSVCB)
	case TypeHTTPS:
		return decodeSVCBFamily(msg, c, rdlen, TypeHTTPS)
	case TypeEUI48:
		return decodeEUI48(c)
	case TypeEUI64:
		return decodeEUI64(c)
	case TypeURI:
		return decodeURI(c, rdlen)
	case TypeCAA:
		return decodeCAA(c, rdlen)
	case TypeOPT:
		return decodeOPTRData(c, rdlen)
	default:
		return decodeUnknown(c, rdlen, t)
	}
}
