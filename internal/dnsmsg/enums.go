package dnsmsg

import "fmt"

// Header flags and masks (RFC 1035 §4.1.1).
//
//	+--+--+--+--+--+--+--+--+--+--+--+--+--+--+--+--+
//	|QR|   Opcode  |AA|TC|RD|RA| Z|AD|CD|   RCODE   |
//	+--+--+--+--+--+--+--+--+--+--+--+--+--+--+--+--+
//	 15 14 13 12 11 10  9  8  7  6  5  4  3  2  1  0
const (
	FlagQR     uint16 = 0x8000
	MaskOpcode uint16 = 0x7800
	FlagAA     uint16 = 0x0400
	FlagTC     uint16 = 0x0200
	FlagRD     uint16 = 0x0100
	FlagRA     uint16 = 0x0080
	FlagZ      uint16 = 0x0040
	FlagAD     uint16 = 0x0020
	FlagCD     uint16 = 0x0010
	MaskRCode  uint16 = 0x000F

	opcodeShift = 11
)

// Opcode is the DNS query operation (RFC 1035 §4.1.1).
type Opcode uint8

const (
	OpcodeQuery  Opcode = 0
	OpcodeIQuery Opcode = 1
	OpcodeStatus Opcode = 2
	OpcodeNotify Opcode = 4
	OpcodeUpdate Opcode = 5
)

func (o Opcode) known() bool {
	switch o {
	case OpcodeQuery, OpcodeIQuery, OpcodeStatus, OpcodeNotify, OpcodeUpdate:
		return true
	default:
		return false
	}
}

func (o Opcode) String() string {
	switch o {
	case OpcodeQuery:
		return "QUERY"
	case OpcodeIQuery:
		return "IQUERY"
	case OpcodeStatus:
		return "STATUS"
	case OpcodeNotify:
		return "NOTIFY"
	case OpcodeUpdate:
		return "UPDATE"
	default:
		return fmt.Sprintf("OPCODE%d", uint8(o))
	}
}

// RCode is a DNS response code (RFC 1035 §4.1.1, RFC 6895).
type RCode uint16

const (
	RCodeNoError  RCode = 0
	RCodeFormErr  RCode = 1
	RCodeServFail RCode = 2
	RCodeNXDomain RCode = 3
	RCodeNotImp   RCode = 4
	RCodeRefused  RCode = 5
	RCodeYXDomain RCode = 6
	RCodeYXRRSet  RCode = 7
	RCodeNXRRSet  RCode = 8
	RCodeNotAuth  RCode = 9
	RCodeNotZone  RCode = 10
	RCodeBadVers  RCode = 16
)

func (r RCode) String() string {
	switch r {
	case RCodeNoError:
		return "NOERROR"
	case RCodeFormErr:
		return "FORMERR"
	case RCodeServFail:
		return "SERVFAIL"
	case RCodeNXDomain:
		return "NXDOMAIN"
	case RCodeNotImp:
		return "NOTIMP"
	case RCodeRefused:
		return "REFUSED"
	case RCodeYXDomain:
		return "YXDOMAIN"
	case RCodeYXRRSet:
		return "YXRRSET"
	case RCodeNXRRSet:
		return "NXRRSET"
	case RCodeNotAuth:
		return "NOTAUTH"
	case RCodeNotZone:
		return "NOTZONE"
	case RCodeBadVers:
		return "BADVERS"
	default:
		return fmt.Sprintf("RCODE%d", uint16(r))
	}
}

// QClass is a DNS record class (RFC 1035 §3.2.4, §3.2.5).
type QClass uint16

const (
	ClassIN  QClass = 1
	ClassCH  QClass = 3
	ClassHS  QClass = 4
	ClassNONE QClass = 254
	ClassANY QClass = 255
)

func (c QClass) String() string {
	switch c {
	case ClassIN:
		return "IN"
	case ClassCH:
		return "CH"
	case ClassHS:
		return "HS"
	case ClassNONE:
		return "NONE"
	case ClassANY:
		return "ANY"
	default:
		return fmt.Sprintf("CLASS%d", uint16(c))
	}
}

// ParseQClass parses a textual class name (case-insensitive) such as "IN"
// or "CH" into its QClass constant.
func ParseQClass(s string) (QClass, bool) {
	switch upperASCII(s) {
	case "IN":
		return ClassIN, true
	case "CH":
		return ClassCH, true
	case "HS":
		return ClassHS, true
	case "NONE":
		return ClassNONE, true
	case "ANY":
		return ClassANY, true
	default:
		var n uint16
		if _, err := fmt.Sscanf(s, "CLASS%d", &n); err == nil {
			return QClass(n), true
		}
		return 0, false
	}
}

// QType is a DNS resource/query record type. The known constants cover the
// ~70 types spec.md requires; QType itself stays a plain uint16 so any
// future IANA assignment parses without failure (it just renders as
// "TYPE<n>" per RFC 3597 §5).
type QType uint16

const (
	TypeA          QType = 1
	TypeNS         QType = 2
	TypeMD         QType = 3
	TypeMF         QType = 4
	TypeCNAME      QType = 5
	TypeSOA        QType = 6
	TypeMB         QType = 7
	TypeMG         QType = 8
	TypeMR         QType = 9
	TypeNULL       QType = 10
	TypeWKS        QType = 11
	TypePTR        QType = 12
	TypeHINFO      QType = 13
	TypeMINFO      QType = 14
	TypeMX         QType = 15
	TypeTXT        QType = 16
	TypeRP         QType = 17
	TypeAFSDB      QType = 18
	TypeX25        QType = 19
	TypeISDN       QType = 20
	TypeRT         QType = 21
	TypeNSAP       QType = 22
	TypeSIG        QType = 24
	TypeKEY        QType = 25
	TypePX         QType = 26
	TypeGPOS       QType = 27
	TypeAAAA       QType = 28
	TypeLOC        QType = 29
	TypeNXT        QType = 30
	TypeSRV        QType = 33
	TypeNAPTR      QType = 35
	TypeKX         QType = 36
	TypeCERT       QType = 37
	TypeDNAME      QType = 39
	TypeOPT        QType = 41
	TypeAPL        QType = 42
	TypeDS         QType = 43
	TypeSSHFP      QType = 44
	TypeIPSECKEY   QType = 45
	TypeRRSIG      QType = 46
	TypeNSEC       QType = 47
	TypeDNSKEY     QType = 48
	TypeDHCID      QType = 49
	TypeNSEC3      QType = 50
	TypeNSEC3PARAM QType = 51
	TypeTLSA       QType = 52
	TypeSMIMEA     QType = 53
	TypeHIP        QType = 55
	TypeCDS        QType = 59
	TypeCDNSKEY    QType = 60
	TypeOPENPGPKEY QType = 61
	TypeCSYNC      QType = 62
	TypeZONEMD     QType = 63
	TypeSVCB       QType = 64
	TypeHTTPS      QType = 65
	TypeEUI48      QType = 108
	TypeEUI64      QType = 109
	TypeTKEY       QType = 249
	TypeTSIG       QType = 250
	TypeIXFR       QType = 251
	TypeAXFR       QType = 252
	TypeMAILB      QType = 253
	TypeMAILA      QType = 254
	TypeANY        QType = 255
	TypeURI        QType = 256
	TypeCAA        QType = 257
	TypeDLV        QType = 32769
)

var qtypeNames = map[QType]string{
	TypeA: "A", TypeNS: "NS", TypeMD: "MD", TypeMF: "MF", TypeCNAME: "CNAME",
	TypeSOA: "SOA", TypeMB: "MB", TypeMG: "MG", TypeMR: "MR", TypeNULL: "NULL",
	TypeWKS: "WKS", TypePTR: "PTR", TypeHINFO: "HINFO", TypeMINFO: "MINFO",
	TypeMX: "MX", TypeTXT: "TXT", TypeRP: "RP", TypeAFSDB: "AFSDB",
	TypeX25: "X25", TypeISDN: "ISDN", TypeRT: "RT", TypeNSAP: "NSAP",
	TypeSIG: "SIG", TypeKEY: "KEY", TypePX: "PX", TypeGPOS: "GPOS",
	TypeAAAA: "AAAA", TypeLOC: "LOC", TypeNXT: "NXT", TypeSRV: "SRV",
	TypeNAPTR: "NAPTR", TypeKX: "KX", TypeCERT: "CERT", TypeDNAME: "DNAME",
	TypeOPT: "OPT", TypeAPL: "APL", TypeDS: "DS", TypeSSHFP: "SSHFP",
	TypeIPSECKEY: "IPSECKEY", TypeRRSIG: "RRSIG", TypeNSEC: "NSEC",
	TypeDNSKEY: "DNSKEY", TypeDHCID: "DHCID", TypeNSEC3: "NSEC3",
	TypeNSEC3PARAM: "NSEC3PARAM", TypeTLSA: "TLSA", TypeSMIMEA: "SMIMEA",
	TypeHIP: "HIP", TypeCDS: "CDS", TypeCDNSKEY: "CDNSKEY",
	TypeOPENPGPKEY: "OPENPGPKEY", TypeCSYNC: "CSYNC", TypeZONEMD: "ZONEMD",
	TypeSVCB: "SVCB", TypeHTTPS: "HTTPS", TypeEUI48: "EUI48", TypeEUI64: "EUI64",
	TypeTKEY: "TKEY", TypeTSIG: "TSIG", TypeIXFR: "IXFR", TypeAXFR: "AXFR",
	TypeMAILB: "MAILB", TypeMAILA: "MAILA", TypeANY: "ANY", TypeURI: "URI",
	TypeCAA: "CAA", TypeDLV: "DLV",
}

var qtypeByName map[string]QType

func init() {
	qtypeByName = make(map[string]QType, len(qtypeNames))
	for t, s := range qtypeNames {
		qtypeByName[s] = t
	}
}

// String renders the type's mnemonic, or "TYPE<n>" for unrecognized values
// (RFC 3597 §5) so unknown future assignments still print sensibly.
func (t QType) String() string {
	if s, ok := qtypeNames[t]; ok {
		return s
	}
	return fmt.Sprintf("TYPE%d", uint16(t))
}

// ParseQType resolves a mnemonic (case-insensitive) or "TYPE<n>" form to a
// QType. Returns false if the mnemonic is not recognized and not of the
// TYPE<n> form.
func ParseQType(s string) (QType, bool) {
	if t, ok := qtypeByName[upperASCII(s)]; ok {
		return t, true
	}
	var n uint16
	if _, err := fmt.Sscanf(s, "TYPE%d", &n); err == nil {
		return QType(n), true
	}
	return 0, false
}

func upperASCII(s string) string {
	b := []byte(s)
	for i, c := range b {
		if c >= 'a' && c <= 'z' {
			b[i] = c - 32
		}
	}
	return string(b)
}

// DNSSECAlgorithm identifies a DNSSEC signing algorithm (RFC 8624 registry).
type DNSSECAlgorithm uint8

const (
	AlgRSAMD5          DNSSECAlgorithm = 1
	AlgDH               DNSSECAlgorithm = 2
	AlgDSA              DNSSECAlgorithm = 3
	AlgRSASHA1          DNSSECAlgorithm = 5
	AlgDSANSEC3SHA1     DNSSECAlgorithm = 6
	AlgRSASHA1NSEC3SHA1 DNSSECAlgorithm = 7
	AlgRSASHA256        DNSSECAlgorithm = 8
	AlgRSASHA512        DNSSECAlgorithm = 10
	AlgECCGOST          DNSSECAlgorithm = 12
	AlgECDSAP256SHA256  DNSSECAlgorithm = 13
	AlgECDSAP384SHA384  DNSSECAlgorithm = 14
	AlgED25519          DNSSECAlgorithm = 15
	AlgED448            DNSSECAlgorithm = 16
)

func (a DNSSECAlgorithm) String() string {
	switch a {
	case AlgRSAMD5:
		return "RSAMD5"
	case AlgDH:
		return "DH"
	case AlgDSA:
		return "DSA"
	case AlgRSASHA1:
		return "RSASHA1"
	case AlgDSANSEC3SHA1:
		return "DSA-NSEC3-SHA1"
	case AlgRSASHA1NSEC3SHA1:
		return "RSASHA1-NSEC3-SHA1"
	case AlgRSASHA256:
		return "RSASHA256"
	case AlgRSASHA512:
		return "RSASHA512"
	case AlgECCGOST:
		return "ECC-GOST"
	case AlgECDSAP256SHA256:
		return "ECDSAP256SHA256"
	case AlgECDSAP384SHA384:
		return "ECDSAP384SHA384"
	case AlgED25519:
		return "ED25519"
	case AlgED448:
		return "ED448"
	default:
		return fmt.Sprintf("ALG%d", uint8(a))
	}
}

// EDNSOptionCode identifies an EDNS(0) option (RFC 6891 §6.1.2 registry).
type EDNSOptionCode uint16

const (
	OptCodeLLQ              EDNSOptionCode = 1
	OptCodeUL               EDNSOptionCode = 2
	OptCodeNSID             EDNSOptionCode = 3
	OptCodeDAU              EDNSOptionCode = 5
	OptCodeDHU              EDNSOptionCode = 6
	OptCodeN3U              EDNSOptionCode = 7
	OptCodeClientSubnet     EDNSOptionCode = 8
	OptCodeExpire           EDNSOptionCode = 9
	OptCodeCookie           EDNSOptionCode = 10
	OptCodeTCPKeepalive     EDNSOptionCode = 11
	OptCodePadding          EDNSOptionCode = 12
	OptCodeChain            EDNSOptionCode = 13
	OptCodeKeyTag           EDNSOptionCode = 14
	OptCodeExtendedError    EDNSOptionCode = 15
	OptCodeClientTag        EDNSOptionCode = 16
	OptCodeServerTag        EDNSOptionCode = 17
	OptCodeZoneVersion      EDNSOptionCode = 19
)

func (c EDNSOptionCode) String() string {
	switch c {
	case OptCodeLLQ:
		return "LLQ"
	case OptCodeUL:
		return "UL"
	case OptCodeNSID:
		return "NSID"
	case OptCodeDAU:
		return "DAU"
	case OptCodeDHU:
		return "DHU"
	case OptCodeN3U:
		return "N3U"
	case OptCodeClientSubnet:
		return "ECS"
	case OptCodeExpire:
		return "EXPIRE"
	case OptCodeCookie:
		return "COOKIE"
	case OptCodeTCPKeepalive:
		return "TCP-KEEPALIVE"
	case OptCodePadding:
		return "PADDING"
	case OptCodeChain:
		return "CHAIN"
	case OptCodeKeyTag:
		return "KEY-TAG"
	case OptCodeExtendedError:
		return "EDE"
	case OptCodeClientTag:
		return "CLIENT-TAG"
	case OptCodeServerTag:
		return "SERVER-TAG"
	case OptCodeZoneVersion:
		return "ZONEVERSION"
	default:
		return fmt.Sprintf("OPT%d", uint16(c))
	}
}

// SVCBParamKey identifies an SVCB/HTTPS service parameter (RFC 9460 §14.3.2).
type SVCBParamKey uint16

const (
	SVCBKeyMandatory      SVCBParamKey = 0
	SVCBKeyALPN           SVCBParamKey = 1
	SVCBKeyNoDefaultALPN  SVCBParamKey = 2
	SVCBKeyPort           SVCBParamKey = 3
	SVCBKeyIPv4Hint       SVCBParamKey = 4
	SVCBKeyECH            SVCBParamKey = 5
	SVCBKeyIPv6Hint       SVCBParamKey = 6
)

func (k SVCBParamKey) String() string {
	switch k {
	case SVCBKeyMandatory:
		return "mandatory"
	case SVCBKeyALPN:
		return "alpn"
	case SVCBKeyNoDefaultALPN:
		return "no-default-alpn"
	case SVCBKeyPort:
		return "port"
	case SVCBKeyIPv4Hint:
		return "ipv4hint"
	case SVCBKeyECH:
		return "ech"
	case SVCBKeyIPv6Hint:
		return "ipv6hint"
	default:
		return fmt.Sprintf("key%d", uint16(k))
	}
}
