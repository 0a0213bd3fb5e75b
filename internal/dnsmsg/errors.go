// Package dnsmsg implements the RFC 1035 (+ RFC 3596, RFC 4034/4035, RFC
// 6891, RFC 9460, ...) wire-format codec: header, question, resource-record
// envelope, per-RRTYPE RDATA, EDNS(0) OPT, and NSEC/NSEC3 type bitmaps.
//
// Standards compliance:
//
//   - RFC 1035: Domain Names - Implementation and Specification
//   - RFC 3596: DNS Extensions to Support IP Version 6
//   - RFC 4034 / RFC 4035: DNSSEC Resource Records and Protocol Extensions
//   - RFC 5155: DNS Security (DNSSEC) Hashed Authenticated Denial of Existence
//   - RFC 6891: Extension Mechanisms for DNS (EDNS0)
//   - RFC 7873: Domain Name System (DNS) Cookies
//   - RFC 7830 / RFC 7871 / RFC 8914: EDNS Padding, Client Subnet, Extended Error
//   - RFC 9460: Service Binding and Parameter Specification (SVCB/HTTPS)
//
// Each resource record type is represented by an explicit tagged variant
// (see the RData interface in rr.go and the rdata_*.go files) rather than a single generic struct, so that callers get
// compile-time field access instead of untyped interface{} punning.
package dnsmsg

import "errors"

// ErrProtocol is the generic protocol-error sentinel, wrapped by errors that
// fit none of the specific sentinels below (e.g. ParseEDNSMeta on a non-OPT
// record). The specific sentinels are independent errors and do not wrap it.
var ErrProtocol = errors.New("dnsmsg: protocol error")

var (
	// ErrUnknownOpcode is returned when a header's Opcode field does not
	// correspond to a recognized DNS operation.
	ErrUnknownOpcode = errors.New("dnsmsg: unknown opcode")
	// ErrUnknownPacketType mirrors the spec's "UnknowPacketType" category:
	// a header whose QR/Opcode combination cannot be classified.
	ErrUnknownPacketType = errors.New("dnsmsg: unknown packet type")
	// ErrTruncatedMessage is returned whenever a read would run past the
	// end of the message buffer.
	ErrTruncatedMessage = errors.New("dnsmsg: message truncated")
	// ErrRDLengthOverrun is returned when an RDATA parser does not consume
	// exactly RDLENGTH bytes, or when RDLENGTH itself overshoots the
	// remaining buffer.
	ErrRDLengthOverrun = errors.New("dnsmsg: rdlength overruns record")
	// ErrBadBitmap is returned when a NSEC/NSEC3/CSYNC type bitmap window
	// is malformed (bad block length, truncated window).
	ErrBadBitmap = errors.New("dnsmsg: malformed type bitmap")
)
