// Package response parses server replies and validates that a reply
// actually answers the query it is paired with, mitigating off-path cache
// poisoning and confused-deputy bugs the same way a stub resolver would.
package response

import (
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"net"
	"strings"

	"github.com/duskcoil/dnsdig/internal/dnsmsg"
	"github.com/duskcoil/dnsdig/internal/dnsname"
)

// Errors returned by correspondence validation (RFC 5452 §9.1-style checks).
var (
	ErrNoQuestion    = errors.New("response: reply carries no question section")
	ErrIDMismatch    = errors.New("response: transaction id does not match query")
	ErrNameMismatch  = errors.New("response: qname does not match query")
	ErrTypeMismatch  = errors.New("response: qtype does not match query")
	ErrClassMismatch = errors.New("response: qclass does not match query")
)

// Response pairs a parsed reply with the query it answers. Mismatch is set
// when the reply failed correspondence validation (RFC 5452 §9.1); the
// reply is still kept and displayed, matching a stub resolver that logs a
// spoofing/misdelivery attempt rather than silently discarding it.
type Response struct {
	Query    dnsmsg.Packet
	Reply    dnsmsg.Packet
	RawSize  int
	Mismatch error
}

// Parse decodes raw reply bytes. A malformed wire message is a hard error;
// a well-formed reply that does not correspond to the query (wrong ID or
// echoed question) is logged and returned with Mismatch set rather than
// aborting the exchange, since a single-shot CLI query has no retry loop
// to fall back into.
func Parse(query dnsmsg.Packet, raw []byte) (Response, error) {
	reply, err := dnsmsg.ParsePacket(raw)
	if err != nil {
		return Response{}, fmt.Errorf("parse reply: %w", err)
	}
	resp := Response{Query: query, Reply: reply, RawSize: len(raw)}
	if err := Validate(query, reply); err != nil {
		slog.Warn("response does not correspond to query", "error", err)
		resp.Mismatch = err
	}
	return resp, nil
}

// Validate checks that reply corresponds to query: matching transaction ID
// and an echoed question section with the same QNAME/QTYPE/QCLASS.
func Validate(query, reply dnsmsg.Packet) error {
	if reply.Header.ID != query.Header.ID {
		return fmt.Errorf("%w: query=%d reply=%d", ErrIDMismatch, query.Header.ID, reply.Header.ID)
	}
	if len(reply.Questions) == 0 {
		// Some servers omit the question section on SERVFAIL/REFUSED; only
		// treat this as fatal when the query itself carried one.
		if len(query.Questions) > 0 {
			return ErrNoQuestion
		}
		return nil
	}
	qq := query.Questions[0]
	rq := reply.Questions[0]
	if !qq.Name.Equal(rq.Name) {
		return fmt.Errorf("%w: query=%s reply=%s", ErrNameMismatch, qq.Name, rq.Name)
	}
	if qq.QType != rq.QType {
		return fmt.Errorf("%w: query=%s reply=%s", ErrTypeMismatch, qq.QType, rq.QType)
	}
	if qq.Class != rq.Class {
		return fmt.Errorf("%w: query=%s reply=%s", ErrClassMismatch, qq.Class, rq.Class)
	}
	return nil
}

// IsTruncated reports whether the reply's TC bit is set, meaning the
// caller should retry over TCP (RFC 1035 §4.1.1).
func (r Response) IsTruncated() bool { return r.Reply.Header.TC() }

// RCode returns the reply's combined (base + EDNS extended) response code.
func (r Response) RCode() dnsmsg.RCode {
	if opt, ok := r.Reply.OPT(); ok {
		if meta, err := dnsmsg.ParseEDNSMeta(opt); err == nil {
			return dnsmsg.CombinedRCode(r.Reply.Header.RCode(), meta)
		}
	}
	return r.Reply.Header.RCode()
}

// NSRecords returns every NS record across the authority section.
func (r Response) NSRecords() []dnsmsg.ResourceRecord {
	return filterByType(r.Reply.Authority, dnsmsg.TypeNS)
}

// GlueAddresses returns every A/AAAA record in the additional section,
// i.e. the glue records a referral supplies alongside its NS records.
func (r Response) GlueAddresses() []dnsmsg.ResourceRecord {
	var out []dnsmsg.ResourceRecord
	for _, rr := range r.Reply.Additional {
		if rr.Type == dnsmsg.TypeA || rr.Type == dnsmsg.TypeAAAA {
			out = append(out, rr)
		}
	}
	return out
}

func filterByType(rrs []dnsmsg.ResourceRecord, t dnsmsg.QType) []dnsmsg.ResourceRecord {
	var out []dnsmsg.ResourceRecord
	for _, rr := range rrs {
		if rr.Type == t {
			out = append(out, rr)
		}
	}
	return out
}

// RandomNSRecord picks a uniformly random NS record from the authority
// section, for a trace loop that does not want to always hit the
// alphabetically-first nameserver.
func RandomNSRecord(rrs []dnsmsg.ResourceRecord) (dnsname.Name, bool) {
	ns := filterByType(rrs, dnsmsg.TypeNS)
	if len(ns) == 0 {
		return dnsname.Name{}, false
	}
	pick := ns[rand.Intn(len(ns))]
	nr, ok := pick.RData.(dnsmsg.NameRData)
	if !ok {
		return dnsname.Name{}, false
	}
	return nr.Target, true
}

// RandomGlueRecord picks a uniformly random address record matching name
// from rrs (typically the additional section), for load-spreading across
// the candidate nameservers a referral supplied glue for.
func RandomGlueRecord(rrs []dnsmsg.ResourceRecord, name dnsname.Name) (net.IP, bool) {
	var candidates []net.IP
	for _, rr := range rrs {
		if !rr.Name.Equal(name) {
			continue
		}
		switch v := rr.RData.(type) {
		case dnsmsg.ARecord:
			candidates = append(candidates, v.Addr)
		case dnsmsg.AAAARecord:
			candidates = append(candidates, v.Addr)
		}
	}
	if len(candidates) == 0 {
		return nil, false
	}
	return candidates[rand.Intn(len(candidates))], true
}

// IPAddress extracts the first address carried by an A/AAAA resource
// record, or nil if rr is not an address record.
func IPAddress(rr dnsmsg.ResourceRecord) net.IP {
	switch v := rr.RData.(type) {
	case dnsmsg.ARecord:
		return v.Addr
	case dnsmsg.AAAARecord:
		return v.Addr
	default:
		return nil
	}
}

// Summary renders a one-line human-readable description of the reply,
// used in --trace and verbose logging output.
func (r Response) Summary() string {
	var b strings.Builder
	fmt.Fprintf(&b, "rcode=%s answers=%d authority=%d additional=%d",
		r.RCode(), len(r.Reply.Answer), len(r.Reply.Authority), len(r.Reply.Additional))
	return b.String()
}
