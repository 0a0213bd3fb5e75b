// Package query provides a fluent builder for outbound DNS messages, and the
// single entry point (Send) that hands a built message to a transport.
package query

import (
	"context"
	"fmt"
	"math/rand"

	"github.com/duskcoil/dnsdig/internal/dnsmsg"
	"github.com/duskcoil/dnsdig/internal/dnsname"
	"github.com/duskcoil/dnsdig/internal/transport"
)

// Query accumulates the pieces of an outbound DNS message. Every With*
// method returns the receiver so calls can be chained; none of them can
// fail, so errors only surface once Build or Send is called.
type Query struct {
	id       uint16
	domain   dnsname.Name
	qtype    dnsmsg.QType
	class    dnsmsg.QClass
	flags    uint16
	edns     *ednsConfig
	additional []dnsmsg.ResourceRecord
}

type ednsConfig struct {
	udpSize  uint16
	dnssecOK bool
	options  []dnsmsg.EDNSOption
}

// New starts a query for name/qtype in the IN class with recursion desired
// set, a random transaction ID, and no EDNS.
func New(name dnsname.Name, qtype dnsmsg.QType) *Query {
	return &Query{
		id:     uint16(rand.Intn(1 << 16)),
		domain: name,
		qtype:  qtype,
		class:  dnsmsg.ClassIN,
		flags:  dnsmsg.FlagRD,
	}
}

// WithID overrides the transaction ID (default is random).
func (q *Query) WithID(id uint16) *Query { q.id = id; return q }

// WithType overrides the query type set by New.
func (q *Query) WithType(t dnsmsg.QType) *Query { q.qtype = t; return q }

// WithClass overrides the query class (default IN).
func (q *Query) WithClass(c dnsmsg.QClass) *Query { q.class = c; return q }

// WithDomain overrides the query name set by New.
func (q *Query) WithDomain(name dnsname.Name) *Query { q.domain = name; return q }

// WithFlag sets or clears a single header flag bit (RD, AD, CD, ...).
func (q *Query) WithFlag(flag uint16, set bool) *Query {
	if set {
		q.flags |= flag
	} else {
		q.flags &^= flag
	}
	return q
}

// WithEDNS attaches an OPT pseudo-record advertising udpSize, optionally
// setting the DNSSEC OK bit and any additional EDNS options (cookie, ECS,
// padding, ...).
func (q *Query) WithEDNS(udpSize uint16, dnssecOK bool, options ...dnsmsg.EDNSOption) *Query {
	q.edns = &ednsConfig{udpSize: udpSize, dnssecOK: dnssecOK, options: options}
	return q
}

// WithAdditional appends an extra record to the additional section, for
// callers that need something beyond the EDNS OPT record (e.g. TSIG, in a
// future extension).
func (q *Query) WithAdditional(rr dnsmsg.ResourceRecord) *Query {
	q.additional = append(q.additional, rr)
	return q
}

// Build renders the accumulated state into a wire-ready Packet.
func (q *Query) Build() (dnsmsg.Packet, error) {
	header := dnsmsg.Header{ID: q.id, Flags: q.flags, QDCount: 1}
	p := dnsmsg.Packet{
		Header:    header,
		Questions: []dnsmsg.Question{{Name: q.domain, QType: q.qtype, Class: q.class}},
	}
	if q.edns != nil {
		p.Additional = append(p.Additional, dnsmsg.NewOPTRecord(q.edns.udpSize, q.edns.dnssecOK, q.edns.options))
	}
	p.Additional = append(p.Additional, q.additional...)
	return p, nil
}

// Marshal builds and serializes the query to its wire bytes.
func (q *Query) Marshal() ([]byte, error) {
	p, err := q.Build()
	if err != nil {
		return nil, err
	}
	raw, err := p.Marshal()
	if err != nil {
		return nil, fmt.Errorf("marshal query: %w", err)
	}
	return raw, nil
}

// Send marshals the query and writes it to tr, returning the number of
// bytes placed on the wire. It does not wait for or read a reply; that is
// the caller's job via tr.Recv.
func (q *Query) Send(ctx context.Context, tr transport.Transport) (int, error) {
	raw, err := q.Marshal()
	if err != nil {
		return 0, err
	}
	n, err := tr.Send(ctx, raw)
	if err != nil {
		return n, fmt.Errorf("send query: %w", err)
	}
	return n, nil
}

// ID returns the query's transaction ID.
func (q *Query) ID() uint16 { return q.id }

// Domain returns the query's target name.
func (q *Query) Domain() dnsname.Name { return q.domain }

// Type returns the query's RR type.
func (q *Query) Type() dnsmsg.QType { return q.qtype }

// Class returns the query's RR class.
func (q *Query) Class() dnsmsg.QClass { return q.class }
