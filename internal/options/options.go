// Package options assembles the immutable set of choices a single dnsdig
// invocation resolves down to, after merging CLI flags, an optional config
// file, and built-in defaults. Once built, an Options value is never
// mutated; every downstream package takes it by value or const pointer.
package options

import (
	"fmt"
	"time"

	"github.com/duskcoil/dnsdig/internal/dnsmsg"
	"github.com/duskcoil/dnsdig/internal/dnsname"
	"github.com/duskcoil/dnsdig/internal/transport"
)

// Options is the fully-resolved configuration for one query run.
type Options struct {
	// Domain is the name being looked up.
	Domain dnsname.Name
	// Types is the ordered list of RR types to query; the orchestrator
	// issues one exchange per entry.
	Types []dnsmsg.QType
	Class dnsmsg.QClass

	// Server is the resolver to query. Empty means "use the system
	// resolver" (see internal/sysresolv).
	Server string
	Port   int
	Mode   transport.Mode

	Timeout    time.Duration
	Retries    int
	TCPOnly    bool
	IgnoreTC   bool // do not retry over TCP when TC is set

	RecursionDesired bool
	DNSSECOK         bool
	AuthenticData    bool
	CheckingDisabled bool
	EDNSUDPSize      uint16
	DisableEDNS      bool
	NSID             bool
	Cookie           bool

	Trace     bool
	ShortForm bool
	Format    OutputFormat
	Stats     bool

	DoHPath            string
	ServerName         string
	InsecureSkipVerify bool

	// IPVersion restricts UDP/TCP/DoT dialing to one socket family.
	IPVersion transport.IPVersion
	// ALPN offers the "dot" protocol identifier during the DoT handshake.
	ALPN bool
	// Cert is a custom PEM-encoded trust anchor for DoT/DoH; nil uses the
	// system trust store.
	Cert []byte
	// HTTPSVersion selects HTTP/1.1 or HTTP/2 for DoH.
	HTTPSVersion transport.HTTPSVersion
}

// OutputFormat selects a result formatter (internal/format).
type OutputFormat string

const (
	FormatText OutputFormat = "text"
	FormatJSON OutputFormat = "json"
	FormatShort OutputFormat = "short"
)

// Default returns the baseline Options a bare `dnsdig <name>` resolves to:
// a single A-record lookup over UDP with recursion desired, EDNS at 1232
// bytes (the DNS Flag Day 2020 recommended size), and TCP fallback enabled.
func Default(name dnsname.Name) Options {
	return Options{
		Domain:           name,
		Types:            []dnsmsg.QType{dnsmsg.TypeA},
		Class:            dnsmsg.ClassIN,
		Mode:             transport.ModeUDP,
		Timeout:          5 * time.Second,
		Retries:          2,
		RecursionDesired: true,
		EDNSUDPSize:      1232,
		Format:           FormatText,
	}
}

// Endpoint builds the transport.Endpoint this run should dial.
func (o Options) Endpoint() transport.Endpoint {
	return transport.Endpoint{
		Host:               o.Server,
		Port:               o.Port,
		ServerName:         o.ServerName,
		DoHPath:            o.DoHPath,
		InsecureSkipVerify: o.InsecureSkipVerify,
		IPVersion:          o.IPVersion,
		ALPN:               o.ALPN,
		Cert:               o.Cert,
		HTTPSVersion:       o.HTTPSVersion,
		RecvSize:           int(o.EDNSUDPSize),
	}
}

// EffectiveMode returns the transport mode for the first attempt, forcing
// TCP when TCPOnly is set.
func (o Options) EffectiveMode() transport.Mode {
	if o.TCPOnly && o.Mode == transport.ModeUDP {
		return transport.ModeTCP
	}
	return o.Mode
}

// Validate checks invariants Options must hold before use: at least one
// query type, a positive timeout, and a non-negative retry count.
func (o Options) Validate() error {
	if len(o.Types) == 0 {
		return fmt.Errorf("options: at least one query type is required")
	}
	if o.Timeout <= 0 {
		return fmt.Errorf("options: timeout must be positive")
	}
	if o.Retries < 0 {
		return fmt.Errorf("options: retries must be non-negative")
	}
	if o.EDNSUDPSize != 0 && o.EDNSUDPSize < 512 {
		return fmt.Errorf("options: edns udp size must be 0 or >= 512")
	}
	return nil
}
