// Package transport implements the wire transports a query can be sent
// over: plain UDP, TCP (RFC 1035 §4.2.2 2-byte length framing), DNS-over-TLS
// (RFC 7858) and DNS-over-HTTPS (RFC 8484). Every transport satisfies the
// same small capability interface so the orchestrator never branches on
// concrete type.
package transport

import (
	"context"
	"crypto/x509"
	"errors"
	"fmt"
	"time"
)

// Mode names a transport for logging and the --stats byte-accounting report.
type Mode string

const (
	ModeUDP Mode = "UDP"
	ModeTCP Mode = "TCP"
	ModeDoT Mode = "DoT"
	ModeDoH Mode = "DoH"
)

// IPVersion restricts which socket family a dial uses.
type IPVersion string

const (
	IPAny IPVersion = "any"
	IPv4  IPVersion = "v4"
	IPv6  IPVersion = "v6"
)

// network maps base ("udp" or "tcp") to the Go network name that restricts
// dialing to this IP version, e.g. IPv4.network("tcp") -> "tcp4".
func (v IPVersion) network(base string) string {
	switch v {
	case IPv4:
		return base + "4"
	case IPv6:
		return base + "6"
	default:
		return base
	}
}

// HTTPSVersion selects the HTTP protocol version DoH negotiates.
type HTTPSVersion string

const (
	// HTTPSVersionAuto lets DoH prefer HTTP/2 (the default).
	HTTPSVersionAuto HTTPSVersion = ""
	HTTPSVersionHTTP1 HTTPSVersion = "http1"
	HTTPSVersionHTTP2 HTTPSVersion = "http2"
)

// ErrTransportClosed names use of a transport after Close. No transport in
// this package returns it; Send/Recv after Close report whatever the
// underlying connection or HTTP client reports.
var ErrTransportClosed = errors.New("transport: use of closed transport")

// Transport sends one raw DNS message and receives its reply. A Transport
// is used for exactly one request/response exchange and then closed; the
// orchestrator does not keep transports open across exchanges.
type Transport interface {
	// Send writes a fully-marshaled DNS message to the server.
	Send(ctx context.Context, msg []byte) (bytesSent int, err error)
	// Recv reads the server's reply.
	Recv(ctx context.Context) (msg []byte, bytesReceived int, err error)
	// UsesLeadingLength reports whether this transport frames messages with
	// a 2-byte big-endian length prefix (true for TCP and DoT, false for
	// UDP and DoH, which have their own framing).
	UsesLeadingLength() bool
	// Mode identifies the transport kind.
	Mode() Mode
	// Close releases the underlying connection.
	Close() error
}

// Endpoint describes where and how to reach a DNS server.
type Endpoint struct {
	// Host is a bare IP address or hostname (DoH only).
	Host string
	// Port defaults per mode if zero (53 for UDP/TCP, 853 for DoT, 443 for DoH).
	Port int
	// ServerName is the TLS server name to verify for DoT/DoH; defaults to Host.
	ServerName string
	// DoHPath is the HTTPS path queries are POSTed to (DoH only), default "/dns-query".
	DoHPath string
	// InsecureSkipVerify disables TLS certificate verification (DoT/DoH).
	InsecureSkipVerify bool
	// IPVersion restricts the socket family UDP/TCP/DoT dial with.
	IPVersion IPVersion
	// ALPN offers the "dot" application protocol during the DoT TLS
	// handshake when true.
	ALPN bool
	// Cert is a custom PEM-encoded trust anchor for DoT/DoH; nil means use
	// the system trust store.
	Cert []byte
	// HTTPSVersion selects HTTP/1.1 or HTTP/2 for DoH.
	HTTPSVersion HTTPSVersion
	// RecvSize sizes the UDP receive buffer; <= 0 means "use the
	// transport's default". Normally set from the EDNS UDP payload size
	// (spec: "bufsize ... EDNS UDP payload size and receive buffer size").
	RecvSize int
}

func (e Endpoint) portOrDefault(def int) int {
	if e.Port != 0 {
		return e.Port
	}
	return def
}

func (e Endpoint) serverNameOrHost() string {
	if e.ServerName != "" {
		return e.ServerName
	}
	return e.Host
}

// rootCAs builds a custom trust anchor from e.Cert, or reports nil (meaning
// "use the system trust store") when no custom cert was supplied.
func (e Endpoint) rootCAs() (*x509.CertPool, error) {
	if len(e.Cert) == 0 {
		return nil, nil
	}
	pool := x509.NewCertPool()
	if !pool.AppendCertsFromPEM(e.Cert) {
		return nil, fmt.Errorf("%w: no usable certificates in supplied cert", ErrTLSHandshake)
	}
	return pool, nil
}

// Dial opens a Transport of the given mode to ep. timeout bounds the dial
// itself; per-exchange deadlines are applied by the caller via ctx on
// Send/Recv.
func Dial(ctx context.Context, mode Mode, ep Endpoint, timeout time.Duration) (Transport, error) {
	switch mode {
	case ModeUDP:
		return dialUDP(ctx, ep, timeout)
	case ModeTCP:
		return dialTCP(ctx, ep, timeout)
	case ModeDoT:
		return dialDoT(ctx, ep, timeout)
	case ModeDoH:
		return dialDoH(ctx, ep, timeout)
	default:
		return nil, errors.New("transport: unknown mode " + string(mode))
	}
}
