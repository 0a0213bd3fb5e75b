package transport

import (
	"context"
	"crypto/tls"
	"fmt"
	"net"
	"time"
)

// dotTransport is DNS-over-TLS (RFC 7858): the same 2-byte length framing
// as plain TCP, carried inside a TLS session on port 853.
type dotTransport struct {
	conn net.Conn
}

func dialDoT(ctx context.Context, ep Endpoint, timeout time.Duration) (Transport, error) {
	d := net.Dialer{Timeout: timeout}
	rootCAs, err := ep.rootCAs()
	if err != nil {
		return nil, err
	}
	tlsCfg := &tls.Config{
		ServerName:         ep.serverNameOrHost(),
		InsecureSkipVerify: ep.InsecureSkipVerify,
		MinVersion:         tls.VersionTLS12,
		RootCAs:            rootCAs,
	}
	if ep.ALPN {
		tlsCfg.NextProtos = []string{"dot"}
	}
	addr := net.JoinHostPort(ep.Host, portString(ep.portOrDefault(853)))
	conn, err := tls.DialWithDialer(&d, ep.IPVersion.network("tcp"), addr, tlsCfg)
	if err != nil {
		if _, ok := err.(*net.OpError); ok {
			return nil, wrapNetError(fmt.Sprintf("dial dot %s", addr), err)
		}
		return nil, fmt.Errorf("dial dot %s: %w: %v", addr, ErrTLSHandshake, err)
	}
	return &dotTransport{conn: conn}, nil
}

func (t *dotTransport) Send(ctx context.Context, msg []byte) (int, error) {
	if err := applyDeadline(ctx, t.conn); err != nil {
		return 0, err
	}
	n, err := writeFramed(t.conn, msg)
	if err != nil {
		return n, wrapNetError("dot write", err)
	}
	return n, nil
}

func (t *dotTransport) Recv(ctx context.Context) ([]byte, int, error) {
	if err := applyDeadline(ctx, t.conn); err != nil {
		return nil, 0, err
	}
	msg, n, err := readFramed(t.conn)
	if err != nil {
		return nil, n, wrapNetError("dot read", err)
	}
	return msg, n, nil
}

func (t *dotTransport) UsesLeadingLength() bool { return true }
func (t *dotTransport) Mode() Mode              { return ModeDoT }
func (t *dotTransport) Close() error            { return t.conn.Close() }
