package transport

import (
	"context"
	"encoding/binary"
	"fmt"
	"io"
	"net"
	"time"

	"github.com/duskcoil/dnsdig/internal/helpers"
)

const maxDNSMessageSize = 65535

// tcpTransport frames each message with the RFC 1035 §4.2.2 2-byte
// big-endian length prefix.
type tcpTransport struct {
	conn net.Conn
}

func dialTCP(ctx context.Context, ep Endpoint, timeout time.Duration) (Transport, error) {
	d := net.Dialer{Timeout: timeout}
	conn, err := d.DialContext(ctx, ep.IPVersion.network("tcp"), net.JoinHostPort(ep.Host, portString(ep.portOrDefault(53))))
	if err != nil {
		return nil, wrapNetError(fmt.Sprintf("dial tcp %s", ep.Host), err)
	}
	return &tcpTransport{conn: conn}, nil
}

func (t *tcpTransport) Send(ctx context.Context, msg []byte) (int, error) {
	if err := applyDeadline(ctx, t.conn); err != nil {
		return 0, err
	}
	n, err := writeFramed(t.conn, msg)
	if err != nil {
		return n, wrapNetError("tcp write", err)
	}
	return n, nil
}

func (t *tcpTransport) Recv(ctx context.Context) ([]byte, int, error) {
	if err := applyDeadline(ctx, t.conn); err != nil {
		return nil, 0, err
	}
	msg, n, err := readFramed(t.conn)
	if err != nil {
		return nil, n, wrapNetError("tcp read", err)
	}
	return msg, n, nil
}

func (t *tcpTransport) UsesLeadingLength() bool { return true }
func (t *tcpTransport) Mode() Mode              { return ModeTCP }
func (t *tcpTransport) Close() error            { return t.conn.Close() }

// writeFramed writes a 2-byte length prefix followed by msg, using two
// writes so the prefix and body are never concatenated into a fresh
// allocation.
func writeFramed(w io.Writer, msg []byte) (int, error) {
	var prefix [2]byte
	binary.BigEndian.PutUint16(prefix[:], helpers.ClampIntToUint16(len(msg)))
	n1, err := w.Write(prefix[:])
	if err != nil {
		return n1, fmt.Errorf("write length prefix: %w", err)
	}
	n2, err := w.Write(msg)
	if err != nil {
		return n1 + n2, fmt.Errorf("write message body: %w", err)
	}
	return n1 + n2, nil
}

// readFramed reads a 2-byte length prefix and then exactly that many bytes.
func readFramed(r io.Reader) ([]byte, int, error) {
	var prefix [2]byte
	if _, err := io.ReadFull(r, prefix[:]); err != nil {
		return nil, 0, fmt.Errorf("read length prefix: %w", err)
	}
	n := int(binary.BigEndian.Uint16(prefix[:]))
	if n == 0 || n > maxDNSMessageSize {
		return nil, 2, fmt.Errorf("invalid framed message length %d", n)
	}
	body := make([]byte, n)
	if _, err := io.ReadFull(r, body); err != nil {
		return nil, 2, fmt.Errorf("read message body: %w", err)
	}
	return body, 2 + n, nil
}
