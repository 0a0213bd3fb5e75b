package transport

import (
	"context"
	"fmt"
	"net"
	"time"

	"github.com/duskcoil/dnsdig/internal/pool"
)

const defaultUDPRecvSize = 4096

// recvBufPool recycles scratch read buffers across the several exchanges a
// single invocation issues (one per requested RR type, or one per --trace
// hop), instead of allocating a fresh 4KiB buffer for every UDP read.
var recvBufPool = pool.New(func() *[]byte {
	b := make([]byte, defaultUDPRecvSize)
	return &b
})

// udpTransport is a single UDP socket dedicated to one exchange.
type udpTransport struct {
	conn     *net.UDPConn
	recvSize int
}

func dialUDP(ctx context.Context, ep Endpoint, timeout time.Duration) (Transport, error) {
	network := ep.IPVersion.network("udp")
	addr, err := net.ResolveUDPAddr(network, net.JoinHostPort(ep.Host, portString(ep.portOrDefault(53))))
	if err != nil {
		return nil, fmt.Errorf("resolve udp address: %w: %v", ErrConnect, err)
	}
	d := net.Dialer{Timeout: timeout}
	rawConn, err := d.DialContext(ctx, network, addr.String())
	if err != nil {
		return nil, wrapNetError(fmt.Sprintf("dial udp %s", addr), err)
	}
	conn, ok := rawConn.(*net.UDPConn)
	if !ok {
		rawConn.Close()
		return nil, fmt.Errorf("dial udp %s: %w: unexpected connection type", addr, ErrConnect)
	}
	tuneUDPSocket(conn)
	recvSize := ep.RecvSize
	if recvSize <= 0 {
		recvSize = defaultUDPRecvSize
	}
	return &udpTransport{conn: conn, recvSize: recvSize}, nil
}

func (t *udpTransport) Send(ctx context.Context, msg []byte) (int, error) {
	if err := applyDeadline(ctx, t.conn); err != nil {
		return 0, err
	}
	n, err := t.conn.Write(msg)
	if err != nil {
		return n, wrapNetError("udp write", err)
	}
	return n, nil
}

func (t *udpTransport) Recv(ctx context.Context) ([]byte, int, error) {
	if err := applyDeadline(ctx, t.conn); err != nil {
		return nil, 0, err
	}
	buf := recvBufPool.Get()
	if len(*buf) < t.recvSize {
		*buf = make([]byte, t.recvSize)
	}
	n, err := t.conn.Read((*buf)[:t.recvSize])
	if err != nil {
		recvBufPool.Put(buf)
		return nil, 0, wrapNetError("udp read", err)
	}
	out := make([]byte, n)
	copy(out, (*buf)[:n])
	recvBufPool.Put(buf)
	return out, n, nil
}

func (t *udpTransport) UsesLeadingLength() bool { return false }
func (t *udpTransport) Mode() Mode              { return ModeUDP }
func (t *udpTransport) Close() error            { return t.conn.Close() }

func applyDeadline(ctx context.Context, conn net.Conn) error {
	if dl, ok := ctx.Deadline(); ok {
		return conn.SetDeadline(dl)
	}
	return conn.SetDeadline(time.Time{})
}

func portString(p int) string { return fmt.Sprintf("%d", p) }
