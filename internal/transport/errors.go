package transport

import (
	"errors"
	"fmt"
	"net"
)

// Sentinels wrapped by each transport's dial/send/recv errors, so
// cmd/dnsdig can map a failure to the exit code spec.md §7 assigns its
// category (network, timeout, TLS, HTTPS) via errors.Is.
var (
	// ErrTimeout is wrapped when a deadline elapses on dial, send, or recv.
	ErrTimeout = errors.New("transport: timed out")
	// ErrConnect is wrapped when establishing the underlying connection
	// fails (UDP/TCP dial, DoT TCP dial before the TLS handshake).
	ErrConnect = errors.New("transport: connect failed")
	// ErrBind marks a failure to bind the local socket. No transport wraps
	// it: the local bind happens inside the dial, so such a failure is
	// reported as ErrConnect.
	ErrBind = errors.New("transport: bind failed")
	// ErrTLSHandshake is wrapped when the DoT TLS handshake fails.
	ErrTLSHandshake = errors.New("transport: tls handshake failed")
	// ErrHTTPClient is wrapped when a DoH request fails at the HTTP layer
	// (non-transport-error round trip failures, bad status codes).
	ErrHTTPClient = errors.New("transport: http client error")
)

// wrapNetError classifies a net.Error (or plain I/O error) as a timeout or
// a connect failure and wraps it with the matching sentinel, so callers
// further up the stack can map it to an exit code with errors.Is.
func wrapNetError(op string, err error) error {
	if err == nil {
		return nil
	}
	var nerr net.Error
	if errors.As(err, &nerr) && nerr.Timeout() {
		return fmt.Errorf("%s: %w: %v", op, ErrTimeout, err)
	}
	return fmt.Errorf("%s: %w: %v", op, ErrConnect, err)
}
