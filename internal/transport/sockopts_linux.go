//go:build linux

package transport

import (
	"net"

	"golang.org/x/sys/unix"
)

// tuneUDPSocket raises the kernel receive buffer for a UDP socket so that
// large EDNS responses arriving in a burst (e.g. after a TC-bit retry
// storm) are less likely to be dropped before the read syscall drains them.
// Best-effort: failures are swallowed since the socket works fine at the
// kernel default size too.
func tuneUDPSocket(conn *net.UDPConn) {
	raw, err := conn.SyscallConn()
	if err != nil {
		return
	}
	_ = raw.Control(func(fd uintptr) {
		_ = unix.SetsockoptInt(int(fd), unix.SOL_SOCKET, unix.SO_RCVBUF, 1<<20)
	})
}
