//go:build !linux

package transport

import "net"

// tuneUDPSocket is a no-op outside Linux; golang.org/x/sys/unix socket
// option tuning is Linux-specific.
func tuneUDPSocket(conn *net.UDPConn) {}
