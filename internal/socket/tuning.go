// Package socket applies conservative socket tuning to the listener and to
// each accepted connection. Generalized from shockwave's socket package
// (shockwave/pkg/shockwave/socket/tuning.go), trimmed to the handful of
// options that matter for a static file server (no TCP_FASTOPEN/QUICKACK/
// DEFER_ACCEPT tuning meant for a high-throughput fasthttp-style workload)
// and rebuilt on golang.org/x/sys/unix instead of raw syscall, since unix
// provides the same setsockopt surface with better cross-platform constant
// coverage.
package socket

import (
	"net"
)

// TuneListener applies SO_REUSEADDR to the listening socket so a restarted
// server can immediately rebind the same address.
func TuneListener(l net.Listener) error {
	tcpListener, ok := l.(*net.TCPListener)
	if !ok {
		return nil
	}
	raw, err := tcpListener.SyscallConn()
	if err != nil {
		return err
	}
	var sockErr error
	if err := raw.Control(func(fd uintptr) {
		sockErr = setReuseAddr(int(fd))
	}); err != nil {
		return err
	}
	return sockErr
}

// TuneConn applies TCP_NODELAY and SO_KEEPALIVE to an accepted connection.
// Nagle's algorithm buys nothing here: responses are either a small
// header-only error reply or a file already read in large chunks, never a trickle of tiny
// writes that benefit from coalescing.
func TuneConn(conn net.Conn) error {
	tcpConn, ok := conn.(*net.TCPConn)
	if !ok {
		return nil
	}
	if err := tcpConn.SetNoDelay(true); err != nil {
		return err
	}
	return tcpConn.SetKeepAlive(true)
}
