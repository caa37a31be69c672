//go:build unix

package socket

import "golang.org/x/sys/unix"

// setReuseAddr sets SO_REUSEADDR on fd, grounded on shockwave's
// applyListenerOptions (shockwave/pkg/shockwave/socket/tuning_linux.go),
// using golang.org/x/sys/unix instead of raw syscall for the constant.
func setReuseAddr(fd int) error {
	return unix.SetsockoptInt(fd, unix.SOL_SOCKET, unix.SO_REUSEADDR, 1)
}
