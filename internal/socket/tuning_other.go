//go:build !unix

package socket

// setReuseAddr is a no-op on platforms without a unix-style setsockopt
// surface (net.Listen's own defaults are used instead).
func setReuseAddr(fd int) error {
	return nil
}
