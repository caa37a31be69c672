package httpd

import (
	"log"
	"net"
)

// startWorkers launches n long-lived goroutines, each pulling accepted
// connections off queue and driving them to completion one at a time.
// Grounded on Worker.run (hw5/httpd.py 277-298): a fixed pool of daemon
// threads each looping `get_client_socket` + `handle` + `close` against a
// single shared queue.Queue(). Go's buffered channel plays the role of
// that Queue; the goroutines play the role of the daemon Threads.
func startWorkers(n int, queue <-chan net.Conn, root string, cfg serverTiming, logger *log.Logger) {
	for i := 0; i < n; i++ {
		go runWorker(queue, root, cfg, logger)
	}
}

func runWorker(queue <-chan net.Conn, root string, cfg serverTiming, logger *log.Logger) {
	for conn := range queue {
		serveOne(conn, root, cfg, logger)
	}
}

// serveOne drives a single accepted connection through its full lifecycle,
// recovering from any panic raised while doing so (bolt's
// bolt/middleware/recovery.go pattern: log with the peer address, then let
// the worker loop back around to the next connection instead of dying).
func serveOne(conn net.Conn, root string, cfg serverTiming, logger *log.Logger) {
	defer func() {
		if r := recover(); r != nil {
			logger.Printf("%s - panic serving connection: %v", conn.RemoteAddr(), r)
			_ = conn.Close()
		}
	}()

	c := newConnection(conn, root, cfg.idleTimeout, logger)
	c.serve()
}
