package httpd

import (
	"net"
	"strings"
	"testing"
	"time"
)

func TestWorkersDrainQueueConcurrently(t *testing.T) {
	root := testRoot(t)
	queue := make(chan net.Conn, 4)
	timing := serverTiming{idleTimeout: time.Second}

	startWorkers(2, queue, root, timing, discardLogger)

	conns := []*mockConn{
		newMockConn("GET /index.html HTTP/1.0\r\n\r\n"),
		newMockConn("GET /index.html HTTP/1.0\r\n\r\n"),
	}
	for _, c := range conns {
		queue <- c
	}

	deadline := time.Now().Add(2 * time.Second)
	for _, c := range conns {
		for !c.isClosed() {
			if time.Now().After(deadline) {
				t.Fatalf("connection not processed before deadline")
			}
			time.Sleep(5 * time.Millisecond)
		}
	}

	for _, c := range conns {
		if !strings.Contains(c.writeData.String(), "HTTP/1.0 200 OK") {
			t.Errorf("connection response = %q, want 200 OK", c.writeData.String())
		}
	}
	close(queue)
}

func TestServeOneRecoversFromPanic(t *testing.T) {
	// A mockConn without a read buffer panics (nil *strings.Reader) on the
	// first Read inside the parser; serveOne must recover from that panic
	// instead of propagating it to the caller.
	conn := &mockConn{writeData: &strings.Builder{}}

	serveOne(conn, "/nonexistent-root-for-panic-test", serverTiming{idleTimeout: time.Second}, discardLogger)

	if !conn.isClosed() {
		t.Errorf("connection should be closed after serveOne returns")
	}
}
