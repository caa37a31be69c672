package httpd

import (
	"io"
	"log"
	"net"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"
)

// mockConn is a minimal net.Conn double, grounded on shockwave's
// mockConn (shockwave/pkg/shockwave/http11/test_helpers_test.go): reads
// come from a fixed buffer, writes accumulate in a string builder, deadlines
// are accepted and ignored.
type mockConn struct {
	readData  *strings.Reader
	writeData *strings.Builder
	closed    bool
	mu        sync.Mutex
}

func newMockConn(data string) *mockConn {
	return &mockConn{
		readData:  strings.NewReader(data),
		writeData: &strings.Builder{},
	}
}

func (m *mockConn) Read(b []byte) (int, error)  { return m.readData.Read(b) }
func (m *mockConn) Write(b []byte) (int, error) { return m.writeData.Write(b) }

func (m *mockConn) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}

func (m *mockConn) isClosed() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.closed
}

func (m *mockConn) LocalAddr() net.Addr  { return &net.TCPAddr{IP: net.ParseIP("127.0.0.1"), Port: 8080} }
func (m *mockConn) RemoteAddr() net.Addr {
	return &net.TCPAddr{IP: net.ParseIP("127.0.0.1"), Port: 12345}
}
func (m *mockConn) SetDeadline(time.Time) error      { return nil }
func (m *mockConn) SetReadDeadline(time.Time) error  { return nil }
func (m *mockConn) SetWriteDeadline(time.Time) error { return nil }

func testRoot(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	if err := os.WriteFile(filepath.Join(root, "index.html"), []byte("<html>hi</html>\n"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return root
}

var discardLogger = log.New(io.Discard, "", 0)

func TestConnectionClosesAfterSingleHTTP10Request(t *testing.T) {
	root := testRoot(t)
	conn := newMockConn("GET /index.html HTTP/1.0\r\n\r\n")

	c := newConnection(conn, root, time.Second, discardLogger)
	c.serve()

	if !conn.isClosed() {
		t.Errorf("connection should be closed after an HTTP/1.0 request with no keep-alive header")
	}
	if !strings.Contains(conn.writeData.String(), "Connection: close") {
		t.Errorf("response should carry Connection: close, got %q", conn.writeData.String())
	}
}

func TestConnectionKeepAliveHandlesPipelinedRequests(t *testing.T) {
	root := testRoot(t)
	conn := newMockConn("GET /index.html HTTP/1.1\r\n\r\nGET /index.html HTTP/1.1\r\n\r\n")

	c := newConnection(conn, root, time.Second, discardLogger)
	c.serve()

	out := conn.writeData.String()
	if strings.Count(out, "HTTP/1.1 200 OK") != 2 {
		t.Errorf("expected two 200 responses, got %q", out)
	}
}

func TestConnectionExplicitCloseHeaderOverridesHTTP11Default(t *testing.T) {
	root := testRoot(t)
	conn := newMockConn("GET /index.html HTTP/1.1\r\nConnection: close\r\n\r\n")

	c := newConnection(conn, root, time.Second, discardLogger)
	c.serve()

	if !conn.isClosed() {
		t.Errorf("explicit Connection: close should end the connection after one request")
	}
}

func TestConnectionErrorResponseIsHeadOnly(t *testing.T) {
	root := testRoot(t)
	conn := newMockConn("GET /missing.html HTTP/1.1\r\n\r\n")

	c := newConnection(conn, root, time.Second, discardLogger)
	c.serve()

	out := conn.writeData.String()
	if !strings.Contains(out, "HTTP/1.1 404 Not Found") {
		t.Errorf("expected 404 response, got %q", out)
	}
	if !strings.HasSuffix(out, "\r\n\r\n") {
		t.Errorf("error response should end with the header block and carry no body, got %q", out)
	}
}

func TestConnectionCleanCloseProducesNoResponse(t *testing.T) {
	root := testRoot(t)
	conn := newMockConn("")

	c := newConnection(conn, root, time.Second, discardLogger)
	c.serve()

	if conn.writeData.Len() != 0 {
		t.Errorf("a connection closed before any bytes should not write a response, got %q", conn.writeData.String())
	}
	if !conn.isClosed() {
		t.Errorf("connection should be closed")
	}
}
