// Package httpd implements the connection lifecycle, worker pool, and
// acceptor that together make up the server's concurrency model: one
// acceptor goroutine, a bounded channel of accepted connections, and a
// fixed pool of worker goroutines each driving one connection at a time
// to completion. Grounded on the producer/consumer queue.Queue()+Thread
// pool in Worker/Server (hw5/httpd.py), expressed with Go channels and
// goroutines instead of threads and a blocking queue.
package httpd

import (
	"bufio"
	"errors"
	"log"
	"net"
	"os"
	"strings"
	"time"

	"github.com/ngalkov/httpd/internal/httpd/fileserve"
	"github.com/ngalkov/httpd/internal/httpd/http11"
	"github.com/ngalkov/httpd/internal/httpd/httperr"
)

// connState names the per-connection lifecycle stages.
type connState int

const (
	stateIdle connState = iota
	stateReading
	stateDispatching
	stateResponding
	stateClosing
)

func (s connState) String() string {
	switch s {
	case stateIdle:
		return "idle"
	case stateReading:
		return "reading"
	case stateDispatching:
		return "dispatching"
	case stateResponding:
		return "responding"
	case stateClosing:
		return "closing"
	default:
		return "unknown"
	}
}

// connection drives one accepted socket through repeated
// idle -> reading -> dispatching -> responding -> (idle | closing) cycles.
// A connection is owned by exactly one worker goroutine for its entire
// life; nothing about it is shared, so it needs no synchronization of its
// own (unlike shockwave's atomic-field Connection, built for a
// goroutine-per-connection model where callers could touch it concurrently).
type connection struct {
	conn   net.Conn
	reader *bufio.Reader

	root        string
	idleTimeout time.Duration
	logger      *log.Logger

	state connState
}

func newConnection(conn net.Conn, root string, idleTimeout time.Duration, logger *log.Logger) *connection {
	return &connection{
		conn:        conn,
		reader:      bufio.NewReader(conn),
		root:        root,
		idleTimeout: idleTimeout,
		logger:      logger,
		state:       stateIdle,
	}
}

// serve runs the connection to completion, handling as many pipelined
// requests as the peer sends while keep-alive holds, then closes the
// socket. It never returns an error: all failures are logged and resolved
// by closing the connection, mirroring the original's per-connection
// handler loop (HTTPHandler.handle, hw5/httpd.py) which never propagates
// connection-level errors past the worker thread.
func (c *connection) serve() {
	defer c.close()

	for {
		c.state = stateIdle
		if c.idleTimeout > 0 {
			if err := c.conn.SetDeadline(time.Now().Add(c.idleTimeout)); err != nil {
				return
			}
		}

		c.state = stateReading
		req, err := http11.Parse(c.reader)
		if err != nil {
			c.handleReadError(err)
			return
		}
		req.RemoteAddr = c.conn.RemoteAddr().String()

		c.state = stateDispatching
		keepAlive := negotiateKeepAlive(req)

		c.state = stateResponding
		ok, err := c.respond(req, keepAlive)
		if err != nil {
			c.logger.Printf("%s - error writing response: %v", req.RemoteAddr, err)
			return
		}

		if !ok || !keepAlive {
			c.state = stateClosing
			return
		}
	}
}

// handleReadError logs the outcome of a failed or closed read. A clean
// close or idle timeout between requests is routine and is not logged;
// anything else that carries an httperr.Error gets an error response
// before the connection closes, matching send_error's behavior in the
// original on a ValueError raised out of request parsing.
func (c *connection) handleReadError(err error) {
	c.state = stateClosing
	if errors.Is(err, http11.ErrConnectionClosed) {
		return
	}
	var httpErr *httperr.Error
	if errors.As(err, &httpErr) {
		c.writeErrorResponse(httpErr, "HTTP/1.0")
		return
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return
	}
	c.logger.Printf("%s - error reading request: %v", c.conn.RemoteAddr(), err)
}

// negotiateKeepAlive resolves the Connection header override against the
// version default: HTTP/1.1 defaults to keep-alive, HTTP/1.0 defaults to
// close, and an explicit header wins either way.
func negotiateKeepAlive(req *http11.Request) bool {
	switch v := req.Header.Get("Connection"); {
	case strings.EqualFold(v, "close"):
		return false
	case strings.EqualFold(v, "keep-alive"):
		return true
	default:
		return req.WantsKeepAlive()
	}
}

// respond resolves the request target and writes a full response. GET and
// HEAD are the only implemented methods to reach this point (anything else
// is already rejected by the parser's allow-list), but the method is still
// switched on here since HEAD reuses GET's resolution with the body
// suppressed (process_HEAD calling process_GET, hw5/httpd.py 226-229).
//
// The returned bool reports whether the connection may stay open: a
// resolver error (404/403) always closes it, even on an otherwise
// keep-alive request. An error response always ends the connection.
func (c *connection) respond(req *http11.Request, keepAlive bool) (bool, error) {
	resolved, rerr := fileserve.Resolve(c.root, req.Target)
	if rerr != nil {
		var httpErr *httperr.Error
		errors.As(rerr, &httpErr)
		return false, c.writeErrorResponse(httpErr, req.Version)
	}

	file, err := os.Open(resolved.Path)
	if err != nil {
		return false, c.writeErrorResponse(httperr.Forbidden(httperr.ReasonForbidden), req.Version)
	}
	defer file.Close()

	connectionValue := "keep-alive"
	if !keepAlive {
		connectionValue = "close"
	}

	resp := http11.NewResponse(c.conn)
	resp.Status = 200
	resp.Version = req.Version
	resp.HeadOnly = req.Method == "HEAD"

	if err := resp.WriteHeader(resolved.Size, resolved.ContentType, connectionValue); err != nil {
		return false, err
	}
	return true, resp.WriteBody(file, resolved.Size)
}

// writeErrorResponse sends a bodyless error response (process_error,
// hw5/httpd.py 231-238: errors are always head_only) with Connection:
// close: an error always ends the connection, regardless of what was
// negotiated for the request that triggered it.
func (c *connection) writeErrorResponse(httpErr *httperr.Error, version string) error {
	if httpErr == nil {
		httpErr = httperr.Internal(httperr.ReasonInternalServerError)
	}
	resp := http11.NewResponse(c.conn)
	resp.Status = httpErr.Status
	resp.Reason = httpErr.Reason
	resp.Version = version
	resp.HeadOnly = true
	return resp.WriteHeader(0, "", "close")
}

func (c *connection) close() {
	c.state = stateClosing
	_ = c.conn.Close()
}
