package http11

import (
	"io"
	"strconv"
	"time"

	"github.com/valyala/bytebufferpool"
)

// ServerBanner is the value of the Server response header ("VS_Server/0.1"
// in the original; renamed for this module).
const ServerBanner = "httpd/1.0"

// dateFormat is the RFC 1123 wire format used for the Date header,
// rendered in GMT regardless of local server time zone.
const dateFormat = "Mon, 02 Jan 2006 15:04:05 GMT"

// Response describes one outgoing status line and header block. Body is
// written separately by the caller via WriteBody after WriteHeader,
// so a file body can be streamed without buffering it alongside the
// headers.
type Response struct {
	Status   int
	Reason   string // overrides the table in status.go when non-empty
	Version  string // echoed on the status line; defaults to "HTTP/1.0"
	Header   Header
	HeadOnly bool // suppress body even when the content length is > 0 (HEAD)

	w           io.Writer
	headersSent bool
}

// NewResponse wraps w, the underlying connection writer.
func NewResponse(w io.Writer) *Response {
	return &Response{w: w}
}

// Reset clears the response for reuse from a pool.
func (r *Response) Reset(w io.Writer) {
	r.Status = 0
	r.Reason = ""
	r.Version = ""
	r.Header.Reset()
	r.HeadOnly = false
	r.w = w
	r.headersSent = false
}

// version resolves the status-line protocol token, echoing the request's
// own version the way HTTPresponse.http_version does
// (`self.request.http_version or "HTTP/1.0"`, hw5/httpd.py 221).
func (r *Response) version() string {
	if r.Version != "" {
		return r.Version
	}
	return "HTTP/1.0"
}

// reason resolves the phrase to use on the status line.
func (r *Response) reason() string {
	if r.Reason != "" {
		return r.Reason
	}
	if p := ReasonPhrase(r.Status); p != "" {
		return p
	}
	return "Unknown"
}

// WriteHeader assembles and writes the status line and header block in one
// call. A negative contentLength omits the Content-Length header; every
// response this server sends carries one (0 when no body follows), so that
// case is unused in practice but kept for callers that need a length-less
// reply.
//
// Grounded on shockwave's http11.Response.WriteHeader (shockwave/pkg/
// shockwave/http11/response.go), which also assembles the full header
// block into one buffer before a single Write. shockwave pulls that
// buffer from a sync.Pool of raw []byte; this version pulls it from
// bytebufferpool.Pool, a buffer-pooling library present elsewhere in
// the wider dependency set and wired in here instead.
func (r *Response) WriteHeader(contentLength int64, contentType, connection string) error {
	if r.headersSent {
		return nil
	}
	r.headersSent = true

	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	buf.WriteString(r.version())
	buf.WriteByte(' ')
	buf.WriteString(strconv.Itoa(r.Status))
	buf.WriteByte(' ')
	buf.WriteString(r.reason())
	buf.WriteString("\r\n")

	writeHeaderLine(buf, "Server", ServerBanner)
	writeHeaderLine(buf, "Date", nowGMT())

	if contentLength >= 0 {
		writeHeaderLine(buf, "Content-Length", strconv.FormatInt(contentLength, 10))
		if contentLength > 0 && contentType != "" {
			writeHeaderLine(buf, "Content-Type", contentType)
		}
	}
	if connection != "" {
		writeHeaderLine(buf, "Connection", connection)
	}

	r.Header.VisitAll(func(name, value string) {
		writeHeaderLine(buf, name, value)
	})

	buf.WriteString("\r\n")

	_, err := r.w.Write(buf.B)
	return err
}

// WriteBody streams n bytes from body to the connection. No-op when the
// response is to a HEAD request: HEAD returns headers only.
func (r *Response) WriteBody(body io.Reader, n int64) error {
	if r.HeadOnly || n == 0 {
		return nil
	}
	_, err := io.CopyN(r.w, body, n)
	return err
}

func writeHeaderLine(buf *bytebufferpool.ByteBuffer, name, value string) {
	buf.WriteString(name)
	buf.WriteString(": ")
	buf.WriteString(value)
	buf.WriteString("\r\n")
}

// nowGMT renders the current time in the wire format required by Date.
func nowGMT() string {
	return time.Now().UTC().Format(dateFormat)
}
