package http11

// Request is a parsed HTTP/1.x start line and header block. There is no
// body: GET/HEAD carry none, and request bodies aren't handled.
type Request struct {
	Method     string // one of the implemented methods (allow-listed at parse time)
	Target     string // raw request-target, as received, not yet decoded
	Version    string // "HTTP/<major>.<minor>", e.g. "HTTP/1.1"
	ProtoMajor int
	ProtoMinor int
	Header     Header

	// RemoteAddr is the client's address, for logging.
	RemoteAddr string
}

// Reset clears the request for reuse from a pool.
func (r *Request) Reset() {
	r.Method = ""
	r.Target = ""
	r.Version = ""
	r.ProtoMajor = 0
	r.ProtoMinor = 0
	r.Header.Reset()
	r.RemoteAddr = ""
}

// WantsKeepAlive reports whether, absent any override, this request's
// protocol version defaults to a persistent connection: HTTP/1.1
// defaults to keep-alive, HTTP/1.0 defaults to close.
func (r *Request) WantsKeepAlive() bool {
	return r.ProtoMajor == 1 && r.ProtoMinor >= 1
}
