package httpd

import (
	"errors"
	"fmt"
	"log"
	"net"
	"time"

	"github.com/ngalkov/httpd/internal/socket"
)

// Config is the immutable configuration a Server is built from. Nothing
// in here changes after NewServer returns; it's read freely by the
// acceptor and every worker goroutine without synchronization.
type Config struct {
	Address     string        // host:port to listen on
	Workers     int           // fixed worker pool size
	DocRoot     string        // canonical absolute document root
	IdleTimeout time.Duration // per-connection read/write deadline
	Logger      *log.Logger   // defaults to log.Default() when nil

	// QueueSize bounds the acceptor->worker channel. Zero selects a size
	// proportional to Workers, matching queue.Queue()'s unbounded-but-
	// drained-immediately behavior closely enough for this server's load.
	QueueSize int
}

// serverTiming is the subset of Config the worker pool needs, kept small
// and separate from Config so worker.go doesn't depend on the whole
// listener-construction surface.
type serverTiming struct {
	idleTimeout time.Duration
}

// Server owns the listening socket, the connection queue, and the fixed
// worker pool. Grounded on Server (hw5/httpd.py 301-331) and on
// shockwave's BaseServer (shockwave/pkg/shockwave/server/server.go),
// trimmed to the one concurrency model a static file server needs: no
// connection semaphore, no TLS, no stats counters shockwave carries for
// a general purpose HTTP library.
type Server struct {
	cfg      Config
	listener net.Listener
	queue    chan net.Conn
	logger   *log.Logger
}

// NewServer constructs a Server bound to the given listener. Use Listen to
// both create the listener and construct the Server in one step.
func NewServer(cfg Config, listener net.Listener) *Server {
	if cfg.Logger == nil {
		cfg.Logger = log.Default()
	}
	queueSize := cfg.QueueSize
	if queueSize <= 0 {
		queueSize = cfg.Workers * 4
		if queueSize <= 0 {
			queueSize = 1
		}
	}
	return &Server{
		cfg:      cfg,
		listener: listener,
		queue:    make(chan net.Conn, queueSize),
		logger:   cfg.Logger,
	}
}

// Listen binds cfg.Address, applies listener-level socket tuning, and
// constructs a Server ready to Serve.
func Listen(cfg Config) (*Server, error) {
	ln, err := net.Listen("tcp", cfg.Address)
	if err != nil {
		return nil, fmt.Errorf("httpd: listen %s: %w", cfg.Address, err)
	}
	if err := socket.TuneListener(ln); err != nil {
		cfg.loggerOrDefault().Printf("socket tuning on listener failed (non-fatal): %v", err)
	}
	return NewServer(cfg, ln), nil
}

func (c Config) loggerOrDefault() *log.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	return log.Default()
}

// Serve starts the fixed worker pool and runs the accept loop until the
// listener is closed (by Shutdown or by the caller). Mirrors
// Server.serve_forever (hw5/httpd.py 321-328): accept, log, enqueue,
// repeat, logging (not dying on) any individual accept error.
func (s *Server) Serve() error {
	timing := serverTiming{idleTimeout: s.cfg.IdleTimeout}
	startWorkers(s.cfg.Workers, s.queue, s.cfg.DocRoot, timing, s.logger)

	for {
		conn, err := s.listener.Accept()
		if err != nil {
			if errors.Is(err, net.ErrClosed) {
				close(s.queue)
				return nil
			}
			s.logger.Printf("error accepting connection: %v", err)
			continue
		}

		s.logger.Printf("%s - accept connection", conn.RemoteAddr())
		if err := socket.TuneConn(conn); err != nil {
			s.logger.Printf("%s - socket tuning failed (non-fatal): %v", conn.RemoteAddr(), err)
		}
		s.queue <- conn
	}
}

// Shutdown stops accepting new connections. In-flight connections run to
// their own completion (idle timeout or client close); there is no forced
// drain deadline.
func (s *Server) Shutdown() error {
	return s.listener.Close()
}

// Addr returns the address the listener is bound to.
func (s *Server) Addr() net.Addr {
	return s.listener.Addr()
}
