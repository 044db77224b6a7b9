// Package worker implements the counting service: a long-lived process that
// serves one word-count request per connection until told to shut down.
package worker

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"time"

	"github.com/dtnitsch/distwc/pkg/analytics"
	"github.com/dtnitsch/distwc/pkg/mapreduce"
	"github.com/dtnitsch/distwc/pkg/wire"
)

// Server accepts one connection at a time, reads exactly one payload, and
// either answers a chunk with its frequency table or shuts down on the
// termination sentinel. A peer that hangs up without sending anything is
// treated as an implicit shutdown request, like the sentinel.
type Server struct {
	logger    *slog.Logger
	analytics *analytics.Analytics
	ioTimeout time.Duration

	listener net.Listener
}

// New returns a Server logging through logger. ioTimeout bounds each
// connection's reads and writes; zero means no deadline.
func New(logger *slog.Logger, ioTimeout time.Duration) *Server {
	return &Server{
		logger:    logger,
		analytics: &analytics.Analytics{},
		ioTimeout: ioTimeout,
	}
}

// Listen binds the server to addr. Must be called before Serve.
func (s *Server) Listen(addr string) error {
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("worker: listen on %s: %w", addr, err)
	}
	s.listener = listener
	s.logger.Info("Worker listening", "addr", listener.Addr().String())
	return nil
}

// Addr returns the bound listen address. Useful when addr had port 0.
func (s *Server) Addr() string {
	if s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}

// Serve runs the accept loop until a shutdown request arrives, then closes
// the listener and returns nil. A malformed payload terminates only the
// connection that carried it; the server keeps accepting.
func (s *Server) Serve() error {
	if s.listener == nil {
		return errors.New("worker: Serve called before Listen")
	}
	defer s.listener.Close()

	for {
		conn, err := s.listener.Accept()
		if err != nil {
			return fmt.Errorf("worker: accept: %w", err)
		}

		shutdown := s.handle(conn)
		if shutdown {
			s.logger.Info("Worker shutting down")
			return nil
		}
	}
}

// handle serves one connection and reports whether the server should stop.
func (s *Server) handle(conn net.Conn) bool {
	defer conn.Close()

	if s.ioTimeout > 0 {
		_ = conn.SetDeadline(time.Now().Add(s.ioTimeout))
	}

	payload, err := wire.ReadPayload(conn)
	if err != nil {
		if errors.Is(err, io.EOF) {
			s.logger.Info("Worker shutdown requested", "reason", "peer_closed", "peer", conn.RemoteAddr().String())
			return true
		}
		s.logger.Error("Dropping connection", "peer", conn.RemoteAddr().String(), "error", err)
		return false
	}

	switch p := payload.(type) {
	case wire.Done:
		s.logger.Info("Worker shutdown requested", "reason", "sentinel", "peer", conn.RemoteAddr().String())
		return true
	case wire.Chunk:
		counts := mapreduce.Map(p.Text, s.analytics)
		if err := wire.WritePayload(conn, wire.Table(counts)); err != nil {
			s.logger.Error("Failed to write result table", "peer", conn.RemoteAddr().String(), "error", err)
			return false
		}
		s.logger.Info("Served chunk", "peer", conn.RemoteAddr().String(), "tokens", s.analytics.TokenCount(p.Text), "distinct_words", len(counts))
		return false
	default:
		s.logger.Error("Dropping connection", "peer", conn.RemoteAddr().String(), "error", fmt.Sprintf("unexpected payload type %T", payload))
		return false
	}
}
