// Package rpcserver accepts TCP connections and serves length-prefixed
// request/response pairs on each of them until the peer goes away.
package rpcserver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/semaphore"

	"github.com/99minutos/marketplace-system/internal/api/metrics"
	"github.com/99minutos/marketplace-system/internal/protocol"
)

const (
	defaultMaxConns = 1024
	acceptBackoff   = 50 * time.Millisecond
)

// Spawner starts fn on its own worker. The default runs a goroutine.
type Spawner func(fn func())

type Option func(*Server)

// WithSpawner replaces the per-connection worker start.
func WithSpawner(sp Spawner) Option {
	return func(s *Server) { s.spawn = sp }
}

// WithMaxConns caps the number of connections served at once. Further
// connections wait in the listen backlog.
func WithMaxConns(n int64) Option {
	return func(s *Server) {
		if n > 0 {
			s.maxConns = n
		}
	}
}

// WithService sets the service label used in logs and metrics.
func WithService(name string) Option {
	return func(s *Server) { s.service = name }
}

// Server serves one protocol.Handler over TCP.
type Server struct {
	addr     string
	handler  protocol.Handler
	log      zerolog.Logger
	service  string
	maxConns int64
	spawn    Spawner
	sem      *semaphore.Weighted

	mu      sync.Mutex
	ln      net.Listener
	conns   map[net.Conn]struct{}
	closing bool
	wg      sync.WaitGroup
}

func New(addr string, h protocol.Handler, log zerolog.Logger, opts ...Option) *Server {
	s := &Server{
		addr:     addr,
		handler:  h,
		log:      log,
		service:  "rpc",
		maxConns: defaultMaxConns,
		spawn:    func(fn func()) { go fn() },
		conns:    make(map[net.Conn]struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.sem = semaphore.NewWeighted(s.maxConns)
	return s
}

// Listen binds the listening socket. Serve calls it when needed.
func (s *Server) Listen() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ln != nil {
		return nil
	}
	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return fmt.Errorf("rpcserver: listen %s: %w", s.addr, err)
	}
	s.ln = ln
	return nil
}

// Addr is the bound address, or nil before Listen.
func (s *Server) Addr() net.Addr {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ln == nil {
		return nil
	}
	return s.ln.Addr()
}

// Serve accepts connections until ctx is cancelled or Shutdown is called. It
// returns nil on a clean stop.
func (s *Server) Serve(ctx context.Context) error {
	if err := s.Listen(); err != nil {
		return err
	}
	s.mu.Lock()
	ln := s.ln
	s.mu.Unlock()

	stop := context.AfterFunc(ctx, func() { _ = s.Shutdown(context.Background()) })
	defer stop()

	s.log.Info().Str("addr", ln.Addr().String()).Msg("rpc server listening")

	for {
		if err := s.sem.Acquire(ctx, 1); err != nil {
			return nil
		}
		conn, err := ln.Accept()
		if err != nil {
			s.sem.Release(1)
			if s.isClosing() {
				return nil
			}
			var ne net.Error
			if errors.As(err, &ne) && ne.Timeout() {
				time.Sleep(acceptBackoff)
				continue
			}
			return fmt.Errorf("rpcserver: accept: %w", err)
		}

		if !s.track(conn) {
			s.sem.Release(1)
			_ = conn.Close()
			return nil
		}
		s.spawn(func() { s.serveConn(ctx, conn) })
	}
}

// Shutdown stops accepting, closes every open connection and waits for the
// workers to return or ctx to end.
func (s *Server) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	s.closing = true
	if s.ln != nil {
		_ = s.ln.Close()
	}
	for c := range s.conns {
		_ = c.Close()
	}
	s.mu.Unlock()

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *Server) isClosing() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closing
}

func (s *Server) track(c net.Conn) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closing {
		return false
	}
	s.conns[c] = struct{}{}
	s.wg.Add(1)
	return true
}

func (s *Server) untrack(c net.Conn) {
	s.mu.Lock()
	delete(s.conns, c)
	s.mu.Unlock()
	s.wg.Done()
}

func (s *Server) serveConn(ctx context.Context, conn net.Conn) {
	gauge := metrics.ActiveConnections.WithLabelValues(s.service)
	gauge.Inc()
	log := s.log.With().Str("peer", conn.RemoteAddr().String()).Logger()

	defer func() {
		_ = conn.Close()
		gauge.Dec()
		s.sem.Release(1)
		s.untrack(conn)
	}()

	for {
		var req protocol.Request
		if err := protocol.ReadFrame(conn, &req); err != nil {
			s.readFailed(log, err)
			return
		}

		resp := s.handler.Handle(ctx, &req)
		if resp == nil {
			resp = protocol.Errorf(req.RequestID, protocol.CodeInternal, "Internal error: no response")
		}
		if err := protocol.WriteFrame(conn, resp); err != nil {
			if !s.isClosing() {
				metrics.ConnectionErrorsTotal.WithLabelValues(s.service, "write").Inc()
				log.Warn().Err(err).Msg("write response failed")
			}
			return
		}
	}
}

func (s *Server) readFailed(log zerolog.Logger, err error) {
	if errors.Is(err, io.EOF) || s.isClosing() {
		return
	}
	reason := "read"
	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	if errors.Is(err, protocol.ErrFrameSize) || errors.As(err, &syntaxErr) || errors.As(err, &typeErr) {
		reason = "frame"
	}
	metrics.ConnectionErrorsTotal.WithLabelValues(s.service, reason).Inc()
	log.Debug().Err(err).Str("reason", reason).Msg("closing connection")
}
