package control

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"os"
	"sync"
	"time"

	"github.com/aretw0/alttab/internal/logging"
	"github.com/aretw0/alttab/pkg/domain"
	"github.com/aretw0/alttab/pkg/ports"
)

// DefaultQueueSize is how many parsed commands may wait for the dispatch goroutine.
const DefaultQueueSize = 16

// ErrNotListening is returned by Serve when Listen has not succeeded.
var ErrNotListening = errors.New("control server not listening")

// Server accepts one-shot control connections and forwards their commands to a Dispatcher.
// Every connection is read on its own goroutine; parsed commands are funnelled into a
// single dispatch goroutine, so commands execute one at a time in arrival order.
type Server struct {
	path       string
	dispatcher ports.Dispatcher
	logger     *slog.Logger
	hooks      domain.LifecycleHooks
	queueSize  int

	mu       sync.Mutex
	listener net.Listener
	lock     *pathLock
	conns    map[net.Conn]struct{}
	closed   bool

	closeOnce sync.Once
	closeErr  error
	wg        sync.WaitGroup
}

// Option configures the Server.
type Option func(*Server)

// WithLogger configures a logger for connection and dispatch events.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// WithLifecycleHooks registers hooks; only OnCommand is used by the server.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(s *Server) {
		s.hooks = hooks
	}
}

// WithQueueSize sets the dispatch queue length.
func WithQueueSize(n int) Option {
	return func(s *Server) {
		if n > 0 {
			s.queueSize = n
		}
	}
}

// NewServer creates a server bound to path once Listen is called.
func NewServer(path string, dispatcher ports.Dispatcher, opts ...Option) *Server {
	s := &Server{
		path:       path,
		dispatcher: dispatcher,
		logger:     logging.NewNop(),
		queueSize:  DefaultQueueSize,
		conns:      make(map[net.Conn]struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Addr returns the socket path.
func (s *Server) Addr() string {
	return s.path
}

// Listen takes ownership of the socket path and starts listening on it.
func (s *Server) Listen() error {
	lock, err := acquirePathLock(s.path)
	if err != nil {
		return err
	}

	if st, err := os.Lstat(s.path); err == nil {
		if st.Mode()&os.ModeSocket == 0 {
			lock.release() //nolint:errcheck
			return fmt.Errorf("%w: %s", domain.ErrNotSocket, s.path)
		}
		// We hold the lock, so nobody is serving on it.
		if err := os.Remove(s.path); err != nil {
			lock.release() //nolint:errcheck
			return fmt.Errorf("remove stale socket: %w", err)
		}
		s.logger.Debug("Removed stale control socket", "path", s.path)
	} else if !errors.Is(err, os.ErrNotExist) {
		lock.release() //nolint:errcheck
		return fmt.Errorf("stat socket path: %w", err)
	}

	ln, err := net.Listen("unix", s.path)
	if err != nil {
		lock.release() //nolint:errcheck
		return fmt.Errorf("listen uds: %w", err)
	}
	if err := os.Chmod(s.path, 0o600); err != nil {
		ln.Close() //nolint:errcheck
		lock.release() //nolint:errcheck
		return fmt.Errorf("chmod socket: %w", err)
	}

	s.mu.Lock()
	s.listener = ln
	s.lock = lock
	s.mu.Unlock()
	return nil
}

// Serve accepts connections and dispatches commands until ctx is cancelled or the
// listener fails. It closes the server before returning and returns nil on cancellation.
func (s *Server) Serve(ctx context.Context) error {
	s.mu.Lock()
	ln := s.listener
	s.mu.Unlock()
	if ln == nil {
		return ErrNotListening
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	commands := make(chan domain.Command, s.queueSize)
	acceptErr := make(chan error, 1)

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		acceptErr <- s.acceptLoop(ctx, ln, commands)
	}()

	s.logger.Info("Control server listening", "path", s.path)

	for {
		select {
		case <-ctx.Done():
			return s.shutdown(nil)
		case err := <-acceptErr:
			cancel()
			if err != nil {
				err = fmt.Errorf("accept: %w", err)
			}
			return s.shutdown(err)
		case cmd := <-commands:
			s.dispatch(ctx, cmd)
		}
	}
}

// Close stops listening, drops open connections and releases the socket path.
func (s *Server) Close() error {
	s.closeOnce.Do(func() {
		s.mu.Lock()
		s.closed = true
		ln := s.listener
		s.listener = nil
		lock := s.lock
		s.lock = nil
		conns := make([]net.Conn, 0, len(s.conns))
		for c := range s.conns {
			conns = append(conns, c)
		}
		s.mu.Unlock()

		var errs []error
		if ln != nil {
			if err := ln.Close(); err != nil && !errors.Is(err, net.ErrClosed) {
				errs = append(errs, err)
			}
		}
		for _, c := range conns {
			c.Close() //nolint:errcheck
		}
		if ln != nil {
			if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
				errs = append(errs, err)
			}
		}
		if err := lock.release(); err != nil {
			errs = append(errs, err)
		}
		s.closeErr = errors.Join(errs...)
	})
	return s.closeErr
}

func (s *Server) shutdown(cause error) error {
	closeErr := s.Close()
	s.wg.Wait()
	if cause != nil {
		return cause
	}
	return closeErr
}

func (s *Server) acceptLoop(ctx context.Context, ln net.Listener, commands chan<- domain.Command) error {
	for {
		conn, err := ln.Accept()
		if err != nil {
			if errors.Is(err, net.ErrClosed) || s.isClosed() {
				return nil
			}
			return err
		}
		if !s.track(conn) {
			conn.Close() //nolint:errcheck
			return nil
		}
		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			s.handle(ctx, conn, commands)
		}()
	}
}

// handle reads payloads from one connection until the peer closes it.
func (s *Server) handle(ctx context.Context, conn net.Conn, commands chan<- domain.Command) {
	defer s.untrack(conn)

	buf := make([]byte, domain.MaxCommandSize)
	for {
		n, err := conn.Read(buf)
		if n > 0 {
			cmd, ok := domain.ParseCommand(buf[:n])
			s.notifyCommand(ctx, buf[:n], cmd, ok)
			if ok {
				select {
				case commands <- cmd:
				case <-ctx.Done():
					return
				}
			} else {
				s.logger.Debug("Ignoring unknown control payload", "bytes", n)
			}
		}
		if err != nil {
			if !errors.Is(err, io.EOF) && !errors.Is(err, net.ErrClosed) && !s.isClosed() {
				s.logger.Debug("Control connection read failed", "err", err)
			}
			return
		}
	}
}

func (s *Server) dispatch(ctx context.Context, cmd domain.Command) {
	start := time.Now()
	if err := s.dispatcher.Dispatch(ctx, cmd); err != nil {
		s.logger.Warn("Command dispatch failed", "command", cmd, "err", err)
		return
	}
	s.logger.Debug("Command dispatched", "command", cmd, "elapsed", time.Since(start))
}

func (s *Server) notifyCommand(ctx context.Context, payload []byte, cmd domain.Command, ok bool) {
	if s.hooks.OnCommand == nil {
		return
	}
	name := string(cmd)
	if !ok {
		name = string(payload[:min(len(payload), 32)])
	}
	s.hooks.OnCommand(ctx, &domain.CommandEvent{
		EventBase:  domain.EventBase{Timestamp: time.Now(), Type: domain.EventCommand},
		Command:    name,
		Recognized: ok,
	})
}

func (s *Server) track(conn net.Conn) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return false
	}
	s.conns[conn] = struct{}{}
	return true
}

func (s *Server) untrack(conn net.Conn) {
	s.mu.Lock()
	delete(s.conns, conn)
	s.mu.Unlock()
	conn.Close() //nolint:errcheck
}

func (s *Server) isClosed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}
